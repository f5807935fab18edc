package repositories

import (
	"errors"
	"testing"

	"github.com/cineniche/cinectl/internal/models"
	"github.com/cineniche/cinectl/internal/shared"
)

func newTestRepo(t *testing.T) *MovieRepository {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return NewMovieRepository(db)
}

func cachedMovies() []models.Movie {
	return []models.Movie{
		{ShowID: "s1", Type: "Movie", Title: "Foo", Director: "Ann Lee", Cast: "Bob Actor", Genre: "Action,Drama", ReleaseYear: 2019},
		{ShowID: "s2", Type: "TV Show", Title: "Bar", Director: "Carl Smith", Cast: "Dana Star", Genre: "Comedy", ReleaseYear: 2021},
		{ShowID: "s3", Type: "Movie", Title: "Baz", Director: "Ann Lee", Cast: "Eve Extra", Genre: "Drama", ReleaseYear: 2020},
	}
}

func TestMovieRepository(t *testing.T) {
	t.Run("Upsert", func(t *testing.T) {
		t.Run("Inserts Then Replaces", func(t *testing.T) {
			repo := newTestRepo(t)

			movie := cachedMovies()[0]
			if err := repo.Upsert(movie); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			movie.Title = "Foo Redux"
			if err := repo.Upsert(movie); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			got, err := repo.Get("s1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Title != "Foo Redux" {
				t.Errorf("expected replaced title, got %q", got.Title)
			}

			count, _ := repo.Count()
			if count != 1 {
				t.Errorf("expected 1 row after upsert, got %d", count)
			}
		})

		t.Run("Rejects Missing Show Id", func(t *testing.T) {
			repo := newTestRepo(t)
			err := repo.Upsert(models.Movie{Title: "No Id"})
			if !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("expected invalid input error, got %v", err)
			}
		})
	})

	t.Run("ReplaceAll Swaps The Cache", func(t *testing.T) {
		repo := newTestRepo(t)
		if err := repo.ReplaceAll(cachedMovies()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := repo.ReplaceAll(cachedMovies()[:1]); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		count, err := repo.Count()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if count != 1 {
			t.Errorf("expected 1 row after replace, got %d", count)
		}
		if _, err := repo.Get("s2"); !errors.Is(err, shared.ErrMovieNotFound) {
			t.Errorf("expected s2 gone, got %v", err)
		}
	})

	t.Run("Get Unknown Id Reports Not Found", func(t *testing.T) {
		repo := newTestRepo(t)
		if _, err := repo.Get("ghost"); !errors.Is(err, shared.ErrMovieNotFound) {
			t.Errorf("expected not found, got %v", err)
		}
	})

	t.Run("List Orders By Title", func(t *testing.T) {
		repo := newTestRepo(t)
		repo.ReplaceAll(cachedMovies())

		movies, err := repo.List()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(movies) != 3 {
			t.Fatalf("expected 3 movies, got %d", len(movies))
		}
		if movies[0].Title != "Bar" || movies[1].Title != "Baz" || movies[2].Title != "Foo" {
			t.Errorf("expected title order, got %v", movies)
		}
	})

	t.Run("Search Spans Title Director And Cast", func(t *testing.T) {
		repo := newTestRepo(t)
		repo.ReplaceAll(cachedMovies())

		byDirector, err := repo.Search("ANN LEE")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(byDirector) != 2 {
			t.Errorf("expected 2 matches for director, got %d", len(byDirector))
		}

		byCast, err := repo.Search("dana")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(byCast) != 1 || byCast[0].ShowID != "s2" {
			t.Errorf("expected s2 for cast match, got %v", byCast)
		}
	})

	t.Run("ByGenre Matches Case Insensitively", func(t *testing.T) {
		repo := newTestRepo(t)
		repo.ReplaceAll(cachedMovies())

		dramas, err := repo.ByGenre("drama")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(dramas) != 2 {
			t.Errorf("expected 2 dramas, got %d", len(dramas))
		}
	})

	t.Run("Delete Is Idempotent", func(t *testing.T) {
		repo := newTestRepo(t)
		repo.ReplaceAll(cachedMovies())

		if err := repo.Delete("s1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := repo.Delete("s1"); err != nil {
			t.Fatalf("expected repeat delete to succeed, got %v", err)
		}

		count, _ := repo.Count()
		if count != 2 {
			t.Errorf("expected 2 rows, got %d", count)
		}
	})

	t.Run("SyncedAt", func(t *testing.T) {
		t.Run("Zero For Empty Cache", func(t *testing.T) {
			repo := newTestRepo(t)
			ts, err := repo.SyncedAt()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !ts.IsZero() {
				t.Errorf("expected zero time, got %v", ts)
			}
		})

		t.Run("Set After Replace", func(t *testing.T) {
			repo := newTestRepo(t)
			repo.ReplaceAll(cachedMovies())

			ts, err := repo.SyncedAt()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ts.IsZero() {
				t.Error("expected sync time to be recorded")
			}
		})
	})

	t.Run("Empty List Yields Empty Slice", func(t *testing.T) {
		repo := newTestRepo(t)
		movies, err := repo.List()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if movies == nil || len(movies) != 0 {
			t.Errorf("expected empty non-nil slice, got %v", movies)
		}
	})
}
