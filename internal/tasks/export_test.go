package tasks

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cineniche/cinectl/internal/models"
	"github.com/cineniche/cinectl/internal/shared"
	mocks "github.com/cineniche/cinectl/internal/testing"
)

func exportCatalog() []models.Movie {
	return []models.Movie{
		{ShowID: "s1", Title: "Foo", Genre: "Action,Drama", ReleaseYear: 2019},
		{ShowID: "s2", Title: "Bar", Genre: "Comedy", ReleaseYear: 2021},
		{ShowID: "s3", Title: "Baz", Genre: "Drama", ReleaseYear: 2020},
	}
}

func TestBulkExport(t *testing.T) {
	ctx := context.Background()

	t.Run("Exports One Listing Per Genre", func(t *testing.T) {
		dir := t.TempDir()
		engine := NewCatalogEngine(&mocks.MockService{Catalog: exportCatalog()}, nil)

		result, err := engine.BulkExport(ctx, nil, nil, BulkExportOpts{
			Format:    "csv",
			OutputDir: dir,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.TotalListings != 3 {
			t.Errorf("expected 3 listings for 3 genres, got %d", result.TotalListings)
		}
		if result.SuccessCount != 3 || result.FailedCount != 0 {
			t.Errorf("expected all successes, got %+v", result)
		}

		mocks.AssertFileExists(t, filepath.Join(dir, "drama_movies.csv"))
		mocks.AssertFileExists(t, filepath.Join(dir, "manifest.json"))
	})

	t.Run("Honors Explicit Genre Selection", func(t *testing.T) {
		dir := t.TempDir()
		engine := NewCatalogEngine(&mocks.MockService{Catalog: exportCatalog()}, nil)

		result, err := engine.BulkExport(ctx, nil, []string{"Comedy"}, BulkExportOpts{
			Format:    "txt",
			OutputDir: dir,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.TotalListings != 1 {
			t.Errorf("expected 1 listing, got %d", result.TotalListings)
		}

		text := mocks.MustReadFile(t, filepath.Join(dir, "comedy.txt"))
		if !strings.Contains(text, "Bar (2021)") {
			t.Errorf("unexpected export content:\n%s", text)
		}
	})

	t.Run("Markdown Format", func(t *testing.T) {
		dir := t.TempDir()
		engine := NewCatalogEngine(&mocks.MockService{Catalog: exportCatalog()}, nil)

		if _, err := engine.BulkExport(ctx, nil, []string{"Drama"}, BulkExportOpts{
			Format:    "markdown",
			OutputDir: dir,
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		text := mocks.MustReadFile(t, filepath.Join(dir, "drama.md"))
		if !strings.Contains(text, "# Drama") {
			t.Errorf("unexpected markdown content:\n%s", text)
		}
	})

	t.Run("Unsupported Format Fails The Listing", func(t *testing.T) {
		dir := t.TempDir()
		engine := NewCatalogEngine(&mocks.MockService{Catalog: exportCatalog()}, nil)

		result, err := engine.BulkExport(ctx, nil, []string{"Drama"}, BulkExportOpts{
			Format:    "xml",
			OutputDir: dir,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.FailedCount != 1 {
			t.Errorf("expected one failure, got %+v", result)
		}
	})

	t.Run("Catalog Fetch Failure Aborts", func(t *testing.T) {
		engine := NewCatalogEngine(&mocks.MockService{MoviesErr: shared.ErrServiceUnavailable}, nil)

		if _, err := engine.BulkExport(ctx, nil, nil, BulkExportOpts{OutputDir: t.TempDir()}); err == nil {
			t.Error("expected fetch error")
		}
	})

	t.Run("Poster Fetcher Feeds Markdown Export", func(t *testing.T) {
		dir := t.TempDir()
		engine := NewCatalogEngine(&mocks.MockService{Catalog: exportCatalog()}, nil)

		fetched := []string{}
		result, err := engine.BulkExport(ctx, nil, []string{"Comedy"}, BulkExportOpts{
			Format:    "markdown",
			OutputDir: dir,
			GetPosterImage: func(ctx context.Context, title string) (string, error) {
				fetched = append(fetched, title)
				return "poster.jpg", nil
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.SuccessCount != 1 {
			t.Fatalf("expected success, got %+v", result)
		}
		if len(fetched) != 1 || fetched[0] != "Bar" {
			t.Errorf("expected poster fetch for Bar, got %v", fetched)
		}

		text := mocks.MustReadFile(t, filepath.Join(dir, "comedy.md"))
		if !strings.Contains(text, "![Poster](poster.jpg)") {
			t.Errorf("expected poster reference:\n%s", text)
		}
	})

	t.Run("Defaults Output Directory", func(t *testing.T) {
		t.Chdir(t.TempDir())
		engine := NewCatalogEngine(&mocks.MockService{Catalog: exportCatalog()[:1]}, nil)

		result, err := engine.BulkExport(ctx, nil, []string{"Action"}, BulkExportOpts{Format: "json"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.OutputDirectory == "" {
			t.Fatal("expected generated output directory")
		}
		if _, statErr := os.Stat(result.OutputDirectory); statErr != nil {
			t.Errorf("expected output directory created: %v", statErr)
		}
	})
}
