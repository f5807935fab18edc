package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/cineniche/cinectl/internal/models"
	"github.com/cineniche/cinectl/internal/shared"
)

// MovieRepository persists catalog movies in the local SQLite cache.
type MovieRepository struct {
	db *sql.DB
}

// NewMovieRepository creates a new MovieRepository with the given database connection
func NewMovieRepository(db *sql.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

const movieColumns = "show_id, type, title, director, cast_names, country, release_year, rating, duration, description, genre"

// Upsert inserts a movie or replaces the cached row with the same show id.
func (r *MovieRepository) Upsert(movie models.Movie) error {
	if movie.ShowID == "" {
		return fmt.Errorf("%w: movie is missing a show id", shared.ErrInvalidInput)
	}

	query := `
		INSERT INTO movies (` + movieColumns + `, synced_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(show_id) DO UPDATE SET
			type = excluded.type,
			title = excluded.title,
			director = excluded.director,
			cast_names = excluded.cast_names,
			country = excluded.country,
			release_year = excluded.release_year,
			rating = excluded.rating,
			duration = excluded.duration,
			description = excluded.description,
			genre = excluded.genre,
			synced_at = excluded.synced_at
	`

	_, err := r.db.Exec(query,
		movie.ShowID,
		movie.Type,
		movie.Title,
		movie.Director,
		movie.Cast,
		movie.Country,
		movie.ReleaseYear,
		movie.Rating,
		movie.Duration,
		movie.Description,
		movie.Genre,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert movie: %w", err)
	}

	return nil
}

// ReplaceAll swaps the entire cache for the given list in one transaction,
// so a failed sync never leaves a half-written catalog behind.
func (r *MovieRepository) ReplaceAll(movies []models.Movie) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM movies"); err != nil {
		return fmt.Errorf("failed to clear movie cache: %w", err)
	}

	query := `
		INSERT INTO movies (` + movieColumns + `, synced_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	syncedAt := time.Now().UTC()
	for _, movie := range movies {
		if movie.ShowID == "" {
			return fmt.Errorf("%w: movie %q is missing a show id", shared.ErrInvalidInput, movie.Title)
		}
		_, err := stmt.Exec(
			movie.ShowID,
			movie.Type,
			movie.Title,
			movie.Director,
			movie.Cast,
			movie.Country,
			movie.ReleaseYear,
			movie.Rating,
			movie.Duration,
			movie.Description,
			movie.Genre,
			syncedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert movie %s: %w", movie.ShowID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog replace: %w", err)
	}

	return nil
}

// Get retrieves a cached movie by show id.
func (r *MovieRepository) Get(showID string) (*models.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE show_id = ?`

	movie, err := r.scanOne(r.db.QueryRow(query, showID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", shared.ErrMovieNotFound, showID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}

	return movie, nil
}

// List returns the full cache ordered by title.
func (r *MovieRepository) List() ([]models.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies ORDER BY title`
	return r.scanMany(query)
}

// Search returns cached movies whose title, director, or cast contains the
// given term, case-insensitively, ordered by title.
func (r *MovieRepository) Search(term string) ([]models.Movie, error) {
	like := "%" + strings.ToLower(term) + "%"
	query := `
		SELECT ` + movieColumns + `
		FROM movies
		WHERE lower(title) LIKE ? OR lower(director) LIKE ? OR lower(cast_names) LIKE ?
		ORDER BY title
	`
	return r.scanMany(query, like, like, like)
}

// ByGenre returns cached movies carrying the given genre tag, ordered by title.
func (r *MovieRepository) ByGenre(genre string) ([]models.Movie, error) {
	like := "%" + strings.ToLower(genre) + "%"
	query := `SELECT ` + movieColumns + ` FROM movies WHERE lower(genre) LIKE ? ORDER BY title`
	return r.scanMany(query, like)
}

// Delete removes a cached movie row. Missing rows are not an error; the
// cache only mirrors the backend.
func (r *MovieRepository) Delete(showID string) error {
	if _, err := r.db.Exec("DELETE FROM movies WHERE show_id = ?", showID); err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}
	return nil
}

// Count returns the number of cached movies.
func (r *MovieRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM movies").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count movies: %w", err)
	}
	return count, nil
}

// SyncedAt returns when the cache was last written, or the zero time for an
// empty cache.
func (r *MovieRepository) SyncedAt() (time.Time, error) {
	var raw sql.NullString
	err := r.db.QueryRow("SELECT MAX(synced_at) FROM movies").Scan(&raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read sync time: %w", err)
	}
	if !raw.Valid || raw.String == "" {
		return time.Time{}, nil
	}

	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00", "2006-01-02 15:04:05"} {
		if ts, err := time.Parse(layout, raw.String); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse sync time %q", raw.String)
}

func (r *MovieRepository) scanOne(row *sql.Row) (*models.Movie, error) {
	var movie models.Movie
	err := row.Scan(
		&movie.ShowID,
		&movie.Type,
		&movie.Title,
		&movie.Director,
		&movie.Cast,
		&movie.Country,
		&movie.ReleaseYear,
		&movie.Rating,
		&movie.Duration,
		&movie.Description,
		&movie.Genre,
	)
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

func (r *MovieRepository) scanMany(query string, args ...any) ([]models.Movie, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}
	defer rows.Close()

	movies := []models.Movie{}
	for rows.Next() {
		var movie models.Movie
		err := rows.Scan(
			&movie.ShowID,
			&movie.Type,
			&movie.Title,
			&movie.Director,
			&movie.Cast,
			&movie.Country,
			&movie.ReleaseYear,
			&movie.Rating,
			&movie.Duration,
			&movie.Description,
			&movie.Genre,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, movie)
	}

	return movies, rows.Err()
}
