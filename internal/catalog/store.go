package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/cineniche/cinectl/internal/models"
	"github.com/cineniche/cinectl/internal/services"
	"github.com/cineniche/cinectl/internal/shared"
)

// Notifier receives user-facing status messages from catalog mutations.
// Views supply an implementation that surfaces them as transient toasts.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// nopNotifier swallows notifications; used when a caller passes nil.
type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}

// Store is the shared movie catalog. It fetches the full list once, derives
// filtered views from it, and delegates writes to the backend without
// mutating local state; call Reload after a successful write to observe it.
type Store struct {
	mu       sync.RWMutex
	service  services.Service
	notifier Notifier
	logger   *log.Logger

	movies  []models.Movie
	byID    map[string]int
	filters models.Filter

	filtered        []models.Movie
	filteredVersion uint64

	loaded  bool
	loading bool
}

// NewStore creates an empty store. Load must be called before reads return
// anything useful.
func NewStore(service services.Service, notifier Notifier, logger *log.Logger) *Store {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &Store{
		service:  service,
		notifier: notifier,
		logger:   logger,
		byID:     make(map[string]int),
		filtered: []models.Movie{},
	}
}

// Load fetches the full catalog. Repeated calls after a successful load are
// no-ops; a failed load leaves the store empty and loadable again. On failure
// the user is notified and browsing proceeds over an empty list.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.loaded || s.loading {
		s.mu.Unlock()
		return nil
	}
	s.loading = true
	s.mu.Unlock()

	movies, err := s.service.Movies(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		if s.logger != nil {
			s.logger.Error("catalog load failed", "error", err)
		}
		s.notifier.Error("Failed to load movies. Please try again later.")
		s.setMoviesLocked(nil)
		return err
	}

	s.loaded = true
	s.setMoviesLocked(movies)
	return nil
}

// Reload refetches the catalog unconditionally, keeping the current filters.
func (s *Store) Reload(ctx context.Context) error {
	movies, err := s.service.Movies(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		if s.logger != nil {
			s.logger.Error("catalog reload failed", "error", err)
		}
		s.notifier.Error("Failed to refresh movies.")
		return err
	}

	s.loaded = true
	s.setMoviesLocked(movies)
	return nil
}

// setMoviesLocked replaces the backing list and rederives the filtered view.
// Caller holds s.mu.
func (s *Store) setMoviesLocked(movies []models.Movie) {
	if movies == nil {
		movies = []models.Movie{}
	}
	s.movies = movies
	s.byID = make(map[string]int, len(movies))
	for i, movie := range movies {
		s.byID[movie.ShowID] = i
	}
	s.applyFiltersLocked()
}

// applyFiltersLocked recomputes the filtered list, preserving catalog order.
// If the derived list contains exactly the same ids as the current one the
// published slice and its version are left untouched, so unchanged filter
// inputs never look like new results to observers. Caller holds s.mu.
func (s *Store) applyFiltersLocked() {
	next := make([]models.Movie, 0, len(s.movies))
	for _, movie := range s.movies {
		if s.filters.Matches(movie) {
			next = append(next, movie)
		}
	}

	if sameIDSet(s.filtered, next) {
		return
	}
	s.filtered = next
	s.filteredVersion++
}

// sameIDSet reports whether two movie lists cover the same set of show ids,
// regardless of order.
func sameIDSet(a, b []models.Movie) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]int, len(a))
	for _, movie := range a {
		seen[movie.ShowID]++
	}
	for _, movie := range b {
		seen[movie.ShowID]--
		if seen[movie.ShowID] < 0 {
			return false
		}
	}
	return true
}

// Loaded reports whether an initial load has completed successfully.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Movies returns the full catalog in server order.
func (s *Store) Movies() []models.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.movies
}

// SetFilters replaces the active filter set and rederives the filtered view.
func (s *Store) SetFilters(filters models.Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = filters
	s.applyFiltersLocked()
}

// Filters returns the active filter set.
func (s *Store) Filters() models.Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters
}

// FilteredMovies returns the derived list along with a version counter that
// only advances when the list's membership actually changes.
func (s *Store) FilteredMovies() ([]models.Movie, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filtered, s.filteredVersion
}

// MovieByID looks up a movie in the loaded catalog.
func (s *Store) MovieByID(showID string) (models.Movie, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[showID]
	if !ok {
		return models.Movie{}, false
	}
	return s.movies[i], true
}

// Genres returns every distinct genre tag in the catalog, sorted.
func (s *Store) Genres() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set := make(map[string]struct{})
	for _, movie := range s.movies {
		for _, genre := range movie.Genres() {
			set[genre] = struct{}{}
		}
	}

	genres := make([]string, 0, len(set))
	for genre := range set {
		genres = append(genres, genre)
	}
	sort.Strings(genres)
	return genres
}

// ByGenre returns the catalog movies carrying the given genre tag, in
// catalog order. Matching is case-insensitive like filtering.
func (s *Store) ByGenre(genre string) []models.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]models.Movie, 0)
	for _, movie := range s.movies {
		if movie.MatchesGenre(genre) {
			matches = append(matches, movie)
		}
	}
	return matches
}

// RecentReleases returns the catalog sorted by release year, newest first.
// Ties keep catalog order.
func (s *Store) RecentReleases() []models.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recent := make([]models.Movie, len(s.movies))
	copy(recent, s.movies)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].ReleaseYear > recent[j].ReleaseYear
	})
	return recent
}

// AddMovie creates a movie on the backend. Local state is not touched;
// callers reload to see the new entry.
func (s *Store) AddMovie(ctx context.Context, movie models.Movie) error {
	if strings.TrimSpace(movie.Title) == "" {
		return fmt.Errorf("%w: title is required", shared.ErrInvalidInput)
	}

	if _, err := s.service.CreateMovie(ctx, movie); err != nil {
		if s.logger != nil {
			s.logger.Error("movie create failed", "title", movie.Title, "error", err)
		}
		s.notifier.Error("Failed to add movie.")
		return err
	}

	s.notifier.Success(fmt.Sprintf("Added %q.", movie.Title))
	return nil
}

// UpdateMovie updates a movie on the backend, keyed by its show id.
func (s *Store) UpdateMovie(ctx context.Context, showID string, movie models.Movie) error {
	if showID == "" {
		return fmt.Errorf("%w: show id is required", shared.ErrInvalidInput)
	}

	if _, err := s.service.UpdateMovie(ctx, showID, movie); err != nil {
		if s.logger != nil {
			s.logger.Error("movie update failed", "showId", showID, "error", err)
		}
		s.notifier.Error("Failed to update movie.")
		return err
	}

	s.notifier.Success(fmt.Sprintf("Updated %q.", movie.Title))
	return nil
}

// DeleteMovie deletes a movie on the backend.
func (s *Store) DeleteMovie(ctx context.Context, showID string) error {
	if showID == "" {
		return fmt.Errorf("%w: show id is required", shared.ErrInvalidInput)
	}

	if err := s.service.DeleteMovie(ctx, showID); err != nil {
		if s.logger != nil {
			s.logger.Error("movie delete failed", "showId", showID, "error", err)
		}
		s.notifier.Error("Failed to delete movie.")
		return err
	}

	s.notifier.Success("Movie deleted.")
	return nil
}
