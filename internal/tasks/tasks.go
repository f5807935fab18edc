package tasks

import (
	"context"
	"fmt"

	"github.com/cineniche/cinectl/internal/models"
	"github.com/cineniche/cinectl/internal/services"
	"github.com/cineniche/cinectl/internal/shared"
)

// MovieCacher is the slice of the cache repository the engine needs.
type MovieCacher interface {
	ReplaceAll(movies []models.Movie) error
	Count() (int, error)
}

// SyncResult summarizes a catalog sync.
type SyncResult struct {
	Fetched int // Titles fetched from the backend
	Cached  int // Titles written to the local cache
}

// DumpResult contains all client-visible backend state.
type DumpResult struct {
	Session         *models.Session        // Current session, nil when unauthenticated
	Movies          []models.Movie         // Full catalog
	Recommendations map[string][]string    // Recommended show ids per show id, absent rows omitted
	AverageRatings  []models.AverageRating // Average ratings for titles that have any
	Errors          []error                // Non-fatal fetch failures
}

// DumpData is the JSON shape written by the dump command.
type DumpData struct {
	Session         *models.Session        `json:"session,omitempty"`
	Movies          []models.Movie         `json:"movies,omitempty"`
	Recommendations map[string][]string    `json:"recommendations,omitempty"`
	AverageRatings  []models.AverageRating `json:"averageRatings,omitempty"`
	Errors          []string               `json:"errors,omitempty"`
}

// CatalogEngine orchestrates catalog sync, dump, and export operations
// against the backend and the local cache.
type CatalogEngine struct {
	service services.Service
	cache   MovieCacher
}

// NewCatalogEngine creates a new CatalogEngine with the provided service and
// cache. The cache may be nil for dump-only use.
func NewCatalogEngine(service services.Service, cache MovieCacher) *CatalogEngine {
	return &CatalogEngine{service: service, cache: cache}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *CatalogEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Sync fetches the full catalog and replaces the local cache with it.
func (e *CatalogEngine) Sync(ctx context.Context, progress chan<- ProgressUpdate) (*SyncResult, error) {
	if e.service == nil {
		return nil, fmt.Errorf("%w: catalog service not initialized", shared.ErrServiceUnavailable)
	}
	if e.cache == nil {
		return nil, fmt.Errorf("%w: movie cache not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, fetchCatalogUpdate(1, 2))
	movies, err := e.service.Movies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}

	e.sendProgress(progress, writeCacheUpdate(2, 2, len(movies)))
	if err := e.cache.ReplaceAll(movies); err != nil {
		return nil, fmt.Errorf("failed to write cache: %w", err)
	}

	cached, err := e.cache.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count cache: %w", err)
	}

	return &SyncResult{Fetched: len(movies), Cached: cached}, nil
}

// Dump fetches session and catalog state in one pass. Individual fetch
// failures are collected rather than aborting, so a dump taken against a
// half-broken backend still shows everything reachable.
func (e *CatalogEngine) Dump(ctx context.Context, progress chan<- ProgressUpdate) (*DumpResult, error) {
	if e.service == nil {
		return nil, fmt.Errorf("%w: catalog service not initialized", shared.ErrServiceUnavailable)
	}

	result := &DumpResult{}

	e.sendProgress(progress, fetchSessionUpdate(1, 3))
	session, err := e.service.Ping(ctx)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("session: %w", err))
	} else {
		result.Session = session
	}

	e.sendProgress(progress, fetchCatalogUpdate(2, 3))
	movies, err := e.service.Movies(ctx)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("catalog: %w", err))
	} else {
		result.Movies = movies
	}

	e.sendProgress(progress, fetchRecommendationsUpdate(3, 3, len(result.Movies)))
	result.Recommendations = make(map[string][]string)
	for _, movie := range result.Movies {
		recs, err := e.service.MovieRecommendations(ctx, movie.ShowID)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("recommendations %s: %w", movie.ShowID, err))
		} else if len(recs) > 0 {
			result.Recommendations[movie.ShowID] = recs
		}

		average, err := e.service.AverageRating(ctx, movie.ShowID)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("rating %s: %w", movie.ShowID, err))
		} else if average != nil {
			result.AverageRatings = append(result.AverageRatings, *average)
		}
	}

	return result, nil
}

// Data converts a DumpResult into its JSON-serializable form.
func (r *DumpResult) Data() DumpData {
	data := DumpData{
		Session:         r.Session,
		Movies:          r.Movies,
		Recommendations: r.Recommendations,
		AverageRatings:  r.AverageRatings,
	}
	for _, err := range r.Errors {
		data.Errors = append(data.Errors, err.Error())
	}
	return data
}
