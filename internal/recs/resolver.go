// Package recs resolves recommendation id lists against the loaded catalog
// and provides a local genre-overlap fallback for titles the recommendation
// service does not know.
package recs

import (
	"context"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/cineniche/cinectl/internal/catalog"
	"github.com/cineniche/cinectl/internal/models"
	"github.com/cineniche/cinectl/internal/services"
)

// FallbackLimit caps how many titles the genre-overlap fallback returns.
const FallbackLimit = 6

// Resolver turns recommendation responses, which are bare show ids, into
// movie rows from the catalog store.
type Resolver struct {
	service  services.Service
	store    *catalog.Store
	notifier catalog.Notifier
	logger   *log.Logger
}

// NewResolver wires a resolver over the given service and store.
func NewResolver(service services.Service, store *catalog.Store, notifier catalog.Notifier, logger *log.Logger) *Resolver {
	return &Resolver{service: service, store: store, notifier: notifier, logger: logger}
}

// resolve maps ids through the catalog, preserving response order. Ids the
// catalog does not know are dropped silently; a recommender can lag behind
// catalog deletions and a partial row list is better than an error.
func (r *Resolver) resolve(ids []string) []models.Movie {
	movies := make([]models.Movie, 0, len(ids))
	for _, id := range ids {
		if movie, ok := r.store.MovieByID(id); ok {
			movies = append(movies, movie)
		}
	}
	return movies
}

// fail logs the error, notifies the user once, and yields an empty list so
// the surrounding view renders without its recommendation row.
func (r *Resolver) fail(what string, err error) []models.Movie {
	if r.logger != nil {
		r.logger.Error("recommendation fetch failed", "kind", what, "error", err)
	}
	if r.notifier != nil {
		r.notifier.Error("Recommendations are unavailable right now.")
	}
	return []models.Movie{}
}

// ByMovie returns the movies recommended alongside the given title.
func (r *Resolver) ByMovie(ctx context.Context, showID string) []models.Movie {
	ids, err := r.service.MovieRecommendations(ctx, showID)
	if err != nil {
		return r.fail("movie", err)
	}
	return r.resolve(ids)
}

// ByUser returns the movies recommended for the given user. A user the
// recommender has never scored yields an empty list, not an error.
func (r *Resolver) ByUser(ctx context.Context, userID int) []models.Movie {
	ids, err := r.service.UserRecommendations(ctx, userID)
	if err != nil {
		return r.fail("user", err)
	}
	return r.resolve(ids)
}

// SimilarByGenre is the local fallback when the recommender has nothing for
// a title: catalog movies sharing at least one genre tag, ranked by how many
// tags they share, ties in catalog order, capped at FallbackLimit.
func (r *Resolver) SimilarByGenre(showID string) []models.Movie {
	source, ok := r.store.MovieByID(showID)
	if !ok {
		return []models.Movie{}
	}

	sourceGenres := make(map[string]struct{})
	for _, genre := range source.Genres() {
		sourceGenres[genre] = struct{}{}
	}

	type scored struct {
		movie   models.Movie
		overlap int
	}
	var candidates []scored
	for _, movie := range r.store.Movies() {
		if movie.ShowID == showID {
			continue
		}
		overlap := 0
		for _, genre := range movie.Genres() {
			if _, ok := sourceGenres[genre]; ok {
				overlap++
			}
		}
		if overlap > 0 {
			candidates = append(candidates, scored{movie: movie, overlap: overlap})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].overlap > candidates[j].overlap
	})

	if len(candidates) > FallbackLimit {
		candidates = candidates[:FallbackLimit]
	}
	movies := make([]models.Movie, len(candidates))
	for i, c := range candidates {
		movies[i] = c.movie
	}
	return movies
}
