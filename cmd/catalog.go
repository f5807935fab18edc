package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/cineniche/cinectl/internal/catalog"
	"github.com/cineniche/cinectl/internal/models"
	"github.com/cineniche/cinectl/internal/recs"
	"github.com/cineniche/cinectl/internal/repositories"
	"github.com/cineniche/cinectl/internal/shared"
	"github.com/urfave/cli/v3"
)

// openCache opens the local cache repository from the runner's config.
func (r *Runner) openCache() (*repositories.MovieRepository, func(), error) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return repositories.NewMovieRepository(db), func() { db.Close() }, nil
}

// loadedStore builds a catalog store over the backend and loads it.
func (r *Runner) loadedStore(ctx context.Context) (*catalog.Store, error) {
	if r.service == nil {
		return nil, fmt.Errorf("%w: backend client not initialized", shared.ErrServiceUnavailable)
	}
	store := catalog.NewStore(r.service, nil, r.logger)
	if err := store.Load(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func (r *Runner) printMovies(movies []models.Movie, useJSON bool) error {
	if useJSON {
		return r.writeJSON(movies, true)
	}

	for _, movie := range movies {
		year := ""
		if movie.ReleaseYear > 0 {
			year = fmt.Sprintf(" (%d)", movie.ReleaseYear)
		}
		r.writePlain("%-10s %s%s", movie.ShowID, movie.Title, year)
		if movie.Genre != "" {
			r.writePlain("  [%s]", movie.Genre)
		}
		r.writePlain("\n")
	}
	r.writePlain("\n%d titles\n", len(movies))
	return nil
}

// CatalogList lists titles, filtered conjunctively by genre and search term.
func (r *Runner) CatalogList(ctx context.Context, cmd *cli.Command) error {
	filter := models.Filter{Genre: cmd.String("genre"), SearchQuery: cmd.String("search")}
	limit := cmd.Int("limit")
	useJSON := cmd.Bool("json")

	var movies []models.Movie

	if cmd.Bool("cached") {
		repo, closeCache, err := r.openCache()
		if err != nil {
			return err
		}
		defer closeCache()

		cached, err := repo.List()
		if err != nil {
			return err
		}
		for _, movie := range cached {
			if filter.Matches(movie) {
				movies = append(movies, movie)
			}
		}
	} else {
		store, err := r.loadedStore(ctx)
		if err != nil {
			return err
		}
		store.SetFilters(filter)
		movies, _ = store.FilteredMovies()
	}

	if limit > 0 && limit < len(movies) {
		movies = movies[:limit]
	}

	return r.printMovies(movies, useJSON)
}

// CatalogGet shows one title with its average rating.
func (r *Runner) CatalogGet(ctx context.Context, cmd *cli.Command) error {
	showID := cmd.StringArg("id")
	if showID == "" {
		return fmt.Errorf("%w: show id is required", shared.ErrMissingArgument)
	}
	if r.service == nil {
		return fmt.Errorf("%w: backend client not initialized", shared.ErrServiceUnavailable)
	}

	movie, err := r.service.Movie(ctx, showID)
	if err != nil {
		return err
	}

	average, err := r.service.AverageRating(ctx, showID)
	if err != nil {
		r.logger.Debug("average rating unavailable", "showId", showID, "error", err)
	}

	if cmd.Bool("json") {
		payload := struct {
			models.Movie
			Average *models.AverageRating `json:"averageRating,omitempty"`
		}{Movie: *movie, Average: average}
		return r.writeJSON(payload, true)
	}

	r.writePlainHeader(movie.Title)
	if movie.Type != "" {
		r.writePlain("Type: %s\n", movie.Type)
	}
	if movie.ReleaseYear > 0 {
		r.writePlain("Year: %d\n", movie.ReleaseYear)
	}
	if movie.Director != "" {
		r.writePlain("Director: %s\n", movie.Director)
	}
	if cast := movie.CastMembers(); len(cast) > 0 {
		r.writePlain("Cast: %s\n", strings.Join(cast, ", "))
	}
	if genres := movie.Genres(); len(genres) > 0 {
		r.writePlain("Genres: %s\n", strings.Join(genres, ", "))
	}
	if movie.Rating != "" {
		r.writePlain("Rated: %s\n", movie.Rating)
	}
	if movie.Duration != "" {
		r.writePlain("Duration: %s\n", movie.Duration)
	}
	if average != nil {
		r.writePlain("Average rating: %.1f/5\n", average.Average)
	}
	if movie.Description != "" {
		r.writePlain("\n%s\n", movie.Description)
	}
	return nil
}

// CatalogSearch searches titles by substring over title, director, and cast.
func (r *Runner) CatalogSearch(ctx context.Context, cmd *cli.Command) error {
	term := cmd.StringArg("term")
	if term == "" {
		return fmt.Errorf("%w: search term is required", shared.ErrMissingArgument)
	}

	if cmd.Bool("cached") {
		repo, closeCache, err := r.openCache()
		if err != nil {
			return err
		}
		defer closeCache()

		movies, err := repo.Search(term)
		if err != nil {
			return err
		}
		return r.printMovies(movies, cmd.Bool("json"))
	}

	store, err := r.loadedStore(ctx)
	if err != nil {
		return err
	}
	store.SetFilters(models.Filter{SearchQuery: term})
	movies, _ := store.FilteredMovies()
	return r.printMovies(movies, cmd.Bool("json"))
}

// CatalogGenres lists the distinct genre tags in the catalog.
func (r *Runner) CatalogGenres(ctx context.Context, cmd *cli.Command) error {
	store, err := r.loadedStore(ctx)
	if err != nil {
		return err
	}

	genres := store.Genres()
	sort.Strings(genres)
	for _, genre := range genres {
		r.writePlain("%s\n", genre)
	}
	return nil
}

// CatalogRecent lists the newest releases, ties in catalog order.
func (r *Runner) CatalogRecent(ctx context.Context, cmd *cli.Command) error {
	store, err := r.loadedStore(ctx)
	if err != nil {
		return err
	}

	movies := store.RecentReleases()
	if limit := cmd.Int("limit"); limit > 0 && limit < len(movies) {
		movies = movies[:limit]
	}
	return r.printMovies(movies, cmd.Bool("json"))
}

// Rate submits a star rating for a title.
func (r *Runner) Rate(ctx context.Context, cmd *cli.Command) error {
	showID := cmd.StringArg("id")
	stars := cmd.Int("stars")
	userID := cmd.Int("user")

	if showID == "" {
		return fmt.Errorf("%w: show id is required", shared.ErrMissingArgument)
	}
	if stars < 1 || stars > 5 {
		return fmt.Errorf("%w: stars must be between 1 and 5", shared.ErrInvalidArgument)
	}
	if userID == 0 {
		userID = r.config.API.UserID
	}
	if r.service == nil {
		return fmt.Errorf("%w: backend client not initialized", shared.ErrServiceUnavailable)
	}

	accepted, err := r.service.SubmitRating(ctx, models.RatingSubmission{
		UserID: userID,
		ShowID: showID,
		Rating: stars,
	})
	if err != nil {
		return err
	}
	if !accepted {
		return r.writePlain("✗ Rating was rejected\n")
	}

	return r.writePlain("✓ Rated %s %d/5\n", showID, stars)
}

// RecsMovie prints titles recommended alongside the given title, falling
// back to genre overlap when the recommender has nothing.
func (r *Runner) RecsMovie(ctx context.Context, cmd *cli.Command) error {
	showID := cmd.StringArg("id")
	if showID == "" {
		return fmt.Errorf("%w: show id is required", shared.ErrMissingArgument)
	}

	store, err := r.loadedStore(ctx)
	if err != nil {
		return err
	}

	resolver := recs.NewResolver(r.service, store, nil, r.logger)
	movies := resolver.ByMovie(ctx, showID)
	if len(movies) == 0 {
		movies = resolver.SimilarByGenre(showID)
	}

	return r.printMovies(movies, cmd.Bool("json"))
}

// RecsUser prints titles recommended for a user. Defaults to the configured
// user when no id argument is given.
func (r *Runner) RecsUser(ctx context.Context, cmd *cli.Command) error {
	userID := r.config.API.UserID
	if arg := cmd.StringArg("id"); arg != "" {
		parsed := 0
		if _, err := fmt.Sscanf(arg, "%d", &parsed); err != nil {
			return fmt.Errorf("%w: user id must be a number", shared.ErrInvalidArgument)
		}
		userID = parsed
	}

	store, err := r.loadedStore(ctx)
	if err != nil {
		return err
	}

	resolver := recs.NewResolver(r.service, store, nil, r.logger)
	return r.printMovies(resolver.ByUser(ctx, userID), cmd.Bool("json"))
}
