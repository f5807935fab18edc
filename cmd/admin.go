package main

import (
	"context"
	"fmt"

	"github.com/cineniche/cinectl/internal/models"
	"github.com/cineniche/cinectl/internal/shared"
	"github.com/cineniche/cinectl/internal/tasks"
	"github.com/urfave/cli/v3"
)

// movieFromFlags builds a movie from the admin flag set, starting from base
// so update only touches provided fields.
func movieFromFlags(cmd *cli.Command, base models.Movie) models.Movie {
	movie := base
	if cmd.IsSet("title") {
		movie.Title = cmd.String("title")
	}
	if cmd.IsSet("type") {
		movie.Type = cmd.String("type")
	}
	if cmd.IsSet("director") {
		movie.Director = cmd.String("director")
	}
	if cmd.IsSet("cast") {
		movie.Cast = cmd.String("cast")
	}
	if cmd.IsSet("country") {
		movie.Country = cmd.String("country")
	}
	if cmd.IsSet("year") {
		movie.ReleaseYear = cmd.Int("year")
	}
	if cmd.IsSet("rating") {
		movie.Rating = cmd.String("rating")
	}
	if cmd.IsSet("duration") {
		movie.Duration = cmd.String("duration")
	}
	if cmd.IsSet("description") {
		movie.Description = cmd.String("description")
	}
	if cmd.IsSet("genre") {
		movie.Genre = cmd.String("genre")
	}
	return movie
}

// AdminAdd creates a title on the backend.
func (r *Runner) AdminAdd(ctx context.Context, cmd *cli.Command) error {
	if r.service == nil {
		return fmt.Errorf("%w: backend client not initialized", shared.ErrServiceUnavailable)
	}

	movie := movieFromFlags(cmd, models.Movie{})
	if movie.Title == "" {
		return fmt.Errorf("%w: --title is required", shared.ErrMissingArgument)
	}

	created, err := r.service.CreateMovie(ctx, movie)
	if err != nil {
		return err
	}

	r.logger.Info("movie created", "showId", created.ShowID, "title", created.Title)
	return r.writePlain("✓ Added %q (%s)\n", created.Title, created.ShowID)
}

// AdminUpdate updates a title; only the provided flags change, the rest keep
// their current backend values.
func (r *Runner) AdminUpdate(ctx context.Context, cmd *cli.Command) error {
	showID := cmd.StringArg("id")
	if showID == "" {
		return fmt.Errorf("%w: show id is required", shared.ErrMissingArgument)
	}
	if r.service == nil {
		return fmt.Errorf("%w: backend client not initialized", shared.ErrServiceUnavailable)
	}

	current, err := r.service.Movie(ctx, showID)
	if err != nil {
		return err
	}

	movie := movieFromFlags(cmd, *current)
	movie.ShowID = showID

	updated, err := r.service.UpdateMovie(ctx, showID, movie)
	if err != nil {
		return err
	}

	r.logger.Info("movie updated", "showId", showID)
	return r.writePlain("✓ Updated %q (%s)\n", updated.Title, showID)
}

// AdminDelete deletes a title from the catalog.
func (r *Runner) AdminDelete(ctx context.Context, cmd *cli.Command) error {
	showID := cmd.StringArg("id")
	if showID == "" {
		return fmt.Errorf("%w: show id is required", shared.ErrMissingArgument)
	}
	if r.service == nil {
		return fmt.Errorf("%w: backend client not initialized", shared.ErrServiceUnavailable)
	}

	if err := r.service.DeleteMovie(ctx, showID); err != nil {
		return err
	}

	r.logger.Info("movie deleted", "showId", showID)
	return r.writePlain("✓ Deleted %s\n", showID)
}

// AdminExport exports per-genre listings with a worker pool, draining
// progress updates to the log.
func (r *Runner) AdminExport(ctx context.Context, cmd *cli.Command) error {
	if r.engine == nil {
		return fmt.Errorf("%w: catalog engine not initialized", shared.ErrServiceUnavailable)
	}

	opts := tasks.BulkExportOpts{
		Format:     cmd.String("format"),
		OutputDir:  cmd.String("output"),
		NumWorkers: cmd.Int("workers"),
		RateLimit:  cmd.Float64("rate-limit"),
	}

	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.logger.Info(update.Message, "phase", update.Phase.String())
		}
	}()

	result, err := r.engine.BulkExport(ctx, progress, cmd.StringSlice("genre"), opts)
	close(progress)
	<-done
	if err != nil {
		return err
	}

	r.writePlainHeader("Export Complete")
	r.writePlain("Listings: %d\n", result.TotalListings)
	r.writePlain("Succeeded: %d\n", result.SuccessCount)
	r.writePlain("Failed: %d\n", result.FailedCount)
	r.writePlain("Output: %s\n", result.OutputDirectory)

	for _, listing := range result.Results {
		if !listing.Success {
			r.writePlain("  ✗ %s: %v\n", listing.Genre, listing.Error)
		}
	}
	return nil
}
