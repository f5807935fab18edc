package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cineniche/cinectl/internal/shared"
	"github.com/cineniche/cinectl/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Sync fetches the full catalog and replaces the local cache with it.
func (r *Runner) Sync(ctx context.Context, cmd *cli.Command) error {
	if r.service == nil {
		return fmt.Errorf("%w: backend client not initialized", shared.ErrServiceUnavailable)
	}

	repo, closeCache, err := r.openCache()
	if err != nil {
		return err
	}
	defer closeCache()

	engine := tasks.NewCatalogEngine(r.service, repo)

	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.logger.Info(update.Message, "phase", update.Phase.String())
		}
	}()

	result, err := engine.Sync(ctx, progress)
	close(progress)
	<-done
	if err != nil {
		return err
	}

	return r.writePlain("✓ Synced %d titles into %s\n", result.Cached, r.config.Database.Path)
}

// Dump prints session and catalog state as JSON for debugging.
func (r *Runner) Dump(ctx context.Context, cmd *cli.Command) error {
	if r.engine == nil {
		return fmt.Errorf("%w: catalog engine not initialized", shared.ErrServiceUnavailable)
	}

	result, err := r.engine.Dump(ctx, nil)
	if err != nil {
		return err
	}

	data := result.Data()
	pretty := cmd.Bool("pretty")

	if savePath := cmd.String("save"); savePath != "" {
		payload, err := shared.MarshalJSON(data, pretty)
		if err != nil {
			return fmt.Errorf("failed to marshal dump: %w", err)
		}
		if err := os.WriteFile(savePath, payload, 0644); err != nil {
			return fmt.Errorf("failed to save dump: %w", err)
		}
		r.logger.Info("dump saved", "path", savePath)
	}

	return r.writeJSON(data, pretty)
}
