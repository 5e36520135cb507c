package app

import (
	"context"
	"fmt"

	"github.com/vk/boardforge/internal/builder"
	"github.com/vk/boardforge/internal/config"
	"github.com/vk/boardforge/internal/ctxlog"
	"github.com/vk/boardforge/internal/render"
)

// Run executes the main application logic: load the board definition,
// replay it through a builder session, finalize, and render the snapshot.
// A rejected build surfaces the aggregate validation error unchanged so the
// caller can print every defect.
func (a *App) Run(ctx context.Context, loader config.Loader) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	model, err := loader.Load(ctx, a.config.BoardPath)
	if err != nil {
		return fmt.Errorf("failed to load board definition: %w", err)
	}
	a.logger.Debug("Board definition loaded and translated into unified model.")

	b, err := builder.FromModel(ctx, model)
	if err != nil {
		return fmt.Errorf("failed to start builder session: %w", err)
	}
	a.logger.Debug("Builder session replayed from model.")

	snap, err := b.Build()
	if err != nil {
		return err
	}
	a.logger.Info("Board finalized.",
		"projects", len(snap.Projects), "columns", len(snap.Columns), "tasks", len(snap.Tasks))

	switch a.config.Output {
	case "json":
		out, err := render.JSON(snap)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.outW, string(out))
	default:
		fmt.Fprint(a.outW, render.Text(snap))
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
