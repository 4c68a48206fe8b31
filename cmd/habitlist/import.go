package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/habitxp/habits-mcp/internal/domain/habit"
	"github.com/habitxp/habits-mcp/internal/domain/space"
	"github.com/habitxp/habits-mcp/internal/snapshot"
	"github.com/habitxp/habits-mcp/internal/sqlite"
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <snapshot.yaml>",
		Short: "Load the spaces and habits of a snapshot into the database",
		Long:  "import creates every space and habit of a snapshot for one user. Completion state is not imported; it is derived from completions recorded later.",
		Args:  cobra.ExactArgs(1),
		RunE:  runImport,
	}
	addDBFlags(cmd)
	return cmd
}

// importResult counts what an import wrote.
type importResult struct {
	Spaces  int
	Habits  int
	Skipped int
}

func runImport(cmd *cobra.Command, args []string) error {
	snap, err := snapshot.LoadFile(args[0])
	if err != nil {
		return err
	}
	userID, _ := cmd.Flags().GetString("user")

	db, err := openDB(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	logger := commandLogger(cmd)
	res, err := importSnapshot(cmd.Context(), db, userID, snap, logger)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d spaces and %d habits for %s", res.Spaces, res.Habits, userID)
	if res.Skipped > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), " (%d habits skipped: unknown space)", res.Skipped)
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return nil
}

// importSnapshot writes a snapshot through the domain services so imported
// data passes the same validation as data created over MCP.
func importSnapshot(ctx context.Context, db *sqlite.DB, userID string, snap *snapshot.Snapshot, logger *slog.Logger) (importResult, error) {
	habitRepo := sqlite.NewHabitRepository(db)
	spaceRepo := sqlite.NewSpaceRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)

	spaces := space.NewService(spaceRepo, habitRepo, activityRepo, nil, logger)
	habits := habit.NewService(habitRepo, sqlite.NewCompletionRepository(db), spaceRepo, activityRepo, nil, logger)

	var res importResult
	for _, sp := range snap.Spaces {
		if _, err := spaces.Create(ctx, userID, space.CreateRequest{ID: sp.ID, Name: sp.Name, ColorKey: sp.ColorKey}); err != nil {
			return res, fmt.Errorf("space %q: %w", sp.ID, err)
		}
		res.Spaces++
	}
	for _, h := range snap.Habits {
		_, err := habits.Create(ctx, userID, habit.CreateRequest{
			ID:        h.ID,
			Title:     h.Title,
			Duration:  h.Duration,
			Frequency: h.Frequency,
			Times:     h.Times,
			SpaceID:   h.SpaceID,
			Deadline:  h.Deadline,
		})
		if errors.Is(err, habit.ErrSpaceNotFound) {
			logger.Warn("skipping habit without space", "habit_id", h.ID, "space_id", h.SpaceID)
			res.Skipped++
			continue
		}
		if err != nil {
			return res, fmt.Errorf("habit %q: %w", h.ID, err)
		}
		res.Habits++
	}
	return res, nil
}
