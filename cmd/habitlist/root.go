package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "habitlist",
		Short:         "Render habit lists and manage a habits database",
		Long:          "habitlist projects YAML habit snapshots into the ordered habit list and imports them into the SQLite database used by the MCP server.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolP("verbose", "v", false, "log debug output to stderr")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newImportCmd())
	root.AddCommand(newKeyCmd())
	return root
}

// commandLogger logs to stderr when --verbose is set and discards otherwise.
func commandLogger(cmd *cobra.Command) *slog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
}
