package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/habitxp/habits-mcp/internal/sqlite"
)

func newKeyCmd() *cobra.Command {
	key := &cobra.Command{
		Use:   "key",
		Short: "Manage API keys for the HTTP transport",
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Create an API key for a user and print it once",
		Args:  cobra.NoArgs,
		RunE:  runKeyAdd,
	}
	addDBFlags(add)
	add.Flags().String("description", "", "note stored next to the key")

	key.AddCommand(add)
	return key
}

func runKeyAdd(cmd *cobra.Command, _ []string) error {
	userID, _ := cmd.Flags().GetString("user")
	description, _ := cmd.Flags().GetString("description")

	db, err := openDB(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	token := uuid.NewString()
	if err := sqlite.NewAPIKeyRepository(db).Create(cmd.Context(), userID, token, description); err != nil {
		return fmt.Errorf("creating key: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

func addDBFlags(cmd *cobra.Command) {
	cmd.Flags().String("db", "habits.db", "SQLite database path")
	cmd.Flags().String("user", "default", "user the data belongs to")
}

// openDB opens the database named by --db and brings its schema up to date.
func openDB(cmd *cobra.Command) (*sqlite.DB, error) {
	path, _ := cmd.Flags().GetString("db")
	if dir := filepath.Dir(path); path != ":memory:" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database dir: %w", err)
		}
	}
	db, err := sqlite.New(path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}
	return db, nil
}
