package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sort"

	"easyrent-backend/internal/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations applies every embedded SQL file in lexical order. The files
// are written to be idempotent so this runs on every start.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	for _, name := range files {
		logger.Info("Applying migration", "file", name)
		sqlBytes, err := migrationsFS.ReadFile("migrations/" + name)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		if _, err := db.ExecContext(ctx, string(sqlBytes)); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", name, err)
		}
	}

	return nil
}
