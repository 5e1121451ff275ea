package persistence

import (
	"context"
	"embed"
	"fmt"
	"sort"

	"github.com/jmoiron/sqlx"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Migrate applies the embedded schema files in lexical order. Statements are
// written to be idempotent, so re-running on startup is safe.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	entries, err := migrationFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("migrations read dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		raw, err := migrationFS.ReadFile("migrations/" + name)
		if err != nil {
			return fmt.Errorf("migration %s read: %w", name, err)
		}

		if _, err := db.ExecContext(ctx, string(raw)); err != nil {
			return fmt.Errorf("migration %s apply: %w", name, err)
		}
	}

	return nil
}
