package product

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id   BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		name TEXT NOT NULL
	)`,
}

// Migrate creates the products table when it does not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		for i, stmt := range schema {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("migration %d: %w", i+1, err)
			}
		}
		return nil
	})
}
