package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrate creates the projects and images tables if they do not exist.
// Safe to run on every startup; both statements are idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	const projectsTable = `
CREATE TABLE IF NOT EXISTS projects (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    name TEXT NOT NULL,
    cards JSONB NOT NULL,
    export_name TEXT,
    last_modified TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
);`

	const imagesTable = `
CREATE TABLE IF NOT EXISTS images (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    data TEXT NOT NULL,
    content_type TEXT NOT NULL,
    file_name TEXT,
    created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
);`

	if _, err := db.ExecContext(ctx, projectsTable); err != nil {
		return fmt.Errorf("create projects table: %w", err)
	}

	if _, err := db.ExecContext(ctx, imagesTable); err != nil {
		return fmt.Errorf("create images table: %w", err)
	}

	return nil
}
