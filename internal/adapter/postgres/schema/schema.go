// Package schema creates the tables the repositories read and write.
package schema

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gitlab.com/codearena.net/internal/core/ports/primary"
)

//go:embed schema.sql
var ddl string

// DDL returns the schema statements.
func DDL() string {
	return ddl
}

// Migrate applies the schema inside searchPath. Every statement is idempotent.
func Migrate(ctx context.Context, db *sqlx.DB, searchPath string, logger primary.Logger) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if searchPath != "" {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %q", searchPath)); err != nil {
			return fmt.Errorf("failed to create schema %s: %w", searchPath, err)
		}
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("SET LOCAL search_path TO %q", searchPath)); err != nil {
			return fmt.Errorf("failed to set search_path: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration: %w", err)
	}
	logger.Info("Schema migrated", "schema", searchPath)
	return nil
}
