package store

import (
	"context"
	"fmt"
)

// migration is one schema step. Revision is fixed when the step is written
// and never derived from its position in the registry.
type migration struct {
	revision   int
	name       string
	statements []string
}

var migrations = []migration{
	{
		revision: 1,
		name:     "create repo_info",
		statements: []string{
			`CREATE TABLE IF NOT EXISTS repo_info (
				id INTEGER PRIMARY KEY CHECK (id = 1),
				remote TEXT
			)`,
		},
	},
	{
		revision: 2,
		name:     "create branches",
		statements: []string{
			`CREATE TABLE IF NOT EXISTS branches (
				name TEXT PRIMARY KEY,
				parent TEXT
			)`,
		},
	},
	{
		revision: 3,
		name:     "add branches.submitted",
		statements: []string{
			`ALTER TABLE branches ADD COLUMN submitted BOOLEAN NOT NULL DEFAULT FALSE`,
		},
	},
	{
		revision: 4,
		name:     "index branches by parent",
		statements: []string{
			`CREATE INDEX IF NOT EXISTS branches_parent_idx ON branches (parent)`,
		},
	},
}

// validateMigrations checks that the registry is strictly increasing
func validateMigrations(registry []migration) error {
	last := 0
	for _, m := range registry {
		if m.revision <= last {
			return fmt.Errorf("migration %q has revision %d, which does not follow revision %d", m.name, m.revision, last)
		}
		last = m.revision
	}
	return nil
}

// LatestRevision is the schema revision a fully migrated database reports
func LatestRevision() int {
	if len(migrations) == 0 {
		return 0
	}
	return migrations[len(migrations)-1].revision
}

// ApplyMigrations brings the schema up to date. Each step and its revision
// bump commit together; running it again once current changes nothing.
func (s *Store) ApplyMigrations(ctx context.Context) error {
	return s.applyMigrations(ctx, migrations)
}

func (s *Store) applyMigrations(ctx context.Context, registry []migration) error {
	if err := validateMigrations(registry); err != nil {
		return err
	}

	bootstrap := []string{
		`CREATE TABLE IF NOT EXISTS migration (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			current_revision INTEGER NOT NULL
		)`,
		`INSERT OR IGNORE INTO migration (id, current_revision) VALUES (1, 0)`,
	}
	for _, stmt := range bootstrap {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to bootstrap migration table: %w", err)
		}
	}

	current, err := s.schemaRevision(ctx)
	if err != nil {
		return err
	}

	for _, m := range registry {
		if m.revision <= current {
			continue
		}
		if err := s.applyMigration(ctx, m); err != nil {
			return err
		}
		current = m.revision
	}
	return nil
}

func (s *Store) applyMigration(ctx context.Context, m migration) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration %d: %w", m.revision, err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range m.statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.revision, m.name, err)
		}
	}
	if _, err := tx.ExecContext(ctx, `UPDATE migration SET current_revision = ? WHERE id = 1`, m.revision); err != nil {
		return fmt.Errorf("failed to record migration %d: %w", m.revision, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", m.revision, err)
	}
	return nil
}

// SchemaRevision returns the recorded schema revision
func (s *Store) SchemaRevision(ctx context.Context) (int, error) {
	return s.schemaRevision(ctx)
}

func (s *Store) schemaRevision(ctx context.Context) (int, error) {
	var revision int
	err := s.db.QueryRowContext(ctx, `SELECT current_revision FROM migration WHERE id = 1`).Scan(&revision)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema revision: %w", err)
	}
	return revision, nil
}
