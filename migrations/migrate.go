package migrations

import (
	"context"
	"embed"
	"path"
	"sort"
	"strings"

	"github.com/Abraxas-365/jobboard/pkg/logx"
	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed sql/*.sql
var files embed.FS

const createVersionTable = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version    TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`

// Apply runs every embedded migration that is not yet recorded, each in its own transaction
func Apply(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, createVersionTable); err != nil {
		return errors.Wrap(err, "create schema_migrations")
	}

	entries, err := files.ReadDir("sql")
	if err != nil {
		return errors.Wrap(err, "read migrations")
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	applied := 0
	for _, name := range names {
		version := strings.SplitN(name, "_", 2)[0]

		var exists bool
		if err := db.GetContext(ctx, &exists,
			`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, version); err != nil {
			return errors.Wrapf(err, "check %s", name)
		}
		if exists {
			continue
		}

		body, err := files.ReadFile(path.Join("sql", name))
		if err != nil {
			return errors.Wrapf(err, "read %s", name)
		}

		logx.Info("Applying migration", zap.String("migration", name))

		tx, err := db.BeginTxx(ctx, nil)
		if err != nil {
			return errors.Wrapf(err, "begin tx for %s", name)
		}
		if _, err := tx.ExecContext(ctx, string(body)); err != nil {
			_ = tx.Rollback()
			return errors.Wrapf(err, "execute %s", name)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
			_ = tx.Rollback()
			return errors.Wrapf(err, "record %s", name)
		}
		if err := tx.Commit(); err != nil {
			return errors.Wrapf(err, "commit %s", name)
		}
		applied++
	}

	logx.Info("Migrations complete", zap.Int("applied", applied), zap.Int("total", len(names)))
	return nil
}
