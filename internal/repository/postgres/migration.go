package postgres

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migration is one idempotent schema step run at startup
type Migration struct {
	Name string
	SQL  string
}

var migrations = []Migration{
	{
		Name: "create_portfolios",
		SQL: `
			CREATE TABLE IF NOT EXISTS portfolios (
				slug        TEXT        NOT NULL,
				user_id     TEXT        NOT NULL,
				data        JSONB       NOT NULL DEFAULT '{}'::jsonb,
				created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
				CONSTRAINT ` + constraintSlug + ` UNIQUE (slug),
				CONSTRAINT ` + constraintUserID + ` UNIQUE (user_id)
			);
		`,
	},
	{
		Name: "add_slug_lower_index",
		SQL:  `CREATE INDEX IF NOT EXISTS portfolios_slug_lower_idx ON portfolios (lower(slug));`,
	},
}

// RunMigrations executes all schema migrations on startup
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	slog.Info("Starting database migrations")

	for _, m := range migrations {
		if _, err := pool.Exec(ctx, m.SQL); err != nil {
			slog.Error("Migration failed", "name", m.Name, "error", err)
			return err
		}
		slog.Info("Migration completed", "name", m.Name)
	}

	slog.Info("All migrations completed successfully")
	return nil
}
