package migration

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/rs/zerolog"
)

// Migration is one idempotent schema step.
type Migration struct {
	Name string
	SQL  string
}

// Migrations lists the schema steps in the order they run.
func Migrations() []Migration {
	return []Migration{
		{
			Name: "create_users",
			SQL: `CREATE TABLE IF NOT EXISTS users (
				id UUID PRIMARY KEY,
				username TEXT NOT NULL UNIQUE,
				name TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)`,
		},
		{
			Name: "create_resumes",
			SQL: `CREATE TABLE IF NOT EXISTS resumes (
				id UUID PRIMARY KEY,
				user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				name TEXT NOT NULL,
				slug TEXT NOT NULL,
				tags TEXT[] NOT NULL DEFAULT '{}',
				data JSONB NOT NULL DEFAULT '{}'::jsonb,
				is_public BOOLEAN NOT NULL DEFAULT false,
				is_locked BOOLEAN NOT NULL DEFAULT false,
				password_hash TEXT NOT NULL DEFAULT '',
				views BIGINT NOT NULL DEFAULT 0,
				downloads BIGINT NOT NULL DEFAULT 0,
				last_viewed_at TIMESTAMPTZ,
				last_downloaded_at TIMESTAMPTZ,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)`,
		},
		{
			Name: "resumes_user_slug_unique",
			SQL:  `CREATE UNIQUE INDEX IF NOT EXISTS resumes_user_slug_idx ON resumes (user_id, slug)`,
		},
		{
			Name: "resumes_tags_gin",
			SQL:  `CREATE INDEX IF NOT EXISTS resumes_tags_idx ON resumes USING GIN (tags)`,
		},
	}
}

// RunMigrations executes all migrations on startup.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger) error {
	log.Info().Msg("Starting database migrations")

	for _, m := range Migrations() {
		if _, err := pool.Exec(ctx, m.SQL); err != nil {
			log.Error().Err(err).Str("name", m.Name).Msg("Migration failed")
			return err
		}
		log.Info().Str("name", m.Name).Msg("Migration completed")
	}

	log.Info().Msg("All migrations completed successfully")
	return nil
}
