package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/rs/zerolog"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
)

const uniqueViolation = "23505"

const resumeColumns = `id, user_id, name, slug, tags, data, is_public, is_locked, password_hash,
	views, downloads, last_viewed_at, last_downloaded_at, created_at, updated_at`

// PostgresRepo stores resumes in postgres with the document body as JSONB.
type PostgresRepo struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

func NewPostgresRepo(pool *pgxpool.Pool, log zerolog.Logger) *PostgresRepo {
	return &PostgresRepo{pool: pool, log: log.With().Str("component", "resumes_repo").Logger()}
}

func (r *PostgresRepo) EnsureUser(ctx context.Context, u domain.User) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO users (id, username, name) VALUES ($1,$2,$3)
		ON CONFLICT DO NOTHING`, u.ID, u.Username, u.Name)
	return err
}

func (r *PostgresRepo) Create(ctx context.Context, res *domain.Resume) error {
	dataB, err := json.Marshal(res.Data)
	if err != nil {
		return fmt.Errorf("encode resume data: %w", err)
	}
	now := time.Now().UTC()
	res.CreatedAt, res.UpdatedAt = now, now

	_, err = r.pool.Exec(ctx, `INSERT INTO resumes (id, user_id, name, slug, tags, data, is_public, is_locked, password_hash, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		res.ID, res.UserID, res.Name, res.Slug, nonNil(res.Tags), dataB, res.IsPublic, res.IsLocked, res.PasswordHash, now, now)
	if err := mapWriteErr(err); err != nil {
		return err
	}
	r.log.Debug().Str("resume_id", res.ID.String()).Str("slug", res.Slug).Msg("resume created")
	return nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Resume, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+resumeColumns+` FROM resumes WHERE id = $1`, id)
	return scanResume(row)
}

func (r *PostgresRepo) GetBySlug(ctx context.Context, username, slug string) (*domain.Resume, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+prefixed("r", resumeColumns)+` FROM resumes r
		JOIN users u ON u.id = r.user_id
		WHERE u.username = $1 AND r.slug = $2`, username, slug)
	return scanResume(row)
}

func (r *PostgresRepo) List(ctx context.Context, userID uuid.UUID, f domain.ListFilter) ([]*domain.Resume, error) {
	order := "updated_at DESC"
	switch f.Sort {
	case domain.SortCreated:
		order = "created_at DESC"
	case domain.SortName:
		order = "lower(name) ASC"
	}

	rows, err := r.pool.Query(ctx, `SELECT `+resumeColumns+` FROM resumes
		WHERE user_id = $1 AND tags @> $2::text[]
		ORDER BY `+order, userID, nonNil(f.Tags))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Resume{}
	for rows.Next() {
		res, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Update(ctx context.Context, userID, id uuid.UUID, p domain.Patch) (*domain.Resume, error) {
	sets := []string{}
	args := []interface{}{id, userID}
	add := func(col string, v interface{}) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.Slug != nil {
		add("slug", *p.Slug)
	}
	if p.Tags != nil {
		add("tags", nonNil(*p.Tags))
	}
	if p.Data != nil {
		b, err := json.Marshal(p.Data)
		if err != nil {
			return nil, fmt.Errorf("encode resume data: %w", err)
		}
		add("data", b)
	}
	if p.IsPublic != nil {
		add("is_public", *p.IsPublic)
	}
	add("updated_at", time.Now().UTC())

	row := r.pool.QueryRow(ctx, `UPDATE resumes SET `+strings.Join(sets, ", ")+`
		WHERE id = $1 AND user_id = $2 AND is_locked = false
		RETURNING `+resumeColumns, args...)
	res, err := scanResume(row)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, r.missReason(ctx, userID, id)
	}
	if err != nil {
		return nil, mapWriteErr(err)
	}
	return res, nil
}

// missReason tells a locked document apart from a missing one after a
// guarded write matched no row.
func (r *PostgresRepo) missReason(ctx context.Context, userID, id uuid.UUID) error {
	var locked bool
	err := r.pool.QueryRow(ctx, `SELECT is_locked FROM resumes WHERE id = $1 AND user_id = $2`, id, userID).Scan(&locked)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return err
	}
	if locked {
		return domain.ErrLocked
	}
	return domain.ErrNotFound
}

func (r *PostgresRepo) SetLocked(ctx context.Context, userID, id uuid.UUID, locked bool) (*domain.Resume, error) {
	row := r.pool.QueryRow(ctx, `UPDATE resumes SET is_locked = $3, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING `+resumeColumns, id, userID, locked)
	return scanResume(row)
}

func (r *PostgresRepo) SetPassword(ctx context.Context, userID, id uuid.UUID, hash string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE resumes SET password_hash = $3, updated_at = now()
		WHERE id = $1 AND user_id = $2`, id, userID, hash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1 AND user_id = $2 AND is_locked = false`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return r.missReason(ctx, userID, id)
	}
	r.log.Info().Str("resume_id", id.String()).Msg("resume deleted")
	return nil
}

func (r *PostgresRepo) Tags(ctx context.Context, userID uuid.UUID) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT unnest(tags) AS tag FROM resumes WHERE user_id = $1 ORDER BY tag`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []string{}
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) IncrementStatistics(ctx context.Context, id uuid.UUID, views, downloads int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE resumes SET
			views = views + $2,
			downloads = downloads + $3,
			last_viewed_at = CASE WHEN $2 > 0 THEN now() ELSE last_viewed_at END,
			last_downloaded_at = CASE WHEN $3 > 0 THEN now() ELSE last_downloaded_at END
		WHERE id = $1`, id, views, downloads)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanResume(row pgx.Row) (*domain.Resume, error) {
	var (
		res   domain.Resume
		dataB []byte
	)
	err := row.Scan(&res.ID, &res.UserID, &res.Name, &res.Slug, &res.Tags, &dataB, &res.IsPublic, &res.IsLocked,
		&res.PasswordHash, &res.Views, &res.Downloads, &res.LastViewedAt, &res.LastDownloadedAt, &res.CreatedAt, &res.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	data, err := model.Parse(dataB)
	if err != nil {
		return nil, err
	}
	res.Data = data
	if res.Tags == nil {
		res.Tags = []string{}
	}
	return &res, nil
}

func mapWriteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.ErrSlugExists
	}
	return err
}

func prefixed(alias, cols string) string {
	parts := strings.Split(cols, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
