package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"link1t-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
)

// Constraint names created by the migrations
const (
	constraintSlug   = "portfolios_slug_key"
	constraintUserID = "portfolios_user_id_key"
)

type portfolioRepo struct {
	db *pgxpool.Pool
}

func NewPortfolioRepository(db *pgxpool.Pool) domain.PortfolioRepository {
	return &portfolioRepo{db: db}
}

const selectPortfolio = `SELECT slug, user_id, data, created_at, updated_at FROM portfolios`

func (r *portfolioRepo) GetByUserID(ctx context.Context, userID string) (*domain.PortfolioRecord, error) {
	return r.getOne(ctx, selectPortfolio+` WHERE user_id = $1`, userID)
}

func (r *portfolioRepo) GetBySlug(ctx context.Context, slug string) (*domain.PortfolioRecord, error) {
	return r.getOne(ctx, selectPortfolio+` WHERE slug = $1`, slug)
}

func (r *portfolioRepo) getOne(ctx context.Context, query string, arg string) (*domain.PortfolioRecord, error) {
	var (
		rec  domain.PortfolioRecord
		data []byte
	)
	err := r.db.QueryRow(ctx, query, arg).Scan(&rec.Slug, &rec.UserID, &data, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(data, &rec.Data); err != nil {
		return nil, fmt.Errorf("decode portfolio data for %q: %w", rec.Slug, err)
	}
	return &rec, nil
}

func (r *portfolioRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM portfolios WHERE slug = $1)`, slug).Scan(&exists)
	return exists, err
}

func (r *portfolioRepo) SlugsTaken(ctx context.Context, slugs []string) (map[string]bool, error) {
	taken := make(map[string]bool, len(slugs))
	if len(slugs) == 0 {
		return taken, nil
	}

	rows, err := r.db.Query(ctx, `SELECT slug FROM portfolios WHERE slug = ANY($1::text[])`, pq.Array(slugs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, err
		}
		taken[slug] = true
	}
	return taken, rows.Err()
}

func (r *portfolioRepo) Create(ctx context.Context, rec *domain.PortfolioRecord) error {
	data, err := json.Marshal(rec.Data)
	if err != nil {
		return err
	}

	query := `INSERT INTO portfolios (slug, user_id, data, created_at, updated_at)
              VALUES ($1, $2, $3::jsonb, $4, $5)`
	_, err = r.db.Exec(ctx, query, rec.Slug, rec.UserID, string(data), rec.CreatedAt, rec.UpdatedAt)
	return mapWriteError(err)
}

func (r *portfolioRepo) Update(ctx context.Context, rec *domain.PortfolioRecord) error {
	data, err := json.Marshal(rec.Data)
	if err != nil {
		return err
	}

	query := `UPDATE portfolios SET slug = $2, data = $3::jsonb, updated_at = $4 WHERE user_id = $1`
	tag, err := r.db.Exec(ctx, query, rec.UserID, rec.Slug, string(data), rec.UpdatedAt)
	if err != nil {
		return mapWriteError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *portfolioRepo) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM portfolios WHERE user_id = $1`, userID)
	return err
}

func (r *portfolioRepo) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return r.db.Ping(ctx)
}

// mapWriteError turns unique violations into domain sentinels
func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		switch pgErr.ConstraintName {
		case constraintUserID:
			return domain.ErrAlreadyOwned
		default:
			return domain.ErrSlugTaken
		}
	}
	return err
}
