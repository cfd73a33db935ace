package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/gis-site-service/internal/domain"
)

// SocialLinkRepository manages social link persistence.
type SocialLinkRepository interface {
	Create(ctx context.Context, link *domain.SocialLink) error
	Update(ctx context.Context, link *domain.SocialLink) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.SocialLink, error)
	List(ctx context.Context, activeOnly bool) ([]domain.SocialLink, error)
}

type socialLinkRepository struct {
	pool DB
}

// NewSocialLinkRepository builds the repository.
func NewSocialLinkRepository(pool DB) SocialLinkRepository {
	return &socialLinkRepository{pool: pool}
}

const socialColumns = `id, platform, url, icon, display_order, is_active, created_at, updated_at`

func (r *socialLinkRepository) Create(ctx context.Context, link *domain.SocialLink) error {
	const query = `
        INSERT INTO social_links (platform, url, icon, display_order, is_active)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		link.Platform,
		link.URL,
		link.Icon,
		link.DisplayOrder,
		link.IsActive,
	).Scan(&link.ID, &link.CreatedAt, &link.UpdatedAt)
}

func (r *socialLinkRepository) Update(ctx context.Context, link *domain.SocialLink) error {
	const query = `
        UPDATE social_links SET platform=$1, url=$2, icon=$3, display_order=$4, is_active=$5, updated_at=NOW()
        WHERE id=$6
        RETURNING created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		link.Platform,
		link.URL,
		link.Icon,
		link.DisplayOrder,
		link.IsActive,
		link.ID,
	).Scan(&link.CreatedAt, &link.UpdatedAt)
}

func (r *socialLinkRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM social_links WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *socialLinkRepository) GetByID(ctx context.Context, id string) (*domain.SocialLink, error) {
	query := `SELECT ` + socialColumns + ` FROM social_links WHERE id=$1`
	return scanSocialLink(r.pool.QueryRow(ctx, query, id))
}

func (r *socialLinkRepository) List(ctx context.Context, activeOnly bool) ([]domain.SocialLink, error) {
	query := `SELECT ` + socialColumns + ` FROM social_links`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY display_order ASC, created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.SocialLink
	for rows.Next() {
		link, err := scanSocialLink(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *link)
	}
	return result, rows.Err()
}

func scanSocialLink(row pgx.Row) (*domain.SocialLink, error) {
	var link domain.SocialLink
	if err := row.Scan(
		&link.ID,
		&link.Platform,
		&link.URL,
		&link.Icon,
		&link.DisplayOrder,
		&link.IsActive,
		&link.CreatedAt,
		&link.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &link, nil
}
