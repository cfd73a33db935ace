package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/gis-site-service/internal/domain"
)

// ContactInfoRepository stores the single company contact record under domain.ContactInfoKey.
type ContactInfoRepository interface {
	// Get returns the record, seeding the defaults when none exists yet.
	Get(ctx context.Context) (*domain.ContactInfo, error)
	// Save replaces the record wholesale.
	Save(ctx context.Context, info *domain.ContactInfo) error
}

type contactInfoRepository struct {
	pool DB
}

// NewContactInfoRepository builds the repository.
func NewContactInfoRepository(pool DB) ContactInfoRepository {
	return &contactInfoRepository{pool: pool}
}

func (r *contactInfoRepository) Get(ctx context.Context) (*domain.ContactInfo, error) {
	info, err := r.load(ctx)
	if !errors.Is(err, pgx.ErrNoRows) {
		return info, err
	}

	// first read on an empty table
	def := domain.DefaultContactInfo()
	const seed = `
        INSERT INTO contact_info (key, company_name, business_hours)
        VALUES ($1,$2,$3)
        ON CONFLICT (key) DO NOTHING`
	if _, err := r.pool.Exec(ctx, seed, domain.ContactInfoKey, def.CompanyName, def.BusinessHours); err != nil {
		return nil, err
	}
	return r.load(ctx)
}

func (r *contactInfoRepository) load(ctx context.Context) (*domain.ContactInfo, error) {
	const query = `
        SELECT company_name, address, phone, secondary_phone, email, website, map_url, business_hours, updated_at
        FROM contact_info WHERE key=$1`
	var info domain.ContactInfo
	if err := r.pool.QueryRow(ctx, query, domain.ContactInfoKey).Scan(
		&info.CompanyName,
		&info.Address,
		&info.Phone,
		&info.SecondaryPhone,
		&info.Email,
		&info.Website,
		&info.MapURL,
		&info.BusinessHours,
		&info.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &info, nil
}

func (r *contactInfoRepository) Save(ctx context.Context, info *domain.ContactInfo) error {
	const query = `
        INSERT INTO contact_info (key, company_name, address, phone, secondary_phone, email, website, map_url, business_hours)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        ON CONFLICT (key) DO UPDATE SET
            company_name=EXCLUDED.company_name,
            address=EXCLUDED.address,
            phone=EXCLUDED.phone,
            secondary_phone=EXCLUDED.secondary_phone,
            email=EXCLUDED.email,
            website=EXCLUDED.website,
            map_url=EXCLUDED.map_url,
            business_hours=EXCLUDED.business_hours,
            updated_at=NOW()
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		domain.ContactInfoKey,
		info.CompanyName,
		info.Address,
		info.Phone,
		info.SecondaryPhone,
		info.Email,
		info.Website,
		info.MapURL,
		info.BusinessHours,
	).Scan(&info.UpdatedAt)
}
