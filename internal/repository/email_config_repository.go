package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/gis-site-service/internal/domain"
)

// EmailConfigRepository manages notification recipient configuration.
type EmailConfigRepository interface {
	GetActive(ctx context.Context) (*domain.EmailConfig, error)
	List(ctx context.Context) ([]domain.EmailConfig, error)
	// Save inserts (empty ID) or updates cfg. When cfg.IsActive is set every other record is
	// deactivated in the same transaction.
	Save(ctx context.Context, cfg *domain.EmailConfig) error
	Delete(ctx context.Context, id string) error
	// AddCC appends addr unless it is already present; added is false for duplicates.
	AddCC(ctx context.Context, id, addr string) (added bool, err error)
	RemoveCC(ctx context.Context, id, addr string) error
}

type emailConfigRepository struct {
	pool DB
}

// NewEmailConfigRepository builds the repository.
func NewEmailConfigRepository(pool DB) EmailConfigRepository {
	return &emailConfigRepository{pool: pool}
}

const emailConfigColumns = `id, recipient_email, cc_emails, is_active, description, created_at, updated_at`

func (r *emailConfigRepository) GetActive(ctx context.Context) (*domain.EmailConfig, error) {
	query := `SELECT ` + emailConfigColumns + ` FROM email_configs WHERE is_active LIMIT 1`
	return scanEmailConfig(r.pool.QueryRow(ctx, query))
}

func (r *emailConfigRepository) List(ctx context.Context) ([]domain.EmailConfig, error) {
	query := `SELECT ` + emailConfigColumns + ` FROM email_configs ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.EmailConfig
	for rows.Next() {
		cfg, err := scanEmailConfig(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *cfg)
	}
	return result, rows.Err()
}

func (r *emailConfigRepository) Save(ctx context.Context, cfg *domain.EmailConfig) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if cfg.IsActive {
		// lock the active row so concurrent saves serialize on it
		if _, err := tx.Exec(ctx, `SELECT id FROM email_configs WHERE is_active FOR UPDATE`); err != nil {
			return err
		}
		deactivate := `UPDATE email_configs SET is_active=FALSE, updated_at=NOW() WHERE is_active`
		args := []any{}
		if cfg.ID != "" {
			deactivate += ` AND id<>$1`
			args = append(args, cfg.ID)
		}
		if _, err := tx.Exec(ctx, deactivate, args...); err != nil {
			return err
		}
	}

	cc := cfg.CCEmails
	if cc == nil {
		cc = []string{}
	}
	if cfg.ID == "" {
		const insert = `
            INSERT INTO email_configs (recipient_email, cc_emails, is_active, description)
            VALUES ($1,$2,$3,$4)
            RETURNING id, created_at, updated_at`
		if err := tx.QueryRow(ctx, insert, cfg.RecipientEmail, cc, cfg.IsActive, cfg.Description).
			Scan(&cfg.ID, &cfg.CreatedAt, &cfg.UpdatedAt); err != nil {
			return err
		}
	} else {
		const update = `
            UPDATE email_configs SET recipient_email=$1, cc_emails=$2, is_active=$3, description=$4, updated_at=NOW()
            WHERE id=$5
            RETURNING created_at, updated_at`
		if err := tx.QueryRow(ctx, update, cfg.RecipientEmail, cc, cfg.IsActive, cfg.Description, cfg.ID).
			Scan(&cfg.CreatedAt, &cfg.UpdatedAt); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *emailConfigRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM email_configs WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *emailConfigRepository) AddCC(ctx context.Context, id, addr string) (bool, error) {
	const query = `
        UPDATE email_configs SET cc_emails=array_append(cc_emails, $2::text), updated_at=NOW()
        WHERE id=$1 AND NOT ($2::text = ANY(cc_emails))`
	cmd, err := r.pool.Exec(ctx, query, id, addr)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() == 1, nil
}

func (r *emailConfigRepository) RemoveCC(ctx context.Context, id, addr string) error {
	const query = `
        UPDATE email_configs SET cc_emails=array_remove(cc_emails, $2::text), updated_at=NOW()
        WHERE id=$1 AND $2::text = ANY(cc_emails)`
	_, err := r.pool.Exec(ctx, query, id, addr)
	return err
}

func scanEmailConfig(row pgx.Row) (*domain.EmailConfig, error) {
	var cfg domain.EmailConfig
	if err := row.Scan(
		&cfg.ID,
		&cfg.RecipientEmail,
		&cfg.CCEmails,
		&cfg.IsActive,
		&cfg.Description,
		&cfg.CreatedAt,
		&cfg.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &cfg, nil
}
