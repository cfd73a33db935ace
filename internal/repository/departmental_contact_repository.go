package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/gis-site-service/internal/domain"
)

// DepartmentalContactRepository manages departmental contact persistence.
type DepartmentalContactRepository interface {
	Create(ctx context.Context, dept *domain.DepartmentalContact) error
	Update(ctx context.Context, dept *domain.DepartmentalContact) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.DepartmentalContact, error)
	List(ctx context.Context, activeOnly bool) ([]domain.DepartmentalContact, error)
}

type departmentalContactRepository struct {
	pool DB
}

// NewDepartmentalContactRepository builds the repository.
func NewDepartmentalContactRepository(pool DB) DepartmentalContactRepository {
	return &departmentalContactRepository{pool: pool}
}

const departmentColumns = `id, department, contact_person, email, phone, description, display_order, is_active, created_at, updated_at`

func (r *departmentalContactRepository) Create(ctx context.Context, dept *domain.DepartmentalContact) error {
	const query = `
        INSERT INTO departmental_contacts (department, contact_person, email, phone, description, display_order, is_active)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		dept.Department,
		dept.ContactPerson,
		dept.Email,
		dept.Phone,
		dept.Description,
		dept.DisplayOrder,
		dept.IsActive,
	).Scan(&dept.ID, &dept.CreatedAt, &dept.UpdatedAt)
}

func (r *departmentalContactRepository) Update(ctx context.Context, dept *domain.DepartmentalContact) error {
	const query = `
        UPDATE departmental_contacts
        SET department=$1, contact_person=$2, email=$3, phone=$4, description=$5, display_order=$6, is_active=$7, updated_at=NOW()
        WHERE id=$8
        RETURNING created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		dept.Department,
		dept.ContactPerson,
		dept.Email,
		dept.Phone,
		dept.Description,
		dept.DisplayOrder,
		dept.IsActive,
		dept.ID,
	).Scan(&dept.CreatedAt, &dept.UpdatedAt)
}

func (r *departmentalContactRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM departmental_contacts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *departmentalContactRepository) GetByID(ctx context.Context, id string) (*domain.DepartmentalContact, error) {
	query := `SELECT ` + departmentColumns + ` FROM departmental_contacts WHERE id=$1`
	return scanDepartment(r.pool.QueryRow(ctx, query, id))
}

func (r *departmentalContactRepository) List(ctx context.Context, activeOnly bool) ([]domain.DepartmentalContact, error) {
	query := `SELECT ` + departmentColumns + ` FROM departmental_contacts`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY display_order ASC, created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.DepartmentalContact
	for rows.Next() {
		dept, err := scanDepartment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *dept)
	}
	return result, rows.Err()
}

func scanDepartment(row pgx.Row) (*domain.DepartmentalContact, error) {
	var dept domain.DepartmentalContact
	if err := row.Scan(
		&dept.ID,
		&dept.Department,
		&dept.ContactPerson,
		&dept.Email,
		&dept.Phone,
		&dept.Description,
		&dept.DisplayOrder,
		&dept.IsActive,
		&dept.CreatedAt,
		&dept.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &dept, nil
}
