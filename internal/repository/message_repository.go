package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/gis-site-service/internal/domain"
)

// MessageFilter captures admin search parameters. Soft-deleted rows are never returned.
type MessageFilter struct {
	Statuses   []domain.MessageStatus
	Service    *domain.ServiceCategory
	SearchTerm *string
	Limit      int
	Offset     int
}

// MessageRepository encapsulates contact message persistence.
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	GetByID(ctx context.Context, id string) (*domain.Message, error)
	ListActive(ctx context.Context, filter MessageFilter) ([]domain.Message, error)
	UpdateStatus(ctx context.Context, id string, status domain.MessageStatus) (time.Time, error)
	SetReply(ctx context.Context, id string, reply domain.MessageReply) (time.Time, error)
	SoftDelete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (map[domain.MessageStatus]int, error)
}

type messageRepository struct {
	pool DB
}

// NewMessageRepository instantiates repository.
func NewMessageRepository(pool DB) MessageRepository {
	return &messageRepository{pool: pool}
}

const messageColumns = `id, name, email, company, service, message, status,
               reply_content, reply_sent_at, reply_sent_by, is_active, created_at, updated_at`

func (r *messageRepository) Create(ctx context.Context, msg *domain.Message) error {
	const query = `
        INSERT INTO contact_messages (name, email, company, service, message, status, is_active)
        VALUES ($1,$2,$3,$4,$5,$6,TRUE)
        RETURNING id, is_active, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		msg.Name,
		msg.Email,
		msg.Company,
		msg.Service,
		msg.Body,
		msg.Status,
	).Scan(&msg.ID, &msg.IsActive, &msg.CreatedAt, &msg.UpdatedAt)
}

func (r *messageRepository) GetByID(ctx context.Context, id string) (*domain.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM contact_messages WHERE id=$1 AND is_active`
	msg, err := scanMessage(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return msg, nil
}

func (r *messageRepository) ListActive(ctx context.Context, filter MessageFilter) ([]domain.Message, error) {
	clauses := []string{"is_active"}
	args := []any{}

	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.Service != nil {
		args = append(args, *filter.Service)
		clauses = append(clauses, fmt.Sprintf("service=$%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + escapeLike(strings.ToLower(strings.TrimSpace(*filter.SearchTerm))) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			`(LOWER(name) LIKE %[1]s ESCAPE '\' OR email LIKE %[1]s ESCAPE '\' `+
				`OR LOWER(company) LIKE %[1]s ESCAPE '\' OR LOWER(message) LIKE %[1]s ESCAPE '\')`,
			placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM contact_messages WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		messageColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Message
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *msg)
	}
	return result, rows.Err()
}

func (r *messageRepository) UpdateStatus(ctx context.Context, id string, status domain.MessageStatus) (time.Time, error) {
	const query = `
        UPDATE contact_messages SET status=$1, updated_at=NOW()
        WHERE id=$2 AND is_active
        RETURNING updated_at`
	var updatedAt time.Time
	err := r.pool.QueryRow(ctx, query, status, id).Scan(&updatedAt)
	return updatedAt, err
}

func (r *messageRepository) SetReply(ctx context.Context, id string, reply domain.MessageReply) (time.Time, error) {
	const query = `
        UPDATE contact_messages
        SET status=$1, reply_content=$2, reply_sent_at=$3, reply_sent_by=$4, updated_at=NOW()
        WHERE id=$5 AND is_active
        RETURNING updated_at`
	var updatedAt time.Time
	err := r.pool.QueryRow(ctx, query,
		domain.MessageStatusReplied,
		reply.Content,
		reply.SentAt,
		reply.SentBy,
		id,
	).Scan(&updatedAt)
	return updatedAt, err
}

func (r *messageRepository) SoftDelete(ctx context.Context, id string) error {
	const query = `UPDATE contact_messages SET is_active=FALSE, updated_at=NOW() WHERE id=$1 AND is_active`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *messageRepository) CountByStatus(ctx context.Context) (map[domain.MessageStatus]int, error) {
	const query = `SELECT status, COUNT(*) FROM contact_messages WHERE is_active GROUP BY status`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[domain.MessageStatus]int{
		domain.MessageStatusNew:     0,
		domain.MessageStatusRead:    0,
		domain.MessageStatusReplied: 0,
	}
	for rows.Next() {
		var status domain.MessageStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func scanMessage(row pgx.Row) (*domain.Message, error) {
	var (
		msg          domain.Message
		replyContent *string
		replySentAt  *time.Time
		replySentBy  *string
	)
	if err := row.Scan(
		&msg.ID,
		&msg.Name,
		&msg.Email,
		&msg.Company,
		&msg.Service,
		&msg.Body,
		&msg.Status,
		&replyContent,
		&replySentAt,
		&replySentBy,
		&msg.IsActive,
		&msg.CreatedAt,
		&msg.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if replyContent != nil {
		reply := domain.MessageReply{Content: *replyContent}
		if replySentAt != nil {
			reply.SentAt = *replySentAt
		}
		if replySentBy != nil {
			reply.SentBy = *replySentBy
		}
		msg.Reply = &reply
	}
	return &msg, nil
}
