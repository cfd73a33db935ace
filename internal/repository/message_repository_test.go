package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/gis-site-service/internal/domain"
)

const messageID = "0d7c4d5e-8a0f-4d7b-b8e5-3c2f9a6b1e42"

func TestMessageReads_ExcludeSoftDeleted(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM contact_messages WHERE id=$1 AND is_active`)).
		WithArgs(messageID).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM contact_messages WHERE is_active ORDER BY created_at DESC LIMIT 20 OFFSET 0`)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM contact_messages WHERE is_active GROUP BY status`)).
		WillReturnRows(pgxmock.NewRows([]string{"status", "count"}).AddRow(domain.MessageStatusRead, 2))

	repo := NewMessageRepository(mock)
	_, err := repo.GetByID(context.Background(), messageID)
	require.ErrorIs(t, err, pgx.ErrNoRows)

	items, err := repo.ListActive(context.Background(), MessageFilter{})
	require.NoError(t, err)
	assert.Empty(t, items)

	counts, err := repo.CountByStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[domain.MessageStatus]int{
		domain.MessageStatusNew:     0,
		domain.MessageStatusRead:    2,
		domain.MessageStatusReplied: 0,
	}, counts)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageSoftDelete(t *testing.T) {
	mock := newMockPool(t)
	query := regexp.QuoteMeta(`UPDATE contact_messages SET is_active=FALSE, updated_at=NOW() WHERE id=$1 AND is_active`)
	mock.ExpectExec(query).WithArgs(messageID).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(query).WithArgs(messageID).WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewMessageRepository(mock)
	require.NoError(t, repo.SoftDelete(context.Background(), messageID))
	require.ErrorIs(t, repo.SoftDelete(context.Background(), messageID), pgx.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageList_SearchIsLiteral(t *testing.T) {
	mock := newMockPool(t)
	service := domain.ServiceCategory("web-gis")
	search := " 50%_Off "
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE is_active AND status IN ($1,$2) AND service=$3 AND (LOWER(name) LIKE $4 ESCAPE '\'`)).
		WithArgs(domain.MessageStatusNew, domain.MessageStatusRead, service, `%50\%\_off%`).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	_, err := NewMessageRepository(mock).ListActive(context.Background(), MessageFilter{
		Statuses:   []domain.MessageStatus{domain.MessageStatusNew, domain.MessageStatusRead},
		Service:    &service,
		SearchTerm: &search,
		Limit:      10,
		Offset:     20,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%`, escapeLike("50%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\gis`, escapeLike(`c:\gis`))
	assert.Equal(t, "plain", escapeLike("plain"))
}
