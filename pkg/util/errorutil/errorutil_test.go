package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError_PassesThroughDomainErrors(t *testing.T) {
	orig := NewConflict("duplicate", map[string]any{"email": "a@x.com"})
	wrapped := fmt.Errorf("add cc: %w", orig)

	got := ToDomainError(wrapped)
	require.NotNil(t, got)
	assert.Equal(t, "CONFLICT", got.Code)
	assert.Equal(t, http.StatusConflict, got.HTTPStatus)
	assert.Equal(t, "a@x.com", got.Details["email"])
}

func TestToDomainError_NoRowsBecomesNotFound(t *testing.T) {
	got := ToDomainError(fmt.Errorf("get message: %w", pgx.ErrNoRows))
	assert.Equal(t, "NOT_FOUND", got.Code)
	assert.Equal(t, http.StatusNotFound, got.HTTPStatus)
}

func TestToDomainError_UnknownBecomesInternal(t *testing.T) {
	cause := errors.New("connection reset")
	got := ToDomainError(cause)
	assert.Equal(t, "INTERNAL_ERROR", got.Code)
	assert.ErrorIs(t, got, cause)
}

func TestNewFieldErrors(t *testing.T) {
	err := NewFieldErrors("invalid message", map[string]string{"email": "must be a valid email"})
	de := ToDomainError(err)
	assert.Equal(t, "VALIDATION_FAILED", de.Code)
	assert.Equal(t, "must be a valid email", de.Details["email"])
}

func TestDeliveryFailedKeepsCause(t *testing.T) {
	cause := errors.New("relay returned 503")
	err := NewDeliveryFailed(cause)
	assert.True(t, IsCode(err, "DELIVERY_FAILED"))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "relay returned 503")
}

func TestMapErrorNil(t *testing.T) {
	assert.NoError(t, MapError(nil))
	assert.Nil(t, ToDomainError(nil))
}
