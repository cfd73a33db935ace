package service

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/gis-site-service/internal/domain"
	apperrors "github.com/spec-kit/gis-site-service/pkg/util/errorutil"
)

// checkID rejects ids that cannot exist so the store is never queried with garbage.
func checkID(resource, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.NewNotFound(resource, map[string]any{"id": id})
	}
	return nil
}

func notFoundOr(resource, id string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(resource, map[string]any{"id": id})
	}
	return apperrors.MapError(err)
}

func invalid(message string, fields domain.FieldErrors) error {
	if fields == nil {
		return nil
	}
	return apperrors.NewFieldErrors(message, fields)
}
