package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/spec-kit/gis-site-service/internal/domain"
	"github.com/spec-kit/gis-site-service/internal/repository"
	apperrors "github.com/spec-kit/gis-site-service/pkg/util/errorutil"
)

const pgUniqueViolation = "23505"

// EmailConfigService manages who is notified about new contact messages.
type EmailConfigService struct {
	configs repository.EmailConfigRepository
	logger  *zap.Logger
}

// EmailConfigDependencies bundles collaborators for the email config service.
type EmailConfigDependencies struct {
	EmailConfigRepo repository.EmailConfigRepository
	Logger          *zap.Logger
}

// NewEmailConfigService constructs the service.
func NewEmailConfigService(deps EmailConfigDependencies) *EmailConfigService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmailConfigService{configs: deps.EmailConfigRepo, logger: logger}
}

// Get returns the active configuration.
func (s *EmailConfigService) Get(ctx context.Context) (*domain.EmailConfig, error) {
	cfg, err := s.configs.GetActive(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("email config", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return cfg, nil
}

// List returns every stored configuration, active or not.
func (s *EmailConfigService) List(ctx context.Context) ([]domain.EmailConfig, error) {
	items, err := s.configs.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if items == nil {
		items = []domain.EmailConfig{}
	}
	return items, nil
}

// Save writes cfg. Without an id the active record is updated, or a new one is created when
// none is active. Saving an active record deactivates all others.
func (s *EmailConfigService) Save(ctx context.Context, cfg domain.EmailConfig) (*domain.EmailConfig, error) {
	cfg.Normalize()
	if err := invalid("invalid email config", cfg.Validate()); err != nil {
		return nil, err
	}
	if cfg.ID != "" {
		if err := checkID("email config", cfg.ID); err != nil {
			return nil, err
		}
	} else {
		current, err := s.configs.GetActive(ctx)
		switch {
		case err == nil:
			cfg.ID = current.ID
		case !errors.Is(err, pgx.ErrNoRows):
			return nil, apperrors.MapError(err)
		}
	}

	if err := s.configs.Save(ctx, &cfg); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperrors.NewConflict("another email config was activated concurrently", nil)
		}
		return nil, notFoundOr("email config", cfg.ID, err)
	}
	s.logger.Info("email config saved",
		zap.String("email_config_id", cfg.ID),
		zap.Bool("active", cfg.IsActive),
		zap.Int("cc_count", len(cfg.CCEmails)))
	return &cfg, nil
}

// Delete removes the active configuration; notifications fall back to the default recipient.
func (s *EmailConfigService) Delete(ctx context.Context) error {
	current, err := s.Get(ctx)
	if err != nil {
		return err
	}
	if err := s.configs.Delete(ctx, current.ID); err != nil {
		return notFoundOr("email config", current.ID, err)
	}
	return nil
}

// AddCC appends addr to the active configuration. Addresses are compared after trimming and
// lowercasing; duplicates are a conflict and leave the list untouched.
func (s *EmailConfigService) AddCC(ctx context.Context, addr string) (*domain.EmailConfig, error) {
	addr = domain.NormalizeEmail(addr)
	if !domain.IsEmail(addr) {
		return nil, apperrors.NewFieldErrors("invalid cc email", map[string]string{"email": "must be a valid email address"})
	}
	current, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	if current.HasCC(addr) {
		return nil, duplicateCC(addr)
	}
	added, err := s.configs.AddCC(ctx, current.ID, addr)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !added {
		return nil, duplicateCC(addr)
	}
	return s.Get(ctx)
}

// RemoveCC drops addr from the active configuration. Removing an absent address is a no-op.
func (s *EmailConfigService) RemoveCC(ctx context.Context, addr string) (*domain.EmailConfig, error) {
	addr = domain.NormalizeEmail(addr)
	current, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !current.HasCC(addr) {
		return current, nil
	}
	if err := s.configs.RemoveCC(ctx, current.ID, addr); err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.Get(ctx)
}

func duplicateCC(addr string) error {
	return apperrors.NewConflict("email already in cc list", map[string]any{"email": addr})
}
