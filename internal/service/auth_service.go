package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/gis-site-service/internal/auth"
	"github.com/spec-kit/gis-site-service/internal/config"
	"github.com/spec-kit/gis-site-service/internal/domain"
	"github.com/spec-kit/gis-site-service/internal/repository"
	apperrors "github.com/spec-kit/gis-site-service/pkg/util/errorutil"
)

// AuthService coordinates admin login and account management.
type AuthService struct {
	admins     repository.AdminRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	logger     *zap.Logger
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	AdminRepo repository.AdminRepository
	Logger    *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		admins:     deps.AdminRepo,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		bcryptCost: cfg.BcryptCost,
		logger:     logger,
	}
}

// Login authenticates an admin and issues an access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Admin, domain.Token, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, domain.Token{}, apperrors.NewFieldErrors("invalid credentials payload", map[string]string{
			"email":    "email and password are required",
			"password": "email and password are required",
		})
	}
	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.Token{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, domain.Token{}, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(admin.PasswordHash, password); err != nil {
		return nil, domain.Token{}, apperrors.NewUnauthorized("invalid credentials")
	}
	if !admin.Active {
		return nil, domain.Token{}, apperrors.NewForbidden("admin account disabled")
	}
	token, err := s.tokenMgr.GenerateToken(admin)
	if err != nil {
		return nil, domain.Token{}, apperrors.NewInternalError(err)
	}
	s.logger.Info("admin logged in", zap.String("admin_id", admin.ID))
	return admin, token, nil
}

// EnsureAdmin creates the account when the email is unknown. created reports whether it did.
func (s *AuthService) EnsureAdmin(ctx context.Context, name, email, password string) (admin *domain.Admin, created bool, err error) {
	email = domain.NormalizeEmail(email)
	if !domain.IsEmail(email) {
		return nil, false, apperrors.NewFieldErrors("invalid admin", map[string]string{"email": "must be a valid email address"})
	}
	existing, err := s.admins.GetByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		if errors.Is(err, auth.ErrWeakPassword) {
			return nil, false, apperrors.NewFieldErrors("invalid admin", map[string]string{"password": err.Error()})
		}
		return nil, false, apperrors.NewInternalError(err)
	}
	admin = &domain.Admin{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
		Active:       true,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, false, apperrors.MapError(err)
	}
	s.logger.Info("admin account created", zap.String("admin_id", admin.ID), zap.String("email", admin.Email))
	return admin, true, nil
}

// GetAdmin loads an admin by id.
func (s *AuthService) GetAdmin(ctx context.Context, id string) (*domain.Admin, error) {
	admin, err := s.admins.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr("admin", id, err)
	}
	return admin, nil
}

// ChangePassword verifies current password before updating to new hash.
func (s *AuthService) ChangePassword(ctx context.Context, adminID, currentPassword, newPassword string) error {
	admin, err := s.GetAdmin(ctx, adminID)
	if err != nil {
		return err
	}
	if err := auth.ComparePassword(admin.PasswordHash, currentPassword); err != nil {
		return apperrors.NewUnauthorized("invalid credentials")
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		if errors.Is(err, auth.ErrWeakPassword) {
			return apperrors.NewFieldErrors("invalid password", map[string]string{"newPassword": err.Error()})
		}
		return apperrors.NewInternalError(err)
	}
	if err := s.admins.UpdatePassword(ctx, adminID, hash); err != nil {
		return notFoundOr("admin", adminID, err)
	}
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
