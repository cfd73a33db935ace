package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/gis-site-service/internal/domain"
	apperrors "github.com/spec-kit/gis-site-service/pkg/util/errorutil"
)

type stubAdmins map[string]*domain.Admin

func (s stubAdmins) GetByID(_ context.Context, id string) (*domain.Admin, error) {
	if a, ok := s[id]; ok {
		return a, nil
	}
	return nil, pgx.ErrNoRows
}

func testApp(mw *AuthMiddleware) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).SendString(de.Code)
		},
	})
	app.Get("/private", mw.Handle, RequireAdmin(), func(c *fiber.Ctx) error {
		p, _ := PrincipalFromContext(c)
		return c.SendString(p.Admin.Email)
	})
	app.Get("/public", mw.Optional, func(c *fiber.Ctx) error {
		if IsAdmin(c) {
			return c.SendString("admin")
		}
		return c.SendString("anon")
	})
	return app
}

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 5)
	tok, err := tm.GenerateToken(&domain.Admin{ID: "a1", Email: "ops@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "a1", tok.SubjectID)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), tok.ExpiresAt, time.Minute)

	claims, err := tm.ParseToken(tok.Value)
	require.NoError(t, err)
	assert.Equal(t, "a1", claims.RegisteredClaims.Subject)
	assert.Equal(t, "ops@x.com", claims.Email)

	_, err = NewTokenManager("other", 5).ParseToken(tok.Value)
	assert.Error(t, err)
}

func TestTokenExpiry(t *testing.T) {
	tm := NewTokenManager("secret", 1)
	tm.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, err := tm.GenerateToken(&domain.Admin{ID: "a1"})
	require.NoError(t, err)

	_, err = NewTokenManager("secret", 1).ParseToken(tok.Value)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	_, err := HashPassword("short", 4)
	assert.ErrorIs(t, err, ErrWeakPassword)

	hash, err := HashPassword("long-enough-password", 4)
	require.NoError(t, err)
	assert.NoError(t, ComparePassword(hash, "long-enough-password"))
	assert.Error(t, ComparePassword(hash, "wrong-password!"))
}

func TestMiddleware(t *testing.T) {
	tm := NewTokenManager("secret", 5)
	admins := stubAdmins{
		"a1": {ID: "a1", Email: "ops@x.com", Active: true},
		"a2": {ID: "a2", Email: "old@x.com", Active: false},
	}
	app := testApp(NewAuthMiddleware(tm, admins))

	active, err := tm.GenerateToken(admins["a1"])
	require.NoError(t, err)
	disabled, err := tm.GenerateToken(admins["a2"])
	require.NoError(t, err)
	ghost, err := tm.GenerateToken(&domain.Admin{ID: "gone"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		path   string
		header string
		status int
		body   string
	}{
		{"private without token", "/private", "", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"private malformed header", "/private", "Token abc", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"private valid", "/private", "Bearer " + active.Value, http.StatusOK, "ops@x.com"},
		{"private disabled admin", "/private", "Bearer " + disabled.Value, http.StatusForbidden, "FORBIDDEN"},
		{"private unknown admin", "/private", "Bearer " + ghost.Value, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"public anonymous", "/public", "", http.StatusOK, "anon"},
		{"public bad token stays anonymous", "/public", "Bearer nope", http.StatusOK, "anon"},
		{"public admin", "/public", "Bearer " + active.Value, http.StatusOK, "admin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			buf := make([]byte, 64)
			n, _ := resp.Body.Read(buf)
			assert.Equal(t, tt.body, string(buf[:n]))
		})
	}
}
