package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/gis-site-service/internal/api/http/handlers"
	"github.com/spec-kit/gis-site-service/internal/auth"
	"github.com/spec-kit/gis-site-service/internal/domain"
	"github.com/spec-kit/gis-site-service/internal/observability"
	"github.com/spec-kit/gis-site-service/internal/repository"
	"github.com/spec-kit/gis-site-service/internal/service"
	apperrors "github.com/spec-kit/gis-site-service/pkg/util/errorutil"
)

type messageStore struct {
	mu    sync.Mutex
	items map[string]*domain.Message
	seq   int
}

func (s *messageStore) Create(_ context.Context, msg *domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	msg.ID = uuid.NewString()
	msg.IsActive = true
	msg.CreatedAt = time.Unix(int64(s.seq), 0).UTC()
	msg.UpdatedAt = msg.CreatedAt
	cp := *msg
	s.items[msg.ID] = &cp
	return nil
}

func (s *messageStore) GetByID(_ context.Context, id string) (*domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg, ok := s.items[id]
	if !ok || !msg.IsActive {
		return nil, pgx.ErrNoRows
	}
	cp := *msg
	return &cp, nil
}

func (s *messageStore) ListActive(context.Context, repository.MessageFilter) ([]domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Message
	for _, msg := range s.items {
		if msg.IsActive {
			out = append(out, *msg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *messageStore) UpdateStatus(_ context.Context, id string, status domain.MessageStatus) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg, ok := s.items[id]
	if !ok {
		return time.Time{}, pgx.ErrNoRows
	}
	msg.Status = status
	return msg.UpdatedAt, nil
}

func (s *messageStore) SetReply(_ context.Context, id string, reply domain.MessageReply) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg, ok := s.items[id]
	if !ok {
		return time.Time{}, pgx.ErrNoRows
	}
	msg.Status = domain.MessageStatusReplied
	msg.Reply = &reply
	return msg.UpdatedAt, nil
}

func (s *messageStore) SoftDelete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg, ok := s.items[id]
	if !ok || !msg.IsActive {
		return pgx.ErrNoRows
	}
	msg.IsActive = false
	return nil
}

func (s *messageStore) CountByStatus(context.Context) (map[domain.MessageStatus]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := map[domain.MessageStatus]int{}
	for _, msg := range s.items {
		if msg.IsActive {
			counts[msg.Status]++
		}
	}
	return counts, nil
}

type replySenderFunc func(ctx context.Context, msg domain.Message, reply domain.MessageReply) (string, error)

func (f replySenderFunc) SendReply(ctx context.Context, msg domain.Message, reply domain.MessageReply) (string, error) {
	return f(ctx, msg, reply)
}

type adminLookup map[string]*domain.Admin

func (a adminLookup) GetByID(_ context.Context, id string) (*domain.Admin, error) {
	if admin, ok := a[id]; ok {
		return admin, nil
	}
	return nil, pgx.ErrNoRows
}

type stubAuth struct{}

func (stubAuth) Login(context.Context, string, string) (*domain.Admin, domain.Token, error) {
	return nil, domain.Token{}, apperrors.NewUnauthorized("invalid credentials")
}

func (stubAuth) ChangePassword(context.Context, string, string, string) error { return nil }

type stubContent struct {
	handlers.ContactContent
	listDepartmentsFn func(ctx context.Context, activeOnly bool) ([]domain.DepartmentalContact, error)
}

func (s stubContent) ListDepartments(ctx context.Context, activeOnly bool) ([]domain.DepartmentalContact, error) {
	return s.listDepartmentsFn(ctx, activeOnly)
}

type stubEmailConfigs struct {
	handlers.EmailConfigs
	removeCCFn func(ctx context.Context, addr string) (*domain.EmailConfig, error)
	addCCFn    func(ctx context.Context, addr string) (*domain.EmailConfig, error)
}

func (s stubEmailConfigs) RemoveCC(ctx context.Context, addr string) (*domain.EmailConfig, error) {
	return s.removeCCFn(ctx, addr)
}

func (s stubEmailConfigs) AddCC(ctx context.Context, addr string) (*domain.EmailConfig, error) {
	return s.addCCFn(ctx, addr)
}

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

type testServer struct {
	app     *fiber.App
	metrics *observability.Metrics
	token   string
	replies int
}

type serverOptions struct {
	replyErr    error
	content     stubContent
	emailConfig stubEmailConfigs
}

func newTestServer(t *testing.T, opts serverOptions) *testServer {
	t.Helper()
	admin := &domain.Admin{ID: uuid.NewString(), Name: "Site Admin", Email: "admin@gis.test", Active: true}
	tokens := auth.NewTokenManager("test-secret", 30)
	tok, err := tokens.GenerateToken(admin)
	require.NoError(t, err)

	ts := &testServer{token: tok.Value}
	messages := service.NewMessageService(service.MessageDependencies{
		MessageRepo: &messageStore{items: map[string]*domain.Message{}},
		Replies: replySenderFunc(func(context.Context, domain.Message, domain.MessageReply) (string, error) {
			ts.replies++
			return "relay-1", opts.replyErr
		}),
		Logger: zap.NewNop(),
	})

	metrics := observability.NewMetrics()
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), metrics, time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("gis-site-service", "test", pinger{}, pinger{err: errors.New("down")}, metrics),
		Auth:           handlers.NewAuthHandler(stubAuth{}),
		Contact:        handlers.NewContactHandler(opts.content),
		Messages:       handlers.NewMessagesHandler(messages),
		EmailConfig:    handlers.NewEmailConfigHandler(opts.emailConfig),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, adminLookup{admin.ID: admin}),
	})
	ts.app = app
	ts.metrics = metrics
	return ts
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func (ts *testServer) do(t *testing.T, method, path string, body any, admin bool) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if admin {
		req.Header.Set("Authorization", "Bearer "+ts.token)
	}
	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

type messageBody struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Reply  *struct {
		Content string `json:"content"`
		SentBy  string `json:"sentBy"`
	} `json:"reply"`
}

func TestContactMessageScenario(t *testing.T) {
	ts := newTestServer(t, serverOptions{})

	status, env := ts.do(t, http.MethodPost, "/contact/message",
		map[string]string{"name": "A", "email": "a@x.com", "message": "hi"}, false)
	require.Equal(t, http.StatusCreated, status)
	var created messageBody
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "new", created.Status)

	status, env = ts.do(t, http.MethodGet, "/contact/messages", nil, true)
	require.Equal(t, http.StatusOK, status)
	var page struct {
		Items []messageBody `json:"items"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, created.ID, page.Items[0].ID)

	status, env = ts.do(t, http.MethodPut, "/contact/messages/"+created.ID+"/status",
		map[string]string{"status": "read"}, true)
	require.Equal(t, http.StatusOK, status)
	var read messageBody
	require.NoError(t, json.Unmarshal(env.Data, &read))
	assert.Equal(t, "read", read.Status)

	status, env = ts.do(t, http.MethodPost, "/contact/messages/"+created.ID+"/reply",
		map[string]string{"replyContent": "thanks"}, true)
	require.Equal(t, http.StatusOK, status)
	var replied messageBody
	require.NoError(t, json.Unmarshal(env.Data, &replied))
	assert.Equal(t, "replied", replied.Status)
	require.NotNil(t, replied.Reply)
	assert.Equal(t, "thanks", replied.Reply.Content)
	assert.Equal(t, "Site Admin <admin@gis.test>", replied.Reply.SentBy)
	assert.Equal(t, 1, ts.replies)
}

func TestReplyErrors(t *testing.T) {
	ts := newTestServer(t, serverOptions{replyErr: errors.New("relay 503")})
	_, env := ts.do(t, http.MethodPost, "/contact/message",
		map[string]string{"name": "A", "email": "a@x.com", "message": "hi"}, false)
	var created messageBody
	require.NoError(t, json.Unmarshal(env.Data, &created))

	status, env := ts.do(t, http.MethodPost, "/contact/messages/"+created.ID+"/reply",
		map[string]string{"replyContent": "   "}, true)
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
	assert.Contains(t, env.Error.Details, "replyContent")
	assert.Zero(t, ts.replies)

	status, env = ts.do(t, http.MethodPost, "/contact/messages/"+created.ID+"/reply",
		map[string]string{"replyContent": "thanks"}, true)
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, "DELIVERY_FAILED", env.Error.Code)

	status, env = ts.do(t, http.MethodGet, "/contact/messages/"+created.ID, nil, true)
	require.Equal(t, http.StatusOK, status)
	var current messageBody
	require.NoError(t, json.Unmarshal(env.Data, &current))
	assert.Equal(t, "new", current.Status)
	assert.Nil(t, current.Reply)
}

func TestSubmitValidation(t *testing.T) {
	ts := newTestServer(t, serverOptions{})
	status, env := ts.do(t, http.MethodPost, "/contact/message", map[string]string{"email": "nope"}, false)
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Details, "name")
	assert.Contains(t, env.Error.Details, "email")
	assert.Contains(t, env.Error.Details, "message")
}

func TestAdminRoutesRequireToken(t *testing.T) {
	ts := newTestServer(t, serverOptions{})
	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/contact/messages"},
		{http.MethodGet, "/contact/messages/stats"},
		{http.MethodPut, "/contact/info"},
		{http.MethodPost, "/contact/departments"},
		{http.MethodDelete, "/contact/email-config"},
		{http.MethodGet, "/auth/admin/me"},
	} {
		status, env := ts.do(t, route.method, route.path, nil, false)
		assert.Equal(t, http.StatusUnauthorized, status, route.path)
		require.NotNil(t, env.Error, route.path)
		assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
	}
}

func TestUnknownMessageIsNotFound(t *testing.T) {
	ts := newTestServer(t, serverOptions{})
	for _, id := range []string{"garbage", uuid.NewString()} {
		status, env := ts.do(t, http.MethodGet, "/contact/messages/"+id, nil, true)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
	}
	for _, path := range []string{"/nowhere", "/contact/nowhere", "/contact/messages/x/y"} {
		status, env := ts.do(t, http.MethodGet, path, nil, false)
		assert.Equal(t, http.StatusNotFound, status, path)
		require.NotNil(t, env.Error, path)
		assert.Equal(t, "NOT_FOUND", env.Error.Code, path)
	}
}

func TestRequestMetricsRecordErrorStatus(t *testing.T) {
	ts := newTestServer(t, serverOptions{})
	status, _ := ts.do(t, http.MethodGet, "/contact/messages/"+uuid.NewString(), nil, true)
	require.Equal(t, http.StatusNotFound, status)
	status, _ = ts.do(t, http.MethodPost, "/contact/message", map[string]string{"name": ""}, false)
	require.Equal(t, http.StatusBadRequest, status)

	requests := ts.metrics.Snapshot().Requests
	assert.Equal(t, int64(1), requests["/contact/messages/:id|GET|404"])
	assert.Equal(t, int64(1), requests["/contact/message|POST|400"])
	assert.NotContains(t, requests, "/contact/messages/:id|GET|200")
}

func TestDepartmentsVisibility(t *testing.T) {
	var seen []bool
	ts := newTestServer(t, serverOptions{content: stubContent{
		listDepartmentsFn: func(_ context.Context, activeOnly bool) ([]domain.DepartmentalContact, error) {
			seen = append(seen, activeOnly)
			return []domain.DepartmentalContact{{ID: "d1", Department: "Sales", IsActive: true}}, nil
		},
	}})

	status, _ := ts.do(t, http.MethodGet, "/contact/departments", nil, false)
	assert.Equal(t, http.StatusOK, status)
	status, _ = ts.do(t, http.MethodGet, "/contact/departments", nil, true)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []bool{true, false}, seen)
}

func TestEmailConfigCCRoutes(t *testing.T) {
	var removed string
	ts := newTestServer(t, serverOptions{emailConfig: stubEmailConfigs{
		removeCCFn: func(_ context.Context, addr string) (*domain.EmailConfig, error) {
			removed = addr
			return &domain.EmailConfig{ID: "c1", RecipientEmail: "ops@gis.test", IsActive: true}, nil
		},
		addCCFn: func(_ context.Context, addr string) (*domain.EmailConfig, error) {
			return nil, apperrors.NewConflict("email already in cc list", map[string]any{"email": addr})
		},
	}})

	status, env := ts.do(t, http.MethodDelete, "/contact/email-config/cc/boss%40gis.test", nil, true)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "boss@gis.test", removed)
	var cfg struct {
		CCEmails []string `json:"ccEmails"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &cfg))
	assert.NotNil(t, cfg.CCEmails)

	status, env = ts.do(t, http.MethodPost, "/contact/email-config/cc", map[string]string{"email": "boss@gis.test"}, true)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", env.Error.Code)
}

func TestHealthEndpoints(t *testing.T) {
	ts := newTestServer(t, serverOptions{})
	status, _ := ts.do(t, http.MethodGet, "/health/live", nil, false)
	assert.Equal(t, http.StatusOK, status)

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	status, env := ts.do(t, http.MethodGet, "/metrics", nil, false)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), "requests")
}
