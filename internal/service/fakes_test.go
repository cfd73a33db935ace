package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/gis-site-service/internal/domain"
	"github.com/spec-kit/gis-site-service/internal/events"
	"github.com/spec-kit/gis-site-service/internal/notify"
	"github.com/spec-kit/gis-site-service/internal/repository"
)

type memoryMessages struct {
	mu        sync.Mutex
	items     map[string]*domain.Message
	creates   int
	mutations int
	seq       int
}

func newMemoryMessages() *memoryMessages {
	return &memoryMessages{items: map[string]*domain.Message{}}
}

func (m *memoryMessages) Create(_ context.Context, msg *domain.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	m.seq++
	msg.ID = uuid.NewString()
	msg.IsActive = true
	msg.CreatedAt = time.Date(2024, 1, 1, 0, 0, m.seq, 0, time.UTC)
	msg.UpdatedAt = msg.CreatedAt
	cp := *msg
	m.items[msg.ID] = &cp
	return nil
}

func (m *memoryMessages) GetByID(_ context.Context, id string) (*domain.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg, ok := m.items[id]
	if !ok || !msg.IsActive {
		return nil, pgx.ErrNoRows
	}
	cp := *msg
	return &cp, nil
}

func (m *memoryMessages) ListActive(_ context.Context, filter repository.MessageFilter) ([]domain.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Message
	for _, msg := range m.items {
		if !msg.IsActive {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, msg.Status) {
			continue
		}
		if filter.Service != nil && msg.Service != *filter.Service {
			continue
		}
		if filter.SearchTerm != nil && !strings.Contains(strings.ToLower(msg.Body+msg.Name), strings.ToLower(*filter.SearchTerm)) {
			continue
		}
		out = append(out, *msg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if filter.Offset >= len(out) {
		return nil, nil
	}
	out = out[filter.Offset:]
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (m *memoryMessages) UpdateStatus(_ context.Context, id string, status domain.MessageStatus) (time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg, ok := m.items[id]
	if !ok || !msg.IsActive {
		return time.Time{}, pgx.ErrNoRows
	}
	m.mutations++
	msg.Status = status
	msg.UpdatedAt = msg.UpdatedAt.Add(time.Second)
	return msg.UpdatedAt, nil
}

func (m *memoryMessages) SetReply(_ context.Context, id string, reply domain.MessageReply) (time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg, ok := m.items[id]
	if !ok || !msg.IsActive {
		return time.Time{}, pgx.ErrNoRows
	}
	m.mutations++
	msg.Status = domain.MessageStatusReplied
	r := reply
	msg.Reply = &r
	msg.UpdatedAt = msg.UpdatedAt.Add(time.Second)
	return msg.UpdatedAt, nil
}

func (m *memoryMessages) SoftDelete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg, ok := m.items[id]
	if !ok || !msg.IsActive {
		return pgx.ErrNoRows
	}
	m.mutations++
	msg.IsActive = false
	return nil
}

func (m *memoryMessages) CountByStatus(_ context.Context) (map[domain.MessageStatus]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := map[domain.MessageStatus]int{
		domain.MessageStatusNew:     0,
		domain.MessageStatusRead:    0,
		domain.MessageStatusReplied: 0,
	}
	for _, msg := range m.items {
		if msg.IsActive {
			counts[msg.Status]++
		}
	}
	return counts, nil
}

func (m *memoryMessages) stored(id string) domain.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.items[id]
}

func containsStatus(list []domain.MessageStatus, s domain.MessageStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

type fakeReplies struct {
	sendFn func(ctx context.Context, msg domain.Message, reply domain.MessageReply) (string, error)
	calls  int
}

func (f *fakeReplies) SendReply(ctx context.Context, msg domain.Message, reply domain.MessageReply) (string, error) {
	f.calls++
	if f.sendFn != nil {
		return f.sendFn(ctx, msg, reply)
	}
	return "relay-1", nil
}

type fakeNotifier struct {
	mu            sync.Mutex
	notifyAdminFn func(ctx context.Context, msg domain.Message, to notify.Recipients) (string, error)
	confirmFn     func(ctx context.Context, msg domain.Message) (string, error)
	adminTo       []notify.Recipients
	confirmed     []string
}

func (f *fakeNotifier) NotifyAdmin(ctx context.Context, msg domain.Message, to notify.Recipients) (string, error) {
	f.mu.Lock()
	f.adminTo = append(f.adminTo, to)
	f.mu.Unlock()
	if f.notifyAdminFn != nil {
		return f.notifyAdminFn(ctx, msg, to)
	}
	return "admin-1", nil
}

func (f *fakeNotifier) ConfirmToSender(ctx context.Context, msg domain.Message) (string, error) {
	f.mu.Lock()
	f.confirmed = append(f.confirmed, msg.Email)
	f.mu.Unlock()
	if f.confirmFn != nil {
		return f.confirmFn(ctx, msg)
	}
	return "confirm-1", nil
}

// memoryEmailConfigs keeps the single-active contract of the postgres repository.
type memoryEmailConfigs struct {
	mu    sync.Mutex
	items []*domain.EmailConfig
}

func (m *memoryEmailConfigs) GetActive(_ context.Context) (*domain.EmailConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, cfg := range m.items {
		if cfg.IsActive {
			return cloneConfig(cfg), nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memoryEmailConfigs) List(_ context.Context) ([]domain.EmailConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.EmailConfig, 0, len(m.items))
	for _, cfg := range m.items {
		out = append(out, *cloneConfig(cfg))
	}
	return out, nil
}

func (m *memoryEmailConfigs) Save(_ context.Context, cfg *domain.EmailConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cfg.IsActive {
		for _, existing := range m.items {
			if existing.ID != cfg.ID {
				existing.IsActive = false
			}
		}
	}
	if cfg.ID == "" {
		cfg.ID = uuid.NewString()
		m.items = append(m.items, cloneConfig(cfg))
		return nil
	}
	for i, existing := range m.items {
		if existing.ID == cfg.ID {
			m.items[i] = cloneConfig(cfg)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *memoryEmailConfigs) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, cfg := range m.items {
		if cfg.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *memoryEmailConfigs) AddCC(_ context.Context, id, addr string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, cfg := range m.items {
		if cfg.ID != id {
			continue
		}
		for _, existing := range cfg.CCEmails {
			if existing == addr {
				return false, nil
			}
		}
		cfg.CCEmails = append(cfg.CCEmails, addr)
		return true, nil
	}
	return false, nil
}

func (m *memoryEmailConfigs) RemoveCC(_ context.Context, id, addr string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, cfg := range m.items {
		if cfg.ID != id {
			continue
		}
		kept := cfg.CCEmails[:0]
		for _, existing := range cfg.CCEmails {
			if existing != addr {
				kept = append(kept, existing)
			}
		}
		cfg.CCEmails = kept
	}
	return nil
}

func (m *memoryEmailConfigs) activeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, cfg := range m.items {
		if cfg.IsActive {
			n++
		}
	}
	return n
}

func cloneConfig(cfg *domain.EmailConfig) *domain.EmailConfig {
	cp := *cfg
	cp.CCEmails = append([]string(nil), cfg.CCEmails...)
	return &cp
}

// recordingDispatcher captures published events without running handlers.
type recordingDispatcher struct {
	mu        sync.Mutex
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) Wait() {}
