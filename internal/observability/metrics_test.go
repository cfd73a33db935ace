package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/contact/message", "POST", 201, 12*time.Millisecond)
	m.RecordRequest("/contact/message", "POST", 201, 8*time.Millisecond)
	m.RecordError("/contact/messages/:id/reply", "POST", "DELIVERY_FAILED")
	m.RecordEmail("confirmation", false)
	m.RecordEmail("notification", true)

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.Requests["/contact/message|POST|201"])
	assert.Equal(t, int64(20), snap.RequestMillis["/contact/message|POST|201"])
	assert.Equal(t, int64(1), snap.Errors["/contact/messages/:id/reply|POST|DELIVERY_FAILED"])
	assert.Equal(t, int64(1), snap.Emails["confirmation|failed"])
	assert.Equal(t, int64(1), snap.Emails["notification|sent"])

	snap.Requests["/contact/message|POST|201"] = 99
	assert.Equal(t, int64(2), m.Snapshot().Requests["/contact/message|POST|201"])
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordError("/", "GET", "X")
	m.RecordEmail("reply", true)
	assert.Empty(t, m.Snapshot().Requests)
}
