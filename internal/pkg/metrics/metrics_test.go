package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()

	m.ObserveRequest("/api/posts", "GET", 200, 5*time.Millisecond)
	m.ObserveRequest("/api/posts", "GET", 200, 5*time.Millisecond)
	m.RosterCommitted(3, 2, 1)
	m.MessageSent()
	m.Upload("profile", true)
	m.Upload("profile", false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("/api/posts", "GET", "200")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.rosterRows.WithLabelValues("created")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.rosterRows.WithLabelValues("updated")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notificationFailures))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.messagesSent))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.uploads.WithLabelValues("profile", "error")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRequest("/x", "GET", 200, time.Millisecond)
		m.RosterCommitted(1, 1, 1)
		m.MessageSent()
		m.Upload("post", true)
	})
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.MessageSent()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "collegesocial_messages_sent_total 1")
}
