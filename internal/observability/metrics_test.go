package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordRequest(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/chat", "POST", 200, 20*time.Millisecond)
	m.RecordRequest("/chat", "POST", 200, 30*time.Millisecond)
	m.RecordRequest("/chat", "POST", 409, 5*time.Millisecond)

	snap := m.RequestSnapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, int64(2), snap["/chat|POST|200"].Count)
	assert.Equal(t, 50*time.Millisecond, snap["/chat|POST|200"].TotalDuration)
	assert.Equal(t, int64(1), snap["/chat|POST|409"].Count)
}

func TestMetrics_RecordError(t *testing.T) {
	m := NewMetrics()

	m.RecordError("/analyst/tickets/7/derivar", "PUT", "VALIDATION_ERROR")
	m.RecordError("/analyst/tickets/7/derivar", "PUT", "VALIDATION_ERROR")

	snap := m.ErrorSnapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, int64(2), snap["/analyst/tickets/7/derivar|PUT|VALIDATION_ERROR"])
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics

	m.RecordRequest("/chat", "POST", 200, time.Millisecond)
	m.RecordError("/chat", "POST", "LOCKED")
	assert.Nil(t, m.RequestSnapshot())
	assert.Nil(t, m.ErrorSnapshot())
}
