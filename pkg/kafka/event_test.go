package kafka

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	payload := map[string]any{"order_id": "ord-1", "total_cents": 2000}

	event, err := NewEvent("order.created", "ord-1", "order", "storefront", payload)
	require.NoError(t, err)

	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, "order.created", event.EventType)
	assert.Equal(t, "ord-1", event.AggregateID)
	assert.Equal(t, "order", event.AggregateType)
	assert.Equal(t, "storefront", event.Source)
	assert.False(t, event.Timestamp.IsZero())
}

func TestEvent_Roundtrip(t *testing.T) {
	event, err := NewEvent("cart.updated", "cust-1", "cart", "storefront", map[string]int{"lines": 3})
	require.NoError(t, err)
	event.WithCorrelationID("corr-1")

	raw, err := event.Marshal()
	require.NoError(t, err)

	var decoded Event
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, event.EventID, decoded.EventID)
	assert.Equal(t, "corr-1", decoded.CorrelationID)

	var payload map[string]int
	require.NoError(t, json.Unmarshal(decoded.Data, &payload))
	assert.Equal(t, 3, payload["lines"])
}
