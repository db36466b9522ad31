package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brandPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestTopic(t *testing.T) {
	assert.Equal(t, "catalog.brand.created", Topic("brand", "created"))
	assert.Equal(t, "catalog.printer.deleted", Topic("printer", "deleted"))
}

func TestNewEvent_Fields(t *testing.T) {
	data := brandPayload{ID: "b-1", Name: "Acme"}
	event, err := NewEvent("brand.created", "b-1", "brand", "printer-catalog", data)
	require.NoError(t, err)

	_, err = uuid.Parse(event.EventID)
	assert.NoError(t, err)
	assert.Equal(t, "brand.created", event.EventType)
	assert.Equal(t, "b-1", event.AggregateID)
	assert.Equal(t, "brand", event.AggregateType)
	assert.Equal(t, "printer-catalog", event.Source)
	assert.Equal(t, 1, event.Version)
	assert.WithinDuration(t, time.Now().UTC(), event.Timestamp, 2*time.Second)

	var got brandPayload
	require.NoError(t, json.Unmarshal(event.Data, &got))
	assert.Equal(t, data, got)
}

func TestNewEvent_UnencodablePayload(t *testing.T) {
	_, err := NewEvent("brand.created", "b-1", "brand", "svc", make(chan int))
	assert.ErrorContains(t, err, "marshal brand.created payload")
}

func TestEvent_EnvelopeEncoding(t *testing.T) {
	event, err := NewEvent("printer.deleted", "p-1", "printer", "svc", map[string]string{"id": "p-1"})
	require.NoError(t, err)
	event.WithCorrelationID("corr-9")

	raw, err := event.Marshal()
	require.NoError(t, err)

	decoded := decodeEvent(t, raw)
	assert.Equal(t, event.EventID, decoded.EventID)
	assert.Equal(t, "corr-9", decoded.CorrelationID)
	assert.JSONEq(t, `{"id":"p-1"}`, string(decoded.Data))
}

func TestEvent_WithCorrelationIDChains(t *testing.T) {
	event, err := NewEvent("brand.updated", "b-1", "brand", "svc", nil)
	require.NoError(t, err)
	assert.Same(t, event, event.WithCorrelationID("x"))
}

// decodeEvent reads an envelope the way a consumer would.
func decodeEvent(t *testing.T, raw []byte) *Event {
	t.Helper()
	var event Event
	require.NoError(t, json.Unmarshal(raw, &event))
	return &event
}
