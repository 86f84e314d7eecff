package metrics

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PrizeGrid_Go/internal/domain"
	"github.com/osse101/PrizeGrid_Go/internal/event"
)

func TestEventMetricsCollector_RoundSettled(t *testing.T) {
	bus := event.NewMemoryBus()
	require.NoError(t, NewEventMetricsCollector().Register(bus))

	before := testutil.ToFloat64(RoundsSettled.WithLabelValues("metrics-test", OutcomeWin))
	paidBefore := testutil.ToFloat64(PrizesPaid.WithLabelValues("metrics-test"))

	err := bus.Publish(context.Background(), event.Event{
		Type: event.RoundSettled,
		Payload: domain.RoundSettledPayload{
			GameType:  "metrics-test",
			BetAmount: decimal.RequireFromString("0.50"),
			HasWin:    true,
			WonAmount: decimal.RequireFromString("2.00"),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, before+1, testutil.ToFloat64(RoundsSettled.WithLabelValues("metrics-test", OutcomeWin)))
	assert.InDelta(t, paidBefore+2.0, testutil.ToFloat64(PrizesPaid.WithLabelValues("metrics-test")), 1e-9)
}

func TestEventMetricsCollector_EmergencyGauge(t *testing.T) {
	bus := event.NewMemoryBus()
	require.NoError(t, NewEventMetricsCollector().Register(bus))

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, event.NewEmergencyEvent(event.EmergencyEngaged, "gauge-test", "audit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(EmergencyStop.WithLabelValues("gauge-test")))

	require.NoError(t, bus.Publish(ctx, event.NewEmergencyEvent(event.EmergencyCleared, "gauge-test", "operator")))
	assert.Equal(t, 0.0, testutil.ToFloat64(EmergencyStop.WithLabelValues("gauge-test")))
}

func TestEventMetricsCollector_UndecodablePayloadIgnored(t *testing.T) {
	c := NewEventMetricsCollector()
	err := c.HandleEvent(context.Background(), event.Event{Type: event.AuditAlert, Payload: make(chan int)})
	assert.NoError(t, err)
}
