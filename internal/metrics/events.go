package metrics

import (
	"context"

	"github.com/osse101/PrizeGrid_Go/internal/domain"
	"github.com/osse101/PrizeGrid_Go/internal/event"
	"github.com/osse101/PrizeGrid_Go/internal/logger"
)

// EventMetricsCollector subscribes to engine events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all engine events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.RoundSettled,
		event.AuditAlert,
		event.EmergencyEngaged,
		event.EmergencyCleared,
		event.LedgerRollover,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.RoundSettled:
		p, err := event.DecodePayload[domain.RoundSettledPayload](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadUndecodable, "type", evt.Type, "error", err)
			return nil
		}
		outcome := OutcomeLoss
		if p.HasWin {
			outcome = OutcomeWin
		}
		RoundsSettled.WithLabelValues(p.GameType, outcome).Inc()
		Sales.WithLabelValues(p.GameType).Add(p.BetAmount.InexactFloat64())
		if p.WonAmount.IsPositive() {
			PrizesPaid.WithLabelValues(p.GameType).Add(p.WonAmount.InexactFloat64())
		}

	case event.AuditAlert:
		a, err := event.DecodePayload[domain.AuditAlert](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadUndecodable, "type", evt.Type, "error", err)
			return nil
		}
		AuditAlerts.WithLabelValues(a.GameType, string(a.Severity)).Inc()

	case event.EmergencyEngaged, event.EmergencyCleared:
		p, err := event.DecodePayload[domain.EmergencyPayload](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadUndecodable, "type", evt.Type, "error", err)
			return nil
		}
		value := 0.0
		if evt.Type == event.EmergencyEngaged {
			value = 1
		}
		EmergencyStop.WithLabelValues(p.GameType).Set(value)
	}

	return nil
}
