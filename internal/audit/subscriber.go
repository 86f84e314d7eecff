package audit

import (
	"context"

	"github.com/osse101/PrizeGrid_Go/internal/domain"
	"github.com/osse101/PrizeGrid_Go/internal/event"
	"github.com/osse101/PrizeGrid_Go/internal/logger"
)

// AlertSubscriber logs audit alerts and emergency stops at error level
type AlertSubscriber struct{}

// NewAlertSubscriber creates a new alert subscriber
func NewAlertSubscriber() *AlertSubscriber {
	return &AlertSubscriber{}
}

// Register subscribes to alert and emergency events
func (a *AlertSubscriber) Register(bus event.Bus) {
	bus.Subscribe(event.AuditAlert, a.HandleAlert)
	bus.Subscribe(event.EmergencyEngaged, a.HandleEmergency)
}

// HandleAlert logs one audit alert
func (a *AlertSubscriber) HandleAlert(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)
	alert, err := event.DecodePayload[domain.AuditAlert](evt.Payload)
	if err != nil {
		log.Warn(LogMsgPayloadUndecodable, "type", evt.Type, "error", err)
		return nil
	}
	log.Error(LogMsgAlertReceived,
		"alert_id", alert.ID,
		logger.AttrKeyGameType, alert.GameType,
		"day", alert.Day.Format("2006-01-02"),
		"severity", alert.Severity,
		"expected", alert.Expected.String(),
		"actual", alert.Actual.String(),
		"discrepancy", alert.Discrepancy.String())
	return nil
}

// HandleEmergency logs an engaged emergency stop
func (a *AlertSubscriber) HandleEmergency(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)
	p, err := event.DecodePayload[domain.EmergencyPayload](evt.Payload)
	if err != nil {
		log.Warn(LogMsgPayloadUndecodable, "type", evt.Type, "error", err)
		return nil
	}
	log.Error(LogMsgEmergencyReceived, logger.AttrKeyGameType, p.GameType, "reason", p.Reason)
	return nil
}
