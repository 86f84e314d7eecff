package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/PrizeGrid_Go/internal/audit"
	"github.com/osse101/PrizeGrid_Go/internal/event"
	"github.com/osse101/PrizeGrid_Go/internal/metrics"
)

// RegisterEventHandlers subscribes the metrics collector and the audit alert logger to the bus
func RegisterEventHandlers(bus event.Bus) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(bus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	audit.NewAlertSubscriber().Register(bus)
	slog.Info(LogMsgAlertSubscriberRegistered)

	return nil
}
