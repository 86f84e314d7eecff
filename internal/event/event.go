package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osse101/PrizeGrid_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from map metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Engine event types
const (
	RoundSettled     Type = domain.EventTypeRoundSettled
	AuditAlert       Type = domain.EventTypeAuditAlert
	EmergencyEngaged Type = domain.EventTypeEmergencyEngaged
	EmergencyCleared Type = domain.EventTypeEmergencyCleared
	LedgerRollover   Type = domain.EventTypeLedgerRollover
)

// NewRoundSettledEvent creates the event published after a round commits
func NewRoundSettledEvent(round *domain.Round) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RoundSettled,
		Payload: domain.RoundSettledPayload{
			RoundID:   round.ID.String(),
			UserID:    round.UserID,
			GameType:  round.GameType,
			BetAmount: round.BetAmount,
			HasWin:    round.HasWin,
			WonItemID: round.WonItemID,
			WonAmount: round.WonAmount,
			ForcedWin: round.ForcedWin,
			Timestamp: round.CreatedAt.Unix(),
		},
		Metadata: map[string]interface{}{
			MetadataKeyGameType: round.GameType,
		},
	}
}

// NewAuditAlertEvent creates the event published for a stored audit alert
func NewAuditAlertEvent(alert *domain.AuditAlert) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    AuditAlert,
		Payload: *alert,
		Metadata: map[string]interface{}{
			MetadataKeyGameType: alert.GameType,
			MetadataKeySeverity: string(alert.Severity),
		},
	}
}

// NewEmergencyEvent creates an engaged or cleared event for a game type
func NewEmergencyEvent(eventType Type, gameType, reason string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: domain.EmergencyPayload{
			GameType:  gameType,
			Reason:    reason,
			Timestamp: time.Now().UTC(),
		},
		Metadata: map[string]interface{}{
			MetadataKeyGameType: gameType,
		},
	}
}

// NewLedgerRolloverEvent creates the event published once the daily ledgers are open
func NewLedgerRolloverEvent(day time.Time, opened int, carryForward bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    LedgerRollover,
		Payload: domain.LedgerRolloverPayload{
			Day:          day,
			LedgersOpen:  opened,
			CarryForward: carryForward,
		},
	}
}

// WonAmountOf returns the won amount of a round.settled payload, tolerating
// payloads that went through JSON
func WonAmountOf(evt Event) (decimal.Decimal, error) {
	p, err := DecodePayload[domain.RoundSettledPayload](evt.Payload)
	if err != nil {
		return decimal.Zero, err
	}
	return p.WonAmount, nil
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// Publisher is the fire-and-forget side used by services
type Publisher interface {
	PublishWithRetry(ctx context.Context, event Event)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers. Handlers run synchronously.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
