package bootstrap

import "time"

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	LogMsgStartingPrizeGrid   = "Starting PrizeGrid"
	LogMsgConfigurationLoaded = "Configuration loaded"
)

// =============================================================================
// Event System Configuration
// =============================================================================

const (
	// EventDefaultMaxRetries is the default number of retry attempts for failed event publishing
	EventDefaultMaxRetries = 5

	// EventDefaultRetryDelay is the default base delay between retry attempts (exponential backoff)
	EventDefaultRetryDelay = 2 * time.Second

	// EventDefaultDeadLetterPath is the default file path for dead-letter event logging
	EventDefaultDeadLetterPath = "logs/event_deadletter.jsonl"
)

// Log messages for event system initialization
const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	LogMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
)

// =============================================================================
// Event Handler Configuration
// =============================================================================

const (
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgAlertSubscriberRegistered  = "Audit alert subscriber registered"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
)

// =============================================================================
// Service Wiring
// =============================================================================

const (
	LogMsgServicesInitialized = "Services initialized"
	ErrMsgInvalidPayoutTiers  = "invalid payout tiers"
	ErrMsgInvalidFormatter    = "invalid currency formatter"
)

// =============================================================================
// Background Jobs
// =============================================================================

const (
	// WorkerQueueSize bounds pending background jobs; schedulers drop ticks when full
	WorkerQueueSize = 16

	// LimiterSweepInterval is how often idle per-player limiters are evicted
	LimiterSweepInterval = time.Minute

	LogMsgJobsScheduled          = "Background jobs scheduled"
	ErrMsgFailedScheduleRollover = "failed to schedule ledger rollover"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgStoppingScheduler          = "Stopping scheduler and workers..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"

	ServiceNameRound = "round"
)

// Shutdown log message format (service name will be prepended)
const (
	LogMsgServiceShutdownFailed = " service shutdown failed"
)
