package audit

import "github.com/shopspring/decimal"

// JobNameReconcile names the reconciliation job in worker logs
const JobNameReconcile = "audit_reconcile"

// Default thresholds. A discrepancy above EmergencyAbove engages the emergency stop.
var (
	DefaultTolerance      = decimal.RequireFromString("0.01")
	DefaultCriticalAbove  = decimal.NewFromInt(100)
	DefaultEmergencyAbove = decimal.NewFromInt(1000)
)

// Reconciliation check names. An unresolved alert is kept per (game type, day, check).
const (
	CheckSales   = "sales"
	CheckPrizes  = "prizes"
	CheckWallets = "wallets"
)

// Log messages
const (
	LogMsgReconcileStarted   = "Audit reconciliation started"
	LogMsgReconcileFinished  = "Audit reconciliation finished"
	LogMsgReconcileFailed    = "Audit reconciliation failed for ledger"
	LogMsgDiscrepancyFound   = "Audit discrepancy found"
	LogMsgEmergencyEngaged   = "Emergency stop engaged"
	LogMsgEmergencyCleared   = "Emergency stop cleared"
	LogMsgAlertResolved      = "Audit alert resolved"
	LogMsgAlertAlreadyOpen   = "Audit discrepancy already has an open alert"
	LogMsgAlertReceived      = "AUDIT ALERT"
	LogMsgEmergencyReceived  = "EMERGENCY STOP"
	LogMsgPayloadUndecodable = "Audit subscriber could not decode payload"
)

// Error messages
const (
	ErrMsgListLedgersFailed    = "failed to list ledgers"
	ErrMsgReadSnapshotFailed   = "failed to read reconcile snapshot"
	ErrMsgFindAlertFailed      = "failed to look up open alert"
	ErrMsgInsertAlertFailed    = "failed to store audit alert"
	ErrMsgRaiseLevelFailed     = "failed to raise ledger alert level"
	ErrMsgSetEmergencyFailed   = "failed to engage emergency stop"
	ErrMsgClearEmergencyFailed = "failed to clear emergency stop"
	ErrMsgListAlertsFailed     = "failed to list alerts"
	ErrMsgResolveAlertFailed   = "failed to resolve alert"
	ErrMsgEmptyGameType        = "game type is required"
)

// ReasonAuditEmergency prefixes the stop reason set by reconciliation
const ReasonAuditEmergency = "audit emergency"
