package server

import "time"

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Server starting"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
	LogMsgAuthFailed       = "Authentication failed"
	LogMsgRateLimited      = "Rate limit exceeded"
	LogMsgLimitersSwept    = "Idle rate limiters removed"
)

// Security alert message templates
const (
	SecurityAlertFailedAuth = "SECURITY ALERT: Multiple failed authentication attempts"
	SecurityAlertHighRate   = "SECURITY ALERT: Blocking high request rate"
)

// HTTP header names
const (
	HeaderAPIKey         = "X-API-Key"
	HeaderAuthorization  = "Authorization"
	HeaderForwardedFor   = "X-Forwarded-For"
	HeaderContentType    = "X-Content-Type-Options"
	HeaderFrameOptions   = "X-Frame-Options"
	HeaderXSSProtection  = "X-XSS-Protection"
	HeaderReferrerPolicy = "Referrer-Policy"
	HeaderRetryAfter     = "Retry-After"
	HeaderRequestID      = "X-Request-ID"
)

// Security header values
const (
	HeaderValueNoSniff              = "nosniff"
	HeaderValueDeny                 = "DENY"
	HeaderValueXSSBlock             = "1; mode=block"
	HeaderValueReferrerStrictOrigin = "strict-origin-when-cross-origin"
)

const (
	bearerPrefix   = "Bearer "
	RedactedValue  = "[REDACTED]"
	MaxRequestBody = 64 << 10 // round requests are tiny

	// SuspiciousActivityDetector window and thresholds, per client IP
	detectorWindow         = 5 * time.Minute
	failedAuthAlertAt      = 5
	maxRequestsPerWindow   = 3000
	highRateLogEvery       = 100
	readHeaderTimeout      = 5 * time.Second
	DefaultLimiterIdleTime = 10 * time.Minute
)

// Rejection reasons, used as the metrics label
const (
	RejectMissingToken = "missing_token"
	RejectBadToken     = "bad_token"
	RejectBadAPIKey    = "bad_api_key"
	RejectUserRate     = "user_rate"
	RejectIPRate       = "ip_rate"
)

// Paths that are never logged per request
var QuietPaths = []string{
	"/healthz",
	"/readyz",
	"/metrics",
}
