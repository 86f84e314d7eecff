package catalog

import "time"

// Cache defaults
const (
	DefaultCacheSize = 256
	DefaultCacheTTL  = 5 * time.Minute
)

// Log messages
const (
	LogMsgCacheHit     = "Display catalog cache hit"
	LogMsgCacheMiss    = "Display catalog cache miss"
	LogMsgInvalidated  = "Display catalog invalidated"
	LogMsgInvalidState = "Game type not playable"
)

// Error messages
const (
	ErrMsgGetGameTypeFailed = "failed to get game type"
	ErrMsgListItemsFailed   = "failed to list catalog items"
)
