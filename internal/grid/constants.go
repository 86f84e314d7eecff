package grid

// Error messages
const (
	ErrMsgNoFillers = "no filler items available for grid"
)
