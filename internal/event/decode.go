package event

import (
	"encoding/json"
	"fmt"
)

// DecodePayload returns the payload of an event as T.
//
// Payloads published in-process are already T (or *T). Payloads replayed from
// the dead-letter file arrive as generic JSON maps and are re-decoded.
func DecodePayload[T any](payload any) (T, error) {
	switch v := payload.(type) {
	case T:
		return v, nil
	case *T:
		if v != nil {
			return *v, nil
		}
	}

	var out T
	if payload == nil {
		return out, fmt.Errorf("%s: %T: nil payload", ErrMsgDecodePayload, out)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return out, fmt.Errorf("%s: %T: %w", ErrMsgDecodePayload, out, err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("%s: %T: %w", ErrMsgDecodePayload, out, err)
	}
	return out, nil
}
