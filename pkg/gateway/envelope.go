package gateway

import (
	"encoding/json"
	"fmt"
)

// Envelope is the uniform wrapper the gateway puts around every
// conventional API response. Code 200 signals success; any other value is
// an application-level failure even when the HTTP status was 2xx.
type Envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// OK reports whether the envelope carries a success code.
func (e *Envelope) OK() bool {
	return e.Code == CodeOK
}

// decodeEnvelope parses a response body into an Envelope. A body without a
// recognizable code field is not an envelope.
func decodeEnvelope(body []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmptyEnvelope, err)
	}
	if env.Code == 0 {
		return nil, ErrEmptyEnvelope
	}
	return &env, nil
}

// UnmarshalData extracts and unmarshals the data payload of an envelope.
// A null or absent payload yields the zero value, which is how void
// operations decode.
func UnmarshalData[T any](data json.RawMessage) (T, error) {
	var result T
	if len(data) == 0 || string(data) == "null" {
		return result, nil
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("unmarshal data: %w", err)
	}
	return result, nil
}
