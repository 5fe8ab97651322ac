// Package messaging exposes the reservation API over Kafka request/reply for
// backends that integrate without HTTP.
package messaging

import "encoding/json"

// Request is the inbound envelope. CorrelationID ties the reply back to the
// caller; Action selects the operation; Payload is operation-specific.
type Request struct {
	CorrelationID string          `json:"correlation_id"`
	Action        string          `json:"action"`
	UserID        string          `json:"user_id,omitempty"`
	Payload       json.RawMessage `json:"payload,omitempty"`
}

// ErrorBody mirrors the HTTP error envelope.
type ErrorBody struct {
	Code        string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

// Response is the outbound envelope. Exactly one of Payload or Error is set.
type Response struct {
	CorrelationID string          `json:"correlation_id"`
	Action        string          `json:"action"`
	Payload       json.RawMessage `json:"payload,omitempty"`
	Error         *ErrorBody      `json:"error,omitempty"`
}
