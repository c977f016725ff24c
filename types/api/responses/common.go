// Package responses holds the DTO shapes of the HTTP surface.
package responses

import "time"

// Envelope is the response wrapper of every endpoint: {success, data|message,
// timestamp}.
type Envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Message   string `json:"message,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Success wraps data in a successful envelope.
func Success(data any) Envelope {
	return Envelope{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// Failure wraps an error message in a failed envelope.
func Failure(message string) Envelope {
	return Envelope{
		Success:   false,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// MessageData is the data payload of operations whose result is a plain
// confirmation message.
type MessageData struct {
	Message string `json:"message"`
}
