package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Kind identifies the type of a secret
type Kind string

const (
	KindText  Kind = "text"
	KindVideo Kind = "video"
)

// Secret represents one anonymous confession, either plain text or a video
// with an optional speech transcription
type Secret struct {
	ID            string    `json:"id"`
	Kind          Kind      `json:"kind"`
	Body          string    `json:"body"`
	Transcription string    `json:"transcription,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	Likes         int       `json:"likes"`
}

// ValidWindows lists the time windows (in hours) exposed by the API:
// last day, last week, last month
var ValidWindows = map[int]bool{
	24:  true,
	168: true,
	720: true,
}

// SecretPayload represents a secret event from the SupaSecret SSE feed
type SecretPayload struct {
	// The single root key is the kind of the secret
	Kind Kind `json:"-"`

	// Secret data
	Data Secret
}

// UnmarshalJSON implements custom JSON unmarshalling for SecretPayload.
// Handles the dynamic structure where the secret kind is the root key,
// e.g. {"video": {"id": "...", "text": "...", "timestamp": 1699999999, "likes": 3}}
func (p *SecretPayload) UnmarshalJSON(event []byte) error {
	var eventRaw map[string]json.RawMessage
	if err := json.Unmarshal(event, &eventRaw); err != nil {
		return fmt.Errorf("failed to unmarshal secret payload: %w", err)
	}

	// Should have exactly one root key (the secret kind)
	if len(eventRaw) != 1 {
		return fmt.Errorf("expected single root key, got %d", len(eventRaw))
	}

	for kind, data := range eventRaw {
		switch Kind(kind) {
		case KindText, KindVideo:
		default:
			return fmt.Errorf("unknown secret kind: %s", kind)
		}

		p.Kind = Kind(kind)

		var details map[string]interface{}
		if err := json.Unmarshal(data, &details); err != nil {
			return fmt.Errorf("failed to unmarshal %s data: %w", kind, err)
		}

		timestamp, err := extractTimestamp(details)
		if err != nil {
			return err
		}

		p.Data = Secret{
			Kind:          p.Kind,
			ID:            stringField(details, "id"),
			Body:          stringField(details, "text"),
			Transcription: stringField(details, "transcription"),
			CreatedAt:     time.Unix(timestamp, 0).UTC(),
			Likes:         intField(details, "likes"),
		}
	}

	return nil
}

// stringField reads an optional string field; a missing or non-string value
// is treated as empty, not as an error
func stringField(details map[string]interface{}, key string) string {
	if val, ok := details[key].(string); ok {
		return val
	}
	return ""
}

// intField reads an optional non-negative integer field, clamping negatives to zero
func intField(details map[string]interface{}, key string) int {
	val, ok := details[key]
	if !ok {
		return 0
	}

	// When Unmarshal is done into an interface value, numbers are stored as float64
	valStr := fmt.Sprintf("%.0f", val)

	valInt, err := strconv.Atoi(valStr)
	if err != nil || valInt < 0 {
		return 0
	}

	return valInt
}

func extractTimestamp(details map[string]interface{}) (int64, error) {
	tsRaw, ok := details["timestamp"]
	if !ok {
		return 0, fmt.Errorf("missing timestamp field")
	}

	tsFloat, ok := tsRaw.(float64)
	if !ok {
		return 0, fmt.Errorf("invalid timestamp type: %T", tsRaw)
	}

	tsUnix, err := strconv.ParseInt(fmt.Sprintf("%.0f", tsFloat), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp format: %w", err)
	}

	// Validate timestamp is positive
	if tsUnix <= 0 {
		return 0, fmt.Errorf("timestamp must be positive, got %d", tsUnix)
	}

	return tsUnix, nil
}
