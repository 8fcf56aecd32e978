package models

import (
	"strings"
	"testing"
	"time"
)

func TestSecretPayload_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		event    string
		isError  bool
		errPart  string
		expected Secret
	}{
		{
			name:  "text secret",
			event: `{"text":{"id":"s-1","text":"my #secret","timestamp":1769900000,"likes":4}}`,
			expected: Secret{
				ID:        "s-1",
				Kind:      KindText,
				Body:      "my #secret",
				CreatedAt: time.Unix(1769900000, 0).UTC(),
				Likes:     4,
			},
		},
		{
			name:  "video secret with transcription",
			event: `{"video":{"id":"s-2","text":"","transcription":"spoken #confession","timestamp":1769900100,"likes":12}}`,
			expected: Secret{
				ID:            "s-2",
				Kind:          KindVideo,
				Transcription: "spoken #confession",
				CreatedAt:     time.Unix(1769900100, 0).UTC(),
				Likes:         12,
			},
		},
		{
			name:  "missing optional fields treated as empty",
			event: `{"text":{"timestamp":1769900000}}`,
			expected: Secret{
				Kind:      KindText,
				CreatedAt: time.Unix(1769900000, 0).UTC(),
			},
		},
		{
			name:  "negative likes clamped to zero",
			event: `{"text":{"id":"s-3","text":"x","timestamp":1769900000,"likes":-5}}`,
			expected: Secret{
				ID:        "s-3",
				Kind:      KindText,
				Body:      "x",
				CreatedAt: time.Unix(1769900000, 0).UTC(),
			},
		},
		{
			name:    "unknown kind",
			event:   `{"audio":{"timestamp":1769900000}}`,
			isError: true,
			errPart: "unknown secret kind",
		},
		{
			name:    "missing timestamp",
			event:   `{"text":{"id":"s-4"}}`,
			isError: true,
			errPart: "missing timestamp",
		},
		{
			name:    "non-positive timestamp",
			event:   `{"text":{"timestamp":0}}`,
			isError: true,
			errPart: "timestamp must be positive",
		},
		{
			name:    "multiple root keys",
			event:   `{"text":{"timestamp":1},"video":{"timestamp":2}}`,
			isError: true,
			errPart: "expected single root key",
		},
		{
			name:    "invalid json",
			event:   `{not json}`,
			isError: true,
			errPart: "failed to unmarshal",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var payload SecretPayload
			err := payload.UnmarshalJSON([]byte(tc.event))

			if tc.isError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tc.errPart) {
					t.Errorf("expected error to contain %q, got %q", tc.errPart, err.Error())
				}
				return
			}

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if payload.Data != tc.expected {
				t.Errorf("expected %+v, got %+v", tc.expected, payload.Data)
			}
		})
	}
}
