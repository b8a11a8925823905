package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVerifySignature(t *testing.T) {
	body := []byte(`{"status":"approved"}`)
	now := time.Unix(1_700_000_000, 0)
	valid := Sign(body, "whsec", now)

	tests := []struct {
		name        string
		header      string
		body        []byte
		secret      string
		expectedErr error
	}{
		{"valid", valid, body, "whsec", nil},
		{"missing header", "", body, "whsec", ErrMissingSignature},
		{"missing header without secret", "", body, "", ErrMissingSignature},
		{"presence only without secret", "anything", body, "", nil},
		{"tampered body", valid, []byte(`{"status":"declined"}`), "whsec", ErrInvalidSignature},
		{"wrong secret", valid, body, "other", ErrInvalidSignature},
		{"malformed", "garbage", body, "whsec", ErrInvalidSignature},
		{"stale timestamp", Sign(body, "whsec", now.Add(-time.Hour)), body, "whsec", ErrInvalidSignature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifySignature(tt.header, tt.body, tt.secret, now)
			if tt.expectedErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}
