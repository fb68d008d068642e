package pagination_test

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusbooks/campus_ledger_app/internal/utils/pagination"
)

func TestTokenRoundTrip(t *testing.T) {
	entryDate := time.Date(2025, 3, 10, 14, 30, 0, 123456789, time.UTC)
	entryNumber := "JE-000042"

	token := pagination.EncodeToken(entryDate, entryNumber)
	gotDate, gotNumber, err := pagination.DecodeToken(token)

	require.NoError(t, err)
	assert.True(t, gotDate.Equal(entryDate))
	assert.Equal(t, entryNumber, gotNumber)
}

func TestDecodeTokenRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"not base64", "!!!not-base64!!!"},
		{"missing separator", base64.StdEncoding.EncodeToString([]byte("no-separator-here"))},
		{"bad date", base64.StdEncoding.EncodeToString([]byte("yesterday|JE-000001"))},
		{"empty entry number", base64.StdEncoding.EncodeToString([]byte("2025-03-10T14:30:00Z|"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := pagination.DecodeToken(tt.token)
			assert.Error(t, err)
		})
	}
}

func TestEncodeTokenPreservesEntryNumberSeparators(t *testing.T) {
	// Entry numbers contain a dash; only the first pipe splits the token.
	entryDate := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	token := pagination.EncodeToken(entryDate, "JE-000001")
	_, gotNumber, err := pagination.DecodeToken(token)

	require.NoError(t, err)
	assert.Equal(t, "JE-000001", gotNumber)
}
