package crypto

import (
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueResetToken(t *testing.T) {
	validity := 10 * time.Minute
	before := time.Now()

	token, err := IssueResetToken(validity)
	require.NoError(t, err)

	// Сырой токен — hex от 20 байт
	raw, err := hex.DecodeString(token.Raw)
	require.NoError(t, err)
	assert.Len(t, raw, ResetTokenSize)

	// В хранилище попадает только хеш, он не совпадает с сырым значением
	assert.NotEqual(t, token.Raw, token.Hash)
	assert.Equal(t, HashResetToken(token.Raw), token.Hash)

	assert.WithinDuration(t, before.Add(validity), token.ExpiresAt, 5*time.Second)
}

func TestIssueResetToken_Unique(t *testing.T) {
	token1, err := IssueResetToken(time.Minute)
	require.NoError(t, err)

	token2, err := IssueResetToken(time.Minute)
	require.NoError(t, err)

	assert.NotEqual(t, token1.Raw, token2.Raw)
}

func TestHashResetToken_Deterministic(t *testing.T) {
	assert.Equal(t, HashResetToken("abc"), HashResetToken("abc"))
	assert.NotEqual(t, HashResetToken("abc"), HashResetToken("abd"))
}

func TestVerifyResetToken_RoundTrip(t *testing.T) {
	window := 10 * time.Minute
	issuedAt := time.Now()

	token, err := IssueResetToken(window)
	require.NoError(t, err)

	tests := []struct {
		name string
		raw  string
		now  time.Time
		want bool
	}{
		{"valid just before expiry", token.Raw, issuedAt.Add(window - time.Second), true},
		{"expired just after expiry", token.Raw, issuedAt.Add(window + time.Second), false},
		{"wrong token", "deadbeef", issuedAt, false},
		{"empty token", "", issuedAt, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerifyResetToken(tt.raw, token.Hash, token.ExpiresAt, tt.now))
		})
	}
}

func TestVerifyResetToken_EmptyHash(t *testing.T) {
	assert.False(t, VerifyResetToken("abc", "", time.Now().Add(time.Hour), time.Now()))
}
