package auth

import (
	"regexp"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("password")
	require.NoError(t, err)
	assert.NotEqual(t, "password", hash)

	assert.True(t, CheckPassword("password", hash))
	assert.False(t, CheckPassword("wrongPassword", hash))
	assert.False(t, CheckPassword("password", "not-a-bcrypt-hash"))
}

func TestHashPassword_Salted(t *testing.T) {
	first, err := HashPassword("password")
	require.NoError(t, err)
	second, err := HashPassword("password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestGenerateToken_SixDigits(t *testing.T) {
	pattern := regexp.MustCompile(`^[1-9][0-9]{5}$`)
	for i := 0; i < 200; i++ {
		token, err := GenerateToken()
		require.NoError(t, err)
		assert.Regexp(t, pattern, token)
	}
}

func TestSessionTokens_RoundTrip(t *testing.T) {
	tokens := NewSessionTokens("secret", time.Hour)

	signed, err := tokens.Issue(42)
	require.NoError(t, err)

	userID, err := tokens.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestSessionTokens_RejectsTampering(t *testing.T) {
	tokens := NewSessionTokens("secret", time.Hour)
	other := NewSessionTokens("another-secret", time.Hour)

	signed, err := other.Issue(1)
	require.NoError(t, err)

	_, err = tokens.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tokens.Verify("not_valid")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionTokens_RejectsExpired(t *testing.T) {
	tokens := NewSessionTokens("secret", time.Hour)
	tokens.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	signed, err := tokens.Issue(7)
	require.NoError(t, err)

	tokens.now = time.Now
	_, err = tokens.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionTokens_RejectsOtherAlgorithms(t *testing.T) {
	tokens := NewSessionTokens("secret", time.Hour)

	claims := SessionClaims{
		ID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tokens.Verify(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
