package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestReviewerToken_RoundTrip(t *testing.T) {
	token, err := GenerateReviewerToken("Jane", secret)
	require.NoError(t, err)

	name, err := ParseReviewerToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "Jane", name)
}

func TestParseReviewerToken_WrongSecret(t *testing.T) {
	token, err := GenerateReviewerToken("Jane", secret)
	require.NoError(t, err)

	_, err = ParseReviewerToken(token, []byte("other"))
	assert.Error(t, err)
}

func TestParseReviewerToken_Expired(t *testing.T) {
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "Jane",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := expired.SignedString(secret)
	require.NoError(t, err)

	_, err = ParseReviewerToken(signed, secret)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseReviewerToken_Garbage(t *testing.T) {
	_, err := ParseReviewerToken("not-a-token", secret)
	assert.Error(t, err)
}
