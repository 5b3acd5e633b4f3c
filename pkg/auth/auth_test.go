package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordIsSaltedAndVerifiable(t *testing.T) {
	h1, err := HashPassword("s3cret")
	require.NoError(t, err)
	h2, err := HashPassword("s3cret")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(h1, "$argon2id$v=19$"))
	assert.NotEqual(t, h1, h2, "same password must hash differently")
	assert.NotContains(t, h1, "s3cret")

	assert.True(t, CheckPassword(h1, "s3cret"))
	assert.True(t, CheckPassword(h2, "s3cret"))
	assert.False(t, CheckPassword(h1, "S3cret"))
}

func TestCheckPasswordRejectsMalformedHashes(t *testing.T) {
	for _, h := range []string{"", "s3cret", "$argon2i$v=19$m=1,t=1,p=1$c2FsdA$a2V5", "$argon2id$v=19$m=x$c2FsdA$a2V5"} {
		assert.False(t, CheckPassword(h, "s3cret"), h)
	}
}

func TestHashWithCustomParams(t *testing.T) {
	h, err := hashWith("pw", Params{Memory: 8, Iterations: 1, Parallelism: 1, SaltLength: 8, KeyLength: 16})
	require.NoError(t, err)
	assert.Contains(t, h, "m=8,t=1,p=1")
	assert.True(t, CheckPassword(h, "pw"))
}

func TestTokenRoundTrip(t *testing.T) {
	tok, exp, err := GenerateToken("u-1", "aanya", "Artist")
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	claims, err := ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID())
	assert.Equal(t, "aanya", claims.Name)
	assert.Equal(t, "Artist", claims.Role)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	tok, _, err := GenerateToken("u-1", "aanya", "Visitor")
	require.NoError(t, err)

	_, err = ValidateToken(tok + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: "Admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u-1",
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := forged.SignedString([]byte("not-the-secret"))
	require.NoError(t, err)
	_, err = ValidateToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u-1",
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	signed, err := expired.SignedString(secret())
	require.NoError(t, err)

	_, err = ValidateToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
