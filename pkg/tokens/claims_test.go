package tokens

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessToken_RoundTrip(t *testing.T) {
	t.Parallel()

	secret := []byte("access")
	tok, err := NewAccessToken(secret, "u-1", "a@b.io", time.Now().Add(time.Minute))
	require.NoError(t, err)

	claims, err := AccessClaimsFromToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.Subject)
	assert.Equal(t, "a@b.io", claims.Email)

	_, err = AccessClaimsFromToken(tok, []byte("other"))
	require.Error(t, err)
}

func TestAccessToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("access")
	tok, err := NewAccessToken(secret, "u-1", "a@b.io", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(tok, secret)
	require.Error(t, err)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestRefreshToken_CarriesJTI(t *testing.T) {
	t.Parallel()

	secret := []byte("refresh")
	tok, jti, err := NewRefreshToken(secret, "u-2", time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.NotEmpty(t, jti)

	claims, err := RefreshClaimsFromToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, jti, claims.ID)
	assert.Equal(t, "u-2", claims.Subject)
}

func TestRejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, AccessClaims{Email: "x"})
	s, err := tok.SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(s, []byte("k"))
	require.Error(t, err)
}

func TestCookies(t *testing.T) {
	t.Parallel()

	c := CreateCookie(AccessCookie, "v", "/", time.Now().Add(time.Hour), true)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)

	d := DeleteCookie(AccessCookie, "/", false)
	assert.Equal(t, -1, d.MaxAge)
	assert.Empty(t, d.Value)
	assert.Len(t, Sha256Hex("abc"), 64)
}
