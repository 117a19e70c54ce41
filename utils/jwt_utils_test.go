package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("u1", "u1@example.com", "User One", "secret", "arkive", time.Hour)
	require.NoError(t, err)

	v := &JWTVerifier{Secret: "secret", Issuer: "arkive"}
	claims, err := v.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "u1@example.com", claims.Email)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("u1", "", "", "secret", "arkive", time.Hour)
	require.NoError(t, err)

	v := &JWTVerifier{Secret: "other", Issuer: "arkive"}
	_, err = v.VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyTokenExpired(t *testing.T) {
	token, err := GenerateToken("u1", "", "", "secret", "arkive", -time.Minute)
	require.NoError(t, err)

	v := &JWTVerifier{Secret: "secret", Issuer: "arkive"}
	_, err = v.VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyTokenWrongIssuer(t *testing.T) {
	token, err := GenerateToken("u1", "", "", "secret", "someone-else", time.Hour)
	require.NoError(t, err)

	v := &JWTVerifier{Secret: "secret", Issuer: "arkive"}
	_, err = v.VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyTokenGarbage(t *testing.T) {
	v := &JWTVerifier{Secret: "secret", Issuer: "arkive"}
	_, err := v.VerifyToken("not.a.token")
	assert.Error(t, err)
}
