package token

import (
	"testing"
	"time"

	"bingo_caller/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessToken_RoundTrip(t *testing.T) {
	secret := []byte("secret")
	tok, err := GenerateAccessToken(&model.Host{Login: "host"}, secret, time.Minute)
	require.NoError(t, err)

	claims, err := VerifyToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, "host", claims.Subject)
}

func TestVerifyToken_Rejects(t *testing.T) {
	secret := []byte("secret")

	expired, err := GenerateAccessToken(&model.Host{Login: "host"}, secret, -time.Minute)
	require.NoError(t, err)
	_, err = VerifyToken(expired, secret)
	assert.Error(t, err)

	valid, err := GenerateAccessToken(&model.Host{Login: "host"}, secret, time.Minute)
	require.NoError(t, err)
	_, err = VerifyToken(valid, []byte("other"))
	assert.Error(t, err)

	_, err = VerifyToken("garbage", secret)
	assert.Error(t, err)
}
