// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/library-api/internal/config"
	"github.com/carterperez-dev/library-api/internal/core"
)

func newTestJWTManager(t *testing.T, expire time.Duration) *JWTManager {
	t.Helper()

	dir := t.TempDir()
	privatePath := filepath.Join(dir, "private.pem")
	publicPath := filepath.Join(dir, "public.pem")

	require.NoError(t, GenerateKeyPair(privatePath, publicPath))

	manager, err := NewJWTManager(config.JWTConfig{
		PrivateKeyPath:    privatePath,
		PublicKeyPath:     publicPath,
		AccessTokenExpire: expire,
		Issuer:            "library-api",
		Audience:          "library-api-clients",
	})
	require.NoError(t, err)

	return manager
}

func TestAccessTokenRoundTrip(t *testing.T) {
	manager := newTestJWTManager(t, time.Hour)

	token, err := manager.CreateAccessToken(AccessTokenClaims{
		UserID: 42,
		Email:  "reader@example.com",
		Role:   "USER",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.VerifyAccessToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "reader@example.com", claims.Email)
	assert.Equal(t, "USER", claims.Role)
}

func TestExpiredTokenRejected(t *testing.T) {
	manager := newTestJWTManager(t, -time.Minute)

	token, err := manager.CreateAccessToken(AccessTokenClaims{
		UserID: 1,
		Email:  "reader@example.com",
		Role:   "USER",
	})
	require.NoError(t, err)

	_, err = manager.VerifyAccessToken(context.Background(), token)

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrTokenExpired)
}

func TestTokenFromForeignKeyRejected(t *testing.T) {
	manager := newTestJWTManager(t, time.Hour)
	other := newTestJWTManager(t, time.Hour)

	token, err := other.CreateAccessToken(AccessTokenClaims{
		UserID: 1,
		Email:  "reader@example.com",
		Role:   "USER",
	})
	require.NoError(t, err)

	_, err = manager.VerifyAccessToken(context.Background(), token)

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestGarbageTokenRejected(t *testing.T) {
	manager := newTestJWTManager(t, time.Hour)

	_, err := manager.VerifyAccessToken(
		context.Background(), "not.a.token")

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestJWKSHandlerServesPublicKey(t *testing.T) {
	manager := newTestJWTManager(t, time.Hour)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/.well-known/jwks.json", nil)

	manager.GetJWKSHandler()(recorder, request)

	assert.Equal(t, 200, recorder.Code)
	assert.Equal(t,
		"application/json",
		recorder.Header().Get("Content-Type"),
	)

	var body struct {
		Keys []map[string]any `json:"keys"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Len(t, body.Keys, 1)

	assert.Equal(t, "EC", body.Keys[0]["kty"])
	assert.Equal(t, manager.GetKeyID(), body.Keys[0]["kid"])
	assert.NotContains(t, body.Keys[0], "d")
}
