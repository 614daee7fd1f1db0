package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"bingo_caller/pkg/pass"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T) *ServiceProvider {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("PG_DSN", "")
	t.Setenv("FEED_ADDR", "")
	t.Setenv("HOST_LOGIN", "")
	t.Setenv("HOST_PASSWORD_HASH", "")

	sp := newServiceProvider(filepath.Join(t.TempDir(), "missing.yaml"))
	t.Cleanup(func() { assert.NoError(t, sp.Close()) })
	return sp
}

func serve(h http.Handler, method, target, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_OpenDraw(t *testing.T) {
	sp := newTestProvider(t)
	r := sp.Router()

	assert.Nil(t, sp.JournalService(t.Context()))
	assert.Nil(t, sp.FeedServer())

	assert.Equal(t, http.StatusAccepted, serve(r, http.MethodPost, "/draw", "", "").Code)
	// Цикл длится 3 секунды реального времени
	assert.Equal(t, http.StatusConflict, serve(r, http.MethodPost, "/draw", "", "").Code)

	rec := serve(r, http.MethodGet, "/state", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var state map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.NotEqual(t, "idle", state["phase"])

	rec = serve(r, http.MethodGet, "/columns/75", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"number":75,"column":"O"}`, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodPost, "/auth/login", "{}", "").Code)

	rec = serve(r, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `bingo_draw_requests_total{outcome="busy"} 1`)
	assert.Contains(t, rec.Body.String(), `bingo_draw_requests_total{outcome="accepted"} 1`)
}

func TestRouter_HostProtectedDraw(t *testing.T) {
	sp := newTestProvider(t)
	hash, err := pass.HashPassword("secret")
	require.NoError(t, err)
	t.Setenv("HOST_LOGIN", "host")
	t.Setenv("HOST_PASSWORD_HASH", hash)
	t.Setenv("ACCESS_TOKEN", "test-signing-key")
	r := sp.Router()

	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodPost, "/draw", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized,
		serve(r, http.MethodPost, "/auth/login", `{"login":"host","password":"nope"}`, "").Code)

	rec := serve(r, http.MethodPost, "/auth/login", `{"login":"host","password":"secret"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var login struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.NotEmpty(t, login.AccessToken)

	assert.Equal(t, http.StatusAccepted, serve(r, http.MethodPost, "/draw", "", login.AccessToken).Code)
	// Чтение открыто всем
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/history", "", "").Code)
}
