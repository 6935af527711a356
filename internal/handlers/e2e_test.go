package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"couplesync-backend/internal/config"
	"couplesync-backend/internal/dto"
	"couplesync-backend/internal/middleware"
)

func jsonBody(t *testing.T, payload any) *bytes.Reader {
	t.Helper()
	b, err := json.Marshal(payload)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

// Full flow against a real mux: register, login, then hit a protected route
// with and without the issued token.
func TestRegisterLoginAndProtectedList(t *testing.T) {
	t.Parallel()

	jwtCfg := &config.JWTConfig{Secret: "e2e-secret", AccessTokenTTL: 7 * 24 * time.Hour}
	authHandler := NewAuthHandler(newFakeUserStore(), jwtCfg)
	photoHandler, _, _ := testPhotoHandler()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/register", authHandler.Register)
	mux.HandleFunc("/api/login", authHandler.Login)
	mux.HandleFunc("/api/fotos", middleware.AuthMiddleware(photoHandler.Photos, jwtCfg))

	srv := httptest.NewServer(mux)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/register", "application/json",
		jsonBody(t, dto.RegisterRequest{Email: "a@x.com", Password: "pw123"}))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/api/login", "application/json",
		jsonBody(t, dto.LoginRequest{Email: "a@x.com", Password: "pw123"}))
	require.NoError(t, err)
	var login dto.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&login))
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, login.Token)

	// Without token: rejected before the handler
	resp, err = http.Get(srv.URL + "/api/fotos")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// With token: empty list
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/fotos", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var photos []dto.PhotoResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&photos))
	assert.Empty(t, photos)
}
