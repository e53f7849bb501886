package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/numbers/internal/auth/http/dto"
	"github.com/allisson/numbers/internal/auth/repository"
	"github.com/allisson/numbers/internal/auth/service"
	authUseCase "github.com/allisson/numbers/internal/auth/usecase"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// newTestRouter wires a real auth stack behind a gin router.
func newTestRouter(t *testing.T) (*gin.Engine, authUseCase.AuthUseCase) {
	t.Helper()

	userRepo := repository.NewStaticUserRepository(nil)
	codec := service.NewJWTCodec("test-secret", 15*time.Minute)
	comparer := service.NewSecretComparer()
	blacklist := service.NewMemoryBlacklist(codec)
	authUC := authUseCase.NewAuthUseCase(userRepo, codec, comparer, blacklist)

	logger := testLogger()
	handler := NewAuthHandler(authUC, logger)

	router := gin.New()
	router.POST("/login", handler.LoginHandler)
	router.POST("/logout", AuthenticationMiddleware(authUC, logger), handler.LogoutHandler)

	return router, authUC
}

func doLogin(t *testing.T, router *gin.Engine, username, password string) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("ValidCredentials", func(t *testing.T) {
		router, _ := newTestRouter(t)

		w := doLogin(t, router, "admin", "1234")

		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "bearer", resp.TokenType)
	})

	t.Run("InvalidPassword", func(t *testing.T) {
		router, _ := newTestRouter(t)

		w := doLogin(t, router, "admin", "wrong")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
	})

	t.Run("UnknownUser", func(t *testing.T) {
		router, _ := newTestRouter(t)

		w := doLogin(t, router, "nobody", "1234")

		// Same status as a wrong password so callers cannot enumerate usernames.
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("MissingFields", func(t *testing.T) {
		router, _ := newTestRouter(t)

		w := doLogin(t, router, "", "")

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		router, _ := newTestRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader([]byte("not-json")))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	t.Run("RevokesPresentedToken", func(t *testing.T) {
		router, _ := newTestRouter(t)

		loginResp := doLogin(t, router, "admin", "1234")
		require.Equal(t, http.StatusOK, loginResp.Code)

		var login dto.LoginResponse
		require.NoError(t, json.Unmarshal(loginResp.Body.Bytes(), &login))

		// First logout succeeds
		req := httptest.NewRequest(http.MethodPost, "/logout", nil)
		req.Header.Set("Authorization", "Bearer "+login.AccessToken)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var msg dto.MessageResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msg))
		assert.Equal(t, "Successfully logged out", msg.Message)

		// Second use of the same token is rejected at authentication
		req = httptest.NewRequest(http.MethodPost, "/logout", nil)
		req.Header.Set("Authorization", "Bearer "+login.AccessToken)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("NoToken", func(t *testing.T) {
		router, _ := newTestRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/logout", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
