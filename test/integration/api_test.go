// Package integration provides end-to-end integration tests for the numbers API.
// Tests the full route table against both PostgreSQL and MySQL databases.
package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/numbers/internal/app"
	authDTO "github.com/allisson/numbers/internal/auth/http/dto"
	"github.com/allisson/numbers/internal/config"
	numbersDTO "github.com/allisson/numbers/internal/numbers/http/dto"
	"github.com/allisson/numbers/internal/testutil"
)

// authUsers is the credential table used by the integration tests. Two users
// with full capabilities are needed to verify owner isolation, plus a
// read-only user to verify capability enforcement.
const authUsers = `[
	{"username": "admin", "secret": "1234", "role": "administrator",
	 "capabilities": ["numbers:read", "numbers:write", "numbers:delete"]},
	{"username": "bob", "secret": "hunter2", "role": "user",
	 "capabilities": ["numbers:read", "numbers:write", "numbers:delete"]},
	{"username": "viewer", "secret": "read-only", "role": "user",
	 "capabilities": ["numbers:read"]}
]`

// integrationTestContext holds all dependencies and state for integration testing.
type integrationTestContext struct {
	container *app.Container
	db        *sql.DB
	server    *httptest.Server
	dbDriver  string
}

// makeRequest performs an HTTP request and returns the response and body.
func (ctx *integrationTestContext) makeRequest(
	t *testing.T,
	method, path string,
	body interface{},
	token string,
) (*http.Response, []byte) {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err, "failed to marshal request body")
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, ctx.server.URL+path, bodyReader)
	require.NoError(t, err, "failed to create request")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	require.NoError(t, err, "failed to perform request")

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	if closeErr := resp.Body.Close(); closeErr != nil {
		t.Logf("Warning: failed to close response body: %v", closeErr)
	}

	return resp, respBody
}

// login obtains an access token for the given credentials.
func (ctx *integrationTestContext) login(t *testing.T, username, password string) string {
	t.Helper()

	resp, body := ctx.makeRequest(t, http.MethodPost, "/login", map[string]string{
		"username": username,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, "login failed: %s", string(body))

	var loginResp authDTO.LoginResponse
	require.NoError(t, json.Unmarshal(body, &loginResp))
	require.Equal(t, "bearer", loginResp.TokenType)
	require.NotEmpty(t, loginResp.AccessToken)

	return loginResp.AccessToken
}

// createNumber stores a record and returns its response representation.
func (ctx *integrationTestContext) createNumber(t *testing.T, token string, value int64) numbersDTO.NumberResponse {
	t.Helper()

	resp, body := ctx.makeRequest(t, http.MethodPost, "/numbers", map[string]int64{"value": value}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "create failed: %s", string(body))

	var created numbersDTO.NumberResponse
	require.NoError(t, json.Unmarshal(body, &created))
	return created
}

// setupIntegrationTest initializes all components for integration testing.
func setupIntegrationTest(t *testing.T, dbDriver string) *integrationTestContext {
	t.Helper()

	gin.SetMode(gin.TestMode)

	var db *sql.DB
	var dsn string
	if dbDriver == "postgres" {
		db = testutil.SetupPostgresDB(t)
		dsn = testutil.GetPostgresTestDSN()
	} else {
		db = testutil.SetupMySQLDB(t)
		dsn = testutil.GetMySQLTestDSN()
	}

	cfg := &config.Config{
		DBDriver:             dbDriver,
		DBConnectionString:   dsn,
		DBMaxOpenConnections: 10,
		DBMaxIdleConnections: 5,
		DBConnMaxLifetime:    time.Hour,
		ServerHost:           "localhost",
		ServerPort:           8080,
		LogLevel:             "error",
		JWTSecret:            "integration-test-secret",
		JWTExpiration:        time.Hour,
		AuthUsers:            authUsers,
	}

	container := app.NewContainer(cfg)

	server, err := container.HTTPServer()
	require.NoError(t, err, "failed to initialize HTTP server")

	testServer := httptest.NewServer(server.GetRouter())

	ctx := &integrationTestContext{
		container: container,
		db:        db,
		server:    testServer,
		dbDriver:  dbDriver,
	}

	t.Cleanup(func() {
		testServer.Close()
		if err := container.Shutdown(context.Background()); err != nil {
			t.Logf("Warning: failed to shutdown container: %v", err)
		}
		testutil.TeardownDB(t, db)
	})

	return ctx
}

// cleanup truncates the records table between subtests.
func (ctx *integrationTestContext) cleanup(t *testing.T) {
	t.Helper()

	if ctx.dbDriver == "postgres" {
		testutil.CleanupPostgresDB(t, ctx.db)
	} else {
		testutil.CleanupMySQLDB(t, ctx.db)
	}
}

func TestAPI_Postgres(t *testing.T) {
	runAPITestSuite(t, "postgres")
}

func TestAPI_MySQL(t *testing.T) {
	runAPITestSuite(t, "mysql")
}

func runAPITestSuite(t *testing.T, dbDriver string) {
	ctx := setupIntegrationTest(t, dbDriver)

	t.Run("HealthAndReadiness", func(t *testing.T) {
		resp, body := ctx.makeRequest(t, http.MethodGet, "/health", nil, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"status": "healthy"}`, string(body))

		resp, _ = ctx.makeRequest(t, http.MethodGet, "/ready", nil, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Login", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			token := ctx.login(t, "admin", "1234")
			assert.NotEmpty(t, token)
		})

		t.Run("WrongPassword", func(t *testing.T) {
			resp, _ := ctx.makeRequest(t, http.MethodPost, "/login", map[string]string{
				"username": "admin",
				"password": "wrong",
			}, "")

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Contains(t, resp.Header.Get("Content-Type"), "application/problem+json")
		})

		t.Run("MissingFields", func(t *testing.T) {
			resp, _ := ctx.makeRequest(t, http.MethodPost, "/login", map[string]string{
				"username": "admin",
			}, "")

			assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		})
	})

	t.Run("RequiresAuthentication", func(t *testing.T) {
		resp, body := ctx.makeRequest(t, http.MethodGet, "/numbers", nil, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "application/problem+json")
		assert.Contains(t, string(body), `"status":401`)
	})

	t.Run("NumberLifecycle", func(t *testing.T) {
		defer ctx.cleanup(t)
		token := ctx.login(t, "admin", "1234")

		created := ctx.createNumber(t, token, 42)
		assert.Equal(t, int64(42), created.Value)
		assert.NotEmpty(t, created.ID)

		// Get it back
		resp, body := ctx.makeRequest(t, http.MethodGet, "/numbers/"+created.ID, nil, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var fetched numbersDTO.NumberResponse
		require.NoError(t, json.Unmarshal(body, &fetched))
		assert.Equal(t, created.ID, fetched.ID)
		assert.Equal(t, int64(42), fetched.Value)

		// Update the value
		resp, body = ctx.makeRequest(t, http.MethodPut, "/numbers/"+created.ID, map[string]int64{"value": 100}, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var updated numbersDTO.NumberResponse
		require.NoError(t, json.Unmarshal(body, &updated))
		assert.Equal(t, int64(100), updated.Value)

		// Delete it
		resp, body = ctx.makeRequest(t, http.MethodDelete, "/numbers/"+created.ID, nil, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"message": "Number deleted"}`, string(body))

		// Gone now
		resp, _ = ctx.makeRequest(t, http.MethodGet, "/numbers/"+created.ID, nil, token)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("CreateValidation", func(t *testing.T) {
		defer ctx.cleanup(t)
		token := ctx.login(t, "admin", "1234")

		resp, body := ctx.makeRequest(t, http.MethodPost, "/numbers", map[string]int64{"value": 0}, token)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "application/problem+json")
		assert.Contains(t, string(body), "must be greater than 0")

		resp, _ = ctx.makeRequest(t, http.MethodPost, "/numbers", map[string]int64{"value": -5}, token)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("ListAndStats", func(t *testing.T) {
		defer ctx.cleanup(t)
		token := ctx.login(t, "admin", "1234")

		for _, value := range []int64{3, 5, 5} {
			ctx.createNumber(t, token, value)
		}

		resp, body := ctx.makeRequest(t, http.MethodGet, "/numbers", nil, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var list numbersDTO.ListNumbersResponse
		require.NoError(t, json.Unmarshal(body, &list))
		assert.Equal(t, "admin", list.Username)
		require.Len(t, list.Numbers, 3)
		assert.Equal(t, int64(3), list.Numbers[0].Value)
		assert.Equal(t, int64(5), list.Numbers[1].Value)
		assert.Equal(t, int64(5), list.Numbers[2].Value)

		resp, body = ctx.makeRequest(t, http.MethodGet, "/stats", nil, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var stats numbersDTO.StatisticsResponse
		require.NoError(t, json.Unmarshal(body, &stats))
		assert.Equal(t, "admin", stats.Username)
		assert.Equal(t, 3, stats.Statistics.Count)
		assert.Equal(t, int64(13), stats.Statistics.Sum)
		assert.InDelta(t, 4.33, stats.Statistics.Average, 0.001)
		require.NotNil(t, stats.Statistics.Min)
		require.NotNil(t, stats.Statistics.Max)
		assert.Equal(t, int64(3), *stats.Statistics.Min)
		assert.Equal(t, int64(5), *stats.Statistics.Max)
	})

	t.Run("EmptyStats", func(t *testing.T) {
		defer ctx.cleanup(t)
		token := ctx.login(t, "admin", "1234")

		resp, body := ctx.makeRequest(t, http.MethodGet, "/stats", nil, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var stats numbersDTO.StatisticsResponse
		require.NoError(t, json.Unmarshal(body, &stats))
		assert.Equal(t, 0, stats.Statistics.Count)
		assert.Nil(t, stats.Statistics.Min)
		assert.Nil(t, stats.Statistics.Max)

		resp, body = ctx.makeRequest(t, http.MethodGet, "/numbers", nil, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(body), `"numbers":[]`)
	})

	t.Run("OwnerIsolation", func(t *testing.T) {
		defer ctx.cleanup(t)
		adminToken := ctx.login(t, "admin", "1234")
		bobToken := ctx.login(t, "bob", "hunter2")

		record := ctx.createNumber(t, adminToken, 7)

		// Bob cannot see admin's record; the response is identical to a
		// record that does not exist at all.
		resp, crossBody := ctx.makeRequest(t, http.MethodGet, "/numbers/"+record.ID, nil, bobToken)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Contains(t, string(crossBody), "Number not found")

		resp, _ = ctx.makeRequest(t, http.MethodPut, "/numbers/"+record.ID, map[string]int64{"value": 999}, bobToken)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		resp, _ = ctx.makeRequest(t, http.MethodDelete, "/numbers/"+record.ID, nil, bobToken)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		// Bob's list stays empty and admin's record is untouched
		resp, body := ctx.makeRequest(t, http.MethodGet, "/numbers", nil, bobToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var bobList numbersDTO.ListNumbersResponse
		require.NoError(t, json.Unmarshal(body, &bobList))
		assert.Empty(t, bobList.Numbers)

		resp, body = ctx.makeRequest(t, http.MethodGet, "/numbers/"+record.ID, nil, adminToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var adminRecord numbersDTO.NumberResponse
		require.NoError(t, json.Unmarshal(body, &adminRecord))
		assert.Equal(t, int64(7), adminRecord.Value)
	})

	t.Run("CapabilityEnforcement", func(t *testing.T) {
		defer ctx.cleanup(t)
		viewerToken := ctx.login(t, "viewer", "read-only")

		// Reads are allowed
		resp, _ := ctx.makeRequest(t, http.MethodGet, "/numbers", nil, viewerToken)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		// Writes and deletes are not
		resp, _ = ctx.makeRequest(t, http.MethodPost, "/numbers", map[string]int64{"value": 1}, viewerToken)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		resp, _ = ctx.makeRequest(t, http.MethodDelete, "/numbers/"+"00000000-0000-0000-0000-000000000000", nil, viewerToken)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("LogoutRevokesToken", func(t *testing.T) {
		defer ctx.cleanup(t)
		token := ctx.login(t, "admin", "1234")

		resp, body := ctx.makeRequest(t, http.MethodPost, "/logout", nil, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"message": "Successfully logged out"}`, string(body))

		// The token no longer works even though it has not expired
		resp, _ = ctx.makeRequest(t, http.MethodGet, "/numbers", nil, token)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		// A fresh login issues a working token again
		freshToken := ctx.login(t, "admin", "1234")
		resp, _ = ctx.makeRequest(t, http.MethodGet, "/numbers", nil, freshToken)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("MalformedRecordID", func(t *testing.T) {
		token := ctx.login(t, "admin", "1234")

		resp, body := ctx.makeRequest(t, http.MethodGet, "/numbers/not-a-uuid", nil, token)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Contains(t, string(body), "Number not found")
	})
}
