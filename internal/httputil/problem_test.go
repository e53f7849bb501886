package httputil

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/numbers/internal/errors"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestContext(path string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, path, nil)
	return c, w
}

func decodeProblem(t *testing.T, w *httptest.ResponseRecorder) ProblemDetails {
	t.Helper()

	var problem ProblemDetails
	err := json.Unmarshal(w.Body.Bytes(), &problem)
	require.NoError(t, err)
	return problem
}

func TestHandleErrorGin(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantTitle  string
	}{
		{"NotFound", apperrors.ErrNotFound, http.StatusNotFound, "Not Found"},
		{"WrappedNotFound", apperrors.Wrap(apperrors.ErrNotFound, "number"), http.StatusNotFound, "Not Found"},
		{"InvalidInput", apperrors.ErrInvalidInput, http.StatusUnprocessableEntity, "Validation Error"},
		{"Unauthorized", apperrors.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
		{"Forbidden", apperrors.ErrForbidden, http.StatusForbidden, "Forbidden"},
		{"StorageFailure", apperrors.ErrStorageFailure, http.StatusInternalServerError, "Internal Server Error"},
		{"Unknown", apperrors.New("boom"), http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext("/numbers/42")

			HandleErrorGin(c, tt.err, logger)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "application/problem+json")

			problem := decodeProblem(t, w)
			assert.Equal(t, "about:blank", problem.Type)
			assert.Equal(t, tt.wantTitle, problem.Title)
			assert.Equal(t, tt.wantStatus, problem.Status)
			assert.Equal(t, "/numbers/42", problem.Instance)
		})
	}

	t.Run("NilErrorWritesNothing", func(t *testing.T) {
		c, w := newTestContext("/numbers")

		HandleErrorGin(c, nil, logger)

		assert.Empty(t, w.Body.String())
	})

	t.Run("UnknownErrorHidesDetails", func(t *testing.T) {
		c, w := newTestContext("/numbers")

		HandleErrorGin(c, apperrors.New("connection string with password"), logger)

		problem := decodeProblem(t, w)
		assert.Equal(t, "An unexpected error occurred", problem.Detail)
		assert.NotContains(t, w.Body.String(), "password")
	})
}

func TestHandleValidationErrorGin(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c, w := newTestContext("/numbers")

	HandleValidationErrorGin(c, apperrors.New("value: must be greater than 0"), logger)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	problem := decodeProblem(t, w)
	assert.Equal(t, "Validation Error", problem.Title)
	assert.Equal(t, "value: must be greater than 0", problem.Detail)
}

func TestHandleBadRequestGin(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c, w := newTestContext("/login")

	HandleBadRequestGin(c, apperrors.New("invalid character"), logger)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	problem := decodeProblem(t, w)
	assert.Equal(t, "Bad Request", problem.Title)
}
