package middleware

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/config"
	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/errs"
	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/server"
)

func testServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{Primary: config.Primary{Env: "test"}},
		Logger: &logger,
	}
}

func TestRequestID(t *testing.T) {
	e := echo.New()
	handler := RequestID()(func(c echo.Context) error {
		return c.String(http.StatusOK, GetRequestID(c))
	})

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		require.NoError(t, handler(c))
		assert.NotEmpty(t, rec.Body.String())
		assert.Equal(t, rec.Body.String(), rec.Header().Get(RequestIDHeader))
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		rec := httptest.NewRecorder()

		require.NoError(t, handler(e.NewContext(req, rec)))
		assert.Equal(t, "abc-123", rec.Body.String())
	})
}

func TestEnhanceContext_StoresLoggerInRequestContext(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	s := testServer()
	s.Logger = &logger

	e := echo.New()
	ce := NewContextEnhancer(s)

	handler := RequestID()(ce.EnhanceContext()(func(c echo.Context) error {
		zerolog.Ctx(c.Request().Context()).Info().Msg("from request context")
		GetLogger(c).Info().Msg("from echo context")
		return nil
	}))

	req := httptest.NewRequest(http.MethodGet, "/db-api", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	require.NoError(t, handler(e.NewContext(req, httptest.NewRecorder())))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Contains(t, line, `"request_id":"abc-123"`)
		assert.Contains(t, line, `"method":"GET"`)
	}
	assert.Contains(t, lines[0], "from request context")
	assert.Contains(t, lines[1], "from echo context")
}

func TestGetLogger_Fallback(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.NotNil(t, GetLogger(c))
}

func TestGlobalErrorHandler(t *testing.T) {
	global := NewGlobalMiddlewares(testServer())

	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"http error", errs.NewBadRequestError(), http.StatusBadRequest, `{"error":"Invalid request"}`},
		{"unknown route", echo.ErrNotFound, http.StatusNotFound, `{"error":"Route not found"}`},
		{"method not allowed", echo.ErrMethodNotAllowed, http.StatusBadRequest, `{"error":"Invalid request"}`},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, `{"error":"boom"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			global.GlobalErrorHandler(tt.err, c)

			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
