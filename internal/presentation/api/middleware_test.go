package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DONGWAN-LEE/vibe-gateway/internal/infrastructure/logging"
	"github.com/DONGWAN-LEE/vibe-gateway/internal/infrastructure/ratelimiter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRateLimitedApp(maxBurst int) *Application {
	return &Application{
		logger: logging.NewNop(),
		ratelimiter: ratelimiter.New(ratelimiter.Options{
			MaxRatePerSecond: 1,
			MaxBurst:         maxBurst,
			CacheTTL:         time.Minute,
			SourceHeaderKey:  "X-Forwarded-For",
		}),
	}
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimiterMiddleware_DeniesWithJSONEnvelope(t *testing.T) {
	app := newRateLimitedApp(0)

	handler := app.rateLimiterMiddleware(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/gateway/stats", nil))

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	var resp struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusText(http.StatusTooManyRequests), resp.Error)
	assert.NotEmpty(t, resp.Message)
}

func TestRateLimiterMiddleware_AllowsWithinBurst(t *testing.T) {
	app := newRateLimitedApp(5)

	handler := app.rateLimiterMiddleware(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/gateway/stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "5", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "4", rec.Header().Get("X-RateLimit-Remaining"))
}
