package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hugh/otp-auth/internal/api/dto"
	"github.com/hugh/otp-auth/internal/api/handlers"
	"github.com/hugh/otp-auth/internal/testutil"
	"github.com/stretchr/testify/assert"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler_Health(t *testing.T) {
	t.Run("healthy store", func(t *testing.T) {
		h := handlers.NewHealthHandler(testutil.NewTestStore(t), nil)

		rr := httptest.NewRecorder()
		h.Health(rr, httptest.NewRequest("GET", "/health", nil))

		testutil.AssertStatus(t, rr, http.StatusOK)
		var resp dto.HealthResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, "healthy", resp.Status)
		assert.Equal(t, "healthy", resp.Services["database"])
		assert.NotContains(t, resp.Services, "redis")
	})

	t.Run("store down", func(t *testing.T) {
		h := handlers.NewHealthHandler(pingFunc(func(context.Context) error {
			return errors.New("no route to host")
		}), nil)

		rr := httptest.NewRecorder()
		h.Health(rr, httptest.NewRequest("GET", "/health", nil))

		testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
		var resp dto.HealthResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, "unhealthy", resp.Status)
		assert.Equal(t, "unhealthy", resp.Services["database"])
	})
}

func TestHealthHandler_Root(t *testing.T) {
	h := handlers.NewHealthHandler(pingFunc(func(context.Context) error { return nil }), nil)

	rr := httptest.NewRecorder()
	h.Root(rr, httptest.NewRequest("GET", "/", nil))

	testutil.AssertStatus(t, rr, http.StatusOK)
	assert.Equal(t, "API Working", rr.Body.String())
}
