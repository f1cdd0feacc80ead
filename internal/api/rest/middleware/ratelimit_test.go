package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dtroode/clinic-server/internal/metrics"
	"github.com/dtroode/clinic-server/internal/testutil"
)

func TestRateLimit_Handle(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimit(60, 2, metrics.New(), testutil.MakeNoopLogger())
	rl.now = func() time.Time { return now }

	handler := rl.Handle(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	call := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1:5000"))
	assert.Equal(t, http.StatusOK, call("10.0.0.1:5001"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:5002"))

	assert.Equal(t, http.StatusOK, call("10.0.0.2:5000"), "other clients keep their own bucket")

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusOK, call("10.0.0.1:5003"), "one token refills per second at 60/min")
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:5004"))
}

func TestRateLimit_SweepsIdleClients(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimit(10, 1, nil, testutil.MakeNoopLogger())
	rl.now = func() time.Time { return now }

	assert.True(t, rl.allow("10.0.0.1"))
	assert.Len(t, rl.visitors, 1)

	now = now.Add(limiterIdleTTL + time.Minute)
	assert.True(t, rl.allow("10.0.0.2"))
	assert.Len(t, rl.visitors, 1)
}

func TestClientAddress(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.7:41000"
	assert.Equal(t, "192.0.2.7", clientAddress(req))

	req.RemoteAddr = "192.0.2.7"
	assert.Equal(t, "192.0.2.7", clientAddress(req))
}
