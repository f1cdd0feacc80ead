package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dtroode/clinic-server/internal/testutil"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealth_Check(t *testing.T) {
	t.Parallel()

	up := NewHealth(pingerFunc(func(context.Context) error { return nil }), testutil.MakeNoopLogger())
	rec := httptest.NewRecorder()
	up.Check(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	down := NewHealth(pingerFunc(func(context.Context) error { return errors.New("refused") }), testutil.MakeNoopLogger())
	rec = httptest.NewRecorder()
	down.Check(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
