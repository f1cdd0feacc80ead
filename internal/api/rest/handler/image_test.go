package handler

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/clinic-server/internal/apperr"
	"github.com/dtroode/clinic-server/internal/testutil"
)

func TestImage_Get(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		setup       func(svc *MockImageService)
		wantStatus  int
		wantType    string
		wantContent string
	}{
		{
			name: "stored image",
			setup: func(svc *MockImageService) {
				svc.On("Open", mock.Anything, "doctor-1-1.png").
					Return(io.NopCloser(strings.NewReader("png-bytes")), "image/png", nil)
			},
			wantStatus:  http.StatusOK,
			wantType:    "image/png",
			wantContent: "png-bytes",
		},
		{
			name: "missing image",
			setup: func(svc *MockImageService) {
				svc.On("Open", mock.Anything, "doctor-1-1.png").Return(nil, "", apperr.NotFound("Image not found"))
			},
			wantStatus: http.StatusNotFound,
			wantType:   "application/json; charset=utf-8",
		},
		{
			name: "storage down",
			setup: func(svc *MockImageService) {
				svc.On("Open", mock.Anything, "doctor-1-1.png").Return(nil, "", apperr.Dependency(errors.New("timeout"), "failed to read image"))
			},
			wantStatus: http.StatusInternalServerError,
			wantType:   "application/json; charset=utf-8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &MockImageService{}
			tt.setup(svc)
			h := NewImage(svc, testutil.MakeNoopLogger())

			r := chi.NewRouter()
			r.Get("/images/{name}", h.Get)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/images/doctor-1-1.png", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantType, rec.Header().Get("Content-Type"))
			if tt.wantContent != "" {
				assert.Equal(t, tt.wantContent, rec.Body.String())
			}
		})
	}
}
