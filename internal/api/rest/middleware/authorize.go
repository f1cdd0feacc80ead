package middleware

import (
	"net/http"

	"github.com/dtroode/clinic-server/internal/api/rest/response"
	"github.com/dtroode/clinic-server/internal/apperr"
	"github.com/dtroode/clinic-server/internal/logger"
	"github.com/dtroode/clinic-server/internal/model"
)

// RoleGuard checks the role carried by claims.
type RoleGuard interface {
	RequireRole(claims model.Claims, roles ...model.Role) error
}

// Authorize restricts routes to a set of roles. It must run after Authenticate.
type Authorize struct {
	guard          RoleGuard
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthorize creates a new Authorize middleware instance.
func NewAuthorize(guard RoleGuard, contextManager model.ContextManager, logger *logger.Logger) *Authorize {
	return &Authorize{guard: guard, contextManager: contextManager, logger: logger}
}

// Require lets through only requests whose claims carry one of roles.
func (m *Authorize) Require(roles ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := m.contextManager.GetClaimsFromContext(r.Context())
			if !ok {
				response.Error(w, m.logger, apperr.Unauthenticated("Invalid token claims"))
				return
			}
			if err := m.guard.RequireRole(claims, roles...); err != nil {
				response.Error(w, m.logger, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
