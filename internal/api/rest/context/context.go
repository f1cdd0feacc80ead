package context

import (
	"context"
	"slices"

	"github.com/dtroode/clinic-server/internal/model"
)

type claimsKey struct{}

// Manager stores authenticated token claims on request contexts.
type Manager struct{}

var _ model.ContextManager = (*Manager)(nil)

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetClaimsToContext returns a copy of ctx carrying claims.
func (m *Manager) SetClaimsToContext(ctx context.Context, claims model.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// GetClaimsFromContext returns the claims stored by SetClaimsToContext.
// Claims without a known role are treated as absent.
func (m *Manager) GetClaimsFromContext(ctx context.Context) (model.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(model.Claims)
	if !ok {
		return model.Claims{}, false
	}

	if !slices.Contains(model.Roles, claims.Role) {
		return model.Claims{}, false
	}

	return claims, true
}
