package service

import (
	"context"
	"slices"

	"github.com/dtroode/clinic-server/internal/apperr"
	"github.com/dtroode/clinic-server/internal/logger"
	"github.com/dtroode/clinic-server/internal/model"
)

// Guard decides whether decoded claims may perform an operation.
type Guard struct {
	histories model.HistoryStore
	logger    *logger.Logger
}

func NewGuard(histories model.HistoryStore, logger *logger.Logger) *Guard {
	return &Guard{
		histories: histories,
		logger:    logger,
	}
}

// RequireRole fails with Unauthorized unless claims carry one of roles.
func (g *Guard) RequireRole(claims model.Claims, roles ...model.Role) error {
	if slices.Contains(roles, claims.Role) {
		return nil
	}

	g.logger.Warn("Guard: role not permitted",
		"user_id", claims.UserID,
		"role", claims.Role.String())

	return apperr.Unauthorized("You are not authorized to perform this action.")
}

// RequirePatientAccess allows a doctor to act on patientID only when a
// treatment history links them.
func (g *Guard) RequirePatientAccess(ctx context.Context, claims model.Claims, patientID int64) error {
	if err := g.RequireRole(claims, model.RoleDoctor); err != nil {
		return err
	}

	linked, err := g.histories.Exists(ctx, claims.UserID, patientID)
	if err != nil {
		g.logger.Error("Guard: failed to check treatment history",
			"doctor_id", claims.UserID,
			"patient_id", patientID,
			"error", err.Error())
		return apperr.Dependency(err, "failed to check treatment history")
	}
	if !linked {
		g.logger.Warn("Guard: doctor has no history with patient",
			"doctor_id", claims.UserID,
			"patient_id", patientID)
		return apperr.Unauthorized("You are not authorized to act on this patient.")
	}

	return nil
}
