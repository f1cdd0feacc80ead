package handler

import (
	"net/http"

	"github.com/dtroode/clinic-server/internal/api/rest/response"
	"github.com/dtroode/clinic-server/internal/apperr"
	"github.com/dtroode/clinic-server/internal/logger"
	"github.com/dtroode/clinic-server/internal/model"
)

// User handles listing and profile endpoints.
type User struct {
	directoryService DirectoryService
	contextManager   model.ContextManager
	logger           *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(directoryService DirectoryService, contextManager model.ContextManager, logger *logger.Logger) *User {
	return &User{
		directoryService: directoryService,
		contextManager:   contextManager,
		logger:           logger,
	}
}

// ListDoctors handles GET /api/user/doctors.
func (h *User) ListDoctors(w http.ResponseWriter, r *http.Request) {
	params, err := listParams(r)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	page, err := h.directoryService.ListDoctors(r.Context(), params)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, toPage(page, toDoctor))
}

// ListPatients handles GET /api/user/patients.
func (h *User) ListPatients(w http.ResponseWriter, r *http.Request) {
	params, err := listParams(r)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	page, err := h.directoryService.ListPatients(r.Context(), params)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, toPage(page, toPatient))
}

// ListPatientsByDoctor handles GET /api/user/patients/doctor/{doctorID}.
func (h *User) ListPatientsByDoctor(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.contextManager.GetClaimsFromContext(r.Context())
	if !ok {
		response.Error(w, h.logger, apperr.Unauthenticated("Invalid token claims"))
		return
	}
	doctorID, err := pathID(r, "doctorID")
	if err != nil {
		response.Error(w, h.logger, apperr.Validation("Doctor ID must be greater than 0"))
		return
	}
	params, err := listParams(r)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	page, err := h.directoryService.ListPatientsByDoctor(r.Context(), claims, doctorID, params)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, toPage(page, toPatient))
}

// Details handles GET /api/user/details.
func (h *User) Details(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.contextManager.GetClaimsFromContext(r.Context())
	if !ok {
		response.Error(w, h.logger, apperr.Unauthenticated("Invalid token claims"))
		return
	}

	details, err := h.directoryService.Details(r.Context(), claims)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, detailsEnvelope{
		Message: "User details retrieved successfully",
		User:    toDetails(details),
	})
}
