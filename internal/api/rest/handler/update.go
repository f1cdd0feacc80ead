package handler

import (
	"net/http"

	"github.com/dtroode/clinic-server/internal/api/rest/response"
	"github.com/dtroode/clinic-server/internal/apperr"
	"github.com/dtroode/clinic-server/internal/logger"
	"github.com/dtroode/clinic-server/internal/model"
	"github.com/dtroode/clinic-server/internal/service"
)

// Update handles profile update and delete endpoints.
type Update struct {
	recordsService RecordsService
	contextManager model.ContextManager
	maxBodyBytes   int64
	logger         *logger.Logger
}

// NewUpdate creates a new Update handler.
func NewUpdate(recordsService RecordsService, contextManager model.ContextManager, maxBodyBytes int64, logger *logger.Logger) *Update {
	return &Update{
		recordsService: recordsService,
		contextManager: contextManager,
		maxBodyBytes:   maxBodyBytes,
		logger:         logger,
	}
}

// UpdateDoctor handles PUT /api/update/doctor/{id}.
func (h *Update) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	f, err := parseForm(w, r, h.maxBodyBytes)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}
	defer f.close()

	in := service.DoctorUpdate{
		FirstName: f.value("firstName"),
		LastName:  f.value("lastName"),
		Gender:    f.value("gender"),
		Specialty: f.value("specialty"),
		Email:     f.value("email"),
		Password:  f.raw("password"),
	}
	if in.BirthDate, err = f.date("birthDate"); err != nil {
		response.Error(w, h.logger, err)
		return
	}
	if in.Image, err = f.upload("image"); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	doctor, err := h.recordsService.UpdateDoctor(r.Context(), id, in)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, doctorEnvelope{
		Message: "Doctor updated successfully",
		Doctor:  toDoctor(doctor),
	})
}

// DeleteDoctor handles DELETE /api/update/doctor/{id}.
func (h *Update) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	if err := h.recordsService.DeleteDoctor(r.Context(), id); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, messageResponse{Message: "Doctor deleted successfully"})
}

// UpdatePatient handles PUT /api/update/patient/{id}.
func (h *Update) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	h.updatePatient(w, r, func(in service.PatientUpdate) (model.Patient, error) {
		return h.recordsService.UpdatePatient(r.Context(), id, in)
	})
}

// DeletePatient handles DELETE /api/update/patient/{id}.
func (h *Update) DeletePatient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	if err := h.recordsService.DeletePatient(r.Context(), id); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, messageResponse{Message: "Patient deleted successfully"})
}

// UpdatePatientForDoctor handles PUT /api/update/patient/doctor/{patientID}.
func (h *Update) UpdatePatientForDoctor(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.contextManager.GetClaimsFromContext(r.Context())
	if !ok {
		response.Error(w, h.logger, apperr.Unauthenticated("Invalid token claims"))
		return
	}
	patientID, err := pathID(r, "patientID")
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	h.updatePatient(w, r, func(in service.PatientUpdate) (model.Patient, error) {
		return h.recordsService.UpdatePatientForDoctor(r.Context(), claims, patientID, in)
	})
}

// DeletePatientForDoctor handles DELETE /api/update/patient/doctor/{patientID}.
func (h *Update) DeletePatientForDoctor(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.contextManager.GetClaimsFromContext(r.Context())
	if !ok {
		response.Error(w, h.logger, apperr.Unauthenticated("Invalid token claims"))
		return
	}
	patientID, err := pathID(r, "patientID")
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	if err := h.recordsService.DeletePatientForDoctor(r.Context(), claims, patientID); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, messageResponse{Message: "Patient deleted successfully"})
}

func (h *Update) updatePatient(w http.ResponseWriter, r *http.Request, apply func(service.PatientUpdate) (model.Patient, error)) {
	f, err := parseForm(w, r, h.maxBodyBytes)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}
	defer f.close()

	in := service.PatientUpdate{
		FirstName: f.value("firstName"),
		LastName:  f.value("lastName"),
		Gender:    f.value("gender"),
		BloodType: f.value("bloodType"),
		Email:     f.value("email"),
		Password:  f.raw("password"),
		Diagnosis: f.value("diagnosis"),
		Treatment: f.value("treatment"),
	}
	if in.BirthDate, err = f.date("birthDate"); err != nil {
		response.Error(w, h.logger, err)
		return
	}
	if in.DoctorID, err = f.int64("doctorId"); err != nil {
		response.Error(w, h.logger, err)
		return
	}
	if in.PatientImages, err = f.patientImages(); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	patient, err := apply(in)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, patientEnvelope{
		Message: "Patient updated successfully",
		Patient: toPatient(patient),
	})
}
