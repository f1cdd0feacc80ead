package handler

import (
	"net/http"
	"strings"

	"github.com/dtroode/clinic-server/internal/api/rest/response"
	"github.com/dtroode/clinic-server/internal/logger"
	"github.com/dtroode/clinic-server/internal/service"
)

// Auth handles registration, login and password reset endpoints.
type Auth struct {
	authService         AuthService
	registrationService RegistrationService
	maxBodyBytes        int64
	logger              *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, registrationService RegistrationService, maxBodyBytes int64, logger *logger.Logger) *Auth {
	return &Auth{
		authService:         authService,
		registrationService: registrationService,
		maxBodyBytes:        maxBodyBytes,
		logger:              logger,
	}
}

// RegisterAdmin handles POST /api/auth/admin/register.
func (h *Auth) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	admin, err := h.registrationService.RegisterAdmin(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Warn("Auth handler: admin registration failed",
			"email", req.Email,
			"error", err.Error())
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, adminEnvelope{
		Message: "Admin registered successfully",
		Admin:   toAdmin(admin),
	})
}

// RegisterDoctor handles POST /api/auth/doctor/register.
func (h *Auth) RegisterDoctor(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(w, r, h.maxBodyBytes)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}
	defer f.close()

	in := service.DoctorRegistration{
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

	doctor, err := h.registrationService.RegisterDoctor(r.Context(), in)
	if err != nil {
		h.logger.Warn("Auth handler: doctor registration failed",
			"email", in.Email,
			"error", err.Error())
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, doctorEnvelope{
		Message: "Doctor registered successfully",
		Doctor:  toDoctor(doctor),
	})
}

// RegisterPatient handles POST /api/auth/patient/register.
func (h *Auth) RegisterPatient(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(w, r, h.maxBodyBytes)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}
	defer f.close()

	in := service.PatientRegistration{
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

	patient, err := h.registrationService.RegisterPatient(r.Context(), in)
	if err != nil {
		h.logger.Warn("Auth handler: patient registration failed",
			"email", in.Email,
			"doctor_id", in.DoctorID,
			"error", err.Error())
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, patientEnvelope{
		Message: "Patient registered successfully",
		Patient: toPatient(patient),
	})
}

// Login handles POST /api/auth/login.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	result, err := h.authService.Login(r.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, loginResponse{
		Message: "Login successful",
		Role:    result.Role.String(),
		UserID:  result.UserID,
		IsAdmin: result.IsAdmin,
		Token:   result.Token,
	})
}

// RequestPasswordReset handles POST /api/auth/request-password-reset.
func (h *Auth) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req passwordResetRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	if err := h.authService.RequestPasswordReset(r.Context(), strings.TrimSpace(req.Email)); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, messageResponse{Message: "Password reset code sent to your email"})
}

// ResetPassword handles POST /api/auth/reset-password.
func (h *Auth) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req passwordResetConfirm
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	if err := h.authService.ResetPassword(r.Context(), strings.TrimSpace(req.Email), strings.TrimSpace(req.ResetCode), req.NewPassword); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, messageResponse{Message: "Password reset successfully"})
}
