package service

import (
	"context"
	"errors"

	"github.com/dtroode/clinic-server/internal/apperr"
	"github.com/dtroode/clinic-server/internal/logger"
	"github.com/dtroode/clinic-server/internal/model"
)

// Details is the profile of the authenticated principal. Exactly one of
// Admin, Doctor and Patient is set, matching Role.
type Details struct {
	Role    model.Role
	Admin   *model.Admin
	Doctor  *model.Doctor
	Patient *model.Patient
}

// Directory serves read-only listings and profiles.
type Directory struct {
	admins   model.AdminStore
	doctors  model.DoctorStore
	patients model.PatientStore
	logger   *logger.Logger
}

func NewDirectory(admins model.AdminStore, doctors model.DoctorStore, patients model.PatientStore, logger *logger.Logger) *Directory {
	return &Directory{
		admins:   admins,
		doctors:  doctors,
		patients: patients,
		logger:   logger,
	}
}

func (d *Directory) ListDoctors(ctx context.Context, params model.ListParams) (model.Page[model.Doctor], error) {
	if err := validatePage(params); err != nil {
		return model.Page[model.Doctor]{}, err
	}

	page, err := d.doctors.List(ctx, params)
	if err != nil {
		d.logger.Error("Directory service: failed to list doctors",
			"error", err.Error())
		return model.Page[model.Doctor]{}, apperr.Dependency(err, "failed to list doctors")
	}
	return page, nil
}

func (d *Directory) ListPatients(ctx context.Context, params model.ListParams) (model.Page[model.Patient], error) {
	if err := validatePage(params); err != nil {
		return model.Page[model.Patient]{}, err
	}

	page, err := d.patients.List(ctx, params)
	if err != nil {
		d.logger.Error("Directory service: failed to list patients",
			"error", err.Error())
		return model.Page[model.Patient]{}, apperr.Dependency(err, "failed to list patients")
	}
	return page, nil
}

// ListPatientsByDoctor lists the patients of doctorID. A doctor may only
// list their own patients.
func (d *Directory) ListPatientsByDoctor(ctx context.Context, claims model.Claims, doctorID int64, params model.ListParams) (model.Page[model.Patient], error) {
	if doctorID <= 0 {
		return model.Page[model.Patient]{}, apperr.Validation("Doctor ID must be greater than 0")
	}
	if err := validatePage(params); err != nil {
		return model.Page[model.Patient]{}, err
	}
	if claims.Role == model.RoleDoctor && claims.UserID != doctorID {
		d.logger.Warn("Directory service: doctor listing another doctor's patients",
			"user_id", claims.UserID,
			"doctor_id", doctorID)
		return model.Page[model.Patient]{}, apperr.Unauthorized("You are not authorized to access this doctor's patients.")
	}

	exists, err := d.doctors.Exists(ctx, doctorID)
	if err != nil {
		return model.Page[model.Patient]{}, apperr.Dependency(err, "failed to check doctor")
	}
	if !exists {
		return model.Page[model.Patient]{}, apperr.NotFound("Doctor not found")
	}

	page, err := d.patients.ListByDoctor(ctx, doctorID, params)
	if err != nil {
		d.logger.Error("Directory service: failed to list patients by doctor",
			"doctor_id", doctorID,
			"error", err.Error())
		return model.Page[model.Patient]{}, apperr.Dependency(err, "failed to list patients")
	}
	return page, nil
}

// Details loads the profile behind claims.
func (d *Directory) Details(ctx context.Context, claims model.Claims) (Details, error) {
	details := Details{Role: claims.Role}

	var err error
	switch claims.Role {
	case model.RoleAdmin:
		var admin model.Admin
		admin, err = d.admins.GetByID(ctx, claims.UserID)
		details.Admin = &admin
	case model.RoleDoctor:
		var doctor model.Doctor
		doctor, err = d.doctors.GetByID(ctx, claims.UserID)
		details.Doctor = &doctor
	case model.RolePatient:
		var patient model.Patient
		patient, err = d.patients.GetByID(ctx, claims.UserID)
		details.Patient = &patient
	default:
		return Details{}, apperr.Unauthenticated("Invalid token claims")
	}

	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return Details{}, apperr.NotFound("User not found")
		}
		d.logger.Error("Directory service: failed to load user details",
			"user_id", claims.UserID,
			"role", claims.Role.String(),
			"error", err.Error())
		return Details{}, apperr.Dependency(err, "failed to load user details")
	}

	return details, nil
}
