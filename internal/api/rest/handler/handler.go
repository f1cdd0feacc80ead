// Package handler serves the clinic REST API.
package handler

import (
	"context"
	"io"

	"github.com/dtroode/clinic-server/internal/model"
	"github.com/dtroode/clinic-server/internal/service"
)

// AuthService defines login and password reset operations.
type AuthService interface {
	Login(ctx context.Context, email, password string) (service.LoginResult, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}

// RegistrationService defines principal registration operations.
type RegistrationService interface {
	RegisterAdmin(ctx context.Context, email, password string) (model.Admin, error)
	RegisterDoctor(ctx context.Context, in service.DoctorRegistration) (model.Doctor, error)
	RegisterPatient(ctx context.Context, in service.PatientRegistration) (model.Patient, error)
}

// DirectoryService defines listing and profile operations.
type DirectoryService interface {
	ListDoctors(ctx context.Context, params model.ListParams) (model.Page[model.Doctor], error)
	ListPatients(ctx context.Context, params model.ListParams) (model.Page[model.Patient], error)
	ListPatientsByDoctor(ctx context.Context, claims model.Claims, doctorID int64, params model.ListParams) (model.Page[model.Patient], error)
	Details(ctx context.Context, claims model.Claims) (service.Details, error)
}

// RecordsService defines update and delete operations.
type RecordsService interface {
	UpdateDoctor(ctx context.Context, id int64, in service.DoctorUpdate) (model.Doctor, error)
	UpdatePatient(ctx context.Context, id int64, in service.PatientUpdate) (model.Patient, error)
	UpdatePatientForDoctor(ctx context.Context, claims model.Claims, patientID int64, in service.PatientUpdate) (model.Patient, error)
	DeleteDoctor(ctx context.Context, id int64) error
	DeletePatient(ctx context.Context, id int64) error
	DeletePatientForDoctor(ctx context.Context, claims model.Claims, patientID int64) error
}

// ImageService streams stored images.
type ImageService interface {
	Open(ctx context.Context, name string) (io.ReadCloser, string, error)
}
