package handler

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/clinic-server/internal/model"
	"github.com/dtroode/clinic-server/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (service.LoginResult, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(service.LoginResult), args.Error(1)
}

func (m *MockAuthService) RequestPasswordReset(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	args := m.Called(ctx, email, code, newPassword)
	return args.Error(0)
}

type MockRegistrationService struct {
	mock.Mock
}

func (m *MockRegistrationService) RegisterAdmin(ctx context.Context, email, password string) (model.Admin, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(model.Admin), args.Error(1)
}

func (m *MockRegistrationService) RegisterDoctor(ctx context.Context, in service.DoctorRegistration) (model.Doctor, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(model.Doctor), args.Error(1)
}

func (m *MockRegistrationService) RegisterPatient(ctx context.Context, in service.PatientRegistration) (model.Patient, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(model.Patient), args.Error(1)
}

type MockDirectoryService struct {
	mock.Mock
}

func (m *MockDirectoryService) ListDoctors(ctx context.Context, params model.ListParams) (model.Page[model.Doctor], error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.Page[model.Doctor]), args.Error(1)
}

func (m *MockDirectoryService) ListPatients(ctx context.Context, params model.ListParams) (model.Page[model.Patient], error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.Page[model.Patient]), args.Error(1)
}

func (m *MockDirectoryService) ListPatientsByDoctor(ctx context.Context, claims model.Claims, doctorID int64, params model.ListParams) (model.Page[model.Patient], error) {
	args := m.Called(ctx, claims, doctorID, params)
	return args.Get(0).(model.Page[model.Patient]), args.Error(1)
}

func (m *MockDirectoryService) Details(ctx context.Context, claims model.Claims) (service.Details, error) {
	args := m.Called(ctx, claims)
	return args.Get(0).(service.Details), args.Error(1)
}

type MockRecordsService struct {
	mock.Mock
}

func (m *MockRecordsService) UpdateDoctor(ctx context.Context, id int64, in service.DoctorUpdate) (model.Doctor, error) {
	args := m.Called(ctx, id, in)
	return args.Get(0).(model.Doctor), args.Error(1)
}

func (m *MockRecordsService) UpdatePatient(ctx context.Context, id int64, in service.PatientUpdate) (model.Patient, error) {
	args := m.Called(ctx, id, in)
	return args.Get(0).(model.Patient), args.Error(1)
}

func (m *MockRecordsService) UpdatePatientForDoctor(ctx context.Context, claims model.Claims, patientID int64, in service.PatientUpdate) (model.Patient, error) {
	args := m.Called(ctx, claims, patientID, in)
	return args.Get(0).(model.Patient), args.Error(1)
}

func (m *MockRecordsService) DeleteDoctor(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRecordsService) DeletePatient(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRecordsService) DeletePatientForDoctor(ctx context.Context, claims model.Claims, patientID int64) error {
	args := m.Called(ctx, claims, patientID)
	return args.Error(0)
}

type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) Open(ctx context.Context, name string) (io.ReadCloser, string, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.String(1), args.Error(2)
}
