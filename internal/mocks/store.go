// Package mocks holds testify mocks for the model interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/clinic-server/internal/model"
)

type CredentialStore struct {
	mock.Mock
}

func (m *CredentialStore) FindCredential(ctx context.Context, role model.Role, email string) (model.Credential, error) {
	args := m.Called(ctx, role, email)
	return args.Get(0).(model.Credential), args.Error(1)
}

func (m *CredentialStore) UpdatePasswordHash(ctx context.Context, role model.Role, id int64, hash string) error {
	args := m.Called(ctx, role, id, hash)
	return args.Error(0)
}

type AdminStore struct {
	mock.Mock
}

func (m *AdminStore) Create(ctx context.Context, admin model.Admin, limit int) (model.Admin, error) {
	args := m.Called(ctx, admin, limit)
	return args.Get(0).(model.Admin), args.Error(1)
}

func (m *AdminStore) GetByID(ctx context.Context, id int64) (model.Admin, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Admin), args.Error(1)
}

type DoctorStore struct {
	mock.Mock
}

func (m *DoctorStore) Create(ctx context.Context, doctor model.Doctor) (model.Doctor, error) {
	args := m.Called(ctx, doctor)
	return args.Get(0).(model.Doctor), args.Error(1)
}

func (m *DoctorStore) GetByID(ctx context.Context, id int64) (model.Doctor, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Doctor), args.Error(1)
}

func (m *DoctorStore) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *DoctorStore) List(ctx context.Context, params model.ListParams) (model.Page[model.Doctor], error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.Page[model.Doctor]), args.Error(1)
}

func (m *DoctorStore) Update(ctx context.Context, doctor model.Doctor) error {
	args := m.Called(ctx, doctor)
	return args.Error(0)
}

func (m *DoctorStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type PatientStore struct {
	mock.Mock
}

func (m *PatientStore) Register(ctx context.Context, patient model.Patient, history model.TreatmentHistory) (model.Patient, error) {
	args := m.Called(ctx, patient, history)
	return args.Get(0).(model.Patient), args.Error(1)
}

func (m *PatientStore) GetByID(ctx context.Context, id int64) (model.Patient, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Patient), args.Error(1)
}

func (m *PatientStore) GetByEmail(ctx context.Context, email string) (model.Patient, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.Patient), args.Error(1)
}

func (m *PatientStore) List(ctx context.Context, params model.ListParams) (model.Page[model.Patient], error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.Page[model.Patient]), args.Error(1)
}

func (m *PatientStore) ListByDoctor(ctx context.Context, doctorID int64, params model.ListParams) (model.Page[model.Patient], error) {
	args := m.Called(ctx, doctorID, params)
	return args.Get(0).(model.Page[model.Patient]), args.Error(1)
}

func (m *PatientStore) Update(ctx context.Context, patient model.Patient) error {
	args := m.Called(ctx, patient)
	return args.Error(0)
}

func (m *PatientStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type HistoryStore struct {
	mock.Mock
}

func (m *HistoryStore) Create(ctx context.Context, history model.TreatmentHistory) (model.TreatmentHistory, error) {
	args := m.Called(ctx, history)
	return args.Get(0).(model.TreatmentHistory), args.Error(1)
}

func (m *HistoryStore) Exists(ctx context.Context, doctorID, patientID int64) (bool, error) {
	args := m.Called(ctx, doctorID, patientID)
	return args.Bool(0), args.Error(1)
}

func (m *HistoryStore) GetByPair(ctx context.Context, doctorID, patientID int64) (model.TreatmentHistory, error) {
	args := m.Called(ctx, doctorID, patientID)
	return args.Get(0).(model.TreatmentHistory), args.Error(1)
}

func (m *HistoryStore) Update(ctx context.Context, history model.TreatmentHistory) error {
	args := m.Called(ctx, history)
	return args.Error(0)
}
