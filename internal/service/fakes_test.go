package service

import (
	"context"
	"sync"
	"time"

	"github.com/dtroode/clinic-server/internal/model"
)

// memDB is an in-memory stand-in for the postgres repositories with the
// same uniqueness rules.
type memDB struct {
	mu        sync.Mutex
	nextID    int64
	admins    map[int64]model.Admin
	doctors   map[int64]model.Doctor
	patients  map[int64]model.Patient
	histories map[int64]model.TreatmentHistory
}

func newMemDB() *memDB {
	return &memDB{
		admins:    map[int64]model.Admin{},
		doctors:   map[int64]model.Doctor{},
		patients:  map[int64]model.Patient{},
		histories: map[int64]model.TreatmentHistory{},
	}
}

func (db *memDB) id() int64 {
	db.nextID++
	return db.nextID
}

type memCredentials struct{ db *memDB }

func (s memCredentials) FindCredential(_ context.Context, role model.Role, email string) (model.Credential, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	switch role {
	case model.RoleAdmin:
		for _, a := range s.db.admins {
			if a.Email == email {
				return model.Credential{ID: a.ID, Role: role, Email: a.Email, PasswordHash: a.PasswordHash}, nil
			}
		}
	case model.RoleDoctor:
		for _, d := range s.db.doctors {
			if d.Email == email {
				return model.Credential{ID: d.ID, Role: role, Email: d.Email, PasswordHash: d.PasswordHash}, nil
			}
		}
	case model.RolePatient:
		for _, p := range s.db.patients {
			if p.Email == email {
				return model.Credential{ID: p.ID, Role: role, Email: p.Email, PasswordHash: p.PasswordHash}, nil
			}
		}
	}
	return model.Credential{}, model.ErrNotFound
}

func (s memCredentials) UpdatePasswordHash(_ context.Context, role model.Role, id int64, hash string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	switch role {
	case model.RoleAdmin:
		if a, ok := s.db.admins[id]; ok {
			a.PasswordHash = hash
			s.db.admins[id] = a
			return nil
		}
	case model.RoleDoctor:
		if d, ok := s.db.doctors[id]; ok {
			d.PasswordHash = hash
			s.db.doctors[id] = d
			return nil
		}
	case model.RolePatient:
		if p, ok := s.db.patients[id]; ok {
			p.PasswordHash = hash
			s.db.patients[id] = p
			return nil
		}
	}
	return model.ErrNotFound
}

type memAdmins struct{ db *memDB }

func (s memAdmins) Create(_ context.Context, admin model.Admin, limit int) (model.Admin, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if len(s.db.admins) >= limit {
		return model.Admin{}, model.ErrAdminLimit
	}
	for _, a := range s.db.admins {
		if a.Email == admin.Email {
			return model.Admin{}, model.ErrDuplicate
		}
	}
	admin.ID = s.db.id()
	admin.CreatedAt = time.Now()
	s.db.admins[admin.ID] = admin
	return admin, nil
}

func (s memAdmins) GetByID(_ context.Context, id int64) (model.Admin, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	a, ok := s.db.admins[id]
	if !ok {
		return model.Admin{}, model.ErrNotFound
	}
	return a, nil
}

type memDoctors struct{ db *memDB }

func (s memDoctors) Create(_ context.Context, doctor model.Doctor) (model.Doctor, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, d := range s.db.doctors {
		if d.Email == doctor.Email {
			return model.Doctor{}, model.ErrDuplicate
		}
	}
	doctor.ID = s.db.id()
	s.db.doctors[doctor.ID] = doctor
	return doctor, nil
}

func (s memDoctors) GetByID(_ context.Context, id int64) (model.Doctor, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	d, ok := s.db.doctors[id]
	if !ok {
		return model.Doctor{}, model.ErrNotFound
	}
	return d, nil
}

func (s memDoctors) Exists(_ context.Context, id int64) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	_, ok := s.db.doctors[id]
	return ok, nil
}

func (s memDoctors) List(_ context.Context, params model.ListParams) (model.Page[model.Doctor], error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	items := []model.Doctor{}
	for _, d := range s.db.doctors {
		items = append(items, d)
	}
	return model.Page[model.Doctor]{Items: items, TotalCount: len(items), PageNumber: params.PageNumber, PageSize: params.PageSize}, nil
}

func (s memDoctors) Update(_ context.Context, doctor model.Doctor) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.doctors[doctor.ID]; !ok {
		return model.ErrNotFound
	}
	s.db.doctors[doctor.ID] = doctor
	return nil
}

func (s memDoctors) Delete(_ context.Context, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.doctors[id]; !ok {
		return model.ErrNotFound
	}
	for hid, h := range s.db.histories {
		if h.DoctorID == id {
			delete(s.db.histories, hid)
		}
	}
	delete(s.db.doctors, id)
	return nil
}

type memPatients struct{ db *memDB }

func (s memPatients) withHistories(p model.Patient, doctorID int64) model.Patient {
	p.Histories = nil
	for _, h := range s.db.histories {
		if h.PatientID == p.ID && (doctorID == 0 || h.DoctorID == doctorID) {
			d := s.db.doctors[h.DoctorID]
			h.DoctorFirstName, h.DoctorLastName = d.FirstName, d.LastName
			p.Histories = append(p.Histories, h)
		}
	}
	return p
}

func (s memPatients) Register(_ context.Context, patient model.Patient, history model.TreatmentHistory) (model.Patient, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, p := range s.db.patients {
		if p.Email == patient.Email {
			return model.Patient{}, model.ErrDuplicate
		}
	}
	if _, ok := s.db.doctors[history.DoctorID]; !ok {
		return model.Patient{}, model.ErrNotFound
	}
	patient.ID = s.db.id()
	s.db.patients[patient.ID] = patient
	history.ID = s.db.id()
	history.PatientID = patient.ID
	s.db.histories[history.ID] = history
	return s.withHistories(patient, 0), nil
}

func (s memPatients) GetByID(_ context.Context, id int64) (model.Patient, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	p, ok := s.db.patients[id]
	if !ok {
		return model.Patient{}, model.ErrNotFound
	}
	return s.withHistories(p, 0), nil
}

func (s memPatients) GetByEmail(_ context.Context, email string) (model.Patient, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, p := range s.db.patients {
		if p.Email == email {
			return s.withHistories(p, 0), nil
		}
	}
	return model.Patient{}, model.ErrNotFound
}

func (s memPatients) List(ctx context.Context, params model.ListParams) (model.Page[model.Patient], error) {
	return s.ListByDoctor(ctx, 0, params)
}

func (s memPatients) ListByDoctor(_ context.Context, doctorID int64, params model.ListParams) (model.Page[model.Patient], error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	items := []model.Patient{}
	for _, p := range s.db.patients {
		p = s.withHistories(p, doctorID)
		if doctorID == 0 || len(p.Histories) > 0 {
			items = append(items, p)
		}
	}
	return model.Page[model.Patient]{Items: items, TotalCount: len(items), PageNumber: params.PageNumber, PageSize: params.PageSize}, nil
}

func (s memPatients) Update(_ context.Context, patient model.Patient) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.patients[patient.ID]; !ok {
		return model.ErrNotFound
	}
	patient.Histories = nil
	s.db.patients[patient.ID] = patient
	return nil
}

func (s memPatients) Delete(_ context.Context, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.patients[id]; !ok {
		return model.ErrNotFound
	}
	for hid, h := range s.db.histories {
		if h.PatientID == id {
			delete(s.db.histories, hid)
		}
	}
	delete(s.db.patients, id)
	return nil
}

type memHistories struct{ db *memDB }

func (s memHistories) Create(_ context.Context, history model.TreatmentHistory) (model.TreatmentHistory, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, h := range s.db.histories {
		if h.PatientID == history.PatientID && h.DoctorID == history.DoctorID {
			return model.TreatmentHistory{}, model.ErrDuplicate
		}
	}
	if _, ok := s.db.doctors[history.DoctorID]; !ok {
		return model.TreatmentHistory{}, model.ErrNotFound
	}
	history.ID = s.db.id()
	history.TreatmentDate = time.Now()
	s.db.histories[history.ID] = history
	return history, nil
}

func (s memHistories) Exists(_ context.Context, doctorID, patientID int64) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, h := range s.db.histories {
		if h.PatientID == patientID && h.DoctorID == doctorID {
			return true, nil
		}
	}
	return false, nil
}

func (s memHistories) GetByPair(_ context.Context, doctorID, patientID int64) (model.TreatmentHistory, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, h := range s.db.histories {
		if h.PatientID == patientID && h.DoctorID == doctorID {
			return h, nil
		}
	}
	return model.TreatmentHistory{}, model.ErrNotFound
}

func (s memHistories) Update(_ context.Context, history model.TreatmentHistory) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.histories[history.ID]; !ok {
		return model.ErrNotFound
	}
	s.db.histories[history.ID] = history
	return nil
}
