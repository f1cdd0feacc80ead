package model

import "context"

// CredentialStore looks up and updates login material for any principal kind.
type CredentialStore interface {
	FindCredential(ctx context.Context, role Role, email string) (Credential, error)
	UpdatePasswordHash(ctx context.Context, role Role, id int64, hash string) error
}

// AdminStore defines persistence operations for admins.
type AdminStore interface {
	Create(ctx context.Context, admin Admin, limit int) (Admin, error)
	GetByID(ctx context.Context, id int64) (Admin, error)
}

// DoctorStore defines persistence operations for doctors.
type DoctorStore interface {
	Create(ctx context.Context, doctor Doctor) (Doctor, error)
	GetByID(ctx context.Context, id int64) (Doctor, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, params ListParams) (Page[Doctor], error)
	Update(ctx context.Context, doctor Doctor) error
	// Delete removes the doctor together with its treatment histories.
	Delete(ctx context.Context, id int64) error
}

// PatientStore defines persistence operations for patients.
type PatientStore interface {
	// Register inserts a new patient and its first treatment history atomically.
	Register(ctx context.Context, patient Patient, history TreatmentHistory) (Patient, error)
	GetByID(ctx context.Context, id int64) (Patient, error)
	GetByEmail(ctx context.Context, email string) (Patient, error)
	List(ctx context.Context, params ListParams) (Page[Patient], error)
	// ListByDoctor returns patients linked to doctorID with only that doctor's histories attached.
	ListByDoctor(ctx context.Context, doctorID int64, params ListParams) (Page[Patient], error)
	Update(ctx context.Context, patient Patient) error
	// Delete removes the patient together with its treatment histories.
	Delete(ctx context.Context, id int64) error
}

// HistoryStore defines persistence operations for treatment histories.
type HistoryStore interface {
	Create(ctx context.Context, history TreatmentHistory) (TreatmentHistory, error)
	Exists(ctx context.Context, doctorID, patientID int64) (bool, error)
	GetByPair(ctx context.Context, doctorID, patientID int64) (TreatmentHistory, error)
	Update(ctx context.Context, history TreatmentHistory) error
}
