package model

import "time"

// Credential is the login view shared by every principal kind.
type Credential struct {
	ID           int64
	Role         Role
	Email        string
	PasswordHash string
}

// Admin represents a clinic administrator.
type Admin struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Doctor represents a registered doctor.
type Doctor struct {
	ID           int64
	FirstName    string
	LastName     string
	Gender       string
	BirthDate    time.Time
	Age          int
	Specialty    string
	Email        string
	PasswordHash string
	ImageURL     string
	CreatedAt    time.Time
}

// Patient represents a registered patient with its treatment histories.
type Patient struct {
	ID                 int64
	FirstName          string
	LastName           string
	Gender             string
	BirthDate          time.Time
	Age                int
	BloodType          string
	Email              string
	PasswordHash       string
	ImageURL           string
	XRayImageURL       string
	LabResultsImageURL string
	CreatedAt          time.Time
	Histories          []TreatmentHistory
}

// TreatmentHistory links a patient to a treating doctor.
type TreatmentHistory struct {
	ID              int64
	PatientID       int64
	DoctorID        int64
	Diagnosis       string
	Treatment       string
	TreatmentDate   time.Time
	DoctorFirstName string
	DoctorLastName  string
}

// DefaultBloodType is assigned to patients registered without one.
const DefaultBloodType = "A+"

// MaxAdmins caps the number of admin accounts.
const MaxAdmins = 6
