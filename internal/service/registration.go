package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dtroode/clinic-server/internal/apperr"
	"github.com/dtroode/clinic-server/internal/logger"
	"github.com/dtroode/clinic-server/internal/model"
)

// DoctorRegistration is the input of RegisterDoctor.
type DoctorRegistration struct {
	FirstName string
	LastName  string
	Gender    string
	BirthDate time.Time
	Specialty string
	Email     string
	Password  string
	Image     *Upload
}

// PatientRegistration is the input of RegisterPatient.
type PatientRegistration struct {
	FirstName string
	LastName  string
	Gender    string
	BirthDate time.Time
	BloodType string
	Email     string
	Password  string
	DoctorID  int64
	Diagnosis string
	Treatment string
	PatientImages
}

// Registration creates admins, doctors and patients.
type Registration struct {
	credentials model.CredentialStore
	admins      model.AdminStore
	doctors     model.DoctorStore
	patients    model.PatientStore
	histories   model.HistoryStore
	hasher      model.PasswordHasher
	images      *Images
	logger      *logger.Logger
	now         func() time.Time
}

func NewRegistration(
	credentials model.CredentialStore,
	admins model.AdminStore,
	doctors model.DoctorStore,
	patients model.PatientStore,
	histories model.HistoryStore,
	hasher model.PasswordHasher,
	images *Images,
	logger *logger.Logger,
) *Registration {
	return &Registration{
		credentials: credentials,
		admins:      admins,
		doctors:     doctors,
		patients:    patients,
		histories:   histories,
		hasher:      hasher,
		images:      images,
		logger:      logger,
		now:         time.Now,
	}
}

// RegisterAdmin creates an admin while fewer than model.MaxAdmins exist.
func (r *Registration) RegisterAdmin(ctx context.Context, email, password string) (model.Admin, error) {
	if anyBlank(email, password) {
		return model.Admin{}, apperr.Validation("Email and password are required")
	}
	if err := validateEmail(email); err != nil {
		return model.Admin{}, err
	}
	if err := ensureEmailFree(ctx, r.credentials, email, 0, 0); err != nil {
		return model.Admin{}, err
	}

	hash, err := hashPassword(r.hasher, password)
	if err != nil {
		return model.Admin{}, err
	}

	admin, err := r.admins.Create(ctx, model.Admin{Email: email, PasswordHash: hash}, model.MaxAdmins)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrAdminLimit):
			r.logger.Warn("Registration service: admin limit reached",
				"limit", model.MaxAdmins)
			return model.Admin{}, apperr.Conflict("Maximum number of admins (%d) has been reached", model.MaxAdmins)
		case errors.Is(err, model.ErrDuplicate):
			return model.Admin{}, apperr.Conflict("Email already exists")
		}
		r.logger.Error("Registration service: failed to create admin",
			"email", email,
			"error", err.Error())
		return model.Admin{}, apperr.Dependency(err, "failed to create admin")
	}

	r.logger.Info("Registration service: admin registered",
		"admin_id", admin.ID)

	return admin, nil
}

// RegisterDoctor creates a doctor and stores its optional profile image.
func (r *Registration) RegisterDoctor(ctx context.Context, in DoctorRegistration) (model.Doctor, error) {
	if anyBlank(in.FirstName, in.LastName, in.Gender, in.Email, in.Password, in.Specialty) || in.BirthDate.IsZero() {
		return model.Doctor{}, apperr.Validation("First name, last name, gender, birth date, email, password, and specialty are required")
	}
	if err := validateEmail(in.Email); err != nil {
		return model.Doctor{}, err
	}
	specialty, ok := model.CanonicalSpecialty(in.Specialty)
	if !ok {
		return model.Doctor{}, invalidSpecialty()
	}
	if err := r.images.Validate(in.Image, RegistrationImageExts); err != nil {
		return model.Doctor{}, err
	}
	if err := ensureEmailFree(ctx, r.credentials, in.Email, 0, 0); err != nil {
		return model.Doctor{}, err
	}

	hash, err := hashPassword(r.hasher, in.Password)
	if err != nil {
		return model.Doctor{}, err
	}

	doctor, err := r.doctors.Create(ctx, model.Doctor{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Gender:       in.Gender,
		BirthDate:    in.BirthDate,
		Age:          ageAt(in.BirthDate, r.now()),
		Specialty:    specialty,
		Email:        in.Email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, model.ErrDuplicate) {
			return model.Doctor{}, apperr.Conflict("Email already exists")
		}
		r.logger.Error("Registration service: failed to create doctor",
			"email", in.Email,
			"error", err.Error())
		return model.Doctor{}, apperr.Dependency(err, "failed to create doctor")
	}

	if !in.Image.empty() {
		url, err := r.images.Save(ctx, in.Image, ImagePrefixDoctor, doctor.ID, "", RegistrationImageExts)
		if err != nil {
			r.discardDoctor(ctx, doctor.ID)
			return model.Doctor{}, err
		}
		doctor.ImageURL = url
		if err := r.doctors.Update(ctx, doctor); err != nil {
			r.images.Remove(ctx, url)
			r.discardDoctor(ctx, doctor.ID)
			return model.Doctor{}, apperr.Dependency(err, "failed to store doctor image url")
		}
	}

	r.logger.Info("Registration service: doctor registered",
		"doctor_id", doctor.ID,
		"specialty", doctor.Specialty)

	return doctor, nil
}

// RegisterPatient creates a patient with a first treatment history, or
// attaches a new history to an existing patient whose password matches.
func (r *Registration) RegisterPatient(ctx context.Context, in PatientRegistration) (model.Patient, error) {
	if anyBlank(in.FirstName, in.LastName, in.Gender, in.Email, in.Password, in.Diagnosis, in.Treatment) ||
		in.BirthDate.IsZero() || in.DoctorID <= 0 {
		return model.Patient{}, apperr.Validation("First name, last name, gender, birth date, email, password, doctor ID, diagnosis, and treatment are required")
	}
	if err := validateEmail(in.Email); err != nil {
		return model.Patient{}, err
	}
	if err := r.images.validateAll(in.uploads(), RegistrationImageExts); err != nil {
		return model.Patient{}, err
	}

	exists, err := r.doctors.Exists(ctx, in.DoctorID)
	if err != nil {
		return model.Patient{}, apperr.Dependency(err, "failed to check doctor")
	}
	if !exists {
		return model.Patient{}, apperr.NotFound("Doctor not found")
	}

	bloodType := strings.TrimSpace(in.BloodType)
	if bloodType == "" {
		bloodType = model.DefaultBloodType
	}
	age := ageAt(in.BirthDate, r.now())

	history := model.TreatmentHistory{
		DoctorID:  in.DoctorID,
		Diagnosis: in.Diagnosis,
		Treatment: in.Treatment,
	}

	existing, err := r.patients.GetByEmail(ctx, in.Email)
	var patient model.Patient
	returning := err == nil
	switch {
	case returning:
		patient, err = r.attachHistory(ctx, existing, in.Password, history)
		if err != nil {
			return model.Patient{}, err
		}
		patient.Age = age
		patient.BloodType = bloodType
	case errors.Is(err, model.ErrNotFound):
		patient, err = r.createPatient(ctx, in, age, bloodType, history)
		if err != nil {
			return model.Patient{}, err
		}
	default:
		return model.Patient{}, apperr.Dependency(err, "failed to look up patient")
	}

	changed, err := r.images.savePatientImages(ctx, &patient, in.PatientImages, RegistrationImageExts)
	if err != nil {
		if !returning {
			r.discardPatient(ctx, patient)
		}
		return model.Patient{}, err
	}
	if changed || returning {
		if err := r.patients.Update(ctx, patient); err != nil {
			return model.Patient{}, apperr.Dependency(err, "failed to update patient")
		}
	}

	saved, err := r.patients.GetByID(ctx, patient.ID)
	if err != nil {
		return model.Patient{}, apperr.Dependency(err, "failed to reload patient")
	}

	r.logger.Info("Registration service: patient registered",
		"patient_id", saved.ID,
		"doctor_id", in.DoctorID)

	return saved, nil
}

func (r *Registration) createPatient(ctx context.Context, in PatientRegistration, age int, bloodType string, history model.TreatmentHistory) (model.Patient, error) {
	if err := ensureEmailFree(ctx, r.credentials, in.Email, 0, 0); err != nil {
		return model.Patient{}, err
	}

	hash, err := hashPassword(r.hasher, in.Password)
	if err != nil {
		return model.Patient{}, err
	}

	patient, err := r.patients.Register(ctx, model.Patient{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Gender:       in.Gender,
		BirthDate:    in.BirthDate,
		Age:          age,
		BloodType:    bloodType,
		Email:        in.Email,
		PasswordHash: hash,
	}, history)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrDuplicate):
			return model.Patient{}, apperr.Conflict("Email already exists")
		case errors.Is(err, model.ErrNotFound):
			return model.Patient{}, apperr.NotFound("Doctor not found")
		}
		r.logger.Error("Registration service: failed to create patient",
			"email", in.Email,
			"error", err.Error())
		return model.Patient{}, apperr.Dependency(err, "failed to create patient")
	}

	return patient, nil
}

func (r *Registration) attachHistory(ctx context.Context, patient model.Patient, password string, history model.TreatmentHistory) (model.Patient, error) {
	ok, err := r.hasher.Verify(password, patient.PasswordHash)
	if err != nil {
		return model.Patient{}, apperr.Dependency(err, "failed to verify password")
	}
	if !ok {
		r.logger.Warn("Registration service: wrong password for existing patient",
			"patient_id", patient.ID)
		return model.Patient{}, apperr.InvalidCredentials("Invalid password for existing patient")
	}

	linked, err := r.histories.Exists(ctx, history.DoctorID, patient.ID)
	if err != nil {
		return model.Patient{}, apperr.Dependency(err, "failed to check treatment history")
	}
	if linked {
		return model.Patient{}, duplicateHistory()
	}

	history.PatientID = patient.ID
	saved, err := r.histories.Create(ctx, history)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrDuplicate):
			return model.Patient{}, duplicateHistory()
		case errors.Is(err, model.ErrNotFound):
			return model.Patient{}, apperr.NotFound("Doctor not found")
		}
		return model.Patient{}, apperr.Dependency(err, "failed to create treatment history")
	}

	patient.Histories = append(patient.Histories, saved)
	return patient, nil
}

func invalidSpecialty() error {
	return apperr.Validation("Invalid specialty. Specialty must be one of the following: %s", strings.Join(model.Specialties, ", "))
}

func duplicateHistory() error {
	return apperr.Conflict("Patient already has a treatment history with this doctor")
}

// discardDoctor removes a doctor created by a registration that failed
// afterwards, so the email can be registered again.
func (r *Registration) discardDoctor(ctx context.Context, id int64) {
	if err := r.doctors.Delete(ctx, id); err != nil {
		r.logger.Error("Registration service: failed to discard doctor",
			"doctor_id", id,
			"error", err.Error())
	}
}

// discardPatient also drops the images already stored for p.
func (r *Registration) discardPatient(ctx context.Context, p model.Patient) {
	for _, url := range []string{p.ImageURL, p.XRayImageURL, p.LabResultsImageURL} {
		if url != "" {
			r.images.Remove(ctx, url)
		}
	}
	if err := r.patients.Delete(ctx, p.ID); err != nil {
		r.logger.Error("Registration service: failed to discard patient",
			"patient_id", p.ID,
			"error", err.Error())
	}
}
