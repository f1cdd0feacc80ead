package service

import (
	"context"
	"errors"
	"time"

	"github.com/dtroode/clinic-server/internal/apperr"
	"github.com/dtroode/clinic-server/internal/logger"
	"github.com/dtroode/clinic-server/internal/model"
)

// DoctorUpdate holds the fields to change on a doctor. Empty fields are
// left unchanged.
type DoctorUpdate struct {
	FirstName string
	LastName  string
	Gender    string
	BirthDate time.Time
	Specialty string
	Email     string
	Password  string
	Image     *Upload
}

// PatientUpdate holds the fields to change on a patient. Empty fields are
// left unchanged. DoctorID, Diagnosis and Treatment describe a treatment
// history to attach or modify.
type PatientUpdate struct {
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

// Records updates and deletes doctors and patients.
type Records struct {
	credentials model.CredentialStore
	doctors     model.DoctorStore
	patients    model.PatientStore
	histories   model.HistoryStore
	hasher      model.PasswordHasher
	images      *Images
	guard       *Guard
	logger      *logger.Logger
	now         func() time.Time
}

func NewRecords(
	credentials model.CredentialStore,
	doctors model.DoctorStore,
	patients model.PatientStore,
	histories model.HistoryStore,
	hasher model.PasswordHasher,
	images *Images,
	guard *Guard,
	logger *logger.Logger,
) *Records {
	return &Records{
		credentials: credentials,
		doctors:     doctors,
		patients:    patients,
		histories:   histories,
		hasher:      hasher,
		images:      images,
		guard:       guard,
		logger:      logger,
		now:         time.Now,
	}
}

func (r *Records) UpdateDoctor(ctx context.Context, id int64, in DoctorUpdate) (model.Doctor, error) {
	doctor, err := r.getDoctor(ctx, id)
	if err != nil {
		return model.Doctor{}, err
	}
	if err := r.images.Validate(in.Image, UpdateImageExts); err != nil {
		return model.Doctor{}, err
	}

	if in.Email != "" && in.Email != doctor.Email {
		if err := validateEmail(in.Email); err != nil {
			return model.Doctor{}, err
		}
		if err := ensureEmailFree(ctx, r.credentials, in.Email, model.RoleDoctor, id); err != nil {
			return model.Doctor{}, err
		}
		doctor.Email = in.Email
	}
	if in.Specialty != "" {
		specialty, ok := model.CanonicalSpecialty(in.Specialty)
		if !ok {
			return model.Doctor{}, invalidSpecialty()
		}
		doctor.Specialty = specialty
	}
	setIfPresent(&doctor.FirstName, in.FirstName)
	setIfPresent(&doctor.LastName, in.LastName)
	setIfPresent(&doctor.Gender, in.Gender)
	if !in.BirthDate.IsZero() {
		doctor.BirthDate = in.BirthDate
		doctor.Age = ageAt(in.BirthDate, r.now())
	}
	if in.Password != "" {
		hash, err := hashPassword(r.hasher, in.Password)
		if err != nil {
			return model.Doctor{}, err
		}
		doctor.PasswordHash = hash
	}

	url, err := r.images.Save(ctx, in.Image, ImagePrefixDoctor, id, doctor.ImageURL, UpdateImageExts)
	if err != nil {
		return model.Doctor{}, err
	}
	doctor.ImageURL = url

	if err := r.doctors.Update(ctx, doctor); err != nil {
		return model.Doctor{}, r.updateError(err, "Doctor not found", "failed to update doctor")
	}

	r.logger.Info("Records service: doctor updated",
		"doctor_id", id)

	return doctor, nil
}

// UpdatePatient applies an admin update to patient id, optionally
// attaching a treatment history with a new doctor.
func (r *Records) UpdatePatient(ctx context.Context, id int64, in PatientUpdate) (model.Patient, error) {
	patient, err := r.getPatient(ctx, id)
	if err != nil {
		return model.Patient{}, err
	}

	attach := in.DoctorID > 0 || in.Diagnosis != "" || in.Treatment != ""
	if attach && (in.DoctorID <= 0 || anyBlank(in.Diagnosis, in.Treatment)) {
		return model.Patient{}, apperr.Validation("DoctorId, Diagnosis, and Treatment must all be provided to update patient history")
	}
	if err := r.images.validateAll(in.uploads(), UpdateImageExts); err != nil {
		return model.Patient{}, err
	}
	if err := r.applyPatientFields(ctx, &patient, in); err != nil {
		return model.Patient{}, err
	}

	if attach {
		if err := r.attachHistory(ctx, patient.ID, in); err != nil {
			return model.Patient{}, err
		}
	}

	return r.savePatient(ctx, patient, in.PatientImages)
}

// UpdatePatientForDoctor applies a doctor's update to a patient they treat.
// Diagnosis and treatment changes apply to that doctor's history.
func (r *Records) UpdatePatientForDoctor(ctx context.Context, claims model.Claims, patientID int64, in PatientUpdate) (model.Patient, error) {
	patient, err := r.getPatient(ctx, patientID)
	if err != nil {
		return model.Patient{}, err
	}
	if err := r.guard.RequirePatientAccess(ctx, claims, patientID); err != nil {
		return model.Patient{}, err
	}

	amend := in.Diagnosis != "" || in.Treatment != ""
	if amend && anyBlank(in.Diagnosis, in.Treatment) {
		return model.Patient{}, apperr.Validation("Diagnosis and Treatment must both be provided to update patient history")
	}
	if err := r.images.validateAll(in.uploads(), UpdateImageExts); err != nil {
		return model.Patient{}, err
	}
	if err := r.applyPatientFields(ctx, &patient, in); err != nil {
		return model.Patient{}, err
	}

	if amend {
		history, err := r.histories.GetByPair(ctx, claims.UserID, patientID)
		if err != nil {
			return model.Patient{}, r.updateError(err, "Treatment history not found", "failed to load treatment history")
		}
		history.Diagnosis = in.Diagnosis
		history.Treatment = in.Treatment
		history.TreatmentDate = r.now().UTC()
		if err := r.histories.Update(ctx, history); err != nil {
			return model.Patient{}, r.updateError(err, "Treatment history not found", "failed to update treatment history")
		}
	}

	return r.savePatient(ctx, patient, in.PatientImages)
}

// DeleteDoctor removes a doctor, its treatment histories and its image.
func (r *Records) DeleteDoctor(ctx context.Context, id int64) error {
	doctor, err := r.getDoctor(ctx, id)
	if err != nil {
		return err
	}

	if err := r.doctors.Delete(ctx, id); err != nil {
		return r.updateError(err, "Doctor not found", "failed to delete doctor")
	}
	r.images.Remove(ctx, doctor.ImageURL)

	r.logger.Info("Records service: doctor deleted",
		"doctor_id", id)
	return nil
}

// DeletePatient removes a patient, its treatment histories and its images.
func (r *Records) DeletePatient(ctx context.Context, id int64) error {
	patient, err := r.getPatient(ctx, id)
	if err != nil {
		return err
	}
	return r.deletePatient(ctx, patient)
}

// DeletePatientForDoctor removes a patient the calling doctor treats.
func (r *Records) DeletePatientForDoctor(ctx context.Context, claims model.Claims, patientID int64) error {
	patient, err := r.getPatient(ctx, patientID)
	if err != nil {
		return err
	}
	if err := r.guard.RequirePatientAccess(ctx, claims, patientID); err != nil {
		return err
	}
	return r.deletePatient(ctx, patient)
}

func (r *Records) deletePatient(ctx context.Context, patient model.Patient) error {
	if err := r.patients.Delete(ctx, patient.ID); err != nil {
		return r.updateError(err, "Patient not found", "failed to delete patient")
	}
	for _, url := range []string{patient.ImageURL, patient.XRayImageURL, patient.LabResultsImageURL} {
		r.images.Remove(ctx, url)
	}

	r.logger.Info("Records service: patient deleted",
		"patient_id", patient.ID)
	return nil
}

func (r *Records) getDoctor(ctx context.Context, id int64) (model.Doctor, error) {
	doctor, err := r.doctors.GetByID(ctx, id)
	if err != nil {
		return model.Doctor{}, r.updateError(err, "Doctor not found", "failed to load doctor")
	}
	return doctor, nil
}

func (r *Records) getPatient(ctx context.Context, id int64) (model.Patient, error) {
	patient, err := r.patients.GetByID(ctx, id)
	if err != nil {
		return model.Patient{}, r.updateError(err, "Patient not found", "failed to load patient")
	}
	return patient, nil
}

func (r *Records) applyPatientFields(ctx context.Context, patient *model.Patient, in PatientUpdate) error {
	if in.Email != "" && in.Email != patient.Email {
		if err := validateEmail(in.Email); err != nil {
			return err
		}
		if err := ensureEmailFree(ctx, r.credentials, in.Email, model.RolePatient, patient.ID); err != nil {
			return err
		}
		patient.Email = in.Email
	}
	setIfPresent(&patient.FirstName, in.FirstName)
	setIfPresent(&patient.LastName, in.LastName)
	setIfPresent(&patient.Gender, in.Gender)
	setIfPresent(&patient.BloodType, in.BloodType)
	if !in.BirthDate.IsZero() {
		patient.BirthDate = in.BirthDate
		patient.Age = ageAt(in.BirthDate, r.now())
	}
	if in.Password != "" {
		hash, err := hashPassword(r.hasher, in.Password)
		if err != nil {
			return err
		}
		patient.PasswordHash = hash
	}
	return nil
}

func (r *Records) attachHistory(ctx context.Context, patientID int64, in PatientUpdate) error {
	exists, err := r.doctors.Exists(ctx, in.DoctorID)
	if err != nil {
		return apperr.Dependency(err, "failed to check doctor")
	}
	if !exists {
		return apperr.NotFound("Doctor not found")
	}

	linked, err := r.histories.Exists(ctx, in.DoctorID, patientID)
	if err != nil {
		return apperr.Dependency(err, "failed to check treatment history")
	}
	if linked {
		return duplicateHistory()
	}

	_, err = r.histories.Create(ctx, model.TreatmentHistory{
		PatientID: patientID,
		DoctorID:  in.DoctorID,
		Diagnosis: in.Diagnosis,
		Treatment: in.Treatment,
	})
	if err != nil {
		switch {
		case errors.Is(err, model.ErrDuplicate):
			return duplicateHistory()
		case errors.Is(err, model.ErrNotFound):
			return apperr.NotFound("Doctor not found")
		}
		return apperr.Dependency(err, "failed to create treatment history")
	}
	return nil
}

func (r *Records) savePatient(ctx context.Context, patient model.Patient, images PatientImages) (model.Patient, error) {
	if _, err := r.images.savePatientImages(ctx, &patient, images, UpdateImageExts); err != nil {
		return model.Patient{}, err
	}
	if err := r.patients.Update(ctx, patient); err != nil {
		return model.Patient{}, r.updateError(err, "Patient not found", "failed to update patient")
	}

	updated, err := r.getPatient(ctx, patient.ID)
	if err != nil {
		return model.Patient{}, err
	}

	r.logger.Info("Records service: patient updated",
		"patient_id", patient.ID)
	return updated, nil
}

// updateError maps persistence sentinels onto caller-visible kinds.
func (r *Records) updateError(err error, notFound, action string) error {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return apperr.NotFound("%s", notFound)
	case errors.Is(err, model.ErrDuplicate):
		return apperr.Conflict("Email already exists")
	}
	r.logger.Error("Records service: "+action,
		"error", err.Error())
	return apperr.Dependency(err, "%s", action)
}

func setIfPresent(field *string, value string) {
	if value != "" {
		*field = value
	}
}
