package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/clinic-server/internal/model"
)

var _ model.PatientStore = (*PatientRepository)(nil)

const patientColumns = `id, first_name, last_name, gender, birth_date, age, blood_type, email, password_hash,
	image_url, xray_image_url, lab_results_image_url, created_at`

var patientSearchColumns = []string{"first_name", "last_name", "email"}

type PatientRepository struct {
	db DB
}

func NewPatientRepository(db DB) *PatientRepository {
	return &PatientRepository{
		db: db,
	}
}

func scanPatient(row pgx.Row) (model.Patient, error) {
	var p model.Patient
	err := row.Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.Gender, &p.BirthDate, &p.Age, &p.BloodType,
		&p.Email, &p.PasswordHash, &p.ImageURL, &p.XRayImageURL, &p.LabResultsImageURL, &p.CreatedAt,
	)
	return p, err
}

func (r *PatientRepository) Register(ctx context.Context, patient model.Patient, history model.TreatmentHistory) (model.Patient, error) {
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `INSERT INTO patients (first_name, last_name, gender, birth_date, age, blood_type, email, password_hash,
				  image_url, xray_image_url, lab_results_image_url)
				  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
				  RETURNING id, created_at`

		err := tx.QueryRow(ctx, query,
			patient.FirstName, patient.LastName, patient.Gender, patient.BirthDate, patient.Age,
			patient.BloodType, patient.Email, patient.PasswordHash,
			patient.ImageURL, patient.XRayImageURL, patient.LabResultsImageURL,
		).Scan(&patient.ID, &patient.CreatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return model.ErrDuplicate
			}
			return fmt.Errorf("failed to create patient: %w", err)
		}

		history.PatientID = patient.ID
		saved, err := insertHistory(ctx, tx, history)
		if err != nil {
			return err
		}
		patient.Histories = []model.TreatmentHistory{saved}
		return nil
	})
	if err != nil {
		return model.Patient{}, err
	}

	return patient, nil
}

func (r *PatientRepository) getOne(ctx context.Context, where string, arg any) (model.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients WHERE ` + where

	patient, err := scanPatient(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Patient{}, model.ErrNotFound
		}
		return model.Patient{}, fmt.Errorf("failed to get patient: %w", err)
	}

	histories, err := r.loadHistories(ctx, []int64{patient.ID}, 0)
	if err != nil {
		return model.Patient{}, err
	}
	patient.Histories = histories[patient.ID]

	return patient, nil
}

func (r *PatientRepository) GetByID(ctx context.Context, id int64) (model.Patient, error) {
	return r.getOne(ctx, `id = $1`, id)
}

func (r *PatientRepository) GetByEmail(ctx context.Context, email string) (model.Patient, error) {
	return r.getOne(ctx, `email = $1`, email)
}

func (r *PatientRepository) List(ctx context.Context, params model.ListParams) (model.Page[model.Patient], error) {
	return r.list(ctx, 0, params)
}

func (r *PatientRepository) ListByDoctor(ctx context.Context, doctorID int64, params model.ListParams) (model.Page[model.Patient], error) {
	return r.list(ctx, doctorID, params)
}

// list pages through patients; a non-zero doctorID restricts both the
// patients and their attached histories to that doctor.
func (r *PatientRepository) list(ctx context.Context, doctorID int64, params model.ListParams) (model.Page[model.Patient], error) {
	var conds []string
	args := []any{}
	if doctorID != 0 {
		args = append(args, doctorID)
		conds = append(conds, fmt.Sprintf(
			`EXISTS (SELECT 1 FROM treatment_histories h WHERE h.patient_id = patients.id AND h.doctor_id = $%d)`, len(args)))
	}
	if params.Search != "" {
		args = append(args, likePattern(params.Search))
		conds = append(conds, searchFilter(patientSearchColumns, len(args)))
	}

	where := ""
	for i, c := range conds {
		if i == 0 {
			where = ` WHERE ` + c
		} else {
			where += ` AND ` + c
		}
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM patients`+where, args...).Scan(&total); err != nil {
		return model.Page[model.Patient]{}, fmt.Errorf("failed to count patients: %w", err)
	}

	args = append(args, params.PageSize, params.Offset())
	query := fmt.Sprintf(`SELECT %s FROM patients%s ORDER BY id LIMIT $%d OFFSET $%d`,
		patientColumns, where, len(args)-1, len(args))

	patients, err := r.queryPatients(ctx, query, args...)
	if err != nil {
		return model.Page[model.Patient]{}, err
	}

	ids := make([]int64, len(patients))
	for i, p := range patients {
		ids[i] = p.ID
	}
	histories, err := r.loadHistories(ctx, ids, doctorID)
	if err != nil {
		return model.Page[model.Patient]{}, err
	}
	for i := range patients {
		patients[i].Histories = histories[patients[i].ID]
	}

	return model.Page[model.Patient]{
		Items:      patients,
		TotalCount: total,
		PageNumber: params.PageNumber,
		PageSize:   params.PageSize,
	}, nil
}

func (r *PatientRepository) queryPatients(ctx context.Context, query string, args ...any) ([]model.Patient, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	defer rows.Close()

	patients := []model.Patient{}
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan patient: %w", err)
		}
		patients = append(patients, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate patients: %w", err)
	}

	return patients, nil
}

// loadHistories fetches histories for the given patients keyed by patient id,
// with the treating doctor's name joined in.
func (r *PatientRepository) loadHistories(ctx context.Context, patientIDs []int64, doctorID int64) (map[int64][]model.TreatmentHistory, error) {
	result := make(map[int64][]model.TreatmentHistory, len(patientIDs))
	if len(patientIDs) == 0 {
		return result, nil
	}

	query := `SELECT h.id, h.patient_id, h.doctor_id, h.diagnosis, h.treatment, h.treatment_date, d.first_name, d.last_name
			  FROM treatment_histories h
			  JOIN doctors d ON d.id = h.doctor_id
			  WHERE h.patient_id = ANY($1)`
	args := []any{patientIDs}
	if doctorID != 0 {
		query += ` AND h.doctor_id = $2`
		args = append(args, doctorID)
	}
	query += ` ORDER BY h.id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load treatment histories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var h model.TreatmentHistory
		if err := rows.Scan(
			&h.ID, &h.PatientID, &h.DoctorID, &h.Diagnosis, &h.Treatment, &h.TreatmentDate,
			&h.DoctorFirstName, &h.DoctorLastName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan treatment history: %w", err)
		}
		result[h.PatientID] = append(result[h.PatientID], h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate treatment histories: %w", err)
	}

	return result, nil
}

func (r *PatientRepository) Update(ctx context.Context, patient model.Patient) error {
	query := `UPDATE patients
			  SET first_name = $1, last_name = $2, gender = $3, birth_date = $4, age = $5, blood_type = $6,
			      email = $7, password_hash = $8, image_url = $9, xray_image_url = $10, lab_results_image_url = $11
			  WHERE id = $12`

	tag, err := r.db.Exec(ctx, query,
		patient.FirstName, patient.LastName, patient.Gender, patient.BirthDate, patient.Age, patient.BloodType,
		patient.Email, patient.PasswordHash, patient.ImageURL, patient.XRayImageURL, patient.LabResultsImageURL,
		patient.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrDuplicate
		}
		return fmt.Errorf("failed to update patient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *PatientRepository) Delete(ctx context.Context, id int64) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM treatment_histories WHERE patient_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete patient histories: %w", err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete patient: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrNotFound
		}
		return nil
	})
}
