package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/clinic-server/internal/model"
)

var _ model.HistoryStore = (*HistoryRepository)(nil)

type HistoryRepository struct {
	db DB
}

func NewHistoryRepository(db DB) *HistoryRepository {
	return &HistoryRepository{
		db: db,
	}
}

func insertHistory(ctx context.Context, db DB, h model.TreatmentHistory) (model.TreatmentHistory, error) {
	query := `INSERT INTO treatment_histories (patient_id, doctor_id, diagnosis, treatment)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, treatment_date`

	err := db.QueryRow(ctx, query, h.PatientID, h.DoctorID, h.Diagnosis, h.Treatment).
		Scan(&h.ID, &h.TreatmentDate)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return model.TreatmentHistory{}, model.ErrDuplicate
		case isForeignKeyViolation(err):
			return model.TreatmentHistory{}, model.ErrNotFound
		}
		return model.TreatmentHistory{}, fmt.Errorf("failed to create treatment history: %w", err)
	}

	return h, nil
}

func (r *HistoryRepository) Create(ctx context.Context, h model.TreatmentHistory) (model.TreatmentHistory, error) {
	return insertHistory(ctx, r.db, h)
}

func (r *HistoryRepository) Exists(ctx context.Context, doctorID, patientID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM treatment_histories WHERE doctor_id = $1 AND patient_id = $2)`

	if err := r.db.QueryRow(ctx, query, doctorID, patientID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check treatment history existence: %w", err)
	}
	return exists, nil
}

func (r *HistoryRepository) GetByPair(ctx context.Context, doctorID, patientID int64) (model.TreatmentHistory, error) {
	var h model.TreatmentHistory
	query := `SELECT h.id, h.patient_id, h.doctor_id, h.diagnosis, h.treatment, h.treatment_date, d.first_name, d.last_name
			  FROM treatment_histories h
			  JOIN doctors d ON d.id = h.doctor_id
			  WHERE h.doctor_id = $1 AND h.patient_id = $2`

	err := r.db.QueryRow(ctx, query, doctorID, patientID).Scan(
		&h.ID, &h.PatientID, &h.DoctorID, &h.Diagnosis, &h.Treatment, &h.TreatmentDate,
		&h.DoctorFirstName, &h.DoctorLastName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.TreatmentHistory{}, model.ErrNotFound
		}
		return model.TreatmentHistory{}, fmt.Errorf("failed to get treatment history: %w", err)
	}

	return h, nil
}

func (r *HistoryRepository) Update(ctx context.Context, h model.TreatmentHistory) error {
	query := `UPDATE treatment_histories SET diagnosis = $1, treatment = $2, treatment_date = $3 WHERE id = $4`

	tag, err := r.db.Exec(ctx, query, h.Diagnosis, h.Treatment, h.TreatmentDate, h.ID)
	if err != nil {
		return fmt.Errorf("failed to update treatment history: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}
