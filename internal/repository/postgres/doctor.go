package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/clinic-server/internal/model"
)

var _ model.DoctorStore = (*DoctorRepository)(nil)

const doctorColumns = `id, first_name, last_name, gender, birth_date, age, specialty, email, password_hash, image_url, created_at`

var doctorSearchColumns = []string{"first_name", "last_name", "email", "specialty"}

type DoctorRepository struct {
	db DB
}

func NewDoctorRepository(db DB) *DoctorRepository {
	return &DoctorRepository{
		db: db,
	}
}

func scanDoctor(row pgx.Row) (model.Doctor, error) {
	var d model.Doctor
	err := row.Scan(
		&d.ID, &d.FirstName, &d.LastName, &d.Gender, &d.BirthDate, &d.Age,
		&d.Specialty, &d.Email, &d.PasswordHash, &d.ImageURL, &d.CreatedAt,
	)
	return d, err
}

func (r *DoctorRepository) Create(ctx context.Context, doctor model.Doctor) (model.Doctor, error) {
	query := `INSERT INTO doctors (first_name, last_name, gender, birth_date, age, specialty, email, password_hash, image_url)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		doctor.FirstName, doctor.LastName, doctor.Gender, doctor.BirthDate, doctor.Age,
		doctor.Specialty, doctor.Email, doctor.PasswordHash, doctor.ImageURL,
	).Scan(&doctor.ID, &doctor.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Doctor{}, model.ErrDuplicate
		}
		return model.Doctor{}, fmt.Errorf("failed to create doctor: %w", err)
	}

	return doctor, nil
}

func (r *DoctorRepository) GetByID(ctx context.Context, id int64) (model.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors WHERE id = $1`

	doctor, err := scanDoctor(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Doctor{}, model.ErrNotFound
		}
		return model.Doctor{}, fmt.Errorf("failed to get doctor by id: %w", err)
	}

	return doctor, nil
}

func (r *DoctorRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM doctors WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check doctor existence: %w", err)
	}
	return exists, nil
}

func (r *DoctorRepository) List(ctx context.Context, params model.ListParams) (model.Page[model.Doctor], error) {
	where := ""
	args := []any{}
	if params.Search != "" {
		args = append(args, likePattern(params.Search))
		where = ` WHERE ` + searchFilter(doctorSearchColumns, len(args))
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM doctors`+where, args...).Scan(&total); err != nil {
		return model.Page[model.Doctor]{}, fmt.Errorf("failed to count doctors: %w", err)
	}

	args = append(args, params.PageSize, params.Offset())
	query := fmt.Sprintf(`SELECT %s FROM doctors%s ORDER BY id LIMIT $%d OFFSET $%d`,
		doctorColumns, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return model.Page[model.Doctor]{}, fmt.Errorf("failed to list doctors: %w", err)
	}
	defer rows.Close()

	doctors := []model.Doctor{}
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return model.Page[model.Doctor]{}, fmt.Errorf("failed to scan doctor: %w", err)
		}
		doctors = append(doctors, d)
	}
	if err := rows.Err(); err != nil {
		return model.Page[model.Doctor]{}, fmt.Errorf("failed to iterate doctors: %w", err)
	}

	return model.Page[model.Doctor]{
		Items:      doctors,
		TotalCount: total,
		PageNumber: params.PageNumber,
		PageSize:   params.PageSize,
	}, nil
}

func (r *DoctorRepository) Update(ctx context.Context, doctor model.Doctor) error {
	query := `UPDATE doctors
			  SET first_name = $1, last_name = $2, gender = $3, birth_date = $4, age = $5,
			      specialty = $6, email = $7, password_hash = $8, image_url = $9
			  WHERE id = $10`

	tag, err := r.db.Exec(ctx, query,
		doctor.FirstName, doctor.LastName, doctor.Gender, doctor.BirthDate, doctor.Age,
		doctor.Specialty, doctor.Email, doctor.PasswordHash, doctor.ImageURL, doctor.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrDuplicate
		}
		return fmt.Errorf("failed to update doctor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *DoctorRepository) Delete(ctx context.Context, id int64) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM treatment_histories WHERE doctor_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete doctor histories: %w", err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM doctors WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete doctor: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrNotFound
		}
		return nil
	})
}
