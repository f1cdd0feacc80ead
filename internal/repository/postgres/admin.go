package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/clinic-server/internal/model"
)

var _ model.AdminStore = (*AdminRepository)(nil)

type AdminRepository struct {
	db DB
}

func NewAdminRepository(db DB) *AdminRepository {
	return &AdminRepository{
		db: db,
	}
}

// Create inserts admin unless the table already holds limit rows. The count
// and insert run under a table lock so concurrent registrations cannot
// overshoot the limit.
func (r *AdminRepository) Create(ctx context.Context, admin model.Admin, limit int) (model.Admin, error) {
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `LOCK TABLE admins IN SHARE ROW EXCLUSIVE MODE`); err != nil {
			return fmt.Errorf("failed to lock admins: %w", err)
		}

		var count int
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM admins`).Scan(&count); err != nil {
			return fmt.Errorf("failed to count admins: %w", err)
		}
		if count >= limit {
			return model.ErrAdminLimit
		}

		query := `INSERT INTO admins (email, password_hash) VALUES ($1, $2) RETURNING id, created_at`
		err := tx.QueryRow(ctx, query, admin.Email, admin.PasswordHash).Scan(&admin.ID, &admin.CreatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return model.ErrDuplicate
			}
			return fmt.Errorf("failed to create admin: %w", err)
		}
		return nil
	})
	if err != nil {
		return model.Admin{}, err
	}

	return admin, nil
}

func (r *AdminRepository) GetByID(ctx context.Context, id int64) (model.Admin, error) {
	var admin model.Admin
	query := `SELECT id, email, password_hash, created_at FROM admins WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(&admin.ID, &admin.Email, &admin.PasswordHash, &admin.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Admin{}, model.ErrNotFound
		}
		return model.Admin{}, fmt.Errorf("failed to get admin by id: %w", err)
	}

	return admin, nil
}
