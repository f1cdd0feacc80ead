package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/clinic-server/internal/model"
)

var _ model.CredentialStore = (*CredentialRepository)(nil)

// CredentialRepository reads and rotates password hashes across all principal tables.
type CredentialRepository struct {
	db DB
}

func NewCredentialRepository(db DB) *CredentialRepository {
	return &CredentialRepository{
		db: db,
	}
}

func tableFor(role model.Role) (string, error) {
	switch role {
	case model.RoleAdmin:
		return "admins", nil
	case model.RoleDoctor:
		return "doctors", nil
	case model.RolePatient:
		return "patients", nil
	default:
		return "", fmt.Errorf("no table for %s", role)
	}
}

func (r *CredentialRepository) FindCredential(ctx context.Context, role model.Role, email string) (model.Credential, error) {
	table, err := tableFor(role)
	if err != nil {
		return model.Credential{}, err
	}

	cred := model.Credential{Role: role}
	query := fmt.Sprintf(`SELECT id, email, password_hash FROM %s WHERE email = $1`, table)

	err = r.db.QueryRow(ctx, query, email).Scan(&cred.ID, &cred.Email, &cred.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Credential{}, model.ErrNotFound
		}
		return model.Credential{}, fmt.Errorf("failed to get %s credential by email: %w", role, err)
	}

	return cred, nil
}

func (r *CredentialRepository) UpdatePasswordHash(ctx context.Context, role model.Role, id int64, hash string) error {
	table, err := tableFor(role)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE %s SET password_hash = $1 WHERE id = $2`, table)

	tag, err := r.db.Exec(ctx, query, hash, id)
	if err != nil {
		return fmt.Errorf("failed to update %s password hash: %w", role, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}
