package service

import (
	"context"
	"errors"
	netmail "net/mail"
	"time"

	"github.com/dtroode/clinic-server/internal/apperr"
	"github.com/dtroode/clinic-server/internal/model"
)

func anyBlank(values ...string) bool {
	for _, v := range values {
		if v == "" {
			return true
		}
	}
	return false
}

// isValidEmail accepts a bare RFC 5322 address without display name.
func isValidEmail(email string) bool {
	addr, err := netmail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func validateEmail(email string) error {
	if !isValidEmail(email) {
		return apperr.Validation("Invalid email format")
	}
	return nil
}

func validatePage(params model.ListParams) error {
	if params.PageNumber < 1 || params.PageSize < 1 {
		return apperr.Validation("Page number and page size must be greater than 0")
	}
	return nil
}

// ageAt returns completed years between birth and now.
func ageAt(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}

// lookupEmail walks the principal kinds in login order and returns the
// first credential owning email.
func lookupEmail(ctx context.Context, store model.CredentialStore, email string) (model.Credential, bool, error) {
	for _, role := range model.Roles {
		cred, err := store.FindCredential(ctx, role, email)
		switch {
		case err == nil:
			return cred, true, nil
		case errors.Is(err, model.ErrNotFound):
			continue
		default:
			return model.Credential{}, false, apperr.Dependency(err, "failed to look up %s by email", role)
		}
	}
	return model.Credential{}, false, nil
}

// ensureEmailFree fails with Conflict when email belongs to any principal
// other than (role, id). A zero role checks against everyone.
func ensureEmailFree(ctx context.Context, store model.CredentialStore, email string, role model.Role, id int64) error {
	cred, found, err := lookupEmail(ctx, store, email)
	if err != nil {
		return err
	}
	if found && (cred.Role != role || cred.ID != id) {
		return apperr.Conflict("Email already exists")
	}
	return nil
}

func hashPassword(hasher model.PasswordHasher, password string) (string, error) {
	hash, err := hasher.Hash(password)
	if err != nil {
		if apperr.Is(err, apperr.KindValidation) {
			return "", err
		}
		return "", apperr.Dependency(err, "failed to hash password")
	}
	return hash, nil
}
