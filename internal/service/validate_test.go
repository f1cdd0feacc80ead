package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/clinic-server/internal/apperr"
	"github.com/dtroode/clinic-server/internal/mocks"
	"github.com/dtroode/clinic-server/internal/model"
)

func TestIsValidEmail(t *testing.T) {
	tests := map[string]bool{
		"a@x.com":               true,
		"first.last@clinic.org": true,
		"":                      false,
		"no-at-sign":            false,
		"Ann <a@x.com>":         false,
		" a@x.com":              false,
		"a@":                    false,
	}

	for email, want := range tests {
		t.Run(email, func(t *testing.T) {
			assert.Equal(t, want, isValidEmail(email))
		})
	}
}

func TestAgeAt(t *testing.T) {
	birth := time.Date(1990, 3, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 33, ageAt(birth, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 34, ageAt(birth, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 34, ageAt(birth, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, ageAt(birth, birth))
}

func TestValidatePage(t *testing.T) {
	assert.NoError(t, validatePage(model.ListParams{PageNumber: 1, PageSize: 1}))
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(validatePage(model.ListParams{PageNumber: 0, PageSize: 10})))
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(validatePage(model.ListParams{PageNumber: 1, PageSize: -1})))
}

func TestEnsureEmailFree(t *testing.T) {
	ctx := context.Background()

	t.Run("owner may keep own email", func(t *testing.T) {
		creds := &mocks.CredentialStore{}
		creds.On("FindCredential", ctx, model.RoleAdmin, "d@x.com").Return(model.Credential{}, model.ErrNotFound)
		creds.On("FindCredential", ctx, model.RoleDoctor, "d@x.com").
			Return(model.Credential{ID: 4, Role: model.RoleDoctor, Email: "d@x.com"}, nil)

		assert.NoError(t, ensureEmailFree(ctx, creds, "d@x.com", model.RoleDoctor, 4))
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(ensureEmailFree(ctx, creds, "d@x.com", model.RoleDoctor, 5)))
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(ensureEmailFree(ctx, creds, "d@x.com", 0, 0)))
	})

	t.Run("lookup failure", func(t *testing.T) {
		creds := &mocks.CredentialStore{}
		creds.On("FindCredential", ctx, model.RoleAdmin, "a@x.com").Return(model.Credential{}, errors.New("down"))

		err := ensureEmailFree(ctx, creds, "a@x.com", 0, 0)
		require.Error(t, err)
		assert.Equal(t, apperr.KindDependency, apperr.KindOf(err))
	})
}

func TestHashPassword(t *testing.T) {
	hasher := &mocks.PasswordHasher{}
	hasher.On("Hash", "").Return("", apperr.Validation("Password is required"))
	hasher.On("Hash", "boom").Return("", errors.New("rng failure"))
	hasher.On("Hash", "ok").Return("$2a$hash", nil)

	_, err := hashPassword(hasher, "")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = hashPassword(hasher, "boom")
	assert.Equal(t, apperr.KindDependency, apperr.KindOf(err))

	hash, err := hashPassword(hasher, "ok")
	require.NoError(t, err)
	assert.Equal(t, "$2a$hash", hash)
}
