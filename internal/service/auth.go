package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dtroode/clinic-server/internal/apperr"
	"github.com/dtroode/clinic-server/internal/logger"
	"github.com/dtroode/clinic-server/internal/metrics"
	"github.com/dtroode/clinic-server/internal/model"
)

// ResetCodeTTL is how long a password reset code stays valid.
const ResetCodeTTL = 15 * time.Minute

const resetMailSubject = "Password Reset Request - Cura Health"

const invalidLoginMessage = "Invalid email or password"

// dummyPasswordHash is verified against when no principal owns the email,
// so an unknown email costs the same bcrypt work as a wrong password.
// It is a well-formed cost-10 hash that matches no password a client sends.
//
//nolint:gosec // G101: not a credential.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token   string
	Role    model.Role
	UserID  int64
	IsAdmin bool
}

type Auth struct {
	credentials model.CredentialStore
	hasher      model.PasswordHasher
	tokens      model.TokenIssuer
	codes       model.ResetCodeStore
	mailer      model.Mailer
	metrics     *metrics.Metrics
	logger      *logger.Logger
	random      io.Reader
}

func NewAuth(
	credentials model.CredentialStore,
	hasher model.PasswordHasher,
	tokens model.TokenIssuer,
	codes model.ResetCodeStore,
	mailer model.Mailer,
	metrics *metrics.Metrics,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		credentials: credentials,
		hasher:      hasher,
		tokens:      tokens,
		codes:       codes,
		mailer:      mailer,
		metrics:     metrics,
		logger:      logger,
		random:      rand.Reader,
	}
}

// Login checks email and password against admins, doctors and patients in
// that order and issues a token for the first kind that owns the email.
func (a *Auth) Login(ctx context.Context, email, password string) (LoginResult, error) {
	if anyBlank(email, password) {
		return LoginResult{}, apperr.Validation("Email and password are required")
	}

	a.logger.Debug("Auth service: login attempt",
		"email", email)

	cred, found, err := lookupEmail(ctx, a.credentials, email)
	if err != nil {
		a.metrics.ObserveLogin("", metrics.LoginError)
		a.logger.Error("Auth service: failed to look up credentials",
			"email", email,
			"error", err.Error())
		return LoginResult{}, err
	}
	if !found {
		_, _ = a.hasher.Verify(password, dummyPasswordHash)
		a.metrics.ObserveLogin("", metrics.LoginInvalidCredentials)
		a.logger.Info("Auth service: login for unknown email",
			"email", email)
		return LoginResult{}, apperr.InvalidCredentials(invalidLoginMessage)
	}

	ok, err := a.hasher.Verify(password, cred.PasswordHash)
	if err != nil {
		a.metrics.ObserveLogin(cred.Role.String(), metrics.LoginError)
		a.logger.Error("Auth service: failed to verify password",
			"email", email,
			"role", cred.Role.String(),
			"error", err.Error())
		return LoginResult{}, apperr.Dependency(err, "failed to verify password")
	}
	if !ok {
		a.metrics.ObserveLogin(cred.Role.String(), metrics.LoginInvalidCredentials)
		a.logger.Info("Auth service: wrong password",
			"email", email,
			"role", cred.Role.String())
		return LoginResult{}, apperr.InvalidCredentials(invalidLoginMessage)
	}

	isAdmin := cred.Role == model.RoleAdmin
	token, err := a.tokens.Issue(cred.Email, cred.Role, cred.ID, isAdmin)
	if err != nil {
		a.metrics.ObserveLogin(cred.Role.String(), metrics.LoginError)
		a.logger.Error("Auth service: failed to issue token",
			"email", email,
			"error", err.Error())
		return LoginResult{}, apperr.Dependency(err, "failed to issue token")
	}

	a.metrics.ObserveLogin(cred.Role.String(), metrics.LoginSuccess)
	a.logger.Info("Auth service: login successful",
		"user_id", cred.ID,
		"role", cred.Role.String())

	return LoginResult{
		Token:   token,
		Role:    cred.Role,
		UserID:  cred.ID,
		IsAdmin: isAdmin,
	}, nil
}

// RequestPasswordReset stores a fresh code for email and mails it. The code
// stays valid even when delivery fails.
func (a *Auth) RequestPasswordReset(ctx context.Context, email string) error {
	if email == "" {
		return apperr.Validation("Email is required")
	}
	if err := validateEmail(email); err != nil {
		return err
	}

	_, found, err := lookupEmail(ctx, a.credentials, email)
	if err != nil {
		return err
	}
	if !found {
		a.logger.Info("Auth service: reset requested for unknown email",
			"email", email)
		return apperr.NotFound("Email not found")
	}

	code, err := a.generateCode()
	if err != nil {
		a.logger.Error("Auth service: failed to generate reset code",
			"error", err.Error())
		return apperr.Dependency(err, "failed to generate reset code")
	}
	a.codes.Store(email, code, ResetCodeTTL)

	err = a.mailer.Send(ctx, model.Mail{
		To:      email,
		Subject: resetMailSubject,
		Body:    resetMailBody(code),
		HTML:    true,
	})
	if err != nil {
		a.metrics.ObserveResetCode(false)
		a.logger.Error("Auth service: failed to send reset code",
			"email", email,
			"error", err.Error())
		return apperr.DeliveryFailed(err, "Failed to send reset code email. Please try again.")
	}

	a.metrics.ObserveResetCode(true)
	a.logger.Info("Auth service: reset code sent",
		"email", email)

	return nil
}

// ResetPassword replaces the password of the principal owning email when
// code is valid. The code is consumed right before the hash is written, so
// a failed lookup or hash leaves it usable while a failed write spends it.
func (a *Auth) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if anyBlank(email, code, newPassword) {
		return apperr.Validation("Email, reset code, and new password are required")
	}

	valid, expired := a.codes.Validate(email, code)
	if !valid {
		if expired {
			a.logger.Info("Auth service: reset code expired",
				"email", email)
			return apperr.CodeExpired("Reset code has expired")
		}
		a.logger.Info("Auth service: invalid reset code",
			"email", email)
		return apperr.CodeInvalid("Invalid reset code")
	}

	cred, found, err := lookupEmail(ctx, a.credentials, email)
	if err != nil {
		return err
	}
	if !found {
		return apperr.NotFound("Email not found")
	}

	hash, err := hashPassword(a.hasher, newPassword)
	if err != nil {
		return err
	}

	// A concurrent reset may have spent the code, or a new request may have
	// replaced it, since the check above.
	valid, expired = a.codes.Consume(email, code)
	if !valid {
		if expired {
			return apperr.CodeExpired("Reset code has expired")
		}
		a.logger.Info("Auth service: reset code no longer valid",
			"email", email)
		return apperr.CodeInvalid("Invalid reset code")
	}

	err = a.credentials.UpdatePasswordHash(ctx, cred.Role, cred.ID, hash)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return apperr.NotFound("Email not found")
		}
		a.logger.Error("Auth service: failed to update password",
			"user_id", cred.ID,
			"role", cred.Role.String(),
			"error", err.Error())
		return apperr.Dependency(err, "failed to update password")
	}

	a.logger.Info("Auth service: password reset",
		"user_id", cred.ID,
		"role", cred.Role.String())

	return nil
}

// codeSpace is the number of distinct reset codes; codeLimit is the
// largest multiple of it that fits in a uint32.
const (
	codeSpace = 1_000_000
	codeLimit = (1 << 32) / codeSpace * codeSpace
)

// generateCode returns a six digit code, uniform over 000000-999999.
// Draws at or above codeLimit are rejected to avoid modulo bias.
func (a *Auth) generateCode() (string, error) {
	var buf [4]byte
	for {
		if _, err := io.ReadFull(a.random, buf[:]); err != nil {
			return "", err
		}
		n := binary.LittleEndian.Uint32(buf[:])
		if uint64(n) < codeLimit {
			return fmt.Sprintf("%06d", n%codeSpace), nil
		}
	}
}

func resetMailBody(code string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #E0F2F1; padding: 20px;">
  <div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px;">
    <h2 style="color: #26A69A; text-align: center;">Password Reset Request</h2>
    <p>We received a request to reset your Cura Health account password. Here's your verification code:</p>
    <div style="font-size: 24px; font-weight: bold; text-align: center; padding: 15px; background-color: #B2DFDB;">%s</div>
    <p>This code will expire in 15 minutes. If you didn't request this reset, please ignore this email.</p>
  </div>
</body>
</html>`, code)
}
