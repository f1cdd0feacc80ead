// Package apperr defines the error kinds surfaced to API callers.
//
// Every kind is an oops error code, so kinds survive wrapping and can be
// recovered at the transport boundary with KindOf.
package apperr

import "github.com/samber/oops"

// Kind is a caller-visible error category.
type Kind string

const (
	KindValidation         Kind = "VALIDATION_ERROR"
	KindNotFound           Kind = "NOT_FOUND"
	KindInvalidCredentials Kind = "INVALID_CREDENTIALS"
	KindConflict           Kind = "CONFLICT"
	KindCodeExpired        Kind = "CODE_EXPIRED"
	KindCodeInvalid        Kind = "CODE_INVALID"
	KindUnauthenticated    Kind = "UNAUTHENTICATED"
	KindUnauthorized       Kind = "UNAUTHORIZED"
	KindConfiguration      Kind = "CONFIGURATION_ERROR"
	KindDeliveryFailed     Kind = "DELIVERY_FAILED"
	KindDependency         Kind = "DEPENDENCY_FAILURE"
)

func newf(kind Kind, format string, args ...any) error {
	return oops.Code(string(kind)).Errorf(format, args...)
}

// Validation reports missing or malformed input.
func Validation(format string, args ...any) error {
	return newf(KindValidation, format, args...)
}

// NotFound reports an unknown email or identifier.
func NotFound(format string, args ...any) error {
	return newf(KindNotFound, format, args...)
}

// InvalidCredentials reports a failed login.
func InvalidCredentials(format string, args ...any) error {
	return newf(KindInvalidCredentials, format, args...)
}

// Conflict reports a uniqueness or capacity violation.
func Conflict(format string, args ...any) error {
	return newf(KindConflict, format, args...)
}

// CodeExpired reports a reset code read past its expiry.
func CodeExpired(format string, args ...any) error {
	return newf(KindCodeExpired, format, args...)
}

// CodeInvalid reports a missing or mismatched reset code.
func CodeInvalid(format string, args ...any) error {
	return newf(KindCodeInvalid, format, args...)
}

// Unauthenticated reports a missing or unverifiable bearer token.
func Unauthenticated(format string, args ...any) error {
	return newf(KindUnauthenticated, format, args...)
}

// Unauthorized reports a role or ownership mismatch.
func Unauthorized(format string, args ...any) error {
	return newf(KindUnauthorized, format, args...)
}

// Configuration reports missing or malformed startup settings.
func Configuration(format string, args ...any) error {
	return newf(KindConfiguration, format, args...)
}

// DeliveryFailed wraps a mail delivery failure.
func DeliveryFailed(err error, format string, args ...any) error {
	return oops.Code(string(KindDeliveryFailed)).Wrapf(err, format, args...)
}

// Dependency wraps a persistence or storage failure.
func Dependency(err error, format string, args ...any) error {
	return oops.Code(string(KindDependency)).Wrapf(err, format, args...)
}

// KindOf returns the kind attached to err. Errors without a kind are
// dependency failures.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return KindDependency
	}
	var raw any = oopsErr.Code()
	code, ok := raw.(string)
	if !ok || code == "" {
		return KindDependency
	}
	return Kind(code)
}

// Is reports whether err carries kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
