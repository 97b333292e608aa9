// Package errdefs defines the error kinds shared by the fitting packages.
//
// Every precondition failure is reported as an [*Error] whose Kind is one of
// the sentinel values below, so callers can branch with errors.Is:
//
//	if errors.Is(err, errdefs.ErrShape) { ... }
//
// Non-convergence of a minimizer is not an error; it is reported through
// fit.Result.Success.
package errdefs

import (
	"errors"
	"fmt"
)

var (
	// ErrDomain reports a value outside the mathematical domain of an
	// operation: zero Gaussian width, zero or negative variance.
	ErrDomain = errors.New("domain error")

	// ErrShape reports mismatched array shapes or lengths.
	ErrShape = errors.New("shape error")

	// ErrInsufficientData reports too few valid samples for a statistic.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrConfiguration reports an invalid fit setup, such as a parameter
	// count that does not match the model.
	ErrConfiguration = errors.New("configuration error")
)

// Error wraps one of the sentinel kinds with a detail message.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *Error) Unwrap() error { return e.Kind }

// Domainf returns an ErrDomain error with a formatted message.
func Domainf(format string, args ...any) error {
	return &Error{Kind: ErrDomain, Msg: fmt.Sprintf(format, args...)}
}

// Shapef returns an ErrShape error with a formatted message.
func Shapef(format string, args ...any) error {
	return &Error{Kind: ErrShape, Msg: fmt.Sprintf(format, args...)}
}

// InsufficientDataf returns an ErrInsufficientData error with a formatted message.
func InsufficientDataf(format string, args ...any) error {
	return &Error{Kind: ErrInsufficientData, Msg: fmt.Sprintf(format, args...)}
}

// Configurationf returns an ErrConfiguration error with a formatted message.
func Configurationf(format string, args ...any) error {
	return &Error{Kind: ErrConfiguration, Msg: fmt.Sprintf(format, args...)}
}

// IsDomain reports whether err is a domain error.
func IsDomain(err error) bool { return errors.Is(err, ErrDomain) }

// IsShape reports whether err is a shape error.
func IsShape(err error) bool { return errors.Is(err, ErrShape) }

// IsInsufficientData reports whether err is an insufficient-data error.
func IsInsufficientData(err error) bool { return errors.Is(err, ErrInsufficientData) }

// IsConfiguration reports whether err is a configuration error.
func IsConfiguration(err error) bool { return errors.Is(err, ErrConfiguration) }
