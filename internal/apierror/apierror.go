// Package apierror provides standardized error response structures for the API
// and the typed error kinds the services return. All errors surfaced to clients
// go through this package to ensure consistency and to prevent leaking internal
// details (stack traces, endpoint errors, etc.).
package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Validation wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

// ── Error kinds ───────────────────────────────────────────────────────────────
// Services classify every failure into one of these kinds. No error in the
// core ever crashes the process: the boundary converts it into a message plus
// a no-op, and the kind decides the HTTP status.

type Kind int

const (
	// KindValidacion: user-input problems. Recoverable locally, no mutation.
	KindValidacion Kind = iota
	// KindNoEncontrado: a lookup by code or name failed. No mutation.
	KindNoEncontrado
	// KindCajaCerrada: an attempt to mutate a venta or cash field belonging
	// to a closed day. Always rejected synchronously, never partially applied.
	KindCajaCerrada
	// KindCargaEstado: the remote document could not be loaded and no backup
	// covered it; writes stay withheld.
	KindCargaEstado
	// KindPersistencia: a remote save failed. Non-fatal — the backup mirror
	// still holds the data and the next debounced cycle retries.
	KindPersistencia
	// KindInterno: anything unexpected.
	KindInterno
)

// Error is the typed error every service returns.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func Validacion(format string, args ...any) *Error {
	return &Error{Kind: KindValidacion, Msg: fmt.Sprintf(format, args...)}
}

func NoEncontrado(format string, args ...any) *Error {
	return &Error{Kind: KindNoEncontrado, Msg: fmt.Sprintf(format, args...)}
}

func CajaCerrada(format string, args ...any) *Error {
	return &Error{Kind: KindCajaCerrada, Msg: fmt.Sprintf(format, args...)}
}

func CargaEstado(msg string, err error) *Error {
	return &Error{Kind: KindCargaEstado, Msg: msg, Err: err}
}

func Persistencia(msg string, err error) *Error {
	return &Error{Kind: KindPersistencia, Msg: msg, Err: err}
}

func Interno(msg string, err error) *Error {
	return &Error{Kind: KindInterno, Msg: msg, Err: err}
}

// KindOf extracts the kind from an error chain, defaulting to KindInterno.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInterno
}

// EsKind reports whether the error chain carries the given kind.
func EsKind(err error, k Kind) bool { return KindOf(err) == k }

// Status maps an error kind to its HTTP status code.
func Status(err error) int {
	switch KindOf(err) {
	case KindValidacion:
		return http.StatusUnprocessableEntity
	case KindNoEncontrado:
		return http.StatusNotFound
	case KindCajaCerrada:
		return http.StatusConflict
	case KindCargaEstado:
		return http.StatusServiceUnavailable
	case KindPersistencia:
		return http.StatusAccepted
	default:
		return http.StatusInternalServerError
	}
}
