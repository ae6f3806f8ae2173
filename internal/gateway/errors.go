package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorKind classifies backend failures for programmatic handling. The
// mapping is fixed: 401 unauthorized (session torn down), 403 forbidden
// (session kept), 404 not found, 5xx server fault, transport failures
// network, and anything else upstream with the server's error body passed
// through unchanged.
type ErrorKind string

const (
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindNotFound     ErrorKind = "not_found"
	KindServerFault  ErrorKind = "server_fault"
	KindNetwork      ErrorKind = "network"
	KindUpstream     ErrorKind = "upstream"
)

// ApiError is the normalized shape of every gateway failure.
type ApiError struct {
	Kind    ErrorKind
	Status  int
	Code    string
	Message string
	Details json.RawMessage
	// Body is the server's structured error body, unchanged.
	Body json.RawMessage
}

func (e *ApiError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s (%d)", e.Kind, e.Status)
}

// KindOf returns the classification of err, or KindUpstream when err is not
// a gateway error.
func KindOf(err error) ErrorKind {
	var apiErr *ApiError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUpstream
}

// Retryable reports whether a single opt-in retry is allowed for err:
// transport failures and server faults only.
func Retryable(err error) bool {
	switch KindOf(err) {
	case KindNetwork, KindServerFault:
		return true
	}
	return false
}

// ErrorMessage returns the server-supplied message carried by err, or
// fallback when the error has none. Mutation notices are built from this.
func ErrorMessage(err error, fallback string) string {
	var apiErr *ApiError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// IsNotFound reports whether err is the backend saying the entity is gone.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}
