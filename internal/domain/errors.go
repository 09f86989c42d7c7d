package domain

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindPermission   ErrorKind = "permission"
	KindConnectivity ErrorKind = "connectivity"
	KindUnknown      ErrorKind = "unknown"
)

var (
	ErrPermission   = errors.New("permission denied by the record store")
	ErrConnectivity = errors.New("record store unreachable")
	ErrUnknown      = errors.New("record store error")
)

// StoreError is returned by every RecordStore operation that fails.
type StoreError struct {
	Kind       ErrorKind
	Op         string
	Collection string
	Err        error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Collection, e.Kind, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Is lets errors.Is match the kind sentinels.
func (e *StoreError) Is(target error) bool {
	switch target {
	case ErrPermission:
		return e.Kind == KindPermission
	case ErrConnectivity:
		return e.Kind == KindConnectivity
	case ErrUnknown:
		return e.Kind == KindUnknown
	}
	return false
}

// KindOf reports the classification of err. Errors that were never
// classified by the store are unknown.
func KindOf(err error) ErrorKind {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}

// Failure is the user facing form of an error.
type Failure struct {
	Kind      ErrorKind `json:"kind"`
	Message   string    `json:"message"`
	Retryable bool      `json:"retryable"`
}

// Describe classifies err into a message suitable for a status banner.
func Describe(err error) *Failure {
	if err == nil {
		return nil
	}
	switch KindOf(err) {
	case KindPermission:
		return &Failure{
			Kind:    KindPermission,
			Message: fmt.Sprintf("Access was denied (%v). Check the database access rules and credentials.", err),
		}
	case KindConnectivity:
		return &Failure{
			Kind:      KindConnectivity,
			Message:   "The database could not be reached. Check the connection and retry.",
			Retryable: true,
		}
	default:
		return &Failure{
			Kind:      KindUnknown,
			Message:   err.Error(),
			Retryable: true,
		}
	}
}
