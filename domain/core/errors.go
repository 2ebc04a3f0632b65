package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound         = errors.New("resource not found")
	ErrArtifactNotFound = fmt.Errorf("%w: artifact", ErrNotFound)
	ErrRunNotFound      = fmt.Errorf("%w: training run", ErrNotFound)
	ErrColumnNotFound   = fmt.Errorf("%w: column", ErrNotFound)
	ErrStateNotFound    = fmt.Errorf("%w: state", ErrNotFound)

	// Pipeline errors
	ErrData             = errors.New("malformed source data")
	ErrEmptyTrainingSet = errors.New("training set empty after drop-NA")
	ErrSchemaMismatch   = errors.New("feature schema mismatch")
	ErrNotReady         = errors.New("forecaster not ready")
	ErrUnseenCategory   = errors.New("unseen category value")

	// Model errors
	ErrNotFitted    = errors.New("model not fitted")
	ErrDimension    = errors.New("feature dimension mismatch")
	ErrInvalidInput = errors.New("invalid input parameters")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, resource, id)
}

func NewDataError(stage string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrData, stage, reason)
}

func NewEmptyTrainingSetError(detail string) error {
	return fmt.Errorf("%w: %s", ErrEmptyTrainingSet, detail)
}

func NewSchemaMismatchError(reason string) error {
	return fmt.Errorf("%w: %s", ErrSchemaMismatch, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsDataError(err error) bool {
	return errors.Is(err, ErrData) || errors.Is(err, ErrEmptyTrainingSet)
}

func IsSchemaMismatchError(err error) bool {
	return errors.Is(err, ErrSchemaMismatch)
}

func IsNotReadyError(err error) bool {
	return errors.Is(err, ErrNotReady)
}
