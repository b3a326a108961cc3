// Package errs defines the typed errors shared across the service:
// not-found, conflict and invalid-transition conditions. Each carries
// enough structure for callers to map it onto a transport status, and
// each matches its sentinel through errors.Is.
package errs

import (
	"errors"
	"fmt"
)

// Sentinel kinds. Use errors.Is against these to classify an error
// without caring about the concrete entity.
var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrInvalidTransition = errors.New("invalid transition")
)

// NotFoundError reports that an entity could not be resolved by id.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// Is matches the ErrNotFound sentinel.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NotFound constructs a NotFoundError for the given entity and id.
func NotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ConflictError reports a uniqueness violation.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return e.Reason
}

// Is matches the ErrConflict sentinel.
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// Conflict constructs a ConflictError with the given reason.
func Conflict(reason string) error {
	return &ConflictError{Reason: reason}
}

// InvalidTransitionError reports a mutation attempted against a work
// item that already reached a terminal status.
type InvalidTransitionError struct {
	WorkItemID string
	Status     string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("work item %s is already %s", e.WorkItemID, e.Status)
}

// Is matches the ErrInvalidTransition sentinel.
func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// InvalidTransition constructs an InvalidTransitionError.
func InvalidTransition(workItemID, status string) error {
	return &InvalidTransitionError{WorkItemID: workItemID, Status: status}
}
