package services

import (
	"aihub-backend/models"
	"fmt"
	"strings"
)

// ValidationError carries every violated field constraint of a request
type ValidationError struct {
	Fields []models.FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func newValidationError(field, reason string) *ValidationError {
	return &ValidationError{Fields: []models.FieldError{{Field: field, Reason: reason}}}
}

type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("no %s found", e.Resource)
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// SlotConflictError is returned when the requested demo slot is held by another active lead.
// AvailableSlots is the remaining free set for the same date.
type SlotConflictError struct {
	Date           string
	Time           string
	AvailableSlots []string
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("demo slot %s %s is already booked", e.Date, e.Time)
}

type InvalidSlotError struct {
	Reason string
}

func (e *InvalidSlotError) Error() string {
	return e.Reason
}

// PersistenceError wraps a storage failure. Its detail is logged, never returned to clients.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// InvalidStateError rejects an operation the resource cannot currently perform
type InvalidStateError struct {
	Reason string
}

func (e *InvalidStateError) Error() string {
	return e.Reason
}
