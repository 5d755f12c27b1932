// Package store is the typed data-access layer over the relational store.
// Every product and ingredient operation is scoped by the owner identity: a
// record that exists under another owner behaves exactly like a missing one.
package store

import "errors"

// ErrNotFound is returned when no record matched the (id, owner) scope
var ErrNotFound = errors.New("record not found")

// ConflictError reports a uniqueness-constraint violation with the message
// surfaced to the client.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// IsConflict reports whether err is a uniqueness-constraint violation
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
