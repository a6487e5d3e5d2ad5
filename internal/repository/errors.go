// Package repository holds the sentinel errors shared by store
// implementations. The storage contract itself lives domain-side as
// entry.Repository so this package stays a leaf.
package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)
