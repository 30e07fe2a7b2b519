package domain

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("already exists")
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidGoal is returned when a fundraising goal is zero or negative.
	ErrInvalidGoal = errors.New("invalid fundraising goal")
	// ErrEmptyDivisor is returned when the combined goal of all interns is zero.
	ErrEmptyDivisor  = errors.New("total goal is zero")
	ErrMalformedDate = errors.New("malformed date")
)
