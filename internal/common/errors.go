// Package common defines shared constants and sentinel errors. Callers should
// use errors.Is to match these values.
package common

import "errors"

var (
	// ErrValidation marks a submission rejected locally, before any network call.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidArgument is returned for malformed console input (bad id, page, size).
	ErrInvalidArgument = errors.New("invalid argument")
)
