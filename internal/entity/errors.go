package entity

import "errors"

// Error kinds shared across domains. Domain packages wrap these so that
// transport code can classify failures with errors.Is.
var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation failed")
	ErrRemoteWrite = errors.New("remote write failed")
)
