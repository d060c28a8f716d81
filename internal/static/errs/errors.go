package errs

import "errors"

var (
	NotFound     = errors.New("resource not found")
	InvalidInput = errors.New("invalid input")
	Conflict     = errors.New("resource already exists")
)
