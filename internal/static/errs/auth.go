package errs

import "errors"

var InvalidCredentials = errors.New("invalid credentials")

var (
	InternalError      = errors.New("internal error")
	GeneratingToken    = errors.New("error generating token")
	EmailRequired      = errors.New("email is required")
	EmailTaken         = errors.New("email is already registered")
	WeakPassword       = errors.New("password must be at least 8 characters")
	FailedToCreateUser = errors.New("failed to create user")
	Unauthorized       = errors.New("unauthorized")
	Forbidden          = errors.New("access denied")
)
