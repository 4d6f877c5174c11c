package data

import "errors"

// Shared sentinel errors for data-layer repositories. They are wrapped in
// internal/errors.AppError values before leaving the package.
var (
	ErrJobNotFound  = errors.New("job not found")
	ErrUserNotFound = errors.New("user not found")
)
