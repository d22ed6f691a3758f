package services

import "errors"

// Domain errors returned by services. Handlers map these to HTTP statuses.
var (
	ErrStudentNotFound  = errors.New("student not found")
	ErrCourseNotFound   = errors.New("course not found")
	ErrActivityNotFound = errors.New("activity not found")
	ErrUserNotFound     = errors.New("user not found")

	ErrStudentEmailExists = errors.New("student email already exists")
	ErrUsernameExists     = errors.New("username already exists")
	ErrUserEmailExists    = errors.New("user email already exists")

	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrForbidden          = errors.New("insufficient permissions")

	ErrValidation = errors.New("validation failed")
)
