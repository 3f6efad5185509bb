package services

import (
	"errors"
	"fmt"
)

var (
	ErrEmailExists          = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUnauthenticated      = errors.New("unauthenticated")
	ErrForbidden            = errors.New("forbidden")
	ErrUserNotFound         = errors.New("user not found")
	ErrReportNotFound       = errors.New("report not found")
	ErrMediaNotFound        = errors.New("media not found")
	ErrLocationNotFound     = errors.New("location not found")
	ErrVerificationNotFound = errors.New("verification not found")
	ErrStatusNotFound       = errors.New("report status not found")
	ErrSessionNotFound      = errors.New("session not found")
	ErrInvalidFileType      = errors.New("invalid file type")
	ErrFileTooLarge         = errors.New("file too large")
	ErrMediaUpload          = errors.New("media upload failed")
)

// ValidationError is a request that is well-formed but breaks a domain rule.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
