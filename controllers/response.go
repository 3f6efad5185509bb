package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/ishala/illegal-waste-reporter-BE/repository"
	"github.com/ishala/illegal-waste-reporter-BE/services"
	"github.com/ishala/illegal-waste-reporter-BE/token"
)

const (
	CodeEmailExists          = "EMAIL_EXISTS"
	CodeInvalidCredentials   = "INVALID_CREDENTIALS"
	CodeTokenExpired         = "TOKEN_EXPIRED"
	CodeTokenInvalid         = "TOKEN_INVALID"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeForbidden            = "FORBIDDEN"
	CodeUserNotFound         = "USER_NOT_FOUND"
	CodeReportNotFound       = "REPORT_NOT_FOUND"
	CodeMediaNotFound        = "MEDIA_NOT_FOUND"
	CodeNotFound             = "NOT_FOUND"
	CodeValidationError      = "VALIDATION_ERROR"
	CodeMissingRequiredField = "MISSING_REQUIRED_FIELD"
	CodeInvalidFormat        = "INVALID_FORMAT"
	CodeDBConnectionError    = "DB_CONNECTION_ERROR"
	CodeDBOperationFailed    = "DB_OPERATION_FAILED"
	CodeMediaUploadFailed    = "MEDIA_UPLOAD_FAILED"
	CodeInvalidFileType      = "INVALID_FILE_TYPE"
	CodeFileTooLarge         = "FILE_TOO_LARGE"
	CodeRateLimited          = "RATE_LIMITED"
)

// HTTPError is an error already classified for the wire.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details interface{}
}

func (e *HTTPError) Error() string { return e.Message }

func NewHTTPError(status int, code, message string) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message}
}

var sentinels = []struct {
	err    error
	status int
	code   string
}{
	{services.ErrEmailExists, http.StatusConflict, CodeEmailExists},
	{services.ErrInvalidCredentials, http.StatusUnauthorized, CodeInvalidCredentials},
	{token.ErrTokenExpired, http.StatusUnauthorized, CodeTokenExpired},
	{token.ErrTokenInvalid, http.StatusUnauthorized, CodeTokenInvalid},
	{services.ErrUnauthenticated, http.StatusUnauthorized, CodeUnauthorized},
	{services.ErrForbidden, http.StatusForbidden, CodeForbidden},
	{services.ErrUserNotFound, http.StatusNotFound, CodeUserNotFound},
	{services.ErrReportNotFound, http.StatusNotFound, CodeReportNotFound},
	{services.ErrMediaNotFound, http.StatusNotFound, CodeMediaNotFound},
	{services.ErrLocationNotFound, http.StatusNotFound, CodeNotFound},
	{services.ErrVerificationNotFound, http.StatusNotFound, CodeNotFound},
	{services.ErrStatusNotFound, http.StatusNotFound, CodeNotFound},
	{services.ErrSessionNotFound, http.StatusNotFound, CodeNotFound},
	{services.ErrInvalidFileType, http.StatusUnsupportedMediaType, CodeInvalidFileType},
	{services.ErrFileTooLarge, http.StatusRequestEntityTooLarge, CodeFileTooLarge},
	{services.ErrMediaUpload, http.StatusInternalServerError, CodeMediaUploadFailed},
	{repository.ErrNotFound, http.StatusNotFound, CodeNotFound},
}

// Classify maps an error onto its status and code. Unknown errors are
// reported as DB_OPERATION_FAILED.
func Classify(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		out := NewHTTPError(http.StatusUnprocessableEntity, CodeValidationError, verr.Error())
		if verr.Field != "" {
			out.Details = gin.H{"field": verr.Field}
		}
		return out
	}
	for _, s := range sentinels {
		if errors.Is(err, s.err) {
			return NewHTTPError(s.status, s.code, err.Error())
		}
	}
	return NewHTTPError(http.StatusInternalServerError, CodeDBOperationFailed, "internal server error")
}

func respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, APIResponse{Success: true, Message: message, Data: data})
}

// RespondError writes the error envelope and aborts the chain.
func RespondError(c *gin.Context, err error) {
	httpErr := Classify(err)
	if httpErr.Status >= http.StatusInternalServerError {
		_ = c.Error(err)
		slog.ErrorContext(c.Request.Context(), "request failed", "path", c.Request.URL.Path, "error", err)
	}
	c.AbortWithStatusJSON(httpErr.Status, APIResponse{
		Success: false,
		Message: httpErr.Message,
		Error:   &APIError{Code: httpErr.Code, Message: httpErr.Message, Details: httpErr.Details},
	})
}

// bindingError turns a gin binding failure into MISSING_REQUIRED_FIELD or INVALID_FORMAT.
func bindingError(err error) *HTTPError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		missing := []string{}
		invalid := []string{}
		for _, fe := range verrs {
			name := jsonName(fe.Field())
			if fe.Tag() == "required" {
				missing = append(missing, name)
			} else {
				invalid = append(invalid, name)
			}
		}
		if len(missing) > 0 {
			out := NewHTTPError(http.StatusUnprocessableEntity, CodeMissingRequiredField,
				"missing required field: "+strings.Join(missing, ", "))
			out.Details = gin.H{"fields": missing}
			return out
		}
		out := NewHTTPError(http.StatusUnprocessableEntity, CodeInvalidFormat,
			"invalid value for: "+strings.Join(invalid, ", "))
		out.Details = gin.H{"fields": invalid}
		return out
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var numErr *strconv.NumError
	switch {
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr), errors.As(err, &numErr):
		return NewHTTPError(http.StatusUnprocessableEntity, CodeInvalidFormat, err.Error())
	case errors.Is(err, http.ErrMissingBoundary), errors.Is(err, http.ErrNotMultipart):
		return NewHTTPError(http.StatusUnprocessableEntity, CodeInvalidFormat, "expected a multipart form")
	}
	return NewHTTPError(http.StatusUnprocessableEntity, CodeInvalidFormat, err.Error())
}

func respondBindingError(c *gin.Context, err error) {
	RespondError(c, bindingError(err))
}

// jsonName converts a Go field name such as ReportStatusID to report_status_id.
func jsonName(field string) string {
	var b strings.Builder
	runes := []rune(field)
	for i, r := range runes {
		upper := r >= 'A' && r <= 'Z'
		if upper && i > 0 {
			prevLower := runes[i-1] >= 'a' && runes[i-1] <= 'z'
			nextLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
			if prevLower || nextLower {
				b.WriteByte('_')
			}
		}
		if upper {
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondError(c, &HTTPError{
			Status:  http.StatusUnprocessableEntity,
			Code:    CodeInvalidFormat,
			Message: fmt.Sprintf("%s must be a UUID", name),
			Details: gin.H{"field": name},
		})
		return uuid.Nil, false
	}
	return id, true
}

func optionalUUID(raw string) *uuid.UUID {
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}
