package domain

import (
	"fmt"
)

type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches by code so that copies made with WithError still compare equal
// to the sentinel they were derived from.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    e.Message,
		StatusCode: e.StatusCode,
		Err:        err,
	}
}

// Pre-defined errors
var (
	ErrInternal = &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		StatusCode: 500,
	}

	ErrBadRequest = &AppError{
		Code:       "BAD_REQUEST",
		Message:    "Invalid request",
		StatusCode: 400,
	}

	ErrUnauthorized = &AppError{
		Code:       "UNAUTHORIZED",
		Message:    "Invalid or missing credentials",
		StatusCode: 401,
	}

	ErrForbidden = &AppError{
		Code:       "FORBIDDEN",
		Message:    "Access denied",
		StatusCode: 403,
	}

	ErrNotFound = &AppError{
		Code:       "NOT_FOUND",
		Message:    "Resource not found",
		StatusCode: 404,
	}

	ErrValidationFailed = &AppError{
		Code:       "VALIDATION_FAILED",
		Message:    "Request validation failed",
		StatusCode: 422,
	}

	// Input errors
	ErrMissingImage = &AppError{
		Code:       "MISSING_IMAGE",
		Message:    "No image uploaded",
		StatusCode: 400,
	}

	ErrInvalidImage = &AppError{
		Code:       "INVALID_IMAGE",
		Message:    "Invalid image format or corrupted file",
		StatusCode: 422,
	}

	// Detection errors
	ErrNoFaceDetected = &AppError{
		Code:       "NO_FACE_DETECTED",
		Message:    "No face detected in the image",
		StatusCode: 422,
	}

	ErrDimensionMismatch = &AppError{
		Code:       "DESCRIPTOR_DIMENSION_MISMATCH",
		Message:    "Face descriptor length does not match enrolled descriptors",
		StatusCode: 422,
	}

	// Conflict errors
	ErrDuplicateFace = &AppError{
		Code:       "DUPLICATE_FACE",
		Message:    "This face is already registered on this event",
		StatusCode: 409,
	}

	ErrDuplicateEmail = &AppError{
		Code:       "DUPLICATE_EMAIL",
		Message:    "This email is already registered, try a different email address",
		StatusCode: 409,
	}

	// Lookup errors
	ErrNoEnrollments = &AppError{
		Code:       "NO_ENROLLMENTS",
		Message:    "No faces are enrolled for this event",
		StatusCode: 404,
	}

	ErrNoMatch = &AppError{
		Code:       "NO_MATCH",
		Message:    "This face is not registered on this event",
		StatusCode: 404,
	}

	ErrFaceRecordNotFound = &AppError{
		Code:       "FACE_RECORD_NOT_FOUND",
		Message:    "Face record not found",
		StatusCode: 404,
	}

	ErrEventNotFound = &AppError{
		Code:       "EVENT_NOT_FOUND",
		Message:    "Event not found",
		StatusCode: 404,
	}

	ErrOrganizerNotFound = &AppError{
		Code:       "ORGANIZER_NOT_FOUND",
		Message:    "Organizer not found",
		StatusCode: 404,
	}

	// Account errors
	ErrOrganizerExists = &AppError{
		Code:       "ORGANIZER_ALREADY_EXISTS",
		Message:    "An organizer with this email already exists",
		StatusCode: 409,
	}

	ErrInvalidCredentials = &AppError{
		Code:       "INVALID_CREDENTIALS",
		Message:    "Invalid email or password",
		StatusCode: 401,
	}

	ErrOrganizerInactive = &AppError{
		Code:       "ORGANIZER_INACTIVE",
		Message:    "Organizer account is outside its activation window",
		StatusCode: 403,
	}

	ErrRateLimitExceeded = &AppError{
		Code:       "RATE_LIMIT_EXCEEDED",
		Message:    "Too many requests, try again later",
		StatusCode: 429,
	}

	// Dependency errors
	ErrDetectorUnavailable = &AppError{
		Code:       "DETECTOR_UNAVAILABLE",
		Message:    "Face detection service is temporarily unavailable",
		StatusCode: 503,
	}
)
