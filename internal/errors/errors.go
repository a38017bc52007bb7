package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrProjectNotFound is returned when a project is not found.
	ErrProjectNotFound = errors.New("project not found")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when registering with an email that already exists.
	ErrEmailTaken = errors.New("user already exists")
	// ErrInvalidCredentials is returned for unknown email or wrong password alike.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken is returned when a token is missing, malformed, expired or revoked.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrNoFilesUploaded is returned when a gallery upload carries no files.
	ErrNoFilesUploaded = errors.New("no files uploaded")
	// ErrGalleryFull is returned when an append would push the gallery past 4 images.
	ErrGalleryFull = errors.New("gallery cannot exceed 4 images total")
	// ErrImageNotInGallery is returned when removing a URL the gallery does not hold.
	ErrImageNotInGallery = errors.New("image not found in gallery")
	// ErrGalleryConflict is returned when a concurrent gallery write won the version check.
	ErrGalleryConflict = errors.New("gallery was modified concurrently, please retry")
	// ErrUploadFailed is returned when blob storage rejects an upload.
	ErrUploadFailed = errors.New("image upload failed")
)

// ErrorResponse represents a standardized error response body.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// FieldError describes a single failing field in a validation response.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrorResponse lists every failing field, not just the first.
type ValidationErrorResponse struct {
	Errors []FieldError `json:"errors"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Message: e.Message,
		Code:    e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrProjectNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "PROJECT_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "USER_ALREADY_EXISTS")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_TOKEN")
	case errors.Is(err, ErrNoFilesUploaded):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NO_FILES_UPLOADED")
	case errors.Is(err, ErrGalleryFull):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "GALLERY_FULL")
	case errors.Is(err, ErrImageNotInGallery):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "IMAGE_NOT_IN_GALLERY")
	case errors.Is(err, ErrGalleryConflict):
		return NewHTTPError(http.StatusConflict, err.Error(), "GALLERY_CONFLICT")
	case errors.Is(err, ErrUploadFailed):
		return NewHTTPError(http.StatusInternalServerError, err.Error(), "UPLOAD_FAILED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
