package apperrors

import (
	"net/http"
)

// Factories for wrapping repository errors.

// ErrNotFound converts a repository miss into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a uniqueness violation into a 409.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict is the generic conflict factory (409).
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation flags an operation the current state does not permit (400).
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus flags a lifecycle transition that is not allowed (409).
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusConflict)
}

// --- Auth ---

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

var ErrCannotModifySelf = New(
	CodeForbidden,
	"admin",
	"Operation on self is not allowed",
	http.StatusForbidden,
)

// --- Verification ---

var ErrRequestAlreadyReviewed = New(
	CodeInvalidStatus,
	"verification",
	"Request has already been reviewed",
	http.StatusConflict,
)

var ErrReviewNotAllowed = New(
	CodeForbidden,
	"verification",
	"You are not allowed to review this request",
	http.StatusForbidden,
)

var ErrStudentVerificationRequired = New(
	CodeForbidden,
	"verification",
	"University student verification required",
	http.StatusForbidden,
)

var ErrCrossSchoolApplication = New(
	CodeForbidden,
	"verification",
	"Cross-school teacher application not allowed",
	http.StatusForbidden,
)

// --- Matching ---

var ErrOfferAlreadyHandled = New(
	CodeInvalidStatus,
	"matching",
	"Offer already handled",
	http.StatusConflict,
)

var ErrRequestNotOpen = New(
	CodeInvalidStatus,
	"matching",
	"Match request is not open",
	http.StatusConflict,
)

var ErrNotRequestOwner = New(
	CodeForbidden,
	"matching",
	"You do not own this match request",
	http.StatusForbidden,
)

// --- Organization ---

var ErrOrganizationExists = New(
	CodeConflict,
	"organization",
	"An organization with the same scope or name already exists",
	http.StatusConflict,
)

var ErrMissingScopeID = New(
	CodeValidationFailed,
	"organization",
	"A scope id is required for this organization type",
	http.StatusBadRequest,
)

// --- Content ---

var ErrNotContentAuthor = New(
	CodeForbidden,
	"content",
	"Only the author may perform this operation",
	http.StatusForbidden,
)

var ErrAnswerAlreadyAccepted = New(
	CodeInvalidStatus,
	"content",
	"Question already has an accepted answer",
	http.StatusConflict,
)

// --- Conversations ---

var ErrNotParticipant = New(
	CodeForbidden,
	"conversation",
	"You are not a participant of this conversation",
	http.StatusForbidden,
)

// --- Files ---

var ErrFileTooLarge = New(
	CodeValidationFailed,
	"files",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

var ErrInvalidFileType = New(
	CodeValidationFailed,
	"files",
	"The provided file type is not allowed",
	http.StatusUnsupportedMediaType,
)
