// Package apperror defines the tagged error type returned by the usecase layer.
// Callers branch on Kind instead of matching message text.
package apperror

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindForbidden
	KindInvalidDateRange
	KindRoomUnavailable
	KindOverlapConflict
	KindCancellationWindow
	KindReviewWindow
	KindAlreadyCancelled
	KindInvalidTransition
	KindDuplicatePayment
	KindDuplicateReview
)

var kindNames = map[Kind]string{
	KindInternal:           "internal",
	KindValidation:         "validation",
	KindNotFound:           "not_found",
	KindForbidden:          "forbidden",
	KindInvalidDateRange:   "invalid_date_range",
	KindRoomUnavailable:    "room_unavailable",
	KindOverlapConflict:    "overlap_conflict",
	KindCancellationWindow: "cancellation_window",
	KindReviewWindow:       "review_window",
	KindAlreadyCancelled:   "already_cancelled",
	KindInvalidTransition:  "invalid_transition",
	KindDuplicatePayment:   "duplicate_payment",
	KindDuplicateReview:    "duplicate_review",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// HTTPStatus maps a kind to the status code used at the request boundary.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation, KindInvalidDateRange:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindRoomUnavailable, KindOverlapConflict, KindAlreadyCancelled,
		KindInvalidTransition, KindDuplicatePayment, KindDuplicateReview:
		return http.StatusConflict
	case KindCancellationWindow, KindReviewWindow:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

type Error struct {
	Kind    Kind
	Message string
	// Fields maps an input field to what is wrong with it. Validation only.
	Fields map[string]string
	Err    error
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Invalid builds a validation error carrying per-field messages.
func Invalid(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// Wrap attaches a cause. The cause is kept for logging and never rendered to clients.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the kind of the first *Error in err's chain, KindInternal otherwise.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Message returns the client-safe message for err.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Kind != KindInternal {
		return appErr.Message
	}
	return "Internal server error"
}

// FieldsOf returns the per-field messages of the first *Error in err's chain.
func FieldsOf(err error) map[string]string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Fields
	}
	return nil
}
