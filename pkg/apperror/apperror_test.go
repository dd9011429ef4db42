package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	notFound := New(KindNotFound, "booking not found")

	assert.Equal(t, KindNotFound, KindOf(notFound))
	assert.Equal(t, KindNotFound, KindOf(fmt.Errorf("cancel booking: %w", notFound)))
	assert.Equal(t, KindInternal, KindOf(errors.New("connection reset")))
	assert.Equal(t, KindInternal, KindOf(nil))
}

func TestKind_HTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindInvalidDateRange, http.StatusBadRequest},
		{KindNotFound, http.StatusNotFound},
		{KindForbidden, http.StatusForbidden},
		{KindOverlapConflict, http.StatusConflict},
		{KindRoomUnavailable, http.StatusConflict},
		{KindDuplicatePayment, http.StatusConflict},
		{KindCancellationWindow, http.StatusUnprocessableEntity},
		{KindReviewWindow, http.StatusUnprocessableEntity},
		{KindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.HTTPStatus())
		})
	}
}

func TestMessage_HidesInternalCause(t *testing.T) {
	wrapped := Wrap(KindInternal, "create booking", errors.New("pq: relation bookings does not exist"))

	assert.Equal(t, "Internal server error", Message(wrapped))
	assert.Equal(t, "Internal server error", Message(errors.New("boom")))
	assert.Equal(t, "room is disabled", Message(New(KindRoomUnavailable, "room is disabled")))
}

func TestWrap_Unwrap(t *testing.T) {
	cause := errors.New("unique_violation")
	err := Wrap(KindDuplicateReview, "review already exists", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "review already exists: unique_violation", err.Error())
}

func TestInvalid_FieldsSurviveWrapping(t *testing.T) {
	fields := map[string]string{"Guests": "Minimum value is 1"}
	err := fmt.Errorf("create booking: %w", Invalid("Validation failed", fields))

	assert.Equal(t, KindValidation, KindOf(err))
	assert.Equal(t, fields, FieldsOf(err))
	assert.Nil(t, FieldsOf(New(KindNotFound, "room not found")))
	assert.Nil(t, FieldsOf(errors.New("plain")))
}
