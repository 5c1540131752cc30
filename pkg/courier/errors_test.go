package courier_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tournevent/courierdz/pkg/courier"
	"github.com/tournevent/courierdz/pkg/courier/validation"
)

func TestCourierError_Error(t *testing.T) {
	err := courier.NewCourierError("Yalidine", courier.KindCreateOrder, "order refused")
	assert.Equal(t, "Yalidine error (CREATE_ORDER): order refused", err.Error())
}

func TestCourierError_ErrorWithoutProvider(t *testing.T) {
	err := courier.NewCourierError("", courier.KindInvalidProvider, "unknown")
	assert.Equal(t, "courier error (INVALID_PROVIDER): unknown", err.Error())
}

func TestCourierError_ErrorWithCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := courier.NewCourierError("Dhd", courier.KindHTTP, "request failed").WithCause(cause)
	assert.Contains(t, err.Error(), "request failed")
	assert.Contains(t, err.Error(), "connection reset")
}

func TestCourierError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := courier.NewCourierError("Dhd", courier.KindHTTP, "request failed").WithCause(cause)
	assert.True(t, errors.Is(err, cause))
}

func TestCourierError_Is(t *testing.T) {
	err1 := courier.NewCourierError("Dhd", courier.KindHTTP, "one")
	err2 := courier.NewCourierError("Yalidine", courier.KindHTTP, "two")

	// Same kind should match
	assert.True(t, errors.Is(err1, err2))
	assert.True(t, errors.Is(err1, courier.ErrHTTP))
}

func TestCourierError_IsNot(t *testing.T) {
	err := courier.NewCourierError("Dhd", courier.KindHTTP, "one")
	assert.False(t, errors.Is(err, courier.ErrTrackingIDNotFound))
}

func TestCourierError_WithStatusCode(t *testing.T) {
	err := courier.NewHTTPError("Dhd", 503, "unavailable")
	assert.Equal(t, 503, err.StatusCode)
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("label: %w", courier.NewTrackingIDNotFoundError("Dhd", "ECO-1"))

	assert.Equal(t, courier.KindTrackingIDNotFound, courier.KindOf(wrapped))
	assert.Equal(t, courier.Kind(""), courier.KindOf(errors.New("plain")))
	assert.Equal(t, courier.Kind(""), courier.KindOf(nil))
}

func TestNewValidationError_ExposesFields(t *testing.T) {
	fields := validation.Errors{"nom_client": {"is required."}}
	err := courier.NewValidationError("Dhd", fields)

	assert.True(t, errors.Is(err, courier.ErrValidation))
	assert.Contains(t, err.Error(), "Create Order Validation failed")

	var got validation.Errors
	assert.True(t, errors.As(err, &got))
	assert.Equal(t, []string{"is required."}, got["nom_client"])
}

func TestNewCredentialsError_ListsMissingKeys(t *testing.T) {
	err := courier.Credentials{"id": "x"}.Require("Yalidine", "id", "token")

	assert.True(t, errors.Is(err, courier.ErrCredentials))
	assert.Contains(t, err.Error(), "token")
	assert.NotContains(t, err.Error(), "id,")
}

func TestCredentials_Require_OK(t *testing.T) {
	err := courier.Credentials{"token": "t", "key": "k"}.Require("ZRExpress", "token", "key")
	assert.NoError(t, err)
}

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind courier.Kind
	}{
		{"credentials", courier.ErrCredentials, courier.KindCredentials},
		{"invalid provider", courier.ErrInvalidProvider, courier.KindInvalidProvider},
		{"validation", courier.ErrValidation, courier.KindValidation},
		{"http", courier.ErrHTTP, courier.KindHTTP},
		{"create order", courier.ErrCreateOrder, courier.KindCreateOrder},
		{"tracking id not found", courier.ErrTrackingIDNotFound, courier.KindTrackingIDNotFound},
		{"function not supported", courier.ErrFunctionNotSupported, courier.KindFunctionNotSupported},
		{"not implemented", courier.ErrNotImplemented, courier.KindNotImplemented},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.err.Error())
			assert.Equal(t, tt.kind, courier.KindOf(tt.err))
		})
	}
}
