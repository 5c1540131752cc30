package courier

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a CourierError.
type Kind string

const (
	KindCredentials          Kind = "CREDENTIALS"
	KindInvalidProvider      Kind = "INVALID_PROVIDER"
	KindValidation           Kind = "VALIDATION"
	KindHTTP                 Kind = "HTTP"
	KindCreateOrder          Kind = "CREATE_ORDER"
	KindTrackingIDNotFound   Kind = "TRACKING_ID_NOT_FOUND"
	KindFunctionNotSupported Kind = "FUNCTION_NOT_SUPPORTED"
	KindNotImplemented       Kind = "NOT_IMPLEMENTED"
)

// CourierError represents a failure raised by an adapter or the registry.
type CourierError struct {
	Provider   string
	Kind       Kind
	Message    string
	StatusCode int
	Cause      error
}

// Error implements the error interface.
func (e *CourierError) Error() string {
	prefix := "courier"
	if e.Provider != "" {
		prefix = e.Provider
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s error (%s): %s: %v", prefix, e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s error (%s): %s", prefix, e.Kind, e.Message)
}

// Unwrap returns the underlying cause.
func (e *CourierError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for CourierError. Errors of the same Kind match.
func (e *CourierError) Is(target error) bool {
	t, ok := target.(*CourierError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// NewCourierError creates a new CourierError.
func NewCourierError(provider string, kind Kind, message string) *CourierError {
	return &CourierError{
		Provider: provider,
		Kind:     kind,
		Message:  message,
	}
}

// WithCause adds a cause to the error.
func (e *CourierError) WithCause(err error) *CourierError {
	e.Cause = err
	return e
}

// WithStatusCode adds an HTTP status code to the error.
func (e *CourierError) WithStatusCode(code int) *CourierError {
	e.StatusCode = code
	return e
}

// Sentinel errors, one per Kind, for use with errors.Is.
var (
	// ErrCredentials indicates required credential keys are missing.
	ErrCredentials = &CourierError{Kind: KindCredentials, Message: "missing credentials"}

	// ErrInvalidProvider indicates the provider name is unknown or its
	// factory produced no usable adapter.
	ErrInvalidProvider = &CourierError{Kind: KindInvalidProvider, Message: "invalid provider"}

	// ErrValidation indicates order data failed the provider's rules.
	ErrValidation = &CourierError{Kind: KindValidation, Message: "validation failed"}

	// ErrHTTP indicates a transport failure or an unexpected upstream status.
	ErrHTTP = &CourierError{Kind: KindHTTP, Message: "unexpected upstream response"}

	// ErrCreateOrder indicates the upstream refused to create the order.
	ErrCreateOrder = &CourierError{Kind: KindCreateOrder, Message: "order creation failed"}

	// ErrTrackingIDNotFound indicates the upstream does not know the id.
	ErrTrackingIDNotFound = &CourierError{Kind: KindTrackingIDNotFound, Message: "tracking id not found"}

	// ErrFunctionNotSupported indicates the upstream has no such operation.
	ErrFunctionNotSupported = &CourierError{Kind: KindFunctionNotSupported, Message: "function not supported"}

	// ErrNotImplemented indicates the adapter does not implement the operation.
	ErrNotImplemented = &CourierError{Kind: KindNotImplemented, Message: "not implemented"}
)

// KindOf returns the Kind of the first CourierError in err's chain, or ""
// when there is none.
func KindOf(err error) Kind {
	var ce *CourierError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}

// NewCredentialsError reports the missing credential keys.
func NewCredentialsError(provider string, missing []string) *CourierError {
	return NewCourierError(provider, KindCredentials,
		fmt.Sprintf("missing required credentials: %s", strings.Join(missing, ", ")))
}

// NewInvalidProviderError reports an unknown provider name together with
// every registered name.
func NewInvalidProviderError(name string, available []string) *CourierError {
	return NewCourierError("", KindInvalidProvider,
		fmt.Sprintf("Incorrect %q Shipping provider name, Available providers are: %s",
			name, strings.Join(available, ", ")))
}

// NewValidationError wraps per-field validation failures.
func NewValidationError(provider string, cause error) *CourierError {
	return NewCourierError(provider, KindValidation, "Create Order Validation failed").WithCause(cause)
}

// NewHTTPError reports an unexpected upstream status.
func NewHTTPError(provider string, status int, message string) *CourierError {
	return NewCourierError(provider, KindHTTP, message).WithStatusCode(status)
}

// NewCreateOrderError reports an explicit upstream refusal.
func NewCreateOrderError(provider, message string) *CourierError {
	return NewCourierError(provider, KindCreateOrder, message)
}

// NewTrackingIDNotFoundError reports an unknown tracking id.
func NewTrackingIDNotFoundError(provider, trackingID string) *CourierError {
	return NewCourierError(provider, KindTrackingIDNotFound,
		fmt.Sprintf("tracking id %q not found", trackingID))
}

// NewFunctionNotSupportedError reports an operation the upstream lacks.
func NewFunctionNotSupportedError(provider, operation string) *CourierError {
	return NewCourierError(provider, KindFunctionNotSupported,
		fmt.Sprintf("%s is not supported by this provider", operation))
}

// NewNotImplementedError reports an operation the adapter does not provide.
func NewNotImplementedError(provider, operation string) *CourierError {
	return NewCourierError(provider, KindNotImplemented,
		fmt.Sprintf("%s is not implemented for this provider", operation))
}
