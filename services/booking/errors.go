package booking

import "fmt"

// Business error codes.
const (
	CodeNoRoomAvailable    = "noRoomAvailable"
	CodePaymentFailed      = "paymentFailed"
	CodeNotificationFailed = "notificationFailed"
	CodeInvalidRequest     = "invalidRequest"
	CodeBookingNotFound    = "bookingNotFound"
)

// BusinessError is a rejection of a booking operation. Errors with the
// same Code match under errors.Is, so callers can test against the
// sentinels below while Err keeps the collaborator's cause.
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func (e *BusinessError) Is(target error) bool {
	t, ok := target.(*BusinessError)
	return ok && t.Code == e.Code
}

var (
	ErrNoRoomAvailable    = &BusinessError{Code: CodeNoRoomAvailable, Message: "no room available"}
	ErrPaymentFailed      = &BusinessError{Code: CodePaymentFailed, Message: "payment failed"}
	ErrNotificationFailed = &BusinessError{Code: CodeNotificationFailed, Message: "notification failed"}
	ErrInvalidRequest     = &BusinessError{Code: CodeInvalidRequest, Message: "invalid booking request"}
	ErrBookingNotFound    = &BusinessError{Code: CodeBookingNotFound, Message: "booking not found"}
)

func newBusinessError(code, msg string, cause error) error {
	return &BusinessError{Code: code, Message: msg, Err: cause}
}
