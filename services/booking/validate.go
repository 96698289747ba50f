package booking

import "happyhotel/models"

// Validate checks the invariants of a booking request.
func Validate(req models.BookingRequest) error {
	switch {
	case req.ID == "":
		return newBusinessError(CodeInvalidRequest, "booking id is required", nil)
	case req.Guests < 1:
		return newBusinessError(CodeInvalidRequest, "at least one guest is required", nil)
	case req.CheckIn.IsZero() || req.CheckOut.IsZero():
		return newBusinessError(CodeInvalidRequest, "check-in and check-out dates are required", nil)
	case nights(req.CheckIn, req.CheckOut) < 1:
		return newBusinessError(CodeInvalidRequest, "check-out must be after check-in", nil)
	}
	return nil
}
