package apperrors

import "errors"

var (
	// Not found
	ErrEventNotFound    = errors.New("event not found")
	ErrVenueNotFound    = errors.New("venue not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrMemberNotFound   = errors.New("member not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrReviewNotFound   = errors.New("review not found")

	// Authorization
	ErrForbidden = errors.New("forbidden")

	// Validation
	ErrInvalidInput = errors.New("invalid input")

	// Booking workflow
	ErrCapacityExceeded = errors.New("requested quantity exceeds remaining capacity")
	ErrSoldOut          = errors.New("event is fully booked")
	ErrPastEvent        = errors.New("cannot book past events")
	ErrMemberResolution = errors.New("member profile could not be resolved")

	// Review gate
	ErrEventNotConcluded = errors.New("event has not concluded yet")
	ErrNoBooking         = errors.New("no booking for this event")
	ErrDuplicateReview   = errors.New("event already reviewed by this member")

	// Referential protection
	ErrVenueInUse     = errors.New("venue is referenced by events")
	ErrCategoryInUse  = errors.New("category is referenced by events")
	ErrMemberInUse    = errors.New("member has bookings")
	ErrCategoryExists = errors.New("category name already exists")

	// Concurrency
	ErrConcurrencyConflict = errors.New("row was modified concurrently")

	ErrInternalServerError = errors.New("internal server error")
)
