package services

import "errors"

// Sentinel errors returned by the services layer. Controllers map them onto
// the HTTP surface: NotFound -> 404, RoomUnavailable/TxConflict -> 409,
// InvalidStatus/InvalidDates -> 400, anything else -> 500.
var (
	ErrRoomNotFound    = errors.New("room not found or inactive")
	ErrBookingNotFound = errors.New("booking not found")
	ErrTaskNotFound    = errors.New("staff task not found")
	ErrRoomUnavailable = errors.New("room is already booked for the selected dates")
	ErrInvalidStatus   = errors.New("unable to proceed, verify booking status")
	ErrInvalidDates    = errors.New("invalid check-in/check-out dates")

	// ErrTxConflict means the store aborted the transaction because of a
	// concurrent writer. The whole operation rolled back; retrying the same
	// request is safe.
	ErrTxConflict = errors.New("transaction conflict, please retry")
)
