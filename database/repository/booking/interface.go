package bookingRepo

import (
	"context"
	"errors"

	"swatrental/models"
)

var (
	// ErrNotFound is returned when no booking has the requested id.
	ErrNotFound = errors.New("booking not found")
	// ErrStaleState is returned when the booking left the expected phase before the update applied.
	ErrStaleState = errors.New("booking state changed concurrently")
	// ErrDuplicateReference is returned when another booking already holds the payment reference.
	ErrDuplicateReference = errors.New("payment reference already in use")
)

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	// Create inserts a new booking record.
	Create(ctx context.Context, booking *models.Booking) error
	// GetByID retrieves a booking by its id. It returns nil, nil when none exists.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// GetByReference retrieves the booking holding a gateway payment reference. It returns nil, nil when none exists.
	GetByReference(ctx context.Context, reference string) (*models.Booking, error)
	// List returns bookings matching filter, newest first.
	List(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error)
	// Transition replaces the booking only if it is still in phase from and
	// returns the stored result. ErrStaleState and ErrDuplicateReference mean
	// nothing was written.
	Transition(ctx context.Context, from models.Phase, updated *models.Booking) (*models.Booking, error)
	// Delete removes a booking record by its id.
	Delete(ctx context.Context, id string) error
}
