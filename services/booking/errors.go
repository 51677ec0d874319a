package booking

import (
	"context"
	"errors"

	bookingRepo "swatrental/database/repository/booking"
	"swatrental/models"
	"swatrental/utils"

	"go.uber.org/zap"
)

// load fetches a booking and turns a miss into NotFound.
func (s *DefaultBookingService) load(ctx context.Context, id string) (*models.Booking, models.Phase, error) {
	b, err := s.Bookings.GetByID(ctx, id)
	if err != nil {
		return nil, "", utils.Internal("failed to fetch booking", err)
	}
	if b == nil {
		return nil, "", utils.NotFound("Booking")
	}
	phase, err := b.Phase()
	if err != nil {
		return nil, "", utils.Internal("booking is in an unreachable state", err)
	}
	return b, phase, nil
}

// persist writes updated if the booking still is in phase from.
func (s *DefaultBookingService) persist(ctx context.Context, from models.Phase, updated *models.Booking) (*models.Booking, error) {
	updated.UpdatedAt = s.now()
	stored, err := s.Bookings.Transition(ctx, from, updated)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrStaleState) {
			return nil, utils.NewError(utils.KindConflict, "Booking was modified by another request, please retry")
		}
		if errors.Is(err, bookingRepo.ErrDuplicateReference) {
			return nil, utils.NewError(utils.KindConflict, "Payment reference is already in use, please retry")
		}
		return nil, utils.Internal("failed to update booking", err)
	}
	return stored, nil
}

// publish never fails the calling operation.
func (s *DefaultBookingService) publish(ctx context.Context, typ models.BookingEventType, b *models.Booking, actorID string) {
	if s.Notifier == nil {
		return
	}
	event := models.BookingEvent{
		Type:          typ,
		BookingID:     b.ID,
		UserID:        b.UserID,
		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		PaymentMethod: b.PaymentMethod,
		ActorID:       actorID,
		At:            s.now(),
	}
	if err := s.Notifier.Publish(ctx, event); err != nil {
		s.Logger.Warn("failed to publish booking event",
			zap.String("type", string(typ)),
			zap.String("bookingID", b.ID),
			zap.Error(err),
		)
	}
}
