package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	bookingRepo "swatrental/database/repository/booking"
	"swatrental/models"
	"swatrental/services/policy"
	"swatrental/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Quote prices a prospective booking without creating it.
func (s *DefaultBookingService) Quote(ctx context.Context, carID string, pickupDate, returnDate time.Time, needDriver bool) (*models.Quote, error) {
	car, err := s.Cars.GetByID(ctx, carID)
	if err != nil {
		return nil, utils.Internal("failed to fetch car", err)
	}
	if car == nil {
		return nil, utils.NotFound("Car")
	}
	q, err := ComputeTotal(car.PricePerDay, pickupDate, returnDate, needDriver)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *DefaultBookingService) CreateBooking(ctx context.Context, actor models.Actor, input models.BookingInput) (*models.Booking, error) {
	if err := policy.Authorize(actor, policy.BookingCreate, policy.Resource{}); err != nil {
		return nil, err
	}
	if !input.ReturnDate.After(input.PickupDate) {
		return nil, utils.NewError(utils.KindInvalidDateRange, "Invalid date range")
	}

	car, err := s.Cars.GetByID(ctx, input.CarID)
	if err != nil {
		return nil, utils.Internal("failed to fetch car", err)
	}
	if err := AssertBookable(car); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	quote, err := ComputeTotal(car.PricePerDay, input.PickupDate, input.ReturnDate, input.NeedDriver)
	if err != nil {
		return nil, err
	}

	dropoff := strings.TrimSpace(input.DropoffLocation)
	if dropoff == "" {
		dropoff = models.DefaultDropoffLocation
	}

	now := s.now()
	phase := models.PhaseAwaitingPayment
	b := &models.Booking{
		ID:              uuid.New().String(),
		UserID:          actor.ID,
		CarID:           car.ID,
		PickupDate:      input.PickupDate,
		ReturnDate:      input.ReturnDate,
		PickupLocation:  input.PickupLocation,
		DropoffLocation: dropoff,
		NumberOfDays:    quote.NumberOfDays,
		TotalPrice:      quote.TotalPrice,
		NeedDriver:      input.NeedDriver,
		DriverCharge:    quote.DriverCharge,
		Status:          phase.Status(),
		PaymentMethod:   input.PaymentMethod,
		PaymentStatus:   phase.PaymentStatus(),
		Notes:           input.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.Bookings.Create(ctx, b); err != nil {
		return nil, utils.Internal("failed to create booking", err)
	}

	s.Logger.Info("booking created",
		zap.String("bookingID", b.ID),
		zap.String("userID", b.UserID),
		zap.String("carID", b.CarID),
		zap.Float64("totalPrice", b.TotalPrice),
	)
	s.publish(ctx, models.EventBookingCreated, b, actor.ID)
	return b, nil
}

func validateInput(input models.BookingInput) error {
	if !models.IsPickupLocation(input.PickupLocation) {
		return utils.Validation("pickupLocation must be one of " + strings.Join(models.PickupLocations, ", "))
	}
	if !input.PaymentMethod.IsValid() {
		return utils.Validation("unknown paymentMethod " + string(input.PaymentMethod))
	}
	return nil
}

// ListBookings returns every booking for an admin and only the caller's own otherwise.
func (s *DefaultBookingService) ListBookings(ctx context.Context, actor models.Actor, status string) ([]models.Booking, error) {
	if actor.ID == "" {
		return nil, utils.NewError(utils.KindUnauthorized, "Not authenticated")
	}
	filter := models.BookingFilter{}
	if !actor.IsAdmin() {
		filter.UserID = actor.ID
	}
	if status != "" {
		canonical, ok := models.CanonicalStatus(status)
		if !ok {
			return nil, utils.Validation("unknown status " + status)
		}
		filter.Status = canonical
	}

	bookings, err := s.Bookings.List(ctx, filter)
	if err != nil {
		return nil, utils.Internal("failed to list bookings", err)
	}
	return bookings, nil
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, actor models.Actor, id string) (*models.Booking, error) {
	b, _, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.BookingRead, policy.Owned(b.UserID)); err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateBooking serves PUT /bookings/:id. A bare cancellation request from a
// user goes through CancelBooking; anything an admin sends is an override.
func (s *DefaultBookingService) UpdateBooking(ctx context.Context, actor models.Actor, id string, update models.BookingUpdate) (*models.Booking, error) {
	if !actor.IsAdmin() && update.IsCancelRequest() {
		return s.CancelBooking(ctx, actor, id)
	}

	b, from, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.BookingOverride, policy.Owned(b.UserID)); err != nil {
		return nil, err
	}

	updated, err := s.applyOverride(ctx, b, from, update)
	if err != nil {
		return nil, err
	}
	stored, err := s.persist(ctx, from, updated)
	if err != nil {
		return nil, err
	}

	s.Logger.Info("booking overridden",
		zap.String("bookingID", id),
		zap.String("actorID", actor.ID),
		zap.String("from", string(from)),
		zap.String("status", stored.Status),
		zap.String("paymentStatus", stored.PaymentStatus),
	)
	s.publish(ctx, models.EventBookingOverridden, stored, actor.ID)
	return stored, nil
}

func (s *DefaultBookingService) applyOverride(ctx context.Context, current *models.Booking, from models.Phase, u models.BookingUpdate) (*models.Booking, error) {
	b := *current

	status, paymentStatus := from.Status(), from.PaymentStatus()
	if u.Status != nil {
		v, ok := models.CanonicalStatus(*u.Status)
		if !ok {
			return nil, utils.Validation("unknown status " + *u.Status)
		}
		status = v
	}
	if u.PaymentStatus != nil {
		v, ok := models.CanonicalPaymentStatus(*u.PaymentStatus)
		if !ok {
			return nil, utils.Validation("unknown paymentStatus " + *u.PaymentStatus)
		}
		paymentStatus = v
	}
	target, err := OverrideTarget(status, paymentStatus)
	if err != nil {
		return nil, err
	}
	b.Status, b.PaymentStatus = target.Status(), target.PaymentStatus()

	if u.PaymentMethod != nil {
		if !u.PaymentMethod.IsValid() {
			return nil, utils.Validation("unknown paymentMethod " + string(*u.PaymentMethod))
		}
		b.PaymentMethod = *u.PaymentMethod
	}
	if u.PickupLocation != nil {
		if !models.IsPickupLocation(*u.PickupLocation) {
			return nil, utils.Validation("pickupLocation must be one of " + strings.Join(models.PickupLocations, ", "))
		}
		b.PickupLocation = *u.PickupLocation
	}
	if u.DropoffLocation != nil {
		b.DropoffLocation = *u.DropoffLocation
		if strings.TrimSpace(b.DropoffLocation) == "" {
			b.DropoffLocation = models.DefaultDropoffLocation
		}
	}
	if u.Notes != nil {
		b.Notes = *u.Notes
	}

	if u.PickupDate != nil || u.ReturnDate != nil || u.NeedDriver != nil {
		if u.PickupDate != nil {
			b.PickupDate = *u.PickupDate
		}
		if u.ReturnDate != nil {
			b.ReturnDate = *u.ReturnDate
		}
		if u.NeedDriver != nil {
			b.NeedDriver = *u.NeedDriver
		}
		pricePerDay, err := s.pricePerDay(ctx, current)
		if err != nil {
			return nil, err
		}
		quote, err := ComputeTotal(pricePerDay, b.PickupDate, b.ReturnDate, b.NeedDriver)
		if err != nil {
			return nil, err
		}
		b.NumberOfDays, b.DriverCharge, b.TotalPrice = quote.NumberOfDays, quote.DriverCharge, quote.TotalPrice
	}
	return &b, nil
}

// pricePerDay uses the catalog price, or the rate implied by the booking when the car is gone.
func (s *DefaultBookingService) pricePerDay(ctx context.Context, b *models.Booking) (float64, error) {
	car, err := s.Cars.GetByID(ctx, b.CarID)
	if err != nil {
		return 0, utils.Internal("failed to fetch car", err)
	}
	if car != nil {
		return car.PricePerDay, nil
	}
	if b.NumberOfDays <= 0 {
		return 0, utils.NotFound("Car")
	}
	return (b.TotalPrice - b.DriverCharge) / float64(b.NumberOfDays), nil
}

func (s *DefaultBookingService) CancelBooking(ctx context.Context, actor models.Actor, id string) (*models.Booking, error) {
	b, from, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.BookingCancel, policy.Owned(b.UserID)); err != nil {
		return nil, err
	}

	step, err := Next(from, TriggerCancel)
	if err != nil {
		return nil, err
	}
	if !step.Write {
		return b, nil
	}

	updated := *b
	updated.Status, updated.PaymentStatus = step.To.Status(), step.To.PaymentStatus()
	stored, err := s.persist(ctx, from, &updated)
	if err != nil {
		return nil, err
	}

	s.Logger.Info("booking cancelled", zap.String("bookingID", id), zap.String("actorID", actor.ID))
	s.publish(ctx, models.EventBookingCancelled, stored, actor.ID)
	return stored, nil
}

func (s *DefaultBookingService) DeleteBooking(ctx context.Context, actor models.Actor, id string) error {
	b, _, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.Authorize(actor, policy.BookingDelete, policy.Owned(b.UserID)); err != nil {
		return err
	}
	if err := s.Bookings.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return utils.NotFound("Booking")
		}
		return utils.Internal("failed to delete booking", err)
	}

	s.Logger.Info("booking deleted", zap.String("bookingID", id), zap.String("actorID", actor.ID))
	s.publish(ctx, models.EventBookingDeleted, b, actor.ID)
	return nil
}
