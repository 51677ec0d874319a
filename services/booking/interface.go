package booking

import (
	"context"
	"time"

	bookingRepo "swatrental/database/repository/booking"
	carRepo "swatrental/database/repository/car"
	userRepo "swatrental/database/repository/user"
	"swatrental/models"
	"swatrental/services/notification"
	"swatrental/services/payment"
	"swatrental/services/storage"

	"go.uber.org/zap"
)

// BookingService is the booking and payment orchestrator.
type BookingService interface {
	Quote(ctx context.Context, carID string, pickupDate, returnDate time.Time, needDriver bool) (*models.Quote, error)
	CreateBooking(ctx context.Context, actor models.Actor, input models.BookingInput) (*models.Booking, error)
	ListBookings(ctx context.Context, actor models.Actor, status string) ([]models.Booking, error)
	GetBooking(ctx context.Context, actor models.Actor, id string) (*models.Booking, error)
	UpdateBooking(ctx context.Context, actor models.Actor, id string, update models.BookingUpdate) (*models.Booking, error)
	CancelBooking(ctx context.Context, actor models.Actor, id string) (*models.Booking, error)
	DeleteBooking(ctx context.Context, actor models.Actor, id string) error

	InitializePayment(ctx context.Context, actor models.Actor, bookingID, methodKey string) (*payment.Initialization, error)
	VerifyGatewayCallback(ctx context.Context, methodKey string, fields map[string]string) (*models.Booking, error)
	UploadBankReceipt(ctx context.Context, actor models.Actor, bookingID, receipt string) (*models.Booking, error)
	VerifyBankPayment(ctx context.Context, actor models.Actor, bookingID string, approve bool) (*models.Booking, error)
	GetPaymentStatus(ctx context.Context, actor models.Actor, bookingID string) (*models.PaymentStatusView, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Bookings bookingRepo.BookingRepository
	Cars     carRepo.CarRepository
	Users    userRepo.UserRepository
	Gateways *payment.Adapter
	Receipts storage.ReceiptStore
	Notifier notification.Notifier
	Logger   *zap.Logger
	Now      func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
