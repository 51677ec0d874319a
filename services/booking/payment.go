package booking

import (
	"context"
	"math"
	"strings"

	"swatrental/models"
	"swatrental/services/payment"
	"swatrental/services/policy"
	"swatrental/utils"

	"go.uber.org/zap"
)

// amountTolerance absorbs paisa rounding when comparing callback amounts.
const amountTolerance = 0.01

// InitializePayment records the chosen method and a fresh reference on the
// booking and returns the gateway payload. Repeating it only replaces the reference.
func (s *DefaultBookingService) InitializePayment(ctx context.Context, actor models.Actor, bookingID, methodKey string) (*payment.Initialization, error) {
	b, from, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.PaymentInitialize, policy.Owned(b.UserID)); err != nil {
		return nil, err
	}
	gateway, err := s.Gateways.Gateway(methodKey)
	if err != nil {
		return nil, err
	}
	step, err := Next(from, TriggerInitializePayment)
	if err != nil {
		return nil, err
	}

	order, err := s.order(ctx, b)
	if err != nil {
		return nil, err
	}
	init, err := gateway.Initialize(order)
	if err != nil {
		return nil, utils.Internal("failed to initialize payment", err)
	}

	updated := *b
	updated.Status, updated.PaymentStatus = step.To.Status(), step.To.PaymentStatus()
	updated.PaymentMethod = init.Method
	updated.PaymentReference = init.Reference
	stored, err := s.persist(ctx, from, &updated)
	if err != nil {
		return nil, err
	}

	s.Logger.Info("payment initialized",
		zap.String("bookingID", stored.ID),
		zap.String("method", string(init.Method)),
		zap.String("reference", init.Reference),
	)
	s.publish(ctx, models.EventPaymentInitialized, stored, actor.ID)
	return init, nil
}

func (s *DefaultBookingService) order(ctx context.Context, b *models.Booking) (payment.Order, error) {
	order := payment.Order{BookingID: b.ID, Amount: b.TotalPrice, CarName: "Car"}

	car, err := s.Cars.GetByID(ctx, b.CarID)
	if err != nil {
		return order, utils.Internal("failed to fetch car", err)
	}
	if car != nil {
		order.CarName = car.Name
	}

	if s.Users != nil {
		u, err := s.Users.GetByID(ctx, b.UserID)
		if err != nil {
			return order, utils.Internal("failed to fetch user", err)
		}
		if u != nil {
			order.Email, order.Phone = u.Email, u.Phone
		}
	}
	return order, nil
}

// VerifyGatewayCallback confirms a wallet payment from its signed callback.
// Nothing is written unless the signature, success flag and amount all check out.
func (s *DefaultBookingService) VerifyGatewayCallback(ctx context.Context, methodKey string, fields map[string]string) (*models.Booking, error) {
	gateway, err := s.Gateways.Callback(methodKey)
	if err != nil {
		return nil, err
	}
	v, err := gateway.Verify(fields)
	if err != nil {
		s.Logger.Warn("rejected payment callback", zap.String("method", methodKey), zap.Error(err))
		return nil, err
	}

	b, err := s.Bookings.GetByReference(ctx, v.Reference)
	if err != nil {
		return nil, utils.Internal("failed to fetch booking", err)
	}
	if b == nil {
		return nil, utils.NotFound("Booking")
	}
	if b.PaymentMethod != v.Method || math.Abs(v.Amount-b.TotalPrice) > amountTolerance {
		s.Logger.Warn("payment callback does not match booking",
			zap.String("bookingID", b.ID),
			zap.Float64("callbackAmount", v.Amount),
			zap.Float64("totalPrice", b.TotalPrice),
		)
		return nil, utils.NewError(utils.KindInvalidSignature, "Payment does not match booking")
	}

	from, err := b.Phase()
	if err != nil {
		return nil, utils.Internal("booking is in an unreachable state", err)
	}
	step, err := Next(from, TriggerGatewayApproved)
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

	s.Logger.Info("payment verified", zap.String("bookingID", stored.ID), zap.String("reference", v.Reference))
	s.publish(ctx, models.EventPaymentConfirmed, stored, "")
	return stored, nil
}

// UploadBankReceipt attaches a transfer receipt and moves the booking into review.
func (s *DefaultBookingService) UploadBankReceipt(ctx context.Context, actor models.Actor, bookingID, receipt string) (*models.Booking, error) {
	if strings.TrimSpace(receipt) == "" {
		return nil, utils.Validation("receiptImage is required")
	}

	b, from, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ReceiptUpload, policy.Owned(b.UserID)); err != nil {
		return nil, err
	}
	step, err := Next(from, TriggerReceiptUploaded)
	if err != nil {
		return nil, err
	}
	if b.PaymentMethod != models.MethodBankTransfer {
		return nil, utils.Validation("Receipts can only be uploaded for bank transfer bookings")
	}

	ref, err := s.Receipts.Save(ctx, b.ID, receipt)
	if err != nil {
		return nil, utils.Internal("failed to store receipt", err)
	}

	updated := *b
	updated.Status, updated.PaymentStatus = step.To.Status(), step.To.PaymentStatus()
	updated.PaymentReceipt = ref
	stored, err := s.persist(ctx, from, &updated)
	if err != nil {
		return nil, err
	}

	s.Logger.Info("bank receipt uploaded", zap.String("bookingID", stored.ID))
	s.publish(ctx, models.EventReceiptUploaded, stored, actor.ID)
	return stored, nil
}

// VerifyBankPayment records an admin's decision on a bank transfer. Other
// methods are settled by their gateway callback or an override.
func (s *DefaultBookingService) VerifyBankPayment(ctx context.Context, actor models.Actor, bookingID string, approve bool) (*models.Booking, error) {
	b, from, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.BankVerify, policy.Owned(b.UserID)); err != nil {
		return nil, err
	}
	if b.PaymentMethod != models.MethodBankTransfer {
		return nil, utils.Validation("Only bank transfer bookings can be verified")
	}

	trigger, event := TriggerBankRejected, models.EventPaymentRejected
	if approve {
		trigger, event = TriggerBankApproved, models.EventPaymentConfirmed
	}
	step, err := Next(from, trigger)
	if err != nil {
		return nil, err
	}

	updated := *b
	updated.Status, updated.PaymentStatus = step.To.Status(), step.To.PaymentStatus()
	stored, err := s.persist(ctx, from, &updated)
	if err != nil {
		return nil, err
	}

	s.Logger.Info("bank payment reviewed",
		zap.String("bookingID", stored.ID),
		zap.Bool("approved", approve),
		zap.String("actorID", actor.ID),
	)
	s.publish(ctx, event, stored, actor.ID)
	return stored, nil
}

func (s *DefaultBookingService) GetPaymentStatus(ctx context.Context, actor models.Actor, bookingID string) (*models.PaymentStatusView, error) {
	b, _, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.PaymentStatusRead, policy.Owned(b.UserID)); err != nil {
		return nil, err
	}
	return &models.PaymentStatusView{
		PaymentStatus:    b.PaymentStatus,
		PaymentMethod:    b.PaymentMethod,
		PaymentReference: b.PaymentReference,
		BookingStatus:    b.Status,
	}, nil
}
