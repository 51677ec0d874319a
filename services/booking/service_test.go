package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"swatrental/config"
	bookingRepo "swatrental/database/repository/booking"
	"swatrental/database/repository/memstore"
	"swatrental/models"
	"swatrental/services/payment"
	"swatrental/services/storage"
	"swatrental/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	owner    = models.Actor{ID: "owner-1", Role: models.RoleUser}
	stranger = models.Actor{ID: "stranger-1", Role: models.RoleUser}
	admin    = models.Actor{ID: "admin-1", Role: models.RoleAdmin}
)

// mockNotifier records published events.
type mockNotifier struct {
	mu        sync.Mutex
	events    []models.BookingEvent
	PublishFn func(event models.BookingEvent) error
}

func (m *mockNotifier) Publish(_ context.Context, event models.BookingEvent) error {
	m.mu.Lock()
	m.events = append(m.events, event)
	m.mu.Unlock()
	if m.PublishFn != nil {
		return m.PublishFn(event)
	}
	return nil
}

func (m *mockNotifier) types() []models.BookingEventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.BookingEventType, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e.Type)
	}
	return out
}

// steppingClock advances one second per call so gateway references differ.
type steppingClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *steppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

type fixture struct {
	svc      *DefaultBookingService
	store    *memstore.Store
	notifier *mockNotifier
	gateways *payment.Adapter
	car      models.Car
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memstore.New()
	clock := &steppingClock{t: time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)}
	gateways := payment.NewAdapter(testGatewayConfig(), clock.Now)
	notifier := &mockNotifier{}

	car := models.Car{
		ID:          "car-1",
		Name:        "Toyota Land Cruiser V8",
		Category:    models.CategorySUV,
		PricePerDay: 6000,
		Available:   true,
	}
	require.NoError(t, store.Cars().Create(context.Background(), &car))
	require.NoError(t, store.Users().Create(context.Background(), &models.User{ID: owner.ID, Email: "owner@example.com", Role: models.RoleUser}))

	return &fixture{
		svc: &DefaultBookingService{
			Bookings: store.Bookings(),
			Cars:     store.Cars(),
			Users:    store.Users(),
			Gateways: gateways,
			Receipts: storage.PassThroughStore{},
			Notifier: notifier,
			Logger:   zap.NewNop(),
			Now:      clock.Now,
		},
		store:    store,
		notifier: notifier,
		gateways: gateways,
		car:      car,
	}
}

func (f *fixture) input(method models.PaymentMethod) models.BookingInput {
	return models.BookingInput{
		CarID:          f.car.ID,
		PickupDate:     day(2024, 1, 1),
		ReturnDate:     day(2024, 1, 4),
		PickupLocation: "Mingora",
		PaymentMethod:  method,
	}
}

func (f *fixture) create(t *testing.T, method models.PaymentMethod) *models.Booking {
	t.Helper()
	b, err := f.svc.CreateBooking(context.Background(), owner, f.input(method))
	require.NoError(t, err)
	return b
}

func (f *fixture) reload(t *testing.T, id string) *models.Booking {
	t.Helper()
	b, err := f.store.Bookings().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, b)
	return b
}

func assertPair(t *testing.T, b *models.Booking, status, paymentStatus string) {
	t.Helper()
	assert.Equal(t, status, b.Status)
	assert.Equal(t, paymentStatus, b.PaymentStatus)
}

func TestCreateBookingPricesServerSide(t *testing.T) {
	f := newFixture(t)
	in := f.input(models.MethodCashOnDelivery)
	in.NeedDriver = true

	b, err := f.svc.CreateBooking(context.Background(), owner, in)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, b.UserID)
	assert.Equal(t, 3, b.NumberOfDays)
	assert.Equal(t, 6000.0, b.DriverCharge)
	assert.Equal(t, 24000.0, b.TotalPrice)
	assert.Equal(t, models.DefaultDropoffLocation, b.DropoffLocation)
	assertPair(t, b, models.StatusPending, models.PaymentPending)
	assert.Equal(t, []models.BookingEventType{models.EventBookingCreated}, f.notifier.types())
}

func TestCreateBookingInvalidDateRangeWins(t *testing.T) {
	f := newFixture(t)
	in := f.input(models.PaymentMethod("Bitcoin"))
	in.CarID = "missing"
	in.PickupLocation = "Lahore"
	in.ReturnDate = in.PickupDate

	_, err := f.svc.CreateBooking(context.Background(), owner, in)
	assert.Equal(t, utils.KindInvalidDateRange, utils.KindOf(err))
}

func TestCreateBookingCarChecks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := f.input(models.MethodJazzCash)
	in.CarID = "missing"
	_, err := f.svc.CreateBooking(ctx, owner, in)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))

	off := f.car
	off.Available = false
	require.NoError(t, f.store.Cars().Update(ctx, &off))
	_, err = f.svc.CreateBooking(ctx, owner, f.input(models.MethodJazzCash))
	assert.Equal(t, utils.KindCarUnavailable, utils.KindOf(err))

	all, err := f.store.Bookings().List(ctx, models.BookingFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreateBookingValidatesEnums(t *testing.T) {
	f := newFixture(t)
	in := f.input(models.MethodJazzCash)
	in.PickupLocation = "Lahore"
	_, err := f.svc.CreateBooking(context.Background(), owner, in)
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))

	in = f.input(models.PaymentMethod("Bitcoin"))
	_, err = f.svc.CreateBooking(context.Background(), owner, in)
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))
}

func TestQuoteMatchesCreatedBooking(t *testing.T) {
	f := newFixture(t)
	q, err := f.svc.Quote(context.Background(), f.car.ID, day(2024, 1, 1), day(2024, 1, 4), true)
	require.NoError(t, err)

	in := f.input(models.MethodCashOnDelivery)
	in.NeedDriver = true
	b, err := f.svc.CreateBooking(context.Background(), owner, in)
	require.NoError(t, err)
	assert.Equal(t, q.TotalPrice, b.TotalPrice)
	assert.Equal(t, q.NumberOfDays, b.NumberOfDays)
}

func TestListBookingsScopesToOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.create(t, models.MethodJazzCash)
	_, err := f.svc.CreateBooking(ctx, stranger, f.input(models.MethodJazzCash))
	require.NoError(t, err)

	mine, err := f.svc.ListBookings(ctx, owner, "")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, owner.ID, mine[0].UserID)

	all, err := f.svc.ListBookings(ctx, admin, "pending")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = f.svc.ListBookings(ctx, admin, "Archived")
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))
}

func TestStrangerIsForbiddenEverywhere(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.create(t, models.MethodBankTransfer)
	cancelled := "cancelled"
	confirmed := models.StatusConfirmed

	_, err := f.svc.GetBooking(ctx, stranger, b.ID)
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))
	_, err = f.svc.UpdateBooking(ctx, stranger, b.ID, models.BookingUpdate{Status: &cancelled})
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))
	_, err = f.svc.UpdateBooking(ctx, owner, b.ID, models.BookingUpdate{Status: &confirmed})
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))
	assert.Equal(t, utils.KindForbidden, utils.KindOf(f.svc.DeleteBooking(ctx, stranger, b.ID)))
	assert.Equal(t, utils.KindForbidden, utils.KindOf(f.svc.DeleteBooking(ctx, owner, b.ID)))
	_, err = f.svc.InitializePayment(ctx, stranger, b.ID, payment.KeyBank)
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))
	_, err = f.svc.UploadBankReceipt(ctx, stranger, b.ID, "https://example.com/r.jpg")
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))
	_, err = f.svc.VerifyBankPayment(ctx, owner, b.ID, true)
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))
	_, err = f.svc.GetPaymentStatus(ctx, stranger, b.ID)
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))

	assertPair(t, f.reload(t, b.ID), models.StatusPending, models.PaymentPending)
}

func TestNotFoundBeforeForbidden(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.GetBooking(context.Background(), stranger, "missing")
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
	_, err = f.svc.VerifyBankPayment(context.Background(), stranger, "missing", true)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
}

func TestBankRejectionScenario(t *testing.T) {
	f := newFixture(t)
	b := f.create(t, models.MethodBankTransfer)

	got, err := f.svc.VerifyBankPayment(context.Background(), admin, b.ID, false)
	require.NoError(t, err)
	assertPair(t, got, models.StatusCancelled, models.PaymentFailed)

	_, err = f.svc.VerifyBankPayment(context.Background(), admin, b.ID, true)
	assert.Equal(t, utils.KindInvalidTransition, utils.KindOf(err))
}

func TestBankReceiptApprovalScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.create(t, models.MethodBankTransfer)

	got, err := f.svc.UploadBankReceipt(ctx, owner, b.ID, "https://example.com/receipt.jpg")
	require.NoError(t, err)
	assertPair(t, got, models.StatusPending, models.PaymentPendingVerification)
	assert.Equal(t, "https://example.com/receipt.jpg", got.PaymentReceipt)

	got, err = f.svc.UploadBankReceipt(ctx, owner, b.ID, "https://example.com/receipt-2.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/receipt-2.jpg", got.PaymentReceipt)

	got, err = f.svc.VerifyBankPayment(ctx, admin, b.ID, true)
	require.NoError(t, err)
	assertPair(t, got, models.StatusConfirmed, models.PaymentCompleted)

	assert.Equal(t, []models.BookingEventType{
		models.EventBookingCreated,
		models.EventReceiptUploaded,
		models.EventReceiptUploaded,
		models.EventPaymentConfirmed,
	}, f.notifier.types())
}

func TestReceiptRequiresBankTransfer(t *testing.T) {
	f := newFixture(t)
	b := f.create(t, models.MethodJazzCash)
	_, err := f.svc.UploadBankReceipt(context.Background(), owner, b.ID, "https://example.com/r.jpg")
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))

	_, err = f.svc.UploadBankReceipt(context.Background(), owner, b.ID, "  ")
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))
}

func TestBankVerifyRequiresBankTransfer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.create(t, models.MethodCashOnDelivery)
	_, err := f.svc.InitializePayment(ctx, owner, b.ID, payment.KeyJazzCash)
	require.NoError(t, err)

	for _, approve := range []bool{true, false} {
		_, err = f.svc.VerifyBankPayment(ctx, admin, b.ID, approve)
		assert.Equal(t, utils.KindValidation, utils.KindOf(err))
	}
	assertPair(t, f.reload(t, b.ID), models.StatusPending, models.PaymentPending)

	_, err = f.svc.InitializePayment(ctx, owner, b.ID, payment.KeyBank)
	require.NoError(t, err)
	got, err := f.svc.VerifyBankPayment(ctx, admin, b.ID, true)
	require.NoError(t, err)
	assertPair(t, got, models.StatusConfirmed, models.PaymentCompleted)
}

func TestCancelIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.create(t, models.MethodCashOnDelivery)
	cancel := "cancelled"

	first, err := f.svc.UpdateBooking(ctx, owner, b.ID, models.BookingUpdate{Status: &cancel})
	require.NoError(t, err)
	assertPair(t, first, models.StatusCancelled, models.PaymentPending)

	second, err := f.svc.CancelBooking(ctx, owner, b.ID)
	require.NoError(t, err)
	assertPair(t, second, models.StatusCancelled, models.PaymentPending)
	assert.Equal(t, first.UpdatedAt, second.UpdatedAt)

	assert.Equal(t, []models.BookingEventType{models.EventBookingCreated, models.EventBookingCancelled}, f.notifier.types())
}

func TestCancelKeepsPaymentStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.create(t, models.MethodBankTransfer)
	_, err := f.svc.UploadBankReceipt(ctx, owner, b.ID, "https://example.com/r.jpg")
	require.NoError(t, err)

	got, err := f.svc.CancelBooking(ctx, admin, b.ID)
	require.NoError(t, err)
	assertPair(t, got, models.StatusCancelled, models.PaymentPendingVerification)
}

func TestCancelCompletedBookingFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.create(t, models.MethodCashOnDelivery)
	completed, paid := models.StatusCompleted, models.PaymentCompleted
	_, err := f.svc.UpdateBooking(ctx, admin, b.ID, models.BookingUpdate{Status: &completed, PaymentStatus: &paid})
	require.NoError(t, err)

	_, err = f.svc.CancelBooking(ctx, owner, b.ID)
	assert.Equal(t, utils.KindInvalidTransition, utils.KindOf(err))
}

func TestAdminBareCancelOverridesCompletedBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.create(t, models.MethodCashOnDelivery)
	completed, paid := models.StatusCompleted, models.PaymentCompleted
	_, err := f.svc.UpdateBooking(ctx, admin, b.ID, models.BookingUpdate{Status: &completed, PaymentStatus: &paid})
	require.NoError(t, err)

	cancelled := "Cancelled"
	got, err := f.svc.UpdateBooking(ctx, admin, b.ID, models.BookingUpdate{Status: &cancelled})
	require.NoError(t, err)
	assertPair(t, got, models.StatusCancelled, models.PaymentCompleted)
	assertPair(t, f.reload(t, b.ID), models.StatusCancelled, models.PaymentCompleted)

	_, err = f.svc.UpdateBooking(ctx, owner, b.ID, models.BookingUpdate{Status: &cancelled})
	require.NoError(t, err)
}

func TestInitializePaymentTwiceKeepsOneBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.create(t, models.MethodCashOnDelivery)

	first, err := f.svc.InitializePayment(ctx, owner, b.ID, payment.KeyJazzCash)
	require.NoError(t, err)
	second, err := f.svc.InitializePayment(ctx, owner, b.ID, payment.KeyEasyPaisa)
	require.NoError(t, err)
	assert.NotEqual(t, first.Reference, second.Reference)
	assert.Equal(t, "owner@example.com", second.PaymentData["emailAddress"])

	all, err := f.store.Bookings().List(ctx, models.BookingFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, models.MethodEasyPaisa, all[0].PaymentMethod)
	assert.Equal(t, second.Reference, all[0].PaymentReference)
	assertPair(t, &all[0], models.StatusPending, models.PaymentPending)
}

func TestInitializePaymentUnsupportedMethod(t *testing.T) {
	f := newFixture(t)
	b := f.create(t, models.MethodCashOnDelivery)
	_, err := f.svc.InitializePayment(context.Background(), owner, b.ID, "paypal")
	assert.Equal(t, utils.KindUnsupportedMethod, utils.KindOf(err))
	assert.Empty(t, f.reload(t, b.ID).PaymentReference)
}

func jazzCashCallbackFor(init *payment.Initialization) map[string]string {
	return map[string]string{
		"pp_Amount":       init.PaymentData["amount"],
		"pp_TxnRefNo":     init.Reference,
		"pp_ResponseCode": "000",
	}
}

func TestWalletCallbackConfirmsBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.create(t, models.MethodJazzCash)
	init, err := f.svc.InitializePayment(ctx, owner, b.ID, payment.KeyJazzCash)
	require.NoError(t, err)

	jc, err := f.gateways.Callback(payment.KeyJazzCash)
	require.NoError(t, err)
	callback := jc.SignCallback(jazzCashCallbackFor(init))

	got, err := f.svc.VerifyGatewayCallback(ctx, payment.KeyJazzCash, callback)
	require.NoError(t, err)
	assertPair(t, got, models.StatusConfirmed, models.PaymentCompleted)

	replay, err := f.svc.VerifyGatewayCallback(ctx, payment.KeyJazzCash, callback)
	require.NoError(t, err)
	assert.Equal(t, got.UpdatedAt, replay.UpdatedAt)
}

func TestCallbackConfirmsOnlyItsOwnBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	frozen := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	f.gateways = payment.NewAdapter(testGatewayConfig(), func() time.Time { return frozen })
	f.svc.Gateways = f.gateways

	b1 := f.create(t, models.MethodJazzCash)
	b2 := f.create(t, models.MethodJazzCash)
	init1, err := f.svc.InitializePayment(ctx, owner, b1.ID, payment.KeyJazzCash)
	require.NoError(t, err)
	init2, err := f.svc.InitializePayment(ctx, owner, b2.ID, payment.KeyJazzCash)
	require.NoError(t, err)
	require.NotEqual(t, init1.Reference, init2.Reference)

	jc, err := f.gateways.Callback(payment.KeyJazzCash)
	require.NoError(t, err)
	got, err := f.svc.VerifyGatewayCallback(ctx, payment.KeyJazzCash, jc.SignCallback(jazzCashCallbackFor(init2)))
	require.NoError(t, err)
	assert.Equal(t, b2.ID, got.ID)

	assertPair(t, f.reload(t, b2.ID), models.StatusConfirmed, models.PaymentCompleted)
	assertPair(t, f.reload(t, b1.ID), models.StatusPending, models.PaymentPending)
}

func TestTamperedCallbackNeverTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.create(t, models.MethodJazzCash)
	init, err := f.svc.InitializePayment(ctx, owner, b.ID, payment.KeyJazzCash)
	require.NoError(t, err)
	jc, err := f.gateways.Callback(payment.KeyJazzCash)
	require.NoError(t, err)

	for _, field := range []string{"pp_Amount", "pp_TxnRefNo", "pp_ResponseCode"} {
		callback := jc.SignCallback(jazzCashCallbackFor(init))
		callback[field] = callback[field] + "1"
		_, err := f.svc.VerifyGatewayCallback(ctx, payment.KeyJazzCash, callback)
		assert.Equal(t, utils.KindInvalidSignature, utils.KindOf(err), field)
	}
	assertPair(t, f.reload(t, b.ID), models.StatusPending, models.PaymentPending)
}

func TestCallbackAmountMustMatchBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.create(t, models.MethodEasyPaisa)
	init, err := f.svc.InitializePayment(ctx, owner, b.ID, payment.KeyEasyPaisa)
	require.NoError(t, err)
	ep, err := f.gateways.Callback(payment.KeyEasyPaisa)
	require.NoError(t, err)

	underpaid := ep.SignCallback(map[string]string{"amount": "100", "orderId": init.Reference, "paymentStatus": "SUCCESS"})
	_, err = f.svc.VerifyGatewayCallback(ctx, payment.KeyEasyPaisa, underpaid)
	assert.Equal(t, utils.KindInvalidSignature, utils.KindOf(err))
	assertPair(t, f.reload(t, b.ID), models.StatusPending, models.PaymentPending)

	paid := ep.SignCallback(map[string]string{"amount": init.PaymentData["amount"], "orderId": init.Reference, "paymentStatus": "SUCCESS"})
	got, err := f.svc.VerifyGatewayCallback(ctx, payment.KeyEasyPaisa, paid)
	require.NoError(t, err)
	assertPair(t, got, models.StatusConfirmed, models.PaymentCompleted)
}

func TestCallbackForUnknownReference(t *testing.T) {
	f := newFixture(t)
	jc, err := f.gateways.Callback(payment.KeyJazzCash)
	require.NoError(t, err)
	callback := jc.SignCallback(map[string]string{"pp_Amount": "100", "pp_TxnRefNo": "TXN0", "pp_ResponseCode": "000"})
	_, err = f.svc.VerifyGatewayCallback(context.Background(), payment.KeyJazzCash, callback)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
}

func TestAdminOverride(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.create(t, models.MethodCashOnDelivery)

	bogus, pending := models.StatusConfirmed, models.PaymentPending
	_, err := f.svc.UpdateBooking(ctx, admin, b.ID, models.BookingUpdate{Status: &bogus, PaymentStatus: &pending})
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))

	ret := day(2024, 1, 6)
	driver := true
	got, err := f.svc.UpdateBooking(ctx, admin, b.ID, models.BookingUpdate{ReturnDate: &ret, NeedDriver: &driver})
	require.NoError(t, err)
	assert.Equal(t, 5, got.NumberOfDays)
	assert.Equal(t, 40000.0, got.TotalPrice)
	assertPair(t, got, models.StatusPending, models.PaymentPending)

	early := day(2023, 12, 1)
	_, err = f.svc.UpdateBooking(ctx, admin, b.ID, models.BookingUpdate{ReturnDate: &early})
	assert.Equal(t, utils.KindInvalidDateRange, utils.KindOf(err))
}

func TestDeleteBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.create(t, models.MethodCashOnDelivery)

	require.NoError(t, f.svc.DeleteBooking(ctx, admin, b.ID))
	_, err := f.svc.GetBooking(ctx, admin, b.ID)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
}

func TestPaymentStatusView(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.create(t, models.MethodBankTransfer)
	init, err := f.svc.InitializePayment(ctx, owner, b.ID, payment.KeyBank)
	require.NoError(t, err)

	view, err := f.svc.GetPaymentStatus(ctx, admin, b.ID)
	require.NoError(t, err)
	assert.Equal(t, &models.PaymentStatusView{
		PaymentStatus:    models.PaymentPending,
		PaymentMethod:    models.MethodBankTransfer,
		PaymentReference: init.Reference,
		BookingStatus:    models.StatusPending,
	}, view)
}

// losingRepo fails every conditional update with err, as if another request won the race.
type losingRepo struct {
	bookingRepo.BookingRepository
	err error
}

func (r losingRepo) Transition(context.Context, models.Phase, *models.Booking) (*models.Booking, error) {
	return nil, r.err
}

func TestLostRaceIsConflict(t *testing.T) {
	f := newFixture(t)
	b := f.create(t, models.MethodBankTransfer)
	f.svc.Bookings = losingRepo{f.store.Bookings(), bookingRepo.ErrStaleState}

	_, err := f.svc.VerifyBankPayment(context.Background(), admin, b.ID, true)
	assert.Equal(t, utils.KindConflict, utils.KindOf(err))
	assertPair(t, f.reload(t, b.ID), models.StatusPending, models.PaymentPending)
}

func TestTakenReferenceIsConflict(t *testing.T) {
	f := newFixture(t)
	b := f.create(t, models.MethodJazzCash)
	f.svc.Bookings = losingRepo{f.store.Bookings(), bookingRepo.ErrDuplicateReference}

	_, err := f.svc.InitializePayment(context.Background(), owner, b.ID, payment.KeyJazzCash)
	assert.Equal(t, utils.KindConflict, utils.KindOf(err))
	assert.Empty(t, f.reload(t, b.ID).PaymentReference)
}

func TestNotifierFailureDoesNotFailRequest(t *testing.T) {
	f := newFixture(t)
	f.notifier.PublishFn = func(models.BookingEvent) error { return errors.New("redis down") }

	b := f.create(t, models.MethodCashOnDelivery)
	_, err := f.svc.CancelBooking(context.Background(), owner, b.ID)
	assert.NoError(t, err)
}

func testGatewayConfig() config.GatewayConfig {
	return config.GatewayConfig{
		JazzCash:  config.JazzCashConfig{MerchantID: "MC1", IntegritySalt: "salt", ReturnURL: "http://localhost/return"},
		EasyPaisa: config.EasyPaisaConfig{StoreID: "S1", APIKey: "key"},
		Bank:      config.BankConfig{BankName: "Meezan Bank"},
	}
}
