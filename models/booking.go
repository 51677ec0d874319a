package models

import (
	"strings"
	"time"
)

// Booking statuses.
const (
	StatusPending   = "Pending"
	StatusConfirmed = "Confirmed"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

// Payment statuses.
const (
	PaymentPending             = "Pending"
	PaymentCompleted           = "Completed"
	PaymentFailed              = "Failed"
	PaymentPendingVerification = "Pending Verification"
)

// PaymentMethod is how the customer pays for a booking.
type PaymentMethod string

const (
	MethodCashOnDelivery PaymentMethod = "Cash on Delivery"
	MethodBankTransfer   PaymentMethod = "Bank Transfer"
	MethodJazzCash       PaymentMethod = "JazzCash"
	MethodEasyPaisa      PaymentMethod = "EasyPaisa"
	MethodCreditCard     PaymentMethod = "Credit Card"
)

var paymentMethods = map[PaymentMethod]bool{
	MethodCashOnDelivery: true,
	MethodBankTransfer:   true,
	MethodJazzCash:       true,
	MethodEasyPaisa:      true,
	MethodCreditCard:     true,
}

func (m PaymentMethod) IsValid() bool {
	return paymentMethods[m]
}

// Pickup locations.
var PickupLocations = []string{"Mingora", "Kalam", "Malam Jabba", "Bahrain", "Swat Motorway", "Other"}

// DefaultDropoffLocation is used when the customer leaves the dropoff empty.
const DefaultDropoffLocation = "Same as pickup"

func IsPickupLocation(s string) bool {
	for _, l := range PickupLocations {
		if l == s {
			return true
		}
	}
	return false
}

// Booking is a reservation of one car for one user over a date range.
type Booking struct {
	ID               string        `bson:"id" json:"id"`
	UserID           string        `bson:"user" json:"user"`
	CarID            string        `bson:"car" json:"car"`
	PickupDate       time.Time     `bson:"pickupDate" json:"pickupDate"`
	ReturnDate       time.Time     `bson:"returnDate" json:"returnDate"`
	PickupLocation   string        `bson:"pickupLocation" json:"pickupLocation"`
	DropoffLocation  string        `bson:"dropoffLocation" json:"dropoffLocation"`
	NumberOfDays     int           `bson:"numberOfDays" json:"numberOfDays"`
	TotalPrice       float64       `bson:"totalPrice" json:"totalPrice"`
	NeedDriver       bool          `bson:"needDriver" json:"needDriver"`
	DriverCharge     float64       `bson:"driverCharge" json:"driverCharge"`
	Status           string        `bson:"status" json:"status"`
	PaymentMethod    PaymentMethod `bson:"paymentMethod" json:"paymentMethod"`
	PaymentStatus    string        `bson:"paymentStatus" json:"paymentStatus"`
	PaymentReference string        `bson:"paymentReference,omitempty" json:"paymentReference,omitempty"`
	PaymentReceipt   string        `bson:"paymentReceipt,omitempty" json:"paymentReceipt,omitempty"`
	Notes            string        `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt        time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// Phase resolves the stored (status, paymentStatus) pair.
func (b *Booking) Phase() (Phase, error) {
	return PhaseOf(b.Status, b.PaymentStatus)
}

// OwnedBy reports whether userID created the booking.
func (b *Booking) OwnedBy(userID string) bool {
	return b.UserID != "" && b.UserID == userID
}

// BookingFilter narrows a booking listing.
type BookingFilter struct {
	UserID string
	Status string
}

// BookingInput is the client payload for creating a booking.
type BookingInput struct {
	CarID           string        `json:"car"`
	PickupDate      time.Time     `json:"pickupDate"`
	ReturnDate      time.Time     `json:"returnDate"`
	PickupLocation  string        `json:"pickupLocation"`
	DropoffLocation string        `json:"dropoffLocation"`
	PaymentMethod   PaymentMethod `json:"paymentMethod"`
	NeedDriver      bool          `json:"needDriver"`
	Notes           string        `json:"notes"`
}

// BookingUpdate is the body of PUT /bookings/:id. Nil fields are left untouched.
type BookingUpdate struct {
	Status          *string        `json:"status,omitempty"`
	PaymentStatus   *string        `json:"paymentStatus,omitempty"`
	PaymentMethod   *PaymentMethod `json:"paymentMethod,omitempty"`
	PickupDate      *time.Time     `json:"pickupDate,omitempty"`
	ReturnDate      *time.Time     `json:"returnDate,omitempty"`
	PickupLocation  *string        `json:"pickupLocation,omitempty"`
	DropoffLocation *string        `json:"dropoffLocation,omitempty"`
	NeedDriver      *bool          `json:"needDriver,omitempty"`
	Notes           *string        `json:"notes,omitempty"`
}

// IsCancelRequest reports whether the update only asks for cancellation.
func (u BookingUpdate) IsCancelRequest() bool {
	if u.Status == nil || !isCancelledWord(*u.Status) {
		return false
	}
	return u.PaymentStatus == nil && u.PaymentMethod == nil && u.PickupDate == nil &&
		u.ReturnDate == nil && u.PickupLocation == nil && u.DropoffLocation == nil &&
		u.NeedDriver == nil && u.Notes == nil
}

func isCancelledWord(s string) bool {
	status, ok := CanonicalStatus(s)
	return ok && status == StatusCancelled
}

var (
	bookingStatuses = []string{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}
	paymentStatuses = []string{PaymentPending, PaymentCompleted, PaymentFailed, PaymentPendingVerification}
)

// CanonicalStatus matches s case-insensitively against the booking statuses.
func CanonicalStatus(s string) (string, bool) {
	return canonical(bookingStatuses, s)
}

// CanonicalPaymentStatus matches s case-insensitively against the payment statuses.
func CanonicalPaymentStatus(s string) (string, bool) {
	return canonical(paymentStatuses, s)
}

func canonical(values []string, s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, v := range values {
		if strings.EqualFold(v, s) {
			return v, true
		}
	}
	return "", false
}

// Quote is the derived price of a date range.
type Quote struct {
	NumberOfDays int     `json:"numberOfDays"`
	DriverCharge float64 `json:"driverCharge"`
	TotalPrice   float64 `json:"totalPrice"`
}

// PaymentStatusView is returned by GET /payments/status/:bookingId.
type PaymentStatusView struct {
	PaymentStatus    string        `json:"paymentStatus"`
	PaymentMethod    PaymentMethod `json:"paymentMethod"`
	PaymentReference string        `json:"paymentReference"`
	BookingStatus    string        `json:"bookingStatus"`
}
