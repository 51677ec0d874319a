package models

import "time"

// BookingEventType names a lifecycle change published to the notification queue.
type BookingEventType string

const (
	EventBookingCreated     BookingEventType = "booking.created"
	EventPaymentInitialized BookingEventType = "payment.initialized"
	EventPaymentConfirmed   BookingEventType = "payment.confirmed"
	EventReceiptUploaded    BookingEventType = "payment.receipt_uploaded"
	EventPaymentRejected    BookingEventType = "payment.rejected"
	EventBookingCancelled   BookingEventType = "booking.cancelled"
	EventBookingOverridden  BookingEventType = "booking.overridden"
	EventBookingDeleted     BookingEventType = "booking.deleted"
)

// BookingEvent is the payload of a booking notification task.
type BookingEvent struct {
	Type          BookingEventType `json:"type"`
	BookingID     string           `json:"bookingId"`
	UserID        string           `json:"userId"`
	Status        string           `json:"status,omitempty"`
	PaymentStatus string           `json:"paymentStatus,omitempty"`
	PaymentMethod PaymentMethod    `json:"paymentMethod,omitempty"`
	ActorID       string           `json:"actorId,omitempty"`
	At            time.Time        `json:"at"`
}
