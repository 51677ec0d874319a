package notification

import (
	"fmt"

	"swatrental/models"
)

// Describe renders the customer-facing title and body of an event.
func Describe(event models.BookingEvent) (title, body string) {
	short := shortID(event.BookingID)
	switch event.Type {
	case models.EventBookingCreated:
		return "Booking received", fmt.Sprintf("Booking %s is waiting for payment.", short)
	case models.EventPaymentInitialized:
		return "Payment started", fmt.Sprintf("Complete your %s payment for booking %s.", event.PaymentMethod, short)
	case models.EventPaymentConfirmed:
		return "Booking confirmed", fmt.Sprintf("Payment for booking %s was received. Enjoy Swat!", short)
	case models.EventReceiptUploaded:
		return "Receipt received", fmt.Sprintf("We are verifying the bank transfer for booking %s.", short)
	case models.EventPaymentRejected:
		return "Payment rejected", fmt.Sprintf("The bank transfer for booking %s could not be verified.", short)
	case models.EventBookingCancelled:
		return "Booking cancelled", fmt.Sprintf("Booking %s has been cancelled.", short)
	case models.EventBookingOverridden:
		return "Booking updated", fmt.Sprintf("Booking %s is now %s (payment %s).", short, event.Status, event.PaymentStatus)
	case models.EventBookingDeleted:
		return "Booking removed", fmt.Sprintf("Booking %s was removed.", short)
	}
	return "Booking update", fmt.Sprintf("Booking %s changed.", short)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
