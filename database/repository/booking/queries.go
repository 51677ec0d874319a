package bookingRepo

import (
	"swatrental/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ListQuery builds the Mongo filter for a booking listing.
func ListQuery(f models.BookingFilter) bson.M {
	query := bson.M{}
	if f.UserID != "" {
		query["user"] = f.UserID
	}
	if f.Status != "" {
		query["status"] = f.Status
	}
	return query
}

// TransitionQuery matches a booking only while it holds the pair of phase.
func TransitionQuery(id string, phase models.Phase) bson.M {
	return bson.M{
		"id":            id,
		"status":        phase.Status(),
		"paymentStatus": phase.PaymentStatus(),
	}
}
