package carRepo

import (
	"swatrental/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ListQuery builds the Mongo filter for a catalog listing.
func ListQuery(f models.CarFilter) bson.M {
	query := bson.M{}
	if f.Category != "" {
		query["category"] = f.Category
	}
	if f.Transmission != "" {
		query["transmission"] = f.Transmission
	}
	if f.Available != nil {
		query["available"] = *f.Available
	}
	if f.MinSeats > 0 {
		query["seats"] = bson.M{"$gte": f.MinSeats}
	}

	price := bson.M{}
	if f.MinPrice > 0 {
		price["$gte"] = f.MinPrice
	}
	if f.MaxPrice > 0 {
		price["$lte"] = f.MaxPrice
	}
	if len(price) > 0 {
		query["pricePerDay"] = price
	}
	return query
}

// Matches applies the same filter in process.
func Matches(f models.CarFilter, car models.Car) bool {
	switch {
	case f.Category != "" && car.Category != f.Category:
		return false
	case f.Transmission != "" && car.Transmission != f.Transmission:
		return false
	case f.Available != nil && car.Available != *f.Available:
		return false
	case f.MinSeats > 0 && car.Seats < f.MinSeats:
		return false
	case f.MinPrice > 0 && car.PricePerDay < f.MinPrice:
		return false
	case f.MaxPrice > 0 && car.PricePerDay > f.MaxPrice:
		return false
	}
	return true
}
