package booking

import (
	"fmt"
	"math"
	"time"

	"swatrental/models"
	"swatrental/utils"
)

// DriverRatePerDay is the flat charge for a driver, in rupees per day.
const DriverRatePerDay = 2000

// MaxRentalDays caps a single booking.
const MaxRentalDays = 365

const secondsPerDay = 24 * 60 * 60

// ComputeTotal prices a rental. Partial days are charged as full days.
func ComputeTotal(pricePerDay float64, pickupDate, returnDate time.Time, needDriver bool) (models.Quote, error) {
	if pricePerDay <= 0 || math.IsNaN(pricePerDay) || math.IsInf(pricePerDay, 0) {
		return models.Quote{}, utils.Validation("pricePerDay must be positive")
	}

	// Duration saturates near 292 years, so the cap is checked on Unix seconds first.
	if returnDate.Unix()-pickupDate.Unix() > MaxRentalDays*secondsPerDay {
		return models.Quote{}, utils.Validation(fmt.Sprintf("rental cannot exceed %d days", MaxRentalDays))
	}
	days := int(math.Ceil(returnDate.Sub(pickupDate).Hours() / 24))
	if days <= 0 {
		return models.Quote{}, utils.NewError(utils.KindInvalidDateRange, "Invalid date range")
	}

	var driverCharge float64
	if needDriver {
		driverCharge = DriverRatePerDay * float64(days)
	}
	return models.Quote{
		NumberOfDays: days,
		DriverCharge: driverCharge,
		TotalPrice:   pricePerDay*float64(days) + driverCharge,
	}, nil
}
