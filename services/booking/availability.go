package booking

import (
	"swatrental/models"
	"swatrental/utils"
)

// AssertBookable fails when the car does not exist or is switched off in the catalog.
func AssertBookable(car *models.Car) error {
	if car == nil {
		return utils.NotFound("Car")
	}
	if !car.Available {
		return utils.NewError(utils.KindCarUnavailable, "Car is not available")
	}
	return nil
}
