package carRepo

import (
	"context"
	"errors"

	"swatrental/models"
)

// ErrNotFound is returned when no car has the requested id.
var ErrNotFound = errors.New("car not found")

// CarRepository defines methods for catalog data access.
type CarRepository interface {
	// Create inserts a new car record.
	Create(ctx context.Context, car *models.Car) error
	// GetByID retrieves a car by its id. It returns nil, nil when none exists.
	GetByID(ctx context.Context, id string) (*models.Car, error)
	// List returns cars matching filter, newest first.
	List(ctx context.Context, filter models.CarFilter) ([]models.Car, error)
	// Update replaces an existing car record.
	Update(ctx context.Context, car *models.Car) error
	// Delete removes a car record by its id.
	Delete(ctx context.Context, id string) error
}
