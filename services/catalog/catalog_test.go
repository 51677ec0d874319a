package catalog

import (
	"context"
	"testing"

	"swatrental/database/repository/memstore"
	"swatrental/models"
	"swatrental/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	admin    = models.Actor{ID: "a1", Role: models.RoleAdmin}
	customer = models.Actor{ID: "u1", Role: models.RoleUser}
)

func landCruiser() models.Car {
	return models.Car{
		Name:         "Toyota Land Cruiser V8",
		Brand:        "Toyota",
		Model:        "Land Cruiser",
		Year:         2022,
		Category:     models.CategorySUV,
		Transmission: "Automatic",
		FuelType:     "Petrol",
		Seats:        7,
		PricePerDay:  15000,
		Features:     []string{"4WD", "Leather Seats"},
		Available:    true,
		Description:  "Luxury SUV for mountain roads",
	}
}

func newTestService() *DefaultCatalogService {
	return NewCatalogService(memstore.New().Cars(), nil, zap.NewNop())
}

func TestCreateCarAdminOnly(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.CreateCar(ctx, customer, landCruiser())
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))

	car, err := svc.CreateCar(ctx, admin, landCruiser())
	require.NoError(t, err)
	assert.NotEmpty(t, car.ID)

	got, err := svc.GetCar(ctx, car.ID)
	require.NoError(t, err)
	assert.Equal(t, "Toyota Land Cruiser V8", got.Name)
}

func TestCreateCarValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	tests := map[string]func(*models.Car){
		"zero price":        func(c *models.Car) { c.PricePerDay = 0 },
		"too many seats":    func(c *models.Car) { c.Seats = 20 },
		"unknown category":  func(c *models.Car) { c.Category = "Truck" },
		"bad fuel":          func(c *models.Car) { c.FuelType = "Steam" },
		"no description":    func(c *models.Car) { c.Description = "" },
		"duplicate feature": func(c *models.Car) { c.Features = []string{"AC", "AC"} },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			car := landCruiser()
			mutate(&car)
			_, err := svc.CreateCar(ctx, admin, car)
			assert.Equal(t, utils.KindValidation, utils.KindOf(err))
		})
	}
}

func TestUpdateCarAppendsImages(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	base := landCruiser()
	base.Images = []string{"a.jpg"}
	car, err := svc.CreateCar(ctx, admin, base)
	require.NoError(t, err)

	price := 16000.0
	unavailable := false
	updated, err := svc.UpdateCar(ctx, admin, car.ID, models.CarUpdate{
		PricePerDay: &price,
		NewImages:   []string{"b.jpg"},
		Available:   &unavailable,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, updated.Images)
	assert.Equal(t, 16000.0, updated.PricePerDay)
	assert.False(t, updated.Available)

	bad := -1.0
	_, err = svc.UpdateCar(ctx, admin, car.ID, models.CarUpdate{PricePerDay: &bad})
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))

	_, err = svc.UpdateCar(ctx, admin, "missing", models.CarUpdate{PricePerDay: &price})
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
}

func TestListCarsFilters(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	_, err := svc.CreateCar(ctx, admin, landCruiser())
	require.NoError(t, err)
	sedan := landCruiser()
	sedan.Name, sedan.Category, sedan.PricePerDay, sedan.Seats = "Corolla", models.CategorySedan, 5000, 5
	_, err = svc.CreateCar(ctx, admin, sedan)
	require.NoError(t, err)

	cars, err := svc.ListCars(ctx, models.CarFilter{MaxPrice: 6000})
	require.NoError(t, err)
	require.Len(t, cars, 1)
	assert.Equal(t, "Corolla", cars[0].Name)

	_, err = svc.ListCars(ctx, models.CarFilter{MinPrice: 9000, MaxPrice: 100})
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))
}

func TestDeleteCar(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	car, err := svc.CreateCar(ctx, admin, landCruiser())
	require.NoError(t, err)

	assert.Equal(t, utils.KindForbidden, utils.KindOf(svc.DeleteCar(ctx, customer, car.ID)))
	require.NoError(t, svc.DeleteCar(ctx, admin, car.ID))
	assert.Equal(t, utils.KindNotFound, utils.KindOf(svc.DeleteCar(ctx, admin, car.ID)))

	_, err = svc.GetCar(ctx, car.ID)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
}
