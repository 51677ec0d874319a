// Command seed resets the car catalog to a set of sample vehicles and
// bootstraps the configured admin account.
package main

import (
	"context"
	"log"
	"time"

	"swatrental/config"
	"swatrental/database"
	"swatrental/database/repository"
	"swatrental/models"
	"swatrental/services/catalog"
	"swatrental/services/user"
	"swatrental/utils"

	"go.mongodb.org/mongo-driver/bson"
)

var sampleCars = []models.Car{
	{
		Name: "Toyota Land Cruiser V8", Brand: "Toyota", Model: "Land Cruiser", Year: 2021,
		Category: models.CategorySUV, Transmission: "Automatic", FuelType: "Diesel", Seats: 7,
		PricePerDay: 15000, Features: []string{"4x4", "Air Conditioning", "Leather Seats"},
		Description: "Full-size 4x4 for Kalam, Malam Jabba and the upper valley roads.",
	},
	{
		Name: "Toyota Prado TX", Brand: "Toyota", Model: "Prado", Year: 2019,
		Category: models.Category4x4, Transmission: "Automatic", FuelType: "Petrol", Seats: 7,
		PricePerDay: 12000, Features: []string{"4x4", "Air Conditioning"},
		Description: "Comfortable mountain SUV for family trips.",
	},
	{
		Name: "Honda Civic Oriel", Brand: "Honda", Model: "Civic", Year: 2022,
		Category: models.CategorySedan, Transmission: "Automatic", FuelType: "Petrol", Seats: 5,
		PricePerDay: 8000, Features: []string{"Air Conditioning", "Cruise Control"},
		Description: "City sedan for Mingora and airport transfers.",
	},
	{
		Name: "Suzuki Cultus VXL", Brand: "Suzuki", Model: "Cultus", Year: 2020,
		Category: models.CategoryHatchback, Transmission: "Manual", FuelType: "Petrol", Seats: 5,
		PricePerDay: 4500, Features: []string{"Air Conditioning"},
		Description: "Economical hatchback for short trips.",
	},
	{
		Name: "Toyota Hiace Grand Cabin", Brand: "Toyota", Model: "Hiace", Year: 2018,
		Category: models.CategoryVan, Transmission: "Manual", FuelType: "Diesel", Seats: 14,
		PricePerDay: 10000, Features: []string{"Air Conditioning", "Roof Rack"},
		Description: "Group travel van for tours across Swat.",
	},
}

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	if err := database.InitDB(); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer database.Close(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.DB()
	if _, err := db.Collection("cars").DeleteMany(ctx, bson.M{}); err != nil {
		log.Fatalf("Failed to clear cars collection: %v", err)
	}

	repos := repository.NewMongoSet(db)

	users := &user.DefaultUserService{Repo: repos.Users, Logger: logger}
	email, password := config.AppConfig.AdminEmail, config.AppConfig.AdminPassword
	if email == "" || password == "" {
		email, password = "admin@swatrental.pk", "admin123"
	}
	if err := users.EnsureAdmin(ctx, email, password); err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}
	admin, err := repos.Users.GetByEmail(ctx, email)
	if err != nil || admin == nil {
		log.Fatalf("Failed to load admin %s: %v", email, err)
	}
	actor := models.Actor{ID: admin.ID, Role: admin.Role}

	cars := catalog.NewCatalogService(repos.Cars, nil, logger)
	for _, car := range sampleCars {
		car.Available = true
		created, err := cars.CreateCar(ctx, actor, car)
		if err != nil {
			log.Fatalf("Failed to insert %s: %v", car.Name, err)
		}
		log.Printf("Inserted %s (%s) at %.0f/day", created.Name, created.ID, created.PricePerDay)
	}

	log.Printf("Seeded %d cars; admin login %s", len(sampleCars), email)
}
