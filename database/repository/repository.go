package repository

import (
	bookingRepo "swatrental/database/repository/booking"
	carRepo "swatrental/database/repository/car"
	userRepo "swatrental/database/repository/user"
	"swatrental/database/repository/memstore"

	"go.mongodb.org/mongo-driver/mongo"
)

// Re-export the BookingRepository interface and constructor.
type BookingRepository = bookingRepo.BookingRepository

var NewMongoBookingRepo = bookingRepo.NewMongoBookingRepo

// Re-export the CarRepository interface and constructor.
type CarRepository = carRepo.CarRepository

var NewMongoCarRepo = carRepo.NewMongoCarRepo

// Re-export the UserRepository interface and constructor.
type UserRepository = userRepo.UserRepository

var NewMongoUserRepo = userRepo.NewMongoUserRepo

// Set groups the repositories the services are built from.
type Set struct {
	Bookings BookingRepository
	Cars     CarRepository
	Users    UserRepository
}

// NewMongoSet builds every repository on db and ensures their indexes.
func NewMongoSet(db *mongo.Database) Set {
	return Set{
		Bookings: NewMongoBookingRepo(db),
		Cars:     NewMongoCarRepo(db),
		Users:    NewMongoUserRepo(db),
	}
}

// NewMemorySet builds process-local repositories sharing one store.
func NewMemorySet() Set {
	store := memstore.New()
	return Set{
		Bookings: store.Bookings(),
		Cars:     store.Cars(),
		Users:    store.Users(),
	}
}
