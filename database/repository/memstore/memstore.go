// Package memstore keeps every repository in process memory. It backs
// STORAGE=memory and the service tests.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	bookingRepo "swatrental/database/repository/booking"
	carRepo "swatrental/database/repository/car"
	userRepo "swatrental/database/repository/user"
	"swatrental/models"
)

// Store holds cars, bookings and users behind one lock.
type Store struct {
	mu       sync.RWMutex
	cars     map[string]models.Car
	bookings map[string]models.Booking
	users    map[string]models.User
}

func New() *Store {
	return &Store{
		cars:     map[string]models.Car{},
		bookings: map[string]models.Booking{},
		users:    map[string]models.User{},
	}
}

func (s *Store) Bookings() bookingRepo.BookingRepository { return (*bookings)(s) }
func (s *Store) Cars() carRepo.CarRepository             { return (*cars)(s) }
func (s *Store) Users() userRepo.UserRepository          { return (*users)(s) }

type bookings Store

func (r *bookings) Create(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[b.ID] = *b
	return nil
}

func (r *bookings) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *bookings) GetByReference(_ context.Context, reference string) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if reference == "" {
		return nil, nil
	}
	for _, b := range r.bookings {
		if b.PaymentReference == reference {
			return &b, nil
		}
	}
	return nil, nil
}

func (r *bookings) List(_ context.Context, f models.BookingFilter) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Booking{}
	for _, b := range r.bookings {
		if f.UserID != "" && b.UserID != f.UserID {
			continue
		}
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *bookings) Transition(_ context.Context, from models.Phase, updated *models.Booking) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.bookings[updated.ID]
	if !ok || cur.Status != from.Status() || cur.PaymentStatus != from.PaymentStatus() {
		return nil, bookingRepo.ErrStaleState
	}
	if ref := updated.PaymentReference; ref != "" {
		for id, other := range r.bookings {
			if id != updated.ID && other.PaymentReference == ref {
				return nil, bookingRepo.ErrDuplicateReference
			}
		}
	}
	r.bookings[updated.ID] = *updated
	stored := *updated
	return &stored, nil
}

func (r *bookings) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[id]; !ok {
		return bookingRepo.ErrNotFound
	}
	delete(r.bookings, id)
	return nil
}

type cars Store

func (r *cars) Create(_ context.Context, c *models.Car) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cars[c.ID] = cloneCar(*c)
	return nil
}

func (r *cars) GetByID(_ context.Context, id string) (*models.Car, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.cars[id]
	if !ok {
		return nil, nil
	}
	c = cloneCar(c)
	return &c, nil
}

func (r *cars) List(_ context.Context, f models.CarFilter) ([]models.Car, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Car{}
	for _, c := range r.cars {
		if carRepo.Matches(f, c) {
			out = append(out, cloneCar(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *cars) Update(_ context.Context, c *models.Car) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cars[c.ID]; !ok {
		return carRepo.ErrNotFound
	}
	r.cars[c.ID] = cloneCar(*c)
	return nil
}

func (r *cars) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cars[id]; !ok {
		return carRepo.ErrNotFound
	}
	delete(r.cars, id)
	return nil
}

func cloneCar(c models.Car) models.Car {
	c.Images = append([]string(nil), c.Images...)
	c.Features = append([]string(nil), c.Features...)
	return c
}

type users Store

func (r *users) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return userRepo.ErrDuplicateEmail
		}
	}
	r.users[u.ID] = *u
	return nil
}

func (r *users) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *users) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *users) GetAll(_ context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		u.PasswordHash = ""
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
