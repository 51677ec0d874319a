// Package catalog manages the rentable cars.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	carRepo "swatrental/database/repository/car"
	"swatrental/models"
	"swatrental/services/policy"
	"swatrental/utils"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const carCacheTTL = 5 * time.Minute

type CatalogService interface {
	ListCars(ctx context.Context, filter models.CarFilter) ([]models.Car, error)
	GetCar(ctx context.Context, id string) (*models.Car, error)
	CreateCar(ctx context.Context, actor models.Actor, car models.Car) (*models.Car, error)
	UpdateCar(ctx context.Context, actor models.Actor, id string, update models.CarUpdate) (*models.Car, error)
	DeleteCar(ctx context.Context, actor models.Actor, id string) error
}

// DefaultCatalogService is the production implementation.
type DefaultCatalogService struct {
	Repo carRepo.CarRepository
	// Cache holds single-car lookups; nil disables caching.
	Cache    *redis.Client
	Logger   *zap.Logger
	validate *validator.Validate
}

func NewCatalogService(repo carRepo.CarRepository, cache *redis.Client, logger *zap.Logger) *DefaultCatalogService {
	return &DefaultCatalogService{
		Repo:     repo,
		Cache:    cache,
		Logger:   logger,
		validate: validator.New(),
	}
}

func (s *DefaultCatalogService) ListCars(ctx context.Context, filter models.CarFilter) ([]models.Car, error) {
	if filter.MinPrice > 0 && filter.MaxPrice > 0 && filter.MinPrice > filter.MaxPrice {
		return nil, utils.Validation("minPrice must not exceed maxPrice")
	}
	cars, err := s.Repo.List(ctx, filter)
	if err != nil {
		return nil, utils.Internal("failed to list cars", err)
	}
	return cars, nil
}

func (s *DefaultCatalogService) GetCar(ctx context.Context, id string) (*models.Car, error) {
	if car := s.cached(ctx, id); car != nil {
		return car, nil
	}
	car, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.Internal("failed to fetch car", err)
	}
	if car == nil {
		return nil, utils.NotFound("Car")
	}
	s.remember(ctx, car)
	return car, nil
}

func (s *DefaultCatalogService) CreateCar(ctx context.Context, actor models.Actor, car models.Car) (*models.Car, error) {
	if err := policy.Authorize(actor, policy.CarCreate, policy.Resource{}); err != nil {
		return nil, err
	}
	if err := s.validateStruct(car); err != nil {
		return nil, err
	}

	now := time.Now()
	car.ID = uuid.New().String()
	car.CreatedAt = now
	car.UpdatedAt = now
	if car.Images == nil {
		car.Images = []string{}
	}
	if car.Features == nil {
		car.Features = []string{}
	}
	if err := s.Repo.Create(ctx, &car); err != nil {
		return nil, utils.Internal("failed to create car", err)
	}
	s.Logger.Info("car created", zap.String("carID", car.ID), zap.String("actorID", actor.ID))
	return &car, nil
}

func (s *DefaultCatalogService) UpdateCar(ctx context.Context, actor models.Actor, id string, update models.CarUpdate) (*models.Car, error) {
	if err := policy.Authorize(actor, policy.CarUpdate, policy.Resource{}); err != nil {
		return nil, err
	}
	car, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.Internal("failed to fetch car", err)
	}
	if car == nil {
		return nil, utils.NotFound("Car")
	}

	if err := s.validateStruct(update); err != nil {
		return nil, err
	}
	applyUpdate(car, update)
	if err := s.validateStruct(*car); err != nil {
		return nil, err
	}
	car.UpdatedAt = time.Now()

	if err := s.Repo.Update(ctx, car); err != nil {
		if errors.Is(err, carRepo.ErrNotFound) {
			return nil, utils.NotFound("Car")
		}
		return nil, utils.Internal("failed to update car", err)
	}
	s.forget(ctx, id)
	return car, nil
}

func (s *DefaultCatalogService) DeleteCar(ctx context.Context, actor models.Actor, id string) error {
	if err := policy.Authorize(actor, policy.CarDelete, policy.Resource{}); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, carRepo.ErrNotFound) {
			return utils.NotFound("Car")
		}
		return utils.Internal("failed to delete car", err)
	}
	s.forget(ctx, id)
	s.Logger.Info("car deleted", zap.String("carID", id), zap.String("actorID", actor.ID))
	return nil
}

func applyUpdate(car *models.Car, u models.CarUpdate) {
	if u.Name != nil {
		car.Name = *u.Name
	}
	if u.Brand != nil {
		car.Brand = *u.Brand
	}
	if u.Model != nil {
		car.Model = *u.Model
	}
	if u.Year != nil {
		car.Year = *u.Year
	}
	if u.Category != nil {
		car.Category = *u.Category
	}
	if u.Transmission != nil {
		car.Transmission = *u.Transmission
	}
	if u.FuelType != nil {
		car.FuelType = *u.FuelType
	}
	if u.Seats != nil {
		car.Seats = *u.Seats
	}
	if u.PricePerDay != nil {
		car.PricePerDay = *u.PricePerDay
	}
	if len(u.NewImages) > 0 {
		car.Images = append(car.Images, u.NewImages...)
	}
	if u.Features != nil {
		car.Features = *u.Features
	}
	if u.Available != nil {
		car.Available = *u.Available
	}
	if u.Description != nil {
		car.Description = *u.Description
	}
}

func (s *DefaultCatalogService) validateStruct(v interface{}) error {
	if s.validate == nil {
		s.validate = validator.New()
	}
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field()+" failed "+fe.Tag())
		}
		return utils.WrapError(utils.KindValidation, "invalid car: "+strings.Join(fields, ", "), err)
	}
	return utils.WrapError(utils.KindValidation, "invalid car", err)
}

// --- cache helpers ---

func cacheKey(id string) string { return "car:" + id }

func (s *DefaultCatalogService) cached(ctx context.Context, id string) *models.Car {
	if s.Cache == nil {
		return nil
	}
	raw, err := s.Cache.Get(ctx, cacheKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.Logger.Warn("car cache read failed", zap.Error(err))
		}
		return nil
	}
	var car models.Car
	if err := json.Unmarshal(raw, &car); err != nil {
		return nil
	}
	return &car
}

func (s *DefaultCatalogService) remember(ctx context.Context, car *models.Car) {
	if s.Cache == nil {
		return
	}
	raw, err := json.Marshal(car)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, cacheKey(car.ID), raw, carCacheTTL).Err(); err != nil {
		s.Logger.Warn("car cache write failed", zap.Error(err))
	}
}

func (s *DefaultCatalogService) forget(ctx context.Context, id string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, cacheKey(id)).Err(); err != nil {
		s.Logger.Warn("car cache invalidation failed", zap.Error(err))
	}
}
