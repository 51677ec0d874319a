package carRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"swatrental/models"
	"swatrental/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoCarRepo implements CarRepository using MongoDB.
type MongoCarRepo struct {
	coll *mongo.Collection
}

// NewMongoCarRepo creates a new instance of CarRepository using MongoDB.
func NewMongoCarRepo(db *mongo.Database) CarRepository {
	repo := &MongoCarRepo{coll: db.Collection("cars")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("car indexes not created", zap.Error(err))
	}
	return repo
}

func (r *MongoCarRepo) Create(ctx context.Context, car *models.Car) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, car); err != nil {
		return fmt.Errorf("failed to create car: %w", err)
	}
	return nil
}

func (r *MongoCarRepo) GetByID(ctx context.Context, id string) (*models.Car, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var car models.Car
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&car); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch car with id %s: %w", id, err)
	}
	return &car, nil
}

func (r *MongoCarRepo) List(ctx context.Context, filter models.CarFilter) ([]models.Car, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, ListQuery(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve cars: %w", err)
	}
	defer cursor.Close(ctx)

	cars := []models.Car{}
	if err := cursor.All(ctx, &cars); err != nil {
		return nil, fmt.Errorf("failed to decode cars: %w", err)
	}
	return cars, nil
}

func (r *MongoCarRepo) Update(ctx context.Context, car *models.Car) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": car.ID}, bson.M{"$set": car})
	if err != nil {
		return fmt.Errorf("failed to update car with id %s: %w", car.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoCarRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete car with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
