package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yashrajoria/shop-backend/apperrors"
	"github.com/yashrajoria/shop-backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrInsufficientPoints is returned when a user cannot afford a points spend.
var ErrInsufficientPoints = errors.New("insufficient loyalty points")

// UserRepository stores user profiles and their loyalty points.
type UserRepository interface {
	FindByID(ctx context.Context, userID string) (*models.UserProfile, error)
	Upsert(ctx context.Context, profile *models.UserProfile) error
	// AddPoints adjusts the balance by delta and returns the new balance. A
	// negative delta that would overdraw fails with ErrInsufficientPoints.
	AddPoints(ctx context.Context, userID string, delta int) (int, error)
}

type MongoUserRepository struct {
	users *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{users: db.Collection("users")}
}

func (r *MongoUserRepository) FindByID(ctx context.Context, userID string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := r.users.FindOne(ctx, bson.M{"_id": userID}).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.Wrap(apperrors.ErrNotFound, fmt.Errorf("user %s", userID))
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &profile, nil
}

// Upsert writes every profile field except the points balance, which only
// AddPoints changes.
func (r *MongoUserRepository) Upsert(ctx context.Context, profile *models.UserProfile) error {
	profile.UpdatedAt = time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"first_name": profile.FirstName,
			"last_name":  profile.LastName,
			"email":      profile.Email,
			"street":     profile.Street,
			"city":       profile.City,
			"zip_code":   profile.ZipCode,
			"updated_at": profile.UpdatedAt,
		},
		"$setOnInsert": bson.M{"points": 0},
	}
	_, err := r.users.UpdateByID(ctx, profile.UserID, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

func (r *MongoUserRepository) AddPoints(ctx context.Context, userID string, delta int) (int, error) {
	filter := bson.M{"_id": userID}
	if delta < 0 {
		filter["points"] = bson.M{"$gte": -delta}
	}
	update := bson.M{
		"$inc": bson.M{"points": delta},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}

	var profile models.UserProfile
	err := r.users.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		if delta < 0 {
			return 0, ErrInsufficientPoints
		}
		return 0, apperrors.Wrap(apperrors.ErrNotFound, fmt.Errorf("user %s", userID))
	}
	if err != nil {
		return 0, fmt.Errorf("update points: %w", err)
	}
	return profile.Points, nil
}
