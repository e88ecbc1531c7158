package repositories

import (
	"context"
	"errors"
	"time"

	"bakery-cart-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoCartStorage struct {
	collection *mongo.Collection
}

func NewMongoCartStorage(db *mongo.Database) CartStorage {
	return &mongoCartStorage{
		collection: db.Collection("carts"),
	}
}

func (r *mongoCartStorage) Get(ctx context.Context, key string) (string, bool, error) {
	var doc models.CartDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return doc.Payload, true, nil
}

func (r *mongoCartStorage) Set(ctx context.Context, key, value string) error {
	filter := bson.M{"_id": key}
	update := bson.M{"$set": bson.M{"payload": value, "updated_at": time.Now()}}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}
