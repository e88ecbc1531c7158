package repositories

import (
	"context"
	"errors"
	"time"

	"bakery-cart-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type postgresCartStorage struct {
	db *gorm.DB
}

func NewPostgresCartStorage(db *gorm.DB) CartStorage {
	return &postgresCartStorage{db: db}
}

func (r *postgresCartStorage) Get(ctx context.Context, key string) (string, bool, error) {
	var record models.CartRecord
	err := r.db.WithContext(ctx).Where("cart_key = ?", key).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return record.Payload, true, nil
}

func (r *postgresCartStorage) Set(ctx context.Context, key, value string) error {
	record := models.CartRecord{Key: key, Payload: value, UpdatedAt: time.Now()}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cart_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&record).Error
}

// AutoMigrate creates the cart_records table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.CartRecord{})
}
