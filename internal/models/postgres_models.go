package models

import "time"

// CartRecord model - PostgreSQL. One row per storage key, payload is the
// encoded cart exactly as the other backends hold it.
type CartRecord struct {
	Key       string    `gorm:"column:cart_key;primaryKey;size:191" json:"key"`
	Payload   string    `gorm:"type:text;not null" json:"payload"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CartRecord) TableName() string {
	return "cart_records"
}
