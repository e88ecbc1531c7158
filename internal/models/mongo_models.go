package models

import "time"

// CartDocument model - MongoDB
type CartDocument struct {
	Key       string    `bson:"_id" json:"key"`
	Payload   string    `bson:"payload" json:"payload"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
