package models

import (
	"time"

	"github.com/google/uuid"
)

// CalorieEntry is one food-item logging event. Entries are append-only and
// many per user per day; aggregation happens at query time.
type CalorieEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email     string    `gorm:"size:255;not null;index" json:"email"`
	Calorie   int       `gorm:"not null" json:"calorie"`
	FoodItem  string    `gorm:"size:255;not null" json:"food_item"`
	Date      string    `gorm:"size:10;not null;index" json:"date"`
	CreatedAt time.Time `json:"created_at"`
}
