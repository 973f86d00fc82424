package models

import (
	"time"
)

// MealPlan stores the serialized output of plan generation for one user.
// Payload is the normalizer result: a JSON document when parsing succeeded,
// otherwise the best-effort cleaned text.
type MealPlan struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Payload   string    `gorm:"type:text;not null" json:"payload"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GroceryList stores the comma-separated shopping list for one user.
// The stored value is never rewritten at read time; display cleanup is
// applied to the returned copy only.
type GroceryList struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Items     string    `gorm:"type:text;not null" json:"items"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChatHistory stores the full conversation for one user as a serialized
// blob, overwritten after every turn.
type ChatHistory struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	History   string    `gorm:"type:text;not null" json:"history"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Recommendation stores free-text lifestyle and diet advice for one user.
type Recommendation struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChatExchange is one (message, response) pair inside a ChatHistory blob.
type ChatExchange struct {
	Message  string `json:"message"`
	Response string `json:"response"`
}
