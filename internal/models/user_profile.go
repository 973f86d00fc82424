package models

import (
	"time"
)

// UserProfile holds the static preferences used to personalize generation.
// Exactly one row exists per email; writes replace the row wholesale.
type UserProfile struct {
	ID                   uint      `gorm:"primarykey" json:"-"`
	Email                string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Name                 string    `gorm:"size:255;not null" json:"name"`
	Age                  int       `gorm:"not null" json:"age"`
	Gender               string    `gorm:"size:32" json:"gender"`
	Height               float64   `json:"height"`
	Weight               float64   `json:"weight"`
	ActivityLevel        string    `gorm:"size:32" json:"activity_level"`
	ExerciseHours        int       `json:"exercise_hours"`
	JobType              string    `gorm:"size:32" json:"job_type"`
	WorkType             string    `gorm:"size:32" json:"work_type"`
	WorkHours            int       `json:"work_hours"`
	CookingHours         int       `json:"cooking_hours"`
	ProficiencyInCooking string    `gorm:"size:32" json:"proficiency_in_cooking"`
	Goals                string    `gorm:"size:64" json:"goals"`
	DietaryRestrictions  string    `gorm:"size:255" json:"dietary_restrictions"`
	DietType             string    `gorm:"size:64" json:"diet_type"`
	Allergies            string    `gorm:"size:255" json:"allergies"`
	CuisinePreference    string    `gorm:"size:64" json:"cuisine_preference"`
	Budget               float64   `json:"budget"`
	GroceryFrequency     string    `gorm:"size:32" json:"grocery_frequency"`
	CalorieGoal          int       `json:"calorie_goal"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}
