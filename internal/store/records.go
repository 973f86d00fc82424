package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nutricoach/backend/internal/models"
)

// emailConflict is the upsert target shared by all single-document tables.
var emailConflict = clause.OnConflict{
	Columns:   []clause.Column{{Name: "email"}},
	UpdateAll: true,
}

// UpsertProfile inserts the profile or replaces the existing row for the
// same email in a single statement. After the call exactly one profile
// exists for the email, holding the given values.
func (s *RecordStore) UpsertProfile(ctx context.Context, profile *models.UserProfile) error {
	if err := s.db.WithContext(ctx).Clauses(emailConflict).Create(profile).Error; err != nil {
		return storageErr("upsert profile", err)
	}
	return nil
}

// LoadProfile returns the stored profile, or nil when none exists.
func (s *RecordStore) LoadProfile(ctx context.Context, email string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("load profile", err)
	}
	return &profile, nil
}

// DeleteProfile removes all profile rows for the email. It does not cascade
// to meal, grocery, chat, recommendation or calorie data; callers that need
// full erasure must delete each category separately.
func (s *RecordStore) DeleteProfile(ctx context.Context, email string) (bool, error) {
	res := s.db.WithContext(ctx).Where("email = ?", email).Delete(&models.UserProfile{})
	if res.Error != nil {
		return false, storageErr("delete profile", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// UpsertMealPlan stores the serialized plan payload for the email.
func (s *RecordStore) UpsertMealPlan(ctx context.Context, email, payload string) error {
	plan := models.MealPlan{Email: email, Payload: payload}
	if err := s.db.WithContext(ctx).Clauses(emailConflict).Create(&plan).Error; err != nil {
		return storageErr("upsert meal plan", err)
	}
	return nil
}

// LoadMealPlan returns the stored plan payload, or "" when none exists.
func (s *RecordStore) LoadMealPlan(ctx context.Context, email string) (string, error) {
	var plan models.MealPlan
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", storageErr("load meal plan", err)
	}
	return plan.Payload, nil
}

// UpsertGroceryList stores the raw grocery list string for the email.
func (s *RecordStore) UpsertGroceryList(ctx context.Context, email, items string) error {
	list := models.GroceryList{Email: email, Items: items}
	if err := s.db.WithContext(ctx).Clauses(emailConflict).Create(&list).Error; err != nil {
		return storageErr("upsert grocery list", err)
	}
	return nil
}

// LoadGroceryList returns the stored grocery list exactly as written, or ""
// when none exists. Display cleanup is the caller's concern; the stored
// value is never rewritten by a read.
func (s *RecordStore) LoadGroceryList(ctx context.Context, email string) (string, error) {
	var list models.GroceryList
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&list).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", storageErr("load grocery list", err)
	}
	return list.Items, nil
}

// UpsertChatHistory overwrites the serialized history blob for the email.
func (s *RecordStore) UpsertChatHistory(ctx context.Context, email, history string) error {
	chat := models.ChatHistory{Email: email, History: history}
	if err := s.db.WithContext(ctx).Clauses(emailConflict).Create(&chat).Error; err != nil {
		return storageErr("upsert chat history", err)
	}
	return nil
}

// LoadChatHistory returns the stored history blob, or "" when none exists.
func (s *RecordStore) LoadChatHistory(ctx context.Context, email string) (string, error) {
	var chat models.ChatHistory
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&chat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", storageErr("load chat history", err)
	}
	return chat.History, nil
}

// UpsertRecommendation stores the recommendation text for the email.
func (s *RecordStore) UpsertRecommendation(ctx context.Context, email, text string) error {
	rec := models.Recommendation{Email: email, Text: text}
	if err := s.db.WithContext(ctx).Clauses(emailConflict).Create(&rec).Error; err != nil {
		return storageErr("upsert recommendation", err)
	}
	return nil
}

// LoadRecommendation returns the stored recommendation, or "" when none
// exists.
func (s *RecordStore) LoadRecommendation(ctx context.Context, email string) (string, error) {
	var rec models.Recommendation
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", storageErr("load recommendation", err)
	}
	return rec.Text, nil
}
