package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nutricoach/backend/internal/models"
)

// DateLayout is the day-granularity format used for calorie entry dates.
const DateLayout = "2006-01-02"

// DailyTotal is one day's summed calorie intake.
type DailyTotal struct {
	Date          string `json:"date"`
	TotalCalories int64  `json:"total_calories"`
}

// LogCalorie appends a calorie entry and returns the user's running
// all-time total at the moment of insertion. The total is not scoped to
// the entry's date.
func (s *RecordStore) LogCalorie(ctx context.Context, email string, calorie int, foodItem, date string) (int64, error) {
	entry := models.CalorieEntry{
		ID:       uuid.New(),
		Email:    email,
		Calorie:  calorie,
		FoodItem: foodItem,
		Date:     date,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return 0, storageErr("log calorie", err)
	}
	return s.TotalCalories(ctx, email)
}

// TotalCalories returns the sum of all calorie entries for the user, 0
// when none exist.
func (s *RecordStore) TotalCalories(ctx context.Context, email string) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).
		Model(&models.CalorieEntry{}).
		Where("email = ?", email).
		Select("COALESCE(SUM(calorie), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, storageErr("total calories", err)
	}
	return total, nil
}

// TotalCaloriesByDate returns the calorie sum scoped to exactly that date
// string, 0 when no entries match.
func (s *RecordStore) TotalCaloriesByDate(ctx context.Context, email, date string) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).
		Model(&models.CalorieEntry{}).
		Where("email = ? AND date = ?", email, date).
		Select("COALESCE(SUM(calorie), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, storageErr("total calories by date", err)
	}
	return total, nil
}

// CaloriesByDate returns every individual entry for the user on the date.
func (s *RecordStore) CaloriesByDate(ctx context.Context, email, date string) ([]models.CalorieEntry, error) {
	var entries []models.CalorieEntry
	err := s.db.WithContext(ctx).
		Where("email = ? AND date = ?", email, date).
		Order("created_at").
		Find(&entries).Error
	if err != nil {
		return nil, storageErr("calories by date", err)
	}
	return entries, nil
}

// DailyTotals groups entries within the last n days by date and sums
// calories per group, sorted by date descending. Days with no entries are
// omitted, not zero-filled.
func (s *RecordStore) DailyTotals(ctx context.Context, email string, n int) ([]DailyTotal, error) {
	today := time.Now()
	since := today.AddDate(0, 0, -n)

	var totals []DailyTotal
	err := s.db.WithContext(ctx).
		Model(&models.CalorieEntry{}).
		Where("email = ? AND date >= ? AND date <= ?", email, since.Format(DateLayout), today.Format(DateLayout)).
		Select("date, SUM(calorie) AS total_calories").
		Group("date").
		Order("date DESC").
		Scan(&totals).Error
	if err != nil {
		return nil, storageErr("daily totals", err)
	}
	return totals, nil
}
