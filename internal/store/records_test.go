package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutricoach/backend/internal/models"
	"github.com/nutricoach/backend/internal/store"
	"github.com/nutricoach/backend/internal/testhelpers"
)

func TestProfileUpsert(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	records := store.NewRecordStore(db)
	ctx := context.Background()

	t.Run("insert then load", func(t *testing.T) {
		err := records.UpsertProfile(ctx, &models.UserProfile{
			Email:       "alice@example.com",
			Name:        "Alice",
			Age:         30,
			CalorieGoal: 2000,
		})
		require.NoError(t, err)

		profile, err := records.LoadProfile(ctx, "alice@example.com")
		require.NoError(t, err)
		require.NotNil(t, profile)
		assert.Equal(t, "Alice", profile.Name)
		assert.Equal(t, 2000, profile.CalorieGoal)
	})

	t.Run("second upsert replaces, not duplicates", func(t *testing.T) {
		err := records.UpsertProfile(ctx, &models.UserProfile{
			Email: "alice@example.com",
			Name:  "Alice B",
			Age:   31,
		})
		require.NoError(t, err)

		var count int64
		require.NoError(t, db.Model(&models.UserProfile{}).Where("email = ?", "alice@example.com").Count(&count).Error)
		assert.Equal(t, int64(1), count)

		profile, err := records.LoadProfile(ctx, "alice@example.com")
		require.NoError(t, err)
		require.NotNil(t, profile)
		assert.Equal(t, "Alice B", profile.Name)
		assert.Equal(t, 31, profile.Age)
	})

	t.Run("unknown email is not an error", func(t *testing.T) {
		profile, err := records.LoadProfile(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, profile)
	})

	t.Run("delete reports whether a row existed", func(t *testing.T) {
		deleted, err := records.DeleteProfile(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = records.DeleteProfile(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func TestDocumentUpserts(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	records := store.NewRecordStore(db)
	ctx := context.Background()
	email := "bob@example.com"

	t.Run("meal plan", func(t *testing.T) {
		require.NoError(t, records.UpsertMealPlan(ctx, email, `{"day1":"eggs"}`))
		require.NoError(t, records.UpsertMealPlan(ctx, email, `{"day1":"toast"}`))

		payload, err := records.LoadMealPlan(ctx, email)
		require.NoError(t, err)
		assert.Equal(t, `{"day1":"toast"}`, payload)

		var count int64
		require.NoError(t, db.Model(&models.MealPlan{}).Where("email = ?", email).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("grocery list", func(t *testing.T) {
		require.NoError(t, records.UpsertGroceryList(ctx, email, "milk, eggs"))

		items, err := records.LoadGroceryList(ctx, email)
		require.NoError(t, err)
		assert.Equal(t, "milk, eggs", items)
	})

	t.Run("chat history", func(t *testing.T) {
		require.NoError(t, records.UpsertChatHistory(ctx, email, `[{"message":"hi","response":"hello"}]`))

		history, err := records.LoadChatHistory(ctx, email)
		require.NoError(t, err)
		assert.Contains(t, history, "hello")
	})

	t.Run("recommendation", func(t *testing.T) {
		require.NoError(t, records.UpsertRecommendation(ctx, email, "walk more"))

		text, err := records.LoadRecommendation(ctx, email)
		require.NoError(t, err)
		assert.Equal(t, "walk more", text)
	})

	t.Run("missing documents load as empty", func(t *testing.T) {
		payload, err := records.LoadMealPlan(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Empty(t, payload)

		text, err := records.LoadRecommendation(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Empty(t, text)
	})
}
