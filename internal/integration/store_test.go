package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutricoach/backend/internal/models"
	"github.com/nutricoach/backend/internal/store"
	"github.com/nutricoach/backend/internal/testhelpers"
)

// Exercises the store against a real PostgreSQL instance. The unit tests
// run on SQLite; this covers the ON CONFLICT upsert path on the engine
// production uses.
func TestRecordStorePostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}

	db := testhelpers.SetupPostgres(t)
	records := store.NewRecordStore(db)
	ctx := context.Background()
	email := "iris@example.com"

	t.Run("profile upsert is atomic per email", func(t *testing.T) {
		require.NoError(t, records.UpsertProfile(ctx, &models.UserProfile{Email: email, Name: "Iris"}))
		require.NoError(t, records.UpsertProfile(ctx, &models.UserProfile{Email: email, Name: "Iris B", Age: 40}))

		var count int64
		require.NoError(t, db.Model(&models.UserProfile{}).Where("email = ?", email).Count(&count).Error)
		assert.Equal(t, int64(1), count)

		profile, err := records.LoadProfile(ctx, email)
		require.NoError(t, err)
		require.NotNil(t, profile)
		assert.Equal(t, "Iris B", profile.Name)
	})

	t.Run("concurrent upserts settle on one row", func(t *testing.T) {
		done := make(chan error, 10)
		for i := 0; i < 10; i++ {
			go func() {
				done <- records.UpsertGroceryList(ctx, email, "milk 1 litre")
			}()
		}
		for i := 0; i < 10; i++ {
			require.NoError(t, <-done)
		}

		var count int64
		require.NoError(t, db.Model(&models.GroceryList{}).Where("email = ?", email).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("daily totals aggregate on postgres", func(t *testing.T) {
		_, err := records.LogCalorie(ctx, email, 100, "oatmeal", "2024-01-01")
		require.NoError(t, err)
		_, err = records.LogCalorie(ctx, email, 50, "banana", "2024-01-01")
		require.NoError(t, err)

		total, err := records.TotalCaloriesByDate(ctx, email, "2024-01-01")
		require.NoError(t, err)
		assert.Equal(t, int64(150), total)
	})
}
