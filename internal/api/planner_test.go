package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutricoach/backend/config"
	"github.com/nutricoach/backend/internal/models"
	"github.com/nutricoach/backend/internal/service"
	"github.com/nutricoach/backend/internal/store"
)

func testProfile() *models.UserProfile {
	return &models.UserProfile{
		Email:            testEmail,
		Name:             "Grace",
		Budget:           90,
		GroceryFrequency: "weekly",
		DietType:         "omnivore",
	}
}

func plannerRouter(t *testing.T, reply string, rendererURL string) (*gin.Engine, *store.RecordStore) {
	llm := &stubCompleter{reply: reply}
	var export *service.ExportService
	if rendererURL != "" {
		export = service.NewExportService(&config.Config{PDFRendererURL: rendererURL, UpstreamTimeout: 0})
	} else {
		export = service.NewExportService(&config.Config{PDFRendererURL: "http://localhost:1", UpstreamTimeout: 0})
	}

	return newTestRouter(t, func(v1 *gin.RouterGroup, records *store.RecordStore) {
		planner := service.NewPlannerService(records, llm)
		NewPlannerHandler(planner, export, records, testLimiter()).RegisterRoutes(v1)
	})
}

func TestMealPlanEndpoints(t *testing.T) {
	t.Run("generate without profile is 404", func(t *testing.T) {
		router, _ := plannerRouter(t, `{"day1": {"breakfast": "eggs"}}`, "")

		w := doJSON(t, router, http.MethodPost, "/api/v1/meal-plan/generate", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("generate then read back", func(t *testing.T) {
		router, records := plannerRouter(t, `{"day1": {"breakfast": "eggs"}}`, "")
		require.NoError(t, records.UpsertProfile(context.Background(), testProfile()))

		w := doJSON(t, router, http.MethodPost, "/api/v1/meal-plan/generate", nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, router, http.MethodGet, "/api/v1/meal-plan", nil)
		require.Equal(t, http.StatusOK, w.Code)

		response, ok := decodeBody(t, w)["response"].(map[string]interface{})
		require.True(t, ok)
		assert.Contains(t, response, "day1")
	})

	t.Run("read without a stored plan is 404", func(t *testing.T) {
		router, _ := plannerRouter(t, "", "")

		w := doJSON(t, router, http.MethodGet, "/api/v1/meal-plan", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGroceryListEndpoints(t *testing.T) {
	t.Run("generate requires a meal plan", func(t *testing.T) {
		router, records := plannerRouter(t, `"milk 1 litre"`, "")
		require.NoError(t, records.UpsertProfile(context.Background(), testProfile()))

		w := doJSON(t, router, http.MethodPost, "/api/v1/grocery-list/generate", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("generate then display", func(t *testing.T) {
		ctx := context.Background()
		router, records := plannerRouter(t, `"eggs 1 tray, milk 2 litre"`, "")
		require.NoError(t, records.UpsertProfile(ctx, testProfile()))
		require.NoError(t, records.UpsertMealPlan(ctx, testEmail, `{"day1":"eggs"}`))

		w := doJSON(t, router, http.MethodPost, "/api/v1/grocery-list/generate", nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, router, http.MethodGet, "/api/v1/grocery-list", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "eggs 1 tray,  milk 2 litre", decodeBody(t, w)["response"])
	})

	t.Run("export renders a pdf", func(t *testing.T) {
		renderer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			w.Header().Set("Content-Type", "application/pdf")
			w.Write([]byte("%PDF-1.4 fake"))
		}))
		defer renderer.Close()

		ctx := context.Background()
		router, records := plannerRouter(t, "", renderer.URL)
		require.NoError(t, records.UpsertGroceryList(ctx, testEmail, `"milk 1 litre"`))

		w := doJSON(t, router, http.MethodGet, "/api/v1/grocery-list/export", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Body.String(), "%PDF")
	})

	t.Run("export without a list is 404", func(t *testing.T) {
		router, _ := plannerRouter(t, "", "")

		w := doJSON(t, router, http.MethodGet, "/api/v1/grocery-list/export", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("export surfaces renderer failure as 502", func(t *testing.T) {
		renderer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer renderer.Close()

		ctx := context.Background()
		router, records := plannerRouter(t, "", renderer.URL)
		require.NoError(t, records.UpsertGroceryList(ctx, testEmail, `"milk 1 litre"`))

		w := doJSON(t, router, http.MethodGet, "/api/v1/grocery-list/export", nil)
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}

func TestRecommendationEndpoints(t *testing.T) {
	t.Run("generate then read back", func(t *testing.T) {
		router, records := plannerRouter(t, "Eat more vegetables.", "")
		require.NoError(t, records.UpsertProfile(context.Background(), testProfile()))

		w := doJSON(t, router, http.MethodPost, "/api/v1/recommendation/generate", nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, router, http.MethodGet, "/api/v1/recommendation", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Eat more vegetables.", decodeBody(t, w)["response"])
	})

	t.Run("read without one is 404", func(t *testing.T) {
		router, _ := plannerRouter(t, "", "")

		w := doJSON(t, router, http.MethodGet, "/api/v1/recommendation", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
