package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/nutricoach/backend/internal/models"
	"github.com/nutricoach/backend/internal/normalize"
	"github.com/nutricoach/backend/internal/store"
)

// ErrProfileRequired is returned when generation is requested for a user
// with no stored profile.
var ErrProfileRequired = errors.New("user profile not found")

// ErrMealPlanRequired is returned when grocery generation is requested
// before a meal plan exists.
var ErrMealPlanRequired = errors.New("meal plan not found")

const mealPlanPrompt = `You are an AI powered Meal generator. You will be provided with a user profile containing name, age, gender, height (feet), weight (lbs), activity level, exercise hours, job type, work type, work hours, cooking hours, cooking proficiency, goals, dietary restrictions, diet type, allergies, cuisine preference, weekly grocery budget, grocery frequency and daily calorie intake goal.

TASK: Generate easy to cook at home meals for an entire week, 3 meals per day as breakfast, lunch, dinner, based on the user's preferences, keeping in mind cooking hours, cooking proficiency, budget, dietary restrictions, allergies and nutritional goals, and provide the information as JSON.
Example Response: {"day1": {"breakfast": "eggs 190 calorie", "lunch": "chicken salad 240 calorie", "dinner": "pasta 340 calorie"}, "day2": {"breakfast": "oatmeal", "lunch": "chicken sandwich", "dinner": "rice"}}
REMEMBER: day, breakfast, lunch, dinner are the keys and the values are the meals for the day along with their calorie count per serving.
RESPONSE CONSTRAINT: DO NOT OUTPUT EXTRA CHARACTERS like 'json' or backticks, JUST OUTPUT THE RESPONSE AS JSON.

User profile: %s`

const groceryPrompt = `You are an AI powered Grocery list generator. You will be provided with a user's meal list and user information including budget, dietary restrictions, allergies and diet type.

TASK: Generate a grocery list covering one %s grocery cycle, with the amount needed of each item, based on the meal list and user information, and provide the information as a comma separated string.
Example Response: "eggs 1 tray, bread 2 pack, milk 3 litre, chicken 1kg, rice 1kg, spices, herbs, condiments 3 pack"
RESPONSE CONSTRAINT: DO NOT OUTPUT EXTRA CHARACTERS, JUST OUTPUT A PLAIN COMMA SEPARATED STRING WITH QUANTITIES.

Meal list: %s
Budget: %.2f
Dietary restrictions: %s
Allergies: %s
Diet type: %s`

const recommendationPrompt = `You are an AI powered Recommendation generator. You will be provided with a user profile containing key information around weight, height, calorie goal, body goals and diet goals. Generate recommended activities, food and lifestyle changes based on the profile.
Output plaintext paragraphs. Comment on key exercises, protein content per weight, calorie intake, lifestyle changes and must-eat supplements.

User profile: %s`

// PlannerService orchestrates profile-driven generation: it loads
// prerequisite documents, renders a prompt, normalizes the model reply and
// persists the result.
type PlannerService struct {
	records *store.RecordStore
	llm     Completer
}

// NewPlannerService creates a new PlannerService instance.
func NewPlannerService(records *store.RecordStore, llm Completer) *PlannerService {
	return &PlannerService{records: records, llm: llm}
}

// GenerateMealPlan builds a 7-day, 3-meal plan for the user and stores it.
// The returned value is the normalizer output: structured JSON when the
// model cooperated, the cleaned text otherwise.
func (s *PlannerService) GenerateMealPlan(ctx context.Context, email string) (interface{}, error) {
	profile, err := s.records.LoadProfile(ctx, email)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileRequired
	}

	raw, err := s.llm.Complete(ctx, []Message{{
		Role:    "user",
		Content: fmt.Sprintf(mealPlanPrompt, profileJSON(profile)),
	}})
	if err != nil {
		return nil, err
	}

	plan := normalize.CleanJSON(raw)
	if err := s.records.UpsertMealPlan(ctx, email, normalize.FallbackString(plan)); err != nil {
		return nil, err
	}
	return plan, nil
}

// LoadMealPlan returns the stored plan decoded back into a value, nil when
// no plan exists.
func (s *PlannerService) LoadMealPlan(ctx context.Context, email string) (interface{}, error) {
	payload, err := s.records.LoadMealPlan(ctx, email)
	if err != nil {
		return nil, err
	}
	if payload == "" {
		return nil, nil
	}

	var value interface{}
	if err := json.Unmarshal([]byte(payload), &value); err != nil {
		// Stored fallback text rather than JSON; return it as-is.
		return payload, nil
	}
	return value, nil
}

// GenerateGroceryList builds a shopping list from the stored meal plan and
// profile and stores it. Requires both documents to exist.
func (s *PlannerService) GenerateGroceryList(ctx context.Context, email string) (string, error) {
	profile, err := s.records.LoadProfile(ctx, email)
	if err != nil {
		return "", err
	}
	if profile == nil {
		return "", ErrProfileRequired
	}

	mealPlan, err := s.records.LoadMealPlan(ctx, email)
	if err != nil {
		return "", err
	}
	if mealPlan == "" {
		return "", ErrMealPlanRequired
	}

	raw, err := s.llm.Complete(ctx, []Message{{
		Role: "user",
		Content: fmt.Sprintf(groceryPrompt,
			profile.GroceryFrequency,
			mealPlan,
			profile.Budget,
			profile.DietaryRestrictions,
			profile.Allergies,
			profile.DietType),
	}})
	if err != nil {
		return "", err
	}

	items := normalize.FallbackString(normalize.CleanJSON(raw))
	if err := s.records.UpsertGroceryList(ctx, email, items); err != nil {
		return "", err
	}
	return items, nil
}

// ShowGroceryList returns the stored grocery list shaped for display. The
// stored value is left untouched.
func (s *PlannerService) ShowGroceryList(ctx context.Context, email string) (string, bool, error) {
	items, err := s.records.LoadGroceryList(ctx, email)
	if err != nil {
		return "", false, err
	}
	if items == "" {
		return "", false, nil
	}
	return normalize.GroceryDisplay(items), true, nil
}

// GenerateRecommendation produces free-text lifestyle advice for the user
// and stores it.
func (s *PlannerService) GenerateRecommendation(ctx context.Context, email string) (string, error) {
	profile, err := s.records.LoadProfile(ctx, email)
	if err != nil {
		return "", err
	}
	if profile == nil {
		return "", ErrProfileRequired
	}

	raw, err := s.llm.Complete(ctx, []Message{{
		Role:    "user",
		Content: fmt.Sprintf(recommendationPrompt, profileJSON(profile)),
	}})
	if err != nil {
		return "", err
	}

	text := normalize.FallbackString(normalize.CleanText(raw))
	if err := s.records.UpsertRecommendation(ctx, email, text); err != nil {
		return "", err
	}
	return text, nil
}

func profileJSON(profile *models.UserProfile) string {
	data, err := json.Marshal(profile)
	if err != nil {
		log.Printf("[PlannerService] failed to marshal profile: %v", err)
		return "{}"
	}
	return string(data)
}
