package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/nutricoach/backend/internal/models"
	"github.com/nutricoach/backend/internal/normalize"
	"github.com/nutricoach/backend/internal/store"
)

// StopResponse is the sentinel reply returned when a chat session is
// terminated by a stop request.
const StopResponse = "STOPPING CHAT"

const chatPrompt = `You are an AI powered Meal & Grocery Planner. The client will talk to you about their queries regarding meals, groceries and goals. Here is the history of the chat: %s. Now the customer is saying: %s. Respond to the customer in a polite manner. If there is no chat history, just respond to the current message. You are provided with a user profile %s containing the user's preferences, goals, calorie intake goal, allergies and so on. The following is the user's meal plan %s and grocery list %s.

TASK: The user can ask questions about the meal plan and grocery list. Answer queries related to nutritional information, cooking time, ingredients, recipes and similar, in the user's preferred language.
ANSWER: Answer strictly based on the user's preferences, meal plan and grocery list, and present the information in a user friendly manner.
RESPONSE CONSTRAINT: DO NOT OUTPUT THE CHAT HISTORY, JUST OUTPUT THE RESPONSE TO THE CUSTOMER IN PLAIN TEXT.`

// ChatResult is the outcome of one chat turn.
type ChatResult struct {
	Response string                `json:"response"`
	History  []models.ChatExchange `json:"history"`
	Stopped  bool                  `json:"stop"`
}

// ChatService drives one chat turn at a time. There is no server-side
// session object; the caller round-trips the history with each request and
// the full history is persisted after every turn.
type ChatService struct {
	records *store.RecordStore
	llm     Completer

	// stopOnModelReply also ends the session when the model's own reply
	// contains a stop phrase. Off by default: model phrasing is not user
	// intent.
	stopOnModelReply bool
}

// NewChatService creates a new ChatService instance.
func NewChatService(records *store.RecordStore, llm Completer, stopOnModelReply bool) *ChatService {
	return &ChatService{
		records:          records,
		llm:              llm,
		stopOnModelReply: stopOnModelReply,
	}
}

// Turn runs one chat exchange. A message containing "stop" in any casing
// persists the history and returns the stop sentinel without calling the
// model. Otherwise the reply is generated from the stored profile, meal
// plan, grocery list and prior history, appended to the history, and the
// whole history is stored again.
func (s *ChatService) Turn(ctx context.Context, email, message string, history []models.ChatExchange) (*ChatResult, error) {
	if history == nil {
		history = []models.ChatExchange{}
	}

	if containsStop(message) {
		if err := s.persistHistory(ctx, email, history); err != nil {
			return nil, err
		}
		return &ChatResult{Response: StopResponse, History: history, Stopped: true}, nil
	}

	profile, err := s.records.LoadProfile(ctx, email)
	if err != nil {
		return nil, err
	}
	mealPlan, err := s.records.LoadMealPlan(ctx, email)
	if err != nil {
		return nil, err
	}
	groceryList, err := s.records.LoadGroceryList(ctx, email)
	if err != nil {
		return nil, err
	}

	historyJSON, err := json.Marshal(history)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal history: %w", err)
	}

	profileData := "{}"
	if profile != nil {
		profileData = profileJSON(profile)
	}

	raw, err := s.llm.Complete(ctx, []Message{{
		Role:    "user",
		Content: fmt.Sprintf(chatPrompt, string(historyJSON), message, profileData, mealPlan, groceryList),
	}})
	if err != nil {
		return nil, err
	}

	response := normalize.FallbackString(normalize.CleanText(strings.TrimSpace(raw)))

	if s.stopOnModelReply && containsStop(response) {
		log.Printf("[ChatService] stop phrase detected in model reply for %s", email)
		if err := s.persistHistory(ctx, email, history); err != nil {
			return nil, err
		}
		return &ChatResult{Response: StopResponse, History: history, Stopped: true}, nil
	}

	history = append(history, models.ChatExchange{Message: message, Response: response})
	if err := s.persistHistory(ctx, email, history); err != nil {
		return nil, err
	}

	return &ChatResult{Response: response, History: history, Stopped: false}, nil
}

// History returns the stored conversation for the user, empty when none.
func (s *ChatService) History(ctx context.Context, email string) ([]models.ChatExchange, error) {
	blob, err := s.records.LoadChatHistory(ctx, email)
	if err != nil {
		return nil, err
	}
	if blob == "" {
		return []models.ChatExchange{}, nil
	}

	var history []models.ChatExchange
	if err := json.Unmarshal([]byte(blob), &history); err != nil {
		log.Printf("[ChatService] stored history for %s is not parseable: %v", email, err)
		return []models.ChatExchange{}, nil
	}
	return history, nil
}

func (s *ChatService) persistHistory(ctx context.Context, email string, history []models.ChatExchange) error {
	blob, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	return s.records.UpsertChatHistory(ctx, email, string(blob))
}

func containsStop(text string) bool {
	return strings.Contains(strings.ToLower(text), "stop")
}
