package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"regexp"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nutricoach/backend/internal/normalize"
)

const visionCacheTTL = 24 * time.Hour

var calorieNumber = regexp.MustCompile(`\d+`)

// CalorieEstimate is the result of a vision calorie estimation.
type CalorieEstimate struct {
	Calories int    `json:"calories"`
	Raw      string `json:"raw"`
}

// VisionService estimates the calorie content of a food image via the
// vision completion endpoint. Estimates for the same image URL are stable,
// so results are cached in redis keyed by a hash of the URL.
type VisionService struct {
	llm   VisionCompleter
	redis *redis.Client
}

// NewVisionService creates a new VisionService instance. The redis client
// may be nil, in which case caching is skipped.
func NewVisionService(llm VisionCompleter, redisClient *redis.Client) *VisionService {
	return &VisionService{llm: llm, redis: redisClient}
}

// EstimateCalories asks the vision model to guess the calorie value of the
// food in the image. The reply is normalized and the first number in it is
// taken as the estimate; Calories is 0 when no number could be extracted.
func (s *VisionService) EstimateCalories(ctx context.Context, imageURL string) (*CalorieEstimate, error) {
	if cached := s.fromCache(ctx, imageURL); cached != nil {
		return cached, nil
	}

	raw, err := s.llm.CompleteVision(ctx, []Message{{
		Role: "user",
		Content: []map[string]interface{}{
			{
				"type": "text",
				"text": "Guess the calorie value of the food item in this image, and respond with the number of calories.",
			},
			{
				"type":      "image_url",
				"image_url": map[string]string{"url": imageURL},
			},
		},
	}})
	if err != nil {
		return nil, err
	}

	text := normalize.FallbackString(normalize.CleanText(raw))
	estimate := &CalorieEstimate{Raw: text}
	if match := calorieNumber.FindString(text); match != "" {
		if n, err := strconv.Atoi(match); err == nil {
			estimate.Calories = n
		}
	}

	s.toCache(ctx, imageURL, estimate)
	return estimate, nil
}

func cacheKey(imageURL string) string {
	sum := sha256.Sum256([]byte(imageURL))
	return "vision:estimate:" + hex.EncodeToString(sum[:])
}

func (s *VisionService) fromCache(ctx context.Context, imageURL string) *CalorieEstimate {
	if s.redis == nil {
		return nil
	}
	data, err := s.redis.Get(ctx, cacheKey(imageURL)).Bytes()
	if err != nil {
		return nil
	}
	var estimate CalorieEstimate
	if err := json.Unmarshal(data, &estimate); err != nil {
		return nil
	}
	return &estimate
}

func (s *VisionService) toCache(ctx context.Context, imageURL string, estimate *CalorieEstimate) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(estimate)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, cacheKey(imageURL), data, visionCacheTTL).Err(); err != nil {
		log.Printf("[VisionService] failed to cache estimate: %v", err)
	}
}
