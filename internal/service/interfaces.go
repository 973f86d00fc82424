package service

import (
	"context"
)

// Completer is the generative-model collaborator. LLMService implements it;
// tests substitute a canned one.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// VisionCompleter is the vision-capable variant used for image estimates.
type VisionCompleter interface {
	CompleteVision(ctx context.Context, messages []Message) (string, error)
}
