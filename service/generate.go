package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

const maxRetries = 3

var initialBackoff = time.Second

// generateWithRetry calls the generator up to maxRetries times with doubling
// backoff. Empty output counts as a failed attempt.
func generateWithRetry(ctx context.Context, g Generator, prompt string) (string, error) {
	if g == nil {
		return "", ErrGeneratorNotConfigured
	}

	var lastErr error
	backoff := initialBackoff
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		content, err := g.Generate(ctx, prompt)
		if err == nil && content != "" {
			return content, nil
		}
		if err == nil {
			err = ErrEmptyGeneration
		}
		lastErr = err
		log.Printf("Warning: generation attempt %d/%d failed: %v", attempt+1, maxRetries, err)

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			break
		}
	}
	return "", fmt.Errorf("failed to generate content after %d attempts: %w", maxRetries, lastErr)
}

// truncatePrompt caps very long prompts before they reach the model
func truncatePrompt(prompt string, maxRunes int) string {
	runes := []rune(prompt)
	if len(runes) <= maxRunes {
		return prompt
	}
	log.Printf("Warning: Prompt too long (%d chars), truncating to %d chars", len(runes), maxRunes)
	return string(runes[:maxRunes]) + "\n\n[İçerik uzunluk nedeniyle kısaltıldı...]"
}
