package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
)

// Generator produces free text for a prompt
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiGenerator implements Generator on top of the Gemini SDK
type GeminiGenerator struct {
	model *genai.GenerativeModel
}

// NewGeminiGenerator creates a generator bound to one Gemini model
func NewGeminiGenerator(client *genai.Client, modelName string, temperature float32) *GeminiGenerator {
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	model := client.GenerativeModel(modelName)
	model.SetTemperature(temperature)
	return &GeminiGenerator{model: model}
}

// Generate sends a single-turn prompt and returns the concatenated text parts
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	return responseText(resp)
}

// responseText flattens a Gemini response into plain text
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", ErrEmptyGeneration
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
		return "", fmt.Errorf("%w: prompt blocked (%s)", ErrGenerationFailed, resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", ErrGenerationFailed)
	}

	var b strings.Builder
	for i, cand := range resp.Candidates {
		if cand.FinishReason != genai.FinishReasonUnspecified && cand.FinishReason != genai.FinishReasonStop {
			log.Printf("Warning: Candidate %d finished with reason: %s", i, cand.FinishReason)
		}
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}

	if strings.TrimSpace(b.String()) == "" {
		return "", ErrEmptyGeneration
	}
	return b.String(), nil
}
