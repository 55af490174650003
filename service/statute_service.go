package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"justlaw-backend/models"
)

const (
	maxStatuteSuggestions = 3
	maxPromptRunes        = 30000

	MessageStatuteSuggestions = "AI-generated statute suggestions"
)

// StatuteService suggests statute articles for a topic. There is no
// legislation database behind it; every suggestion comes from the model.
type StatuteService struct {
	generator Generator
}

// StatuteServiceOption is a functional option for StatuteService
type StatuteServiceOption func(*StatuteService)

// StatuteWithGenerator sets the text generator
func StatuteWithGenerator(g Generator) StatuteServiceOption {
	return func(s *StatuteService) {
		s.generator = g
	}
}

// NewStatuteService creates a new statute service
func NewStatuteService(opts ...StatuteServiceOption) *StatuteService {
	s := &StatuteService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Suggest returns up to min(limit, 3) statute articles for query. Generator
// and decoding failures produce an empty envelope.
func (s *StatuteService) Suggest(ctx context.Context, query string, limit int) (*models.StatuteEnvelope, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	env := &models.StatuteEnvelope{Results: []models.StatuteSuggestion{}, Message: MessageNoResults}
	if s.generator == nil {
		return env, nil
	}

	n := min(limit, maxStatuteSuggestions)
	if n < 1 {
		n = maxStatuteSuggestions
	}

	prompt := fmt.Sprintf(`Türk Hukuku mevzuatında "%s" ile ilgili en önemli %d kanun maddesini bul/hatırla.

Yanıtı şu JSON formatında ver:
[
  {
    "mevzuat_no": "Kanun No",
    "baslik": "Kanun Adı",
    "madde_no": "Madde X",
    "icerik": "Madde içeriğinin özeti..."
  }
]

Sadece JSON array döndür.`, query, n)

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		log.Printf("Warning: statute suggestion failed for %q: %v", query, err)
		return env, nil
	}

	span, ok := ExtractJSON(text)
	if !ok || span[0] != '[' {
		return env, nil
	}
	var suggestions []models.StatuteSuggestion
	if err := json.Unmarshal([]byte(span), &suggestions); err != nil {
		log.Printf("Warning: failed to decode statute suggestions: %v", err)
		return env, nil
	}

	for _, sug := range suggestions {
		if len(env.Results) >= n {
			break
		}
		if strings.TrimSpace(sug.Title) == "" && strings.TrimSpace(sug.Content) == "" {
			continue
		}
		env.Results = append(env.Results, sug)
	}

	env.Total = len(env.Results)
	if env.Total > 0 {
		env.Message = MessageStatuteSuggestions
		env.IsSynthetic = true
		env.Disclaimer = models.SyntheticDisclaimer
	}
	return env, nil
}
