package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const legalAssistantPrompt = `Sen JustLaw adlı Türk Hukuku AI asistanısın. Görevin Türk Hukuku konusunda doğru ve güvenilir bilgi vermektir.

KURALLAR:
1. Türk Hukuku mevzuatına ve Yargıtay kararlarına dayalı yanıtlar ver
2. Mümkün olduğunca ilgili kanun maddelerini ve karar numaralarını belirt
3. Yanıtlarını açık ve anlaşılır bir dille ver
4. Hukuki tavsiye vermediğini, sadece bilgilendirme yaptığını belirt
5. Emin olmadığın konularda bunu açıkça ifade et
6. Yanıtlarını Türkçe ver

ÖNEMLİ: Sen bir hukuki danışman değilsin, sadece bilgi sağlıyorsun. Kullanıcıların önemli hukuki kararlar için mutlaka bir avukata danışmaları gerektiğini hatırlat.`

// ChatService answers free-form legal questions
type ChatService struct {
	generator Generator
}

// ChatServiceOption is a functional option for ChatService
type ChatServiceOption func(*ChatService)

// ChatWithGenerator sets the text generator
func ChatWithGenerator(g Generator) ChatServiceOption {
	return func(s *ChatService) {
		s.generator = g
	}
}

// NewChatService creates a new chat service
func NewChatService(opts ...ChatServiceOption) *ChatService {
	s := &ChatService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ChatRequest represents a user question
type ChatRequest struct {
	Message        string
	ConversationID string
	UserID         string
}

// ChatSource is a reference cited by an answer
type ChatSource struct {
	Title string `json:"title"`
	URL   string `json:"url,omitempty"`
}

// ChatResult represents the assistant's answer
type ChatResult struct {
	Response       string
	Sources        []ChatSource
	ConversationID string
}

// Chat answers one question. A conversation ID is minted when none is given.
func (s *ChatService) Chat(ctx context.Context, req ChatRequest) (*ChatResult, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, ErrEmptyMessage
	}
	if s.generator == nil {
		return nil, ErrGeneratorNotConfigured
	}

	prompt := fmt.Sprintf("%s\n\nKullanıcı Sorusu: %s\n\nYanıtınız:", legalAssistantPrompt, message)
	answer, err := generateWithRetry(ctx, s.generator, truncatePrompt(prompt, maxPromptRunes))
	if err != nil {
		return nil, err
	}

	convID := strings.TrimSpace(req.ConversationID)
	if convID == "" {
		convID = uuid.New().String()
	}

	return &ChatResult{
		Response:       strings.TrimSpace(answer),
		Sources:        []ChatSource{},
		ConversationID: convID,
	}, nil
}
