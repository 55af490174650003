package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"justlaw-backend/models"
	"justlaw-backend/repository"

	"github.com/google/uuid"
)

// PetitionStore persists drafted petitions
type PetitionStore interface {
	Create(ctx context.Context, petition *models.Petition) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Petition, error)
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*models.Petition, error)
}

// PetitionService drafts dilekçe texts
type PetitionService struct {
	generator Generator
	store     PetitionStore
}

// PetitionServiceOption is a functional option for PetitionService
type PetitionServiceOption func(*PetitionService)

// PetitionWithGenerator sets the text generator
func PetitionWithGenerator(g Generator) PetitionServiceOption {
	return func(s *PetitionService) {
		s.generator = g
	}
}

// PetitionWithRepository keeps drafted petitions
func PetitionWithRepository(store PetitionStore) PetitionServiceOption {
	return func(s *PetitionService) {
		s.store = store
	}
}

// NewPetitionService creates a new petition service
func NewPetitionService(opts ...PetitionServiceOption) *PetitionService {
	s := &PetitionService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DraftPetitionRequest represents a request to draft a full petition
type DraftPetitionRequest struct {
	Type    string
	Details models.PetitionDetails
	UserID  string
}

// DraftPetitionResult represents a drafted petition
type DraftPetitionResult struct {
	Petition *models.Petition
}

// DraftPetition writes a complete petition for the given type and facts
func (s *PetitionService) DraftPetition(ctx context.Context, req DraftPetitionRequest) (*DraftPetitionResult, error) {
	petitionType := strings.TrimSpace(req.Type)
	if petitionType == "" {
		return nil, ErrMissingPetitionType
	}
	if s.generator == nil {
		return nil, ErrGeneratorNotConfigured
	}

	prompt := fmt.Sprintf(`Aşağıdaki bilgilere göre profesyonel bir %s dilekçesi oluştur.

Bilgiler:
%s

Dilekçe şu formatta olmalı:
1. Mahkeme başlığı
2. Davacı bilgileri
3. Davalı bilgileri
4. Konu
5. Açıklamalar (maddeler halinde)
6. Sonuç ve Talep
7. Tarih ve imza yeri

Türk Hukuku standartlarına tam uygun olmalıdır.`, petitionType, req.Details.String())

	text, err := generateWithRetry(ctx, s.generator, truncatePrompt(prompt, maxPromptRunes))
	if err != nil {
		return nil, err
	}

	petition := &models.Petition{
		ID:        uuid.New().String(),
		Type:      petitionType,
		Text:      strings.TrimSpace(text),
		Details:   req.Details,
		Owner:     req.UserID,
		CreatedAt: time.Now().UTC(),
	}

	if s.store != nil {
		if err := s.store.Create(ctx, petition); err != nil {
			log.Printf("Warning: failed to save petition %s: %v", petition.ID, err)
		}
	}

	return &DraftPetitionResult{Petition: petition}, nil
}

// GetPetition retrieves a saved petition
func (s *PetitionService) GetPetition(ctx context.Context, id string) (*models.Petition, error) {
	if s.store == nil {
		return nil, ErrPetitionStoreDisabled
	}
	pid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrPetitionNotFound
	}
	petition, err := s.store.GetByID(ctx, pid)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrPetitionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load petition: %w", err)
	}
	return petition, nil
}

// ListPetitions lists a user's saved petitions
func (s *PetitionService) ListPetitions(ctx context.Context, userID string, limit, offset int) ([]*models.Petition, error) {
	if s.store == nil {
		return nil, ErrPetitionStoreDisabled
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	petitions, err := s.store.ListByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list petitions: %w", err)
	}
	return petitions, nil
}

// GenerateFieldRequest represents a request to draft one petition section
type GenerateFieldRequest struct {
	Field   models.PetitionField
	Context models.PetitionDetails
}

// GenerateFieldResult represents a drafted section
type GenerateFieldResult struct {
	Text string
}

// GeneratePetitionField drafts a single section. Unknown fields yield empty text.
func (s *PetitionService) GeneratePetitionField(ctx context.Context, req GenerateFieldRequest) (*GenerateFieldResult, error) {
	prompt := fieldPrompt(req.Field, req.Context)
	if prompt == "" {
		return &GenerateFieldResult{}, nil
	}
	if s.generator == nil {
		return nil, ErrGeneratorNotConfigured
	}

	text, err := generateWithRetry(ctx, s.generator, prompt)
	if err != nil {
		return nil, err
	}
	return &GenerateFieldResult{Text: strings.TrimSpace(text)}, nil
}

func fieldPrompt(field models.PetitionField, c models.PetitionDetails) string {
	switch field {
	case models.PetitionFieldSubject:
		return fmt.Sprintf(`Aşağıdaki dava bilgileri için kısa, öz ve hukuki bir 'Konu' metni yaz.

Dava Türü: %s
Davacı: %s
Davalı: %s

Sadece konu metnini yaz, başlık veya ek açıklama koyma.`,
			orUnspecified(c.Text("dilekce_turu")), orUnspecified(c.Text("davaci_adi")), orUnspecified(c.Text("davali_adi")))
	case models.PetitionFieldClaims:
		return fmt.Sprintf(`Aşağıdaki dava bilgileri için 'Sonuç ve İstem' (Talepler) kısmı yaz. Maddeler halinde olsun.

Dava Türü: %s
Konu: %s
Açıklamalar Özeti: %s

Sadece talep maddelerini yaz.`,
			orUnspecified(c.Text("dilekce_turu")), orUnspecified(c.Text("konu")), orUnspecified(shorten(c.Text("aciklamalar"), 500)))
	default:
		return ""
	}
}

func orUnspecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Belirtilmedi"
	}
	return s
}
