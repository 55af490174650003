package handlers

import (
	"net/http"
	"strconv"

	"justlaw-backend/models"
	"justlaw-backend/service"

	"github.com/gin-gonic/gin"
)

// AssistantHandler handles chat and petition drafting requests
type AssistantHandler struct {
	chatService     *service.ChatService
	petitionService *service.PetitionService
}

// NewAssistantHandler creates a new assistant handler
func NewAssistantHandler(chatService *service.ChatService, petitionService *service.PetitionService) *AssistantHandler {
	return &AssistantHandler{
		chatService:     chatService,
		petitionService: petitionService,
	}
}

// ChatRequest represents the request body for a chat message
type ChatRequest struct {
	Message        string `json:"message" binding:"required"`
	ConversationID string `json:"conversation_id"`
	UserID         string `json:"user_id"`
}

// Chat handles POST /api/chat
func (h *AssistantHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.chatService.Chat(c.Request.Context(), service.ChatRequest{
		Message:        req.Message,
		ConversationID: req.ConversationID,
		UserID:         req.UserID,
	})
	if err != nil {
		respondServiceError(c, err, "CHAT_FAILED")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"response":        result.Response,
		"sources":         result.Sources,
		"conversation_id": result.ConversationID,
	})
}

// GeneratePetitionRequest represents the request body for drafting a petition
type GeneratePetitionRequest struct {
	Type    string                 `json:"dilekce_turu" binding:"required"`
	Details models.PetitionDetails `json:"bilgiler"`
	UserID  string                 `json:"user_id"`
}

// GeneratePetition handles POST /api/dilekce/generate
func (h *AssistantHandler) GeneratePetition(c *gin.Context) {
	h.draftPetition(c, "dilekce_metni")
}

// CreatePetition handles POST /api/dilekce. It drafts like GeneratePetition
// but returns the text under "dilekce".
func (h *AssistantHandler) CreatePetition(c *gin.Context) {
	h.draftPetition(c, "dilekce")
}

func (h *AssistantHandler) draftPetition(c *gin.Context, textKey string) {
	var req GeneratePetitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.petitionService.DraftPetition(c.Request.Context(), service.DraftPetitionRequest{
		Type:    req.Type,
		Details: req.Details,
		UserID:  req.UserID,
	})
	if err != nil {
		respondServiceError(c, err, "GENERATION_FAILED")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "success",
		textKey:      result.Petition.Text,
		"dilekce_id": result.Petition.ID,
	})
}

// GenerateFieldRequest represents the request body for drafting one section
type GenerateFieldRequest struct {
	FieldType string                 `json:"field_type"`
	Context   models.PetitionDetails `json:"context"`
}

// GeneratePetitionField handles POST /api/dilekce/generate-field
func (h *AssistantHandler) GeneratePetitionField(c *gin.Context) {
	var req GenerateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.petitionService.GeneratePetitionField(c.Request.Context(), service.GenerateFieldRequest{
		Field:   models.PetitionField(req.FieldType),
		Context: req.Context,
	})
	if err != nil {
		respondServiceError(c, err, "GENERATION_FAILED")
		return
	}

	c.JSON(http.StatusOK, gin.H{"text": result.Text})
}

// GetPetition handles GET /api/dilekce/:id
func (h *AssistantHandler) GetPetition(c *gin.Context) {
	petition, err := h.petitionService.GetPetition(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "FETCH_FAILED")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"petition": petition,
	})
}

// ListPetitions handles GET /api/dilekce?user_id=
func (h *AssistantHandler) ListPetitions(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		respondError(c, http.StatusBadRequest, "MISSING_USER_ID", "user_id is required")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	petitions, err := h.petitionService.ListPetitions(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondServiceError(c, err, "LIST_FAILED")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"petitions": petitions,
	})
}
