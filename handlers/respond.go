package handlers

import (
	"errors"
	"log"
	"net/http"

	"justlaw-backend/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// respondServiceError maps service errors onto HTTP statuses
func respondServiceError(c *gin.Context, err error, code string) {
	switch {
	case service.IsClientError(err):
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
	case errors.Is(err, service.ErrGeneratorNotConfigured):
		respondError(c, http.StatusServiceUnavailable, "AI_UNAVAILABLE", "Gemini API yapılandırılmamış")
	case errors.Is(err, service.ErrSearchLogDisabled), errors.Is(err, service.ErrPetitionStoreDisabled):
		respondError(c, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", err.Error())
	case errors.Is(err, service.ErrPetitionNotFound):
		respondError(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	default:
		log.Printf("Error: %s: %v", code, err)
		respondError(c, http.StatusInternalServerError, code, err.Error())
	}
}
