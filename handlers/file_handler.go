package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"justlaw-backend/models"
	"justlaw-backend/repository"
	"justlaw-backend/service"
	"justlaw-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContractFileLookup finds recorded contract uploads
type ContractFileLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.ContractFile, error)
	ListByUserID(ctx context.Context, userID string) ([]*models.ContractFile, error)
}

// ContractHandler handles contract uploads and downloads
type ContractHandler struct {
	contractService *service.ContractService
	files           ContractFileLookup
	storage         storage.Storage
}

// NewContractHandler creates a new contract handler. files and storage may be
// nil, in which case stored uploads cannot be downloaded.
func NewContractHandler(contractService *service.ContractService, files ContractFileLookup, st storage.Storage) *ContractHandler {
	return &ContractHandler{
		contractService: contractService,
		files:           files,
		storage:         st,
	}
}

// AnalyzeContract handles POST /api/sozlesme-analiz
func (h *ContractHandler) AnalyzeContract(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "MISSING_FILE", "File is required")
		return
	}

	if fileHeader.Size > service.MaxContractBytes {
		respondError(c, http.StatusBadRequest, "FILE_TOO_LARGE",
			fmt.Sprintf("File size exceeds maximum of %d bytes", service.MaxContractBytes))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "FILE_OPEN_ERROR", err.Error())
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, service.MaxContractBytes+1))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "FILE_READ_ERROR", err.Error())
		return
	}

	userID := c.PostForm("user_id")
	if userID == "" {
		userID = c.DefaultQuery("user_id", "anonymous")
	}

	result, err := h.contractService.AnalyzeContract(c.Request.Context(), service.AnalyzeContractRequest{
		Filename: fileHeader.Filename,
		Data:     data,
		UserID:   userID,
	})
	if err != nil {
		respondServiceError(c, err, "ANALYSIS_FAILED")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"analiz":   result.Analysis,
		"riskler":  result.Risks,
		"oneriler": result.Suggestions,
		"file_id":  result.FileID,
	})
}

// ListContractFiles handles GET /api/sozlesme?user_id=
func (h *ContractHandler) ListContractFiles(c *gin.Context) {
	if h.files == nil {
		respondError(c, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "File storage is not configured")
		return
	}

	userID := c.Query("user_id")
	if userID == "" {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "user_id is required")
		return
	}

	files, err := h.files.ListByUserID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "LIST_FAILED", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"files":   files,
	})
}

// GetContractFile handles GET /api/sozlesme/:id/file
func (h *ContractHandler) GetContractFile(c *gin.Context) {
	if h.files == nil || h.storage == nil {
		respondError(c, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "File storage is not configured")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid file ID format")
		return
	}

	file, err := h.files.GetByID(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "File not found")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "FETCH_FAILED", err.Error())
		return
	}

	reader, err := h.storage.Download(c.Request.Context(), file.StoragePath)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DOWNLOAD_FAILED", fmt.Sprintf("Failed to download file: %v", err))
		return
	}
	defer reader.Close()

	c.DataFromReader(http.StatusOK, file.Size, file.MimeType, reader, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", file.Filename),
	})
}
