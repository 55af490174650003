package models

import (
	"time"

	"github.com/google/uuid"
)

// ContractFile represents an uploaded contract submitted for analysis
type ContractFile struct {
	ID          uuid.UUID `json:"id"`
	UserID      string    `json:"user_id"`
	Filename    string    `json:"filename"`
	MimeType    string    `json:"mime_type"`
	Size        int64     `json:"size"`
	StoragePath string    `json:"storage_path"`
	TextLength  int       `json:"text_length"`
	CreatedAt   time.Time `json:"created_at"`
}
