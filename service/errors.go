package service

import "errors"

var (
	ErrEmptyQuery             = errors.New("search query is empty")
	ErrEmptyMessage           = errors.New("message is empty")
	ErrGeneratorNotConfigured = errors.New("Gemini API is not configured")
	ErrGenerationFailed       = errors.New("failed to generate content")
	ErrEmptyGeneration        = errors.New("model returned empty content")
	ErrSearchLogDisabled      = errors.New("search log storage is not configured")
	ErrUnsupportedFile        = errors.New("unsupported file type")
	ErrFileTooLarge           = errors.New("file exceeds maximum size")
	ErrNoExtractableText      = errors.New("no extractable text in document")
	ErrMissingPetitionType    = errors.New("petition type is required")
	ErrEmptyFile              = errors.New("file is empty")
	ErrPetitionNotFound       = errors.New("petition not found")
	ErrPetitionStoreDisabled  = errors.New("petition storage is not configured")
)
