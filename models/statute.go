package models

// StatuteSuggestion is a statute article proposed by the language model.
// Suggestions are never checked against an official legislation database.
type StatuteSuggestion struct {
	LawNumber string `json:"mevzuat_no"`
	Title     string `json:"baslik"`
	Article   string `json:"madde_no"`
	Content   string `json:"icerik"`
}

// StatuteEnvelope is the response body for statute suggestions
type StatuteEnvelope struct {
	Results     []StatuteSuggestion `json:"results"`
	Total       int                 `json:"total"`
	Message     string              `json:"message"`
	IsSynthetic bool                `json:"is_synthetic"`
	Disclaimer  string              `json:"disclaimer,omitempty"`
}
