package models

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// PetitionField is a dilekçe section that can be drafted on its own
type PetitionField string

const (
	PetitionFieldSubject PetitionField = "konu"     // Konu
	PetitionFieldClaims  PetitionField = "talepler" // Sonuç ve İstem
)

// PetitionDetails holds the free-form facts a user supplies for a petition
// (davacı, davalı, mahkeme, açıklamalar ...)
type PetitionDetails map[string]interface{}

// String renders the details as stable "key: value" lines for prompts
func (d PetitionDetails) String() string {
	if len(d) == 0 {
		return "Belirtilmedi"
	}
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "- %s: %v\n", k, d[k])
	}
	return strings.TrimRight(b.String(), "\n")
}

// Text returns the value under key as a string, or "" when absent
func (d PetitionDetails) Text(key string) string {
	v, ok := d[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// Petition is a generated petition draft
type Petition struct {
	ID        string          `json:"dilekce_id"`
	Type      string          `json:"dilekce_turu"`
	Text      string          `json:"dilekce_metni"`
	Details   PetitionDetails `json:"bilgiler,omitempty"`
	Owner     string          `json:"user_id,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
