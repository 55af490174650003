package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"justlaw-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"plain array", `[{"a":1}]`, `[{"a":1}]`, true},
		{"prose around", "İşte sonuç:\n```json\n[{\"a\":1}]\n```\nUmarım yardımcı olur.", `[{"a":1}]`, true},
		{"object first", `sonuç {"results":[{"a":"]"}]} ve [1]`, `{"results":[{"a":"]"}]}`, true},
		{"brackets in strings", `[{"summary":"E. 2023/1 [kısmen] {not}"}]`, `[{"summary":"E. 2023/1 [kısmen] {not}"}]`, true},
		{"escaped quote", `[{"s":"dedi ki \"]\" sonra"}]`, `[{"s":"dedi ki \"]\" sonra"}]`, true},
		{"unbalanced", `[{"a":1}`, "", false},
		{"mismatched", `[{"a":1]}`, "", false},
		{"no json", "karar bulunamadı", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSON(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSyntheticRecordsForcesFlagsAndSources(t *testing.T) {
	req := models.NewSearchRequest("ihale", []models.SourceTag{"danistay", "anayasa"}, 10)
	text := `[
		{"summary":"a","source":"danistay","is_synthetic":false},
		{"summary":"b","source":"ANAYASA"},
		{"summary":"c","source":"yargitay"},
		{"summary":"d","source":"uydurma"},
		{"summary":"","full_text":""}
	]`

	records := parseSyntheticRecords(text, req, 8)
	require.Len(t, records, 4)
	assert.Equal(t, models.SourceDanistay, records[0].Source)
	assert.Equal(t, models.SourceAnayasa, records[1].Source)
	assert.Equal(t, models.SourceDanistay, records[2].Source, "unrequested source is replaced")
	assert.Equal(t, models.SourceDanistay, records[3].Source, "unknown source is replaced")
	for _, r := range records {
		assert.True(t, r.IsSynthetic)
		assert.True(t, req.Requested(r.Source))
	}
}

func TestParseSyntheticRecordsCapsCount(t *testing.T) {
	var items []string
	for i := 0; i < 12; i++ {
		items = append(items, fmt.Sprintf(`{"summary":"özet %d"}`, i))
	}
	req := models.NewSearchRequest("q", nil, 50)
	records := parseSyntheticRecords("["+strings.Join(items, ",")+"]", req, syntheticCount(req.Limit()))
	assert.Len(t, records, MaxSyntheticRecords)
}

func TestParseSyntheticRecordsAcceptsObjects(t *testing.T) {
	req := models.NewSearchRequest("q", []models.SourceTag{"rekabet"}, 5)

	wrapped := parseSyntheticRecords(`{"results":[{"summary":"x"},{"summary":"y"}]}`, req, 5)
	assert.Len(t, wrapped, 2)

	single := parseSyntheticRecords(`{"chamber":"Kurul","summary":"tek karar","source":"rekabet"}`, req, 5)
	require.Len(t, single, 1)
	assert.Equal(t, "Kurul", single[0].Chamber)
	assert.Equal(t, models.SourceRekabet, single[0].Source)
}

func TestParseSyntheticRecordsDecodeFailure(t *testing.T) {
	req := models.NewSearchRequest("q", nil, 5)
	assert.Empty(t, parseSyntheticRecords(`[{"summary": 12}]`, req, 5))
	assert.Empty(t, parseSyntheticRecords(`yok`, req, 5))
}

func TestSyntheticCount(t *testing.T) {
	assert.Equal(t, 3, syntheticCount(3))
	assert.Equal(t, 8, syntheticCount(10))
	assert.Equal(t, 1, syntheticCount(0))
}

func TestSynthesizePromptNamesRequestedSources(t *testing.T) {
	gen := &fakeGenerator{responses: []string{`[]`}}
	s := NewSearchService(SearchWithGenerator(gen))

	records := s.Synthesize(context.Background(), models.NewSearchRequest("işçi alacağı", []models.SourceTag{"yargitay"}, 3))
	assert.Empty(t, records)

	prompt := gen.lastPrompt()
	assert.Contains(t, prompt, `"işçi alacağı"`)
	assert.Contains(t, prompt, "3 adet")
	assert.Contains(t, prompt, "Yargıtay")
	assert.NotContains(t, prompt, "Danıştay")
}

func TestSynthesizeWithoutGenerator(t *testing.T) {
	s := NewSearchService()
	assert.False(t, s.FallbackEnabled())
	assert.Empty(t, s.Synthesize(context.Background(), models.NewSearchRequest("q", nil, 5)))
}

func TestSynthesizeSkipsUnsupportedSources(t *testing.T) {
	gen := &fakeGenerator{responses: []string{`[{"summary":"s","source":"yargitay"}]`}}
	s := NewSearchService(SearchWithGenerator(gen))

	records := s.Synthesize(context.Background(), models.NewSearchRequest("q", []models.SourceTag{"sayistay"}, 5))
	assert.Empty(t, records)
	assert.Equal(t, 0, gen.calls())
}

func TestSynthesizePromptOmitsUnsupportedSources(t *testing.T) {
	gen := &fakeGenerator{responses: []string{`[{"summary":"s","source":"sayistay"}]`}}
	s := NewSearchService(SearchWithGenerator(gen))

	records := s.Synthesize(context.Background(), models.NewSearchRequest("q", []models.SourceTag{"sayistay", "rekabet"}, 5))
	require.Len(t, records, 1)
	assert.Equal(t, models.SourceRekabet, records[0].Source)

	prompt := gen.lastPrompt()
	assert.Contains(t, prompt, "Rekabet Kurumu")
	assert.NotContains(t, prompt, "sayistay")
	assert.NotContains(t, prompt, "Yargıtay")
}
