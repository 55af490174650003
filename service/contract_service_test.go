package service

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"justlaw-backend/models"
	"justlaw-backend/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memFileRepo struct {
	files []*models.ContractFile
	err   error
}

func (m *memFileRepo) Create(ctx context.Context, file *models.ContractFile) error {
	if m.err != nil {
		return m.err
	}
	m.files = append(m.files, file)
	return nil
}

const sampleAnalysis = `## Genel Değerlendirme
Sözleşme genel olarak dengelidir.

## Riskli Maddeler
- **Madde:** 7. madde
- **Risk:** Tek taraflı fesih hakkı kiraya verene tanınmış.
- **Öneri:** Karşılıklı hale getirilmeli.
- **Madde:** 12. madde
- **Risk:** Cezai şart fahiş.

## Olumlu Yönler
- Süre açıkça belirlenmiş.

## Genel Öneriler
1. Fesih maddesini yeniden yazın.
2) Cezai şartı makul seviyeye çekin.

## Hukuki Uyarı
Bu analiz genel bilgilendirme amaçlıdır.`

func TestAnalyzeContractText(t *testing.T) {
	gen := &fakeGenerator{responses: []string{sampleAnalysis}}
	st, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	repo := &memFileRepo{}

	s := NewContractService(ContractWithGenerator(gen), ContractWithStorage(st), ContractWithFileRepository(repo))
	res, err := s.AnalyzeContract(context.Background(), AnalyzeContractRequest{
		Filename: "kira.txt",
		Data:     []byte("Madde 7: Kiraya veren dilediği zaman fesheder."),
		UserID:   "u1",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Tek taraflı fesih hakkı kiraya verene tanınmış.", "Cezai şart fahiş."}, res.Risks)
	assert.Equal(t, []string{"Fesih maddesini yeniden yazın.", "Cezai şartı makul seviyeye çekin."}, res.Suggestions)
	assert.Contains(t, gen.lastPrompt(), "Madde 7: Kiraya veren")
	assert.Contains(t, gen.lastPrompt(), "Dosya Adı: kira.txt")

	require.Len(t, repo.files, 1)
	rec := repo.files[0]
	assert.Equal(t, res.FileID, rec.ID)
	assert.Equal(t, "u1", rec.UserID)
	assert.Equal(t, "text/plain; charset=utf-8", rec.MimeType)

	rc, err := st.Download(context.Background(), rec.StoragePath)
	require.NoError(t, err)
	stored, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "Madde 7: Kiraya veren dilediği zaman fesheder.", string(stored))
}

func TestAnalyzeContractValidation(t *testing.T) {
	s := NewContractService(ContractWithGenerator(&fakeGenerator{}))

	_, err := s.AnalyzeContract(context.Background(), AnalyzeContractRequest{Filename: "a.txt"})
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = s.AnalyzeContract(context.Background(), AnalyzeContractRequest{Filename: "a.txt", Data: bytes.Repeat([]byte("a"), MaxContractBytes+1)})
	assert.ErrorIs(t, err, ErrFileTooLarge)

	_, err = NewContractService().AnalyzeContract(context.Background(), AnalyzeContractRequest{Filename: "a.txt", Data: []byte("x")})
	assert.ErrorIs(t, err, ErrGeneratorNotConfigured)
}

func TestContractTextFallbacks(t *testing.T) {
	assert.Equal(t, "düz metin", contractText("a.txt", []byte("düz metin")))
	assert.Equal(t, "markdown", contractText("a.md", []byte("markdown")))

	binary := []byte{0xff, 0xfe, 0x00, 0x81}
	assert.Contains(t, contractText("scan.docx", binary), "Dosya adı: scan.docx")
	assert.Contains(t, contractText("bozuk.pdf", []byte("%PDF-1.4 bozuk")), "Dosya adı: bozuk.pdf")
}

func TestTruncateContract(t *testing.T) {
	long := strings.Repeat("ş", maxContractRunes+10)
	out := truncateContract(long)
	assert.True(t, strings.HasSuffix(out, "...(devamı kesildi)"))
	assert.Equal(t, maxContractRunes+utf8.RuneCountInString("...(devamı kesildi)"), utf8.RuneCountInString(out))
	assert.Equal(t, "kısa", truncateContract("kısa"))
}

func TestParseAnalysisListsWithoutSections(t *testing.T) {
	risks, suggestions := parseAnalysisLists("Serbest metin, liste yok.")
	assert.NotNil(t, risks)
	assert.Empty(t, risks)
	assert.Empty(t, suggestions)
}

func TestAnalyzeContractRemovesUnrecordedUpload(t *testing.T) {
	dir := t.TempDir()
	st, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)

	s := NewContractService(
		ContractWithGenerator(&fakeGenerator{responses: []string{sampleAnalysis}}),
		ContractWithStorage(st),
		ContractWithFileRepository(&memFileRepo{err: errBoom}),
	)
	res, err := s.AnalyzeContract(context.Background(), AnalyzeContractRequest{Filename: "kira.txt", Data: []byte("metin")})
	require.NoError(t, err, "a failed record does not fail the analysis")
	assert.NotEmpty(t, res.Analysis)

	var files []string
	require.NoError(t, filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			files = append(files, path)
		}
		return err
	}))
	assert.Empty(t, files)
}
