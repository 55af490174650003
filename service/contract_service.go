package service

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"justlaw-backend/models"
	"justlaw-backend/storage"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"
)

const (
	MaxContractBytes = 10 << 20
	maxContractRunes = 30000
)

// ContractFileStore records uploaded contracts
type ContractFileStore interface {
	Create(ctx context.Context, file *models.ContractFile) error
}

// ContractService analyzes uploaded contracts under Turkish law
type ContractService struct {
	generator Generator
	storage   storage.Storage
	fileRepo  ContractFileStore
}

// ContractServiceOption is a functional option for ContractService
type ContractServiceOption func(*ContractService)

// ContractWithGenerator sets the text generator
func ContractWithGenerator(g Generator) ContractServiceOption {
	return func(s *ContractService) {
		s.generator = g
	}
}

// ContractWithStorage keeps a copy of every uploaded contract
func ContractWithStorage(st storage.Storage) ContractServiceOption {
	return func(s *ContractService) {
		s.storage = st
	}
}

// ContractWithFileRepository records uploads in the database
func ContractWithFileRepository(repo ContractFileStore) ContractServiceOption {
	return func(s *ContractService) {
		s.fileRepo = repo
	}
}

// NewContractService creates a new contract service
func NewContractService(opts ...ContractServiceOption) *ContractService {
	s := &ContractService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AnalyzeContractRequest represents an uploaded contract
type AnalyzeContractRequest struct {
	Filename string
	Data     []byte
	UserID   string
}

// AnalyzeContractResult represents the analysis of a contract
type AnalyzeContractResult struct {
	Analysis    string
	Risks       []string
	Suggestions []string
	FileID      uuid.UUID
}

// AnalyzeContract extracts the contract text, stores the upload and asks the
// model for a risk review.
func (s *ContractService) AnalyzeContract(ctx context.Context, req AnalyzeContractRequest) (*AnalyzeContractResult, error) {
	if len(req.Data) == 0 {
		return nil, ErrEmptyFile
	}
	if len(req.Data) > MaxContractBytes {
		return nil, ErrFileTooLarge
	}
	if s.generator == nil {
		return nil, ErrGeneratorNotConfigured
	}

	filename := filepath.Base(strings.TrimSpace(req.Filename))
	if filename == "." || filename == "/" || filename == "" {
		filename = "sozlesme.txt"
	}

	content := contractText(filename, req.Data)
	fileID := uuid.New()
	s.storeUpload(ctx, fileID, filename, req, utf8.RuneCountInString(content))

	content = truncateContract(content)
	prompt := buildContractPrompt(filename, content)

	analysis, err := generateWithRetry(ctx, s.generator, prompt)
	if err != nil {
		return nil, err
	}

	risks, suggestions := parseAnalysisLists(analysis)
	return &AnalyzeContractResult{
		Analysis:    strings.TrimSpace(analysis),
		Risks:       risks,
		Suggestions: suggestions,
		FileID:      fileID,
	}, nil
}

// storeUpload keeps the original file. Failures never block the analysis.
func (s *ContractService) storeUpload(ctx context.Context, fileID uuid.UUID, filename string, req AnalyzeContractRequest, textLen int) {
	if s.storage == nil {
		return
	}

	storagePath, err := s.storage.Upload(ctx, fileID, filename, bytes.NewReader(req.Data))
	if err != nil {
		log.Printf("Warning: failed to store contract %s: %v", filename, err)
		return
	}

	if s.fileRepo == nil {
		return
	}
	userID := req.UserID
	if userID == "" {
		userID = "anonymous"
	}
	record := &models.ContractFile{
		ID:          fileID,
		UserID:      userID,
		Filename:    filename,
		MimeType:    storage.ContentType(filename),
		Size:        int64(len(req.Data)),
		StoragePath: storagePath,
		TextLength:  textLen,
	}
	if err := s.fileRepo.Create(ctx, record); err != nil {
		log.Printf("Warning: failed to record contract %s: %v", fileID, err)
		// an unrecorded upload can never be downloaded
		if err := s.storage.Delete(ctx, storagePath); err != nil {
			log.Printf("Warning: failed to remove unrecorded contract %s: %v", storagePath, err)
		}
	}
}

// contractText returns the readable text of an upload. Unreadable files are
// replaced by a note carrying only the file name.
func contractText(filename string, data []byte) string {
	unreadable := fmt.Sprintf("Dosya adı: %s (İçerik okunamadı, lütfen analiz için genel bir değerlendirme yap.)", filename)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		text, err := extractPDFText(data)
		if err != nil {
			log.Printf("Warning: failed to extract PDF text from %s: %v", filename, err)
			return unreadable
		}
		return text
	case ".txt":
		return strings.ToValidUTF8(string(data), "")
	default:
		if utf8.Valid(data) {
			return string(data)
		}
		return unreadable
	}
}

func extractPDFText(data []byte) (text string, err error) {
	// the pdf reader panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	buf := new(strings.Builder)
	if _, err := io.Copy(buf, plain); err != nil {
		return "", fmt.Errorf("read extracted text: %w", err)
	}

	text = strings.TrimSpace(buf.String())
	if text == "" {
		return "", ErrNoExtractableText
	}
	return text, nil
}

func truncateContract(content string) string {
	if utf8.RuneCountInString(content) <= maxContractRunes {
		return content
	}
	return string([]rune(content)[:maxContractRunes]) + "...(devamı kesildi)"
}

func buildContractPrompt(filename, content string) string {
	return fmt.Sprintf(`Aşağıdaki sözleşme metnini Türk Hukuku açısından detaylı analiz et.

Dosya Adı: %s

YANITINI ŞU FORMATTA VER (Markdown kullan):

## Genel Değerlendirme
Sözleşmenin genel durumu hakkında 2-3 cümle özet.

## Riskli Maddeler
Her riskli madde için:
- **Madde:** [Madde içeriği veya numarası]
- **Risk:** [Neden riskli olduğu]
- **Öneri:** [Nasıl düzeltilebileceği]

## Olumlu Yönler
- Sözleşmenin güçlü yönleri

## Genel Öneriler
1. Birinci öneri
2. İkinci öneri
3. Üçüncü öneri

## Hukuki Uyarı
Bu analiz genel bilgilendirme amaçlıdır.

Sözleşme İçeriği:
%s
`, filename, content)
}

var (
	riskLineRe     = regexp.MustCompile(`^\s*[-*]\s*\*\*Risk:\*\*\s*(.+)$`)
	numberedLineRe = regexp.MustCompile(`^\s*\d+[.)]\s+(.+)$`)
)

// parseAnalysisLists pulls the risk lines and the numbered general
// suggestions out of the markdown analysis.
func parseAnalysisLists(analysis string) (risks, suggestions []string) {
	risks, suggestions = []string{}, []string{}

	inSuggestions := false
	sc := bufio.NewScanner(strings.NewReader(analysis))
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			inSuggestions = strings.Contains(line, "Öneriler")
			continue
		}
		if m := riskLineRe.FindStringSubmatch(line); m != nil {
			risks = append(risks, strings.TrimSpace(m[1]))
			continue
		}
		if inSuggestions {
			if m := numberedLineRe.FindStringSubmatch(line); m != nil {
				suggestions = append(suggestions, strings.TrimSpace(m[1]))
			}
		}
	}
	return risks, suggestions
}
