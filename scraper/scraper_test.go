package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"justlaw-backend/models"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(data)
}

func fixtureDoc(t *testing.T, name string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fixture(t, name)))
	require.NoError(t, err)
	return doc
}

// --- parsing against saved pages ---

func TestParseYargitayCards(t *testing.T) {
	records := parseYargitay(fixtureDoc(t, "yargitay_results.html"), 10)
	require.Len(t, records, 3)

	first := records[0]
	assert.Equal(t, "2023/1234", first.CaseNumber)
	assert.Equal(t, "2024/567", first.RulingNumber)
	assert.Equal(t, "2. Hukuk Dairesi", first.Chamber)
	assert.Equal(t, "12.03.2024", first.Date)
	assert.Equal(t, "Boşanma davasında tarafların kusur durumunun belirlenmesi; ağır kusurlu eşin tazminat talebinin reddi gerektiği.", first.Summary)
	assert.Equal(t, first.Summary, first.FullText)
	assert.Equal(t, models.SourceYargitay, first.Source)
	assert.False(t, first.IsSynthetic)

	second := records[1]
	assert.Equal(t, "2022/99", second.CaseNumber)
	assert.Empty(t, second.RulingNumber)
	assert.Empty(t, second.Date)
	assert.Equal(t, "12. Ceza Dairesi", second.Chamber)

	third := records[2]
	assert.Equal(t, "Hukuk Genel Kurulu", third.Chamber)
	assert.Equal(t, "Yargıtay Hukuk Genel Kurulu 05.06.2021", third.Summary, "title stands in for missing content")
}

func TestParseYargitayRespectsLimit(t *testing.T) {
	records := parseYargitay(fixtureDoc(t, "yargitay_results.html"), 1)
	require.Len(t, records, 1)
	assert.Equal(t, "2023/1234", records[0].CaseNumber)
}

func TestParseYargitayFallsBackToTableRows(t *testing.T) {
	records := parseYargitay(fixtureDoc(t, "yargitay_table.html"), 10)
	require.Len(t, records, 1)
	assert.Equal(t, "2020/4321", records[0].CaseNumber)
	assert.Equal(t, "2021/111", records[0].RulingNumber)
	assert.Equal(t, "9. Hukuk Dairesi", records[0].Chamber)
	assert.Equal(t, "01.02.2021", records[0].Date)
}

func TestParseSummaryIsTruncated(t *testing.T) {
	long := strings.Repeat("ğ", SummaryRunes+50)
	page := `<div class="card"><h5>E. 2020/1</h5><p>` + long + `</p></div>`
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)

	records := parseYargitay(doc, 5)
	require.Len(t, records, 1)
	assert.Equal(t, SummaryRunes, len([]rune(records[0].Summary)))
	assert.Equal(t, long, records[0].FullText)
}

func TestParseMalformedHTMLYieldsNothing(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<html><body><div class="card"><span>kırık sayfa`))
	require.NoError(t, err)
	assert.Empty(t, parseYargitay(doc, 10))
	assert.Empty(t, parseRekabet(doc, 10))
}

func TestParseDanistay(t *testing.T) {
	records := parseDanistay(fixtureDoc(t, "danistay_results.html"), 10)
	require.Len(t, records, 2)
	assert.Equal(t, "5. Daire", records[0].Chamber)
	assert.Equal(t, "2021/777", records[0].CaseNumber)
	assert.Equal(t, "2022/888", records[0].RulingNumber)
	assert.Equal(t, "Danıştay", records[1].Chamber)
	assert.Equal(t, "2019/10", records[1].CaseNumber)
}

func TestParseAnayasa(t *testing.T) {
	records := parseAnayasa(fixtureDoc(t, "anayasa_results.html"), 10)
	require.Len(t, records, 2)
	assert.Equal(t, "2022/120", records[0].CaseNumber)
	assert.Equal(t, "2023/45", records[0].RulingNumber)
	assert.Equal(t, "Anayasa Mahkemesi", records[0].Chamber)
	assert.Equal(t, models.SourceAnayasa, records[1].Source)
}

func TestParseAnayasaFallbackCards(t *testing.T) {
	records := parseAnayasa(fixtureDoc(t, "anayasa_cards.html"), 10)
	require.Len(t, records, 1)
	assert.Equal(t, "2018/90", records[0].CaseNumber)
}

func TestParseRekabet(t *testing.T) {
	records := parseRekabet(fixtureDoc(t, "rekabet_results.html"), 10)
	require.Len(t, records, 2)
	assert.Equal(t, "Rekabet Kurumu", records[0].Chamber)
	assert.Contains(t, records[0].Summary, "Rekabet ihlali")
	assert.Empty(t, records[0].CaseNumber)
}

func TestParseRekabetEmptyContainer(t *testing.T) {
	assert.Empty(t, parseRekabet(fixtureDoc(t, "rekabet_empty.html"), 10))
}

// --- live flow against test servers ---

func TestYargitaySearchUsesLandingTokens(t *testing.T) {
	results := fixture(t, "yargitay_results.html")
	landing := fixture(t, "yargitay_landing.html")

	var posted atomic.Bool
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/":
			http.SetCookie(w, &http.Cookie{Name: "ASP.NET_SessionId", Value: "sess-1", Path: "/"})
			w.Write([]byte(landing))
		case r.Method == http.MethodPost && r.URL.Path == "/aramasonuc":
			assert.NoError(t, r.ParseForm())
			assert.Equal(t, "tok-123", r.PostForm.Get("__RequestVerificationToken"))
			assert.Equal(t, "1", r.PostForm.Get("sayfa"))
			assert.Equal(t, "boşanma", r.PostForm.Get("aranan"))
			assert.NotEmpty(t, r.Header.Get("Referer"))
			c, err := r.Cookie("ASP.NET_SessionId")
			if assert.NoError(t, err) {
				assert.Equal(t, "sess-1", c.Value)
			}
			posted.Store(true)
			w.Write([]byte(results))
		default:
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()

	s := NewYargitayScraper(Options{BaseURL: ts.URL})
	defer s.Close()

	records, err := s.Search(context.Background(), "boşanma", 2)
	require.NoError(t, err)
	assert.True(t, posted.Load())
	assert.Len(t, records, 2)
}

func TestSearchNon200IsNetworkError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	s := NewDanistayScraper(Options{BaseURL: ts.URL})
	defer s.Close()

	records, err := s.Search(context.Background(), "imar", 5)
	require.Error(t, err)
	assert.Empty(t, records)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.Equal(t, ErrorNetwork, ClassifyError(err))
}

func TestSearchHonoursContextDeadline(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer ts.Close()
	defer close(release)

	s := NewAnayasaScraper(Options{BaseURL: ts.URL})
	defer s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := s.Search(ctx, "mülkiyet hakkı", 5)
	require.Error(t, err)
	assert.Equal(t, ErrorTimeout, ClassifyError(err))
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestRekabetSearchSendsQuery(t *testing.T) {
	page := fixture(t, "rekabet_empty.html")
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tr/KararArama", r.URL.Path)
		assert.Equal(t, "rekabet ihlali", r.URL.Query().Get("SearchText"))
		w.Write([]byte(page))
	}))
	defer ts.Close()

	s := NewRekabetScraper(Options{BaseURL: ts.URL})
	defer s.Close()

	records, err := s.Search(context.Background(), "rekabet ihlali", 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSearchReadsAtMostMaxPageBytes(t *testing.T) {
	old := maxPageBytes
	maxPageBytes = 1024
	defer func() { maxPageBytes = old }()

	page := fixture(t, "rekabet_results.html")
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// padding pushes every result past the cap
		w.Write([]byte("<html><body><!--" + strings.Repeat("x", 4096) + "-->"))
		w.Write([]byte(page))
	}))
	defer ts.Close()

	s := NewRekabetScraper(Options{BaseURL: ts.URL})
	defer s.Close()

	records, err := s.Search(context.Background(), "birleşme", 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestBlankQueryMakesNoRequest(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("unexpected request for blank query")
	}))
	defer ts.Close()

	for _, tag := range models.AllSources {
		s, err := New(tag, Options{BaseURL: ts.URL})
		require.NoError(t, err)
		records, err := s.Search(context.Background(), "   ", 10)
		assert.NoError(t, err)
		assert.Empty(t, records)
		s.Close()
	}
}

func TestNewUnknownSource(t *testing.T) {
	_, err := New(models.SourceTag("sayistay"), Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownSource)
}

func TestNewReturnsMatchingSource(t *testing.T) {
	for _, tag := range models.AllSources {
		s, err := New(tag, Options{})
		require.NoError(t, err)
		assert.Equal(t, tag, s.Source())
		s.Close()
	}
}
