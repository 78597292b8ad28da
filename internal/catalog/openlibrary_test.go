package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	domainerrors "github.com/ruckusreads/ruckus/internal/errors"
)

func TestNormalizeISBN(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"978-0-13-468599-1", "9780134685991"},
		{"0-13-468599-6", "0134685996"},
		{"978 0 13 468599 1", "9780134685991"},
		{"9780134685991", "9780134685991"},
		{"0134685996", "0134685996"},
		{"123", ""},            // Too short
		{"12345678901234", ""}, // Too long
		{"", ""},
		{"  978-0-13-468599-1  ", "9780134685991"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := NormalizeISBN(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizeISBN(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func newTestClient(serverURL string) *OpenLibraryClient {
	return NewOpenLibraryClient(WithBaseURL(serverURL), WithRateLimit(0))
}

func TestSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search.json" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if got := r.URL.Query().Get("q"); got != "left hand of darkness" {
			t.Errorf("unexpected query %q", got)
		}
		if got := r.URL.Query().Get("limit"); got != "20" {
			t.Errorf("expected limit 20, got %q", got)
		}
		if r.URL.Query().Get("fields") == "" {
			t.Error("expected fields parameter")
		}

		response := SearchResult{
			NumFound: 1,
			Docs: []Candidate{{
				Key:              "/works/OL59805W",
				Title:            "The Left Hand of Darkness",
				AuthorName:       []string{"Ursula K. Le Guin"},
				FirstPublishYear: 1969,
				ISBN:             []string{"0441478123", "9780441478125"},
				CoverI:           8231851,
			}},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	candidates, err := newTestClient(server.URL).Search(context.Background(), "  left hand of darkness ")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	if candidates[0].Title != "The Left Hand of Darkness" {
		t.Errorf("unexpected title %q", candidates[0].Title)
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	client := NewOpenLibraryClient(WithBaseURL("http://127.0.0.1:1"))

	_, err := client.Search(context.Background(), "   ")
	if !errors.Is(err, domainerrors.ErrInvalidArgument) {
		t.Errorf("expected invalid argument, got %v", err)
	}
}

func TestSearch_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Search(context.Background(), "dune")
	if !errors.Is(err, domainerrors.ErrStoreUnavailable) {
		t.Errorf("expected store unavailable, got %v", err)
	}
}

func TestSearch_NoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"numFound":0}`))
	}))
	defer server.Close()

	candidates, err := newTestClient(server.URL).Search(context.Background(), "zzzz")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if candidates == nil || len(candidates) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", candidates)
	}
}

func TestSearchByISBN(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("isbn"); got != "9780134685991" {
			t.Errorf("expected normalized isbn, got %q", got)
		}
		if got := r.URL.Query().Get("limit"); got != "1" {
			t.Errorf("expected limit 1, got %q", got)
		}
		response := SearchResult{NumFound: 1, Docs: []Candidate{{Key: "/works/OL1W", Title: "Effective Java"}}}
		_ = json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	candidates, err := newTestClient(server.URL).SearchByISBN(context.Background(), "978-0-13-468599-1")
	if err != nil {
		t.Fatalf("SearchByISBN failed: %v", err)
	}
	if len(candidates) != 1 || candidates[0].Title != "Effective Java" {
		t.Errorf("unexpected candidates %#v", candidates)
	}
}

func TestSearchByISBN_Invalid(t *testing.T) {
	client := NewOpenLibraryClient(WithBaseURL("http://127.0.0.1:1"))

	_, err := client.SearchByISBN(context.Background(), "12-3")
	if !errors.Is(err, domainerrors.ErrInvalidArgument) {
		t.Errorf("expected invalid argument, got %v", err)
	}
}

func TestSearch_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not be sent")
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewOpenLibraryClient(WithBaseURL(server.URL)).Search(ctx, "dune")
	if !errors.Is(err, domainerrors.ErrStoreUnavailable) {
		t.Errorf("expected store unavailable, got %v", err)
	}
}

func TestToBook(t *testing.T) {
	subjects := []string{"a", "b", "c", "d", "e", "f", "g"}
	book := ToBook(Candidate{
		Key:                 "/works/OL59805W",
		Title:               "The Left Hand of Darkness",
		AuthorName:          []string{"Ursula K. Le Guin"},
		FirstPublishYear:    1969,
		ISBN:                []string{"bogus", "0441478123", "9780441478125", "9780441007318"},
		CoverI:              8231851,
		NumberOfPagesMedian: 304,
		Subject:             subjects,
	})

	if book.Title != "The Left Hand of Darkness" {
		t.Errorf("unexpected title %q", book.Title)
	}
	if book.OpenLibraryID == nil || *book.OpenLibraryID != "OL59805W" {
		t.Errorf("expected open library id OL59805W, got %v", book.OpenLibraryID)
	}
	if book.ISBN13 == nil || *book.ISBN13 != "9780441478125" {
		t.Errorf("expected first 13-digit ISBN, got %v", book.ISBN13)
	}
	if book.ISBN10 == nil || *book.ISBN10 != "0441478123" {
		t.Errorf("expected first 10-digit ISBN, got %v", book.ISBN10)
	}
	if book.CoverURL == nil || *book.CoverURL != "https://covers.openlibrary.org/b/id/8231851-M.jpg" {
		t.Errorf("unexpected cover url %v", book.CoverURL)
	}
	if book.PageCount == nil || *book.PageCount != 304 {
		t.Errorf("unexpected page count %v", book.PageCount)
	}
	if book.PublishYear == nil || *book.PublishYear != 1969 {
		t.Errorf("unexpected publish year %v", book.PublishYear)
	}
	if !reflect.DeepEqual(book.Subjects, []string{"a", "b", "c", "d", "e"}) {
		t.Errorf("expected first five subjects, got %v", book.Subjects)
	}
	if book.ID != "" {
		t.Error("ToBook must not assign an id")
	}
}

func TestToBook_Defaults(t *testing.T) {
	book := ToBook(Candidate{Key: "/works/OL1W", Title: "Anonymous Pamphlet"})

	if !reflect.DeepEqual(book.Authors, []string{"Unknown"}) {
		t.Errorf("expected Unknown author, got %v", book.Authors)
	}
	if book.ISBN10 != nil || book.ISBN13 != nil {
		t.Error("expected no ISBNs")
	}
	if book.CoverURL != nil {
		t.Error("expected no cover url")
	}
	if book.PageCount != nil || book.PublishYear != nil {
		t.Error("expected nil page count and year")
	}
	if book.Subjects == nil || len(book.Subjects) != 0 {
		t.Errorf("expected empty subjects, got %#v", book.Subjects)
	}
}
