// Package catalog searches the Open Library catalog and normalizes search
// results into Book records.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/ruckusreads/ruckus/internal/entities"
	domainerrors "github.com/ruckusreads/ruckus/internal/errors"
)

const (
	DefaultBaseURL     = "https://openlibrary.org"
	DefaultCoversURL   = "https://covers.openlibrary.org"
	DefaultSearchLimit = 20

	userAgent    = "Ruckus/1.0 (https://github.com/ruckusreads/ruckus)"
	searchFields = "key,title,author_name,first_publish_year,isbn,cover_i,number_of_pages_median,subject"
	maxSubjects  = 5
)

// Candidate is one search result as returned by Open Library.
type Candidate struct {
	Key                 string   `json:"key"`
	Title               string   `json:"title"`
	AuthorName          []string `json:"author_name,omitempty"`
	FirstPublishYear    int      `json:"first_publish_year,omitempty"`
	ISBN                []string `json:"isbn,omitempty"`
	CoverI              int      `json:"cover_i,omitempty"`
	NumberOfPagesMedian int      `json:"number_of_pages_median,omitempty"`
	Subject             []string `json:"subject,omitempty"`
}

// SearchResult is the search.json response envelope.
type SearchResult struct {
	NumFound int         `json:"numFound"`
	Docs     []Candidate `json:"docs"`
}

// OpenLibraryClient queries the Open Library search API.
type OpenLibraryClient struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter
	searchLimit int
}

// Option configures an OpenLibraryClient.
type Option func(*OpenLibraryClient)

// WithBaseURL points the client at another host, e.g. a test server.
func WithBaseURL(baseURL string) Option {
	return func(c *OpenLibraryClient) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithRateLimit sets the sustained requests per second. Zero or less disables
// limiting.
func WithRateLimit(perSecond float64) Option {
	return func(c *OpenLibraryClient) {
		if perSecond <= 0 {
			c.rateLimiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.rateLimiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithSearchLimit caps the number of results per free-text search.
func WithSearchLimit(limit int) Option {
	return func(c *OpenLibraryClient) {
		if limit > 0 {
			c.searchLimit = limit
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *OpenLibraryClient) {
		c.httpClient = httpClient
	}
}

// NewOpenLibraryClient creates a client limited to one request per second.
func NewOpenLibraryClient(opts ...Option) *OpenLibraryClient {
	c := &OpenLibraryClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:     DefaultBaseURL,
		rateLimiter: rate.NewLimiter(rate.Every(time.Second), 1),
		searchLimit: DefaultSearchLimit,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search runs a free-text search.
func (c *OpenLibraryClient) Search(ctx context.Context, query string) ([]Candidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domainerrors.InvalidArgument("search query is required")
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(c.searchLimit))
	params.Set("fields", searchFields)
	return c.search(ctx, params)
}

// SearchByISBN looks up a single book by ISBN-10 or ISBN-13. Hyphens and
// spaces are ignored.
func (c *OpenLibraryClient) SearchByISBN(ctx context.Context, isbn string) ([]Candidate, error) {
	normalized := NormalizeISBN(isbn)
	if normalized == "" {
		return nil, domainerrors.InvalidArgument(fmt.Sprintf("invalid ISBN %q", isbn))
	}

	params := url.Values{}
	params.Set("isbn", normalized)
	params.Set("limit", "1")
	params.Set("fields", searchFields)
	return c.search(ctx, params)
}

func (c *OpenLibraryClient) search(ctx context.Context, params url.Values) ([]Candidate, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, domainerrors.StoreUnavailable("open library", err)
	}

	searchURL := fmt.Sprintf("%s/search.json?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domainerrors.StoreUnavailable("open library", fmt.Errorf("search books: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domainerrors.StoreUnavailable("open library", fmt.Errorf("unexpected status: %d", resp.StatusCode))
	}

	var result SearchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, domainerrors.StoreUnavailable("open library", fmt.Errorf("decode search response: %w", err))
	}
	if result.Docs == nil {
		result.Docs = []Candidate{}
	}
	return result.Docs, nil
}

// ToBook normalizes a candidate into an unsaved Book.
func ToBook(c Candidate) *entities.Book {
	book := &entities.Book{
		Title:    c.Title,
		Authors:  c.AuthorName,
		ISBN13:   firstWithLength(c.ISBN, 13),
		ISBN10:   firstWithLength(c.ISBN, 10),
		Subjects: c.Subject,
	}

	if len(book.Authors) == 0 {
		book.Authors = []string{entities.UnknownAuthor}
	}
	if book.Subjects == nil {
		book.Subjects = []string{}
	}
	if len(book.Subjects) > maxSubjects {
		book.Subjects = book.Subjects[:maxSubjects]
	}

	if key := strings.TrimPrefix(c.Key, "/works/"); key != "" {
		book.OpenLibraryID = &key
	}
	if c.CoverI != 0 {
		cover := CoverURL(strconv.Itoa(c.CoverI), "id", "M")
		book.CoverURL = &cover
	}
	if c.NumberOfPagesMedian > 0 {
		pages := c.NumberOfPagesMedian
		book.PageCount = &pages
	}
	if c.FirstPublishYear > 0 {
		year := c.FirstPublishYear
		book.PublishYear = &year
	}
	return book
}

// CoverURL builds a covers.openlibrary.org image URL. kind is one of isbn,
// olid or id; size is S, M or L.
func CoverURL(identifier, kind, size string) string {
	return fmt.Sprintf("%s/b/%s/%s-%s.jpg", DefaultCoversURL, kind, identifier, size)
}

func firstWithLength(values []string, n int) *string {
	for _, v := range values {
		if len(v) == n {
			found := v
			return &found
		}
	}
	return nil
}

// NormalizeISBN removes hyphens and spaces and returns "" unless the result
// has 10 or 13 characters.
func NormalizeISBN(isbn string) string {
	isbn = strings.ReplaceAll(isbn, "-", "")
	isbn = strings.ReplaceAll(isbn, " ", "")
	isbn = strings.TrimSpace(isbn)

	if len(isbn) != 10 && len(isbn) != 13 {
		return ""
	}
	return isbn
}
