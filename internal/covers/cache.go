// Package covers keeps a local copy of book cover images so the API can serve
// them without hitting the cover host on every request.
package covers

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// maxCoverBytes bounds a single downloaded image.
const maxCoverBytes = 10 << 20

// Cache handles local caching of book cover images.
type Cache struct {
	cacheDir   string
	httpClient *http.Client
}

// NewCache creates a new cover cache at the specified directory.
func NewCache(cacheDir string) (*Cache, error) {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	return &Cache{
		cacheDir: cacheDir,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// GetCover returns the cached cover for a book, fetching it first when
// missing. An empty coverURL yields an empty path and no error.
func (c *Cache) GetCover(ctx context.Context, bookID, coverURL string) (string, error) {
	if coverURL == "" {
		return "", nil
	}

	cachePath := c.coverPath(bookID, coverURL)
	if _, err := os.Stat(cachePath); err == nil {
		return cachePath, nil
	}

	if err := c.fetchAndCache(ctx, coverURL, cachePath); err != nil {
		return "", err
	}
	return cachePath, nil
}

// Has reports whether the cover for this book and URL is already cached.
func (c *Cache) Has(bookID, coverURL string) bool {
	if coverURL == "" {
		return false
	}
	_, err := os.Stat(c.coverPath(bookID, coverURL))
	return err == nil
}

// InvalidateCover removes every cached cover of a book.
func (c *Cache) InvalidateCover(bookID string) error {
	if bookID == "" || strings.ContainsAny(bookID, `*?[\/`) {
		return fmt.Errorf("invalid book id %q", bookID)
	}

	matches, err := filepath.Glob(filepath.Join(c.cacheDir, "cover_"+bookID+"_*"))
	if err != nil {
		return err
	}
	for _, match := range matches {
		if err := os.Remove(match); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// coverPath is keyed by book id and a URL hash so a changed URL misses.
func (c *Cache) coverPath(bookID, coverURL string) string {
	hash := sha256.Sum256([]byte(coverURL))
	return filepath.Join(c.cacheDir, fmt.Sprintf("cover_%s_%x.jpg", filepath.Base(bookID), hash[:8]))
}

func (c *Cache) fetchAndCache(ctx context.Context, url, cachePath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Ruckus/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to fetch cover: status %d", resp.StatusCode)
	}

	// Write to a temp file in the same directory, then rename atomically.
	tmpFile, err := os.CreateTemp(c.cacheDir, "cover_tmp_")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()
	defer func() {
		tmpFile.Close()
		os.Remove(tmpPath)
	}()

	n, err := io.Copy(tmpFile, io.LimitReader(resp.Body, maxCoverBytes+1))
	if err != nil {
		return err
	}
	if n > maxCoverBytes {
		return fmt.Errorf("cover exceeds %d bytes", maxCoverBytes)
	}
	if n == 0 {
		return fmt.Errorf("cover response was empty")
	}

	tmpFile.Close()
	return os.Rename(tmpPath, cachePath)
}

// CacheDir returns the cache directory path.
func (c *Cache) CacheDir() string {
	return c.cacheDir
}
