// Package covers looks up book cover thumbnails via the Google Books
// volumes API.
package covers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Result is the outcome of a completed lookup. Found reports whether the
// API returned a usable thumbnail; a zero Result with a nil error means
// the lookup succeeded but no image is available. Callers that also see a
// non-nil error know the lookup itself failed rather than coming up empty.
type Result struct {
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	Found        bool   `json:"found"`
}

// GoogleBooksClient fetches cover thumbnails from the Google Books API.
type GoogleBooksClient struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rateLimiter
}

type rateLimiter struct {
	mu       sync.Mutex
	lastCall time.Time
	interval time.Duration
}

func newRateLimiter(interval time.Duration) *rateLimiter {
	return &rateLimiter{interval: interval}
}

func (r *rateLimiter) wait() {
	r.mu.Lock()
	defer r.mu.Unlock()

	since := time.Since(r.lastCall)
	if since < r.interval {
		time.Sleep(r.interval - since)
	}
	r.lastCall = time.Now()
}

// NewGoogleBooksClient creates a new Google Books API client with rate
// limiting.
func NewGoogleBooksClient() *GoogleBooksClient {
	return &GoogleBooksClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:     "https://www.googleapis.com",
		rateLimiter: newRateLimiter(time.Second), // 1 request per second
	}
}

// Lookup searches for a volume matching the title and ISBN and returns its
// thumbnail URL verbatim. A volume without image links yields Found=false
// with a nil error.
func (c *GoogleBooksClient) Lookup(ctx context.Context, title, isbn string) (Result, error) {
	query := strings.TrimSpace(title + " " + isbn)
	if query == "" {
		return Result{}, fmt.Errorf("title or isbn is required")
	}

	c.rateLimiter.wait()

	searchURL := fmt.Sprintf("%s/books/v1/volumes?q=%s&maxResults=1", c.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return Result{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "BookCatalog/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("search volumes: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var volumes volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&volumes); err != nil {
		return Result{}, fmt.Errorf("decode response: %w", err)
	}

	if len(volumes.Items) == 0 {
		return Result{}, nil
	}

	thumbnail := volumes.Items[0].VolumeInfo.ImageLinks.Thumbnail
	if thumbnail == "" {
		return Result{}, nil
	}

	return Result{ThumbnailURL: thumbnail, Found: true}, nil
}

// Google Books API response types (internal)

type volumesResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []volume `json:"items"`
}

type volume struct {
	ID         string     `json:"id"`
	VolumeInfo volumeInfo `json:"volumeInfo"`
}

type volumeInfo struct {
	Title      string     `json:"title"`
	ImageLinks imageLinks `json:"imageLinks"`
}

type imageLinks struct {
	SmallThumbnail string `json:"smallThumbnail"`
	Thumbnail      string `json:"thumbnail"`
}
