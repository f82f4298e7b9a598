// internal/service/harvest/fetcher.go

package harvest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// followerPattern matches follower counts as profile pages render them,
// e.g. "12,345 Followers" or "1.2k followers"
var followerPattern = regexp.MustCompile(`([\d][\d,.]*\s?[kKmM]?)\s+[Ff]ollowers`)

// HTTPProfileFetcher observes public profile pages over plain HTTP
type HTTPProfileFetcher struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
}

// NewHTTPProfileFetcher creates a profile fetcher for the given profile
// host, e.g. https://www.instagram.com
func NewHTTPProfileFetcher(baseURL, userAgent string, timeout time.Duration) *HTTPProfileFetcher {
	return &HTTPProfileFetcher{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		UserAgent: userAgent,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchFollowerCount loads the handle's public profile page and extracts
// the follower count from its description markup
func (f *HTTPProfileFetcher) FetchFollowerCount(ctx context.Context, handle string) (int, error) {
	url := fmt.Sprintf("%s/%s/", f.BaseURL, strings.TrimPrefix(handle, "@"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("error building request: %w", err)
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("error fetching profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("profile page returned status code %d", resp.StatusCode)
	}

	// Profile pages are large; the follower count sits in the head metadata.
	body, err := io.ReadAll(io.LimitReader(resp.Body, 512*1024))
	if err != nil {
		return 0, fmt.Errorf("error reading profile page: %w", err)
	}

	match := followerPattern.FindSubmatch(body)
	if match == nil {
		return 0, fmt.Errorf("no follower count found for %s", handle)
	}

	return ParseFollowerCount(string(match[1]))
}

// ParseFollowerCount converts follower text to a number. Accepts plain
// digits, comma grouping, and k/m shorthand ("1.2k" -> 1200, "3M" ->
// 3000000).
func ParseFollowerCount(text string) (int, error) {
	text = strings.TrimSpace(strings.ReplaceAll(text, ",", ""))
	if text == "" {
		return 0, fmt.Errorf("empty follower count")
	}

	scale := 1.0
	switch {
	case strings.HasSuffix(strings.ToLower(text), "k"):
		scale = 1_000
		text = text[:len(text)-1]
	case strings.HasSuffix(strings.ToLower(text), "m"):
		scale = 1_000_000
		text = text[:len(text)-1]
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable follower count %q: %w", text, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("negative follower count %q", text)
	}

	return int(value * scale), nil
}
