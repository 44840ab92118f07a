package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	BaseURL   = "https://www.federalreserve.gov/monetarypolicy"
	IndexURL  = BaseURL + "/fomc_historical_year.htm"
	UserAgent = "Mozilla/5.0 (Windows NT 6.1; Win64; x64)"
	Timeout   = 60 * time.Second

	// DefaultDelay is the minimum spacing between two page fetches.
	DefaultDelay = time.Second
)

// Scraper fetches FOMC historical pages
type Scraper struct {
	client   *http.Client
	baseURL  string
	indexURL string
	limiter  *rate.Limiter
}

// Option configures a Scraper
type Option func(*Scraper)

// WithBaseURL sets the prefix used to build per-year page URLs.
func WithBaseURL(u string) Option {
	return func(s *Scraper) {
		s.baseURL = strings.TrimRight(u, "/")
	}
}

// WithIndexURL sets the page year discovery reads.
func WithIndexURL(u string) Option {
	return func(s *Scraper) {
		s.indexURL = u
	}
}

// WithDelay sets the minimum spacing between fetches. Zero or negative disables it.
func WithDelay(d time.Duration) Option {
	return func(s *Scraper) {
		if d <= 0 {
			s.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		s.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Scraper) {
		s.client = c
	}
}

// New creates a new Scraper instance
func New(opts ...Option) *Scraper {
	s := &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		baseURL:  BaseURL,
		indexURL: IndexURL,
		limiter:  rate.NewLimiter(rate.Every(DefaultDelay), 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IndexURL returns the year index page URL.
func (s *Scraper) IndexURL() string {
	return s.indexURL
}

// YearURL returns the archive page URL for year.
func (s *Scraper) YearURL(year int) string {
	return fmt.Sprintf("%s/fomchistorical%d.htm", s.baseURL, year)
}

// Fetch waits for the rate limiter, then returns the body of url as text.
// Any transport error or non-200 status is returned.
func (s *Scraper) Fetch(ctx context.Context, url string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("waiting to fetch %s: %w", url, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s: unexpected status code: %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", url, err)
	}

	return string(body), nil
}

// DiscoverYears fetches the index page and returns the years it links to.
func (s *Scraper) DiscoverYears(ctx context.Context) ([]int, error) {
	content, err := s.Fetch(ctx, s.indexURL)
	if err != nil {
		return nil, err
	}

	years := DiscoverYears(content)
	if len(years) == 0 {
		return nil, fmt.Errorf("%w at %s", ErrNoYears, s.indexURL)
	}
	return years, nil
}
