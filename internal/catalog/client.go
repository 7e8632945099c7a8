// Package catalog queries the external game catalog (a GiantBomb-compatible
// /games endpoint) and normalizes its results.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://www.giantbomb.com/api"

	fieldList = "name,deck,original_game_rating,platforms"
	userAgent = "GameReviews/1.0"

	// The catalog allows roughly one request per second per key.
	rateLimit = 1
	rateBurst = 5

	defaultMaxRetries   = 3
	defaultInitialDelay = 1 * time.Second
	maxDelay            = 16 * time.Second

	statusOK = 1
)

// ErrMissingAPIKey is returned before any request is made when no key is configured.
var ErrMissingAPIKey = errors.New("catalog: no API key configured")

// Searcher finds games in the catalog.
type Searcher interface {
	Search(ctx context.Context, q Query) ([]Game, error)
}

// Options configures a Client.
type Options struct {
	APIKey       string
	BaseURL      string
	Timeout      time.Duration
	MaxRetries   int
	InitialDelay time.Duration
	Logger       *zap.Logger
}

// Client handles catalog requests with rate limiting and retry logic.
type Client struct {
	baseURL      string
	apiKey       string
	httpClient   *http.Client
	rateLimiter  *rate.Limiter
	maxRetries   int
	initialDelay time.Duration
	log          *zap.Logger
}

// NewClient creates a new catalog client.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = defaultMaxRetries
	}
	if opts.InitialDelay <= 0 {
		opts.InitialDelay = defaultInitialDelay
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	return &Client{
		baseURL:      strings.TrimRight(opts.BaseURL, "/"),
		apiKey:       opts.APIKey,
		httpClient:   &http.Client{Timeout: opts.Timeout},
		rateLimiter:  rate.NewLimiter(rate.Limit(rateLimit), rateBurst),
		maxRetries:   opts.MaxRetries,
		initialDelay: opts.InitialDelay,
		log:          opts.Logger.Named("catalog"),
	}
}

// Search looks up games matching q and returns them normalized, in catalog order.
func (c *Client) Search(ctx context.Context, q Query) ([]Game, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	var response searchResponse
	if err := c.doRequest(ctx, "/games/", buildSearchParams(q), &response); err != nil {
		return nil, fmt.Errorf("failed to search games: %w", err)
	}
	if response.StatusCode != statusOK {
		return nil, fmt.Errorf("catalog error %d: %s", response.StatusCode, response.Error)
	}

	games := make([]Game, 0, len(response.Results))
	for _, r := range response.Results {
		games = append(games, r.Normalize())
	}
	return games, nil
}

func buildSearchParams(q Query) url.Values {
	var filters []string
	if name := strings.TrimSpace(q.Name); name != "" {
		// The filter syntax uses ',' and ':' as separators.
		name = strings.NewReplacer(",", " ", ":", " ").Replace(name)
		filters = append(filters, "name:"+name)
	}
	if q.Platform != "" {
		filters = append(filters, "platforms:"+q.Platform)
	}

	sortKey := q.Sort
	if sortKey == "" {
		sortKey = "name"
	}
	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = DefaultLimit
	}

	params := url.Values{}
	params.Set("format", "json")
	params.Set("field_list", fieldList)
	params.Set("sort", sortKey+":asc")
	params.Set("limit", strconv.Itoa(limit))
	if len(filters) > 0 {
		params.Set("filter", strings.Join(filters, ","))
	}
	return params
}

// doRequest performs a GET with rate limiting and retries 429/5xx responses with exponential backoff.
func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values, result any) error {
	params.Set("api_key", c.apiKey)
	fullURL := c.baseURL + endpoint + "?" + params.Encode()

	var lastErr error
	delay := c.initialDelay

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.log.Warn("Retrying catalog request",
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay),
				zap.Error(lastErr))
			if err := sleep(ctx, delay); err != nil {
				return err
			}
			delay = min(delay*2, maxDelay)
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			continue
		}

		retryAfter, retry, err := c.decode(resp, result)
		if err == nil {
			return nil
		}
		if !retry {
			return err
		}
		lastErr = err
		if retryAfter > 0 {
			delay = retryAfter
		}
	}

	return fmt.Errorf("request failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

// decode reads one response. retry reports whether the status warrants another attempt.
func (c *Client) decode(resp *http.Response, result any) (retryAfter time.Duration, retry bool, err error) {
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		err = fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		if seconds, convErr := strconv.Atoi(resp.Header.Get("Retry-After")); convErr == nil && seconds > 0 {
			retryAfter = time.Duration(seconds) * time.Second
		}
		return retryAfter, shouldRetry(resp.StatusCode), err
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return 0, false, fmt.Errorf("failed to parse response: %w", err)
	}
	return 0, false, nil
}

func shouldRetry(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode >= http.StatusInternalServerError
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
