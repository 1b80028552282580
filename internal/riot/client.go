package riot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Region selects which geographic routing host match-v5 calls go to.
type Region string

const (
	RegionAmericas Region = "americas"
	RegionEurope   Region = "europe"
	RegionAsia     Region = "asia"
)

// Valid reports whether r is one of the supported routing regions.
func (r Region) Valid() bool {
	switch r {
	case RegionAmericas, RegionEurope, RegionAsia:
		return true
	}
	return false
}

// BaseURL returns the routing host for the region.
func (r Region) BaseURL() string {
	return fmt.Sprintf("https://%s.api.riotgames.com", r)
}

const (
	// Rate limits for a dev key, with headroom (actual: 20/s, 100/2min)
	requestsPerSecond = 15
	requestsPer2Min   = 90

	defaultTimeout = 30 * time.Second
)

// Client is a Riot API client. Each call is a single best-effort attempt:
// no caching, no retries. Failures come back as *APIError so callers can
// branch on the kind.
type Client struct {
	apiKey     string
	region     Region
	baseURL    string
	httpClient *http.Client

	// Sliding-window request pacing. This delays requests to stay under
	// the key's quota; it never re-sends one.
	mu          sync.Mutex
	shortWindow []time.Time
	longWindow  []time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithRegion sets the routing region (default americas, or RIOT_REGION).
func WithRegion(region Region) Option {
	return func(c *Client) {
		c.region = region
		c.baseURL = region.BaseURL()
	}
}

// WithBaseURL overrides the API host (useful for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a Riot API client. The credential is read from the
// RIOT_API_KEY environment variable, never hard-coded.
func NewClient(opts ...Option) (*Client, error) {
	apiKey := os.Getenv("RIOT_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("RIOT_API_KEY environment variable not set")
	}

	region := RegionAmericas
	if env := Region(os.Getenv("RIOT_REGION")); env != "" {
		if !env.Valid() {
			return nil, fmt.Errorf("invalid RIOT_REGION %q (want americas, europe, or asia)", env)
		}
		region = env
	}

	c := &Client{
		apiKey:  apiKey,
		region:  region,
		baseURL: region.BaseURL(),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Region returns the configured routing region.
func (c *Client) Region() Region {
	return c.region
}

// pace blocks until another request fits inside the rate windows.
func (c *Client) pace() {
	for {
		c.mu.Lock()

		now := time.Now()
		oneSecondAgo := now.Add(-1 * time.Second)
		twoMinutesAgo := now.Add(-2 * time.Minute)

		newShort := c.shortWindow[:0]
		for _, t := range c.shortWindow {
			if t.After(oneSecondAgo) {
				newShort = append(newShort, t)
			}
		}
		c.shortWindow = newShort

		newLong := c.longWindow[:0]
		for _, t := range c.longWindow {
			if t.After(twoMinutesAgo) {
				newLong = append(newLong, t)
			}
		}
		c.longWindow = newLong

		if len(c.shortWindow) >= requestsPerSecond {
			waitTime := c.shortWindow[0].Add(time.Second).Sub(now) + 50*time.Millisecond
			c.mu.Unlock()
			time.Sleep(waitTime)
			continue
		}

		if len(c.longWindow) >= requestsPer2Min {
			waitTime := c.longWindow[0].Add(2*time.Minute).Sub(now) + 50*time.Millisecond
			c.mu.Unlock()
			time.Sleep(waitTime)
			continue
		}

		c.shortWindow = append(c.shortWindow, now)
		c.longWindow = append(c.longWindow, now)
		c.mu.Unlock()
		return
	}
}

// get performs one authenticated request and decodes the JSON body into result.
func (c *Client) get(ctx context.Context, url string, result interface{}) error {
	c.pace()

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return &APIError{Kind: KindValidation, Message: "building request", Err: err}
	}
	req.Header.Set("X-Riot-Token", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Kind: KindTransport, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return &APIError{Kind: KindTransport, Status: resp.StatusCode, Message: "decoding response", Err: err}
		}
		return nil

	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &APIError{Kind: KindAuth, Status: resp.StatusCode, Message: "API key rejected"}

	case resp.StatusCode == http.StatusNotFound:
		return &APIError{Kind: KindNotFound, Status: resp.StatusCode, Message: "resource not found"}

	case resp.StatusCode == http.StatusTooManyRequests:
		retryAfter := 0
		if ra := resp.Header.Get("Retry-After"); ra != "" {
			retryAfter, _ = strconv.Atoi(ra)
		}
		return &APIError{
			Kind:       KindRateLimited,
			Status:     resp.StatusCode,
			RetryAfter: retryAfter,
			Message:    "rate limit exceeded",
		}

	default:
		return &APIError{
			Kind:    KindTransport,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("unexpected status %d", resp.StatusCode),
		}
	}
}

// GetMatch fetches one match record by ID (e.g. "NA1_5404818015").
// Malformed IDs beyond an empty check are left to the API to reject.
func (c *Client) GetMatch(ctx context.Context, matchID string) (*MatchResponse, error) {
	if strings.TrimSpace(matchID) == "" {
		return nil, &APIError{Kind: KindValidation, Message: "match ID is empty"}
	}

	url := fmt.Sprintf("%s/lol/match/v5/matches/%s", c.baseURL, matchID)

	var match MatchResponse
	if err := c.get(ctx, url, &match); err != nil {
		return nil, err
	}
	return &match, nil
}

// GetAccountByRiotID resolves a Riot ID (gameName#tagLine) to an account.
func (c *Client) GetAccountByRiotID(ctx context.Context, gameName, tagLine string) (*AccountResponse, error) {
	if gameName == "" || tagLine == "" {
		return nil, &APIError{Kind: KindValidation, Message: "game name and tag line are required"}
	}

	url := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s", c.baseURL, gameName, tagLine)

	var account AccountResponse
	if err := c.get(ctx, url, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// GetMatchHistory fetches recent ranked solo queue match IDs for a player.
func (c *Client) GetMatchHistory(ctx context.Context, puuid string, count int) ([]string, error) {
	if puuid == "" {
		return nil, &APIError{Kind: KindValidation, Message: "puuid is empty"}
	}

	url := fmt.Sprintf("%s/lol/match/v5/matches/by-puuid/%s/ids?queue=420&count=%d",
		c.baseURL, puuid, count)

	var matchIDs []string
	if err := c.get(ctx, url, &matchIDs); err != nil {
		return nil, err
	}
	return matchIDs, nil
}
