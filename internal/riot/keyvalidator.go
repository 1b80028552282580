package riot

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const (
	// Lightweight endpoint used only to probe key validity
	statusEndpoint = "/lol/status/v4/platform-data"

	defaultValidationBaseURL = "https://na1.api.riotgames.com"
	defaultValidationTimeout = 10 * time.Second
)

// KeyValidator checks whether an API key is still accepted by making a
// single request against the status endpoint.
type KeyValidator struct {
	httpClient *http.Client
	baseURL    string
}

// KeyValidatorOption configures a KeyValidator.
type KeyValidatorOption func(*KeyValidator)

// WithValidationBaseURL sets a custom base URL (useful for testing).
func WithValidationBaseURL(url string) KeyValidatorOption {
	return func(v *KeyValidator) {
		v.baseURL = url
	}
}

// WithValidationTimeout sets a custom timeout for validation requests.
func WithValidationTimeout(timeout time.Duration) KeyValidatorOption {
	return func(v *KeyValidator) {
		v.httpClient.Timeout = timeout
	}
}

// NewKeyValidator creates a KeyValidator with the given options.
func NewKeyValidator(opts ...KeyValidatorOption) *KeyValidator {
	v := &KeyValidator{
		httpClient: &http.Client{
			Timeout: defaultValidationTimeout,
		},
		baseURL: defaultValidationBaseURL,
	}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// ValidateKey probes the API with the given key.
// Returns:
//   - (true, nil) if the key is valid
//   - (false, nil) if the key is rejected (401/403)
//   - (false, error) if the request failed and validity is unknown
func (v *KeyValidator) ValidateKey(ctx context.Context, apiKey string) (bool, error) {
	if apiKey == "" {
		return false, fmt.Errorf("API key cannot be empty")
	}

	req, err := http.NewRequestWithContext(ctx, "GET", v.baseURL+statusEndpoint, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Riot-Token", apiKey)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return false, nil
	default:
		return false, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
}
