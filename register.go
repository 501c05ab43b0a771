package watttime

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Registration holds the account information for the one-shot self registration
type Registration struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	Email        string `json:"email"`
	Organization string `json:"org,omitempty"`
}

// RegistrationResult reports the outcome of a registration attempt.
// A rejected registration (malformed input, taken username) is a result rather than an
// error as account creation is expected to fail on user-correctable input.
type RegistrationResult struct {
	OK      bool
	Message string
}

// Register creates a new WattTime account using exactly one unauthenticated request
// against the official API. No session is required.
func Register(ctx context.Context, registration Registration) (*RegistrationResult, error) {
	return RegisterWith(ctx, http.DefaultClient, DefaultBaseURL, registration)
}

// RegisterWith is Register with an explicit HTTP client and API base URL
func RegisterWith(ctx context.Context, client *http.Client, baseURL string, registration Registration) (*RegistrationResult, error) {
	payload, err := json.Marshal(registration)
	if err != nil {
		return nil, err
	}

	endpoint := strings.TrimSuffix(baseURL, "/") + "/register"
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("register request: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("read register response: %w", err)
	}

	switch {
	case response.StatusCode >= 200 && response.StatusCode <= 299:
		ack := struct {
			OK string `json:"ok"`
		}{}
		_ = json.Unmarshal(body, &ack)
		return &RegistrationResult{
			OK:      true,
			Message: ack.OK,
		}, nil
	case response.StatusCode == http.StatusBadRequest:
		// A bad request indicates malformed input; the server-supplied reason is
		// reported to the caller instead of raised
		return &RegistrationResult{
			Message: apiErrorMessage(body),
		}, nil
	default:
		return nil, &APIError{
			Endpoint:   "/register",
			StatusCode: response.StatusCode,
			Message:    apiErrorMessage(body),
		}
	}
}
