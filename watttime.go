// Package watttime implements a typed client for the WattTime v2 grid emissions API.
//
// A Session logs in once on construction and caches the issued bearer token.
// Before every endpoint call the token expiry is checked lazily and an expired token
// is replaced by a fresh login, so callers never have to manage the token themselves.
package watttime

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/rs/zerolog"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// tokenLifetime is the period the client treats an issued token as valid.
// The server honors tokens for 30 minutes; the missing minute is a safety margin
// that keeps a token from expiring between the client-side check and the request.
const tokenLifetime = 29 * time.Minute

// Session represents an authenticated connection to the grid emissions endpoints.
// It owns the bearer token and its expiry instant and refreshes both as needed.
// A Session is safe for concurrent use; the token check-and-swap is serialized
// while ordinary endpoint calls may run in parallel.
type Session struct {
	baseURL  string
	username string
	password string

	client *http.Client
	logger zerolog.Logger
	now    func() time.Time

	mutex     sync.Mutex
	token     string
	expiresAt time.Time
}

// NewSession creates a new session and immediately logs in using the configured credentials.
// If the login fails, no session is returned.
func NewSession(ctx context.Context, config *Config) (*Session, error) {
	if config == nil {
		return nil, errParamMissing("config")
	}
	if config.Username == "" {
		return nil, errParamMissing("username")
	}
	if config.Password == "" {
		return nil, errParamMissing("password")
	}

	baseURL := strings.TrimSuffix(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := config.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	logger := zerolog.Nop()
	if config.Logger != nil {
		logger = *config.Logger
	}

	session := &Session{
		baseURL:  baseURL,
		username: config.Username,
		password: config.Password,
		client:   client,
		logger:   logger,
		now:      time.Now,
	}
	if err := session.login(ctx); err != nil {
		return nil, err
	}
	return session, nil
}

// login performs the '/login' request using HTTP basic credentials and installs the
// returned token together with its expiry instant.
// Callers sharing the session have to hold the token mutex.
func (session *Session) login(ctx context.Context) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, session.baseURL+"/login", nil)
	if err != nil {
		return err
	}
	request.SetBasicAuth(session.username, session.password)

	response, err := session.client.Do(request)
	if err != nil {
		return fmt.Errorf("login request: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("read login response: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return &AuthenticationError{
			StatusCode: response.StatusCode,
			Message:    apiErrorMessage(body),
		}
	}

	payload := struct {
		Token string `json:"token"`
	}{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("decode login response: %w", err)
	}

	session.token = payload.Token
	session.expiresAt = session.now().Add(tokenLifetime)
	session.logger.Debug().Time("expires_at", session.expiresAt).Msg("acquired new API token")
	return nil
}

// ensureToken makes sure a non-expired token is installed and returns it.
// A token is valid strictly before its expiry instant; once the current time has
// reached it, a new login is performed before the pending call may proceed.
func (session *Session) ensureToken(ctx context.Context) (string, error) {
	session.mutex.Lock()
	defer session.mutex.Unlock()

	if session.now().Before(session.expiresAt) {
		return session.token, nil
	}

	session.logger.Debug().Msg("API token expired, performing re-login")
	if err := session.login(ctx); err != nil {
		return "", err
	}
	return session.token, nil
}

// refreshRejectedToken handles a token the server reported as unauthorized despite the
// client-side timer. It forces a single re-login unless a concurrent caller has already
// installed a different token in the meantime.
func (session *Session) refreshRejectedToken(ctx context.Context, rejected string) (string, error) {
	session.mutex.Lock()
	defer session.mutex.Unlock()

	if session.token != rejected {
		return session.token, nil
	}

	if err := session.login(ctx); err != nil {
		return "", err
	}
	return session.token, nil
}

// get issues one authenticated GET request against the given endpoint and returns the raw
// response body. If the server rejects the token with a 401, the session re-logs in and
// retries the request exactly once; a second 401 surfaces as an AuthenticationError.
// Any other non-2xx status surfaces as an APIError.
func (session *Session) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	token, err := session.ensureToken(ctx)
	if err != nil {
		return nil, err
	}

	status, body, err := session.dispatch(ctx, endpoint, params, token)
	if err != nil {
		return nil, err
	}

	if status == http.StatusUnauthorized {
		// The token was revoked server-side before the client-side timer ran out
		session.logger.Debug().Str("endpoint", endpoint).Msg("token rejected server-side, re-login and retry")
		token, err = session.refreshRejectedToken(ctx, token)
		if err != nil {
			return nil, err
		}
		status, body, err = session.dispatch(ctx, endpoint, params, token)
		if err != nil {
			return nil, err
		}
		if status == http.StatusUnauthorized {
			return nil, &AuthenticationError{
				StatusCode: status,
				Message:    apiErrorMessage(body),
			}
		}
	}

	if status < 200 || status > 299 {
		return nil, &APIError{
			Endpoint:   endpoint,
			StatusCode: status,
			Message:    apiErrorMessage(body),
		}
	}
	return body, nil
}

// getJSON issues an authenticated GET request and decodes the JSON response body into target
func (session *Session) getJSON(ctx context.Context, endpoint string, params url.Values, target any) error {
	body, err := session.get(ctx, endpoint, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}

// dispatch performs a single bearer-authenticated GET request and reads its body
func (session *Session) dispatch(ctx context.Context, endpoint string, params url.Values, token string) (int, []byte, error) {
	requestURL := session.baseURL + endpoint
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return 0, nil, err
	}
	request.Header.Set("Authorization", "Bearer "+token)

	response, err := session.client.Do(request)
	if err != nil {
		return 0, nil, fmt.Errorf("%s request: %w", endpoint, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read %s response: %w", endpoint, err)
	}
	return response.StatusCode, body, nil
}
