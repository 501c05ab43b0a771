package watttime

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ValidationError indicates that a caller supplied mutually exclusive or incomplete
// parameters. It is raised before any network call is made.
type ValidationError struct {
	Parameter string
	Message   string
}

func (err *ValidationError) Error() string {
	return fmt.Sprintf("invalid parameter '%s': %s", err.Parameter, err.Message)
}

// AuthenticationError indicates that a login failed or that a re-login after a
// server-side 401 was rejected as well
type AuthenticationError struct {
	StatusCode int
	Message    string
}

func (err *AuthenticationError) Error() string {
	if err.Message == "" {
		return fmt.Sprintf("authentication failed (status %d)", err.StatusCode)
	}
	return fmt.Sprintf("authentication failed (status %d): %s", err.StatusCode, err.Message)
}

// APIError indicates a non-2xx response to an endpoint call, carrying the endpoint name,
// the HTTP status and the server-provided error detail if present
type APIError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

func (err *APIError) Error() string {
	if err.Message == "" {
		return fmt.Sprintf("%s returned status %d", err.Endpoint, err.StatusCode)
	}
	return fmt.Sprintf("%s returned status %d: %s", err.Endpoint, err.StatusCode, err.Message)
}

var (
	errParamMissing = func(name string) *ValidationError {
		return &ValidationError{
			Parameter: name,
			Message:   "required but not set",
		}
	}
	errParamsMutuallyExclusive = func(a, b string) *ValidationError {
		return &ValidationError{
			Parameter: a,
			Message:   fmt.Sprintf("'%s' and '%s' are mutually exclusive", a, b),
		}
	}
	errParamsOneRequired = func(a, b string) *ValidationError {
		return &ValidationError{
			Parameter: a,
			Message:   fmt.Sprintf("exactly one of '%s' and '%s' has to be set", a, b),
		}
	}
	errParamInvalidChoice = func(name, value string, allowed ...string) *ValidationError {
		return &ValidationError{
			Parameter: name,
			Message:   fmt.Sprintf("'%s' is not one of [%s]", value, strings.Join(allowed, ", ")),
		}
	}
	errWindowIncomplete = &ValidationError{
		Parameter: "window",
		Message:   "start and end time have to be either both set or both omitted",
	}
)

// apiErrorMessage extracts the 'error' field the API attaches to failed responses.
// If the body is no such JSON object, the trimmed raw body is returned instead.
func apiErrorMessage(body []byte) string {
	detail := struct {
		Error string `json:"error"`
	}{}
	if err := json.Unmarshal(body, &detail); err == nil && detail.Error != "" {
		return detail.Error
	}
	return strings.TrimSpace(string(body))
}
