package watttime

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

// stubAPI is an in-process stand-in for the remote API.
// Its login endpoint hands out the tokens "token-1", "token-2", ... in order.
type stubAPI struct {
	server *httptest.Server
	router chi.Router

	mutex       sync.Mutex
	logins      int
	loginStatus int
}

func newStubAPI(t *testing.T) *stubAPI {
	stub := &stubAPI{
		router: chi.NewRouter(),
	}
	stub.router.Get("/login", func(writer http.ResponseWriter, request *http.Request) {
		stub.mutex.Lock()
		defer stub.mutex.Unlock()
		if stub.loginStatus != 0 {
			writer.WriteHeader(stub.loginStatus)
			_, _ = writer.Write([]byte(`{"error":"invalid credentials"}`))
			return
		}
		stub.logins++
		_ = json.NewEncoder(writer).Encode(map[string]string{
			"token": fmt.Sprintf("token-%d", stub.logins),
		})
	})
	stub.server = httptest.NewServer(stub.router)
	t.Cleanup(stub.server.Close)
	return stub
}

// handle registers an additional GET endpoint on the stub
func (stub *stubAPI) handle(pattern string, handler http.HandlerFunc) {
	stub.router.Get(pattern, handler)
}

// failLogins makes all further login attempts fail with the given status
func (stub *stubAPI) failLogins(status int) {
	stub.mutex.Lock()
	defer stub.mutex.Unlock()
	stub.loginStatus = status
}

// loginCount returns the amount of successful logins the stub has served
func (stub *stubAPI) loginCount() int {
	stub.mutex.Lock()
	defer stub.mutex.Unlock()
	return stub.logins
}

// bearer extracts the bearer token of an incoming request
func bearer(request *http.Request) string {
	return strings.TrimSpace(strings.TrimPrefix(request.Header.Get("Authorization"), "Bearer"))
}

// fakeClock is a manually advanced clock injected into sessions under test
type fakeClock struct {
	mutex sync.Mutex
	time  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{
		time: time.Date(2023, 5, 12, 10, 0, 0, 0, time.UTC),
	}
}

func (clock *fakeClock) Now() time.Time {
	clock.mutex.Lock()
	defer clock.mutex.Unlock()
	return clock.time
}

func (clock *fakeClock) Advance(duration time.Duration) {
	clock.mutex.Lock()
	defer clock.mutex.Unlock()
	clock.time = clock.time.Add(duration)
}

// newTestSession creates a session against the stub and installs a fake clock,
// re-anchoring the expiry of the initially issued token to it
func newTestSession(t *testing.T, stub *stubAPI) (*Session, *fakeClock) {
	session, err := NewSession(context.Background(), &Config{
		Username: "user",
		Password: "pass",
		BaseURL:  stub.server.URL,
	})
	require.NoError(t, err)

	clock := newFakeClock()
	session.mutex.Lock()
	session.now = clock.Now
	session.expiresAt = clock.Now().Add(tokenLifetime)
	session.mutex.Unlock()
	return session, clock
}
