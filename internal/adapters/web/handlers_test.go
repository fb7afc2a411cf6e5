package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quacker/internal/adapters/sentiment"
	"quacker/internal/adapters/session"
	"quacker/internal/adapters/store"
	"quacker/internal/domain"
	"quacker/internal/usecases"
)

var testNow = time.Date(2026, 3, 17, 12, 0, 0, 0, time.UTC)

type testServer struct {
	app  *fiber.App
	feed *usecases.FeedCoordinator
}

func newTestServer(t *testing.T, adminReset bool, limiter *RateLimiter, opts ...usecases.Option) testServer {
	t.Helper()
	opts = append([]usecases.Option{usecases.WithClock(clockwork.NewFakeClockAt(testNow))}, opts...)
	feed, err := usecases.NewFeedCoordinator(
		store.NewMemoryStore(),
		sentiment.NewAnalyzer(sentiment.DefaultLexicon()),
		session.NewUserContext(),
		opts...,
	)
	require.NoError(t, err)

	app := fiber.New()
	SetupRoutes(app, NewHandlers(feed, adminReset), limiter)
	return testServer{app: app, feed: feed}
}

func (s testServer) do(t *testing.T, method, path, body string) (int, string) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(data)
}

func TestCreateQuack_WithExplicitAuthor(t *testing.T) {
	s := newTestServer(t, false, nil)

	status, body := s.do(t, http.MethodPost, "/api/quacks",
		`{"text":"gm","author":{"handle":"u1","display_name":"User One"},"timestamp":"2026-03-17T10:00:00Z"}`)

	require.Equal(t, http.StatusCreated, status, body)
	var got quackDTO
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, "gm", got.Text)
	assert.Equal(t, "u1", got.Author.Handle)
	assert.Equal(t, domain.Positive, got.Sentiment.Label)
	assert.True(t, got.CreatedAt.Equal(time.Date(2026, 3, 17, 10, 0, 0, 0, time.UTC)))
	require.Len(t, s.feed.Quacks(), 1)
	assert.Equal(t, got.ID, s.feed.Quacks()[0].ID)
}

func TestCreateQuack_FallsBackToSessionUserAndClock(t *testing.T) {
	s := newTestServer(t, false, nil, usecases.WithCurrentUser(usecases.Alien))

	status, body := s.do(t, http.MethodPost, "/api/quacks", `{"text":""}`)

	require.Equal(t, http.StatusCreated, status, body)
	var got quackDTO
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, "alien", got.Author.Handle)
	assert.Equal(t, domain.Neutral, got.Sentiment.Label)
	assert.True(t, got.CreatedAt.Equal(testNow))
}

func TestCreateQuack_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"missing text", `{"author":{"handle":"u1"}}`, http.StatusBadRequest},
		{"invalid json", `{"text":`, http.StatusBadRequest},
		{"no author and no session", `{"text":"hi"}`, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, false, nil)
			status, body := s.do(t, http.MethodPost, "/api/quacks", tt.body)
			assert.Equal(t, tt.status, status, body)
			assert.Contains(t, body, `"error"`)
			assert.Empty(t, s.feed.Quacks())
		})
	}
}

func TestCreateQuack_RateLimited(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute, clockwork.NewFakeClockAt(testNow))
	s := newTestServer(t, false, limiter, usecases.WithCurrentUser(usecases.Robot))

	first, _ := s.do(t, http.MethodPost, "/api/quacks", `{"text":"one"}`)
	second, _ := s.do(t, http.MethodPost, "/api/quacks", `{"text":"two"}`)

	assert.Equal(t, http.StatusCreated, first)
	assert.Equal(t, http.StatusTooManyRequests, second)
	assert.Len(t, s.feed.Quacks(), 1)
}

func TestListQuacks_Order(t *testing.T) {
	s := newTestServer(t, false, nil, usecases.WithSeeds(usecases.DemoSeeds(testNow)...))

	texts := func(path string) []string {
		status, body := s.do(t, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, status)
		var got []quackDTO
		require.NoError(t, json.Unmarshal([]byte(body), &got))
		out := make([]string, len(got))
		for i, q := range got {
			out[i] = q.Author.Handle
		}
		return out
	}

	assert.Equal(t, []string{"robot", "alien", "monkey", "skull"}, texts("/api/quacks"))
	assert.Equal(t, []string{"skull", "monkey", "alien", "robot"}, texts("/api/quacks?order=newest"))

	status, _ := s.do(t, http.MethodGet, "/api/quacks?order=sideways", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestListQuacks_EmptyFeedIsEmptyArray(t *testing.T) {
	s := newTestServer(t, false, nil)

	status, body := s.do(t, http.MethodGet, "/api/quacks", "")

	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, body)
}

func TestSession_RoundTrip(t *testing.T) {
	s := newTestServer(t, false, nil)

	status, _ := s.do(t, http.MethodGet, "/api/session", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = s.do(t, http.MethodPut, "/api/session", `{"handle":"u1","display_name":"User One"}`)
	assert.Equal(t, http.StatusOK, status)
	status, _ = s.do(t, http.MethodPut, "/api/session", `{"handle":"u2"}`)
	assert.Equal(t, http.StatusOK, status)

	status, body := s.do(t, http.MethodGet, "/api/session", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"handle":"u2"}`, body)

	status, _ = s.do(t, http.MethodPut, "/api/session", `{"display_name":"nameless"}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestResetFeed(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		s := newTestServer(t, false, nil, usecases.WithSeeds(usecases.DemoSeeds(testNow)...))
		status, _ := s.do(t, http.MethodDelete, "/api/quacks", "")
		assert.Equal(t, http.StatusForbidden, status)
		assert.Len(t, s.feed.Quacks(), 4)
	})

	t.Run("enabled", func(t *testing.T) {
		s := newTestServer(t, true, nil, usecases.WithSeeds(usecases.DemoSeeds(testNow)...))
		status, _ := s.do(t, http.MethodDelete, "/api/quacks", "")
		assert.Equal(t, http.StatusNoContent, status)
		assert.Empty(t, s.feed.Quacks())
	})
}

func TestHome_RendersNewestFirst(t *testing.T) {
	s := newTestServer(t, false, nil,
		usecases.WithCurrentUser(usecases.Monkey),
		usecases.WithSeeds(usecases.DemoSeeds(testNow)...))

	status, body := s.do(t, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Quacking as 🐵 Monkey")
	skull := strings.Index(body, "Poopy-di scoop")
	robot := strings.Index(body, "St. Patrick")
	require.NotEqual(t, -1, skull)
	require.NotEqual(t, -1, robot)
	assert.Less(t, skull, robot, "latest insertion should render first")
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, false, nil)

	status, body := s.do(t, http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok","quacks":0}`, body)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(domain.ErrNoAuthor))
	assert.Equal(t, http.StatusServiceUnavailable, statusFor(domain.ErrStoreUnavailable))
	assert.Equal(t, http.StatusNotImplemented, statusFor(domain.ErrResetUnsupported))
	assert.Equal(t, http.StatusInternalServerError, statusFor(io.EOF))
}

func TestHandlers_WithoutUserContext(t *testing.T) {
	feed, err := usecases.NewFeedCoordinator(store.NewMemoryStore(), sentiment.NewAnalyzer(sentiment.DefaultLexicon()), nil)
	require.NoError(t, err)
	app := fiber.New()
	SetupRoutes(app, NewHandlers(feed, false), nil)
	s := testServer{app: app, feed: feed}

	status, body := s.do(t, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, status)
	assert.NotContains(t, body, "Quacking as")

	status, _ = s.do(t, http.MethodGet, "/api/session", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = s.do(t, http.MethodPut, "/api/session", `{"handle":"u1"}`)
	assert.Equal(t, http.StatusNotImplemented, status)

	status, _ = s.do(t, http.MethodPost, "/api/quacks", `{"text":"hi"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = s.do(t, http.MethodPost, "/api/quacks", `{"text":"hi","author":{"handle":"u1"}}`)
	assert.Equal(t, http.StatusCreated, status)
}
