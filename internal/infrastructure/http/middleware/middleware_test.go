package middleware

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/catalog/internal/application/auth"
	"github.com/rezkam/catalog/internal/domain"
)

type fakeAuthenticator map[string]domain.Scope

func (f fakeAuthenticator) Authenticate(_ context.Context, apiKey string) (domain.Scope, error) {
	if apiKey == "explode" {
		return domain.Scope{}, errors.New("storage down")
	}
	s, ok := f[apiKey]
	if !ok {
		return domain.Scope{}, domain.ErrUnauthorized
	}
	return s, nil
}

func scopeEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := auth.ScopeFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		fmt.Fprintf(w, "%s/%t", s.AccountID, s.Admin)
	})
}

func TestAuth_Validate(t *testing.T) {
	a := NewAuth(fakeAuthenticator{
		"alice-key": domain.AccountScope("alice"),
		"root-key":  domain.AdminScope(),
	})
	h := a.Validate(scopeEcho())

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"missing header", "", http.StatusUnauthorized, ""},
		{"not bearer", "Basic abc", http.StatusUnauthorized, ""},
		{"unknown key", "Bearer nope", http.StatusUnauthorized, ""},
		{"storage failure", "Bearer explode", http.StatusUnauthorized, ""},
		{"account key", "Bearer alice-key", http.StatusOK, "alice/false"},
		{"admin key", "Bearer root-key", http.StatusOK, "/true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/movies", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			h.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}

func TestMaxBodyBytes(t *testing.T) {
	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		_, _ = w.Write(data)
	})
	h := MaxBodyBytes(8)(echo)

	t.Run("within limit", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("12345678")))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "12345678", w.Body.String())
	})

	t.Run("declared length over limit", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("123456789")))

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Contains(t, w.Body.String(), "PAYLOAD_TOO_LARGE")
	})

	t.Run("unknown length over limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", io.NopCloser(strings.NewReader("123456789")))
		req.ContentLength = -1
		w := httptest.NewRecorder()

		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})
}

func withScope(req *http.Request, s domain.Scope) *http.Request {
	return req.WithContext(auth.WithScope(req.Context(), s))
}

func TestRateLimiter_PerAccount(t *testing.T) {
	l := NewRateLimiter(0.001, 2)
	h := l.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	call := func(s domain.Scope) int {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, withScope(httptest.NewRequest(http.MethodGet, "/", nil), s))
		return w.Code
	}

	alice := domain.AccountScope("alice")
	assert.Equal(t, http.StatusOK, call(alice))
	assert.Equal(t, http.StatusOK, call(alice))
	assert.Equal(t, http.StatusTooManyRequests, call(alice))

	assert.Equal(t, http.StatusOK, call(domain.AccountScope("bob")), "other accounts keep their own bucket")
	assert.Equal(t, http.StatusOK, call(domain.AdminScope()))
}

func TestRateLimiter_PrunesIdleBuckets(t *testing.T) {
	l := NewRateLimiter(1, 1)
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return clock }

	l.limiter("stale")
	clock = clock.Add(bucketIdle + time.Minute)
	l.limiter("fresh")
	l.prune(clock.Add(-bucketIdle))

	require.Len(t, l.limiters, 1)
	assert.Contains(t, l.limiters, "fresh")
}
