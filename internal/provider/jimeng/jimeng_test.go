package jimeng

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mizuha/rednote-remix/internal/provider"
	"github.com/mizuha/rednote-remix/internal/types"
)

type stubArk struct {
	srv      *httptest.Server
	calls    atomic.Int64
	mu       sync.Mutex
	models   []string
	prompts  []string
	status   int
	emptyURL bool
}

func newStubArk(t *testing.T) *stubArk {
	t.Helper()
	s := &stubArk{status: http.StatusOK}

	mux := http.NewServeMux()
	mux.HandleFunc("/images/generations", func(w http.ResponseWriter, r *http.Request) {
		n := s.calls.Add(1)

		var body struct {
			Model  string `json:"model"`
			Prompt string `json:"prompt"`
			N      int    `json:"n"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 1, body.N)

		s.mu.Lock()
		s.models = append(s.models, body.Model)
		s.prompts = append(s.prompts, body.Prompt)
		s.mu.Unlock()

		if s.status != http.StatusOK {
			w.WriteHeader(s.status)
			_, _ = w.Write([]byte(`{"error":{"message":"nope"}}`))
			return
		}

		url := fmt.Sprintf("https://example.com/generated-%d.png", n)
		if s.emptyURL {
			url = ""
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"created":1,"data":[{"url":%q}]}`, url)
	})

	s.srv = httptest.NewServer(mux)
	t.Cleanup(s.srv.Close)
	return s
}

func TestConfigured(t *testing.T) {
	assert.False(t, New("", "").Configured())
	assert.False(t, New("key", "").Configured())
	assert.False(t, New("", "ep-123").Configured())
	assert.True(t, New("key", "ep-123").Configured())
}

func TestGenerate_OneRequestPerImage(t *testing.T) {
	stub := newStubArk(t)
	g := New("key", "ep-20240701-abc", WithBaseURL(stub.srv.URL))

	result, err := g.Generate(context.Background(), types.ImageRequest{Prompt: "foggy harbor at dawn", Count: 3})
	require.NoError(t, err)

	assert.Equal(t, int64(3), stub.calls.Load())
	assert.Len(t, result.Refs, 3)
	assert.Equal(t, ProviderName, result.Provider)
	for _, ref := range result.Refs {
		assert.NotEmpty(t, ref.URL)
	}
	for _, model := range stub.models {
		assert.Equal(t, "ep-20240701-abc", model)
	}
	for _, prompt := range stub.prompts {
		assert.Equal(t, "foggy harbor at dawn", prompt)
	}
}

func TestGenerate_RateLimited(t *testing.T) {
	stub := newStubArk(t)
	stub.status = http.StatusTooManyRequests
	g := New("key", "ep-123", WithBaseURL(stub.srv.URL))

	_, err := g.Generate(context.Background(), types.ImageRequest{Prompt: "p", Count: 1})

	var pErr *provider.Error
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, provider.KindRateLimited, pErr.Kind)
	assert.Equal(t, ProviderName, pErr.Provider)
}

func TestGenerate_RemoteFailure(t *testing.T) {
	stub := newStubArk(t)
	stub.status = http.StatusInternalServerError
	g := New("key", "ep-123", WithBaseURL(stub.srv.URL))

	_, err := g.Generate(context.Background(), types.ImageRequest{Prompt: "p", Count: 1})

	var pErr *provider.Error
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, provider.KindRemoteFailure, pErr.Kind)
}

func TestGenerate_EmptyURL(t *testing.T) {
	stub := newStubArk(t)
	stub.emptyURL = true
	g := New("key", "ep-123", WithBaseURL(stub.srv.URL))

	_, err := g.Generate(context.Background(), types.ImageRequest{Prompt: "p", Count: 1})

	var pErr *provider.Error
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, provider.KindInvalidResponse, pErr.Kind)
}

func TestGenerate_InvalidRequest(t *testing.T) {
	stub := newStubArk(t)
	g := New("key", "ep-123", WithBaseURL(stub.srv.URL))

	_, err := g.Generate(context.Background(), types.ImageRequest{Prompt: "", Count: 1})
	require.Error(t, err)
	assert.Equal(t, int64(0), stub.calls.Load())
}
