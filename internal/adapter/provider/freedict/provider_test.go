package freedict

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/wordlookup/internal/config"
	"github.com/heartmarshall/wordlookup/internal/domain"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func jsonServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestProvider_FetchWord_Success(t *testing.T) {
	t.Parallel()

	body := `[{
		"word": "hello",
		"phonetic": "/həˈloʊ/",
		"phonetics": [{"text": "/həˈloʊ/", "audio": "https://example.com/hello-us.mp3"}],
		"meanings": [
			{
				"partOfSpeech": "noun",
				"definitions": [{"definition": "A greeting.", "example": "She gave a cheerful hello."}]
			},
			{
				"partOfSpeech": "interjection",
				"definitions": [
					{"definition": "Used as a greeting.", "example": "Hello, how are you?"},
					{"definition": "Used to attract attention."}
				]
			}
		]
	}]`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/hello" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	defer srv.Close()

	p := NewProviderWithURL(srv.URL, newTestLogger())
	item, err := p.FetchWord(context.Background(), "hello")
	require.NoError(t, err)
	require.NotNil(t, item)

	assert.Equal(t, "hello", item.Word)
	assert.Equal(t, "/həˈloʊ/", item.Phonetic)
	require.Len(t, item.Meanings, 2)
	assert.Equal(t, domain.Meaning{
		PartOfSpeech: "noun",
		Definition:   domain.Definition{Definition: "A greeting.", Example: "She gave a cheerful hello."},
	}, item.Meanings[0])
	assert.Equal(t, "Used as a greeting.", item.Meanings[1].Definition.Definition)
}

func TestProvider_FetchWord_OnlyFirstEntryUsed(t *testing.T) {
	t.Parallel()

	srv := jsonServer(t, http.StatusOK, `[
		{"word": "bank", "meanings": [{"partOfSpeech": "noun", "definitions": [{"definition": "A riverside."}]}]},
		{"word": "bank", "meanings": [{"partOfSpeech": "verb", "definitions": [{"definition": "To deposit."}]}]}
	]`)

	p := NewProviderWithURL(srv.URL, newTestLogger())
	item, err := p.FetchWord(context.Background(), "bank")
	require.NoError(t, err)

	require.Len(t, item.Meanings, 1)
	assert.Equal(t, "noun", item.Meanings[0].PartOfSpeech)
}

func TestProvider_FetchWord_PathEscaped(t *testing.T) {
	t.Parallel()

	var gotPath atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath.Store(r.URL.EscapedPath())
		w.Write([]byte(`[{"word":"ice cream"}]`))
	}))
	defer srv.Close()

	p := NewProviderWithURL(srv.URL+"/", newTestLogger())
	_, err := p.FetchWord(context.Background(), "ice cream")
	require.NoError(t, err)

	assert.Equal(t, "/ice%20cream", gotPath.Load())
}

func TestProvider_FetchWord_NotFound(t *testing.T) {
	t.Parallel()

	srv := jsonServer(t, http.StatusNotFound, `{"title":"No Definitions Found"}`)

	p := NewProviderWithURL(srv.URL, newTestLogger())
	item, err := p.FetchWord(context.Background(), "asdfxyz")

	assert.Nil(t, item)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProvider_FetchWord_EmptyArray(t *testing.T) {
	t.Parallel()

	srv := jsonServer(t, http.StatusOK, `[]`)

	p := NewProviderWithURL(srv.URL, newTestLogger())
	_, err := p.FetchWord(context.Background(), "empty")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProvider_FetchWord_InvalidJSON(t *testing.T) {
	t.Parallel()

	srv := jsonServer(t, http.StatusOK, `not valid json`)

	p := NewProviderWithURL(srv.URL, newTestLogger())
	_, err := p.FetchWord(context.Background(), "bad")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode json")
}

func TestProvider_FetchWord_OversizedBody(t *testing.T) {
	t.Parallel()

	definition := strings.Repeat("a", maxBodyBytes)
	srv := jsonServer(t, http.StatusOK, `[{"word":"huge","meanings":[{"definitions":[{"definition":"`+definition+`"}]}]}]`)

	p := NewProviderWithURL(srv.URL, newTestLogger())
	item, err := p.FetchWord(context.Background(), "huge")

	assert.Nil(t, item)
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestProvider_FetchWord_ServerErrorNoRetryByDefault(t *testing.T) {
	t.Parallel()

	var callCount atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewProviderWithURL(srv.URL, newTestLogger())
	_, err := p.FetchWord(context.Background(), "fail")

	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Equal(t, int32(1), callCount.Load())
}

func TestProvider_FetchWord_ServerErrorRetrySuccess(t *testing.T) {
	t.Parallel()

	var callCount atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if callCount.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`[{"word":"test","meanings":[]}]`))
	}))
	defer srv.Close()

	p := NewProvider(config.DictionaryConfig{
		BaseURL:    srv.URL,
		Timeout:    5 * time.Second,
		MaxRetries: 1,
		RetryDelay: time.Millisecond,
	}, newTestLogger())

	item, err := p.FetchWord(context.Background(), "test")
	require.NoError(t, err)
	assert.Equal(t, "test", item.Word)
	assert.Equal(t, int32(2), callCount.Load())
}

func TestProvider_FetchWord_RetriesExhausted(t *testing.T) {
	t.Parallel()

	var callCount atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := NewProvider(config.DictionaryConfig{
		BaseURL:    srv.URL,
		Timeout:    5 * time.Second,
		MaxRetries: 2,
		RetryDelay: time.Millisecond,
	}, newTestLogger())

	_, err := p.FetchWord(context.Background(), "fail")

	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Equal(t, int32(3), callCount.Load())
}

func TestProvider_FetchWord_ClientErrorNotRetried(t *testing.T) {
	t.Parallel()

	var callCount atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	p := NewProvider(config.DictionaryConfig{
		BaseURL:    srv.URL,
		Timeout:    5 * time.Second,
		MaxRetries: 3,
		RetryDelay: time.Millisecond,
	}, newTestLogger())

	_, err := p.FetchWord(context.Background(), "x")

	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Equal(t, int32(1), callCount.Load())
}

func TestProvider_FetchWord_ContextCancelled(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	p := NewProviderWithURL(srv.URL, newTestLogger())

	errCh := make(chan error, 1)
	go func() {
		_, err := p.FetchWord(ctx, "slow")
		errCh <- err
	}()

	cancel()

	select {
	case err := <-errCh:
		assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("FetchWord did not return after cancellation")
	}
}

func TestProvider_FetchWord_RateLimited(t *testing.T) {
	t.Parallel()

	srv := jsonServer(t, http.StatusOK, `[{"word":"a"}]`)

	p := NewProvider(config.DictionaryConfig{
		BaseURL:           srv.URL,
		Timeout:           5 * time.Second,
		RequestsPerSecond: 0.001,
		Burst:             1,
	}, newTestLogger())

	_, err := p.FetchWord(context.Background(), "a")
	require.NoError(t, err, "first request consumes the burst")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = p.FetchWord(ctx, "a")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstream)
}
