package freedict

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/heartmarshall/wordlookup/internal/config"
	"github.com/heartmarshall/wordlookup/internal/domain"
)

const (
	defaultBaseURL    = "https://api.dictionaryapi.dev/api/v2/entries/en"
	defaultTimeout    = 10 * time.Second
	defaultRetryDelay = 500 * time.Millisecond

	// maxBodyBytes caps a response body; real entries are a few KiB.
	maxBodyBytes = 1 << 20
)

// Provider fetches dictionary entries from the FreeDictionary API.
type Provider struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	maxRetries int
	retryDelay time.Duration
	log        *slog.Logger
}

// NewProvider creates a Provider from DictionaryConfig. A zero
// RequestsPerSecond leaves outbound requests unthrottled.
func NewProvider(cfg config.DictionaryConfig, logger *slog.Logger) *Provider {
	p := &Provider{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		log:        logger.With("adapter", "freedict"),
	}
	if p.baseURL == "" {
		p.baseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		p.httpClient.Timeout = defaultTimeout
	}
	if p.retryDelay <= 0 {
		p.retryDelay = defaultRetryDelay
	}
	if cfg.RequestsPerSecond > 0 {
		p.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), max(cfg.Burst, 1))
	}
	return p
}

// NewProviderWithURL creates a Provider with a custom base URL and no retries (for testing).
func NewProviderWithURL(baseURL string, logger *slog.Logger) *Provider {
	return NewProvider(config.DictionaryConfig{BaseURL: baseURL, Timeout: defaultTimeout}, logger)
}

// FetchWord fetches the dictionary entry for word and maps it to a WordItem.
// Only the first entry of the response is used. A 404 or an empty response
// yields domain.ErrNotFound; other failures wrap domain.ErrUpstream.
func (p *Provider) FetchWord(ctx context.Context, word string) (*domain.WordItem, error) {
	reqURL := p.baseURL + "/" + url.PathEscape(word)

	p.log.DebugContext(ctx, "freedict request", slog.String("word", word))

	resp, err := p.doWithRetry(ctx, reqURL, word)
	if err != nil {
		p.log.ErrorContext(ctx, "freedict request failed", slog.String("word", word), slog.String("error", err.Error()))
		return nil, fmt.Errorf("freedict: request failed: %w: %w", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("freedict: %q: %w", word, domain.ErrNotFound)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("freedict: unexpected status %d: %w", resp.StatusCode, domain.ErrUpstream)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("freedict: read body: %w", err)
	}
	if len(body) > maxBodyBytes {
		return nil, fmt.Errorf("freedict: response exceeds %d bytes: %w", maxBodyBytes, domain.ErrUpstream)
	}

	var entries []apiEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("freedict: decode json: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("freedict: %q: empty response: %w", word, domain.ErrNotFound)
	}

	item := mapEntry(entries[0])

	p.log.DebugContext(ctx, "freedict response",
		slog.String("word", word),
		slog.Int("status", resp.StatusCode),
		slog.Int("entries", len(entries)),
		slog.Int("meanings", len(item.Meanings)),
	)

	return &item, nil
}

// doWithRetry executes the request, retrying up to maxRetries times on 5xx or
// network errors.
func (p *Provider) doWithRetry(ctx context.Context, reqURL, word string) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		if p.limiter != nil {
			if err := p.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("rate limit wait: %w", err)
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := p.httpClient.Do(req)

		shouldRetry := err != nil || resp.StatusCode >= 500
		if !shouldRetry || attempt >= p.maxRetries || ctx.Err() != nil {
			return resp, err
		}

		reason := "network error"
		if err == nil {
			reason = fmt.Sprintf("status %d", resp.StatusCode)
			resp.Body.Close()
		}
		p.log.WarnContext(ctx, "freedict retry",
			slog.String("word", word),
			slog.String("reason", reason),
			slog.Int("attempt", attempt+1),
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(p.retryDelay):
		}
	}
}
