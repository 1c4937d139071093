package dictionary

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/heartmarshall/wordlookup/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type wordProvider interface {
	FetchWord(ctx context.Context, word string) (*domain.WordItem, error)
}

type historyRepo interface {
	Record(ctx context.Context, rec domain.LookupRecord) error
	ListRecent(ctx context.Context, limit int) ([]domain.LookupRecord, error)
}

// ErrHistoryDisabled is returned by history operations when no store is configured.
var ErrHistoryDisabled = errors.New("lookup history is disabled")

// Service is the dictionary repository: it resolves words through the
// provider and optionally records successful lookups.
type Service struct {
	log      *slog.Logger
	provider wordProvider
	history  historyRepo
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithHistory enables recording of successful lookups.
func WithHistory(h historyRepo) Option {
	return func(s *Service) { s.history = h }
}

// WithClock overrides the time source used for history records.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a dictionary Service.
func NewService(logger *slog.Logger, provider wordProvider, opts ...Option) *Service {
	s := &Service{
		log:      logger.With("service", "dictionary"),
		provider: provider,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HistoryEnabled reports whether lookups are recorded.
func (s *Service) HistoryEnabled() bool { return s.history != nil }
