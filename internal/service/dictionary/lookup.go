package dictionary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/wordlookup/internal/domain"
	"github.com/heartmarshall/wordlookup/internal/metrics"
)

// Lookup resolves a single word. The word is normalized first; a blank word
// is a validation error. A successful result is recorded in the history when
// one is configured; recording failures are logged and never fail the lookup.
func (s *Service) Lookup(ctx context.Context, word string) (*domain.WordItem, error) {
	normalized := domain.NormalizeText(word)
	if normalized == "" {
		metrics.LookupsTotal.WithLabelValues(outcomeInvalid).Inc()
		return nil, domain.NewValidationError("word", "required")
	}

	start := time.Now()
	item, err := s.provider.FetchWord(ctx, normalized)
	metrics.LookupDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.LookupsTotal.WithLabelValues(outcomeOf(err)).Inc()
		return nil, fmt.Errorf("lookup %q: %w", normalized, err)
	}

	metrics.LookupsTotal.WithLabelValues(outcomeSuccess).Inc()
	s.record(ctx, *item)

	return item, nil
}

func (s *Service) record(ctx context.Context, item domain.WordItem) {
	if s.history == nil {
		return
	}
	rec := domain.NewLookupRecord(item, s.now())
	if err := s.history.Record(ctx, rec); err != nil {
		metrics.HistoryWriteErrorsTotal.Inc()
		s.log.WarnContext(ctx, "record lookup history",
			slog.String("word", item.Word),
			slog.String("error", err.Error()),
		)
	}
}

const (
	outcomeSuccess   = "success"
	outcomeNotFound  = "not_found"
	outcomeInvalid   = "invalid"
	outcomeCancelled = "cancelled"
	outcomeError     = "error"
)

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return outcomeNotFound
	case errors.Is(err, domain.ErrValidation):
		return outcomeInvalid
	case errors.Is(err, context.Canceled):
		return outcomeCancelled
	default:
		return outcomeError
	}
}

// ErrorMessage turns a lookup error into the single human-readable message
// carried by a failed result.
func ErrorMessage(word string, err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return "Please enter a word to search."
	case errors.Is(err, domain.ErrNotFound):
		return fmt.Sprintf("No definitions found for %q.", domain.NormalizeText(word))
	case errors.Is(err, context.DeadlineExceeded):
		return "The dictionary took too long to answer. Please try again."
	default:
		return "Couldn't load the result. Check your connection and try again."
	}
}
