package dictionary

import (
	"context"
	"fmt"

	"github.com/heartmarshall/wordlookup/internal/domain"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// RecentLookups returns the most recent successful lookups, newest first.
// Limit is clamped to [1, 100]; zero or negative means 20.
func (s *Service) RecentLookups(ctx context.Context, limit int) ([]domain.LookupRecord, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}

	records, err := s.history.ListRecent(ctx, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list recent lookups: %w", err)
	}
	return records, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		return maxHistoryLimit
	}
	return limit
}
