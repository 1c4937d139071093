package domain

import (
	"time"

	"github.com/google/uuid"
)

// LookupRecord is one successful lookup stored in the history.
type LookupRecord struct {
	ID           uuid.UUID
	Word         string
	Phonetic     string
	MeaningCount int
	LookedUpAt   time.Time
}

// NewLookupRecord builds a history record for a resolved word.
func NewLookupRecord(item WordItem, at time.Time) LookupRecord {
	return LookupRecord{
		ID:           uuid.New(),
		Word:         item.Word,
		Phonetic:     item.Phonetic,
		MeaningCount: len(item.Meanings),
		LookedUpAt:   at.UTC(),
	}
}
