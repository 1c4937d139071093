package search

import (
	"strings"

	"github.com/heartmarshall/wordlookup/internal/domain"
	"github.com/heartmarshall/wordlookup/pkg/result"
)

// DefaultWord is looked up when the controller starts.
const DefaultWord = "word"

// State is the UI-facing search state. WordItem is nil until the first
// successful lookup.
type State struct {
	SearchWord string
	WordItem   *domain.WordItem
	IsLoading  bool
}

// Event is a user action dispatched into the controller.
type Event interface {
	isEvent()
}

// SearchWordChanged replaces the search text. It does not start a lookup.
type SearchWordChanged struct {
	Text string
}

// SearchTriggered cancels the in-flight lookup and starts a new one for the
// current search text.
type SearchTriggered struct{}

func (SearchWordChanged) isEvent() {}
func (SearchTriggered) isEvent()   {}

// Apply folds a user event into s. The second return value reports whether
// a lookup must be started.
func Apply(s State, ev Event) (State, bool) {
	switch e := ev.(type) {
	case SearchWordChanged:
		s.SearchWord = strings.ToLower(e.Text)
		return s, false
	case SearchTriggered:
		return s, true
	default:
		return s, false
	}
}

// Fold applies one lookup emission to s.
//
// Success does not clear IsLoading; the producer is expected to emit
// Loading(false) first. Error leaves the state untouched, so a failed lookup
// stays in the loading state until the next search.
func Fold(s State, r result.Result[domain.WordItem]) State {
	switch r.Kind() {
	case result.KindLoading:
		s.IsLoading = r.IsLoading()
	case result.KindSuccess:
		if data := r.Data(); data != nil {
			s.WordItem = data
		}
	case result.KindError:
	}
	return s
}
