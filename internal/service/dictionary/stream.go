package dictionary

import (
	"context"

	"github.com/heartmarshall/wordlookup/internal/domain"
	"github.com/heartmarshall/wordlookup/pkg/result"
)

// GetWordResult starts a lookup and streams its lifecycle on the returned
// channel, which is closed when the lookup ends:
//
//	success: Loading(true), Loading(false), Success(item)
//	failure: Loading(true), Error(message)
//
// A failed lookup does not emit Loading(false). When ctx is cancelled the
// stream stops without a terminal value.
func (s *Service) GetWordResult(ctx context.Context, word string) <-chan result.Result[domain.WordItem] {
	out := make(chan result.Result[domain.WordItem], 3)

	go func() {
		defer close(out)

		if !emit(ctx, out, result.Loading[domain.WordItem](true)) {
			return
		}

		item, err := s.Lookup(ctx, word)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			emit(ctx, out, result.Error[domain.WordItem](ErrorMessage(word, err)))
			return
		}

		if !emit(ctx, out, result.Loading[domain.WordItem](false)) {
			return
		}
		emit(ctx, out, result.Success(item))
	}()

	return out
}

func emit(ctx context.Context, out chan<- result.Result[domain.WordItem], r result.Result[domain.WordItem]) bool {
	if ctx.Err() != nil {
		return false
	}
	select {
	case out <- r:
		return true
	case <-ctx.Done():
		return false
	}
}
