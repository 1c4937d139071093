// Package console is the interactive line-oriented front end. Every input
// line becomes a search; every state change is printed.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/heartmarshall/wordlookup/internal/domain"
	"github.com/heartmarshall/wordlookup/internal/render"
	"github.com/heartmarshall/wordlookup/internal/search"
	"github.com/heartmarshall/wordlookup/pkg/result"
)

type repository interface {
	GetWordResult(ctx context.Context, word string) <-chan result.Result[domain.WordItem]
}

// Console reads words from in and writes rendered search states to out.
type Console struct {
	log         *slog.Logger
	repo        repository
	renderer    *render.Renderer
	defaultWord string

	in io.Reader

	mu    sync.Mutex
	out   io.Writer
	last  search.State
	shown bool
}

// New creates a Console. An empty defaultWord falls back to search.DefaultWord.
func New(logger *slog.Logger, repo repository, in io.Reader, out io.Writer, defaultWord string) *Console {
	return &Console{
		log:         logger.With("component", "console"),
		repo:        repo,
		renderer:    render.New(out),
		defaultWord: defaultWord,
		in:          in,
		out:         out,
	}
}

// Run starts a search session and processes input until EOF, a quit
// command or ctx cancellation. At EOF the lookup in flight is allowed to
// finish, so piped input prints its results. The session's controller is
// closed on return.
func (c *Console) Run(ctx context.Context) error {
	ctrl := search.New(c.log, c.repo,
		search.WithDefaultWord(c.defaultWord),
		search.WithObserver(c.show),
	)
	defer ctrl.Close()

	c.print("Type a word and press Enter. Empty line repeats the search, :q quits.\n")

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(c.in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- sc.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					if err != nil {
						return fmt.Errorf("read input: %w", err)
					}
				default:
				}
				c.settle(ctx, ctrl)
				return nil
			}
			quit, err := c.handle(ctrl, line)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		}
	}
}

func (c *Console) handle(ctrl *search.Controller, line string) (bool, error) {
	text := strings.TrimSpace(line)
	switch text {
	case ":q", ":quit":
		return true, nil
	case "":
	default:
		if err := ctrl.Dispatch(search.SearchWordChanged{Text: text}); err != nil {
			return false, dispatchErr(err)
		}
	}
	if err := ctrl.Dispatch(search.SearchTriggered{}); err != nil {
		return false, dispatchErr(err)
	}
	return false, nil
}

// settle waits for the current lookup to end. A failed lookup also ends it,
// even though the state keeps loading.
func (c *Console) settle(ctx context.Context, ctrl *search.Controller) {
	if err := ctrl.Wait(ctx); err != nil && ctx.Err() == nil {
		c.log.Debug("wait for lookup", slog.String("error", err.Error()))
	}
}

func dispatchErr(err error) error {
	if errors.Is(err, search.ErrClosed) {
		return nil
	}
	return fmt.Errorf("dispatch: %w", err)
}

// show prints s unless only the search word changed since the last
// printed state; the lookup that follows prints it anyway.
func (c *Console) show(s search.State) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.last
	c.last = s
	if c.shown && s.IsLoading == prev.IsLoading && s.WordItem == prev.WordItem {
		return
	}
	c.shown = true
	c.write(c.renderer.State(s) + "\n")
}

func (c *Console) print(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.write(s)
}

func (c *Console) write(s string) {
	if _, err := io.WriteString(c.out, s); err != nil {
		c.log.Debug("write output", slog.String("error", err.Error()))
	}
}
