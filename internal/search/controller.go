// Package search implements the search controller: a single goroutine owns
// the search state, folds user events and lookup emissions into it, and
// keeps at most one lookup in flight.
package search

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordlookup/internal/domain"
	"github.com/heartmarshall/wordlookup/internal/metrics"
	"github.com/heartmarshall/wordlookup/pkg/ctxutil"
	"github.com/heartmarshall/wordlookup/pkg/result"
)

// ErrClosed is returned by Dispatch after Close.
var ErrClosed = errors.New("search controller is closed")

type repository interface {
	GetWordResult(ctx context.Context, word string) <-chan result.Result[domain.WordItem]
}

// Option configures a Controller.
type Option func(*Controller)

// WithObserver registers fn to be called with every new state, starting with
// the initial one. Observers run on the controller goroutine one at a time
// and must not call back into the controller.
func WithObserver(fn func(State)) Option {
	return func(c *Controller) { c.observers = append(c.observers, fn) }
}

// WithDefaultWord overrides the word looked up on start.
func WithDefaultWord(word string) Option {
	return func(c *Controller) {
		if strings.TrimSpace(word) != "" {
			c.defaultWord = strings.ToLower(word)
		}
	}
}

// withEmissionHook is called on the controller goroutine after every lookup
// emission, applied or dropped.
func withEmissionHook(fn func(r result.Result[domain.WordItem], applied bool)) Option {
	return func(c *Controller) { c.emissionHook = fn }
}

type task struct {
	id     uuid.UUID
	word   string
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

type emission struct {
	task *task
	res  result.Result[domain.WordItem]
}

// Controller owns a search State. All mutation happens on one goroutine
// started by New and stopped by Close.
type Controller struct {
	log          *slog.Logger
	repo         repository
	defaultWord  string
	observers    []func(State)
	emissionHook func(result.Result[domain.WordItem], bool)

	ctx    context.Context
	cancel context.CancelFunc

	events    chan Event
	emissions chan emission
	finished  chan *task
	snapshots chan chan State
	idleWaits chan chan struct{}
	done      chan struct{}

	closeOnce sync.Once
	tasks     sync.WaitGroup

	// final is written by the loop before done is closed.
	final State
}

// New creates a Controller and immediately starts a lookup for the default
// word.
func New(logger *slog.Logger, repo repository, opts ...Option) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		log:         logger.With("component", "search"),
		repo:        repo,
		defaultWord: DefaultWord,
		ctx:         ctx,
		cancel:      cancel,
		events:      make(chan Event),
		emissions:   make(chan emission),
		finished:    make(chan *task),
		snapshots:   make(chan chan State),
		idleWaits:   make(chan chan struct{}),
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	go c.run(State{SearchWord: c.defaultWord})

	return c
}

// Dispatch hands ev to the controller. It returns once the controller has
// accepted the event; state read afterwards reflects it.
func (c *Controller) Dispatch(ev Event) error {
	if c.ctx.Err() != nil {
		return ErrClosed
	}
	select {
	case c.events <- ev:
		return nil
	case <-c.done:
		return ErrClosed
	}
}

// State returns a snapshot of the current state. After Close it returns the
// state the controller had when it stopped.
func (c *Controller) State() State {
	reply := make(chan State, 1)
	select {
	case c.snapshots <- reply:
		return <-reply
	case <-c.done:
		return c.final
	}
}

// Wait blocks until the current lookup has ended and all of its emissions
// have been applied to the state. A lookup started while waiting extends the
// wait. It returns ErrClosed if the controller stops first and ctx.Err() if
// ctx is done first.
func (c *Controller) Wait(ctx context.Context) error {
	idle := make(chan struct{})
	select {
	case c.idleWaits <- idle:
	case <-c.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-idle:
		return nil
	case <-c.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close cancels the active lookup and stops the controller. It blocks until
// every lookup goroutine has exited. Close is idempotent.
func (c *Controller) Close() {
	c.closeOnce.Do(func() {
		c.cancel()
		<-c.done
		c.tasks.Wait()
	})
}

func (c *Controller) run(state State) {
	defer close(c.done)

	c.notify(state)
	current := c.startLookup(state.SearchWord)

	// idle is set once current's stream is drained; waiters are released then.
	var (
		idle    bool
		waiters []chan struct{}
	)

	for {
		select {
		case ev := <-c.events:
			next, trigger := Apply(state, ev)
			state = c.update(state, next)
			if trigger {
				c.cancelTask(current)
				current = c.startLookup(state.SearchWord)
				idle = false
			}

		case em := <-c.emissions:
			applied := em.task == current && em.task.ctx.Err() == nil
			if applied {
				if em.res.Kind() == result.KindError {
					c.log.WarnContext(em.task.ctx, "lookup failed",
						slog.String("word", em.task.word),
						slog.String("message", em.res.Message()),
					)
				}
				state = c.update(state, Fold(state, em.res))
				if em.res.IsTerminal() {
					c.log.DebugContext(em.task.ctx, "lookup settled",
						slog.String("word", em.task.word),
						slog.String("result", em.res.Kind().String()),
					)
				}
			} else {
				c.log.DebugContext(em.task.ctx, "dropped stale emission",
					slog.String("word", em.task.word),
					slog.String("result", em.res.Kind().String()),
				)
			}
			if c.emissionHook != nil {
				c.emissionHook(em.res, applied)
			}

		case t := <-c.finished:
			if t == current {
				idle = true
				for _, w := range waiters {
					close(w)
				}
				waiters = nil
			}

		case w := <-c.idleWaits:
			if idle {
				close(w)
			} else {
				waiters = append(waiters, w)
			}

		case reply := <-c.snapshots:
			reply <- state

		case <-c.ctx.Done():
			c.cancelTask(current)
			c.final = state
			return
		}
	}
}

func (c *Controller) update(prev, next State) State {
	if next != prev {
		c.notify(next)
	}
	return next
}

func (c *Controller) notify(s State) {
	for _, fn := range c.observers {
		fn(s)
	}
}

// startLookup runs on the loop goroutine, so the previous task is always
// cancelled before the repository sees the new request.
func (c *Controller) startLookup(word string) *task {
	id := uuid.New()
	ctx, cancel := context.WithCancel(ctxutil.WithLookupID(c.ctx, id))
	t := &task{
		id:     id,
		word:   word,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	c.log.DebugContext(ctx, "lookup started",
		slog.String("word", word),
		slog.String("lookup_id", id.String()),
	)

	results := c.repo.GetWordResult(ctx, word)

	c.tasks.Add(1)
	go c.forward(t, results)

	return t
}

// forward relays a task's emissions to the loop until the repository closes
// the stream or the task is cancelled. A drained stream is reported on
// finished after its last emission, so the loop has applied everything by
// then.
func (c *Controller) forward(t *task, results <-chan result.Result[domain.WordItem]) {
	defer c.tasks.Done()
	defer close(t.done)

	for {
		select {
		case r, ok := <-results:
			if !ok {
				select {
				case c.finished <- t:
				case <-t.ctx.Done():
				}
				return
			}
			select {
			case c.emissions <- emission{task: t, res: r}:
			case <-t.ctx.Done():
				return
			}
		case <-t.ctx.Done():
			return
		}
	}
}

func (c *Controller) cancelTask(t *task) {
	if t == nil {
		return
	}
	select {
	case <-t.done:
	default:
		metrics.LookupsCancelledTotal.Inc()
		c.log.DebugContext(t.ctx, "lookup cancelled",
			slog.String("word", t.word),
			slog.String("lookup_id", t.id.String()),
		)
	}
	t.cancel()
}
