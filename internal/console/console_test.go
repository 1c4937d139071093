package console

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/wordlookup/internal/domain"
	"github.com/heartmarshall/wordlookup/pkg/result"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type mockRepo struct {
	mu    sync.Mutex
	words []string
	items map[string]*domain.WordItem
}

func (m *mockRepo) GetWordResult(_ context.Context, word string) <-chan result.Result[domain.WordItem] {
	m.mu.Lock()
	m.words = append(m.words, word)
	m.mu.Unlock()

	out := make(chan result.Result[domain.WordItem], 3)
	out <- result.Loading[domain.WordItem](true)
	if it, ok := m.items[word]; ok {
		out <- result.Loading[domain.WordItem](false)
		out <- result.Success(it)
	} else {
		out <- result.Error[domain.WordItem]("not found")
	}
	close(out)
	return out
}

// delayedRepo answers every lookup successfully after delay.
type delayedRepo struct {
	delay time.Duration
}

func (d *delayedRepo) GetWordResult(ctx context.Context, word string) <-chan result.Result[domain.WordItem] {
	out := make(chan result.Result[domain.WordItem], 3)
	go func() {
		defer close(out)
		out <- result.Loading[domain.WordItem](true)
		select {
		case <-time.After(d.delay):
		case <-ctx.Done():
			return
		}
		out <- result.Loading[domain.WordItem](false)
		out <- result.Success(&domain.WordItem{
			Word:     word,
			Meanings: []domain.Meaning{{PartOfSpeech: "noun", Definition: domain.Definition{Definition: "Defined " + word + "."}}},
		})
	}()
	return out
}

func (m *mockRepo) Words() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.words...)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func runConsole(t *testing.T, c *Console) {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- c.Run(context.Background()) }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("console did not stop")
	}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestConsole_DispatchesLines(t *testing.T) {
	t.Parallel()

	repo := &mockRepo{}
	out := &syncBuffer{}
	c := New(testLogger(), repo, strings.NewReader("Hello\n\n  Cat  \n"), out, "")

	runConsole(t, c)

	assert.Equal(t, []string{"word", "hello", "hello", "cat"}, repo.Words())
	assert.Contains(t, out.String(), `No result for "word" yet.`)
	assert.NotContains(t, out.String(), `No result for "hello" yet.`, "a changed word alone is not printed")
}

func TestConsole_Quit(t *testing.T) {
	t.Parallel()

	for _, cmd := range []string{":q", ":quit"} {
		t.Run(cmd, func(t *testing.T) {
			t.Parallel()

			repo := &mockRepo{}
			c := New(testLogger(), repo, strings.NewReader("one\n"+cmd+"\ntwo\n"), &syncBuffer{}, "start")

			runConsole(t, c)

			assert.Equal(t, []string{"start", "one"}, repo.Words())
		})
	}
}

func TestConsole_RendersResult(t *testing.T) {
	t.Parallel()

	repo := &mockRepo{items: map[string]*domain.WordItem{
		"hello": {
			Word:     "hello",
			Phonetic: "/həˈloʊ/",
			Meanings: []domain.Meaning{
				{PartOfSpeech: "noun", Definition: domain.Definition{Definition: "A greeting."}},
			},
		},
	}}
	pr, pw := io.Pipe()
	out := &syncBuffer{}
	c := New(testLogger(), repo, pr, out, "")

	done := make(chan error, 1)
	go func() { done <- c.Run(context.Background()) }()

	_, err := io.WriteString(pw, "hello\n")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "A greeting.")
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, pw.Close())
	require.NoError(t, <-done)

	text := out.String()
	assert.Contains(t, text, "1. noun")
	assert.Contains(t, text, "loading…")
}

func TestConsole_ContextCancel(t *testing.T) {
	t.Parallel()

	pr, pw := io.Pipe()
	defer pw.Close()

	c := New(testLogger(), &mockRepo{}, pr, &syncBuffer{}, "")
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("console ignored context cancellation")
	}
}

func TestConsole_PipedInputPrintsResult(t *testing.T) {
	t.Parallel()

	out := &syncBuffer{}
	c := New(testLogger(), &delayedRepo{delay: 30 * time.Millisecond}, strings.NewReader("hello\n"), out, "")

	runConsole(t, c)

	assert.Contains(t, out.String(), "Defined hello.")
}

func TestConsole_EOFWaitBoundedByContext(t *testing.T) {
	t.Parallel()

	c := New(testLogger(), &delayedRepo{delay: time.Hour}, strings.NewReader("hello\n"), &syncBuffer{}, "")
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("console kept waiting after the context ended")
	}
}
