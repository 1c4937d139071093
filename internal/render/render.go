// Package render formats search state and lookup history for a terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/heartmarshall/wordlookup/internal/domain"
	"github.com/heartmarshall/wordlookup/internal/search"
)

const (
	indent      = "   "
	loadingMark = "loading…"
	timeLayout  = "2006-01-02 15:04"
)

// Renderer turns values into styled text. Colors are dropped automatically
// when the destination writer is not a terminal.
type Renderer struct {
	word     lipgloss.Style
	phonetic lipgloss.Style
	pos      lipgloss.Style
	example  lipgloss.Style
	muted    lipgloss.Style
	header   lipgloss.Style
}

// New creates a Renderer whose color profile is detected from w.
func New(w io.Writer) *Renderer {
	r := lipgloss.NewRenderer(w)
	return &Renderer{
		word:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("86")),
		phonetic: r.NewStyle().Foreground(lipgloss.Color("240")),
		pos:      r.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		example:  r.NewStyle().Italic(true).Foreground(lipgloss.Color("240")),
		muted:    r.NewStyle().Italic(true).Foreground(lipgloss.Color("240")),
		header:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("33")),
	}
}

// State renders a search state: a loading marker while a lookup is in
// progress, followed by the last successful result if any.
func (r *Renderer) State(s search.State) string {
	var b strings.Builder
	if s.IsLoading {
		b.WriteString(r.muted.Render(loadingMark))
		b.WriteString("\n")
	}
	if s.WordItem == nil {
		if !s.IsLoading {
			b.WriteString(r.muted.Render(fmt.Sprintf("No result for %q yet.", s.SearchWord)))
			b.WriteString("\n")
		}
		return b.String()
	}
	b.WriteString(r.WordItem(s.WordItem))
	return b.String()
}

// WordItem renders a word with its phonetic spelling and numbered meanings.
// Empty definitions and examples are omitted.
func (r *Renderer) WordItem(item *domain.WordItem) string {
	var b strings.Builder

	b.WriteString(r.word.Render(item.Word))
	if item.Phonetic != "" {
		b.WriteString("  ")
		b.WriteString(r.phonetic.Render(item.Phonetic))
	}
	b.WriteString("\n")

	for i, m := range item.Meanings {
		b.WriteString(r.pos.Render(fmt.Sprintf("%d. %s", i+1, m.PartOfSpeech)))
		b.WriteString("\n")
		if m.Definition.HasDefinition() {
			b.WriteString(indent + m.Definition.Definition + "\n")
		}
		if m.Definition.HasExample() {
			b.WriteString(indent + r.example.Render(fmt.Sprintf("%q", m.Definition.Example)) + "\n")
		}
	}
	return b.String()
}

// History renders recent lookups one per line, newest first as given.
func (r *Renderer) History(records []domain.LookupRecord) string {
	if len(records) == 0 {
		return r.muted.Render("No lookups recorded yet.") + "\n"
	}

	var b strings.Builder
	b.WriteString(r.header.Render("Recent lookups"))
	b.WriteString("\n")
	for _, rec := range records {
		line := fmt.Sprintf("%s  %-20s %-20s %d %s",
			rec.LookedUpAt.Local().Format(timeLayout),
			rec.Word,
			rec.Phonetic,
			rec.MeaningCount,
			plural(rec.MeaningCount, "meaning", "meanings"),
		)
		b.WriteString(strings.TrimRight(line, " "))
		b.WriteString("\n")
	}
	return b.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
