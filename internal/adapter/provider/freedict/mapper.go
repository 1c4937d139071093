package freedict

import "github.com/heartmarshall/wordlookup/internal/domain"

// mapEntry converts a raw API entry into a fully populated domain.WordItem.
// Absent strings become "" and an absent meanings list becomes an empty slice.
func mapEntry(e apiEntry) domain.WordItem {
	item := domain.WordItem{
		Word:     deref(e.Word),
		Phonetic: deref(e.Phonetic),
		Meanings: make([]domain.Meaning, 0, len(e.Meanings)),
	}
	for _, m := range e.Meanings {
		item.Meanings = append(item.Meanings, mapMeaning(m))
	}
	return item
}

// mapMeaning keeps only the first definition of the meaning; the rest are
// discarded. No definitions yields an empty Definition.
func mapMeaning(m apiMeaning) domain.Meaning {
	var first *apiDefinition
	if len(m.Definitions) > 0 {
		first = &m.Definitions[0]
	}
	return domain.Meaning{
		PartOfSpeech: deref(m.PartOfSpeech),
		Definition:   mapDefinition(first),
	}
}

func mapDefinition(d *apiDefinition) domain.Definition {
	if d == nil {
		return domain.Definition{}
	}
	return domain.Definition{
		Definition: deref(d.Definition),
		Example:    deref(d.Example),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
