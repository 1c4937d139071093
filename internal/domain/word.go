package domain

// WordItem is a dictionary entry as presented to the user. All fields are
// always populated; absent upstream data maps to "" or an empty slice.
type WordItem struct {
	Word     string    `json:"word"`
	Phonetic string    `json:"phonetic"`
	Meanings []Meaning `json:"meanings"`
}

// Meaning is one part-of-speech sense of a word, reduced to its first definition.
type Meaning struct {
	PartOfSpeech string     `json:"partOfSpeech"`
	Definition   Definition `json:"definition"`
}

// Definition is a definition text with an optional usage example.
type Definition struct {
	Definition string `json:"definition"`
	Example    string `json:"example"`
}

// HasDefinition reports whether the definition text is non-empty.
func (d Definition) HasDefinition() bool { return d.Definition != "" }

// HasExample reports whether the example text is non-empty.
func (d Definition) HasExample() bool { return d.Example != "" }
