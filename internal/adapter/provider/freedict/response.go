package freedict

// apiEntry is a single entry of the FreeDictionary API response. The API
// returns an array of entries (one per etymology). Any field may be absent or
// null, hence the pointers.
type apiEntry struct {
	Word     *string      `json:"word"`
	Phonetic *string      `json:"phonetic"`
	Meanings []apiMeaning `json:"meanings"`
}

// apiMeaning is a group of definitions sharing a part of speech.
type apiMeaning struct {
	PartOfSpeech *string         `json:"partOfSpeech"`
	Definitions  []apiDefinition `json:"definitions"`
}

// apiDefinition is a single definition with an optional example.
type apiDefinition struct {
	Definition *string `json:"definition"`
	Example    *string `json:"example"`
}
