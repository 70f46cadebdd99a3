// Package vocab provides the read-only vocabulary index used to map detected
// tokens onto flashcard items.
package vocab

import "strings"

// Item is a single vocabulary entry: a named learning object with its
// pronunciation, spelling, and optional recorded audio.
type Item struct {
	ID            string
	Name          string
	Spelling      []string
	Pronunciation string
	AudioRef      string
	CategoryID    string
}

// Index provides case-insensitive lookup from a detected token to its Item.
// An Index is immutable after construction; one is built per detection session.
type Index struct {
	byName map[string]Item
	byID   map[string]Item
}

// NewIndex builds an Index from the given items. Names are compared
// case-insensitively; when two items share a name the first one wins.
// Items without an explicit spelling get a letter-by-letter one.
func NewIndex(items []Item) *Index {
	idx := &Index{
		byName: make(map[string]Item, len(items)),
		byID:   make(map[string]Item, len(items)),
	}
	for _, it := range items {
		if len(it.Spelling) == 0 {
			it.Spelling = SpellOut(it.Name)
		}
		key := strings.ToLower(it.Name)
		if _, exists := idx.byName[key]; !exists {
			idx.byName[key] = it
		}
		if it.ID != "" {
			idx.byID[it.ID] = it
		}
	}
	return idx
}

// Lookup resolves a token to its vocabulary item. Comparison is
// case-insensitive and exact; there is no fuzzy matching. A non-empty scope
// restricts the match to items of that category.
func (i *Index) Lookup(token, scope string) (Item, bool) {
	it, ok := i.byName[strings.ToLower(strings.TrimSpace(token))]
	if !ok {
		return Item{}, false
	}
	if scope != "" && it.CategoryID != scope {
		return Item{}, false
	}
	return it, true
}

// ByID resolves a vocabulary item by its stable identifier, ignoring scope.
// Used for structured QR payloads that carry an item ID directly.
func (i *Index) ByID(id string) (Item, bool) {
	it, ok := i.byID[id]
	return it, ok
}

// Names returns all item titles in the index. Order is unspecified.
func (i *Index) Names() []string {
	names := make([]string, 0, len(i.byName))
	for _, it := range i.byName {
		names = append(names, it.Name)
	}
	return names
}

// Len returns the number of distinct names in the index.
func (i *Index) Len() int {
	return len(i.byName)
}

// SpellOut splits a word into the letter segments spoken during spelling
// playback. Non-letter runes (spaces, hyphens) are skipped.
func SpellOut(word string) []string {
	var letters []string
	for _, r := range strings.ToUpper(word) {
		if r >= 'A' && r <= 'Z' {
			letters = append(letters, string(r))
		}
	}
	return letters
}
