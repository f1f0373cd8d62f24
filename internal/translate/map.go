// Package translate maps localized display names to stable numeric identifiers.
package translate

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"
)

var (
	// ErrNameNotFound is returned when no identifier is registered for a name.
	ErrNameNotFound = errors.New("name not found")
	// ErrDuplicateName is returned when a display name is already bound to
	// another identifier in the same language.
	ErrDuplicateName = errors.New("duplicate name")
	// ErrInvalidID is returned for identifiers that are not positive.
	ErrInvalidID = errors.New("invalid id")
	// ErrIncompleteEntry is returned by Validate when an entry lacks a language.
	ErrIncompleteEntry = errors.New("incomplete entry")
)

// Row is one registry entry as produced by Map.All.
type Row struct {
	ID    int
	names map[string]string
}

// Name returns the display name of the row in the given language, or "".
func (r Row) Name(language string) string {
	return r.names[language]
}

// Map is a bidirectional registry between (language, display name) pairs and
// identifiers for a single entity category.
type Map struct {
	names map[int]map[string]string
	ids   map[string]map[string]int
}

// NewMap returns an empty Map.
//
// Postcondition: all internal maps are initialised.
func NewMap() *Map {
	return &Map{
		names: make(map[int]map[string]string),
		ids:   make(map[string]map[string]int),
	}
}

// AddEntry registers name as the display name of id in language.
//
// Precondition: id must be positive.
// Postcondition: IDOf(language, name) returns id. A second call for the same
// (id, language) replaces the earlier name. Returns ErrDuplicateName if name is
// already bound to a different id in language.
func (m *Map) AddEntry(id int, language, name string) error {
	if id <= 0 {
		return fmt.Errorf("translate: AddEntry: %w: %d", ErrInvalidID, id)
	}
	byName := m.ids[language]
	if byName == nil {
		byName = make(map[string]int)
		m.ids[language] = byName
	}
	if owner, exists := byName[name]; exists && owner != id {
		return fmt.Errorf("translate: AddEntry: %w: %q (%s) already belongs to id %d",
			ErrDuplicateName, name, language, owner)
	}

	byLang := m.names[id]
	if byLang == nil {
		byLang = make(map[string]string)
		m.names[id] = byLang
	}
	if previous, ok := byLang[language]; ok && previous != name {
		delete(byName, previous)
	}
	byLang[language] = name
	byName[name] = id
	return nil
}

// IDOf returns the identifier registered for name in language.
//
// Postcondition: returns an error wrapping ErrNameNotFound if nothing matches.
func (m *Map) IDOf(language, name string) (int, error) {
	if id, ok := m.ids[language][name]; ok {
		return id, nil
	}
	return 0, fmt.Errorf("%w: %q (%s)", ErrNameNotFound, name, language)
}

// NamesOf returns a copy of the per-language names of id and whether id is registered.
func (m *Map) NamesOf(id int) (map[string]string, bool) {
	byLang, ok := m.names[id]
	if !ok {
		return nil, false
	}
	out := make(map[string]string, len(byLang))
	for lang, name := range byLang {
		out[lang] = name
	}
	return out, true
}

// Name returns the display name of id in language, or "" if unknown.
func (m *Map) Name(id int, language string) string {
	return m.names[id][language]
}

// Len returns the number of registered identifiers.
func (m *Map) Len() int {
	return len(m.names)
}

// All returns the registry rows in ascending identifier order. The sequence
// can be ranged over any number of times.
func (m *Map) All() iter.Seq[Row] {
	return func(yield func(Row) bool) {
		for _, id := range m.sortedIDs() {
			if !yield(Row{ID: id, names: m.names[id]}) {
				return
			}
		}
	}
}

// Validate checks that every identifier has a display name in every language.
//
// Postcondition: returns nil, or one error wrapping ErrIncompleteEntry that
// lists every missing (id, language) pair.
func (m *Map) Validate(languages []string) error {
	var missing []string
	for _, id := range m.sortedIDs() {
		for _, lang := range languages {
			if m.names[id][lang] == "" {
				missing = append(missing, fmt.Sprintf("id %d lacks %s", id, lang))
			}
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrIncompleteEntry, strings.Join(missing, "; "))
	}
	return nil
}

func (m *Map) sortedIDs() []int {
	ids := make([]int, 0, len(m.names))
	for id := range m.names {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
