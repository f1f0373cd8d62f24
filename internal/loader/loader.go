// Package loader reads the JSON data files and keys their records by the
// identifiers of a translate.Map.
package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/meur/mhwdb/internal/translate"
)

// CanonicalLanguage is the language combined data files are keyed by.
const CanonicalLanguage = "en"

var (
	// ErrMissingName is returned when a record lacks its localized name field.
	ErrMissingName = errors.New("missing name field")
	// ErrInvalidName is returned when a record's name is not in the registry.
	ErrInvalidName = errors.New("invalid name")
	// ErrMissingField is returned when a detail record lacks a required field.
	ErrMissingField = errors.New("missing field")
	// ErrMissingDetail is returned when a registered id has no detail record.
	ErrMissingDetail = errors.New("missing detail")
)

var languageFile = regexp.MustCompile(`_([a-z]+)\.json$`)

// NameField returns the key holding a record's display name in language.
func NameField(language string) string {
	return "name_" + language
}

// LoadTranslateMap builds a registry from a canonical name list. Identifiers
// are assigned 1..N in file order.
//
// Precondition: path is a JSON array of objects carrying name_<lang> for every
// language in languages.
// Postcondition: returns a validated Map or a non-nil error.
func LoadTranslateMap(path string, languages []string) (*translate.Map, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}

	m := translate.NewMap()
	for i, raw := range records {
		id := i + 1
		for _, lang := range languages {
			name, err := requireName(raw, lang)
			if err != nil {
				return nil, fmt.Errorf("%s entry %d: %w", path, id, err)
			}
			if err := m.AddEntry(id, lang, name); err != nil {
				return nil, fmt.Errorf("%s entry %d: %w", path, id, err)
			}
		}
	}
	if err := m.Validate(languages); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// RequiredFielder is implemented by records whose keys must all be present.
// JSON decoding alone would leave a missing key at its zero value.
type RequiredFielder interface {
	RequiredFields() []string
}

// LoadDataMap reads a combined data file keyed by the canonical language name
// and decodes each record into T. If T implements RequiredFielder, every
// listed key must be present in every record.
//
// Postcondition: returns id -> record, or an error wrapping ErrMissingName,
// ErrInvalidName or ErrMissingField that names the file.
func LoadDataMap[T any](m *translate.Map, path string) (map[int]T, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}

	result := make(map[int]T, len(records))
	for _, raw := range records {
		name, err := requireName(raw, CanonicalLanguage)
		if err != nil {
			return nil, fmt.Errorf("data file %s does not contain a %s field: %w",
				path, NameField(CanonicalLanguage), err)
		}
		id, err := m.IDOf(CanonicalLanguage, name)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %q in %s: %w", ErrInvalidName, name, path, err)
		}
		var record T
		if rf, ok := any(record).(RequiredFielder); ok {
			if err := RequireFields(raw, rf.RequiredFields()...); err != nil {
				return nil, fmt.Errorf("entry %q in %s: %w", name, path, err)
			}
		}
		if err := json.Unmarshal(raw, &record); err != nil {
			return nil, fmt.Errorf("decoding entry %q in %s: %w", name, path, err)
		}
		result[id] = record
	}
	return result, nil
}

// DecodeFunc turns one raw record of a language file into a typed record.
type DecodeFunc[T any] func(raw []byte, language string) (T, error)

// LanguageData maps identifier -> language -> record.
type LanguageData[T any] map[int]map[string]T

// Lookup returns the record of id in language.
//
// Postcondition: returns an error wrapping ErrMissingDetail if absent.
func (d LanguageData[T]) Lookup(id int, language string) (T, error) {
	record, ok := d[id][language]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: id %d has no %s record", ErrMissingDetail, id, language)
	}
	return record, nil
}

// LoadLanguageData scans dir for per-language files named *_<lang>.json and
// keys every record by the id its name_<lang> field resolves to. Directories,
// dangling symlinks, non-matching files and unsupported languages are skipped.
// Languages missing for some id are not reported here.
func LoadLanguageData[T any](m *translate.Map, dir string, languages []string, decode DecodeFunc[T]) (LanguageData[T], error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	result := make(LanguageData[T])
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		info, err := os.Stat(path)
		if errors.Is(err, os.ErrNotExist) {
			// dangling symlink
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		if !info.Mode().IsRegular() {
			continue
		}
		match := languageFile.FindStringSubmatch(strings.ToLower(entry.Name()))
		if match == nil {
			continue
		}
		lang := match[1]
		if !slices.Contains(languages, lang) {
			continue
		}

		records, err := readRecords(path)
		if err != nil {
			return nil, err
		}
		for _, raw := range records {
			name, err := requireName(raw, lang)
			if err != nil {
				return nil, fmt.Errorf("an entry in %s does not have a %s: %w", entry.Name(), NameField(lang), err)
			}
			id, err := m.IDOf(lang, name)
			if err != nil {
				return nil, fmt.Errorf("%w: entry %q in %s: %w", ErrInvalidName, name, entry.Name(), err)
			}
			record, err := decode(raw, lang)
			if err != nil {
				return nil, fmt.Errorf("entry %q in %s: %w", name, entry.Name(), err)
			}
			if result[id] == nil {
				result[id] = make(map[string]T)
			}
			result[id][lang] = record
		}
	}
	return result, nil
}

func readRecords(path string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return records, nil
}

func requireName(raw []byte, language string) (string, error) {
	name := gjson.GetBytes(raw, NameField(language)).String()
	if name == "" {
		return "", ErrMissingName
	}
	return name, nil
}

// RequireString returns the string at key in raw, or ErrMissingField.
func RequireString(raw []byte, key string) (string, error) {
	v := gjson.GetBytes(raw, key)
	if !v.Exists() {
		return "", fmt.Errorf("%w: %s", ErrMissingField, key)
	}
	return v.String(), nil
}

// RequireFields returns ErrMissingField naming the first key absent from raw.
func RequireFields(raw []byte, keys ...string) error {
	for i, v := range gjson.GetManyBytes(raw, keys...) {
		if !v.Exists() {
			return fmt.Errorf("%w: %s", ErrMissingField, keys[i])
		}
	}
	return nil
}
