package judge0

import (
	"sort"
	"strings"

	"gitlab.com/codearena.net/internal/static/errs"
)

// languageIDs maps the names used by problems and clients to Judge0 language ids.
var languageIDs = map[string]int{
	"C":          50,
	"CPP":        54,
	"GO":         60,
	"JAVA":       62,
	"JAVASCRIPT": 63,
	"PYTHON":     71,
	"RUST":       73,
	"TYPESCRIPT": 74,
}

var languageNames = invert(languageIDs)

func invert(m map[string]int) map[int]string {
	out := make(map[int]string, len(m))
	for name, id := range m {
		out[id] = name
	}
	return out
}

// LanguageIDFor looks up the Judge0 id for a language name, case-insensitively.
func LanguageIDFor(name string) (int, error) {
	id, ok := languageIDs[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return 0, &errs.UnsupportedLanguageError{Language: name}
	}
	return id, nil
}

// LanguageNameFor is the inverse of LanguageIDFor.
func LanguageNameFor(id int) (string, error) {
	name, ok := languageNames[id]
	if !ok {
		return "", &errs.UnsupportedLanguageError{LanguageID: id}
	}
	return name, nil
}

// SupportedLanguages lists the known language names in alphabetical order.
func SupportedLanguages() []string {
	names := make([]string, 0, len(languageIDs))
	for name := range languageIDs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
