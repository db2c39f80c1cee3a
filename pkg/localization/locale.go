package localization

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed locales/*.json
var builtin embed.FS

type Locale struct {
	lang         string
	translations map[string]string
}

// NewLocale loads one of the bundled catalogs.
func NewLocale(lang string) (*Locale, error) {
	l := &Locale{}
	if err := l.SetLanguage(lang); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Locale) SetLanguage(lang string) error {
	data, err := builtin.ReadFile("locales/" + lang + ".json")
	if err != nil {
		return fmt.Errorf("unknown language %q: %w", lang, err)
	}

	var translations map[string]string
	if err := json.Unmarshal(data, &translations); err != nil {
		return fmt.Errorf("decode %s catalog: %w", lang, err)
	}

	l.lang = lang
	l.translations = translations
	return nil
}

func (l *Locale) Language() string {
	return l.lang
}

func (l *Locale) Translate(key string) string {
	if translation, ok := l.translations[key]; ok {
		return translation
	}
	return key
}

// Languages lists the bundled catalogs.
func Languages() []string {
	entries, err := fs.ReadDir(builtin, "locales")
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		out = append(out, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(out)
	return out
}
