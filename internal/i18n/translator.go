package i18n

import (
	"fmt"

	"github.com/pkg/errors"
)

type Language string

const (
	LanguagePT Language = "pt"
	LanguageEN Language = "en"
	LanguageES Language = "es"

	DefaultLanguage = LanguagePT
)

var ErrUnknownLanguage = errors.New("unknown language")

type LanguageInfo struct {
	Code Language `json:"code"`
	Name string   `json:"name"`
	Flag string   `json:"flag"`
}

// Languages is the picker shown in the accessibility panel.
var Languages = []LanguageInfo{
	{Code: LanguagePT, Name: "Português", Flag: "🇧🇷"},
	{Code: LanguageEN, Name: "English", Flag: "🇺🇸"},
	{Code: LanguageES, Name: "Español", Flag: "🇪🇸"},
}

func ParseLanguage(s string) (Language, error) {
	switch Language(s) {
	case LanguagePT, LanguageEN, LanguageES:
		return Language(s), nil
	}
	return "", errors.Wrapf(ErrUnknownLanguage, "%q", s)
}

// Translator holds the active locale of one driver session.
// Not safe for concurrent use; the owning session serializes access.
type Translator struct {
	lang   Language
	tables map[Language]map[string]string
}

func New(lang Language) *Translator {
	return NewWithTables(lang, translations)
}

func NewWithTables(lang Language, tables map[Language]map[string]string) *Translator {
	if _, ok := tables[lang]; !ok {
		lang = DefaultLanguage
	}
	return &Translator{lang: lang, tables: tables}
}

func (t *Translator) Language() Language { return t.lang }

func (t *Translator) SetLanguage(lang Language) {
	t.lang = lang
}

// lookup treats an empty value like an absent key, so an untranslated entry
// shows the key instead of a blank label.
func (t *Translator) lookup(key string) (string, bool) {
	v, ok := t.tables[t.lang][key]
	return v, ok && v != ""
}

// T returns the text for key in the active locale, or key itself when missing.
func (t *Translator) T(key string) string {
	if v, ok := t.lookup(key); ok {
		return v
	}
	return key
}

// Tf formats the translated template with args. A missing key yields the key.
func (t *Translator) Tf(key string, args ...any) string {
	v, ok := t.lookup(key)
	if !ok {
		return key
	}
	return fmt.Sprintf(v, args...)
}

// Keys returns every key known to the locale (used by tests and the API).
func Keys(lang Language) []string {
	tbl := translations[lang]
	out := make([]string, 0, len(tbl))
	for k := range tbl {
		out = append(out, k)
	}
	return out
}
