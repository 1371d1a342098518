package i18n

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTranslator_T(t *testing.T) {
	tr := New(LanguagePT)
	require.Equal(t, LanguagePT, tr.Language())
	require.Equal(t, "Voltar", tr.T("back"))

	tr.SetLanguage(LanguageEN)
	require.Equal(t, "Back", tr.T("back"))

	tr.SetLanguage(LanguageES)
	require.Equal(t, "Volver", tr.T("back"))
}

func TestTranslator_MissingKeyReturnsKey(t *testing.T) {
	tr := New(LanguageEN)
	require.Equal(t, "no_such_key", tr.T("no_such_key"))
	require.Equal(t, "no_such_key", tr.Tf("no_such_key", 1, 2))
}

func TestTranslator_EmptyValueReturnsKey(t *testing.T) {
	tr := NewWithTables(LanguageEN, map[Language]map[string]string{
		LanguageEN: {"blank": "", "tpl": ""},
	})
	require.Equal(t, "blank", tr.T("blank"))
	require.Equal(t, "tpl", tr.Tf("tpl", 3))
}

func TestTranslator_UnsupportedLanguageFallsBackOnLookup(t *testing.T) {
	tr := New(LanguagePT)
	tr.SetLanguage(Language("de"))
	// no table for "de": every lookup degrades to the key
	require.Equal(t, "back", tr.T("back"))
}

func TestNewWithTables_UnknownInitialLanguage(t *testing.T) {
	tr := NewWithTables(Language("xx"), map[Language]map[string]string{
		LanguagePT: {"k": "v"},
	})
	require.Equal(t, LanguagePT, tr.Language())
	require.Equal(t, "v", tr.T("k"))
}

func TestTranslator_Tf(t *testing.T) {
	tr := New(LanguageEN)
	require.Equal(t, "Delivery NF-1 confirmed successfully", tr.Tf("receipt_saved_desc", "NF-1"))
	require.Equal(t, "3 deliveries", tr.Tf("deliveries_count", 3))
}

func TestParseLanguage(t *testing.T) {
	l, err := ParseLanguage("es")
	require.NoError(t, err)
	require.Equal(t, LanguageES, l)

	_, err = ParseLanguage("fr")
	require.ErrorIs(t, err, ErrUnknownLanguage)
}

// Every key must exist in every locale.
func TestLocales_SameKeySet(t *testing.T) {
	want := Keys(LanguagePT)
	sort.Strings(want)
	for _, li := range Languages {
		got := Keys(li.Code)
		sort.Strings(got)
		require.Equal(t, want, got, "locale %s", li.Code)
	}
}

func TestLocales_NoEmptyValues(t *testing.T) {
	for lang, tbl := range translations {
		for k, v := range tbl {
			require.NotEmpty(t, v, "%s/%s", lang, k)
		}
	}
}
