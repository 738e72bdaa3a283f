package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testLanguagesYAML = `
Go:
  type: programming
  extensions:
    - ".go"
Markdown:
  type: prose
  extensions:
    - ".md"
    - ".markdown"
Makefile:
  type: programming
  filenames:
    - "Makefile"
    - "GNUmakefile"
`

func TestParseLanguages(t *testing.T) {
	langs, err := parseLanguages([]byte(testLanguagesYAML))
	require.NoError(t, err)
	require.Len(t, langs, 3)
	assert.Equal(t, "prose", langs["Markdown"].Type)
	assert.Contains(t, langs["Makefile"].Filenames, "GNUmakefile")
}

func TestParseLanguagesRejectsGarbage(t *testing.T) {
	_, err := parseLanguages([]byte("not: [valid: yaml"))
	assert.Error(t, err)
}

func TestLanguageFor(t *testing.T) {
	langs, err := parseLanguages([]byte(testLanguagesYAML))
	require.NoError(t, err)
	data := newLanguageData(langs)

	tests := []struct {
		path     string
		expected string
		known    bool
	}{
		{"main.go", "Go", true},
		{"docs/guide.MD", "Markdown", true}, // extensions match case-insensitively
		{"Makefile", "Makefile", true},
		{"sub/dir/Makefile", "Makefile", true},
		{"makefile", "", false}, // filenames match case-sensitively
		{"photo.png", "", false},
		{"noextension", "", false},
	}

	for _, tc := range tests {
		lang, ok := data.LanguageFor(tc.path)
		assert.Equal(t, tc.known, ok, "path %q", tc.path)
		assert.Equal(t, tc.expected, lang, "path %q", tc.path)
	}
}

func TestLanguageForNilData(t *testing.T) {
	var data *LoadedLanguageData
	_, ok := data.LanguageFor("main.go")
	assert.False(t, ok)
}
