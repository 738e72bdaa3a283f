package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LanguageInfo holds the detection-relevant slice of a linguist-style
// language entry.
type LanguageInfo struct {
	Type       string   `yaml:"type"`
	Extensions []string `yaml:"extensions"`
	Filenames  []string `yaml:"filenames"`
}

// LanguageMap maps language names to their details.
type LanguageMap map[string]LanguageInfo

// LoadedLanguageData is a parsed language map with lookup indexes. When a
// languages.yml is present, directory walks only keep files that resolve
// to a known language, which keeps binaries and build junk out of the word
// and token counts. Without one, every non-excluded file is counted.
type LoadedLanguageData struct {
	Langs        LanguageMap
	extensionMap map[string]string
	filenameMap  map[string]string
}

// loadLanguageData looks for languages.yml in the standard config
// locations and parses it. A missing file is an error the caller treats as
// "no language filtering".
func loadLanguageData() (*LoadedLanguageData, error) {
	var configPaths []string
	if home, err := os.UserHomeDir(); err == nil {
		configPaths = append(configPaths, filepath.Join(home, ".config", "metron"))
	}
	configPaths = append(configPaths, ".")

	var langFilePath string
	for _, p := range configPaths {
		testPath := filepath.Join(p, "languages.yml")
		if _, err := os.Stat(testPath); err == nil {
			langFilePath = testPath
			break
		}
	}
	if langFilePath == "" {
		return nil, fmt.Errorf("languages.yml not found in standard config locations")
	}

	raw, err := os.ReadFile(langFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading language file %s: %w", langFilePath, err)
	}
	langs, err := parseLanguages(raw)
	if err != nil {
		return nil, fmt.Errorf("error parsing language file %s: %w", langFilePath, err)
	}
	return newLanguageData(langs), nil
}

// parseLanguages unmarshals a languages.yml document.
func parseLanguages(raw []byte) (LanguageMap, error) {
	var langs LanguageMap
	if err := yaml.Unmarshal(raw, &langs); err != nil {
		return nil, err
	}
	return langs, nil
}

// newLanguageData builds the lookup indexes. When several languages claim
// the same extension the first one registered keeps it.
func newLanguageData(langs LanguageMap) *LoadedLanguageData {
	data := &LoadedLanguageData{
		Langs:        langs,
		extensionMap: make(map[string]string),
		filenameMap:  make(map[string]string),
	}
	for langName, info := range langs {
		for _, ext := range info.Extensions {
			lowerExt := strings.ToLower(ext)
			if data.extensionMap[lowerExt] == "" {
				data.extensionMap[lowerExt] = langName
			}
		}
		for _, fname := range info.Filenames {
			// Filenames match case-sensitively, as linguist does.
			if data.filenameMap[fname] == "" {
				data.filenameMap[fname] = langName
			}
		}
	}
	return data
}

// LanguageFor resolves the language for a path. Exact filename matches
// take precedence over extension matches.
func (ld *LoadedLanguageData) LanguageFor(path string) (string, bool) {
	if ld == nil {
		return "", false
	}

	baseName := filepath.Base(path)
	if lang, ok := ld.filenameMap[baseName]; ok {
		return lang, true
	}
	if ext := strings.ToLower(filepath.Ext(baseName)); ext != "" {
		if lang, ok := ld.extensionMap[ext]; ok {
			return lang, true
		}
	}
	return "", false
}
