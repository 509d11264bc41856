// Package scaffold generates the initial I18n.elm module for a project.
//
// The generated module is the exact shape the structural editor expects:
// a Translations type alias, one translationsXx record per language in
// leading-comma layout, and the Language helper functions. Records are
// seeded with a few starter keys so the blocks are never empty.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/elm-tooling/elm-i18n/elmfile"
)

// DefaultLanguages is the language set used when none are configured.
var DefaultLanguages = []string{"en", "fr"}

// seedKeys are the starter translations every new module carries.
var seedKeys = []string{"appTitle", "appName", "welcome", "loading"}

// seedValues maps base language code -> starter values keyed like seedKeys.
// Languages without an entry fall back to English.
var seedValues = map[string]map[string]string{
	"en": {"appTitle": "Elm Application", "appName": "My App", "welcome": "Welcome!", "loading": "Loading..."},
	"fr": {"appTitle": "Application Elm", "appName": "My App", "welcome": "Bienvenue!", "loading": "Chargement..."},
	"es": {"appTitle": "Aplicación Elm", "appName": "My App", "welcome": "¡Bienvenido!", "loading": "Cargando..."},
	"de": {"appTitle": "Elm Anwendung", "appName": "My App", "welcome": "Willkommen!", "loading": "Laden..."},
}

// Module renders the full I18n.elm text for the given language codes.
// Codes are normalized to valid Elm identifiers ("pt-br" becomes the
// record translationsPtBr and the constructor PTBR).
func Module(languages []string) string {
	langs := normalize(languages)

	var b strings.Builder
	b.WriteString("module I18n exposing (..)\n\n")
	b.WriteString("{-| This module handles internationalization (i18n) for the application.\n")
	b.WriteString("It provides translations for all UI text in supported languages.\n")
	b.WriteString("-}\n\n\n")
	b.WriteString("-- TYPES\n\n\n")

	b.WriteString("type Language\n")
	for i, lang := range langs {
		sep := "| "
		if i == 0 {
			sep = "= "
		}
		b.WriteString("    " + sep + constructor(lang) + "\n")
	}
	b.WriteString("\n\n")

	b.WriteString("type alias Translations =\n")
	for i, key := range seedKeys {
		prefix := "    , "
		if i == 0 {
			prefix = "    { "
		}
		b.WriteString(prefix + key + " : String\n")
	}
	b.WriteString("    }\n\n\n")
	b.WriteString("-- FUNCTIONS\n\n\n")

	for _, lang := range langs {
		name := elmfile.RecordName(lang)
		b.WriteString(name + " : Translations\n")
		b.WriteString(name + " =\n")
		for i, key := range seedKeys {
			prefix := "    , "
			if i == 0 {
				prefix = "    { "
			}
			fmt.Fprintf(&b, "%s%s = %q\n", prefix, key, seedValue(lang, key))
		}
		b.WriteString("    }\n\n\n")
	}

	b.WriteString("{-| Convert Language to String for storage\n-}\n")
	b.WriteString("languageToString : Language -> String\n")
	b.WriteString("languageToString lang =\n")
	b.WriteString("    case lang of\n")
	for _, lang := range langs {
		fmt.Fprintf(&b, "        %s ->\n            %q\n\n", constructor(lang), lang)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "{-| Convert String to Language with fallback to %s\n-}\n", constructor(langs[0]))
	b.WriteString("stringToLanguage : String -> Language\n")
	b.WriteString("stringToLanguage str =\n")
	b.WriteString("    case str of\n")
	for _, lang := range langs[1:] {
		fmt.Fprintf(&b, "        %q ->\n            %s\n\n", lang, constructor(lang))
	}
	fmt.Fprintf(&b, "        _ ->\n            %s\n\n\n", constructor(langs[0]))

	b.WriteString("{-| Get translations for a given language\n-}\n")
	b.WriteString("translations : Language -> Translations\n")
	b.WriteString("translations lang =\n")
	b.WriteString("    case lang of\n")
	for _, lang := range langs {
		fmt.Fprintf(&b, "        %s ->\n            %s\n\n", constructor(lang), elmfile.RecordName(lang))
	}

	return b.String()
}

// Create writes a fresh I18n.elm at path, creating parent directories.
// Refuses to overwrite an existing file.
func Create(path string, languages []string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists: %w", path, os.ErrExist)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(Module(languages)), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// normalize lowercases, trims and identifier-sanitizes language codes,
// dropping empties and duplicates. Falls back to DefaultLanguages.
func normalize(languages []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, lang := range languages {
		code := token(lang)
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, code)
	}
	if len(out) == 0 {
		return DefaultLanguages
	}
	return out
}

// token converts a user-supplied code into a valid identifier fragment:
// "pt-br" -> "ptBr", "EN" -> "en".
func token(code string) string {
	parts := strings.FieldsFunc(strings.ToLower(strings.TrimSpace(code)), func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	var b strings.Builder
	for i, p := range parts {
		if i == 0 {
			b.WriteString(p)
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]) + p[1:])
	}
	return b.String()
}

// constructor returns the Language constructor name for a code: EN, PTBR.
func constructor(lang string) string {
	return strings.ToUpper(lang)
}

// seedValue returns the starter value for a key in a language, falling
// back to English for languages without localized seeds.
func seedValue(lang, key string) string {
	base := lang
	if len(base) > 2 {
		base = base[:2]
	}
	if vals, ok := seedValues[base]; ok {
		return vals[key]
	}
	return seedValues["en"][key]
}
