// Package i18n localizes elm-i18n's own user-facing strings.
//
// It wraps gotext around PO catalogs embedded in the binary. Call Init
// once at startup; T and N then translate according to the environment
// (LANGUAGE, LC_ALL, LC_MESSAGES, LANG) or stay passthrough when no
// catalog matches — a translation tool should speak the user's language.
package i18n

import (
	"embed"
	"os"
	"strings"

	"github.com/leonelquinteros/gotext"
)

// locales holds the embedded catalogs: locales/{lang}/LC_MESSAGES/elm-i18n.po
//
//go:embed all:locales
var locales embed.FS

// domain is the gettext domain name.
const domain = "elm-i18n"

var locale *gotext.Locale

// Init loads the catalog for lang, or for the language detected from the
// environment when lang is empty. Must run before any T or N call.
func Init(lang string) {
	if lang == "" {
		lang = detectLanguage()
	}
	locale = gotext.NewLocaleFSWithPath(lang, locales, "locales")
	locale.AddDomain(domain)
	locale.SetDomain(domain)
}

// T translates a message, returning it unchanged when no translation is
// available.
func T(msgid string) string {
	if locale == nil {
		return msgid
	}
	return locale.Get(msgid)
}

// N translates a message with plural forms selected by n.
func N(singular, plural string, n int) string {
	if locale == nil {
		if n == 1 {
			return singular
		}
		return plural
	}
	return locale.GetN(singular, plural, n)
}

// detectLanguage follows GNU gettext precedence over the environment.
func detectLanguage() string {
	for _, env := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		val := os.Getenv(env)
		if val == "" {
			continue
		}
		if env == "LANGUAGE" {
			val, _, _ = strings.Cut(val, ":")
		}
		if idx := strings.IndexByte(val, '.'); idx >= 0 {
			val = val[:idx]
		}
		if val == "" || val == "C" || val == "POSIX" {
			continue
		}
		return val
	}
	return "en"
}
