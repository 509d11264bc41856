// Package langmeta provides language display metadata (native names and
// emoji flags) for CLI output. Codes may arrive as BCP 47 ("pt-BR"),
// underscore locales ("pt_BR"), or the camel identifier tokens used in
// generated record names ("ptBr"); Resolve normalizes all three.
package langmeta

import (
	"strings"
	"unicode"
)

// Meta describes how a language is presented to the user.
type Meta struct {
	Name string
	Flag string
}

// Registry contains canonical language metadata. Variants fall back to
// their base language in Resolve.
var Registry = map[string]Meta{
	"ar":    {Name: "العربية", Flag: "🇸🇦"},
	"cs":    {Name: "Čeština", Flag: "🇨🇿"},
	"da":    {Name: "Dansk", Flag: "🇩🇰"},
	"de":    {Name: "Deutsch", Flag: "🇩🇪"},
	"el":    {Name: "Ελληνικά", Flag: "🇬🇷"},
	"en":    {Name: "English", Flag: "🇺🇸"},
	"en-GB": {Name: "English (UK)", Flag: "🇬🇧"},
	"es":    {Name: "Español", Flag: "🇪🇸"},
	"fi":    {Name: "Suomi", Flag: "🇫🇮"},
	"fr":    {Name: "Français", Flag: "🇫🇷"},
	"he":    {Name: "עברית", Flag: "🇮🇱"},
	"hu":    {Name: "Magyar", Flag: "🇭🇺"},
	"it":    {Name: "Italiano", Flag: "🇮🇹"},
	"ja":    {Name: "日本語", Flag: "🇯🇵"},
	"ko":    {Name: "한국어", Flag: "🇰🇷"},
	"nl":    {Name: "Nederlands", Flag: "🇳🇱"},
	"no":    {Name: "Norsk", Flag: "🇳🇴"},
	"pl":    {Name: "Polski", Flag: "🇵🇱"},
	"pt":    {Name: "Português", Flag: "🇵🇹"},
	"pt-BR": {Name: "Português (Brasil)", Flag: "🇧🇷"},
	"ro":    {Name: "Română", Flag: "🇷🇴"},
	"ru":    {Name: "Русский", Flag: "🇷🇺"},
	"sv":    {Name: "Svenska", Flag: "🇸🇪"},
	"tr":    {Name: "Türkçe", Flag: "🇹🇷"},
	"uk":    {Name: "Українська", Flag: "🇺🇦"},
	"vi":    {Name: "Tiếng Việt", Flag: "🇻🇳"},
	"zh":    {Name: "中文", Flag: "🇨🇳"},
	"zh-TW": {Name: "繁體中文", Flag: "🇹🇼"},
}

// canonicalize maps "pt_br", "pt-br" and "ptBr" to "pt-BR".
func canonicalize(code string) string {
	s := strings.TrimSpace(code)
	if s == "" {
		return ""
	}

	// Camel identifier token: split before each uppercase run.
	if !strings.ContainsAny(s, "-_") {
		var parts []string
		start := 0
		for i, r := range s {
			if i > 0 && unicode.IsUpper(r) {
				parts = append(parts, s[start:i])
				start = i
			}
		}
		parts = append(parts, s[start:])
		s = strings.Join(parts, "-")
	}

	s = strings.ReplaceAll(s, "_", "-")
	parts := strings.Split(s, "-")
	parts[0] = strings.ToLower(parts[0])
	if len(parts) >= 2 {
		parts[1] = strings.ToUpper(parts[1])
	}
	return strings.Join(parts, "-")
}

// Resolve returns best-effort metadata for a language code, falling back
// to the base language for unknown variants and to the code itself when
// nothing matches.
func Resolve(code string) Meta {
	if m, ok := Registry[code]; ok {
		return m
	}
	normalized := canonicalize(code)
	if m, ok := Registry[normalized]; ok {
		return m
	}
	if base, _, found := strings.Cut(normalized, "-"); found {
		if m, ok := Registry[base]; ok {
			return m
		}
	}
	return Meta{Name: code}
}

// Display formats a code for terminal output: "Français 🇫🇷" or just the
// code when unknown.
func Display(code string) string {
	m := Resolve(code)
	if m.Flag == "" {
		return m.Name
	}
	return m.Name + " " + m.Flag
}
