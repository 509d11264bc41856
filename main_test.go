package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/elm-tooling/elm-i18n/config"
)

func TestPeekFileFlag(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "separate value",
			args: []string{"add", "greeting", "--file", "web/I18n.elm", "--en", "Hi"},
			want: "web/I18n.elm",
		},
		{
			name: "equals form",
			args: []string{"check", "--file=web/I18n.elm", "greeting"},
			want: "web/I18n.elm",
		},
		{
			name: "absent falls back",
			args: []string{"check", "greeting"},
			want: "src/I18n.elm",
		},
		{
			name: "dangling flag falls back",
			args: []string{"check", "--file"},
			want: "src/I18n.elm",
		},
	}

	for _, tc := range tests {
		if got := peekFileFlag(tc.args, "src/I18n.elm"); got != tc.want {
			t.Fatalf("%s: peekFileFlag() = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestActiveLanguages(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "I18n.elm")
	content := "type alias Translations =\n    { welcome : String\n    }\n\n" +
		"translationsEn : Translations\ntranslationsEn =\n    { welcome = \"Welcome!\"\n    }\n\n" +
		"translationsDe : Translations\ntranslationsDe =\n    { welcome = \"Willkommen!\"\n    }\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("os.WriteFile() error: %v", err)
	}

	cfg := &config.Config{Languages: []string{"en", "fr"}}

	// An existing document wins over configuration.
	if got := activeLanguages(path, cfg); !reflect.DeepEqual(got, []string{"en", "de"}) {
		t.Fatalf("activeLanguages(existing) = %v, want [en de]", got)
	}

	// A missing or unreadable file falls back to the configured set.
	if got := activeLanguages(filepath.Join(dir, "missing.elm"), cfg); !reflect.DeepEqual(got, cfg.Languages) {
		t.Fatalf("activeLanguages(missing) = %v, want %v", got, cfg.Languages)
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(filePath, []byte("ok"), 0644); err != nil {
		t.Fatalf("os.WriteFile() error: %v", err)
	}

	if !fileExists(filePath) {
		t.Fatalf("fileExists(file) = false, want true")
	}
	if fileExists(dir) {
		t.Fatalf("fileExists(directory) = true, want false")
	}
	if fileExists(filepath.Join(dir, "missing.txt")) {
		t.Fatalf("fileExists(missing) = true, want false")
	}
}
