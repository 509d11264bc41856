package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.File != DefaultFile {
		t.Fatalf("File = %q, want %q", cfg.File, DefaultFile)
	}
	if !reflect.DeepEqual(cfg.Languages, []string{"en", "fr"}) {
		t.Fatalf("Languages = %v", cfg.Languages)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	content := "file: assets/I18n.elm\nlanguages:\n  - EN\n  - \" fr \"\n  - de\n"
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.File != "assets/I18n.elm" {
		t.Fatalf("File = %q", cfg.File)
	}
	if !reflect.DeepEqual(cfg.Languages, []string{"en", "fr", "de"}) {
		t.Fatalf("Languages = %v", cfg.Languages)
	}
}

func TestLoadPartialFileFillsDefaults(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("languages: [es]\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.File != DefaultFile {
		t.Fatalf("File = %q, want default", cfg.File)
	}
	if !reflect.DeepEqual(cfg.Languages, []string{"es"}) {
		t.Fatalf("Languages = %v", cfg.Languages)
	}
}

func TestLoadMalformedYaml(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("languages: [unclosed\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("Load should fail on malformed yaml")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	in := &Config{File: "web/I18n.elm", Languages: []string{"en", "ja"}}
	if err := in.Save(dir); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip = %+v, want %+v", out, in)
	}
}
