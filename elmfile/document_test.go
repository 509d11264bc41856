package elmfile

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const sampleDoc = `module I18n exposing (..)

type alias Translations =
    { key1 : String
    , key2 : Int -> String
    }

translationsEn : Translations
translationsEn =
    { key1 = "value"
    , key2 = \n -> String.fromInt n
    }

translationsFr : Translations
translationsFr =
    { key1 = "valeur"
    , key2 = \n -> String.fromInt n
    }
`

func mustParse(t *testing.T, content string) *Document {
	t.Helper()
	d, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	return d
}

func TestParseLocatesBlocksAndLanguages(t *testing.T) {
	d := mustParse(t, sampleDoc)

	if got := d.Languages(); !reflect.DeepEqual(got, []string{"en", "fr"}) {
		t.Fatalf("Languages() = %v, want [en fr]", got)
	}

	tb := d.TypeBlock()
	if !strings.Contains(d.lines[tb.Open], "key1 : String") {
		t.Fatalf("type block open line = %q", d.lines[tb.Open])
	}
	if strings.TrimSpace(d.lines[tb.Close]) != "}" {
		t.Fatalf("type block close line = %q", d.lines[tb.Close])
	}

	records := d.Records()
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].Name != "translationsEn" || records[1].Name != "translationsFr" {
		t.Fatalf("record names = %s, %s", records[0].Name, records[1].Name)
	}

	if d.Text() != sampleDoc {
		t.Fatal("Text() should reproduce the input byte for byte")
	}
}

func TestParseMalformedShapes(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "no type alias",
			content: "module I18n exposing (..)\n\ntranslationsEn : Translations\ntranslationsEn =\n    { key1 = \"v\"\n    }\n",
		},
		{
			name:    "no record blocks",
			content: "type alias Translations =\n    { key1 : String\n    }\n",
		},
		{
			name:    "unbalanced braces",
			content: "type alias Translations =\n    { key1 : String\n",
		},
		{
			name: "duplicate record for language",
			content: "type alias Translations =\n    { key1 : String\n    }\n\n" +
				"translationsEn : Translations\ntranslationsEn =\n    { key1 = \"a\"\n    }\n\n" +
				"translationsEn : Translations\ntranslationsEn =\n    { key1 = \"b\"\n    }\n",
		},
		{
			name:    "garbage in type block",
			content: "type alias Translations =\n    { key1 : String\n    not a field\n    }\n\ntranslationsEn : Translations\ntranslationsEn =\n    { key1 = \"v\"\n    }\n",
		},
		{
			name:    "duplicate type alias",
			content: "type alias Translations =\n    { key1 : String\n    }\n\ntype alias Translations =\n    { key1 : String\n    }\n",
		},
		{
			name:    "annotation without definition",
			content: "type alias Translations =\n    { key1 : String\n    }\n\ntranslationsEn : Translations\n\nsomethingElse =\n    1\n",
		},
	}

	for _, tc := range tests {
		if _, err := Parse(tc.content); !errors.Is(err, ErrMalformed) {
			t.Fatalf("%s: Parse error = %v, want ErrMalformed", tc.name, err)
		}
	}
}

func TestParseEmptyBlocks(t *testing.T) {
	content := "type alias Translations =\n    {}\n\ntranslationsEn : Translations\ntranslationsEn =\n    {}\n"
	d := mustParse(t, content)

	if got := d.Keys(); len(got) != 0 {
		t.Fatalf("Keys() = %v, want empty", got)
	}
	tb := d.TypeBlock()
	if tb.Open != tb.Close {
		t.Fatalf("empty block region = %+v, want Open == Close", tb)
	}
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "I18n.elm"))
	if !os.IsNotExist(err) {
		t.Fatalf("ParseFile error = %v, want IsNotExist", err)
	}
}

func TestBraceDeltaSkipsStrings(t *testing.T) {
	tests := []struct {
		line string
		want int
	}{
		{line: `    { key = "curly { brace"`, want: 1},
		{line: `    , key = "escaped \" and }"`, want: 0},
		{line: `    }`, want: -1},
	}
	for _, tc := range tests {
		if got := braceDelta(tc.line); got != tc.want {
			t.Fatalf("braceDelta(%q) = %d, want %d", tc.line, got, tc.want)
		}
	}
}

func TestRecordNameRoundTrip(t *testing.T) {
	for _, lang := range []string{"en", "fr", "ptBr"} {
		name := RecordName(lang)
		if got := langFromRecordName(name); got != lang {
			t.Fatalf("langFromRecordName(RecordName(%q)) = %q", lang, got)
		}
	}
	if got := RecordName("en"); got != "translationsEn" {
		t.Fatalf("RecordName(en) = %q", got)
	}
}

func TestValidKey(t *testing.T) {
	valid := []string{"key1", "appTitle", "a"}
	invalid := []string{"", "Key", "1key", "my-key", "my key", "clé"}

	for _, k := range valid {
		if !ValidKey(k) {
			t.Fatalf("ValidKey(%q) = false, want true", k)
		}
	}
	for _, k := range invalid {
		if ValidKey(k) {
			t.Fatalf("ValidKey(%q) = true, want false", k)
		}
	}
}
