// Package elmfile implements structural reading and editing of generated
// I18n.elm modules.
//
// The expected file shape is the one this tool generates itself: a single
// "type alias Translations" record type plus one "translationsXx" value
// record per language, all in Elm's leading-comma layout:
//
//	type alias Translations =
//	    { appTitle : String
//	    , welcome : String
//	    }
//
//	translationsEn : Translations
//	translationsEn =
//	    { appTitle = "My App"
//	    , welcome = "Welcome!"
//	    }
//
// Blocks are located by line scanning with a brace-depth counter, not a
// full Elm parser. Files that deviate from the generated shape are
// rejected as malformed rather than repaired.
package elmfile

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode"
)

// Sentinel errors for structural conditions. Callers branch with errors.Is.
var (
	// ErrMalformed means the file does not match the generated
	// type-block-plus-record-blocks shape.
	ErrMalformed = errors.New("malformed I18n module")
	// ErrDuplicateKey means an add hit a key already declared in the
	// Translations type alias.
	ErrDuplicateKey = errors.New("translation key already exists")
	// ErrKeyNotFound means a lookup or removal missed.
	ErrKeyNotFound = errors.New("translation key not found")
)

// indentUnit is the indentation step of the generated format.
const indentUnit = "    "

// recordPrefix is the naming convention for per-language value records.
const recordPrefix = "translations"

// Region is a line span of one located block. Open is the line carrying the
// opening brace (the first entry shares it), Close the line carrying the
// matching closing brace. An empty "{}" block has Open == Close.
type Region struct {
	Open  int
	Close int
}

// Record is one per-language value block.
type Record struct {
	// Lang is the language code decoded from the record name ("en").
	Lang string
	// Name is the Elm value name ("translationsEn").
	Name string
	// Region is the located brace block of the record literal.
	Region Region
}

// Document is a loaded I18n.elm file with its blocks located.
// It is read-only; edits produce a whole new text buffer.
type Document struct {
	lines     []string
	typeBlock Region
	records   []Record
}

var (
	typeAliasRe  = regexp.MustCompile(`^type\s+alias\s+Translations\s*=\s*$`)
	recordAnnRe  = regexp.MustCompile(`^(` + recordPrefix + `[A-Z][A-Za-z0-9]*)\s*:\s*Translations\s*$`)
	fieldOpenRe  = regexp.MustCompile(`^(\s*)\{\s*([a-z][A-Za-z0-9]*)\s*:\s*(.+?)\s*$`)
	fieldContRe  = regexp.MustCompile(`^(\s*),\s*([a-z][A-Za-z0-9]*)\s*:\s*(.+?)\s*$`)
	valueOpenRe  = regexp.MustCompile(`^(\s*)\{\s*([a-z][A-Za-z0-9]*)\s*=\s*(.*)$`)
	valueContRe  = regexp.MustCompile(`^(\s*),\s*([a-z][A-Za-z0-9]*)\s*=\s*(.*)$`)
	closeLineRe  = regexp.MustCompile(`^\s*\}\s*$`)
	emptyBlockRe = regexp.MustCompile(`^(\s*)\{\s*\}\s*$`)
	keyRe        = regexp.MustCompile(`^[a-z][A-Za-z0-9]*$`)
)

// ValidKey reports whether s is a usable translation key: a bare Elm record
// field identifier starting with a lowercase letter.
func ValidKey(s string) bool {
	return keyRe.MatchString(s)
}

// ParseFile loads and locates an I18n.elm file from disk.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Parse locates the Translations type block and every per-language record
// block in content. The language set of the document is whatever record
// blocks are present; exactly one type block and one record per language
// are required.
func Parse(content string) (*Document, error) {
	d := &Document{lines: strings.Split(content, "\n")}

	if err := d.locateTypeBlock(); err != nil {
		return nil, err
	}
	if err := d.locateRecords(); err != nil {
		return nil, err
	}
	if len(d.records) == 0 {
		return nil, fmt.Errorf("%w: no %s* record blocks found", ErrMalformed, recordPrefix)
	}
	return d, nil
}

// Text returns the full document text.
func (d *Document) Text() string {
	return strings.Join(d.lines, "\n")
}

// Languages returns the language codes discovered from the record blocks,
// in document order.
func (d *Document) Languages() []string {
	langs := make([]string, 0, len(d.records))
	for _, r := range d.records {
		langs = append(langs, r.Lang)
	}
	return langs
}

// Records returns the located per-language record blocks in document order.
func (d *Document) Records() []Record {
	out := make([]Record, len(d.records))
	copy(out, d.records)
	return out
}

// TypeBlock returns the located Translations type alias block.
func (d *Document) TypeBlock() Region {
	return d.typeBlock
}

// record finds the record block for a language code.
func (d *Document) record(lang string) (Record, bool) {
	for _, r := range d.records {
		if r.Lang == lang {
			return r, true
		}
	}
	return Record{}, false
}

// locateTypeBlock finds the single "type alias Translations" declaration
// and the brace block that follows it.
func (d *Document) locateTypeBlock() error {
	declLine := -1
	for i, line := range d.lines {
		if typeAliasRe.MatchString(line) {
			if declLine >= 0 {
				return fmt.Errorf("%w: duplicate Translations type alias (lines %d and %d)", ErrMalformed, declLine+1, i+1)
			}
			declLine = i
		}
	}
	if declLine < 0 {
		return fmt.Errorf("%w: no Translations type alias found", ErrMalformed)
	}

	region, err := d.scanBlock(declLine + 1)
	if err != nil {
		return fmt.Errorf("%w: Translations type alias: %v", ErrMalformed, err)
	}

	// Every interior line must be a "key : signature" field.
	if region.Open != region.Close {
		for i := region.Open; i < region.Close; i++ {
			line := d.lines[i]
			if i == region.Open {
				if !fieldOpenRe.MatchString(line) {
					return fmt.Errorf("%w: line %d: expected first type field, got %q", ErrMalformed, i+1, line)
				}
				continue
			}
			if !fieldContRe.MatchString(line) {
				return fmt.Errorf("%w: line %d: expected type field, got %q", ErrMalformed, i+1, line)
			}
		}
	}

	d.typeBlock = region
	return nil
}

// locateRecords finds every "translationsXx : Translations" annotation and
// the record literal body after it.
func (d *Document) locateRecords() error {
	seen := make(map[string]int)
	for i := 0; i < len(d.lines); i++ {
		m := recordAnnRe.FindStringSubmatch(d.lines[i])
		if m == nil {
			continue
		}
		name := m[1]
		lang := langFromRecordName(name)

		if prev, dup := seen[lang]; dup {
			return fmt.Errorf("%w: duplicate record block for language %q (lines %d and %d)", ErrMalformed, lang, prev+1, i+1)
		}
		seen[lang] = i

		// The definition line "translationsXx =" follows the annotation.
		if i+1 >= len(d.lines) || !strings.HasPrefix(strings.TrimSpace(d.lines[i+1]), name) {
			return fmt.Errorf("%w: record %s has annotation but no definition", ErrMalformed, name)
		}

		region, err := d.scanBlock(i + 2)
		if err != nil {
			return fmt.Errorf("%w: record %s: %v", ErrMalformed, name, err)
		}
		d.records = append(d.records, Record{Lang: lang, Name: name, Region: region})
		i = region.Close
	}
	return nil
}

// scanBlock finds the brace block starting at or after line start: the first
// line opening a "{" and the line where the brace depth returns to zero.
// Braces inside string literals are ignored.
func (d *Document) scanBlock(start int) (Region, error) {
	open := -1
	depth := 0
	for i := start; i < len(d.lines); i++ {
		line := d.lines[i]
		if open < 0 {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			if !strings.HasPrefix(trimmed, "{") {
				return Region{}, fmt.Errorf("line %d: expected opening brace, got %q", i+1, line)
			}
			open = i
		}
		depth += braceDelta(line)
		if depth < 0 {
			return Region{}, fmt.Errorf("line %d: unbalanced closing brace", i+1)
		}
		if depth == 0 {
			if i != open && !closeLineRe.MatchString(line) {
				return Region{}, fmt.Errorf("line %d: closing brace must stand alone", i+1)
			}
			return Region{Open: open, Close: i}, nil
		}
	}
	return Region{}, fmt.Errorf("no closing brace found for block opened at line %d", open+1)
}

// braceDelta returns the net {/} count of a line, skipping Elm string
// literals so quoted braces do not confuse the depth counter.
func braceDelta(line string) int {
	delta := 0
	inString := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case inString:
			if c == '\\' {
				i++ // skip the escaped character
			} else if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
		case c == '{':
			delta++
		case c == '}':
			delta--
		}
	}
	return delta
}

// bracketDelta returns the net open/close count over all bracket kinds,
// again skipping string literals. Used to find entry boundaries inside
// record blocks where values span multiple lines.
func bracketDelta(line string) int {
	delta := 0
	inString := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case inString:
			if c == '\\' {
				i++
			} else if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
		case c == '{', c == '(', c == '[':
			delta++
		case c == '}', c == ')', c == ']':
			delta--
		}
	}
	return delta
}

// langFromRecordName decodes "translationsEn" to "en".
func langFromRecordName(name string) string {
	suffix := strings.TrimPrefix(name, recordPrefix)
	if suffix == "" {
		return ""
	}
	runes := []rune(suffix)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// RecordName encodes a language code into its record value name:
// "en" becomes "translationsEn", "ptBr" becomes "translationsPtBr".
func RecordName(lang string) string {
	if lang == "" {
		return recordPrefix
	}
	runes := []rune(lang)
	runes[0] = unicode.ToUpper(runes[0])
	return recordPrefix + string(runes)
}

// blockIndent returns the indentation of a block's opening-brace line.
func (d *Document) blockIndent(r Region) string {
	line := d.lines[r.Open]
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}
