package elmfile

import (
	"fmt"
	"strings"
)

// Field is one "key : signature" line of the Translations type alias.
type Field struct {
	Key string
	Sig string
	// Line is the field's line index in the document.
	Line int
}

// Entry is a translation to be inserted or reported.
type Entry struct {
	Key string
	// TypeSig is the shared Elm type signature ("String" for simple
	// entries, e.g. "Int -> String" for function entries).
	TypeSig string
	// Function marks a function-literal entry whose values are bodies
	// rather than plain strings.
	Function bool
	// Values maps language code to the string value (simple) or the
	// function-literal body (function, possibly multi-line).
	Values map[string]string
}

// IsFunction reports whether a type signature denotes a function entry.
func IsFunction(sig string) bool {
	return strings.Contains(sig, "->")
}

// Fields returns the type alias fields in declaration order.
func (d *Document) Fields() []Field {
	var fields []Field
	r := d.typeBlock
	if r.Open == r.Close {
		return nil
	}
	for i := r.Open; i < r.Close; i++ {
		var m []string
		if i == r.Open {
			m = fieldOpenRe.FindStringSubmatch(d.lines[i])
		} else {
			m = fieldContRe.FindStringSubmatch(d.lines[i])
		}
		if m == nil {
			continue
		}
		fields = append(fields, Field{Key: m[2], Sig: m[3], Line: i})
	}
	return fields
}

// Field looks up a type alias field by key. The type block is the single
// source of truth for key existence.
func (d *Document) Field(key string) (Field, bool) {
	for _, f := range d.Fields() {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// HasKey reports whether key is declared in the Translations type alias.
func (d *Document) HasKey(key string) bool {
	_, ok := d.Field(key)
	return ok
}

// Keys returns all declared translation keys in declaration order.
func (d *Document) Keys() []string {
	fields := d.Fields()
	keys := make([]string, 0, len(fields))
	for _, f := range fields {
		keys = append(keys, f.Key)
	}
	return keys
}

// valueEntry is one located "key = value" entry inside a record block,
// including any continuation lines of a multi-line function body.
type valueEntry struct {
	key string
	// start and end are the inclusive line span of the entry.
	start, end int
	// first marks the entry sharing the opening-brace line.
	first bool
	// raw is the value text for display: the first line's right-hand
	// side, plus dedented continuation lines.
	raw string
}

// recordEntries splits a record block into its entries. Continuation lines
// belong to the preceding entry; a line only starts a new entry when the
// bracket depth opened by earlier value lines has closed again.
func (d *Document) recordEntries(r Record) ([]valueEntry, error) {
	reg := r.Region
	if reg.Open == reg.Close {
		return nil, nil
	}

	var entries []valueEntry
	var cur *valueEntry
	var cont []string
	depth := 0

	flush := func(end int) {
		if cur == nil {
			return
		}
		cur.end = end
		if len(cont) > 0 {
			cur.raw += "\n" + dedent(cont)
		}
		entries = append(entries, *cur)
		cur = nil
		cont = nil
	}

	for i := reg.Open; i < reg.Close; i++ {
		line := d.lines[i]
		if i == reg.Open {
			m := valueOpenRe.FindStringSubmatch(line)
			if m == nil {
				return nil, fmt.Errorf("%w: record %s line %d: expected first entry, got %q", ErrMalformed, r.Name, i+1, line)
			}
			cur = &valueEntry{key: m[2], start: i, first: true, raw: strings.TrimSpace(m[3])}
			depth = bracketDelta(line) - 1 // the record's own brace does not count
			continue
		}
		if depth == 0 {
			if m := valueContRe.FindStringSubmatch(line); m != nil {
				flush(i - 1)
				cur = &valueEntry{key: m[2], start: i, raw: strings.TrimSpace(m[3])}
				depth = bracketDelta(line)
				continue
			}
		}
		if cur == nil {
			return nil, fmt.Errorf("%w: record %s line %d: unexpected line %q", ErrMalformed, r.Name, i+1, line)
		}
		cont = append(cont, line)
		depth += bracketDelta(line)
	}
	flush(reg.Close - 1)

	return entries, nil
}

// recordEntry finds a single key's entry within a record block.
func (d *Document) recordEntry(r Record, key string) (valueEntry, bool, error) {
	entries, err := d.recordEntries(r)
	if err != nil {
		return valueEntry{}, false, err
	}
	for _, e := range entries {
		if e.key == key {
			return e, true, nil
		}
	}
	return valueEntry{}, false, nil
}

// Value returns the raw value text of key in the given language's record
// block, as stored in the file (quotes and escapes included for simple
// entries, dedented body lines for function entries).
func (d *Document) Value(lang, key string) (string, error) {
	r, ok := d.record(lang)
	if !ok {
		return "", fmt.Errorf("%w: no record block for language %q", ErrMalformed, lang)
	}
	e, found, err := d.recordEntry(r, key)
	if err != nil {
		return "", err
	}
	if !found {
		return "", fmt.Errorf("%w: %q missing from %s", ErrKeyNotFound, key, r.Name)
	}
	return e.raw, nil
}

// Lookup reconstructs the full entry for a key: its type signature and the
// raw value per language. Returns ErrKeyNotFound when the key is not
// declared in the type alias.
func (d *Document) Lookup(key string) (Entry, error) {
	f, ok := d.Field(key)
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	e := Entry{
		Key:      key,
		TypeSig:  f.Sig,
		Function: IsFunction(f.Sig),
		Values:   make(map[string]string, len(d.records)),
	}
	for _, r := range d.records {
		v, found, err := d.recordEntry(r, key)
		if err != nil {
			return Entry{}, err
		}
		if !found {
			return Entry{}, fmt.Errorf("%w: key %q declared but missing from %s", ErrMalformed, key, r.Name)
		}
		e.Values[r.Lang] = v.raw
	}
	return e, nil
}

// renderFieldLine produces one type alias field line at the block's indent.
// prefix is "{ " for the first entry of a block, ", " otherwise.
func renderFieldLine(indent, prefix, key, sig string) string {
	return indent + prefix + key + " : " + sig
}

// renderValueLines produces the record entry lines for one language.
// Simple values become a quoted, escaped single line. Function bodies keep
// their internal relative indentation but are re-anchored one indent unit
// deeper than the entry line, whatever indentation the caller supplied.
func renderValueLines(indent, prefix, key string, e Entry, lang string) []string {
	value := e.Values[lang]
	if !e.Function {
		return []string{indent + prefix + key + ` = "` + escapeString(value) + `"`}
	}

	bodyLines := strings.Split(value, "\n")
	head := indent + prefix + key + " = " + strings.TrimSpace(bodyLines[0])
	if len(bodyLines) == 1 {
		return []string{head}
	}

	out := []string{head}
	contIndent := indent + indentUnit
	for _, line := range strings.Split(dedent(bodyLines[1:]), "\n") {
		if strings.TrimSpace(line) == "" {
			out = append(out, "")
			continue
		}
		out = append(out, contIndent+line)
	}
	return out
}

// escapeString escapes a simple translation value for an Elm string literal.
func escapeString(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"\n", `\n`,
		"\r", `\r`,
		"\t", `\t`,
	)
	return r.Replace(s)
}

// dedent strips the longest common leading whitespace from a set of lines,
// preserving their relative indentation. Blank lines are ignored when
// computing the common prefix.
func dedent(lines []string) string {
	common := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if common < 0 || n < common {
			common = n
		}
	}
	if common <= 0 {
		return strings.Join(lines, "\n")
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			out[i] = ""
			continue
		}
		out[i] = line[common:]
	}
	return strings.Join(out, "\n")
}
