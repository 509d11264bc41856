package elmfile

import (
	"fmt"
	"sort"
	"strings"
)

// textEdit replaces an inclusive line range with new lines. A range with
// end < start inserts before start without removing anything.
type textEdit struct {
	start, end int
	lines      []string
}

// Add returns the document text with e appended as the last entry of the
// type alias block and of every language's record block. All insertion
// points are resolved before any text is produced, so a missing record
// block aborts with no partial edit. The receiver is not modified.
func (d *Document) Add(e Entry) (string, error) {
	if d.HasKey(e.Key) {
		return "", fmt.Errorf("%w: %q", ErrDuplicateKey, e.Key)
	}

	sig := e.TypeSig
	if sig == "" {
		sig = "String"
	}

	var edits []textEdit
	edits = append(edits, appendEdit(d, d.typeBlock, func(indent, prefix string) []string {
		return []string{renderFieldLine(indent, prefix, e.Key, sig)}
	}))

	// Every value needs a record block, and every record block a value.
	for lang := range e.Values {
		if _, ok := d.record(lang); !ok {
			return "", fmt.Errorf("%w: no record block for language %q", ErrMalformed, lang)
		}
	}
	for _, r := range d.records {
		if _, ok := e.Values[r.Lang]; !ok {
			return "", fmt.Errorf("%w: no value supplied for language %q", ErrMalformed, r.Lang)
		}
		edits = append(edits, appendEdit(d, r.Region, func(indent, prefix string) []string {
			return renderValueLines(indent, prefix, e.Key, e, r.Lang)
		}))
	}

	return strings.Join(applyEdits(d.lines, edits), "\n"), nil
}

// appendEdit builds the edit that appends rendered lines as the last entry
// of a block: before the closing brace with a leading comma, or replacing
// an empty "{}" line with a fresh two-line block.
func appendEdit(d *Document, r Region, render func(indent, prefix string) []string) textEdit {
	indent := d.blockIndent(r)
	if r.Open == r.Close {
		lines := render(indent, "{ ")
		return textEdit{start: r.Open, end: r.Close, lines: append(lines, indent+"}")}
	}
	return textEdit{start: r.Close, end: r.Close - 1, lines: render(indent, ", ")}
}

// Remove returns the document text with key's field line and every
// language's entry span deleted. Removing the first entry promotes the
// next one onto the opening brace; removing the last remaining entry
// collapses the block to "{}". The receiver is not modified.
func (d *Document) Remove(key string) (string, error) {
	f, ok := d.Field(key)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}

	var edits []textEdit
	edits = append(edits, removeEdits(d, d.typeBlock, f.Line, f.Line, len(d.Fields()))...)

	for _, r := range d.records {
		e, found, err := d.recordEntry(r, key)
		if err != nil {
			return "", err
		}
		if !found {
			return "", fmt.Errorf("%w: key %q declared but missing from %s", ErrMalformed, key, r.Name)
		}
		entries, err := d.recordEntries(r)
		if err != nil {
			return "", err
		}
		edits = append(edits, removeEdits(d, r.Region, e.start, e.end, len(entries))...)
	}

	return strings.Join(applyEdits(d.lines, edits), "\n"), nil
}

// removeEdits builds the edits deleting one entry span from a block.
func removeEdits(d *Document, r Region, start, end, entryCount int) []textEdit {
	indent := d.blockIndent(r)

	// Sole entry: the whole block collapses to an empty record.
	if entryCount == 1 {
		return []textEdit{{start: r.Open, end: r.Close, lines: []string{indent + "{}"}}}
	}

	edits := []textEdit{{start: start, end: end}}
	if start == r.Open {
		// The next entry takes over the opening brace.
		next := d.lines[end+1]
		edits = append(edits, textEdit{start: end + 1, end: end + 1,
			lines: []string{strings.Replace(next, ",", "{", 1)}})
	}
	return edits
}

// applyEdits splices edits into a copy of lines, highest line first so
// earlier offsets stay valid. Edits never overlap: they live in disjoint
// blocks or disjoint spans of one block.
func applyEdits(lines []string, edits []textEdit) []string {
	sorted := make([]textEdit, len(edits))
	copy(sorted, edits)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].start > sorted[j].start })

	out := make([]string, len(lines))
	copy(out, lines)
	for _, e := range sorted {
		end := e.end
		if end < e.start {
			end = e.start - 1
		}
		next := make([]string, 0, len(out)+len(e.lines))
		next = append(next, out[:e.start]...)
		next = append(next, e.lines...)
		next = append(next, out[end+1:]...)
		out = next
	}
	return out
}
