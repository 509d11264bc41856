// Package store implements the translation store verbs — check, add,
// add-fn and remove — against a single I18n.elm file.
//
// Every operation loads the file fresh, computes a complete new text
// buffer through the structural editor, and only then touches disk:
// a .bak sibling with the exact pre-mutation bytes, followed by an
// atomic replace of the target. No failure path writes anything.
package store

import (
	"errors"
	"fmt"
	"os"

	"github.com/elm-tooling/elm-i18n/elmfile"
)

var (
	// ErrNotFound means the translation file does not exist.
	ErrNotFound = errors.New("translation file not found")
	// ErrInvalidKey means the key is not a bare lowercase identifier.
	ErrInvalidKey = errors.New("invalid translation key")
	// ErrMissingLanguage means an add did not supply a value for every
	// language the document declares.
	ErrMissingLanguage = errors.New("missing language value")
)

// Store binds the operations to one translation file.
type Store struct {
	// Path is the I18n.elm file operated on.
	Path string
}

// New returns a store for the given file path.
func New(path string) *Store {
	return &Store{Path: path}
}

// Result describes one translation entry for display.
type Result struct {
	Key      string
	TypeSig  string
	Function bool
	// Languages is the document's language set in declaration order.
	Languages []string
	// Values maps language code to the raw value text as stored.
	Values map[string]string
}

// load reads and parses the file, keeping the original bytes for the
// pre-mutation backup.
func (s *Store) load() (*elmfile.Document, []byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, s.Path)
		}
		return nil, nil, fmt.Errorf("reading %s: %w", s.Path, err)
	}
	d, err := elmfile.Parse(string(data))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	return d, data, nil
}

// Check reports whether key exists and, if so, its values per language.
// Read-only: the file is never written. A miss returns an error wrapping
// elmfile.ErrKeyNotFound.
func (s *Store) Check(key string) (*Result, error) {
	if !elmfile.ValidKey(key) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	d, _, err := s.load()
	if err != nil {
		return nil, err
	}
	e, err := d.Lookup(key)
	if err != nil {
		return nil, err
	}
	return resultFrom(d, e), nil
}

// Add inserts a simple string translation. A value must be supplied for
// every language the document declares, otherwise ErrMissingLanguage and
// no write. If the key already exists the existing entry is returned
// alongside an error wrapping elmfile.ErrDuplicateKey, and the file is
// left unchanged.
func (s *Store) Add(key string, values map[string]string) (*Result, error) {
	return s.add(elmfile.Entry{Key: key, TypeSig: "String", Values: values})
}

// AddFunction inserts a function translation: a shared type signature and
// one function-literal body per language. Same completeness and duplicate
// rules as Add.
func (s *Store) AddFunction(key, typeSig string, bodies map[string]string) (*Result, error) {
	if typeSig == "" {
		return nil, fmt.Errorf("%w: empty type signature for %q", ErrInvalidKey, key)
	}
	return s.add(elmfile.Entry{Key: key, TypeSig: typeSig, Function: true, Values: bodies})
}

func (s *Store) add(e elmfile.Entry) (*Result, error) {
	if !elmfile.ValidKey(e.Key) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKey, e.Key)
	}
	d, original, err := s.load()
	if err != nil {
		return nil, err
	}

	for _, lang := range d.Languages() {
		if _, ok := e.Values[lang]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingLanguage, lang)
		}
	}

	// The type block alone decides whether a key exists.
	if d.HasKey(e.Key) {
		existing, lerr := d.Lookup(e.Key)
		if lerr != nil {
			return nil, fmt.Errorf("%w: %q", elmfile.ErrDuplicateKey, e.Key)
		}
		return resultFrom(d, existing), fmt.Errorf("%w: %q", elmfile.ErrDuplicateKey, e.Key)
	}

	text, err := d.Add(e)
	if err != nil {
		return nil, err
	}
	if err := writeWithBackup(s.Path, original, []byte(text)); err != nil {
		return nil, err
	}
	return resultFrom(d, e), nil
}

// Remove deletes key from the type block and from every language's record
// block, returning the pre-removal entry for confirmation output. A miss
// in the type block returns an error wrapping elmfile.ErrKeyNotFound with
// the file untouched.
func (s *Store) Remove(key string) (*Result, error) {
	if !elmfile.ValidKey(key) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	d, original, err := s.load()
	if err != nil {
		return nil, err
	}

	existing, err := d.Lookup(key)
	if err != nil {
		return nil, err
	}

	text, err := d.Remove(key)
	if err != nil {
		return nil, err
	}
	if err := writeWithBackup(s.Path, original, []byte(text)); err != nil {
		return nil, err
	}
	return resultFrom(d, existing), nil
}

// Languages returns the document's language set without any lookup.
func (s *Store) Languages() ([]string, error) {
	d, _, err := s.load()
	if err != nil {
		return nil, err
	}
	return d.Languages(), nil
}

func resultFrom(d *elmfile.Document, e elmfile.Entry) *Result {
	r := &Result{
		Key:       e.Key,
		TypeSig:   e.TypeSig,
		Function:  e.Function,
		Languages: d.Languages(),
		Values:    make(map[string]string, len(e.Values)),
	}
	for lang, v := range e.Values {
		r.Values[lang] = v
	}
	return r
}
