// Package symbols loads the symbol-kind table and answers combination recipe lookups.
package symbols

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

//go:embed symbols.csv
var defaultsCSV []byte

// Symbol is one row of the symbol table.
// A symbol with both sources set is the result of combining those two kinds.
type Symbol struct {
	ID         string `csv:"id"`
	Glyph      string `csv:"glyph"`
	Tier       int    `csv:"tier"`
	SourceA    string `csv:"source_a"`
	SourceB    string `csv:"source_b"`
	Wildcard   bool   `csv:"wildcard"`
	WindImmune bool   `csv:"wind_immune"`
}

// HasRecipe reports whether the symbol is produced by a combination.
func (s Symbol) HasRecipe() bool {
	return s.SourceA != "" && s.SourceB != ""
}

// pairKey is an order-independent recipe key.
type pairKey struct {
	lo, hi string
}

func keyOf(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// Table is the immutable symbol-kind table. Safe for concurrent reads.
type Table struct {
	defs    map[string]Symbol
	order   []string
	recipes map[pairKey]string
	tierOne []string
	maxTier int
}

// Load reads a symbol table from a CSV file, or the embedded table if path is empty.
func Load(path string) (*Table, error) {
	data := defaultsCSV
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading symbols file: %w", err)
		}
	}
	return Parse(data)
}

// Default returns the embedded symbol table.
func Default() *Table {
	t, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("symbols: embedded table invalid: %v", err))
	}
	return t
}

// Parse decodes CSV rows into a validated table.
func Parse(data []byte) (*Table, error) {
	var rows []Symbol
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, fmt.Errorf("parsing symbols: %w", err)
	}
	return New(rows)
}

// New builds a table from symbol definitions.
func New(rows []Symbol) (*Table, error) {
	t := &Table{
		defs:    make(map[string]Symbol, len(rows)),
		order:   make([]string, 0, len(rows)),
		recipes: make(map[pairKey]string),
	}

	var errs []error
	for _, s := range rows {
		if s.ID == "" {
			errs = append(errs, errors.New("symbol with empty id"))
			continue
		}
		if _, dup := t.defs[s.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate symbol %q", s.ID))
			continue
		}
		if s.Tier < 1 {
			errs = append(errs, fmt.Errorf("symbol %q: tier must be at least 1, got %d", s.ID, s.Tier))
		}
		t.defs[s.ID] = s
		t.order = append(t.order, s.ID)
		if s.Tier == 1 {
			t.tierOne = append(t.tierOne, s.ID)
		}
		if s.Tier > t.maxTier {
			t.maxTier = s.Tier
		}
	}

	for _, id := range t.order {
		s := t.defs[id]
		if (s.SourceA == "") != (s.SourceB == "") {
			errs = append(errs, fmt.Errorf("symbol %q: recipe needs two sources", id))
			continue
		}
		if !s.HasRecipe() {
			continue
		}
		for _, src := range []string{s.SourceA, s.SourceB} {
			if _, ok := t.defs[src]; !ok {
				errs = append(errs, fmt.Errorf("symbol %q: unknown source %q", id, src))
			}
		}
		key := keyOf(s.SourceA, s.SourceB)
		if prev, clash := t.recipes[key]; clash {
			errs = append(errs, fmt.Errorf("symbols %q and %q share recipe %s+%s", prev, id, s.SourceA, s.SourceB))
			continue
		}
		t.recipes[key] = id
	}

	if len(t.tierOne) == 0 {
		errs = append(errs, errors.New("no tier-1 symbols"))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return t, nil
}

// Def returns the definition of a symbol kind.
func (t *Table) Def(id string) (Symbol, bool) {
	s, ok := t.defs[id]
	return s, ok
}

// Combine returns the symbol produced by combining a and b, in either order.
// An unknown pair is not an error; it simply has no recipe.
func (t *Table) Combine(a, b string) (Symbol, bool) {
	id, ok := t.recipes[keyOf(a, b)]
	if !ok {
		return Symbol{}, false
	}
	return t.defs[id], true
}

// TierOne returns the tier-1 ids in table order. The slice must not be modified.
func (t *Table) TierOne() []string {
	return t.tierOne
}

// IDs returns all ids in table order. The slice must not be modified.
func (t *Table) IDs() []string {
	return t.order
}

// MaxTier returns the highest tier in the table.
func (t *Table) MaxTier() int {
	return t.maxTier
}

// CheckMaxLevel reports an error when the table reaches past maxLevel.
func (t *Table) CheckMaxLevel(maxLevel int) error {
	if t.maxTier > maxLevel {
		return fmt.Errorf("symbols reach tier %d, above max level %d", t.maxTier, maxLevel)
	}
	return nil
}

// Len returns the number of symbols.
func (t *Table) Len() int {
	return len(t.order)
}
