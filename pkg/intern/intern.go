// Package intern implements the append-only string table the binary DAST
// codec (pkg/binenc) uses to deduplicate repeated strings. Symbols are
// assigned ids in first-encounter order so that two encoding passes over
// identical input produce byte-identical tables.
package intern

// ID identifies a string within a Table. IDs are stable for the lifetime
// of the Table that issued them.
type ID uint32

// Table is a per-encoding-session string interner. It is not safe for
// concurrent use; each encoder owns its own Table (spec.md §5: "the
// StringTable ... is per-document").
type Table struct {
	byString map[string]ID
	strings  []string
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{byString: make(map[string]ID)}
}

// Intern returns the ID for s, inserting it if this is the first
// occurrence. Repeated calls with an already-seen string return the same
// ID without growing the table.
func (t *Table) Intern(s string) ID {
	if id, ok := t.byString[s]; ok {
		return id
	}
	id := ID(len(t.strings))
	t.strings = append(t.strings, s)
	t.byString[s] = id
	return id
}

// Lookup returns the string for id and whether id is valid.
func (t *Table) Lookup(id ID) (string, bool) {
	if int(id) < 0 || int(id) >= len(t.strings) {
		return "", false
	}
	return t.strings[id], true
}

// Len returns the number of distinct interned strings.
func (t *Table) Len() int {
	return len(t.strings)
}

// Strings returns the table contents in insertion order. The returned
// slice must not be mutated by the caller.
func (t *Table) Strings() []string {
	return t.strings
}

// FromStrings rebuilds a Table from a strings slice recovered during
// decode, preserving the original ids (their slice indices).
func FromStrings(strs []string) *Table {
	t := &Table{
		byString: make(map[string]ID, len(strs)),
		strings:  make([]string, len(strs)),
	}
	copy(t.strings, strs)
	for i, s := range t.strings {
		// First occurrence wins, matching the insertion-order contract;
		// a well-formed encode never repeats a string, but decode must
		// tolerate a foreign/hand-crafted stream that does.
		if _, exists := t.byString[s]; !exists {
			t.byString[s] = ID(i)
		}
	}
	return t
}

// ReachableSlack reports how many entries in the table are never
// referenced by the given used set, for the interning-soundness property
// in spec.md §8.3 ("no unreachable table entries exist, within 0 or 1
// slack").
func (t *Table) ReachableSlack(used map[ID]bool) int {
	unreachable := 0
	for i := range t.strings {
		if !used[ID(i)] {
			unreachable++
		}
	}
	return unreachable
}
