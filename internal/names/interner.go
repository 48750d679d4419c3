// Package names interns the strings the Typer needs stable, comparable
// identity for: builtin names, property names, method names, group tags,
// and string constants folded into object shapes.
package names

import (
	"fmt"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"
)

// ID uniquely identifies an interned string. The zero value, NoID, never
// names a real string.
type ID uint32

// NoID marks the absence of a name.
const NoID ID = 0

// Interner deduplicates strings and hands out stable IDs for them.
//
// Names are normalized to Unicode NFC before interning, so a property name
// typed with two different Unicode compositions (e.g. combining vs.
// precomposed accents) collapses to the same ID — the same identifier as
// far as the JavaScript runtime the Typer approximates is concerned.
type Interner struct {
	byID  []string
	index map[string]ID
}

// New constructs an empty Interner. Index 0 is reserved for NoID.
func New() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]ID{"": 0},
	}
}

// Intern returns the stable ID for s, allocating a new one if s was never
// seen before.
func (in *Interner) Intern(s string) ID {
	s = norm.NFC.String(s)
	if id, ok := in.index[s]; ok {
		return id
	}
	idx, err := safecast.Conv[uint32](len(in.byID))
	if err != nil {
		panic(fmt.Errorf("names: interner overflow: %w", err))
	}
	id := ID(idx)
	in.byID = append(in.byID, s)
	in.index[s] = id
	return id
}

// Lookup returns the string for id, or ("", false) if id is not valid.
func (in *Interner) Lookup(id ID) (string, bool) {
	if int(id) < 0 || int(id) >= len(in.byID) {
		return "", false
	}
	return in.byID[id], true
}

// MustLookup returns the string for id, panicking if id is invalid.
func (in *Interner) MustLookup(id ID) string {
	s, ok := in.Lookup(id)
	if !ok {
		panic("names: invalid ID")
	}
	return s
}

// Has reports whether id was produced by this interner.
func (in *Interner) Has(id ID) bool {
	return int(id) >= 0 && int(id) < len(in.byID)
}

// Len returns the number of interned strings, counting the NoID slot.
func (in *Interner) Len() int {
	return len(in.byID)
}
