// Package keyword holds the bidirectional mapping between operator names and
// their canonical atom encodings.
package keyword

import (
	"math/big"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/alttpo/clvmir/sexp"
)

// Separator is the placeholder name for unassigned opcodes. It is never
// produced by a reverse lookup.
const Separator = "."

// clvmKeywords lists the CLVM operators; the atom of entry i is the minimal
// integer encoding of i.
var clvmKeywords = strings.Fields(
	// core opcodes 0x01-0x08
	". q a i c f r l x " +
		// opcodes on atoms as strings 0x09-0x0f
		"= >s sha256 substr strlen concat . " +
		// opcodes on atoms as ints 0x10-0x17
		"+ - * / divmod > ash lsh " +
		// opcodes on atoms as vectors of bools 0x18-0x1c
		"logand logior logxor lognot . " +
		// opcodes for bls 1381 0x1d-0x1f
		"point_add pubkey_for_exp . " +
		// bool opcodes 0x20-0x23
		"not any all . " +
		// misc 0x24
		"softfork ")

// Default is the CLVM operator table.
var Default = FromOrdinals(clvmKeywords)

// Table is immutable once built and safe for concurrent readers.
type Table struct {
	toAtom   map[string][]byte
	fromAtom map[string]string
	names    []string
}

// New builds a table from name to atom pairs. When two names share an atom
// the reverse entry is either one of them.
func New(pairs map[string][]byte) *Table {
	t := &Table{
		toAtom:   make(map[string][]byte, len(pairs)),
		fromAtom: make(map[string]string, len(pairs)),
	}
	for name, atom := range pairs {
		t.add(name, atom)
	}
	t.seal()
	return t
}

// FromOrdinals builds a table where names[i] encodes as the integer i.
func FromOrdinals(names []string) *Table {
	t := &Table{
		toAtom:   make(map[string][]byte, len(names)),
		fromAtom: make(map[string]string, len(names)),
	}
	for i, name := range names {
		t.add(name, sexp.IntToBytes(big.NewInt(int64(i))))
	}
	t.seal()
	return t
}

func (t *Table) add(name string, atom []byte) {
	b := append([]byte{}, atom...)
	t.toAtom[name] = b
	t.fromAtom[string(b)] = name
}

func (t *Table) seal() {
	t.names = make([]string, 0, len(t.toAtom))
	for name := range t.toAtom {
		if name == Separator {
			continue
		}
		t.names = append(t.names, name)
	}
	sort.Strings(t.names)
}

// Atom returns the encoding of the named keyword.
func (t *Table) Atom(name string) ([]byte, bool) {
	b, ok := t.toAtom[name]
	if !ok {
		return nil, false
	}
	return append([]byte{}, b...), true
}

// Keyword returns the name whose encoding is atom. The separator name is
// never returned.
func (t *Table) Keyword(atom []byte) (string, bool) {
	name, ok := t.fromAtom[string(atom)]
	if !ok || name == Separator {
		return "", false
	}
	return name, true
}

// Names lists the keyword names in sorted order, excluding the separator.
func (t *Table) Names() []string {
	return append([]string{}, t.names...)
}

// Suggest returns keyword names resembling name, closest first.
func (t *Table) Suggest(name string) []string {
	ranks := fuzzy.RankFindFold(name, t.names)
	sort.Sort(ranks)

	out := make([]string, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, r.Target)
	}
	return out
}
