package tokens

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ArgSeparator is the reserved character separating a token name from its
// positional input argument (e.g. "Relationship:Abigail"). Registered token
// names must not contain it.
const ArgSeparator = ":"

// Key is the canonical map/set key form of a token name: NFC-normalized,
// lowercased, compared ordinally. Display names keep their original
// spelling; only lookups go through Key.
type Key string

// KeyOf folds a token name into its canonical Key.
//
// NFC normalization runs first so that composed and decomposed spellings of
// the same name fold to the same key.
func KeyOf(name string) Key {
	return Key(strings.ToLower(norm.NFC.String(name)))
}

// KeySet is a set of canonical token name keys.
type KeySet map[Key]struct{}

// NewKeySet builds a KeySet from raw token names.
func NewKeySet(names ...string) KeySet {
	s := make(KeySet, len(names))
	for _, name := range names {
		s.Add(KeyOf(name))
	}
	return s
}

// Add inserts a key into the set.
func (s KeySet) Add(k Key) {
	s[k] = struct{}{}
}

// AddAll inserts every key from other into the set.
func (s KeySet) AddAll(other KeySet) {
	for k := range other {
		s[k] = struct{}{}
	}
}

// Has reports whether the set contains k.
func (s KeySet) Has(k Key) bool {
	_, ok := s[k]
	return ok
}

// Len returns the number of keys in the set.
func (s KeySet) Len() int {
	return len(s)
}

// Sorted returns the keys in ascending order.
// Used for deterministic logging and snapshot output.
func (s KeySet) Sorted() []Key {
	keys := make([]Key, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Clone returns an independent copy of the set.
func (s KeySet) Clone() KeySet {
	c := make(KeySet, len(s))
	for k := range s {
		c[k] = struct{}{}
	}
	return c
}
