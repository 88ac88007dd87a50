// core/alphabet/alphabet.go
package alphabet

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty indicates an alphabet with no symbols.
	ErrEmpty = errors.New("alphabet: no symbols")
	// ErrDuplicate indicates a symbol listed more than once.
	ErrDuplicate = errors.New("alphabet: duplicate symbol")
	// ErrNotInAlphabet indicates a lookup of a symbol that is not a member.
	ErrNotInAlphabet = errors.New("alphabet: symbol not in alphabet")
	// ErrIndexRange indicates an index outside [0, Size()).
	ErrIndexRange = errors.New("alphabet: index out of range")
)

// Upper is the default alphabet.
const Upper = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Alphabet maps an ordered set of distinct symbols to dense indices.
// The K-th symbol has index K. Immutable once built.
type Alphabet struct {
	symbols []rune
	index   map[rune]int
}

// New returns the alphabet made of the runes of symbols, in order.
func New(symbols string) (*Alphabet, error) {
	rs := []rune(symbols)
	if len(rs) == 0 {
		return nil, ErrEmpty
	}
	idx := make(map[rune]int, len(rs))
	for i, r := range rs {
		if _, dup := idx[r]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicate, r)
		}
		idx[r] = i
	}
	return &Alphabet{symbols: rs, index: idx}, nil
}

// Default returns the upper-case Latin alphabet A..Z.
func Default() *Alphabet {
	a, _ := New(Upper)
	return a
}

func (a *Alphabet) Size() int { return len(a.symbols) }

// Contains reports whether r is a member.
func (a *Alphabet) Contains(r rune) bool {
	_, ok := a.index[r]
	return ok
}

// Index returns the index of r, the inverse of Symbol.
func (a *Alphabet) Index(r rune) (int, error) {
	i, ok := a.index[r]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNotInAlphabet, r)
	}
	return i, nil
}

// Symbol returns symbol number i, 0 <= i < Size().
func (a *Alphabet) Symbol(i int) (rune, error) {
	if i < 0 || i >= len(a.symbols) {
		return 0, fmt.Errorf("%w: %d (size %d)", ErrIndexRange, i, len(a.symbols))
	}
	return a.symbols[i], nil
}

// String returns the symbols in index order.
func (a *Alphabet) String() string { return string(a.symbols) }

// Equal reports whether b has the same symbols in the same order.
func (a *Alphabet) Equal(b *Alphabet) bool {
	return a == b || (a != nil && b != nil && string(a.symbols) == string(b.symbols))
}
