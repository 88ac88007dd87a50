// core/permutation/permutation.go
package permutation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"enigma/core/alphabet"
)

var (
	// ErrMalformed indicates cycle text that does not follow
	// cycles := group*, group := '(' symbol+ ')'.
	ErrMalformed = errors.New("permutation: malformed cycle text")
	// ErrUnknownSymbol indicates a cycle symbol outside the alphabet.
	ErrUnknownSymbol = errors.New("permutation: symbol not in alphabet")
	// ErrRepeated indicates a symbol that appears more than once across all cycles.
	ErrRepeated = errors.New("permutation: symbol appears in more than one position")
)

// slot locates an index inside the cycle set: cycle number and position.
type slot struct {
	cycle int
	pos   int
}

// Permutation is a bijection over [0, Size()) of an alphabet, held as
// disjoint cycles. Indices in no cycle are fixed points.
type Permutation struct {
	alpha  *alphabet.Alphabet
	cycles [][]int
	where  []slot // where[i].cycle == -1 for fixed points
}

// New parses cycles, e.g. "(ABCD) (EF)", against a. Whitespace is ignored and
// an empty text is the identity.
func New(cycles string, a *alphabet.Alphabet) (*Permutation, error) {
	groups, err := parse(cycles)
	if err != nil {
		return nil, err
	}
	p := &Permutation{alpha: a, where: make([]slot, a.Size())}
	for i := range p.where {
		p.where[i] = slot{cycle: -1}
	}
	for _, g := range groups {
		c := make([]int, 0, len(g))
		for _, r := range g {
			i, err := a.Index(r)
			if err != nil {
				return nil, fmt.Errorf("%w: %q in %q", ErrUnknownSymbol, r, cycles)
			}
			if p.where[i].cycle >= 0 {
				return nil, fmt.Errorf("%w: %q in %q", ErrRepeated, r, cycles)
			}
			p.where[i] = slot{cycle: len(p.cycles), pos: len(c)}
			c = append(c, i)
		}
		p.cycles = append(p.cycles, c)
	}
	return p, nil
}

// Identity returns the permutation with no cycles over a.
func Identity(a *alphabet.Alphabet) *Permutation {
	p, _ := New("", a)
	return p
}

// parse splits cycle text into groups of runes.
func parse(text string) ([][]rune, error) {
	var (
		groups [][]rune
		cur    []rune
		open   bool
	)
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			continue
		case r == '(':
			if open {
				return nil, fmt.Errorf("%w: nested '(' in %q", ErrMalformed, text)
			}
			open, cur = true, nil
		case r == ')':
			if !open {
				return nil, fmt.Errorf("%w: unmatched ')' in %q", ErrMalformed, text)
			}
			if len(cur) == 0 {
				return nil, fmt.Errorf("%w: empty cycle in %q", ErrMalformed, text)
			}
			groups = append(groups, cur)
			open = false
		default:
			if !open {
				return nil, fmt.Errorf("%w: symbol %q outside a cycle in %q", ErrMalformed, r, text)
			}
			cur = append(cur, r)
		}
	}
	if open {
		return nil, fmt.Errorf("%w: unclosed '(' in %q", ErrMalformed, text)
	}
	return groups, nil
}

// Size returns the size of the alphabet permuted.
func (p *Permutation) Size() int { return p.alpha.Size() }

func (p *Permutation) Alphabet() *alphabet.Alphabet { return p.alpha }

// Wrap returns i modulo Size(), always in [0, Size()).
func (p *Permutation) Wrap(i int) int {
	r := i % p.Size()
	if r < 0 {
		r += p.Size()
	}
	return r
}

// Permute applies the permutation to i modulo Size().
func (p *Permutation) Permute(i int) int {
	i = p.Wrap(i)
	s := p.where[i]
	if s.cycle < 0 {
		return i
	}
	c := p.cycles[s.cycle]
	return c[(s.pos+1)%len(c)]
}

// Invert applies the inverse permutation to i modulo Size().
func (p *Permutation) Invert(i int) int {
	i = p.Wrap(i)
	s := p.where[i]
	if s.cycle < 0 {
		return i
	}
	c := p.cycles[s.cycle]
	return c[(s.pos+len(c)-1)%len(c)]
}

// PermuteSymbol applies the permutation to the symbol r.
func (p *Permutation) PermuteSymbol(r rune) (rune, error) {
	i, err := p.alpha.Index(r)
	if err != nil {
		return 0, err
	}
	return p.alpha.Symbol(p.Permute(i))
}

// InvertSymbol applies the inverse permutation to the symbol r.
func (p *Permutation) InvertSymbol(r rune) (rune, error) {
	i, err := p.alpha.Index(r)
	if err != nil {
		return 0, err
	}
	return p.alpha.Symbol(p.Invert(i))
}

// Derangement reports whether no index maps to itself.
func (p *Permutation) Derangement() bool {
	for i := 0; i < p.Size(); i++ {
		if p.Permute(i) == i {
			return false
		}
	}
	return true
}

// Cycles returns each cycle as a string of symbols, in parse order.
func (p *Permutation) Cycles() []string {
	out := make([]string, 0, len(p.cycles))
	for _, c := range p.cycles {
		var b strings.Builder
		for _, i := range c {
			r, _ := p.alpha.Symbol(i)
			b.WriteRune(r)
		}
		out = append(out, b.String())
	}
	return out
}

// String returns the cycle notation, "(ABCD) (EF)"; empty for the identity.
func (p *Permutation) String() string {
	cs := p.Cycles()
	for i, c := range cs {
		cs[i] = "(" + c + ")"
	}
	return strings.Join(cs, " ")
}
