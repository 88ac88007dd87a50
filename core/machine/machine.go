// core/machine/machine.go
package machine

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"enigma/core/alphabet"
	"enigma/core/permutation"
	"enigma/core/rotor"
)

var (
	ErrRotorCount         = errors.New("machine: need more than one rotor slot")
	ErrPawls              = errors.New("machine: pawls must satisfy 0 <= pawls < rotors")
	ErrDuplicateName      = errors.New("machine: rotor name defined twice in catalog")
	ErrSlotCount          = errors.New("machine: wrong number of rotor names")
	ErrUnknownRotor       = errors.New("machine: unknown rotor")
	ErrDuplicateRotor     = errors.New("machine: rotor used in two slots")
	ErrReflectorPlacement = errors.New("machine: slot 0 must hold a reflector")
	ErrSettingLength      = errors.New("machine: wrong setting length")
	ErrSettingSymbol      = errors.New("machine: setting symbol not in alphabet")
	ErrNotConfigured      = errors.New("machine: rotors not inserted")
	ErrAlphabetMismatch   = errors.New("machine: permutation over a different alphabet")
)

// Step describes one converted character for diagnostics.
type Step struct {
	Settings string // slots 1..n-1 after advancing
	In       rune
	Plugged  rune // after the first plugboard pass
	Out      rune
}

// Tracer receives a Step for every converted character.
type Tracer interface {
	Trace(Step)
}

// TracerFunc adapts a function to Tracer.
type TracerFunc func(Step)

func (f TracerFunc) Trace(s Step) { f(s) }

// Option configures a Machine.
type Option func(*Machine)

// WithTracer installs t as the diagnostics sink.
func WithTracer(t Tracer) Option { return func(m *Machine) { m.tracer = t } }

// Machine is a rotor cipher machine. Slot 0 is the reflector and slot
// NumRotors()-1 the fast rotor. Rotors live in an arena addressed by id;
// slots hold ids. Not safe for concurrent use.
type Machine struct {
	alpha     *alphabet.Alphabet
	numRotors int
	pawls     int
	arena     []*rotor.Rotor
	byName    map[string]int
	slots     []int // ids; nil until InsertRotors succeeds
	plugboard *permutation.Permutation
	tracer    Tracer
}

// New returns a machine with numRotors slots and pawls pawls drawing its
// rotors from catalog. The plugboard starts as the identity.
func New(a *alphabet.Alphabet, numRotors, pawls int, catalog []*rotor.Rotor, opts ...Option) (*Machine, error) {
	if numRotors <= 1 {
		return nil, fmt.Errorf("%w: got %d", ErrRotorCount, numRotors)
	}
	if pawls < 0 || pawls >= numRotors {
		return nil, fmt.Errorf("%w: pawls=%d rotors=%d", ErrPawls, pawls, numRotors)
	}
	m := &Machine{
		alpha:     a,
		numRotors: numRotors,
		pawls:     pawls,
		arena:     make([]*rotor.Rotor, 0, len(catalog)),
		byName:    make(map[string]int, len(catalog)),
		plugboard: permutation.Identity(a),
	}
	for _, r := range catalog {
		if _, dup := m.byName[r.Name()]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, r.Name())
		}
		if !r.Permutation().Alphabet().Equal(a) {
			return nil, fmt.Errorf("%w: rotor %s", ErrAlphabetMismatch, r.Name())
		}
		m.byName[r.Name()] = len(m.arena)
		m.arena = append(m.arena, r)
	}
	for _, o := range opts {
		o(m)
	}
	return m, nil
}

func (m *Machine) NumRotors() int               { return m.numRotors }
func (m *Machine) NumPawls() int                { return m.pawls }
func (m *Machine) Alphabet() *alphabet.Alphabet { return m.alpha }

// Catalog returns the names of all available rotors in catalog order.
func (m *Machine) Catalog() []string {
	out := make([]string, len(m.arena))
	for i, r := range m.arena {
		out[i] = r.Name()
	}
	return out
}

// Rotor returns the rotor in slot k, or nil before InsertRotors.
func (m *Machine) Rotor(k int) *rotor.Rotor {
	if m.slots == nil || k < 0 || k >= m.numRotors {
		return nil
	}
	return m.arena[m.slots[k]]
}

// InsertRotors fills the slots with the catalog rotors named in names
// (names[0] is the reflector) and turns each to setting 0.
func (m *Machine) InsertRotors(names []string) error {
	if len(names) != m.numRotors {
		return fmt.Errorf("%w: got %d, want %d", ErrSlotCount, len(names), m.numRotors)
	}
	ids := make([]int, len(names))
	used := make(map[int]bool, len(names))
	for i, n := range names {
		id, ok := m.byName[n]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownRotor, n)
		}
		if used[id] {
			return fmt.Errorf("%w: %q", ErrDuplicateRotor, n)
		}
		used[id] = true
		ids[i] = id
	}
	if !m.arena[ids[0]].Reflecting() {
		return fmt.Errorf("%w: %q", ErrReflectorPlacement, names[0])
	}
	for _, id := range ids {
		_ = m.arena[id].Set(0)
	}
	m.slots = ids
	return nil
}

// SetRotors turns slots 1..NumRotors()-1 to the symbols of setting, leftmost
// first. Nothing is changed if setting is invalid.
func (m *Machine) SetRotors(setting string) error {
	if m.slots == nil {
		return ErrNotConfigured
	}
	rs := []rune(setting)
	if len(rs) != m.numRotors-1 {
		return fmt.Errorf("%w: %q has %d symbols, want %d", ErrSettingLength, setting, len(rs), m.numRotors-1)
	}
	pos := make([]int, len(rs))
	for i, r := range rs {
		p, err := m.alpha.Index(r)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrSettingSymbol, r)
		}
		pos[i] = p
	}
	for i, p := range pos {
		if err := m.arena[m.slots[i+1]].Set(p); err != nil {
			return err
		}
	}
	return nil
}

// Settings returns the current positions of slots 1..NumRotors()-1 as symbols.
func (m *Machine) Settings() string {
	if m.slots == nil {
		return ""
	}
	var b strings.Builder
	for k := 1; k < m.numRotors; k++ {
		s, _ := m.alpha.Symbol(m.arena[m.slots[k]].Setting())
		b.WriteRune(s)
	}
	return b.String()
}

// MovingCount returns how many inserted rotors rotate.
func (m *Machine) MovingCount() int {
	n := 0
	for _, id := range m.slots {
		if m.arena[id].Rotates() {
			n++
		}
	}
	return n
}

func (m *Machine) Plugboard() *permutation.Permutation { return m.plugboard }

// SetPlugboard replaces the plugboard.
func (m *Machine) SetPlugboard(p *permutation.Permutation) error {
	if !p.Alphabet().Equal(m.alpha) {
		return ErrAlphabetMismatch
	}
	m.plugboard = p
	return nil
}

// Convert advances the rotors and returns the encoding of index c.
func (m *Machine) Convert(c int) (int, error) {
	if m.slots == nil {
		return 0, ErrNotConfigured
	}
	m.advance()
	in := m.plugboard.Wrap(c)
	c = m.plugboard.Permute(in)
	plugged := c
	c, err := m.applyRotors(c)
	if err != nil {
		return 0, err
	}
	c = m.plugboard.Permute(c)
	if m.tracer != nil {
		m.trace(in, plugged, c)
	}
	return c, nil
}

// advance moves every rotor that is free to move this step. Movability is
// decided from the positions before anything moves.
func (m *Machine) advance() {
	move := make([]bool, m.numRotors)
	for i := 1; i < m.numRotors; i++ {
		cur := m.arena[m.slots[i]]
		left := m.arena[m.slots[i-1]]
		if cur.Rotates() && cur.AtNotch() && left.Rotates() {
			move[i-1] = true
			move[i] = true
		}
	}
	move[m.numRotors-1] = true
	for i := 1; i < m.numRotors; i++ {
		if move[i] {
			m.arena[m.slots[i]].Advance()
		}
	}
}

func (m *Machine) applyRotors(c int) (int, error) {
	for k := m.numRotors - 1; k >= 0; k-- {
		c = m.arena[m.slots[k]].ConvertForward(c)
	}
	for k := 1; k < m.numRotors; k++ {
		var err error
		if c, err = m.arena[m.slots[k]].ConvertBackward(c); err != nil {
			return 0, err
		}
	}
	return c, nil
}

func (m *Machine) trace(in, plugged, out int) {
	sym := func(i int) rune {
		r, _ := m.alpha.Symbol(i)
		return r
	}
	m.tracer.Trace(Step{Settings: m.Settings(), In: sym(in), Plugged: sym(plugged), Out: sym(out)})
}

// ConvertMessage encodes msg, ignoring whitespace. Rotor state carries over
// between calls.
func (m *Machine) ConvertMessage(msg string) (string, error) {
	var b strings.Builder
	b.Grow(len(msg))
	for _, r := range msg {
		if unicode.IsSpace(r) {
			continue
		}
		i, err := m.alpha.Index(r)
		if err != nil {
			return b.String(), err
		}
		o, err := m.Convert(i)
		if err != nil {
			return b.String(), err
		}
		s, _ := m.alpha.Symbol(o)
		b.WriteRune(s)
	}
	return b.String(), nil
}
