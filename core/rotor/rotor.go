// core/rotor/rotor.go
package rotor

import (
	"errors"
	"fmt"
	"strings"

	"enigma/core/permutation"
)

var (
	// ErrReflectorSetting indicates an attempt to turn a reflector off position 0.
	ErrReflectorSetting = errors.New("rotor: reflector must stay at position 0")
	// ErrReflectorBackward indicates a backward conversion through a reflector.
	ErrReflectorBackward = errors.New("rotor: reflector cannot convert backward")
	// ErrSettingRange indicates a setting outside [0, Size()).
	ErrSettingRange = errors.New("rotor: setting out of range")
	// ErrNotch indicates a notch symbol outside the rotor's alphabet.
	ErrNotch = errors.New("rotor: notch not in alphabet")
	// ErrNotDerangement indicates reflector wiring with a fixed point.
	ErrNotDerangement = errors.New("rotor: reflector permutation has a fixed point")
	// ErrKind indicates an unknown rotor kind.
	ErrKind = errors.New("rotor: unknown kind")
)

// Kind is the closed set of rotor variants.
type Kind int

const (
	Fixed Kind = iota
	Moving
	Reflecting
)

func (k Kind) String() string {
	switch k {
	case Fixed:
		return "fixed"
	case Moving:
		return "moving"
	case Reflecting:
		return "reflecting"
	default:
		return "unknown"
	}
}

// ParseKind accepts the long names and the one-letter forms N, M and R.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "fixed", "n":
		return Fixed, nil
	case "moving", "m":
		return Moving, nil
	case "reflecting", "reflector", "r":
		return Reflecting, nil
	}
	return Fixed, fmt.Errorf("%w: %q", ErrKind, s)
}

// Rotor is a permutation turned by a mutable setting. Notches apply to
// Moving rotors only.
type Rotor struct {
	name    string
	kind    Kind
	perm    *permutation.Permutation
	setting int
	notches []int
}

// NewFixed returns a rotor that never turns by itself.
func NewFixed(name string, perm *permutation.Permutation) *Rotor {
	return &Rotor{name: name, kind: Fixed, perm: perm}
}

// NewMoving returns a rotating rotor whose notches are at the positions of
// the symbols in notches.
func NewMoving(name string, perm *permutation.Permutation, notches string) (*Rotor, error) {
	r := &Rotor{name: name, kind: Moving, perm: perm}
	for _, s := range notches {
		i, err := perm.Alphabet().Index(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %q on rotor %s", ErrNotch, s, name)
		}
		r.notches = append(r.notches, i)
	}
	return r, nil
}

// NewReflector returns a reflecting rotor. perm must be a derangement.
func NewReflector(name string, perm *permutation.Permutation) (*Rotor, error) {
	if !perm.Derangement() {
		return nil, fmt.Errorf("%w: %s", ErrNotDerangement, name)
	}
	return &Rotor{name: name, kind: Reflecting, perm: perm}, nil
}

func (r *Rotor) Name() string                          { return r.name }
func (r *Rotor) Kind() Kind                            { return r.kind }
func (r *Rotor) Permutation() *permutation.Permutation { return r.perm }
func (r *Rotor) Size() int                             { return r.perm.Size() }
func (r *Rotor) Setting() int                          { return r.setting }

// Rotates reports whether the rotor carries a pawl-driven ratchet.
func (r *Rotor) Rotates() bool { return r.kind == Moving }

func (r *Rotor) Reflecting() bool { return r.kind == Reflecting }

// Set turns the rotor to pos.
func (r *Rotor) Set(pos int) error {
	switch r.kind {
	case Reflecting:
		if pos != 0 {
			return fmt.Errorf("%w: %s to %d", ErrReflectorSetting, r.name, pos)
		}
	default:
		if pos < 0 || pos >= r.Size() {
			return fmt.Errorf("%w: %d for rotor %s", ErrSettingRange, pos, r.name)
		}
	}
	r.setting = pos
	return nil
}

// SetSymbol turns the rotor to the position of symbol s.
func (r *Rotor) SetSymbol(s rune) error {
	i, err := r.perm.Alphabet().Index(s)
	if err != nil {
		return err
	}
	return r.Set(i)
}

// AtNotch reports whether a moving rotor sits on one of its notches.
func (r *Rotor) AtNotch() bool {
	if r.kind != Moving {
		return false
	}
	for _, n := range r.notches {
		if n == r.setting {
			return true
		}
	}
	return false
}

// Notches returns the notch symbols; empty unless Moving.
func (r *Rotor) Notches() string {
	var b strings.Builder
	for _, n := range r.notches {
		s, _ := r.perm.Alphabet().Symbol(n)
		b.WriteRune(s)
	}
	return b.String()
}

// Advance moves a rotating rotor one position; other kinds stay put.
func (r *Rotor) Advance() {
	if r.kind == Moving {
		r.setting = r.perm.Wrap(r.setting + 1)
	}
}

// ConvertForward maps the contact entered at p on the right side to the
// contact leaving on the left, accounting for the setting.
func (r *Rotor) ConvertForward(p int) int {
	return r.perm.Wrap(r.perm.Permute(r.perm.Wrap(p+r.setting)) - r.setting)
}

// ConvertBackward is the inverse of ConvertForward. A reflector is only
// ever entered from one side.
func (r *Rotor) ConvertBackward(e int) (int, error) {
	if r.kind == Reflecting {
		return 0, fmt.Errorf("%w: %s", ErrReflectorBackward, r.name)
	}
	return r.perm.Wrap(r.perm.Invert(r.perm.Wrap(e+r.setting)) - r.setting), nil
}

func (r *Rotor) String() string {
	return fmt.Sprintf("%s(%s)", r.name, r.kind)
}
