// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"

	"enigma/core/alphabet"
	"enigma/core/machine"
	"enigma/core/permutation"
	"enigma/core/rotor"
)

var (
	// ErrInvalid wraps every constraint violation found in a Spec.
	ErrInvalid = errors.New("config: invalid configuration")
	// ErrTruncated indicates a text configuration that ends mid-record.
	ErrTruncated = errors.New("config: configuration file truncated")
	// ErrFormat indicates a token of the wrong shape.
	ErrFormat = errors.New("config: bad configuration format")
)

// Rotor kinds as they appear in YAML.
const (
	KindMoving     = "moving"
	KindFixed      = "fixed"
	KindReflecting = "reflecting"
)

// Spec is a parsed machine description: the alphabet, the slot and pawl
// counts, and the catalog of available rotors.
type Spec struct {
	Alphabet string      `yaml:"alphabet" validate:"required,excludesall=*()"`
	Rotors   int         `yaml:"rotors" validate:"gt=1"`
	Pawls    int         `yaml:"pawls" validate:"gte=0,ltfield=Rotors"`
	Catalog  []RotorSpec `yaml:"catalog" validate:"required,min=1,dive"`
}

// RotorSpec describes one catalog rotor.
type RotorSpec struct {
	Name    string `yaml:"name" validate:"required,excludesall=*()"`
	Kind    string `yaml:"kind" validate:"required,oneof=moving fixed reflecting"`
	Cycles  string `yaml:"cycles,omitempty"`
	Notches string `yaml:"notches,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		rs := sl.Current().Interface().(RotorSpec)
		if rs.Notches != "" && rs.Kind != KindMoving {
			sl.ReportError(rs.Notches, "Notches", "notches", "moving_only", "")
		}
	}, RotorSpec{})
	return v
}

// Validate checks the structural constraints of s and reports every
// violation at once.
func (s Spec) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	var all error
	for _, fe := range verrs {
		all = multierr.Append(all, fmt.Errorf("%w: %s fails %q", ErrInvalid, fieldPath(fe), describe(fe)))
	}
	return all
}

// fieldPath drops the leading "Spec." from a validator namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	if fe.Param() != "" {
		return fe.Tag() + "=" + fe.Param()
	}
	return fe.Tag()
}

// Build validates s and assembles the alphabet, the rotor catalog and the
// machine. Rotor problems are collected rather than stopping at the first.
func (s Spec) Build(opts ...machine.Option) (*machine.Machine, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	a, err := alphabet.New(s.Alphabet)
	if err != nil {
		return nil, err
	}
	var (
		catalog []*rotor.Rotor
		errs    error
	)
	for _, rs := range s.Catalog {
		r, err := rs.build(a)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("rotor %s: %w", rs.Name, err))
			continue
		}
		catalog = append(catalog, r)
	}
	if errs != nil {
		return nil, errs
	}
	return machine.New(a, s.Rotors, s.Pawls, catalog, opts...)
}

func (rs RotorSpec) build(a *alphabet.Alphabet) (*rotor.Rotor, error) {
	p, err := permutation.New(rs.Cycles, a)
	if err != nil {
		return nil, err
	}
	k, err := rotor.ParseKind(rs.Kind)
	if err != nil {
		return nil, err
	}
	switch k {
	case rotor.Moving:
		return rotor.NewMoving(rs.Name, p, rs.Notches)
	case rotor.Reflecting:
		return rotor.NewReflector(rs.Name, p)
	default:
		return rotor.NewFixed(rs.Name, p), nil
	}
}
