// internal/config/setup.go
package config

import (
	"errors"
	"fmt"
	"strings"

	"enigma/core/machine"
	"enigma/core/permutation"
)

// ErrSetupFormat indicates a malformed "*" setup line.
var ErrSetupFormat = errors.New("config: settings poorly formatted")

// Setup is one "* NAME... SETTING (plug)..." directive.
type Setup struct {
	Rotors    []string
	Setting   string
	Plugboard string
}

// IsSetup reports whether line is a setup directive.
func IsSetup(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "*")
}

// ParseSetup splits a setup directive for a machine with numRotors slots.
func ParseSetup(line string, numRotors int) (Setup, error) {
	body := strings.TrimSpace(line)
	if !strings.HasPrefix(body, "*") {
		return Setup{}, fmt.Errorf("%w: %q does not start with '*'", ErrSetupFormat, line)
	}
	f := strings.Fields(body[1:])
	if len(f) < numRotors+1 {
		return Setup{}, fmt.Errorf("%w: want %d rotor names and a setting in %q", ErrSetupFormat, numRotors, line)
	}
	s := Setup{
		Rotors:  append([]string(nil), f[:numRotors]...),
		Setting: f[numRotors],
	}
	plug := f[numRotors+1:]
	for _, tok := range plug {
		if !strings.HasPrefix(tok, "(") {
			return Setup{}, fmt.Errorf("%w: unexpected %q in %q", ErrSetupFormat, tok, line)
		}
	}
	s.Plugboard = strings.Join(plug, " ")
	return s, nil
}

// Apply inserts the rotors, sets them and installs the plugboard.
func (s Setup) Apply(m *machine.Machine) error {
	if err := m.InsertRotors(s.Rotors); err != nil {
		return err
	}
	if err := m.SetRotors(s.Setting); err != nil {
		return err
	}
	p, err := permutation.New(s.Plugboard, m.Alphabet())
	if err != nil {
		return err
	}
	return m.SetPlugboard(p)
}
