// internal/config/text.go
package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseText reads the whitespace-separated configuration format:
//
//	ALPHABET ROTORS PAWLS
//	NAME TYPE (cycle)...
//	...
//
// TYPE is M followed by the notch symbols, N for a fixed rotor or R for a
// reflector.
func ParseText(r io.Reader) (Spec, error) {
	var toks []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		toks = append(toks, strings.Fields(sc.Text())...)
	}
	if err := sc.Err(); err != nil {
		return Spec{}, fmt.Errorf("config scan: %w", err)
	}

	var spec Spec
	if len(toks) < 3 {
		return spec, fmt.Errorf("%w: need alphabet, rotor count and pawl count", ErrTruncated)
	}
	spec.Alphabet = toks[0]
	if strings.ContainsAny(spec.Alphabet, "*()") {
		return spec, fmt.Errorf("%w: alphabet %q may not contain '*', '(' or ')'", ErrFormat, spec.Alphabet)
	}
	var err error
	if spec.Rotors, err = strconv.Atoi(toks[1]); err != nil {
		return spec, fmt.Errorf("%w: rotor count %q", ErrFormat, toks[1])
	}
	if spec.Pawls, err = strconv.Atoi(toks[2]); err != nil {
		return spec, fmt.Errorf("%w: pawl count %q", ErrFormat, toks[2])
	}

	for i := 3; i < len(toks); {
		if i+1 >= len(toks) {
			return spec, fmt.Errorf("%w: rotor %q has no type", ErrTruncated, toks[i])
		}
		rs := RotorSpec{Name: toks[i]}
		typ := toks[i+1]
		switch typ[0] {
		case 'M':
			rs.Kind = KindMoving
		case 'N':
			rs.Kind = KindFixed
		case 'R':
			rs.Kind = KindReflecting
		default:
			return spec, fmt.Errorf("%w: rotor %s has type %q", ErrFormat, rs.Name, typ)
		}
		rs.Notches = typ[1:]
		i += 2

		var cycles []string
		for ; i < len(toks) && strings.HasPrefix(toks[i], "("); i++ {
			cycles = append(cycles, toks[i])
		}
		rs.Cycles = strings.Join(cycles, " ")
		spec.Catalog = append(spec.Catalog, rs)
	}
	return spec, nil
}

// FormatText renders spec in the text configuration format.
func FormatText(w io.Writer, spec Spec) error {
	if _, err := fmt.Fprintf(w, "%s\n%d %d\n", spec.Alphabet, spec.Rotors, spec.Pawls); err != nil {
		return err
	}
	for _, rs := range spec.Catalog {
		typ := "N"
		switch rs.Kind {
		case KindMoving:
			typ = "M" + rs.Notches
		case KindReflecting:
			typ = "R"
		}
		if _, err := fmt.Fprintf(w, " %-6s %-6s %s\n", rs.Name, typ, rs.Cycles); err != nil {
			return err
		}
	}
	return nil
}
