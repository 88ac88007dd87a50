// internal/config/yaml.go
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a Spec from YAML. Unknown keys are rejected.
func ParseYAML(r io.Reader) (Spec, error) {
	var spec Spec
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil {
		if errors.Is(err, io.EOF) {
			return spec, fmt.Errorf("%w: empty YAML document", ErrTruncated)
		}
		return spec, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return spec, nil
}

// FormatYAML renders spec as YAML.
func FormatYAML(w io.Writer, spec Spec) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(spec); err != nil {
		return err
	}
	return enc.Close()
}

// IsYAML reports whether path names a YAML configuration.
func IsYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Load reads the configuration at path, choosing the format by extension,
// and validates it.
func Load(path string) (Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Spec{}, fmt.Errorf("could not open %s: %w", path, err)
	}
	var spec Spec
	if IsYAML(path) {
		spec, err = ParseYAML(bytes.NewReader(data))
	} else {
		spec, err = ParseText(bytes.NewReader(data))
	}
	if err != nil {
		return spec, err
	}
	return spec, spec.Validate()
}
