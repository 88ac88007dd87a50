// ./internal/arch/arch_test.go
package arch

import (
	"bytes"
	"encoding/json"
	"io"
	"os/exec"
	"strings"
	"testing"
)

type pkg struct {
	ImportPath string
	Imports    []string
	Standard   bool
}

func TestImportBoundaries(t *testing.T) {
	cmd := exec.Command("go", "list", "-json", "enigma/...")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("go list: %v", err)
	}
	dec := json.NewDecoder(&out)

	upper := []string{
		"enigma/internal/app", "enigma/internal/appshell",
		"enigma/internal/cli", "enigma/cmd",
	}
	bans := map[string][]string{
		"enigma/core":             {"enigma/internal", "enigma/cmd"},
		"enigma/internal/config":  upper,
		"enigma/internal/session": upper,
		"enigma/internal/writers": append([]string{"enigma/internal/session"}, upper...),
		"enigma/internal/output":  append([]string{"enigma/internal/session", "enigma/internal/writers"}, upper...),
		"enigma/internal/trace":   append([]string{"enigma/internal/session", "enigma/internal/config"}, upper...),
	}

	var violations []string
	for {
		var p pkg
		if err := dec.Decode(&p); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !strings.HasPrefix(p.ImportPath, "enigma/") {
			continue
		}
		imp := p.ImportPath
		for prefix, forbidden := range bans {
			if !under(imp, prefix) {
				continue
			}
			for _, dep := range p.Imports {
				if !strings.HasPrefix(dep, "enigma/") {
					continue
				}
				for _, ban := range forbidden {
					if under(dep, ban) {
						violations = append(violations, imp+" → "+dep)
					}
				}
			}
		}
	}

	if len(violations) > 0 {
		t.Fatalf("import boundary violations:\n  %s", strings.Join(violations, "\n  "))
	}
}

// under reports whether path is root or a package below it.
func under(path, root string) bool {
	return path == root || strings.HasPrefix(path, root+"/")
}
