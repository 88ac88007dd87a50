// internal/output/groups.go
package output

import (
	"io"
	"strings"
)

// Groups splits msg into blocks of GroupSize symbols separated by one
// space. The last block may be shorter; there is no trailing space.
func Groups(msg string) string {
	rs := []rune(msg)
	if len(rs) == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(len(msg) + len(msg)/GroupSize)
	for i, r := range rs {
		if i > 0 && i%GroupSize == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// StreamGroups writes each message from in on its own line, grouped.
func StreamGroups(w io.Writer, in <-chan string) error {
	for msg := range in {
		if _, err := io.WriteString(w, Groups(msg)+"\n"); err != nil {
			return err
		}
	}
	return nil
}
