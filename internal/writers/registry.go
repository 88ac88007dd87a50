// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"
)

// MessageWriters maps a format name to its handler. Handlers drain the
// channel they are given. Register in init() blocks.
var MessageWriters = map[string]func(w io.Writer, in <-chan string) error{}

// RegisterMessage adds or replaces the handler for format.
func RegisterMessage(format string, fn func(io.Writer, <-chan string) error) {
	MessageWriters[format] = fn
}

// Formats lists the registered format names in sorted order.
func Formats() []string {
	out := make([]string, 0, len(MessageWriters))
	for f := range MessageWriters {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Lookup reports whether format has a registered handler.
func Lookup(format string) bool {
	_, ok := MessageWriters[format]
	return ok
}

// WriteMessages dispatches to the handler for format.
func WriteMessages(format string, w io.Writer, in <-chan string) error {
	fn, ok := MessageWriters[format]
	if !ok {
		return fmt.Errorf("unknown message format %q (no writer registered)", format)
	}
	return fn(w, in)
}
