// internal/writers/message.go
package writers

import (
	"io"

	"enigma/internal/output"
)

func init() {
	RegisterMessage(output.FormatGroups, output.StreamGroups)
	RegisterMessage(output.FormatPlain, output.StreamPlain)
}

// StartMessageWriter starts a goroutine that renders every message sent on
// the returned channel in format. Close the channel, then receive the
// result. A broken pipe downstream is reported as success; the remaining
// messages are drained so senders never block.
func StartMessageWriter(out io.Writer, format string, bufSize int) (chan<- string, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan string, bufSize)
	errCh := make(chan error, 1)
	go func() {
		err := WriteMessages(format, out, in)
		for range in {
		}
		if IsBrokenPipe(err) {
			err = nil
		}
		errCh <- err
	}()
	return in, errCh
}
