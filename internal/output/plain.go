// internal/output/plain.go
package output

import "io"

// StreamPlain writes each message from in on its own line, unchanged.
func StreamPlain(w io.Writer, in <-chan string) error {
	for msg := range in {
		if _, err := io.WriteString(w, msg+"\n"); err != nil {
			return err
		}
	}
	return nil
}
