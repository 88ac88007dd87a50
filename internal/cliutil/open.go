// internal/cliutil/open.go
package cliutil

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
)

// multiReadCloser closes multiple io.Closers when Close() is called.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// OpenInput opens path for reading. "" and "-" read from stdin. Gzip
// input is detected by its magic number (1F 8B) and decoded.
func OpenInput(path string, stdin io.Reader) (io.ReadCloser, error) {
	var (
		src    io.Reader
		closer io.Closer = io.NopCloser(nil)
	)
	if path == "" || path == "-" {
		src = stdin
	} else {
		fh, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("could not open %s: %w", path, err)
		}
		src, closer = fh, fh
	}

	br := bufio.NewReader(src)
	sig, _ := br.Peek(2)
	if len(sig) == 2 && sig[0] == 0x1f && sig[1] == 0x8b {
		gr, err := gzip.NewReader(br)
		if err != nil {
			_ = closer.Close()
			return nil, fmt.Errorf("could not open %s: %w", displayName(path), err)
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, closer}}, nil
	}
	return &multiReadCloser{Reader: br, closers: []io.Closer{closer}}, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// CreateOutput creates path for writing. "" and "-" write to stdout, which
// is never closed.
func CreateOutput(path string, stdout io.Writer) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopWriteCloser{stdout}, nil
	}
	fh, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}
	return fh, nil
}

func displayName(path string) string {
	if path == "" || path == "-" {
		return "standard input"
	}
	return path
}
