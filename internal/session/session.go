// Package session drives a configured machine over a stream of setup
// directives and message lines.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"enigma/core/machine"
	"enigma/internal/config"
	"enigma/internal/output"
	"enigma/internal/writers"
)

// ErrNoSetup indicates a message line before the first setup directive.
var ErrNoSetup = errors.New("session: message before any '*' setup line")

// Options controls a Run.
type Options struct {
	Format string       // output format; output.FormatGroups if empty
	Logger *slog.Logger // slog.Default() if nil
}

// Stats counts what a Run processed.
type Stats struct {
	Setups   int
	Messages int
	Symbols  int
}

// Run reads r line by line. Lines starting with '*' reconfigure m; every
// other line is converted and written to w in opts.Format. Whitespace-only
// lines produce empty output lines. Cancellation is checked between lines.
func Run(ctx context.Context, m *machine.Machine, r io.Reader, w io.Writer, opts Options) (Stats, error) {
	var st Stats
	if opts.Format == "" {
		opts.Format = output.FormatGroups
	}
	if !writers.Lookup(opts.Format) {
		return st, fmt.Errorf("unknown output format %q", opts.Format)
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	sink, done := writers.StartMessageWriter(w, opts.Format, 64)
	err := scan(ctx, m, r, sink, log, &st)
	close(sink)
	if werr := <-done; err == nil {
		err = werr
	}
	return st, err
}

func scan(ctx context.Context, m *machine.Machine, r io.Reader, sink chan<- string, log *slog.Logger, st *Stats) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	configured := false
	lineNo := 0
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lineNo++
		line := sc.Text()

		if config.IsSetup(line) {
			s, err := config.ParseSetup(line, m.NumRotors())
			if err != nil {
				return fmt.Errorf("line %d: %w", lineNo, err)
			}
			if err := s.Apply(m); err != nil {
				return fmt.Errorf("line %d: %w", lineNo, err)
			}
			configured = true
			st.Setups++
			if mv := m.MovingCount(); mv != m.NumPawls() {
				log.Warn("moving rotor count differs from pawls",
					"line", lineNo, "moving", mv, "pawls", m.NumPawls())
			}
			log.Debug("setup", "line", lineNo, "rotors", strings.Join(s.Rotors, " "), "setting", s.Setting)
			continue
		}

		if strings.TrimSpace(line) == "" {
			sink <- ""
			continue
		}
		if !configured {
			return fmt.Errorf("line %d: %w", lineNo, ErrNoSetup)
		}
		enc, err := m.ConvertMessage(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		st.Messages++
		st.Symbols += len([]rune(enc))
		sink <- enc
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("input scan: %w", err)
	}
	return nil
}
