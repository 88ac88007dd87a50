// internal/cli/options.go
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"enigma/internal/cmdutil"
	"enigma/internal/output"
	"enigma/internal/writers"
)

// ErrUsage marks command-line mistakes; the app exits 2 on these.
var ErrUsage = errors.New("usage")

// Options holds all CLI flags and arguments.
type Options struct {
	// Positionals
	Config string
	Input  string // "" or "-" = stdin
	Output string // "" or "-" = stdout

	// Output
	Format  string
	Verbose bool

	// Logging
	LogLevel string
}

// Register binds the conversion flags to fs.
func (o *Options) Register(fs *pflag.FlagSet) {
	fs.BoolVarP(&o.Verbose, "verbose", "v", false, "trace every converted character on stderr")
	fs.StringVarP(&o.Format, "format", "f", output.FormatGroups,
		"output format: "+strings.Join(writers.Formats(), " | "))
}

// RegisterPersistent binds the flags shared by every subcommand.
func (o *Options) RegisterPersistent(fs *pflag.FlagSet) {
	fs.StringVar(&o.LogLevel, "log-level", "warn", "log level: debug | info | warn | error")
}

// SetArgs assigns CONFIG [INPUT [OUTPUT]].
func (o *Options) SetArgs(args []string) error {
	if len(args) < 1 || len(args) > 3 {
		return fmt.Errorf("%w: want CONFIG [INPUT [OUTPUT]], got %d arguments", ErrUsage, len(args))
	}
	o.Config = args[0]
	if len(args) > 1 {
		o.Input = args[1]
	}
	if len(args) > 2 {
		o.Output = args[2]
	}
	return nil
}

// Validate checks flag values.
func (o Options) Validate() error {
	if !writers.Lookup(o.Format) {
		return fmt.Errorf("%w: invalid --format %q", ErrUsage, o.Format)
	}
	if _, err := cmdutil.ParseLevel(o.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if o.Output != "" && o.Output != "-" && o.Output == o.Input {
		return fmt.Errorf("%w: input and output are the same file %q", ErrUsage, o.Input)
	}
	return nil
}
