// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"enigma/core/machine"
	"enigma/internal/cli"
	"enigma/internal/cliutil"
	"enigma/internal/cmdutil"
	"enigma/internal/config"
	"enigma/internal/session"
	"enigma/internal/trace"
	"enigma/internal/version"
	"enigma/internal/writers"
)

// Streams are the process streams a run reads and writes.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// RunStreams executes the enigma command line and returns the exit code:
// 0 on success, 1 on any conversion or configuration error, 2 on usage
// errors and 130 when ctx is cancelled.
func RunStreams(ctx context.Context, argv []string, s Streams) int {
	root := newRootCmd(s)
	root.SetArgs(argv)
	cmd, err := root.ExecuteContextC(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	case errors.Is(err, cli.ErrUsage):
		_, _ = fmt.Fprintf(s.Err, "Error: %s\n", err)
		_, _ = fmt.Fprint(s.Err, cmd.UsageString())
		return 2
	default:
		_, _ = fmt.Fprintf(s.Err, "Error: %s\n", err)
		return 1
	}
}

// RunContext runs with stdin as the message source.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	return RunStreams(parent, argv, Streams{In: os.Stdin, Out: stdout, Err: stderr})
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func newRootCmd(s Streams) *cobra.Command {
	var opts cli.Options
	root := &cobra.Command{
		Use:   "enigma [flags] CONFIG [INPUT [OUTPUT]]",
		Short: "Encrypt and decrypt messages on a configurable rotor machine",
		Long: `enigma reads a machine description from CONFIG (text, or YAML by
.yaml/.yml extension) and converts INPUT line by line. Lines starting with
'*' select rotors, settings and plugboard:

  * B Beta III IV I AXLE (HQ) (EX) (IP) (TR) (BY)

Other lines are converted and written in the chosen format.`,
		Version:       version.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			return opts.SetArgs(args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Validate(); err != nil {
				return err
			}
			return convert(cmd.Context(), opts, s)
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetIn(s.In)
	root.SetOut(s.Out)
	root.SetErr(s.Err)
	root.SetVersionTemplate("enigma version {{.Version}}\n")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", cli.ErrUsage, err)
	})
	opts.Register(root.Flags())
	opts.RegisterPersistent(root.PersistentFlags())
	root.AddCommand(newCatalogCmd(&opts, s))
	return root
}

func newLogger(opts cli.Options, s Streams) (*slog.Logger, error) {
	lvl, err := cmdutil.ParseLevel(opts.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cli.ErrUsage, err)
	}
	return cmdutil.NewLogger(s.Err, lvl), nil
}

func convert(ctx context.Context, opts cli.Options, s Streams) (err error) {
	log, err := newLogger(opts, s)
	if err != nil {
		return err
	}
	spec, err := config.Load(opts.Config)
	if err != nil {
		return err
	}
	var mopts []machine.Option
	if opts.Verbose {
		mopts = append(mopts, machine.WithTracer(trace.New(s.Err, cmdutil.IsTerminal(s.Err))))
	}
	m, err := spec.Build(mopts...)
	if err != nil {
		return err
	}
	log.Debug("machine ready", "config", opts.Config, "rotors", m.NumRotors(), "pawls", m.NumPawls(), "catalog", len(m.Catalog()))

	if (opts.Input == "" || opts.Input == "-") && cmdutil.IsTerminal(s.In) {
		log.Info("reading messages from the terminal; end with Ctrl-D")
	}
	in, err := cliutil.OpenInput(opts.Input, s.In)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := cliutil.CreateOutput(opts.Output, s.Out)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	outw := bufio.NewWriter(out)
	st, err := session.Run(ctx, m, in, outw, session.Options{Format: opts.Format, Logger: log})
	if ferr := outw.Flush(); err == nil && !writers.IsBrokenPipe(ferr) {
		err = ferr
	}
	log.Debug("done", "setups", st.Setups, "messages", st.Messages, "symbols", st.Symbols)
	return err
}
