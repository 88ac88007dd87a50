// internal/cli/options_test.go
package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (Options, error) {
	t.Helper()
	var o Options
	fs := NewFlagSet("test")
	o.Register(fs)
	o.RegisterPersistent(fs)
	require.NoError(t, fs.Parse(args))
	if err := o.SetArgs(fs.Args()); err != nil {
		return o, err
	}
	return o, o.Validate()
}

func TestDefaults(t *testing.T) {
	o, err := parse(t, "default.conf")
	require.NoError(t, err)
	assert.Equal(t, Options{Config: "default.conf", Format: "groups", LogLevel: "warn"}, o)
}

func TestAllArguments(t *testing.T) {
	o, err := parse(t, "--verbose", "-f", "plain", "--log-level", "debug", "c.yaml", "-", "out.txt")
	require.NoError(t, err)
	assert.True(t, o.Verbose)
	assert.Equal(t, "plain", o.Format)
	assert.Equal(t, "debug", o.LogLevel)
	assert.Equal(t, "c.yaml", o.Config)
	assert.Equal(t, "-", o.Input)
	assert.Equal(t, "out.txt", o.Output)
}

func TestUsageErrors(t *testing.T) {
	cases := map[string][]string{
		"NoConfig":  {},
		"TooMany":   {"a", "b", "c", "d"},
		"BadFormat": {"--format", "json", "a"},
		"BadLevel":  {"--log-level", "loud", "a"},
		"SameInOut": {"a", "msg.txt", "msg.txt"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parse(t, args...)
			assert.ErrorIs(t, err, ErrUsage)
		})
	}
}
