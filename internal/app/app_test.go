package app

import (
	"bytes"
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enigma/internal/version"
)

var (
	textConf = filepath.Join("..", "config", "testdata", "enigma1.conf")
	yamlConf = filepath.Join("..", "config", "testdata", "enigma1.yaml")
	messages = filepath.Join("..", "config", "testdata", "messages.in")
)

const messagesOut = "EZQOZ MTZDT SRHWT SOERX XYO\n" +
	"CGZJU ZPBLG HUEJS WJUYS ZLY\n" +
	"\n" +
	"QCSXJ MOJFI AOHVR XFDSW VYHMO SHF\n"

func run(t *testing.T, stdin string, argv ...string) (int, string, string) {
	t.Helper()
	var out, errb bytes.Buffer
	code := RunStreams(context.Background(), argv, Streams{In: strings.NewReader(stdin), Out: &out, Err: &errb})
	return code, out.String(), errb.String()
}

func TestConvertFile(t *testing.T) {
	code, out, errs := run(t, "", textConf, messages)
	require.Equal(t, 0, code, errs)
	assert.Equal(t, messagesOut, out)
	assert.Empty(t, errs)
}

func TestConvertStdinToFile(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "out.txt")
	in := "* B Beta III IV I AXLE (YF) (ZH)\nEZQOZ MTZDT SRHWT SOERX XYO\n"
	code, out, errs := run(t, in, "--format", "plain", textConf, "-", dst)
	require.Equal(t, 0, code, errs)
	assert.Empty(t, out)
	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "FROMHISSHOULDERHIAWATHA\n", string(got))
}

func TestConvertGzipInput(t *testing.T) {
	raw, err := os.ReadFile(messages)
	require.NoError(t, err)
	var b bytes.Buffer
	zw := gzip.NewWriter(&b)
	_, err = zw.Write(raw)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	code, out, errs := run(t, b.String(), textConf)
	require.Equal(t, 0, code, errs)
	assert.Equal(t, messagesOut, out)
}

func TestVerboseTrace(t *testing.T) {
	code, out, errs := run(t, "* B Beta III IV I AXLE (YF) (ZH)\nF\n", "--verbose", textConf)
	require.Equal(t, 0, code, errs)
	assert.Equal(t, "E\n", out)
	assert.Equal(t, "[AXLF] F -> Y -> E\n", errs)
}

func TestYAMLConfig(t *testing.T) {
	code, out, errs := run(t, "* B I II III AAA\nAAAAA\n", yamlConf)
	require.Equal(t, 0, code, errs)
	assert.Equal(t, "BDZGO\n", out)
}

func TestCatalog(t *testing.T) {
	code, out, errs := run(t, "", "catalog", textConf)
	require.Equal(t, 0, code, errs)
	assert.Contains(t, out, "alphabet: ABCDEFGHIJKLMNOPQRSTUVWXYZ\n")
	assert.Contains(t, out, "name: Beta")
	assert.Contains(t, out, "kind: reflecting")

	code, out, errs = run(t, "", "catalog", "--text", yamlConf)
	require.Equal(t, 0, code, errs)
	assert.True(t, strings.HasPrefix(out, "ABCDEFGHIJKLMNOPQRSTUVWXYZ\n4 3\n"), out)
}

func TestVersion(t *testing.T) {
	code, out, _ := run(t, "", "--version")
	assert.Equal(t, 0, code)
	assert.Equal(t, "enigma version "+version.Version+"\n", out)
}

func TestHelp(t *testing.T) {
	code, out, _ := run(t, "", "--help")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "CONFIG [INPUT [OUTPUT]]")
}

func TestUsageErrorsExit2(t *testing.T) {
	for _, argv := range [][]string{
		{},
		{"--format", "json", textConf},
		{"--no-such-flag", textConf},
		{"a", "b", "c", "d"},
		{"catalog"},
	} {
		code, _, errs := run(t, "", argv...)
		assert.Equal(t, 2, code, "%v", argv)
		assert.True(t, strings.HasPrefix(errs, "Error: usage"), errs)
	}
}

func TestEnigmaErrorsExit1(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.conf")
	require.NoError(t, os.WriteFile(bad, []byte("ABC 3"), 0o644))

	cases := []struct {
		name  string
		stdin string
		argv  []string
		want  string
	}{
		{"MissingConfig", "", []string{filepath.Join(dir, "nope.conf")}, "could not open"},
		{"TruncatedConfig", "", []string{bad}, "truncated"},
		{"NoSetup", "HELLO\n", []string{textConf}, "message before any '*' setup line"},
		{"UnknownRotor", "* B Beta III IV IX AXLE\n", []string{textConf}, "unknown rotor"},
		{"BadSetting", "* B Beta III IV I AXL\n", []string{textConf}, "wrong setting length"},
		{"BadMessage", "* B Beta III IV I AXLE\nHI 5\n", []string{textConf}, "not in alphabet"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, _, errs := run(t, tc.stdin, tc.argv...)
			assert.Equal(t, 1, code)
			assert.True(t, strings.HasPrefix(errs, "Error: "), errs)
			assert.Contains(t, errs, tc.want)
		})
	}
}

func TestCancelledExit130(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out, errb bytes.Buffer
	code := RunStreams(ctx, []string{textConf, messages}, Streams{In: strings.NewReader(""), Out: &out, Err: &errb})
	assert.Equal(t, 130, code)
}
