package writers

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnknownMessageFormatError(t *testing.T) {
	var b bytes.Buffer
	in, done := StartMessageWriter(&b, "nope-format", 1)
	in <- "ABC"
	close(in)
	err := <-done
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown message format")
}

func TestFormatsRegistered(t *testing.T) {
	assert.Equal(t, []string{"groups", "plain"}, Formats())
	assert.True(t, Lookup("groups"))
	assert.False(t, Lookup("json"))
}

func TestStartMessageWriter(t *testing.T) {
	var b bytes.Buffer
	in, done := StartMessageWriter(&b, "groups", 0)
	in <- "QVPQSOKOILPUBKJZPISFXDW"
	in <- "BHCNSCXNUOAATZXSRCFYDGU"
	close(in)
	require.NoError(t, <-done)
	assert.Equal(t, "QVPQS OKOIL PUBKJ ZPISF XDW\nBHCNS CXNUO AATZX SRCFY DGU\n", b.String())
}

type closedPipe struct{}

func (closedPipe) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestBrokenPipeIsSuccess(t *testing.T) {
	in, done := StartMessageWriter(closedPipe{}, "plain", 1)
	for i := 0; i < 10; i++ {
		in <- strings.Repeat("A", i)
	}
	close(in)
	assert.NoError(t, <-done)
	assert.True(t, IsBrokenPipe(io.ErrClosedPipe))
	assert.False(t, IsBrokenPipe(nil))
}
