package trace

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enigma/core/alphabet"
	"enigma/core/machine"
	"enigma/core/permutation"
	"enigma/core/rotor"
)

func TestPlainLine(t *testing.T) {
	var b bytes.Buffer
	tr := New(&b, false)
	tr.Trace(machine.Step{Settings: "AAB", In: 'A', Plugged: 'C', Out: 'B'})
	tr.Trace(machine.Step{Settings: "AAC", In: 'B', Plugged: 'B', Out: 'D'})
	assert.Equal(t, "[AAB] A -> C -> B\n[AAC] B -> B -> D\n", b.String())
}

func TestStyledLineKeepsContent(t *testing.T) {
	got := New(&bytes.Buffer{}, true).Format(machine.Step{Settings: "XY", In: 'A', Plugged: 'C', Out: 'B'})
	for _, want := range []string{"[XY]", "A", "C", "B", "->"} {
		assert.Contains(t, got, want)
	}
}

func TestMachineDrivesTracer(t *testing.T) {
	a, err := alphabet.New("ABCD")
	require.NoError(t, err)
	refl, err := permutation.New("(AC) (BD)", a)
	require.NoError(t, err)
	r, err := rotor.NewReflector("R", refl)
	require.NoError(t, err)
	mv, err := rotor.NewMoving("M", permutation.Identity(a), "")
	require.NoError(t, err)

	var b bytes.Buffer
	m, err := machine.New(a, 2, 1, []*rotor.Rotor{r, mv}, machine.WithTracer(New(&b, false)))
	require.NoError(t, err)
	require.NoError(t, m.InsertRotors([]string{"R", "M"}))

	out, err := m.ConvertMessage("AB")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "[B] A -> A -> "+out[:1], lines[0])
	assert.Equal(t, "[C] B -> B -> "+out[1:], lines[1])
}
