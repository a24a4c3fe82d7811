package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAssignmentsLiterals(t *testing.T) {
	src := `
max_wait_time = 120
cube_size = 0.5
label = "spectral"
enabled = True
nothing = None
offset = -3
shape = (100, 200)
layers = [1, 2, 3]
options = {'a': 1, 'b': False}
`
	result := ParseAssignments(src)
	require.Len(t, result, 9)

	names := make([]string, 0, len(result))
	for _, p := range result {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{
		"max_wait_time", "cube_size", "label", "enabled", "nothing",
		"offset", "shape", "layers", "options",
	}, names)

	v, ok := result.Get("max_wait_time")
	require.True(t, ok)
	assert.Equal(t, IntValue(120), v)

	v, _ = result.Get("cube_size")
	assert.Equal(t, FloatValue(0.5), v)

	v, _ = result.Get("label")
	assert.Equal(t, StringValue("spectral"), v)

	v, _ = result.Get("enabled")
	assert.Equal(t, BoolValue(true), v)

	v, _ = result.Get("nothing")
	assert.Equal(t, None(), v)

	v, _ = result.Get("offset")
	assert.Equal(t, IntValue(-3), v)

	v, _ = result.Get("shape")
	assert.Equal(t, KindTuple, v.Kind)
	require.Len(t, v.Items, 2)
	assert.Equal(t, IntValue(100), v.Items[0])

	v, _ = result.Get("options")
	assert.Equal(t, KindDict, v.Kind)
	require.Len(t, v.Entries, 2)
	assert.Equal(t, StringValue("a"), v.Entries[0].Key)
}

func TestParseAssignmentsSkipsNonLiterals(t *testing.T) {
	src := `
import os
good = 1
call = os.getenv("HOME")
expr = good + 1
name_ref = good
a, b = 1, 2
comparison = good == 1
trailing = 2  # with a comment
`
	result := ParseAssignments(src)
	require.Len(t, result, 2)

	v, ok := result.Get("good")
	require.True(t, ok)
	assert.Equal(t, IntValue(1), v)

	v, ok = result.Get("trailing")
	require.True(t, ok)
	assert.Equal(t, IntValue(2), v)
}

func TestParseAssignmentsAnnotated(t *testing.T) {
	result := ParseAssignments("count: int = 7\nratio: float = 1.5")
	require.Len(t, result, 2)

	v, _ := result.Get("count")
	assert.Equal(t, IntValue(7), v)
	v, _ = result.Get("ratio")
	assert.Equal(t, FloatValue(1.5), v)
}

func TestParseAssignmentsLastValueWins(t *testing.T) {
	result := ParseAssignments("x = 1\ny = 2\nx = 3")
	require.Len(t, result, 2)
	assert.Equal(t, "x", result[0].Name)
	assert.Equal(t, IntValue(3), result[0].Value)
}

func TestParseAssignmentsEmptySource(t *testing.T) {
	assert.Empty(t, ParseAssignments(""))
	assert.Empty(t, ParseAssignments("# only a comment"))
}
