package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParseGridPreservesKeyOrder(t *testing.T) {
	grid, err := ParseGrid([]byte(`{"b_value": [1, 2], "a_value": ["x"], "c_value": [true, false]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"b_value", "a_value", "c_value"}, grid.Keys)
}

func TestParseGridEmptyObject(t *testing.T) {
	_, err := ParseGrid([]byte(`{}`))
	assert.ErrorIs(t, err, ErrEmptyGridFile)
}

func TestParseGridEmptyValueList(t *testing.T) {
	_, err := ParseGrid([]byte(`{"a": []}`))
	assert.ErrorIs(t, err, ErrEmptyValueList)
}

func TestExpandExample(t *testing.T) {
	grid, err := ParseGrid([]byte(`{"a": [1, 2], "b": ["x", "y", "z"]}`))
	require.NoError(t, err)

	assignments := Expand(grid)
	require.Len(t, assignments, 6)

	first := assignments[0]
	require.Len(t, first, 2)
	assert.Equal(t, "a", first[0].Name)
	assert.Equal(t, IntValue(1), first[0].Value)
	assert.Equal(t, "b", first[1].Name)
	assert.Equal(t, StringValue("x"), first[1].Value)
}

func TestExpandEmptyGrid(t *testing.T) {
	assignments := Expand(nil)
	require.Len(t, assignments, 1)
	assert.Empty(t, assignments[0])
}

func TestExpandCompleteness(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		keyCount := rapid.IntRange(1, 4).Draw(t, "keyCount")
		grid := &Grid{Values: make(map[string][]Value)}
		expected := 1
		for i := 0; i < keyCount; i++ {
			key := rapid.StringMatching(`[a-z]{1,8}`).Draw(t, "key")
			if _, exists := grid.Values[key]; exists {
				continue
			}
			listLen := rapid.IntRange(1, 4).Draw(t, "listLen")
			values := make([]Value, 0, listLen)
			for j := 0; j < listLen; j++ {
				values = append(values, IntValue(int64(j)))
			}
			grid.Keys = append(grid.Keys, key)
			grid.Values[key] = values
			expected *= listLen
		}

		assignments := Expand(grid)
		assert.Len(t, assignments, expected)

		seen := make(map[string]bool, len(assignments))
		for _, assignment := range assignments {
			require.Len(t, assignment, len(grid.Keys))
			rendered := ""
			for i, p := range assignment {
				assert.Equal(t, grid.Keys[i], p.Name)
				rendered += p.Name + "=" + p.Value.Render() + ";"
			}
			assert.False(t, seen[rendered], "duplicate assignment %s", rendered)
			seen[rendered] = true
		}
	})
}

func TestValueRender(t *testing.T) {
	assert.Equal(t, "5", IntValue(5).Render())
	assert.Equal(t, "0.5", FloatValue(0.5).Render())
	assert.Equal(t, "5.0", FloatValue(5).Render())
	assert.Equal(t, "True", BoolValue(true).Render())
	assert.Equal(t, "False", BoolValue(false).Render())
	assert.Equal(t, "None", None().Render())
	assert.Equal(t, "plain", StringValue("plain").Render())
	assert.Equal(t, "[1, 'a']", Value{Kind: KindList, Items: []Value{IntValue(1), StringValue("a")}}.Render())
	assert.Equal(t, "(2,)", Value{Kind: KindTuple, Items: []Value{IntValue(2)}}.Render())
}
