package params

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrEmptyGridFile  = fmt.Errorf("no parameters found in grid file")
	ErrEmptyValueList = fmt.Errorf("parameter has an empty value list")
)

// Grid maps parameter names to their candidate values, preserving the
// order the names appear in the source JSON.
type Grid struct {
	Keys   []string
	Values map[string][]Value
}

// Param is a single name=value binding.
type Param struct {
	Name  string
	Value Value
}

// Assignment is one concrete combination drawn from a Grid, one entry per
// grid key in grid order. Treated as immutable once built.
type Assignment []Param

func (a Assignment) Get(name string) (Value, bool) {
	for _, p := range a {
		if p.Name == name {
			return p.Value, true
		}
	}
	return Value{}, false
}

// LoadGrid reads a parameter grid from a JSON file of the shape
// {"name": [v1, v2, ...], ...}. Key order in the file is preserved.
func LoadGrid(path string) (*Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return ParseGrid(data)
}

func ParseGrid(data []byte) (*Grid, error) {
	var raw map[string][]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "failed to parse parameter grid")
	}
	if len(raw) == 0 {
		return nil, ErrEmptyGridFile
	}

	keys, err := objectKeyOrder(data)
	if err != nil {
		return nil, err
	}

	grid := &Grid{
		Keys:   keys,
		Values: make(map[string][]Value, len(raw)),
	}
	for _, key := range keys {
		list := raw[key]
		if len(list) == 0 {
			return nil, errors.Wrapf(ErrEmptyValueList, "parameter %q", key)
		}
		values := make([]Value, 0, len(list))
		for _, item := range list {
			v, err := parseValue(item)
			if err != nil {
				return nil, errors.Wrapf(err, "parameter %q", key)
			}
			values = append(values, v)
		}
		grid.Values[key] = values
	}
	return grid, nil
}

// objectKeyOrder scans the top-level JSON object and returns its keys in
// document order, which map decoding discards.
func objectKeyOrder(data []byte) ([]string, error) {
	dec := json.NewDecoder(strings.NewReader(string(data)))
	tok, err := dec.Token()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("parameter grid must be a JSON object")
	}

	keys := make([]string, 0)
	depth := 0
	for dec.More() || depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return nil, errors.WithStack(err)
		}
		switch t := tok.(type) {
		case json.Delim:
			switch t {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		case string:
			if depth == 0 {
				keys = append(keys, t)
				// Skip this key's value entirely.
				var discard json.RawMessage
				if err := dec.Decode(&discard); err != nil {
					return nil, errors.WithStack(err)
				}
			}
		}
		if depth < 0 {
			break
		}
	}
	return keys, nil
}

// Expand produces the cartesian product over all value lists, preserving
// grid key order inside each assignment. An empty grid yields the single
// empty assignment.
func Expand(grid *Grid) []Assignment {
	assignments := []Assignment{{}}
	if grid == nil {
		return assignments
	}
	for _, key := range grid.Keys {
		values := grid.Values[key]
		next := make([]Assignment, 0, len(assignments)*len(values))
		for _, partial := range assignments {
			for _, value := range values {
				combo := make(Assignment, len(partial), len(partial)+1)
				copy(combo, partial)
				combo = append(combo, Param{Name: key, Value: value})
				next = append(next, combo)
			}
		}
		assignments = next
	}
	return assignments
}
