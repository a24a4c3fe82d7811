package params

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type Kind int

const (
	KindNone Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindList
	KindTuple
	KindDict
)

// Value is a restricted literal: a scalar, or a list/tuple/dict of
// literals. It covers exactly what a parameters cell may assign.
type Value struct {
	Kind    Kind
	Bool    bool
	Int     int64
	Float   float64
	Str     string
	Items   []Value
	Entries []DictEntry
}

type DictEntry struct {
	Key   Value
	Value Value
}

func None() Value            { return Value{Kind: KindNone} }
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }
func IntValue(i int64) Value { return Value{Kind: KindInt, Int: i} }
func FloatValue(f float64) Value {
	return Value{Kind: KindFloat, Float: f}
}
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

// Render produces the notebook-source spelling of the value, the same text
// the substituted cell and the output filename carry. Booleans render as
// True/False and strings render unquoted at the top level.
func (v Value) Render() string {
	switch v.Kind {
	case KindString:
		return v.Str
	default:
		return v.repr()
	}
}

func (v Value) repr() string {
	switch v.Kind {
	case KindNone:
		return "None"
	case KindBool:
		if v.Bool {
			return "True"
		}
		return "False"
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return formatFloat(v.Float)
	case KindString:
		return "'" + strings.ReplaceAll(v.Str, "'", "\\'") + "'"
	case KindList, KindTuple:
		open, close := "[", "]"
		if v.Kind == KindTuple {
			open, close = "(", ")"
		}
		parts := make([]string, 0, len(v.Items))
		for _, item := range v.Items {
			parts = append(parts, item.repr())
		}
		if v.Kind == KindTuple && len(parts) == 1 {
			return open + parts[0] + "," + close
		}
		return open + strings.Join(parts, ", ") + close
	case KindDict:
		parts := make([]string, 0, len(v.Entries))
		for _, e := range v.Entries {
			parts = append(parts, e.Key.repr()+": "+e.Value.repr())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return ""
	}
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// AsFloat converts numeric values; everything else reports false.
func (v Value) AsFloat() (float64, bool) {
	switch v.Kind {
	case KindInt:
		return float64(v.Int), true
	case KindFloat:
		return v.Float, true
	default:
		return 0, false
	}
}

func (v Value) AsString() (string, bool) {
	if v.Kind == KindString {
		return v.Str, true
	}
	return "", false
}

func (v Value) AsBool() (bool, bool) {
	if v.Kind == KindBool {
		return v.Bool, true
	}
	return false, false
}

func parseValue(raw json.RawMessage) (Value, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return Value{}, fmt.Errorf("empty value")
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Value{}, errors.WithStack(err)
		}
		return StringValue(s), nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return Value{}, errors.WithStack(err)
		}
		return BoolValue(b), nil
	case 'n':
		return None(), nil
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return Value{}, errors.WithStack(err)
		}
		list := Value{Kind: KindList, Items: make([]Value, 0, len(items))}
		for _, item := range items {
			v, err := parseValue(item)
			if err != nil {
				return Value{}, err
			}
			list.Items = append(list.Items, v)
		}
		return list, nil
	default:
		if !strings.ContainsAny(trimmed, ".eE") {
			i, err := strconv.ParseInt(trimmed, 10, 64)
			if err == nil {
				return IntValue(i), nil
			}
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return Value{}, errors.Wrapf(err, "unsupported value %q", trimmed)
		}
		return FloatValue(f), nil
	}
}
