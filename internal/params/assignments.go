package params

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseAssignments extracts `name = literal` statements from a parameters
// cell's source. The accepted grammar is deliberately restricted: plain or
// annotated assignments of literal values (numbers with optional sign,
// strings, booleans, None, and tuples/lists/dicts of those). Statements
// that do not fit, including any non-literal right-hand side, are skipped
// rather than evaluated. Name order follows source order; a re-assigned
// name keeps its first position with the last value.
func ParseAssignments(src string) Assignment {
	result := Assignment{}
	for _, line := range strings.Split(src, "\n") {
		p := &literalParser{input: line}
		p.skipSpace()

		name, ok := p.ident()
		if !ok {
			continue
		}
		p.skipSpace()

		// Optional `: annotation` before the equals sign.
		if p.peek() == ':' {
			p.pos++
			for p.pos < len(p.input) && p.peek() != '=' {
				p.pos++
			}
		}
		if p.peek() != '=' {
			continue
		}
		p.pos++
		if p.peek() == '=' {
			continue
		}
		p.skipSpace()

		value, ok := p.literal()
		if !ok {
			continue
		}
		p.skipSpace()
		if p.rest() != "" && !strings.HasPrefix(p.rest(), "#") {
			continue
		}

		replaced := false
		for i, existing := range result {
			if existing.Name == name {
				result[i].Value = value
				replaced = true
				break
			}
		}
		if !replaced {
			result = append(result, Param{Name: name, Value: value})
		}
	}
	return result
}

type literalParser struct {
	input string
	pos   int
}

func (p *literalParser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *literalParser) rest() string {
	if p.pos >= len(p.input) {
		return ""
	}
	return p.input[p.pos:]
}

func (p *literalParser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

func (p *literalParser) ident() (string, bool) {
	start := p.pos
	for p.pos < len(p.input) {
		c := rune(p.input[p.pos])
		if unicode.IsLetter(c) || c == '_' || (p.pos > start && unicode.IsDigit(c)) {
			p.pos++
			continue
		}
		break
	}
	if p.pos == start {
		return "", false
	}
	return p.input[start:p.pos], true
}

func (p *literalParser) literal() (Value, bool) {
	p.skipSpace()
	switch c := p.peek(); {
	case c == '\'' || c == '"':
		return p.stringLiteral()
	case c == '(' || c == '[':
		return p.sequenceLiteral()
	case c == '{':
		return p.dictLiteral()
	case c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9'):
		return p.numberLiteral()
	default:
		return p.wordLiteral()
	}
}

func (p *literalParser) stringLiteral() (Value, bool) {
	quote := p.peek()
	p.pos++
	var sb strings.Builder
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c == '\\' && p.pos+1 < len(p.input) {
			next := p.input[p.pos+1]
			switch next {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			default:
				sb.WriteByte(next)
			}
			p.pos += 2
			continue
		}
		if c == quote {
			p.pos++
			return StringValue(sb.String()), true
		}
		sb.WriteByte(c)
		p.pos++
	}
	return Value{}, false
}

func (p *literalParser) numberLiteral() (Value, bool) {
	start := p.pos
	if p.peek() == '-' || p.peek() == '+' {
		p.pos++
	}
	seenDigit := false
	seenDot := false
	seenExp := false
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		switch {
		case c >= '0' && c <= '9':
			seenDigit = true
		case c == '.' && !seenDot && !seenExp:
			seenDot = true
		case (c == 'e' || c == 'E') && seenDigit && !seenExp:
			seenExp = true
			if p.pos+1 < len(p.input) && (p.input[p.pos+1] == '-' || p.input[p.pos+1] == '+') {
				p.pos++
			}
		case c == '_' && seenDigit:
			// Python digit separator.
		default:
			goto done
		}
		p.pos++
	}
done:
	if !seenDigit {
		return Value{}, false
	}
	text := strings.ReplaceAll(p.input[start:p.pos], "_", "")
	if !seenDot && !seenExp {
		i, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return Value{}, false
		}
		return IntValue(i), true
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Value{}, false
	}
	return FloatValue(f), true
}

func (p *literalParser) wordLiteral() (Value, bool) {
	word, ok := p.ident()
	if !ok {
		return Value{}, false
	}
	switch word {
	case "True":
		return BoolValue(true), true
	case "False":
		return BoolValue(false), true
	case "None":
		return None(), true
	default:
		return Value{}, false
	}
}

func (p *literalParser) sequenceLiteral() (Value, bool) {
	open := p.peek()
	closing := byte(')')
	kind := KindTuple
	if open == '[' {
		closing = ']'
		kind = KindList
	}
	p.pos++

	items := make([]Value, 0)
	for {
		p.skipSpace()
		if p.peek() == closing {
			p.pos++
			return Value{Kind: kind, Items: items}, true
		}
		item, ok := p.literal()
		if !ok {
			return Value{}, false
		}
		items = append(items, item)
		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case closing:
		default:
			return Value{}, false
		}
	}
}

func (p *literalParser) dictLiteral() (Value, bool) {
	p.pos++
	entries := make([]DictEntry, 0)
	for {
		p.skipSpace()
		if p.peek() == '}' {
			p.pos++
			return Value{Kind: KindDict, Entries: entries}, true
		}
		key, ok := p.literal()
		if !ok {
			return Value{}, false
		}
		p.skipSpace()
		if p.peek() != ':' {
			return Value{}, false
		}
		p.pos++
		value, ok := p.literal()
		if !ok {
			return Value{}, false
		}
		entries = append(entries, DictEntry{Key: key, Value: value})
		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case '}':
		default:
			return Value{}, false
		}
	}
}
