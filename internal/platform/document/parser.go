// Package document parses the indentation-based guard document format: a
// restricted subset of YAML covering nested mappings, sequences of scalars or
// objects, quoted and integer scalars, folded strings and comments.
package document

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

const tabWidth = 2

var errEmptyKey = errors.New("empty mapping key")

type line struct {
	indent int
	text   string
}

// Parse never fails: empty or malformed input yields an empty mapping.
func Parse(text string) Value {
	v, err := Decode(text)
	if err != nil {
		return Mapping()
	}
	return v
}

// Decode parses text and reports structural errors.
func Decode(text string) (Value, error) {
	lines := preprocess(text)
	if len(lines) == 0 {
		return Mapping(), nil
	}
	p := &parser{lines: lines}
	v, _, err := p.mapping(0, 0)
	if err != nil {
		return Value{}, err
	}
	return v, nil
}

func preprocess(text string) []line {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\t", strings.Repeat(" ", tabWidth))
	out := []line{}
	for _, raw := range strings.Split(text, "\n") {
		stripped := strings.TrimLeftFunc(raw, unicode.IsSpace)
		if stripped == "" || strings.HasPrefix(stripped, "#") {
			continue
		}
		out = append(out, line{indent: len(raw) - len(stripped), text: stripped})
	}
	return out
}

type parser struct {
	lines []line
}

func isItem(text string) bool {
	return strings.HasPrefix(text, "- ")
}

func (p *parser) mapping(idx, minIndent int) (Value, int, error) {
	out := Mapping()
	for idx < len(p.lines) {
		ln := p.lines[idx]
		if ln.indent < minIndent || isItem(ln.text) {
			break
		}
		key, rest, ok := strings.Cut(ln.text, ":")
		if !ok {
			break
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return Value{}, idx, errEmptyKey
		}
		value, next, err := p.entryValue(idx, ln.indent, rest)
		if err != nil {
			return Value{}, next, err
		}
		out.Set(key, value)
		idx = next
	}
	return out, idx, nil
}

// entryValue resolves what follows "key:" on line idx, consuming nested lines.
func (p *parser) entryValue(idx, indent int, rest string) (Value, int, error) {
	rest = stripInlineComment(strings.TrimSpace(rest))
	switch {
	case rest == ">":
		s, next := p.folded(idx+1, indent+1)
		return String(s), next, nil
	case rest != "":
		return scalar(rest), idx + 1, nil
	}
	idx++
	if idx >= len(p.lines) || p.lines[idx].indent <= indent {
		return Null(), idx, nil
	}
	child := p.lines[idx]
	if isItem(child.text) {
		return p.sequence(idx, child.indent)
	}
	return p.mapping(idx, child.indent)
}

func (p *parser) sequence(idx, minIndent int) (Value, int, error) {
	items := []Value{}
	for idx < len(p.lines) {
		ln := p.lines[idx]
		if ln.indent < minIndent || !isItem(ln.text) {
			break
		}
		content := strings.TrimSpace(ln.text[2:])
		quoted := strings.HasPrefix(content, `"`) || strings.HasPrefix(content, "'")
		key, first, isObject := strings.Cut(content, ":")
		if !isObject || quoted {
			items = append(items, scalar(content))
			idx++
			continue
		}
		obj := Mapping()
		obj.Set(strings.TrimSpace(key), scalar(stripInlineComment(strings.TrimSpace(first))))
		var err error
		obj, idx, err = p.objectItem(obj, idx+1, ln.indent+2)
		if err != nil {
			return Value{}, idx, err
		}
		items = append(items, obj)
	}
	return Sequence(items...), idx, nil
}

// objectItem gathers continuation keys of a "- key: value" item.
func (p *parser) objectItem(obj Value, idx, itemIndent int) (Value, int, error) {
	for idx < len(p.lines) {
		ln := p.lines[idx]
		if ln.indent < itemIndent || isItem(ln.text) {
			break
		}
		key, rest, ok := strings.Cut(ln.text, ":")
		if !ok {
			break
		}
		value, next, err := p.entryValue(idx, ln.indent, rest)
		if err != nil {
			return obj, next, err
		}
		obj.Set(strings.TrimSpace(key), value)
		idx = next
	}
	return obj, idx, nil
}

func (p *parser) folded(idx, minIndent int) (string, int) {
	parts := []string{}
	for idx < len(p.lines) && p.lines[idx].indent >= minIndent {
		parts = append(parts, strings.TrimSpace(p.lines[idx].text))
		idx++
	}
	return strings.Join(parts, " "), idx
}

func scalar(raw string) Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return String("")
	}
	for _, quote := range []string{`"`, "'"} {
		if strings.HasPrefix(s, quote) && strings.HasSuffix(s, quote) {
			if len(s) < 2 {
				return String("")
			}
			return String(s[1 : len(s)-1])
		}
	}
	if n, ok := parseDecimal(s); ok {
		return Int(n)
	}
	return String(s)
}

// parseDecimal reads a base-10 integer with an optional sign. Single
// underscores may separate digits, as in 1_000.
func parseDecimal(s string) (int, bool) {
	if strings.Contains(s, "_") {
		digits := strings.TrimLeft(s, "+-")
		if len(s)-len(digits) > 1 {
			return 0, false
		}
		for i := 0; i < len(digits); i++ {
			if digits[i] != '_' {
				continue
			}
			if i == 0 || i == len(digits)-1 || !isDigit(digits[i-1]) || !isDigit(digits[i+1]) {
				return 0, false
			}
		}
		s = strings.ReplaceAll(s, "_", "")
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// stripInlineComment cuts a "#" that follows whitespace outside quotes.
func stripInlineComment(s string) string {
	var quote rune
	for i, ch := range s {
		switch {
		case ch == '"' || ch == '\'':
			if quote == ch {
				quote = 0
			} else if quote == 0 {
				quote = ch
			}
		case ch == '#' && quote == 0 && i > 0 && (s[i-1] == ' ' || s[i-1] == '\t'):
			return strings.TrimRightFunc(s[:i], unicode.IsSpace)
		}
	}
	return s
}
