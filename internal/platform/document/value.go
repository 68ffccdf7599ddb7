package document

import (
	"strconv"

	"gopkg.in/yaml.v3"
)

type kind int

const (
	kindNull kind = iota
	kindString
	kindInt
	kindMapping
	kindSequence
)

// Value is one node of a parsed document. The zero Value is null.
type Value struct {
	kind  kind
	str   string
	num   int
	keys  []string
	pairs map[string]Value
	items []Value
}

func Null() Value           { return Value{} }
func String(s string) Value { return Value{kind: kindString, str: s} }
func Int(n int) Value       { return Value{kind: kindInt, num: n} }
func Sequence(items ...Value) Value {
	return Value{kind: kindSequence, items: items}
}

// Mapping returns an empty mapping ready for Set.
func Mapping() Value {
	return Value{kind: kindMapping, pairs: map[string]Value{}}
}

func (v Value) IsMapping() bool { return v.kind == kindMapping }

// Set stores key in a mapping, keeping first-insertion order. A repeated key
// replaces the value in place.
func (v *Value) Set(key string, value Value) {
	if v.kind != kindMapping {
		return
	}
	if _, ok := v.pairs[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.pairs[key] = value
}

// Get looks up key in a mapping. Missing keys and non-mappings yield null.
func (v Value) Get(key string) Value {
	if v.kind != kindMapping {
		return Value{}
	}
	return v.pairs[key]
}

// Path walks nested mappings.
func (v Value) Path(keys ...string) Value {
	current := v
	for _, key := range keys {
		current = current.Get(key)
	}
	return current
}

func (v Value) Keys() []string {
	return append([]string(nil), v.keys...)
}

func (v Value) Items() []Value {
	return append([]Value(nil), v.items...)
}

func (v Value) Len() int {
	switch v.kind {
	case kindMapping:
		return len(v.keys)
	case kindSequence:
		return len(v.items)
	default:
		return 0
	}
}

// Str reports scalar text. Ints are rendered in base 10.
func (v Value) Str() (string, bool) {
	switch v.kind {
	case kindString:
		return v.str, true
	case kindInt:
		return strconv.Itoa(v.num), true
	default:
		return "", false
	}
}

func (v Value) StrOr(fallback string) string {
	if s, ok := v.Str(); ok {
		return s
	}
	return fallback
}

// Int reports an integer scalar, also accepting strings that hold one.
func (v Value) Int() (int, bool) {
	switch v.kind {
	case kindInt:
		return v.num, true
	case kindString:
		return parseDecimal(v.str)
	default:
		return 0, false
	}
}

func (v Value) IntOr(fallback int) int {
	if n, ok := v.Int(); ok {
		return n
	}
	return fallback
}

// plain converts the tree into maps, slices and scalars.
func (v Value) plain() any {
	switch v.kind {
	case kindString:
		return v.str
	case kindInt:
		return v.num
	case kindMapping:
		out := make(map[string]any, len(v.keys))
		for _, key := range v.keys {
			out[key] = v.pairs[key].plain()
		}
		return out
	case kindSequence:
		out := make([]any, 0, len(v.items))
		for _, item := range v.items {
			out = append(out, item.plain())
		}
		return out
	default:
		return nil
	}
}

// MarshalYAML renders the tree as a node so mapping order is preserved.
func (v Value) MarshalYAML() (any, error) {
	return v.node(), nil
}

func (v Value) node() *yaml.Node {
	switch v.kind {
	case kindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.str}
	case kindInt:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(v.num)}
	case kindMapping:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, key := range v.keys {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
				v.pairs[key].node(),
			)
		}
		return n
	case kindSequence:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.items {
			n.Content = append(n.Content, item.node())
		}
		return n
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}
