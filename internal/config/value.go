package config

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ValueKind discriminates the variants of a Value.
type ValueKind int

const (
	// KindNull is a JSON/YAML null.
	KindNull ValueKind = iota
	// KindBool is a boolean scalar.
	KindBool
	// KindNumber is a numeric scalar, stored as its literal text.
	KindNumber
	// KindString is a string scalar.
	KindString
	// KindArray is an ordered sequence of values.
	KindArray
	// KindObject is an ordered list of key/value members.
	KindObject
)

// Member is a single key/value pair of an object Value. Members keep the
// order in which they appeared in the input document.
type Member struct {
	Key   string
	Value Value
}

// Value is a dynamically-typed content value from an outline document,
// modelled as a tagged union so every consumer can switch exhaustively on
// Kind instead of type-asserting interface{} trees.
type Value struct {
	Kind ValueKind

	boolVal bool
	numVal  string
	strVal  string
	arr     []Value
	obj     []Member
}

// Null returns the null Value.
func Null() Value { return Value{Kind: KindNull} }

// Bool builds a boolean Value.
func Bool(b bool) Value { return Value{Kind: KindBool, boolVal: b} }

// Number builds a numeric Value from its literal representation.
func Number(literal string) Value { return Value{Kind: KindNumber, numVal: literal} }

// String builds a string Value.
func String(s string) Value { return Value{Kind: KindString, strVal: s} }

// Array builds an array Value from the given items.
func Array(items ...Value) Value { return Value{Kind: KindArray, arr: items} }

// Object builds an object Value from the given members, preserving order.
func Object(members ...Member) Value { return Value{Kind: KindObject, obj: members} }

// AsString returns the string content and true when the Value is a string.
func (v Value) AsString() (string, bool) {
	if v.Kind != KindString {
		return "", false
	}
	return v.strVal, true
}

// AsBool returns the boolean content and true when the Value is a bool.
func (v Value) AsBool() (bool, bool) {
	if v.Kind != KindBool {
		return false, false
	}
	return v.boolVal, true
}

// NumberLiteral returns the numeric literal and true when the Value is a number.
func (v Value) NumberLiteral() (string, bool) {
	if v.Kind != KindNumber {
		return "", false
	}
	return v.numVal, true
}

// Items returns the elements of an array Value, or nil for other kinds.
func (v Value) Items() []Value {
	if v.Kind != KindArray {
		return nil
	}
	return v.arr
}

// Members returns the members of an object Value, or nil for other kinds.
func (v Value) Members() []Member {
	if v.Kind != KindObject {
		return nil
	}
	return v.obj
}

// Lookup returns the value of the named member of an object Value.
func (v Value) Lookup(key string) (Value, bool) {
	for _, m := range v.obj {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Scalar reports whether the Value is null, bool, number or string.
func (v Value) Scalar() bool {
	switch v.Kind {
	case KindNull, KindBool, KindNumber, KindString:
		return true
	default:
		return false
	}
}

// ScalarText renders a scalar Value as plain text, the form used when a
// scalar lands in a text placeholder.
func (v Value) ScalarText() string {
	switch v.Kind {
	case KindString:
		return v.strVal
	case KindNumber:
		return v.numVal
	case KindBool:
		return strconv.FormatBool(v.boolVal)
	default:
		return ""
	}
}

// UnmarshalYAML decodes a yaml.Node into the tagged union, preserving object
// member order. JSON documents parse through the same path since YAML is a
// superset of JSON.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	return v.fromNode(node)
}

func (v *Value) fromNode(node *yaml.Node) error {
	switch node.Kind {
	case yaml.AliasNode:
		return v.fromNode(node.Alias)
	case yaml.ScalarNode:
		switch node.Tag {
		case "!!null":
			*v = Null()
		case "!!bool":
			b, err := strconv.ParseBool(node.Value)
			if err != nil {
				return fmt.Errorf("line %d: invalid boolean %q", node.Line, node.Value)
			}
			*v = Bool(b)
		case "!!int", "!!float":
			*v = Number(canonicalNumber(node.Value))
		default:
			*v = String(node.Value)
		}
		return nil
	case yaml.SequenceNode:
		items := make([]Value, len(node.Content))
		for i, child := range node.Content {
			if err := items[i].fromNode(child); err != nil {
				return err
			}
		}
		*v = Value{Kind: KindArray, arr: items}
		return nil
	case yaml.MappingNode:
		members := make([]Member, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			var m Member
			m.Key = node.Content[i].Value
			if err := m.Value.fromNode(node.Content[i+1]); err != nil {
				return err
			}
			members = append(members, m)
		}
		*v = Value{Kind: KindObject, obj: members}
		return nil
	default:
		return fmt.Errorf("line %d: unsupported YAML node kind", node.Line)
	}
}

// UnmarshalJSON decodes a JSON value through the YAML decoder so object
// member order is preserved on round trips.
func (v *Value) UnmarshalJSON(data []byte) error {
	return yaml.Unmarshal(data, v)
}

// MarshalJSON renders the Value as compact JSON with members in input order.
func (v Value) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	if err := v.writeJSON(&b); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

// JSON renders the Value as a compact JSON string.
func (v Value) JSON() (string, error) {
	var b strings.Builder
	if err := v.writeJSON(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (v Value) writeJSON(b *strings.Builder) error {
	switch v.Kind {
	case KindNull:
		b.WriteString("null")
	case KindBool:
		b.WriteString(strconv.FormatBool(v.boolVal))
	case KindNumber:
		b.WriteString(v.numVal)
	case KindString:
		enc, err := json.Marshal(v.strVal)
		if err != nil {
			return err
		}
		b.Write(enc)
	case KindArray:
		b.WriteByte('[')
		for i, item := range v.arr {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := item.writeJSON(b); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	case KindObject:
		b.WriteByte('{')
		for i, m := range v.obj {
			if i > 0 {
				b.WriteByte(',')
			}
			enc, err := json.Marshal(m.Key)
			if err != nil {
				return err
			}
			b.Write(enc)
			b.WriteByte(':')
			if err := m.Value.writeJSON(b); err != nil {
				return err
			}
		}
		b.WriteByte('}')
	default:
		return fmt.Errorf("unknown value kind %d", v.Kind)
	}
	return nil
}

// canonicalNumber normalizes a YAML numeric literal into a JSON-safe literal.
// Plain decimal forms pass through untouched so input fidelity is preserved;
// YAML-only forms (hex, underscores) are rewritten.
func canonicalNumber(literal string) string {
	if jsonNumberLiteral(literal) {
		return literal
	}
	if i, err := strconv.ParseInt(literal, 0, 64); err == nil {
		return strconv.FormatInt(i, 10)
	}
	cleaned := strings.ReplaceAll(literal, "_", "")
	if f, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return literal
}

// jsonNumberLiteral reports whether the literal is already a valid JSON number.
func jsonNumberLiteral(s string) bool {
	if s == "" {
		return false
	}
	var n json.Number
	return json.Unmarshal([]byte(s), &n) == nil
}
