package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedType is returned by ParseFieldType for type expressions outside
// the plain / repeated / map grammar.
var ErrMalformedType = errors.New("malformed field type")

// TypeKind discriminates the shapes a field type can take.
type TypeKind int

const (
	// Unresolved marks a field whose type the front-end could not map. A
	// message holding one is never emitted.
	Unresolved TypeKind = iota
	Plain
	Repeated
	Map
)

// FieldType is a parsed field type expression.
//
//	int64               Plain    Name=int64
//	repeated a.b.Foo    Repeated Name=a.b.Foo
//	map<a.b.K, c.d.V>   Map      Key=a.b.K Value=c.d.V
type FieldType struct {
	Kind  TypeKind
	Name  string
	Key   string
	Value string
}

// PlainType is shorthand for a resolved plain type.
func PlainType(name string) FieldType {
	return FieldType{Kind: Plain, Name: name}
}

// ParseFieldType parses a type expression. An empty expression yields an
// Unresolved type.
func ParseFieldType(s string) (FieldType, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return FieldType{}, nil
	}

	if rest, ok := strings.CutPrefix(s, "repeated "); ok {
		elem := strings.TrimSpace(rest)
		if !isTypeName(elem) {
			return FieldType{}, fmt.Errorf("%w: %q", ErrMalformedType, s)
		}
		return FieldType{Kind: Repeated, Name: elem}, nil
	}

	if rest, ok := strings.CutPrefix(s, "map<"); ok {
		inner, ok := strings.CutSuffix(rest, ">")
		if !ok {
			return FieldType{}, fmt.Errorf("%w: %q: unterminated map", ErrMalformedType, s)
		}
		key, value, ok := strings.Cut(inner, ",")
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if !ok || !isTypeName(key) || !isTypeName(value) {
			return FieldType{}, fmt.Errorf("%w: %q: expected map<K, V>", ErrMalformedType, s)
		}
		return FieldType{Kind: Map, Key: key, Value: value}, nil
	}

	if !isTypeName(s) {
		return FieldType{}, fmt.Errorf("%w: %q", ErrMalformedType, s)
	}
	return FieldType{Kind: Plain, Name: s}, nil
}

func isTypeName(s string) bool {
	return s != "" && !strings.ContainsAny(s, " \t<>,")
}

// Resolved reports whether the type was mapped by the front-end.
func (t FieldType) Resolved() bool { return t.Kind != Unresolved }

func (t FieldType) String() string {
	switch t.Kind {
	case Plain:
		return t.Name
	case Repeated:
		return "repeated " + t.Name
	case Map:
		return "map<" + t.Key + ", " + t.Value + ">"
	default:
		return ""
	}
}

// Namespaces returns the namespaces of the dotted type names the expression
// refers to, in order of appearance. Scalar names contribute nothing.
func (t FieldType) Namespaces() []string {
	var names []string
	switch t.Kind {
	case Plain, Repeated:
		names = []string{t.Name}
	case Map:
		names = []string{t.Key, t.Value}
	}

	var out []string
	for _, name := range names {
		if i := strings.LastIndexByte(name, '.'); i > 0 {
			out = append(out, name[:i])
		}
	}
	return out
}

// Field is a single message field. Field numbers are assigned from field
// order at render time.
type Field struct {
	Name string
	Type FieldType
}

// Message is a message declaration, also used as the shape of an rpc
// descriptor (name plus input fields).
type Message struct {
	Name   string
	Fields []Field
}

// HasUnresolved reports whether any field has an unresolved type.
func (m Message) HasUnresolved() bool {
	for _, f := range m.Fields {
		if !f.Type.Resolved() {
			return true
		}
	}
	return false
}

// Ready reports whether the message has at least one field and all of them
// are resolved.
func (m Message) Ready() bool {
	return len(m.Fields) > 0 && !m.HasUnresolved()
}

func (m Message) clone() Message {
	m.Fields = append([]Field(nil), m.Fields...)
	return m
}

// EnumEntry is a label and its numeric value as written by the front-end.
type EnumEntry struct {
	Label string
	Value string
}

type Enum struct {
	Name    string
	Entries []EnumEntry
}

func (e Enum) clone() Enum {
	e.Entries = append([]EnumEntry(nil), e.Entries...)
	return e
}
