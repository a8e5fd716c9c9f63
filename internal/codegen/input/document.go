// Package input decodes model files, the declarations a front-end extracted
// from native sources, and assembles them into a schema.Model.
//
// A model file is a JSON, YAML or TOML document (chosen by extension):
//
//	namespaces:
//	  - name: svc.protobuf
//	    enums:    [{name: Status, entries: [{label: Active, value: 1}]}]
//	    messages: [{name: Item, fields: [{name: id, type: int64}]}]
//	    rpcs:     [{name: GetItem, fields: [{name: id, type: int64}]}]
package input

import (
	"bytes"
	"encoding/json"
	"fmt"

	yaml "gopkg.in/yaml.v3"
)

type Document struct {
	Namespaces []Namespace `json:"namespaces" yaml:"namespaces" toml:"namespaces"`
}

type Namespace struct {
	Name     string    `json:"name" yaml:"name" toml:"name"`
	Enums    []Enum    `json:"enums,omitempty" yaml:"enums,omitempty" toml:"enums,omitempty"`
	Messages []Message `json:"messages,omitempty" yaml:"messages,omitempty" toml:"messages,omitempty"`
	Rpcs     []Message `json:"rpcs,omitempty" yaml:"rpcs,omitempty" toml:"rpcs,omitempty"`
}

type Enum struct {
	Name    string  `json:"name" yaml:"name" toml:"name"`
	Entries []Entry `json:"entries" yaml:"entries" toml:"entries"`
}

type Entry struct {
	Label string `json:"label" yaml:"label" toml:"label"`
	Value Value  `json:"value" yaml:"value" toml:"value"`
}

// Message describes a message or an rpc. An empty Type marks a field whose
// type the front-end could not resolve.
type Message struct {
	Name   string  `json:"name" yaml:"name" toml:"name"`
	Fields []Field `json:"fields,omitempty" yaml:"fields,omitempty" toml:"fields,omitempty"`
}

type Field struct {
	Name string `json:"name" yaml:"name" toml:"name"`
	Type string `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
}

// Value is an enum value as written in the source. JSON and YAML accept it
// either as a number or as a string.
type Value string

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Value(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("enum value must be a number or a string: %s", data)
	}
	*v = Value(n.String())
	return nil
}

func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: enum value must be a scalar", node.Line)
	}
	*v = Value(node.Value)
	return nil
}

func (v *Value) UnmarshalText(text []byte) error {
	*v = Value(text)
	return nil
}
