package input

import "github.com/Alia5/protosynth/internal/codegen/schema"

// FromModel converts model back into document form, one namespace entry per
// namespace in model.Namespaces order.
func FromModel(model *schema.Model) *Document {
	doc := &Document{}
	index := make(map[string]int)
	for _, ns := range model.Namespaces() {
		index[ns] = len(doc.Namespaces)
		doc.Namespaces = append(doc.Namespaces, Namespace{Name: ns})
	}

	for ns, enums := range model.Enums() {
		out := &doc.Namespaces[index[ns]]
		for _, e := range enums {
			enum := Enum{Name: e.Name}
			for _, entry := range e.Entries {
				enum.Entries = append(enum.Entries, Entry{Label: entry.Label, Value: Value(entry.Value)})
			}
			out.Enums = append(out.Enums, enum)
		}
	}
	for ns, messages := range model.Messages() {
		out := &doc.Namespaces[index[ns]]
		for _, m := range messages {
			out.Messages = append(out.Messages, fromMessage(m))
		}
	}
	for ns, rpcs := range model.Rpcs() {
		out := &doc.Namespaces[index[ns]]
		for _, r := range rpcs {
			out.Rpcs = append(out.Rpcs, fromMessage(r))
		}
	}
	return doc
}

func fromMessage(m schema.Message) Message {
	out := Message{Name: m.Name}
	for _, f := range m.Fields {
		out.Fields = append(out.Fields, Field{Name: f.Name, Type: f.Type.String()})
	}
	return out
}
