// Package schema holds the in-memory description of messages, enums and rpcs,
// grouped by namespace, that the proto generator renders.
package schema

import (
	"iter"
	"slices"
	"strings"
)

const (
	// Suffix ends every namespace the front-end produces.
	Suffix = ".protobuf"
	// ModelsSuffix replaces Suffix to derive the namespace holding an rpc
	// namespace's request and response messages.
	ModelsSuffix = ".models.protobuf"

	// DefaultNamespace holds the well-known messages every model starts with.
	DefaultNamespace = "data.service.models.protobuf"

	EmptyMessageName     = "Empty"
	TimestampMessageName = "Timestamp"

	// DefaultResultType is the type of the single result field of every
	// synthesized response message.
	DefaultResultType = DefaultNamespace + ".ResultCode"
)

// wellKnownMessages are seeded into DefaultNamespace by NewModel. They are
// copied in and never handed out directly.
var wellKnownMessages = [...]Message{
	{
		Name: TimestampMessageName,
		Fields: []Field{
			{Name: "seconds", Type: PlainType("int64")},
			{Name: "nanos", Type: PlainType("int64")},
		},
	},
	{Name: EmptyMessageName},
}

// ModelsNamespace derives the namespace holding request and response
// messages for the rpcs of ns.
func ModelsNamespace(ns string) string {
	return strings.ReplaceAll(ns, Suffix, ModelsSuffix)
}

// TrimSuffix returns ns without its protobuf suffix.
func TrimSuffix(ns string) string {
	return strings.ReplaceAll(ns, Suffix, "")
}

// FileName is the output file identity of a namespace: the suffix stripped,
// dots turned into underscores and a leading underscore removed.
func FileName(ns string) string {
	name := strings.ReplaceAll(TrimSuffix(ns), ".", "_") + ".proto"
	return strings.TrimPrefix(name, "_")
}

// ImportName is the import path of the file generated for ns, relative to
// the given root.
func ImportName(root, ns string) string {
	return root + FileName(ns)
}

// namespaced is an insertion-ordered namespace -> list mapping.
type namespaced[T any] struct {
	order []string
	items map[string][]T
}

func (n *namespaced[T]) append(ns string, v T) {
	if n.items == nil {
		n.items = make(map[string][]T)
	}
	if _, ok := n.items[ns]; !ok {
		n.order = append(n.order, ns)
	}
	n.items[ns] = append(n.items[ns], v)
}

func (n *namespaced[T]) all() iter.Seq2[string, []T] {
	return func(yield func(string, []T) bool) {
		for _, ns := range n.order {
			if !yield(ns, slices.Clone(n.items[ns])) {
				return
			}
		}
	}
}

// Model is the schema description rendered by the proto generator. The
// iteration order of namespaces and of the declarations within each one is
// insertion order.
type Model struct {
	messages namespaced[Message]
	enums    namespaced[Enum]
	rpcs     namespaced[Message]

	rpcNames   map[string]struct{}
	resultType string
}

type Option func(*Model)

// WithResultType overrides the type of the result field of synthesized
// response messages.
func WithResultType(t string) Option {
	return func(m *Model) {
		if t != "" {
			m.resultType = t
		}
	}
}

// NewModel returns a model seeded with the well-known messages.
func NewModel(opts ...Option) *Model {
	m := &Model{
		rpcNames:   make(map[string]struct{}),
		resultType: DefaultResultType,
	}
	for _, opt := range opts {
		opt(m)
	}
	for _, msg := range wellKnownMessages {
		m.AddMessage(DefaultNamespace, msg)
	}
	return m
}

func (m *Model) ResultType() string { return m.resultType }

// AddMessage appends a message to ns. Uniqueness is the caller's concern.
func (m *Model) AddMessage(ns string, msg Message) {
	m.messages.append(ns, msg.clone())
}

// AddEnum appends an enum to ns. Uniqueness is the caller's concern.
func (m *Model) AddEnum(ns string, e Enum) {
	m.enums.append(ns, e.clone())
}

// AddRpc registers an rpc under ns and ensures its response message, and its
// request message when it takes fields, exist in ModelsNamespace(ns). Rpc
// names are unique across all namespaces; a name seen before is ignored and
// AddRpc reports false.
func (m *Model) AddRpc(ns string, rpc Message) bool {
	if m.HasRpc(rpc.Name) {
		return false
	}

	models := ModelsNamespace(ns)
	response := rpc.Name + "Response"
	if _, ok := m.LookupMessage(models, response); !ok {
		m.AddMessage(models, Message{
			Name:   response,
			Fields: []Field{{Name: "result", Type: PlainType(m.resultType)}},
		})
	}
	if len(rpc.Fields) > 0 {
		request := rpc.Name + "Request"
		if _, ok := m.LookupMessage(models, request); !ok {
			m.AddMessage(models, Message{Name: request, Fields: rpc.Fields})
		}
	}

	m.rpcs.append(ns, rpc.clone())
	m.rpcNames[rpc.Name] = struct{}{}
	return true
}

// HasRpc reports whether an rpc of that name is registered in any namespace.
func (m *Model) HasRpc(name string) bool {
	_, ok := m.rpcNames[name]
	return ok
}

// LookupMessage finds a message by name within ns.
func (m *Model) LookupMessage(ns, name string) (Message, bool) {
	for _, msg := range m.messages.items[ns] {
		if msg.Name == name {
			return msg.clone(), true
		}
	}
	return Message{}, false
}

func (m *Model) Messages() iter.Seq2[string, []Message] { return m.messages.all() }
func (m *Model) Enums() iter.Seq2[string, []Enum]       { return m.enums.all() }
func (m *Model) Rpcs() iter.Seq2[string, []Message]     { return m.rpcs.all() }

// Namespaces lists every namespace with at least one declaration, enums
// first, then messages, then rpcs.
func (m *Model) Namespaces() []string {
	var out []string
	seen := make(map[string]struct{})
	for _, order := range [][]string{m.enums.order, m.messages.order, m.rpcs.order} {
		for _, ns := range order {
			if _, ok := seen[ns]; ok {
				continue
			}
			seen[ns] = struct{}{}
			out = append(out, ns)
		}
	}
	return out
}
