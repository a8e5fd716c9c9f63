package textgen

import "strings"

// Kind tags a block so it can be found again with FindBlocks.
type Kind int

const (
	KindUnknown Kind = iota
	KindHeader
	KindImports
	KindEnum
	KindMessage
	KindService
	KindRpc
	KindComment
)

func (k Kind) String() string {
	switch k {
	case KindHeader:
		return "header"
	case KindImports:
		return "imports"
	case KindEnum:
		return "enum"
	case KindMessage:
		return "message"
	case KindService:
		return "service"
	case KindRpc:
		return "rpc"
	case KindComment:
		return "comment"
	default:
		return "unknown"
	}
}

// NewLineKind controls blank lines emitted around a block relative to its
// siblings.
type NewLineKind int

const (
	// NewLineNever emits nothing extra.
	NewLineNever NewLineKind = iota
	// NewLineAlways emits a blank line after the block.
	NewLineAlways
	// NewLineBeforeNextBlock emits a blank line before the next emitted sibling.
	NewLineBeforeNextBlock
	// NewLineIfNotEmpty drops the block entirely when the following sibling
	// renders empty.
	NewLineIfNotEmpty
)

// Block is a node of the text tree. Its children are an ordered list of
// segments: typed blocks pushed by a generator and anonymous blocks holding
// text that was written before them.
type Block struct {
	Kind        Kind
	NewLineKind NewLineKind
	// Owner is an arbitrary object the block was generated for.
	Owner any
	// CheckGenerate, when set and returning false, makes the block render empty.
	CheckGenerate func() bool

	parent        *Block
	blocks        []*Block
	text          *Cursor
	indentChanged bool
}

// NewBlock returns an empty block of the given kind.
func NewBlock(kind Kind) *Block {
	return &Block{Kind: kind, text: NewCursor()}
}

func (b *Block) Parent() *Block   { return b.parent }
func (b *Block) Blocks() []*Block { return b.blocks }
func (b *Block) Text() *Cursor    { return b.text }

// AddBlock appends a child. Text already written to b, or a pending
// indentation change, is first moved into an anonymous segment placed before
// the child so that emission order matches write order.
func (b *Block) AddBlock(child *Block) {
	if b.text.Len() != 0 || b.indentChanged {
		b.indentChanged = false
		segment := &Block{text: b.text.Clone()}
		b.text.Reset()
		b.AddBlock(segment)
	}

	child.parent = b
	b.blocks = append(b.blocks, child)
}

// FindBlocks returns every descendant of the given kind in document order.
func (b *Block) FindBlocks(kind Kind) []*Block {
	var out []*Block
	for _, child := range b.blocks {
		if child.Kind == kind {
			out = append(out, child)
		}
		out = append(out, child.FindBlocks(kind)...)
	}
	return out
}

// Generate renders the block and its children.
func (b *Block) Generate() string {
	if b.CheckGenerate != nil && !b.CheckGenerate() {
		return ""
	}
	if len(b.blocks) == 0 {
		return b.text.String()
	}

	rendered := make([]string, len(b.blocks))
	for i, child := range b.blocks {
		rendered[i] = child.Generate()
	}

	var sb strings.Builder
	var previous *Block
	for i, child := range b.blocks {
		if i+1 < len(b.blocks) && rendered[i+1] == "" && child.NewLineKind == NewLineIfNotEmpty {
			continue
		}
		if rendered[i] == "" {
			continue
		}

		if previous != nil && previous.NewLineKind == NewLineBeforeNextBlock {
			sb.WriteByte('\n')
		}
		sb.WriteString(rendered[i])
		if child.NewLineKind == NewLineAlways {
			sb.WriteByte('\n')
		}
		previous = child
	}

	if b.text.Len() != 0 {
		sb.WriteString(b.text.String())
	}
	return sb.String()
}

// IsEmpty reports whether neither the block nor any descendant holds text.
func (b *Block) IsEmpty() bool {
	for _, child := range b.blocks {
		if !child.IsEmpty() {
			return false
		}
	}
	return b.text.String() == ""
}

func (b *Block) Write(format string, args ...any)     { b.text.Write(format, args...) }
func (b *Block) WriteLine(format string, args ...any) { b.text.WriteLine(format, args...) }
func (b *Block) WriteLineIndent(format string, args ...any) {
	b.text.WriteLineIndent(format, args...)
}
func (b *Block) NewLine()                    { b.text.NewLine() }
func (b *Block) NewLineIfNeeded()            { b.text.NewLineIfNeeded() }
func (b *Block) NeedNewLine()                { b.text.NeedNewLine() }
func (b *Block) ResetNewLine()               { b.text.ResetNewLine() }
func (b *Block) WriteOpenBraceAndIndent()    { b.text.WriteOpenBraceAndIndent() }
func (b *Block) UnindentAndWriteCloseBrace() { b.text.UnindentAndWriteCloseBrace() }

func (b *Block) Indent(columns int) {
	b.indentChanged = true
	b.text.Indent(columns)
}

func (b *Block) Unindent() {
	b.indentChanged = true
	b.text.Unindent()
}
