package textgen

import (
	"errors"
	"fmt"
	"math"
	"unicode"
)

// ErrAmbiguousBlock is returned by FindBlock when more than one block matches.
var ErrAmbiguousBlock = errors.New("more than one block of kind")

// Generator is a builder over a Block tree. Writes go to the active block;
// PushBlock and PopBlock move the active block down and up the tree.
type Generator struct {
	root   *Block
	active *Block
}

func NewGenerator() *Generator {
	root := NewBlock(KindUnknown)
	return &Generator{root: root, active: root}
}

func (g *Generator) Root() *Block   { return g.root }
func (g *Generator) Active() *Block { return g.active }

// Indentation is the current indentation of the active block.
func (g *Generator) Indentation() int { return g.active.text.Indentation() }

// Generate renders the whole tree.
func (g *Generator) Generate() string {
	return g.root.Generate()
}

// Reset drops everything written so far. The indentation of the root is kept.
func (g *Generator) Reset() {
	text := g.root.text.Clone()
	text.Reset()
	g.root = &Block{text: text}
	g.active = g.root
}

// AddBlock adds a finished block under the active block without making it
// active.
func (g *Generator) AddBlock(b *Block) {
	g.active.AddBlock(b)
}

// PushBlock opens a child block of the given kind under the active block and
// makes it active. The child starts with the active block's indentation and
// line state.
func (g *Generator) PushBlock(kind Kind, owner any) *Block {
	b := NewBlock(kind)
	b.Owner = owner
	b.text.indentation = g.active.text.indentation
	b.text.startOfLine = g.active.text.startOfLine
	b.text.needsNewLine = g.active.text.needsNewLine
	g.Push(b)
	return b
}

// Push adds b under the active block and makes it active.
func (g *Generator) Push(b *Block) {
	g.active.AddBlock(b)
	g.active = b
}

// PopBlock closes the active block with the given newline policy and returns
// it. Popping the root is a programming error.
func (g *Generator) PopBlock(nl NewLineKind) *Block {
	b := g.active
	if b.parent == nil {
		panic("textgen: PopBlock called on the root block")
	}
	b.NewLineKind = nl
	g.active = b.parent
	return b
}

func (g *Generator) FindBlocks(kind Kind) []*Block {
	return g.root.FindBlocks(kind)
}

// FindBlock returns the only block of the given kind, or nil if there is none.
func (g *Generator) FindBlock(kind Kind) (*Block, error) {
	blocks := g.root.FindBlocks(kind)
	switch len(blocks) {
	case 0:
		return nil, nil
	case 1:
		return blocks[0], nil
	default:
		return nil, fmt.Errorf("%w %s: found %d", ErrAmbiguousBlock, kind, len(blocks))
	}
}

func (g *Generator) Write(format string, args ...any)     { g.active.Write(format, args...) }
func (g *Generator) WriteLine(format string, args ...any) { g.active.WriteLine(format, args...) }
func (g *Generator) WriteLineIndent(format string, args ...any) {
	g.active.WriteLineIndent(format, args...)
}

// WriteLines writes a multi-line string line by line. Lines are split on
// "\r\n", "\r" and "\n". Empty lines before the first non-empty one are
// dropped. With trimIndent, the smallest leading-whitespace width found on
// any line is stripped from every line long enough to have it.
func (g *Generator) WriteLines(text string, trimIndent bool) {
	lines := splitLines(text)
	indentation := math.MaxInt

	if trimIndent {
		for _, line := range lines {
			width := 0
			for _, r := range line {
				if !unicode.IsSpace(r) {
					indentation = min(indentation, width)
					break
				}
				width++
			}
		}
	}

	foundNonEmpty := false
	for _, line := range lines {
		if !foundNonEmpty && line == "" {
			continue
		}
		if runes := []rune(line); len(runes) >= indentation {
			line = string(runes[indentation:])
		}
		g.WriteLine("%s", line)
		foundNonEmpty = true
	}
}

func splitLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\r':
			lines = append(lines, text[start:i])
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			start = i + 1
		case '\n':
			lines = append(lines, text[start:i])
			start = i + 1
		}
	}
	return append(lines, text[start:])
}

func (g *Generator) NewLine()                    { g.active.NewLine() }
func (g *Generator) NewLineIfNeeded()            { g.active.NewLineIfNeeded() }
func (g *Generator) NeedNewLine()                { g.active.NeedNewLine() }
func (g *Generator) ResetNewLine()               { g.active.ResetNewLine() }
func (g *Generator) NeedsNewLine() bool          { return g.active.text.NeedsNewLine() }
func (g *Generator) Indent(columns int)          { g.active.Indent(columns) }
func (g *Generator) Unindent()                   { g.active.Unindent() }
func (g *Generator) WriteOpenBraceAndIndent()    { g.active.WriteOpenBraceAndIndent() }
func (g *Generator) UnindentAndWriteCloseBrace() { g.active.UnindentAndWriteCloseBrace() }
