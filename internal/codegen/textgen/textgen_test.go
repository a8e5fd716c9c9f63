package textgen

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textBlock(text string, nl NewLineKind) *Block {
	b := NewBlock(KindUnknown)
	b.Write("%s", text)
	b.NewLineKind = nl
	return b
}

func TestCursorIndentsNonBlankLines(t *testing.T) {
	c := NewCursor()
	c.Write("message Foo ")
	c.WriteOpenBraceAndIndent()
	c.WriteLine("int64 id = %d;", 1)
	c.Write("\n")
	c.WriteLine("string name = 2;")
	c.UnindentAndWriteCloseBrace()

	want := "message Foo {\n    int64 id = 1;\n\n    string name = 2;\n}\n"
	if diff := cmp.Diff(want, c.String()); diff != "" {
		t.Errorf("unexpected output (-want +got):\n%s", diff)
	}
	assert.True(t, c.IsStartOfLine())
	assert.Equal(t, 0, c.Indentation())
}

func TestCursorNewLineIfNeeded(t *testing.T) {
	c := NewCursor()
	c.Write("a")
	c.NewLineIfNeeded()
	c.NeedNewLine()
	assert.True(t, c.NeedsNewLine())
	c.NewLineIfNeeded()
	c.NeedNewLine()
	c.ResetNewLine()
	c.NewLineIfNeeded()
	c.WriteLineIndent("b")
	c.Unindent()

	assert.Equal(t, "a\n    b\n", c.String())
	assert.False(t, c.NeedsNewLine())
	assert.Equal(t, 0, c.Indentation())
}

func TestBlockGenerateNewLinePolicies(t *testing.T) {
	tests := []struct {
		name     string
		children []*Block
		expected string
	}{
		{
			name: "empty if-not-empty block is skipped",
			children: []*Block{
				textBlock("x", NewLineAlways),
				textBlock("", NewLineIfNotEmpty),
				textBlock("y", NewLineNever),
			},
			expected: "x\ny",
		},
		{
			name: "if-not-empty block is dropped when the next block is empty",
			children: []*Block{
				textBlock("x", NewLineAlways),
				textBlock("b", NewLineIfNotEmpty),
				textBlock("", NewLineNever),
			},
			expected: "x\n",
		},
		{
			name: "if-not-empty block is kept when the next block has text",
			children: []*Block{
				textBlock("b", NewLineIfNotEmpty),
				textBlock("c", NewLineNever),
			},
			expected: "bc",
		},
		{
			name: "before-next-block separates emitted siblings",
			children: []*Block{
				textBlock("a\n", NewLineBeforeNextBlock),
				textBlock("", NewLineNever),
				textBlock("b\n", NewLineNever),
			},
			expected: "a\n\nb\n",
		},
		{
			name: "before-next-block on the last block adds nothing",
			children: []*Block{
				textBlock("a\n", NewLineNever),
				textBlock("b\n", NewLineBeforeNextBlock),
			},
			expected: "a\nb\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parent := NewBlock(KindUnknown)
			for _, child := range tt.children {
				parent.AddBlock(child)
			}
			assert.Equal(t, tt.expected, parent.Generate())
		})
	}
}

func TestAddBlockDemotesWrittenText(t *testing.T) {
	g := NewGenerator()
	g.Write("a")
	g.PushBlock(KindHeader, nil)
	g.Write("b")
	g.PopBlock(NewLineNever)
	g.Write("c")

	blocks := g.Root().Blocks()
	require.Len(t, blocks, 2)
	assert.Equal(t, KindUnknown, blocks[0].Kind)
	assert.Equal(t, "a", blocks[0].Text().String())
	assert.Equal(t, KindHeader, blocks[1].Kind)
	assert.Equal(t, "abc", g.Generate())
}

func TestAddBlockDemotesIndentChange(t *testing.T) {
	g := NewGenerator()
	g.Indent(DefaultIndentation)
	g.PushBlock(KindMessage, nil)
	g.WriteLine("x")
	g.PopBlock(NewLineNever)

	require.Len(t, g.Root().Blocks(), 2)
	assert.Equal(t, "    x\n", g.Generate())
}

func TestPushBlockInheritsLineState(t *testing.T) {
	g := NewGenerator()
	g.Write("enum E ")
	g.WriteOpenBraceAndIndent()
	g.NeedNewLine()
	b := g.PushBlock(KindEnum, "owner")
	assert.Equal(t, DefaultIndentation, g.Indentation())
	assert.True(t, g.NeedsNewLine())
	assert.True(t, b.Text().IsStartOfLine())
	g.ResetNewLine()
	g.WriteLine("A = 0;")
	popped := g.PopBlock(NewLineNever)
	g.UnindentAndWriteCloseBrace()

	assert.Same(t, b, popped)
	assert.Equal(t, "owner", popped.Owner)
	assert.Equal(t, "enum E {\n    A = 0;\n}\n", g.Generate())
}

func TestFindBlocksDocumentOrder(t *testing.T) {
	g := NewGenerator()
	g.PushBlock(KindMessage, "outer")
	g.PushBlock(KindMessage, "inner")
	g.PopBlock(NewLineNever)
	g.PushBlock(KindEnum, "enum")
	g.PopBlock(NewLineNever)
	g.PopBlock(NewLineNever)
	g.PushBlock(KindMessage, "last")
	g.PopBlock(NewLineNever)

	var owners []any
	for _, b := range g.FindBlocks(KindMessage) {
		owners = append(owners, b.Owner)
	}
	assert.Equal(t, []any{"outer", "inner", "last"}, owners)

	enum, err := g.FindBlock(KindEnum)
	require.NoError(t, err)
	assert.Equal(t, "enum", enum.Owner)

	missing, err := g.FindBlock(KindService)
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = g.FindBlock(KindMessage)
	assert.ErrorIs(t, err, ErrAmbiguousBlock)
}

func TestIsEmpty(t *testing.T) {
	parent := NewBlock(KindUnknown)
	assert.True(t, parent.IsEmpty())

	parent.AddBlock(textBlock("", NewLineAlways))
	assert.True(t, parent.IsEmpty())

	child := NewBlock(KindUnknown)
	child.AddBlock(textBlock("z", NewLineNever))
	parent.AddBlock(child)
	assert.False(t, parent.IsEmpty())
}

func TestCheckGenerate(t *testing.T) {
	enabled := false
	b := textBlock("hidden", NewLineNever)
	b.CheckGenerate = func() bool { return enabled }

	parent := NewBlock(KindUnknown)
	parent.AddBlock(b)
	assert.Equal(t, "", parent.Generate())

	enabled = true
	assert.Equal(t, "hidden", parent.Generate())
}

func TestPopRootPanics(t *testing.T) {
	g := NewGenerator()
	assert.Panics(t, func() { g.PopBlock(NewLineNever) })
}

func TestReset(t *testing.T) {
	g := NewGenerator()
	g.PushBlock(KindHeader, nil)
	g.WriteLine("syntax = \"proto3\";")
	g.PopBlock(NewLineNever)
	g.Reset()

	assert.Equal(t, "", g.Generate())
	assert.Empty(t, g.FindBlocks(KindHeader))
	assert.Same(t, g.Root(), g.Active())
}

func TestWriteLines(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		trim     bool
		expected string
	}{
		{
			name:     "mixed line breaks with common indent",
			text:     "\n\n    a\n      b\r\n    c\r    d",
			trim:     true,
			expected: "a\n  b\nc\nd\n",
		},
		{
			name:     "no trimming keeps indentation",
			text:     "  a\n  b",
			trim:     false,
			expected: "  a\n  b\n",
		},
		{
			name:     "interior and trailing blank lines are kept",
			text:     "\n  a\n\n  b\n",
			trim:     true,
			expected: "a\n\nb\n\n",
		},
		{
			name:     "whitespace-only leading line is not dropped",
			text:     "  \nfoo",
			trim:     true,
			expected: "  \nfoo\n",
		},
		{
			name:     "shorter lines are written unchanged",
			text:     "      a\n b\n      c",
			trim:     true,
			expected: "     a\nb\n     c\n",
		},
		{
			name:     "indent width counts characters",
			text:     "\u3000a\n    b",
			trim:     true,
			expected: "a\n   b\n",
		},
		{
			name:     "percent signs are written literally",
			text:     "  100%\n  %d%%",
			trim:     true,
			expected: "100%\n%d%%\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGenerator()
			g.WriteLines(tt.text, tt.trim)
			if diff := cmp.Diff(tt.expected, g.Generate()); diff != "" {
				t.Errorf("unexpected output (-want +got):\n%s", diff)
			}
		})
	}
}
