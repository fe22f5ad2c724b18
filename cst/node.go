// Package cst holds the concrete syntax tree consumed by the builder. Node kinds
// follow tree-sitter-java names; forms the Java grammar lacks (closures,
// interpolated strings, list and map literals, ...) use kinds in the same
// style. Trees come from the tree-sitter adapter or from the constructors in
// build.go.
package cst

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Position is a 1-based line and character column
type Position struct {
	Line   int
	Column int
}

// Node is a concrete syntax tree node. Leaves carry token text; anonymous
// leaves are punctuation and keywords whose kind equals their text.
type Node struct {
	kind     string
	field    string
	text     string
	named    bool
	start    Position
	end      Position
	children []*Node
	parent   *Node
}

func (n *Node) Kind() string {
	return n.kind
}

// FieldName is the name of the grammar field that holds n in its parent
func (n *Node) FieldName() string {
	return n.field
}

func (n *Node) IsNamed() bool {
	return n.named
}

func (n *Node) IsLeaf() bool {
	return len(n.children) == 0
}

func (n *Node) Parent() *Node {
	return n.parent
}

// Text returns the source text of the node. Internal nodes without recorded
// source concatenate the text of their leaves.
func (n *Node) Text() string {
	if n.text != "" || n.IsLeaf() {
		return n.text
	}
	var sb strings.Builder
	for _, leaf := range n.Leaves() {
		sb.WriteString(leaf.text)
	}
	return sb.String()
}

func (n *Node) Children() []*Node {
	return n.children
}

func (n *Node) ChildCount() int {
	return len(n.children)
}

// Child returns the i-th child or nil when out of range
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

func (n *Node) NamedChildren() []*Node {
	var out []*Node
	for _, c := range n.children {
		if c.named {
			out = append(out, c)
		}
	}
	return out
}

// ChildByFieldName returns the first child held in the given field
func (n *Node) ChildByFieldName(name string) *Node {
	for _, c := range n.children {
		if c.field == name {
			return c
		}
	}
	return nil
}

func (n *Node) ChildrenByFieldName(name string) []*Node {
	var out []*Node
	for _, c := range n.children {
		if c.field == name {
			out = append(out, c)
		}
	}
	return out
}

// FirstChildOfKind returns the first child whose kind is one of kinds
func (n *Node) FirstChildOfKind(kinds ...string) *Node {
	for _, c := range n.children {
		for _, k := range kinds {
			if c.kind == k {
				return c
			}
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind string) []*Node {
	var out []*Node
	for _, c := range n.children {
		if c.kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// HasChild reports whether n has a direct child of the given kind
func (n *Node) HasChild(kind string) bool {
	return n.FirstChildOfKind(kind) != nil
}

// Leaves returns the tokens under n in source order
func (n *Node) Leaves() []*Node {
	if n.IsLeaf() {
		return []*Node{n}
	}
	var out []*Node
	for _, c := range n.children {
		out = append(out, c.Leaves()...)
	}
	return out
}

// StartToken returns the first token of n
func (n *Node) StartToken() *Node {
	for n != nil && !n.IsLeaf() {
		n = n.children[0]
	}
	return n
}

// EndToken returns the last token of n
func (n *Node) EndToken() *Node {
	for n != nil && !n.IsLeaf() {
		n = n.children[len(n.children)-1]
	}
	return n
}

func (n *Node) Start() Position {
	return n.start
}

// End is the position just past the last character of n
func (n *Node) End() Position {
	return n.end
}

// ToSexp renders n as an s-expression of named nodes, like tree-sitter does
func (n *Node) ToSexp() string {
	var sb strings.Builder
	n.writeSexp(&sb)
	return sb.String()
}

func (n *Node) writeSexp(sb *strings.Builder) {
	if n.field != "" {
		sb.WriteString(n.field)
		sb.WriteString(": ")
	}
	sb.WriteByte('(')
	sb.WriteString(n.kind)
	for _, c := range n.children {
		if !c.named {
			continue
		}
		sb.WriteByte(' ')
		c.writeSexp(sb)
	}
	sb.WriteByte(')')
}

// TextWidth counts user-perceived characters
func TextWidth(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// Advance returns the position reached after text starting at p
func Advance(p Position, text string) Position {
	if i := strings.LastIndexByte(text, '\n'); i >= 0 {
		return Position{
			Line:   p.Line + strings.Count(text, "\n"),
			Column: TextWidth(text[i+1:]) + 1,
		}
	}
	return Position{Line: p.Line, Column: p.Column + TextWidth(text)}
}
