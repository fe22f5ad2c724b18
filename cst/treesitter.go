package cst

import (
	"errors"
	"fmt"

	"github.com/rivo/uniseg"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
)

// ErrSyntax is returned by ParseJava when the parser had to recover
var ErrSyntax = errors.New("syntax error")

// tokens whose inner structure the builder does not need
var collapsedKinds = map[string]bool{
	"string_literal":    true,
	"character_literal": true,
}

var commentKinds = map[string]bool{
	"line_comment":  true,
	"block_comment": true,
}

// ParseJava parses Java-compatible source with tree-sitter and converts the
// result. Trees containing error or missing nodes are rejected.
func ParseJava(source []byte) (*Node, error) {
	parser := tree_sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(tree_sitter.NewLanguage(tree_sitter_java.Language()))
	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, errors.New("tree-sitter returned no tree")
	}
	defer tree.Close()

	root := tree.RootNode()
	conv := newConverter(source)
	if root.HasError() {
		if bad := firstError(root); bad != nil {
			pos := conv.position(bad.StartPosition())
			return nil, fmt.Errorf("%w at %d:%d near %q", ErrSyntax, pos.Line, pos.Column, bad.Utf8Text(source))
		}
		return nil, ErrSyntax
	}
	return conv.convert(root, ""), nil
}

// FromTreeSitter converts a tree-sitter node and its descendants
func FromTreeSitter(node *tree_sitter.Node, source []byte) *Node {
	return newConverter(source).convert(node, "")
}

func firstError(node *tree_sitter.Node) *tree_sitter.Node {
	if node.IsError() || node.IsMissing() {
		return node
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		if bad := firstError(node.Child(i)); bad != nil {
			return bad
		}
	}
	return nil
}

type converter struct {
	source     []byte
	lineStarts []int
}

func newConverter(source []byte) *converter {
	starts := []int{0}
	for i, b := range source {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &converter{source: source, lineStarts: starts}
}

// position turns a row and byte column into a 1-based line and character
// column.
func (c *converter) position(p tree_sitter.Point) Position {
	row := int(p.Row)
	if row >= len(c.lineStarts) {
		return Position{Line: row + 1, Column: int(p.Column) + 1}
	}
	lineStart := c.lineStarts[row]
	end := lineStart + int(p.Column)
	if end > len(c.source) {
		end = len(c.source)
	}
	return Position{Line: row + 1, Column: uniseg.GraphemeClusterCount(string(c.source[lineStart:end])) + 1}
}

func (c *converter) convert(ts *tree_sitter.Node, field string) *Node {
	n := &Node{
		kind:  ts.Kind(),
		field: field,
		named: ts.IsNamed(),
		start: c.position(ts.StartPosition()),
		end:   c.position(ts.EndPosition()),
		text:  ts.Utf8Text(c.source),
	}
	if collapsedKinds[n.kind] {
		return n
	}
	for i := uint(0); i < ts.ChildCount(); i++ {
		child := ts.Child(i)
		if child == nil || commentKinds[child.Kind()] {
			continue
		}
		n.Append(c.convert(child, ts.FieldNameForChild(uint32(i))))
	}
	return n
}
