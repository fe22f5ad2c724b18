// Package ast defines the abstract syntax tree produced from a concrete syntax
// tree by the builder package. Every node carries a source span.
package ast

import "fmt"

// Span is a source range. Lines and columns are 1-based and the end column
// points one past the last character.
type Span struct {
	StartLine   int `json:"startLine" yaml:"startLine"`
	StartColumn int `json:"startColumn" yaml:"startColumn"`
	EndLine     int `json:"endLine" yaml:"endLine"`
	EndColumn   int `json:"endColumn" yaml:"endColumn"`
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", s.StartLine, s.StartColumn, s.EndLine, s.EndColumn)
}

// IsZero reports whether the span was never set
func (s Span) IsZero() bool {
	return s == Span{}
}

// Valid reports whether the span starts on a real line and does not end
// before it starts.
func (s Span) Valid() bool {
	if s.StartLine < 1 || s.StartColumn < 1 {
		return false
	}
	if s.EndLine != s.StartLine {
		return s.EndLine > s.StartLine
	}
	return s.EndColumn >= s.StartColumn
}

// Located is embedded by every node
type Located struct {
	span Span
}

func (l *Located) Location() Span {
	return l.span
}

func (l *Located) SetLocation(s Span) {
	l.span = s
}

type (
	// Node is any located AST element
	Node interface {
		Location() Span
		SetLocation(Span)
	}

	// Expression is an AST expression
	Expression interface {
		Node
		exprNode()
	}

	// Statement is an AST statement. Statements may carry labels.
	Statement interface {
		Node
		Labels() []string
		AddLabel(label string)
		stmtNode()
	}
)

// CopyLocation gives dst the span of src and returns dst
func CopyLocation[T Node](dst T, src Node) T {
	dst.SetLocation(src.Location())
	return dst
}
