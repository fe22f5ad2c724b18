package builder

import (
	"github.com/heshanpadmasiri/groovyast/ast"
	"github.com/heshanpadmasiri/groovyast/cst"
)

// spanOf covers n from the start of its first token to the end of its last
func spanOf(n *cst.Node) ast.Span {
	return spanBetween(n, n)
}

// spanBetween covers from the first token of from to the last token of to
func spanBetween(from, to *cst.Node) ast.Span {
	first := from.StartToken()
	last := to.EndToken()
	start := first.Start()
	end := cst.Advance(last.Start(), last.Text())
	return ast.Span{
		StartLine:   start.Line,
		StartColumn: start.Column,
		EndLine:     end.Line,
		EndColumn:   end.Column,
	}
}

// locate stamps the span of cn onto node and returns node
func locate[T ast.Node](node T, cn *cst.Node) T {
	node.SetLocation(spanOf(cn))
	return node
}

// locateSpan stamps span onto node and returns node
func locateSpan[T ast.Node](node T, span ast.Span) T {
	node.SetLocation(span)
	return node
}

// tokenOf turns a token node into an operator token
func tokenOf(n *cst.Node) ast.Token {
	pos := n.Start()
	return ast.NewToken(n.Text(), pos.Line, pos.Column)
}

// operatorSpan covers a run of operator tokens
func operatorSpan(ops []*cst.Node) ast.Span {
	return spanBetween(ops[0], ops[len(ops)-1])
}
