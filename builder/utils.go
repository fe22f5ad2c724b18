package builder

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/heshanpadmasiri/groovyast/ast"
	"github.com/heshanpadmasiri/groovyast/cst"
)

// dottedName joins the identifiers under n with dots
func dottedName(n *cst.Node) string {
	var parts []string
	for _, leaf := range n.Leaves() {
		switch leaf.Kind() {
		case "identifier", "type_identifier":
			parts = append(parts, leaf.Text())
		}
	}
	return strings.Join(parts, ".")
}

// identifiers returns the identifier children of n in order
func identifiers(n *cst.Node) []*cst.Node {
	var out []*cst.Node
	for _, c := range n.Children() {
		if c.Kind() == "identifier" {
			out = append(out, c)
		}
	}
	return out
}

func capitalize(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}

// constantString builds a string constant located at n
func constantString(text string, n *cst.Node) *ast.ConstantExpr {
	return locate(ast.StringConstant(text), n)
}

// nullAt builds a null constant located at n
func nullAt(n *cst.Node) *ast.ConstantExpr {
	return locate(ast.NullConstant(), n)
}

// emptyAt builds an empty expression located at n
func emptyAt(n *cst.Node) *ast.EmptyExpr {
	return locate(&ast.EmptyExpr{}, n)
}

// isAnnotation reports whether n is an annotation node
func isAnnotation(n *cst.Node) bool {
	return n.Kind() == "annotation" || n.Kind() == "marker_annotation"
}

// unparen strips parenthesized_expression wrappers
func unparen(n *cst.Node) *cst.Node {
	for n.Kind() == "parenthesized_expression" {
		inner := n.NamedChildren()
		if len(inner) != 1 {
			return n
		}
		n = inner[0]
	}
	return n
}
