package builder

import (
	"github.com/heshanpadmasiri/groovyast/ast"
	"github.com/heshanpadmasiri/groovyast/cst"
)

// buildGString decodes an interpolated string. The literal pieces come from
// the start, part and end tokens; each gstring_value becomes one value.
func (ctx *BuildContext) buildGString(n *cst.Node) (ast.Expression, error) {
	g := locate(&ast.GStringExpr{Verbatim: n.Text()}, n)
	for _, c := range n.Children() {
		switch c.Kind() {
		case "gstring_start":
			g.Strings = append(g.Strings, constantString(cleanGStringStart(c.Text()), c))
		case "gstring_part":
			g.Strings = append(g.Strings, constantString(cleanGStringPart(c.Text()), c))
		case "gstring_end":
			g.Strings = append(g.Strings, constantString(cleanGStringEnd(c.Text()), c))
		case "gstring_value":
			v, err := ctx.buildGStringValue(c)
			if err != nil {
				return nil, err
			}
			g.Values = append(g.Values, v)
		default:
			return nil, ctx.unsupported(c, "interpolated string part")
		}
	}
	if len(g.Strings) != len(g.Values)+1 {
		return nil, ctx.fatal(n, "malformed interpolated string: %d literal parts for %d values", len(g.Strings), len(g.Values))
	}
	return g, nil
}

// buildGStringValue handles $a.b, ${expr}, ${} and ${-> closure}. A closure
// without an arrow is called in place.
func (ctx *BuildContext) buildGStringValue(n *cst.Node) (ast.Expression, error) {
	if path := n.FirstChildOfKind("gstring_path"); path != nil {
		return ctx.buildGStringPath(path)
	}
	if cl := n.FirstChildOfKind("closure_expression"); cl != nil {
		closure, err := ctx.buildClosure(cl)
		if err != nil {
			return nil, err
		}
		if cl.HasChild("->") {
			return closure, nil
		}
		call := &ast.MethodCallExpr{
			Object:    closure,
			Method:    constantString("call", cl),
			Arguments: locate(&ast.ArgumentListExpr{}, cl),
		}
		return ast.CopyLocation(call, closure), nil
	}
	named := n.NamedChildren()
	if len(named) == 0 {
		return nullAt(n), nil
	}
	return ctx.buildExpression(named[0])
}

// buildGStringPath turns $a.b.c into a property chain. Path part tokens keep
// their leading dot.
func (ctx *BuildContext) buildGStringPath(n *cst.Node) (ast.Expression, error) {
	head := n.FirstChildOfKind("identifier")
	if head == nil {
		return nil, ctx.unsupported(n, "interpolated path")
	}
	var obj ast.Expression = locate(&ast.VariableExpr{Name: head.Text()}, head)
	for _, part := range n.ChildrenOfKind("gstring_path_part") {
		name := part.Text()
		if len(name) > 0 && name[0] == '.' {
			name = name[1:]
		}
		obj = locateSpan(&ast.PropertyExpr{Object: obj, Property: constantString(name, part)}, spanBetween(head, part))
	}
	return obj, nil
}
