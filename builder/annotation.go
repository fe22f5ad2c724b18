package builder

import (
	"github.com/heshanpadmasiri/groovyast/ast"
	"github.com/heshanpadmasiri/groovyast/cst"
)

// buildAnnotations builds every annotation among the children of n, which is
// usually a modifiers node. A nil n has none.
func (ctx *BuildContext) buildAnnotations(n *cst.Node) ([]*ast.Annotation, error) {
	if n == nil {
		return nil, nil
	}
	var out []*ast.Annotation
	for _, c := range n.Children() {
		if !isAnnotation(c) {
			continue
		}
		a, err := ctx.buildAnnotation(c)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// buildAnnotation handles @Name, @Name(value) and @Name(k = v, ...). A lone
// value is stored as the member named value.
func (ctx *BuildContext) buildAnnotation(n *cst.Node) (*ast.Annotation, error) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		nameNode = n.FirstChildOfKind("identifier", "scoped_identifier", "path_expression")
	}
	if nameNode == nil {
		return nil, ctx.unsupported(n, "annotation")
	}
	a := locate(&ast.Annotation{Type: makeType(dottedName(nameNode), nameNode)}, n)

	args := n.ChildByFieldName("arguments")
	if args == nil {
		return a, nil
	}
	for _, c := range args.NamedChildren() {
		if c.Kind() != "element_value_pair" {
			v, err := ctx.buildAnnotationValue(c)
			if err != nil {
				return nil, err
			}
			a.Members = append(a.Members, locate(&ast.AnnotationMember{Name: "value", Value: v}, c))
			continue
		}
		key := c.ChildByFieldName("key")
		valueNode := c.ChildByFieldName("value")
		if key == nil || valueNode == nil {
			return nil, ctx.unsupported(c, "annotation member")
		}
		v, err := ctx.buildAnnotationValue(valueNode)
		if err != nil {
			return nil, err
		}
		a.Members = append(a.Members, locate(&ast.AnnotationMember{Name: key.Text(), Value: v}, c))
	}
	return a, nil
}

// buildAnnotationValue accepts the constant forms allowed as annotation
// values. Anything else is reported and replaced by null.
func (ctx *BuildContext) buildAnnotationValue(n *cst.Node) (ast.Expression, error) {
	switch n.Kind() {
	case "decimal_integer_literal", "hex_integer_literal", "octal_integer_literal", "binary_integer_literal",
		"decimal_floating_point_literal", "hex_floating_point_literal",
		"string_literal", "character_literal", "true", "false", "null_literal",
		"class_literal", "identifier", "field_access", "scoped_identifier", "path_expression":
		return ctx.buildExpression(n)
	case "marker_annotation", "annotation":
		a, err := ctx.buildAnnotation(n)
		if err != nil {
			return nil, err
		}
		return locate(&ast.AnnotationConstantExpr{Annotation: a}, n), nil
	case "element_value_array_initializer", "array_initializer", "list_literal":
		list := locate(&ast.ListExpr{}, n)
		for _, c := range n.NamedChildren() {
			v, err := ctx.buildAnnotationValue(c)
			if err != nil {
				return nil, err
			}
			list.Expressions = append(list.Expressions, v)
		}
		return list, nil
	case "unary_expression":
		operand := n.ChildByFieldName("operand")
		op := n.ChildByFieldName("operator")
		if operand != nil && op != nil && (op.Text() == "-" || op.Text() == "+") && isNumberLiteral(operand) {
			return ctx.buildExpression(n)
		}
	}
	ctx.report(n, "Expression %s is prohibited inside annotations", n.Text())
	return nullAt(n), nil
}
