package builder

import (
	"strings"

	"github.com/heshanpadmasiri/groovyast/ast"
	"github.com/heshanpadmasiri/groovyast/cst"
)

const (
	objectType     = "java.lang.Object"
	enumType       = "java.lang.Enum"
	annotationType = "java.lang.annotation.Annotation"
	voidType       = "void"
)

var primitiveTypes = map[string]bool{
	"boolean": true,
	"byte":    true,
	"char":    true,
	"short":   true,
	"int":     true,
	"long":    true,
	"float":   true,
	"double":  true,
}

// makeType builds a type reference located at n
func makeType(name string, n *cst.Node) *ast.TypeRef {
	return locate(&ast.TypeRef{Name: name}, n)
}

// buildType resolves a type node: a dotted name with optional generic
// arguments and array dimensions.
func (ctx *BuildContext) buildType(n *cst.Node) (*ast.TypeRef, error) {
	switch n.Kind() {
	case "type_identifier", "identifier":
		name := n.Text()
		if name == "def" || name == "var" {
			name = objectType
		}
		return makeType(name, n), nil
	case "def":
		return makeType(objectType, n), nil
	case "scoped_type_identifier", "scoped_identifier", "path_expression":
		return makeType(dottedName(n), n), nil
	case "integral_type", "floating_point_type", "boolean_type", "void_type":
		return makeType(strings.TrimSpace(n.Text()), n), nil
	case "generic_type":
		base := n.FirstChildOfKind("type_identifier", "scoped_type_identifier", "identifier")
		args := n.FirstChildOfKind("type_arguments")
		if base == nil || args == nil {
			return nil, ctx.unsupported(n, "type")
		}
		generics, err := ctx.buildTypeArguments(args)
		if err != nil {
			return nil, err
		}
		t := makeType(dottedName(base), n)
		t.Generics = generics
		return t, nil
	case "array_type":
		element := n.ChildByFieldName("element")
		if element == nil {
			element = n.NamedChildren()[0]
		}
		t, err := ctx.buildType(element)
		if err != nil {
			return nil, err
		}
		return arrayOf(t, n.FirstChildOfKind("dimensions"), n), nil
	case "annotated_type":
		for _, c := range n.NamedChildren() {
			if c.Kind() != "marker_annotation" && c.Kind() != "annotation" {
				return ctx.buildType(c)
			}
		}
	}
	return nil, ctx.unsupported(n, "type")
}

// arrayOf wraps t once per [] pair in dims. The array types are located at
// at.
func arrayOf(t *ast.TypeRef, dims *cst.Node, at *cst.Node) *ast.TypeRef {
	if dims == nil {
		return t
	}
	for _, c := range dims.Children() {
		if c.Kind() == "[" {
			t = t.MakeArray(spanOf(at))
		}
	}
	return t
}

// buildOptionalType builds the type held in field, defaulting to Object
func (ctx *BuildContext) buildOptionalType(n *cst.Node, field string) (*ast.TypeRef, error) {
	if tn := n.ChildByFieldName(field); tn != nil {
		return ctx.buildType(tn)
	}
	return makeType(objectType, n), nil
}

func (ctx *BuildContext) buildTypeArguments(n *cst.Node) ([]*ast.GenericsType, error) {
	var out []*ast.GenericsType
	for _, c := range n.NamedChildren() {
		if c.Kind() == "wildcard" {
			g, err := ctx.buildWildcard(c)
			if err != nil {
				return nil, err
			}
			out = append(out, g)
			continue
		}
		t, err := ctx.buildType(c)
		if err != nil {
			return nil, err
		}
		out = append(out, locate(&ast.GenericsType{Name: t.Name, Type: t}, c))
	}
	return out, nil
}

// buildWildcard handles ?, ? extends T and ? super T
func (ctx *BuildContext) buildWildcard(n *cst.Node) (*ast.GenericsType, error) {
	g := locate(&ast.GenericsType{Name: "?", Wildcard: true}, n)
	g.Type = makeType(objectType, n)
	var bound string
	for _, c := range n.Children() {
		switch c.Kind() {
		case "extends", "super":
			bound = c.Kind()
		case "?", "marker_annotation", "annotation":
			// ignored
		default:
			t, err := ctx.buildType(c)
			if err != nil {
				return nil, err
			}
			if bound == "super" {
				g.LowerBound = t
			} else {
				g.UpperBounds = []*ast.TypeRef{t}
			}
		}
	}
	return g, nil
}

// buildTypeParameters handles <T extends A & B, U>. Every type after the
// first entry of a bound is an upper bound.
func (ctx *BuildContext) buildTypeParameters(n *cst.Node) ([]*ast.GenericsType, error) {
	if n == nil {
		return nil, nil
	}
	var out []*ast.GenericsType
	for _, param := range n.ChildrenOfKind("type_parameter") {
		nameNode := param.FirstChildOfKind("type_identifier", "identifier")
		if nameNode == nil {
			return nil, ctx.unsupported(param, "type parameter")
		}
		g := locate(&ast.GenericsType{Name: nameNode.Text(), Placeholder: true}, param)
		g.Type = makeType(nameNode.Text(), nameNode)
		if bound := param.FirstChildOfKind("type_bound"); bound != nil {
			for _, c := range bound.NamedChildren() {
				t, err := ctx.buildType(c)
				if err != nil {
					return nil, err
				}
				g.UpperBounds = append(g.UpperBounds, t)
			}
		}
		out = append(out, g)
	}
	return out, nil
}

// buildTypeList builds every type under n, looking through type_list nodes
func (ctx *BuildContext) buildTypeList(n *cst.Node) ([]*ast.TypeRef, error) {
	if n == nil {
		return nil, nil
	}
	var out []*ast.TypeRef
	for _, c := range n.NamedChildren() {
		if c.Kind() == "type_list" {
			types, err := ctx.buildTypeList(c)
			if err != nil {
				return nil, err
			}
			out = append(out, types...)
			continue
		}
		t, err := ctx.buildType(c)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// isPrimitive reports whether t names a primitive type
func isPrimitive(t *ast.TypeRef) bool {
	return t != nil && t.Component == nil && primitiveTypes[t.Name]
}

// zeroValue returns the default value of a primitive type
func zeroValue(t *ast.TypeRef) *ast.ConstantExpr {
	switch t.Name {
	case "boolean":
		return &ast.ConstantExpr{Value: false, Type: ast.TypeBoolean, DirectType: true}
	case "long":
		return &ast.ConstantExpr{Value: int64(0), Type: ast.TypeLong, DirectType: true}
	case "float":
		return &ast.ConstantExpr{Value: float32(0), Type: ast.TypeFloat, DirectType: true}
	case "double":
		return &ast.ConstantExpr{Value: float64(0), Type: ast.TypeDouble, DirectType: true}
	case "char":
		return &ast.ConstantExpr{Value: "\x00", Type: ast.TypeString, DirectType: true}
	default:
		return &ast.ConstantExpr{Value: int32(0), Type: ast.TypeInt, DirectType: true}
	}
}
