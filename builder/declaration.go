package builder

import (
	"github.com/heshanpadmasiri/groovyast/ast"
	"github.com/heshanpadmasiri/groovyast/cst"
)

// declarationType returns the declared type of a local declaration. def and
// var declare Object.
func (ctx *BuildContext) declarationType(n *cst.Node) (*ast.TypeRef, error) {
	if tn := n.ChildByFieldName("type"); tn != nil {
		return ctx.buildType(tn)
	}
	if def := n.FirstChildOfKind("def"); def != nil {
		return makeType(objectType, def), nil
	}
	return makeType(objectType, n), nil
}

// buildDeclaration builds one declaration expression per declared variable.
// A single declaration covers the whole statement; with several, each covers
// its declarator and the first also starts where the statement starts.
func (ctx *BuildContext) buildDeclaration(n *cst.Node) ([]*ast.DeclarationExpr, error) {
	if n.Kind() == "tuple_declaration" {
		d, err := ctx.buildTupleDeclaration(n, n)
		if err != nil {
			return nil, err
		}
		return []*ast.DeclarationExpr{d}, nil
	}
	if tuple := n.FirstChildOfKind("tuple_declaration"); tuple != nil {
		d, err := ctx.buildTupleDeclaration(tuple, n)
		if err != nil {
			return nil, err
		}
		return []*ast.DeclarationExpr{d}, nil
	}

	mods, _ := ctx.resolveModifiers(modifiersOf(n), localModifiers, 0)
	baseType, err := ctx.declarationType(n)
	if err != nil {
		return nil, err
	}
	declarators := n.ChildrenOfKind("variable_declarator")
	if len(declarators) == 0 {
		return nil, ctx.unsupported(n, "declaration")
	}

	out := make([]*ast.DeclarationExpr, 0, len(declarators))
	for i, decl := range declarators {
		nameNode := decl.ChildByFieldName("name")
		if nameNode == nil {
			return nil, ctx.unsupported(decl, "declarator")
		}
		t := arrayOf(baseType, decl.FirstChildOfKind("dimensions"), decl)

		var op ast.Token
		if eq := decl.FirstChildOfKind("="); eq != nil {
			op = tokenOf(eq)
		} else {
			pos := nameNode.Start()
			op = ast.NewToken("=", pos.Line, pos.Column)
		}
		var right ast.Expression
		if valueNode := decl.ChildByFieldName("value"); valueNode != nil {
			right, err = ctx.buildInitializer(valueNode, t)
			if err != nil {
				return nil, err
			}
		} else {
			right = emptyAt(decl)
		}

		d := &ast.DeclarationExpr{
			Left:      locate(&ast.VariableExpr{Name: nameNode.Text()}, nameNode),
			Operation: op,
			Right:     right,
			Modifiers: mods,
			Type:      t,
		}
		switch {
		case len(declarators) == 1:
			locate(d, n)
		case i == 0:
			locateSpan(d, spanBetween(n, decl))
		default:
			locate(d, decl)
		}
		out = append(out, d)
	}
	return out, nil
}

// buildInitializer builds a variable initializer. Array initializers take
// their element type from the declared type.
func (ctx *BuildContext) buildInitializer(n *cst.Node, declared *ast.TypeRef) (ast.Expression, error) {
	if n.Kind() != "array_initializer" {
		return ctx.buildExpression(n)
	}
	elem := declared
	if declared.Component != nil {
		elem = declared.Component
	}
	return ctx.buildArrayInitializer(n, elem)
}

// buildTupleDeclaration handles def (a, b) = value. The initializer is
// mandatory.
func (ctx *BuildContext) buildTupleDeclaration(n, stmt *cst.Node) (*ast.DeclarationExpr, error) {
	valueNode := n.ChildByFieldName("value")
	if valueNode == nil {
		return nil, ctx.fatal(n, "tuple declaration without initializer")
	}
	vars := n.ChildrenOfKind("tuple_variable")
	if len(vars) == 0 {
		return nil, ctx.unsupported(n, "tuple declaration")
	}
	tuple := &ast.TupleExpr{}
	for _, v := range vars {
		nameNode := v.ChildByFieldName("name")
		if nameNode == nil {
			return nil, ctx.unsupported(v, "tuple variable")
		}
		tuple.Expressions = append(tuple.Expressions, locate(&ast.VariableExpr{Name: nameNode.Text()}, nameNode))
	}
	locateSpan(tuple, spanBetween(vars[0], vars[len(vars)-1]))

	right, err := ctx.buildExpression(valueNode)
	if err != nil {
		return nil, err
	}
	var op ast.Token
	if eq := n.FirstChildOfKind("="); eq != nil {
		op = tokenOf(eq)
	}
	mods, _ := ctx.resolveModifiers(modifiersOf(stmt), localModifiers, 0)
	d := &ast.DeclarationExpr{
		Left:      tuple,
		Operation: op,
		Right:     right,
		Modifiers: mods,
		Type:      makeType(objectType, n),
	}
	return locate(d, stmt), nil
}

// buildParameters builds formal_parameters, closure_parameters or
// inferred_parameters. Receiver parameters are dropped.
func (ctx *BuildContext) buildParameters(n *cst.Node) ([]*ast.Parameter, error) {
	if n == nil {
		return nil, nil
	}
	var out []*ast.Parameter
	for _, c := range n.NamedChildren() {
		var (
			p   *ast.Parameter
			err error
		)
		switch c.Kind() {
		case "formal_parameter":
			p, err = ctx.buildParameter(c)
		case "spread_parameter":
			p, err = ctx.buildSpreadParameter(c)
		case "identifier":
			p = locate(&ast.Parameter{Name: c.Text(), Type: makeType(objectType, c)}, c)
		case "receiver_parameter":
			continue
		default:
			err = ctx.unsupported(c, "parameter")
		}
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (ctx *BuildContext) buildParameter(n *cst.Node) (*ast.Parameter, error) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return nil, ctx.unsupported(n, "parameter")
	}
	t, err := ctx.buildOptionalType(n, "type")
	if err != nil {
		return nil, err
	}
	t = arrayOf(t, n.FirstChildOfKind("dimensions"), n)
	mods, _ := ctx.resolveModifiers(modifiersOf(n), localModifiers, 0)
	annotations, err := ctx.buildAnnotations(modifiersOf(n))
	if err != nil {
		return nil, err
	}
	p := locate(&ast.Parameter{Name: nameNode.Text(), Type: t, Modifiers: mods, Annotations: annotations}, n)
	if value := n.ChildByFieldName("value"); value != nil {
		p.DefaultValue, err = ctx.buildExpression(value)
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

// buildSpreadParameter handles T... name, an array parameter taking varargs
func (ctx *BuildContext) buildSpreadParameter(n *cst.Node) (*ast.Parameter, error) {
	decl := n.FirstChildOfKind("variable_declarator")
	var typeNode *cst.Node
	for _, c := range n.NamedChildren() {
		if c.Kind() != "modifiers" && c.Kind() != "variable_declarator" {
			typeNode = c
			break
		}
	}
	if decl == nil || typeNode == nil {
		return nil, ctx.unsupported(n, "parameter")
	}
	nameNode := decl.ChildByFieldName("name")
	if nameNode == nil {
		return nil, ctx.unsupported(n, "parameter")
	}
	elem, err := ctx.buildType(typeNode)
	if err != nil {
		return nil, err
	}
	mods, _ := ctx.resolveModifiers(modifiersOf(n), localModifiers, 0)
	annotations, err := ctx.buildAnnotations(modifiersOf(n))
	if err != nil {
		return nil, err
	}
	t := arrayOf(elem.MakeArray(spanOf(typeNode)), decl.FirstChildOfKind("dimensions"), decl)
	return locate(&ast.Parameter{
		Name:        nameNode.Text(),
		Type:        t,
		Modifiers:   mods,
		Annotations: annotations,
		VarArgs:     true,
	}, n), nil
}

// buildClosure handles { params -> statements }. The body block spans the
// whole closure.
func (ctx *BuildContext) buildClosure(n *cst.Node) (*ast.ClosureExpr, error) {
	closure := locate(&ast.ClosureExpr{ExplicitParameters: n.HasChild("->")}, n)
	params, err := ctx.buildParameters(n.FirstChildOfKind("closure_parameters"))
	if err != nil {
		return nil, err
	}
	closure.Parameters = params

	block := locate(&ast.BlockStmt{}, n)
	for _, c := range n.NamedChildren() {
		if c.Kind() == "closure_parameters" {
			continue
		}
		stmts, err := ctx.statementsOf(c)
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmts...)
	}
	closure.Code = block
	return closure, nil
}

// buildLambda maps a lambda onto a closure with explicit parameters
func (ctx *BuildContext) buildLambda(n *cst.Node) (ast.Expression, error) {
	paramsNode := n.ChildByFieldName("parameters")
	bodyNode := n.ChildByFieldName("body")
	if paramsNode == nil || bodyNode == nil {
		return nil, ctx.unsupported(n, "lambda")
	}
	closure := locate(&ast.ClosureExpr{ExplicitParameters: true}, n)
	if paramsNode.Kind() == "identifier" {
		closure.Parameters = []*ast.Parameter{locate(&ast.Parameter{Name: paramsNode.Text(), Type: makeType(objectType, paramsNode)}, paramsNode)}
	} else {
		params, err := ctx.buildParameters(paramsNode)
		if err != nil {
			return nil, err
		}
		closure.Parameters = params
	}

	if bodyNode.Kind() == "block" {
		block, err := ctx.buildBlock(bodyNode)
		if err != nil {
			return nil, err
		}
		closure.Code = block
		return closure, nil
	}
	e, err := ctx.buildExpression(bodyNode)
	if err != nil {
		return nil, err
	}
	stmt := locate(&ast.ExpressionStmt{Expression: e}, bodyNode)
	closure.Code = locate(&ast.BlockStmt{Statements: []ast.Statement{stmt}}, bodyNode)
	return closure, nil
}
