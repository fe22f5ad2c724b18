package builder

import (
	"github.com/heshanpadmasiri/groovyast/ast"
	"github.com/heshanpadmasiri/groovyast/cst"
)

// buildArguments builds a call's argument expression from an argument_list
// and any trailing closures. Named arguments are gathered into a map that
// leads the positional arguments; a call with named arguments only gets a
// tuple holding a named argument list followed by the closures.
func (ctx *BuildContext) buildArguments(args *cst.Node, closures []*cst.Node, at *cst.Node) (ast.Expression, error) {
	var (
		positional []ast.Expression
		named      []*ast.MapEntryExpr
		entryNodes []*cst.Node
	)
	if args != nil {
		at = args
		for _, c := range args.NamedChildren() {
			if c.Kind() == "map_entry" {
				entry, err := ctx.buildMapEntry(c)
				if err != nil {
					return nil, err
				}
				named = append(named, entry)
				entryNodes = append(entryNodes, c)
				continue
			}
			e, err := ctx.buildExpression(c)
			if err != nil {
				return nil, err
			}
			positional = append(positional, e)
		}
	}
	var trailing []ast.Expression
	for _, c := range closures {
		e, err := ctx.buildExpression(c)
		if err != nil {
			return nil, err
		}
		trailing = append(trailing, e)
	}

	if len(named) == 0 {
		return locate(&ast.ArgumentListExpr{Expressions: append(positional, trailing...)}, at), nil
	}
	entrySpan := spanBetween(entryNodes[0], entryNodes[len(entryNodes)-1])
	if len(positional) == 0 {
		list := locateSpan(&ast.NamedArgumentListExpr{Entries: named}, entrySpan)
		return locate(&ast.TupleExpr{Expressions: append([]ast.Expression{list}, trailing...)}, at), nil
	}
	m := locateSpan(&ast.MapExpr{Entries: named}, entrySpan)
	exprs := append([]ast.Expression{m}, positional...)
	return locate(&ast.ArgumentListExpr{Expressions: append(exprs, trailing...)}, at), nil
}

// trailingClosures returns the closures written after the argument list
func trailingClosures(n *cst.Node) []*cst.Node {
	return n.ChildrenOfKind("closure_expression")
}

// callTarget resolves a dotted callee into receiver and method name. A single
// name is a call on the implicit this.
func callTarget(ids []*cst.Node) (ast.Expression, *cst.Node, bool) {
	last := ids[len(ids)-1]
	if len(ids) == 1 {
		return locate(&ast.VariableExpr{Name: "this"}, last), last, true
	}
	return propertyChain(ids[:len(ids)-1]), last, false
}

// buildMethodInvocation handles obj.name(args) and name(args)
func (ctx *BuildContext) buildMethodInvocation(n *cst.Node) (ast.Expression, error) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return nil, ctx.unsupported(n, "method invocation")
	}
	args, err := ctx.buildArguments(n.ChildByFieldName("arguments"), trailingClosures(n), n)
	if err != nil {
		return nil, err
	}
	call := &ast.MethodCallExpr{Method: constantString(nameNode.Text(), nameNode), Arguments: args}

	objNode := n.ChildByFieldName("object")
	if objNode == nil {
		call.Object = locate(&ast.VariableExpr{Name: "this"}, nameNode)
		call.ImplicitThis = true
		return locate(call, n), nil
	}
	call.Object, err = ctx.buildExpression(objNode)
	if err != nil {
		return nil, err
	}
	if tok := n.FirstChildOfKind("?.", "*."); tok != nil {
		call.Safe = tok.Kind() == "?."
		call.SpreadSafe = tok.Kind() == "*."
	}
	return locate(call, n), nil
}

// buildCallExpression handles a path or expression followed by an argument
// list and trailing closures. this(...) and super(...) become constructor
// calls and any other callee is invoked through call.
func (ctx *BuildContext) buildCallExpression(n *cst.Node) (ast.Expression, error) {
	fn := n.ChildByFieldName("function")
	if fn == nil {
		return nil, ctx.unsupported(n, "call expression")
	}
	argsNode := n.ChildByFieldName("arguments")
	closures := trailingClosures(n)
	if fn.Kind() == "path_expression" && argsNode == nil && len(closures) == 0 {
		return ctx.buildPath(fn)
	}
	args, err := ctx.buildArguments(argsNode, closures, n)
	if err != nil {
		return nil, err
	}

	switch fn.Kind() {
	case "path_expression", "identifier":
		ids := identifiers(fn)
		if fn.Kind() == "identifier" {
			ids = []*cst.Node{fn}
		}
		if len(ids) == 0 {
			return nil, ctx.unsupported(n, "call expression")
		}
		if len(ids) == 1 && isConstructorKeyword(ids[0]) {
			return locate(ctx.constructorCall(ids[0], args), n), nil
		}
		obj, name, implicitThis := callTarget(ids)
		call := &ast.MethodCallExpr{
			Object:       obj,
			Method:       constantString(name.Text(), name),
			Arguments:    args,
			ImplicitThis: implicitThis,
		}
		return locate(call, n), nil
	case "this", "super":
		return locate(ctx.constructorCall(fn, args), n), nil
	}

	callee, err := ctx.buildExpression(fn)
	if err != nil {
		return nil, err
	}
	call := &ast.MethodCallExpr{Object: callee, Method: constantString("call", fn), Arguments: args}
	return locate(call, n), nil
}

// isConstructorKeyword reports whether n is this or super, either as a
// keyword token or as a plain identifier with that text
func isConstructorKeyword(n *cst.Node) bool {
	switch n.Kind() {
	case "this", "super":
		return true
	}
	return n.Text() == "this" || n.Text() == "super"
}

// constructorCall builds this(...) or super(...) against the enclosing class
func (ctx *BuildContext) constructorCall(kw *cst.Node, args ast.Expression) *ast.ConstructorCallExpr {
	call := &ast.ConstructorCallExpr{Arguments: args}
	cls := ctx.currentClass()
	if kw.Text() == "super" {
		call.IsSuperCall = true
		call.Type = makeType(objectType, kw)
		if cls != nil && cls.SuperClass != nil {
			call.Type = locate(&ast.TypeRef{Name: cls.SuperClass.Name, Generics: cls.SuperClass.Generics}, kw)
		}
		return call
	}
	call.IsThisCall = true
	name := ctx.scriptName
	if cls != nil {
		name = cls.Name
	}
	call.Type = makeType(name, kw)
	return call
}

func (ctx *BuildContext) buildExplicitConstructorInvocation(n *cst.Node) (ast.Expression, error) {
	kw := n.ChildByFieldName("constructor")
	if kw == nil {
		kw = n.FirstChildOfKind("this", "super")
	}
	if kw == nil {
		return nil, ctx.unsupported(n, "constructor invocation")
	}
	args, err := ctx.buildArguments(n.ChildByFieldName("arguments"), nil, n)
	if err != nil {
		return nil, err
	}
	span := spanOf(n)
	if semi := n.EndToken(); semi.Kind() == ";" && n.ChildCount() > 1 {
		span = spanBetween(n, n.Child(n.ChildCount()-2))
	}
	return locateSpan(ctx.constructorCall(kw, args), span), nil
}

// buildCommandExpression handles foo a, b c d: the head call is followed by
// name and argument pairs that chain calls on the previous result. A name
// without arguments is a property access.
func (ctx *BuildContext) buildCommandExpression(n *cst.Node) (ast.Expression, error) {
	children := n.NamedChildren()
	if len(children) < 2 || children[1].Kind() != "argument_list" {
		return nil, ctx.unsupported(n, "command expression")
	}
	head := children[0]
	args, err := ctx.buildArguments(children[1], nil, children[1])
	if err != nil {
		return nil, err
	}

	var expr ast.Expression
	switch head.Kind() {
	case "path_expression", "identifier":
		ids := identifiers(head)
		if head.Kind() == "identifier" {
			ids = []*cst.Node{head}
		}
		obj, name, implicitThis := callTarget(ids)
		expr = locateSpan(&ast.MethodCallExpr{
			Object:       obj,
			Method:       constantString(name.Text(), name),
			Arguments:    args,
			ImplicitThis: implicitThis,
		}, spanBetween(head, children[1]))
	default:
		callee, err := ctx.buildExpression(head)
		if err != nil {
			return nil, err
		}
		expr = locateSpan(&ast.MethodCallExpr{Object: callee, Method: constantString("call", head), Arguments: args}, spanBetween(head, children[1]))
	}

	rest := children[2:]
	for i := 0; i < len(rest); i++ {
		name := rest[i]
		if name.Kind() != "identifier" {
			return nil, ctx.unsupported(name, "command expression")
		}
		if i+1 < len(rest) && rest[i+1].Kind() == "argument_list" {
			args, err := ctx.buildArguments(rest[i+1], nil, rest[i+1])
			if err != nil {
				return nil, err
			}
			expr = locateSpan(&ast.MethodCallExpr{Object: expr, Method: constantString(name.Text(), name), Arguments: args}, spanBetween(head, rest[i+1]))
			i++
			continue
		}
		expr = locateSpan(&ast.PropertyExpr{Object: expr, Property: constantString(name.Text(), name)}, spanBetween(head, name))
	}
	return expr, nil
}

// buildObjectCreation handles new T(args), optionally with an anonymous class
// body.
func (ctx *BuildContext) buildObjectCreation(n *cst.Node) (ast.Expression, error) {
	typeNode := n.ChildByFieldName("type")
	if typeNode == nil {
		return nil, ctx.unsupported(n, "object creation")
	}
	t, err := ctx.buildType(typeNode)
	if err != nil {
		return nil, err
	}
	args, err := ctx.buildArguments(n.ChildByFieldName("arguments"), trailingClosures(n), n)
	if err != nil {
		return nil, err
	}
	call := &ast.ConstructorCallExpr{Type: t, Arguments: args}

	if body := n.FirstChildOfKind("class_body"); body != nil {
		anon, err := ctx.buildAnonymousClass(body, t)
		if err != nil {
			return nil, err
		}
		call.Type = locate(&ast.TypeRef{Name: anon.Name}, typeNode)
		call.UsingAnonymousInnerClass = true
	}
	return locate(call, n), nil
}

// buildAnonymousClass declares the class behind new T() { ... } or an enum
// constant body. It is registered before its members are built so nested
// anonymous classes follow it in the module.
func (ctx *BuildContext) buildAnonymousClass(body *cst.Node, super *ast.TypeRef) (*ast.ClassDecl, error) {
	cls := locate(&ast.ClassDecl{
		Name:        ctx.nextAnonymousName(),
		Modifiers:   ast.ACC_PUBLIC,
		SuperClass:  super,
		IsAnonymous: true,
	}, body)
	ctx.registerInnerClass(cls)
	ctx.pushClass(cls)
	defer ctx.popClass()
	if err := ctx.buildClassBody(body, cls); err != nil {
		return nil, err
	}
	return cls, nil
}
