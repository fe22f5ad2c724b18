package builder

import (
	"github.com/heshanpadmasiri/groovyast/ast"
	"github.com/heshanpadmasiri/groovyast/cst"
)

// statementsOf builds the statements a single statement node stands for. A
// declaration of several variables unpacks into one statement per variable;
// a local class declaration yields none.
func (ctx *BuildContext) statementsOf(n *cst.Node) ([]ast.Statement, error) {
	switch n.Kind() {
	case "local_variable_declaration", "tuple_declaration":
		decls, err := ctx.buildDeclaration(n)
		if err != nil {
			return nil, err
		}
		out := make([]ast.Statement, 0, len(decls))
		for _, d := range decls {
			out = append(out, ast.CopyLocation(&ast.ExpressionStmt{Expression: d}, d))
		}
		return out, nil
	case "class_declaration", "interface_declaration", "enum_declaration", "annotation_type_declaration":
		if _, err := ctx.buildLocalClass(n); err != nil {
			return nil, err
		}
		return nil, nil
	case "labeled_statement":
		return ctx.buildLabeled(n)
	}
	s, err := ctx.buildStatement(n)
	if err != nil {
		return nil, err
	}
	return []ast.Statement{s}, nil
}

// buildBody builds a statement in a position that holds exactly one, such
// as a loop body. Several statements are wrapped into a block.
func (ctx *BuildContext) buildBody(n *cst.Node) (ast.Statement, error) {
	stmts, err := ctx.statementsOf(n)
	if err != nil {
		return nil, err
	}
	if len(stmts) == 1 {
		return stmts[0], nil
	}
	return locate(&ast.BlockStmt{Statements: stmts}, n), nil
}

func (ctx *BuildContext) buildStatement(n *cst.Node) (ast.Statement, error) {
	switch n.Kind() {
	case "block", "constructor_body":
		return ctx.buildBlock(n)
	case ";", "empty_statement":
		return locate(&ast.EmptyStmt{}, n), nil
	case "expression_statement":
		return ctx.buildExpressionStatement(n)
	case "explicit_constructor_invocation":
		e, err := ctx.buildExpression(n)
		if err != nil {
			return nil, err
		}
		return locate(&ast.ExpressionStmt{Expression: e}, n), nil
	case "if_statement":
		return ctx.buildIf(n)
	case "while_statement":
		return ctx.buildWhile(n)
	case "do_statement":
		return ctx.buildDoWhile(n)
	case "for_statement":
		return ctx.buildFor(n)
	case "enhanced_for_statement":
		return ctx.buildEnhancedFor(n)
	case "for_in_statement":
		return ctx.buildForIn(n)
	case "switch_expression", "switch_statement":
		return ctx.buildSwitch(n)
	case "try_statement":
		return ctx.buildTry(n)
	case "try_with_resources_statement":
		return nil, ctx.fatal(n, "try-with-resources is not supported")
	case "throw_statement":
		e, err := ctx.onlyOperand(n)
		if err != nil {
			return nil, err
		}
		return locate(&ast.ThrowStmt{Expression: e}, n), nil
	case "return_statement":
		return ctx.buildReturn(n)
	case "break_statement":
		s := locate(&ast.BreakStmt{}, n)
		if id := n.FirstChildOfKind("identifier"); id != nil {
			s.Label = id.Text()
		}
		return s, nil
	case "continue_statement":
		s := locate(&ast.ContinueStmt{}, n)
		if id := n.FirstChildOfKind("identifier"); id != nil {
			s.Label = id.Text()
		}
		return s, nil
	case "assert_statement":
		return ctx.buildAssert(n)
	case "synchronized_statement":
		return ctx.buildSynchronized(n)
	}
	return nil, ctx.unsupported(n, "statement")
}

// buildBlock builds { ... }, unpacking declarations in place
func (ctx *BuildContext) buildBlock(n *cst.Node) (*ast.BlockStmt, error) {
	block := locate(&ast.BlockStmt{}, n)
	for _, c := range n.NamedChildren() {
		stmts, err := ctx.statementsOf(c)
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmts...)
	}
	return block, nil
}

func (ctx *BuildContext) buildExpressionStatement(n *cst.Node) (ast.Statement, error) {
	inner := n.NamedChildren()
	if len(inner) != 1 {
		return nil, ctx.unsupported(n, "expression statement")
	}
	if k := inner[0].Kind(); k == "switch_expression" {
		return ctx.buildSwitch(inner[0])
	}
	e, err := ctx.buildExpression(inner[0])
	if err != nil {
		return nil, err
	}
	return locate(&ast.ExpressionStmt{Expression: e}, n), nil
}

// buildLabeled attaches the label to the first statement produced by the
// labeled statement.
func (ctx *BuildContext) buildLabeled(n *cst.Node) ([]ast.Statement, error) {
	label := n.FirstChildOfKind("identifier")
	named := n.NamedChildren()
	if label == nil || len(named) < 2 {
		return nil, ctx.unsupported(n, "labeled statement")
	}
	stmts, err := ctx.statementsOf(named[len(named)-1])
	if err != nil {
		return nil, err
	}
	if len(stmts) == 0 {
		stmts = []ast.Statement{locate(&ast.EmptyStmt{}, n)}
	}
	stmts[0].AddLabel(label.Text())
	return stmts, nil
}

// conditionOf builds the condition of a loop or if, looking through the
// parentheses.
func (ctx *BuildContext) conditionOf(n *cst.Node) (*ast.BooleanExpr, error) {
	cond := n.ChildByFieldName("condition")
	if cond == nil {
		return nil, ctx.unsupported(n, "condition")
	}
	return ctx.buildCondition(unparen(cond))
}

func (ctx *BuildContext) buildIf(n *cst.Node) (ast.Statement, error) {
	cond, err := ctx.conditionOf(n)
	if err != nil {
		return nil, err
	}
	s := locate(&ast.IfStmt{Condition: cond}, n)
	if then := n.ChildByFieldName("consequence"); then != nil {
		s.Then, err = ctx.buildBody(then)
		if err != nil {
			return nil, err
		}
	} else {
		s.Then = locate(&ast.EmptyStmt{}, n)
	}
	if alt := n.ChildByFieldName("alternative"); alt != nil {
		s.Else, err = ctx.buildBody(alt)
		if err != nil {
			return nil, err
		}
	} else {
		s.Else = locate(&ast.EmptyStmt{}, n)
	}
	return s, nil
}

func (ctx *BuildContext) buildWhile(n *cst.Node) (ast.Statement, error) {
	cond, err := ctx.conditionOf(n)
	if err != nil {
		return nil, err
	}
	body, err := ctx.loopBody(n)
	if err != nil {
		return nil, err
	}
	return locate(&ast.WhileStmt{Condition: cond, Body: body}, n), nil
}

func (ctx *BuildContext) buildDoWhile(n *cst.Node) (ast.Statement, error) {
	cond, err := ctx.conditionOf(n)
	if err != nil {
		return nil, err
	}
	body, err := ctx.loopBody(n)
	if err != nil {
		return nil, err
	}
	return locate(&ast.DoWhileStmt{Condition: cond, Body: body}, n), nil
}

// loopBody builds the body field of a loop; an empty body is an EmptyStmt
func (ctx *BuildContext) loopBody(n *cst.Node) (ast.Statement, error) {
	body := n.ChildByFieldName("body")
	if body == nil {
		return locate(&ast.EmptyStmt{}, n), nil
	}
	return ctx.buildBody(body)
}

// buildFor handles for (init; cond; update). The three parts are kept in a
// closure list iterated by a dummy parameter; missing parts are empty
// expressions and several init or update expressions nest into a list.
func (ctx *BuildContext) buildFor(n *cst.Node) (ast.Statement, error) {
	init, err := ctx.forPart(n, n.ChildrenByFieldName("init"))
	if err != nil {
		return nil, err
	}
	var cond ast.Expression
	if c := n.ChildByFieldName("condition"); c != nil {
		cond, err = ctx.buildExpression(c)
		if err != nil {
			return nil, err
		}
	} else {
		cond = emptyAt(n)
	}
	update, err := ctx.forPart(n, n.ChildrenByFieldName("update"))
	if err != nil {
		return nil, err
	}
	body, err := ctx.loopBody(n)
	if err != nil {
		return nil, err
	}

	collection := locate(&ast.ClosureListExpr{Expressions: []ast.Expression{init, cond, update}}, n)
	variable := locate(&ast.Parameter{Name: ast.ForLoopDummy, Type: makeType(objectType, n)}, n)
	return locate(&ast.ForStmt{Variable: variable, Collection: collection, Body: body}, n), nil
}

func (ctx *BuildContext) forPart(loop *cst.Node, parts []*cst.Node) (ast.Expression, error) {
	switch len(parts) {
	case 0:
		return emptyAt(loop), nil
	case 1:
		return ctx.buildExpression(parts[0])
	}
	list := locateSpan(&ast.ClosureListExpr{}, spanBetween(parts[0], parts[len(parts)-1]))
	for _, p := range parts {
		e, err := ctx.buildExpression(p)
		if err != nil {
			return nil, err
		}
		list.Expressions = append(list.Expressions, e)
	}
	return list, nil
}

// buildEnhancedFor handles for (T x : xs). The type is mandatory in this
// form.
func (ctx *BuildContext) buildEnhancedFor(n *cst.Node) (ast.Statement, error) {
	typeNode := n.ChildByFieldName("type")
	nameNode := n.ChildByFieldName("name")
	valueNode := n.ChildByFieldName("value")
	if typeNode == nil {
		return nil, ctx.fatal(n, "for-each loop variable requires a type")
	}
	if nameNode == nil || valueNode == nil {
		return nil, ctx.unsupported(n, "for-each loop")
	}
	t, err := ctx.buildType(typeNode)
	if err != nil {
		return nil, err
	}
	t = arrayOf(t, n.FirstChildOfKind("dimensions"), typeNode)
	return ctx.forEach(n, t, nameNode, valueNode)
}

// buildForIn handles for (x in xs) with an optional type
func (ctx *BuildContext) buildForIn(n *cst.Node) (ast.Statement, error) {
	nameNode := n.ChildByFieldName("name")
	valueNode := n.ChildByFieldName("value")
	if nameNode == nil || valueNode == nil {
		return nil, ctx.unsupported(n, "for-in loop")
	}
	t, err := ctx.buildOptionalType(n, "type")
	if err != nil {
		return nil, err
	}
	return ctx.forEach(n, t, nameNode, valueNode)
}

func (ctx *BuildContext) forEach(n *cst.Node, t *ast.TypeRef, nameNode, valueNode *cst.Node) (ast.Statement, error) {
	mods, _ := ctx.resolveModifiers(modifiersOf(n), localModifiers, 0)
	variable := locate(&ast.Parameter{Name: nameNode.Text(), Type: t, Modifiers: mods}, nameNode)
	collection, err := ctx.buildExpression(valueNode)
	if err != nil {
		return nil, err
	}
	body, err := ctx.loopBody(n)
	if err != nil {
		return nil, err
	}
	return locate(&ast.ForStmt{Variable: variable, Collection: collection, Body: body}, n), nil
}

// buildSwitch builds one case per label. Statements of a group belong to its
// last label; the others fall through with an empty body.
func (ctx *BuildContext) buildSwitch(n *cst.Node) (ast.Statement, error) {
	condNode := n.ChildByFieldName("condition")
	body := n.ChildByFieldName("body")
	if condNode == nil || body == nil {
		return nil, ctx.unsupported(n, "switch")
	}
	subject, err := ctx.buildExpression(unparen(condNode))
	if err != nil {
		return nil, err
	}
	s := locate(&ast.SwitchStmt{Expression: subject}, n)

	for _, group := range body.NamedChildren() {
		var code ast.Statement
		switch group.Kind() {
		case "switch_block_statement_group":
			block := &ast.BlockStmt{}
			var first, last *cst.Node
			for _, c := range group.NamedChildren() {
				if c.Kind() == "switch_label" {
					continue
				}
				if first == nil {
					first = c
				}
				last = c
				stmts, err := ctx.statementsOf(c)
				if err != nil {
					return nil, err
				}
				block.Statements = append(block.Statements, stmts...)
			}
			if first != nil {
				locateSpan(block, spanBetween(first, last))
			} else {
				locate(block, group)
			}
			code = block
		case "switch_rule":
			named := group.NamedChildren()
			code, err = ctx.buildBody(named[len(named)-1])
			if err != nil {
				return nil, err
			}
		default:
			return nil, ctx.unsupported(group, "switch group")
		}

		labels := group.ChildrenOfKind("switch_label")
		for i, label := range labels {
			labelCode := code
			if i < len(labels)-1 {
				labelCode = locate(&ast.EmptyStmt{}, label)
			}
			if label.HasChild("default") {
				s.Default = labelCode
				continue
			}
			for _, e := range label.NamedChildren() {
				expr, err := ctx.buildExpression(e)
				if err != nil {
					return nil, err
				}
				s.Cases = append(s.Cases, locate(&ast.CaseStmt{Expression: expr, Code: labelCode}, label))
			}
		}
	}
	if s.Default == nil {
		s.Default = locate(&ast.EmptyStmt{}, n)
	}
	return s, nil
}

// buildTry builds one catch per caught type of a multi-catch
func (ctx *BuildContext) buildTry(n *cst.Node) (ast.Statement, error) {
	bodyNode := n.ChildByFieldName("body")
	if bodyNode == nil {
		return nil, ctx.unsupported(n, "try")
	}
	body, err := ctx.buildBlock(bodyNode)
	if err != nil {
		return nil, err
	}
	s := locate(&ast.TryCatchStmt{Try: body}, n)

	for _, clause := range n.ChildrenOfKind("catch_clause") {
		catches, err := ctx.buildCatch(clause)
		if err != nil {
			return nil, err
		}
		s.Catches = append(s.Catches, catches...)
	}
	if fin := n.FirstChildOfKind("finally_clause"); fin != nil {
		block := fin.FirstChildOfKind("block")
		if block == nil {
			return nil, ctx.unsupported(fin, "finally")
		}
		s.Finally, err = ctx.buildBlock(block)
		if err != nil {
			return nil, err
		}
	} else {
		s.Finally = locate(&ast.EmptyStmt{}, n)
	}
	return s, nil
}

func (ctx *BuildContext) buildCatch(n *cst.Node) ([]*ast.CatchStmt, error) {
	param := n.FirstChildOfKind("catch_formal_parameter")
	bodyNode := n.ChildByFieldName("body")
	if param == nil || bodyNode == nil {
		return nil, ctx.unsupported(n, "catch")
	}
	nameNode := param.ChildByFieldName("name")
	if nameNode == nil {
		return nil, ctx.unsupported(param, "catch parameter")
	}
	mods, _ := ctx.resolveModifiers(modifiersOf(param), localModifiers, 0)

	var types []*ast.TypeRef
	if catchType := param.FirstChildOfKind("catch_type"); catchType != nil {
		for _, tn := range catchType.NamedChildren() {
			t, err := ctx.buildType(tn)
			if err != nil {
				return nil, err
			}
			types = append(types, t)
		}
	}
	if len(types) == 0 {
		types = []*ast.TypeRef{makeType(objectType, param)}
	}

	body, err := ctx.buildBlock(bodyNode)
	if err != nil {
		return nil, err
	}
	// a multi-catch shares one body between its clauses
	var out []*ast.CatchStmt
	for _, t := range types {
		variable := locate(&ast.Parameter{Name: nameNode.Text(), Type: t, Modifiers: mods}, param)
		out = append(out, locate(&ast.CatchStmt{Variable: variable, Code: body}, n))
	}
	return out, nil
}

// buildReturn returns null when no value is given
func (ctx *BuildContext) buildReturn(n *cst.Node) (ast.Statement, error) {
	named := n.NamedChildren()
	if len(named) == 0 {
		return locate(&ast.ReturnStmt{Expression: nullAt(n)}, n), nil
	}
	e, err := ctx.buildExpression(named[0])
	if err != nil {
		return nil, err
	}
	return locate(&ast.ReturnStmt{Expression: e}, n), nil
}

func (ctx *BuildContext) buildAssert(n *cst.Node) (ast.Statement, error) {
	named := n.NamedChildren()
	if len(named) == 0 {
		return nil, ctx.unsupported(n, "assert")
	}
	cond, err := ctx.buildCondition(named[0])
	if err != nil {
		return nil, err
	}
	s := locate(&ast.AssertStmt{Condition: cond}, n)
	if len(named) > 1 {
		s.Message, err = ctx.buildExpression(named[1])
		if err != nil {
			return nil, err
		}
	} else {
		s.Message = nullAt(n)
	}
	return s, nil
}

func (ctx *BuildContext) buildSynchronized(n *cst.Node) (ast.Statement, error) {
	lock := n.FirstChildOfKind("parenthesized_expression")
	bodyNode := n.ChildByFieldName("body")
	if lock == nil || bodyNode == nil {
		return nil, ctx.unsupported(n, "synchronized")
	}
	e, err := ctx.buildExpression(unparen(lock))
	if err != nil {
		return nil, err
	}
	body, err := ctx.buildBlock(bodyNode)
	if err != nil {
		return nil, err
	}
	return locate(&ast.SynchronizedStmt{Expression: e, Code: body}, n), nil
}
