package builder

import (
	"strings"

	"github.com/heshanpadmasiri/groovyast/ast"
	"github.com/heshanpadmasiri/groovyast/cst"
)

// buildExpression dispatches on the expression kind. A kind with no case is
// an inconsistency between the grammar and the builder and is fatal.
func (ctx *BuildContext) buildExpression(n *cst.Node) (ast.Expression, error) {
	switch n.Kind() {
	case "parenthesized_expression":
		inner := n.NamedChildren()
		if len(inner) != 1 {
			return nil, ctx.unsupported(n, "expression")
		}
		return ctx.buildExpression(inner[0])
	case "decimal_integer_literal", "hex_integer_literal", "octal_integer_literal", "binary_integer_literal":
		return ctx.buildNumber(n, "")
	case "decimal_floating_point_literal", "hex_floating_point_literal":
		return ctx.buildNumber(n, "")
	case "true", "false":
		return locate(&ast.ConstantExpr{Value: n.Kind() == "true", Type: ast.TypeBoolean, DirectType: true}, n), nil
	case "null_literal":
		return nullAt(n), nil
	case "string_literal":
		return constantString(decodeString(n.Text()), n), nil
	case "character_literal":
		return constantString(decodeChar(n.Text()), n), nil
	case "gstring":
		return ctx.buildGString(n)
	case "identifier":
		return locate(&ast.VariableExpr{Name: n.Text()}, n), nil
	case "this", "super":
		return locate(&ast.VariableExpr{Name: n.Kind()}, n), nil
	case "field_access":
		return ctx.buildFieldAccess(n)
	case "scoped_identifier":
		return ctx.buildScopedIdentifier(n)
	case "path_expression":
		return ctx.buildPath(n)
	case "method_invocation":
		return ctx.buildMethodInvocation(n)
	case "call_expression":
		return ctx.buildCallExpression(n)
	case "command_expression":
		return ctx.buildCommandExpression(n)
	case "explicit_constructor_invocation":
		return ctx.buildExplicitConstructorInvocation(n)
	case "object_creation_expression":
		return ctx.buildObjectCreation(n)
	case "array_creation_expression":
		return ctx.buildArrayCreation(n)
	case "array_initializer":
		return ctx.buildArrayInitializer(n, makeType(objectType, n))
	case "array_access":
		return ctx.buildArrayAccess(n)
	case "index_expression":
		return ctx.buildIndexExpression(n)
	case "assignment_expression":
		return ctx.buildBinary(n)
	case "binary_expression":
		return ctx.buildBinary(n)
	case "instanceof_expression":
		return ctx.buildInstanceof(n)
	case "unary_expression":
		return ctx.buildUnary(n)
	case "update_expression":
		return ctx.buildUpdate(n)
	case "ternary_expression":
		return ctx.buildTernary(n)
	case "elvis_expression":
		return ctx.buildElvis(n)
	case "cast_expression":
		return ctx.buildCast(n)
	case "list_literal":
		return ctx.buildListLiteral(n)
	case "map_literal":
		return ctx.buildMapLiteral(n)
	case "spread_expression":
		inner, err := ctx.onlyOperand(n)
		if err != nil {
			return nil, err
		}
		return locate(&ast.SpreadExpr{Expression: inner}, n), nil
	case "closure_expression":
		return ctx.buildClosure(n)
	case "lambda_expression":
		return ctx.buildLambda(n)
	case "method_reference":
		return ctx.buildMethodReference(n)
	case "class_literal":
		named := n.NamedChildren()
		if len(named) == 0 {
			return nil, ctx.unsupported(n, "class literal")
		}
		t, err := ctx.buildType(named[0])
		if err != nil {
			return nil, err
		}
		return locate(&ast.ClassExpr{Type: t}, n), nil
	case "local_variable_declaration", "tuple_declaration":
		decls, err := ctx.buildDeclaration(n)
		if err != nil {
			return nil, err
		}
		if len(decls) == 1 {
			return decls[0], nil
		}
		list := locate(&ast.ClosureListExpr{}, n)
		for _, d := range decls {
			list.Expressions = append(list.Expressions, d)
		}
		return list, nil
	case "marker_annotation", "annotation":
		a, err := ctx.buildAnnotation(n)
		if err != nil {
			return nil, err
		}
		return locate(&ast.AnnotationConstantExpr{Annotation: a}, n), nil
	}
	return nil, ctx.unsupported(n, "expression")
}

// buildNumber decodes a numeric literal, prefixed with sign when a unary
// operator is folded into it.
func (ctx *BuildContext) buildNumber(n *cst.Node, sign string) (*ast.ConstantExpr, error) {
	var (
		c   *ast.ConstantExpr
		err error
	)
	switch n.Kind() {
	case "decimal_floating_point_literal", "hex_floating_point_literal":
		c, err = parseDecimal(sign + n.Text())
	default:
		c, err = parseInteger(sign + n.Text())
	}
	if err != nil {
		return nil, ctx.fatal(n, "%v", err)
	}
	return locate(c, n), nil
}

func isNumberLiteral(n *cst.Node) bool {
	switch n.Kind() {
	case "decimal_integer_literal", "hex_integer_literal", "octal_integer_literal", "binary_integer_literal",
		"decimal_floating_point_literal", "hex_floating_point_literal":
		return true
	}
	return false
}

// onlyOperand builds the single named child of n
func (ctx *BuildContext) onlyOperand(n *cst.Node) (ast.Expression, error) {
	named := n.NamedChildren()
	if len(named) != 1 {
		return nil, ctx.unsupported(n, "expression")
	}
	return ctx.buildExpression(named[0])
}

// operands splits a binary node into left, operator tokens and right. The
// operator may be split into several tokens, like > > for a shift.
func operands(n *cst.Node) (left *cst.Node, ops []*cst.Node, right *cst.Node) {
	left = n.ChildByFieldName("left")
	right = n.ChildByFieldName("right")
	named := n.NamedChildren()
	if left == nil && len(named) > 0 {
		left = named[0]
	}
	if right == nil && len(named) > 1 {
		right = named[len(named)-1]
	}
	for _, c := range n.Children() {
		if c != left && c != right && !c.IsNamed() {
			ops = append(ops, c)
		}
	}
	return left, ops, right
}

// buildBinary handles binary operators and assignments. Ranges, as and ?:
// get their own node types. Except for ?: they are located at the operator.
func (ctx *BuildContext) buildBinary(n *cst.Node) (ast.Expression, error) {
	leftNode, ops, rightNode := operands(n)
	if leftNode == nil || rightNode == nil || len(ops) == 0 {
		return nil, ctx.unsupported(n, "binary expression")
	}
	var sb strings.Builder
	for _, op := range ops {
		sb.WriteString(op.Text())
	}
	operator := sb.String()

	left, err := ctx.buildExpression(leftNode)
	if err != nil {
		return nil, err
	}

	switch operator {
	case "as":
		t, err := ctx.buildType(rightNode)
		if err != nil {
			return nil, err
		}
		return locateSpan(&ast.CastExpr{Type: t, Expression: left, Coerce: true}, operatorSpan(ops)), nil
	case "instanceof":
		t, err := ctx.buildType(rightNode)
		if err != nil {
			return nil, err
		}
		right := locate(&ast.ClassExpr{Type: t}, rightNode)
		return locateSpan(&ast.BinaryExpr{Left: left, Operation: tokenOf(ops[0]), Right: right}, operatorSpan(ops)), nil
	}

	right, err := ctx.buildExpression(rightNode)
	if err != nil {
		return nil, err
	}
	switch operator {
	case "..", "..<":
		return locateSpan(&ast.RangeExpr{From: left, To: right, Inclusive: !strings.HasSuffix(operator, "<")}, operatorSpan(ops)), nil
	case "?:":
		return locate(&ast.ElvisExpr{Base: left, FalseExpr: right}, n), nil
	}
	first := ops[0].Start()
	tok := ast.NewToken(operator, first.Line, first.Column)
	return locateSpan(&ast.BinaryExpr{Left: left, Operation: tok, Right: right}, operatorSpan(ops)), nil
}

func (ctx *BuildContext) buildInstanceof(n *cst.Node) (ast.Expression, error) {
	leftNode := n.ChildByFieldName("left")
	rightNode := n.ChildByFieldName("right")
	op := n.FirstChildOfKind("instanceof")
	if leftNode == nil || rightNode == nil || op == nil {
		return nil, ctx.unsupported(n, "instanceof expression")
	}
	left, err := ctx.buildExpression(leftNode)
	if err != nil {
		return nil, err
	}
	t, err := ctx.buildType(rightNode)
	if err != nil {
		return nil, err
	}
	right := locate(&ast.ClassExpr{Type: t}, rightNode)
	return locateSpan(&ast.BinaryExpr{Left: left, Operation: tokenOf(op), Right: right}, spanOf(op)), nil
}

// buildUnary folds a sign into a numeric literal operand. Other unary nodes
// are located at their operator.
func (ctx *BuildContext) buildUnary(n *cst.Node) (ast.Expression, error) {
	op := n.ChildByFieldName("operator")
	operand := n.ChildByFieldName("operand")
	if op == nil || operand == nil {
		children := n.Children()
		if len(children) != 2 {
			return nil, ctx.unsupported(n, "unary expression")
		}
		op, operand = children[0], children[1]
	}

	if (op.Text() == "-" || op.Text() == "+") && isNumberLiteral(operand) {
		sign := ""
		if op.Text() == "-" {
			sign = "-"
		}
		c, err := ctx.buildNumber(operand, sign)
		if err != nil {
			return nil, err
		}
		return locate(c, n), nil
	}

	inner, err := ctx.buildExpression(operand)
	if err != nil {
		return nil, err
	}
	var out ast.Expression
	switch op.Text() {
	case "-":
		out = &ast.UnaryMinusExpr{Expression: inner}
	case "+":
		out = &ast.UnaryPlusExpr{Expression: inner}
	case "!":
		out = &ast.NotExpr{Expression: inner}
	case "~":
		out = &ast.BitwiseNegationExpr{Expression: inner}
	default:
		return nil, ctx.unsupported(n, "unary operator")
	}
	return locate(out, op), nil
}

// buildUpdate handles ++ and -- on either side of the operand
func (ctx *BuildContext) buildUpdate(n *cst.Node) (ast.Expression, error) {
	children := n.Children()
	if len(children) != 2 {
		return nil, ctx.unsupported(n, "update expression")
	}
	if !children[0].IsNamed() {
		inner, err := ctx.buildExpression(children[1])
		if err != nil {
			return nil, err
		}
		return locate(&ast.PrefixExpr{Operation: tokenOf(children[0]), Expression: inner}, n), nil
	}
	inner, err := ctx.buildExpression(children[0])
	if err != nil {
		return nil, err
	}
	return locate(&ast.PostfixExpr{Expression: inner, Operation: tokenOf(children[1])}, n), nil
}

// buildCondition wraps an expression in a BooleanExpr located like it
func (ctx *BuildContext) buildCondition(n *cst.Node) (*ast.BooleanExpr, error) {
	e, err := ctx.buildExpression(n)
	if err != nil {
		return nil, err
	}
	return ast.CopyLocation(&ast.BooleanExpr{Expression: e}, e), nil
}

func (ctx *BuildContext) buildTernary(n *cst.Node) (ast.Expression, error) {
	condNode := n.ChildByFieldName("condition")
	trueNode := n.ChildByFieldName("consequence")
	falseNode := n.ChildByFieldName("alternative")
	if condNode == nil || trueNode == nil || falseNode == nil {
		return nil, ctx.unsupported(n, "ternary expression")
	}
	cond, err := ctx.buildCondition(condNode)
	if err != nil {
		return nil, err
	}
	t, err := ctx.buildExpression(trueNode)
	if err != nil {
		return nil, err
	}
	f, err := ctx.buildExpression(falseNode)
	if err != nil {
		return nil, err
	}
	return locate(&ast.TernaryExpr{Condition: cond, TrueExpr: t, FalseExpr: f}, n), nil
}

func (ctx *BuildContext) buildElvis(n *cst.Node) (ast.Expression, error) {
	leftNode, _, rightNode := operands(n)
	if leftNode == nil || rightNode == nil {
		return nil, ctx.unsupported(n, "elvis expression")
	}
	base, err := ctx.buildExpression(leftNode)
	if err != nil {
		return nil, err
	}
	f, err := ctx.buildExpression(rightNode)
	if err != nil {
		return nil, err
	}
	return locate(&ast.ElvisExpr{Base: base, FalseExpr: f}, n), nil
}

func (ctx *BuildContext) buildCast(n *cst.Node) (ast.Expression, error) {
	typeNode := n.ChildByFieldName("type")
	valueNode := n.ChildByFieldName("value")
	if typeNode == nil || valueNode == nil {
		return nil, ctx.unsupported(n, "cast expression")
	}
	t, err := ctx.buildType(typeNode)
	if err != nil {
		return nil, err
	}
	e, err := ctx.buildExpression(valueNode)
	if err != nil {
		return nil, err
	}
	return locate(&ast.CastExpr{Type: t, Expression: e}, n), nil
}

// buildFieldAccess handles obj.name and its safe, spread, attribute and
// method pointer variants.
func (ctx *BuildContext) buildFieldAccess(n *cst.Node) (ast.Expression, error) {
	objNode := n.ChildByFieldName("object")
	fieldNode := n.ChildByFieldName("field")
	if objNode == nil || fieldNode == nil {
		return nil, ctx.unsupported(n, "field access")
	}
	op := "."
	if tok := n.FirstChildOfKind(".", "?.", "*.", ".@", ".&", "?.@", "*.@"); tok != nil {
		op = tok.Kind()
	}

	var obj ast.Expression
	name := fieldNode.Text()
	if name == "this" || name == "super" {
		// Outer.this names the enclosing instance
		t, err := ctx.buildType(objNode)
		if err != nil {
			return nil, err
		}
		obj = locate(&ast.ClassExpr{Type: t}, objNode)
	} else {
		var err error
		obj, err = ctx.buildExpression(objNode)
		if err != nil {
			return nil, err
		}
	}
	prop := constantString(name, fieldNode)

	switch op {
	case ".&":
		return locate(&ast.MethodPointerExpr{Object: obj, Method: prop}, n), nil
	case ".@", "?.@", "*.@":
		return locate(&ast.AttributeExpr{Object: obj, Property: prop, Safe: op == "?.@", SpreadSafe: op == "*.@"}, n), nil
	}
	return locate(&ast.PropertyExpr{Object: obj, Property: prop, Safe: op == "?.", SpreadSafe: op == "*."}, n), nil
}

// buildScopedIdentifier turns a.b.c into a property chain
func (ctx *BuildContext) buildScopedIdentifier(n *cst.Node) (ast.Expression, error) {
	scope := n.ChildByFieldName("scope")
	name := n.ChildByFieldName("name")
	if scope == nil || name == nil {
		return nil, ctx.unsupported(n, "scoped identifier")
	}
	obj, err := ctx.buildExpression(scope)
	if err != nil {
		return nil, err
	}
	return locate(&ast.PropertyExpr{Object: obj, Property: constantString(name.Text(), name)}, n), nil
}

// buildPath turns a dotted path into a variable or property chain
func (ctx *BuildContext) buildPath(n *cst.Node) (ast.Expression, error) {
	ids := identifiers(n)
	if len(ids) == 0 {
		return nil, ctx.unsupported(n, "path expression")
	}
	return propertyChain(ids), nil
}

// propertyChain starts from a variable for ids[0] and adds a property per
// remaining identifier, each located from the first identifier to its own.
func propertyChain(ids []*cst.Node) ast.Expression {
	var obj ast.Expression = locate(&ast.VariableExpr{Name: ids[0].Text()}, ids[0])
	for _, id := range ids[1:] {
		obj = locateSpan(&ast.PropertyExpr{Object: obj, Property: constantString(id.Text(), id)}, spanBetween(ids[0], id))
	}
	return obj
}

// buildArrayAccess handles Java style a[i]
func (ctx *BuildContext) buildArrayAccess(n *cst.Node) (ast.Expression, error) {
	arrNode := n.ChildByFieldName("array")
	idxNode := n.ChildByFieldName("index")
	bracket := n.FirstChildOfKind("[")
	if arrNode == nil || idxNode == nil || bracket == nil {
		return nil, ctx.unsupported(n, "array access")
	}
	arr, err := ctx.buildExpression(arrNode)
	if err != nil {
		return nil, err
	}
	idx, err := ctx.buildExpression(idxNode)
	if err != nil {
		return nil, err
	}
	return locate(&ast.BinaryExpr{Left: arr, Operation: tokenOf(bracket), Right: idx}, n), nil
}

// buildIndexExpression handles a[i], a[i, j] and a[*xs]. Several indices are
// wrapped into one list; a lone spread index is wrapped into a one element
// list.
func (ctx *BuildContext) buildIndexExpression(n *cst.Node) (ast.Expression, error) {
	objNode := n.ChildByFieldName("object")
	idxNodes := n.ChildrenByFieldName("index")
	bracket := n.FirstChildOfKind("[")
	if objNode == nil || len(idxNodes) == 0 || bracket == nil {
		return nil, ctx.unsupported(n, "index expression")
	}
	obj, err := ctx.buildExpression(objNode)
	if err != nil {
		return nil, err
	}
	var indices []ast.Expression
	for _, in := range idxNodes {
		e, err := ctx.buildExpression(in)
		if err != nil {
			return nil, err
		}
		indices = append(indices, e)
	}

	var index ast.Expression
	switch {
	case len(indices) > 1:
		first := idxNodes[0].StartToken()
		lastTok := idxNodes[len(idxNodes)-1].StartToken()
		index = locateSpan(&ast.ListExpr{Expressions: indices, Wrapped: true}, spanBetween(first, lastTok))
	default:
		index = indices[0]
		if _, ok := index.(*ast.SpreadExpr); ok {
			index = locate(&ast.ListExpr{Expressions: indices}, idxNodes[0])
		}
	}
	return locate(&ast.BinaryExpr{Left: obj, Operation: tokenOf(bracket), Right: index}, n), nil
}

func (ctx *BuildContext) buildListLiteral(n *cst.Node) (ast.Expression, error) {
	list := locate(&ast.ListExpr{}, n)
	for _, c := range n.NamedChildren() {
		e, err := ctx.buildExpression(c)
		if err != nil {
			return nil, err
		}
		list.Expressions = append(list.Expressions, e)
	}
	return list, nil
}

func (ctx *BuildContext) buildMapLiteral(n *cst.Node) (ast.Expression, error) {
	m := locate(&ast.MapExpr{}, n)
	for _, c := range n.ChildrenOfKind("map_entry") {
		entry, err := ctx.buildMapEntry(c)
		if err != nil {
			return nil, err
		}
		m.Entries = append(m.Entries, entry)
	}
	return m, nil
}

// buildMapEntry handles key: value and *: map. Bare identifier keys are
// strings.
func (ctx *BuildContext) buildMapEntry(n *cst.Node) (*ast.MapEntryExpr, error) {
	keyNode := n.ChildByFieldName("key")
	valueNode := n.ChildByFieldName("value")
	if valueNode == nil {
		return nil, ctx.unsupported(n, "map entry")
	}
	value, err := ctx.buildExpression(valueNode)
	if err != nil {
		return nil, err
	}
	var key ast.Expression
	switch {
	case keyNode == nil && n.HasChild("*"):
		key = locate(&ast.SpreadMapExpr{Expression: value}, n.FirstChildOfKind("*"))
	case keyNode == nil:
		return nil, ctx.unsupported(n, "map entry")
	case keyNode.Kind() == "identifier":
		key = constantString(keyNode.Text(), keyNode)
	default:
		key, err = ctx.buildExpression(keyNode)
		if err != nil {
			return nil, err
		}
	}
	return locate(&ast.MapEntryExpr{Key: key, Value: value}, n), nil
}

// buildArrayCreation handles new T[n][m] and new T[]{...}
func (ctx *BuildContext) buildArrayCreation(n *cst.Node) (ast.Expression, error) {
	typeNode := n.ChildByFieldName("type")
	if typeNode == nil {
		return nil, ctx.unsupported(n, "array creation")
	}
	elem, err := ctx.buildType(typeNode)
	if err != nil {
		return nil, err
	}
	if init := n.ChildByFieldName("value"); init != nil {
		dims := n.FirstChildOfKind("dimensions")
		elemType := elem
		if dims != nil {
			// the initializer holds the elements of the outermost dimension
			pairs := len(dims.ChildrenOfKind("["))
			for i := 1; i < pairs; i++ {
				elemType = elemType.MakeArray(spanOf(typeNode))
			}
		}
		arr, err := ctx.buildArrayInitializer(init, elemType)
		if err != nil {
			return nil, err
		}
		return locate(arr, n), nil
	}

	arr := locate(&ast.ArrayExpr{ElementType: elem}, n)
	for _, d := range n.ChildrenOfKind("dimensions_expr") {
		size, err := ctx.onlyOperand(d)
		if err != nil {
			return nil, err
		}
		arr.Sizes = append(arr.Sizes, size)
	}
	if dims := n.FirstChildOfKind("dimensions"); dims != nil {
		arr.ElementType = arrayOf(elem, dims, typeNode)
	}
	return arr, nil
}

// buildArrayInitializer builds {a, b} with the given element type. Nested
// initializers use the component type.
func (ctx *BuildContext) buildArrayInitializer(n *cst.Node, elem *ast.TypeRef) (*ast.ArrayExpr, error) {
	arr := locate(&ast.ArrayExpr{ElementType: elem}, n)
	for _, c := range n.NamedChildren() {
		var (
			e   ast.Expression
			err error
		)
		if c.Kind() == "array_initializer" {
			inner := elem
			if elem.Component != nil {
				inner = elem.Component
			}
			e, err = ctx.buildArrayInitializer(c, inner)
		} else {
			e, err = ctx.buildExpression(c)
		}
		if err != nil {
			return nil, err
		}
		arr.Expressions = append(arr.Expressions, e)
	}
	return arr, nil
}

// buildMethodReference maps Type::name and expr::name onto method pointers
func (ctx *BuildContext) buildMethodReference(n *cst.Node) (ast.Expression, error) {
	children := n.Children()
	if len(children) < 3 {
		return nil, ctx.unsupported(n, "method reference")
	}
	targetNode := children[0]
	nameNode := children[len(children)-1]

	var target ast.Expression
	switch targetNode.Kind() {
	case "type_identifier", "scoped_type_identifier", "generic_type", "array_type", "integral_type",
		"floating_point_type", "boolean_type":
		t, err := ctx.buildType(targetNode)
		if err != nil {
			return nil, err
		}
		target = locate(&ast.ClassExpr{Type: t}, targetNode)
	default:
		var err error
		target, err = ctx.buildExpression(targetNode)
		if err != nil {
			return nil, err
		}
	}
	return locate(&ast.MethodPointerExpr{Object: target, Method: constantString(nameNode.Text(), nameNode)}, n), nil
}
