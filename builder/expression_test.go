package builder

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heshanpadmasiri/groovyast/ast"
	"github.com/heshanpadmasiri/groovyast/cst"
	"github.com/heshanpadmasiri/groovyast/diagnostics"
)

func TestIndexExpression(t *testing.T) {
	t.Run("single index", func(t *testing.T) {
		e := buildExpr(t, cst.New("index_expression",
			cst.Ident("a").Field("object"),
			cst.Sym("["),
			num("1").Field("index"),
			cst.Sym("]"),
		))
		bin, ok := e.(*ast.BinaryExpr)
		require.True(t, ok)
		assert.Equal(t, ast.TokenIndex, bin.Operation.Type)
		c, ok := bin.Right.(*ast.ConstantExpr)
		require.True(t, ok)
		assert.Equal(t, int32(1), c.Value)
	})

	t.Run("several indices are wrapped", func(t *testing.T) {
		// a [ 1 , 2 ] ;
		e := buildExpr(t, cst.New("index_expression",
			cst.Ident("a").Field("object"),
			cst.Sym("["),
			num("1").Field("index"),
			cst.Sym(","),
			num("2").Field("index"),
			cst.Sym("]"),
		))
		bin, ok := e.(*ast.BinaryExpr)
		require.True(t, ok)
		assert.Equal(t, span(1, 1, 1, 12), bin.Location())
		assert.Equal(t, 3, bin.Operation.Column)
		list, ok := bin.Right.(*ast.ListExpr)
		require.True(t, ok)
		assert.True(t, list.Wrapped)
		assert.Len(t, list.Expressions, 2)
		assert.Equal(t, span(1, 5, 1, 10), list.Location())
	})

	t.Run("spread index", func(t *testing.T) {
		// a [ * x ] ;
		e := buildExpr(t, cst.New("index_expression",
			cst.Ident("a").Field("object"),
			cst.Sym("["),
			cst.New("spread_expression", cst.Sym("*"), cst.Ident("x")).Field("index"),
			cst.Sym("]"),
		))
		bin := e.(*ast.BinaryExpr)
		list, ok := bin.Right.(*ast.ListExpr)
		require.True(t, ok)
		assert.False(t, list.Wrapped)
		require.Len(t, list.Expressions, 1)
		assert.IsType(t, &ast.SpreadExpr{}, list.Expressions[0])
		assert.Equal(t, span(1, 5, 1, 8), list.Location())
	})
}

func TestShiftFromSplitTokens(t *testing.T) {
	e := buildExpr(t, cst.New("binary_expression",
		cst.Ident("a").Field("left"),
		cst.Sym(">").At(1, 3),
		cst.Sym(">").At(1, 4),
		cst.Sym(">").At(1, 5),
		cst.Ident("b").Field("right"),
	))
	bin, ok := e.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ">>>", bin.Operation.Text)
	assert.Equal(t, ast.TokenRightShiftUnsigned, bin.Operation.Type)
	assert.Equal(t, span(1, 3, 1, 6), bin.Location())
}

func TestBinaryOperatorForms(t *testing.T) {
	binary := func(op string, right *cst.Node) *cst.Node {
		return cst.New("binary_expression", cst.Ident("x").Field("left"), cst.Sym(op), right.Field("right"))
	}

	r, ok := buildExpr(t, binary("..", num("5"))).(*ast.RangeExpr)
	require.True(t, ok)
	assert.True(t, r.Inclusive)
	assert.Equal(t, span(1, 3, 1, 5), r.Location())

	r, ok = buildExpr(t, binary("..<", num("5"))).(*ast.RangeExpr)
	require.True(t, ok)
	assert.False(t, r.Inclusive)
	assert.Equal(t, span(1, 3, 1, 6), r.Location())

	cast, ok := buildExpr(t, binary("as", cst.Leaf("type_identifier", "String"))).(*ast.CastExpr)
	require.True(t, ok)
	assert.True(t, cast.Coerce)
	assert.Equal(t, "String", cast.Type.Name)
	assert.Equal(t, span(1, 3, 1, 5), cast.Location())

	inst, ok := buildExpr(t, binary("instanceof", cst.Leaf("type_identifier", "List"))).(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.TokenInstanceof, inst.Operation.Type)
	assert.IsType(t, &ast.ClassExpr{}, inst.Right)

	elvis, ok := buildExpr(t, cst.New("elvis_expression", cst.Ident("a"), cst.Sym("?:"), cst.Ident("b"))).(*ast.ElvisExpr)
	require.True(t, ok)
	assert.Equal(t, "a", elvis.Base.(*ast.VariableExpr).Name)

	assign, ok := buildExpr(t, cst.New("assignment_expression",
		cst.Ident("x").Field("left"), cst.Sym("+=").Field("operator"), num("1").Field("right"))).(*ast.BinaryExpr)
	require.True(t, ok)
	assert.True(t, assign.Operation.IsAssignment())
	assert.Equal(t, span(1, 3, 1, 5), assign.Location())
}

func TestUnaryFolding(t *testing.T) {
	e := buildExpr(t, cst.New("unary_expression",
		cst.Sym("-").Field("operator"),
		num("5").Field("operand"),
	))
	c, ok := e.(*ast.ConstantExpr)
	require.True(t, ok)
	assert.Equal(t, int32(-5), c.Value)
	assert.False(t, c.DirectType)
	assert.Equal(t, span(1, 1, 1, 4), c.Location())

	e = buildExpr(t, cst.New("unary_expression",
		cst.Sym("!").Field("operator"),
		cst.Ident("x").Field("operand"),
	))
	not, ok := e.(*ast.NotExpr)
	require.True(t, ok)
	assert.Equal(t, span(1, 1, 1, 2), not.Location())

	e = buildExpr(t, cst.New("update_expression", cst.Ident("i"), cst.Sym("++")))
	post, ok := e.(*ast.PostfixExpr)
	require.True(t, ok)
	assert.Equal(t, ast.TokenIncrement, post.Operation.Type)
}

func TestFieldAccessForms(t *testing.T) {
	access := func(op string) ast.Expression {
		return buildExpr(t, cst.New("field_access",
			cst.Ident("obj").Field("object"), cst.Sym(op), cst.Ident("name").Field("field")))
	}
	p, ok := access(".").(*ast.PropertyExpr)
	require.True(t, ok)
	assert.Equal(t, "name", p.PropertyName())
	assert.False(t, p.Safe)

	p = access("?.").(*ast.PropertyExpr)
	assert.True(t, p.Safe)
	p = access("*.").(*ast.PropertyExpr)
	assert.True(t, p.SpreadSafe)
	assert.IsType(t, &ast.AttributeExpr{}, access(".@"))
	assert.IsType(t, &ast.MethodPointerExpr{}, access(".&"))

	outer := buildExpr(t, cst.New("field_access",
		cst.Leaf("type_identifier", "Outer").Field("object"), cst.Sym("."), cst.Leaf("this", "this").Field("field")))
	p, ok = outer.(*ast.PropertyExpr)
	require.True(t, ok)
	assert.Equal(t, "this", p.PropertyName())
	assert.Equal(t, "Outer", p.Object.(*ast.ClassExpr).Type.Name)
}

func TestMapLiteral(t *testing.T) {
	e := buildExpr(t, cst.New("map_literal",
		cst.Sym("["),
		cst.New("map_entry", cst.Ident("a").Field("key"), cst.Sym(":"), num("1").Field("value")),
		cst.Sym(","),
		cst.New("map_entry", cst.Sym("*"), cst.Sym(":"), cst.Ident("m").Field("value")),
		cst.Sym("]"),
	))
	m, ok := e.(*ast.MapExpr)
	require.True(t, ok)
	require.Len(t, m.Entries, 2)
	assert.Equal(t, "a", m.Entries[0].Key.(*ast.ConstantExpr).Value)
	spread, ok := m.Entries[1].Key.(*ast.SpreadMapExpr)
	require.True(t, ok)
	assert.Equal(t, "m", spread.Expression.(*ast.VariableExpr).Name)
	assert.Same(t, spread.Expression, m.Entries[1].Value)
}

func TestGString(t *testing.T) {
	e := buildExpr(t, cst.New("gstring",
		cst.Leaf("gstring_start", `"a$`),
		cst.New("gstring_value", cst.New("gstring_path", cst.Ident("x"), cst.Leaf("gstring_path_part", ".y"))),
		cst.Leaf("gstring_part", `b$`),
		cst.New("gstring_value", cst.Sym("{"), cst.Sym("}")),
		cst.Leaf("gstring_part", `c$`),
		cst.New("gstring_value", cst.Sym("{"),
			cst.New("closure_expression", cst.Sym("{"), exprStmt(cst.Ident("z")), cst.Sym("}")),
			cst.Sym("}")),
		cst.Leaf("gstring_end", `d"`),
	))
	g, ok := e.(*ast.GStringExpr)
	require.True(t, ok)
	var strs []string
	for _, s := range g.Strings {
		strs = append(strs, s.Value.(string))
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, strs)
	require.Len(t, g.Values, 3)

	path, ok := g.Values[0].(*ast.PropertyExpr)
	require.True(t, ok)
	assert.Equal(t, "y", path.PropertyName())
	assert.Equal(t, "x", path.Object.(*ast.VariableExpr).Name)

	assert.Equal(t, ast.TypeNull, g.Values[1].(*ast.ConstantExpr).Type)

	call, ok := g.Values[2].(*ast.MethodCallExpr)
	require.True(t, ok)
	assert.Equal(t, "call", call.MethodName())
	assert.IsType(t, &ast.ClosureExpr{}, call.Object)
}

func TestCallExpressions(t *testing.T) {
	t.Run("dotted path", func(t *testing.T) {
		e := buildExpr(t, cst.New("call_expression",
			cst.New("path_expression", cst.Ident("a"), cst.Sym("."), cst.Ident("b"), cst.Sym("."), cst.Ident("c")).Field("function"),
			cst.New("argument_list", cst.Sym("("), num("1"), cst.Sym(")")).Field("arguments"),
		))
		call, ok := e.(*ast.MethodCallExpr)
		require.True(t, ok)
		assert.Equal(t, "c", call.MethodName())
		assert.False(t, call.ImplicitThis)
		prop, ok := call.Object.(*ast.PropertyExpr)
		require.True(t, ok)
		assert.Equal(t, "b", prop.PropertyName())
		assert.Len(t, ast.ArgumentExpressions(call.Arguments), 1)
	})

	t.Run("named arguments only", func(t *testing.T) {
		e := buildExpr(t, cst.New("call_expression",
			cst.New("path_expression", cst.Ident("foo")).Field("function"),
			cst.New("argument_list", cst.Sym("("),
				cst.New("map_entry", cst.Ident("x").Field("key"), cst.Sym(":"), num("1").Field("value")),
				cst.Sym(")")).Field("arguments"),
		))
		call := e.(*ast.MethodCallExpr)
		assert.True(t, call.ImplicitThis)
		assert.Equal(t, "this", call.Object.(*ast.VariableExpr).Name)
		tuple, ok := call.Arguments.(*ast.TupleExpr)
		require.True(t, ok)
		require.Len(t, tuple.Expressions, 1)
		named, ok := tuple.Expressions[0].(*ast.NamedArgumentListExpr)
		require.True(t, ok)
		assert.Len(t, named.Entries, 1)
	})

	t.Run("named arguments only with trailing closure", func(t *testing.T) {
		e := buildExpr(t, cst.New("call_expression",
			cst.New("path_expression", cst.Ident("foo")).Field("function"),
			cst.New("argument_list", cst.Sym("("),
				cst.New("map_entry", cst.Ident("x").Field("key"), cst.Sym(":"), num("1").Field("value")),
				cst.Sym(")")).Field("arguments"),
			cst.New("closure_expression", cst.Sym("{"), cst.Sym("}")),
		))
		call := e.(*ast.MethodCallExpr)
		tuple, ok := call.Arguments.(*ast.TupleExpr)
		require.True(t, ok)
		require.Len(t, tuple.Expressions, 2)
		assert.IsType(t, &ast.NamedArgumentListExpr{}, tuple.Expressions[0])
		assert.IsType(t, &ast.ClosureExpr{}, tuple.Expressions[1])
	})

	t.Run("named and positional with trailing closure", func(t *testing.T) {
		e := buildExpr(t, cst.New("call_expression",
			cst.New("path_expression", cst.Ident("foo")).Field("function"),
			cst.New("argument_list", cst.Sym("("),
				cst.New("map_entry", cst.Ident("x").Field("key"), cst.Sym(":"), num("1").Field("value")),
				cst.Sym(","),
				num("2"),
				cst.Sym(")")).Field("arguments"),
			cst.New("closure_expression", cst.Sym("{"), cst.Sym("}")),
		))
		call := e.(*ast.MethodCallExpr)
		args, ok := call.Arguments.(*ast.ArgumentListExpr)
		require.True(t, ok)
		require.Len(t, args.Expressions, 3)
		assert.IsType(t, &ast.MapExpr{}, args.Expressions[0])
		assert.IsType(t, &ast.ConstantExpr{}, args.Expressions[1])
		assert.IsType(t, &ast.ClosureExpr{}, args.Expressions[2])
	})

	t.Run("path without arguments", func(t *testing.T) {
		e := buildExpr(t, cst.New("call_expression",
			cst.New("path_expression", cst.Ident("a"), cst.Sym("."), cst.Ident("b")).Field("function"),
		))
		prop, ok := e.(*ast.PropertyExpr)
		require.True(t, ok)
		assert.Equal(t, "b", prop.PropertyName())
	})

	t.Run("this call", func(t *testing.T) {
		e := buildExpr(t, cst.New("call_expression",
			cst.Leaf("this", "this").Field("function"),
			cst.New("argument_list", cst.Sym("("), cst.Sym(")")).Field("arguments"),
		))
		call, ok := e.(*ast.ConstructorCallExpr)
		require.True(t, ok)
		assert.True(t, call.IsThisCall)
		assert.Equal(t, DefaultScriptClassName, call.Type.Name)
	})

	t.Run("this and super by name", func(t *testing.T) {
		e := buildExpr(t, cst.New("call_expression",
			cst.New("path_expression", cst.Ident("this")).Field("function"),
			cst.New("argument_list", cst.Sym("("), num("1"), cst.Sym(")")).Field("arguments"),
		))
		call, ok := e.(*ast.ConstructorCallExpr)
		require.True(t, ok)
		assert.True(t, call.IsThisCall)
		assert.Len(t, ast.ArgumentExpressions(call.Arguments), 1)

		e = buildExpr(t, cst.New("call_expression",
			cst.Ident("super").Field("function"),
			cst.New("argument_list", cst.Sym("("), cst.Sym(")")).Field("arguments"),
		))
		call, ok = e.(*ast.ConstructorCallExpr)
		require.True(t, ok)
		assert.True(t, call.IsSuperCall)
		assert.Equal(t, "java.lang.Object", call.Type.Name)
	})

	t.Run("callee expression", func(t *testing.T) {
		e := buildExpr(t, cst.New("call_expression",
			cst.New("parenthesized_expression", cst.Sym("("), cst.Ident("f"), cst.Sym(")")).Field("function"),
			cst.New("argument_list", cst.Sym("("), cst.Sym(")")).Field("arguments"),
		))
		call := e.(*ast.MethodCallExpr)
		assert.Equal(t, "call", call.MethodName())
		assert.Equal(t, "f", call.Object.(*ast.VariableExpr).Name)
	})
}

func TestClassLiteralWithoutType(t *testing.T) {
	var list diagnostics.List
	mod, err := Build(program(exprStmt(cst.New("class_literal", cst.Sym("."), cst.Sym("class")))), WithCollector(&list))
	require.Error(t, err)
	assert.True(t, diagnostics.IsFatal(err))
	assert.Nil(t, mod)
}

func TestCommandExpression(t *testing.T) {
	// foo a b 1 c
	e := buildExpr(t, cst.New("command_expression",
		cst.New("path_expression", cst.Ident("foo")),
		cst.New("argument_list", cst.Ident("a")),
		cst.Ident("b"),
		cst.New("argument_list", num("1")),
		cst.Ident("c"),
	))
	prop, ok := e.(*ast.PropertyExpr)
	require.True(t, ok)
	assert.Equal(t, "c", prop.PropertyName())
	second, ok := prop.Object.(*ast.MethodCallExpr)
	require.True(t, ok)
	assert.Equal(t, "b", second.MethodName())
	first, ok := second.Object.(*ast.MethodCallExpr)
	require.True(t, ok)
	assert.Equal(t, "foo", first.MethodName())
	assert.True(t, first.ImplicitThis)
	assert.Equal(t, span(1, 1, 1, 12), prop.Location())
}

func TestTupleDeclaration(t *testing.T) {
	tuple := func(withValue bool) *cst.Node {
		n := cst.New("tuple_declaration",
			cst.Sym("def"), cst.Sym("("),
			cst.New("tuple_variable", cst.Ident("a").Field("name")),
			cst.Sym(","),
			cst.New("tuple_variable", cst.Ident("b").Field("name")),
			cst.Sym(")"),
		)
		if withValue {
			n.Append(cst.Sym("="))
			n.Append(cst.New("list_literal", cst.Sym("["), num("1"), cst.Sym(","), num("2"), cst.Sym("]")).Field("value"))
		}
		return n
	}

	mod, err := Build(program(tuple(true)))
	require.NoError(t, err)
	require.Len(t, mod.Statements, 1)
	decl := stmtExpr[*ast.DeclarationExpr](t, mod.Statements[0])
	left, ok := decl.Left.(*ast.TupleExpr)
	require.True(t, ok)
	assert.Len(t, left.Expressions, 2)
	assert.IsType(t, &ast.ListExpr{}, decl.Right)
	assert.Equal(t, objectType, decl.Type.Name)

	var list diagnostics.List
	mod, err = Build(program(tuple(false)), WithCollector(&list))
	require.Error(t, err)
	assert.Nil(t, mod)
	assert.True(t, diagnostics.IsFatal(err))
	require.Equal(t, 1, list.Len())
	assert.Equal(t, diagnostics.SeverityFatal, list.Items()[0].Severity)
}

func TestClosureParameters(t *testing.T) {
	e := buildExpr(t, cst.New("closure_expression",
		cst.Sym("{"),
		cst.New("closure_parameters",
			cst.New("formal_parameter", cst.Ident("a").Field("name")),
			cst.Sym(","),
			cst.New("formal_parameter", cst.Leaf("type_identifier", "int").Field("type"), cst.Ident("b").Field("name"))),
		cst.Sym("->"),
		exprStmt(cst.Ident("a")),
		cst.Sym("}"),
	))
	closure, ok := e.(*ast.ClosureExpr)
	require.True(t, ok)
	assert.True(t, closure.ExplicitParameters)
	require.Len(t, closure.Parameters, 2)
	assert.Equal(t, objectType, closure.Parameters[0].Type.Name)
	assert.Equal(t, "int", closure.Parameters[1].Type.Name)
	assert.Len(t, closure.Code.(*ast.BlockStmt).Statements, 1)
}

func TestScriptSpansValid(t *testing.T) {
	mod, err := Build(program(
		exprStmt(cst.New("command_expression",
			cst.New("path_expression", cst.Ident("println")),
			cst.New("argument_list", cst.New("list_literal", cst.Sym("["), num("1"), cst.Sym("]"))))),
		cst.New("for_in_statement",
			cst.Sym("for"), cst.Sym("("), cst.Ident("x").Field("name"), cst.Sym("in"),
			cst.Ident("xs").Field("value"), cst.Sym(")"),
			cst.New("block", cst.Sym("{"), cst.Sym("}")).Field("body")),
	))
	require.NoError(t, err)
	require.Len(t, mod.Statements, 2)
	loop, ok := mod.Statements[1].(*ast.ForStmt)
	require.True(t, ok)
	assert.Equal(t, objectType, loop.Variable.Type.Name)
	assert.False(t, loop.IsClassicFor())
	requireSpansValid(t, mod)

	var got []ast.Span
	ast.Inspect(mod.Statements[1], func(n ast.Node) bool {
		if _, ok := n.(*ast.VariableExpr); ok {
			got = append(got, n.Location())
		}
		return true
	})
	// only the collection xs is a variable, the loop variable is a parameter
	want := []ast.Span{span(1, 28, 1, 30)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("variable spans mismatch (-want +got):\n%s", diff)
	}
}
