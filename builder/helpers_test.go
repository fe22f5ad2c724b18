package builder

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/heshanpadmasiri/groovyast/ast"
	"github.com/heshanpadmasiri/groovyast/cst"
	"github.com/heshanpadmasiri/groovyast/diagnostics"
)

func buildJava(t *testing.T, src string) (*ast.Module, *diagnostics.List) {
	t.Helper()
	root, err := cst.ParseJava([]byte(src))
	require.NoError(t, err)
	var diags diagnostics.List
	mod, err := Build(root, WithCollector(&diags))
	require.NoError(t, err)
	return mod, &diags
}

// program wraps statements into a laid out program node
func program(stmts ...*cst.Node) *cst.Node {
	return cst.Place(cst.New("program", stmts...))
}

func exprStmt(e *cst.Node) *cst.Node {
	return cst.New("expression_statement", e, cst.Sym(";"))
}

func num(text string) *cst.Node {
	return cst.Leaf("decimal_integer_literal", text)
}

// buildExpr builds e as the only statement of a script
func buildExpr(t *testing.T, e *cst.Node) ast.Expression {
	t.Helper()
	mod, err := Build(program(exprStmt(e)))
	require.NoError(t, err)
	require.Len(t, mod.Statements, 1)
	stmt, ok := mod.Statements[0].(*ast.ExpressionStmt)
	require.True(t, ok)
	return stmt.Expression
}

func span(l1, c1, l2, c2 int) ast.Span {
	return ast.Span{StartLine: l1, StartColumn: c1, EndLine: l2, EndColumn: c2}
}

// requireSpansValid checks that every node under n has a proper span
func requireSpansValid(t *testing.T, n ast.Node) {
	t.Helper()
	ast.Inspect(n, func(node ast.Node) bool {
		loc := node.Location()
		require.Falsef(t, loc.IsZero(), "%T has no location", node)
		require.Truef(t, loc.Valid(), "%T has invalid location %s", node, loc)
		return true
	})
}

func methodBody(t *testing.T, m *ast.MethodDecl) []ast.Statement {
	t.Helper()
	require.NotNil(t, m)
	block, ok := m.Code.(*ast.BlockStmt)
	require.True(t, ok)
	return block.Statements
}

func stmtExpr[T ast.Expression](t *testing.T, s ast.Statement) T {
	t.Helper()
	es, ok := s.(*ast.ExpressionStmt)
	require.Truef(t, ok, "expected expression statement, got %T", s)
	e, ok := es.Expression.(T)
	require.Truef(t, ok, "unexpected expression %T", es.Expression)
	return e
}
