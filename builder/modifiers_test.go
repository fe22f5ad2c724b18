package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heshanpadmasiri/groovyast/ast"
	"github.com/heshanpadmasiri/groovyast/cst"
	"github.com/heshanpadmasiri/groovyast/diagnostics"
)

func modifiers(keywords ...string) *cst.Node {
	mods := cst.New("modifiers")
	for _, kw := range keywords {
		mods.Append(cst.Sym(kw))
	}
	return cst.Place(mods)
}

func TestResolveModifiersOrderIndependent(t *testing.T) {
	ctx := newBuildContext()
	a, explicitA := ctx.resolveModifiers(modifiers("public", "static", "final"), memberModifiers, 0)
	b, explicitB := ctx.resolveModifiers(modifiers("final", "static", "public"), memberModifiers, 0)
	assert.Equal(t, a, b)
	assert.Equal(t, ast.ACC_PUBLIC|ast.ACC_STATIC|ast.ACC_FINAL, a)
	assert.True(t, explicitA)
	assert.True(t, explicitB)
	assert.Empty(t, ctx.handler.Diagnostics())
}

func TestResolveModifiersDefaultVisibility(t *testing.T) {
	ctx := newBuildContext()
	mods, explicit := ctx.resolveModifiers(modifiers("static"), memberModifiers, ast.ACC_PUBLIC)
	assert.Equal(t, ast.ACC_PUBLIC|ast.ACC_STATIC, mods)
	assert.False(t, explicit)

	mods, explicit = ctx.resolveModifiers(nil, memberModifiers, 0)
	assert.Equal(t, ast.Modifiers(0), mods)
	assert.False(t, explicit)
}

func TestResolveModifiersDiagnostics(t *testing.T) {
	tests := []struct {
		name     string
		keywords []string
		allowed  map[string]ast.Modifiers
		want     ast.Modifiers
		message  string
		column   int
	}{
		{
			name:     "repeated keyword",
			keywords: []string{"static", "static"},
			allowed:  memberModifiers,
			want:     ast.ACC_STATIC,
			message:  "Cannot repeat modifier: static",
			column:   8,
		},
		{
			name:     "repeated visibility",
			keywords: []string{"private", "private"},
			allowed:  memberModifiers,
			want:     ast.ACC_PRIVATE,
			message:  "Cannot repeat modifier: private",
			column:   9,
		},
		{
			name:     "conflicting visibility",
			keywords: []string{"public", "private"},
			allowed:  memberModifiers,
			want:     ast.ACC_PUBLIC,
			message:  "Cannot specify modifier: private when access modifier: public has already been specified",
			column:   8,
		},
		{
			name:     "not allowed",
			keywords: []string{"final", "native"},
			allowed:  classModifiers,
			want:     ast.ACC_FINAL,
			message:  "Modifier not allowed here: native",
			column:   7,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var list diagnostics.List
			ctx := newBuildContext(WithCollector(&list))
			mods, _ := ctx.resolveModifiers(modifiers(tt.keywords...), tt.allowed, 0)
			assert.Equal(t, tt.want, mods)
			require.Equal(t, 1, list.Len())
			d := list.Items()[0]
			assert.Equal(t, tt.message, d.Message)
			assert.Equal(t, 1, d.Line)
			assert.Equal(t, tt.column, d.Column)
			assert.Equal(t, diagnostics.SeverityError, d.Severity)
		})
	}
}

func TestResolveClassModifiers(t *testing.T) {
	ctx := newBuildContext()
	mods, syntheticPublic := ctx.resolveClassModifiers(modifiers("abstract"))
	assert.Equal(t, ast.ACC_PUBLIC|ast.ACC_ABSTRACT, mods)
	assert.True(t, syntheticPublic)

	mods, syntheticPublic = ctx.resolveClassModifiers(modifiers("private", "static"))
	assert.Equal(t, ast.ACC_PRIVATE|ast.ACC_STATIC, mods)
	assert.False(t, syntheticPublic)
}

func TestForceModifiers(t *testing.T) {
	forced := forceModifiers(ast.ACC_PRIVATE|ast.ACC_STATIC, ast.ACC_PUBLIC|ast.ACC_ABSTRACT)
	assert.Equal(t, ast.ACC_PUBLIC|ast.ACC_STATIC|ast.ACC_ABSTRACT, forced)
	assert.Equal(t, ast.ACC_PUBLIC, forced.Visibility())
}

func TestInterfaceMembersArePublic(t *testing.T) {
	src := `interface I {
  private int X = 1;
  private void f();
  protected int g();
  int h();
}
@interface A {
  private int v() default 1;
}
`
	mod, diags := buildJava(t, src)
	assert.Zero(t, diags.Len())

	iface := mod.ClassNamed("I")
	require.NotNil(t, iface)
	x := iface.Field("X")
	require.NotNil(t, x)
	assert.Equal(t, ast.ACC_PUBLIC|ast.ACC_STATIC|ast.ACC_FINAL, x.Modifiers)
	for _, name := range []string{"f", "g", "h"} {
		m := iface.Method(name)
		require.NotNil(t, m, name)
		assert.Equal(t, ast.ACC_PUBLIC|ast.ACC_ABSTRACT, m.Modifiers, name)
	}

	v := mod.ClassNamed("A").Method("v")
	require.NotNil(t, v)
	assert.Equal(t, ast.ACC_PUBLIC|ast.ACC_ABSTRACT, v.Modifiers)
	assert.True(t, v.AnnotationDefault)
}
