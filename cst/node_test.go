package cst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCall() *Node {
	// foo.bar(1, x)
	return Place(New("method_invocation",
		Ident("foo").Field("object"),
		Sym("."),
		Ident("bar").Field("name"),
		New("argument_list",
			Sym("("),
			Leaf("decimal_integer_literal", "1"),
			Sym(","),
			Ident("x"),
			Sym(")"),
		).Field("arguments"),
	))
}

func TestAccessors(t *testing.T) {
	n := sampleCall()
	assert.Equal(t, "method_invocation", n.Kind())
	assert.Equal(t, "bar", n.ChildByFieldName("name").Text())
	assert.Nil(t, n.ChildByFieldName("missing"))
	assert.Len(t, n.NamedChildren(), 3)
	assert.Equal(t, "argument_list", n.FirstChildOfKind("block", "argument_list").Kind())
	assert.True(t, n.HasChild("."))
	assert.Nil(t, n.Child(10))

	args := n.ChildByFieldName("arguments")
	assert.Same(t, n, args.Parent())
	assert.Len(t, args.NamedChildren(), 2)
	assert.Equal(t, "(1,x)", args.Text())
	assert.Equal(t, "(method_invocation object: (identifier) name: (identifier) arguments: (argument_list (decimal_integer_literal) (identifier)))", n.ToSexp())
}

func TestPlace(t *testing.T) {
	n := sampleCall()
	// tokens: foo . bar ( 1 , x )
	assert.Equal(t, Position{Line: 1, Column: 1}, n.Start())
	assert.Equal(t, Position{Line: 1, Column: 5}, n.Child(1).Start())
	assert.Equal(t, Position{Line: 1, Column: 7}, n.ChildByFieldName("name").Start())
	assert.Equal(t, ")", n.EndToken().Text())
	assert.Equal(t, Position{Line: 1, Column: 19}, n.EndToken().Start())
	assert.Equal(t, Position{Line: 1, Column: 20}, n.End())
	assert.Equal(t, "foo", n.StartToken().Text())
}

func TestPlacePinned(t *testing.T) {
	n := Place(New("block",
		Sym("{"),
		Ident("a").At(3, 5),
		Sym("}"),
	))
	assert.Equal(t, Position{Line: 1, Column: 1}, n.Start())
	assert.Equal(t, Position{Line: 3, Column: 7}, n.Child(2).Start())
	assert.Equal(t, Position{Line: 3, Column: 8}, n.End())
}

func TestAdvance(t *testing.T) {
	assert.Equal(t, Position{Line: 1, Column: 6}, Advance(Position{Line: 1, Column: 4}, "日本"))
	assert.Equal(t, Position{Line: 3, Column: 5}, Advance(Position{Line: 1, Column: 4}, "\"\"\"a\nb\nc\"\"\""))
}

func TestParseJava(t *testing.T) {
	src := []byte("class A { String s = \"日本\"; int y; }\n")
	root, err := ParseJava(src)
	require.NoError(t, err)
	assert.Equal(t, "program", root.Kind())

	class := root.FirstChildOfKind("class_declaration")
	require.NotNil(t, class)
	assert.Equal(t, "A", class.ChildByFieldName("name").Text())

	body := class.ChildByFieldName("body")
	require.NotNil(t, body)
	fields := body.ChildrenOfKind("field_declaration")
	require.Len(t, fields, 2)

	decl := fields[0].ChildByFieldName("declarator")
	require.NotNil(t, decl)
	value := decl.ChildByFieldName("value")
	require.NotNil(t, value)
	assert.Equal(t, "string_literal", value.Kind())
	assert.True(t, value.IsLeaf())
	assert.Equal(t, "\"日本\"", value.Text())

	// columns count characters, not bytes
	typ := fields[1].ChildByFieldName("type")
	require.NotNil(t, typ)
	assert.Equal(t, Position{Line: 1, Column: 28}, typ.Start())
}

func TestParseJavaDropsComments(t *testing.T) {
	root, err := ParseJava([]byte("// header\nclass A { /* x */ }\n"))
	require.NoError(t, err)
	for _, c := range root.Children() {
		assert.NotEqual(t, "line_comment", c.Kind())
	}
	class := root.FirstChildOfKind("class_declaration")
	require.NotNil(t, class)
	assert.Equal(t, 2, class.Start().Line)
	body := class.ChildByFieldName("body")
	assert.Len(t, body.Children(), 2)
}

func TestParseJavaSyntaxError(t *testing.T) {
	_, err := ParseJava([]byte("class { int }"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSyntax)
}
