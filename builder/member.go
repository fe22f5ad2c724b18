package builder

import (
	"github.com/heshanpadmasiri/groovyast/ast"
	"github.com/heshanpadmasiri/groovyast/cst"
)

const (
	constructorName = "<init>"
	clinitName      = "<clinit>"
)

// buildClassBody adds the members of a class, interface, enum or annotation
// body to cls. The class must already be on the class stack.
func (ctx *BuildContext) buildClassBody(body *cst.Node, cls *ast.ClassDecl) error {
	for _, member := range body.NamedChildren() {
		if err := ctx.buildMember(member, cls); err != nil {
			return err
		}
	}
	return nil
}

func (ctx *BuildContext) buildMember(n *cst.Node, cls *ast.ClassDecl) error {
	switch n.Kind() {
	case "field_declaration", "constant_declaration":
		return ctx.buildFields(n, cls)
	case "method_declaration":
		m, err := ctx.buildMethod(n, cls)
		if err != nil {
			return err
		}
		cls.AddMember(m)
	case "constructor_declaration":
		c, err := ctx.buildConstructor(n)
		if err != nil {
			return err
		}
		cls.AddMember(c)
	case "static_initializer":
		return ctx.buildStaticInitializer(n, cls)
	case "block":
		block, err := ctx.buildBlock(n)
		if err != nil {
			return err
		}
		cls.ObjectInitializers = append(cls.ObjectInitializers, block)
	case "class_declaration", "interface_declaration", "enum_declaration", "annotation_type_declaration":
		_, err := ctx.buildTypeDeclaration(n)
		return err
	case "annotation_type_element_declaration":
		m, err := ctx.buildAnnotationElement(n)
		if err != nil {
			return err
		}
		cls.AddMember(m)
	case "enum_constant":
		return ctx.buildEnumConstant(n, cls)
	case "enum_body_declarations":
		return ctx.buildClassBody(n, cls)
	default:
		return ctx.unsupported(n, "class member")
	}
	return nil
}

// buildMethod builds a method of cls, or a script method when cls is nil.
// Interface methods are abstract and public.
func (ctx *BuildContext) buildMethod(n *cst.Node, cls *ast.ClassDecl) (*ast.MethodDecl, error) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return nil, ctx.unsupported(n, "method")
	}
	mods, explicit := ctx.resolveModifiers(modifiersOf(n), memberModifiers, ast.ACC_PUBLIC)
	if cls != nil && cls.IsInterface {
		mods = forceModifiers(mods, ast.ACC_ABSTRACT|ast.ACC_PUBLIC)
	}
	m := locate(&ast.MethodDecl{
		Name:            nameNode.Text(),
		Modifiers:       mods,
		SyntheticPublic: !explicit,
	}, n)
	if err := ctx.fillSignature(n, m); err != nil {
		return nil, err
	}
	returnType, err := ctx.buildOptionalType(n, "type")
	if err != nil {
		return nil, err
	}
	m.ReturnType = arrayOf(returnType, n.FirstChildOfKind("dimensions"), n)

	if body := n.ChildByFieldName("body"); body != nil {
		if err := ctx.buildMethodBody(m, body); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// fillSignature sets the annotations, type parameters, parameters and thrown
// types shared by methods and constructors.
func (ctx *BuildContext) fillSignature(n *cst.Node, m *ast.MethodDecl) error {
	var err error
	if m.Annotations, err = ctx.buildAnnotations(modifiersOf(n)); err != nil {
		return err
	}
	if m.Generics, err = ctx.buildTypeParameters(n.ChildByFieldName("type_parameters")); err != nil {
		return err
	}
	if m.Parameters, err = ctx.buildParameters(n.ChildByFieldName("parameters")); err != nil {
		return err
	}
	m.Exceptions, err = ctx.buildTypeList(n.FirstChildOfKind("throws"))
	return err
}

// buildMethodBody builds the body inside the method scope so that classes
// declared in it record m as their enclosing method.
func (ctx *BuildContext) buildMethodBody(m *ast.MethodDecl, body *cst.Node) error {
	ctx.pushMethod(m)
	defer ctx.popMethod()
	code, err := ctx.buildBlock(body)
	if err != nil {
		return err
	}
	m.Code = code
	return nil
}

// buildConstructor builds a constructor; only visibility may be given
func (ctx *BuildContext) buildConstructor(n *cst.Node) (*ast.ConstructorDecl, error) {
	mods, explicit := ctx.resolveModifiers(modifiersOf(n), noModifiers, ast.ACC_PUBLIC)
	c := locate(&ast.ConstructorDecl{MethodDecl: ast.MethodDecl{
		Name:            constructorName,
		Modifiers:       mods,
		SyntheticPublic: !explicit,
		ReturnType:      makeType(voidType, n),
	}}, n)
	if err := ctx.fillSignature(n, &c.MethodDecl); err != nil {
		return nil, err
	}
	if body := n.ChildByFieldName("body"); body != nil {
		if err := ctx.buildMethodBody(&c.MethodDecl, body); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// clinit returns the static initializer method of cls, creating it on first
// use.
func clinit(cls *ast.ClassDecl, at *cst.Node) *ast.MethodDecl {
	if m := cls.Method(clinitName); m != nil {
		return m
	}
	m := locate(&ast.MethodDecl{
		Name:       clinitName,
		Modifiers:  ast.ACC_STATIC,
		ReturnType: makeType(voidType, at),
		Synthetic:  true,
		Code:       locate(&ast.BlockStmt{}, at),
	}, at)
	cls.AddMember(m)
	return m
}

// buildStaticInitializer appends a static block to the class initializer
func (ctx *BuildContext) buildStaticInitializer(n *cst.Node, cls *ast.ClassDecl) error {
	blockNode := n.FirstChildOfKind("block")
	if blockNode == nil {
		return ctx.unsupported(n, "static initializer")
	}
	m := clinit(cls, n)
	ctx.pushMethod(m)
	defer ctx.popMethod()
	block, err := ctx.buildBlock(blockNode)
	if err != nil {
		return err
	}
	code := m.Code.(*ast.BlockStmt)
	for _, s := range block.Statements {
		code.AddStatement(s)
	}
	return nil
}

// buildAnnotationElement builds an annotation type element. A default value
// becomes the body of the method.
func (ctx *BuildContext) buildAnnotationElement(n *cst.Node) (*ast.MethodDecl, error) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return nil, ctx.unsupported(n, "annotation element")
	}
	mods, _ := ctx.resolveModifiers(modifiersOf(n), memberModifiers, ast.ACC_PUBLIC)
	annotations, err := ctx.buildAnnotations(modifiersOf(n))
	if err != nil {
		return nil, err
	}
	returnType, err := ctx.buildOptionalType(n, "type")
	if err != nil {
		return nil, err
	}
	m := locate(&ast.MethodDecl{
		Name:        nameNode.Text(),
		Modifiers:   forceModifiers(mods, ast.ACC_PUBLIC|ast.ACC_ABSTRACT),
		ReturnType:  arrayOf(returnType, n.FirstChildOfKind("dimensions"), n),
		Annotations: annotations,
	}, n)
	if value := n.ChildByFieldName("value"); value != nil {
		def, err := ctx.buildAnnotationValue(value)
		if err != nil {
			return nil, err
		}
		m.AnnotationDefault = true
		m.Code = ast.CopyLocation(&ast.ReturnStmt{Expression: def}, def)
	}
	return m, nil
}
