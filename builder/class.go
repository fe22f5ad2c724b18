package builder

import (
	"github.com/heshanpadmasiri/groovyast/ast"
	"github.com/heshanpadmasiri/groovyast/cst"
)

// className names a member class after its enclosing class and a top level
// class after the package.
func (ctx *BuildContext) className(simple string) string {
	if outer := ctx.currentClass(); outer != nil {
		return outer.Name + "$" + simple
	}
	return ctx.module.PackagePrefix() + simple
}

// buildTypeDeclaration builds a class, interface, enum or annotation type
// declared at the top level or inside a class body.
func (ctx *BuildContext) buildTypeDeclaration(n *cst.Node) (*ast.ClassDecl, error) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return nil, ctx.unsupported(n, "type declaration")
	}
	return ctx.buildClassDecl(n, ctx.className(nameNode.Text()))
}

// buildLocalClass builds a class declared inside a method or script body
func (ctx *BuildContext) buildLocalClass(n *cst.Node) (*ast.ClassDecl, error) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return nil, ctx.unsupported(n, "local class")
	}
	outer := ctx.scriptName
	if c := ctx.currentClass(); c != nil {
		outer = c.Name
	}
	return ctx.buildClassDecl(n, outer+"$"+nameNode.Text())
}

func (ctx *BuildContext) buildClassDecl(n *cst.Node, name string) (*ast.ClassDecl, error) {
	mods, syntheticPublic := ctx.resolveClassModifiers(modifiersOf(n))
	annotations, err := ctx.buildAnnotations(modifiersOf(n))
	if err != nil {
		return nil, err
	}
	cls := locate(&ast.ClassDecl{
		Name:            name,
		Modifiers:       mods,
		SyntheticPublic: syntheticPublic,
		Annotations:     annotations,
		SuperClass:      makeType(objectType, n),
	}, n)
	cls.Generics, err = ctx.buildTypeParameters(n.ChildByFieldName("type_parameters"))
	if err != nil {
		return nil, err
	}

	switch n.Kind() {
	case "class_declaration":
		if super := n.ChildByFieldName("superclass"); super != nil {
			types, err := ctx.buildTypeList(super)
			if err != nil {
				return nil, err
			}
			if len(types) != 1 {
				return nil, ctx.unsupported(super, "superclass")
			}
			cls.SuperClass = types[0]
		}
		cls.Interfaces, err = ctx.buildTypeList(n.ChildByFieldName("interfaces"))
	case "interface_declaration":
		cls.IsInterface = true
		cls.Modifiers |= ast.ACC_INTERFACE | ast.ACC_ABSTRACT
		cls.Interfaces, err = ctx.buildTypeList(n.FirstChildOfKind("extends_interfaces"))
	case "enum_declaration":
		cls.IsEnum = true
		cls.Modifiers |= ast.ACC_ENUM | ast.ACC_FINAL
		self := locate(&ast.TypeRef{Name: name}, n.ChildByFieldName("name"))
		cls.SuperClass = locate(&ast.TypeRef{
			Name:     enumType,
			Generics: []*ast.GenericsType{ast.CopyLocation(&ast.GenericsType{Name: name, Type: self}, self)},
		}, n)
		cls.Interfaces, err = ctx.buildTypeList(n.ChildByFieldName("interfaces"))
	case "annotation_type_declaration":
		cls.IsInterface = true
		cls.IsAnnotation = true
		cls.Modifiers |= ast.ACC_INTERFACE | ast.ACC_ABSTRACT | ast.ACC_ANNOTATION
		cls.Interfaces = []*ast.TypeRef{makeType(annotationType, n)}
	default:
		return nil, ctx.unsupported(n, "type declaration")
	}
	if err != nil {
		return nil, err
	}

	ctx.registerInnerClass(cls)
	body := n.ChildByFieldName("body")
	if body == nil {
		return nil, ctx.unsupported(n, "type declaration")
	}
	ctx.pushClass(cls)
	defer ctx.popClass()
	if err := ctx.buildClassBody(body, cls); err != nil {
		return nil, err
	}
	return cls, nil
}
