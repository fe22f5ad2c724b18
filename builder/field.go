package builder

import (
	"github.com/heshanpadmasiri/groovyast/ast"
	"github.com/heshanpadmasiri/groovyast/cst"
)

// buildFields adds the variables of a field declaration to cls. A variable
// declared without a visibility keyword outside an interface is a property
// backed by a private synthetic field.
func (ctx *BuildContext) buildFields(n *cst.Node, cls *ast.ClassDecl) error {
	mods, explicit := ctx.resolveModifiers(modifiersOf(n), memberModifiers, 0)
	if cls.IsInterface {
		mods = forceModifiers(mods, ast.ACC_STATIC|ast.ACC_FINAL|ast.ACC_PUBLIC)
	}
	annotations, err := ctx.buildAnnotations(modifiersOf(n))
	if err != nil {
		return err
	}
	baseType, err := ctx.declarationType(n)
	if err != nil {
		return err
	}
	declarators := n.ChildrenOfKind("variable_declarator")
	if len(declarators) == 0 {
		return ctx.unsupported(n, "field declaration")
	}

	for _, decl := range declarators {
		nameNode := decl.ChildByFieldName("name")
		if nameNode == nil {
			return ctx.unsupported(decl, "field declarator")
		}
		name := nameNode.Text()
		t := arrayOf(baseType, decl.FirstChildOfKind("dimensions"), decl)

		var init ast.Expression
		if value := decl.ChildByFieldName("value"); value != nil {
			init, err = ctx.buildInitializer(value, t)
			if err != nil {
				return err
			}
		} else if cls.IsInterface && isPrimitive(t) {
			init = locate(zeroValue(t), decl)
		}

		at := decl
		if len(declarators) == 1 {
			at = n
		}
		if cls.IsInterface || explicit {
			cls.AddMember(locate(&ast.FieldDecl{
				Name:         name,
				Modifiers:    mods,
				Type:         t,
				InitialValue: init,
				Annotations:  annotations,
			}, at))
			continue
		}

		field := locate(&ast.FieldDecl{
			Name:         name,
			Modifiers:    mods | ast.ACC_PRIVATE,
			Type:         t,
			InitialValue: init,
			Annotations:  annotations,
			Synthetic:    true,
		}, at)
		prop := locate(&ast.PropertyDecl{
			Name:       name,
			Modifiers:  mods | ast.ACC_PUBLIC,
			Field:      field,
			GetterName: getterName(name, t),
		}, at)
		if !mods.Has(ast.ACC_FINAL) {
			prop.SetterName = "set" + capitalize(name)
		}
		cls.AddMember(prop)
	}
	return nil
}

func getterName(name string, t *ast.TypeRef) string {
	if t.Component == nil && t.Name == "boolean" {
		return "is" + capitalize(name)
	}
	return "get" + capitalize(name)
}

// buildEnumConstant adds a constant of the enum cls as a public static final
// field. Constructor arguments become a list initializer and a constant body
// an anonymous subclass of the enum.
func (ctx *BuildContext) buildEnumConstant(n *cst.Node, cls *ast.ClassDecl) error {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return ctx.unsupported(n, "enum constant")
	}
	annotations, err := ctx.buildAnnotations(modifiersOf(n))
	if err != nil {
		return err
	}
	field := locate(&ast.FieldDecl{
		Name:        nameNode.Text(),
		Modifiers:   ast.ACC_PUBLIC | ast.ACC_STATIC | ast.ACC_FINAL | ast.ACC_ENUM,
		Type:        makeType(cls.Name, nameNode),
		Annotations: annotations,
	}, nameNode)

	if args := n.ChildByFieldName("arguments"); args != nil {
		list := locate(&ast.ListExpr{}, args)
		for _, a := range args.NamedChildren() {
			e, err := ctx.buildExpression(a)
			if err != nil {
				return err
			}
			list.Expressions = append(list.Expressions, e)
		}
		field.InitialValue = list
	}
	cls.AddMember(field)

	if body := n.ChildByFieldName("body"); body != nil {
		if _, err := ctx.buildAnonymousClass(body, makeType(cls.Name, nameNode)); err != nil {
			return err
		}
	}
	return nil
}
