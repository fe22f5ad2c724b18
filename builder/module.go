package builder

import (
	"strings"

	"go.uber.org/zap"

	"github.com/heshanpadmasiri/groovyast/ast"
	"github.com/heshanpadmasiri/groovyast/cst"
)

// buildProgram fills the module from the root node. Declarations at the top
// level become classes and script methods; everything else is a script
// statement.
func (ctx *BuildContext) buildProgram(root *cst.Node) error {
	if root.Kind() != "program" {
		return ctx.fatal(root, "expected a program, found %s", root.Kind())
	}
	locate(ctx.module, root)

	for _, n := range root.NamedChildren() {
		var err error
		switch n.Kind() {
		case "package_declaration":
			err = ctx.buildPackage(n)
		case "import_declaration":
			var imp *ast.ImportDecl
			if imp, err = ctx.buildImport(n); err == nil {
				ctx.module.Imports = append(ctx.module.Imports, imp)
			}
		case "class_declaration", "interface_declaration", "enum_declaration", "annotation_type_declaration":
			_, err = ctx.buildTypeDeclaration(n)
		case "method_declaration":
			var m *ast.MethodDecl
			if m, err = ctx.buildMethod(n, nil); err == nil {
				ctx.module.Methods = append(ctx.module.Methods, m)
			}
		default:
			var stmts []ast.Statement
			if stmts, err = ctx.statementsOf(n); err == nil {
				ctx.module.Statements = append(ctx.module.Statements, stmts...)
			}
		}
		if err != nil {
			return err
		}
	}
	ctx.logger.Debug("module built",
		zap.Int("classes", len(ctx.module.Classes)),
		zap.Int("methods", len(ctx.module.Methods)),
		zap.Int("statements", len(ctx.module.Statements)))
	return nil
}

// buildPackage records the package; its name keeps a trailing dot so it can
// prefix class names.
func (ctx *BuildContext) buildPackage(n *cst.Node) error {
	nameNode := n.FirstChildOfKind("identifier", "scoped_identifier", "path_expression")
	if nameNode == nil {
		return ctx.unsupported(n, "package declaration")
	}
	annotations, err := ctx.buildAnnotations(n)
	if err != nil {
		return err
	}
	ctx.module.Package = locate(&ast.PackageDecl{Name: dottedName(nameNode) + ".", Annotations: annotations}, n)
	return nil
}

// buildImport handles plain, star, static and static star imports with an
// optional alias. Without an alias a plain import is known by its simple name
// and a static import by the member name.
func (ctx *BuildContext) buildImport(n *cst.Node) (*ast.ImportDecl, error) {
	var nameNode *cst.Node
	for _, c := range n.NamedChildren() {
		switch c.Kind() {
		case "identifier", "scoped_identifier", "path_expression":
			if c.FieldName() != "alias" && nameNode == nil {
				nameNode = c
			}
		}
	}
	if nameNode == nil {
		return nil, ctx.unsupported(n, "import")
	}
	annotations, err := ctx.buildAnnotations(n)
	if err != nil {
		return nil, err
	}
	name := dottedName(nameNode)
	imp := locate(&ast.ImportDecl{Annotations: annotations}, n)
	if alias := n.ChildByFieldName("alias"); alias != nil {
		imp.Alias = alias.Text()
	}

	static := n.HasChild("static")
	star := n.HasChild("asterisk") || n.HasChild("*")
	switch {
	case static && star:
		imp.Kind = ast.ImportStaticStar
		imp.Type = makeType(name, nameNode)
	case static:
		i := strings.LastIndexByte(name, '.')
		if i < 0 {
			return nil, ctx.fatal(n, "static import %s names no member", name)
		}
		imp.Kind = ast.ImportStatic
		imp.Type = makeType(name[:i], nameNode)
		imp.FieldName = name[i+1:]
		if imp.Alias == "" {
			imp.Alias = imp.FieldName
		}
	case star:
		imp.Kind = ast.ImportStar
		imp.PackageName = name + "."
	default:
		imp.Kind = ast.ImportPlain
		imp.Type = makeType(name, nameNode)
		if imp.Alias == "" {
			imp.Alias = name[strings.LastIndexByte(name, '.')+1:]
		}
	}
	return imp, nil
}
