package ast

// ImportKind distinguishes the four import forms
type ImportKind int

const (
	ImportPlain ImportKind = iota
	ImportStar
	ImportStatic
	ImportStaticStar
)

func (k ImportKind) String() string {
	switch k {
	case ImportStar:
		return "star"
	case ImportStatic:
		return "static"
	case ImportStaticStar:
		return "static-star"
	default:
		return "plain"
	}
}

type (
	// Module is the root of a compilation unit
	Module struct {
		Located
		Package         *PackageDecl
		Imports         []*ImportDecl
		Classes         []*ClassDecl
		Statements      []Statement
		Methods         []*MethodDecl
		ScriptClassName string
	}

	// PackageDecl is the package clause. Name keeps the trailing dot.
	PackageDecl struct {
		Located
		Name        string
		Annotations []*Annotation
	}

	// ImportDecl is one import. Star imports store the package with a
	// trailing dot in PackageName; static imports name the member in FieldName.
	ImportDecl struct {
		Located
		Kind        ImportKind
		Type        *TypeRef
		PackageName string
		FieldName   string
		Alias       string
		Annotations []*Annotation
	}
)

// AddClass appends a class to the module
func (m *Module) AddClass(c *ClassDecl) {
	m.Classes = append(m.Classes, c)
}

// ClassNamed finds a class by its fully qualified name
func (m *Module) ClassNamed(name string) *ClassDecl {
	for _, c := range m.Classes {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// PackagePrefix returns the package name with a trailing dot, or ""
func (m *Module) PackagePrefix() string {
	if m.Package == nil {
		return ""
	}
	return m.Package.Name
}

// IsScript reports whether the module has top level statements or methods
func (m *Module) IsScript() bool {
	return len(m.Statements) > 0 || len(m.Methods) > 0
}
