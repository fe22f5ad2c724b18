package ast

import "strings"

type (
	// ClassDecl is a class, interface, enum, annotation type or anonymous
	// class. Nested classes are listed flat in Module.Classes and linked to
	// their enclosing class through Outer.
	ClassDecl struct {
		Located
		Name               string
		Modifiers          Modifiers
		SuperClass         *TypeRef
		Interfaces         []*TypeRef
		Generics           []*GenericsType
		Annotations        []*Annotation
		Members            []Node
		ObjectInitializers []Statement
		IsInterface        bool
		IsEnum             bool
		IsAnnotation       bool
		IsAnonymous        bool
		// SyntheticPublic is set when public visibility was implied rather
		// than written.
		SyntheticPublic bool
		Outer           *ClassDecl   `ast:"-"`
		EnclosingMethod *MethodDecl  `ast:"-"`
		InnerClasses    []*ClassDecl `ast:"-"`
	}

	// MethodDecl is a method, a script method or the body of a constructor
	MethodDecl struct {
		Located
		Name        string
		Modifiers   Modifiers
		ReturnType  *TypeRef
		Parameters  []*Parameter
		Exceptions  []*TypeRef
		Generics    []*GenericsType
		Annotations []*Annotation
		Code        Statement
		// AnnotationDefault marks annotation type elements that declare a default value
		AnnotationDefault bool
		SyntheticPublic   bool
		Synthetic         bool
		Owner             *ClassDecl   `ast:"-"`
		InnerClasses      []*ClassDecl `ast:"-"`
	}

	ConstructorDecl struct {
		MethodDecl
	}

	FieldDecl struct {
		Located
		Name         string
		Modifiers    Modifiers
		Type         *TypeRef
		InitialValue Expression
		Annotations  []*Annotation
		Synthetic    bool
		Owner        *ClassDecl `ast:"-"`
	}

	// PropertyDecl is a field declared without visibility. Field is the
	// private backing field.
	PropertyDecl struct {
		Located
		Name       string
		Modifiers  Modifiers
		Field      *FieldDecl
		GetterName string
		SetterName string
	}

	Parameter struct {
		Located
		Name         string
		Type         *TypeRef
		Modifiers    Modifiers
		DefaultValue Expression
		Annotations  []*Annotation
		VarArgs      bool
	}

	// GenericsType is a type argument or a type parameter. Placeholder is set
	// for type parameters.
	GenericsType struct {
		Located
		Name        string
		Type        *TypeRef
		Placeholder bool
		Wildcard    bool
		UpperBounds []*TypeRef
		LowerBound  *TypeRef
	}

	// TypeRef names a type. Arrays keep their element type in Component.
	TypeRef struct {
		Located
		Name      string
		Component *TypeRef
		Generics  []*GenericsType
	}

	Annotation struct {
		Located
		Type    *TypeRef
		Members []*AnnotationMember
	}

	AnnotationMember struct {
		Located
		Name  string
		Value Expression
	}
)

// Fields returns the plain fields and the backing fields of properties in
// declaration order.
func (c *ClassDecl) Fields() []*FieldDecl {
	var out []*FieldDecl
	for _, m := range c.Members {
		switch m := m.(type) {
		case *FieldDecl:
			out = append(out, m)
		case *PropertyDecl:
			out = append(out, m.Field)
		}
	}
	return out
}

// Field finds a field, including property backing fields, by name
func (c *ClassDecl) Field(name string) *FieldDecl {
	for _, f := range c.Fields() {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func (c *ClassDecl) Properties() []*PropertyDecl {
	var out []*PropertyDecl
	for _, m := range c.Members {
		if p, ok := m.(*PropertyDecl); ok {
			out = append(out, p)
		}
	}
	return out
}

// Property finds a property by name
func (c *ClassDecl) Property(name string) *PropertyDecl {
	for _, p := range c.Properties() {
		if p.Name == name {
			return p
		}
	}
	return nil
}

func (c *ClassDecl) Methods() []*MethodDecl {
	var out []*MethodDecl
	for _, m := range c.Members {
		if md, ok := m.(*MethodDecl); ok {
			out = append(out, md)
		}
	}
	return out
}

// Method returns the first method with the given name
func (c *ClassDecl) Method(name string) *MethodDecl {
	for _, m := range c.Methods() {
		if m.Name == name {
			return m
		}
	}
	return nil
}

func (c *ClassDecl) Constructors() []*ConstructorDecl {
	var out []*ConstructorDecl
	for _, m := range c.Members {
		if cd, ok := m.(*ConstructorDecl); ok {
			out = append(out, cd)
		}
	}
	return out
}

// AddMember appends a field, property, method or constructor and records
// c as its owner.
func (c *ClassDecl) AddMember(n Node) {
	switch n := n.(type) {
	case *FieldDecl:
		n.Owner = c
	case *PropertyDecl:
		n.Field.Owner = c
	case *MethodDecl:
		n.Owner = c
	case *ConstructorDecl:
		n.Owner = c
	}
	c.Members = append(c.Members, n)
}

// SimpleName returns the name without package or outer class prefix
func (c *ClassDecl) SimpleName() string {
	name := c.Name
	if i := strings.LastIndexAny(name, ".$"); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// PackageName returns the package part of the name, or ""
func (c *ClassDecl) PackageName() string {
	top := c
	for top.Outer != nil {
		top = top.Outer
	}
	if i := strings.LastIndexByte(top.Name, '.'); i >= 0 {
		return top.Name[:i]
	}
	return ""
}

// IsArray reports whether t is an array type
func (t *TypeRef) IsArray() bool {
	return t.Component != nil
}

// MakeArray wraps t into an array type located at span
func (t *TypeRef) MakeArray(span Span) *TypeRef {
	arr := &TypeRef{Name: t.Name + "[]", Component: t}
	arr.SetLocation(span)
	return arr
}

func (t *TypeRef) String() string {
	if len(t.Generics) == 0 || t.Component != nil {
		return t.Name
	}
	var sb strings.Builder
	sb.WriteString(t.Name)
	sb.WriteByte('<')
	for i, g := range t.Generics {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(g.String())
	}
	sb.WriteByte('>')
	return sb.String()
}

func (g *GenericsType) String() string {
	var sb strings.Builder
	switch {
	case g.Wildcard:
		sb.WriteString("?")
	case g.Type != nil && !g.Placeholder:
		return g.Type.String()
	default:
		sb.WriteString(g.Name)
	}
	if len(g.UpperBounds) > 0 {
		sb.WriteString(" extends ")
		for i, b := range g.UpperBounds {
			if i > 0 {
				sb.WriteString(" & ")
			}
			sb.WriteString(b.String())
		}
	}
	if g.LowerBound != nil {
		sb.WriteString(" super ")
		sb.WriteString(g.LowerBound.String())
	}
	return sb.String()
}

// Member returns the value of the named annotation member
func (a *Annotation) Member(name string) Expression {
	for _, m := range a.Members {
		if m.Name == name {
			return m.Value
		}
	}
	return nil
}
