package ast

import (
	"fmt"
	"math/big"
)

// ConstantType names the runtime type of a constant value
type ConstantType string

const (
	TypeNull       ConstantType = "null"
	TypeBoolean    ConstantType = "boolean"
	TypeString     ConstantType = "String"
	TypeInt        ConstantType = "int"
	TypeLong       ConstantType = "long"
	TypeBigInteger ConstantType = "BigInteger"
	TypeFloat      ConstantType = "float"
	TypeDouble     ConstantType = "double"
	TypeBigDecimal ConstantType = "BigDecimal"
)

type (
	// ConstantExpr holds a literal. Value is nil, bool, string, int32, int64,
	// *big.Int, float32, float64 or *big.Rat as described by Type.
	ConstantExpr struct {
		Located
		Value any
		Type  ConstantType
		// DirectType is cleared for negated numeric literals
		DirectType bool
	}

	// GStringExpr is an interpolated string. Strings and Values interleave
	// starting with Strings[0].
	GStringExpr struct {
		Located
		Verbatim string
		Strings  []*ConstantExpr
		Values   []Expression
	}

	VariableExpr struct {
		Located
		Name string
	}

	PropertyExpr struct {
		Located
		Object       Expression
		Property     Expression
		Safe         bool
		SpreadSafe   bool
		ImplicitThis bool
	}

	// AttributeExpr is direct field access with .@
	AttributeExpr struct {
		Located
		Object     Expression
		Property   Expression
		Safe       bool
		SpreadSafe bool
	}

	// MethodPointerExpr is obj.&name
	MethodPointerExpr struct {
		Located
		Object Expression
		Method Expression
	}

	MethodCallExpr struct {
		Located
		Object       Expression
		Method       Expression
		Arguments    Expression
		ImplicitThis bool
		Safe         bool
		SpreadSafe   bool
	}

	ConstructorCallExpr struct {
		Located
		Type                     *TypeRef
		Arguments                Expression
		IsThisCall               bool
		IsSuperCall              bool
		UsingAnonymousInnerClass bool
	}

	BinaryExpr struct {
		Located
		Left      Expression
		Operation Token
		Right     Expression
	}

	PrefixExpr struct {
		Located
		Operation  Token
		Expression Expression
	}

	PostfixExpr struct {
		Located
		Expression Expression
		Operation  Token
	}

	UnaryMinusExpr struct {
		Located
		Expression Expression
	}

	UnaryPlusExpr struct {
		Located
		Expression Expression
	}

	NotExpr struct {
		Located
		Expression Expression
	}

	BitwiseNegationExpr struct {
		Located
		Expression Expression
	}

	RangeExpr struct {
		Located
		From      Expression
		To        Expression
		Inclusive bool
	}

	TernaryExpr struct {
		Located
		Condition *BooleanExpr
		TrueExpr  Expression
		FalseExpr Expression
	}

	ElvisExpr struct {
		Located
		Base      Expression
		FalseExpr Expression
	}

	// CastExpr is (T) expr, or expr as T when Coerce is set
	CastExpr struct {
		Located
		Type       *TypeRef
		Expression Expression
		Coerce     bool
	}

	ClassExpr struct {
		Located
		Type *TypeRef
	}

	// ListExpr is a list literal. Wrapped marks lists synthesised from
	// several index arguments.
	ListExpr struct {
		Located
		Expressions []Expression
		Wrapped     bool
	}

	MapExpr struct {
		Located
		Entries []*MapEntryExpr
	}

	MapEntryExpr struct {
		Located
		Key   Expression
		Value Expression
	}

	// SpreadMapExpr is the *: key of a map entry
	SpreadMapExpr struct {
		Located
		Expression Expression
	}

	// ArrayExpr is an array creation, with either Sizes or Expressions
	ArrayExpr struct {
		Located
		ElementType *TypeRef
		Expressions []Expression
		Sizes       []Expression
	}

	// DeclarationExpr declares a variable or, when Left is a TupleExpr,
	// destructures Right into several variables.
	DeclarationExpr struct {
		Located
		Left      Expression
		Operation Token
		Right     Expression
		Modifiers Modifiers
		Type      *TypeRef
	}

	// ClosureListExpr holds the init, condition and update parts of a classic
	// for loop.
	ClosureListExpr struct {
		Located
		Expressions []Expression
	}

	ClosureExpr struct {
		Located
		Parameters []*Parameter
		// ExplicitParameters is set when the closure contains ->
		ExplicitParameters bool
		Code               Statement
	}

	SpreadExpr struct {
		Located
		Expression Expression
	}

	EmptyExpr struct {
		Located
	}

	ArgumentListExpr struct {
		Located
		Expressions []Expression
	}

	TupleExpr struct {
		Located
		Expressions []Expression
	}

	NamedArgumentListExpr struct {
		Located
		Entries []*MapEntryExpr
	}

	AnnotationConstantExpr struct {
		Located
		Annotation *Annotation
	}

	BooleanExpr struct {
		Located
		Expression Expression
	}
)

func (*ConstantExpr) exprNode()           {}
func (*GStringExpr) exprNode()            {}
func (*VariableExpr) exprNode()           {}
func (*PropertyExpr) exprNode()           {}
func (*AttributeExpr) exprNode()          {}
func (*MethodPointerExpr) exprNode()      {}
func (*MethodCallExpr) exprNode()         {}
func (*ConstructorCallExpr) exprNode()    {}
func (*BinaryExpr) exprNode()             {}
func (*PrefixExpr) exprNode()             {}
func (*PostfixExpr) exprNode()            {}
func (*UnaryMinusExpr) exprNode()         {}
func (*UnaryPlusExpr) exprNode()          {}
func (*NotExpr) exprNode()                {}
func (*BitwiseNegationExpr) exprNode()    {}
func (*RangeExpr) exprNode()              {}
func (*TernaryExpr) exprNode()            {}
func (*ElvisExpr) exprNode()              {}
func (*CastExpr) exprNode()               {}
func (*ClassExpr) exprNode()              {}
func (*ListExpr) exprNode()               {}
func (*MapExpr) exprNode()                {}
func (*MapEntryExpr) exprNode()           {}
func (*SpreadMapExpr) exprNode()          {}
func (*ArrayExpr) exprNode()              {}
func (*DeclarationExpr) exprNode()        {}
func (*ClosureListExpr) exprNode()        {}
func (*ClosureExpr) exprNode()            {}
func (*SpreadExpr) exprNode()             {}
func (*EmptyExpr) exprNode()              {}
func (*ArgumentListExpr) exprNode()       {}
func (*TupleExpr) exprNode()              {}
func (*NamedArgumentListExpr) exprNode()  {}
func (*AnnotationConstantExpr) exprNode() {}
func (*BooleanExpr) exprNode()            {}

// NullConstant builds a null literal
func NullConstant() *ConstantExpr {
	return &ConstantExpr{Type: TypeNull}
}

// StringConstant builds a string literal
func StringConstant(s string) *ConstantExpr {
	return &ConstantExpr{Value: s, Type: TypeString}
}

// Text renders the constant value the way it would print at runtime
func (c *ConstantExpr) Text() string {
	switch v := c.Value.(type) {
	case nil:
		return "null"
	case *big.Int:
		return v.String()
	case *big.Rat:
		return DecimalString(v)
	default:
		return fmt.Sprint(v)
	}
}

// DecimalString prints r as a plain decimal number
func DecimalString(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String()
	}
	// enough digits for any finite decimal literal
	s := r.FloatString(32)
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	return s
}

// MethodName returns the method name when it is a constant, "" otherwise
func (m *MethodCallExpr) MethodName() string {
	if c, ok := m.Method.(*ConstantExpr); ok {
		if s, ok := c.Value.(string); ok {
			return s
		}
	}
	return ""
}

// PropertyName returns the property name when it is a constant
func (p *PropertyExpr) PropertyName() string {
	if c, ok := p.Property.(*ConstantExpr); ok {
		if s, ok := c.Value.(string); ok {
			return s
		}
	}
	return ""
}

// ArgumentExpressions returns the positional arguments of a call's argument
// expression.
func ArgumentExpressions(args Expression) []Expression {
	switch a := args.(type) {
	case *ArgumentListExpr:
		return a.Expressions
	case *TupleExpr:
		return a.Expressions
	}
	return nil
}
