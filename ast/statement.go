package ast

// labeled is embedded by every statement
type labeled struct {
	Located
	labels []string
}

func (s *labeled) Labels() []string {
	return s.labels
}

func (s *labeled) AddLabel(label string) {
	s.labels = append(s.labels, label)
}

func (*labeled) stmtNode() {}

type (
	BlockStmt struct {
		labeled
		Statements []Statement
	}

	ExpressionStmt struct {
		labeled
		Expression Expression
	}

	// IfStmt always has an Else branch; a missing else is an EmptyStmt
	IfStmt struct {
		labeled
		Condition *BooleanExpr
		Then      Statement
		Else      Statement
	}

	WhileStmt struct {
		labeled
		Condition *BooleanExpr
		Body      Statement
	}

	DoWhileStmt struct {
		labeled
		Condition *BooleanExpr
		Body      Statement
	}

	// ForStmt covers every loop form. Classic loops use ForLoopDummy as the
	// Variable and a ClosureListExpr as the Collection.
	ForStmt struct {
		labeled
		Variable   *Parameter
		Collection Expression
		Body       Statement
	}

	SwitchStmt struct {
		labeled
		Expression Expression
		Cases      []*CaseStmt
		Default    Statement
	}

	CaseStmt struct {
		labeled
		Expression Expression
		Code       Statement
	}

	TryCatchStmt struct {
		labeled
		Try     Statement
		Catches []*CatchStmt
		Finally Statement
	}

	CatchStmt struct {
		labeled
		Variable *Parameter
		Code     Statement
	}

	ThrowStmt struct {
		labeled
		Expression Expression
	}

	ReturnStmt struct {
		labeled
		Expression Expression
	}

	BreakStmt struct {
		labeled
		Label string
	}

	ContinueStmt struct {
		labeled
		Label string
	}

	AssertStmt struct {
		labeled
		Condition *BooleanExpr
		Message   Expression
	}

	SynchronizedStmt struct {
		labeled
		Expression Expression
		Code       Statement
	}

	EmptyStmt struct {
		labeled
	}
)

// ForLoopDummy is the parameter name used by classic for loops
const ForLoopDummy = "forLoopDummyParameter"

// IsClassicFor reports whether the loop was written with init; cond; update
func (f *ForStmt) IsClassicFor() bool {
	_, ok := f.Collection.(*ClosureListExpr)
	return ok && f.Variable != nil && f.Variable.Name == ForLoopDummy
}

// AddStatement appends s to the block
func (b *BlockStmt) AddStatement(s Statement) {
	b.Statements = append(b.Statements, s)
}
