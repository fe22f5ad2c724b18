package ast

// TokenType classifies operator tokens
type TokenType int

const (
	TokenUnknown TokenType = iota
	TokenAssign
	TokenCompoundAssign
	TokenLogicalOr
	TokenLogicalAnd
	TokenBitwiseOr
	TokenBitwiseXor
	TokenBitwiseAnd
	TokenCompareEqual
	TokenCompareNotEqual
	TokenCompareIdentical
	TokenCompareNotIdentical
	TokenCompareLess
	TokenCompareLessEqual
	TokenCompareGreater
	TokenCompareGreaterEqual
	TokenCompareTo
	TokenFind
	TokenMatch
	TokenInstanceof
	TokenIn
	TokenLeftShift
	TokenRightShift
	TokenRightShiftUnsigned
	TokenPlus
	TokenMinus
	TokenMultiply
	TokenDivide
	TokenMod
	TokenPower
	TokenIncrement
	TokenDecrement
	TokenIndex
	TokenElvis
)

var tokenTypes = map[string]TokenType{
	"=":          TokenAssign,
	"+=":         TokenCompoundAssign,
	"-=":         TokenCompoundAssign,
	"*=":         TokenCompoundAssign,
	"/=":         TokenCompoundAssign,
	"%=":         TokenCompoundAssign,
	"**=":        TokenCompoundAssign,
	"&=":         TokenCompoundAssign,
	"|=":         TokenCompoundAssign,
	"^=":         TokenCompoundAssign,
	"<<=":        TokenCompoundAssign,
	">>=":        TokenCompoundAssign,
	">>>=":       TokenCompoundAssign,
	"?=":         TokenCompoundAssign,
	"||":         TokenLogicalOr,
	"&&":         TokenLogicalAnd,
	"|":          TokenBitwiseOr,
	"^":          TokenBitwiseXor,
	"&":          TokenBitwiseAnd,
	"==":         TokenCompareEqual,
	"!=":         TokenCompareNotEqual,
	"===":        TokenCompareIdentical,
	"!==":        TokenCompareNotIdentical,
	"<":          TokenCompareLess,
	"<=":         TokenCompareLessEqual,
	">":          TokenCompareGreater,
	">=":         TokenCompareGreaterEqual,
	"<=>":        TokenCompareTo,
	"=~":         TokenFind,
	"==~":        TokenMatch,
	"instanceof": TokenInstanceof,
	"in":         TokenIn,
	"<<":         TokenLeftShift,
	">>":         TokenRightShift,
	">>>":        TokenRightShiftUnsigned,
	"+":          TokenPlus,
	"-":          TokenMinus,
	"*":          TokenMultiply,
	"/":          TokenDivide,
	"%":          TokenMod,
	"**":         TokenPower,
	"++":         TokenIncrement,
	"--":         TokenDecrement,
	"[":          TokenIndex,
	"?:":         TokenElvis,
}

// Token is an operator as it appeared in source
type Token struct {
	Type   TokenType
	Text   string
	Line   int
	Column int
}

// NewToken classifies text and builds a token at the given position
func NewToken(text string, line, column int) Token {
	return Token{Type: LookupToken(text), Text: text, Line: line, Column: column}
}

// LookupToken returns the type of an operator, TokenUnknown when it is not one
func LookupToken(text string) TokenType {
	if t, ok := tokenTypes[text]; ok {
		return t
	}
	return TokenUnknown
}

func (t Token) String() string {
	return t.Text
}

// IsAssignment reports whether the token is a plain or compound assignment
func (t Token) IsAssignment() bool {
	return t.Type == TokenAssign || t.Type == TokenCompoundAssign
}
