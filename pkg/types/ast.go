package types

// NodeKind identifies the type of an AST node.
type NodeKind string

// AST node kinds.
const (
	// Statements
	NodeProgram             NodeKind = "Program"
	NodeVarDeclaration      NodeKind = "VarDeclaration"
	NodeFunctionDeclaration NodeKind = "FunctionDeclaration"
	NodeReturnStatement     NodeKind = "ReturnStatement"
	NodeImportStatement     NodeKind = "ImportStatement"
	NodeIfStatement         NodeKind = "IfStatement"
	NodeWhileStatement      NodeKind = "WhileStatement"

	// Expressions
	NodeAssignmentExpr NodeKind = "AssignmentExpr"
	NodeBinaryExpr     NodeKind = "BinaryExpr"
	NodeCallExpr       NodeKind = "CallExpr"
	NodeMemberExpr     NodeKind = "MemberExpr"
	NodeIdentifier     NodeKind = "Identifier"
	NodeNumericLiteral NodeKind = "NumericLiteral"
	NodeStringLiteral  NodeKind = "StringLiteral"
	NodeObjectLiteral  NodeKind = "ObjectLiteral"
	NodeProperty       NodeKind = "Property"
)

// Node is implemented by every AST node.
//
// The set of implementations is closed: only the node types in this package
// satisfy it.
type Node interface {
	Kind() NodeKind
	// Pos returns the 1-based line of the node's first token.
	Pos() int
	node()
}

// Statement is a node that may appear in a statement list.
type Statement interface {
	Node
	stmtNode()
}

// Expression is a node that produces a value. Every expression is also a
// valid statement.
type Expression interface {
	Statement
	exprNode()
}

// Span records where a node starts in the source.
type Span struct {
	Line int
}

// Pos returns the node's line.
func (s Span) Pos() int { return s.Line }

func (Span) node() {}

// VarDeclaration binds Name in the current scope.
type VarDeclaration struct {
	Span
	Name     string
	Value    Expression // nil when there is no initializer
	Constant bool
}

// FunctionDeclaration declares a named function.
type FunctionDeclaration struct {
	Span
	Name   string
	Params []string
	Body   []Statement
}

// ReturnStatement leaves the enclosing function with Value.
type ReturnStatement struct {
	Span
	Value Expression
}

// ImportStatement loads a native module by name.
type ImportStatement struct {
	Span
	Module string
}

// IfStatement is a conditional. Else is nil when there is no else branch.
type IfStatement struct {
	Span
	Condition Expression
	Body      []Statement
	Else      []Statement
}

// WhileStatement repeats Body while Condition is truthy.
type WhileStatement struct {
	Span
	Condition Expression
	Body      []Statement
}

// AssignmentExpr assigns Value to Target. The target is checked at runtime.
type AssignmentExpr struct {
	Span
	Target Expression
	Value  Expression
}

// BinaryExpr applies Operator to Left and Right.
type BinaryExpr struct {
	Span
	Left     Expression
	Right    Expression
	Operator string
}

// CallExpr calls Callee with Args.
type CallExpr struct {
	Span
	Callee Expression
	Args   []Expression
}

// MemberExpr accesses Property on Object. The grammar only produces
// non-computed accesses with an Identifier property.
type MemberExpr struct {
	Span
	Object   Expression
	Property Expression
	Computed bool
}

// Identifier references a binding.
type Identifier struct {
	Span
	Name string
}

// NumericLiteral is a number literal.
type NumericLiteral struct {
	Span
	Value float64
}

// StringLiteral is a string literal.
type StringLiteral struct {
	Span
	Value string
}

// ObjectLiteral is an object constructor.
type ObjectLiteral struct {
	Span
	Properties []*Property
}

// Property is a key with an optional value inside an ObjectLiteral.
type Property struct {
	Span
	Key   string
	Value Expression // nil for shorthand properties
}

func (*Program) Kind() NodeKind             { return NodeProgram }
func (*VarDeclaration) Kind() NodeKind      { return NodeVarDeclaration }
func (*FunctionDeclaration) Kind() NodeKind { return NodeFunctionDeclaration }
func (*ReturnStatement) Kind() NodeKind     { return NodeReturnStatement }
func (*ImportStatement) Kind() NodeKind     { return NodeImportStatement }
func (*IfStatement) Kind() NodeKind         { return NodeIfStatement }
func (*WhileStatement) Kind() NodeKind      { return NodeWhileStatement }
func (*AssignmentExpr) Kind() NodeKind      { return NodeAssignmentExpr }
func (*BinaryExpr) Kind() NodeKind          { return NodeBinaryExpr }
func (*CallExpr) Kind() NodeKind            { return NodeCallExpr }
func (*MemberExpr) Kind() NodeKind          { return NodeMemberExpr }
func (*Identifier) Kind() NodeKind          { return NodeIdentifier }
func (*NumericLiteral) Kind() NodeKind      { return NodeNumericLiteral }
func (*StringLiteral) Kind() NodeKind       { return NodeStringLiteral }
func (*ObjectLiteral) Kind() NodeKind       { return NodeObjectLiteral }
func (*Property) Kind() NodeKind            { return NodeProperty }

func (*VarDeclaration) stmtNode()      {}
func (*FunctionDeclaration) stmtNode() {}
func (*ReturnStatement) stmtNode()     {}
func (*ImportStatement) stmtNode()     {}
func (*IfStatement) stmtNode()         {}
func (*WhileStatement) stmtNode()      {}
func (*AssignmentExpr) stmtNode()      {}
func (*BinaryExpr) stmtNode()          {}
func (*CallExpr) stmtNode()            {}
func (*MemberExpr) stmtNode()          {}
func (*Identifier) stmtNode()          {}
func (*NumericLiteral) stmtNode()      {}
func (*StringLiteral) stmtNode()       {}
func (*ObjectLiteral) stmtNode()       {}

func (*AssignmentExpr) exprNode() {}
func (*BinaryExpr) exprNode()     {}
func (*CallExpr) exprNode()       {}
func (*MemberExpr) exprNode()     {}
func (*Identifier) exprNode()     {}
func (*NumericLiteral) exprNode() {}
func (*StringLiteral) exprNode()  {}
func (*ObjectLiteral) exprNode()  {}
