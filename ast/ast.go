package ast

import "github.com/xsclang/xsc/report"

// Node is the base interface for all AST nodes.
type Node interface {
	Pos() report.SourceArea
}

// Decl is the interface for declarations.
type Decl interface {
	Node
	declNode()
}

// Stmt is the interface for statements.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is the interface for expressions. TypeDen returns the type denoter
// attached by semantic analysis, or nil before analysis.
type Expr interface {
	Node
	exprNode()
	TypeDen() TypeDenoter
}

// Program is the root of a parsed translation unit.
type Program struct {
	Decls  []Decl
	Source *report.SourceCode
}

// ShaderTarget selects the shader stage being compiled.
type ShaderTarget uint8

const (
	TargetVertex ShaderTarget = iota
	TargetFragment
)

func (t ShaderTarget) String() string {
	switch t {
	case TargetVertex:
		return "vertex"
	case TargetFragment:
		return "fragment"
	}
	return "<undefined>"
}

// Declarations

// StructDecl represents a struct declaration.
type StructDecl struct {
	Ident   string
	Members []*VarDecl
	Area    report.SourceArea
}

func (d *StructDecl) Pos() report.SourceArea { return d.Area }
func (d *StructDecl) declNode()              {}

// Member returns the member declaration with the given identifier, or nil.
func (d *StructDecl) Member(ident string) *VarDecl {
	for _, m := range d.Members {
		if m.Ident == ident {
			return m
		}
	}
	return nil
}

// AliasDecl represents a typedef declaration.
type AliasDecl struct {
	Ident string
	Type  TypeDenoter
	Area  report.SourceArea
}

func (d *AliasDecl) Pos() report.SourceArea { return d.Area }
func (d *AliasDecl) declNode()              {}

// VarDecl represents a variable declaration: a global, a local, a struct
// member, a cbuffer field, or a function parameter. Semantic carries the
// HLSL semantic name (e.g. "SV_Position") when declared.
type VarDecl struct {
	Ident     string
	Type      TypeDenoter
	Semantic  string
	Init      Expr
	IsUniform bool
	IsConst   bool
	InputMod  InputModifier
	Area      report.SourceArea
}

func (d *VarDecl) Pos() report.SourceArea { return d.Area }
func (d *VarDecl) declNode()              {}
func (d *VarDecl) stmtNode()              {}

// InputModifier is a parameter passing modifier.
type InputModifier uint8

const (
	InputIn InputModifier = iota
	InputOut
	InputInOut
)

func (m InputModifier) String() string {
	switch m {
	case InputOut:
		return "out"
	case InputInOut:
		return "inout"
	}
	return "in"
}

// BufferDecl represents a cbuffer block with a register slot.
type BufferDecl struct {
	Ident    string
	Register string // e.g. "b0"
	Members  []*VarDecl
	Area     report.SourceArea
}

func (d *BufferDecl) Pos() report.SourceArea { return d.Area }
func (d *BufferDecl) declNode()              {}

// TextureDecl represents a texture object declaration.
type TextureDecl struct {
	Ident    string
	Dim      TextureDim
	Register string // e.g. "t0"
	Area     report.SourceArea
}

func (d *TextureDecl) Pos() report.SourceArea { return d.Area }
func (d *TextureDecl) declNode()              {}

// SamplerDecl represents a sampler state declaration.
type SamplerDecl struct {
	Ident      string
	Comparison bool
	Register   string // e.g. "s0"
	Area       report.SourceArea
}

func (d *SamplerDecl) Pos() report.SourceArea { return d.Area }
func (d *SamplerDecl) declNode()              {}

// FunctionDecl represents a function declaration with its body.
type FunctionDecl struct {
	Ident      string
	ReturnType TypeDenoter
	Semantic   string // return value semantic
	Params     []*VarDecl
	Body       *BlockStmt
	Area       report.SourceArea
}

func (d *FunctionDecl) Pos() report.SourceArea { return d.Area }
func (d *FunctionDecl) declNode()              {}

// ParamTypes returns the parameter type denoters in declaration order.
func (d *FunctionDecl) ParamTypes() []TypeDenoter {
	types := make([]TypeDenoter, len(d.Params))
	for i, p := range d.Params {
		types[i] = p.Type
	}
	return types
}

// Statements

// BlockStmt is a braced statement list.
type BlockStmt struct {
	Stmts []Stmt
	Area  report.SourceArea
}

func (s *BlockStmt) Pos() report.SourceArea { return s.Area }
func (s *BlockStmt) stmtNode()              {}

// ReturnStmt is a return statement with an optional value.
type ReturnStmt struct {
	Value Expr
	Area  report.SourceArea
}

func (s *ReturnStmt) Pos() report.SourceArea { return s.Area }
func (s *ReturnStmt) stmtNode()              {}

// IfStmt is an if statement with an optional else branch (*BlockStmt or
// *IfStmt).
type IfStmt struct {
	Cond Expr
	Then *BlockStmt
	Else Stmt
	Area report.SourceArea
}

func (s *IfStmt) Pos() report.SourceArea { return s.Area }
func (s *IfStmt) stmtNode()              {}

// ForStmt is a for loop.
type ForStmt struct {
	Init   Stmt
	Cond   Expr
	Update Stmt
	Body   *BlockStmt
	Area   report.SourceArea
}

func (s *ForStmt) Pos() report.SourceArea { return s.Area }
func (s *ForStmt) stmtNode()              {}

// WhileStmt is a while loop.
type WhileStmt struct {
	Cond Expr
	Body *BlockStmt
	Area report.SourceArea
}

func (s *WhileStmt) Pos() report.SourceArea { return s.Area }
func (s *WhileStmt) stmtNode()              {}

// DoWhileStmt is a do-while loop.
type DoWhileStmt struct {
	Body *BlockStmt
	Cond Expr
	Area report.SourceArea
}

func (s *DoWhileStmt) Pos() report.SourceArea { return s.Area }
func (s *DoWhileStmt) stmtNode()              {}

// CtrlTransferStmt is a break, continue, or discard statement.
type CtrlTransferStmt struct {
	Transfer CtrlTransfer
	Area     report.SourceArea
}

func (s *CtrlTransferStmt) Pos() report.SourceArea { return s.Area }
func (s *CtrlTransferStmt) stmtNode()              {}

// AssignStmt is an assignment statement.
type AssignStmt struct {
	Left  Expr
	Op    AssignOp
	Right Expr
	Area  report.SourceArea
}

func (s *AssignStmt) Pos() report.SourceArea { return s.Area }
func (s *AssignStmt) stmtNode()              {}

// ExprStmt is an expression statement.
type ExprStmt struct {
	Expr Expr
	Area report.SourceArea
}

func (s *ExprStmt) Pos() report.SourceArea { return s.Area }
func (s *ExprStmt) stmtNode()              {}

// Expressions

// IdentExpr is an identifier use. Decl references the resolved
// declaration after analysis.
type IdentExpr struct {
	Ident string
	Decl  Decl
	Type  TypeDenoter
	Area  report.SourceArea
}

func (e *IdentExpr) Pos() report.SourceArea { return e.Area }
func (e *IdentExpr) exprNode()              {}
func (e *IdentExpr) TypeDen() TypeDenoter   { return e.Type }

// LiteralKind classifies literal expressions.
type LiteralKind uint8

const (
	LiteralInt LiteralKind = iota
	LiteralFloat
	LiteralBool
)

// LiteralExpr is a literal value, stored as its source spelling.
type LiteralExpr struct {
	Kind  LiteralKind
	Value string
	Type  TypeDenoter
	Area  report.SourceArea
}

func (e *LiteralExpr) Pos() report.SourceArea { return e.Area }
func (e *LiteralExpr) exprNode()              {}
func (e *LiteralExpr) TypeDen() TypeDenoter   { return e.Type }

// BinaryExpr is a binary operation.
type BinaryExpr struct {
	Left  Expr
	Op    BinaryOp
	Right Expr
	Type  TypeDenoter
	Area  report.SourceArea
}

func (e *BinaryExpr) Pos() report.SourceArea { return e.Area }
func (e *BinaryExpr) exprNode()              {}
func (e *BinaryExpr) TypeDen() TypeDenoter   { return e.Type }

// UnaryExpr is a prefix unary operation.
type UnaryExpr struct {
	Op      UnaryOp
	Operand Expr
	Type    TypeDenoter
	Area    report.SourceArea
}

func (e *UnaryExpr) Pos() report.SourceArea { return e.Area }
func (e *UnaryExpr) exprNode()              {}
func (e *UnaryExpr) TypeDen() TypeDenoter   { return e.Type }

// PostUnaryExpr is a postfix increment or decrement.
type PostUnaryExpr struct {
	Operand Expr
	Op      UnaryOp
	Type    TypeDenoter
	Area    report.SourceArea
}

func (e *PostUnaryExpr) Pos() report.SourceArea { return e.Area }
func (e *PostUnaryExpr) exprNode()              {}
func (e *PostUnaryExpr) TypeDen() TypeDenoter   { return e.Type }

// TernaryExpr is a conditional expression.
type TernaryExpr struct {
	Cond Expr
	Then Expr
	Else Expr
	Type TypeDenoter
	Area report.SourceArea
}

func (e *TernaryExpr) Pos() report.SourceArea { return e.Area }
func (e *TernaryExpr) exprNode()              {}
func (e *TernaryExpr) TypeDen() TypeDenoter   { return e.Type }

// CallExpr is a function, intrinsic, or type-constructor call. After
// analysis exactly one of Decl, Intrinsic, or ConstructType is set.
type CallExpr struct {
	Ident         string
	Args          []Expr
	Decl          *FunctionDecl
	Intrinsic     Intrinsic
	ConstructType DataType
	Type          TypeDenoter
	Area          report.SourceArea
}

func (e *CallExpr) Pos() report.SourceArea { return e.Area }
func (e *CallExpr) exprNode()              {}
func (e *CallExpr) TypeDen() TypeDenoter   { return e.Type }

// MethodCallExpr is an object method call, e.g. texture.Sample(s, uv).
type MethodCallExpr struct {
	Object Expr
	Method string
	Args   []Expr
	Type   TypeDenoter
	Area   report.SourceArea
}

func (e *MethodCallExpr) Pos() report.SourceArea { return e.Area }
func (e *MethodCallExpr) exprNode()              {}
func (e *MethodCallExpr) TypeDen() TypeDenoter   { return e.Type }

// MemberExpr is a struct member access or vector swizzle.
type MemberExpr struct {
	Object    Expr
	Member    string
	IsSwizzle bool
	Type      TypeDenoter
	Area      report.SourceArea
}

func (e *MemberExpr) Pos() report.SourceArea { return e.Area }
func (e *MemberExpr) exprNode()              {}
func (e *MemberExpr) TypeDen() TypeDenoter   { return e.Type }

// IndexExpr is an array or vector subscript.
type IndexExpr struct {
	Object Expr
	Index  Expr
	Type   TypeDenoter
	Area   report.SourceArea
}

func (e *IndexExpr) Pos() report.SourceArea { return e.Area }
func (e *IndexExpr) exprNode()              {}
func (e *IndexExpr) TypeDen() TypeDenoter   { return e.Type }

// CastExpr is an explicit type cast.
type CastExpr struct {
	Target TypeDenoter
	Expr   Expr
	Area   report.SourceArea
}

func (e *CastExpr) Pos() report.SourceArea { return e.Area }
func (e *CastExpr) exprNode()              {}
func (e *CastExpr) TypeDen() TypeDenoter   { return e.Target }
