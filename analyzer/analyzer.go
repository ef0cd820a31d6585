// Package analyzer performs semantic analysis over the AST: it resolves
// identifiers through scoped overload sets, attaches type denoters to
// expressions, and checks conversions, conditions, and return types.
package analyzer

import (
	"fmt"

	"github.com/xsclang/xsc/ast"
	"github.com/xsclang/xsc/report"
	"github.com/xsclang/xsc/symbol"
)

// Analyzer walks a program and decorates it with semantic information.
type Analyzer struct {
	src     *report.SourceCode
	handler *report.Handler
	symbols *symbol.Table[*symbol.Overload]

	currentFn *ast.FunctionDecl
}

// New creates an analyzer reporting through handler with category
// "context error".
func New(handler *report.Handler) *Analyzer {
	return &Analyzer{
		handler: handler,
		symbols: symbol.NewTable[*symbol.Overload](),
	}
}

// Analyze resolves and checks the whole program. All diagnostics are
// delivered through the handler; the caller decides whether generation
// may proceed by inspecting the handler's error state.
func (a *Analyzer) Analyze(prog *ast.Program) {
	a.src = prog.Source

	// Register all global declarations first so functions may call
	// functions declared later in the file.
	for _, decl := range prog.Decls {
		a.registerGlobalDecl(decl)
	}

	for _, decl := range prog.Decls {
		if fn, ok := decl.(*ast.FunctionDecl); ok {
			a.analyzeFunction(fn)
		}
		if v, ok := decl.(*ast.VarDecl); ok && v.Init != nil {
			a.analyzeExpr(v.Init)
			a.checkAssignable(v.Type, v.Init, v.Pos())
		}
	}
}

func (a *Analyzer) registerGlobalDecl(decl ast.Decl) {
	switch d := decl.(type) {
	case *ast.StructDecl:
		a.register(d.Ident, d, d.Pos())
	case *ast.AliasDecl:
		a.register(d.Ident, d, d.Pos())
	case *ast.VarDecl:
		a.register(d.Ident, d, d.Pos())
	case *ast.TextureDecl:
		a.register(d.Ident, d, d.Pos())
	case *ast.SamplerDecl:
		a.register(d.Ident, d, d.Pos())
	case *ast.BufferDecl:
		a.register(d.Ident, d, d.Pos())
		// cbuffer fields live in the global namespace.
		for _, field := range d.Members {
			a.register(field.Ident, field, field.Pos())
		}
	case *ast.FunctionDecl:
		a.register(d.Ident, d, d.Pos())
	}
}

// register adds decl to the overload set of ident in the current scope,
// creating the set when the identifier is new at this level.
func (a *Analyzer) register(ident string, decl ast.Decl, area report.SourceArea) {
	o := symbol.NewOverload(ident)
	o.AddSymbolRef(decl)
	if err := a.symbols.Register(ident, o, nil); err == nil {
		return
	}

	// Already bound at this scope level: extend the overload set.
	existing, _ := a.symbols.Fetch(ident)
	if existing != nil && existing.AddSymbolRef(decl) {
		return
	}
	a.error(fmt.Sprintf("identifier '%s' already declared in this scope", ident), area)
}

func (a *Analyzer) analyzeFunction(fn *ast.FunctionDecl) {
	a.currentFn = fn
	a.symbols.OpenScope()

	for _, param := range fn.Params {
		a.register(param.Ident, param, param.Pos())
	}
	a.analyzeBlock(fn.Body)

	a.symbols.CloseScope()
	a.currentFn = nil
}

func (a *Analyzer) analyzeBlock(block *ast.BlockStmt) {
	if block == nil {
		return
	}
	a.symbols.OpenScope()
	for _, stmt := range block.Stmts {
		a.analyzeStmt(stmt)
	}
	a.symbols.CloseScope()
}

func (a *Analyzer) analyzeStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		a.analyzeBlock(s)

	case *ast.VarDecl:
		if s.Init != nil {
			a.analyzeExpr(s.Init)
			a.checkAssignable(s.Type, s.Init, s.Pos())
		}
		a.register(s.Ident, s, s.Pos())

	case *ast.ReturnStmt:
		a.analyzeReturn(s)

	case *ast.IfStmt:
		a.analyzeExpr(s.Cond)
		a.checkCondition(s.Cond)
		a.analyzeBlock(s.Then)
		if s.Else != nil {
			a.analyzeStmt(s.Else)
		}

	case *ast.ForStmt:
		a.symbols.OpenScope()
		if s.Init != nil {
			a.analyzeStmt(s.Init)
		}
		if s.Cond != nil {
			a.analyzeExpr(s.Cond)
			a.checkCondition(s.Cond)
		}
		if s.Update != nil {
			a.analyzeStmt(s.Update)
		}
		a.analyzeBlock(s.Body)
		a.symbols.CloseScope()

	case *ast.WhileStmt:
		a.analyzeExpr(s.Cond)
		a.checkCondition(s.Cond)
		a.analyzeBlock(s.Body)

	case *ast.DoWhileStmt:
		a.analyzeBlock(s.Body)
		a.analyzeExpr(s.Cond)
		a.checkCondition(s.Cond)

	case *ast.CtrlTransferStmt:
		// break/continue placement is not validated here.

	case *ast.AssignStmt:
		a.analyzeExpr(s.Left)
		a.analyzeExpr(s.Right)
		if leftType := s.Left.TypeDen(); leftType != nil {
			a.checkAssignable(leftType, s.Right, s.Pos())
		}

	case *ast.ExprStmt:
		a.analyzeExpr(s.Expr)
	}
}

func (a *Analyzer) analyzeReturn(s *ast.ReturnStmt) {
	if a.currentFn == nil {
		return
	}
	retType := a.currentFn.ReturnType
	_, isVoid := ast.Aliased(retType).(*ast.VoidTypeDenoter)

	if s.Value == nil {
		if !isVoid {
			a.error(fmt.Sprintf("function '%s' must return a value", a.currentFn.Ident), s.Pos())
		}
		return
	}
	if isVoid {
		a.error(fmt.Sprintf("void function '%s' cannot return a value", a.currentFn.Ident), s.Pos())
		return
	}
	a.analyzeExpr(s.Value)
	a.checkAssignable(retType, s.Value, s.Pos())
}

func (a *Analyzer) checkCondition(cond ast.Expr) {
	t := cond.TypeDen()
	if t == nil {
		return
	}
	boolType := &ast.BaseTypeDenoter{DataType: ast.TypeBool}
	if !ast.IsCastableTo(t, boolType) {
		a.error(fmt.Sprintf("condition of type '%s' is not convertible to bool", t), cond.Pos())
	}
}

func (a *Analyzer) checkAssignable(target ast.TypeDenoter, value ast.Expr, area report.SourceArea) {
	vt := value.TypeDen()
	if vt == nil || target == nil {
		return
	}
	if !ast.IsCastableTo(vt, target) {
		a.error(
			fmt.Sprintf("cannot implicitly convert from '%s' to '%s'", vt, target),
			area,
		)
		return
	}

	// Narrowing conversions are legal but lossy.
	vb, okV := ast.Aliased(vt).(*ast.BaseTypeDenoter)
	tb, okT := ast.Aliased(target).(*ast.BaseTypeDenoter)
	if okV && okT && vb.DataType.PrecisionRank() > tb.DataType.PrecisionRank() {
		a.handler.Warning(
			fmt.Sprintf("implicit conversion from '%s' to '%s' may lose precision", vt, target),
			a.src, area, report.ErrorCode{})
	}
}

func (a *Analyzer) error(msg string, area report.SourceArea) {
	a.handler.Error(msg, a.src, area, report.ErrorCode{})
}
