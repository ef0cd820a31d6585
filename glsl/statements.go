// Copyright 2026 The xsc Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"

	"github.com/xsclang/xsc/ast"
)

func (g *Generator) writeBlockStmts(block *ast.BlockStmt) error {
	if block == nil {
		return nil
	}
	for _, stmt := range block.Stmts {
		if err := g.writeStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) writeStmt(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		g.cw.WriteLine("{")
		g.cw.PushIndent()
		if err := g.writeBlockStmts(s); err != nil {
			return err
		}
		g.cw.PopIndent()
		g.cw.WriteLine("}")
		return nil

	case *ast.VarDecl:
		return g.writeLocalVarDecl(s)

	case *ast.ReturnStmt:
		return g.writeReturn(s)

	case *ast.IfStmt:
		return g.writeIf(s)

	case *ast.ForStmt:
		return g.writeFor(s)

	case *ast.WhileStmt:
		cond, err := g.writeExpr(s.Cond)
		if err != nil {
			return err
		}
		g.writeLinef("while (%s) {", cond)
		g.cw.PushIndent()
		if err := g.writeBlockStmts(s.Body); err != nil {
			return err
		}
		g.cw.PopIndent()
		g.cw.WriteLine("}")
		return nil

	case *ast.DoWhileStmt:
		g.cw.WriteLine("do {")
		g.cw.PushIndent()
		if err := g.writeBlockStmts(s.Body); err != nil {
			return err
		}
		g.cw.PopIndent()
		cond, err := g.writeExpr(s.Cond)
		if err != nil {
			return err
		}
		g.writeLinef("} while (%s);", cond)
		return nil

	case *ast.CtrlTransferStmt:
		g.writeLinef("%s;", s.Transfer)
		return nil

	case *ast.AssignStmt:
		text, err := g.assignString(s)
		if err != nil {
			return err
		}
		g.writeLinef("%s;", text)
		return nil

	case *ast.ExprStmt:
		return g.writeExprStmt(s)
	}
	return g.errorBreak(fmt.Sprintf("unsupported statement %T", stmt), stmt.Pos())
}

func (g *Generator) writeLocalVarDecl(s *ast.VarDecl) error {
	typeStr, err := g.denoterName(s.Type)
	if err != nil {
		return g.errorBreak(err.Error(), s.Pos())
	}
	qualifier := ""
	if s.IsConst {
		qualifier = "const "
	}
	if s.Init != nil {
		init, err := g.writeExpr(s.Init)
		if err != nil {
			return err
		}
		g.writeLinef("%s%s %s%s = %s;", qualifier, typeStr, escapeKeyword(s.Ident), arraySuffix(s.Type), init)
	} else {
		g.writeLinef("%s%s %s%s;", qualifier, typeStr, escapeKeyword(s.Ident), arraySuffix(s.Type))
	}
	return nil
}

// writeReturn translates return statements. Inside the entry point the
// return value is routed to the stage outputs instead of being returned.
func (g *Generator) writeReturn(s *ast.ReturnStmt) error {
	if !g.inEntry || len(g.outputs) == 0 {
		if s.Value == nil {
			g.cw.WriteLine("return;")
			return nil
		}
		value, err := g.writeExpr(s.Value)
		if err != nil {
			return err
		}
		g.writeLinef("return %s;", value)
		return nil
	}

	if s.Value == nil {
		g.cw.WriteLine("return;")
		return nil
	}
	value, err := g.writeExpr(s.Value)
	if err != nil {
		return err
	}

	// Direct return semantic: a single output variable.
	if g.entry.Semantic != "" {
		out := g.outputs[0]
		name := out.builtin
		if name == "" {
			name = out.name
		}
		g.writeLinef("%s = %s;", name, value)
		g.cw.WriteLine("return;")
		return nil
	}

	// Struct return: evaluate once, then assign each member to its
	// stage output.
	structDen, ok := ast.Aliased(g.entry.ReturnType).(*ast.StructTypeDenoter)
	if !ok || structDen.Ref == nil {
		g.writeLinef("return %s;", value)
		return nil
	}
	typeStr, err := g.denoterName(g.entry.ReturnType)
	if err != nil {
		return g.errorBreak(err.Error(), s.Pos())
	}
	g.writeLinef("%s xst_output = %s;", typeStr, value)
	for _, out := range g.outputs {
		name := out.builtin
		if name == "" {
			name = out.name
		}
		g.writeLinef("%s = xst_output.%s;", name, escapeKeyword(out.decl.Ident))
	}
	g.cw.WriteLine("return;")
	return nil
}

func (g *Generator) writeIf(s *ast.IfStmt) error {
	return g.writeIfPrefixed(s, "")
}

// writeIfPrefixed writes an if statement; else-if chains pass "} else "
// as the prefix of the nested if so the chain stays flat.
func (g *Generator) writeIfPrefixed(s *ast.IfStmt, prefix string) error {
	cond, err := g.writeExpr(s.Cond)
	if err != nil {
		return err
	}
	g.writeLinef("%sif (%s) {", prefix, cond)
	g.cw.PushIndent()
	if err := g.writeBlockStmts(s.Then); err != nil {
		return err
	}
	g.cw.PopIndent()

	switch elseStmt := s.Else.(type) {
	case nil:
		g.cw.WriteLine("}")
	case *ast.IfStmt:
		return g.writeIfPrefixed(elseStmt, "} else ")
	case *ast.BlockStmt:
		g.cw.WriteLine("} else {")
		g.cw.PushIndent()
		if err := g.writeBlockStmts(elseStmt); err != nil {
			return err
		}
		g.cw.PopIndent()
		g.cw.WriteLine("}")
	}
	return nil
}

func (g *Generator) writeFor(s *ast.ForStmt) error {
	init := ""
	if s.Init != nil {
		text, err := g.inlineStmtString(s.Init)
		if err != nil {
			return err
		}
		init = text
	}
	cond := ""
	if s.Cond != nil {
		text, err := g.writeExpr(s.Cond)
		if err != nil {
			return err
		}
		cond = text
	}
	update := ""
	if s.Update != nil {
		text, err := g.inlineStmtString(s.Update)
		if err != nil {
			return err
		}
		update = text
	}

	g.writeLinef("for (%s; %s; %s) {", init, cond, update)
	g.cw.PushIndent()
	if err := g.writeBlockStmts(s.Body); err != nil {
		return err
	}
	g.cw.PopIndent()
	g.cw.WriteLine("}")
	return nil
}

// inlineStmtString renders a simple statement without indentation or a
// trailing semicolon, for use inside a for-loop header.
func (g *Generator) inlineStmtString(stmt ast.Stmt) (string, error) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		typeStr, err := g.denoterName(s.Type)
		if err != nil {
			return "", g.errorBreak(err.Error(), s.Pos())
		}
		if s.Init != nil {
			init, err := g.writeExpr(s.Init)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%s %s = %s", typeStr, escapeKeyword(s.Ident), init), nil
		}
		return fmt.Sprintf("%s %s", typeStr, escapeKeyword(s.Ident)), nil
	case *ast.AssignStmt:
		return g.assignString(s)
	case *ast.ExprStmt:
		return g.writeExpr(s.Expr)
	}
	return "", g.errorBreak(fmt.Sprintf("unsupported for-loop clause %T", stmt), stmt.Pos())
}

func (g *Generator) assignString(s *ast.AssignStmt) (string, error) {
	left, err := g.writeExpr(s.Left)
	if err != nil {
		return "", err
	}
	right, err := g.writeExpr(s.Right)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %s %s", left, s.Op, right), nil
}

// writeExprStmt writes an expression statement, rewriting the intrinsics
// that translate to statements rather than expressions in GLSL.
func (g *Generator) writeExprStmt(s *ast.ExprStmt) error {
	if call, ok := s.Expr.(*ast.CallExpr); ok {
		switch call.Intrinsic {
		case ast.IntrinsicClip:
			arg, err := g.writeExpr(call.Args[0])
			if err != nil {
				return err
			}
			g.writeLinef("if (%s < 0.0) {", arg)
			g.cw.PushIndent()
			g.cw.WriteLine("discard;")
			g.cw.PopIndent()
			g.cw.WriteLine("}")
			return nil

		case ast.IntrinsicSinCos:
			if len(call.Args) == 3 {
				x, err := g.writeExpr(call.Args[0])
				if err != nil {
					return err
				}
				s1, err := g.writeExpr(call.Args[1])
				if err != nil {
					return err
				}
				c, err := g.writeExpr(call.Args[2])
				if err != nil {
					return err
				}
				g.writeLinef("%s = sin(%s);", s1, x)
				g.writeLinef("%s = cos(%s);", c, x)
				return nil
			}
		}
	}

	text, err := g.writeExpr(s.Expr)
	if err != nil {
		return err
	}
	g.writeLinef("%s;", text)
	return nil
}
