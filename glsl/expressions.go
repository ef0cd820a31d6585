// Copyright 2026 The xsc Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"
	"strings"

	"github.com/xsclang/xsc/ast"
)

// writeExpr renders an expression as GLSL text.
func (g *Generator) writeExpr(expr ast.Expr) (string, error) {
	switch e := expr.(type) {
	case *ast.IdentExpr:
		return g.writeIdentExpr(e), nil

	case *ast.LiteralExpr:
		return literalString(e), nil

	case *ast.BinaryExpr:
		left, err := g.writeExpr(e.Left)
		if err != nil {
			return "", err
		}
		right, err := g.writeExpr(e.Right)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(%s %s %s)", left, e.Op, right), nil

	case *ast.UnaryExpr:
		operand, err := g.writeExpr(e.Operand)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(%s%s)", e.Op, operand), nil

	case *ast.PostUnaryExpr:
		operand, err := g.writeExpr(e.Operand)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s%s", operand, e.Op), nil

	case *ast.TernaryExpr:
		cond, err := g.writeExpr(e.Cond)
		if err != nil {
			return "", err
		}
		then, err := g.writeExpr(e.Then)
		if err != nil {
			return "", err
		}
		elseStr, err := g.writeExpr(e.Else)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(%s ? %s : %s)", cond, then, elseStr), nil

	case *ast.CallExpr:
		return g.writeCallExpr(e)

	case *ast.MethodCallExpr:
		return g.writeMethodCallExpr(e)

	case *ast.MemberExpr:
		return g.writeMemberExpr(e)

	case *ast.IndexExpr:
		object, err := g.writeExpr(e.Object)
		if err != nil {
			return "", err
		}
		index, err := g.writeExpr(e.Index)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s[%s]", object, index), nil

	case *ast.CastExpr:
		typeStr, err := g.denoterName(e.Target)
		if err != nil {
			return "", g.errorBreak(err.Error(), e.Pos())
		}
		operand, err := g.writeExpr(e.Expr)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s(%s)", typeStr, operand), nil
	}
	return "", g.errorBreak(fmt.Sprintf("unsupported expression %T", expr), expr.Pos())
}

func (g *Generator) writeIdentExpr(e *ast.IdentExpr) string {
	if g.inEntry {
		if v, ok := e.Decl.(*ast.VarDecl); ok {
			if name, ok := g.subst[v]; ok {
				return name
			}
		}
	}
	return escapeKeyword(e.Ident)
}

// literalString normalizes HLSL literal spellings for GLSL: a float
// literal loses its f/h/l suffix and gains ".0" when it has neither a
// decimal point nor an exponent; other literals pass through unchanged.
func literalString(e *ast.LiteralExpr) string {
	value := e.Value
	if e.Kind == ast.LiteralFloat {
		switch value[len(value)-1] {
		case 'h', 'H', 'l', 'L', 'f', 'F':
			value = value[:len(value)-1]
		}
		if !strings.ContainsAny(value, ".eE") {
			value += ".0"
		}
	}
	return value
}

func (g *Generator) writeCallExpr(e *ast.CallExpr) (string, error) {
	args, err := g.writeArgs(e.Args)
	if err != nil {
		return "", err
	}

	// Type constructor, e.g. float3(...) -> vec3(...).
	if e.ConstructType != ast.TypeUndefined {
		typeStr, err := typeName(e.ConstructType)
		if err != nil {
			return "", g.errorBreak(err.Error(), e.Pos())
		}
		return fmt.Sprintf("%s(%s)", typeStr, strings.Join(args, ", ")), nil
	}

	// User-declared function.
	if e.Decl != nil {
		return fmt.Sprintf("%s(%s)", escapeKeyword(e.Ident), strings.Join(args, ", ")), nil
	}

	return g.writeIntrinsicCall(e, args)
}

// writeIntrinsicCall maps an intrinsic call to its GLSL form. Most
// intrinsics rename one-to-one; a few need structural rewrites.
func (g *Generator) writeIntrinsicCall(e *ast.CallExpr, args []string) (string, error) {
	switch e.Intrinsic {
	case ast.IntrinsicMul:
		if len(args) == 2 {
			return fmt.Sprintf("(%s * %s)", args[0], args[1]), nil
		}

	case ast.IntrinsicSaturate:
		if len(args) == 1 {
			return fmt.Sprintf("clamp(%s, 0.0, 1.0)", args[0]), nil
		}

	case ast.IntrinsicRcp:
		if len(args) == 1 {
			return fmt.Sprintf("(1.0 / (%s))", args[0]), nil
		}

	case ast.IntrinsicLog10:
		if len(args) == 1 {
			return fmt.Sprintf("(log(%s) / log(10.0))", args[0]), nil
		}

	case ast.IntrinsicFWidth, ast.IntrinsicDDX, ast.IntrinsicDDY:
		if g.opts.Target != ast.TargetFragment {
			return "", g.errorBreak(
				fmt.Sprintf("intrinsic '%s' requires a fragment shader", e.Intrinsic), e.Pos())
		}
	}

	name, ok := intrinsicFuncs[e.Intrinsic]
	if !ok {
		return "", g.errorBreak(
			fmt.Sprintf("intrinsic '%s' has no GLSL equivalent", e.Intrinsic), e.Pos())
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(args, ", ")), nil
}

// writeMethodCallExpr translates texture object methods to the GLSL
// texture functions; the separate HLSL sampler argument is dropped since
// GLSL samplers are combined.
func (g *Generator) writeMethodCallExpr(e *ast.MethodCallExpr) (string, error) {
	object, err := g.writeExpr(e.Object)
	if err != nil {
		return "", err
	}
	args, err := g.writeArgs(e.Args)
	if err != nil {
		return "", err
	}
	// Drop the leading SamplerState argument for sampling methods.
	sampleArgs := args
	if len(sampleArgs) > 0 && e.Method != "Load" && e.Method != "GetDimensions" {
		sampleArgs = sampleArgs[1:]
	}
	rest := strings.Join(sampleArgs, ", ")

	switch e.Method {
	case "Sample":
		return fmt.Sprintf("texture(%s, %s)", object, rest), nil
	case "SampleBias":
		return fmt.Sprintf("texture(%s, %s)", object, rest), nil
	case "SampleLevel":
		return fmt.Sprintf("textureLod(%s, %s)", object, rest), nil
	case "SampleGrad":
		return fmt.Sprintf("textureGrad(%s, %s)", object, rest), nil
	case "SampleCmp":
		return fmt.Sprintf("texture(%s, %s)", object, rest), nil
	case "Load":
		if len(args) == 1 {
			return fmt.Sprintf("texelFetch(%s, (%s).xy, (%s).z)", object, args[0], args[0]), nil
		}
		return fmt.Sprintf("texelFetch(%s, %s)", object, strings.Join(args, ", ")), nil
	}
	return "", g.errorBreak(
		fmt.Sprintf("texture method '%s' has no GLSL equivalent", e.Method), e.Pos())
}

func (g *Generator) writeMemberExpr(e *ast.MemberExpr) (string, error) {
	// Entry-point interface structs dissolve into stage inputs: a member
	// access through such a parameter becomes the input variable itself.
	if g.inEntry {
		if ident, ok := e.Object.(*ast.IdentExpr); ok {
			if param, ok := ident.Decl.(*ast.VarDecl); ok && g.entryParams[param] {
				if structDen, ok := ast.Aliased(param.Type).(*ast.StructTypeDenoter); ok && structDen.Ref != nil {
					if member := structDen.Ref.Member(e.Member); member != nil {
						if name, ok := g.subst[member]; ok {
							return name, nil
						}
					}
				}
			}
		}
	}

	object, err := g.writeExpr(e.Object)
	if err != nil {
		return "", err
	}
	member := e.Member
	if !e.IsSwizzle {
		member = escapeKeyword(member)
	}
	return fmt.Sprintf("%s.%s", object, member), nil
}

func (g *Generator) writeArgs(args []ast.Expr) ([]string, error) {
	strs := make([]string, 0, len(args))
	for _, arg := range args {
		s, err := g.writeExpr(arg)
		if err != nil {
			return nil, err
		}
		strs = append(strs, s)
	}
	return strs, nil
}
