// Copyright 2026 The xsc Authors
// SPDX-License-Identifier: MIT

// Package glsl generates GLSL source code from the analyzed HLSL AST.
package glsl

import (
	"fmt"
	"io"
	"strings"

	"github.com/xsclang/xsc/ast"
	"github.com/xsclang/xsc/report"
	"github.com/xsclang/xsc/writer"
)

// Options configures GLSL output.
type Options struct {
	// Version is the GLSL #version number, e.g. 330.
	Version int

	// Indent is the indentation unit.
	Indent string

	// EntryPoint names the HLSL function emitted as void main().
	EntryPoint string

	// Target selects the shader stage.
	Target ast.ShaderTarget
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		Version:    330,
		Indent:     "    ",
		EntryPoint: "main",
		Target:     ast.TargetVertex,
	}
}

// ioVar is one entry-point input or output: a parameter, a struct member
// reached through a parameter, or the (possibly struct-expanded) return
// value.
type ioVar struct {
	decl     *ast.VarDecl
	semantic string
	builtin  string // gl_* substitution; empty for user varyings
	name     string // declared GLSL name when not a builtin
	location int
}

// Generator emits GLSL for one analyzed program.
type Generator struct {
	opts    Options
	cw      *writer.CodeWriter
	handler *report.Handler
	src     *report.SourceCode

	entry       *ast.FunctionDecl
	inEntry     bool
	entryParams map[*ast.VarDecl]bool
	subst       map[*ast.VarDecl]string
	outputs     []ioVar
}

// Generate writes the GLSL translation of prog to out. Generation errors
// are delivered through handler and abort the pass.
func Generate(prog *ast.Program, out io.Writer, opts Options, handler *report.Handler) error {
	cw := writer.NewCodeWriter(opts.Indent)
	if err := cw.OutputStream(out); err != nil {
		return err
	}
	g := &Generator{
		opts:        opts,
		cw:          cw,
		handler:     handler,
		src:         prog.Source,
		entryParams: make(map[*ast.VarDecl]bool),
		subst:       make(map[*ast.VarDecl]string),
	}
	return g.writeProgram(prog)
}

func (g *Generator) writeProgram(prog *ast.Program) error {
	for _, decl := range prog.Decls {
		if fn, ok := decl.(*ast.FunctionDecl); ok && fn.Ident == g.opts.EntryPoint {
			g.entry = fn
			break
		}
	}
	if g.entry == nil {
		return g.handler.ErrorBreak(
			fmt.Sprintf("entry point '%s' not found", g.opts.EntryPoint),
			g.src, report.IgnoreArea, report.ErrorCode{})
	}

	g.writeLinef("#version %d core", g.opts.Version)
	g.cw.WriteLine("")

	// Struct types first: both interface structs and plain data structs
	// remain usable as local types in the translated code.
	for _, decl := range prog.Decls {
		if s, ok := decl.(*ast.StructDecl); ok {
			if err := g.writeStructDecl(s); err != nil {
				return err
			}
		}
	}

	if err := g.writeGlobalDecls(prog); err != nil {
		return err
	}

	if err := g.collectEntryIO(); err != nil {
		return err
	}
	g.writeEntryIODecls()

	// Regular functions, in source order, entry point excluded.
	for _, decl := range prog.Decls {
		fn, ok := decl.(*ast.FunctionDecl)
		if !ok || fn == g.entry {
			continue
		}
		if err := g.writeFunction(fn); err != nil {
			return err
		}
	}

	return g.writeEntryPoint()
}

func (g *Generator) writeStructDecl(s *ast.StructDecl) error {
	g.writeLinef("struct %s {", escapeKeyword(s.Ident))
	g.cw.PushIndent()
	for _, m := range s.Members {
		typeStr, err := g.denoterName(m.Type)
		if err != nil {
			return g.errorBreak(err.Error(), m.Pos())
		}
		g.writeLinef("%s %s%s;", typeStr, escapeKeyword(m.Ident), arraySuffix(m.Type))
	}
	g.cw.PopIndent()
	g.cw.WriteLine("};")
	g.cw.WriteLine("")
	return nil
}

func (g *Generator) writeGlobalDecls(prog *ast.Program) error {
	wrote := false
	for _, decl := range prog.Decls {
		switch d := decl.(type) {
		case *ast.BufferDecl:
			// cbuffer fields become plain uniforms; the block grouping
			// carries no meaning for GLSL without explicit std140 use.
			for _, field := range d.Members {
				typeStr, err := g.denoterName(field.Type)
				if err != nil {
					return g.errorBreak(err.Error(), field.Pos())
				}
				g.writeLinef("uniform %s %s%s;", typeStr, escapeKeyword(field.Ident), arraySuffix(field.Type))
				wrote = true
			}

		case *ast.TextureDecl:
			// HLSL separates textures and samplers; GLSL combines them.
			// The combined sampler takes the texture's name.
			g.writeLinef("uniform %s %s;", samplerTypeName(d.Dim), escapeKeyword(d.Ident))
			wrote = true

		case *ast.SamplerDecl:
			// Subsumed by the combined sampler declarations.

		case *ast.VarDecl:
			typeStr, err := g.denoterName(d.Type)
			if err != nil {
				return g.errorBreak(err.Error(), d.Pos())
			}
			qualifier := ""
			if d.IsConst {
				qualifier = "const "
			} else if d.IsUniform {
				qualifier = "uniform "
			}
			if d.Init != nil {
				init, err := g.writeExpr(d.Init)
				if err != nil {
					return err
				}
				g.writeLinef("%s%s %s%s = %s;", qualifier, typeStr, escapeKeyword(d.Ident), arraySuffix(d.Type), init)
			} else {
				g.writeLinef("%s%s %s%s;", qualifier, typeStr, escapeKeyword(d.Ident), arraySuffix(d.Type))
			}
			wrote = true
		}
	}
	if wrote {
		g.cw.WriteLine("")
	}
	return nil
}

// collectEntryIO gathers the entry point's inputs and outputs from its
// parameter and return semantics, expanding interface structs.
func (g *Generator) collectEntryIO() error {
	inputLoc := 0
	for _, param := range g.entry.Params {
		g.entryParams[param] = true

		if structDen, ok := ast.Aliased(param.Type).(*ast.StructTypeDenoter); ok {
			if structDen.Ref == nil {
				return g.errorBreak(
					fmt.Sprintf("unresolved struct type '%s'", structDen.Ident), param.Pos())
			}
			for _, member := range structDen.Ref.Members {
				if err := g.addInput(member, &inputLoc); err != nil {
					return err
				}
			}
			continue
		}
		if err := g.addInput(param, &inputLoc); err != nil {
			return err
		}
	}

	return g.collectEntryOutputs()
}

func (g *Generator) addInput(decl *ast.VarDecl, nextLoc *int) error {
	if decl.Semantic == "" {
		return g.errorBreak(
			fmt.Sprintf("entry point input '%s' requires a semantic", decl.Ident), decl.Pos())
	}
	v := g.makeIOVar(decl, decl.Semantic, false)
	if v.builtin != "" {
		g.subst[decl] = v.builtin
	} else {
		v.location = *nextLoc
		*nextLoc++
		g.subst[decl] = v.name
		g.declareInput(v)
	}
	return nil
}

func (g *Generator) declareInput(v ioVar) {
	typeStr, err := g.denoterName(v.decl.Type)
	if err != nil {
		g.handler.Error(err.Error(), g.src, v.decl.Pos(), report.ErrorCode{})
		return
	}
	if g.opts.Target == ast.TargetVertex {
		g.writeLinef("layout(location = %d) in %s %s;", v.location, typeStr, v.name)
	} else {
		g.writeLinef("in %s %s;", typeStr, v.name)
	}
}

func (g *Generator) collectEntryOutputs() error {
	if g.entry.Semantic != "" {
		v := g.makeIOVar(nil, g.entry.Semantic, true)
		v.decl = &ast.VarDecl{Ident: "result", Type: g.entry.ReturnType}
		g.outputs = append(g.outputs, v)
		return nil
	}

	structDen, ok := ast.Aliased(g.entry.ReturnType).(*ast.StructTypeDenoter)
	if !ok {
		// A void entry point has no outputs.
		return nil
	}
	if structDen.Ref == nil {
		return g.errorBreak(
			fmt.Sprintf("unresolved struct type '%s'", structDen.Ident), g.entry.Pos())
	}
	for _, member := range structDen.Ref.Members {
		if member.Semantic == "" {
			return g.errorBreak(
				fmt.Sprintf("entry point output '%s' requires a semantic", member.Ident),
				member.Pos())
		}
		g.outputs = append(g.outputs, g.makeIOVarFor(member, member.Semantic, true))
	}
	return nil
}

func (g *Generator) makeIOVarFor(decl *ast.VarDecl, semantic string, output bool) ioVar {
	v := g.makeIOVar(decl, semantic, output)
	v.decl = decl
	return v
}

func (g *Generator) makeIOVar(decl *ast.VarDecl, semantic string, output bool) ioVar {
	v := ioVar{decl: decl, semantic: semantic}
	v.builtin = builtinName(semantic, g.opts.Target, output)
	if v.builtin == "" {
		v.name = varyingName(semantic, g.opts.Target, output)
		v.location = targetLocation(semantic)
	}
	return v
}

// builtinName maps a system-value semantic to the GLSL built-in variable
// for the given stage and direction, or "" when a user varying is needed.
func builtinName(semantic string, target ast.ShaderTarget, output bool) string {
	switch strings.ToUpper(semantic) {
	case "SV_POSITION":
		if target == ast.TargetVertex && output {
			return "gl_Position"
		}
		if target == ast.TargetFragment && !output {
			return "gl_FragCoord"
		}
	case "SV_VERTEXID":
		return "gl_VertexID"
	case "SV_INSTANCEID":
		return "gl_InstanceID"
	case "SV_ISFRONTFACE":
		return "gl_FrontFacing"
	case "SV_DEPTH":
		if target == ast.TargetFragment && output {
			return "gl_FragDepth"
		}
	}
	return ""
}

// varyingName derives a stable GLSL identifier from a semantic. Vertex
// inputs are attributes ("xsa_"); everything else crossing a stage
// boundary shares the "xsv_" namespace so separately compiled stages link.
func varyingName(semantic string, target ast.ShaderTarget, output bool) string {
	upper := strings.ToUpper(semantic)
	if strings.HasPrefix(upper, "SV_TARGET") {
		return fragColorName(upper)
	}
	if target == ast.TargetVertex && !output {
		return "xsa_" + upper
	}
	return "xsv_" + upper
}

func fragColorName(upperSemantic string) string {
	suffix := strings.TrimPrefix(upperSemantic, "SV_TARGET")
	if suffix == "" || suffix == "0" {
		return "fragColor"
	}
	return "fragColor" + suffix
}

// targetLocation extracts the render-target index from SV_Target<N>.
func targetLocation(semantic string) int {
	upper := strings.ToUpper(semantic)
	if !strings.HasPrefix(upper, "SV_TARGET") {
		return 0
	}
	loc := 0
	fmt.Sscanf(strings.TrimPrefix(upper, "SV_TARGET"), "%d", &loc)
	return loc
}

func (g *Generator) writeEntryIODecls() {
	wrote := false
	for _, v := range g.outputs {
		if v.builtin != "" {
			continue
		}
		typeStr, err := g.denoterName(v.decl.Type)
		if err != nil {
			g.handler.Error(err.Error(), g.src, g.entry.Pos(), report.ErrorCode{})
			continue
		}
		if g.opts.Target == ast.TargetFragment {
			g.writeLinef("layout(location = %d) out %s %s;", v.location, typeStr, v.name)
		} else {
			g.writeLinef("out %s %s;", typeStr, v.name)
		}
		wrote = true
	}
	if wrote || len(g.entryParams) > 0 {
		g.cw.WriteLine("")
	}
}

func (g *Generator) writeFunction(fn *ast.FunctionDecl) error {
	retStr, err := g.denoterName(fn.ReturnType)
	if err != nil {
		return g.errorBreak(err.Error(), fn.Pos())
	}

	params := make([]string, 0, len(fn.Params))
	for _, p := range fn.Params {
		typeStr, err := g.denoterName(p.Type)
		if err != nil {
			return g.errorBreak(err.Error(), p.Pos())
		}
		prefix := ""
		switch p.InputMod {
		case ast.InputOut:
			prefix = "out "
		case ast.InputInOut:
			prefix = "inout "
		}
		params = append(params, fmt.Sprintf("%s%s %s%s", prefix, typeStr, escapeKeyword(p.Ident), arraySuffix(p.Type)))
	}

	g.writeLinef("%s %s(%s) {", retStr, escapeKeyword(fn.Ident), strings.Join(params, ", "))
	g.cw.PushIndent()
	if err := g.writeBlockStmts(fn.Body); err != nil {
		return err
	}
	g.cw.PopIndent()
	g.cw.WriteLine("}")
	g.cw.WriteLine("")
	return nil
}

func (g *Generator) writeEntryPoint() error {
	g.inEntry = true
	defer func() { g.inEntry = false }()

	g.cw.WriteLine("void main() {")
	g.cw.PushIndent()
	if err := g.writeBlockStmts(g.entry.Body); err != nil {
		return err
	}
	g.cw.PopIndent()
	g.cw.WriteLine("}")
	return nil
}

// Output helpers

func (g *Generator) writeLinef(format string, args ...any) {
	if len(args) == 0 {
		g.cw.WriteLine(format)
		return
	}
	g.cw.WriteLine(fmt.Sprintf(format, args...))
}

func (g *Generator) errorBreak(msg string, area report.SourceArea) error {
	return g.handler.ErrorBreak(msg, g.src, area, report.ErrorCode{})
}
