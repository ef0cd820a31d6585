// Package xsc provides a source-to-source shader cross-compiler: it
// parses HLSL (High-Level Shading Language) source code, analyzes it,
// and emits equivalent GLSL (OpenGL Shading Language) source code.
//
// The package provides a simple, high-level API for shader translation
// as well as lower-level access to the individual compilation stages.
//
// Example usage:
//
//	source := `
//	float4 main(float4 pos : POSITION) : SV_Position {
//	    return pos;
//	}
//	`
//	glslSource, err := xsc.Compile(source)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The compilation pipeline is:
//  1. Parse HLSL source to AST
//  2. Analyze the AST (name resolution, overloads, type denoters)
//  3. Generate GLSL text
package xsc

import (
	"bytes"
	"fmt"
	"io"

	"github.com/xsclang/xsc/analyzer"
	"github.com/xsclang/xsc/ast"
	"github.com/xsclang/xsc/glsl"
	"github.com/xsclang/xsc/hlsl"
	"github.com/xsclang/xsc/report"
)

// Version is the compiler version string.
const Version = "0.2.0"

// CompileOptions configures shader translation.
type CompileOptions struct {
	// SourceName identifies the input in diagnostics (default: "<input>").
	SourceName string

	// EntryPoint is the HLSL function emitted as void main() (default: "main").
	EntryPoint string

	// Target selects the shader stage (default: vertex).
	Target ast.ShaderTarget

	// GLSLVersion is the #version number of the output (default: 330).
	GLSLVersion int

	// Indent is the output indentation unit (default: four spaces).
	Indent string

	// Log, when non-nil, receives every report submitted during
	// compilation. Reports are collected and attached to the returned
	// Result either way.
	Log report.Log
}

// DefaultOptions returns sensible default options.
func DefaultOptions() CompileOptions {
	return CompileOptions{
		SourceName:  "<input>",
		EntryPoint:  "main",
		Target:      ast.TargetVertex,
		GLSLVersion: 330,
		Indent:      "    ",
	}
}

// Result carries the compilation output and all submitted reports.
type Result struct {
	// GLSL is the generated shader source; empty when any error was
	// reported.
	GLSL string

	// Reports are all diagnostics submitted during compilation, in order.
	Reports []*report.Report
}

// HasErrors reports whether any error-severity report was submitted.
func (r *Result) HasErrors() bool {
	for _, rep := range r.Reports {
		if rep.Type() == report.Error {
			return true
		}
	}
	return false
}

// Compile translates HLSL source code to GLSL using default options.
func Compile(source string) (string, error) {
	result, err := CompileWithOptions(source, DefaultOptions())
	if err != nil {
		return "", err
	}
	return result.GLSL, nil
}

// CompileWithOptions translates HLSL source code to GLSL. A compilation
// with any error report produces no output text; warnings do not
// suppress output.
func CompileWithOptions(source string, opts CompileOptions) (*Result, error) {
	opts = withDefaults(opts)

	collector := &report.CollectLog{}
	log := opts.Log
	if log == nil {
		log = collector
	} else {
		log = teeLog{log, collector}
	}

	src := report.NewSourceCode(opts.SourceName, source)

	// Parse
	prog, syntaxHandler, err := parse(src, log)
	result := &Result{Reports: collector.Reports}
	if err != nil {
		return resultWithReports(result, collector), err
	}
	if syntaxHandler.HasErrors() {
		return resultWithReports(result, collector), fmt.Errorf("parsing failed")
	}

	// Analyze
	contextHandler := report.NewHandler("context error", log)
	analyzer.New(contextHandler).Analyze(prog)
	if contextHandler.HasErrors() {
		return resultWithReports(result, collector), fmt.Errorf("semantic analysis failed")
	}

	// Generate
	var buf bytes.Buffer
	if err := Generate(prog, &buf, opts, log); err != nil {
		return resultWithReports(result, collector), err
	}

	result.GLSL = buf.String()
	result.Reports = collector.Reports
	return result, nil
}

// Parse parses HLSL source code to an AST. This is the first stage of
// compilation; the AST carries no semantic information yet.
func Parse(source, sourceName string) (*ast.Program, error) {
	src := report.NewSourceCode(sourceName, source)
	prog, handler, err := parse(src, nil)
	if err != nil {
		return nil, err
	}
	if handler.HasErrors() {
		return nil, fmt.Errorf("parsing failed")
	}
	return prog, nil
}

// Analyze runs semantic analysis over a parsed program, submitting
// diagnostics to log. It returns an error when any context error was
// reported.
func Analyze(prog *ast.Program, log report.Log) error {
	handler := report.NewHandler("context error", log)
	analyzer.New(handler).Analyze(prog)
	if handler.HasErrors() {
		return fmt.Errorf("semantic analysis failed")
	}
	return nil
}

// Generate writes the GLSL translation of an analyzed program to out,
// submitting diagnostics to log. This is the final stage of compilation;
// it returns an error when generation aborts or any error was reported.
func Generate(prog *ast.Program, out io.Writer, opts CompileOptions, log report.Log) error {
	opts = withDefaults(opts)
	handler := report.NewHandler("generation error", log)
	genOpts := glsl.Options{
		Version:    opts.GLSLVersion,
		Indent:     opts.Indent,
		EntryPoint: opts.EntryPoint,
		Target:     opts.Target,
	}
	if err := glsl.Generate(prog, out, genOpts, handler); err != nil {
		return fmt.Errorf("GLSL generation error: %w", err)
	}
	if handler.HasErrors() {
		return fmt.Errorf("GLSL generation failed")
	}
	return nil
}

func parse(src *report.SourceCode, log report.Log) (*ast.Program, *report.Handler, error) {
	handler := report.NewHandler("syntax error", log)

	lexer := hlsl.NewLexer(src, handler)
	tokens, err := lexer.Tokenize()
	if err != nil {
		return nil, handler, fmt.Errorf("tokenization error: %w", err)
	}

	parser := hlsl.NewParser(src, handler, tokens)
	prog, err := parser.Parse()
	if err != nil {
		return nil, handler, fmt.Errorf("parse error: %w", err)
	}
	return prog, handler, nil
}

func resultWithReports(result *Result, collector *report.CollectLog) *Result {
	result.GLSL = ""
	result.Reports = collector.Reports
	return result
}

func withDefaults(opts CompileOptions) CompileOptions {
	def := DefaultOptions()
	if opts.SourceName == "" {
		opts.SourceName = def.SourceName
	}
	if opts.EntryPoint == "" {
		opts.EntryPoint = def.EntryPoint
	}
	if opts.GLSLVersion == 0 {
		opts.GLSLVersion = def.GLSLVersion
	}
	if opts.Indent == "" {
		opts.Indent = def.Indent
	}
	return opts
}

// teeLog forwards every report to both sinks.
type teeLog [2]report.Log

func (t teeLog) SubmitReport(r *report.Report) {
	t[0].SubmitReport(r)
	t[1].SubmitReport(r)
}
