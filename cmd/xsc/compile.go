package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/xsclang/xsc"
	"github.com/xsclang/xsc/ast"
	"github.com/xsclang/xsc/report"
)

var (
	compileOutput      string
	compileEntry       string
	compileTarget      string
	compileGLSLVersion int
	compileIndent      string
	compileConfig      string
)

var compileCmd = &cobra.Command{
	Use:   "compile <input.hlsl>",
	Short: "Compile an HLSL shader to GLSL",
	Long:  "Compile an HLSL source file to GLSL, printing to stdout or writing to a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompile,
}

func init() {
	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "", "Output file (default: stdout)")
	compileCmd.Flags().StringVar(&compileEntry, "entry", "main", "Entry point function name")
	compileCmd.Flags().StringVar(&compileTarget, "target", "vertex", "Shader stage: vertex or fragment")
	compileCmd.Flags().IntVar(&compileGLSLVersion, "glsl-version", 330, "GLSL #version of the output")
	compileCmd.Flags().StringVar(&compileIndent, "indent", "    ", "Output indentation unit")
	compileCmd.Flags().StringVar(&compileConfig, "config", "", "YAML config file with compile options")
}

// configFile mirrors the compile flags for --config files.
type configFile struct {
	Entry       string `yaml:"entry"`
	Target      string `yaml:"target"`
	GLSLVersion int    `yaml:"glsl-version"`
	Indent      string `yaml:"indent"`
	Output      string `yaml:"output"`
}

func runCompile(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	if compileConfig != "" {
		if err := loadConfig(compileConfig); err != nil {
			return err
		}
	}

	source, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	target := ast.TargetVertex
	switch compileTarget {
	case "vertex":
	case "fragment":
		target = ast.TargetFragment
	default:
		return fmt.Errorf("unknown shader target %q (want vertex or fragment)", compileTarget)
	}

	opts := xsc.CompileOptions{
		SourceName:  inputPath,
		EntryPoint:  compileEntry,
		Target:      target,
		GLSLVersion: compileGLSLVersion,
		Indent:      compileIndent,
		Log:         &consoleLog{out: cmd.ErrOrStderr()},
	}

	result, err := xsc.CompileWithOptions(string(source), opts)
	if err != nil {
		return err
	}

	if compileOutput != "" {
		if err := os.WriteFile(compileOutput, []byte(result.GLSL), 0644); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "compiled %s to %s\n", inputPath, compileOutput)
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), result.GLSL)
	return nil
}

func loadConfig(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	var cfg configFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Entry != "" {
		compileEntry = cfg.Entry
	}
	if cfg.Target != "" {
		compileTarget = cfg.Target
	}
	if cfg.GLSLVersion != 0 {
		compileGLSLVersion = cfg.GLSLVersion
	}
	if cfg.Indent != "" {
		compileIndent = cfg.Indent
	}
	if cfg.Output != "" && compileOutput == "" {
		compileOutput = cfg.Output
	}
	return nil
}

// consoleLog renders reports to the command's error stream, colored by
// severity, with the offending line and caret marker beneath when present.
type consoleLog struct {
	out io.Writer
}

func (l *consoleLog) SubmitReport(r *report.Report) {
	switch r.Type() {
	case report.Error:
		color.New(color.FgRed).Fprintln(l.out, r.Message())
	case report.Warning:
		color.New(color.FgYellow).Fprintln(l.out, r.Message())
	default:
		fmt.Fprintln(l.out, r.Message())
	}
	if r.HasLine() {
		fmt.Fprintln(l.out, r.Line())
		color.New(color.FgCyan).Fprintln(l.out, r.Marker())
	}
}
