package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xsclang/xsc/report"
)

const testVertexShader = `
float4 main(float4 pos : POSITION) : SV_Position {
    return pos;
}
`

const testFragmentShader = `
float4 main(float2 uv : TEXCOORD0) : SV_Target {
    return float4(uv, 0.0, 1.0);
}
`

// resetCompileFlags restores the compile command's flag variables, which
// persist between tests as package state.
func resetCompileFlags() {
	compileOutput = ""
	compileEntry = "main"
	compileTarget = "vertex"
	compileGLSLVersion = 330
	compileIndent = "    "
	compileConfig = ""
}

// writeShader writes source to a temp file and returns its path.
func writeShader(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shader.hlsl")
	require.NoError(t, os.WriteFile(path, []byte(source), 0644))
	return path
}

func newTestCommand() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	return cmd, &out, &errOut
}

func TestRunCompile(t *testing.T) {
	resetCompileFlags()
	cmd, out, _ := newTestCommand()

	err := runCompile(cmd, []string{writeShader(t, testVertexShader)})
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "#version 330 core")
	assert.Contains(t, output, "void main() {")
	assert.Contains(t, output, "gl_Position")
}

func TestRunCompile_FragmentTarget(t *testing.T) {
	resetCompileFlags()
	compileTarget = "fragment"
	compileGLSLVersion = 420
	cmd, out, _ := newTestCommand()

	err := runCompile(cmd, []string{writeShader(t, testFragmentShader)})
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "#version 420 core")
	assert.Contains(t, output, "layout(location = 0) out vec4 fragColor;")
}

func TestRunCompile_OutputFile(t *testing.T) {
	resetCompileFlags()
	compileOutput = filepath.Join(t.TempDir(), "shader.vert")
	cmd, out, errOut := newTestCommand()

	err := runCompile(cmd, []string{writeShader(t, testVertexShader)})
	require.NoError(t, err)

	// Nothing on stdout; the GLSL lands in the file.
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "compiled")

	written, err := os.ReadFile(compileOutput)
	require.NoError(t, err)
	assert.Contains(t, string(written), "#version 330 core")
}

func TestRunCompile_UnknownTarget(t *testing.T) {
	resetCompileFlags()
	compileTarget = "geometry"
	cmd, _, _ := newTestCommand()

	err := runCompile(cmd, []string{writeShader(t, testVertexShader)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown shader target")
}

func TestRunCompile_MissingInput(t *testing.T) {
	resetCompileFlags()
	cmd, _, _ := newTestCommand()

	err := runCompile(cmd, []string{filepath.Join(t.TempDir(), "missing.hlsl")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading input")
}

func TestRunCompile_Diagnostics(t *testing.T) {
	resetCompileFlags()
	color.NoColor = true
	cmd, out, errOut := newTestCommand()

	err := runCompile(cmd, []string{writeShader(t, "void main() { float x = missing; }")})
	require.Error(t, err)

	// No output artifact; the diagnostic goes to the error stream.
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "context error: undeclared identifier 'missing'")
}

func TestRunCompile_WithConfig(t *testing.T) {
	resetCompileFlags()
	configPath := filepath.Join(t.TempDir(), "xsc.yaml")
	config := "entry: fsEntry\ntarget: fragment\nglsl-version: 410\nindent: \"\\t\"\n"
	require.NoError(t, os.WriteFile(configPath, []byte(config), 0644))
	compileConfig = configPath

	source := `
float4 fsEntry(float2 uv : TEXCOORD0) : SV_Target {
    return float4(uv, 0.0, 1.0);
}
`
	cmd, out, _ := newTestCommand()
	err := runCompile(cmd, []string{writeShader(t, source)})
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "#version 410 core")
	assert.Contains(t, output, "\treturn")
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		config  string
		wantErr bool
		check   func(t *testing.T)
	}{
		{
			name:   "all fields",
			config: "entry: vs\ntarget: fragment\nglsl-version: 450\nindent: \"  \"\noutput: out.frag\n",
			check: func(t *testing.T) {
				assert.Equal(t, "vs", compileEntry)
				assert.Equal(t, "fragment", compileTarget)
				assert.Equal(t, 450, compileGLSLVersion)
				assert.Equal(t, "  ", compileIndent)
				assert.Equal(t, "out.frag", compileOutput)
			},
		},
		{
			name:   "partial fields keep flag values",
			config: "entry: vs\n",
			check: func(t *testing.T) {
				assert.Equal(t, "vs", compileEntry)
				assert.Equal(t, "vertex", compileTarget)
				assert.Equal(t, 330, compileGLSLVersion)
			},
		},
		{
			name:    "invalid yaml",
			config:  "entry: [unclosed\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetCompileFlags()
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.config), 0644))

			err := loadConfig(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t)
		})
	}

	// An explicit -o flag wins over the config file's output.
	resetCompileFlags()
	compileOutput = "flag.vert"
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: config.vert\n"), 0644))
	require.NoError(t, loadConfig(path))
	assert.Equal(t, "flag.vert", compileOutput)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestConsoleLog(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	log := &consoleLog{out: &buf}

	log.SubmitReport(report.NewWithLine(report.Error, "syntax error: bad", "int x", "    ^"))
	log.SubmitReport(report.New(report.Warning, "context error: lossy"))
	log.SubmitReport(report.New(report.Info, "done"))

	output := buf.String()
	assert.Equal(t, "syntax error: bad\nint x\n    ^\ncontext error: lossy\ndone\n", output)
}
