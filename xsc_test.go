package xsc

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xsclang/xsc/ast"
	"github.com/xsclang/xsc/report"
)

const vertexSource = `
cbuffer Transform : register(b0) {
    float4x4 wvp;
};

struct VSIn {
    float4 position : POSITION;
    float2 uv : TEXCOORD0;
};

struct VSOut {
    float4 position : SV_Position;
    float2 uv : TEXCOORD0;
};

VSOut main(VSIn stageIn) {
    VSOut stageOut;
    stageOut.position = mul(wvp, stageIn.position);
    stageOut.uv = stageIn.uv;
    return stageOut;
}
`

const fragmentSource = `
Texture2D albedo : register(t0);
SamplerState linearSmp : register(s0);

float4 main(float2 uv : TEXCOORD0) : SV_Target {
    float4 c = albedo.Sample(linearSmp, uv);
    return saturate(c);
}
`

func TestCompile(t *testing.T) {
	out, err := Compile(vertexSource)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "#version 330 core\n"))
	assert.Contains(t, out, "void main() {")
	assert.Contains(t, out, "gl_Position")
}

func TestCompileWithOptions_Fragment(t *testing.T) {
	opts := DefaultOptions()
	opts.Target = ast.TargetFragment
	opts.GLSLVersion = 420

	result, err := CompileWithOptions(fragmentSource, opts)
	require.NoError(t, err)
	assert.False(t, result.HasErrors())

	assert.Contains(t, result.GLSL, "#version 420 core")
	assert.Contains(t, result.GLSL, "layout(location = 0) out vec4 fragColor;")
	assert.Contains(t, result.GLSL, "uniform sampler2D albedo;")
}

func TestCompileWithOptions_EntryPoint(t *testing.T) {
	source := `
float4 vsEntry(float4 pos : POSITION) : SV_Position {
    return pos;
}
`
	opts := DefaultOptions()
	opts.EntryPoint = "vsEntry"

	result, err := CompileWithOptions(source, opts)
	require.NoError(t, err)
	assert.Contains(t, result.GLSL, "void main() {")
	assert.NotContains(t, result.GLSL, "vsEntry(")
}

func TestCompile_SyntaxErrorProducesNoOutput(t *testing.T) {
	result, err := CompileWithOptions("void main() { int x = ; }", DefaultOptions())
	require.Error(t, err)
	assert.Empty(t, result.GLSL)
	assert.True(t, result.HasErrors())

	require.NotEmpty(t, result.Reports)
	first := result.Reports[0]
	assert.Equal(t, report.Error, first.Type())
	assert.True(t, strings.HasPrefix(first.Message(), "syntax error: "))
	assert.True(t, first.HasLine())
}

func TestCompile_ContextErrorProducesNoOutput(t *testing.T) {
	source := `
void main() {
    float x = unknownVar;
}
`
	result, err := CompileWithOptions(source, DefaultOptions())
	require.Error(t, err)
	assert.Empty(t, result.GLSL)

	var found bool
	for _, r := range result.Reports {
		if strings.Contains(r.Message(), "undeclared identifier 'unknownVar'") {
			found = true
			assert.True(t, strings.HasPrefix(r.Message(), "context error: "))
		}
	}
	assert.True(t, found)
}

func TestCompile_CustomLog(t *testing.T) {
	var sb strings.Builder
	opts := DefaultOptions()
	opts.Log = &report.StdLog{Out: &sb}

	_, err := CompileWithOptions("void main() { float x = missing; }", opts)
	require.Error(t, err)
	assert.Contains(t, sb.String(), "undeclared identifier 'missing'")
}

func TestCompile_WarningsDoNotSuppressOutput(t *testing.T) {
	source := `
float4 main(float4 pos : POSITION) : SV_Position {
    int i = pos.x;
    return pos;
}
`
	result, err := CompileWithOptions(source, DefaultOptions())
	require.NoError(t, err)
	assert.NotEmpty(t, result.GLSL)
	assert.False(t, result.HasErrors())

	var warned bool
	for _, r := range result.Reports {
		if r.Type() == report.Warning {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestParseAndAnalyze(t *testing.T) {
	prog, err := Parse(vertexSource, "shader.hlsl")
	require.NoError(t, err)
	require.NotEmpty(t, prog.Decls)
	assert.Equal(t, "shader.hlsl", prog.Source.Name())

	require.NoError(t, Analyze(prog, nil))
}

func TestStagedPipeline(t *testing.T) {
	// Parse, Analyze, and Generate compose into the same result the
	// one-shot facade produces.
	prog, err := Parse(vertexSource, "shader.hlsl")
	require.NoError(t, err)
	require.NoError(t, Analyze(prog, nil))

	var buf bytes.Buffer
	require.NoError(t, Generate(prog, &buf, DefaultOptions(), nil))

	staged := buf.String()
	assert.Contains(t, staged, "#version 330 core")
	assert.Contains(t, staged, "gl_Position")

	oneShot, err := Compile(vertexSource)
	require.NoError(t, err)
	assert.Equal(t, oneShot, staged)
}

func TestGenerate_ReportsErrors(t *testing.T) {
	prog, err := Parse(fragmentSourceWithTarget(), "shader.hlsl")
	require.NoError(t, err)
	require.NoError(t, Analyze(prog, nil))

	opts := DefaultOptions()
	opts.EntryPoint = "missingEntry"

	log := &report.CollectLog{}
	var buf bytes.Buffer
	err = Generate(prog, &buf, opts, log)
	require.Error(t, err)
	require.NotEmpty(t, log.Reports)
	assert.Contains(t, log.Reports[0].Message(), "entry point 'missingEntry' not found")
}

func TestAnalyze_ReportsErrors(t *testing.T) {
	prog, err := Parse("void main() { float x = missing; }", "bad.hlsl")
	require.NoError(t, err)

	log := &report.CollectLog{}
	err = Analyze(prog, log)
	require.Error(t, err)
	assert.NotEmpty(t, log.Reports)
}

func TestCompile_Indent(t *testing.T) {
	opts := DefaultOptions()
	opts.Indent = "\t"

	result, err := CompileWithOptions(fragmentSourceWithTarget(), opts)
	require.NoError(t, err)
	assert.Contains(t, result.GLSL, "\treturn")
}

func fragmentSourceWithTarget() string {
	return `
float4 main(float4 pos : POSITION) : SV_Position {
    return pos;
}
`
}
