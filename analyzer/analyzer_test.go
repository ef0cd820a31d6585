package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xsclang/xsc/ast"
	"github.com/xsclang/xsc/hlsl"
	"github.com/xsclang/xsc/report"
)

// analyze parses and analyzes source, returning the program and every
// submitted report.
func analyze(t *testing.T, source string) (*ast.Program, []*report.Report) {
	t.Helper()
	src := report.NewSourceCode("test.hlsl", source)
	parseHandler := report.NewHandler("syntax error", nil)
	tokens, err := hlsl.NewLexer(src, parseHandler).Tokenize()
	require.NoError(t, err)
	prog, err := hlsl.NewParser(src, parseHandler, tokens).Parse()
	require.NoError(t, err)
	require.False(t, parseHandler.HasErrors())

	log := &report.CollectLog{}
	handler := report.NewHandler("context error", log)
	New(handler).Analyze(prog)
	return prog, log.Reports
}

func errorMessages(reports []*report.Report) []string {
	var msgs []string
	for _, r := range reports {
		if r.Type() == report.Error {
			msgs = append(msgs, r.Message())
		}
	}
	return msgs
}

func assertNoErrors(t *testing.T, reports []*report.Report) {
	t.Helper()
	assert.Empty(t, errorMessages(reports))
}

func assertHasError(t *testing.T, reports []*report.Report, substr string) {
	t.Helper()
	for _, msg := range errorMessages(reports) {
		if strings.Contains(msg, substr) {
			return
		}
	}
	t.Errorf("no error containing %q; got %v", substr, errorMessages(reports))
}

func TestAnalyzer_ValidShader(t *testing.T) {
	_, reports := analyze(t, `
cbuffer Transform : register(b0) {
    float4x4 worldViewProj;
};

struct VertexIn {
    float4 position : POSITION;
    float2 uv : TEXCOORD0;
};

struct VertexOut {
    float4 position : SV_Position;
    float2 uv : TEXCOORD0;
};

VertexOut main(VertexIn input) {
    VertexOut output;
    output.position = mul(worldViewProj, input.position);
    output.uv = input.uv;
    return output;
}
`)
	assertNoErrors(t, reports)
}

func TestAnalyzer_TypeDenoters(t *testing.T) {
	prog, reports := analyze(t, `
float4 main() : SV_Target {
    float3 v = float3(1.0, 2.0, 3.0);
    float s = dot(v, v);
    float2 uv = v.xy;
    return float4(v * s, uv.x);
}
`)
	assertNoErrors(t, reports)

	fn := prog.Decls[0].(*ast.FunctionDecl)

	v := fn.Body.Stmts[0].(*ast.VarDecl)
	construct := v.Init.(*ast.CallExpr)
	assert.Equal(t, "float3", construct.TypeDen().String())

	s := fn.Body.Stmts[1].(*ast.VarDecl)
	dotCall := s.Init.(*ast.CallExpr)
	assert.Equal(t, ast.IntrinsicDot, dotCall.Intrinsic)
	assert.Equal(t, "float", dotCall.TypeDen().String())

	uv := fn.Body.Stmts[2].(*ast.VarDecl)
	swizzle := uv.Init.(*ast.MemberExpr)
	assert.True(t, swizzle.IsSwizzle)
	assert.Equal(t, "float2", swizzle.TypeDen().String())
}

func TestAnalyzer_UndeclaredIdentifier(t *testing.T) {
	_, reports := analyze(t, `
void main() {
    float x = unknownVar;
}
`)
	assertHasError(t, reports, "undeclared identifier 'unknownVar'")
}

func TestAnalyzer_RedeclarationInScope(t *testing.T) {
	_, reports := analyze(t, `
void main() {
    float x = 1.0;
    float x = 2.0;
}
`)
	assertHasError(t, reports, "already declared in this scope")
}

func TestAnalyzer_ShadowingAllowed(t *testing.T) {
	_, reports := analyze(t, `
void main() {
    float x = 1.0;
    {
        float x = 2.0;
    }
    for (int i = 0; i < 2; i++) {
        float x = 3.0;
    }
}
`)
	assertNoErrors(t, reports)
}

func TestAnalyzer_FunctionOverloads(t *testing.T) {
	prog, reports := analyze(t, `
float pick(int a) { return 1.0; }
float pick(float a) { return 2.0; }

void main() {
    float a = pick(1);
    float b = pick(1.5);
}
`)
	assertNoErrors(t, reports)

	fn := prog.Decls[2].(*ast.FunctionDecl)
	first := fn.Body.Stmts[0].(*ast.VarDecl).Init.(*ast.CallExpr)
	second := fn.Body.Stmts[1].(*ast.VarDecl).Init.(*ast.CallExpr)

	// Exact matches select the respective overloads.
	intParam := first.Decl.Params[0].Type.(*ast.BaseTypeDenoter)
	assert.Equal(t, ast.TypeInt, intParam.DataType)
	floatParam := second.Decl.Params[0].Type.(*ast.BaseTypeDenoter)
	assert.Equal(t, ast.TypeFloat, floatParam.DataType)
}

func TestAnalyzer_AmbiguousCall(t *testing.T) {
	_, reports := analyze(t, `
float f(int a, float b) { return 0.0; }
float f(float a, int b) { return 1.0; }

void main() {
    float x = f(1, 2);
}
`)
	assertHasError(t, reports, "ambiguous call")
}

func TestAnalyzer_DuplicateSignature(t *testing.T) {
	_, reports := analyze(t, `
float f(int a) { return 0.0; }
float f(int b) { return 1.0; }

void main() {}
`)
	assertHasError(t, reports, "already declared")
}

func TestAnalyzer_ConversionErrors(t *testing.T) {
	_, reports := analyze(t, `
struct S { float x; };

void main() {
    S s;
    float4 v = float4(0.0, 0.0, 0.0, 1.0);
    float3 w = v.xyz;
    s = w;
}
`)
	assertHasError(t, reports, "cannot implicitly convert")
}

func TestAnalyzer_SwizzleErrors(t *testing.T) {
	_, reports := analyze(t, `
void main() {
    float2 v = float2(1.0, 2.0);
    float bad = v.z;
}
`)
	assertHasError(t, reports, "out of range")

	_, reports = analyze(t, `
void main() {
    float4 v = float4(1.0, 2.0, 3.0, 4.0);
    float2 bad = v.xr;
}
`)
	assertHasError(t, reports, "mixes component families")
}

func TestAnalyzer_ReturnChecks(t *testing.T) {
	_, reports := analyze(t, `
float main() {
    return;
}
`)
	assertHasError(t, reports, "must return a value")

	_, reports = analyze(t, `
void main() {
    return 1.0;
}
`)
	assertHasError(t, reports, "cannot return a value")
}

func TestAnalyzer_NarrowingWarns(t *testing.T) {
	_, reports := analyze(t, `
void main() {
    float f = 1.5;
    int i = f;
}
`)
	assertNoErrors(t, reports)

	var warned bool
	for _, r := range reports {
		if r.Type() == report.Warning && strings.Contains(r.Message(), "may lose precision") {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestAnalyzer_ConditionCheck(t *testing.T) {
	_, reports := analyze(t, `
struct S { float x; };

void main() {
    S s;
    if (s) {
        return;
    }
}
`)
	assertHasError(t, reports, "not convertible to bool")
}

func TestAnalyzer_IntrinsicArity(t *testing.T) {
	prog, reports := analyze(t, `
void main() {
    float4 d = float4(1.0, 2.0, 3.0, 4.0);
    uint u = asuint(d.x);
}
`)
	assertNoErrors(t, reports)

	fn := prog.Decls[0].(*ast.FunctionDecl)
	call := fn.Body.Stmts[1].(*ast.VarDecl).Init.(*ast.CallExpr)
	assert.Equal(t, ast.IntrinsicAsUInt, call.Intrinsic)
}

func TestAnalyzer_TextureMethods(t *testing.T) {
	prog, reports := analyze(t, `
Texture2D tex : register(t0);
SamplerState smp : register(s0);

float4 main(float2 uv : TEXCOORD0) : SV_Target {
    return tex.Sample(smp, uv);
}
`)
	assertNoErrors(t, reports)

	fn := prog.Decls[2].(*ast.FunctionDecl)
	ret := fn.Body.Stmts[0].(*ast.ReturnStmt)
	method := ret.Value.(*ast.MethodCallExpr)
	assert.Equal(t, "float4", method.TypeDen().String())
}

func TestAnalyzer_MulShapes(t *testing.T) {
	prog, reports := analyze(t, `
cbuffer T { float4x4 m; };

float4 main(float4 pos : POSITION) : SV_Position {
    return mul(m, pos);
}
`)
	assertNoErrors(t, reports)

	fn := prog.Decls[1].(*ast.FunctionDecl)
	ret := fn.Body.Stmts[0].(*ast.ReturnStmt)
	assert.Equal(t, "float4", ret.Value.TypeDen().String())
}

func TestAnalyzer_BinaryPromotion(t *testing.T) {
	prog, reports := analyze(t, `
void main() {
    int i = 2;
    float f = 1.5;
    float r = i * f;
    float3 v = float3(1.0, 2.0, 3.0) * 2.0;
    bool c = i < f;
}
`)
	assertNoErrors(t, reports)

	fn := prog.Decls[0].(*ast.FunctionDecl)
	r := fn.Body.Stmts[2].(*ast.VarDecl).Init.(*ast.BinaryExpr)
	assert.Equal(t, "float", r.TypeDen().String())

	v := fn.Body.Stmts[3].(*ast.VarDecl).Init.(*ast.BinaryExpr)
	assert.Equal(t, "float3", v.TypeDen().String())

	c := fn.Body.Stmts[4].(*ast.VarDecl).Init.(*ast.BinaryExpr)
	assert.Equal(t, "bool", c.TypeDen().String())
}
