package ast

import "fmt"

// Intrinsic enumerates the HLSL built-in functions. AsUInt2, Tex1D2,
// Tex2D2, Tex3D2 and TexCube2 denote the overload with a different arity
// of asuint, tex1D, tex2D, tex3D and texCUBE; they are selected by
// argument count, not by name lookup. Other names ending in "2" (ATan2,
// Exp2, Log2) are distinct functions.
type Intrinsic uint16

const (
	IntrinsicUndefined Intrinsic = iota

	IntrinsicAbort
	IntrinsicAbs
	IntrinsicACos
	IntrinsicAll
	IntrinsicAllMemoryBarrier
	IntrinsicAllMemoryBarrierWithGroupSync
	IntrinsicAny
	IntrinsicAsDouble
	IntrinsicAsFloat
	IntrinsicASin
	IntrinsicAsInt
	IntrinsicAsUInt
	IntrinsicAsUInt2
	IntrinsicATan
	IntrinsicATan2
	IntrinsicCeil
	IntrinsicCheckAccessFullyMapped
	IntrinsicClamp
	IntrinsicClip
	IntrinsicCos
	IntrinsicCosH
	IntrinsicCountBits
	IntrinsicCross
	IntrinsicD3DCOLORtoUBYTE4
	IntrinsicDDX
	IntrinsicDDXCoarse
	IntrinsicDDXFine
	IntrinsicDDY
	IntrinsicDDYCoarse
	IntrinsicDDYFine
	IntrinsicDegrees
	IntrinsicDeterminant
	IntrinsicDeviceMemoryBarrier
	IntrinsicDeviceMemoryBarrierWithGroupSync
	IntrinsicDistance
	IntrinsicDot
	IntrinsicDst
	IntrinsicErrorF
	IntrinsicEvaluateAttributeAtCentroid
	IntrinsicEvaluateAttributeAtSample
	IntrinsicEvaluateAttributeSnapped
	IntrinsicExp
	IntrinsicExp2
	IntrinsicF16toF32
	IntrinsicF32toF16
	IntrinsicFaceForward
	IntrinsicFirstBitHigh
	IntrinsicFirstBitLow
	IntrinsicFloor
	IntrinsicFMA
	IntrinsicFMod
	IntrinsicFrac
	IntrinsicFrExp
	IntrinsicFWidth
	IntrinsicGetRenderTargetSampleCount
	IntrinsicGetRenderTargetSamplePosition
	IntrinsicGroupMemoryBarrier
	IntrinsicGroupMemoryBarrierWithGroupSync
	IntrinsicInterlockedAdd
	IntrinsicInterlockedAnd
	IntrinsicInterlockedCompareExchange
	IntrinsicInterlockedCompareStore
	IntrinsicInterlockedExchange
	IntrinsicInterlockedMax
	IntrinsicInterlockedMin
	IntrinsicInterlockedOr
	IntrinsicInterlockedXor
	IntrinsicIsFinite
	IntrinsicIsInf
	IntrinsicIsNaN
	IntrinsicLdExp
	IntrinsicLength
	IntrinsicLerp
	IntrinsicLit
	IntrinsicLog
	IntrinsicLog10
	IntrinsicLog2
	IntrinsicMAD
	IntrinsicMax
	IntrinsicMin
	IntrinsicModF
	IntrinsicMSAD4
	IntrinsicMul
	IntrinsicNoise
	IntrinsicNormalize
	IntrinsicPow
	IntrinsicPrintF
	IntrinsicProcess2DQuadTessFactorsAvg
	IntrinsicProcess2DQuadTessFactorsMax
	IntrinsicProcess2DQuadTessFactorsMin
	IntrinsicProcessIsolineTessFactors
	IntrinsicProcessQuadTessFactorsAvg
	IntrinsicProcessQuadTessFactorsMax
	IntrinsicProcessQuadTessFactorsMin
	IntrinsicProcessTriTessFactorsAvg
	IntrinsicProcessTriTessFactorsMax
	IntrinsicProcessTriTessFactorsMin
	IntrinsicRadians
	IntrinsicRcp
	IntrinsicReflect
	IntrinsicRefract
	IntrinsicReverseBits
	IntrinsicRound
	IntrinsicRSqrt
	IntrinsicSaturate
	IntrinsicSign
	IntrinsicSin
	IntrinsicSinCos
	IntrinsicSinH
	IntrinsicSmoothStep
	IntrinsicSqrt
	IntrinsicStep
	IntrinsicTan
	IntrinsicTanH
	IntrinsicTex1D
	IntrinsicTex1D2
	IntrinsicTex1DBias
	IntrinsicTex1DGrad
	IntrinsicTex1DLod
	IntrinsicTex1DProj
	IntrinsicTex2D
	IntrinsicTex2D2
	IntrinsicTex2DBias
	IntrinsicTex2DGrad
	IntrinsicTex2DLod
	IntrinsicTex2DProj
	IntrinsicTex3D
	IntrinsicTex3D2
	IntrinsicTex3DBias
	IntrinsicTex3DGrad
	IntrinsicTex3DLod
	IntrinsicTex3DProj
	IntrinsicTexCube
	IntrinsicTexCube2
	IntrinsicTexCubeBias
	IntrinsicTexCubeGrad
	IntrinsicTexCubeLod
	IntrinsicTexCubeProj
	IntrinsicTranspose
	IntrinsicTrunc
)

// intrinsicIdents maps HLSL source spellings to intrinsics. The higher
// arity "2" overloads are not listed; ResolveIntrinsic selects them.
var intrinsicIdents = map[string]Intrinsic{
	"abort":                            IntrinsicAbort,
	"abs":                              IntrinsicAbs,
	"acos":                             IntrinsicACos,
	"all":                              IntrinsicAll,
	"AllMemoryBarrier":                 IntrinsicAllMemoryBarrier,
	"AllMemoryBarrierWithGroupSync":    IntrinsicAllMemoryBarrierWithGroupSync,
	"any":                              IntrinsicAny,
	"asdouble":                         IntrinsicAsDouble,
	"asfloat":                          IntrinsicAsFloat,
	"asin":                             IntrinsicASin,
	"asint":                            IntrinsicAsInt,
	"asuint":                           IntrinsicAsUInt,
	"atan":                             IntrinsicATan,
	"atan2":                            IntrinsicATan2,
	"ceil":                             IntrinsicCeil,
	"CheckAccessFullyMapped":           IntrinsicCheckAccessFullyMapped,
	"clamp":                            IntrinsicClamp,
	"clip":                             IntrinsicClip,
	"cos":                              IntrinsicCos,
	"cosh":                             IntrinsicCosH,
	"countbits":                        IntrinsicCountBits,
	"cross":                            IntrinsicCross,
	"D3DCOLORtoUBYTE4":                 IntrinsicD3DCOLORtoUBYTE4,
	"ddx":                              IntrinsicDDX,
	"ddx_coarse":                       IntrinsicDDXCoarse,
	"ddx_fine":                         IntrinsicDDXFine,
	"ddy":                              IntrinsicDDY,
	"ddy_coarse":                       IntrinsicDDYCoarse,
	"ddy_fine":                         IntrinsicDDYFine,
	"degrees":                          IntrinsicDegrees,
	"determinant":                      IntrinsicDeterminant,
	"DeviceMemoryBarrier":              IntrinsicDeviceMemoryBarrier,
	"DeviceMemoryBarrierWithGroupSync": IntrinsicDeviceMemoryBarrierWithGroupSync,
	"distance":                         IntrinsicDistance,
	"dot":                              IntrinsicDot,
	"dst":                              IntrinsicDst,
	"errorf":                           IntrinsicErrorF,
	"EvaluateAttributeAtCentroid":      IntrinsicEvaluateAttributeAtCentroid,
	"EvaluateAttributeAtSample":        IntrinsicEvaluateAttributeAtSample,
	"EvaluateAttributeSnapped":         IntrinsicEvaluateAttributeSnapped,
	"exp":                              IntrinsicExp,
	"exp2":                             IntrinsicExp2,
	"f16tof32":                         IntrinsicF16toF32,
	"f32tof16":                         IntrinsicF32toF16,
	"faceforward":                      IntrinsicFaceForward,
	"firstbithigh":                     IntrinsicFirstBitHigh,
	"firstbitlow":                      IntrinsicFirstBitLow,
	"floor":                            IntrinsicFloor,
	"fma":                              IntrinsicFMA,
	"fmod":                             IntrinsicFMod,
	"frac":                             IntrinsicFrac,
	"frexp":                            IntrinsicFrExp,
	"fwidth":                           IntrinsicFWidth,
	"GetRenderTargetSampleCount":       IntrinsicGetRenderTargetSampleCount,
	"GetRenderTargetSamplePosition":    IntrinsicGetRenderTargetSamplePosition,
	"GroupMemoryBarrier":               IntrinsicGroupMemoryBarrier,
	"GroupMemoryBarrierWithGroupSync":  IntrinsicGroupMemoryBarrierWithGroupSync,
	"InterlockedAdd":                   IntrinsicInterlockedAdd,
	"InterlockedAnd":                   IntrinsicInterlockedAnd,
	"InterlockedCompareExchange":       IntrinsicInterlockedCompareExchange,
	"InterlockedCompareStore":          IntrinsicInterlockedCompareStore,
	"InterlockedExchange":              IntrinsicInterlockedExchange,
	"InterlockedMax":                   IntrinsicInterlockedMax,
	"InterlockedMin":                   IntrinsicInterlockedMin,
	"InterlockedOr":                    IntrinsicInterlockedOr,
	"InterlockedXor":                   IntrinsicInterlockedXor,
	"isfinite":                         IntrinsicIsFinite,
	"isinf":                            IntrinsicIsInf,
	"isnan":                            IntrinsicIsNaN,
	"ldexp":                            IntrinsicLdExp,
	"length":                           IntrinsicLength,
	"lerp":                             IntrinsicLerp,
	"lit":                              IntrinsicLit,
	"log":                              IntrinsicLog,
	"log10":                            IntrinsicLog10,
	"log2":                             IntrinsicLog2,
	"mad":                              IntrinsicMAD,
	"max":                              IntrinsicMax,
	"min":                              IntrinsicMin,
	"modf":                             IntrinsicModF,
	"msad4":                            IntrinsicMSAD4,
	"mul":                              IntrinsicMul,
	"noise":                            IntrinsicNoise,
	"normalize":                        IntrinsicNormalize,
	"pow":                              IntrinsicPow,
	"printf":                           IntrinsicPrintF,
	"Process2DQuadTessFactorsAvg":      IntrinsicProcess2DQuadTessFactorsAvg,
	"Process2DQuadTessFactorsMax":      IntrinsicProcess2DQuadTessFactorsMax,
	"Process2DQuadTessFactorsMin":      IntrinsicProcess2DQuadTessFactorsMin,
	"ProcessIsolineTessFactors":        IntrinsicProcessIsolineTessFactors,
	"ProcessQuadTessFactorsAvg":        IntrinsicProcessQuadTessFactorsAvg,
	"ProcessQuadTessFactorsMax":        IntrinsicProcessQuadTessFactorsMax,
	"ProcessQuadTessFactorsMin":        IntrinsicProcessQuadTessFactorsMin,
	"ProcessTriTessFactorsAvg":         IntrinsicProcessTriTessFactorsAvg,
	"ProcessTriTessFactorsMax":         IntrinsicProcessTriTessFactorsMax,
	"ProcessTriTessFactorsMin":         IntrinsicProcessTriTessFactorsMin,
	"radians":                          IntrinsicRadians,
	"rcp":                              IntrinsicRcp,
	"reflect":                          IntrinsicReflect,
	"refract":                          IntrinsicRefract,
	"reversebits":                      IntrinsicReverseBits,
	"round":                            IntrinsicRound,
	"rsqrt":                            IntrinsicRSqrt,
	"saturate":                         IntrinsicSaturate,
	"sign":                             IntrinsicSign,
	"sin":                              IntrinsicSin,
	"sincos":                           IntrinsicSinCos,
	"sinh":                             IntrinsicSinH,
	"smoothstep":                       IntrinsicSmoothStep,
	"sqrt":                             IntrinsicSqrt,
	"step":                             IntrinsicStep,
	"tan":                              IntrinsicTan,
	"tanh":                             IntrinsicTanH,
	"tex1D":                            IntrinsicTex1D,
	"tex1Dbias":                        IntrinsicTex1DBias,
	"tex1Dgrad":                        IntrinsicTex1DGrad,
	"tex1Dlod":                         IntrinsicTex1DLod,
	"tex1Dproj":                        IntrinsicTex1DProj,
	"tex2D":                            IntrinsicTex2D,
	"tex2Dbias":                        IntrinsicTex2DBias,
	"tex2Dgrad":                        IntrinsicTex2DGrad,
	"tex2Dlod":                         IntrinsicTex2DLod,
	"tex2Dproj":                        IntrinsicTex2DProj,
	"tex3D":                            IntrinsicTex3D,
	"tex3Dbias":                        IntrinsicTex3DBias,
	"tex3Dgrad":                        IntrinsicTex3DGrad,
	"tex3Dlod":                         IntrinsicTex3DLod,
	"tex3Dproj":                        IntrinsicTex3DProj,
	"texCUBE":                          IntrinsicTexCube,
	"texCUBEbias":                      IntrinsicTexCubeBias,
	"texCUBEgrad":                      IntrinsicTexCubeGrad,
	"texCUBElod":                       IntrinsicTexCubeLod,
	"texCUBEproj":                      IntrinsicTexCubeProj,
	"transpose":                        IntrinsicTranspose,
	"trunc":                            IntrinsicTrunc,
}

// intrinsicNames is the inverse of intrinsicIdents, plus the spellings of
// the arity overloads (which share their base name).
var intrinsicNames = func() map[Intrinsic]string {
	m := make(map[Intrinsic]string, len(intrinsicIdents)+8)
	for name, in := range intrinsicIdents {
		m[in] = name
	}
	m[IntrinsicAsUInt2] = "asuint"
	m[IntrinsicTex1D2] = "tex1D"
	m[IntrinsicTex2D2] = "tex2D"
	m[IntrinsicTex3D2] = "tex3D"
	m[IntrinsicTexCube2] = "texCUBE"
	return m
}()

// arity overloads: base intrinsic → (alternate intrinsic, its argument count).
var intrinsicArityOverloads = map[Intrinsic]struct {
	alt     Intrinsic
	numArgs int
}{
	IntrinsicAsUInt:  {IntrinsicAsUInt2, 3},
	IntrinsicTex1D:   {IntrinsicTex1D2, 4},
	IntrinsicTex2D:   {IntrinsicTex2D2, 4},
	IntrinsicTex3D:   {IntrinsicTex3D2, 4},
	IntrinsicTexCube: {IntrinsicTexCube2, 4},
}

// String returns the HLSL spelling of the intrinsic.
func (in Intrinsic) String() string {
	if s, ok := intrinsicNames[in]; ok {
		return s
	}
	return "<undefined>"
}

// ParseIntrinsic returns the intrinsic with the given HLSL spelling.
func ParseIntrinsic(s string) (Intrinsic, error) {
	if in, ok := intrinsicIdents[s]; ok {
		return in, nil
	}
	return IntrinsicUndefined, fmt.Errorf("invalid intrinsic %q", s)
}

// IsIntrinsicIdent reports whether the identifier names an intrinsic.
func IsIntrinsicIdent(s string) bool {
	_, ok := intrinsicIdents[s]
	return ok
}

// ResolveIntrinsic returns the intrinsic for the given spelling and call
// arity, selecting the alternate-signature overload when the argument
// count demands it.
func ResolveIntrinsic(s string, numArgs int) (Intrinsic, error) {
	in, err := ParseIntrinsic(s)
	if err != nil {
		return IntrinsicUndefined, err
	}
	if overload, ok := intrinsicArityOverloads[in]; ok && numArgs == overload.numArgs {
		return overload.alt, nil
	}
	return in, nil
}
