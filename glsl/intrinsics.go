// Copyright 2026 The xsc Authors
// SPDX-License-Identifier: MIT

package glsl

import "github.com/xsclang/xsc/ast"

// intrinsicFuncs maps HLSL intrinsics to the GLSL function of the same
// shape. Intrinsics needing structural rewrites are handled elsewhere:
// mul, saturate, rcp and log10 in the expression writer, clip and sincos
// in the statement writer; other intrinsics absent from this table report
// a generation error.
var intrinsicFuncs = map[ast.Intrinsic]string{
	ast.IntrinsicAbs:          "abs",
	ast.IntrinsicACos:         "acos",
	ast.IntrinsicAll:          "all",
	ast.IntrinsicAny:          "any",
	ast.IntrinsicASin:         "asin",
	ast.IntrinsicAsFloat:      "uintBitsToFloat",
	ast.IntrinsicAsInt:        "floatBitsToInt",
	ast.IntrinsicAsUInt:       "floatBitsToUint",
	ast.IntrinsicATan:         "atan",
	ast.IntrinsicATan2:        "atan",
	ast.IntrinsicCeil:         "ceil",
	ast.IntrinsicClamp:        "clamp",
	ast.IntrinsicCos:          "cos",
	ast.IntrinsicCosH:         "cosh",
	ast.IntrinsicCountBits:    "bitCount",
	ast.IntrinsicCross:        "cross",
	ast.IntrinsicDDX:          "dFdx",
	ast.IntrinsicDDXCoarse:    "dFdxCoarse",
	ast.IntrinsicDDXFine:      "dFdxFine",
	ast.IntrinsicDDY:          "dFdy",
	ast.IntrinsicDDYCoarse:    "dFdyCoarse",
	ast.IntrinsicDDYFine:      "dFdyFine",
	ast.IntrinsicDegrees:      "degrees",
	ast.IntrinsicDeterminant:  "determinant",
	ast.IntrinsicDistance:     "distance",
	ast.IntrinsicDot:          "dot",
	ast.IntrinsicExp:          "exp",
	ast.IntrinsicExp2:         "exp2",
	ast.IntrinsicFaceForward:  "faceforward",
	ast.IntrinsicFirstBitHigh: "findMSB",
	ast.IntrinsicFirstBitLow:  "findLSB",
	ast.IntrinsicFloor:        "floor",
	ast.IntrinsicFMA:          "fma",
	ast.IntrinsicFMod:         "mod",
	ast.IntrinsicFrac:         "fract",
	ast.IntrinsicFrExp:        "frexp",
	ast.IntrinsicFWidth:       "fwidth",
	ast.IntrinsicIsInf:        "isinf",
	ast.IntrinsicIsNaN:        "isnan",
	ast.IntrinsicLdExp:        "ldexp",
	ast.IntrinsicLength:       "length",
	ast.IntrinsicLerp:         "mix",
	ast.IntrinsicLog:          "log",
	ast.IntrinsicLog2:         "log2",
	ast.IntrinsicMAD:          "fma",
	ast.IntrinsicMax:          "max",
	ast.IntrinsicMin:          "min",
	ast.IntrinsicModF:         "modf",
	ast.IntrinsicNormalize:    "normalize",
	ast.IntrinsicPow:          "pow",
	ast.IntrinsicRadians:      "radians",
	ast.IntrinsicReflect:      "reflect",
	ast.IntrinsicRefract:      "refract",
	ast.IntrinsicReverseBits:  "bitfieldReverse",
	ast.IntrinsicRound:        "round",
	ast.IntrinsicRSqrt:        "inversesqrt",
	ast.IntrinsicSign:         "sign",
	ast.IntrinsicSin:          "sin",
	ast.IntrinsicSinH:         "sinh",
	ast.IntrinsicSmoothStep:   "smoothstep",
	ast.IntrinsicSqrt:         "sqrt",
	ast.IntrinsicStep:         "step",
	ast.IntrinsicTan:          "tan",
	ast.IntrinsicTanH:         "tanh",
	ast.IntrinsicTranspose:    "transpose",
	ast.IntrinsicTrunc:        "trunc",

	// Atomic operations (compute shaders).
	ast.IntrinsicInterlockedAdd:             "atomicAdd",
	ast.IntrinsicInterlockedAnd:             "atomicAnd",
	ast.IntrinsicInterlockedCompareExchange: "atomicCompSwap",
	ast.IntrinsicInterlockedExchange:        "atomicExchange",
	ast.IntrinsicInterlockedMax:             "atomicMax",
	ast.IntrinsicInterlockedMin:             "atomicMin",
	ast.IntrinsicInterlockedOr:              "atomicOr",
	ast.IntrinsicInterlockedXor:             "atomicXor",

	// Legacy texture sampling functions map onto the texture() family;
	// the expression writer keeps the sampler reference as the first
	// argument, which GLSL's combined samplers subsume.
	ast.IntrinsicTex1D:       "texture",
	ast.IntrinsicTex2D:       "texture",
	ast.IntrinsicTex3D:       "texture",
	ast.IntrinsicTexCube:     "texture",
	ast.IntrinsicTex1DProj:   "textureProj",
	ast.IntrinsicTex2DProj:   "textureProj",
	ast.IntrinsicTex3DProj:   "textureProj",
	ast.IntrinsicTexCubeProj: "textureProj",
	ast.IntrinsicTex1DLod:    "textureLod",
	ast.IntrinsicTex2DLod:    "textureLod",
	ast.IntrinsicTex3DLod:    "textureLod",
	ast.IntrinsicTexCubeLod:  "textureLod",
	ast.IntrinsicTex1DGrad:   "textureGrad",
	ast.IntrinsicTex2DGrad:   "textureGrad",
	ast.IntrinsicTex3DGrad:   "textureGrad",
	ast.IntrinsicTexCubeGrad: "textureGrad",
	ast.IntrinsicTex1D2:      "textureGrad",
	ast.IntrinsicTex2D2:      "textureGrad",
	ast.IntrinsicTex3D2:      "textureGrad",
	ast.IntrinsicTexCube2:    "textureGrad",

	// Barrier intrinsics (compute shaders).
	ast.IntrinsicGroupMemoryBarrier:              "groupMemoryBarrier",
	ast.IntrinsicGroupMemoryBarrierWithGroupSync: "barrier",
	ast.IntrinsicAllMemoryBarrier:                "memoryBarrier",
	ast.IntrinsicAllMemoryBarrierWithGroupSync:   "barrier",
}
