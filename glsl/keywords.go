// Copyright 2026 The xsc Authors
// SPDX-License-Identifier: MIT

package glsl

// glslKeywords holds GLSL keywords, reserved words, and built-in names
// that translated HLSL identifiers must not collide with.
var glslKeywords = map[string]struct{}{
	// Basic and composite types
	"void": {}, "bool": {}, "int": {}, "uint": {}, "float": {}, "double": {},
	"vec2": {}, "vec3": {}, "vec4": {},
	"ivec2": {}, "ivec3": {}, "ivec4": {},
	"uvec2": {}, "uvec3": {}, "uvec4": {},
	"bvec2": {}, "bvec3": {}, "bvec4": {},
	"dvec2": {}, "dvec3": {}, "dvec4": {},
	"mat2": {}, "mat3": {}, "mat4": {},
	"mat2x2": {}, "mat2x3": {}, "mat2x4": {},
	"mat3x2": {}, "mat3x3": {}, "mat3x4": {},
	"mat4x2": {}, "mat4x3": {}, "mat4x4": {},

	// Sampler types
	"sampler1D": {}, "sampler2D": {}, "sampler3D": {}, "samplerCube": {},
	"sampler1DShadow": {}, "sampler2DShadow": {}, "samplerCubeShadow": {},
	"sampler1DArray": {}, "sampler2DArray": {},

	// Keywords
	"attribute": {}, "const": {}, "uniform": {}, "varying": {},
	"buffer": {}, "shared": {}, "layout": {}, "centroid": {},
	"flat": {}, "smooth": {}, "noperspective": {}, "patch": {}, "sample": {},
	"break": {}, "continue": {}, "do": {}, "for": {}, "while": {},
	"switch": {}, "case": {}, "default": {}, "if": {}, "else": {},
	"in": {}, "out": {}, "inout": {}, "true": {}, "false": {},
	"invariant": {}, "precise": {}, "discard": {}, "return": {}, "struct": {},
	"lowp": {}, "mediump": {}, "highp": {}, "precision": {},

	// Reserved for future use
	"common": {}, "partition": {}, "active": {}, "asm": {}, "class": {},
	"union": {}, "enum": {}, "typedef": {}, "template": {}, "this": {},
	"goto": {}, "inline": {}, "noinline": {}, "public": {}, "static": {},
	"extern": {}, "external": {}, "interface": {}, "long": {}, "short": {},
	"half": {}, "fixed": {}, "unsigned": {}, "superp": {}, "input": {},
	"output": {}, "filter": {}, "sizeof": {}, "cast": {}, "namespace": {},
	"using": {},

	// Built-in variables and commonly colliding built-in functions
	"main": {}, "gl_Position": {}, "gl_FragCoord": {}, "gl_FragDepth": {},
	"gl_VertexID": {}, "gl_InstanceID": {}, "gl_FrontFacing": {},
	"texture": {}, "mix": {}, "fract": {}, "mod": {}, "inversesqrt": {},
	"dFdx": {}, "dFdy": {}, "fwidth": {}, "normalize": {}, "reflect": {},
	"refract": {}, "cross": {}, "dot": {}, "length": {}, "distance": {},
	"clamp": {}, "step": {}, "smoothstep": {}, "transpose": {},
	"determinant": {}, "inverse": {},
}

// isKeyword checks if a name is a GLSL keyword or reserved word.
func isKeyword(name string) bool {
	_, ok := glslKeywords[name]
	return ok
}

// escapeKeyword escapes a name if it conflicts with GLSL keywords or the
// reserved "gl_" prefix.
func escapeKeyword(name string) string {
	if name == "" {
		return "_unnamed"
	}
	if isKeyword(name) {
		return "_" + name
	}
	if len(name) >= 3 && name[:3] == "gl_" {
		return "_" + name
	}
	return name
}
