// Copyright 2026 The xsc Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"

	"github.com/xsclang/xsc/ast"
)

// typeName returns the GLSL spelling of an HLSL data type. GLSL has no
// half type and no non-float matrices; half maps to float, and integer or
// bool matrices report an error through the generator.
func typeName(dt ast.DataType) (string, error) {
	base := dt.BaseType()

	switch {
	case dt.IsScalar():
		switch dt {
		case ast.TypeBool:
			return "bool", nil
		case ast.TypeInt:
			return "int", nil
		case ast.TypeUInt:
			return "uint", nil
		case ast.TypeHalf, ast.TypeFloat:
			return "float", nil
		case ast.TypeDouble:
			return "double", nil
		}

	case dt.IsVector():
		dim := dt.VectorDim()
		switch base {
		case ast.TypeBool:
			return fmt.Sprintf("bvec%d", dim), nil
		case ast.TypeInt:
			return fmt.Sprintf("ivec%d", dim), nil
		case ast.TypeUInt:
			return fmt.Sprintf("uvec%d", dim), nil
		case ast.TypeHalf, ast.TypeFloat:
			return fmt.Sprintf("vec%d", dim), nil
		case ast.TypeDouble:
			return fmt.Sprintf("dvec%d", dim), nil
		}

	case dt.IsMatrix():
		rows, cols := dt.MatrixDim()
		var prefix string
		switch base {
		case ast.TypeHalf, ast.TypeFloat:
			prefix = "mat"
		case ast.TypeDouble:
			prefix = "dmat"
		default:
			return "", fmt.Errorf("GLSL has no matrix type with base '%s'", base)
		}
		if rows == cols {
			return fmt.Sprintf("%s%d", prefix, rows), nil
		}
		// GLSL matCxR has C columns and R rows.
		return fmt.Sprintf("%s%dx%d", prefix, cols, rows), nil
	}

	return "", fmt.Errorf("data type '%s' has no GLSL equivalent", dt)
}

// samplerTypeName returns the combined GLSL sampler type for a texture
// dimensionality.
func samplerTypeName(dim ast.TextureDim) string {
	switch dim {
	case ast.Texture1D:
		return "sampler1D"
	case ast.Texture2D:
		return "sampler2D"
	case ast.Texture3D:
		return "sampler3D"
	case ast.TextureCube:
		return "samplerCube"
	}
	return "sampler2D"
}

// denoterName returns the GLSL spelling of a type denoter, without array
// suffixes (those attach to the declarator).
func (g *Generator) denoterName(t ast.TypeDenoter) (string, error) {
	switch td := ast.Aliased(t).(type) {
	case *ast.VoidTypeDenoter:
		return "void", nil
	case *ast.BaseTypeDenoter:
		return typeName(td.DataType)
	case *ast.StructTypeDenoter:
		return escapeKeyword(td.Ident), nil
	case *ast.TextureTypeDenoter:
		return samplerTypeName(td.Dim), nil
	case *ast.SamplerTypeDenoter:
		return "sampler2D", nil
	case *ast.ArrayTypeDenoter:
		return g.denoterName(td.Base)
	}
	return "", fmt.Errorf("type '%s' has no GLSL equivalent", t)
}

// arraySuffix returns the declarator suffix for array denoters, e.g.
// "[4]" or "[4][2]"; empty for non-arrays.
func arraySuffix(t ast.TypeDenoter) string {
	arr, ok := ast.Aliased(t).(*ast.ArrayTypeDenoter)
	if !ok {
		return ""
	}
	suffix := ""
	for _, d := range arr.Dims {
		if d > 0 {
			suffix += fmt.Sprintf("[%d]", d)
		} else {
			suffix += "[]"
		}
	}
	return suffix + arraySuffix(arr.Base)
}
