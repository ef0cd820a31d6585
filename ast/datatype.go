package ast

import "fmt"

// DataType enumerates the HLSL base data types: scalars, vectors, and
// matrices of bool, int, uint, half, float, and double.
type DataType uint8

const (
	TypeUndefined DataType = iota

	TypeString

	// Scalar types
	TypeBool
	TypeInt
	TypeUInt
	TypeHalf
	TypeFloat
	TypeDouble

	// Vector types, grouped by base type
	TypeBool2
	TypeBool3
	TypeBool4
	TypeInt2
	TypeInt3
	TypeInt4
	TypeUInt2
	TypeUInt3
	TypeUInt4
	TypeHalf2
	TypeHalf3
	TypeHalf4
	TypeFloat2
	TypeFloat3
	TypeFloat4
	TypeDouble2
	TypeDouble3
	TypeDouble4

	// Matrix types, grouped by base type, rows outer, columns inner
	TypeBool2x2
	TypeBool2x3
	TypeBool2x4
	TypeBool3x2
	TypeBool3x3
	TypeBool3x4
	TypeBool4x2
	TypeBool4x3
	TypeBool4x4
	TypeInt2x2
	TypeInt2x3
	TypeInt2x4
	TypeInt3x2
	TypeInt3x3
	TypeInt3x4
	TypeInt4x2
	TypeInt4x3
	TypeInt4x4
	TypeUInt2x2
	TypeUInt2x3
	TypeUInt2x4
	TypeUInt3x2
	TypeUInt3x3
	TypeUInt3x4
	TypeUInt4x2
	TypeUInt4x3
	TypeUInt4x4
	TypeHalf2x2
	TypeHalf2x3
	TypeHalf2x4
	TypeHalf3x2
	TypeHalf3x3
	TypeHalf3x4
	TypeHalf4x2
	TypeHalf4x3
	TypeHalf4x4
	TypeFloat2x2
	TypeFloat2x3
	TypeFloat2x4
	TypeFloat3x2
	TypeFloat3x3
	TypeFloat3x4
	TypeFloat4x2
	TypeFloat4x3
	TypeFloat4x4
	TypeDouble2x2
	TypeDouble2x3
	TypeDouble2x4
	TypeDouble3x2
	TypeDouble3x3
	TypeDouble3x4
	TypeDouble4x2
	TypeDouble4x3
	TypeDouble4x4
)

var scalarNames = [...]string{"bool", "int", "uint", "half", "float", "double"}

// IsScalar reports whether t is one of the six scalar types.
func (t DataType) IsScalar() bool {
	return t >= TypeBool && t <= TypeDouble
}

// IsVector reports whether t is a vector type.
func (t DataType) IsVector() bool {
	return t >= TypeBool2 && t <= TypeDouble4
}

// IsMatrix reports whether t is a matrix type.
func (t DataType) IsMatrix() bool {
	return t >= TypeBool2x2 && t <= TypeDouble4x4
}

// IsNumeric reports whether t is a scalar, vector, or matrix whose base
// type is not bool.
func (t DataType) IsNumeric() bool {
	base := t.BaseType()
	return base != TypeUndefined && base != TypeBool
}

// scalarIndex returns the 0..5 index of the base scalar, or -1.
func (t DataType) scalarIndex() int {
	switch {
	case t.IsScalar():
		return int(t - TypeBool)
	case t.IsVector():
		return int(t-TypeBool2) / 3
	case t.IsMatrix():
		return int(t-TypeBool2x2) / 9
	}
	return -1
}

// VectorDim returns the dimension of t interpreted as a vector type:
// 1 for scalars, 2..4 for vectors, and 0 for matrices and non-arithmetic
// types.
func (t DataType) VectorDim() int {
	switch {
	case t.IsScalar():
		return 1
	case t.IsVector():
		return int(t-TypeBool2)%3 + 2
	}
	return 0
}

// MatrixDim returns the (rows, columns) of t interpreted as a matrix type.
// Scalars are (1, 1), vectors (N, 1), matrices (M, N), and anything else
// (0, 0).
func (t DataType) MatrixDim() (rows, cols int) {
	switch {
	case t.IsScalar():
		return 1, 1
	case t.IsVector():
		return t.VectorDim(), 1
	case t.IsMatrix():
		idx := int(t-TypeBool2x2) % 9
		return idx/3 + 2, idx%3 + 2
	}
	return 0, 0
}

// BaseType strips vector or matrix dimensionality and returns the scalar
// element type, or TypeUndefined if t has no scalar base.
func (t DataType) BaseType() DataType {
	if idx := t.scalarIndex(); idx >= 0 {
		return TypeBool + DataType(idx)
	}
	return TypeUndefined
}

// VectorDataType constructs the vector type with the given scalar base and
// dimension. A dimension of 1 yields the scalar itself and 2 to 4 the
// vector; any other dimension, or a non-scalar base, returns TypeUndefined.
func VectorDataType(base DataType, dim int) DataType {
	if !base.IsScalar() {
		return TypeUndefined
	}
	switch dim {
	case 1:
		return base
	case 2, 3, 4:
		return TypeBool2 + DataType(int(base-TypeBool)*3+dim-2)
	}
	return TypeUndefined
}

// MatrixDataType constructs the matrix type with the given scalar base and
// dimensions. (1, 1) yields the scalar, (N, 1) the vector.
func MatrixDataType(base DataType, rows, cols int) DataType {
	if !base.IsScalar() {
		return TypeUndefined
	}
	if cols == 1 {
		return VectorDataType(base, rows)
	}
	if rows < 2 || rows > 4 || cols < 2 || cols > 4 {
		return TypeUndefined
	}
	return TypeBool2x2 + DataType(int(base-TypeBool)*9+(rows-2)*3+(cols-2))
}

// swizzle component families: only one family may appear in a subscript.
var swizzleFamilies = [...]string{"xyzw", "rgba", "stpq"}

// VectorSubscriptDataType returns the type produced by applying the swizzle
// subscript to t. The subscript must use a single component family
// ({x,y,z,w}, {r,g,b,a}, or {s,t,p,q}), be 1 to 4 characters long, and
// only reference components within t's dimension.
func VectorSubscriptDataType(t DataType, subscript string) (DataType, error) {
	if len(subscript) == 0 {
		return TypeUndefined, fmt.Errorf("empty vector subscript")
	}
	if len(subscript) > 4 {
		return TypeUndefined, fmt.Errorf("vector subscript %q exceeds 4 components", subscript)
	}

	base := t.BaseType()
	dim := t.VectorDim()
	if base == TypeUndefined || dim == 0 {
		return TypeUndefined, fmt.Errorf("vector subscript on non-vector type '%s'", t)
	}

	family := -1
	for _, c := range []byte(subscript) {
		comp := -1
		for f, components := range swizzleFamilies {
			for i := 0; i < len(components); i++ {
				if components[i] == c {
					if family < 0 {
						family = f
					} else if family != f {
						return TypeUndefined, fmt.Errorf("vector subscript %q mixes component families", subscript)
					}
					comp = i
				}
			}
		}
		if comp < 0 {
			return TypeUndefined, fmt.Errorf("invalid character '%c' in vector subscript %q", c, subscript)
		}
		if comp >= dim {
			return TypeUndefined, fmt.Errorf("vector subscript %q out of range for type '%s'", subscript, t)
		}
	}

	return VectorDataType(base, len(subscript)), nil
}

// String returns the HLSL spelling of the data type (e.g. "float4",
// "float4x4").
func (t DataType) String() string {
	return DataTypeToString(t, false)
}

// DataTypeToString returns the HLSL name of the data type. With
// useTemplateSyntax, vectors and matrices use the template forms
// "vector<float, 4>" and "matrix<float, 4, 4>".
func DataTypeToString(t DataType, useTemplateSyntax bool) string {
	switch {
	case t == TypeString:
		return "string"
	case t.IsScalar():
		return scalarNames[t.scalarIndex()]
	case t.IsVector():
		base := scalarNames[t.scalarIndex()]
		if useTemplateSyntax {
			return fmt.Sprintf("vector<%s, %d>", base, t.VectorDim())
		}
		return fmt.Sprintf("%s%d", base, t.VectorDim())
	case t.IsMatrix():
		base := scalarNames[t.scalarIndex()]
		rows, cols := t.MatrixDim()
		if useTemplateSyntax {
			return fmt.Sprintf("matrix<%s, %d, %d>", base, rows, cols)
		}
		return fmt.Sprintf("%s%dx%d", base, rows, cols)
	}
	return "<undefined>"
}

// hlslTypeNames maps every HLSL type spelling to its DataType.
var hlslTypeNames = func() map[string]DataType {
	m := make(map[string]DataType, 96)
	for t := TypeBool; t <= TypeDouble4x4; t++ {
		m[t.String()] = t
	}
	// Aliases used by legacy HLSL sources.
	m["dword"] = TypeUInt
	m["vector"] = TypeFloat4
	m["matrix"] = TypeFloat4x4
	return m
}()

// ParseDataType returns the data type for the given HLSL spelling.
func ParseDataType(s string) (DataType, error) {
	if t, ok := hlslTypeNames[s]; ok {
		return t, nil
	}
	return TypeUndefined, fmt.Errorf("invalid data type %q", s)
}

// precision rank ordering for implicit conversions:
// Bool < Int = UInt < Half < Float < Double.
var precisionRanks = [...]int{0, 1, 1, 2, 3, 4}

// PrecisionRank returns the conversion rank of the base type of t, or -1
// if t has no scalar base.
func (t DataType) PrecisionRank() int {
	if idx := t.BaseType().scalarIndex(); idx >= 0 {
		return precisionRanks[idx]
	}
	return -1
}
