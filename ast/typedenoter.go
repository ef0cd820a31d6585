package ast

import (
	"fmt"
	"strings"
)

// TypeDenoter is the structural type attached to expressions and
// declarations by semantic analysis. Struct and alias denoters reference
// their declarations; they never own them.
type TypeDenoter interface {
	typeDenoter()
	String() string
}

// VoidTypeDenoter denotes the void type.
type VoidTypeDenoter struct{}

func (*VoidTypeDenoter) typeDenoter()   {}
func (*VoidTypeDenoter) String() string { return "void" }

// BaseTypeDenoter denotes a scalar, vector, or matrix type.
type BaseTypeDenoter struct {
	DataType DataType
}

func (*BaseTypeDenoter) typeDenoter() {}

func (t *BaseTypeDenoter) String() string { return t.DataType.String() }

// BufferTypeDenoter denotes a buffer object with an element type.
type BufferTypeDenoter struct {
	Element TypeDenoter // nil for untyped buffers
}

func (*BufferTypeDenoter) typeDenoter() {}

func (t *BufferTypeDenoter) String() string {
	if t.Element != nil {
		return "Buffer<" + t.Element.String() + ">"
	}
	return "Buffer"
}

// SamplerTypeDenoter denotes a sampler state object.
type SamplerTypeDenoter struct {
	Comparison bool
}

func (*SamplerTypeDenoter) typeDenoter() {}

func (t *SamplerTypeDenoter) String() string {
	if t.Comparison {
		return "SamplerComparisonState"
	}
	return "SamplerState"
}

// TextureDim enumerates texture dimensionalities.
type TextureDim uint8

const (
	Texture1D TextureDim = iota
	Texture2D
	Texture3D
	TextureCube
)

func (d TextureDim) String() string {
	switch d {
	case Texture1D:
		return "Texture1D"
	case Texture2D:
		return "Texture2D"
	case Texture3D:
		return "Texture3D"
	case TextureCube:
		return "TextureCube"
	}
	return "<undefined>"
}

// TextureTypeDenoter denotes a texture object.
type TextureTypeDenoter struct {
	Dim TextureDim
}

func (*TextureTypeDenoter) typeDenoter() {}

func (t *TextureTypeDenoter) String() string { return t.Dim.String() }

// StructTypeDenoter references a struct declaration by non-owning pointer.
type StructTypeDenoter struct {
	Ident string
	Ref   *StructDecl
}

func (*StructTypeDenoter) typeDenoter() {}

func (t *StructTypeDenoter) String() string { return "struct " + t.Ident }

// AliasTypeDenoter references an alias declaration; Aliased is the denoter
// the alias resolves to.
type AliasTypeDenoter struct {
	Ident   string
	Aliased TypeDenoter
}

func (*AliasTypeDenoter) typeDenoter() {}

func (t *AliasTypeDenoter) String() string { return t.Ident }

// ArrayTypeDenoter denotes an array with fixed dimension sizes; a zero
// size denotes an unsized dimension.
type ArrayTypeDenoter struct {
	Base TypeDenoter
	Dims []int
}

func (*ArrayTypeDenoter) typeDenoter() {}

func (t *ArrayTypeDenoter) String() string {
	var sb strings.Builder
	sb.WriteString(t.Base.String())
	for _, d := range t.Dims {
		if d > 0 {
			fmt.Fprintf(&sb, "[%d]", d)
		} else {
			sb.WriteString("[]")
		}
	}
	return sb.String()
}

// FunctionTypeDenoter denotes a function signature.
type FunctionTypeDenoter struct {
	Params []TypeDenoter
	Return TypeDenoter
}

func (*FunctionTypeDenoter) typeDenoter() {}

func (t *FunctionTypeDenoter) String() string {
	params := make([]string, len(t.Params))
	for i, p := range t.Params {
		params[i] = p.String()
	}
	ret := "void"
	if t.Return != nil {
		ret = t.Return.String()
	}
	return fmt.Sprintf("%s(%s)", ret, strings.Join(params, ", "))
}

// Aliased unwraps alias denoters until a non-alias denoter is reached.
func Aliased(t TypeDenoter) TypeDenoter {
	for {
		alias, ok := t.(*AliasTypeDenoter)
		if !ok || alias.Aliased == nil {
			return t
		}
		t = alias.Aliased
	}
}

// TypeEqual reports structural equality of two denoters, modulo aliases.
func TypeEqual(a, b TypeDenoter) bool {
	if a == nil || b == nil {
		return a == b
	}
	a = Aliased(a)
	b = Aliased(b)

	switch ta := a.(type) {
	case *VoidTypeDenoter:
		_, ok := b.(*VoidTypeDenoter)
		return ok
	case *BaseTypeDenoter:
		tb, ok := b.(*BaseTypeDenoter)
		return ok && ta.DataType == tb.DataType
	case *BufferTypeDenoter:
		tb, ok := b.(*BufferTypeDenoter)
		return ok && TypeEqual(ta.Element, tb.Element)
	case *SamplerTypeDenoter:
		tb, ok := b.(*SamplerTypeDenoter)
		return ok && ta.Comparison == tb.Comparison
	case *TextureTypeDenoter:
		tb, ok := b.(*TextureTypeDenoter)
		return ok && ta.Dim == tb.Dim
	case *StructTypeDenoter:
		tb, ok := b.(*StructTypeDenoter)
		if !ok {
			return false
		}
		if ta.Ref != nil && tb.Ref != nil {
			return ta.Ref == tb.Ref
		}
		return ta.Ident == tb.Ident
	case *ArrayTypeDenoter:
		tb, ok := b.(*ArrayTypeDenoter)
		if !ok || len(ta.Dims) != len(tb.Dims) {
			return false
		}
		for i := range ta.Dims {
			if ta.Dims[i] != tb.Dims[i] {
				return false
			}
		}
		return TypeEqual(ta.Base, tb.Base)
	case *FunctionTypeDenoter:
		tb, ok := b.(*FunctionTypeDenoter)
		if !ok || len(ta.Params) != len(tb.Params) {
			return false
		}
		for i := range ta.Params {
			if !TypeEqual(ta.Params[i], tb.Params[i]) {
				return false
			}
		}
		return TypeEqual(ta.Return, tb.Return)
	}
	return false
}

// IsCastableTo reports whether a value of type from can be implicitly
// converted to type to. The conversions supported are those HLSL sources
// rely on: scalar to scalar across all arithmetic base types (narrowing
// included), scalar broadcast to vector or matrix, vector to vector of
// the same dimension, and matrix to matrix of the same dimensions.
func IsCastableTo(from, to TypeDenoter) bool {
	if TypeEqual(from, to) {
		return true
	}
	fromBase, ok := Aliased(from).(*BaseTypeDenoter)
	if !ok {
		return false
	}
	toBase, ok := Aliased(to).(*BaseTypeDenoter)
	if !ok {
		return false
	}
	return fromBase.DataType.IsCastableTo(toBase.DataType)
}

// IsCastableTo reports whether the data type t implicitly converts to
// target under the rules above.
func (t DataType) IsCastableTo(target DataType) bool {
	if t == target {
		return true
	}
	if t.BaseType() == TypeUndefined || target.BaseType() == TypeUndefined {
		return false
	}
	switch {
	case t.IsScalar():
		// Scalars convert to any scalar, and broadcast to any vector or
		// matrix. Bool converts to numerics as 0/1.
		return true
	case t.IsVector():
		return target.IsVector() && t.VectorDim() == target.VectorDim()
	case t.IsMatrix():
		tr, tc := t.MatrixDim()
		gr, gc := target.MatrixDim()
		return target.IsMatrix() && tr == gr && tc == gc
	}
	return false
}
