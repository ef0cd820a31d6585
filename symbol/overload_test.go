package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xsclang/xsc/ast"
)

func base(dt ast.DataType) *ast.BaseTypeDenoter {
	return &ast.BaseTypeDenoter{DataType: dt}
}

func fnDecl(ident string, params ...ast.DataType) *ast.FunctionDecl {
	decl := &ast.FunctionDecl{
		Ident:      ident,
		ReturnType: base(ast.TypeFloat),
	}
	for _, p := range params {
		decl.Params = append(decl.Params, &ast.VarDecl{Type: base(p)})
	}
	return decl
}

func TestOverload_AddSymbolRef(t *testing.T) {
	t.Run("single variable", func(t *testing.T) {
		o := NewOverload("x")
		assert.True(t, o.AddSymbolRef(&ast.VarDecl{Ident: "x"}))
		assert.False(t, o.AddSymbolRef(&ast.VarDecl{Ident: "x"}))
		assert.False(t, o.AddSymbolRef(fnDecl("x")))
	})

	t.Run("single type", func(t *testing.T) {
		o := NewOverload("S")
		assert.True(t, o.AddSymbolRef(&ast.StructDecl{Ident: "S"}))
		assert.False(t, o.AddSymbolRef(&ast.AliasDecl{Ident: "S"}))
		assert.False(t, o.AddSymbolRef(fnDecl("S")))
	})

	t.Run("function set", func(t *testing.T) {
		o := NewOverload("f")
		assert.True(t, o.AddSymbolRef(fnDecl("f", ast.TypeInt)))
		assert.True(t, o.AddSymbolRef(fnDecl("f", ast.TypeFloat)))
		assert.True(t, o.AddSymbolRef(fnDecl("f", ast.TypeInt, ast.TypeInt)))

		// Same signature again is a conflict.
		assert.False(t, o.AddSymbolRef(fnDecl("f", ast.TypeInt)))
		// A variable cannot join a function set.
		assert.False(t, o.AddSymbolRef(&ast.VarDecl{Ident: "f"}))
	})
}

func TestOverload_Fetch(t *testing.T) {
	o := NewOverload("x")
	varDecl := &ast.VarDecl{Ident: "x", Type: base(ast.TypeFloat)}
	require.True(t, o.AddSymbolRef(varDecl))

	got, err := o.Fetch()
	require.NoError(t, err)
	assert.Same(t, ast.Decl(varDecl), got)

	gotVar, err := o.FetchVar()
	require.NoError(t, err)
	assert.Same(t, ast.Decl(varDecl), gotVar)

	_, err = o.FetchType()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not name a type")
}

func TestOverload_FetchAmbiguous(t *testing.T) {
	o := NewOverload("f")
	require.True(t, o.AddSymbolRef(fnDecl("f", ast.TypeInt)))
	require.True(t, o.AddSymbolRef(fnDecl("f", ast.TypeFloat)))

	_, err := o.Fetch()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous reference")
}

func TestOverload_FetchTypeAndVarKinds(t *testing.T) {
	texture := NewOverload("tex")
	require.True(t, texture.AddSymbolRef(&ast.TextureDecl{Ident: "tex", Dim: ast.Texture2D}))
	_, err := texture.FetchVar()
	assert.NoError(t, err)

	structs := NewOverload("Vertex")
	require.True(t, structs.AddSymbolRef(&ast.StructDecl{Ident: "Vertex"}))
	_, err = structs.FetchType()
	assert.NoError(t, err)
	_, err = structs.FetchVar()
	assert.Error(t, err)
}

func TestOverload_FunctionResolution(t *testing.T) {
	t.Run("exact beats convertible", func(t *testing.T) {
		o := NewOverload("f")
		fInt := fnDecl("f", ast.TypeInt)
		fFloat := fnDecl("f", ast.TypeFloat)
		require.True(t, o.AddSymbolRef(fInt))
		require.True(t, o.AddSymbolRef(fFloat))

		got, err := o.FetchFunctionDecl([]ast.TypeDenoter{base(ast.TypeInt)})
		require.NoError(t, err)
		assert.Same(t, fInt, got)
	})

	t.Run("convertible sole candidate", func(t *testing.T) {
		o := NewOverload("f")
		fFloat := fnDecl("f", ast.TypeFloat)
		require.True(t, o.AddSymbolRef(fFloat))

		got, err := o.FetchFunctionDecl([]ast.TypeDenoter{base(ast.TypeInt)})
		require.NoError(t, err)
		assert.Same(t, fFloat, got)
	})

	t.Run("ambiguous convertible tie", func(t *testing.T) {
		o := NewOverload("f")
		require.True(t, o.AddSymbolRef(fnDecl("f", ast.TypeInt, ast.TypeFloat)))
		require.True(t, o.AddSymbolRef(fnDecl("f", ast.TypeFloat, ast.TypeInt)))

		_, err := o.FetchFunctionDecl([]ast.TypeDenoter{base(ast.TypeInt), base(ast.TypeInt)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ambiguous call")
	})

	t.Run("signed unsigned mix converts", func(t *testing.T) {
		o := NewOverload("f")
		fUInt := fnDecl("f", ast.TypeUInt)
		require.True(t, o.AddSymbolRef(fUInt))

		got, err := o.FetchFunctionDecl([]ast.TypeDenoter{base(ast.TypeInt)})
		require.NoError(t, err)
		assert.Same(t, fUInt, got)
	})

	t.Run("arity mismatch", func(t *testing.T) {
		o := NewOverload("f")
		require.True(t, o.AddSymbolRef(fnDecl("f", ast.TypeInt)))

		_, err := o.FetchFunctionDecl([]ast.TypeDenoter{base(ast.TypeInt), base(ast.TypeInt)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "takes 2 argument(s)")
	})

	t.Run("no viable conversion", func(t *testing.T) {
		o := NewOverload("f")
		require.True(t, o.AddSymbolRef(fnDecl("f", ast.TypeFloat4)))

		_, err := o.FetchFunctionDecl([]ast.TypeDenoter{&ast.StructTypeDenoter{Ident: "S"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no matching overload")
	})

	t.Run("not a function", func(t *testing.T) {
		o := NewOverload("x")
		require.True(t, o.AddSymbolRef(&ast.VarDecl{Ident: "x"}))

		_, err := o.FetchFunctionDecl(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not name a function")
	})
}

func TestTableOfOverloads(t *testing.T) {
	// The overload table is how the analyzer actually uses both pieces.
	table := NewTable[*Overload]()

	register := func(ident string, decl ast.Decl) error {
		if existing, ok := table.Fetch(ident); ok && existing != nil {
			if table.ScopeLevel() > 1 {
				// Shadow outer binding with a fresh set.
				o := NewOverload(ident)
				require.True(t, o.AddSymbolRef(decl))
				return table.Register(ident, o, func(*Overload) bool { return false })
			}
			if !existing.AddSymbolRef(decl) {
				return assert.AnError
			}
			return nil
		}
		o := NewOverload(ident)
		require.True(t, o.AddSymbolRef(decl))
		return table.Register(ident, o, nil)
	}

	require.NoError(t, register("f", fnDecl("f", ast.TypeInt)))
	require.NoError(t, register("f", fnDecl("f", ast.TypeFloat)))

	o, ok := table.Fetch("f")
	require.True(t, ok)
	got, err := o.FetchFunctionDecl([]ast.TypeDenoter{base(ast.TypeFloat)})
	require.NoError(t, err)
	assert.Equal(t, "f", got.Ident)
}
