package analyzer

import (
	"fmt"

	"github.com/xsclang/xsc/ast"
)

func (a *Analyzer) analyzeExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.IdentExpr:
		a.analyzeIdentExpr(e)
	case *ast.LiteralExpr:
		a.analyzeLiteralExpr(e)
	case *ast.BinaryExpr:
		a.analyzeExpr(e.Left)
		a.analyzeExpr(e.Right)
		e.Type = a.binaryResultType(e)
	case *ast.UnaryExpr:
		a.analyzeExpr(e.Operand)
		e.Type = a.unaryResultType(e.Op, e.Operand)
	case *ast.PostUnaryExpr:
		a.analyzeExpr(e.Operand)
		e.Type = e.Operand.TypeDen()
	case *ast.TernaryExpr:
		a.analyzeExpr(e.Cond)
		a.checkCondition(e.Cond)
		a.analyzeExpr(e.Then)
		a.analyzeExpr(e.Else)
		e.Type = commonType(e.Then.TypeDen(), e.Else.TypeDen())
	case *ast.CallExpr:
		a.analyzeCallExpr(e)
	case *ast.MethodCallExpr:
		a.analyzeMethodCallExpr(e)
	case *ast.MemberExpr:
		a.analyzeMemberExpr(e)
	case *ast.IndexExpr:
		a.analyzeIndexExpr(e)
	case *ast.CastExpr:
		a.analyzeExpr(e.Expr)
	}
}

func (a *Analyzer) analyzeIdentExpr(e *ast.IdentExpr) {
	o, ok := a.symbols.Fetch(e.Ident)
	if !ok {
		a.error(fmt.Sprintf("undeclared identifier '%s'", e.Ident), e.Pos())
		return
	}
	decl, err := o.FetchVar()
	if err != nil {
		a.error(err.Error(), e.Pos())
		return
	}
	e.Decl = decl
	e.Type = declTypeDenoter(decl)
}

// declTypeDenoter returns the type denoter of a variable-like declaration.
func declTypeDenoter(decl ast.Decl) ast.TypeDenoter {
	switch d := decl.(type) {
	case *ast.VarDecl:
		return d.Type
	case *ast.TextureDecl:
		return &ast.TextureTypeDenoter{Dim: d.Dim}
	case *ast.SamplerDecl:
		return &ast.SamplerTypeDenoter{Comparison: d.Comparison}
	case *ast.BufferDecl:
		return &ast.BufferTypeDenoter{}
	}
	return nil
}

func (a *Analyzer) analyzeLiteralExpr(e *ast.LiteralExpr) {
	switch e.Kind {
	case ast.LiteralInt:
		e.Type = &ast.BaseTypeDenoter{DataType: ast.TypeInt}
	case ast.LiteralFloat:
		e.Type = &ast.BaseTypeDenoter{DataType: ast.TypeFloat}
	case ast.LiteralBool:
		e.Type = &ast.BaseTypeDenoter{DataType: ast.TypeBool}
	}
}

func (a *Analyzer) analyzeCallExpr(e *ast.CallExpr) {
	for _, arg := range e.Args {
		a.analyzeExpr(arg)
	}

	// Type constructor, e.g. float3(x, y, z).
	if e.ConstructType != ast.TypeUndefined {
		e.Type = &ast.BaseTypeDenoter{DataType: e.ConstructType}
		return
	}

	argTypes := make([]ast.TypeDenoter, len(e.Args))
	for i, arg := range e.Args {
		argTypes[i] = arg.TypeDen()
		if argTypes[i] == nil {
			// A prior error already poisoned an argument.
			return
		}
	}

	// User-declared functions shadow intrinsics.
	if o, ok := a.symbols.Fetch(e.Ident); ok {
		fn, err := o.FetchFunctionDecl(argTypes)
		if err != nil {
			a.error(err.Error(), e.Pos())
			return
		}
		e.Decl = fn
		e.Type = fn.ReturnType
		return
	}

	if ast.IsIntrinsicIdent(e.Ident) {
		in, err := ast.ResolveIntrinsic(e.Ident, len(e.Args))
		if err != nil {
			a.error(err.Error(), e.Pos())
			return
		}
		e.Intrinsic = in
		e.Type = intrinsicReturnType(in, argTypes)
		return
	}

	a.error(fmt.Sprintf("undeclared identifier '%s'", e.Ident), e.Pos())
}

func (a *Analyzer) analyzeMethodCallExpr(e *ast.MethodCallExpr) {
	a.analyzeExpr(e.Object)
	for _, arg := range e.Args {
		a.analyzeExpr(arg)
	}

	objType := e.Object.TypeDen()
	if objType == nil {
		return
	}
	if _, ok := ast.Aliased(objType).(*ast.TextureTypeDenoter); !ok {
		a.error(
			fmt.Sprintf("type '%s' has no method '%s'", objType, e.Method), e.Pos())
		return
	}

	switch e.Method {
	case "Sample", "SampleLevel", "SampleBias", "SampleGrad", "Load":
		e.Type = &ast.BaseTypeDenoter{DataType: ast.TypeFloat4}
	case "SampleCmp":
		e.Type = &ast.BaseTypeDenoter{DataType: ast.TypeFloat}
	case "GetDimensions":
		e.Type = &ast.VoidTypeDenoter{}
	default:
		a.error(fmt.Sprintf("unknown texture method '%s'", e.Method), e.Pos())
	}
}

func (a *Analyzer) analyzeMemberExpr(e *ast.MemberExpr) {
	a.analyzeExpr(e.Object)
	objType := e.Object.TypeDen()
	if objType == nil {
		return
	}

	switch t := ast.Aliased(objType).(type) {
	case *ast.StructTypeDenoter:
		if t.Ref == nil {
			a.error(fmt.Sprintf("unresolved struct type '%s'", t.Ident), e.Pos())
			return
		}
		member := t.Ref.Member(e.Member)
		if member == nil {
			a.error(
				fmt.Sprintf("struct '%s' has no member '%s'", t.Ident, e.Member), e.Pos())
			return
		}
		e.Type = member.Type

	case *ast.BaseTypeDenoter:
		result, err := ast.VectorSubscriptDataType(t.DataType, e.Member)
		if err != nil {
			a.error(err.Error(), e.Pos())
			return
		}
		e.IsSwizzle = true
		e.Type = &ast.BaseTypeDenoter{DataType: result}

	default:
		a.error(fmt.Sprintf("type '%s' has no members", objType), e.Pos())
	}
}

func (a *Analyzer) analyzeIndexExpr(e *ast.IndexExpr) {
	a.analyzeExpr(e.Object)
	a.analyzeExpr(e.Index)

	objType := e.Object.TypeDen()
	if objType == nil {
		return
	}

	switch t := ast.Aliased(objType).(type) {
	case *ast.ArrayTypeDenoter:
		if len(t.Dims) > 1 {
			e.Type = &ast.ArrayTypeDenoter{Base: t.Base, Dims: t.Dims[1:]}
		} else {
			e.Type = t.Base
		}
	case *ast.BaseTypeDenoter:
		switch {
		case t.DataType.IsVector():
			e.Type = &ast.BaseTypeDenoter{DataType: t.DataType.BaseType()}
		case t.DataType.IsMatrix():
			// Indexing a matrix yields a row vector.
			_, cols := t.DataType.MatrixDim()
			row := ast.VectorDataType(t.DataType.BaseType(), cols)
			e.Type = &ast.BaseTypeDenoter{DataType: row}
		default:
			a.error(fmt.Sprintf("type '%s' is not subscriptable", objType), e.Pos())
		}
	default:
		a.error(fmt.Sprintf("type '%s' is not subscriptable", objType), e.Pos())
	}
}

func (a *Analyzer) binaryResultType(e *ast.BinaryExpr) ast.TypeDenoter {
	left := e.Left.TypeDen()
	right := e.Right.TypeDen()
	if left == nil || right == nil {
		return nil
	}

	if e.Op.IsLogical() || e.Op.IsCompare() {
		return &ast.BaseTypeDenoter{DataType: ast.TypeBool}
	}

	result := commonType(left, right)
	if result == nil {
		a.error(
			fmt.Sprintf("invalid operands of types '%s' and '%s' to operator '%s'",
				left, right, e.Op),
			e.Pos(),
		)
	}
	return result
}

func (a *Analyzer) unaryResultType(op ast.UnaryOp, operand ast.Expr) ast.TypeDenoter {
	t := operand.TypeDen()
	if t == nil {
		return nil
	}
	if op == ast.UnaryLogicalNot {
		return &ast.BaseTypeDenoter{DataType: ast.TypeBool}
	}
	return t
}

// commonType returns the type two arithmetic operands promote to: the
// higher precision rank wins, and vector or matrix shape is preserved.
func commonType(a, b ast.TypeDenoter) ast.TypeDenoter {
	if a == nil || b == nil {
		return nil
	}
	if ast.TypeEqual(a, b) {
		return a
	}
	ta, okA := ast.Aliased(a).(*ast.BaseTypeDenoter)
	tb, okB := ast.Aliased(b).(*ast.BaseTypeDenoter)
	if !okA || !okB {
		return nil
	}

	da, db := ta.DataType, tb.DataType
	if !da.IsCastableTo(db) && !db.IsCastableTo(da) {
		return nil
	}

	// Pick the scalar base with the higher precision rank.
	base := da.BaseType()
	if db.PrecisionRank() > da.PrecisionRank() {
		base = db.BaseType()
	}

	// Preserve the wider shape (scalar broadcasts to vector or matrix).
	shape := da
	switch {
	case da.IsMatrix():
	case db.IsMatrix():
		shape = db
	case db.VectorDim() > da.VectorDim():
		shape = db
	}

	rows, cols := shape.MatrixDim()
	return &ast.BaseTypeDenoter{DataType: ast.MatrixDataType(base, rows, cols)}
}

// intrinsicReturnType derives the result type of an intrinsic call from
// its argument types. The shapes fall into a few families; intrinsics not
// listed return their first argument's type.
func intrinsicReturnType(in ast.Intrinsic, argTypes []ast.TypeDenoter) ast.TypeDenoter {
	floatType := &ast.BaseTypeDenoter{DataType: ast.TypeFloat}
	boolType := &ast.BaseTypeDenoter{DataType: ast.TypeBool}

	firstBase := func() (ast.DataType, bool) {
		if len(argTypes) == 0 {
			return ast.TypeUndefined, false
		}
		t, ok := ast.Aliased(argTypes[0]).(*ast.BaseTypeDenoter)
		if !ok {
			return ast.TypeUndefined, false
		}
		return t.DataType, true
	}

	// reshape keeps the first argument's dimensions with a new base type.
	reshape := func(base ast.DataType) ast.TypeDenoter {
		if dt, ok := firstBase(); ok {
			rows, cols := dt.MatrixDim()
			return &ast.BaseTypeDenoter{DataType: ast.MatrixDataType(base, rows, cols)}
		}
		return &ast.BaseTypeDenoter{DataType: base}
	}

	switch in {
	case ast.IntrinsicLength, ast.IntrinsicDistance, ast.IntrinsicDeterminant:
		return floatType

	case ast.IntrinsicAsInt:
		return reshape(ast.TypeInt)
	case ast.IntrinsicAsUInt:
		return reshape(ast.TypeUInt)
	case ast.IntrinsicAsFloat:
		return reshape(ast.TypeFloat)
	case ast.IntrinsicAsDouble:
		return reshape(ast.TypeDouble)

	case ast.IntrinsicDot:
		if dt, ok := firstBase(); ok {
			return &ast.BaseTypeDenoter{DataType: dt.BaseType()}
		}
		return floatType

	case ast.IntrinsicAll, ast.IntrinsicAny, ast.IntrinsicIsFinite,
		ast.IntrinsicIsInf, ast.IntrinsicIsNaN:
		return boolType

	case ast.IntrinsicCross:
		return &ast.BaseTypeDenoter{DataType: ast.TypeFloat3}

	case ast.IntrinsicTranspose:
		if dt, ok := firstBase(); ok && dt.IsMatrix() {
			rows, cols := dt.MatrixDim()
			return &ast.BaseTypeDenoter{DataType: ast.MatrixDataType(dt.BaseType(), cols, rows)}
		}

	case ast.IntrinsicMul:
		return mulResultType(argTypes)

	case ast.IntrinsicTex1D, ast.IntrinsicTex1D2, ast.IntrinsicTex1DBias,
		ast.IntrinsicTex1DGrad, ast.IntrinsicTex1DLod, ast.IntrinsicTex1DProj,
		ast.IntrinsicTex2D, ast.IntrinsicTex2D2, ast.IntrinsicTex2DBias,
		ast.IntrinsicTex2DGrad, ast.IntrinsicTex2DLod, ast.IntrinsicTex2DProj,
		ast.IntrinsicTex3D, ast.IntrinsicTex3D2, ast.IntrinsicTex3DBias,
		ast.IntrinsicTex3DGrad, ast.IntrinsicTex3DLod, ast.IntrinsicTex3DProj,
		ast.IntrinsicTexCube, ast.IntrinsicTexCube2, ast.IntrinsicTexCubeBias,
		ast.IntrinsicTexCubeGrad, ast.IntrinsicTexCubeLod, ast.IntrinsicTexCubeProj:
		return &ast.BaseTypeDenoter{DataType: ast.TypeFloat4}

	case ast.IntrinsicClamp, ast.IntrinsicLerp, ast.IntrinsicSmoothStep:
		// Shape follows the widest argument.
		var result ast.TypeDenoter
		for _, t := range argTypes {
			result = commonType(resultOr(result, t), t)
		}
		if result != nil {
			return result
		}
	}

	if len(argTypes) > 0 {
		return argTypes[0]
	}
	return &ast.VoidTypeDenoter{}
}

func resultOr(result, fallback ast.TypeDenoter) ast.TypeDenoter {
	if result != nil {
		return result
	}
	return fallback
}

// mulResultType resolves the HLSL mul() intrinsic shapes: matrix*matrix,
// matrix*vector, vector*matrix, and scalar combinations.
func mulResultType(argTypes []ast.TypeDenoter) ast.TypeDenoter {
	if len(argTypes) != 2 {
		return nil
	}
	ta, okA := ast.Aliased(argTypes[0]).(*ast.BaseTypeDenoter)
	tb, okB := ast.Aliased(argTypes[1]).(*ast.BaseTypeDenoter)
	if !okA || !okB {
		return nil
	}
	da, db := ta.DataType, tb.DataType

	switch {
	case da.IsMatrix() && db.IsMatrix():
		rowsA, _ := da.MatrixDim()
		_, colsB := db.MatrixDim()
		return &ast.BaseTypeDenoter{DataType: ast.MatrixDataType(da.BaseType(), rowsA, colsB)}
	case da.IsVector() && db.IsMatrix():
		_, colsB := db.MatrixDim()
		return &ast.BaseTypeDenoter{DataType: ast.VectorDataType(da.BaseType(), colsB)}
	case da.IsMatrix() && db.IsVector():
		rowsA, _ := da.MatrixDim()
		return &ast.BaseTypeDenoter{DataType: ast.VectorDataType(db.BaseType(), rowsA)}
	}
	return commonType(argTypes[0], argTypes[1])
}
