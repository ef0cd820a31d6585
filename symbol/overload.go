package symbol

import (
	"fmt"
	"strings"

	"github.com/xsclang/xsc/ast"
)

// Overload accumulates the declarations sharing one identifier at a scope
// level. The set is either a single variable-like declaration, a single
// type-like declaration, or one or more function declarations with
// pairwise distinct signatures.
type Overload struct {
	ident string
	refs  []ast.Decl
}

// NewOverload creates an empty overload set for the given identifier.
func NewOverload(ident string) *Overload {
	return &Overload{ident: ident}
}

// Ident returns the identifier the set belongs to.
func (o *Overload) Ident() string {
	return o.ident
}

func isVarLike(d ast.Decl) bool {
	switch d.(type) {
	case *ast.VarDecl, *ast.TextureDecl, *ast.SamplerDecl, *ast.BufferDecl:
		return true
	}
	return false
}

func isTypeLike(d ast.Decl) bool {
	switch d.(type) {
	case *ast.StructDecl, *ast.AliasDecl:
		return true
	}
	return false
}

// AddSymbolRef adds a declaration to the set and reports whether the
// resulting set is still valid. Variable-like and type-like declarations
// tolerate no other declaration under the same name; functions coexist
// only with functions of distinct signatures.
func (o *Overload) AddSymbolRef(decl ast.Decl) bool {
	fn, isFn := decl.(*ast.FunctionDecl)

	if len(o.refs) == 0 {
		o.refs = append(o.refs, decl)
		return true
	}
	if !isFn {
		return false
	}

	for _, ref := range o.refs {
		existing, ok := ref.(*ast.FunctionDecl)
		if !ok {
			return false
		}
		if equalSignatures(existing.ParamTypes(), fn.ParamTypes()) {
			return false
		}
	}
	o.refs = append(o.refs, decl)
	return true
}

func equalSignatures(a, b []ast.TypeDenoter) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !ast.TypeEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Fetch returns the single declaration in the set, or fails when the
// identifier is overloaded.
func (o *Overload) Fetch() (ast.Decl, error) {
	if len(o.refs) == 1 {
		return o.refs[0], nil
	}
	return nil, fmt.Errorf("ambiguous reference to overloaded identifier '%s'", o.ident)
}

// FetchVar returns the single variable-like declaration (variable,
// texture, sampler, or buffer) in the set.
func (o *Overload) FetchVar() (ast.Decl, error) {
	decl, err := o.Fetch()
	if err != nil {
		return nil, err
	}
	if !isVarLike(decl) {
		return nil, fmt.Errorf("identifier '%s' does not name a variable", o.ident)
	}
	return decl, nil
}

// FetchType returns the single type-like declaration (struct or alias)
// in the set.
func (o *Overload) FetchType() (ast.Decl, error) {
	decl, err := o.Fetch()
	if err != nil {
		return nil, err
	}
	if !isTypeLike(decl) {
		return nil, fmt.Errorf("identifier '%s' does not name a type", o.ident)
	}
	return decl, nil
}

// FetchFunctionDecl resolves the function overload matching the argument
// type denoter list. Candidates whose parameters equal the arguments
// outrank candidates the arguments merely convert to; a tie at the best
// tier is an ambiguous call.
func (o *Overload) FetchFunctionDecl(argTypes []ast.TypeDenoter) (*ast.FunctionDecl, error) {
	var candidates []*ast.FunctionDecl
	for _, ref := range o.refs {
		fn, ok := ref.(*ast.FunctionDecl)
		if !ok {
			return nil, fmt.Errorf("identifier '%s' does not name a function", o.ident)
		}
		if len(fn.Params) == len(argTypes) {
			candidates = append(candidates, fn)
		}
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf(
			"no matching overload of function '%s' takes %d argument(s)", o.ident, len(argTypes))
	}

	var exact, convertible []*ast.FunctionDecl
	for _, fn := range candidates {
		switch matchArgs(fn, argTypes) {
		case matchExact:
			exact = append(exact, fn)
		case matchConvertible:
			convertible = append(convertible, fn)
		}
	}

	best := exact
	if len(best) == 0 {
		best = convertible
	}
	switch len(best) {
	case 0:
		return nil, fmt.Errorf(
			"no matching overload for call to '%s(%s)'", o.ident, typeListString(argTypes))
	case 1:
		return best[0], nil
	}
	return nil, fmt.Errorf(
		"ambiguous call to overloaded function '%s(%s)'", o.ident, typeListString(argTypes))
}

type matchKind uint8

const (
	matchNone matchKind = iota
	matchConvertible
	matchExact
)

func matchArgs(fn *ast.FunctionDecl, argTypes []ast.TypeDenoter) matchKind {
	kind := matchExact
	for i, param := range fn.Params {
		switch {
		case ast.TypeEqual(argTypes[i], param.Type):
			// exact parameter match
		case ast.IsCastableTo(argTypes[i], param.Type):
			kind = matchConvertible
		default:
			return matchNone
		}
	}
	return kind
}

func typeListString(types []ast.TypeDenoter) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}
