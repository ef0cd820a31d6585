package hlsl

import (
	"fmt"

	"github.com/xsclang/xsc/ast"
	"github.com/xsclang/xsc/report"
)

// Parser builds the AST from a token stream by recursive descent.
// Syntax errors abort the parse and are delivered through the handler.
type Parser struct {
	src     *report.SourceCode
	handler *report.Handler
	tokens  []Token
	pos     int

	// Named types declared so far (structs and typedefs); HLSL requires
	// declaration before use, so a single pass suffices.
	typeNames map[string]ast.TypeDenoter
}

// NewParser creates a parser over the given tokens.
func NewParser(src *report.SourceCode, handler *report.Handler, tokens []Token) *Parser {
	return &Parser{
		src:       src,
		handler:   handler,
		tokens:    tokens,
		typeNames: make(map[string]ast.TypeDenoter),
	}
}

// Parse parses a translation unit.
func (p *Parser) Parse() (*ast.Program, error) {
	prog := &ast.Program{Source: p.src}
	for !p.check(TokenEOF) {
		decl, err := p.parseGlobalDecl()
		if err != nil {
			return nil, err
		}
		if decl != nil {
			prog.Decls = append(prog.Decls, decl)
		}
	}
	return prog, nil
}

func (p *Parser) parseGlobalDecl() (ast.Decl, error) {
	switch p.current().Kind {
	case TokenStruct:
		return p.parseStructDecl()
	case TokenCBuffer:
		return p.parseBufferDecl()
	case TokenTypedef:
		return p.parseAliasDecl()
	case TokenTexture1D, TokenTexture2D, TokenTexture3D, TokenTextureCube:
		return p.parseTextureDecl()
	case TokenSamplerState, TokenSamplerComparisonState:
		return p.parseSamplerDecl()
	case TokenSemicolon:
		p.advance()
		return nil, nil
	default:
		return p.parseFunctionOrVarDecl()
	}
}

// parseStructDecl parses: struct Ident { <member>* } ;
func (p *Parser) parseStructDecl() (ast.Decl, error) {
	start := p.current()
	p.advance() // struct

	name, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenLeftBrace); err != nil {
		return nil, err
	}

	decl := &ast.StructDecl{Ident: name.Lexeme, Area: start.Area(p.src.Name())}
	for !p.check(TokenRightBrace) && !p.check(TokenEOF) {
		member, err := p.parseVarDeclStmt(true)
		if err != nil {
			return nil, err
		}
		decl.Members = append(decl.Members, member)
	}
	if _, err := p.expect(TokenRightBrace); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}

	p.typeNames[decl.Ident] = &ast.StructTypeDenoter{Ident: decl.Ident, Ref: decl}
	return decl, nil
}

// parseBufferDecl parses: cbuffer Ident [: register(bN)] { <field>* } [;]
func (p *Parser) parseBufferDecl() (ast.Decl, error) {
	start := p.current()
	p.advance() // cbuffer

	name, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}

	decl := &ast.BufferDecl{Ident: name.Lexeme, Area: start.Area(p.src.Name())}
	if p.check(TokenColon) {
		reg, err := p.parseRegister()
		if err != nil {
			return nil, err
		}
		decl.Register = reg
	}

	if _, err := p.expect(TokenLeftBrace); err != nil {
		return nil, err
	}
	for !p.check(TokenRightBrace) && !p.check(TokenEOF) {
		field, err := p.parseVarDeclStmt(false)
		if err != nil {
			return nil, err
		}
		decl.Members = append(decl.Members, field)
	}
	if _, err := p.expect(TokenRightBrace); err != nil {
		return nil, err
	}
	p.accept(TokenSemicolon)
	return decl, nil
}

// parseAliasDecl parses: typedef <type> Ident ;
func (p *Parser) parseAliasDecl() (ast.Decl, error) {
	start := p.current()
	p.advance() // typedef

	denoter, err := p.parseTypeDenoter()
	if err != nil {
		return nil, err
	}
	name, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}

	decl := &ast.AliasDecl{Ident: name.Lexeme, Type: denoter, Area: start.Area(p.src.Name())}
	p.typeNames[decl.Ident] = &ast.AliasTypeDenoter{Ident: decl.Ident, Aliased: denoter}
	return decl, nil
}

// parseTextureDecl parses: Texture2D Ident [: register(tN)] ;
func (p *Parser) parseTextureDecl() (ast.Decl, error) {
	start := p.current()
	var dim ast.TextureDim
	switch start.Kind {
	case TokenTexture1D:
		dim = ast.Texture1D
	case TokenTexture2D:
		dim = ast.Texture2D
	case TokenTexture3D:
		dim = ast.Texture3D
	case TokenTextureCube:
		dim = ast.TextureCube
	}
	p.advance()

	name, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	decl := &ast.TextureDecl{Ident: name.Lexeme, Dim: dim, Area: start.Area(p.src.Name())}
	if p.check(TokenColon) {
		reg, err := p.parseRegister()
		if err != nil {
			return nil, err
		}
		decl.Register = reg
	}
	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	return decl, nil
}

// parseSamplerDecl parses: SamplerState Ident [: register(sN)] ;
func (p *Parser) parseSamplerDecl() (ast.Decl, error) {
	start := p.current()
	comparison := start.Kind == TokenSamplerComparisonState
	p.advance()

	name, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	decl := &ast.SamplerDecl{
		Ident:      name.Lexeme,
		Comparison: comparison,
		Area:       start.Area(p.src.Name()),
	}
	if p.check(TokenColon) {
		reg, err := p.parseRegister()
		if err != nil {
			return nil, err
		}
		decl.Register = reg
	}
	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	return decl, nil
}

// parseRegister parses: : register ( Ident )
func (p *Parser) parseRegister() (string, error) {
	if _, err := p.expect(TokenColon); err != nil {
		return "", err
	}
	if _, err := p.expect(TokenRegister); err != nil {
		return "", err
	}
	if _, err := p.expect(TokenLeftParen); err != nil {
		return "", err
	}
	slot, err := p.expect(TokenIdent)
	if err != nil {
		return "", err
	}
	if _, err := p.expect(TokenRightParen); err != nil {
		return "", err
	}
	return slot.Lexeme, nil
}

// parseFunctionOrVarDecl disambiguates a global function definition from
// a global variable declaration after the common "<type> Ident" prefix.
func (p *Parser) parseFunctionOrVarDecl() (ast.Decl, error) {
	start := p.current()
	isUniform, isConst := p.parseQualifiers()

	denoter, err := p.parseTypeDenoter()
	if err != nil {
		return nil, err
	}
	name, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}

	if p.check(TokenLeftParen) {
		return p.parseFunctionDecl(denoter, name, start)
	}
	return p.parseGlobalVarRest(denoter, name, start, isUniform, isConst)
}

func (p *Parser) parseQualifiers() (isUniform, isConst bool) {
	for {
		switch p.current().Kind {
		case TokenUniform:
			isUniform = true
			p.advance()
		case TokenConst, TokenStatic:
			isConst = isConst || p.current().Kind == TokenConst
			p.advance()
		default:
			return isUniform, isConst
		}
	}
}

func (p *Parser) parseGlobalVarRest(
	denoter ast.TypeDenoter, name Token, start Token, isUniform, isConst bool,
) (ast.Decl, error) {
	denoter, err := p.parseArraySuffix(denoter)
	if err != nil {
		return nil, err
	}

	decl := &ast.VarDecl{
		Ident:     name.Lexeme,
		Type:      denoter,
		IsUniform: isUniform,
		IsConst:   isConst,
		Area:      start.Area(p.src.Name()),
	}
	if p.accept(TokenColon) {
		semantic, err := p.expect(TokenIdent)
		if err != nil {
			return nil, err
		}
		decl.Semantic = semantic.Lexeme
	}
	if p.accept(TokenEqual) {
		init, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		decl.Init = init
	}
	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *Parser) parseFunctionDecl(ret ast.TypeDenoter, name Token, start Token) (ast.Decl, error) {
	decl := &ast.FunctionDecl{
		Ident:      name.Lexeme,
		ReturnType: ret,
		Area:       start.Area(p.src.Name()),
	}

	if _, err := p.expect(TokenLeftParen); err != nil {
		return nil, err
	}
	for !p.check(TokenRightParen) && !p.check(TokenEOF) {
		param, err := p.parseParameter()
		if err != nil {
			return nil, err
		}
		decl.Params = append(decl.Params, param)
		if !p.accept(TokenComma) {
			break
		}
	}
	if _, err := p.expect(TokenRightParen); err != nil {
		return nil, err
	}

	if p.accept(TokenColon) {
		semantic, err := p.expect(TokenIdent)
		if err != nil {
			return nil, err
		}
		decl.Semantic = semantic.Lexeme
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	decl.Body = body
	return decl, nil
}

func (p *Parser) parseParameter() (*ast.VarDecl, error) {
	start := p.current()

	mod := ast.InputIn
	switch start.Kind {
	case TokenIn:
		p.advance()
	case TokenOut:
		mod = ast.InputOut
		p.advance()
	case TokenInOut:
		mod = ast.InputInOut
		p.advance()
	}
	_, isConst := p.parseQualifiers()

	denoter, err := p.parseTypeDenoter()
	if err != nil {
		return nil, err
	}
	name, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	denoter, err = p.parseArraySuffix(denoter)
	if err != nil {
		return nil, err
	}

	param := &ast.VarDecl{
		Ident:    name.Lexeme,
		Type:     denoter,
		IsConst:  isConst,
		InputMod: mod,
		Area:     start.Area(p.src.Name()),
	}
	if p.accept(TokenColon) {
		semantic, err := p.expect(TokenIdent)
		if err != nil {
			return nil, err
		}
		param.Semantic = semantic.Lexeme
	}
	return param, nil
}

// parseVarDeclStmt parses a struct member or cbuffer field declaration,
// or a local variable statement when called from statement context.
func (p *Parser) parseVarDeclStmt(allowSemantic bool) (*ast.VarDecl, error) {
	start := p.current()
	isUniform, isConst := p.parseQualifiers()

	denoter, err := p.parseTypeDenoter()
	if err != nil {
		return nil, err
	}
	name, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	denoter, err = p.parseArraySuffix(denoter)
	if err != nil {
		return nil, err
	}

	decl := &ast.VarDecl{
		Ident:     name.Lexeme,
		Type:      denoter,
		IsUniform: isUniform,
		IsConst:   isConst,
		Area:      start.Area(p.src.Name()),
	}
	if allowSemantic && p.accept(TokenColon) {
		semantic, err := p.expect(TokenIdent)
		if err != nil {
			return nil, err
		}
		decl.Semantic = semantic.Lexeme
	}
	if p.accept(TokenEqual) {
		init, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		decl.Init = init
	}
	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	return decl, nil
}

// parseTypeDenoter parses a type: void, a base data type, or a previously
// declared struct or typedef name.
func (p *Parser) parseTypeDenoter() (ast.TypeDenoter, error) {
	tok := p.current()
	switch tok.Kind {
	case TokenVoid:
		p.advance()
		return &ast.VoidTypeDenoter{}, nil
	case TokenIdent:
		if dt, err := ast.ParseDataType(tok.Lexeme); err == nil {
			p.advance()
			return &ast.BaseTypeDenoter{DataType: dt}, nil
		}
		if named, ok := p.typeNames[tok.Lexeme]; ok {
			p.advance()
			return named, nil
		}
		return nil, p.errorBreak(fmt.Sprintf("undeclared type '%s'", tok.Lexeme), tok)
	}
	return nil, p.errorBreak(fmt.Sprintf("expected type, got '%s'", tok.Lexeme), tok)
}

// parseArraySuffix wraps denoter in an array denoter for each [N] suffix.
func (p *Parser) parseArraySuffix(denoter ast.TypeDenoter) (ast.TypeDenoter, error) {
	var dims []int
	for p.accept(TokenLeftBracket) {
		size := 0
		if p.check(TokenIntLiteral) {
			fmt.Sscanf(p.current().Lexeme, "%d", &size)
			p.advance()
		}
		if _, err := p.expect(TokenRightBracket); err != nil {
			return nil, err
		}
		dims = append(dims, size)
	}
	if len(dims) == 0 {
		return denoter, nil
	}
	return &ast.ArrayTypeDenoter{Base: denoter, Dims: dims}, nil
}

// Statements

func (p *Parser) parseBlock() (*ast.BlockStmt, error) {
	start, err := p.expect(TokenLeftBrace)
	if err != nil {
		return nil, err
	}
	block := &ast.BlockStmt{Area: start.Area(p.src.Name())}
	for !p.check(TokenRightBrace) && !p.check(TokenEOF) {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		block.Stmts = append(block.Stmts, stmt)
	}
	if _, err := p.expect(TokenRightBrace); err != nil {
		return nil, err
	}
	return block, nil
}

// parseBody parses either a braced block or a single statement wrapped
// into a block.
func (p *Parser) parseBody() (*ast.BlockStmt, error) {
	if p.check(TokenLeftBrace) {
		return p.parseBlock()
	}
	stmt, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	return &ast.BlockStmt{Stmts: []ast.Stmt{stmt}, Area: stmt.Pos()}, nil
}

func (p *Parser) parseStmt() (ast.Stmt, error) {
	tok := p.current()
	switch tok.Kind {
	case TokenLeftBrace:
		return p.parseBlock()
	case TokenReturn:
		return p.parseReturnStmt()
	case TokenIf:
		return p.parseIfStmt()
	case TokenFor:
		return p.parseForStmt()
	case TokenWhile:
		return p.parseWhileStmt()
	case TokenDo:
		return p.parseDoWhileStmt()
	case TokenBreak, TokenContinue, TokenDiscard:
		return p.parseCtrlTransferStmt()
	case TokenConst, TokenStatic:
		return p.parseVarDeclStmt(false)
	case TokenIdent:
		if p.isTypeName(tok.Lexeme) && p.peek(1).Kind == TokenIdent {
			return p.parseVarDeclStmt(false)
		}
	}
	return p.parseExprOrAssignStmt()
}

func (p *Parser) isTypeName(ident string) bool {
	if _, err := ast.ParseDataType(ident); err == nil {
		return true
	}
	_, ok := p.typeNames[ident]
	return ok
}

func (p *Parser) parseReturnStmt() (ast.Stmt, error) {
	start := p.current()
	p.advance()

	stmt := &ast.ReturnStmt{Area: start.Area(p.src.Name())}
	if !p.check(TokenSemicolon) {
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		stmt.Value = value
	}
	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseIfStmt() (ast.Stmt, error) {
	start := p.current()
	p.advance()

	if _, err := p.expect(TokenLeftParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRightParen); err != nil {
		return nil, err
	}
	then, err := p.parseBody()
	if err != nil {
		return nil, err
	}

	stmt := &ast.IfStmt{Cond: cond, Then: then, Area: start.Area(p.src.Name())}
	if p.accept(TokenElse) {
		if p.check(TokenIf) {
			elseStmt, err := p.parseIfStmt()
			if err != nil {
				return nil, err
			}
			stmt.Else = elseStmt
		} else {
			elseBlock, err := p.parseBody()
			if err != nil {
				return nil, err
			}
			stmt.Else = elseBlock
		}
	}
	return stmt, nil
}

func (p *Parser) parseForStmt() (ast.Stmt, error) {
	start := p.current()
	p.advance()

	if _, err := p.expect(TokenLeftParen); err != nil {
		return nil, err
	}

	stmt := &ast.ForStmt{Area: start.Area(p.src.Name())}
	if !p.accept(TokenSemicolon) {
		init, err := p.parseStmt() // consumes the ';'
		if err != nil {
			return nil, err
		}
		stmt.Init = init
	}
	if !p.check(TokenSemicolon) {
		cond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		stmt.Cond = cond
	}
	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	if !p.check(TokenRightParen) {
		update, err := p.parseSimpleStmt()
		if err != nil {
			return nil, err
		}
		stmt.Update = update
	}
	if _, err := p.expect(TokenRightParen); err != nil {
		return nil, err
	}

	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	stmt.Body = body
	return stmt, nil
}

func (p *Parser) parseWhileStmt() (ast.Stmt, error) {
	start := p.current()
	p.advance()

	if _, err := p.expect(TokenLeftParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRightParen); err != nil {
		return nil, err
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Cond: cond, Body: body, Area: start.Area(p.src.Name())}, nil
}

func (p *Parser) parseDoWhileStmt() (ast.Stmt, error) {
	start := p.current()
	p.advance()

	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenWhile); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenLeftParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRightParen); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	return &ast.DoWhileStmt{Body: body, Cond: cond, Area: start.Area(p.src.Name())}, nil
}

func (p *Parser) parseCtrlTransferStmt() (ast.Stmt, error) {
	start := p.current()
	transfer, err := ast.ParseCtrlTransfer(start.Lexeme)
	if err != nil {
		return nil, p.errorBreak(err.Error(), start)
	}
	p.advance()
	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	return &ast.CtrlTransferStmt{Transfer: transfer, Area: start.Area(p.src.Name())}, nil
}

func (p *Parser) parseExprOrAssignStmt() (ast.Stmt, error) {
	stmt, err := p.parseSimpleStmt()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseSimpleStmt parses an assignment or expression statement without
// the trailing semicolon (shared with for-loop updates).
func (p *Parser) parseSimpleStmt() (ast.Stmt, error) {
	start := p.current()
	left, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if op, ok := assignOps[p.current().Kind]; ok {
		p.advance()
		right, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.AssignStmt{Left: left, Op: op, Right: right, Area: start.Area(p.src.Name())}, nil
	}
	return &ast.ExprStmt{Expr: left, Area: start.Area(p.src.Name())}, nil
}

var assignOps = map[TokenKind]ast.AssignOp{
	TokenEqual:               ast.AssignSet,
	TokenPlusEqual:           ast.AssignAdd,
	TokenMinusEqual:          ast.AssignSub,
	TokenStarEqual:           ast.AssignMul,
	TokenSlashEqual:          ast.AssignDiv,
	TokenPercentEqual:        ast.AssignMod,
	TokenLessLessEqual:       ast.AssignLShift,
	TokenGreaterGreaterEqual: ast.AssignRShift,
	TokenPipeEqual:           ast.AssignOr,
	TokenAmpEqual:            ast.AssignAnd,
	TokenCaretEqual:          ast.AssignXor,
}

// Expressions, by descending precedence tier.

func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseTernary()
}

func (p *Parser) parseTernary() (ast.Expr, error) {
	cond, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	if !p.accept(TokenQuestion) {
		return cond, nil
	}
	then, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenColon); err != nil {
		return nil, err
	}
	elseExpr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.TernaryExpr{Cond: cond, Then: then, Else: elseExpr, Area: cond.Pos()}, nil
}

// binaryTiers lists the binary operator tiers from lowest to highest
// precedence; each tier is left-associative.
var binaryTiers = []map[TokenKind]ast.BinaryOp{
	{TokenPipePipe: ast.BinaryLogicalOr},
	{TokenAmpAmp: ast.BinaryLogicalAnd},
	{TokenPipe: ast.BinaryOr},
	{TokenCaret: ast.BinaryXor},
	{TokenAmpersand: ast.BinaryAnd},
	{TokenEqualEqual: ast.BinaryEqual, TokenBangEqual: ast.BinaryNotEqual},
	{
		TokenLess: ast.BinaryLess, TokenGreater: ast.BinaryGreater,
		TokenLessEqual: ast.BinaryLessEqual, TokenGreaterEqual: ast.BinaryGreaterEqual,
	},
	{TokenLessLess: ast.BinaryLShift, TokenGreaterGreater: ast.BinaryRShift},
	{TokenPlus: ast.BinaryAdd, TokenMinus: ast.BinarySub},
	{TokenStar: ast.BinaryMul, TokenSlash: ast.BinaryDiv, TokenPercent: ast.BinaryMod},
}

func (p *Parser) parseLogicalOr() (ast.Expr, error) {
	return p.parseBinaryTier(0)
}

func (p *Parser) parseBinaryTier(tier int) (ast.Expr, error) {
	if tier >= len(binaryTiers) {
		return p.parseUnary()
	}
	left, err := p.parseBinaryTier(tier + 1)
	if err != nil {
		return nil, err
	}
	for {
		op, ok := binaryTiers[tier][p.current().Kind]
		if !ok {
			return left, nil
		}
		p.advance()
		right, err := p.parseBinaryTier(tier + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Left: left, Op: op, Right: right, Area: left.Pos()}
	}
}

var unaryOps = map[TokenKind]ast.UnaryOp{
	TokenBang:       ast.UnaryLogicalNot,
	TokenTilde:      ast.UnaryNot,
	TokenPlus:       ast.UnaryNop,
	TokenMinus:      ast.UnaryNegate,
	TokenPlusPlus:   ast.UnaryInc,
	TokenMinusMinus: ast.UnaryDec,
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	tok := p.current()
	if op, ok := unaryOps[tok.Kind]; ok {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: op, Operand: operand, Area: tok.Area(p.src.Name())}, nil
	}

	// Cast expression: ( <type> ) <unary>
	if tok.Kind == TokenLeftParen && p.isTypeStart(p.peek(1)) && p.peek(2).Kind == TokenRightParen {
		p.advance()
		target, err := p.parseTypeDenoter()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRightParen); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.CastExpr{Target: target, Expr: operand, Area: tok.Area(p.src.Name())}, nil
	}

	return p.parsePostfix()
}

func (p *Parser) isTypeStart(tok Token) bool {
	if tok.Kind == TokenVoid {
		return true
	}
	return tok.Kind == TokenIdent && p.isTypeName(tok.Lexeme)
}

func (p *Parser) parsePostfix() (ast.Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.current()
		switch tok.Kind {
		case TokenDot:
			p.advance()
			member, err := p.expect(TokenIdent)
			if err != nil {
				return nil, err
			}
			if p.check(TokenLeftParen) {
				args, err := p.parseArgs()
				if err != nil {
					return nil, err
				}
				expr = &ast.MethodCallExpr{
					Object: expr,
					Method: member.Lexeme,
					Args:   args,
					Area:   member.Area(p.src.Name()),
				}
			} else {
				expr = &ast.MemberExpr{
					Object: expr,
					Member: member.Lexeme,
					Area:   member.Area(p.src.Name()),
				}
			}
		case TokenLeftBracket:
			p.advance()
			index, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(TokenRightBracket); err != nil {
				return nil, err
			}
			expr = &ast.IndexExpr{Object: expr, Index: index, Area: tok.Area(p.src.Name())}
		case TokenPlusPlus:
			p.advance()
			expr = &ast.PostUnaryExpr{Operand: expr, Op: ast.UnaryInc, Area: tok.Area(p.src.Name())}
		case TokenMinusMinus:
			p.advance()
			expr = &ast.PostUnaryExpr{Operand: expr, Op: ast.UnaryDec, Area: tok.Area(p.src.Name())}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.current()
	area := tok.Area(p.src.Name())

	switch tok.Kind {
	case TokenIntLiteral:
		p.advance()
		return &ast.LiteralExpr{Kind: ast.LiteralInt, Value: tok.Lexeme, Area: area}, nil
	case TokenFloatLiteral:
		p.advance()
		return &ast.LiteralExpr{Kind: ast.LiteralFloat, Value: tok.Lexeme, Area: area}, nil
	case TokenTrue, TokenFalse:
		p.advance()
		return &ast.LiteralExpr{Kind: ast.LiteralBool, Value: tok.Lexeme, Area: area}, nil
	case TokenLeftParen:
		p.advance()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRightParen); err != nil {
			return nil, err
		}
		return expr, nil
	case TokenIdent:
		if p.peek(1).Kind == TokenLeftParen {
			return p.parseCall(tok)
		}
		p.advance()
		return &ast.IdentExpr{Ident: tok.Lexeme, Area: area}, nil
	}
	return nil, p.errorBreak(fmt.Sprintf("unexpected token '%s' in expression", tok.Lexeme), tok)
}

func (p *Parser) parseCall(name Token) (ast.Expr, error) {
	p.advance() // identifier
	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}

	call := &ast.CallExpr{Ident: name.Lexeme, Args: args, Area: name.Area(p.src.Name())}
	if dt, err := ast.ParseDataType(name.Lexeme); err == nil {
		call.ConstructType = dt
	}
	return call, nil
}

func (p *Parser) parseArgs() ([]ast.Expr, error) {
	if _, err := p.expect(TokenLeftParen); err != nil {
		return nil, err
	}
	var args []ast.Expr
	for !p.check(TokenRightParen) && !p.check(TokenEOF) {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.accept(TokenComma) {
			break
		}
	}
	if _, err := p.expect(TokenRightParen); err != nil {
		return nil, err
	}
	return args, nil
}

// Token stream helpers

func (p *Parser) current() Token {
	return p.tokens[p.pos]
}

func (p *Parser) peek(offset int) Token {
	if p.pos+offset >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+offset]
}

func (p *Parser) advance() Token {
	tok := p.tokens[p.pos]
	if p.pos+1 < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind TokenKind) bool {
	return p.current().Kind == kind
}

func (p *Parser) accept(kind TokenKind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(kind TokenKind) (Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	tok := p.current()
	lexeme := tok.Lexeme
	if tok.Kind == TokenEOF {
		lexeme = "end of file"
	}
	return Token{}, p.errorBreak(
		fmt.Sprintf("expected '%s', got '%s'", kind, lexeme), tok)
}

func (p *Parser) errorBreak(msg string, tok Token) error {
	return p.handler.ErrorBreak(msg, p.src, tok.Area(p.src.Name()), report.ErrorCode{})
}
