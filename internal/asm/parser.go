package asm

import (
	"fmt"
	"strconv"

	"github.com/hassan/anvil/internal/ir"
	"github.com/hassan/anvil/internal/semantic/types"
)

// ParseError is a single diagnostic produced while reading a ".air"
// file, carrying the position so a caller can point at the offending
// line.
type ParseError struct {
	Position Position
	Msg      string
}

func (e *ParseError) Error() string {
	return e.Position.String() + ": " + e.Msg
}

var binaryOps = map[string]ir.Opcode{
	"add": ir.ADD, "sub": ir.SUB, "mul": ir.MUL, "div": ir.DIV, "mod": ir.MOD,
	"eq": ir.EQ, "neq": ir.NEQ, "lt": ir.LT, "le": ir.LE, "gt": ir.GT, "ge": ir.GE,
	"and": ir.AND, "or": ir.OR,
	"bitand": ir.BITAND, "bitor": ir.BITOR, "bitxor": ir.BITXOR,
	"shl": ir.SHL, "shr": ir.SHR,
}

var unaryOps = map[string]ir.Opcode{
	"neg": ir.NEG, "not": ir.NOT, "bitnot": ir.BITNOT,
}

// parser is a recursive-descent reader over a token stream, holding
// one token of lookahead (cur/peek) the same way a hand-written
// parser climbs any small grammar.
type parser struct {
	lx   *lexer
	cur  Token
	peek Token

	errors []error

	fn      *ir.Function
	locals  map[string]*ir.Value
	blocks  map[string]*ir.Block
	globals map[string]*ir.Value
}

// ParseModule reads a ".air" source file into an ir.Module. Parsing
// continues past an error where possible so a single pass can report
// more than one problem; errs is non-empty iff something was wrong.
func ParseModule(source, filename string) (*ir.Module, []error) {
	p := &parser{lx: newLexer(source, filename), globals: make(map[string]*ir.Value)}
	p.advance()
	p.advance()

	mod := ir.NewModule(filename)
	p.skipNewlines()
	for p.cur.Type != TokenEOF {
		if p.cur.Type == TokenIdent && p.cur.Lexeme == "func" {
			if fn := p.parseFunction(); fn != nil {
				mod.AddFunction(fn)
			}
		} else {
			p.errorf("expected 'func', got %s", p.cur)
			p.advance()
		}
		p.skipNewlines()
	}
	return mod, p.errors
}

func (p *parser) advance() {
	p.cur = p.peek
	tok, err := p.lx.next()
	if err != nil {
		p.errors = append(p.errors, err)
	}
	p.peek = tok
}

func (p *parser) skipNewlines() {
	for p.cur.Type == TokenNewline {
		p.advance()
	}
}

func (p *parser) errorf(format string, args ...interface{}) {
	p.errors = append(p.errors, &ParseError{Position: p.cur.Position, Msg: fmt.Sprintf(format, args...)})
}

// expect checks that cur has type tt, consumes it, and returns the
// consumed token; on mismatch it records an error and does not
// advance, so the caller's subsequent parsing can still make progress
// on the unexpected token.
func (p *parser) expect(tt TokenType) Token {
	if p.cur.Type != tt {
		p.errorf("expected %s, got %s", tt, p.cur)
		return p.cur
	}
	tok := p.cur
	p.advance()
	return tok
}

func (p *parser) parseFunction() *ir.Function {
	p.advance() // "func"
	name := p.expect(TokenGlobal).Lexeme

	p.expect(TokenLParen)
	var paramNames []string
	var paramTypes []types.Type
	for p.cur.Type != TokenRParen && p.cur.Type != TokenEOF {
		pname := p.expect(TokenIdent).Lexeme
		p.expect(TokenColon)
		ptyp := p.parseType()
		paramNames = append(paramNames, pname)
		paramTypes = append(paramTypes, ptyp)
		if p.cur.Type == TokenComma {
			p.advance()
		}
	}
	p.expect(TokenRParen)

	retType := types.Type(types.Void)
	if p.cur.Type == TokenArrow {
		p.advance()
		retType = p.parseType()
	}

	params := make([]*ir.Value, len(paramNames))
	for i, pname := range paramNames {
		params[i] = &ir.Value{ID: i, Name: pname, Type: paramTypes[i], Kind: ir.ValueParameter}
	}

	p.fn = ir.NewFunction(name, params, retType)
	p.locals = make(map[string]*ir.Value, len(params))
	p.blocks = make(map[string]*ir.Block)
	for _, param := range params {
		p.locals[param.Name] = param
	}

	p.expect(TokenLBrace)
	p.skipNewlines()
	for p.cur.Type != TokenRBrace && p.cur.Type != TokenEOF {
		p.parseBlock()
		p.skipNewlines()
	}
	p.expect(TokenRBrace)

	fn := p.fn
	p.fn, p.locals, p.blocks = nil, nil, nil
	return fn
}

func (p *parser) parseType() types.Type {
	if p.cur.Type == TokenStar {
		p.advance()
		return types.NewPointer(p.parseType())
	}
	name := p.expect(TokenIdent).Lexeme
	switch name {
	case "int":
		return types.Int
	case "float":
		return types.Float
	case "bool":
		return types.Bool
	case "void":
		return types.Void
	default:
		p.errorf("unknown type %q", name)
		return types.Invalid
	}
}

// getBlock returns the block named label, creating a detached
// placeholder the first time a branch names it before its own label
// line has been parsed. Forward references resolve automatically:
// the label line later calls getBlock for the same name and appends
// the very block already referenced by earlier branches.
func (p *parser) getBlock(label string) *ir.Block {
	if b, ok := p.blocks[label]; ok {
		return b
	}
	b := ir.NewBlock(label)
	p.blocks[label] = b
	return b
}

func (p *parser) parseBlock() {
	label := p.expect(TokenIdent).Lexeme
	p.expect(TokenColon)
	p.skipNewlines()

	b := p.getBlock(label)
	p.fn.AddBlock(b)

	for p.cur.Type != TokenRBrace && !p.atLabelStart() && p.cur.Type != TokenEOF {
		if instr := p.parseInstruction(); instr != nil {
			b.PushBack(instr)
		}
		p.skipNewlines()
	}
}

// atLabelStart reports whether cur begins the next block's label line
// (IDENT ":"), the only thing that can end a block besides "}".
func (p *parser) atLabelStart() bool {
	return p.cur.Type == TokenIdent && p.peek.Type == TokenColon
}

func (p *parser) parseInstruction() *ir.Instruction {
	if p.cur.Type == TokenLocal {
		return p.parseAssignment()
	}

	switch {
	case p.cur.Type == TokenIdent && p.cur.Lexeme == "ret":
		p.advance()
		if p.cur.Type == TokenNewline || p.cur.Type == TokenRBrace {
			return ir.NewRet(nil)
		}
		return ir.NewRet(p.parseValue())

	case p.cur.Type == TokenIdent && p.cur.Lexeme == "br":
		p.advance()
		target := p.expect(TokenIdent).Lexeme
		return ir.NewBr(p.getBlock(target))

	case p.cur.Type == TokenIdent && p.cur.Lexeme == "br_cond":
		p.advance()
		cond := p.parseValue()
		p.expect(TokenComma)
		t := p.expect(TokenIdent).Lexeme
		p.expect(TokenComma)
		f := p.expect(TokenIdent).Lexeme
		return ir.NewBrCond(cond, p.getBlock(t), p.getBlock(f))

	case p.cur.Type == TokenIdent && p.cur.Lexeme == "switch":
		p.advance()
		scrutinee := p.parseValue()
		p.expect(TokenComma)
		def := p.getBlock(p.expect(TokenIdent).Lexeme)
		var cases []*ir.Value
		var targets []*ir.Block
		for p.cur.Type == TokenComma {
			p.advance()
			cv := p.parseValue()
			p.expect(TokenArrow)
			targets = append(targets, p.getBlock(p.expect(TokenIdent).Lexeme))
			cases = append(cases, cv)
		}
		return ir.NewSwitch(scrutinee, def, cases, targets)

	case p.cur.Type == TokenIdent && p.cur.Lexeme == "store":
		p.advance()
		value := p.parseValue()
		p.expect(TokenComma)
		addr := p.parseValue()
		return ir.NewStore(value, addr)

	case p.cur.Type == TokenIdent && p.cur.Lexeme == "call":
		p.advance()
		callee := p.parseValue()
		args := p.parseCallArgs()
		return ir.NewCall(nil, callee, args)

	case p.cur.Type == TokenIdent && p.cur.Lexeme == "nop":
		p.advance()
		return ir.NewNop()

	default:
		p.errorf("unexpected token %s in instruction position", p.cur)
		p.advance()
		return nil
	}
}

func (p *parser) parseAssignment() *ir.Instruction {
	destName := p.expect(TokenLocal).Lexeme
	p.expect(TokenEqual)

	op := p.expect(TokenIdent).Lexeme

	switch op {
	case "alloca":
		typ := p.parseType()
		dest := p.newLocal(destName, types.NewPointer(typ))
		return ir.NewAlloca(dest, typ)

	case "load":
		addr := p.parseValue()
		dest := p.newLocal(destName, nil)
		return ir.NewLoad(dest, addr)

	case "copy":
		v := p.parseValue()
		dest := p.newLocal(destName, v.Type)
		return ir.NewCopy(dest, v)

	case "cast":
		v := p.parseValue()
		dest := p.newLocal(destName, v.Type)
		return ir.NewCast(dest, v)

	case "gep":
		base := p.parseValue()
		p.expect(TokenComma)
		index := p.parseValue()
		dest := p.newLocal(destName, base.Type)
		return ir.NewGEP(dest, base, index)

	case "getfieldptr":
		base := p.parseValue()
		p.expect(TokenComma)
		idxTok := p.expect(TokenNumber)
		idx, _ := strconv.Atoi(idxTok.Lexeme)
		dest := p.newLocal(destName, base.Type)
		return ir.NewGetFieldPtr(dest, base, idx)

	case "call":
		callee := p.parseValue()
		args := p.parseCallArgs()
		dest := p.newLocal(destName, nil)
		return ir.NewCall(dest, callee, args)

	case "phi":
		var incoming []ir.PhiIncoming
		for p.peekStartsPhiEntry() {
			p.expect(TokenLParen)
			v := p.parseValue()
			p.expect(TokenComma)
			blockName := p.expect(TokenIdent).Lexeme
			p.expect(TokenRParen)
			incoming = append(incoming, ir.PhiIncoming{Value: v, Block: p.getBlock(blockName)})
			if p.cur.Type == TokenComma {
				p.advance()
			} else {
				break
			}
		}
		var typ types.Type
		if len(incoming) > 0 {
			typ = incoming[0].Value.Type
		}
		dest := p.newLocal(destName, typ)
		return ir.NewPhi(dest, incoming)

	default:
		if opcode, ok := binaryOps[op]; ok {
			left := p.parseValue()
			p.expect(TokenComma)
			right := p.parseValue()
			dest := p.newLocal(destName, left.Type)
			return ir.NewBinary(opcode, dest, left, right)
		}
		if opcode, ok := unaryOps[op]; ok {
			operand := p.parseValue()
			dest := p.newLocal(destName, operand.Type)
			return ir.NewUnary(opcode, dest, operand)
		}
		p.errorf("unknown opcode %q", op)
		return nil
	}
}

func (p *parser) peekStartsPhiEntry() bool {
	return p.cur.Type == TokenLParen
}

func (p *parser) parseCallArgs() []*ir.Value {
	p.expect(TokenLParen)
	var args []*ir.Value
	for p.cur.Type != TokenRParen && p.cur.Type != TokenEOF {
		args = append(args, p.parseValue())
		if p.cur.Type == TokenComma {
			p.advance()
		}
	}
	p.expect(TokenRParen)
	return args
}

func (p *parser) parseValue() *ir.Value {
	switch p.cur.Type {
	case TokenLocal:
		name := p.cur.Lexeme
		p.advance()
		if v, ok := p.locals[name]; ok {
			return v
		}
		p.errorf("undefined value %%%s", name)
		return &ir.Value{Name: name, Kind: ir.ValueTemporary}

	case TokenGlobal:
		name := p.cur.Lexeme
		p.advance()
		return p.getGlobal(name)

	case TokenNumber:
		n, _ := strconv.ParseInt(p.cur.Lexeme, 10, 64)
		p.advance()
		return &ir.Value{Kind: ir.ValueConstant, Type: types.Int, Constant: n}

	case TokenTrue:
		p.advance()
		return &ir.Value{Kind: ir.ValueConstant, Type: types.Bool, Constant: true}

	case TokenFalse:
		p.advance()
		return &ir.Value{Kind: ir.ValueConstant, Type: types.Bool, Constant: false}

	default:
		p.errorf("expected a value, got %s", p.cur)
		p.advance()
		return &ir.Value{Kind: ir.ValueConstant}
	}
}

func (p *parser) newLocal(name string, typ types.Type) *ir.Value {
	v := p.fn.NewValue(name, typ, ir.ValueInstr)
	p.locals[name] = v
	return v
}

// getGlobal returns the Value for a @name reference, reusing the same
// pointer across every mention so two references to the same global
// compare equal by reference (ir.SamePointer).
func (p *parser) getGlobal(name string) *ir.Value {
	if v, ok := p.globals[name]; ok {
		return v
	}
	v := &ir.Value{Name: name, Kind: ir.ValueGlobal}
	p.globals[name] = v
	return v
}
