package stab

import (
	"math"

	"github.com/hassan/tcompiler/internal/lexer"
	"github.com/hassan/tcompiler/internal/parser/ast"
	"github.com/hassan/tcompiler/internal/symtab"
)

// constState tracks the three-color DFS state used to detect a
// dependency cycle among an enum's constants (a constant whose value
// expression refers, directly or transitively, back to itself).
type constState int

const (
	stateUnvisited constState = iota
	stateVisiting
	stateDone
)

// stageCResolveEnumConstants is buildStab's enum-constant value solver:
// each constant's value is either explicit (evaluated from a constant
// integer expression that may reference other constants of the same
// enum), or implicit (the previous constant's value plus one, zero for
// the first constant) — resolved via per-constant DFS so that forward
// references within the enum still work, with a cycle reported as an
// error instead of a stack overflow.
func (b *Builder) stageCResolveEnumConstants(mod *Module) {
	for _, decl := range mod.AllDecls() {
		ed, ok := decl.(*ast.EnumDecl)
		if !ok {
			continue
		}
		b.resolveOneEnum(mod, ed)
	}
}

// enumValue is one enum constant's resolved value: a 64-bit bit pattern
// plus the signedness flag stage C's successor/literal rules assign it,
// before stage 3's per-enum sign normalisation unifies every constant's
// flag.
type enumValue struct {
	bits   int64
	signed bool
}

func (b *Builder) resolveOneEnum(mod *Module, ed *ast.EnumDecl) {
	order := make([]string, len(ed.Constants))
	byName := map[string]ast.EnumConstant{}
	for i, c := range ed.Constants {
		order[i] = c.Name
		byName[c.Name] = c
	}

	values := map[string]enumValue{}
	state := map[string]constState{}

	var resolve func(name string, pos lexer.Position) (enumValue, bool)
	resolve = func(name string, pos lexer.Position) (enumValue, bool) {
		if v, ok := values[name]; ok {
			return v, true
		}
		if state[name] == stateVisiting {
			b.bag.Errorf(pos, "enum constant '%s' depends on its own value", name)
			return enumValue{}, false
		}
		c, ok := byName[name]
		if !ok {
			return enumValue{}, false
		}
		state[name] = stateVisiting

		var val enumValue
		var valOk bool
		if c.Value == nil {
			idx := indexOf(order, name)
			if idx == 0 {
				val, valOk = enumValue{bits: 0, signed: false}, true
			} else {
				prev, ok := resolve(order[idx-1], ed.Pos())
				if !ok {
					valOk = false
				} else if prev.signed && prev.bits == -1 {
					// previous + 1 on signed -1 becomes unsigned 0
					val, valOk = enumValue{bits: 0, signed: false}, true
				} else if prev.bits == math.MaxInt64 {
					// an implicit successor never climbs past the signed
					// range on its own; a literal initialiser may still
					// name a larger unsigned value explicitly.
					b.bag.Errorf(pos, "enum constant '%s' overflows past the maximum representable value", name)
					valOk = false
				} else {
					val, valOk = enumValue{bits: prev.bits + 1, signed: prev.signed}, true
				}
			}
		} else {
			val, valOk = b.evalEnumExpr(c.Value, resolve)
		}

		state[name] = stateDone
		if !valOk {
			return enumValue{}, false
		}
		values[name] = val
		return val, true
	}

	for _, c := range ed.Constants {
		pos := ed.Pos()
		if c.Value != nil {
			pos = c.Value.Pos()
		}
		resolve(c.Name, pos)
	}

	// Stage 3: sign normalisation. If any constant came out signed, every
	// constant in the enum must be representable as signed 64-bit (i.e.
	// not exceed LONG_MAX when read as unsigned); the whole enum's
	// backingType becomes signed (long), otherwise unsigned (ulong).
	anySigned := false
	for _, c := range ed.Constants {
		if v, ok := values[c.Name]; ok && v.signed {
			anySigned = true
			break
		}
	}
	if anySigned {
		for _, c := range ed.Constants {
			v, ok := values[c.Name]
			if !ok {
				continue
			}
			if !v.signed && uint64(v.bits) > math.MaxInt64 {
				pos := ed.Pos()
				if c.Value != nil {
					pos = c.Value.Pos()
				}
				b.bag.Errorf(pos, "enum constant '%s' value %d overflows a signed 64-bit integer", c.Name, uint64(v.bits))
				continue
			}
			v.signed = true
			values[c.Name] = v
		}
	}

	enumSym := mod.Scope.LookupLocal(ed.Name)
	if enumSym != nil {
		enumSym.Signed = anySigned
	}
	for _, c := range ed.Constants {
		v := values[c.Name]
		sym := &symtab.Symbol{
			Name: c.Name, Kind: symtab.SymbolEnumConst, Pos: ed.Pos(),
			Constant: true, Value: v.bits, Signed: v.signed,
		}
		if enumSym != nil {
			sym.Type = enumSym.Type
		}
		if err := mod.Scope.Define(sym); err != nil {
			b.bag.Errorf(ed.Pos(), "%s", err)
		}
	}
}

// evalEnumExpr evaluates the restricted constant-integer-expression
// grammar an enum value may use: literals, a sibling constant, grouping,
// unary minus and ~, and +, -, |, &, ^, << combining them (the shapes
// the reference grammar's bit-flag-style enums actually need). A literal
// is always an unsigned magnitude; negation always yields a signed
// result; a binary combination is signed if either operand is.
func (b *Builder) evalEnumExpr(e ast.Expr, resolve func(string, lexer.Position) (enumValue, bool)) (enumValue, bool) {
	switch v := e.(type) {
	case *ast.LiteralExpr:
		n, ok := parseIntLiteral(v)
		return enumValue{bits: n, signed: false}, ok
	case *ast.IdentifierExpr:
		return resolve(v.Name, v.Pos())
	case *ast.GroupingExpr:
		return b.evalEnumExpr(v.Inner, resolve)
	case *ast.UnaryExpr:
		inner, ok := b.evalEnumExpr(v.Operand, resolve)
		if !ok {
			return enumValue{}, false
		}
		switch v.Operator.Kind {
		case lexer.Minus:
			return enumValue{bits: -inner.bits, signed: true}, true
		case lexer.Tilde:
			return enumValue{bits: ^inner.bits, signed: inner.signed}, true
		default:
			return enumValue{}, false
		}
	case *ast.BinaryExpr:
		l, lok := b.evalEnumExpr(v.Left, resolve)
		r, rok := b.evalEnumExpr(v.Right, resolve)
		if !lok || !rok {
			return enumValue{}, false
		}
		signed := l.signed || r.signed
		switch v.Operator.Kind {
		case lexer.Plus:
			return enumValue{bits: l.bits + r.bits, signed: signed}, true
		case lexer.Minus:
			return enumValue{bits: l.bits - r.bits, signed: signed}, true
		case lexer.Bar:
			return enumValue{bits: l.bits | r.bits, signed: signed}, true
		case lexer.Amp:
			return enumValue{bits: l.bits & r.bits, signed: signed}, true
		case lexer.Caret:
			return enumValue{bits: l.bits ^ r.bits, signed: signed}, true
		case lexer.LShift:
			return enumValue{bits: l.bits << uint(r.bits), signed: signed}, true
		default:
			return enumValue{}, false
		}
	default:
		return enumValue{}, false
	}
}

func indexOf(xs []string, x string) int {
	for i, v := range xs {
		if v == x {
			return i
		}
	}
	return -1
}
