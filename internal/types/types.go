// Package types implements the static type system: keyword primitive
// types, cv-qualified types, pointers, arrays, function-pointer types,
// named references into the symbol table, and the anonymous tuple type of
// an aggregate initializer, along with the predicates and conversion/merge
// rules the type checker needs.
//
// DESIGN CHOICE: Type is an interface, one concrete struct per variant,
// matching the teacher's types package shape (interface + one struct per
// kind, pattern-matched via type switch) rather than a single struct with
// a discriminant field.
package types

import (
	"fmt"
	"strings"
)

// Type is implemented by every type variant.
type Type interface {
	String() string
	// Equals is exact structural/nominal identity: same keyword kind, same
	// cv-qualification, same pointee/element/params, same aggregate name.
	Equals(other Type) bool
	kind() Kind
}

// Kind discriminates the type variants for the predicate helpers below.
type Kind int

const (
	KindInvalid Kind = iota
	KindKeyword
	KindQualified
	KindPointer
	KindArray
	KindFuncPtr
	KindReference
	KindAggregate
)

// Keyword enumerates the primitive keyword types.
type Keyword int

const (
	KwVoid Keyword = iota
	KwUbyte
	KwByte
	KwChar
	KwUshort
	KwShort
	KwUint
	KwInt
	KwWchar
	KwUlong
	KwLong
	KwFloat
	KwDouble
	KwBool
)

var keywordNames = map[Keyword]string{
	KwVoid: "void", KwUbyte: "ubyte", KwByte: "byte", KwChar: "char",
	KwUshort: "ushort", KwShort: "short", KwUint: "uint", KwInt: "int",
	KwWchar: "wchar", KwUlong: "ulong", KwLong: "long", KwFloat: "float",
	KwDouble: "double", KwBool: "bool",
}

func (k Keyword) String() string { return keywordNames[k] }

// KeywordType is a primitive type named by a reserved keyword.
type KeywordType struct{ Keyword Keyword }

func (t *KeywordType) String() string         { return t.Keyword.String() }
func (t *KeywordType) kind() Kind             { return KindKeyword }
func (t *KeywordType) Equals(other Type) bool {
	o, ok := other.(*KeywordType)
	return ok && o.Keyword == t.Keyword
}

// QualifiedType wraps a base type with const and/or volatile. Qualifiers
// are flattened exactly one layer deep: a qualified-of-qualified type is
// never constructed (applying const to an already-const type is a no-op,
// matching the reference type system's single-level cv model).
type QualifiedType struct {
	Base     Type
	Const    bool
	Volatile bool
}

func (t *QualifiedType) String() string {
	var prefix []string
	if t.Const {
		prefix = append(prefix, "const")
	}
	if t.Volatile {
		prefix = append(prefix, "volatile")
	}
	return strings.Join(prefix, " ") + " " + t.Base.String()
}

func (t *QualifiedType) kind() Kind { return KindQualified }

func (t *QualifiedType) Equals(other Type) bool {
	o, ok := other.(*QualifiedType)
	return ok && t.Const == o.Const && t.Volatile == o.Volatile && t.Base.Equals(o.Base)
}

// Qualify wraps base, flattening repeated qualification into one layer and
// collapsing to the base type if neither qualifier ends up set.
func Qualify(base Type, isConst, isVolatile bool) Type {
	if q, ok := base.(*QualifiedType); ok {
		base = q.Base
		isConst = isConst || q.Const
		isVolatile = isVolatile || q.Volatile
	}
	if !isConst && !isVolatile {
		return base
	}
	return &QualifiedType{Base: base, Const: isConst, Volatile: isVolatile}
}

// PointerType is a pointer to another type.
type PointerType struct{ Pointee Type }

func (t *PointerType) String() string { return t.Pointee.String() + " *" }
func (t *PointerType) kind() Kind     { return KindPointer }
func (t *PointerType) Equals(other Type) bool {
	o, ok := other.(*PointerType)
	return ok && t.Pointee.Equals(o.Pointee)
}

// ArrayType is a fixed-size array of Length elements of ElementType.
// Length < 0 marks an incomplete array (size not yet known, e.g. the
// element type of an array-of-unknown-bound parameter).
type ArrayType struct {
	ElementType Type
	Length      int64
}

func (t *ArrayType) String() string {
	if t.Length < 0 {
		return fmt.Sprintf("%s[]", t.ElementType.String())
	}
	return fmt.Sprintf("%s[%d]", t.ElementType.String(), t.Length)
}
func (t *ArrayType) kind() Kind { return KindArray }
func (t *ArrayType) Equals(other Type) bool {
	o, ok := other.(*ArrayType)
	return ok && t.Length == o.Length && t.ElementType.Equals(o.ElementType)
}

// FuncPtrType is a pointer-to-function type: structural, matched by
// parameter types (positionally) and return type, never by name.
type FuncPtrType struct {
	ReturnType Type
	ParamTypes []Type
}

func (t *FuncPtrType) String() string {
	params := make([]string, len(t.ParamTypes))
	for i, p := range t.ParamTypes {
		params[i] = p.String()
	}
	return fmt.Sprintf("%s (*)(%s)", t.ReturnType.String(), strings.Join(params, ", "))
}
func (t *FuncPtrType) kind() Kind { return KindFuncPtr }
func (t *FuncPtrType) Equals(other Type) bool {
	o, ok := other.(*FuncPtrType)
	if !ok || len(t.ParamTypes) != len(o.ParamTypes) || !t.ReturnType.Equals(o.ReturnType) {
		return false
	}
	for i, p := range t.ParamTypes {
		if !p.Equals(o.ParamTypes[i]) {
			return false
		}
	}
	return true
}

// AggregateKind distinguishes the five named-type forms a ReferenceType
// can name.
type AggregateKind int

const (
	AggStruct AggregateKind = iota
	AggUnion
	AggEnum
	AggOpaque
	AggTypedef
)

// ReferenceType names a symbol-table entry (a struct/union/enum/typedef/
// opaque type) by its fully scoped identifier, rather than embedding the
// aggregate's structure inline; the aggregate's actual fields/constants
// live in the symbol table entry this type points at (see internal/symtab).
type ReferenceType struct {
	ScopedName string
	Kind_      AggregateKind
	// Entry is set once stab construction resolves this reference to its
	// symbol-table entry; nil for a type expression not yet resolved.
	Entry interface{}
}

func (t *ReferenceType) String() string { return t.ScopedName }
func (t *ReferenceType) kind() Kind     { return KindReference }
func (t *ReferenceType) Equals(other Type) bool {
	o, ok := other.(*ReferenceType)
	return ok && t.ScopedName == o.ScopedName
}

// TupleType is the "aggregate" type variant of §3's data model: the
// anonymous type an aggregate-initialiser literal ([e1, e2, ...])
// evaluates to before it is checked against the array or struct type it
// initialises. Unlike a struct or union's backing symbol it names no
// symbol-table entry — a tuple exists only transiently, as the
// right-hand side of an initialisation.
type TupleType struct{ Elements []Type }

func (t *TupleType) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (t *TupleType) kind() Kind { return KindAggregate }
func (t *TupleType) Equals(other Type) bool {
	o, ok := other.(*TupleType)
	if !ok || len(t.Elements) != len(o.Elements) {
		return false
	}
	for i, e := range t.Elements {
		if !e.Equals(o.Elements[i]) {
			return false
		}
	}
	return true
}

// TupleInitializesArray reports whether a tuple literal may initialise an
// array type: equal arity against a sized array (an unsized array accepts
// any arity, adopting it), element-wise implicit convertibility.
func TupleInitializesArray(t *TupleType, to *ArrayType) bool {
	if to.Length >= 0 && int64(len(t.Elements)) != to.Length {
		return false
	}
	for _, e := range t.Elements {
		if !ImplicitlyConvertible(e, to.ElementType) {
			return false
		}
	}
	return true
}

// Singletons for the primitive keyword types.
var (
	Void   = &KeywordType{Keyword: KwVoid}
	Ubyte  = &KeywordType{Keyword: KwUbyte}
	Byte   = &KeywordType{Keyword: KwByte}
	Char   = &KeywordType{Keyword: KwChar}
	Ushort = &KeywordType{Keyword: KwUshort}
	Short  = &KeywordType{Keyword: KwShort}
	Uint   = &KeywordType{Keyword: KwUint}
	Int    = &KeywordType{Keyword: KwInt}
	Wchar  = &KeywordType{Keyword: KwWchar}
	Ulong  = &KeywordType{Keyword: KwUlong}
	Long   = &KeywordType{Keyword: KwLong}
	Float  = &KeywordType{Keyword: KwFloat}
	Double = &KeywordType{Keyword: KwDouble}
	Bool   = &KeywordType{Keyword: KwBool}
)

// Invalid marks a type-check failure where a Type value must still be
// returned so that checking can continue; every predicate below except
// IsComplete reports false for it, and ImplicitlyConvertible never
// accepts it on either side.
var Invalid Type = &invalidType{}

type invalidType struct{}

func (*invalidType) String() string   { return "<invalid>" }
func (*invalidType) kind() Kind       { return KindInvalid }
func (*invalidType) Equals(Type) bool { return false }

// stripQualifiers peels off a QualifiedType wrapper, if any.
func stripQualifiers(t Type) Type {
	if q, ok := t.(*QualifiedType); ok {
		return q.Base
	}
	return t
}

func keywordOf(t Type) (Keyword, bool) {
	kw, ok := stripQualifiers(t).(*KeywordType)
	if !ok {
		return 0, false
	}
	return kw.Keyword, true
}

// IsBoolean reports whether t is (possibly cv-qualified) bool.
func IsBoolean(t Type) bool {
	kw, ok := keywordOf(t)
	return ok && kw == KwBool
}

// IsIntegral reports whether t is one of the integer keyword kinds.
func IsIntegral(t Type) bool {
	kw, ok := keywordOf(t)
	if !ok {
		return false
	}
	switch kw {
	case KwUbyte, KwByte, KwChar, KwUshort, KwShort, KwUint, KwInt, KwWchar, KwUlong, KwLong:
		return true
	default:
		return false
	}
}

// IsSigned reports whether t is a signed integer keyword kind.
func IsSigned(t Type) bool {
	kw, ok := keywordOf(t)
	if !ok {
		return false
	}
	switch kw {
	case KwByte, KwShort, KwInt, KwLong:
		return true
	default:
		return false
	}
}

// IsUnsigned reports whether t is an unsigned integer or char-family kind.
func IsUnsigned(t Type) bool {
	return IsIntegral(t) && !IsSigned(t)
}

// IsFloating reports whether t is float or double.
func IsFloating(t Type) bool {
	kw, ok := keywordOf(t)
	return ok && (kw == KwFloat || kw == KwDouble)
}

// IsNumeric reports whether t is integral or floating.
func IsNumeric(t Type) bool { return IsIntegral(t) || IsFloating(t) }

// IsPointer reports whether t is a pointer type.
func IsPointer(t Type) bool {
	_, ok := stripQualifiers(t).(*PointerType)
	return ok
}

// IsArray reports whether t is an array type.
func IsArray(t Type) bool {
	_, ok := stripQualifiers(t).(*ArrayType)
	return ok
}

// IsCompound reports whether t is (ignoring cv qualification) a struct or
// union reference, i.e. a type whose fields a member access can name.
func IsCompound(t Type) bool {
	u := stripQualifiers(t)
	if ref, ok := u.(*ReferenceType); ok {
		return ref.Kind_ == AggStruct || ref.Kind_ == AggUnion
	}
	return false
}

// IsSwitchable reports whether t may be the controlling expression type of
// a switch statement: integral, char-family, or enum.
func IsSwitchable(t Type) bool {
	if IsIntegral(t) {
		return true
	}
	if ref, ok := stripQualifiers(t).(*ReferenceType); ok {
		return ref.Kind_ == AggEnum
	}
	return false
}

// IsComplete reports whether t has a known size: incomplete forms are
// void, an opaque type with no concrete definition yet bound, and an
// array of unknown length.
func IsComplete(t Type) bool {
	u := stripQualifiers(t)
	if kw, ok := u.(*KeywordType); ok {
		return kw.Keyword != KwVoid
	}
	if arr, ok := u.(*ArrayType); ok {
		return arr.Length >= 0 && IsComplete(arr.ElementType)
	}
	if ref, ok := u.(*ReferenceType); ok {
		return ref.Kind_ != AggOpaque
	}
	return true
}

// rank orders integral keyword kinds by conversion rank (narrower to
// wider); used by the implicit-conversion and usual-arithmetic-merge
// rules below.
var integralRank = map[Keyword]int{
	KwUbyte: 1, KwByte: 1, KwChar: 1,
	KwUshort: 2, KwShort: 2, KwWchar: 2,
	KwUint: 3, KwInt: 3,
	KwUlong: 4, KwLong: 4,
}

// ImplicitlyConvertible reports whether a value of type from may be used
// where a value of type to is expected without an explicit cast:
// identical types, integral widening (never narrowing), integer-to-float
// promotion, and float-to-double promotion are all implicit; anything
// that loses information (narrowing, float-to-integral, pointer
// reinterpretation) requires an explicit cast.
func ImplicitlyConvertible(from, to Type) bool {
	if from.Equals(to) {
		return true
	}
	fk, fok := keywordOf(from)
	tk, tok := keywordOf(to)
	if fok && tok {
		if IsIntegral(from) && IsIntegral(to) {
			return IsSigned(from) == IsSigned(to) && integralRank[tk] >= integralRank[fk]
		}
		if IsIntegral(from) && IsFloating(to) {
			return true
		}
		if fk == KwFloat && tk == KwDouble {
			return true
		}
		return false
	}
	// pointer-to-void is implicitly convertible in either direction
	fp, fpok := stripQualifiers(from).(*PointerType)
	tp, tpok := stripQualifiers(to).(*PointerType)
	if fpok && tpok {
		if kw, ok := keywordOf(fp.Pointee); ok && kw == KwVoid {
			return true
		}
		if kw, ok := keywordOf(tp.Pointee); ok && kw == KwVoid {
			return true
		}
	}
	return false
}

// Castable reports whether an explicit `cast<to>(expr)` of type from to
// to is admissible: anything implicitly convertible, plus integral<->
// floating narrowing, pointer<->pointer, and pointer<->integral
// reinterpretation.
func Castable(from, to Type) bool {
	if ImplicitlyConvertible(from, to) || ImplicitlyConvertible(to, from) {
		return true
	}
	if IsNumeric(from) && IsNumeric(to) {
		return true
	}
	if IsPointer(from) && IsPointer(to) {
		return true
	}
	if (IsPointer(from) && IsIntegral(to)) || (IsIntegral(from) && IsPointer(to)) {
		return true
	}
	return false
}

// Merge computes the usual-arithmetic-conversion result type of two
// numeric operand types (the type a binary arithmetic/comparison/ternary
// expression's operands are both implicitly converted to): floating
// dominates integral, double dominates float, and among integrals the
// wider, and between equal width the unsigned, kind wins. Returns
// Invalid if either operand is not numeric.
func Merge(a, b Type) Type {
	if !IsNumeric(a) || !IsNumeric(b) {
		return Invalid
	}
	if IsFloating(a) || IsFloating(b) {
		ak, _ := keywordOf(a)
		bk, _ := keywordOf(b)
		if ak == KwDouble || bk == KwDouble {
			return Double
		}
		return Float
	}
	ak, _ := keywordOf(a)
	bk, _ := keywordOf(b)
	ra, rb := integralRank[ak], integralRank[bk]
	wider, widerKw := ak, ak
	if rb > ra {
		wider, widerKw = bk, bk
	}
	_ = wider
	if ra == rb && (IsUnsigned(a) != IsUnsigned(b)) {
		if IsUnsigned(a) {
			widerKw = ak
		} else {
			widerKw = bk
		}
	}
	return &KeywordType{Keyword: widerKw}
}

// Dereferenced returns the pointee/element type of a pointer or array
// type, and false if t is neither.
func Dereferenced(t Type) (Type, bool) {
	switch u := stripQualifiers(t).(type) {
	case *PointerType:
		return u.Pointee, true
	case *ArrayType:
		return u.ElementType, true
	default:
		return Invalid, false
	}
}

// ArrayElement returns the element type of an array type.
func ArrayElement(t Type) (Type, bool) {
	arr, ok := stripQualifiers(t).(*ArrayType)
	if !ok {
		return Invalid, false
	}
	return arr.ElementType, true
}

// CopyCV re-applies from's cv-qualification onto to, used when a
// conversion or member access must preserve constness/volatility.
func CopyCV(from, to Type) Type {
	q, ok := from.(*QualifiedType)
	if !ok {
		return to
	}
	return Qualify(to, q.Const, q.Volatile)
}

// Sizeof reports the type's size in bytes, per the fixed-width layout the
// keyword kinds are defined to have; array sizes are computed from their
// element sizes. A named reference (struct/union/enum/typedef) reports
// (0, true): its size is not computed here. Returns (0, false) for
// incomplete types, where sizeof is a compile error rather than a value.
func Sizeof(t Type) (int64, bool) {
	if !IsComplete(t) {
		return 0, false
	}
	switch u := stripQualifiers(t).(type) {
	case *KeywordType:
		return keywordSize[u.Keyword], true
	case *PointerType, *FuncPtrType:
		return 8, true
	case *ArrayType:
		elemSize, ok := Sizeof(u.ElementType)
		if !ok {
			return 0, false
		}
		return elemSize * u.Length, true
	case *ReferenceType:
		return 0, true // size resolved via the aggregate's symbol-table entry
	default:
		return 0, false
	}
}

var keywordSize = map[Keyword]int64{
	KwVoid: 0, KwUbyte: 1, KwByte: 1, KwChar: 1, KwUshort: 2, KwShort: 2,
	KwUint: 4, KwInt: 4, KwWchar: 4, KwUlong: 8, KwLong: 8, KwFloat: 4,
	KwDouble: 8, KwBool: 1,
}
