package lexer

import "strconv"

// Position is a location in a source file: the line and column a
// diagnostic should point at, plus the byte offset that Before and After
// use to order two positions.
type Position struct {
	Filename string
	Line     int
	Column   int // 1-based, counted in bytes, not runes
	Offset   int // 0-based byte offset from the start of the file
}

func (p Position) String() string {
	return p.Filename + ":" + strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// IsValid reports whether p carries a real line number, as opposed to
// the zero Position used for synthetic/builtin entities.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Before reports whether p comes strictly earlier in the file than other.
func (p Position) Before(other Position) bool {
	return p.Offset < other.Offset
}

// After reports whether p comes strictly later in the file than other.
func (p Position) After(other Position) bool {
	return p.Offset > other.Offset
}

// TokenKind represents the type of a token.
//
// DESIGN CHOICE: We use an int-based enum (via iota) rather than strings because:
// 1. Faster comparisons (integer vs string comparison)
// 2. Less memory (1 int vs string pointer + length + data)
// 3. Type safety (compiler catches typos)
// 4. Easy to add new token kinds without breaking existing code
type TokenKind int

// Token kind enumeration, grouped the way the reference grammar groups them:
// end-of-file, keywords, punctuation/operators, the identifier, and the
// literal kinds (one per numeric radix plus the non-numeric literals), and
// three "bad" kinds (string, char, number) so the lexer can report a
// malformed literal as a token instead of aborting the scan.
const (
	EOF TokenKind = iota

	// keywords
	Module
	Import
	Opaque
	Struct
	Union
	Enum
	Typedef
	If
	Else
	While
	Do
	For
	Switch
	Case
	Default
	Break
	Continue
	Return
	Asm
	Cast
	Sizeof
	True
	False
	Null

	// primitive type keywords
	Void
	Ubyte
	Byte
	Char
	Ushort
	Short
	Uint
	Int
	Wchar
	Ulong
	Long
	Float
	Double
	Bool

	// qualifiers
	Const
	Volatile

	// punctuation and operators
	Semi
	Comma
	LParen
	RParen
	LSquare
	RSquare
	LBrace
	RBrace
	Dot
	Arrow
	Inc
	Dec
	Star
	Amp
	Plus
	Minus
	Bang
	Tilde
	Slash
	Percent
	LShift
	ARShift
	LRShift
	Spaceship
	LAngle
	RAngle
	LtEq
	GtEq
	Eq
	Neq
	Bar
	Caret
	LAnd
	LOr
	Question
	Colon
	Assign
	MulAssign
	DivAssign
	ModAssign
	AddAssign
	SubAssign
	LShiftAssign
	ARShiftAssign
	LRShiftAssign
	AndAssign
	XorAssign
	OrAssign
	LAndAssign
	LOrAssign
	Scope

	// identifier
	Ident

	// literals
	LitString
	LitWstring
	LitChar
	LitWchar
	LitInt0
	LitIntB
	LitIntO
	LitIntD
	LitIntH
	LitFloat

	// malformed literals, kept as tokens so the lexer can recover and
	// report several lexical errors from a single pass instead of aborting
	BadString
	BadChar
	BadNumber
)

// Token is a single lexical token. Value carries the payload for tokens
// whose kind alone is not enough information (identifiers, literals, bad
// tokens); keyword and punctuation tokens leave it empty.
type Token struct {
	Kind     TokenKind
	Value    string
	Position Position
}

func (t Token) String() string {
	if t.Value == "" {
		return t.Kind.String() + " at " + t.Position.String()
	}
	return t.Kind.String() + "(" + t.Value + ") at " + t.Position.String()
}

var kindNames = map[TokenKind]string{
	EOF: "EOF", Module: "module", Import: "import", Opaque: "opaque",
	Struct: "struct", Union: "union", Enum: "enum", Typedef: "typedef",
	If: "if", Else: "else", While: "while", Do: "do", For: "for",
	Switch: "switch", Case: "case", Default: "default", Break: "break",
	Continue: "continue", Return: "return", Asm: "asm", Cast: "cast",
	Sizeof: "sizeof", True: "true", False: "false", Null: "null",
	Void: "void", Ubyte: "ubyte", Byte: "byte", Char: "char", Ushort: "ushort",
	Short: "short", Uint: "uint", Int: "int", Wchar: "wchar", Ulong: "ulong",
	Long: "long", Float: "float", Double: "double", Bool: "bool",
	Const: "const", Volatile: "volatile",
	Semi: ";", Comma: ",", LParen: "(", RParen: ")", LSquare: "[",
	RSquare: "]", LBrace: "{", RBrace: "}", Dot: ".", Arrow: "->",
	Inc: "++", Dec: "--", Star: "*", Amp: "&", Plus: "+", Minus: "-",
	Bang: "!", Tilde: "~", Slash: "/", Percent: "%", LShift: "<<",
	ARShift: ">>", LRShift: ">>>", Spaceship: "<=>", LAngle: "<", RAngle: ">",
	LtEq: "<=", GtEq: ">=", Eq: "==", Neq: "!=", Bar: "|", Caret: "^",
	LAnd: "&&", LOr: "||", Question: "?", Colon: ":", Assign: "=",
	MulAssign: "*=", DivAssign: "/=", ModAssign: "%=", AddAssign: "+=",
	SubAssign: "-=", LShiftAssign: "<<=", ARShiftAssign: ">>=",
	LRShiftAssign: ">>>=", AndAssign: "&=", XorAssign: "^=", OrAssign: "|=",
	LAndAssign: "&&=", LOrAssign: "||=", Scope: "::",
	Ident: "identifier",
	LitString: "string literal", LitWstring: "wstring literal",
	LitChar: "char literal", LitWchar: "wchar literal",
	LitInt0: "integer literal", LitIntB: "binary literal",
	LitIntO: "octal literal", LitIntD: "decimal literal",
	LitIntH: "hex literal", LitFloat: "float literal",
	BadString: "malformed string literal", BadChar: "malformed char literal",
	BadNumber: "malformed numeric literal",
}

func (k TokenKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// keywords maps the reserved words to their token kinds. Anything not in
// this table that lexes as an identifier-shaped run of characters is an
// Ident.
var keywords = map[string]TokenKind{
	"module": Module, "import": Import, "opaque": Opaque, "struct": Struct,
	"union": Union, "enum": Enum, "typedef": Typedef, "if": If, "else": Else,
	"while": While, "do": Do, "for": For, "switch": Switch, "case": Case,
	"default": Default, "break": Break, "continue": Continue, "return": Return,
	"asm": Asm, "cast": Cast, "sizeof": Sizeof, "true": True, "false": False,
	"null": Null, "void": Void, "ubyte": Ubyte, "byte": Byte, "char": Char,
	"ushort": Ushort, "short": Short, "uint": Uint, "int": Int, "wchar": Wchar,
	"ulong": Ulong, "long": Long, "float": Float, "double": Double,
	"bool": Bool, "const": Const, "volatile": Volatile,
}

// LookupKeyword reports the keyword kind for an identifier-shaped lexeme,
// or Ident if it is not reserved.
func LookupKeyword(s string) TokenKind {
	if k, ok := keywords[s]; ok {
		return k
	}
	return Ident
}

// IsTypeKeyword reports whether the token kind is one of the primitive
// type keywords (void..bool).
func (k TokenKind) IsTypeKeyword() bool {
	return k >= Void && k <= Bool
}

// IsLiteral reports whether the token kind is a (possibly malformed)
// literal kind.
func (k TokenKind) IsLiteral() bool {
	return k >= LitString && k <= BadNumber
}

// IsIntLiteral reports whether the token kind is one of the five integer
// radix kinds (the lone zero, binary, octal, decimal, and hex forms).
func (k TokenKind) IsIntLiteral() bool {
	return k >= LitInt0 && k <= LitIntH
}
