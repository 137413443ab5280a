package token

// Kind identifies the lexical category of a Token. It is a closed,
// comparable enum rather than the teacher's string-keyed TokenType so that
// switches over it are exhaustiveness-checked by `go vet`'s unreachable
// analysis and table lookups stay O(1) without string hashing.
type Kind int

// The token vocabulary. Structural keywords get their own Kind (mirroring
// the teacher's distinct TokenType-per-keyword design in lexer/token.go) so
// the parser can switch on them directly instead of re-comparing literals.
const (
	ILLEGAL Kind = iota
	EOF

	// Literals
	IDENT    // identifiers and $-free bindings
	INT      // 123, 0x1F, 0o17, 0b101, 1_000
	FLOAT    // 3.14, 1e10, 2.5e-3
	STRING   // "..." non-interpolated string literal
	CHAR     // 'a'
	RAWIDENT // `weird ident` (escaped identifier), reserved for future use

	// String interpolation re-entrant markers (spec §4.1).
	STRING_START    // f" opening an interpolated string
	STRING_FRAGMENT // literal text between interpolation holes
	INTERP_START    // {
	INTERP_END      // } (resumes string scanning)
	STRING_END      // closing " of an interpolated string

	// Keywords
	LET
	VAR
	CONST
	FN
	RETURN
	IF
	ELSE
	MATCH
	WHILE
	FOR
	LOOP
	IN
	BREAK
	CONTINUE
	TRY
	CATCH
	THROW
	ASYNC
	AWAIT
	TRUE
	FALSE
	NIL
	STRUCT
	ENUM
	TRAIT
	IMPL
	IMPORT
	AS

	// Punctuation
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	COMMA
	SEMI
	COLON
	COLONCOLON // ::
	DOT
	DOTDOT    // .. exclusive range
	DOTDOTEQ  // ..= inclusive range
	ARROW     // ->
	FATARROW  // =>
	PIPE      // | (bitwise-or / lambda delimiter, disambiguated by parser)
	PIPEGT    // |> pipeline
	UNDERSCOR // _ wildcard / pipeline placeholder
	QUESTION  // ? try-operator

	// Operators (binary/unary; precedence lives in parser, not here)
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	CARET
	AMP
	AMPAMP
	PIPEPIPE
	BANG
	EQEQ
	BANGEQ
	LT
	LTEQ
	GT
	GTEQ
	SHL
	SHR
	ASSIGN
	PLUSEQ
	MINUSEQ
	STAREQ
	SLASHEQ
	SHLEQ
	SHREQ
)

var names = map[Kind]string{
	ILLEGAL: "ILLEGAL", EOF: "EOF",
	IDENT: "IDENT", INT: "INT", FLOAT: "FLOAT", STRING: "STRING", CHAR: "CHAR",
	RAWIDENT: "RAWIDENT",
	STRING_START: "STRING_START", STRING_FRAGMENT: "STRING_FRAGMENT",
	INTERP_START: "INTERP_START", INTERP_END: "INTERP_END", STRING_END: "STRING_END",
	LET: "let", VAR: "var", CONST: "const", FN: "fn", RETURN: "return",
	IF: "if", ELSE: "else", MATCH: "match", WHILE: "while", FOR: "for",
	LOOP: "loop", IN: "in", BREAK: "break", CONTINUE: "continue",
	TRY: "try", CATCH: "catch", THROW: "throw", ASYNC: "async", AWAIT: "await",
	TRUE: "true", FALSE: "false", NIL: "nil",
	STRUCT: "struct", ENUM: "enum", TRAIT: "trait", IMPL: "impl",
	IMPORT: "import", AS: "as",
	LPAREN: "(", RPAREN: ")", LBRACE: "{", RBRACE: "}",
	LBRACKET: "[", RBRACKET: "]", COMMA: ",", SEMI: ";", COLON: ":",
	COLONCOLON: "::", DOT: ".", DOTDOT: "..", DOTDOTEQ: "..=",
	ARROW: "->", FATARROW: "=>", PIPE: "|", PIPEGT: "|>",
	UNDERSCOR: "_", QUESTION: "?",
	PLUS: "+", MINUS: "-", STAR: "*", SLASH: "/", PERCENT: "%", CARET: "^",
	AMP: "&", AMPAMP: "&&", PIPEPIPE: "||", BANG: "!",
	EQEQ: "==", BANGEQ: "!=", LT: "<", LTEQ: "<=", GT: ">", GTEQ: ">=",
	SHL: "<<", SHR: ">>",
	ASSIGN: "=", PLUSEQ: "+=", MINUSEQ: "-=", STAREQ: "*=", SLASHEQ: "/=",
	SHLEQ: "<<=", SHREQ: ">>=",
}

// String renders a human-readable name for diagnostics.
func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}

	return "UNKNOWN"
}

// Keywords maps the reserved-word spelling to its Kind. Lexer keyword
// lookup happens after an identifier is fully scanned, exactly as the
// teacher's lookupIdent does in lexer/token.go.
var Keywords = map[string]Kind{
	"let": LET, "var": VAR, "const": CONST, "fn": FN, "return": RETURN,
	"if": IF, "else": ELSE, "match": MATCH, "while": WHILE, "for": FOR,
	"loop": LOOP, "in": IN, "break": BREAK, "continue": CONTINUE,
	"try": TRY, "catch": CATCH, "throw": THROW, "async": ASYNC, "await": AWAIT,
	"true": TRUE, "false": FALSE, "nil": NIL,
	"struct": STRUCT, "enum": ENUM, "trait": TRAIT, "impl": IMPL,
	"import": IMPORT, "as": AS,
}

// Token is a single lexical unit: a kind, the literal text it was scanned
// from, and the span it occupies. Kept a plain value type (not a pointer)
// since tokens are copied freely through peek buffers.
type Token struct {
	Kind    Kind
	Literal string
	Span    Span
}

// IsEOF reports whether this token terminates the stream.
func (t Token) IsEOF() bool { return t.Kind == EOF }
