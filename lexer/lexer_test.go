package lexer_test

import (
	"testing"

	"github.com/paiml/ruchy-sub009/lexer"
	"github.com/paiml/ruchy-sub009/token"
	"github.com/stretchr/testify/require"
)

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}

	return ks
}

func TestTokenizeArithmetic(t *testing.T) {
	toks, errs := lexer.TokenizeAll("40 + 2", "")
	require.Empty(t, errs)
	require.Equal(t, []token.Kind{token.INT, token.PLUS, token.INT, token.EOF}, kinds(toks))
	require.Equal(t, "40", toks[0].Literal)
	require.Equal(t, "2", toks[2].Literal)
}

func TestTokenizeNumberFormats(t *testing.T) {
	cases := map[string]string{
		"0x1F":   "0x1F",
		"0o17":   "0o17",
		"0b101":  "0b101",
		"1_000":  "1000",
		"3.14":   "3.14",
		"2.5e-3": "2.5e-3",
	}

	for src, want := range cases {
		toks, errs := lexer.TokenizeAll(src, "")
		require.Emptyf(t, errs, "source %q", src)
		require.Equal(t, want, toks[0].Literal, "source %q", src)
	}
}

func TestTokenizeKeywordsAndIdents(t *testing.T) {
	toks, errs := lexer.TokenizeAll("let x = fn", "")
	require.Empty(t, errs)
	require.Equal(t, []token.Kind{token.LET, token.IDENT, token.ASSIGN, token.FN, token.EOF}, kinds(toks))
}

func TestTokenizeStringEscapes(t *testing.T) {
	toks, errs := lexer.TokenizeAll(`"a\tb\n\u{41}"`, "")
	require.Empty(t, errs)
	require.Equal(t, token.STRING, toks[0].Kind)
	require.Equal(t, "a\tb\nA", toks[0].Literal)
}

func TestTokenizeUnterminatedStringRecovers(t *testing.T) {
	toks, errs := lexer.TokenizeAll(`"abc`, "")
	require.Len(t, errs, 1)
	require.Equal(t, lexer.UnterminatedString, errs[0].Kind)
	require.Equal(t, token.EOF, toks[len(toks)-1].Kind)
}

func TestTokenizeLineAndBlockComments(t *testing.T) {
	toks, errs := lexer.TokenizeAll("1 // comment\n/* block /* nested */ */ 2", "")
	require.Empty(t, errs)
	require.Equal(t, []token.Kind{token.INT, token.INT, token.EOF}, kinds(toks))
}

func TestTokenizeInterpolatedString(t *testing.T) {
	toks, errs := lexer.TokenizeAll(`f"hello {name}!"`, "")
	require.Empty(t, errs)
	require.Equal(t, []token.Kind{
		token.STRING_START,
		token.STRING_FRAGMENT,
		token.INTERP_START,
		token.IDENT,
		token.INTERP_END,
		token.STRING_FRAGMENT,
		token.STRING_END,
		token.EOF,
	}, kinds(toks))
	require.Equal(t, "hello ", toks[1].Literal)
	require.Equal(t, "name", toks[3].Literal)
	require.Equal(t, "!", toks[5].Literal)
}

func TestTokenizeNestedInterpolation(t *testing.T) {
	// Holes with no surrounding literal text emit no StringFragment token;
	// fragments are only produced for non-empty literal runs.
	toks, errs := lexer.TokenizeAll(`f"{f"{x}"}"`, "")
	require.Empty(t, errs)
	require.Equal(t, []token.Kind{
		token.STRING_START, token.INTERP_START,
		token.STRING_START, token.INTERP_START,
		token.IDENT,
		token.INTERP_END, token.STRING_END,
		token.INTERP_END, token.STRING_END,
		token.EOF,
	}, kinds(toks))
}

func TestTokenizeBraceInsideInterpolationHole(t *testing.T) {
	// { 1 } inside a hole is a block expression, not the hole's closer.
	toks, errs := lexer.TokenizeAll(`f"{ { 1 } }"`, "")
	require.Empty(t, errs)
	require.Equal(t, []token.Kind{
		token.STRING_START, token.INTERP_START,
		token.LBRACE, token.INT, token.RBRACE,
		token.INTERP_END, token.STRING_END,
		token.EOF,
	}, kinds(toks))
}

func TestTokenizeUTF8Identifiers(t *testing.T) {
	toks, errs := lexer.TokenizeAll("let café = 1", "")
	require.Empty(t, errs)
	require.Equal(t, "café", toks[1].Literal)
}

func TestTokenizeUnknownByteRecovers(t *testing.T) {
	toks, errs := lexer.TokenizeAll("1 @ 2", "")
	require.Len(t, errs, 1)
	require.Equal(t, lexer.UnknownCharacter, errs[0].Kind)
	require.Equal(t, []token.Kind{token.INT, token.ILLEGAL, token.INT, token.EOF}, kinds(toks))
}
