package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenString(t *testing.T) {
	require.Equal(t, "identifier", IDENT.String())
	require.Equal(t, "**", DOUBLESTAR.String())
	require.Equal(t, "not in", NOT_IN.String())
	require.Equal(t, "yield", YIELD.String())
	// range markers have no name and fall back to the numeric form.
	require.Contains(t, Token(maxToken).String(), "token(")
}

func TestLookupKw(t *testing.T) {
	for tok := kwStart + 1; tok < kwEnd; tok++ {
		if tok == NOT_IN || tok == IS_NOT {
			continue
		}
		val := LookupKw(tok.String())
		require.Equal(t, tok, val)
	}
	require.Equal(t, IDENT, LookupKw("notakeyword"))
}

func TestLookupPunct(t *testing.T) {
	for tok := punctStart + 1; tok < punctEnd; tok++ {
		if tok == augopStart || tok == augopEnd {
			continue // range markers have no source text
		}
		val := LookupPunct(tok.String())
		require.Equal(t, tok, val)
	}
	require.Equal(t, ILLEGAL, LookupPunct("??"))
}

func TestIsAugBinop(t *testing.T) {
	require.True(t, PLUS_EQ.IsAugBinop())
	require.True(t, STARSTAR_EQ.IsAugBinop())
	require.False(t, PLUS.IsAugBinop())
	require.False(t, IDENT.IsAugBinop())
}

func TestIsBinop(t *testing.T) {
	require.True(t, PLUS.IsBinop())
	require.True(t, AND.IsBinop())
	require.False(t, NOT.IsBinop())
}

func TestIsUnop(t *testing.T) {
	require.True(t, NOT.IsUnop())
	require.True(t, MINUS.IsUnop())
	require.False(t, PLUS_EQ.IsUnop())
}

func TestIsAtom(t *testing.T) {
	require.True(t, IDENT.IsAtom())
	require.True(t, NONE.IsAtom())
	require.False(t, LPAREN.IsAtom())
}

func TestLiteral(t *testing.T) {
	val := Value{Raw: "ident", String: "string", Int: 1, Float: 2}

	require.Equal(t, "ident", IDENT.Literal(val))
	require.Equal(t, `"string"`, STRING.Literal(val))
	require.Equal(t, "1", INT.Literal(val))
	require.Equal(t, "2", FLOAT.Literal(val))
	require.Equal(t, "", ILLEGAL.Literal(val))
}
