package sexpr

import pc "github.com/prataprc/goparsec"

// ----------------------------------------------------------------------------
// Parser Combinator(s)
//
// This section defines the Parser Combinator for every token of the s-expression
// grammar: atoms (booleans, integers, floats, identifiers) and balanced parenthesised
// lists (the resulting tree is collapsed into Atom/List below).
// Reserved atom texts ("true", "false", "inf"/"nan" and their signed spellings) are tried
// ahead of the generic identifier token, since an OrdChoice commits to its first
// matching alternative.

var grammar = pc.NewAST("lispy_sexpr", 0)

var (
	pProgram = grammar.ManyUntil("program", nil, pSexpr, pc.End())

	pSexpr = grammar.OrdChoice("sexpr", nil, pList, pAtom)

	pList = grammar.And("list", nil,
		pLParen, grammar.Kleene("elements", nil, pSexpr), pRParen,
	)

	pAtom = grammar.OrdChoice("atom", nil, pBoolLit, pInfNanLit, pFloatLit, pIntLit, pIdent)

	// Word-boundary tokens, so that identifiers such as "truest" are not split after "true".
	pBoolLit = grammar.OrdChoice("bool", nil, pc.Token(`true\b`, "TRUE"), pc.Token(`false\b`, "FALSE"))

	// "inf"/"nan" and their signed spellings are reserved float constants, not identifiers.
	pInfNanLit = grammar.OrdChoice("inf_nan", nil,
		pc.Token(`\+inf\b`, "FLOAT"), pc.Token(`-inf\b`, "FLOAT"), pc.Token(`inf\b`, "FLOAT"),
		pc.Token(`\+nan\b`, "FLOAT"), pc.Token(`-nan\b`, "FLOAT"), pc.Token(`nan\b`, "FLOAT"),
	)

	// Float must be tried before Int, else the integer part of a float would be consumed
	// by the Int token first and leave the fractional part dangling.
	pFloatLit = pc.Token(
		`[+-]?(?:[0-9]+\.[0-9]*(?:[eE][+-]?[0-9]+)?|\.[0-9]+(?:[eE][+-]?[0-9]+)?|[0-9]+[eE][+-]?[0-9]+)\b`,
		"FLOAT",
	)
	pIntLit = pc.Token(`[+-]?[0-9]+\b`, "INT")

	pIdent = pc.Token(`[A-Za-z_][0-9a-zA-Z_]*`, "IDENT")

	pLParen = pc.Atom("(", "LPAREN")
	pRParen = pc.Atom(")", "RPAREN")
)
