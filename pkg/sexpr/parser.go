package sexpr

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	pc "github.com/prataprc/goparsec"

	"lispy.dev/compiler/pkg/lispyerr"
)

// Parser turns lispy source text into a Program.
//
// It uses parser combinators (see grammar.go) to obtain a generic traversable parse
// tree, then walks that tree into Atom/List/Program values. It reads a few env-var
// feature flags for debugging, following goparsec's own debug conventions:
//   - PARSEC_DEBUG: verbose logging of which combinator matched
//   - EXPORT_AST:   writes a Graphviz rendering of the raw parse tree to DEBUG_FOLDER
//   - PRINT_AST:    pretty-prints the raw parse tree to stdout
type Parser struct{ reader io.Reader }

// NewParser returns a Parser that reads source text from r.
func NewParser(r io.Reader) Parser {
	return Parser{reader: r}
}

// Parse reads the whole of the underlying reader and parses it into a Program.
func (p *Parser) Parse() (prog *Program, err error) {
	content, err := io.ReadAll(p.reader)
	if err != nil {
		return nil, fmt.Errorf("cannot read source: %w", err)
	}

	// Grammar/lexer failures surface as panics from the underlying library on
	// malformed input in some goparsec versions; translate them into SyntaxError so
	// the pipeline stays fail-fast without leaking an implementation detail.
	defer func() {
		if r := recover(); r != nil {
			prog, err = nil, lispyerr.New(lispyerr.KindSyntax, "syntax error: %v", r)
		}
	}()

	root, ok := p.fromSource(content)
	if !ok || root == nil {
		return nil, lispyerr.New(lispyerr.KindSyntax, "failed to parse program: unexpected input")
	}

	return p.fromTree(root)
}

// ParseString is a convenience wrapper around Parse for in-memory source text.
func ParseString(source string) (*Program, error) {
	parser := NewParser(strings.NewReader(source))
	return parser.Parse()
}

// fromSource scans the textual input and returns the raw, library-native parse tree.
func (p *Parser) fromSource(source []byte) (pc.Queryable, bool) {
	if os.Getenv("PARSEC_DEBUG") != "" {
		grammar.SetDebug()
	}

	root, scanner := grammar.Parsewith(pProgram, pc.NewScanner(source))

	if os.Getenv("EXPORT_AST") != "" {
		if file, ferr := os.Create(fmt.Sprintf("%s/debug.sexpr.dot", os.Getenv("DEBUG_FOLDER"))); ferr == nil {
			defer file.Close()
			file.Write([]byte(grammar.Dotstring("\"lispy s-expression\"")))
		}
	}
	if os.Getenv("PRINT_AST") != "" {
		grammar.Prettyprint()
	}

	if root == nil {
		return nil, false
	}
	// Parsing succeeds only if the scanner reached end of input; any unconsumed
	// suffix means the grammar rejected (part of) the source.
	_, _, eof := scanner.Match(`^\s*$`)
	return root, eof
}

// fromTree walks the raw parse tree (rooted at the "program" node) into a Program.
func (p *Parser) fromTree(root pc.Queryable) (*Program, error) {
	if root.GetName() != "program" {
		return nil, lispyerr.New(lispyerr.KindSyntax, "expected node 'program', found %q", root.GetName())
	}

	body := []Node{}
	for _, child := range root.GetChildren() {
		node, err := p.handleSexpr(child)
		if err != nil {
			return nil, err
		}
		body = append(body, node)
	}

	return &Program{Body: body}, nil
}

// handleSexpr converts a single raw parse-tree node into an Atom or List.
func (p *Parser) handleSexpr(node pc.Queryable) (Node, error) {
	switch node.GetName() {
	case "list":
		return p.handleList(node)
	case "TRUE":
		return NewBoolAtom(true, Span{}), nil
	case "FALSE":
		return NewBoolAtom(false, Span{}), nil
	case "FLOAT":
		return p.handleFloat(node.GetValue())
	case "INT":
		return p.handleInt(node.GetValue())
	case "IDENT":
		return NewIdentAtom(node.GetValue(), Span{}), nil
	default:
		return nil, lispyerr.New(lispyerr.KindSyntax, "unrecognized node %q", node.GetName())
	}
}

func (p *Parser) handleList(node pc.Queryable) (Node, error) {
	children := node.GetChildren()
	if len(children) != 3 {
		return nil, lispyerr.New(lispyerr.KindSyntax, "unterminated list: expected '(' elements ')'")
	}

	elements := []Node{}
	for _, child := range children[1].GetChildren() {
		elem, err := p.handleSexpr(child)
		if err != nil {
			return nil, err
		}
		elements = append(elements, elem)
	}

	return NewList(elements, Span{}), nil
}

func (p *Parser) handleFloat(text string) (Node, error) {
	switch strings.ToLower(text) {
	case "inf", "+inf":
		return NewFloatAtom(math.Inf(1), Span{}), nil
	case "-inf":
		return NewFloatAtom(math.Inf(-1), Span{}), nil
	case "nan", "+nan", "-nan":
		return NewFloatAtom(math.NaN(), Span{}), nil
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, lispyerr.New(lispyerr.KindSyntax, "invalid float literal %q: %v", text, err)
	}
	return NewFloatAtom(v, Span{}), nil
}

func (p *Parser) handleInt(text string) (Node, error) {
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, lispyerr.New(lispyerr.KindSyntax, "invalid integer literal %q: %v", text, err)
	}
	return NewIntAtom(v, Span{}), nil
}
