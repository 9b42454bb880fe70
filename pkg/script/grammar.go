// Package script parses and executes the call scripts produced by package
// codegen. The script language is a closed subset of python-escpos usage:
// imports, a printer binding, the five printer calls, the image
// materialization idiom, and the output capture. Scripts are never executed
// as code; the interpreter dispatches only the calls named in the grammar,
// so there is no sandboxing concern.
package script

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// ScriptLexer defines the lexical structure of generated call scripts:
// Python-style comments, single-quoted strings, identifiers, integers, and
// the handful of punctuation the call grammar needs.
var ScriptLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "String", Pattern: `'(\\.|[^'\\])*'`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Punct", Pattern: `[().,=]`},
	{Name: "Whitespace", Pattern: `[\s\t\n\r]+`},
})

// Script is the root node: a flat statement list.
type Script struct {
	Stmts []*Stmt `@@*`
}

// Stmt is one line of the script.
type Stmt struct {
	From   *FromStmt   `  @@`
	Import *ImportStmt `| @@`
	Assign *AssignStmt `| @@`
	Call   *RefExpr    `| @@`
}

// FromStmt is a from-import line, e.g. "from escpos.printer import Dummy".
type FromStmt struct {
	Module string   `"from" @(Ident ("." Ident)*)`
	Names  []string `"import" @Ident ("," @Ident)*`
}

// ImportStmt is a plain import line, e.g. "import base64".
type ImportStmt struct {
	Names []string `"import" @Ident ("," @Ident)*`
}

// AssignStmt binds a name, e.g. "p = Dummy()" or "escpos_output = p.output".
type AssignStmt struct {
	Name  string `@Ident "="`
	Value *Expr  `@@`
}

// Expr is a literal or a (possibly called) dotted reference.
type Expr struct {
	Str  *PyString `  @String`
	Int  *int      `| @Int`
	Bool *Boolean  `| @("True" | "False")`
	Ref  *RefExpr  `| @@`
}

// RefExpr is a dotted name with an optional call, e.g. "p.output",
// "Dummy()", or "p.set(align='center', bold=True)".
type RefExpr struct {
	Name   []string `@Ident ("." @Ident)*`
	Called bool     `( @"("`
	Args   []*Arg   `  ( @@ ("," @@)* )? ")" )?`
}

// Arg is one call argument, positional or keyword.
type Arg struct {
	Name  string `( @Ident "=" )?`
	Value *Expr  `@@`
}

// PyString captures a single-quoted string literal, resolving the escapes
// the code generator emits (backslash, quote, newline).
type PyString string

func (s *PyString) Capture(values []string) error {
	raw := values[0]
	raw = raw[1 : len(raw)-1]
	var b strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\\' && i+1 < len(raw) {
			i++
			switch raw[i] {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(raw[i])
			}
		} else {
			b.WriteByte(raw[i])
		}
	}
	*s = PyString(b.String())
	return nil
}

// Boolean captures True/False keywords.
type Boolean bool

func (b *Boolean) Capture(values []string) error {
	*b = values[0] == "True"
	return nil
}

// Parser parses call scripts into their AST.
type Parser struct {
	parser *participle.Parser[Script]
}

// NewParser creates a new call-script parser instance.
func NewParser() (*Parser, error) {
	parser, err := participle.Build[Script](
		participle.Lexer(ScriptLexer),
		participle.Elide("Comment", "Whitespace"),
		participle.UseLookahead(2),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}
	return &Parser{parser: parser}, nil
}

// Parse parses a script from a reader.
func (p *Parser) Parse(r io.Reader) (*Script, error) {
	script, err := p.parser.Parse("", r)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return script, nil
}

// ParseString parses a script from a string.
func (p *Parser) ParseString(input string) (*Script, error) {
	script, err := p.parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return script, nil
}

// ParseFile parses a script from a file path.
func (p *Parser) ParseFile(filename string) (*Script, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return p.Parse(file)
}
