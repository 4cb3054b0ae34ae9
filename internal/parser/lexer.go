package parser

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer maps the raw string tokens out for our AST definitions. Input is
// lowercased by the session before parsing, so keywords match one case.
// Ratio must come before Int so "4:1" is one token, and "roads" before
// "road" so the longer keyword wins.
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Ratio", Pattern: `\d+:\d+`},
	{Name: "Keyword", Pattern: `\b(?:start|roll|build|settlement|city|roads|road|discard|robber|steal|none|trade|for|port|with|buy|play|knight|monopoly|plenty|point|end|turn|game|undo|redo)\b`},
	{Name: "Ident", Pattern: `[a-zA-Z_]\w*`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
})

// Build creates our parser based on the struct tags in `ast.go`.
func Build() *participle.Parser[Command] {
	return participle.MustBuild[Command](
		participle.Lexer(Lexer),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)
}
