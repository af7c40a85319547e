// Package tmpl implements a small text template language for generating
// source code from a hierarchical argument context.
//
// A template is a sequence of string literals, variable paths and scopes.
// Rendering concatenates string literals verbatim and substitutes each
// variable with the value found at its path, or with nothing if the path is
// undefined. A scope writes its output only if every requires gate inside it
// holds, so optional fragments disappear as a unit.
//
// # Grammar
//
// Informal EBNF:
//
//	Template  → Element* EOF
//	Element   → '(' Element* ')'
//	          | 'foreach' Ident ':' Path '(' Element* ')'
//	          | 'requires' Path
//	          | String
//	          | Path
//	Path      → Ident ('.' Segment)*
//	Ident     → (Letter | '_' | '-') (Letter | Digit | '_' | '-')*
//	Segment   → (Letter | Digit | '_' | '-')+
//	String    → '"' (Char | '\n' | '\t' | '\\' | '\"')* '"'
//
// Whitespace, // line comments and /* block comments */ may appear between
// elements and are discarded. The words foreach and requires are reserved.
//
// # Example
//
//	// struct definition
//	"type " name " struct {\n"
//	foreach field : fields (
//	  "\t" field.name " " field.type
//	  ( " `json:\"" requires field.tag field.tag "\"`" )
//	  "\n"
//	)
//	"}\n"
//
// # Resolution
//
// A path is resolved by walking the context one segment at a time: object
// members by key, array elements by decimal index. A string or number ends
// the walk with its text, null with the empty string, true with "true", and
// false as undefined. Inside a foreach body the alias names the current item,
// so field.name above resolves as fields.N.name. Aliases that refer back to
// themselves resolve as undefined.
package tmpl
