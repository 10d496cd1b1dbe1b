package importer

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// bibLexer tokenizes a BibTeX database. Text between entries is lexed as Junk
// and elided. @comment bodies are consumed as a single braced group.
var bibLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Comment", Pattern: `@[ \t]*[cC][oO][mM][mM][eE][nN][tT][ \t\r\n]*\{`, Action: lexer.Push("Braced")},
		{Name: "Entry", Pattern: `@[ \t]*[A-Za-z][A-Za-z0-9_:-]*[ \t\r\n]*[{(]`, Action: lexer.Push("Body")},
		{Name: "Junk", Pattern: `[^@]+|@`},
	},
	"Body": {
		{Name: "Whitespace", Pattern: `\s+`},
		{Name: "Close", Pattern: `[})]`, Action: lexer.Pop()},
		{Name: "LBrace", Pattern: `\{`, Action: lexer.Push("Braced")},
		{Name: "Quote", Pattern: `"`, Action: lexer.Push("Quoted")},
		{Name: "Punct", Pattern: `[,=#]`},
		{Name: "Ident", Pattern: `[^\s"#,={}()]+`},
	},
	"Braced": {
		{Name: "NestOpen", Pattern: `\{`, Action: lexer.Push("Braced")},
		{Name: "NestClose", Pattern: `\}`, Action: lexer.Pop()},
		{Name: "Text", Pattern: `[^{}]+`},
	},
	"Quoted": {
		{Name: "QuoteClose", Pattern: `"`, Action: lexer.Pop()},
		{Name: "QNestOpen", Pattern: `\{`, Action: lexer.Push("Braced")},
		{Name: "QText", Pattern: `[^"{]+`},
	},
})

var bibParser = participle.MustBuild[bibFile](
	participle.Lexer(bibLexer),
	participle.Elide("Whitespace", "Junk"),
)

//nolint:govet // participle grammar tags are not standard struct tags
type bibFile struct {
	Items []*bibItem `@@*`
}

//nolint:govet // participle grammar tags are not standard struct tags
type bibItem struct {
	Comment *commentBlock `  @@`
	Entry   *bibEntry     `| @@`
}

//nolint:govet // participle grammar tags are not standard struct tags
type commentBlock struct {
	Head  string        `@Comment`
	Parts []*bracedPart `@@* NestClose`
}

// bibEntry covers regular entries as well as @preamble and @string. A field
// assignment is an element with a Value; a bare element is the citation key
// or a preamble body.
//
//nolint:govet // participle grammar tags are not standard struct tags
type bibEntry struct {
	Head     string     `@Entry`
	Elements []*element `( @@ ","? )* Close`
}

//nolint:govet // participle grammar tags are not standard struct tags
type element struct {
	First *value `@@`
	Value *value `( "=" @@ )?`
}

//nolint:govet // participle grammar tags are not standard struct tags
type value struct {
	Parts []*valuePart `@@ ( "#" @@ )*`
}

//nolint:govet // participle grammar tags are not standard struct tags
type valuePart struct {
	Braced *braced `  @@`
	Quoted *quoted `| @@`
	Ident  string  `| @Ident`
}

//nolint:govet // participle grammar tags are not standard struct tags
type braced struct {
	Open  string        `@( LBrace | NestOpen | QNestOpen )`
	Parts []*bracedPart `@@* NestClose`
}

//nolint:govet // participle grammar tags are not standard struct tags
type bracedPart struct {
	Text   string  `  @Text`
	Nested *braced `| @@`
}

//nolint:govet // participle grammar tags are not standard struct tags
type quoted struct {
	Open  string        `@Quote`
	Parts []*quotedPart `@@* QuoteClose`
}

//nolint:govet // participle grammar tags are not standard struct tags
type quotedPart struct {
	Text   string  `  @QText`
	Nested *braced `| @@`
}

// entryType extracts the lower-cased type from an Entry token like "@Article {".
func (e *bibEntry) entryType() string {
	s := strings.TrimPrefix(e.Head, "@")
	s = strings.TrimRight(s, " \t\r\n{(")
	return strings.ToLower(strings.TrimSpace(s))
}

// ident returns the identifier when v is a single bare word.
func (v *value) ident() (string, bool) {
	if v == nil || len(v.Parts) != 1 || v.Parts[0].Braced != nil || v.Parts[0].Quoted != nil {
		return "", false
	}
	return v.Parts[0].Ident, true
}

// raw returns the text between the outer braces, inner braces kept.
func (b *braced) raw() string {
	var sb strings.Builder
	writeBraced(&sb, b.Parts)
	return sb.String()
}

func (q *quoted) raw() string {
	var sb strings.Builder
	for _, p := range q.Parts {
		if p.Nested != nil {
			sb.WriteString("{")
			sb.WriteString(p.Nested.raw())
			sb.WriteString("}")
			continue
		}
		sb.WriteString(p.Text)
	}
	return sb.String()
}

func writeBraced(sb *strings.Builder, parts []*bracedPart) {
	for _, p := range parts {
		if p.Nested != nil {
			sb.WriteString("{")
			writeBraced(sb, p.Nested.Parts)
			sb.WriteString("}")
			continue
		}
		sb.WriteString(p.Text)
	}
}
