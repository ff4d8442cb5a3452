package dsl

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	dslLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "Color", Pattern: `#(?:[0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})\b`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `(?:\d+\.\d+|\d+)(?:px|pt|mm)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[][,;:]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	documentParser = participle.MustBuild[Document](
		participle.Lexer(dslLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// Section kinds.
const (
	SectionFonts  = "fonts"
	SectionOutput = "output"
	SectionLayout = "layout"
	SectionStyle  = "style"
	SectionText   = "text"
)

// Document is the root AST node of a specimen job file.
type Document struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Name     string         `parser:"Newline* 'specimen' @Ident"`
	Version  string         `parser:"@Ident"`
	Sections []*Section     `parser:"'{' Newline* ( @@ Newline* )* '}' Newline*"`
}

// Section is a top-level section: fonts/output/layout/style/text.
// fonts 与 output 的目标目录写在关键字之后，例如 fonts "fonts" { ... }。
type Section struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Kind   string         `parser:"@( 'fonts' | 'output' | 'layout' | 'style' | 'text' )"`
	Target *StringLiteral `parser:"@String?"`
	Block  *Block         `parser:"Newline* @@"`
}

// Block is a delimited list of statements.
type Block struct {
	Statements []*Statement `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Statement inside a block (assignment or text literal).
type Statement struct {
	Assignment *Assignment  `parser:"  @@"`
	Text       *TextLiteral `parser:"| @@"`
}

// Assignment uses colon syntax (key: value).
type Assignment struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Key   string         `parser:"@Ident"`
	Value *Value         `parser:"':' Newline* @@"`
}

// TextLiteral encapsulates raw string statements within blocks.
type TextLiteral struct {
	Value StringLiteral `parser:"@String"`
}

// Value represents generic property values.
type Value struct {
	String *StringLiteral `parser:"  @String"`
	Number *string        `parser:"| @Number"`
	Color  *string        `parser:"| @Color"`
	Array  *ArrayValue    `parser:"| @@"`
	Ident  *string        `parser:"| @Ident"`
}

// ArrayValue captures `[ ... ]` expressions.
type ArrayValue struct {
	Values []*Value `parser:"'[' Newline* ( @@ ( (',' | ';' | Newline+) Newline* @@ )* )? Newline* ']'"`
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses a job file from an io.Reader.
func Parse(r io.Reader) (*Document, error) {
	return documentParser.Parse("", r)
}

// ParseString parses a job file from a string.
func ParseString(input string) (*Document, error) {
	return documentParser.ParseString("", input)
}

// TargetString returns the section target or "" when absent.
func (s *Section) TargetString() string {
	if s == nil || s.Target == nil {
		return ""
	}
	return string(*s.Target)
}

// Assignments 返回块内的赋值，同名键以最后一次为准。
func (b *Block) Assignments() map[string]*Assignment {
	out := map[string]*Assignment{}
	if b == nil {
		return out
	}
	for _, st := range b.Statements {
		if st.Assignment != nil {
			out[st.Assignment.Key] = st.Assignment
		}
	}
	return out
}

// Texts 按出现顺序返回块内的字符串字面量。
func (b *Block) Texts() []string {
	if b == nil {
		return nil
	}
	var out []string
	for _, st := range b.Statements {
		if st.Text != nil {
			out = append(out, string(st.Text.Value))
		}
	}
	return out
}

// Scalar returns the raw textual form of a non-array value.
func (v *Value) Scalar() (string, bool) {
	switch {
	case v == nil:
		return "", false
	case v.String != nil:
		return string(*v.String), true
	case v.Number != nil:
		return *v.Number, true
	case v.Color != nil:
		return *v.Color, true
	case v.Ident != nil:
		return *v.Ident, true
	default:
		return "", false
	}
}

// List 将数组值展开为字符串列表；单个标量视为只有一个元素的列表。
func (v *Value) List() ([]string, bool) {
	if v == nil {
		return nil, false
	}
	if v.Array == nil {
		s, ok := v.Scalar()
		if !ok {
			return nil, false
		}
		return []string{s}, true
	}
	out := make([]string, 0, len(v.Array.Values))
	for _, item := range v.Array.Values {
		s, ok := item.Scalar()
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}
