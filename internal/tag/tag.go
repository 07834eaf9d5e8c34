package tag

import (
	"regexp"
	"strings"
)

// Call is one tool invocation extracted from a model reply.
type Call struct {
	Name  string
	Attrs map[string]string
}

// attrPattern matches a single attribute inside a tag body. Values are
// double-quoted and may contain backslash escapes, so a literal quote
// inside a value never ends the attribute.
var attrPattern = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_]*)\s*=\s*"((?:\\.|[^"\\])*)"`)

// Parser extracts self-closing tool tags like
//
//	<readfile file="main.go"/>
//	<writefile file="a.txt" content="line1\nline2"/>
//
// from free-form model output. One regex per registered tool name; names
// keep their registration order, so Parse groups matches per tool kind in
// that order rather than in textual order.
type Parser struct {
	names    []string
	patterns map[string]*regexp.Regexp
}

func NewParser(names []string) *Parser {
	p := &Parser{
		names:    make([]string, 0, len(names)),
		patterns: make(map[string]*regexp.Regexp, len(names)),
	}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := p.patterns[name]; ok {
			continue
		}
		p.names = append(p.names, name)
		p.patterns[name] = tagPattern(name)
	}
	return p
}

// tagPattern builds the regex for one tool tag. The attribute list is
// matched strictly so that quoted values may contain '>' or '/'.
func tagPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(
		`<` + regexp.QuoteMeta(name) +
			`((?:\s+[A-Za-z_][A-Za-z0-9_]*\s*=\s*"(?:\\.|[^"\\])*")*)\s*/>`,
	)
}

// Parse returns every tool call found in text. Attribute values are
// unescaped before they reach a handler.
func (p *Parser) Parse(text string) []Call {
	var calls []Call
	for _, name := range p.names {
		for _, m := range p.patterns[name].FindAllStringSubmatch(text, -1) {
			attrs := map[string]string{}
			for _, am := range attrPattern.FindAllStringSubmatch(m[1], -1) {
				attrs[am[1]] = Unescape(am[2])
			}
			calls = append(calls, Call{Name: name, Attrs: attrs})
		}
	}
	return calls
}

// Names returns the registered tool names in registration order.
func (p *Parser) Names() []string {
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out
}

// Unescape decodes the backslash escapes used inside attribute values.
// Unknown escapes keep the escaped character.
func Unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
