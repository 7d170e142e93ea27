// Package semanticdb parses SemanticDB symbol identifiers and maps them to
// the classfile of their enclosing top-level type.
package semanticdb

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind classifies the last descriptor of a symbol.
type Kind int

const (
	KindPackage Kind = iota + 1
	KindType
	KindTerm
	KindMethod
	KindTypeParameter
	KindParameter
)

func (k Kind) String() string {
	switch k {
	case KindPackage:
		return "package"
	case KindType:
		return "type"
	case KindTerm:
		return "term"
	case KindMethod:
		return "method"
	case KindTypeParameter:
		return "type parameter"
	case KindParameter:
		return "parameter"
	default:
		return "unknown"
	}
}

// Descriptor is the last segment of a global symbol.
type Descriptor struct {
	Name string
	Kind Kind
	// Disambiguator is set for methods only, parentheses included, e.g. "(+1)".
	Disambiguator string
}

// Symbol is a global symbol split into its owner and its own descriptor.
// Owner is the symbol text preceding the descriptor, e.g. "com/acme/" for
// "com/acme/Widget#".
type Symbol struct {
	Owner      string
	Descriptor Descriptor
}

const (
	rootPackage  = "_root_/"
	emptyPackage = "_empty_/"
)

// IsLocal reports whether symbol is a document-local symbol such as "local2".
func IsLocal(symbol string) bool {
	n, ok := strings.CutPrefix(symbol, "local")
	if !ok || n == "" {
		return false
	}
	for _, r := range n {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Parse splits a global symbol into owner and descriptor.
// It reports false for local, empty or malformed symbols.
func Parse(symbol string) (Symbol, bool) {
	if symbol == "" || IsLocal(symbol) {
		return Symbol{}, false
	}
	p := parser{s: symbol, i: len(symbol)}
	d, ok := p.descriptor()
	if !ok {
		return Symbol{}, false
	}
	return Symbol{Owner: symbol[:p.i], Descriptor: d}, true
}

// Toplevel returns the outermost non-package symbol enclosing symbol, which is
// the symbol itself when it is directly owned by a package.
func Toplevel(symbol string) (Symbol, bool) {
	for {
		sym, ok := Parse(symbol)
		if !ok || sym.Descriptor.Kind == KindPackage || sym.Owner == "" {
			return Symbol{}, false
		}
		if isPackage(sym.Owner) {
			return sym, true
		}
		symbol = sym.Owner
	}
}

// Classfile returns the classfile name of the top-level type enclosing symbol,
// for example "com/acme/Widget.class" for "com/acme/Widget#run().".
func Classfile(symbol string) (string, bool) {
	top, ok := Toplevel(symbol)
	if !ok {
		return "", false
	}
	owner := top.Owner
	if owner == rootPackage || owner == emptyPackage {
		owner = ""
	}
	// Quoted package names such as "`default`/" lose their backticks on disk.
	owner = strings.ReplaceAll(owner, "`", "")
	return owner + top.Descriptor.Name + ".class", true
}

func isPackage(symbol string) bool {
	return strings.HasSuffix(symbol, "/")
}

// parser reads descriptors right to left; s[:i] is the unread input.
type parser struct {
	s string
	i int
}

func (p *parser) descriptor() (Descriptor, bool) {
	if p.i == 0 {
		return Descriptor{}, false
	}
	switch p.s[p.i-1] {
	case '/':
		p.i--
		return p.named(KindPackage)
	case '#':
		p.i--
		return p.named(KindType)
	case '.':
		p.i--
		if p.i > 0 && p.s[p.i-1] == ')' {
			open := strings.LastIndexByte(p.s[:p.i], '(')
			if open < 0 {
				return Descriptor{}, false
			}
			disambiguator := p.s[open:p.i]
			p.i = open
			d, ok := p.named(KindMethod)
			d.Disambiguator = disambiguator
			return d, ok
		}
		return p.named(KindTerm)
	case ']':
		return p.enclosed('[', KindTypeParameter)
	case ')':
		return p.enclosed('(', KindParameter)
	default:
		return Descriptor{}, false
	}
}

func (p *parser) named(kind Kind) (Descriptor, bool) {
	name, ok := p.name()
	return Descriptor{Name: name, Kind: kind}, ok
}

// enclosed reads "<open>name<close>" where the closing byte is at s[i-1].
func (p *parser) enclosed(open byte, kind Kind) (Descriptor, bool) {
	start := strings.LastIndexByte(p.s[:p.i-1], open)
	if start < 0 {
		return Descriptor{}, false
	}
	name := p.s[start+1 : p.i-1]
	p.i = start
	return Descriptor{Name: name, Kind: kind}, name != ""
}

func (p *parser) name() (string, bool) {
	if p.i == 0 {
		return "", false
	}
	if p.s[p.i-1] == '`' {
		open := strings.LastIndexByte(p.s[:p.i-1], '`')
		if open < 0 {
			return "", false
		}
		name := p.s[open+1 : p.i-1]
		p.i = open
		return name, name != ""
	}
	end := p.i
	for p.i > 0 {
		r, size := utf8.DecodeLastRuneInString(p.s[:p.i])
		if !isIdentPart(r) {
			break
		}
		p.i -= size
	}
	return p.s[p.i:end], p.i < end
}

func isIdentPart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
