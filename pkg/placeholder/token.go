package placeholder

import (
	"strings"
	"unicode"
)

// TokenKind classifies a scanned token.
type TokenKind int

const (
	TokenText TokenKind = iota
	TokenVariable
	TokenConditionOpen
	TokenConditionClose
	TokenElse
	TokenLoopOpen
	TokenLoopClose
	TokenLink
)

func (k TokenKind) String() string {
	switch k {
	case TokenVariable:
		return "variable"
	case TokenConditionOpen:
		return "condition-open"
	case TokenConditionClose:
		return "condition-close"
	case TokenElse:
		return "else"
	case TokenLoopOpen:
		return "loop-open"
	case TokenLoopClose:
		return "loop-close"
	case TokenLink:
		return "link"
	default:
		return "text"
	}
}

// Token is one lexical unit of a body. Concatenating the Raw fields of every
// token returned by Scan reproduces the input exactly.
type Token struct {
	Kind TokenKind
	Raw  string
	// Name is the variable, condition or loop collection name. For link tokens
	// it holds the record id.
	Name string
	Pos  int
	// Tag is set for link tokens.
	Tag *Tag
}

// Scan splits src into tokens in a single left-to-right pass.
func Scan(src string) []Token {
	var tokens []Token
	textStart := 0

	flush := func(end int) {
		if end > textStart {
			tokens = append(tokens, Token{Kind: TokenText, Raw: src[textStart:end], Pos: textStart})
		}
	}

	i := 0
	for i < len(src) {
		var (
			tok Token
			ok  bool
		)
		switch src[i] {
		case '{':
			tok, ok = scanMustache(src, i)
		case '<':
			tok, ok = scanLinkTag(src, i)
		}
		if !ok {
			i++
			continue
		}
		flush(i)
		tok.Pos = i
		tokens = append(tokens, tok)
		i += len(tok.Raw)
		textStart = i
	}
	flush(len(src))
	return tokens
}

func scanMustache(src string, i int) (Token, bool) {
	if !strings.HasPrefix(src[i:], "{{") {
		return Token{}, false
	}
	end := strings.Index(src[i+2:], "}}")
	if end < 0 {
		return Token{}, false
	}
	inner := src[i+2 : i+2+end]
	raw := src[i : i+2+end+2]

	kind, name, ok := classify(inner)
	if !ok {
		return Token{}, false
	}
	return Token{Kind: kind, Raw: raw, Name: name}, true
}

func classify(inner string) (TokenKind, string, bool) {
	n := len(inner)
	switch {
	case n >= 4 && strings.HasPrefix(inner, "/%") && inner[n-1] == '%':
		name := inner[2 : n-1]
		return TokenConditionClose, name, validConditionName(name)
	case n >= 3 && inner[0] == '%' && inner[n-1] == '%':
		name := inner[1 : n-1]
		return TokenConditionOpen, name, validConditionName(name)
	}

	trimmed := strings.TrimSpace(inner)
	switch {
	case trimmed == "else":
		return TokenElse, "", true
	case trimmed == "/each":
		return TokenLoopClose, "", true
	case strings.HasPrefix(trimmed, "#each"):
		rest := trimmed[len("#each"):]
		if rest == "" || !unicode.IsSpace(rune(rest[0])) {
			return TokenText, "", false
		}
		name := strings.TrimSpace(rest)
		return TokenLoopOpen, name, validReference(name)
	}
	return TokenVariable, trimmed, validReference(trimmed)
}

// validConditionName accepts any single-line name without marker delimiters
// or surrounding whitespace.
func validConditionName(name string) bool {
	if name == "" || strings.TrimSpace(name) != name {
		return false
	}
	return !strings.ContainsAny(name, "%{}\r\n")
}

// validReference accepts identifiers with optional dotted segments, plus the
// @index loop reference.
func validReference(name string) bool {
	if name == "" || strings.HasSuffix(name, ".") || strings.Contains(name, "..") {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case r == '@' && i == 0:
		case i > 0 && (r == '.' || r == '-' || unicode.IsDigit(r)):
		default:
			return false
		}
	}
	return true
}
