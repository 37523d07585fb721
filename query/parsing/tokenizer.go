package parsing

import (
	"strings"
	"unicode"

	"github.com/neuronlabs/jsonapi/query"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenText
	tokenQuotedText
	tokenOpenParen
	tokenCloseParen
	tokenComma
	tokenColon
	tokenMinus
)

func (t tokenKind) String() string {
	switch t {
	case tokenEOF:
		return "end of input"
	case tokenText:
		return "text"
	case tokenQuotedText:
		return "quoted text"
	case tokenOpenParen:
		return "'('"
	case tokenCloseParen:
		return "')'"
	case tokenComma:
		return "','"
	case tokenColon:
		return "':'"
	case tokenMinus:
		return "'-'"
	}
	return "unknown"
}

type token struct {
	kind     tokenKind
	value    string
	position int
}

func (t token) String() string {
	switch t.kind {
	case tokenText:
		return "'" + t.value + "'"
	case tokenQuotedText:
		return "quoted text '" + t.value + "'"
	}
	return t.kind.String()
}

var singleCharTokens = map[byte]tokenKind{
	'(': tokenOpenParen,
	')': tokenCloseParen,
	',': tokenComma,
	':': tokenColon,
}

// tokenize splits the 'source' into the tokens. The text within single quotes is a quoted text
// where the quote is escaped by doubling it: 'O''Brian'. The minus is a separate token only
// at the start of the text.
func tokenize(parameter, source string) ([]token, error) {
	var (
		tokens []token
		text   strings.Builder
		start  int
	)
	flush := func() {
		if text.Len() > 0 {
			tokens = append(tokens, token{kind: tokenText, value: text.String(), position: start})
			text.Reset()
		}
	}
	for i := 0; i < len(source); i++ {
		c := source[i]
		if kind, ok := singleCharTokens[c]; ok {
			flush()
			tokens = append(tokens, token{kind: kind, value: string(c), position: i})
			continue
		}
		switch {
		case c == '\'':
			flush()
			value, next, err := readQuoted(source, i)
			if err != nil {
				return nil, newParameterError(query.ErrSyntax, parameter, "%s", err.Error())
			}
			tokens = append(tokens, token{kind: tokenQuotedText, value: value, position: i})
			i = next
		case c == '-' && text.Len() == 0:
			tokens = append(tokens, token{kind: tokenMinus, value: "-", position: i})
		case unicode.IsSpace(rune(c)):
			flush()
		default:
			if text.Len() == 0 {
				start = i
			}
			text.WriteByte(c)
		}
	}
	flush()
	return tokens, nil
}

type syntaxError string

func (s syntaxError) Error() string {
	return string(s)
}

// readQuoted reads the quoted text starting at the 'start' quote. Returns the unescaped value
// and the position of the closing quote.
func readQuoted(source string, start int) (string, int, error) {
	sb := strings.Builder{}
	for i := start + 1; i < len(source); i++ {
		if source[i] != '\'' {
			sb.WriteByte(source[i])
			continue
		}
		if i+1 < len(source) && source[i+1] == '\'' {
			sb.WriteByte('\'')
			i++
			continue
		}
		return sb.String(), i, nil
	}
	return "", 0, syntaxError("' expected at the end of the quoted text")
}

// tokenStream is the base of the recursive descent parsers.
type tokenStream struct {
	parameter string
	tokens    []token
	pos       int
}

func newTokenStream(parameter, source string) (*tokenStream, error) {
	tokens, err := tokenize(parameter, source)
	if err != nil {
		return nil, err
	}
	return &tokenStream{parameter: parameter, tokens: tokens}, nil
}

func (s *tokenStream) peek() token {
	if s.pos >= len(s.tokens) {
		return token{kind: tokenEOF}
	}
	return s.tokens[s.pos]
}

func (s *tokenStream) peekKind(kind tokenKind) bool {
	return s.peek().kind == kind
}

func (s *tokenStream) next() token {
	t := s.peek()
	if s.pos < len(s.tokens) {
		s.pos++
	}
	return t
}

func (s *tokenStream) expect(kind tokenKind) (token, error) {
	t := s.next()
	if t.kind != kind {
		return t, s.errorf(query.ErrSyntax, "%s expected, but found: %s", kind, t)
	}
	return t, nil
}

func (s *tokenStream) expectEOF() error {
	if t := s.peek(); t.kind != tokenEOF {
		return s.errorf(query.ErrSyntax, "end of expression expected, but found: %s", t)
	}
	return nil
}

func (s *tokenStream) errorf(class error, format string, args ...interface{}) error {
	err := newParameterError(class, s.parameter, format, args...)
	logger.Debug2f("Parsing query parameter failed: %v", err)
	return err
}
