package mdx

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var errIncomplete = errors.New("unterminated widget tag")

var segmentPattern = regexp.MustCompile(`^(?:[A-Za-z_$][A-Za-z0-9_$]*|[0-9]+)$`)

// parsePath parses a dotted reference such as componentsArray.length.
func parsePath(expr string) ([]string, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, errors.New("empty expression")
	}
	parts := strings.Split(expr, ".")
	for i, p := range parts {
		if !segmentPattern.MatchString(p) || (i == 0 && isDigit(p[0])) {
			return nil, fmt.Errorf("unsupported expression %q", expr)
		}
	}
	return parts, nil
}

// isComment reports whether an expression body is a /* ... */ comment.
func isComment(expr string) bool {
	expr = strings.TrimSpace(expr)
	return strings.HasPrefix(expr, "/*") && strings.HasSuffix(expr, "*/") && len(expr) >= 4
}

type tagScanner struct {
	src string
	pos int
}

func (s *tagScanner) eof() bool { return s.pos >= len(s.src) }

func (s *tagScanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.src[s.pos]
}

func (s *tagScanner) skipSpace() {
	for !s.eof() && isSpace(s.src[s.pos]) {
		s.pos++
	}
}

func (s *tagScanner) consume(c byte) bool {
	if s.peek() == c && !s.eof() {
		s.pos++
		return true
	}
	return false
}

func (s *tagScanner) hasPrefix(p string) bool {
	return strings.HasPrefix(s.src[s.pos:], p)
}

func (s *tagScanner) ident(start, rest func(byte) bool) string {
	begin := s.pos
	if s.eof() || !start(s.src[s.pos]) {
		return ""
	}
	s.pos++
	for !s.eof() && rest(s.src[s.pos]) {
		s.pos++
	}
	return s.src[begin:s.pos]
}

// until returns the text up to the next c and moves past it.
func (s *tagScanner) until(c byte) (string, bool) {
	i := strings.IndexByte(s.src[s.pos:], c)
	if i < 0 {
		s.pos = len(s.src)
		return "", false
	}
	v := s.src[s.pos : s.pos+i]
	s.pos += i + 1
	return v, true
}

// parseTag parses a complete widget invocation: a self-closing tag or an
// empty open/close pair. It returns errIncomplete when src ends before the
// tag does. The name is returned whenever it could be read.
func parseTag(src string) (string, []Attr, error) {
	s := &tagScanner{src: src}
	s.skipSpace()
	if !s.consume('<') {
		return "", nil, errors.New("widget tag must start with <")
	}
	name := s.ident(isNameStart, isNameChar)
	if name == "" {
		return "", nil, errors.New("widget name must start with an upper-case letter")
	}

	var attrs []Attr
	seen := map[string]bool{}
	for {
		s.skipSpace()
		if s.eof() {
			return name, nil, errIncomplete
		}
		if s.hasPrefix("/>") {
			s.pos += 2
			break
		}
		if s.consume('>') {
			s.skipSpace()
			closing := "</" + name
			if s.eof() || strings.HasPrefix(closing, s.src[s.pos:]) {
				return name, nil, errIncomplete
			}
			if !s.hasPrefix(closing) {
				return name, nil, fmt.Errorf("widget <%s> cannot have children", name)
			}
			s.pos += len(closing)
			s.skipSpace()
			if s.eof() {
				return name, nil, errIncomplete
			}
			if !s.consume('>') {
				return name, nil, fmt.Errorf("malformed closing tag for <%s>", name)
			}
			break
		}

		attrName := s.ident(isAttrStart, isAttrChar)
		if attrName == "" {
			return name, nil, fmt.Errorf("unexpected %q in widget <%s>", s.peek(), name)
		}
		if seen[attrName] {
			return name, nil, fmt.Errorf("duplicate attribute %s in widget <%s>", attrName, name)
		}
		seen[attrName] = true

		s.skipSpace()
		if !s.consume('=') {
			attrs = append(attrs, Attr{Name: attrName, Kind: AttrBool})
			continue
		}
		s.skipSpace()
		switch q := s.peek(); q {
		case '"', '\'':
			s.pos++
			v, ok := s.until(q)
			if !ok {
				return name, nil, errIncomplete
			}
			attrs = append(attrs, Attr{Name: attrName, Kind: AttrString, Value: v})
		case '{':
			s.pos++
			v, ok := s.until('}')
			if !ok {
				return name, nil, errIncomplete
			}
			path, err := parsePath(v)
			if err != nil {
				return name, nil, fmt.Errorf("attribute %s of <%s>: %w", attrName, name, err)
			}
			attrs = append(attrs, Attr{Name: attrName, Kind: AttrExpression, Value: strings.TrimSpace(v), Path: path})
		default:
			if s.eof() {
				return name, nil, errIncomplete
			}
			return name, nil, fmt.Errorf("attribute %s of <%s> needs a quoted or {expression} value", attrName, name)
		}
	}

	s.skipSpace()
	if !s.eof() {
		return name, nil, fmt.Errorf("unexpected text after widget <%s>", name)
	}
	return name, attrs, nil
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isLetter(c byte) bool {
	return isUpper(c) || (c >= 'a' && c <= 'z')
}
func isNameStart(c byte) bool { return isUpper(c) }
func isNameChar(c byte) bool  { return isLetter(c) || isDigit(c) || c == '_' || c == '.' }
func isAttrStart(c byte) bool { return isLetter(c) || c == '_' }
func isAttrChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_' || c == '-' || c == ':' || c == '.'
}
