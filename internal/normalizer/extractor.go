package normalizer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Sub-field parse errors. They never leave the package; ExtractField turns them into absence.
var (
	ErrEmptySubfield     = errors.New("empty sub-field")
	ErrMalformedSubfield = errors.New("malformed sub-field")
)

// ExtractField returns the value stored under key in a flat mapping literal
// such as {'Industry': 'Retail', 'Zip': '33160'}. Both quote styles are
// accepted. The second result is false when the text is empty, is not a flat
// mapping, lacks the key, or holds a null or empty value there.
func ExtractField(text, key string) (string, bool) {
	value, ok, _ := lookupField(text, key)

	return value, ok
}

// lookupField is ExtractField that also reports why parsing failed.
func lookupField(text, key string) (string, bool, error) {
	fields, err := ParseMapping(text)
	if err != nil {
		return "", false, err
	}

	value, ok := fields[key]
	if !ok || value == nil || *value == "" {
		return "", false, nil
	}

	return *value, true, nil
}

// ParseMapping parses a flat mapping of quoted keys to scalar values.
// Null-like bare values (None, null, NaN) map to nil.
func ParseMapping(text string) (map[string]*string, error) {
	sc := &mappingScanner{src: strings.TrimSpace(text)}
	if sc.src == "" {
		return nil, ErrEmptySubfield
	}

	if !sc.consume('{') {
		return nil, sc.malformed("expected '{'")
	}

	fields := make(map[string]*string)

	sc.skipSpace()

	if sc.consume('}') {
		return fields, sc.finish()
	}

	for {
		key, err := sc.readKey()
		if err != nil {
			return nil, err
		}

		sc.skipSpace()

		if !sc.consume(':') {
			return nil, sc.malformed("expected ':'")
		}

		value, err := sc.readValue()
		if err != nil {
			return nil, err
		}

		fields[key] = value

		sc.skipSpace()

		switch {
		case sc.consume(','):
			sc.skipSpace()
			// trailing comma
			if sc.consume('}') {
				return fields, sc.finish()
			}
		case sc.consume('}'):
			return fields, sc.finish()
		default:
			return nil, sc.malformed("expected ',' or '}'")
		}
	}
}

var nullLiterals = map[string]bool{
	"None": true,
	"null": true,
	"NULL": true,
	"nan":  true,
	"NaN":  true,
}

type mappingScanner struct {
	src string
	pos int
}

func (s *mappingScanner) malformed(reason string) error {
	return fmt.Errorf("%w: %s at offset %d", ErrMalformedSubfield, reason, s.pos)
}

func (s *mappingScanner) skipSpace() {
	for s.pos < len(s.src) && isSpace(s.src[s.pos]) {
		s.pos++
	}
}

func (s *mappingScanner) consume(c byte) bool {
	if s.pos < len(s.src) && s.src[s.pos] == c {
		s.pos++
		return true
	}

	return false
}

func (s *mappingScanner) finish() error {
	s.skipSpace()

	if s.pos != len(s.src) {
		return s.malformed("trailing content")
	}

	return nil
}

func (s *mappingScanner) readKey() (string, error) {
	s.skipSpace()

	if s.pos >= len(s.src) || !isQuote(s.src[s.pos]) {
		return "", s.malformed("expected quoted key")
	}

	return s.readQuoted()
}

func (s *mappingScanner) readValue() (*string, error) {
	s.skipSpace()

	if s.pos >= len(s.src) {
		return nil, s.malformed("missing value")
	}

	if isQuote(s.src[s.pos]) {
		v, err := s.readQuoted()
		if err != nil {
			return nil, err
		}

		return &v, nil
	}

	start := s.pos
	for s.pos < len(s.src) && s.src[s.pos] != ',' && s.src[s.pos] != '}' {
		switch s.src[s.pos] {
		case '{', '[', ':', '\'', '"':
			return nil, s.malformed("nested or unquoted structure")
		}

		s.pos++
	}

	token := strings.TrimSpace(s.src[start:s.pos])
	if token == "" {
		return nil, s.malformed("missing value")
	}

	if nullLiterals[token] {
		return nil, nil
	}

	return &token, nil
}

// readQuoted reads a string opened by the quote under the cursor. A matching
// quote only closes the string when followed by a delimiter, so apostrophes
// inside single-quoted values (O'Neil) survive.
func (s *mappingScanner) readQuoted() (string, error) {
	quote := s.src[s.pos]
	s.pos++

	var sb strings.Builder

	for s.pos < len(s.src) {
		c := s.src[s.pos]

		switch {
		case c == '\\':
			if err := s.readEscape(&sb); err != nil {
				return "", err
			}
		case c == quote && s.closesAt(s.pos+1):
			s.pos++
			return sb.String(), nil
		default:
			sb.WriteByte(c)
			s.pos++
		}
	}

	return "", s.malformed("unterminated string")
}

var simpleEscapes = map[byte]byte{
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'b':  '\b',
	'f':  '\f',
	'/':  '/',
	'\\': '\\',
	'"':  '"',
	'\'': '\'',
}

// readEscape decodes the escape sequence under the cursor into sb. Unknown or
// truncated escapes are malformed.
func (s *mappingScanner) readEscape(sb *strings.Builder) error {
	if s.pos+1 >= len(s.src) {
		return s.malformed("truncated escape")
	}

	c := s.src[s.pos+1]
	if decoded, ok := simpleEscapes[c]; ok {
		sb.WriteByte(decoded)
		s.pos += 2

		return nil
	}

	if c != 'u' {
		return s.malformed(fmt.Sprintf("unknown escape \\%c", c))
	}

	r, err := s.readCodeUnit(s.pos + 2)
	if err != nil {
		return err
	}

	s.pos += 6

	if utf16.IsSurrogate(r) {
		if !strings.HasPrefix(s.src[s.pos:], "\\u") {
			return s.malformed("unpaired surrogate")
		}

		low, err := s.readCodeUnit(s.pos + 2)
		if err != nil {
			return err
		}

		r = utf16.DecodeRune(r, low)
		if r == utf8.RuneError {
			return s.malformed("invalid surrogate pair")
		}

		s.pos += 6
	}

	sb.WriteRune(r)

	return nil
}

// readCodeUnit parses the four hex digits starting at i.
func (s *mappingScanner) readCodeUnit(i int) (rune, error) {
	if i+4 > len(s.src) {
		return 0, s.malformed("truncated unicode escape")
	}

	v, err := strconv.ParseUint(s.src[i:i+4], 16, 16)
	if err != nil {
		return 0, s.malformed("invalid unicode escape")
	}

	return rune(v), nil
}

func (s *mappingScanner) closesAt(i int) bool {
	for i < len(s.src) && isSpace(s.src[i]) {
		i++
	}

	if i >= len(s.src) {
		return true
	}

	switch s.src[i] {
	case ',', ':', '}':
		return true
	}

	return false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isQuote(c byte) bool {
	return c == '\'' || c == '"'
}
