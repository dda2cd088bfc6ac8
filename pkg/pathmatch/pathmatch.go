// Package pathmatch matches paths against find -path style glob patterns.
//
// Unlike filepath.Match, wildcards cross directory separators:
//   - * matches any run of characters, / included
//   - ? matches exactly one character
//   - [set] and [!set] match one character from or outside set
//   - \ matches the next character literally
package pathmatch

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Match reports whether path matches pattern.
func Match(pattern, path string) (bool, error) {
	re, err := compile(pattern)
	if err != nil {
		return false, err
	}

	return re.MatchString(path), nil
}

// Matcher holds a compiled list of patterns.
type Matcher struct {
	patterns []*regexp.Regexp
}

// NewMatcher compiles patterns. An empty list yields a matcher that matches nothing.
func NewMatcher(patterns []string) (*Matcher, error) {
	m := &Matcher{patterns: make([]*regexp.Regexp, 0, len(patterns))}

	for _, pattern := range patterns {
		re, err := compile(pattern)
		if err != nil {
			return nil, err
		}

		m.patterns = append(m.patterns, re)
	}

	return m, nil
}

// Len returns the number of compiled patterns.
func (m *Matcher) Len() int { return len(m.patterns) }

// MatchAny reports whether path matches at least one pattern.
func (m *Matcher) MatchAny(path string) bool {
	for _, re := range m.patterns {
		if re.MatchString(path) {
			return true
		}
	}

	return false
}

func compile(pattern string) (*regexp.Regexp, error) {
	expr, err := translate(pattern)
	if err != nil {
		return nil, fmt.Errorf("pattern %q: %w", pattern, err)
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("pattern %q: %w", pattern, err)
	}

	return re, nil
}

// translate rewrites a glob as an anchored regular expression.
func translate(pattern string) (string, error) {
	var b strings.Builder

	b.WriteString("(?s)^")

	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteByte('.')
		case '\\':
			if i+1 == len(pattern) {
				return "", fmt.Errorf("%w: trailing backslash", ErrSyntax)
			}

			i++
			i += literal(&b, pattern[i:]) - 1
		case '[':
			class, n, err := bracket(pattern[i:])
			if err != nil {
				return "", err
			}

			b.WriteString(class)

			i += n - 1
		default:
			i += literal(&b, pattern[i:]) - 1
		}
	}

	b.WriteByte('$')

	return b.String(), nil
}

// literal quotes the first character of s and returns its width in bytes.
func literal(b *strings.Builder, s string) int {
	_, n := utf8.DecodeRuneInString(s)
	b.WriteString(regexp.QuoteMeta(s[:n]))

	return n
}

// bracket translates the character class at the start of s and returns it with
// the number of pattern bytes it consumed. A ] right after [ or [! is literal.
func bracket(s string) (string, int, error) {
	var b strings.Builder

	b.WriteByte('[')

	i := 1
	if i < len(s) && s[i] == '!' {
		b.WriteByte('^')

		i++
	}

	for first := true; i < len(s); first = false {
		c := s[i]

		if c == ']' && !first {
			b.WriteByte(']')

			return b.String(), i + 1, nil
		}

		switch c {
		case '\\', '[', ']', '^':
			b.WriteByte('\\')
		}

		b.WriteByte(c)

		i++
	}

	return "", 0, fmt.Errorf("%w: unclosed character class", ErrSyntax)
}
