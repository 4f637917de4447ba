package chess

import (
	"bufio"
	"io"
	"strings"
)

// A Scanner splits a multi-game PGN text stream into single-game chunks, a
// pull-based consumer per spec.md §5: call HasNext/ScanGame repeatedly
// until HasNext reports false.
type Scanner struct {
	buf string
}

// NewScanner returns a Scanner over r's entire contents.
func NewScanner(r io.Reader) *Scanner {
	br := bufio.NewReader(r)
	data, _ := io.ReadAll(br)
	s := strings.TrimPrefix(string(data), "\ufeff") // bom state
	return &Scanner{buf: s}
}

// HasNext reports whether there's any more non-blank, non-escape-line
// content left to scan (the "pre" state of spec.md §4.8).
func (sc *Scanner) HasNext() bool {
	return len(sc.remaining()) > 0
}

// remaining returns sc.buf with leading blank lines and '%'-prefixed
// escape lines stripped.
func (sc *Scanner) remaining() string {
	s := sc.buf
	for {
		trimmed := strings.TrimLeft(s, " \t\r\n")
		if trimmed == s {
			s = trimmed
			break
		}
		s = trimmed
		if strings.HasPrefix(s, "%") {
			if idx := strings.IndexByte(s, '\n'); idx >= 0 {
				s = s[idx+1:]
			} else {
				s = ""
			}
			continue
		}
		break
	}
	if strings.HasPrefix(s, "%") {
		if idx := strings.IndexByte(s, '\n'); idx >= 0 {
			s = s[idx+1:]
		} else {
			s = ""
		}
	}
	sc.buf = s
	return s
}

// ScanGame consumes and returns the text of the next single game (headers
// plus movetext through its result marker), advancing past it.
func (sc *Scanner) ScanGame() (string, error) {
	s := sc.remaining()
	if s == "" {
		return "", newPgnError(PgnMalformedHeader, "no game data remaining")
	}

	end := findGameEnd(s)
	game := s[:end]
	sc.buf = s[end:]
	return strings.TrimSpace(game), nil
}

// findGameEnd returns the index just past the first top-level result token
// (1-0, 0-1, 1/2-1/2 or *) in s, skipping any inside {comments} or
// (variations), or len(s) if none is found.
func findGameEnd(s string) int {
	depth := 0
	inComment := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '{':
			inComment = true
		case c == '}':
			inComment = false
		case inComment:
			continue
		case c == '(':
			depth++
		case c == ')':
			if depth > 0 {
				depth--
			}
		case depth == 0:
			if m := reResult.FindStringIndex(s[i:]); m != nil && m[0] == 0 {
				// Require a word boundary / non-digit before and
				// a boundary after so "0-1" inside a longer token
				// isn't mistaken for the result.
				if (i == 0 || isSpace(s[i-1]) || s[i-1] == ')' || s[i-1] == '}') &&
					(i+m[1] >= len(s) || isSpace(s[i+m[1]]) || s[i+m[1]] == '\n') {
					return i + m[1]
				}
			}
		}
	}
	return len(s)
}
