package chess

import (
	"regexp"
	"strings"
)

// A TokenType classifies a single PGN lexeme.
type TokenType int

const (
	EOF TokenType = iota
	TagStart
	TagKey
	TagValue
	TagEnd
	MoveNumber
	DOT
	ELLIPSIS
	PIECE
	SQUARE
	FILE
	RANK
	DeambiguationSquare
	KingsideCastle
	QueensideCastle
	CAPTURE
	PROMOTION
	PromotionPiece
	CHECK
	NAG
	Annotation
	CommentStart
	CommentEnd
	COMMENT
	CommandStart
	CommandEnd
	CommandName
	CommandParam
	VariationStart
	VariationEnd
	RESULT
)

// A Token is one lexeme produced by TokenizeGame.
type Token struct {
	Type  TokenType
	Value string
}

var (
	reTagPair     = regexp.MustCompile(`^\[\s*([A-Za-z0-9_]+)\s+"((?:[^"\\]|\\.)*)"\s*\]`)
	reMoveNumber  = regexp.MustCompile(`^\d+`)
	reEllipsis    = regexp.MustCompile(`^\.\.\.`)
	reNAG         = regexp.MustCompile(`^\$\d+`)
	reAnnotation  = regexp.MustCompile(`^(\+\-|\-\+|!!|\?\?|!\?|\?!|[!?])`)
	reResult      = regexp.MustCompile(`^(1-0|0-1|1/2-1/2|\*)`)
	reQCastle     = regexp.MustCompile(`^O-O-O|^0-0-0`)
	reKCastle     = regexp.MustCompile(`^O-O|^0-0`)
	reSquare      = regexp.MustCompile(`^[a-h][1-8]`)
	rePiece       = regexp.MustCompile(`^[KQRBN]`)
	reFile        = regexp.MustCompile(`^[a-h]`)
	reRank        = regexp.MustCompile(`^[1-8]`)
	reCommandName = regexp.MustCompile(`^%?([A-Za-z]+)`)
)

// TokenizeGame lexes the raw text of a single PGN game (headers + movetext,
// as produced by Scanner.ScanGame) into a flat token stream.
func TokenizeGame(s string) ([]Token, error) {
	toks := make([]Token, 0, 64)
	i := 0
	n := len(s)
	headerDone := false

	for i < n {
		// skip whitespace
		for i < n && isSpace(s[i]) {
			i++
		}
		if i >= n {
			break
		}

		if !headerDone && s[i] == '[' {
			if m := reTagPair.FindStringSubmatchIndex(s[i:]); m != nil {
				key := s[i+m[2] : i+m[3]]
				val := s[i+m[4] : i+m[5]]
				toks = append(toks, Token{TagStart, "["})
				toks = append(toks, Token{TagKey, key})
				toks = append(toks, Token{TagValue, unescapePGNString(val)})
				toks = append(toks, Token{TagEnd, "]"})
				i += m[1]
				continue
			}
			headerDone = true
		}
		headerDone = true

		c := s[i]
		switch {
		case c == '{':
			toks = append(toks, Token{CommentStart, "{"})
			i++
			j, commentToks, err := lexComment(s, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, commentToks...)
			i = j
		case c == ';':
			j := strings.IndexByte(s[i:], '\n')
			if j < 0 {
				i = n
			} else {
				i += j
			}
		case c == '(':
			toks = append(toks, Token{VariationStart, "("})
			i++
		case c == ')':
			toks = append(toks, Token{VariationEnd, ")"})
			i++
		case c == '.':
			if loc := reEllipsis.FindStringIndex(s[i:]); loc != nil {
				toks = append(toks, Token{ELLIPSIS, "..."})
				i += loc[1]
			} else {
				toks = append(toks, Token{DOT, "."})
				i++
			}
		case c == 'x' || c == ':':
			toks = append(toks, Token{CAPTURE, string(c)})
			i++
		case c == '=':
			toks = append(toks, Token{PROMOTION, "="})
			i++
			if loc := rePiece.FindStringIndex(s[i:]); loc != nil {
				toks = append(toks, Token{PromotionPiece, s[i : i+loc[1]]})
				i += loc[1]
			}
		case c == '+' || c == '#':
			toks = append(toks, Token{CHECK, string(c)})
			i++
		case c == '$':
			if loc := reNAG.FindStringIndex(s[i:]); loc != nil {
				toks = append(toks, Token{NAG, s[i : i+loc[1]]})
				i += loc[1]
				continue
			}
			i++
		default:
			if loc := reResult.FindStringIndex(s[i:]); loc != nil {
				toks = append(toks, Token{RESULT, s[i : i+loc[1]]})
				i += loc[1]
				continue
			}
			if loc := reQCastle.FindStringIndex(s[i:]); loc != nil {
				toks = append(toks, Token{QueensideCastle, s[i : i+loc[1]]})
				i += loc[1]
				continue
			}
			if loc := reKCastle.FindStringIndex(s[i:]); loc != nil {
				toks = append(toks, Token{KingsideCastle, s[i : i+loc[1]]})
				i += loc[1]
				continue
			}
			if loc := reMoveNumber.FindStringIndex(s[i:]); loc != nil {
				toks = append(toks, Token{MoveNumber, s[i : i+loc[1]]})
				i += loc[1]
				continue
			}
			if loc := reSquare.FindStringIndex(s[i:]); loc != nil {
				// A piece letter followed by two adjoining squares is long
				// algebraic disambiguation, e.g. "Qe8f7": the first square
				// is tagged DeambiguationSquare.
				typ := SQUARE
				if k := len(toks); k > 0 && toks[k-1].Type == PIECE && reSquare.MatchString(s[i+loc[1]:]) {
					typ = DeambiguationSquare
				}
				toks = append(toks, Token{typ, s[i : i+loc[1]]})
				i += loc[1]
				continue
			}
			if loc := rePiece.FindStringIndex(s[i:]); loc != nil {
				toks = append(toks, Token{PIECE, s[i : i+loc[1]]})
				i += loc[1]
				continue
			}
			if loc := reFile.FindStringIndex(s[i:]); loc != nil {
				toks = append(toks, Token{FILE, s[i : i+loc[1]]})
				i += loc[1]
				continue
			}
			if loc := reRank.FindStringIndex(s[i:]); loc != nil {
				toks = append(toks, Token{RANK, s[i : i+loc[1]]})
				i += loc[1]
				continue
			}
			if loc := reAnnotation.FindStringIndex(s[i:]); loc != nil {
				toks = append(toks, Token{Annotation, s[i : i+loc[1]]})
				i += loc[1]
				continue
			}
			// Unrecognized character: skip it rather than fail the
			// whole parse on decorative junk.
			i++
		}
	}

	return toks, nil
}

// lexComment scans comment body text starting at i (just after '{'),
// emitting COMMENT and CommandStart/CommandName/CommandParam/CommandEnd
// tokens, and a trailing CommentEnd. Returns the index just past the
// closing '}'.
func lexComment(s string, i int) (int, []Token, error) {
	var toks []Token
	n := len(s)
	var buf strings.Builder

	flush := func() {
		if buf.Len() > 0 {
			toks = append(toks, Token{COMMENT, buf.String()})
			buf.Reset()
		}
	}

	for i < n {
		c := s[i]
		switch {
		case c == '}':
			flush()
			toks = append(toks, Token{CommentEnd, "}"})
			return i + 1, toks, nil
		case c == '[':
			flush()
			j, cmdToks, ok := lexCommand(s, i)
			if !ok {
				buf.WriteByte(c)
				i++
				continue
			}
			toks = append(toks, cmdToks...)
			i = j
		default:
			buf.WriteByte(c)
			i++
		}
	}
	flush()
	return i, toks, newPgnError(PgnUnterminatedComment, "unterminated comment")
}

// lexCommand scans a `[%name value]` annotation starting at the '['.
func lexCommand(s string, i int) (int, []Token, bool) {
	n := len(s)
	j := i + 1
	m := reCommandName.FindStringSubmatchIndex(s[j:])
	if m == nil {
		return i, nil, false
	}
	name := s[j+m[2] : j+m[3]]
	j += m[1]
	for j < n && isSpace(s[j]) {
		j++
	}
	start := j
	for j < n && s[j] != ']' {
		j++
	}
	if j >= n {
		return i, nil, false
	}
	value := strings.TrimSpace(s[start:j])
	toks := []Token{
		{CommandStart, "["},
		{CommandName, name},
		{CommandParam, value},
		{CommandEnd, "]"},
	}
	return j + 1, toks, true
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func unescapePGNString(s string) string {
	s = strings.ReplaceAll(s, `\"`, `"`)
	s = strings.ReplaceAll(s, `\\`, `\`)
	return s
}
