package chess

import (
	"regexp"
	"strings"
)

// A Notation converts between a Move and some textual representation in
// the context of a Position (most textual move formats are only
// unambiguous given the position they're played in).
type Notation interface {
	Encode(pos *Position, m *Move) string
	Decode(pos *Position, s string) (*Move, error)
}

// AlgebraicNotation implements Standard Algebraic Notation (SAN), e.g.
// "Nxe5", "O-O", "exd6+".
type AlgebraicNotation struct{}

// Encode implements C6's encoder, spec.md §4.5.
func (AlgebraicNotation) Encode(pos *Position, m *Move) string {
	return ToSAN(pos, m)
}

// Decode implements C6's strict decoder, spec.md §4.6.
func (AlgebraicNotation) Decode(pos *Position, s string) (*Move, error) {
	return FromSAN(pos, s, false)
}

// ToSAN returns the minimally-disambiguated SAN for m, played from pos.
func ToSAN(pos *Position, m *Move) string {
	return encodeSAN(pos, *m, false)
}

// FromSAN decodes s into the unique legal move it denotes in pos. When
// sloppy is true, a strict-match failure falls back to sloppy
// disambiguation (against pseudo-legal movers) and a permissive
// long-algebraic pattern, per spec.md §4.6 step 4.
func FromSAN(pos *Position, s string, sloppy bool) (*Move, error) {
	cleaned := cleanSAN(s)

	if cleaned == "O-O" || cleaned == "O-O-O" {
		tag := KingSideCastle
		if cleaned == "O-O-O" {
			tag = QueenSideCastle
		}
		for _, m := range pos.ValidMoves() {
			if m.HasTag(tag) {
				mm := m
				return &mm, nil
			}
		}
		return nil, newSanError(SanUnknown, "no legal castling move: "+s)
	}

	legal := pos.ValidMoves()
	var matches []Move
	for _, m := range legal {
		if cleanSAN(encodeSAN(pos, m, false)) == cleaned {
			matches = append(matches, m)
		}
	}
	switch len(matches) {
	case 1:
		mm := matches[0]
		return &mm, nil
	case 0:
		// fall through to sloppy handling below
	default:
		return nil, newSanError(SanAmbiguous, "multiple legal moves match: "+s)
	}

	if !sloppy {
		return nil, newSanError(SanUnknown, "no legal move matches: "+s)
	}

	matches = nil
	for _, m := range legal {
		if cleanSAN(encodeSAN(pos, m, true)) == cleaned {
			matches = append(matches, m)
		}
	}
	if len(matches) == 1 {
		mm := matches[0]
		return &mm, nil
	}
	if len(matches) > 1 {
		return nil, newSanError(SanAmbiguous, "multiple legal moves match (sloppy): "+s)
	}

	if m := matchLongAlgebraic(legal, cleaned); m != nil {
		return m, nil
	}

	return nil, newSanError(SanUnknown, "no legal move matches: "+s)
}

var reLongAlgebraic = regexp.MustCompile(`(?i)^([pnbrqk])?([a-h][1-8])[x-]?([a-h][1-8])([qrbn])?$`)

// matchLongAlgebraic implements the permissive long-algebraic fallback of
// spec.md §4.6 step 4.
func matchLongAlgebraic(legal MoveList, cleaned string) *Move {
	m := reLongAlgebraic.FindStringSubmatch(cleaned)
	if m == nil {
		return nil
	}
	pieceLetter, fromStr, toStr, promoLetter := strings.ToUpper(m[1]), m[2], m[3], strings.ToUpper(m[4])
	from, err1 := ParseSquare(fromStr)
	to, err2 := ParseSquare(toStr)
	if err1 != nil || err2 != nil {
		return nil
	}
	var promo PieceType
	if promoLetter != "" {
		promo = PieceTypeFromString(promoLetter)
	}

	var matches []Move
	for _, cand := range legal {
		if cand.S1() != from || cand.S2() != to {
			continue
		}
		if pieceLetter != "" && cand.Piece().Type() != PieceTypeFromString(pieceLetter) {
			continue
		}
		if promoLetter != "" && cand.Promo() != promo {
			continue
		}
		matches = append(matches, cand)
	}
	if len(matches) == 1 {
		mm := matches[0]
		return &mm
	}
	return nil
}

// cleanSAN strips the decorations spec.md §4.6 step 1 names (trailing
// +, #, !, ?, !!, ??, !?, ?!) and any embedded '=' so strict comparison can
// ignore them symmetrically on both the input text and a freshly-encoded
// candidate.
func cleanSAN(s string) string {
	for len(s) > 0 {
		c := s[len(s)-1]
		if c == '+' || c == '#' || c == '!' || c == '?' {
			s = s[:len(s)-1]
			continue
		}
		break
	}
	return strings.ReplaceAll(s, "=", "")
}

// encodeSAN is the shared implementation behind ToSAN and the sloppy
// disambiguation fallback; sloppy disambiguates against pseudo-legal
// movers instead of legal ones (spec.md §4.5 "Sloppy variant").
func encodeSAN(pos *Position, m Move, sloppy bool) string {
	var core string
	switch {
	case m.HasTag(KingSideCastle):
		core = "O-O"
	case m.HasTag(QueenSideCastle):
		core = "O-O-O"
	default:
		var sb strings.Builder
		pt := m.Piece().Type()
		if pt != Pawn {
			sb.WriteString(pt.String())
			sb.WriteString(disambiguation(pos, m, sloppy))
		} else if m.HasTag(Capture) {
			sb.WriteString(m.S1().File().String())
		}
		if m.HasTag(Capture) {
			sb.WriteString("x")
		}
		sb.WriteString(m.S2().String())
		if m.Promo() != NoPieceType {
			sb.WriteString("=")
			sb.WriteString(m.Promo().String())
		}
		core = sb.String()
	}

	next := applyMove(pos, m)
	switch {
	case next.inCheck && len(next.ValidMoves()) == 0:
		core += "#"
	case next.inCheck:
		core += "+"
	}
	return core
}

// disambiguation returns the minimal origin-square prefix needed to
// distinguish m from other legal (or, if sloppy, pseudo-legal) moves of
// the same piece type and color to the same destination: "" if none,
// else file, rank, or the full square, in that tie-break order
// (spec.md §4.5 step 3).
func disambiguation(pos *Position, m Move, sloppy bool) string {
	pt := m.Piece().Type()
	if pt == Pawn || pt == King {
		return ""
	}

	var movers MoveList
	if sloppy {
		movers = genPseudoMoves(pos, NoSquare)
	} else {
		movers = pos.ValidMoves()
	}

	var others []Move
	for _, o := range movers {
		if o.S1() == m.S1() || o.S2() != m.S2() || o.Piece() != m.Piece() {
			continue
		}
		others = append(others, o)
	}
	if len(others) == 0 {
		return ""
	}

	sameFile, sameRank := false, false
	for _, o := range others {
		if o.S1().File() == m.S1().File() {
			sameFile = true
		}
		if o.S1().Rank() == m.S1().Rank() {
			sameRank = true
		}
	}
	switch {
	case !sameFile:
		return m.S1().File().String()
	case !sameRank:
		return m.S1().Rank().String()
	default:
		return m.S1().String()
	}
}

// UCINotation implements the coordinate notation used by chess engines,
// e.g. "e2e4", "e7e8q".
type UCINotation struct{}

// Encode returns m in UCI form.
func (UCINotation) Encode(_ *Position, m *Move) string {
	return m.String()
}

// Decode parses s as "<from><to>[promo]" and matches it against pos's
// legal moves.
func (UCINotation) Decode(pos *Position, s string) (*Move, error) {
	s = strings.TrimSpace(s)
	if len(s) != 4 && len(s) != 5 {
		return nil, newSanError(SanUnknown, "invalid UCI move: "+s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return nil, newSanError(SanUnknown, "invalid UCI move: "+s)
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return nil, newSanError(SanUnknown, "invalid UCI move: "+s)
	}
	promo := NoPieceType
	if len(s) == 5 {
		promo = PieceTypeFromString(strings.ToUpper(string(s[4])))
	}
	for _, m := range pos.ValidMoves() {
		if m.S1() == from && m.S2() == to && m.Promo() == promo {
			mm := m
			return &mm, nil
		}
	}
	return nil, newSanError(SanUnknown, "no legal move matches: "+s)
}

// LongAlgebraicNotation implements long algebraic notation, e.g.
// "Ng1-f3" or "Ng1xf3", as named in this package's documented API.
type LongAlgebraicNotation struct{}

// Encode returns m as piece letter (if any) + origin + separator +
// destination + promotion suffix.
func (LongAlgebraicNotation) Encode(_ *Position, m *Move) string {
	var sb strings.Builder
	if pt := m.Piece().Type(); pt != Pawn {
		sb.WriteString(pt.String())
	}
	sb.WriteString(m.S1().String())
	if m.HasTag(Capture) {
		sb.WriteString("x")
	} else {
		sb.WriteString("-")
	}
	sb.WriteString(m.S2().String())
	if m.Promo() != NoPieceType {
		sb.WriteString("=")
		sb.WriteString(m.Promo().String())
	}
	return sb.String()
}

// Decode parses the permissive long-algebraic pattern of spec.md §4.6
// step 4 and matches it against pos's legal moves.
func (LongAlgebraicNotation) Decode(pos *Position, s string) (*Move, error) {
	cleaned := cleanSAN(strings.TrimSpace(s))
	if m := matchLongAlgebraic(pos.ValidMoves(), cleaned); m != nil {
		return m, nil
	}
	return nil, newSanError(SanUnknown, "no legal move matches: "+s)
}

// sanParts is the syntactic decomposition produced by algebraicNotationParts.
type sanParts struct {
	castle    string
	piece     string
	fromFile  string
	fromRank  string
	capture   bool
	dest      string
	promo     string
}

var reSanSyntax = regexp.MustCompile(`^(?:(O-O-O|O-O)|(?:([KQRBN])?([a-h])?([1-8])?(x)?([a-h][1-9])(?:=([QRBN]))?(?:e\.p\.)?))[+#]?(?:!!|\?\?|!\?|\?!|[!?])?$`)

// algebraicNotationParts validates and decomposes SAN syntax only — it
// does not check legality, piece placement, or disambiguation necessity.
func algebraicNotationParts(s string) (sanParts, error) {
	m := reSanSyntax.FindStringSubmatch(s)
	if m == nil {
		return sanParts{}, newSanError(SanUnknown, "invalid SAN syntax: "+s)
	}
	if m[1] != "" {
		return sanParts{castle: m[1]}, nil
	}
	return sanParts{
		piece:    m[2],
		fromFile: m[3],
		fromRank: m[4],
		capture:  m[5] == "x",
		dest:     m[6],
		promo:    m[7],
	}, nil
}
