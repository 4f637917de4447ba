package chess

// Zobrist hashing gives positions a cheap, order-independent equality key:
// equal hashes indicate (overwhelmingly likely) equal positions, used for
// fast repetition lookups instead of repeated samePosition scans.
var (
	zobristPiece      [13][64]uint64 // indexed by Piece, including NoPiece (unused) for simplicity
	zobristCastling   [16]uint64
	zobristEnPassant  [8]uint64 // one per file
	zobristSideToMove uint64
)

func init() {
	rng := &zobristPRNG{state: 0x9E3779B97F4A7C15}
	for p := WhiteKing; p <= BlackPawn; p++ {
		for sq := A1; sq <= H8; sq++ {
			zobristPiece[p][sq] = rng.next()
		}
	}
	for i := range zobristCastling {
		zobristCastling[i] = rng.next()
	}
	for f := range zobristEnPassant {
		zobristEnPassant[f] = rng.next()
	}
	zobristSideToMove = rng.next()
}

// zobristPRNG is a fixed-seed xorshift64* generator, used only to build the
// zobrist tables deterministically at init time.
type zobristPRNG struct {
	state uint64
}

func (p *zobristPRNG) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

// Hash returns a Zobrist hash over the repetition-relevant subset of pos:
// piece placement, side to move, castling rights and en passant square —
// the same fields samePosition compares, so equal positions under spec.md
// §9's repetition rule always hash equal.
func (pos *Position) Hash() uint64 {
	var h uint64
	for sq := A1; sq <= H8; sq++ {
		if p := pos.board.Piece(sq); p != NoPiece {
			h ^= zobristPiece[p][sq]
		}
	}
	h ^= zobristCastling[pos.castleRights]
	if pos.epSquare != NoSquare {
		h ^= zobristEnPassant[pos.epSquare.File()]
	}
	if pos.turn == Black {
		h ^= zobristSideToMove
	}
	return h
}
