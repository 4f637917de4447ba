package chess

import (
	"math/bits"
	"strings"
)

// A Bitboard is a 64-bit set of squares, one bit per square using the same
// little-endian rank-file mapping as Square.
type Bitboard uint64

// File and rank masks, used by move generation and attack tables.
const (
	bbFileA Bitboard = 0x0101010101010101
	bbFileH Bitboard = 0x8080808080808080
	bbRank1 Bitboard = 0x00000000000000FF
	bbRank2 Bitboard = bbRank1 << 8
	bbRank4 Bitboard = bbRank1 << (8 * 3)
	bbRank5 Bitboard = bbRank1 << (8 * 4)
	bbRank7 Bitboard = bbRank1 << (8 * 6)
	bbRank8 Bitboard = bbRank1 << (8 * 7)
)

var bbFiles = [8]Bitboard{
	bbFileA, bbFileA << 1, bbFileA << 2, bbFileA << 3,
	bbFileA << 4, bbFileA << 5, bbFileA << 6, bbFileA << 7,
}

var bbRanks = [8]Bitboard{
	bbRank1, bbRank2, bbRank1 << (8 * 2), bbRank4,
	bbRank5, bbRank1 << (8 * 5), bbRank7, bbRank8,
}

// bbSquare returns a bitboard with only sq set.
func bbSquare(sq Square) Bitboard {
	return 1 << Bitboard(sq)
}

// Set returns a copy of b with sq set.
func (b Bitboard) Set(sq Square) Bitboard {
	return b | bbSquare(sq)
}

// Clear returns a copy of b with sq cleared.
func (b Bitboard) Clear(sq Square) Bitboard {
	return b &^ bbSquare(sq)
}

// IsSet reports whether sq is set in b.
func (b Bitboard) IsSet(sq Square) bool {
	return b&bbSquare(sq) != 0
}

// PopCount returns the number of set bits.
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// LSB returns the lowest-indexed set square, or NoSquare if b is empty.
func (b Bitboard) LSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// PopLSB clears and returns the lowest-indexed set square.
func (b *Bitboard) PopLSB() Square {
	sq := b.LSB()
	*b &= *b - 1
	return sq
}

// Any reports whether b has any bit set.
func (b Bitboard) Any() bool {
	return b != 0
}

// Squares returns every set square, in ascending order.
func (b Bitboard) Squares() []Square {
	sqs := make([]Square, 0, b.PopCount())
	for b != 0 {
		sqs = append(sqs, b.PopLSB())
	}
	return sqs
}

// String renders the bitboard as an 8x8 grid, rank 8 first, for debugging.
func (b Bitboard) String() string {
	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		for f := 0; f < 8; f++ {
			if b.IsSet(NewSquare(File(f), Rank(r))) {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
		if r > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
