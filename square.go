package chess

import "fmt"

// A Square is one of the 64 squares on a chess board.
//
// Squares use little-endian rank-file mapping: a1 is 0, h1 is 7, a8 is 56,
// h8 is 63.  NoSquare represents the absence of a square (e.g. no en
// passant target).
type Square uint8

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8

	// NoSquare indicates the absence of a square.
	NoSquare Square = 64
)

// A File is the file (column) of a square, 0 (a-file) through 7 (h-file).
type File int8

const (
	FileA File = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

// A Rank is the rank (row) of a square, 0 (rank 1) through 7 (rank 8).
type Rank int8

const (
	Rank1 Rank = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

var fileNames = [8]string{"a", "b", "c", "d", "e", "f", "g", "h"}

var rankNames = [8]string{"1", "2", "3", "4", "5", "6", "7", "8"}

// NewSquare returns the square at the given file and rank.
func NewSquare(f File, r Rank) Square {
	return Square(int(r)*8 + int(f))
}

// File returns the square's file.
func (sq Square) File() File {
	return File(sq & 7)
}

// Rank returns the square's rank.
func (sq Square) Rank() Rank {
	return Rank(sq >> 3)
}

// IsValid reports whether sq is one of the 64 board squares.
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// String returns the square in algebraic notation, e.g. "e4", or "-" for
// NoSquare.
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return fileNames[sq.File()] + rankNames[sq.Rank()]
}

// String returns the file letter, e.g. "a".
func (f File) String() string {
	if f < FileA || f > FileH {
		return "-"
	}
	return fileNames[f]
}

// String returns the rank digit, e.g. "1".
func (r Rank) String() string {
	if r < Rank1 || r > Rank8 {
		return "-"
	}
	return rankNames[r]
}

// ParseSquare parses algebraic notation, e.g. "e4", into a Square.  It
// returns NoSquare and a non-nil error if s isn't a valid square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("chess: invalid square %q", s)
	}
	f := s[0] - 'a'
	r := s[1] - '1'
	if f > 7 || r > 7 {
		return NoSquare, fmt.Errorf("chess: invalid square %q", s)
	}
	return NewSquare(File(f), Rank(r)), nil
}

// parseSquare is a panic-free, error-free variant used internally by the
// notation decoders, which already validate shape before calling it.
func parseSquare(s string) Square {
	sq, err := ParseSquare(s)
	if err != nil {
		return NoSquare
	}
	return sq
}

// relativeRank returns the rank of sq from the perspective of c: for White
// rank 0 is the first rank, for Black it's the eighth.
func relativeRank(c Color, sq Square) Rank {
	if c == White {
		return sq.Rank()
	}
	return Rank(7 - int(sq.Rank()))
}
