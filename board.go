package chess

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"
)

// A Board is a placement of pieces on the 64 squares, backed by one
// bitboard per piece (indexed by Piece) plus derived per-color occupancy.
// Boards are immutable: every placement change returns a new Board value.
type Board struct {
	bb       [13]Bitboard // indexed by Piece; bb[NoPiece] is always 0
	occColor [3]Bitboard  // indexed by Color; occColor[NoColor] is always 0
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{}
}

// occupied returns the bitboard of every occupied square.
func (b *Board) occupied() Bitboard {
	return b.occColor[White] | b.occColor[Black]
}

// Piece returns the piece occupying sq, or NoPiece if it's empty.
func (b *Board) Piece(sq Square) Piece {
	mask := bbSquare(sq)
	for p := WhiteKing; p <= BlackPawn; p++ {
		if b.bb[p]&mask != 0 {
			return p
		}
	}
	return NoPiece
}

// copy returns a deep copy of the board (cheap: two fixed-size arrays).
func (b *Board) copy() *Board {
	nb := *b
	return &nb
}

// setPiece returns a copy of b with p placed on sq (sq must be empty of
// any other piece — callers clear first when replacing).
func (b *Board) setPiece(p Piece, sq Square) *Board {
	nb := b.copy()
	nb.bb[p] = nb.bb[p].Set(sq)
	nb.occColor[p.Color()] = nb.occColor[p.Color()].Set(sq)
	return nb
}

// clearSquare returns a copy of b with sq emptied, whatever piece (if any)
// occupied it.
func (b *Board) clearSquare(sq Square) *Board {
	p := b.Piece(sq)
	if p == NoPiece {
		return b.copy()
	}
	nb := b.copy()
	nb.bb[p] = nb.bb[p].Clear(sq)
	nb.occColor[p.Color()] = nb.occColor[p.Color()].Clear(sq)
	return nb
}

// movePiece returns a copy of b with whatever is on from moved to to,
// capturing (removing) anything that was on to.
func (b *Board) movePiece(from, to Square) *Board {
	p := b.Piece(from)
	nb := b.clearSquare(to).clearSquare(from)
	if p != NoPiece {
		nb = nb.setPiece(p, to)
	}
	return nb
}

// kingSquare returns the square of c's king, or NoSquare if absent.
func (b *Board) kingSquare(c Color) Square {
	return b.bb[NewPiece(c, King)].LSB()
}

// pieceCount returns the number of pieces of the given color and type.
func (b *Board) pieceCount(c Color, pt PieceType) int {
	return b.bb[NewPiece(c, pt)].PopCount()
}

// hasSufficientMaterial reports whether the position has enough material
// for either side to deliver checkmate with best play. It covers the three
// standard draw-by-insufficient-material cases: king vs king, king+minor
// vs king, king+bishop vs king+bishop on the same color complex, and
// nothing beyond that (two knights, bishop pair, any pawn or rook or
// queen, are all "sufficient" even though some such positions are drawn in
// practice — that's the conventional, conservative definition used by FEN
// tooling and by the teacher's own draw detection).
func (b *Board) hasSufficientMaterial() bool {
	var minorsOrMore int
	var whiteBishops, blackBishops Bitboard

	for sq := Square(0); sq < 64; sq++ {
		p := b.Piece(sq)
		switch p.Type() {
		case Pawn, Rook, Queen:
			if p != NoPiece {
				return true
			}
		case Knight:
			minorsOrMore++
		case Bishop:
			minorsOrMore++
			if p.Color() == White {
				whiteBishops = whiteBishops.Set(sq)
			} else {
				blackBishops = blackBishops.Set(sq)
			}
		}
	}

	switch {
	case minorsOrMore == 0:
		// King vs king.
		return false
	case minorsOrMore == 1:
		// King + one minor vs king.
		return false
	case minorsOrMore == 2 && whiteBishops.PopCount() == 1 && blackBishops.PopCount() == 1:
		// King+bishop vs king+bishop is a draw only when both
		// bishops sit on the same square color complex.
		return squareColor(whiteBishops.LSB()) != squareColor(blackBishops.LSB())
	default:
		return true
	}
}

// squareColor reports the color of the square's complex (light/dark),
// encoded as file+rank parity.
func squareColor(sq Square) int {
	return (int(sq.File()) + int(sq.Rank())) % 2
}

// WriteSVG renders the board as an SVG diagram (light/dark squares plus
// piece letters) to w. It is a visualization export, not a debug dump: the
// core never parses or round-trips it.
func (b *Board) WriteSVG(w io.Writer, squareSize int) {
	dim := squareSize * 8
	canvas := svg.New(w)
	canvas.Start(dim, dim)
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			x := f * squareSize
			y := (7 - r) * squareSize
			color := "#f0d9b5"
			if (f+r)%2 == 1 {
				color = "#b58863"
			}
			canvas.Rect(x, y, squareSize, squareSize, "fill:"+color)

			sq := NewSquare(File(f), Rank(r))
			if p := b.Piece(sq); p != NoPiece {
				label := pieceGlyph(p)
				textColor := "#000000"
				if p.Color() == White {
					textColor = "#ffffff"
				}
				canvas.Text(x+squareSize/2, y+squareSize/2+squareSize/6, label,
					fmt.Sprintf("text-anchor:middle;font-size:%dpx;fill:%s", squareSize/2, textColor))
			}
		}
	}
	canvas.End()
}

var pieceGlyphs = map[Piece]string{
	WhiteKing: "♔", WhiteQueen: "♕", WhiteRook: "♖",
	WhiteBishop: "♗", WhiteKnight: "♘", WhitePawn: "♙",
	BlackKing: "♚", BlackQueen: "♛", BlackRook: "♜",
	BlackBishop: "♝", BlackKnight: "♞", BlackPawn: "♟",
}

func pieceGlyph(p Piece) string {
	return pieceGlyphs[p]
}
