package chess

// A Color represents the color of a chess piece or side to move.
type Color int8

const (
	NoColor Color = iota
	White
	Black
)

// Other returns the opposing color.
func (c Color) Other() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	default:
		return NoColor
	}
}

// String implements fmt.Stringer.
func (c Color) String() string {
	switch c {
	case White:
		return "w"
	case Black:
		return "b"
	default:
		return "-"
	}
}

// Name returns the English name of the color.
func (c Color) Name() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// A PieceType identifies the kind of chess piece, independent of color.
type PieceType int8

const (
	NoPieceType PieceType = iota
	King
	Queen
	Rook
	Bishop
	Knight
	Pawn
)

// promoTypes lists the four promotion piece types in generation order;
// used where deterministic ordering of promotions matters.
var promoTypes = [4]PieceType{Queen, Rook, Bishop, Knight}

// String returns the uppercase algebraic letter for the piece type ("P"
// for pawns), or "" for NoPieceType.
func (pt PieceType) String() string {
	switch pt {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return "P"
	default:
		return ""
	}
}

// PieceTypeFromString parses an uppercase piece letter ("K","Q","R","B","N")
// or "P"/"" for pawn into a PieceType.  Unknown input returns NoPieceType.
func PieceTypeFromString(s string) PieceType {
	switch s {
	case "K":
		return King
	case "Q":
		return Queen
	case "R":
		return Rook
	case "B":
		return Bishop
	case "N":
		return Knight
	case "P", "":
		return Pawn
	default:
		return NoPieceType
	}
}

// A Piece is a colored chess piece, e.g. White Knight.
type Piece int8

const (
	NoPiece Piece = iota
	WhiteKing
	WhiteQueen
	WhiteRook
	WhiteBishop
	WhiteKnight
	WhitePawn
	BlackKing
	BlackQueen
	BlackRook
	BlackBishop
	BlackKnight
	BlackPawn
)

// NewPiece returns the Piece for the given color and type, or NoPiece if
// either is unset.
func NewPiece(c Color, pt PieceType) Piece {
	if c == NoColor || pt == NoPieceType {
		return NoPiece
	}
	if c == White {
		return Piece(pt)
	}
	return Piece(int8(pt) + 6)
}

// Color returns the piece's color.
func (p Piece) Color() Color {
	switch {
	case p == NoPiece:
		return NoColor
	case p <= WhitePawn:
		return White
	default:
		return Black
	}
}

// Type returns the piece's kind.
func (p Piece) Type() PieceType {
	switch p {
	case NoPiece:
		return NoPieceType
	case WhiteKing, BlackKing:
		return King
	case WhiteQueen, BlackQueen:
		return Queen
	case WhiteRook, BlackRook:
		return Rook
	case WhiteBishop, BlackBishop:
		return Bishop
	case WhiteKnight, BlackKnight:
		return Knight
	default:
		return Pawn
	}
}

// pieceLetters maps every piece to its FEN letter (uppercase for White,
// lowercase for Black).
var pieceLetters = map[Piece]string{
	WhiteKing: "K", WhiteQueen: "Q", WhiteRook: "R", WhiteBishop: "B", WhiteKnight: "N", WhitePawn: "P",
	BlackKing: "k", BlackQueen: "q", BlackRook: "r", BlackBishop: "b", BlackKnight: "n", BlackPawn: "p",
}

// String returns the FEN letter for the piece, or "" for NoPiece.
func (p Piece) String() string {
	return pieceLetters[p]
}

// pieceFromFENLetter parses a single FEN board letter into a Piece.  ok is
// false for any letter outside {pnbrqkPNBRQK}.
func pieceFromFENLetter(b byte) (Piece, bool) {
	switch b {
	case 'K':
		return WhiteKing, true
	case 'Q':
		return WhiteQueen, true
	case 'R':
		return WhiteRook, true
	case 'B':
		return WhiteBishop, true
	case 'N':
		return WhiteKnight, true
	case 'P':
		return WhitePawn, true
	case 'k':
		return BlackKing, true
	case 'q':
		return BlackQueen, true
	case 'r':
		return BlackRook, true
	case 'b':
		return BlackBishop, true
	case 'n':
		return BlackKnight, true
	case 'p':
		return BlackPawn, true
	default:
		return NoPiece, false
	}
}
