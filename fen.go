package chess

import (
	"strconv"
	"strings"
)

// decodeFEN implements C7's parse half: six space-separated fields, with
// every rejection in spec.md §4.7 reported as a *FenError whose Kind is one
// of the §7 codes.
func decodeFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return nil, newFenError(FenFieldCount, "expected 6 space-separated fields, got "+strconv.Itoa(len(fields)))
	}

	board, err := decodeFENPlacement(fields[0])
	if err != nil {
		return nil, err
	}

	turn, err := decodeFENSide(fields[1])
	if err != nil {
		return nil, err
	}

	rights, err := decodeFENCastling(fields[2])
	if err != nil {
		return nil, err
	}

	epSquare, err := decodeFENEnPassant(fields[3], turn)
	if err != nil {
		return nil, err
	}

	halfMove, err := decodeFENCounter(fields[4], FenBadCounter, false)
	if err != nil {
		return nil, err
	}

	fullMove, err := decodeFENCounter(fields[5], FenBadCounter, true)
	if err != nil {
		return nil, err
	}

	if board.bb[WhiteKing].PopCount() > 1 || board.bb[BlackKing].PopCount() > 1 {
		return nil, newFenError(FenTooManyKings, "more than one king for a color")
	}

	pos := &Position{
		board:         board,
		turn:          turn,
		castleRights:  rights,
		epSquare:      epSquare,
		halfMoveClock: halfMove,
		moveCount:     fullMove,
	}
	if board.kingSquare(turn) != NoSquare {
		pos.inCheck = isAttacked(board, board.kingSquare(turn), turn.Other())
	}
	return pos, nil
}

func decodeFENPlacement(s string) (*Board, error) {
	rows := strings.Split(s, "/")
	if len(rows) != 8 {
		return nil, newFenError(FenBadPlacement, "expected 8 ranks separated by '/'")
	}

	board := NewBoard()
	for i, row := range rows {
		rank := Rank(7 - i) // FEN rank 8 first
		file := 0
		lastWasDigit := false
		for _, ch := range row {
			switch {
			case ch >= '1' && ch <= '8':
				if lastWasDigit {
					return nil, newFenError(FenBadPlacement, "two consecutive digits in a rank")
				}
				file += int(ch - '0')
				lastWasDigit = true
			default:
				p, ok := pieceFromFENLetter(byte(ch))
				if !ok {
					return nil, newFenError(FenBadPlacement, "illegal piece letter '"+string(ch)+"'")
				}
				if file > 7 {
					return nil, newFenError(FenBadPlacement, "rank sum exceeds 8")
				}
				sq := NewSquare(File(file), rank)
				board = board.setPiece(p, sq)
				file++
				lastWasDigit = false
			}
		}
		if file != 8 {
			return nil, newFenError(FenBadPlacement, "rank does not sum to 8 squares")
		}
	}
	return board, nil
}

func decodeFENSide(s string) (Color, error) {
	switch s {
	case "w":
		return White, nil
	case "b":
		return Black, nil
	default:
		return NoColor, newFenError(FenBadSide, "side to move must be 'w' or 'b', got "+s)
	}
}

func decodeFENCastling(s string) (CastleRights, error) {
	if s == "-" {
		return NoCastleRights, nil
	}
	// Must match the order K?Q?k?q? with no repeats and no foreign
	// letters.
	order := "KQkq"
	bits := [4]CastleRights{CastleWhiteKing, CastleWhiteQueen, CastleBlackKing, CastleBlackQueen}
	idx := 0
	var rights CastleRights
	for _, ch := range s {
		pos := strings.IndexRune(order[idx:], ch)
		if pos < 0 {
			return 0, newFenError(FenBadCastling, "castling field out of KQkq order or unknown letter: "+s)
		}
		idx += pos + 1
		rights |= bits[idx-1]
	}
	return rights, nil
}

func decodeFENEnPassant(s string, turn Color) (Square, error) {
	if s == "-" {
		return NoSquare, nil
	}
	sq, err := ParseSquare(s)
	if err != nil {
		return NoSquare, newFenError(FenBadEp, "en passant target must be '-' or a square like 'e3': "+s)
	}
	// A just-played white pawn push lands an EP target on rank 3 (black
	// to move next); a black push lands it on rank 6 (white to move
	// next). The side-to-move/rank pairing is therefore fixed.
	switch {
	case turn == Black && sq.Rank() != Rank3:
		return NoSquare, newFenError(FenIllegalEp, "black to move implies rank-3 en passant target")
	case turn == White && sq.Rank() != Rank6:
		return NoSquare, newFenError(FenIllegalEp, "white to move implies rank-6 en passant target")
	}
	return sq, nil
}

func decodeFENCounter(s string, kind ErrorKind, mustBePositive bool) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, newFenError(kind, "counter is not an integer: "+s)
	}
	if n < 0 || (mustBePositive && n < 1) {
		return 0, newFenError(kind, "counter out of range: "+s)
	}
	return n, nil
}

// encodeFEN implements C7's serialize half, the exact inverse of decodeFEN.
func encodeFEN(pos *Position) string {
	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		empty := 0
		for f := 0; f < 8; f++ {
			sq := NewSquare(File(f), Rank(r))
			p := pos.board.Piece(sq)
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(p.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if r > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(pos.turn.String())

	sb.WriteByte(' ')
	sb.WriteString(pos.castleRights.String())

	sb.WriteByte(' ')
	sb.WriteString(pos.epSquare.String())

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(pos.halfMoveClock))

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(pos.moveCount))

	return sb.String()
}

// ParseFEN is the exported form of decodeFEN for callers outside this
// package that want a Position directly, without going through Game.
func ParseFEN(fen string) (*Position, error) {
	return decodeFEN(fen)
}
