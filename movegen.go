package chess

// genPseudoMoves implements C4: every pseudo-legal move for the side to
// move in pos, optionally restricted to a single origin square. It never
// filters for king safety — that's legalMoves' job.
func genPseudoMoves(pos *Position, from Square) MoveList {
	var moves MoveList
	us := pos.turn
	board := pos.board

	for sq := Square(0); sq < 64; sq++ {
		if from != NoSquare && sq != from {
			continue
		}
		p := board.Piece(sq)
		if p == NoPiece || p.Color() != us {
			continue
		}
		switch p.Type() {
		case Pawn:
			genPawnMoves(pos, sq, &moves)
		case Knight:
			genJumpMoves(pos, sq, p, knightAttacks[sq], &moves)
		case King:
			genJumpMoves(pos, sq, p, kingAttacks[sq], &moves)
			genCastleMoves(pos, sq, &moves)
		case Bishop:
			genSlideMoves(pos, sq, p, bishopDirs, &moves)
		case Rook:
			genSlideMoves(pos, sq, p, rookDirs, &moves)
		case Queen:
			genSlideMoves(pos, sq, p, append(append([][2]int{}, rookDirs...), bishopDirs...), &moves)
		}
	}
	return moves
}

func genJumpMoves(pos *Position, from Square, p Piece, targets Bitboard, out *MoveList) {
	own := pos.board.occColor[pos.turn]
	targets &^= own
	for targets != 0 {
		to := targets.PopLSB()
		m := Move{s1: from, s2: to, piece: p}
		if cap := pos.board.Piece(to); cap != NoPiece {
			m.tags |= Capture
			m.captured = cap
		} else {
			m.tags |= Quiet
		}
		*out = append(*out, m)
	}
}

func genSlideMoves(pos *Position, from Square, p Piece, dirs [][2]int, out *MoveList) {
	occ := pos.board.occupied()
	own := pos.board.occColor[pos.turn]
	targets := slideAttacks(from, occ, dirs) &^ own
	for targets != 0 {
		to := targets.PopLSB()
		m := Move{s1: from, s2: to, piece: p}
		if cap := pos.board.Piece(to); cap != NoPiece {
			m.tags |= Capture
			m.captured = cap
		} else {
			m.tags |= Quiet
		}
		*out = append(*out, m)
	}
}

func genPawnMoves(pos *Position, from Square, out *MoveList) {
	us := pos.turn
	piece := NewPiece(us, Pawn)
	board := pos.board
	occ := board.occupied()

	forward := 8
	startRank := Rank2
	promoRank := Rank8
	if us == Black {
		forward = -8
		startRank = Rank7
		promoRank = Rank1
	}

	one := Square(int(from) + forward)
	if one.IsValid() && !occ.IsSet(one) {
		emitPawnAdvance(from, one, piece, promoRank, out)
		if from.Rank() == startRank {
			two := Square(int(from) + 2*forward)
			if !occ.IsSet(two) {
				m := Move{s1: from, s2: two, piece: piece, tags: Quiet | doublePawnPush}
				*out = append(*out, m)
			}
		}
	}

	for _, to := range pawnAttacks[us][from].Squares() {
		if cap := board.Piece(to); cap != NoPiece && cap.Color() != us {
			emitPawnCapture(from, to, piece, cap, promoRank, out)
		} else if to == pos.epSquare && pos.epSquare != NoSquare {
			victimSq := epVictimSquare(us, to)
			victim := board.Piece(victimSq)
			m := Move{s1: from, s2: to, piece: piece, captured: victim, tags: Capture | EnPassant}
			*out = append(*out, m)
		}
	}
}

func emitPawnAdvance(from, to Square, piece Piece, promoRank Rank, out *MoveList) {
	if to.Rank() == promoRank {
		for _, pt := range promoTypes {
			*out = append(*out, Move{s1: from, s2: to, piece: piece, promo: pt, tags: Quiet})
		}
		return
	}
	*out = append(*out, Move{s1: from, s2: to, piece: piece, tags: Quiet})
}

func emitPawnCapture(from, to Square, piece, captured Piece, promoRank Rank, out *MoveList) {
	if to.Rank() == promoRank {
		for _, pt := range promoTypes {
			*out = append(*out, Move{s1: from, s2: to, piece: piece, captured: captured, promo: pt, tags: Capture})
		}
		return
	}
	*out = append(*out, Move{s1: from, s2: to, piece: piece, captured: captured, tags: Capture})
}

// genCastleMoves appends the castling candidates available from the king's
// home square, per spec.md §4.3: square-path and attack-path conditions,
// and never while the mover is already in check.
func genCastleMoves(pos *Position, kingSq Square, out *MoveList) {
	us := pos.turn
	if kingSq != kingHome[us] {
		return
	}
	if pos.inCheck {
		return
	}
	board := pos.board
	occ := board.occupied()
	opp := us.Other()

	if pos.castleRights.CanCastle(us, true) {
		f, g := NewSquare(FileF, relativeHomeRank(us)), NewSquare(FileG, relativeHomeRank(us))
		if !occ.IsSet(f) && !occ.IsSet(g) &&
			!isAttacked(board, kingSq, opp) && !isAttacked(board, f, opp) && !isAttacked(board, g, opp) {
			*out = append(*out, Move{s1: kingSq, s2: g, piece: NewPiece(us, King), tags: KingSideCastle})
		}
	}
	if pos.castleRights.CanCastle(us, false) {
		d, c, bSq := NewSquare(FileD, relativeHomeRank(us)), NewSquare(FileC, relativeHomeRank(us)), NewSquare(FileB, relativeHomeRank(us))
		if !occ.IsSet(d) && !occ.IsSet(c) && !occ.IsSet(bSq) &&
			!isAttacked(board, kingSq, opp) && !isAttacked(board, d, opp) && !isAttacked(board, c, opp) {
			*out = append(*out, Move{s1: kingSq, s2: c, piece: NewPiece(us, King), tags: QueenSideCastle})
		}
	}
}

// legalMoves implements C5: pseudo-legal moves filtered by king safety.
func legalMoves(pos *Position, from Square) MoveList {
	pseudo := genPseudoMoves(pos, from)
	legal := make(MoveList, 0, len(pseudo))
	us := pos.turn
	for _, m := range pseudo {
		next := applyMove(pos, m)
		if !isAttacked(next.board, next.board.kingSquare(us), next.turn) {
			legal = append(legal, m)
		}
	}
	return legal
}
