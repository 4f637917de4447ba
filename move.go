package chess

import "strings"

// A MoveTag is a bitmask of properties a Move carries in addition to its
// origin/destination/promotion, mirroring spec.md's move flags.
type MoveTag uint16

const (
	// Quiet indicates a non-capturing, non-special move.
	Quiet MoveTag = 1 << iota
	// Capture indicates the move captures an enemy piece (including en
	// passant).
	Capture
	// EnPassant indicates an en passant capture.
	EnPassant
	// KingSideCastle indicates a short castle.
	KingSideCastle
	// QueenSideCastle indicates a long castle.
	QueenSideCastle
	// Check indicates the move delivers check. Neither the move generator
	// nor the notation decoders set it on the moves they return.
	Check
	// doublePawnPush marks a pawn's two-square advance from its starting
	// rank, as emitted by the move generator.
	doublePawnPush
)

// HasTag reports whether m carries the given tag.
func (m Move) HasTag(t MoveTag) bool {
	return m.tags&t != 0
}

// AddTag sets t on m.
func (m *Move) AddTag(t MoveTag) {
	m.tags |= t
}

// A Move is a single ply: origin square, destination square, an optional
// promotion piece type, and a tag bitmask. Moves are produced only by the
// generator (pseudo-legal or legal) or by decoding a notation string
// against a Position; Position.Update assumes a move it's given was
// produced that way.
type Move struct {
	s1       Square
	s2       Square
	promo    PieceType
	tags     MoveTag
	piece    Piece // the piece that moved, cached for notation/SAN
	captured Piece // the piece captured, if any, cached for notation/SAN

	number   uint      // PGN move number, set by the parser/writer
	nag      string     // numeric annotation glyph, e.g. "$1"
	comments string     // post-move comment text
	command  map[string]string // [%clk ...] style annotations
	position *Position  // resulting position, cached by the façade

	parent   *Move
	children []*Move
}

// S1 returns the move's origin square.
func (m Move) S1() Square { return m.s1 }

// S2 returns the move's destination square.
func (m Move) S2() Square { return m.s2 }

// Promo returns the move's promotion piece type, or NoPieceType.
func (m Move) Promo() PieceType { return m.promo }

// Tags returns the move's tag bitmask.
func (m Move) Tags() MoveTag { return m.tags }

// Piece returns the piece that made the move.
func (m Move) Piece() Piece { return m.piece }

// CapturedPiece returns the piece captured by the move, or NoPiece.
func (m Move) CapturedPiece() Piece { return m.captured }

// Parent returns the move's parent in the game tree, or nil at the root.
func (m *Move) Parent() *Move { return m.parent }

// Children returns the move's children (the main line is index 0).
func (m *Move) Children() []*Move { return m.children }

// Position returns the position that resulted from this move, if cached.
func (m *Move) Position() *Position { return m.position }

// Comments returns the comment text attached to this move.
func (m *Move) Comments() string { return m.comments }

// NAG returns the numeric annotation glyph attached to this move, if any.
func (m *Move) NAG() string { return m.nag }

// Number returns the PGN move number associated with this move.
func (m *Move) Number() uint { return m.number }

// AddComment appends comment to the move's comment text as is.
func (m *Move) AddComment(comment string) { m.comments += comment }

// SetCommand sets the [%key value] annotation key on the move to value.
func (m *Move) SetCommand(key, value string) {
	if m.command == nil {
		m.command = make(map[string]string)
	}
	m.command[key] = value
}

// Clone returns a shallow copy of m with no parent and no children.
func (m *Move) Clone() *Move {
	clone := *m
	clone.parent = nil
	clone.children = nil
	if m.command != nil {
		clone.command = make(map[string]string, len(m.command))
		for k, v := range m.command {
			clone.command[k] = v
		}
	}
	return &clone
}

// cloneChildren deep-copies children onto m, recursively, preserving
// parent pointers; used by Game.Clone.
func (m *Move) cloneChildren(children []*Move) {
	m.children = make([]*Move, len(children))
	for i, c := range children {
		cc := c.Clone()
		cc.parent = m
		cc.cloneChildren(c.children)
		m.children[i] = cc
	}
}

// String returns the move in UCI (long algebraic coordinate) form, e.g.
// "e2e4" or "e7e8q".
func (m Move) String() string {
	var sb strings.Builder
	sb.WriteString(m.s1.String())
	sb.WriteString(m.s2.String())
	if m.promo != NoPieceType {
		sb.WriteString(strings.ToLower(m.promo.String()))
	}
	return sb.String()
}

// A MoveList is a sequence of moves, used as the return type of move
// generation so callers get stable, index-addressable results.
type MoveList []Move
