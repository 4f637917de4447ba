package chess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFENRoundTrip(t *testing.T) {
	fens := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
		"8/8/8/8/4P3/8/8/4K2k b - e3 0 12",
		"rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1",
	}
	for _, fen := range fens {
		pos, err := ParseFEN(fen)
		require.NoError(t, err, fen)
		assert.Equal(t, fen, pos.String())
	}
}

func TestDecodeFENRejections(t *testing.T) {
	cases := []struct {
		name string
		fen  string
		kind ErrorKind
	}{
		{"too few fields", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -", FenFieldCount},
		{"bad rank count", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1", FenBadPlacement},
		{"bad piece letter", "rnbqkbnz/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", FenBadPlacement},
		{"rank overflow", "rnbqkbnrr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", FenBadPlacement},
		{"bad side", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1", FenBadSide},
		{"bad castling letter", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkqx - 0 1", FenBadCastling},
		{"castling out of order", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w qkKQ - 0 1", FenBadCastling},
		{"bad ep square", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq z9 0 1", FenBadEp},
		{"ep rank mismatch white to move", "rnbqkbnr/pppp1ppp/8/4p3/8/8/PPPPPPPP/RNBQKBNR w KQkq e3 0 1", FenIllegalEp},
		{"ep rank mismatch black to move", "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e6 0 1", FenIllegalEp},
		{"bad half move counter", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - x 1", FenBadCounter},
		{"zero full move counter", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 0", FenBadCounter},
		{"two kings same color", "knbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", FenTooManyKings},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseFEN(c.fen)
			require.Error(t, err)
			fe, ok := err.(*FenError)
			require.True(t, ok, "expected *FenError, got %T", err)
			assert.Equal(t, c.kind, fe.Kind)
		})
	}
}

func TestEncodeFENStartingPosition(t *testing.T) {
	pos := StartingPosition()
	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", pos.String())
}

func TestDecodeFENEnPassantAccepted(t *testing.T) {
	pos, err := ParseFEN("rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 3")
	require.NoError(t, err)
	assert.Equal(t, E6, pos.EnPassantSquare())
}
