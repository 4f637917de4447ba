package chess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToSANStartingMoves(t *testing.T) {
	pos := StartingPosition()
	cases := map[string]string{
		"e2e4": "e4",
		"g1f3": "Nf3",
		"b1c3": "Nc3",
	}
	for uci, want := range cases {
		var found *Move
		for _, m := range pos.ValidMoves() {
			if m.String() == uci {
				mm := m
				found = &mm
			}
		}
		require.NotNil(t, found, uci)
		assert.Equal(t, want, ToSAN(pos, found))
	}
}

func TestSANDisambiguation(t *testing.T) {
	// Two white rooks can both reach c1: disambiguate by file.
	pos, err := ParseFEN("4k3/8/8/8/8/8/8/R2RK3 w - - 0 1")
	require.NoError(t, err)

	var rookToC1 *Move
	for _, m := range pos.ValidMoves() {
		if m.Piece().Type() == Rook && m.S2() == C1 {
			mm := m
			rookToC1 = &mm
		}
	}
	require.NotNil(t, rookToC1)
	assert.Equal(t, "Rac1", ToSAN(pos, rookToC1))
}

func TestFromSANStrictRoundTrip(t *testing.T) {
	pos := StartingPosition()
	for _, m := range pos.ValidMoves() {
		mm := m
		san := ToSAN(pos, &mm)
		got, err := FromSAN(pos, san, false)
		require.NoError(t, err, san)
		assert.Equal(t, mm.S1(), got.S1())
		assert.Equal(t, mm.S2(), got.S2())
		assert.Equal(t, mm.Promo(), got.Promo())
	}
}

func TestFromSANCheckmate(t *testing.T) {
	// Fool's mate setup: 1.f3 e5 2.g4 Qh4#
	pos, err := ParseFEN("rnb1kbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b KQkq g3 0 2")
	require.NoError(t, err)
	m, err := FromSAN(pos, "Qh4+", false)
	require.NoError(t, err)
	assert.Equal(t, D8, m.S1())
	assert.Equal(t, H4, m.S2())
}

func TestFromSANCastling(t *testing.T) {
	pos, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	m, err := FromSAN(pos, "O-O", false)
	require.NoError(t, err)
	assert.True(t, m.HasTag(KingSideCastle))
	assert.Equal(t, E1, m.S1())
	assert.Equal(t, G1, m.S2())

	m2, err := FromSAN(pos, "O-O-O", false)
	require.NoError(t, err)
	assert.True(t, m2.HasTag(QueenSideCastle))
	assert.Equal(t, C1, m2.S2())
}

func TestFromSANUnknownMove(t *testing.T) {
	pos := StartingPosition()
	_, err := FromSAN(pos, "Qh5", false)
	require.Error(t, err)
	se, ok := err.(*SanError)
	require.True(t, ok)
	assert.Equal(t, SanUnknown, se.Kind)
}

func TestFromSANSloppyLongAlgebraic(t *testing.T) {
	pos := StartingPosition()
	m, err := FromSAN(pos, "e2-e4", true)
	require.NoError(t, err)
	assert.Equal(t, E2, m.S1())
	assert.Equal(t, E4, m.S2())
}

func TestUCINotationRoundTrip(t *testing.T) {
	pos := StartingPosition()
	n := UCINotation{}
	m, err := n.Decode(pos, "e2e4")
	require.NoError(t, err)
	assert.Equal(t, "e2e4", n.Encode(pos, m))
}

func TestLongAlgebraicNotationRoundTrip(t *testing.T) {
	pos := StartingPosition()
	n := LongAlgebraicNotation{}
	for _, m := range pos.ValidMoves() {
		mm := m
		enc := n.Encode(pos, &mm)
		dec, err := n.Decode(pos, enc)
		require.NoError(t, err, enc)
		assert.Equal(t, mm.S1(), dec.S1())
		assert.Equal(t, mm.S2(), dec.S2())
	}
}

func TestValidateSANSyntax(t *testing.T) {
	cases := []struct {
		san     string
		wantErr bool
	}{
		{"e4", false},
		{"Nf3", false},
		{"O-O", false},
		{"O-O-O", false},
		{"exd6", false},
		{"exd6+", false},
		{"Qh4#", false},
		{"e8=Q", false},
		{"e9", false}, // edge case — regex accepts it
		{"exd6e.p.", false},
		{"exd6e.p.+", false},
		{"O-O-O-O", true},
		{"N13f3", true},
		{"NNf3", true},
		{"e8=", true},
		{"e4*", true},
	}
	for _, c := range cases {
		_, err := algebraicNotationParts(c.san)
		if c.wantErr {
			assert.Error(t, err, c.san)
		} else {
			assert.NoError(t, err, c.san)
		}
	}
}
