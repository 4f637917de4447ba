package chess

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasSufficientMaterialKingVsKing(t *testing.T) {
	pos, err := ParseFEN("8/8/8/4k3/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	assert.False(t, pos.Board().hasSufficientMaterial())
	assert.True(t, pos.InsufficientMaterial())
}

func TestHasSufficientMaterialKingAndMinorVsKing(t *testing.T) {
	pos, err := ParseFEN("8/8/8/4k3/8/8/8/3NK3 w - - 0 1")
	require.NoError(t, err)
	assert.False(t, pos.Board().hasSufficientMaterial())
}

func TestHasSufficientMaterialSameColorBishops(t *testing.T) {
	// Both bishops on light squares: drawn, insufficient material.
	pos, err := ParseFEN("8/8/8/4k2b/8/8/8/3BK3 w - - 0 1")
	require.NoError(t, err)
	assert.False(t, pos.Board().hasSufficientMaterial())
}

func TestHasSufficientMaterialOppositeColorBishops(t *testing.T) {
	pos, err := ParseFEN("8/8/8/4k1b1/8/8/8/3BK3 w - - 0 1")
	require.NoError(t, err)
	assert.True(t, pos.Board().hasSufficientMaterial())
}

func TestHasSufficientMaterialWithPawn(t *testing.T) {
	pos, err := ParseFEN("8/8/8/4k3/8/8/4P3/4K3 w - - 0 1")
	require.NoError(t, err)
	assert.True(t, pos.Board().hasSufficientMaterial())
}

func TestBoardPieceLookup(t *testing.T) {
	pos := StartingPosition()
	assert.Equal(t, WhiteRook, pos.Board().Piece(A1))
	assert.Equal(t, BlackKing, pos.Board().Piece(E8))
	assert.Equal(t, NoPiece, pos.Board().Piece(E4))
}

func TestBoardWriteSVGProducesOutput(t *testing.T) {
	pos := StartingPosition()
	var buf bytes.Buffer
	pos.Board().WriteSVG(&buf, 45)
	assert.Contains(t, buf.String(), "<svg")
	assert.Contains(t, buf.String(), "</svg>")
}
