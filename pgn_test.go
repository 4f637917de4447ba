package chess

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// sanLine flattens a game's main line to its SAN move strings, for
// diffing against an expected sequence without caring about whitespace or
// move-number formatting.
func sanLine(g *Game) []string {
	var out []string
	for _, m := range g.Moves() {
		mm := m
		out = append(out, cleanSAN(ToSAN(m.Parent().Position(), &mm)))
	}
	return out
}

func mustPGNGame(t *testing.T, pgn string) *Game {
	t.Helper()
	opt, err := PGN(strings.NewReader(pgn))
	require.NoError(t, err)
	g := NewGame(opt)
	return g
}

func TestPGNMainLineMoves(t *testing.T) {
	pgn := `[Event "Test"]

1. e4 e5 2. Nf3 Nc6 3. Bb5 *`
	g := mustPGNGame(t, pgn)

	want := []string{"e4", "e5", "Nf3", "Nc6", "Bb5"}
	if diff := cmp.Diff(want, sanLine(g)); diff != "" {
		t.Errorf("main line mismatch (-want +got):\n%s", diff)
	}
}

func TestPGNTagPairs(t *testing.T) {
	pgn := `[Event "Casual Game"]
[White "Player A"]
[Black "Player B"]
[Result "1-0"]

1. e4 e5 2. Qh5 1-0`
	g := mustPGNGame(t, pgn)

	want := TagPairs{
		"Event":  "Casual Game",
		"White":  "Player A",
		"Black":  "Player B",
		"Result": "1-0",
	}
	got := TagPairs{}
	for k, v := range want {
		got[k] = g.GetTagPair(k)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tag pairs mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, WhiteWon, g.Outcome())
}

func TestPGNVariation(t *testing.T) {
	pgn := `1. e4 e5 (1... c5 2. Nf3) 2. Nf3 *`
	g := mustPGNGame(t, pgn)

	want := []string{"e4", "e5", "Nf3"}
	if diff := cmp.Diff(want, sanLine(g)); diff != "" {
		t.Errorf("main line with variation present mismatch (-want +got):\n%s", diff)
	}

	root := g.GetRootMove()
	require.Len(t, root.Children(), 1)
	e4 := root.Children()[0]
	// e4 has two children: the main-line e5 and the sibling variation c5,
	// since "(1... c5 2. Nf3)" is an alternative to black's first move.
	require.Len(t, e4.Children(), 2)
	var e5, c5 *Move
	for _, c := range e4.Children() {
		mm := *c
		switch cleanSAN(ToSAN(e4.Position(), &mm)) {
		case "e5":
			e5 = c
		case "c5":
			c5 = c
		}
	}
	require.NotNil(t, e5)
	require.NotNil(t, c5)
	require.Len(t, e5.Children(), 1)
	require.Len(t, c5.Children(), 1)
}

func TestPGNComments(t *testing.T) {
	pgn := `1. e4 {best by test} e5 2. Nf3 Nc6 *`
	g := mustPGNGame(t, pgn)

	moves := g.Moves()
	require.NotEmpty(t, moves)
	require.Equal(t, "best by test", moves[0].Comments())
}

func TestPGNUCIMoveList(t *testing.T) {
	g := mustPGNGame(t, "e2e4 e7e5 g1f3")
	want := []string{"e4", "Nf3"}
	got := sanLine(g)
	if diff := cmp.Diff(want, []string{got[0], got[2]}); diff != "" {
		t.Errorf("uci-notation game line mismatch (-want +got):\n%s", diff)
	}
}

func TestPGNRoundTripThroughGameString(t *testing.T) {
	pgn := `[Event "Round-trip"]

1. e4 e5 2. Nf3 Nc6 3. Bb5 a6 *`
	g := mustPGNGame(t, pgn)

	reparsed := mustPGNGame(t, g.String())
	if diff := cmp.Diff(sanLine(g), sanLine(reparsed)); diff != "" {
		t.Errorf("round trip through Game.String/PGN mismatch (-want +got):\n%s", diff)
	}
}

func TestPGNUnterminatedCommentError(t *testing.T) {
	pgn := `1. e4 {unterminated e5 2. Nf3 *`
	_, err := PGN(strings.NewReader(pgn))
	require.Error(t, err)
}
