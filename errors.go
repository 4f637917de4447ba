package chess

import (
	"errors"
	"fmt"
)

// ErrNoGameFound is returned by PGN when the input contains no parseable
// game data at all (neither PGN movetext nor a coordinate-move list).
var ErrNoGameFound = errors.New("chess: no game found in input")

// An ErrorKind is a stable, enumerated reason code for a codec failure, per
// spec.md §7. Callers can switch on Kind() without parsing error strings.
type ErrorKind string

const (
	FenFieldCount      ErrorKind = "FenFieldCount"
	FenBadPlacement    ErrorKind = "FenBadPlacement"
	FenBadSide         ErrorKind = "FenBadSide"
	FenBadCastling     ErrorKind = "FenBadCastling"
	FenBadEp           ErrorKind = "FenBadEp"
	FenIllegalEp       ErrorKind = "FenIllegalEp"
	FenBadCounter      ErrorKind = "FenBadCounter"
	FenTooManyKings    ErrorKind = "FenTooManyKings"
	SanUnknown         ErrorKind = "SanUnknown"
	SanAmbiguous       ErrorKind = "SanAmbiguous"
	PgnMalformedHeader ErrorKind = "PgnMalformedHeader"
	PgnUnterminatedComment ErrorKind = "PgnUnterminatedComment"
	PgnIllegalMove     ErrorKind = "PgnIllegalMove"
)

// A FenError is returned by decodeFEN / ParseFEN.
type FenError struct {
	Kind ErrorKind
	Msg  string
}

func (e *FenError) Error() string {
	return fmt.Sprintf("chess: fen: %s: %s", e.Kind, e.Msg)
}

func newFenError(kind ErrorKind, msg string) *FenError {
	return &FenError{Kind: kind, Msg: msg}
}

// A SanError is returned by AlgebraicNotation.Decode and friends.
type SanError struct {
	Kind ErrorKind
	Msg  string
}

func (e *SanError) Error() string {
	return fmt.Sprintf("chess: san: %s: %s", e.Kind, e.Msg)
}

func newSanError(kind ErrorKind, msg string) *SanError {
	return &SanError{Kind: kind, Msg: msg}
}

// A PgnError is returned by the PGN scanner and tokenizer.
type PgnError struct {
	Kind ErrorKind
	Msg  string
}

func (e *PgnError) Error() string {
	return fmt.Sprintf("chess: pgn: %s: %s", e.Kind, e.Msg)
}

func newPgnError(kind ErrorKind, msg string) *PgnError {
	return &PgnError{Kind: kind, Msg: msg}
}

// A ParserError is returned by Parser.Parse with the token position at
// which parsing failed, for callers that want to point at the offending
// text rather than just report a message.
type ParserError struct {
	Message    string
	TokenType  TokenType
	TokenValue string
	Position   int
}

func (e *ParserError) Error() string {
	if e.TokenValue != "" {
		return fmt.Sprintf("chess: pgn: %s (token %q at position %d)", e.Message, e.TokenValue, e.Position)
	}
	return fmt.Sprintf("chess: pgn: %s (position %d)", e.Message, e.Position)
}
