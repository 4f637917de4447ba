/*
Package chess provides PGN (Portable Game Notation) parsing functionality,
supporting standard chess notation including moves, variations, comments,
annotations, and game metadata.
Example usage:

	// Create parser from tokens
	tokens, err := TokenizeGame(game)
	parser := NewParser(tokens)

	// Parse complete game
	game, err := parser.Parse()
*/
package chess

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
)

// Parser holds the state needed during parsing.
type Parser struct {
	game        *Game
	currentMove *Move
	tokens      []Token
	errors      []ParserError
	position    int
}

// NewParser creates a new parser instance initialized with the given tokens.
// The parser starts with a root move containing the starting position.
//
// Example:
//
//	tokens, err := TokenizeGame(game)
//	parser := NewParser(tokens)
func NewParser(tokens []Token) *Parser {
	rootMove := &Move{
		position: StartingPosition(),
	}
	return &Parser{
		tokens: tokens,
		game: &Game{
			tagPairs:    make(TagPairs),
			pos:         StartingPosition(),
			rootMove:    rootMove, // Empty root move
			currentMove: rootMove,
		},
		currentMove: rootMove,
	}
}

// currentToken returns the current token being processed.
func (p *Parser) currentToken() Token {
	if p.position >= len(p.tokens) {
		return Token{Type: EOF}
	}
	return p.tokens[p.position]
}

// advance moves to the next token.
func (p *Parser) advance() {
	p.position++
}

// Parse processes all tokens and returns the complete game.
// This includes parsing header information (tags), moves,
// variations, comments, and the game result.
//
// Returns an error if the PGN is malformed or contains illegal moves.
//
// Example:
//
//	game, err := parser.Parse()
//	if err != nil {
//	    log.Fatal("Error parsing game:", err)
//	}
//	fmt.Printf("Event: %s\n", game.GetTagPair("Event"))
func (p *Parser) Parse() (*Game, error) {
	// Parse header section (tag pairs)
	if err := p.parseHeader(); err != nil {
		return nil, errors.New("parsing header")
	}

	// check if the game has a starting position
	if value, ok := p.game.tagPairs["FEN"]; ok {
		pos, err := decodeFEN(value)
		if err != nil {
			return nil, errors.New("invalid FEN")
		}
		p.game.rootMove.position = pos
		p.game.pos = pos
	}

	// Parse moves section
	if err := p.parseMoveText(); err != nil {
		return nil, err
	}

	if p.game.outcome == UnknownOutcome {
		p.game.outcome = NoOutcome
	}
	p.game.currentMove = p.currentMove

	return p.game, nil
}

func (p *Parser) parseHeader() error {
	for p.currentToken().Type == TagStart {
		if err := p.parseTagPair(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) parseTagPair() error {
	// Expect [
	if p.currentToken().Type != TagStart {
		return &ParserError{
			Message:    "expected tag start",
			TokenType:  p.currentToken().Type,
			TokenValue: p.currentToken().Value,
			Position:   p.position,
		}
	}
	p.advance()

	// Get key
	if p.currentToken().Type != TagKey {
		return &ParserError{
			Message:    "expected tag key",
			TokenType:  p.currentToken().Type,
			TokenValue: p.currentToken().Value,
			Position:   p.position,
		}
	}
	key := p.currentToken().Value
	p.advance()

	// Get value
	if p.currentToken().Type != TagValue {
		return &ParserError{
			Message:    "expected tag value",
			TokenType:  p.currentToken().Type,
			TokenValue: p.currentToken().Value,
			Position:   p.position,
		}
	}
	value := p.currentToken().Value
	p.advance()

	// Expect ]
	if p.currentToken().Type != TagEnd {
		return &ParserError{
			Message:    "expected tag end",
			TokenType:  p.currentToken().Type,
			TokenValue: p.currentToken().Value,
			Position:   p.position,
		}
	}
	p.advance()

	// Store tag pair
	p.game.tagPairs[key] = value
	return nil
}

func (p *Parser) parseMoveText() error {
	var moveNumber uint64
	ply := 1
	for p.position < len(p.tokens) {
		token := p.currentToken()

		switch token.Type {
		case MoveNumber:
			number, err := strconv.ParseUint(token.Value, 10, 32)
			if err == nil && p.currentMove != nil {
				moveNumber = number
				ply = int((moveNumber-1)*2 + 1)
			}
			p.advance()
			if p.currentToken().Type == DOT {
				p.advance()
			}

		case ELLIPSIS:
			p.advance()
			ply++

		case PIECE, SQUARE, FILE, KingsideCastle, QueensideCastle:
			move, err := p.parseMove()
			if err != nil {
				return err
			}
			if moveNumber > 0 {
				move.number = uint(moveNumber)
			}
			p.addMove(move)
			ply++

			// Collect all NAGs and comments that follow the move
		collectLoop:
			for {
				tok := p.currentToken()
				switch tok.Type {
				case NAG:
					p.currentMove.nag = tok.Value
					p.advance()
				case CommentStart:
					comment, commandMap, err := p.parseComment()
					if err != nil {
						return err
					}
					if p.currentMove != nil {
						if p.currentMove.command != nil {
							maps.Copy(p.currentMove.command, commandMap)
						} else {
							p.currentMove.command = commandMap
						}
						if p.currentMove.comments != "" {
							p.currentMove.comments += " " + comment
						} else {
							p.currentMove.comments = comment
						}
					}
				default:
					break collectLoop
				}
			}

		case CommentStart:
			comment, commandMap, err := p.parseComment()
			if err != nil {
				return err
			}
			if p.currentMove != nil {
				if p.currentMove.command != nil {
					maps.Copy(p.currentMove.command, commandMap)
				} else {
					p.currentMove.command = commandMap
				}
				if p.currentMove.comments != "" {
					p.currentMove.comments += " " + comment
				} else {
					p.currentMove.comments = comment
				}
			}

		case VariationStart:
			if err := p.parseVariation(moveNumber, ply); err != nil {
				return err
			}

		case RESULT:
			p.parseResult()
			return nil

		default:
			p.advance()
		}
	}
	return nil
}

// parseMove processes tokens until it has a complete move, then validates against legal moves.
func (p *Parser) parseMove() (*Move, error) {
	move := &Move{}

	// Handle castling first as it's a special case
	if p.currentToken().Type == KingsideCastle {
		move.tags = KingSideCastle
		for _, m := range p.game.pos.ValidMoves() {
			if m.HasTag(KingSideCastle) {
				move.s1 = m.S1()
				move.s2 = m.S2()
				move.piece = m.piece
				move.position = p.game.pos.copy()
				if m.HasTag(Check) {
					move.AddTag(Check)
				}
				p.advance()
				return move, nil
			}
		}
		return nil, &ParserError{
			Message:    "illegal kingside castle",
			TokenType:  p.currentToken().Type,
			TokenValue: p.currentToken().Value,
			Position:   p.position,
		}
	}

	if p.currentToken().Type == QueensideCastle {
		move.tags = QueenSideCastle
		for _, m := range p.game.pos.ValidMoves() {
			if m.HasTag(QueenSideCastle) {
				move.s1 = m.S1()
				move.s2 = m.S2()
				move.piece = m.piece
				move.position = p.game.pos.copy()
				if m.HasTag(Check) {
					move.AddTag(Check)
				}
				p.advance()
				return move, nil
			}
		}
		return nil, &ParserError{
			Message:    "illegal queenside castle",
			TokenType:  p.currentToken().Type,
			TokenValue: p.currentToken().Value,
			Position:   p.position,
		}
	}

	// Parse regular move
	var moveData struct {
		piece      string    // The piece type (if any)
		originFile string    // Disambiguation file
		originRank string    // Disambiguation rank
		destSquare string    // Destination square
		isCapture  bool      // Whether it's a capture
		promotion  PieceType // Promotion piece type
	}

	// First token could be piece, file (for pawn moves), or square
	switch p.currentToken().Type {
	case PIECE:
		moveData.piece = p.currentToken().Value
		p.advance()

		// Check for disambiguation
		if p.currentToken().Type == FILE {
			moveData.originFile = p.currentToken().Value
			p.advance()
		} else if p.currentToken().Type == RANK {
			moveData.originRank = p.currentToken().Value
			p.advance()
		} else if p.currentToken().Type == DeambiguationSquare {
			// Full square disambiguation (e.g., "Qe8f7" -> piece: Q, origin: e8, dest: f7)
			originSquare := p.currentToken().Value
			if len(originSquare) == 2 {
				moveData.originFile = string(originSquare[0])
				moveData.originRank = string(originSquare[1])
			}
			p.advance()
		}

	case FILE:
		moveData.originFile = p.currentToken().Value
		p.advance()

	}

	// Handle capture
	if p.currentToken().Type == CAPTURE {
		moveData.isCapture = true
		p.advance()
	}

	// Get destination square
	if p.currentToken().Type != SQUARE {
		return nil, &ParserError{
			Message:    "expected destination square",
			TokenType:  p.currentToken().Type,
			TokenValue: p.currentToken().Value,
			Position:   p.position,
		}
	}
	moveData.destSquare = p.currentToken().Value
	p.advance()

	// Handle promotion
	if p.currentToken().Type == PROMOTION {
		p.advance()
		if p.currentToken().Type != PromotionPiece {
			return nil, &ParserError{
				Message:    "expected promotion piece",
				TokenType:  p.currentToken().Type,
				TokenValue: p.currentToken().Value,
				Position:   p.position,
			}
		}
		moveData.promotion = PieceTypeFromString(p.currentToken().Value)
		p.advance()
	}

	// Get target square
	targetSquare := parseSquare(moveData.destSquare)
	if targetSquare == NoSquare {
		return nil, &ParserError{
			Message:    "invalid destination square",
			TokenType:  p.currentToken().Type,
			TokenValue: p.currentToken().Value,
			Position:   p.position,
		}
	}

	// Find matching legal move
	var matchingMove *Move
	var err error
	validMoves := p.game.pos.ValidMoves()
	for _, m := range validMoves {
		//nolint:nestif // readability
		if m.S2() == targetSquare {
			pos := p.game.pos
			piece := pos.Board().Piece(m.S1())

			// Check piece type
			if moveData.piece != "" && piece.Type() != PieceTypeFromString(moveData.piece) || moveData.piece == "" && piece.Type() != Pawn {
				err = &ParserError{
					Message:    "piece type mismatch",
					TokenType:  p.currentToken().Type,
					TokenValue: p.currentToken().Value,
					Position:   p.position,
				}
				continue
			}

			// Check disambiguation
			if moveData.originFile != "" && m.S1().File().String() != moveData.originFile {
				err = &ParserError{
					Message:    "origin file mismatch",
					TokenType:  p.currentToken().Type,
					TokenValue: p.currentToken().Value,
					Position:   p.position,
				}
				continue
			}
			if moveData.originRank != "" && strconv.Itoa(int((m.S1()/8)+1)) != moveData.originRank {
				err = &ParserError{
					Message:    fmt.Sprintf("origin rank mismatch: %d", m.S1()/8+1),
					TokenType:  p.currentToken().Type,
					TokenValue: p.currentToken().Value,
					Position:   p.position,
				}
				continue
			}

			// Check capture
			if moveData.isCapture != (m.HasTag(Capture) || m.HasTag(EnPassant)) {
				err = &ParserError{
					Message:    "capture mismatch",
					TokenType:  p.currentToken().Type,
					TokenValue: p.currentToken().Value,
					Position:   p.position,
				}
				continue
			}

			// Check promotion
			if moveData.promotion != NoPieceType && m.promo != moveData.promotion {
				err = &ParserError{
					Message:    "promotion mismatch",
					TokenType:  p.currentToken().Type,
					TokenValue: p.currentToken().Value,
					Position:   p.position,
				}
				continue
			}

			matchingMove = &m
			break
		}
	}

	if matchingMove == nil {
		if err != nil {
			return nil, &ParserError{
				Message:  fmt.Sprintf("no legal move found for position: %s", err.Error()),
				Position: p.position,
			}
		}
		return nil, &ParserError{
			Message:  "no legal move found for position",
			Position: p.position,
		}
	}

	// Copy the matched move details
	move.s1 = matchingMove.S1()
	move.s2 = matchingMove.S2()
	move.tags = matchingMove.tags
	move.promo = matchingMove.promo
	move.piece = matchingMove.piece
	move.captured = matchingMove.captured
	move.position = p.game.pos.copy() // Cache current position

	// Handle check/checkmate if present
	if p.currentToken().Type == CHECK {
		move.tags |= Check
		p.advance()
	}

	// Handle NAG if present
	if p.currentToken().Type == NAG {
		move.nag = p.currentToken().Value
		p.advance()
	}

	// Set move number for both white and black moves
	if p.game.pos != nil && p.game.pos.Turn() == Black {
		if parentMoveNum := p.currentMove.number; parentMoveNum > 0 {
			move.number = parentMoveNum
		}
	}

	return move, nil
}

func (p *Parser) parseComment() (string, map[string]string, error) {
	p.advance() // Consume "{"

	var comment string
	var commandMap map[string]string

	for p.currentToken().Type != CommentEnd && p.position < len(p.tokens) {
		switch p.currentToken().Type {
		case CommandStart:
			commands, err := p.parseCommand()
			if err != nil {
				return "", nil, err
			}

			// merge commands into commandMap
			if commandMap == nil {
				commandMap = make(map[string]string)
			}
			for k, v := range commands {
				commandMap[k] = v
			}

		case COMMENT:
			comment += p.currentToken().Value // Append plain comment text
		default:
			return "", nil, &ParserError{
				Message:    "unexpected token in comment",
				Position:   p.position,
				TokenType:  p.currentToken().Type,
				TokenValue: p.currentToken().Value,
			}
		}
		p.advance()
	}

	if p.position >= len(p.tokens) {
		return "", nil, &ParserError{
			Message:  "unterminated comment",
			Position: p.position,
		}
	}

	p.advance() // Consume "}"
	return comment, commandMap, nil
}

func (p *Parser) parseCommand() (map[string]string, error) {
	command := make(map[string]string)
	var key string

	// Consume the opening "["
	p.advance()

	for p.currentToken().Type != CommandEnd && p.position < len(p.tokens) {
		switch p.currentToken().Type {

		case CommandName:
			// The first token in a command is treated as the key
			key = p.currentToken().Value
		case CommandParam:
			// The second token is treated as the value for the current key
			if key != "" {
				command[key] = p.currentToken().Value
				key = "" // Reset key after assigning value
			}
		default:
			return nil, &ParserError{
				Message:    "unexpected token in command",
				Position:   p.position,
				TokenType:  p.currentToken().Type,
				TokenValue: p.currentToken().Value,
			}
		}
		p.advance()
	}

	if p.position >= len(p.tokens) {
		return nil, &ParserError{
			Message:  "unterminated command",
			Position: p.position,
		}
	}

	// p.advance() // Consume the closing "]"
	return command, nil
}

func (p *Parser) parseVariation(parentMoveNumber uint64, parentPly int) error {
	p.advance() // consume (

	// Save current state to restore later
	parentMove := p.currentMove
	oldPos := p.game.pos

	// For variations at game start, we attach to root
	variationParent := p.game.rootMove

	// Find the move this variation should branch from
	if parentMove != p.game.rootMove && parentMove.parent != nil {
		variationParent = parentMove.parent
		if variationParent.parent != nil && variationParent.parent.position != nil {
			p.game.pos = variationParent.parent.position.copy()
			if newPos := p.game.pos.Update(variationParent); newPos != nil {
				p.game.pos = newPos
			}
		} else {
			p.game.pos = p.game.rootMove.position.copy()
		}
	} else {
		p.game.pos = p.game.rootMove.position.copy()
	}

	p.currentMove = variationParent

	moveNumber := parentMoveNumber
	ply := parentPly
	isBlackMove := false

	for p.currentToken().Type != VariationEnd && p.position < len(p.tokens) {
		switch p.currentToken().Type {
		case MoveNumber:
			num, err := strconv.ParseUint(p.currentToken().Value, 10, 32)
			if err == nil {
				moveNumber = num
				ply = int((moveNumber-1)*2 + 1)
			}
			p.advance()
			if p.currentToken().Type == DOT {
				p.advance()
				isBlackMove = false
			}

		case ELLIPSIS:
			p.advance()
			isBlackMove = true
			ply++

		case VariationStart:
			if err := p.parseVariation(moveNumber, ply); err != nil {
				return err
			}

		case PIECE, SQUARE, FILE, KingsideCastle, QueensideCastle:
			if isBlackMove != (p.game.pos.Turn() == Black) {
				return &ParserError{
					Message:  "move color mismatch",
					Position: p.position,
				}
			}

			move, err := p.parseMove()
			if err != nil {
				return err
			}

			move.parent = p.currentMove
			p.currentMove.children = append(p.currentMove.children, move)
			move.position = p.game.pos.copy()
			move.number = uint(moveNumber)

			if newPos := p.game.pos.Update(move); newPos != nil {
				p.game.pos = newPos
			}

			move.position = p.game.pos.copy()
			p.currentMove = move
			ply++
			isBlackMove = !isBlackMove

		default:
			p.advance()
		}
	}

	if p.position >= len(p.tokens) {
		return &ParserError{
			Message:  "unterminated variation",
			Position: p.position,
		}
	}

	p.advance() // consume )

	p.game.pos = oldPos
	p.currentMove = parentMove
	p.game.currentMove = p.currentMove

	return nil
}

func (p *Parser) parseResult() {
	result := p.currentToken().Value
	switch result {
	case "1-0":
		p.game.outcome = WhiteWon
	case "0-1":
		p.game.outcome = BlackWon
	case "1/2-1/2":
		p.game.outcome = Draw
	default:
		p.game.outcome = NoOutcome
	}
	p.advance()
}

func (p *Parser) addMove(move *Move) {
	// For the first move in the game
	if p.currentMove == p.game.rootMove {
		move.parent = p.game.rootMove
		p.game.rootMove.children = append(p.game.rootMove.children, move)
	} else {
		// Normal move in the main line
		move.parent = p.currentMove
		p.currentMove.children = append(p.currentMove.children, move)
	}

	// Update position
	if newPos := p.game.pos.Update(move); newPos != nil {
		p.game.pos = newPos
		p.game.evaluatePositionStatus()
	}

	// Cache the position after the move
	move.position = p.game.pos.copy()

	p.currentMove = move
}

func isUciNotationMoves(s string) bool {
	if strings.ContainsAny(s, "[]{}()") {
		return false
	}

	toks := splitMoveTokens(s)
	if len(toks) == 0 {
		return false
	}

	ok := 0
	for _, t := range toks {
		if isCoordinateMoveToken(t) {
			ok++
		}
	}
	return ok == len(toks)
}

func splitMoveTokens(s string) []string {
	raw := strings.Fields(s)
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.TrimSpace(t)
		t = strings.Trim(t, ",;")
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}

func isCoordinateMoveToken(t string) bool {
	t = strings.TrimSpace(t)
	if len(t) != 4 && len(t) != 5 {
		return false
	}
	if !isFile(t[0]) || !isRank(t[1]) || !isFile(t[2]) || !isRank(t[3]) {
		return false
	}
	if len(t) == 5 {
		switch t[4] {
		case 'q', 'r', 'b', 'n', 'Q', 'R', 'B', 'N':
			return true
		default:
			return false
		}
	}
	return true
}

func isFile(b byte) bool { return b >= 'a' && b <= 'h' }

func isRank(b byte) bool { return b >= '1' && b <= '8' }

func parseUciNotationGame(s string) (*Game, error) {
	game := NewGame()

	toks := splitMoveTokens(s)
	if len(toks) == 0 {
		return game, nil
	}

	for i, tok := range toks {
		if tok == "*" || tok == "" {
			continue
		}
		if !isCoordinateMoveToken(tok) {
			return nil, fmt.Errorf("invalid coordinate move token at %d: %q", i, tok)
		}

		mv, err := coordinateTokenToLegalMove(game.pos, tok)
		if err != nil {
			return nil, fmt.Errorf("illegal move %q at %d: %w", tok, i, err)
		}

		addMoveToGame(game, mv)
	}

	if game.outcome == UnknownOutcome {
		game.outcome = NoOutcome
	}
	return game, nil
}

func addMoveToGame(game *Game, move *Move) {
	if game.currentMove == game.rootMove {
		move.parent = game.rootMove
		game.rootMove.children = append(game.rootMove.children, move)
	} else {
		move.parent = game.currentMove
		game.currentMove.children = append(game.currentMove.children, move)
	}

	if newPos := game.pos.Update(move); newPos != nil {
		game.pos = newPos
		game.evaluatePositionStatus()
	}

	move.position = game.pos.copy()

	game.currentMove = move
}

func coordinateTokenToLegalMove(pos *Position, tok string) (*Move, error) {
	s1 := parseSquare(tok[0:2])
	s2 := parseSquare(tok[2:4])
	if s1 == NoSquare || s2 == NoSquare {
		return nil, fmt.Errorf("bad squares: %q", tok)
	}

	promo := NoPieceType
	if len(tok) == 5 {
		switch tok[4] {
		case 'q', 'Q':
			promo = Queen
		case 'r', 'R':
			promo = Rook
		case 'b', 'B':
			promo = Bishop
		case 'n', 'N':
			promo = Knight
		default:
			return nil, fmt.Errorf("bad promotion piece: %q", tok)
		}
	}

	valid := pos.ValidMoves()
	for _, m := range valid {
		if m.S1() != s1 || m.S2() != s2 {
			continue
		}
		if promo != NoPieceType && m.promo != promo {
			continue
		}
		if promo == NoPieceType && m.promo != NoPieceType {
			continue
		}

		mv := m
		mv.position = pos.copy()
		return &mv, nil
	}

	return nil, fmt.Errorf("no matching legal move for %q", tok)
}
