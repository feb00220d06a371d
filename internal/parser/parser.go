package parser

import (
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lgbarn/chesscore-go/internal/errors"
)

// Parser parses PGN input into Game structures.
type Parser struct {
	lexer        *Lexer
	currentToken *Token
	ravLevel     uint
	log          zerolog.Logger
	nested       bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger that receives warnings about malformed input.
func WithLogger(log zerolog.Logger) Option {
	return func(p *Parser) {
		p.log = log
	}
}

// WithNestedComments allows '{' inside a comment to open a nested comment.
func WithNestedComments(allow bool) Option {
	return func(p *Parser) {
		p.nested = allow
	}
}

// NewParser creates a new parser for the given reader.
func NewParser(r io.Reader, opts ...Option) *Parser {
	p := &Parser{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(p)
	}
	p.lexer = NewLexer(r, p.log)
	p.lexer.nestedComments = p.nested
	return p
}

// nextToken gets the next token from the lexer.
func (p *Parser) nextToken() {
	p.currentToken = p.lexer.NextToken()
}

// ParseGame parses a single game from the input.
// Returns nil, nil when no more games are available.
func (p *Parser) ParseGame() (*Game, error) {
	if p.currentToken == nil || p.currentToken.Type == NoToken {
		p.nextToken()
	}

	p.skipToNextGame()
	p.lexer.RestartForNewGame()
	p.ravLevel = 0

	game := &Game{StartLine: p.currentToken.Line}
	p.parseOptTagList(game)

	// Initial NAGs are non-standard but sometimes present
	for p.currentToken.Type == NAGToken {
		p.nextToken()
	}

	moves, err := p.parseMoveList()
	if err != nil {
		return nil, err
	}
	game.Moves = moves

	trailing := p.parseOptCommentList()
	if last := lastMove(game.Moves); last != nil && trailing != "" {
		last.Comment = joinComments(last.Comment, trailing)
	}

	game.Result = p.parseResult()
	game.EndLine = p.lexer.LineNumber()

	if game.Result == "" && game.Moves == nil && len(game.Tags) == 0 {
		if p.currentToken.Type == EOFToken {
			return nil, nil
		}
		return nil, p.unexpected("game")
	}

	if game.Result != "" {
		if tag := game.Tag("Result"); tag == "" || tag == "?" {
			game.SetTag("Result", game.Result)
		}
	} else if tag := game.Tag("Result"); tag != "" {
		p.log.Warn().Uint("line", game.EndLine).Str("result", tag).Msg("missing game termination marker")
		game.Result = tag
	}

	return game, nil
}

// skipToNextGame skips tokens until the start of a game is found.
func (p *Parser) skipToNextGame() {
	for {
		switch p.currentToken.Type {
		case EOFToken, TagToken, MoveToken, MoveNumber, TerminatingResult, CommentToken:
			return
		default:
			p.log.Warn().Uint("line", p.currentToken.Line).Stringer("token", p.currentToken.Type).Msg("skipping token between games")
			p.nextToken()
		}
	}
}

// parseOptTagList parses zero or more tags.
func (p *Parser) parseOptTagList(game *Game) {
	for p.parseTag(game) {
	}
	game.PrefixComment = p.parseOptCommentList()
}

// parseTag parses a single tag.
func (p *Parser) parseTag(game *Game) bool {
	switch p.currentToken.Type {
	case TagToken:
		name := p.currentToken.Text
		p.nextToken()

		if p.currentToken.Type == StringToken {
			game.SetTag(name, p.currentToken.Text)
			p.nextToken()
		} else {
			p.log.Warn().Uint("line", p.currentToken.Line).Str("tag", name).Msg("missing tag string")
		}
		return true
	case StringToken:
		p.log.Warn().Uint("line", p.currentToken.Line).Str("value", p.currentToken.Text).Msg("missing tag name")
		p.nextToken()
		return true
	}
	return false
}

// parseMoveList parses a list of moves with their variations.
func (p *Parser) parseMoveList() ([]*Move, error) {
	var moves []*Move
	for {
		move, err := p.parseMoveAndVariants()
		if err != nil {
			return nil, err
		}
		if move == nil {
			return moves, nil
		}
		moves = append(moves, move)
	}
}

// parseMoveAndVariants parses a move with its variations.
func (p *Parser) parseMoveAndVariants() (*Move, error) {
	move := p.parseMove()
	if move == nil {
		return nil, nil
	}

	for p.currentToken.Type == RAVStart {
		variation, err := p.parseVariant()
		if err != nil {
			return nil, err
		}
		move.Variations = append(move.Variations, variation)
	}
	if c := p.parseOptCommentList(); c != "" {
		move.Comment = joinComments(move.Comment, c)
	}
	return move, nil
}

// parseMove parses a single move with its number, NAGs and comments.
func (p *Parser) parseMove() *Move {
	p.parseOptMoveNumber()

	if p.currentToken.Type != MoveToken {
		return nil
	}
	move := &Move{SAN: p.currentToken.Text, Line: p.currentToken.Line}
	p.nextToken()

	for p.currentToken.Type == CheckSymbol {
		move.SAN += p.currentToken.Text
		p.nextToken()
	}

	for {
		switch p.currentToken.Type {
		case NAGToken:
			move.NAGs = append(move.NAGs, p.currentToken.NAG)
			p.nextToken()
		case CommentToken:
			move.Comment = joinComments(move.Comment, p.currentToken.Text)
			p.nextToken()
		default:
			return move
		}
	}
}

// parseOptCommentList parses zero or more comments into one string.
func (p *Parser) parseOptCommentList() string {
	var text string
	for p.currentToken.Type == CommentToken {
		text = joinComments(text, p.currentToken.Text)
		p.nextToken()
	}
	return text
}

// parseOptMoveNumber parses an optional move number.
func (p *Parser) parseOptMoveNumber() bool {
	if p.currentToken.Type == MoveNumber {
		p.nextToken()
		return true
	}
	return false
}

// parseVariant parses a single variation.
func (p *Parser) parseVariant() ([]*Move, error) {
	open := p.currentToken
	p.ravLevel++
	p.nextToken()

	prefix := p.parseOptCommentList()
	moves, err := p.parseMoveList()
	if err != nil {
		return nil, err
	}
	if moves == nil {
		p.log.Warn().Uint("line", open.Line).Msg("missing move list in variation")
	} else if prefix != "" {
		moves[0].Comment = joinComments(prefix, moves[0].Comment)
	}

	if p.parseResult() != "" {
		if c := p.parseOptCommentList(); c != "" && moves != nil {
			last := moves[len(moves)-1]
			last.Comment = joinComments(last.Comment, c)
		}
	}

	if p.currentToken.Type != RAVEnd {
		return nil, &errors.ParseError{
			Err:      errors.ErrParseFailure,
			Line:     int(p.currentToken.Line),
			Column:   int(p.currentToken.Column),
			Expected: "')' to close the variation opened on line " + uintString(open.Line),
			Got:      describe(p.currentToken),
		}
	}
	p.ravLevel--
	p.nextToken()
	return moves, nil
}

// parseResult parses a game result.
func (p *Parser) parseResult() string {
	if p.currentToken.Type != TerminatingResult {
		return ""
	}
	result := p.currentToken.Text
	if p.ravLevel == 0 {
		// NoToken defers reading past the game until the next ParseGame
		p.currentToken = &Token{Type: NoToken}
	} else {
		p.nextToken()
	}
	return result
}

func (p *Parser) unexpected(expected string) error {
	err := &errors.ParseError{
		Err:      errors.ErrParseFailure,
		Line:     int(p.currentToken.Line),
		Column:   int(p.currentToken.Column),
		Expected: expected,
		Got:      describe(p.currentToken),
	}
	p.nextToken()
	return err
}

// ParseAllGames parses all games from the input. Parsing stops at the
// first error; the games read so far are returned with it.
func (p *Parser) ParseAllGames() ([]*Game, error) {
	games := make([]*Game, 0, 16)
	for {
		game, err := p.ParseGame()
		if err != nil {
			return games, &errors.GameError{Err: err, GameNum: len(games) + 1}
		}
		if game == nil {
			return games, nil
		}
		games = append(games, game)
	}
}

func lastMove(moves []*Move) *Move {
	if len(moves) == 0 {
		return nil
	}
	return moves[len(moves)-1]
}

func joinComments(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + " " + b
}

func uintString(n uint) string {
	return strconv.FormatUint(uint64(n), 10)
}

// describe names a token for error messages.
func describe(t *Token) string {
	switch t.Type {
	case EOFToken:
		return "end of input"
	case MoveToken, TerminatingResult, TagToken:
		return strings.ToLower(t.Type.String()) + " " + strconv.Quote(t.Text)
	case MoveNumber:
		return "move number " + uintString(t.MoveNum)
	}
	return strings.ToLower(t.Type.String())
}
