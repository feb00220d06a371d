package parser

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
)

// Lexer tokenizes PGN input.
type Lexer struct {
	reader   *bufio.Reader
	line     string
	pos      int
	lineNum  uint
	ravLevel uint
	eof      bool
	log      zerolog.Logger

	// AllowNestedComments treats '{' inside a comment as opening a nested one.
	nestedComments bool

	// Comment nesting depth
	commentDepth uint
}

// Character classification table
var chTab [256]TokenType

// Move character classification table
var moveChars [256]bool

func init() {
	initLexTables()
}

// initLexTables initializes the character classification tables.
func initLexTables() {
	for i := range chTab {
		chTab[i] = ErrorToken
	}

	for _, c := range []byte{' ', '\t', '\r', '\n'} {
		chTab[c] = Whitespace
	}

	chTab['['] = TagStart
	chTab[']'] = TagEnd
	chTab['"'] = DoubleQuote
	chTab['{'] = CommentStart
	chTab['}'] = CommentEnd
	chTab[';'] = LineComment

	chTab['$'] = NAGToken
	chTab['!'] = Annotate
	chTab['?'] = Annotate
	chTab['+'] = CheckSymbol
	chTab['#'] = CheckSymbol
	chTab['.'] = Dot
	chTab['('] = RAVStart
	chTab[')'] = RAVEnd
	chTab['%'] = Percent
	chTab['\\'] = Escape
	chTab[0] = EOS
	chTab['*'] = Star
	chTab['-'] = Dash

	for c := byte('0'); c <= '9'; c++ {
		chTab[c] = Digit
	}

	for c := byte('A'); c <= 'Z'; c++ {
		chTab[c] = Alpha
		chTab[c+32] = Alpha
	}
	chTab['_'] = Alpha

	initMoveChars()
}

// initMoveChars initializes the move character classification table.
func initMoveChars() {
	for c := byte('a'); c <= 'h'; c++ {
		moveChars[c] = true
	}
	for c := byte('1'); c <= '8'; c++ {
		moveChars[c] = true
	}
	for _, c := range []byte{'K', 'Q', 'R', 'N', 'B'} {
		moveChars[c] = true
	}
	// Capture, promotion, castling
	for _, c := range []byte{'x', 'X', ':', '-', '=', 'O', 'o', '0'} {
		moveChars[c] = true
	}
}

// NewLexer creates a new lexer for the given reader. Recoverable problems
// in the input are reported to log.
func NewLexer(r io.Reader, log zerolog.Logger) *Lexer {
	return &Lexer{
		reader: bufio.NewReader(r),
		log:    log,
	}
}

// readLine reads the next line from input.
func (l *Lexer) readLine() bool {
	if l.eof {
		return false
	}
	line, err := l.reader.ReadString('\n')
	if err != nil {
		l.eof = true
		if len(line) == 0 {
			return false
		}
	}
	l.line = line
	l.pos = 0
	l.lineNum++
	return true
}

// currentChar returns the current character or 0 if at end of line.
func (l *Lexer) currentChar() byte {
	if l.pos >= len(l.line) {
		return 0
	}
	return l.line[l.pos]
}

// advance moves to the next character.
func (l *Lexer) advance() {
	if l.pos < len(l.line) {
		l.pos++
	}
}

func (l *Lexer) warn(msg string) {
	l.log.Warn().Uint("line", l.lineNum).Int("column", l.pos).Msg(msg)
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() *Token {
	for {
		column := uint(l.pos + 1)
		token := l.getNextSymbol()
		if token.Type != NoToken {
			if token.Line == 0 {
				token.Line = l.lineNum
				token.Column = column
			}
			return token
		}
	}
}

// getNextSymbol identifies the next symbol.
func (l *Lexer) getNextSymbol() *Token {
	if l.pos >= len(l.line) {
		if !l.readLine() {
			return &Token{Type: EOFToken}
		}
		return &Token{Type: NoToken}
	}

	ch := l.currentChar()
	symbolStart := l.pos
	l.advance()

	switch chTab[ch] {
	case Whitespace:
		for l.pos < len(l.line) && chTab[l.currentChar()] == Whitespace {
			l.advance()
		}
		return &Token{Type: NoToken}

	case TagStart:
		return l.gatherTag()

	case TagEnd:
		return &Token{Type: NoToken}

	case DoubleQuote:
		return l.gatherString()

	case CommentStart:
		return l.gatherComment()

	case LineComment:
		text := strings.TrimSpace(l.line[l.pos:])
		l.pos = len(l.line)
		return &Token{Type: CommentToken, Text: text}

	case CommentEnd:
		l.warn("unmatched comment end")
		return &Token{Type: NoToken}

	case NAGToken:
		start := l.pos
		for l.pos < len(l.line) && unicode.IsDigit(rune(l.currentChar())) {
			l.advance()
		}
		nag, err := strconv.Atoi(l.line[start:l.pos])
		if err != nil {
			l.warn("NAG without a number")
			return &Token{Type: NoToken}
		}
		return &Token{Type: NAGToken, NAG: nag, Text: l.line[symbolStart:l.pos]}

	case Annotate:
		for l.pos < len(l.line) && chTab[l.currentChar()] == Annotate {
			l.advance()
		}
		text := l.line[symbolStart:l.pos]
		return &Token{Type: NAGToken, NAG: annotationToNAG(text), Text: text}

	case CheckSymbol:
		for l.pos < len(l.line) && chTab[l.currentChar()] == CheckSymbol {
			l.advance()
		}
		return &Token{Type: CheckSymbol, Text: l.line[symbolStart:l.pos]}

	case Dot:
		for l.pos < len(l.line) && chTab[l.currentChar()] == Dot {
			l.advance()
		}
		return &Token{Type: NoToken}

	case RAVStart:
		l.ravLevel++
		return &Token{Type: RAVStart}

	case RAVEnd:
		if l.ravLevel > 0 {
			l.ravLevel--
			return &Token{Type: RAVEnd}
		}
		l.warn("too many ')'")
		return &Token{Type: NoToken}

	case Percent:
		// Escape mechanism: the rest of the line is ignored
		if symbolStart == 0 {
			l.pos = len(l.line)
		}
		return &Token{Type: NoToken}

	case Escape:
		if l.pos < len(l.line) {
			l.advance()
		}
		return &Token{Type: NoToken}

	case Alpha:
		return l.gatherAlpha(ch, symbolStart)

	case Digit:
		return l.gatherNumeric(ch)

	case Star:
		return &Token{Type: TerminatingResult, Text: "*"}

	case Dash:
		l.warn("single '-' not allowed")
		return &Token{Type: NoToken}

	case EOS:
		if !l.readLine() {
			return &Token{Type: EOFToken}
		}
		return &Token{Type: NoToken}

	default:
		l.warn("unknown character " + strconv.QuoteRune(rune(ch)))
		for l.pos < len(l.line) && chTab[l.currentChar()] == ErrorToken {
			l.advance()
		}
		return &Token{Type: NoToken}
	}
}

// gatherTag gathers a tag name after '['.
func (l *Lexer) gatherTag() *Token {
	for l.pos < len(l.line) && chTab[l.currentChar()] == Whitespace {
		l.advance()
	}

	start := l.pos
	for l.pos < len(l.line) {
		ch := l.currentChar()
		if unicode.IsLetter(rune(ch)) || unicode.IsDigit(rune(ch)) || ch == '_' {
			l.advance()
		} else {
			break
		}
	}

	if l.pos > start {
		return &Token{Type: TagToken, Text: l.line[start:l.pos]}
	}
	l.warn("tag without a name")
	return &Token{Type: NoToken}
}

// gatherString gathers a quoted string.
func (l *Lexer) gatherString() *Token {
	var sb strings.Builder
	escaped := false

	for l.pos < len(l.line) {
		ch := l.currentChar()
		l.advance()

		if escaped {
			sb.WriteByte(ch)
			escaped = false
			continue
		}

		switch ch {
		case '\\':
			escaped = true
		case '"':
			return &Token{Type: StringToken, Text: sb.String()}
		default:
			sb.WriteByte(ch)
		}
	}

	l.warn("missing closing quote")
	return &Token{Type: StringToken, Text: strings.TrimRight(sb.String(), "\r\n")}
}

// gatherComment gathers a comment block, which may span lines.
func (l *Lexer) gatherComment() *Token {
	var sb strings.Builder
	line, column := l.lineNum, uint(l.pos)
	l.commentDepth = 1

	for {
		for l.pos < len(l.line) {
			ch := l.currentChar()
			l.advance()

			switch {
			case ch == '{' && l.nestedComments:
				l.commentDepth++
				sb.WriteByte(ch)
			case ch == '}':
				l.commentDepth--
				if l.commentDepth == 0 {
					return l.makeCommentToken(sb.String(), line, column)
				}
				sb.WriteByte(ch)
			default:
				sb.WriteByte(ch)
			}
		}

		if !l.readLine() {
			break
		}
	}

	l.warn("missing end of comment")
	l.commentDepth = 0
	return l.makeCommentToken(sb.String(), line, column)
}

// makeCommentToken creates a comment token, folding line breaks to spaces.
func (l *Lexer) makeCommentToken(text string, line, column uint) *Token {
	return &Token{
		Type:   CommentToken,
		Text:   strings.Join(strings.Fields(text), " "),
		Line:   line,
		Column: column,
	}
}

// gatherAlpha handles alpha characters (potential moves).
func (l *Lexer) gatherAlpha(ch byte, symbolStart int) *Token {
	if !moveChars[ch] {
		for l.pos < len(l.line) && chTab[l.currentChar()] == Alpha {
			l.advance()
		}
		l.warn("unknown word " + strconv.Quote(l.line[symbolStart:l.pos]))
		return &Token{Type: NoToken}
	}

	for l.pos < len(l.line) && moveChars[l.currentChar()] {
		l.advance()
	}

	moveText := l.line[symbolStart:l.pos]
	if moveSeemsValid(moveText) {
		return &Token{Type: MoveToken, Text: normalizeCastling(moveText)}
	}

	l.warn("unknown move text " + strconv.Quote(moveText))
	return &Token{Type: NoToken}
}

// gatherNumeric handles numeric tokens (move numbers, results, castling).
func (l *Lexer) gatherNumeric(initialDigit byte) *Token {
	remaining := l.line[l.pos:]

	switch initialDigit {
	case '0':
		// 0-1 (result) or 0-0 / 0-0-0 (castling)
		if strings.HasPrefix(remaining, "-1") {
			l.pos += 2
			return &Token{Type: TerminatingResult, Text: "0-1"}
		}
		if strings.HasPrefix(remaining, "-0-0") {
			l.pos += 4
			return &Token{Type: MoveToken, Text: "O-O-O"}
		}
		if strings.HasPrefix(remaining, "-0") {
			l.pos += 2
			return &Token{Type: MoveToken, Text: "O-O"}
		}
	case '1':
		if strings.HasPrefix(remaining, "-0") {
			l.pos += 2
			return &Token{Type: TerminatingResult, Text: "1-0"}
		}
		if strings.HasPrefix(remaining, "/2") {
			l.pos += 2
			if strings.HasPrefix(l.line[l.pos:], "-1/2") {
				l.pos += 4
			}
			return &Token{Type: TerminatingResult, Text: "1/2-1/2"}
		}
	}

	return l.gatherMoveNumber()
}

// gatherMoveNumber parses a move number token.
func (l *Lexer) gatherMoveNumber() *Token {
	start := l.pos - 1
	for l.pos < len(l.line) && unicode.IsDigit(rune(l.currentChar())) {
		l.advance()
	}
	n, err := strconv.ParseUint(l.line[start:l.pos], 10, 32)
	if err != nil {
		l.warn("move number out of range")
	}

	for l.pos < len(l.line) && l.currentChar() == '.' {
		l.advance()
	}
	return &Token{Type: MoveNumber, MoveNum: uint(n)}
}

// annotationToNAG converts annotation symbols to NAG numbers.
func annotationToNAG(text string) int {
	switch text {
	case "!":
		return 1
	case "?":
		return 2
	case "!!":
		return 3
	case "??":
		return 4
	case "!?":
		return 5
	case "?!":
		return 6
	default:
		return 0
	}
}

// normalizeCastling maps the lowercase and zero spellings of castling to O-O.
func normalizeCastling(text string) string {
	switch text {
	case "o-o", "0-0":
		return "O-O"
	case "o-o-o", "0-0-0":
		return "O-O-O"
	}
	return text
}

// moveSeemsValid does a basic check that the move text could be SAN.
func moveSeemsValid(text string) bool {
	if normalizeCastling(text) != text || text == "O-O" || text == "O-O-O" {
		return true
	}
	if len(text) < 2 {
		return false
	}

	hasFile, hasRank := false, false
	for _, c := range text {
		if c >= 'a' && c <= 'h' {
			hasFile = true
		}
		if c >= '1' && c <= '8' {
			hasRank = true
		}
	}
	return hasFile && hasRank
}

// LineNumber returns the current line number.
func (l *Lexer) LineNumber() uint {
	return l.lineNum
}

// RAVLevel returns the current RAV nesting level.
func (l *Lexer) RAVLevel() uint {
	return l.ravLevel
}

// RestartForNewGame resets lexer state for a new game.
func (l *Lexer) RestartForNewGame() {
	l.ravLevel = 0
}
