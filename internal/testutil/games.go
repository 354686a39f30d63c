package testutil

import (
	"fmt"
	"strings"
)

// Game is a recorded game used as a fixture: its transcript, the SAN
// tokens in the movetext and the equivalent coordinate moves.
type Game struct {
	Name        string
	Transcript  string
	SAN         []string
	Coordinates []string
}

// ScholarsMate ends in checkmate on the seventh ply.
var ScholarsMate = Game{
	Name: "scholars mate",
	Transcript: `[Event "Fixture"]
[Site "Test"]
[Date "2024.01.01"]
[Round "1"]
[White "Player1"]
[Black "Player2"]
[Result "1-0"]

1. e4 e5 2. Bc4 Nc6 3. Qh5 Nf6 4. Qxf7# 1-0
`,
	SAN:         []string{"e4", "e5", "Bc4", "Nc6", "Qh5", "Nf6", "Qxf7#"},
	Coordinates: []string{"e2e4", "e7e5", "f1c4", "b8c6", "d1h5", "g8f6", "h5f7"},
}

// OperaGame is Morphy's 1858 game against the Duke of Brunswick and Count
// Isouard. It covers captures, checks, file disambiguation, queenside
// castling and a mating move.
var OperaGame = Game{
	Name: "opera game",
	Transcript: `[Event "Paris"]
[Site "Paris FRA"]
[Date "1858.??.??"]
[Round "?"]
[White "Morphy, Paul"]
[Black "Duke Karl / Count Isouard"]
[Result "1-0"]

1. e4 e5 2. Nf3 d6 3. d4 Bg4 {This is a weak move already.} 4. dxe5 Bxf3
5. Qxf3 dxe5 6. Bc4 Nf6 7. Qb3 Qe7 8. Nc3 c6 9. Bg5 {Black is now in
what may be called zugzwang.} b5 10. Nxb5 cxb5 11. Bxb5+ Nbd7 12. O-O-O Rd8
13. Rxd7 Rxd7 14. Rd1 Qe6 15. Bxd7+ Nxd7 16. Qb8+ Nxb8 17. Rd8# 1-0
`,
	SAN: []string{
		"e4", "e5", "Nf3", "d6", "d4", "Bg4", "dxe5", "Bxf3",
		"Qxf3", "dxe5", "Bc4", "Nf6", "Qb3", "Qe7", "Nc3", "c6",
		"Bg5", "b5", "Nxb5", "cxb5", "Bxb5+", "Nbd7", "O-O-O", "Rd8",
		"Rxd7", "Rxd7", "Rd1", "Qe6", "Bxd7+", "Nxd7", "Qb8+", "Nxb8",
		"Rd8#",
	},
	Coordinates: []string{
		"e2e4", "e7e5", "g1f3", "d7d6", "d2d4", "c8g4", "d4e5", "g4f3",
		"d1f3", "d6e5", "f1c4", "g8f6", "f3b3", "d8e7", "b1c3", "c7c6",
		"c1g5", "b7b5", "c3b5", "c6b5", "c4b5", "b8d7", "e1c1", "a8d8",
		"d1d7", "d8d7", "h1d1", "e7e6", "b5d7", "f6d7", "b3b8", "d7b8",
		"d1d8",
	},
}

// Fixtures lists every recorded game fixture.
var Fixtures = []Game{ScholarsMate, OperaGame}

// Transcript builds a PGN transcript from tag name/value pairs and a
// movetext block.
func Transcript(movetext string, tags ...string) string {
	var sb strings.Builder
	for i := 0; i+1 < len(tags); i += 2 {
		fmt.Fprintf(&sb, "[%s \"%s\"]\n", tags[i], tags[i+1])
	}
	sb.WriteString("\n")
	sb.WriteString(movetext)
	sb.WriteString("\n")
	return sb.String()
}
