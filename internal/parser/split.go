package parser

import "strings"

// SplitGames splits the text of a multi-game PGN file into one transcript
// per game. A new game starts at a tag line that follows movetext. Each
// returned transcript ends with a newline.
func SplitGames(text string) []string {
	var games []string
	var current []string
	inMovetext := false

	flush := func() {
		game := strings.TrimSpace(strings.Join(current, "\n"))
		if game != "" {
			games = append(games, game+"\n")
		}
		current = current[:0]
		inMovetext = false
	}

	for _, line := range strings.Split(normalizeNewlines(text), "\n") {
		trimmed := strings.TrimSpace(line)
		isTag := strings.HasPrefix(trimmed, "[")
		if isTag && inMovetext {
			flush()
		}
		if len(current) == 0 && trimmed == "" {
			continue
		}
		current = append(current, line)
		if trimmed != "" && !isTag && !strings.HasPrefix(trimmed, "%") {
			inMovetext = true
		}
	}
	flush()
	return games
}
