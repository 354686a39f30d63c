package parser

import (
	"strings"

	"github.com/lgbarn/pgn-san-go/internal/chess"
)

// ParseTags returns the tag pairs of a transcript's header block in the
// order they appear. Lines that are not well-formed tag pairs are skipped.
func ParseTags(transcript string) []chess.Tag {
	header, _, ok := splitSections(transcript)
	if !ok {
		header = normalizeNewlines(transcript)
	}
	var tags []chess.Tag
	for _, line := range strings.Split(header, "\n") {
		if tag, ok := parseTagLine(line); ok {
			tags = append(tags, tag)
		}
	}
	return tags
}

// parseTagLine parses a line of the form [Name "Value"].
func parseTagLine(line string) (chess.Tag, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "[") || !strings.HasSuffix(line, "]") {
		return chess.Tag{}, false
	}
	body := strings.TrimSpace(line[1 : len(line)-1])

	nameEnd := strings.IndexAny(body, " \t\"")
	if nameEnd <= 0 {
		return chess.Tag{}, false
	}
	name := body[:nameEnd]
	rest := strings.TrimSpace(body[nameEnd:])
	if len(rest) < 2 || rest[0] != '"' {
		return chess.Tag{}, false
	}

	var sb strings.Builder
	escaped := false
	for i := 1; i < len(rest); i++ {
		ch := rest[i]
		if escaped {
			sb.WriteByte(ch)
			escaped = false
			continue
		}
		switch ch {
		case '\\':
			escaped = true
		case '"':
			return chess.Tag{Name: name, Value: sb.String()}, true
		default:
			sb.WriteByte(ch)
		}
	}
	// String not properly terminated
	return chess.Tag{}, false
}

// StartFEN returns the FEN tag of a game that starts from a set-up
// position. A FEN tag counts unless SetUp is present with a value other
// than "1".
func StartFEN(tags []chess.Tag) (string, bool) {
	fen, ok := chess.LookupTag(tags, chess.FENTag)
	if !ok || strings.TrimSpace(fen) == "" {
		return "", false
	}
	if setup, ok := chess.LookupTag(tags, chess.SetupTag); ok && strings.TrimSpace(setup) != "1" {
		return "", false
	}
	return strings.TrimSpace(fen), true
}

// FormatTag writes a tag pair in export form, escaping quotes and
// backslashes in the value.
func FormatTag(tag chess.Tag) string {
	value := strings.ReplaceAll(tag.Value, `\`, `\\`)
	value = strings.ReplaceAll(value, `"`, `\"`)
	return "[" + tag.Name + ` "` + value + `"]`
}
