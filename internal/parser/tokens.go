// Package parser extracts tag pairs and SAN move tokens from PGN
// transcripts.
package parser

import (
	"fmt"
	"strings"

	"github.com/lgbarn/pgn-san-go/internal/chess"
	"github.com/lgbarn/pgn-san-go/internal/errors"
)

// normalizeNewlines converts CRLF and bare CR line endings to LF.
func normalizeNewlines(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// splitSections returns the header block and the movetext of a transcript.
// The two are separated by the first blank line; ok is false when there is
// none.
func splitSections(transcript string) (header, movetext string, ok bool) {
	if strings.TrimSpace(transcript) == "" {
		return "", "", false
	}
	lines := strings.Split(normalizeNewlines(transcript), "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			return strings.Join(lines[:i], "\n"), strings.Join(lines[i+1:], "\n"), true
		}
	}
	return "", "", false
}

// ExtractMoveTokens returns the SAN tokens of a transcript's movetext in the
// order they were played. Move numbers, results, comments, NAGs and
// variations are dropped.
func ExtractMoveTokens(transcript string) ([]string, error) {
	_, movetext, ok := splitSections(transcript)
	if !ok {
		return nil, fmt.Errorf("extract moves: %w", errors.ErrNoMovetextSection)
	}

	movetext = stripLineComments(movetext)
	movetext = strings.ReplaceAll(movetext, "\n", " ")
	movetext = stripBraceComments(movetext)
	movetext = stripVariations(movetext)

	fields := strings.Fields(movetext)
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if strings.HasSuffix(field, ".") || chess.IsResult(field) {
			continue
		}
		field = trimMoveNumber(field)
		if field == "" || field[0] == '$' {
			continue
		}
		tokens = append(tokens, field)
	}
	return tokens, nil
}

// stripBraceComments removes {...} spans. Braces do not nest; an
// unterminated comment runs to the end of the text.
func stripBraceComments(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for {
		open := strings.IndexByte(s, '{')
		if open < 0 {
			sb.WriteString(s)
			break
		}
		sb.WriteString(s[:open])
		sb.WriteByte(' ')
		end := strings.IndexByte(s[open:], '}')
		if end < 0 {
			break
		}
		s = s[open+end+1:]
	}
	return sb.String()
}

// stripLineComments removes ';' comments, which run to the end of the line,
// and '%' escape lines.
func stripLineComments(s string) string {
	if !strings.ContainsAny(s, ";%") {
		return s
	}
	lines := strings.Split(s, "\n")
	// A ';' inside a brace comment is part of that comment.
	inBrace := false
	for i, line := range lines {
		if !inBrace && strings.HasPrefix(line, "%") {
			lines[i] = ""
			continue
		}
	scan:
		for j := 0; j < len(line); j++ {
			switch line[j] {
			case '{':
				inBrace = true
			case '}':
				inBrace = false
			case ';':
				if !inBrace {
					lines[i] = line[:j]
					break scan
				}
			}
		}
	}
	return strings.Join(lines, "\n")
}

// stripVariations removes recursive annotation variations, which may nest.
func stripVariations(s string) string {
	if !strings.ContainsRune(s, '(') {
		return s
	}
	var sb strings.Builder
	depth := 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '(':
			depth++
			sb.WriteByte(' ')
		case c == ')':
			if depth > 0 {
				depth--
			}
			sb.WriteByte(' ')
		case depth == 0:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// trimMoveNumber strips a move number glued to a move, as in "12.Nf3" or
// "3...Bb4".
func trimMoveNumber(token string) string {
	i := 0
	for i < len(token) && token[i] >= '0' && token[i] <= '9' {
		i++
	}
	if i == 0 || i == len(token) || token[i] != '.' {
		return token
	}
	for i < len(token) && token[i] == '.' {
		i++
	}
	return token[i:]
}
