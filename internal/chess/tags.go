package chess

import "time"

// Tag is one header field of a PGN transcript.
type Tag struct {
	Name  string
	Value string
}

// Common tag names.
const (
	EventTag  = "Event"
	SiteTag   = "Site"
	DateTag   = "Date"
	RoundTag  = "Round"
	WhiteTag  = "White"
	BlackTag  = "Black"
	ResultTag = "Result"
	SetupTag  = "SetUp"
	FENTag    = "FEN"
)

// SevenTagRoster contains the seven required PGN tags in order.
var SevenTagRoster = []string{
	EventTag,
	SiteTag,
	DateTag,
	RoundTag,
	WhiteTag,
	BlackTag,
	ResultTag,
}

// IsSevenTagRosterTag returns true if the tag is one of the seven required tags.
func IsSevenTagRosterTag(tag string) bool {
	for _, t := range SevenTagRoster {
		if t == tag {
			return true
		}
	}
	return false
}

// DefaultTags returns the roster values used when exporting a game whose
// caller supplied no header of that name.
func DefaultTags(now time.Time) []Tag {
	return []Tag{
		{EventTag, "Casual Game"},
		{SiteTag, "Unknown"},
		{DateTag, now.Format("2006.01.02")},
		{RoundTag, "1"},
		{WhiteTag, "Player1"},
		{BlackTag, "Player2"},
		{ResultTag, "*"},
	}
}

// LookupTag returns the value of the first tag with the given name.
func LookupTag(tags []Tag, name string) (string, bool) {
	for _, t := range tags {
		if t.Name == name {
			return t.Value, true
		}
	}
	return "", false
}

// IsResult reports whether s is one of the PGN game termination markers.
func IsResult(s string) bool {
	switch s {
	case "1-0", "0-1", "1/2-1/2", "*":
		return true
	}
	return false
}
