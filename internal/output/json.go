package output

import "github.com/lgbarn/pgn-san-go/internal/chess"

// JSONGame represents a replayed game in JSON format.
type JSONGame struct {
	Index    int               `json:"index"`
	Tags     map[string]string `json:"tags"`
	Plies    []JSONPly         `json:"plies"`
	FinalFEN string            `json:"final_fen,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// JSONPly represents one ply in JSON format.
type JSONPly struct {
	Number int    `json:"number"`
	Colour string `json:"colour"` // "white" or "black"
	SAN    string `json:"san"`
	UCI    string `json:"uci"`
}

// JSONOutput holds multiple games for array output.
type JSONOutput struct {
	Games []*JSONGame `json:"games"`
}

// RecordToJSON converts a replay record to its JSON form.
func RecordToJSON(rec *Record) *JSONGame {
	jg := &JSONGame{
		Index:    rec.Index,
		Tags:     make(map[string]string, len(rec.Tags)),
		Plies:    make([]JSONPly, len(rec.Plies)),
		FinalFEN: rec.FinalFEN,
	}
	for _, t := range rec.Tags {
		if _, dup := jg.Tags[t.Name]; !dup {
			jg.Tags[t.Name] = t.Value
		}
	}
	for i, p := range rec.Plies {
		jg.Plies[i] = PlyToJSON(p)
	}
	if rec.Err != nil {
		jg.Error = rec.Err.Error()
	}
	return jg
}

// PlyToJSON converts one ply to its JSON form.
func PlyToJSON(p Ply) JSONPly {
	return JSONPly{
		Number: p.Number,
		Colour: colourName(p.Colour),
		SAN:    p.SAN,
		UCI:    p.UCI,
	}
}

func colourName(c chess.Colour) string {
	if c == chess.White {
		return "white"
	}
	return "black"
}
