package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/lgbarn/pgn-san-go/internal/config"
	"github.com/lgbarn/pgn-san-go/internal/oracle"
	"github.com/lgbarn/pgn-san-go/internal/testutil"
)

func newTestApp() *fiber.App {
	return New(config.NewServerConfig(), zerolog.Nop())
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(req)
	testutil.AssertNoError(t, err)
	body, err := io.ReadAll(resp.Body)
	testutil.AssertNoError(t, err)
	resp.Body.Close()
	return resp, body
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()
	data, err := json.Marshal(payload)
	testutil.AssertNoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	resp, body := do(t, app, req)

	var out map[string]interface{}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("%s: invalid JSON response %q: %v", path, body, err)
	}
	return resp.StatusCode, out
}

func TestDecode(t *testing.T) {
	app := newTestApp()
	tests := []struct {
		name       string
		req        decodeRequest
		wantStatus int
		wantUCI    string
	}{
		{"start position", decodeRequest{SAN: "Nf3"}, 200, "g1f3"},
		{"castle from fen", decodeRequest{FEN: "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", SAN: "O-O-O"}, 200, "e8c8"},
		{"no matching move", decodeRequest{SAN: "Ke3"}, 422, ""},
		{"malformed", decodeRequest{SAN: "hello"}, 422, ""},
		{"bad fen", decodeRequest{FEN: "8/8/8 w - - 0 1", SAN: "e4"}, 400, ""},
		{"missing san", decodeRequest{}, 400, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, out := postJSON(t, app, "/api/decode", tt.req)
			testutil.AssertEqual(t, status, tt.wantStatus, "body %v", out)
			if tt.wantUCI != "" {
				testutil.AssertEqual(t, out["uci"], tt.wantUCI)
			} else {
				testutil.AssertTrue(t, out["error"] != nil, "error field present")
			}
		})
	}
}

func TestDecodeInvalidBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/decode", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := do(t, newTestApp(), req)
	testutil.AssertEqual(t, resp.StatusCode, fiber.StatusBadRequest)
}

func TestEncode(t *testing.T) {
	app := newTestApp()

	status, out := postJSON(t, app, "/api/encode", encodeRequest{UCI: "e2e4"})
	testutil.AssertEqual(t, status, 200)
	testutil.AssertEqual(t, out["san"], "e4")

	status, out = postJSON(t, app, "/api/encode", encodeRequest{
		FEN: "3r3k/4P3/8/8/8/8/8/K7 w - - 0 1",
		UCI: "e7d8q",
	})
	testutil.AssertEqual(t, status, 200)
	testutil.AssertEqual(t, out["san"], "exd8=Q+")

	status, _ = postJSON(t, app, "/api/encode", encodeRequest{UCI: "e2e5"})
	testutil.AssertEqual(t, status, fiber.StatusUnprocessableEntity)
}

func TestReplay(t *testing.T) {
	app := newTestApp()

	status, out := postJSON(t, app, "/api/replay", replayRequest{PGN: testutil.ScholarsMate.Transcript})
	testutil.AssertEqual(t, status, 200)
	moves := out["moves"].([]interface{})
	testutil.AssertEqual(t, len(moves), len(testutil.ScholarsMate.Coordinates))
	testutil.AssertEqual(t, moves[6], "h5f7")
	testutil.AssertEqual(t, out["outcome"], "1-0")

	status, out = postJSON(t, app, "/api/replay", replayRequest{PGN: testutil.Transcript("1. e4 e5 2. Ke3")})
	testutil.AssertEqual(t, status, fiber.StatusUnprocessableEntity)
	testutil.AssertEqual(t, out["ply"], float64(3))
	testutil.AssertEqual(t, out["token"], "Ke3")

	status, _ = postJSON(t, app, "/api/replay", replayRequest{PGN: `[Event "no movetext"]`})
	testutil.AssertEqual(t, status, fiber.StatusUnprocessableEntity)
}

func TestExport(t *testing.T) {
	data, err := json.Marshal(exportRequest{
		Tags:  []tagJSON{{Name: "White", Value: "Tal"}},
		Moves: []string{"e2e4", "e7e5"},
	})
	testutil.AssertNoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/export", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	resp, body := do(t, newTestApp(), req)
	testutil.AssertEqual(t, resp.StatusCode, 200)
	testutil.AssertContains(t, resp.Header.Get("Content-Type"), "text/plain")
	testutil.AssertContains(t, string(body), `[White "Tal"]`)
	testutil.AssertContains(t, string(body), "\n\n1. e4 e5 *\n")

	status, out := postJSON(t, newTestApp(), "/api/export", exportRequest{Moves: []string{"e2e5"}})
	testutil.AssertEqual(t, status, fiber.StatusUnprocessableEntity)
	testutil.AssertEqual(t, out["ply"], float64(1))
}

func TestLegal(t *testing.T) {
	app := newTestApp()

	resp, body := do(t, app, httptest.NewRequest(http.MethodGet, "/api/legal", nil))
	testutil.AssertEqual(t, resp.StatusCode, 200)
	var out struct {
		Moves   []legalMove `json:"moves"`
		Outcome string      `json:"outcome"`
	}
	testutil.AssertNoError(t, json.Unmarshal(body, &out))
	testutil.AssertEqual(t, len(out.Moves), 20)
	testutil.AssertEqual(t, out.Outcome, "*")

	fen := url.QueryEscape("6k1/8/8/8/8/8/8/R3K3 w Q - 0 1")
	resp, body = do(t, app, httptest.NewRequest(http.MethodGet, "/api/legal?fen="+fen, nil))
	testutil.AssertEqual(t, resp.StatusCode, 200)
	testutil.AssertNoError(t, json.Unmarshal(body, &out))
	sans := make(map[string]string)
	for _, m := range out.Moves {
		sans[m.UCI] = m.SAN
	}
	testutil.AssertEqual(t, sans["a1a8"], "Ra8+")
	testutil.AssertEqual(t, sans["e1c1"], "O-O-O")

	resp, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/api/legal?fen=nonsense", nil))
	testutil.AssertEqual(t, resp.StatusCode, fiber.StatusBadRequest)
}

func TestLegalRejectsOpponentInCheck(t *testing.T) {
	fen := url.QueryEscape("k7/8/8/3Q4/8/8/8/K7 w - - 0 1")
	for _, kind := range oracle.Kinds {
		cfg := config.NewServerConfig()
		cfg.Oracle = kind
		app := New(cfg, zerolog.Nop())
		resp, body := do(t, app, httptest.NewRequest(http.MethodGet, "/api/legal?fen="+fen, nil))
		testutil.AssertEqual(t, resp.StatusCode, fiber.StatusBadRequest, "%s: %s", kind, body)
	}
}

func TestLegalWithoutPhantomCastle(t *testing.T) {
	fen := url.QueryEscape("4k3/8/8/8/8/8/8/4K3 w K - 0 1")
	resp, body := do(t, newTestApp(), httptest.NewRequest(http.MethodGet, "/api/legal?fen="+fen, nil))
	testutil.AssertEqual(t, resp.StatusCode, 200)
	var out struct {
		FEN   string      `json:"fen"`
		Moves []legalMove `json:"moves"`
	}
	testutil.AssertNoError(t, json.Unmarshal(body, &out))
	testutil.AssertEqual(t, strings.Fields(out.FEN)[2], "-")
	testutil.AssertEqual(t, len(out.Moves), 5)
	for _, m := range out.Moves {
		testutil.AssertNotContains(t, m.SAN, "O-O")
	}
}

func TestPanicRecovered(t *testing.T) {
	var buf bytes.Buffer
	app := New(config.NewServerConfig(), zerolog.New(&buf))
	app.Get("/api/crash", func(*fiber.Ctx) error { panic("boom") })

	resp, _ := do(t, app, httptest.NewRequest(http.MethodGet, "/api/crash", nil))
	testutil.AssertEqual(t, resp.StatusCode, fiber.StatusInternalServerError)
	testutil.AssertContains(t, buf.String(), "handler panicked")

	resp, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/api/legal", nil))
	testutil.AssertEqual(t, resp.StatusCode, 200)
}

func TestRequestID(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/api/legal", nil)
	req.Header.Set(HeaderRequestID, "abc123")
	resp, _ := do(t, app, req)
	testutil.AssertEqual(t, resp.Header.Get(HeaderRequestID), "abc123")

	resp, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/api/legal", nil))
	testutil.AssertEqual(t, len(resp.Header.Get(HeaderRequestID)), 36)
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	app := New(config.NewServerConfig(), zerolog.New(&buf))
	req := httptest.NewRequest(http.MethodGet, "/api/legal", nil)
	req.Header.Set(HeaderRequestID, "rid-1")
	do(t, app, req)

	var event map[string]interface{}
	testutil.AssertNoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &event))
	testutil.AssertEqual(t, event["rid"], "rid-1")
	testutil.AssertEqual(t, event["path"], "/api/legal")
	testutil.AssertEqual(t, event["status"], float64(200))
}

func TestWebSocketRequiresUpgrade(t *testing.T) {
	resp, _ := do(t, newTestApp(), httptest.NewRequest(http.MethodGet, "/ws/replay", nil))
	testutil.AssertEqual(t, resp.StatusCode, fiber.StatusUpgradeRequired)
}

func TestStreamReplay(t *testing.T) {
	for _, kind := range oracle.Kinds {
		t.Run(string(kind), func(t *testing.T) {
			var msgs []StreamMessage
			err := streamReplay(kind, testutil.ScholarsMate.Transcript, func(m StreamMessage) error {
				msgs = append(msgs, m)
				return nil
			})
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, len(msgs), 8)
			testutil.AssertEqual(t, msgs[0].Type, MessagePly)
			testutil.AssertEqual(t, msgs[0].Ply.UCI, "e2e4")
			testutil.AssertEqual(t, msgs[6].Ply.SAN, "Qxf7#")
			testutil.AssertEqual(t, msgs[7].Type, MessageDone)
			testutil.AssertEqual(t, msgs[7].Outcome, "1-0")
		})
	}
}

func TestStreamReplayError(t *testing.T) {
	var msgs []StreamMessage
	err := streamReplay(oracle.DefaultKind, testutil.Transcript("1. e4 Qh4"), func(m StreamMessage) error {
		msgs = append(msgs, m)
		return nil
	})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(msgs), 2)
	testutil.AssertEqual(t, msgs[1].Type, MessageError)
	testutil.AssertEqual(t, msgs[1].PlyIndex, 2)
	testutil.AssertEqual(t, msgs[1].Token, "Qh4")
}

func TestStreamReplayNoMovetext(t *testing.T) {
	var msgs []StreamMessage
	err := streamReplay(oracle.DefaultKind, `[Event "x"]`, func(m StreamMessage) error {
		msgs = append(msgs, m)
		return nil
	})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(msgs), 1)
	testutil.AssertEqual(t, msgs[0].Type, MessageError)
}

func TestStreamReplaySendError(t *testing.T) {
	gone := errors.New("connection closed")
	calls := 0
	err := streamReplay(oracle.DefaultKind, testutil.ScholarsMate.Transcript, func(StreamMessage) error {
		calls++
		return gone
	})
	testutil.AssertErrorIs(t, err, gone)
	testutil.AssertEqual(t, calls, 1)
}
