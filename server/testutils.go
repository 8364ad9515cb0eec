package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/minaorangina/arcade"
	utils "github.com/minaorangina/arcade/internal"
	"github.com/minaorangina/arcade/store"
)

// newTestServer returns a quiet server whose arcades deal the same content
// every time
func newTestServer(t *testing.T, results store.ResultStore) *ArcadeServer {
	t.Helper()
	return newTestServerWith(t, ServerOpts{Results: results})
}

func newTestServerWith(t *testing.T, opts ServerOpts) *ArcadeServer {
	t.Helper()

	if opts.Hubs == nil {
		opts.Hubs = store.NewInMemoryHubStore[*arcade.Hub]()
	}
	opts.Seed = 1
	opts.Logger = log.New(io.Discard, "", 0)
	opts.AccessLog = io.Discard

	s := NewServer(opts)
	t.Cleanup(s.CloseArcades)
	return s
}

func newRequest(t *testing.T, method, url string) *http.Request {
	t.Helper()

	request, err := http.NewRequest(method, url, nil)
	utils.AssertNoError(t, err)
	return request
}

func serve(s http.Handler, request *http.Request) *httptest.ResponseRecorder {
	response := httptest.NewRecorder()
	s.ServeHTTP(response, request)
	return response
}

func mustDecode(t *testing.T, body io.Reader, into interface{}) {
	t.Helper()

	if err := json.NewDecoder(body).Decode(into); err != nil {
		t.Fatalf("could not unmarshal json: %s", err.Error())
	}
}

// mustOpenArcade creates an arcade and returns its id
func mustOpenArcade(t *testing.T, s http.Handler) string {
	t.Helper()

	response := serve(s, newRequest(t, http.MethodPost, "/arcade"))
	assertStatus(t, response.Code, http.StatusCreated)

	var res NewArcadeRes
	mustDecode(t, response.Body, &res)
	utils.AssertNotEmptyString(t, res.ArcadeID)
	return res.ArcadeID
}

func mustDialWS(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	ws, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		code := 0
		if resp != nil {
			code = resp.StatusCode
		}
		t.Fatalf("could not open a ws connection on %s, code %d: %v", url, code, err)
	}
	t.Cleanup(func() { ws.Close() })

	return ws
}

func makeWSUrl(serverURL, arcadeID string) string {
	return "ws" + strings.TrimPrefix(serverURL, "http") + "/ws?arcade_id=" + arcadeID
}

// ASSERTIONS

func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("got status %d, want %d", got, want)
	}
}
