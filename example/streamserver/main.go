// Command streamserver is a small demo server: paste markup into the
// page, and the parser's tag, text, comment, declaration, processing
// instruction, error and end events come back over a websocket as they
// are emitted, one JSON object per event.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/corelex/htmlkit/parser"
	"github.com/gorilla/websocket"
)

var wsUpgrader = websocket.Upgrader{}

// event is the wire form of one parser callback.
type event struct {
	Kind       string            `json:"kind"`
	Name       string            `json:"name,omitempty"`
	Data       string            `json:"data,omitempty"`
	Attribs    map[string]string `json:"attribs,omitempty"`
	StartIndex int               `json:"startIndex"`
	EndIndex   int               `json:"endIndex"`
}

type server struct {
	logger *slog.Logger
}

func (s *server) serveWS(w http.ResponseWriter, r *http.Request) {
	ws, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade", slog.Any("error", err))
		return
	}
	defer ws.Close()

	// One parser per message: each paste is treated as a complete
	// document. A send error stops the stream for this message and
	// closes the connection.
	for {
		_, msg, err := ws.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("read websocket message", slog.Any("error", err))
			}
			return
		}

		if err := s.streamEvents(ws, string(msg)); err != nil {
			s.logger.Warn("stream events", slog.Any("error", err))
			return
		}
	}
}

func (s *server) streamEvents(ws *websocket.Conn, markup string) error {
	var sendErr error
	var p *parser.Parser

	send := func(ev event) {
		if sendErr != nil {
			return
		}
		ev.StartIndex = p.StartIndex()
		ev.EndIndex = p.EndIndex()
		if err := ws.WriteJSON(ev); err != nil {
			sendErr = err
			p.Pause()
		}
	}

	handler := parser.Handler{
		OnOpenTag: func(name string, attribs map[string]string) {
			send(event{Kind: "opentag", Name: name, Attribs: attribs})
		},
		OnCloseTag: func(name string) {
			send(event{Kind: "closetag", Name: name})
		},
		OnText: func(text string) {
			send(event{Kind: "text", Data: text})
		},
		OnComment: func(data string) {
			send(event{Kind: "comment", Data: data})
		},
		OnProcessingInstruction: func(name, data string) {
			send(event{Kind: "processinginstruction", Name: name, Data: data})
		},
		OnDeclaration: func(data string) {
			send(event{Kind: "declaration", Data: data})
		},
		OnError: func(err error) {
			send(event{Kind: "error", Data: err.Error()})
		},
		OnEnd: func() {
			send(event{Kind: "end"})
		},
	}

	p = parser.New(parser.DefaultOptions(), handler)
	if err := p.ParseComplete(markup); err != nil {
		return err
	}
	return sendErr
}

func (s *server) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexPage)
}

const indexPage = `<!DOCTYPE html>
<html>
<head><title>htmlkit stream demo</title></head>
<body>
<textarea id="in" rows="8" cols="80">&lt;p&gt;hello &amp;amp; goodbye&lt;/p&gt;</textarea><br>
<button id="go">Parse</button>
<pre id="out"></pre>
<script>
const ws = new WebSocket("ws://" + location.host + "/ws");
const out = document.getElementById("out");
ws.onmessage = (m) => { out.textContent += m.data + "\n"; };
document.getElementById("go").onclick = () => {
  out.textContent = "";
  ws.send(document.getElementById("in").value);
};
</script>
</body>
</html>
`

func loggerMiddleware(next http.Handler, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Info("HTTP request", "method", r.Method, "url", r.URL)
		next.ServeHTTP(w, r)
	})
}

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	s := &server{logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.serveIndex)
	mux.HandleFunc("/ws", s.serveWS)

	logger.Info("listening", slog.String("addr", *addr))
	if err := http.ListenAndServe(*addr, loggerMiddleware(mux, logger)); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
