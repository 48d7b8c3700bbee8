// Package server implements the text-input boundary: a small HTTP interface
// whose only job is to hand a bounded display string to the refresh loop. It
// owns no GPIO and never blocks the bit-banging path.
package server

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/hacklab-fi/ledwall/internal/matrix"
)

// Server holds the shared text store handle obtained at construction; there
// is no other channel between the network side and the driver.
type Server struct {
	store *matrix.TextStore
	log   zerolog.Logger
	page  []byte
}

func New(store *matrix.TextStore, log zerolog.Logger) *Server {
	return &Server{
		store: store,
		log:   log,
		page:  []byte(fmt.Sprintf(indexPage, matrix.MaxChars(), matrix.MaxChars())),
	}
}

// Handler returns the route table for the control interface.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/text", s.handleText)
	mux.HandleFunc("/clear", s.handleClear)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(s.page)
}

func (s *Server) handleText(w http.ResponseWriter, r *http.Request) {
	msg := r.URL.Query().Get("msg")
	s.store.Set(msg)
	s.log.Info().Str("text", s.store.Get()).Msg("display text updated")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(s.page)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.store.Set("")
	s.log.Info().Msg("display cleared")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(s.page)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

const indexPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>LED Wall</title>
<style>
body { font-family: sans-serif; background: #16213e; color: #fff;
       display: flex; justify-content: center; padding-top: 60px; }
.card { background: rgba(255,255,255,0.08); border-radius: 12px;
        padding: 32px; max-width: 420px; width: 100%%; }
h1 { margin-top: 0; }
input[type=text] { width: 100%%; padding: 12px; font-size: 1.1em;
        border-radius: 8px; border: 1px solid #555; box-sizing: border-box; }
button { margin-top: 12px; padding: 12px 24px; border: none;
        border-radius: 8px; background: #e94560; color: #fff;
        font-size: 1em; cursor: pointer; }
p.hint { color: rgba(255,255,255,0.6); font-size: 0.9em; }
</style>
</head>
<body>
<div class="card">
<h1>LED Wall</h1>
<form action="/text" method="get">
<input type="text" name="msg" placeholder="Type your message..." maxlength="%d">
<button type="submit">Display</button>
</form>
<p class="hint">88x88 RGB panel, max %d characters. <a href="/clear" style="color:#e94560">Clear</a></p>
</div>
</body>
</html>
`
