package httpserver

import (
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/mwestphal/pandachat/internal/live"
	"github.com/mwestphal/pandachat/internal/llm"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// clientFrame is one inbound websocket message from the browser: a microphone
// chunk or a stop request.
type clientFrame struct {
	Type  string `json:"type,omitempty"`
	Audio string `json:"audio,omitempty"`
}

// serverFrame is one outbound event to the browser.
type serverFrame struct {
	Type  string  `json:"type"`
	Role  string  `json:"role,omitempty"`
	Text  string  `json:"text,omitempty"`
	Data  string  `json:"data,omitempty"`
	Start float64 `json:"start,omitempty"`
	State string  `json:"state,omitempty"`
	Error string  `json:"error,omitempty"`
}

// wsWriter serializes JSON writes; hooks, the player and the read loop all
// emit from different goroutines.
type wsWriter struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (w *wsWriter) send(f serverFrame) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.conn.WriteJSON(f); err != nil {
		log.Printf("live bridge write: %v", err)
	}
}

// wsPlayer relays scheduled speech to the browser, which owns the actual
// audio output. StopAll maps to an interrupted event.
type wsPlayer struct {
	w *wsWriter
}

func (p *wsPlayer) PlayAt(samples []float32, sampleRate int, start float64) {
	p.w.send(serverFrame{Type: "audio", Data: live.EncodeChunk(samples), Start: start})
}

func (p *wsPlayer) StopAll() {
	p.w.send(serverFrame{Type: "interrupted"})
}

// wallClock measures the playback timeline from bridge start.
type wallClock struct {
	start time.Time
}

func (c wallClock) Now() float64 { return time.Since(c.start).Seconds() }

// handleLive upgrades to a websocket and bridges the client microphone to the
// realtime session for the lifetime of the connection.
func (s *Server) handleLive(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	w := &wsWriter{conn: conn}
	source := live.NewChanSource()
	sched := live.NewScheduler(wallClock{start: time.Now()}, &wsPlayer{w: w})

	// the voice persona is the character line only, without the JSON reply
	// contract the text endpoint uses
	persona := strings.SplitN(llm.PersonaPrompt, "\n", 2)[0]

	session := live.NewSession(s.cfg.RealtimeURL, s.cfg.AIAPIKey, s.cfg.TTSVoice, persona, source, sched, live.Hooks{
		OnUserTurn: func(text string) {
			s.svc.VoiceUserTurn(text)
			w.send(serverFrame{Type: "transcript", Role: "user", Text: text})
		},
		OnPandaTurn: func(text string) {
			s.svc.VoicePandaTurn(text)
			w.send(serverFrame{Type: "transcript", Role: "panda", Text: text})
		},
		OnState: func(st live.State) {
			w.send(serverFrame{Type: "state", State: st.String()})
		},
	})
	if err := session.Start(c.Request().Context()); err != nil {
		w.send(serverFrame{Type: "error", Error: "could not start voice session"})
		return nil
	}
	defer session.Stop()

	for {
		var frame clientFrame
		if err := conn.ReadJSON(&frame); err != nil {
			log.Printf("live bridge closed: %v", err)
			return nil
		}
		if frame.Type == "stop" {
			return nil
		}
		if frame.Audio == "" {
			continue
		}
		samples, err := live.DecodeChunk(frame.Audio)
		if err != nil {
			log.Printf("live bridge: bad audio frame: %v", err)
			continue
		}
		source.Push(samples)
	}
}
