// Package live manages the realtime voice session: microphone capture up the
// websocket, transcripts and synthesized speech back down.
package live

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// State is the session lifecycle phase.
type State int

const (
	Idle State = iota
	Connecting
	Active
	Interrupted
	Closing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Connecting:
		return "connecting"
	case Active:
		return "active"
	case Interrupted:
		return "interrupted"
	case Closing:
		return "closing"
	}
	return "unknown"
}

// Source produces capture frames. Start returns the frame channel; a source
// may close it on stop, but consumers must not rely on that.
type Source interface {
	Start() (<-chan []float32, error)
	Stop()
}

// Hooks receive completed turns and state transitions. Nil funcs are skipped.
type Hooks struct {
	OnUserTurn  func(text string)
	OnPandaTurn func(text string)
	OnState     func(s State)
}

// wireConn is the slice of *websocket.Conn the session uses.
type wireConn interface {
	ReadMessage() (int, []byte, error)
	WriteJSON(v interface{}) error
	Close() error
}

type transcriptDelta struct {
	Text string `json:"text"`
}

type audioPayload struct {
	Data string `json:"data"`
	MIME string `json:"mimeType,omitempty"`
}

// serverEvent carries any combination of the inbound message kinds.
type serverEvent struct {
	InputTranscription  *transcriptDelta `json:"inputTranscription,omitempty"`
	OutputTranscription *transcriptDelta `json:"outputTranscription,omitempty"`
	Audio               *audioPayload    `json:"audio,omitempty"`
	TurnComplete        bool             `json:"turnComplete,omitempty"`
	Interrupted         bool             `json:"interrupted,omitempty"`
}

type setupMessage struct {
	Setup setupBody `json:"setup"`
}

type setupBody struct {
	SystemInstruction   string `json:"systemInstruction"`
	ResponseModality    string `json:"responseModality"`
	Voice               string `json:"voice,omitempty"`
	InputTranscription  bool   `json:"inputTranscription"`
	OutputTranscription bool   `json:"outputTranscription"`
}

type inputMessage struct {
	RealtimeInput audioPayload `json:"realtimeInput"`
}

// Session is a single realtime voice conversation. One per client; no
// reconnects, a dropped connection tears the session down.
type Session struct {
	url     string
	apiKey  string
	voice   string
	persona string
	source  Source
	sched   *Scheduler
	hooks   Hooks

	// dial is swappable in tests.
	dial func(ctx context.Context) (wireConn, error)

	mu       sync.Mutex
	state    State
	conn     wireConn
	stopCh   chan struct{}
	stopped  bool
	userBuf  strings.Builder
	pandaBuf strings.Builder
}

func NewSession(url, apiKey, voice, persona string, source Source, sched *Scheduler, hooks Hooks) *Session {
	s := &Session{
		url:     url,
		apiKey:  apiKey,
		voice:   voice,
		persona: persona,
		source:  source,
		sched:   sched,
		hooks:   hooks,
		state:   Idle,
		stopCh:  make(chan struct{}),
	}
	s.dial = s.dialWebsocket
	return s
}

func (s *Session) dialWebsocket(ctx context.Context) (wireConn, error) {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	headers := map[string][]string{"Authorization": {"Bearer " + s.apiKey}}
	conn, resp, err := dialer.DialContext(ctx, s.url, headers)
	if err != nil {
		if resp != nil {
			log.Printf("realtime dial failed with status: %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("dial realtime endpoint: %w", err)
	}
	return conn, nil
}

// State reports the current phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) setState(st State) {
	s.mu.Lock()
	if s.stopped && st != Idle {
		s.mu.Unlock()
		return
	}
	s.state = st
	hook := s.hooks.OnState
	s.mu.Unlock()
	if hook != nil {
		hook(st)
	}
}

// Start acquires the capture source, dials the realtime endpoint, sends the
// setup message and launches the capture and read pumps. A source failure
// (typically denied microphone permission) leaves the session Idle.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.state != Idle || s.stopped {
		s.mu.Unlock()
		return fmt.Errorf("session already started")
	}
	s.state = Connecting
	s.mu.Unlock()
	if s.hooks.OnState != nil {
		s.hooks.OnState(Connecting)
	}

	frames, err := s.source.Start()
	if err != nil {
		log.Printf("capture source unavailable: %v", err)
		s.setState(Idle)
		return err
	}

	conn, err := s.dial(ctx)
	if err != nil {
		s.source.Stop()
		s.setState(Idle)
		return err
	}

	setup := setupMessage{Setup: setupBody{
		SystemInstruction:   s.persona,
		ResponseModality:    "audio",
		Voice:               s.voice,
		InputTranscription:  true,
		OutputTranscription: true,
	}}
	if err := conn.WriteJSON(setup); err != nil {
		_ = conn.Close()
		s.source.Stop()
		s.setState(Idle)
		return fmt.Errorf("send setup: %w", err)
	}

	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()
	s.setState(Active)

	go s.captureLoop(frames)
	go s.readLoop()
	return nil
}

// captureLoop forwards microphone frames upstream in capture order.
func (s *Session) captureLoop(frames <-chan []float32) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("recovered from panic in captureLoop: %v", r)
		}
	}()
	for {
		select {
		case <-s.stopCh:
			return
		case frame, ok := <-frames:
			if !ok {
				return
			}
			if len(frame) == 0 {
				continue
			}
			msg := inputMessage{RealtimeInput: audioPayload{
				Data: EncodeChunk(frame),
				MIME: fmt.Sprintf("audio/pcm;rate=%d", InputSampleRate),
			}}
			s.mu.Lock()
			conn := s.conn
			s.mu.Unlock()
			if conn == nil {
				return
			}
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("error sending audio chunk: %v", err)
				s.Stop()
				return
			}
		}
	}
}

// readLoop dispatches inbound events until the connection drops or the
// session stops. Any read error routes through the normal teardown.
func (s *Session) readLoop() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("recovered from panic in readLoop: %v", r)
		}
	}()
	for {
		select {
		case <-s.stopCh:
			return
		default:
		}
		s.mu.Lock()
		conn := s.conn
		s.mu.Unlock()
		if conn == nil {
			return
		}
		_, raw, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-s.stopCh:
			default:
				log.Printf("realtime read error: %v", err)
				s.Stop()
			}
			return
		}
		s.handleEvent(raw)
	}
}

func (s *Session) handleEvent(raw []byte) {
	var ev serverEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		log.Printf("malformed realtime event: %v", err)
		return
	}
	if ev.Interrupted {
		s.sched.Reset()
		s.setState(Interrupted)
	}
	if ev.InputTranscription != nil && ev.InputTranscription.Text != "" {
		s.mu.Lock()
		s.userBuf.WriteString(ev.InputTranscription.Text)
		s.mu.Unlock()
	}
	if ev.OutputTranscription != nil && ev.OutputTranscription.Text != "" {
		s.mu.Lock()
		s.pandaBuf.WriteString(ev.OutputTranscription.Text)
		s.mu.Unlock()
	}
	if ev.Audio != nil && ev.Audio.Data != "" {
		samples, err := DecodeChunk(ev.Audio.Data)
		if err != nil {
			log.Printf("bad inline audio payload: %v", err)
		} else if len(samples) > 0 {
			s.sched.Schedule(samples, OutputSampleRate)
			s.setState(Active)
		}
	}
	if ev.TurnComplete {
		s.flushTurn()
	}
}

// flushTurn commits the accumulated transcripts as at most two conversation
// messages, user first, dropping blank sides.
func (s *Session) flushTurn() {
	s.mu.Lock()
	user := strings.TrimSpace(s.userBuf.String())
	panda := strings.TrimSpace(s.pandaBuf.String())
	s.userBuf.Reset()
	s.pandaBuf.Reset()
	s.mu.Unlock()
	if user != "" && s.hooks.OnUserTurn != nil {
		s.hooks.OnUserTurn(user)
	}
	if panda != "" && s.hooks.OnPandaTurn != nil {
		s.hooks.OnPandaTurn(panda)
	}
}

// Stop tears the whole session down: websocket, capture source, pending
// playback, transcript buffers. Safe to call more than once and from any
// goroutine; later calls are no-ops.
func (s *Session) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	s.state = Closing
	conn := s.conn
	s.conn = nil
	close(s.stopCh)
	s.userBuf.Reset()
	s.pandaBuf.Reset()
	s.mu.Unlock()

	if conn != nil {
		_ = conn.Close()
	}
	s.source.Stop()
	s.sched.Reset()

	s.mu.Lock()
	s.state = Idle
	s.mu.Unlock()
	if s.hooks.OnState != nil {
		s.hooks.OnState(Idle)
	}
	log.Println("realtime session closed")
}
