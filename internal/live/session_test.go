package live

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeConn scripts the server side of the websocket: inbound events are
// pushed on a channel, outbound writes are recorded.
type fakeConn struct {
	inbound chan []byte

	mu     sync.Mutex
	writes [][]byte
	closed bool
}

func newFakeConn() *fakeConn {
	return &fakeConn{inbound: make(chan []byte, 16)}
}

func (c *fakeConn) ReadMessage() (int, []byte, error) {
	msg, ok := <-c.inbound
	if !ok {
		return 0, nil, errors.New("connection closed")
	}
	return 1, msg, nil
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.writes = append(c.writes, b)
	c.mu.Unlock()
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.inbound)
	}
	return nil
}

func (c *fakeConn) push(t *testing.T, ev serverEvent) {
	t.Helper()
	b, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}
	c.inbound <- b
}

func (c *fakeConn) writeCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.writes)
}

type failingSource struct{}

func (failingSource) Start() (<-chan []float32, error) {
	return nil, errors.New("microphone permission denied")
}
func (failingSource) Stop() {}

type turnRecorder struct {
	mu    sync.Mutex
	turns []string
}

func (r *turnRecorder) record(prefix string) func(string) {
	return func(text string) {
		r.mu.Lock()
		r.turns = append(r.turns, prefix+text)
		r.mu.Unlock()
	}
}

func (r *turnRecorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.turns...)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met in time")
}

func testSession(t *testing.T, hooks Hooks) (*Session, *fakeConn, *ChanSource, *fakePlayer) {
	t.Helper()
	conn := newFakeConn()
	source := NewChanSource()
	player := &fakePlayer{}
	sched := NewScheduler(&fakeClock{}, player)
	s := NewSession("wss://example/realtime", "key", "onyx", "persona", source, sched, hooks)
	s.dial = func(context.Context) (wireConn, error) { return conn, nil }
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	return s, conn, source, player
}

func TestStart_SendsSetupThenAudioInOrder(t *testing.T) {
	s, conn, source, _ := testSession(t, Hooks{})
	defer s.Stop()

	frames := [][]float32{{0.1, 0.2}, {0.3}, {0.4, 0.5, 0.6}}
	for _, f := range frames {
		source.Push(f)
	}
	waitFor(t, func() bool { return conn.writeCount() == 1+len(frames) })

	conn.mu.Lock()
	defer conn.mu.Unlock()
	var setup setupMessage
	if err := json.Unmarshal(conn.writes[0], &setup); err != nil || setup.Setup.SystemInstruction != "persona" {
		t.Fatalf("first write must be the setup message: %s", conn.writes[0])
	}
	if setup.Setup.ResponseModality != "audio" || !setup.Setup.InputTranscription || !setup.Setup.OutputTranscription {
		t.Fatalf("setup missing modality/transcription flags: %+v", setup.Setup)
	}
	for i, f := range frames {
		var msg inputMessage
		if err := json.Unmarshal(conn.writes[1+i], &msg); err != nil {
			t.Fatalf("chunk %d: %v", i, err)
		}
		if msg.RealtimeInput.Data != EncodeChunk(f) {
			t.Fatalf("chunk %d out of order or corrupted", i)
		}
	}
}

func TestTurnComplete_FlushesBothSides(t *testing.T) {
	rec := &turnRecorder{}
	s, conn, _, _ := testSession(t, Hooks{
		OnUserTurn:  rec.record("user:"),
		OnPandaTurn: rec.record("panda:"),
	})
	defer s.Stop()

	conn.push(t, serverEvent{InputTranscription: &transcriptDelta{Text: "I failed "}})
	conn.push(t, serverEvent{InputTranscription: &transcriptDelta{Text: "again"}})
	conn.push(t, serverEvent{OutputTranscription: &transcriptDelta{Text: "Of course "}})
	conn.push(t, serverEvent{OutputTranscription: &transcriptDelta{Text: "you did."}})
	conn.push(t, serverEvent{TurnComplete: true})

	waitFor(t, func() bool { return len(rec.snapshot()) == 2 })
	got := rec.snapshot()
	if got[0] != "user:I failed again" || got[1] != "panda:Of course you did." {
		t.Fatalf("unexpected flush: %v", got)
	}

	// buffers were cleared: an empty turn flushes nothing
	conn.push(t, serverEvent{TurnComplete: true})
	time.Sleep(50 * time.Millisecond)
	if len(rec.snapshot()) != 2 {
		t.Fatalf("empty turn must not emit messages: %v", rec.snapshot())
	}
}

func TestTurnComplete_SkipsBlankUser(t *testing.T) {
	rec := &turnRecorder{}
	s, conn, _, _ := testSession(t, Hooks{
		OnUserTurn:  rec.record("user:"),
		OnPandaTurn: rec.record("panda:"),
	})
	defer s.Stop()

	conn.push(t, serverEvent{InputTranscription: &transcriptDelta{Text: "   "}})
	conn.push(t, serverEvent{OutputTranscription: &transcriptDelta{Text: "Silence. Bold choice."}})
	conn.push(t, serverEvent{TurnComplete: true})

	waitFor(t, func() bool { return len(rec.snapshot()) == 1 })
	if got := rec.snapshot(); got[0] != "panda:Silence. Bold choice." {
		t.Fatalf("expected panda-only flush, got %v", got)
	}
}

func TestInlineAudio_Scheduled(t *testing.T) {
	s, conn, _, player := testSession(t, Hooks{})
	defer s.Stop()

	conn.push(t, serverEvent{Audio: &audioPayload{Data: EncodeChunk([]float32{0.1, 0.2, 0.3})}})
	waitFor(t, func() bool {
		player.mu.Lock()
		defer player.mu.Unlock()
		return len(player.played) == 1
	})
	player.mu.Lock()
	defer player.mu.Unlock()
	if player.played[0].n != 3 {
		t.Fatalf("expected 3 scheduled samples, got %d", player.played[0].n)
	}
}

func TestInterrupted_ResetsPlayback(t *testing.T) {
	var states []State
	var mu sync.Mutex
	s, conn, _, player := testSession(t, Hooks{OnState: func(st State) {
		mu.Lock()
		states = append(states, st)
		mu.Unlock()
	}})
	defer s.Stop()

	conn.push(t, serverEvent{Audio: &audioPayload{Data: EncodeChunk(make([]float32, 24000))}})
	waitFor(t, func() bool { return s.sched.NextStart() > 0 })
	conn.push(t, serverEvent{Interrupted: true})
	waitFor(t, func() bool { return s.sched.NextStart() == 0 })

	player.mu.Lock()
	stopped := player.stopped
	player.mu.Unlock()
	if stopped == 0 {
		t.Fatalf("interruption must discard pending sources")
	}
	mu.Lock()
	defer mu.Unlock()
	seen := false
	for _, st := range states {
		if st == Interrupted {
			seen = true
		}
	}
	if !seen {
		t.Fatalf("expected an Interrupted transition, got %v", states)
	}
}

func TestStop_Idempotent(t *testing.T) {
	s, conn, _, _ := testSession(t, Hooks{})
	s.Stop()
	s.Stop()
	if got := s.State(); got != Idle {
		t.Fatalf("expected Idle after stop, got %v", got)
	}
	conn.mu.Lock()
	defer conn.mu.Unlock()
	if !conn.closed {
		t.Fatalf("stop must close the connection")
	}
}

func TestReadError_TearsDown(t *testing.T) {
	s, conn, _, _ := testSession(t, Hooks{})
	_ = conn.Close() // server side drops
	waitFor(t, func() bool { return s.State() == Idle })
}

func TestStart_SourceDeniedStaysIdle(t *testing.T) {
	sched := NewScheduler(&fakeClock{}, &fakePlayer{})
	s := NewSession("wss://example/realtime", "key", "onyx", "persona", failingSource{}, sched, Hooks{})
	s.dial = func(context.Context) (wireConn, error) {
		return nil, fmt.Errorf("dial should not be attempted")
	}
	if err := s.Start(context.Background()); err == nil {
		t.Fatalf("expected source error")
	}
	if got := s.State(); got != Idle {
		t.Fatalf("denied capture must leave the session Idle, got %v", got)
	}
}
