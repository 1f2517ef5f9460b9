package live

import (
	"testing"
	"time"
)

func TestChanSource_BurstDeliveredIntact(t *testing.T) {
	src := NewChanSource()
	frames, err := src.Start()
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	const n = 200 // well past the queue capacity
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < n; i++ {
			src.Push([]float32{float32(i)})
		}
	}()

	for i := 0; i < n; i++ {
		select {
		case frame := <-frames:
			if len(frame) != 1 || frame[0] != float32(i) {
				t.Fatalf("frame %d dropped or reordered: got %v", i, frame)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("frame %d never arrived", i)
		}
	}
	<-done
}

func TestChanSource_StopReleasesBlockedPush(t *testing.T) {
	src := NewChanSource()
	if _, err := src.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	// fill the queue, then block one more push behind it
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			src.Push([]float32{0})
		}
	}()
	select {
	case <-done:
		t.Fatalf("pushes should block once the queue fills")
	case <-time.After(20 * time.Millisecond):
	}

	src.Stop()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("stop must release a blocked push")
	}

	// pushes after stop return immediately
	src.Push([]float32{1})
	src.Stop() // idempotent
}
