package live

import "sync"

// ChanSource adapts externally pushed capture frames (the browser microphone
// relayed over the client websocket) to the Source interface.
type ChanSource struct {
	frames   chan []float32
	stopCh   chan struct{}
	stopOnce sync.Once
}

func NewChanSource() *ChanSource {
	return &ChanSource{
		frames: make(chan []float32, 64),
		stopCh: make(chan struct{}),
	}
}

func (c *ChanSource) Start() (<-chan []float32, error) {
	return c.frames, nil
}

// Push queues a frame in arrival order. When the queue is full it blocks
// until the capture loop drains it, so the caller's read loop is the implicit
// back-pressure; no frame is dropped or reordered. Returns immediately once
// the source is stopped.
func (c *ChanSource) Push(frame []float32) {
	select {
	case <-c.stopCh:
	case c.frames <- frame:
	}
}

// Stop releases any blocked Push and marks the source stopped. The frame
// channel is left open; consumers exit through their own stop signal.
func (c *ChanSource) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}
