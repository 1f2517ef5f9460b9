package live

import "sync"

// Clock reports the playback timeline position in seconds.
type Clock interface {
	Now() float64
}

// Player renders scheduled PCM. StopAll discards every pending source
// immediately.
type Player interface {
	PlayAt(samples []float32, sampleRate int, start float64)
	StopAll()
}

// Scheduler queues decoded speech gap-free: each chunk starts at the later of
// the previous chunk's end and the current clock position, so consecutive
// chunks butt against each other and a late chunk never schedules in the past.
type Scheduler struct {
	clock  Clock
	player Player

	mu        sync.Mutex
	nextStart float64
}

func NewScheduler(clock Clock, player Player) *Scheduler {
	return &Scheduler{clock: clock, player: player}
}

// Schedule enqueues samples and returns the start time chosen for them.
func (s *Scheduler) Schedule(samples []float32, sampleRate int) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	start := s.nextStart
	if now := s.clock.Now(); now > start {
		start = now
	}
	s.player.PlayAt(samples, sampleRate, start)
	s.nextStart = start + float64(len(samples))/float64(sampleRate)
	return start
}

// Reset discards all pending sources and rewinds the scheduling horizon to
// zero, so playback after an interruption starts immediately.
func (s *Scheduler) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.player.StopAll()
	s.nextStart = 0
}

// NextStart reports the current scheduling horizon.
func (s *Scheduler) NextStart() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextStart
}
