// Package chat orchestrates a conversation turn: streak and achievement
// bookkeeping, the AI collaborators, and persistence.
package chat

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/mwestphal/pandachat/internal/achievements"
	"github.com/mwestphal/pandachat/internal/convo"
	"github.com/mwestphal/pandachat/internal/llm"
	"github.com/mwestphal/pandachat/internal/progress"
	"github.com/mwestphal/pandachat/internal/store"
	"github.com/mwestphal/pandachat/internal/streak"
)

// Mode is the client's subscription tier; it gates sentiment scoring and
// spoken replies.
type Mode string

const (
	ModeFree    Mode = "free"
	ModePremium Mode = "premium"
	ModeElite   Mode = "elite"
)

// Inline replies for the two turns that never reach the AI.
const (
	CompletionReply = "Congrats. You completed disappointment."
	ErrorReply      = "Ugh, something broke. Even my failures have failures."
)

// Responder is the text AI collaborator.
type Responder interface {
	Respond(ctx context.Context, history []llm.Turn, userText string) llm.Reply
	Sentiment(ctx context.Context, text string) int
	Title(ctx context.Context, userText, pandaText string) string
	DailyTruth(ctx context.Context) string
}

// Speaker synthesizes a spoken reply. Errors fall back to text-only.
type Speaker interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

type dailyTruthRecord struct {
	Date string `json:"date"`
	Text string `json:"text"`
}

// Service owns the conversational state and serializes turns.
type Service struct {
	db     *store.Store
	ai     Responder
	speech Speaker
	now    func() time.Time

	Convos   *convo.Store
	Engine   *achievements.Engine
	Streak   *streak.Tracker
	Progress *progress.Log

	turnMu sync.Mutex

	unlockMu sync.Mutex
	unlocks  []achievements.Achievement
}

// NewService restores all persisted state from db and wires the unlock feed.
// now may be nil for the wall clock.
func NewService(db *store.Store, ai Responder, speech Speaker, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	s := &Service{db: db, ai: ai, speech: speech, now: now}
	s.Engine = achievements.NewEngine(s.pushUnlock)

	var stored map[achievements.ID]achievements.Achievement
	if ok, err := db.GetJSON(store.KeyAchievements, &stored); err != nil {
		log.Printf("restore achievements: %v", err)
	} else if ok {
		s.Engine.LoadStored(stored)
	}

	var streakState struct {
		Count    int    `json:"count"`
		LastDate string `json:"lastDate"`
	}
	if _, err := db.GetJSON(store.KeyStreak, &streakState); err != nil {
		log.Printf("restore streak: %v", err)
	}
	s.Streak = streak.New(streakState.Count, streakState.LastDate, now())

	var points []progress.Point
	if _, err := db.GetJSON(store.KeyProgress, &points); err != nil {
		log.Printf("restore progress: %v", err)
	}
	s.Progress = progress.NewLog(points)

	var threads []*convo.Conversation
	if _, err := db.GetJSON(store.KeyConversations, &threads); err != nil {
		log.Printf("restore conversations: %v", err)
	}
	s.Convos = convo.NewStore(threads)
	return s
}

func (s *Service) pushUnlock(a achievements.Achievement) {
	s.unlockMu.Lock()
	s.unlocks = append(s.unlocks, a)
	s.unlockMu.Unlock()
	log.Printf("achievement unlocked: %s", a.ID)
}

// DrainUnlocks returns and clears the pending unlock notifications in unlock
// order.
func (s *Service) DrainUnlocks() []achievements.Achievement {
	s.unlockMu.Lock()
	defer s.unlockMu.Unlock()
	out := s.unlocks
	s.unlocks = nil
	return out
}

// Send runs one full text turn against conversation convID and returns the
// appended panda reply. Unknown conversation ids report ok=false. A failure
// mid-turn degrades to an inline error reply; it never propagates.
func (s *Service) Send(ctx context.Context, convID, text string, mode Mode) (reply convo.Message, ok bool) {
	s.turnMu.Lock()
	defer s.turnMu.Unlock()

	before := s.Convos.MessageCount(convID)
	if before == 0 {
		return convo.Message{}, false
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("recovered from panic in turn: %v", r)
			reply = convo.Message{Role: convo.RolePanda, Text: ErrorReply, Reaction: convo.ReactionFacepalm}
			s.Convos.Append(convID, reply)
			ok = true
		}
		s.persist()
	}()

	now := s.now()
	s.Convos.Append(convID, convo.Message{Role: convo.RoleUser, Text: text})

	if count, firstOfDay := s.Streak.Record(now); firstOfDay {
		s.Engine.Apply(achievements.ConsistentComplainer, count, achievements.Absolute)
		s.Engine.Apply(achievements.JustAnotherTuesday, count, achievements.Absolute)
		s.Engine.Apply(achievements.WeeklyWhiner, count, achievements.Absolute)
	}
	s.Engine.Apply(achievements.GluttonForPunishment, 1, achievements.Relative)
	for _, ev := range achievements.TimeOfDay(now) {
		s.Engine.Apply(ev.ID, ev.Delta, achievements.Relative)
	}
	for _, ev := range achievements.Match(text) {
		s.Engine.Apply(ev.ID, ev.Delta, achievements.Relative)
	}

	// Once everything is unlocked the panda retires; no more AI calls.
	if s.Engine.FinalUnlocked() {
		reply = convo.Message{Role: convo.RolePanda, Text: CompletionReply, Reaction: convo.ReactionSlowClap}
		s.Convos.Append(convID, reply)
		return reply, true
	}

	history := s.history(convID)
	r := s.ai.Respond(ctx, history, text)
	reply = convo.Message{Role: convo.RolePanda, Text: r.Text, Reaction: convo.Reaction(r.Reaction)}

	if mode == ModeElite {
		score := s.ai.Sentiment(ctx, text)
		s.Progress.Append(score, now)
		s.Engine.Apply(achievements.BabysFirstCynicism, 1, achievements.Relative)
		s.Engine.Apply(achievements.EmotionalMasochist, score, achievements.Absolute)
		if score >= 4 && score <= 6 {
			s.Engine.Apply(achievements.MildlyShattered, 1, achievements.Relative)
		}
		if score >= 7 {
			s.Engine.Apply(achievements.FullyCrushed, 1, achievements.Relative)
		}
	}
	if mode == ModePremium || mode == ModeElite {
		if audio, err := s.speech.Synthesize(ctx, reply.Text); err != nil {
			log.Printf("tts unavailable, text-only reply: %v", err)
		} else {
			reply.Audio = audio
		}
	}

	s.Convos.Append(convID, reply)
	// the first roast counts once the panda has actually answered
	s.Engine.Apply(achievements.FirstRoast, 1, achievements.Relative)
	if before == 1 { // only the greeting existed: first exchange names the thread
		s.Convos.SetTitle(convID, s.ai.Title(ctx, text, reply.Text))
	}
	return reply, true
}

// history maps the thread's messages to AI turns, skipping the greeting seed.
func (s *Service) history(convID string) []llm.Turn {
	c, ok := s.Convos.Get(convID)
	if !ok {
		return nil
	}
	turns := make([]llm.Turn, 0, len(c.Messages))
	for i, m := range c.Messages {
		if i == 0 && m.Role == convo.RolePanda {
			continue
		}
		role := "user"
		if m.Role == convo.RolePanda {
			role = "assistant"
		}
		turns = append(turns, llm.Turn{Role: role, Text: m.Text})
	}
	return turns
}

// VoiceUserTurn appends a completed spoken user turn to the active
// conversation and raises the voice achievements.
func (s *Service) VoiceUserTurn(text string) {
	s.turnMu.Lock()
	defer s.turnMu.Unlock()
	s.Convos.Append(s.Convos.ActiveID(), convo.Message{Role: convo.RoleUser, Text: text})
	s.Engine.Apply(achievements.VoiceOfDespair, 1, achievements.Relative)
	for _, ev := range achievements.Match(text) {
		s.Engine.Apply(ev.ID, ev.Delta, achievements.Relative)
	}
	s.persist()
}

// VoicePandaTurn appends a completed spoken panda turn to the active
// conversation.
func (s *Service) VoicePandaTurn(text string) {
	s.turnMu.Lock()
	defer s.turnMu.Unlock()
	s.Convos.Append(s.Convos.ActiveID(), convo.Message{Role: convo.RolePanda, Text: text, Reaction: convo.ReactionNone})
	s.persist()
}

// DailyTruth returns today's truth, generating it on the first request of the
// calendar day and serving the cached line afterwards.
func (s *Service) DailyTruth(ctx context.Context) string {
	today := streak.Day(s.now())
	var rec dailyTruthRecord
	if ok, err := s.db.GetJSON(store.KeyLastDailyTruth, &rec); err != nil {
		log.Printf("read daily truth: %v", err)
	} else if ok && rec.Date == today && rec.Text != "" {
		return rec.Text
	}
	truth := s.ai.DailyTruth(ctx)
	if err := s.db.PutJSON(store.KeyLastDailyTruth, dailyTruthRecord{Date: today, Text: truth}); err != nil {
		log.Printf("save daily truth: %v", err)
	}
	return truth
}

// persist writes the full conversational state. Failures are logged, never
// surfaced; the in-memory state stays authoritative.
func (s *Service) persist() {
	list := s.Convos.List()
	threads := make([]*convo.Conversation, len(list))
	for i := range list {
		threads[i] = &list[i]
	}
	if err := s.db.PutJSON(store.KeyConversations, threads); err != nil {
		log.Printf("persist conversations: %v", err)
	}
	if err := s.db.PutJSON(store.KeyAchievements, s.Engine.Export()); err != nil {
		log.Printf("persist achievements: %v", err)
	}
	streakState := struct {
		Count    int    `json:"count"`
		LastDate string `json:"lastDate"`
	}{s.Streak.Count(), s.Streak.LastDate()}
	if err := s.db.PutJSON(store.KeyStreak, streakState); err != nil {
		log.Printf("persist streak: %v", err)
	}
	if err := s.db.Put(store.KeyLastInteraction, s.Streak.LastDate()); err != nil {
		log.Printf("persist last interaction: %v", err)
	}
	if err := s.db.PutJSON(store.KeyProgress, s.Progress.Points()); err != nil {
		log.Printf("persist progress: %v", err)
	}
}

// Persist flushes state on demand (shutdown path).
func (s *Service) Persist() {
	s.turnMu.Lock()
	defer s.turnMu.Unlock()
	s.persist()
}
