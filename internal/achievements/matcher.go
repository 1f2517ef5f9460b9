package achievements

import (
	"strings"
	"time"
)

// Event is one achievement increment raised by the content matcher.
type Event struct {
	ID    ID
	Delta int
}

type rule struct {
	id    ID
	match func(lower, raw string) bool
}

func contains(subs ...string) func(string, string) bool {
	return func(lower, _ string) bool {
		for _, s := range subs {
			if strings.Contains(lower, s) {
				return true
			}
		}
		return false
	}
}

func containsAll(subs ...string) func(string, string) bool {
	return func(lower, _ string) bool {
		for _, s := range subs {
			if !strings.Contains(lower, s) {
				return false
			}
		}
		return true
	}
}

func anyOf(fns ...func(string, string) bool) func(string, string) bool {
	return func(lower, raw string) bool {
		for _, fn := range fns {
			if fn(lower, raw) {
				return true
			}
		}
		return false
	}
}

// rules are independent, non-exclusive, case-insensitive predicates over the
// full utterance. They are re-scanned every call; nothing is cached.
var rules = []rule{
	// Daily Life
	{ExistentialLoop, contains("i'm tired")},

	// Relationship Chaos
	{GhostedAgain, contains("ghosted", "stopped replying")},
	{ItsComplicated, anyOf(containsAll("love", "hate"), contains("why me"))},
	{EmotionalGymnast, contains("but he", "but she", "deep down")},
	{RomComReject, containsAll("maybe", "change")},
	{UnsentMessageHero, containsAll("deleted", "message")},

	// Existential
	{PhilosopherInPajamas, contains("what's the point")},
	{UniverseDoesntCare, contains("universe", "fate", "meaningless")},
	{MidlifeCrisisEarlyEdition, contains("purpose", "what am i doing")},
	// exact after trimming, not a substring test
	{ScreamedIntoTheVoid, func(_, raw string) bool { return strings.TrimSpace(raw) == "..." }},
	{NihilistLevel10, contains("i agree", "you're right")},

	// Tech & Social Media
	{DoomscrollMaster, contains("insta", "tiktok", "scrolling")},
	{MessageSeenIgnored, contains("left on read", "seen my message")},
	{SocialMediaArcheologist, containsAll("stalking", "ex")},
	{InfiniteLoopOfValidation, contains("do they care", "if they care")},

	// Lifestyle & Habits
	{DinnerOfChampions, contains("cereal for dinner", "junk food for dinner")},
	{ProductivityIsAMyth, contains("procrastinat")},
	{GymTomorrow, contains("gym tomorrow", "work out soon")},
	{FinancialDisasterpiece, contains("i'm broke")},

	// Self-Reflection
	{AccidentalSelfAwareness, containsAll("maybe i", "the problem")},
	{GrowthHurts, contains("thank you panda", "thanks panda")},
	{DetachedAndProud, contains("i don't care anymore")},
	{MicrodoseOfAcceptance, contains("you're right", "that's true")},

	// Hidden
	{Happiness404NotFound, contains("i'm happy")},
	{SecretlyHopeful, contains("getting better")},
}

// Match scans a user utterance and returns one increment event per matching
// rule. A single utterance may raise zero, one or many events.
func Match(text string) []Event {
	lower := strings.ToLower(text)
	var events []Event
	for _, r := range rules {
		if r.match(lower, text) {
			events = append(events, Event{ID: r.id, Delta: 1})
		}
	}
	return events
}

// TimeOfDay raises the clock-based increments for a message sent at now.
func TimeOfDay(now time.Time) []Event {
	var events []Event
	hour := now.Hour()
	if now.Weekday() == time.Monday && hour < 9 {
		events = append(events, Event{ID: MondaySurvivor, Delta: 1})
	}
	if hour >= 0 && hour < 3 {
		events = append(events, Event{ID: ScreenTimeDontAsk, Delta: 1})
	}
	if hour >= 3 && hour < 6 {
		events = append(events, Event{ID: SleepOptional, Delta: 1})
	}
	return events
}
