package achievements

import (
	"testing"
	"time"
)

func eventIDs(events []Event) map[ID]bool {
	m := make(map[ID]bool, len(events))
	for _, ev := range events {
		m[ev.ID] = true
	}
	return m
}

func TestMatch_EllipsisIsExactTrimMatch(t *testing.T) {
	for _, in := range []string{"...", "  ...  ", "\n...\n"} {
		if !eventIDs(Match(in))[ScreamedIntoTheVoid] {
			t.Fatalf("expected SCREAMED_INTO_THE_VOID for %q", in)
		}
	}
	// substring occurrences do not count
	got := eventIDs(Match("I am so... tired of this..."))
	if got[ScreamedIntoTheVoid] {
		t.Fatalf("ellipsis substring must not match")
	}
}

func TestMatch_TiredIsExactPhrase(t *testing.T) {
	if !eventIDs(Match("honestly I'm Tired of everything"))[ExistentialLoop] {
		t.Fatalf("expected case-insensitive phrase match")
	}
	if eventIDs(Match("I am so tired"))[ExistentialLoop] {
		t.Fatalf("\"I am so tired\" must not match the literal phrase")
	}
}

func TestMatch_MultipleRulesFire(t *testing.T) {
	got := eventIDs(Match("He ghosted me, I got left on read, what's the point"))
	for _, want := range []ID{GhostedAgain, MessageSeenIgnored, PhilosopherInPajamas} {
		if !got[want] {
			t.Fatalf("expected %s in events", want)
		}
	}
}

func TestMatch_ConjunctionRules(t *testing.T) {
	cases := []struct {
		in   string
		id   ID
		want bool
	}{
		{"I love him but I hate what he does", ItsComplicated, true},
		{"why me, always", ItsComplicated, true},
		{"I love pizza", ItsComplicated, false},
		{"maybe they'll change someday", RomComReject, true},
		{"maybe tomorrow", RomComReject, false},
		{"I deleted the message before sending", UnsentMessageHero, true},
		{"I deleted my account", UnsentMessageHero, false},
		{"caught myself stalking my ex again", SocialMediaArcheologist, true},
		{"maybe I am the problem here", AccidentalSelfAwareness, true},
	}
	for _, tc := range cases {
		got := eventIDs(Match(tc.in))[tc.id]
		if got != tc.want {
			t.Fatalf("%q -> %s: got %v want %v", tc.in, tc.id, got, tc.want)
		}
	}
}

func TestMatch_NoEventsForNeutralText(t *testing.T) {
	if events := Match("the weather is fine today"); len(events) != 0 {
		t.Fatalf("expected no events, got %v", events)
	}
}

func TestMatch_StemAndAliasPredicates(t *testing.T) {
	cases := []struct {
		in string
		id ID
	}{
		{"I keep procrastinating instead of working", ProductivityIsAMyth},
		{"spent the night scrolling tiktok", DoomscrollMaster},
		{"I'm broke until payday", FinancialDisasterpiece},
		{"thanks panda, I needed that", GrowthHurts},
		{"you're right, as always", NihilistLevel10},
		{"fine, that's true", MicrodoseOfAcceptance},
		{"I'm happy, I swear", Happiness404NotFound},
		{"things are getting better, slowly", SecretlyHopeful},
		{"had cereal for dinner again", DinnerOfChampions},
	}
	for _, tc := range cases {
		if !eventIDs(Match(tc.in))[tc.id] {
			t.Fatalf("%q should raise %s", tc.in, tc.id)
		}
	}
}

func TestTimeOfDay(t *testing.T) {
	// Monday 2026-08-24, 08:30 local
	monday := time.Date(2026, 8, 24, 8, 30, 0, 0, time.Local)
	got := eventIDs(TimeOfDay(monday))
	if !got[MondaySurvivor] {
		t.Fatalf("expected MONDAY_SURVIVOR before 9am Monday")
	}
	afterMidnight := time.Date(2026, 8, 25, 1, 0, 0, 0, time.Local)
	if !eventIDs(TimeOfDay(afterMidnight))[ScreenTimeDontAsk] {
		t.Fatalf("expected SCREEN_TIME_DONT_ASK at 1am")
	}
	lateNight := time.Date(2026, 8, 25, 4, 0, 0, 0, time.Local)
	if !eventIDs(TimeOfDay(lateNight))[SleepOptional] {
		t.Fatalf("expected SLEEP_OPTIONAL at 4am")
	}
	noon := time.Date(2026, 8, 25, 12, 0, 0, 0, time.Local)
	if len(TimeOfDay(noon)) != 0 {
		t.Fatalf("expected no clock events at noon")
	}
}
