package achievements

// ID identifies an achievement in the static catalog.
type ID string

// Category is a display grouping only; it carries no engine semantics.
type Category string

const (
	CategoryCore          Category = "🏆 Core Achievements"
	CategoryDailyLife     Category = "💬 Daily Life Failures"
	CategoryEmotional     Category = "😭 Emotional Achievements"
	CategoryRelationship  Category = "💔 Relationship Chaos"
	CategoryExistential   Category = "🧠 Existential & Deep Thoughts"
	CategoryTech          Category = "📱 Tech & Social Media"
	CategoryLifestyle     Category = "🍕 Lifestyle & Habits"
	CategoryReflection    Category = "🧘 Self-Reflection & Growth (Kind of)"
	CategoryHiddenTrophy  Category = "🧨 Hidden / Easter Egg Trophies"
)

const (
	// Core
	FirstRoast           ID = "FIRST_ROAST"
	GluttonForPunishment ID = "GLUTTON_FOR_PUNISHMENT"
	ConsistentComplainer ID = "CONSISTENT_COMPLAINER"
	WeeklyWhiner         ID = "WEEKLY_WHINER"
	BabysFirstCynicism   ID = "BABYS_FIRST_CYNICISM"
	EmotionalMasochist   ID = "EMOTIONAL_MASOCHIST"
	VoiceOfDespair       ID = "VOICE_OF_DESPAIR"
	// Daily Life Failures
	JustAnotherTuesday ID = "JUST_ANOTHER_TUESDAY"
	GroundhogDay       ID = "GROUNDHOG_DAY"
	MondaySurvivor     ID = "MONDAY_SURVIVOR"
	ExistentialLoop    ID = "EXISTENTIAL_LOOP"
	DejaDisappointment ID = "DEJA_DISAPPOINTMENT"
	// Emotional
	MildlyShattered        ID = "MILDLY_SHATTERED"
	FullyCrushed           ID = "FULLY_CRUSHED"
	TearStainedConfession  ID = "TEAR_STAINED_CONFESSION"
	TherapistWontHearThis  ID = "THERAPIST_WONT_HEAR_THIS"
	EmotionalOverdraft     ID = "EMOTIONAL_OVERDRAFT"
	// Relationship Chaos
	GhostedAgain      ID = "GHOSTED_AGAIN"
	ItsComplicated    ID = "ITS_COMPLICATED"
	EmotionalGymnast  ID = "EMOTIONAL_GYMNAST"
	RomComReject      ID = "ROM_COM_REJECT"
	UnsentMessageHero ID = "UNSENT_MESSAGE_HERO"
	// Existential & Deep Thoughts
	PhilosopherInPajamas      ID = "PHILOSOPHER_IN_PAJAMAS"
	UniverseDoesntCare        ID = "UNIVERSE_DOESNT_CARE"
	MidlifeCrisisEarlyEdition ID = "MIDLIFE_CRISIS_EARLY_EDITION"
	ScreamedIntoTheVoid       ID = "SCREAMED_INTO_THE_VOID"
	NihilistLevel10           ID = "NIHILIST_LEVEL_10"
	// Tech & Social Media
	DoomscrollMaster         ID = "DOOMSCROLL_MASTER"
	MessageSeenIgnored       ID = "MESSAGE_SEEN_IGNORED"
	SocialMediaArcheologist  ID = "SOCIAL_MEDIA_ARCHEOLOGIST"
	InfiniteLoopOfValidation ID = "INFINITE_LOOP_OF_VALIDATION"
	ScreenTimeDontAsk        ID = "SCREEN_TIME_DONT_ASK"
	// Lifestyle & Habits
	DinnerOfChampions      ID = "DINNER_OF_CHAMPIONS"
	ProductivityIsAMyth    ID = "PRODUCTIVITY_IS_A_MYTH"
	GymTomorrow            ID = "GYM_TOMORROW"
	FinancialDisasterpiece ID = "FINANCIAL_DISASTERPIECE"
	SleepOptional          ID = "SLEEP_OPTIONAL"
	// Self-Reflection & Growth (Kind of)
	AccidentalSelfAwareness    ID = "ACCIDENTAL_SELF_AWARENESS"
	GrowthHurts                ID = "GROWTH_HURTS"
	DetachedAndProud           ID = "DETACHED_AND_PROUD"
	MicrodoseOfAcceptance      ID = "MICRODOSE_OF_ACCEPTANCE"
	EnlightenmentWithAHangover ID = "ENLIGHTENMENT_WITH_A_HANGOVER"
	// Hidden / Easter Egg Trophies
	Happiness404NotFound      ID = "HAPPINESS_404_NOT_FOUND"
	SecretlyHopeful           ID = "SECRETLY_HOPEFUL"
	DevelopersFavorite        ID = "DEVELOPERS_FAVORITE"
	DisappointmentConnoisseur ID = "DISAPPOINTMENT_CONNOISSEUR"
	YouWinNothing             ID = "YOU_WIN_NOTHING"
)

// Achievement is a named progress goal with a monotonic counter and a one-way
// unlock flag.
type Achievement struct {
	ID          ID       `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Goal        int      `json:"goal"`
	Progress    int      `json:"progress"`
	Unlocked    bool     `json:"unlocked"`
	Category    Category `json:"category"`
}

// catalog is the static default table. Order is the display order.
var catalog = []Achievement{
	{ID: FirstRoast, Name: "First Roast", Description: "Survive your first reality check.", Goal: 1, Category: CategoryCore},
	{ID: GluttonForPunishment, Name: "Glutton for Punishment", Description: "Come back for more truth bombs 5 times.", Goal: 5, Category: CategoryCore},
	{ID: ConsistentComplainer, Name: "Consistent Complainer", Description: "Maintain a 3-day streak.", Goal: 3, Category: CategoryCore},
	{ID: WeeklyWhiner, Name: "Weekly Whiner", Description: "Maintain a 7-day streak.", Goal: 7, Category: CategoryCore},
	{ID: BabysFirstCynicism, Name: "Baby's First Cynicism", Description: "Get your first progress point.", Goal: 1, Category: CategoryCore},
	{ID: EmotionalMasochist, Name: "Emotional Masochist", Description: "Reach a cynicism score of 8 or higher.", Goal: 8, Category: CategoryCore},
	{ID: VoiceOfDespair, Name: "Voice of Despair", Description: "Use the microphone to vent your sorrow.", Goal: 1, Category: CategoryCore},

	{ID: JustAnotherTuesday, Name: "Just Another Tuesday", Description: "Used the app three days in a row.", Goal: 3, Category: CategoryDailyLife},
	{ID: GroundhogDay, Name: "Groundhog Day", Description: "Had the exact same complaint twice.", Goal: 1, Category: CategoryDailyLife},
	{ID: MondaySurvivor, Name: "Monday Survivor", Description: "Opened the app before 9 a.m. on a Monday.", Goal: 1, Category: CategoryDailyLife},
	{ID: ExistentialLoop, Name: "Existential Loop", Description: "Typed “I’m tired.”", Goal: 1, Category: CategoryDailyLife},
	{ID: DejaDisappointment, Name: "Déjà Disappointment", Description: "Copy-pasted the same story from yesterday.", Goal: 1, Category: CategoryDailyLife},

	{ID: MildlyShattered, Name: "Mildly Shattered", Description: "Rated your mood as “Not great.” (Score 4-6)", Goal: 1, Category: CategoryEmotional},
	{ID: FullyCrushed, Name: "Fully Crushed", Description: "Rated your mood as “I give up.” (Score 7+)", Goal: 7, Category: CategoryEmotional},
	{ID: TearStainedConfession, Name: "Tear-Stained Confession", Description: "Told Panda something really personal.", Goal: 1, Category: CategoryEmotional},
	{ID: TherapistWontHearThis, Name: "The Therapist Won’t Hear This", Description: "Shared a secret.", Goal: 1, Category: CategoryEmotional},
	{ID: EmotionalOverdraft, Name: "Emotional Overdraft", Description: "Complained about the same person.", Goal: 1, Category: CategoryEmotional},

	{ID: GhostedAgain, Name: "Ghosted Again", Description: "Mentioned someone stopped replying.", Goal: 1, Category: CategoryRelationship},
	{ID: ItsComplicated, Name: "It’s Complicated", Description: "Used the words love, hate, or why me in one chat.", Goal: 1, Category: CategoryRelationship},
	{ID: EmotionalGymnast, Name: "Emotional Gymnast", Description: "Justified someone’s bad behavior.", Goal: 1, Category: CategoryRelationship},
	{ID: RomComReject, Name: "Rom-Com Reject", Description: "Said “maybe they’ll change.”", Goal: 1, Category: CategoryRelationship},
	{ID: UnsentMessageHero, Name: "Unsent Message Hero", Description: "Admitted to deleting a message before sending.", Goal: 1, Category: CategoryRelationship},

	{ID: PhilosopherInPajamas, Name: "Philosopher in Pajamas", Description: "Asked, “What’s the point?”", Goal: 1, Category: CategoryExistential},
	{ID: UniverseDoesntCare, Name: "The Universe Doesn’t Care", Description: "Used the word universe, fate, or meaningless.", Goal: 1, Category: CategoryExistential},
	{ID: MidlifeCrisisEarlyEdition, Name: "Midlife Crisis (Early Edition)", Description: "Questioned your purpose.", Goal: 1, Category: CategoryExistential},
	{ID: ScreamedIntoTheVoid, Name: "Screamed Into the Void", Description: "Sent a message with only “…”", Goal: 1, Category: CategoryExistential},
	{ID: NihilistLevel10, Name: "Nihilist Level 10", Description: "Agreed with Panda.", Goal: 1, Category: CategoryExistential},

	{ID: DoomscrollMaster, Name: "Doomscroll Master", Description: "Mentioned scrolling Insta or TikTok.", Goal: 1, Category: CategoryTech},
	{ID: MessageSeenIgnored, Name: "Message Seen. Ignored.", Description: "Complained about being left on read.", Goal: 1, Category: CategoryTech},
	{ID: SocialMediaArcheologist, Name: "Social Media Archeologist", Description: "Admitted to stalking an ex.", Goal: 1, Category: CategoryTech},
	{ID: InfiniteLoopOfValidation, Name: "Infinite Loop of Validation", Description: "Asked if someone cares.", Goal: 1, Category: CategoryTech},
	{ID: ScreenTimeDontAsk, Name: "Screen Time? Don’t Ask.", Description: "Opened the app after midnight.", Goal: 1, Category: CategoryTech},

	{ID: DinnerOfChampions, Name: "Dinner of Champions", Description: "Mentioned eating cereal or junk food for dinner.", Goal: 1, Category: CategoryLifestyle},
	{ID: ProductivityIsAMyth, Name: "Productivity is a Myth", Description: "Complained about procrastinating.", Goal: 1, Category: CategoryLifestyle},
	{ID: GymTomorrow, Name: "Gym Tomorrow", Description: "Promised to work out soon. Again.", Goal: 1, Category: CategoryLifestyle},
	{ID: FinancialDisasterpiece, Name: "Financial Disasterpiece", Description: "Said “I’m broke.”", Goal: 1, Category: CategoryLifestyle},
	{ID: SleepOptional, Name: "Sleep Optional", Description: "Opened the app after 3 a.m.", Goal: 1, Category: CategoryLifestyle},

	{ID: AccidentalSelfAwareness, Name: "Accidental Self-Awareness", Description: "Realized you might be the problem.", Goal: 1, Category: CategoryReflection},
	{ID: GrowthHurts, Name: "Growth Hurts", Description: "Thanked Panda for the truth.", Goal: 1, Category: CategoryReflection},
	{ID: DetachedAndProud, Name: "Detached and Proud", Description: "Said “I don’t care anymore.”", Goal: 1, Category: CategoryReflection},
	{ID: MicrodoseOfAcceptance, Name: "Microdose of Acceptance", Description: "Admitted Panda was right.", Goal: 1, Category: CategoryReflection},
	{ID: EnlightenmentWithAHangover, Name: "Enlightenment (with a Hangover)", Description: "Logged a week without complaining.", Goal: 1, Category: CategoryReflection},

	{ID: Happiness404NotFound, Name: "404 Happiness Not Found", Description: "Tried typing “I’m happy.”", Goal: 1, Category: CategoryHiddenTrophy},
	{ID: SecretlyHopeful, Name: "Secretly Hopeful", Description: "Said “things are getting better.”", Goal: 1, Category: CategoryHiddenTrophy},
	{ID: DevelopersFavorite, Name: "Developer’s Favorite", Description: "Found a hidden joke in the settings.", Goal: 1, Category: CategoryHiddenTrophy},
	{ID: DisappointmentConnoisseur, Name: "Disappointment Connoisseur", Description: "Collected 20 trophies.", Goal: 20, Category: CategoryHiddenTrophy},
	{ID: YouWinNothing, Name: "You Win Nothing.", Description: "Collected all trophies.", Goal: len(catalogIDs), Category: CategoryHiddenTrophy},
}

// catalogIDs mirrors catalog order; it exists so the final entry's goal can be
// the catalog size without an init cycle.
var catalogIDs = []ID{
	FirstRoast, GluttonForPunishment, ConsistentComplainer, WeeklyWhiner,
	BabysFirstCynicism, EmotionalMasochist, VoiceOfDespair,
	JustAnotherTuesday, GroundhogDay, MondaySurvivor, ExistentialLoop, DejaDisappointment,
	MildlyShattered, FullyCrushed, TearStainedConfession, TherapistWontHearThis, EmotionalOverdraft,
	GhostedAgain, ItsComplicated, EmotionalGymnast, RomComReject, UnsentMessageHero,
	PhilosopherInPajamas, UniverseDoesntCare, MidlifeCrisisEarlyEdition, ScreamedIntoTheVoid, NihilistLevel10,
	DoomscrollMaster, MessageSeenIgnored, SocialMediaArcheologist, InfiniteLoopOfValidation, ScreenTimeDontAsk,
	DinnerOfChampions, ProductivityIsAMyth, GymTomorrow, FinancialDisasterpiece, SleepOptional,
	AccidentalSelfAwareness, GrowthHurts, DetachedAndProud, MicrodoseOfAcceptance, EnlightenmentWithAHangover,
	Happiness404NotFound, SecretlyHopeful, DevelopersFavorite, DisappointmentConnoisseur, YouWinNothing,
}

// TotalCount is the catalog size, which is also the YOU_WIN_NOTHING goal.
func TotalCount() int { return len(catalogIDs) }

// Catalog returns a fresh copy of the default table, progress zero and locked.
func Catalog() map[ID]*Achievement {
	m := make(map[ID]*Achievement, len(catalog))
	for i := range catalog {
		a := catalog[i]
		m[a.ID] = &a
	}
	return m
}

// Order returns the catalog display order.
func Order() []ID {
	out := make([]ID, len(catalogIDs))
	copy(out, catalogIDs)
	return out
}
