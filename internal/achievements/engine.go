package achievements

import "sync"

// Mode selects how Apply combines the incoming value with current progress.
type Mode int

const (
	// Relative adds the value to current progress.
	Relative Mode = iota
	// Absolute raises progress to at least the value (max semantics), so a
	// repeated observation of the same metric never double-counts.
	Absolute
)

// metaIDs unlock from the count of unlocked achievements, never from Apply.
var metaIDs = []ID{DisappointmentConnoisseur, YouWinNothing}

// Engine owns the achievement table. All mutation goes through Apply, which
// serializes on an internal mutex so concurrent unlock attempts cannot apply a
// stale snapshot.
type Engine struct {
	mu            sync.Mutex
	table         map[ID]*Achievement
	order         []ID
	finalUnlocked bool
	onUnlock      func(Achievement)
}

// NewEngine builds an engine over a fresh catalog. onUnlock, if non-nil, is
// invoked once per unlock, after the mutation, in unlock order; unlocks caused
// by one Apply call (including meta unlocks) arrive as one ordered batch.
func NewEngine(onUnlock func(Achievement)) *Engine {
	return &Engine{table: Catalog(), order: Order(), onUnlock: onUnlock}
}

// Apply advances the achievement identified by id. Unknown ids, meta ids and
// already-unlocked achievements are silent no-ops; that is the idempotency
// contract, not error swallowing.
func (e *Engine) Apply(id ID, value int, mode Mode) {
	e.mu.Lock()
	var unlocked []Achievement

	a, ok := e.table[id]
	if !ok || a.Unlocked || isMeta(id) {
		e.mu.Unlock()
		return
	}

	progress := a.Progress + value
	if mode == Absolute {
		progress = a.Progress
		if value > progress {
			progress = value
		}
	}

	if progress >= a.Goal {
		a.Progress = a.Goal
		a.Unlocked = true
		unlocked = append(unlocked, *a)
		unlocked = append(unlocked, e.recomputeMetasLocked()...)
	} else {
		a.Progress = progress
	}
	e.mu.Unlock()

	if e.onUnlock != nil {
		for _, u := range unlocked {
			e.onUnlock(u)
		}
	}
}

// recomputeMetasLocked re-evaluates the derived achievements against the
// current unlocked count. Their progress is always the recomputed count,
// clamped to goal; they are never settable state.
func (e *Engine) recomputeMetasLocked() []Achievement {
	var out []Achievement
	for _, id := range metaIDs {
		meta := e.table[id]
		count := e.unlockedCountLocked()
		if meta.Unlocked {
			continue
		}
		threshold := meta.Goal
		if id == YouWinNothing {
			// its own unlock is what completes the full set
			threshold = meta.Goal - 1
		}
		if count >= threshold {
			meta.Progress = meta.Goal
			meta.Unlocked = true
			if id == YouWinNothing {
				e.finalUnlocked = true
			}
			out = append(out, *meta)
		} else if count > meta.Progress {
			meta.Progress = count
		}
	}
	return out
}

func (e *Engine) unlockedCountLocked() int {
	n := 0
	for _, a := range e.table {
		if a.Unlocked {
			n++
		}
	}
	return n
}

func isMeta(id ID) bool {
	for _, m := range metaIDs {
		if m == id {
			return true
		}
	}
	return false
}

// UnlockedCount reports how many achievements are unlocked.
func (e *Engine) UnlockedCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.unlockedCountLocked()
}

// FinalUnlocked reports whether YOU_WIN_NOTHING has been unlocked.
func (e *Engine) FinalUnlocked() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.finalUnlocked
}

// Get returns a copy of one achievement.
func (e *Engine) Get(id ID) (Achievement, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	a, ok := e.table[id]
	if !ok {
		return Achievement{}, false
	}
	return *a, true
}

// Snapshot returns the table in catalog order, by value.
func (e *Engine) Snapshot() []Achievement {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Achievement, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, *e.table[id])
	}
	return out
}

// Export returns the table keyed by id for persistence.
func (e *Engine) Export() map[ID]Achievement {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[ID]Achievement, len(e.table))
	for id, a := range e.table {
		out[id] = *a
	}
	return out
}

// LoadStored overlays a persisted snapshot onto the catalog: only progress and
// unlocked are applied, and only for ids the catalog still knows. Stored ids
// absent from the catalog are dropped; catalog ids absent from storage keep
// their initial values.
func (e *Engine) LoadStored(stored map[ID]Achievement) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for id, s := range stored {
		a, ok := e.table[id]
		if !ok {
			continue
		}
		a.Progress = s.Progress
		a.Unlocked = s.Unlocked
	}
	if e.table[YouWinNothing].Unlocked {
		e.finalUnlocked = true
	}
}
