package search

import (
	"time"

	"github.com/mExOms/planroute/pkg/money"
)

// Unbounded is the dedicated sentinel a caller sets on a Guards field to
// explicitly opt that limit out of enforcement. A bare zero is not treated
// as "unbounded": Guards.Validate rejects it, since an unset limit is far
// more likely to be a forgotten field than a deliberate choice.
const Unbounded = -1

// Guards bounds a single search run so a dense or adversarial order book
// cannot run away. Each field must be either Unbounded or >= 1; Validate
// enforces this.
type Guards struct {
	MaxExpansions     int
	MaxVisitedStates  int
	MaxDurationMillis int64

	// ThrowOnBreach opts into raising a guard-limit-exceeded error the
	// moment any limit trips, instead of the default of stopping the
	// search early and reporting the breach silently through GuardReport.
	ThrowOnBreach bool
}

// NoGuards returns a Guards with every limit explicitly set to Unbounded:
// the dedicated "none" configuration Guards.Validate requires before it
// will accept an unlimited search.
func NoGuards() Guards {
	return Guards{MaxExpansions: Unbounded, MaxVisitedStates: Unbounded, MaxDurationMillis: Unbounded}
}

// Validate rejects any field left at a bare zero (or any other negative
// value besides the Unbounded sentinel).
func (g Guards) Validate() error {
	const op = "Guards.Validate"
	if g.MaxExpansions != Unbounded && g.MaxExpansions < 1 {
		return money.WrapInvalidInput(op, "maxExpansions must be >= 1 or Unbounded, got %d", g.MaxExpansions)
	}
	if g.MaxVisitedStates != Unbounded && g.MaxVisitedStates < 1 {
		return money.WrapInvalidInput(op, "maxVisitedStates must be >= 1 or Unbounded, got %d", g.MaxVisitedStates)
	}
	if g.MaxDurationMillis != int64(Unbounded) && g.MaxDurationMillis < 1 {
		return money.WrapInvalidInput(op, "maxDurationMillis must be >= 1 or Unbounded, got %d", g.MaxDurationMillis)
	}
	return nil
}

func (g Guards) expansionsEnabled() bool    { return g.MaxExpansions > 0 }
func (g Guards) visitedStatesEnabled() bool { return g.MaxVisitedStates > 0 }
func (g Guards) durationEnabled() bool      { return g.MaxDurationMillis > 0 }

// GuardReport summarizes what a search run actually consumed and which, if
// any, limit it hit. Breaching a guard stops the search early with whatever
// results had already been admitted rather than failing the whole query.
type GuardReport struct {
	Expansions            int
	VisitedStates         int
	ElapsedMillis         int64
	ExpansionsBreached    bool
	VisitedStatesBreached bool
	DurationBreached      bool
}

// Breached reports whether any individual limit tripped.
func (r GuardReport) Breached() bool {
	return r.ExpansionsBreached || r.VisitedStatesBreached || r.DurationBreached
}

// BreachError builds the guard-limit-exceeded error a Guards.ThrowOnBreach
// run raises the moment a limit trips.
func (r GuardReport) BreachError(op string) error {
	return money.GuardLimitExceeded(op,
		"guard limit exceeded: expansions=%d (breached=%t) visitedStates=%d (breached=%t) elapsedMillis=%d (breached=%t)",
		r.Expansions, r.ExpansionsBreached, r.VisitedStates, r.VisitedStatesBreached, r.ElapsedMillis, r.DurationBreached)
}

// guardTracker accumulates counts during a run and evaluates them against
// Guards; elapsed time is the one place the search engine reads a wall
// clock, since wall-clock budgets are inherently approximate.
type guardTracker struct {
	limits        Guards
	start         time.Time
	expansions    int
	visitedStates int
}

func newGuardTracker(limits Guards) *guardTracker {
	return &guardTracker{limits: limits, start: time.Now()}
}

func (t *guardTracker) recordExpansion() { t.expansions++ }

func (t *guardTracker) setVisitedStates(n int) { t.visitedStates = n }

// breached reports whether any configured limit has now been reached or
// exceeded. Expansions counts states popped and processed, including the
// seed state's own pop, so a limit of N trips as soon as the Nth expansion
// is recorded rather than after an (N+1)th one sneaks through.
func (t *guardTracker) breached() bool {
	if t.limits.expansionsEnabled() && t.expansions >= t.limits.MaxExpansions {
		return true
	}
	if t.limits.visitedStatesEnabled() && t.visitedStates >= t.limits.MaxVisitedStates {
		return true
	}
	if t.limits.durationEnabled() && time.Since(t.start).Milliseconds() >= t.limits.MaxDurationMillis {
		return true
	}
	return false
}

func (t *guardTracker) report() GuardReport {
	elapsed := time.Since(t.start).Milliseconds()
	r := GuardReport{
		Expansions:            t.expansions,
		VisitedStates:         t.visitedStates,
		ElapsedMillis:         elapsed,
		ExpansionsBreached:    t.limits.expansionsEnabled() && t.expansions >= t.limits.MaxExpansions,
		VisitedStatesBreached: t.limits.visitedStatesEnabled() && t.visitedStates >= t.limits.MaxVisitedStates,
		DurationBreached:      t.limits.durationEnabled() && elapsed >= t.limits.MaxDurationMillis,
	}
	return r
}
