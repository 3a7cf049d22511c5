package topk

import "github.com/mExOms/planroute/internal/search"

// MergeGuardReports folds a sequence of per-iteration guard reports (one
// per search.Run call a Top-K driver made) into a single summary: counters
// sum across iterations, breach flags OR together, since breaching the
// guard on any single iteration means the overall Top-K result is
// incomplete.
func MergeGuardReports(reports []search.GuardReport) search.GuardReport {
	var out search.GuardReport
	for _, r := range reports {
		out.Expansions += r.Expansions
		out.VisitedStates += r.VisitedStates
		out.ElapsedMillis += r.ElapsedMillis
		out.ExpansionsBreached = out.ExpansionsBreached || r.ExpansionsBreached
		out.VisitedStatesBreached = out.VisitedStatesBreached || r.VisitedStatesBreached
		out.DurationBreached = out.DurationBreached || r.DurationBreached
	}
	return out
}
