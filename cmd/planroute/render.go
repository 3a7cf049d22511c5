package main

import (
	"fmt"
	"strings"

	"github.com/mExOms/planroute/pkg/planner"
	"github.com/sirupsen/logrus"
)

// printPlans renders every execution plan in out, best first, as an
// arrow-joined route followed by its per-hop amounts.
func printPlans(out planner.SearchOutcome, requestID string) {
	fmt.Printf("=== Execution Plans (request %s) ===\n", requestID)
	if len(out.Plans) == 0 {
		fmt.Println("  NO_PLAN")
	}
	for i, plan := range out.Plans {
		fmt.Printf("  %d. %s (spend %s, received %s, cost %s, residual %s)\n",
			i+1, plan.Signature, plan.ActualSpend.String(), plan.Received.String(),
			plan.Cost.String(), plan.Residual.String())
		for _, step := range plan.Steps {
			fmt.Printf("       %d. [%s] %s -> %s : %s -> %s\n",
				step.Sequence, step.OrderID, step.From, step.To,
				step.Input.String(), step.Output.String())
		}
	}
	fmt.Println(strings.Repeat("-", 50))
}

// logGuardReport writes the guard summary at warn level when any guard
// tripped (the result may be incomplete) and at info level otherwise.
func logGuardReport(logger *logrus.Logger, requestID string, guards planner.GuardReport) {
	fields := logrus.Fields{
		"request_id":     requestID,
		"expansions":     guards.Expansions,
		"visited_states": guards.VisitedStates,
		"elapsed_millis": guards.ElapsedMillis,
	}
	if guards.Breached() {
		fields["expansions_breached"] = guards.ExpansionsBreached
		fields["visited_states_breached"] = guards.VisitedStatesBreached
		fields["duration_breached"] = guards.DurationBreached
		logger.WithFields(fields).Warn("search guard tripped; result set may be incomplete")
		return
	}
	logger.WithFields(fields).Info("search completed within guards")
}
