package planner

import (
	"strings"

	"github.com/mExOms/planroute/internal/graph"
	"github.com/mExOms/planroute/internal/material"
	"github.com/mExOms/planroute/internal/rank"
	"github.com/mExOms/planroute/internal/search"
	"github.com/mExOms/planroute/internal/topk"
	"github.com/mExOms/planroute/pkg/money"
	"github.com/mExOms/planroute/pkg/orderbook"
)

// FindBestPlans searches book for up to cfg.ResultLimit execution plans
// converting cfg.SpendAmount into targetCurrency, ranked best first. A
// candidate route only survives if it can actually be materialized leg by
// leg within cfg.Tolerance; routes whose sell-leg sizing fails to converge,
// or whose realized spend falls outside the tolerance window, are silently
// excluded rather than surfaced as an error.
func FindBestPlans(book orderbook.Book, targetCurrency string, cfg PathSearchConfig) (SearchOutcome, error) {
	const op = "planner.FindBestPlans"
	if err := cfg.Validate(); err != nil {
		return SearchOutcome{}, err
	}
	targetCurrency = strings.TrimSpace(targetCurrency)
	if err := money.ValidateCurrency(op, targetCurrency); err != nil {
		return SearchOutcome{}, err
	}

	filtered := applyFilters(book, cfg.Filters)

	searchCfg := search.Config{
		SpendAmount: cfg.SpendAmount,
		Tolerance:   cfg.Tolerance,
		MinHops:     cfg.MinHops,
		MaxHops:     cfg.MaxHops,
		ResultLimit: cfg.ResultLimit,
		Guards:      cfg.Guards,
		CostFunc:    cfg.CostFunc,
		Strategy:    cfg.Strategy,
		Validate:    materializeValidator(cfg.Tolerance),
	}

	out, err := topk.Run(filtered, targetCurrency, topk.RunConfig{
		Mode:               cfg.Mode.toInternal(),
		K:                  cfg.ResultLimit,
		ReusePenaltyFactor: cfg.ReusePenaltyFactor,
		Search:             searchCfg,
	})
	if err != nil {
		return SearchOutcome{}, err
	}

	plans := make([]ExecutionPlan, 0, len(out.Candidates))
	for _, candidate := range out.Candidates {
		plan, ok, err := buildExecutionPlan(candidate, cfg)
		if err != nil {
			return SearchOutcome{}, err
		}
		if !ok {
			continue
		}
		plans = append(plans, plan)
	}

	return SearchOutcome{Plans: plans, Guards: toPublicGuardReport(out.Guards)}, nil
}

// materializeValidator wires internal/material into the search engine's
// terminal-candidate gate: a candidate is only admitted if it can actually
// be materialized and its realized first-leg spend lands inside tolerance.
func materializeValidator(tolerance money.ToleranceWindow) search.Validator {
	return func(edges []*graph.Edge, spend money.Money) (bool, error) {
		result, ok, err := material.Materialize(edges, spend)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
		_, within, err := tolerance.EvaluateResidual(spend, result.ActualSpend)
		if err != nil {
			return false, err
		}
		return within, nil
	}
}

// buildExecutionPlan re-runs materialization on an admitted candidate (the
// same computation Validate already performed, now kept for its concrete
// result rather than just its pass/fail verdict) and assembles the public
// ExecutionPlan.
func buildExecutionPlan(candidate search.Candidate, cfg PathSearchConfig) (ExecutionPlan, bool, error) {
	result, ok, err := material.Materialize(candidate.Edges, cfg.SpendAmount)
	if err != nil {
		return ExecutionPlan{}, false, err
	}
	if !ok {
		return ExecutionPlan{}, false, nil
	}
	residual, within, err := cfg.Tolerance.EvaluateResidual(result.Requested, result.ActualSpend)
	if err != nil {
		return ExecutionPlan{}, false, err
	}
	if !within {
		return ExecutionPlan{}, false, nil
	}

	steps := make([]ExecutionStep, 0, len(result.Legs))
	routeCurrencies := make([]string, 0, len(result.Legs)+1)
	feeBreakdown := make(map[string]money.Money)
	for i, leg := range result.Legs {
		steps = append(steps, ExecutionStep{
			Sequence: leg.Sequence,
			OrderID:  leg.Order.ID,
			From:     leg.From,
			To:       leg.To,
			Side:     leg.Side,
			Input:    leg.Input,
			Output:   leg.Output,
			Fees:     leg.Fees,
		})
		if i == 0 {
			routeCurrencies = append(routeCurrencies, leg.From)
		}
		routeCurrencies = append(routeCurrencies, leg.To)
		for currency, fee := range leg.Fees {
			if existing, ok := feeBreakdown[currency]; ok {
				sum, err := existing.Add(fee)
				if err != nil {
					return ExecutionPlan{}, false, err
				}
				feeBreakdown[currency] = sum
			} else {
				feeBreakdown[currency] = fee
			}
		}
	}

	return ExecutionPlan{
		Steps:          steps,
		SourceCurrency: result.Requested.Currency(),
		TargetCurrency: result.Received.Currency(),
		Requested:      result.Requested,
		ActualSpend:    result.ActualSpend,
		Received:       result.Received,
		Residual:       residual,
		FeeBreakdown:   feeBreakdown,
		Signature:      rank.NewSignature(routeCurrencies),
		Cost:           candidate.BaseCost,
		Hops:           candidate.Key.Hops,
	}, true, nil
}

func toPublicGuardReport(r search.GuardReport) GuardReport {
	return GuardReport{
		Expansions:            r.Expansions,
		VisitedStates:         r.VisitedStates,
		ElapsedMillis:         r.ElapsedMillis,
		ExpansionsBreached:    r.ExpansionsBreached,
		VisitedStatesBreached: r.VisitedStatesBreached,
		DurationBreached:      r.DurationBreached,
	}
}
