// Package planner is the public facade over internal/search, internal/topk
// and internal/material: it takes an order book and a spend request and
// returns ranked, fully materialized execution plans.
package planner

import (
	"github.com/mExOms/planroute/internal/rank"
	"github.com/mExOms/planroute/internal/search"
	"github.com/mExOms/planroute/internal/topk"
	"github.com/mExOms/planroute/pkg/money"
	"github.com/shopspring/decimal"
)

// TopKMode selects how repeated Top-K results treat liquidity a better
// result already used. It mirrors internal/topk.Mode so callers outside
// this module never need to import an internal package directly.
type TopKMode int

const (
	Disjoint TopKMode = iota
	Reusable
)

func (m TopKMode) toInternal() topk.Mode {
	if m == Reusable {
		return topk.Reusable
	}
	return topk.Disjoint
}

// PathSearchConfig drives one FindBestPlans call. Zero-valued fields are not
// replaced by defaults: Validate rejects a zero ResultLimit, MinHops or
// Guards, so start from NewPathSearchConfig. cmd/planroute/config.go does
// so and overrides only the keys its YAML sets.
type PathSearchConfig struct {
	SpendAmount money.Money
	Tolerance   money.ToleranceWindow

	MinHops int
	MaxHops int

	ResultLimit int
	Mode        TopKMode
	// ReusePenaltyFactor is only consulted in Reusable mode: a reused
	// order's ranking cost is multiplied by this factor raised to the
	// number of prior accepted plans that already used it. Must exceed 1.
	ReusePenaltyFactor decimal.Decimal

	Guards search.Guards

	// Filters run against the supplied OrderBook before graph
	// construction, in the order given.
	Filters []OrderFilter

	// CostFunc and Strategy override the default (cost, hops, signature)
	// ranking; nil takes internal/rank's defaults.
	CostFunc rank.CostFunc
	Strategy rank.OrderingStrategy
}

// NewPathSearchConfig returns a PathSearchConfig with the library's
// defaults: disjoint Top-K, a single result, hops unrestricted up to 4,
// and no guards.
func NewPathSearchConfig(spend money.Money, tolerance money.ToleranceWindow) PathSearchConfig {
	return PathSearchConfig{
		SpendAmount:        spend,
		Tolerance:          tolerance,
		MinHops:            1,
		MaxHops:            4,
		ResultLimit:        1,
		Mode:               Disjoint,
		ReusePenaltyFactor: decimal.RequireFromString("1.5"),
		Guards:             search.NoGuards(),
	}
}

// Validate rejects a config FindBestPlans could only otherwise turn into a
// silently wrong or silently empty result: a non-positive ResultLimit, a
// MinHops below 1, a MaxHops below MinHops, and any Guards field left at a
// bare zero (see search.Guards.Validate).
func (c PathSearchConfig) Validate() error {
	const op = "PathSearchConfig.Validate"
	if c.ResultLimit < 1 {
		return money.WrapInvalidInput(op, "resultLimit must be >= 1, got %d", c.ResultLimit)
	}
	if c.MinHops < 1 {
		return money.WrapInvalidInput(op, "minHops must be >= 1, got %d", c.MinHops)
	}
	if c.MaxHops < c.MinHops {
		return money.WrapInvalidInput(op, "maxHops (%d) must be >= minHops (%d)", c.MaxHops, c.MinHops)
	}
	if err := c.Guards.Validate(); err != nil {
		return err
	}
	return nil
}
