package main

import (
	"fmt"

	"github.com/mExOms/planroute/pkg/money"
	"github.com/mExOms/planroute/pkg/orderbook"
	"github.com/mExOms/planroute/pkg/planner"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// feeConfig is the YAML shape of one order's fee policy. Type selects
// which orderbook.FeePolicy built-in to construct; an empty or "none" type
// charges nothing.
type feeConfig struct {
	Type      string `mapstructure:"type"`
	Currency  string `mapstructure:"currency"`
	Amount    string `mapstructure:"amount"`
	Scale     int32  `mapstructure:"scale"`
	BaseRate  string `mapstructure:"base_rate"`
	QuoteRate string `mapstructure:"quote_rate"`
}

func (f feeConfig) build() (orderbook.FeePolicy, error) {
	switch f.Type {
	case "", "none":
		return orderbook.NoFee(), nil
	case "fixed":
		amount, err := decimal.NewFromString(f.Amount)
		if err != nil {
			return nil, fmt.Errorf("fee.amount %q: %w", f.Amount, err)
		}
		return orderbook.NewFixedFeePolicy(f.Currency, amount, f.Scale), nil
	case "percentage":
		baseRate, err := decimal.NewFromString(f.BaseRate)
		if err != nil {
			return nil, fmt.Errorf("fee.base_rate %q: %w", f.BaseRate, err)
		}
		quoteRate, err := decimal.NewFromString(f.QuoteRate)
		if err != nil {
			return nil, fmt.Errorf("fee.quote_rate %q: %w", f.QuoteRate, err)
		}
		return orderbook.NewPercentageFeePolicy(baseRate, quoteRate), nil
	default:
		return nil, fmt.Errorf("unknown fee type %q", f.Type)
	}
}

// orderConfig is the YAML shape of one standing order.
type orderConfig struct {
	ID          string    `mapstructure:"id"`
	Side        string    `mapstructure:"side"`
	Base        string    `mapstructure:"base"`
	Quote       string    `mapstructure:"quote"`
	MinAmount   string    `mapstructure:"min_amount"`
	MaxAmount   string    `mapstructure:"max_amount"`
	BoundsScale int32     `mapstructure:"bounds_scale"`
	Rate        string    `mapstructure:"rate"`
	RateScale   int32     `mapstructure:"rate_scale"`
	Fee         feeConfig `mapstructure:"fee"`
}

func (o orderConfig) build() (*orderbook.Order, error) {
	side := orderbook.Buy
	if o.Side == "sell" {
		side = orderbook.Sell
	}

	minAmount, err := decimal.NewFromString(o.MinAmount)
	if err != nil {
		return nil, fmt.Errorf("order %s: min_amount %q: %w", o.ID, o.MinAmount, err)
	}
	maxAmount, err := decimal.NewFromString(o.MaxAmount)
	if err != nil {
		return nil, fmt.Errorf("order %s: max_amount %q: %w", o.ID, o.MaxAmount, err)
	}
	min, err := money.New(o.Base, minAmount, o.BoundsScale)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", o.ID, err)
	}
	max, err := money.New(o.Base, maxAmount, o.BoundsScale)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", o.ID, err)
	}
	bounds, err := money.NewOrderBounds(min, max)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", o.ID, err)
	}

	rateValue, err := decimal.NewFromString(o.Rate)
	if err != nil {
		return nil, fmt.Errorf("order %s: rate %q: %w", o.ID, o.Rate, err)
	}
	rate, err := money.NewExchangeRate(o.Base, o.Quote, rateValue, o.RateScale)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", o.ID, err)
	}

	fee, err := o.Fee.build()
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", o.ID, err)
	}

	return orderbook.New(o.ID, side, orderbook.AssetPair{Base: o.Base, Quote: o.Quote}, bounds, rate, fee)
}

// runConfig is everything one planroute invocation needs, decoded from
// YAML and translated into the core packages' own value types.
type runConfig struct {
	Book   orderbook.Book
	Target string
	Search planner.PathSearchConfig
}

func loadRunConfig(path string) (runConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return runConfig{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	spendAmount, err := decimal.NewFromString(v.GetString("spend.amount"))
	if err != nil {
		return runConfig{}, fmt.Errorf("spend.amount: %w", err)
	}
	spendScale := int32(v.GetInt("spend.scale"))
	spend, err := money.New(v.GetString("spend.currency"), spendAmount, spendScale)
	if err != nil {
		return runConfig{}, fmt.Errorf("spend: %w", err)
	}

	underMax, err := decimal.NewFromString(v.GetString("tolerance.under_max"))
	if err != nil {
		return runConfig{}, fmt.Errorf("tolerance.under_max: %w", err)
	}
	overMax, err := decimal.NewFromString(v.GetString("tolerance.over_max"))
	if err != nil {
		return runConfig{}, fmt.Errorf("tolerance.over_max: %w", err)
	}
	tolerance, err := money.NewToleranceWindow(underMax, overMax)
	if err != nil {
		return runConfig{}, fmt.Errorf("tolerance: %w", err)
	}

	cfg := planner.NewPathSearchConfig(spend, tolerance)
	if v.IsSet("hops.min") {
		cfg.MinHops = v.GetInt("hops.min")
	}
	if v.IsSet("hops.max") {
		cfg.MaxHops = v.GetInt("hops.max")
	}
	if v.IsSet("result_limit") {
		cfg.ResultLimit = v.GetInt("result_limit")
	}
	if v.GetString("mode") == "reusable" {
		cfg.Mode = planner.Reusable
	}
	if v.IsSet("reuse_penalty_factor") {
		factor, err := decimal.NewFromString(v.GetString("reuse_penalty_factor"))
		if err != nil {
			return runConfig{}, fmt.Errorf("reuse_penalty_factor: %w", err)
		}
		cfg.ReusePenaltyFactor = factor
	}
	if v.IsSet("guards.max_expansions") {
		cfg.Guards.MaxExpansions = v.GetInt("guards.max_expansions")
	}
	if v.IsSet("guards.max_visited_states") {
		cfg.Guards.MaxVisitedStates = v.GetInt("guards.max_visited_states")
	}
	if v.IsSet("guards.max_duration_millis") {
		cfg.Guards.MaxDurationMillis = v.GetInt64("guards.max_duration_millis")
	}
	if v.IsSet("guards.throw_on_breach") {
		cfg.Guards.ThrowOnBreach = v.GetBool("guards.throw_on_breach")
	}

	var orderCfgs []orderConfig
	if err := v.UnmarshalKey("orders", &orderCfgs); err != nil {
		return runConfig{}, fmt.Errorf("orders: %w", err)
	}
	orders := make([]*orderbook.Order, 0, len(orderCfgs))
	for _, oc := range orderCfgs {
		order, err := oc.build()
		if err != nil {
			return runConfig{}, err
		}
		orders = append(orders, order)
	}

	return runConfig{
		Book:   orderbook.NewBook(orders),
		Target: v.GetString("target"),
		Search: cfg,
	}, nil
}
