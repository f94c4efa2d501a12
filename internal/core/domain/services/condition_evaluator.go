package services

import (
	"fmt"

	"pricing/internal/core/domain/model/kernel"
	"pricing/internal/core/domain/model/rulecontext"

	"github.com/google/cel-go/cel"
	"github.com/shopspring/decimal"
)

// ConditionFacts are the values a rule condition may refer to. Money and
// weight are exposed as integers (cents and grams) so that conditions never
// compare binary floats.
type ConditionFacts struct {
	WeightGrams        int64
	OrderValueCents    int64
	Service            string
	Zone               string
	Tier               string
	MonthlyOrders      int64
	MonthlySpendCents  int64
	LifetimeValueCents int64
	FirstOrder         bool
	HasCustomer        bool
	Season             string
	ItemCount          int64
}

// FactsFromContext collects the condition facts of rc for an order value.
func FactsFromContext(rc rulecontext.Context, orderValue kernel.Money) ConditionFacts {
	facts := ConditionFacts{
		WeightGrams:     rc.Weight().Grams(),
		OrderValueCents: cents(orderValue.Amount()),
		Service:         string(rc.ServiceType()),
		Zone:            rc.ZoneCode(),
		Season:          string(rc.Season()),
		ItemCount:       int64(rc.ItemCount()),
	}
	if customer, ok := rc.Customer(); ok {
		facts.HasCustomer = true
		facts.Tier = string(customer.Tier)
		facts.MonthlyOrders = int64(customer.MonthlyOrderCount)
		facts.MonthlySpendCents = cents(customer.MonthlySpend)
		facts.LifetimeValueCents = cents(customer.LifetimeValue)
		facts.FirstOrder = customer.IsFirstOrder
	}
	return facts
}

func (f ConditionFacts) activation() map[string]any {
	return map[string]any{
		"weight_grams":         f.WeightGrams,
		"order_value_cents":    f.OrderValueCents,
		"service":              f.Service,
		"zone":                 f.Zone,
		"tier":                 f.Tier,
		"monthly_orders":       f.MonthlyOrders,
		"monthly_spend_cents":  f.MonthlySpendCents,
		"lifetime_value_cents": f.LifetimeValueCents,
		"first_order":          f.FirstOrder,
		"has_customer":         f.HasCustomer,
		"season":               f.Season,
		"item_count":           f.ItemCount,
	}
}

// ConditionEvaluator compiles and runs CEL rule conditions such as
//
//	zone == "local" && weight_grams <= 5000 && tier in ["gold", "platinum"]
//
// The environment is immutable once built and safe for concurrent use.
// Programs are compiled per call, so the evaluator holds no cache.
type ConditionEvaluator struct {
	env *cel.Env
}

// NewConditionEvaluator builds the CEL environment with the fact variables.
func NewConditionEvaluator() (*ConditionEvaluator, error) {
	env, err := cel.NewEnv(
		cel.Variable("weight_grams", cel.IntType),
		cel.Variable("order_value_cents", cel.IntType),
		cel.Variable("service", cel.StringType),
		cel.Variable("zone", cel.StringType),
		cel.Variable("tier", cel.StringType),
		cel.Variable("monthly_orders", cel.IntType),
		cel.Variable("monthly_spend_cents", cel.IntType),
		cel.Variable("lifetime_value_cents", cel.IntType),
		cel.Variable("first_order", cel.BoolType),
		cel.Variable("has_customer", cel.BoolType),
		cel.Variable("season", cel.StringType),
		cel.Variable("item_count", cel.IntType),
	)
	if err != nil {
		return nil, fmt.Errorf("build condition environment: %w", err)
	}
	return &ConditionEvaluator{env: env}, nil
}

// Compile checks that expr parses, type-checks and yields a boolean.
func (e *ConditionEvaluator) Compile(expr string) (cel.Program, error) {
	ast, iss := e.env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, iss.Err()
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("condition must evaluate to bool, got %s", ast.OutputType())
	}
	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, err
	}
	return prg, nil
}

// Evaluate runs expr against facts. An empty expression is true.
func (e *ConditionEvaluator) Evaluate(expr string, facts ConditionFacts) (bool, error) {
	if expr == "" {
		return true, nil
	}
	prg, err := e.Compile(expr)
	if err != nil {
		return false, err
	}
	out, _, err := prg.Eval(facts.activation())
	if err != nil {
		return false, err
	}
	matched, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("condition produced %T, not bool", out.Value())
	}
	return matched, nil
}

var centsPerUnit = decimal.NewFromInt(100)

func cents(amount decimal.Decimal) int64 {
	return amount.Mul(centsPerUnit).Round(0).IntPart()
}
