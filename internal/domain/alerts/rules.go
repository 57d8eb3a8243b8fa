package alerts

import (
	"context"
	"fmt"

	"github.com/google/cel-go/cel"

	"gescom/internal/core/apperror"
	"gescom/internal/domain/catalogs/product"
)

// Rule is a user-configurable product alert. The condition is a CEL
// expression over the product's current state, e.g.
//
//	stock > 0.0 && stock <= minimum * 2.0
//	margin_percent < 15.0
//	cost > price
//
// A rule fires for every active product whose state satisfies the
// condition.
type Rule struct {
	Name      string   `json:"name"`
	Severity  Severity `json:"severity"`
	Urgent    bool     `json:"urgent"`
	Condition string   `json:"condition"`

	program cel.Program
}

// RuleSet holds compiled custom rules sharing one CEL environment.
type RuleSet struct {
	env   *cel.Env
	rules []*Rule
}

// NewRuleSet creates an empty rule set with the product evaluation
// environment.
func NewRuleSet() (*RuleSet, error) {
	env, err := cel.NewEnv(
		cel.Variable("stock", cel.DoubleType),
		cel.Variable("minimum", cel.DoubleType),
		cel.Variable("initial_stock", cel.DoubleType),
		cel.Variable("cost", cel.DoubleType),
		cel.Variable("price", cel.DoubleType),
		cel.Variable("margin_percent", cel.DoubleType),
		cel.Variable("category", cel.StringType),
		cel.Variable("active", cel.BoolType),
	)
	if err != nil {
		return nil, fmt.Errorf("create cel environment: %w", err)
	}
	return &RuleSet{env: env}, nil
}

// Add compiles and registers a rule. Compilation errors surface as
// validation errors so misconfigured rules are rejected up front.
func (rs *RuleSet) Add(rule Rule) error {
	if rule.Name == "" {
		return apperror.NewValidation("rule name is required")
	}
	if rule.Severity == "" {
		rule.Severity = SeverityAttention
	}

	ast, iss := rs.env.Compile(rule.Condition)
	if iss.Err() != nil {
		return apperror.NewValidation("invalid rule condition").
			WithDetail("rule", rule.Name).
			WithDetail("condition", rule.Condition).
			WithCause(iss.Err())
	}
	if ast.OutputType() != cel.BoolType {
		return apperror.NewValidation("rule condition must evaluate to a boolean").
			WithDetail("rule", rule.Name).
			WithDetail("condition", rule.Condition)
	}

	prg, err := rs.env.Program(ast)
	if err != nil {
		return fmt.Errorf("build rule program: %w", err)
	}

	rule.program = prg
	rs.rules = append(rs.rules, &rule)
	return nil
}

// Len returns the number of registered rules.
func (rs *RuleSet) Len() int {
	return len(rs.rules)
}

// Evaluate runs every rule against a product and returns the fired
// alerts.
func (rs *RuleSet) Evaluate(ctx context.Context, p *product.Product, now timeSource) ([]Alert, error) {
	if len(rs.rules) == 0 {
		return nil, nil
	}

	marginPercent, _ := p.MarginPercent().Float64()
	vars := map[string]any{
		"stock":          p.StockQuantity.Float64(),
		"minimum":        p.StockMinimum.Float64(),
		"initial_stock":  p.InitialStock.Float64(),
		"cost":           p.PurchaseCost.InexactFloat64(),
		"price":          p.SalePrice.InexactFloat64(),
		"margin_percent": marginPercent,
		"category":       p.Category,
		"active":         p.Active,
	}

	var fired []Alert
	for _, rule := range rs.rules {
		out, _, err := rule.program.ContextEval(ctx, vars)
		if err != nil {
			return nil, fmt.Errorf("evaluate rule %q: %w", rule.Name, err)
		}

		matched, ok := out.Value().(bool)
		if !ok || !matched {
			continue
		}

		productID := p.ID
		fired = append(fired, Alert{
			Type:      TypeCustom,
			Severity:  rule.Severity,
			Urgent:    rule.Urgent,
			ProductID: &productID,
			Title:     rule.Name,
			Message:   fmt.Sprintf("%s: %s", p.Name, rule.Name),
			CreatedAt: now(),
		})
	}

	return fired, nil
}
