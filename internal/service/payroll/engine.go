package payroll

import (
	"fmt"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/forher-hr/hr-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// RuleContext carries everything a salary rule formula may reference. Money
// enters the script world as float64 and is converted back to decimal at the
// line boundary.
type RuleContext struct {
	Wage              float64
	PositionAllowance float64
	JobAllowance      float64

	WorkedDays       int
	TotalHours       float64
	LeaveDays        float64
	OTNormalHours    float64
	OTHolidayHours   float64
	StandardWorkDays int

	Advance      float64
	Penalty      float64
	Rating       string
	SalesAmount  float64
	ProductsSold int
}

// ComputedLine is the engine's output for one rule that produced a visible line.
type ComputedLine struct {
	Rule     payroll.SalaryRule
	Quantity float64
	Rate     float64
	Amount   decimal.Decimal // absolute, sign carried by the rule type
}

// EvaluateStructure runs every rule of the structure in sequence order against
// the context and returns the payslip lines to materialize.
//
// Each formula sees the structure's own rules through `rules` (codes computed
// earlier hold their signed totals, later codes read 0.0), per-type running
// sums through `categories`, and a `sum_rules(codes...)` helper adding up the
// named rules. A formula yields either a bare number or a map with result /
// result_qty / result_rate / skip_line; result is the line amount, qty and
// rate are carried on the line as display fields. Deduction amounts are
// stored absolute but contribute negated to rules, categories and the net.
// Zero-amount lines are dropped unless the rule is marked always-include.
func EvaluateStructure(structure payroll.SalaryStructure, rctx RuleContext) ([]ComputedLine, error) {
	rules := make([]payroll.SalaryRule, len(structure.Rules))
	copy(rules, structure.Rules)
	sort.SliceStable(rules, func(i, j int) bool { return rules[i].Sequence < rules[j].Sequence })

	ruleAmounts := make(map[string]interface{}, len(rules))
	for _, r := range rules {
		ruleAmounts[r.Code] = 0.0
	}
	categories := map[string]interface{}{}
	for _, t := range payroll.RuleTypeValues {
		categories[t] = 0.0
	}

	env := map[string]interface{}{
		"contract": map[string]interface{}{
			"wage":               rctx.Wage,
			"position_allowance": rctx.PositionAllowance,
			"job_allowance":      rctx.JobAllowance,
		},
		"worked": map[string]interface{}{
			"worked_days":        float64(rctx.WorkedDays),
			"total_hours":        rctx.TotalHours,
			"leave_days":         rctx.LeaveDays,
			"ot_normal_hours":    rctx.OTNormalHours,
			"ot_holiday_hours":   rctx.OTHolidayHours,
			"standard_work_days": float64(rctx.StandardWorkDays),
		},
		"inputs": map[string]interface{}{
			"advance":       rctx.Advance,
			"penalty":       rctx.Penalty,
			"rating":        rctx.Rating,
			"sales_amount":  rctx.SalesAmount,
			"products_sold": rctx.ProductsSold,
		},
		"rules":      ruleAmounts,
		"categories": categories,
		"sum_rules": func(codes ...interface{}) float64 {
			return sumRuleCodes(ruleAmounts, codes)
		},
	}

	var lines []ComputedLine
	for _, rule := range rules {
		env["quantity"] = 1.0
		env["rate"] = 100.0

		program, err := expr.Compile(rule.Formula, expr.Env(env), expr.AllowUndefinedVariables())
		if err != nil {
			return nil, &payroll.RuleExecutionError{RuleCode: rule.Code, RuleName: rule.Name, Err: err}
		}
		output, err := expr.Run(program, env)
		if err != nil {
			return nil, &payroll.RuleExecutionError{RuleCode: rule.Code, RuleName: rule.Name, Err: err}
		}

		amount, quantity, rate, skip, err := interpretResult(output)
		if err != nil {
			return nil, &payroll.RuleExecutionError{RuleCode: rule.Code, RuleName: rule.Name, Err: err}
		}
		if skip {
			continue
		}

		total := amount
		signed := total
		if rule.RuleType == payroll.RuleTypeDeduction {
			if total < 0 {
				total = -total
			}
			signed = -total
		}

		ruleAmounts[rule.Code] = signed
		categories[string(rule.RuleType)] = asFloat(categories[string(rule.RuleType)]) + signed

		if total == 0 && !rule.AlwaysInclude {
			continue
		}

		lines = append(lines, ComputedLine{
			Rule:     rule,
			Quantity: quantity,
			Rate:     rate,
			Amount:   decimal.NewFromFloat(total).Round(2),
		})
	}

	return lines, nil
}

// interpretResult normalizes a formula's output into the line fields.
func interpretResult(output interface{}) (amount, quantity, rate float64, skip bool, err error) {
	quantity, rate = 1.0, 100.0

	switch v := output.(type) {
	case map[string]interface{}:
		if s, ok := v["skip_line"].(bool); ok && s {
			return 0, 0, 0, true, nil
		}
		res, ok := v["result"]
		if !ok {
			return 0, 0, 0, false, fmt.Errorf("formula map result is missing the result key")
		}
		amount, ok = toFloat(res)
		if !ok {
			return 0, 0, 0, false, fmt.Errorf("formula result is not numeric: %v", res)
		}
		if q, present := v["result_qty"]; present {
			if quantity, ok = toFloat(q); !ok {
				return 0, 0, 0, false, fmt.Errorf("formula result_qty is not numeric: %v", q)
			}
		}
		if r, present := v["result_rate"]; present {
			if rate, ok = toFloat(r); !ok {
				return 0, 0, 0, false, fmt.Errorf("formula result_rate is not numeric: %v", r)
			}
		}
		return amount, quantity, rate, false, nil
	default:
		amount, ok := toFloat(output)
		if !ok {
			return 0, 0, 0, false, fmt.Errorf("formula did not yield a number or result map: %v", output)
		}
		return amount, quantity, rate, false, nil
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	default:
		return 0, false
	}
}

func asFloat(v interface{}) float64 {
	f, _ := toFloat(v)
	return f
}

// sumRuleCodes totals the named rules, flattening nested code lists so both
// sum_rules("A", "B") and sum_rules(["A", "B"]) work. Unknown codes add 0.
func sumRuleCodes(ruleAmounts map[string]interface{}, codes []interface{}) float64 {
	total := 0.0
	for _, code := range codes {
		switch c := code.(type) {
		case string:
			total += asFloat(ruleAmounts[c])
		case []string:
			for _, s := range c {
				total += asFloat(ruleAmounts[s])
			}
		case []interface{}:
			total += sumRuleCodes(ruleAmounts, c)
		}
	}
	return total
}
