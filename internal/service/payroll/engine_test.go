package payroll

import (
	"errors"
	"testing"

	"github.com/forher-hr/hr-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rule(code string, seq int, ruleType payroll.RuleType, formula string) payroll.SalaryRule {
	return payroll.SalaryRule{
		ID:       "rule-" + code,
		Name:     code,
		Code:     code,
		Sequence: seq,
		RuleType: ruleType,
		Formula:  formula,
	}
}

func structureWith(rules ...payroll.SalaryRule) payroll.SalaryStructure {
	return payroll.SalaryStructure{ID: "struct-1", Name: "Standard", Active: true, Rules: rules}
}

func baseContext() RuleContext {
	return RuleContext{
		Wage:             5200000,
		WorkedDays:       24,
		StandardWorkDays: 27,
		TotalHours:       192,
	}
}

func amountOf(t *testing.T, lines []ComputedLine, code string) decimal.Decimal {
	t.Helper()
	for _, l := range lines {
		if l.Rule.Code == code {
			return l.Amount
		}
	}
	t.Fatalf("no line with code %s", code)
	return decimal.Zero
}

func TestEvaluateStructure_BareNumberResult(t *testing.T) {
	t.Parallel()

	s := structureWith(rule("BASIC", 1, payroll.RuleTypeBasic, "contract.wage"))

	lines, err := EvaluateStructure(s, baseContext())
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.True(t, amountOf(t, lines, "BASIC").Equal(decimal.NewFromInt(5200000)))
	assert.Equal(t, 1.0, lines[0].Quantity)
	assert.Equal(t, 100.0, lines[0].Rate)
}

func TestEvaluateStructure_ResultMapWithRate(t *testing.T) {
	t.Parallel()

	// Prorate the wage by attendance; the rate is shown on the line but the
	// amount is the result itself.
	s := structureWith(rule("BASIC", 1, payroll.RuleTypeBasic,
		`{"result": contract.wage * worked.worked_days / worked.standard_work_days, "result_rate": worked.worked_days / worked.standard_work_days * 100}`))

	lines, err := EvaluateStructure(s, baseContext())
	require.NoError(t, err)
	require.Len(t, lines, 1)

	want := decimal.NewFromFloat(5200000.0 * 24.0 / 27.0).Round(2)
	assert.True(t, amountOf(t, lines, "BASIC").Equal(want), "got %s want %s", lines[0].Amount, want)
	assert.InDelta(t, 24.0/27.0*100, lines[0].Rate, 1e-9)
}

func TestEvaluateStructure_QtyAndRateDoNotScaleAmount(t *testing.T) {
	t.Parallel()

	s := structureWith(
		rule("OT", 1, payroll.RuleTypeAllowance,
			`{"result": 90000, "result_qty": 3, "result_rate": 50}`),
		rule("CHK", 2, payroll.RuleTypeAllowance, "rules.OT"),
	)

	lines, err := EvaluateStructure(s, baseContext())
	require.NoError(t, err)
	require.Len(t, lines, 2)

	assert.True(t, amountOf(t, lines, "OT").Equal(decimal.NewFromInt(90000)))
	assert.Equal(t, 3.0, lines[0].Quantity)
	assert.Equal(t, 50.0, lines[0].Rate)
	assert.True(t, amountOf(t, lines, "CHK").Equal(decimal.NewFromInt(90000)))
}

func TestEvaluateStructure_SkipLine(t *testing.T) {
	t.Parallel()

	s := structureWith(
		rule("BASIC", 1, payroll.RuleTypeBasic, "contract.wage"),
		rule("OTH", 2, payroll.RuleTypeAllowance,
			`worked.ot_holiday_hours == 0 ? {"skip_line": true} : {"result": worked.ot_holiday_hours * 50000}`),
	)

	lines, err := EvaluateStructure(s, baseContext())
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "BASIC", lines[0].Rule.Code)
}

func TestEvaluateStructure_RuleReferencesEarlierRule(t *testing.T) {
	t.Parallel()

	s := structureWith(
		rule("BASIC", 1, payroll.RuleTypeBasic, "contract.wage"),
		rule("BONUS", 2, payroll.RuleTypeAllowance, "rules.BASIC * 0.1"),
	)

	lines, err := EvaluateStructure(s, baseContext())
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.True(t, amountOf(t, lines, "BONUS").Equal(decimal.NewFromInt(520000)))
}

func TestEvaluateStructure_ForwardReferenceReadsZero(t *testing.T) {
	t.Parallel()

	s := structureWith(
		rule("EARLY", 1, payroll.RuleTypeAllowance, "100000 + rules.LATE"),
		rule("LATE", 2, payroll.RuleTypeAllowance, "50000"),
	)

	lines, err := EvaluateStructure(s, baseContext())
	require.NoError(t, err)
	assert.True(t, amountOf(t, lines, "EARLY").Equal(decimal.NewFromInt(100000)))
}

func TestEvaluateStructure_DeductionStoredAbsoluteContributesNegative(t *testing.T) {
	t.Parallel()

	ctx := baseContext()
	ctx.Advance = 250000

	s := structureWith(
		rule("BASIC", 1, payroll.RuleTypeBasic, "contract.wage"),
		rule("ADV", 2, payroll.RuleTypeDeduction, "inputs.advance"),
		rule("NET", 3, payroll.RuleTypeOther, "categories.basic + categories.allowance + categories.deduction"),
	)

	lines, err := EvaluateStructure(s, ctx)
	require.NoError(t, err)

	assert.True(t, amountOf(t, lines, "ADV").Equal(decimal.NewFromInt(250000)))
	assert.True(t, amountOf(t, lines, "NET").Equal(decimal.NewFromInt(4950000)))
}

func TestEvaluateStructure_NegativeDeductionFormulaNormalized(t *testing.T) {
	t.Parallel()

	ctx := baseContext()
	ctx.Penalty = 100000

	// Formula authors sometimes negate deductions themselves.
	s := structureWith(rule("PEN", 1, payroll.RuleTypeDeduction, "-inputs.penalty"))

	lines, err := EvaluateStructure(s, ctx)
	require.NoError(t, err)
	assert.True(t, amountOf(t, lines, "PEN").Equal(decimal.NewFromInt(100000)))
}

func TestEvaluateStructure_ZeroLineSuppressed(t *testing.T) {
	t.Parallel()

	s := structureWith(
		rule("BASIC", 1, payroll.RuleTypeBasic, "contract.wage"),
		rule("OT", 2, payroll.RuleTypeAllowance, "worked.ot_normal_hours * 30000"),
	)

	lines, err := EvaluateStructure(s, baseContext())
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "BASIC", lines[0].Rule.Code)
}

func TestEvaluateStructure_ZeroLineKeptWhenAlwaysInclude(t *testing.T) {
	t.Parallel()

	ot := rule("OT", 2, payroll.RuleTypeAllowance, "worked.ot_normal_hours * 30000")
	ot.AlwaysInclude = true
	s := structureWith(rule("BASIC", 1, payroll.RuleTypeBasic, "contract.wage"), ot)

	lines, err := EvaluateStructure(s, baseContext())
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.True(t, amountOf(t, lines, "OT").IsZero())
}

func TestEvaluateStructure_SuppressedRuleStillReferencable(t *testing.T) {
	t.Parallel()

	s := structureWith(
		rule("OT", 1, payroll.RuleTypeAllowance, "worked.ot_normal_hours * 30000"),
		rule("CHK", 2, payroll.RuleTypeAllowance, "1000 + rules.OT"),
	)

	lines, err := EvaluateStructure(s, baseContext())
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.True(t, amountOf(t, lines, "CHK").Equal(decimal.NewFromInt(1000)))
}

func TestEvaluateStructure_SumRules(t *testing.T) {
	t.Parallel()

	s := structureWith(
		rule("BASIC", 1, payroll.RuleTypeBasic, "contract.wage"),
		rule("ALW", 2, payroll.RuleTypeAllowance, "800000"),
		rule("BONUS", 3, payroll.RuleTypeAllowance, `sum_rules("BASIC", "ALW") * 0.1`),
	)

	lines, err := EvaluateStructure(s, baseContext())
	require.NoError(t, err)
	assert.True(t, amountOf(t, lines, "BONUS").Equal(decimal.NewFromInt(600000)))
}

func TestEvaluateStructure_SumRulesAcceptsList(t *testing.T) {
	t.Parallel()

	ctx := baseContext()
	ctx.Advance = 200000

	s := structureWith(
		rule("BASIC", 1, payroll.RuleTypeBasic, "contract.wage"),
		rule("ADV", 2, payroll.RuleTypeDeduction, "inputs.advance"),
		rule("NET", 3, payroll.RuleTypeOther, `sum_rules(["BASIC", "ADV", "NOPE"])`),
	)

	lines, err := EvaluateStructure(s, ctx)
	require.NoError(t, err)
	// Deductions fold in negated, unknown codes add nothing.
	assert.True(t, amountOf(t, lines, "NET").Equal(decimal.NewFromInt(5000000)))
}

func TestEvaluateStructure_SequenceOrderNotInsertionOrder(t *testing.T) {
	t.Parallel()

	// BONUS is listed first but sequenced after BASIC, so it sees its amount.
	s := structureWith(
		rule("BONUS", 20, payroll.RuleTypeAllowance, "rules.BASIC * 0.5"),
		rule("BASIC", 10, payroll.RuleTypeBasic, "contract.wage"),
	)

	lines, err := EvaluateStructure(s, baseContext())
	require.NoError(t, err)
	assert.True(t, amountOf(t, lines, "BONUS").Equal(decimal.NewFromInt(2600000)))
}

func TestEvaluateStructure_BadFormulaReturnsRuleExecutionError(t *testing.T) {
	t.Parallel()

	s := structureWith(rule("BROKEN", 1, payroll.RuleTypeBasic, "contract.wage +"))

	_, err := EvaluateStructure(s, baseContext())
	require.Error(t, err)

	var ruleErr *payroll.RuleExecutionError
	require.True(t, errors.As(err, &ruleErr))
	assert.Equal(t, "BROKEN", ruleErr.RuleCode)
}

func TestEvaluateStructure_NonNumericResultRejected(t *testing.T) {
	t.Parallel()

	s := structureWith(rule("BAD", 1, payroll.RuleTypeBasic, `"not a number"`))

	_, err := EvaluateStructure(s, baseContext())
	var ruleErr *payroll.RuleExecutionError
	require.True(t, errors.As(err, &ruleErr))
}

func TestEvaluateStructure_RatingBonus(t *testing.T) {
	t.Parallel()

	ctx := baseContext()
	ctx.Rating = "A"

	s := structureWith(rule("RATE", 1, payroll.RuleTypeAllowance,
		`inputs.rating == "A" ? 300000 : (inputs.rating == "B" ? 150000 : 0)`))

	lines, err := EvaluateStructure(s, ctx)
	require.NoError(t, err)
	assert.True(t, amountOf(t, lines, "RATE").Equal(decimal.NewFromInt(300000)))
}
