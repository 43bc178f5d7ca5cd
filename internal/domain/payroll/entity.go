package payroll

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RuleType enum. Deduction amounts are stored absolute on the line but folded
// negated into running totals.
type RuleType string

const (
	RuleTypeBasic     RuleType = "basic"
	RuleTypeAllowance RuleType = "allowance"
	RuleTypeDeduction RuleType = "deduction"
	RuleTypeOther     RuleType = "other"
)

var RuleTypeValues = []string{
	string(RuleTypeBasic),
	string(RuleTypeAllowance),
	string(RuleTypeDeduction),
	string(RuleTypeOther),
}

// SalaryRule is one scripted line of a salary structure. Formula is an
// expression evaluated in the payslip's rule context; it yields the line
// amount, or a map carrying result/result_qty/result_rate/skip_line.
type SalaryRule struct {
	ID            string
	StructureID   string
	Name          string
	Code          string // upper-cased, unique per structure
	Sequence      int
	RuleType      RuleType
	Formula       string
	AlwaysInclude bool // keep a zero-amount line visible
	Description   *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NormalizeCode upper-cases and trims a rule code the way rules store it.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// SalaryStructure is an ordered collection of salary rules scoped to a company.
type SalaryStructure struct {
	ID        string
	CompanyID string
	Name      string
	Active    bool
	Note      *string
	Rules     []SalaryRule // ascending sequence
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PayslipState state machine: draft -compute-> computed -confirm-> confirmed
// -done-> done; cancel from any non-done state; reset clears lines back to draft.
type PayslipState string

const (
	PayslipStateDraft     PayslipState = "draft"
	PayslipStateComputed  PayslipState = "computed"
	PayslipStateConfirmed PayslipState = "confirmed"
	PayslipStateDone      PayslipState = "done"
	PayslipStateCancelled PayslipState = "cancelled"
)

// PayslipLine is one computed line. The line set is regenerated whole on each
// computation, never patched.
type PayslipLine struct {
	ID        string
	PayslipID string
	RuleID    *string
	Name      string
	Code      string
	Sequence  int
	RuleType  RuleType
	Quantity  float64
	Rate      float64
	Amount    decimal.Decimal // absolute for deductions
}

// Payslip is one employee's pay computation over [DateFrom, DateTo].
type Payslip struct {
	ID          string
	Number      string
	EmployeeID  string
	ContractID  string
	StructureID string
	RunID       *string // nil for standalone payslips
	CompanyID   string
	DateFrom    time.Time
	DateTo      time.Time
	State       PayslipState
	Lines       []PayslipLine

	TotalGross     decimal.Decimal
	TotalDeduction decimal.Decimal
	TotalNet       decimal.Decimal

	// Manual inputs. Non-zero values take precedence over the computed
	// attendance-derived figures when building the rule context.
	LeaveDays      float64
	OTNormalHours  float64
	OTHolidayHours float64
	Rating         string // A, B or C
	AdvanceAmount  decimal.Decimal
	PenaltyAmount  decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined display fields
	EmployeeName *string
}

// RecomputeTotals derives the three totals from the current line set:
// gross sums every non-deduction line, deduction sums deduction lines
// (stored absolute), net is their difference.
func (p *Payslip) RecomputeTotals() {
	gross := decimal.Zero
	deduction := decimal.Zero
	for _, line := range p.Lines {
		if line.RuleType == RuleTypeDeduction {
			deduction = deduction.Add(line.Amount)
		} else {
			gross = gross.Add(line.Amount)
		}
	}
	p.TotalGross = gross
	p.TotalDeduction = deduction
	p.TotalNet = gross.Sub(deduction)
}

// RunState state machine for pay period batches.
type RunState string

const (
	RunStateDraft     RunState = "draft"
	RunStateGenerated RunState = "generated"
	RunStateComputed  RunState = "computed"
	RunStateValidated RunState = "validated"
	RunStateDone      RunState = "done"
	RunStateCancelled RunState = "cancelled"
)

// Run is a named pay period batch owning zero or more payslips.
type Run struct {
	ID        string
	Name      string
	CompanyID string
	DateStart time.Time
	DateEnd   time.Time
	State     RunState
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SalesData is an externally imported sales record attributed to an employee,
// either attached to a run or dated inside a period.
type SalesData struct {
	ID           string
	RunID        *string
	EmployeeID   string
	CompanyID    string
	Date         time.Time
	Amount       decimal.Decimal
	ProductsSold int
	Reference    *string
	Note         *string
	CreatedAt    time.Time
}
