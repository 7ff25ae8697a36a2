package contract

import (
	"fmt"
	"math"
	"strings"

	"github.com/Knetic/govaluate"
	"github.com/agriance/contractgen/model"
)

// InstallmentFormula configures one payment installment. Formula is an
// arithmetic expression over the parameters total, quantity, price,
// advance_percent, delivery_percent, quality_percent and paid (the sum of
// earlier installments). Due may reference {contract_date} and
// {delivery_date}.
type InstallmentFormula struct {
	Name       string `yaml:"name"`
	PercentKey string `yaml:"percent"`
	Formula    string `yaml:"formula"`
	Due        string `yaml:"due"`
}

// DefaultInstallments mirrors the advance / delivery / quality split.
var DefaultInstallments = []InstallmentFormula{
	{Name: "Advance", PercentKey: "advance_percent", Formula: "total * advance_percent / 100", Due: "Within 7 days of signing"},
	{Name: "On Delivery", PercentKey: "delivery_percent", Formula: "total * delivery_percent / 100", Due: "On delivery ({delivery_date})"},
	{Name: "After Quality Check", PercentKey: "quality_percent", Formula: "total * quality_percent / 100", Due: "After quality acceptance"},
}

// Installment is one evaluated row of the payment schedule.
type Installment struct {
	Name    string `json:"name"`
	Percent int    `json:"percent"`
	Amount  int64  `json:"amount"`
	Due     string `json:"due"`
}

type compiledInstallment struct {
	InstallmentFormula
	expr *govaluate.EvaluableExpression
}

// Scheduler evaluates installment formulas against contract records.
type Scheduler struct {
	installments []compiledInstallment
}

// NewScheduler compiles the formulas; an empty list selects
// DefaultInstallments.
func NewScheduler(formulas []InstallmentFormula) (*Scheduler, error) {
	if len(formulas) == 0 {
		formulas = DefaultInstallments
	}
	s := &Scheduler{}
	for _, f := range formulas {
		expr, err := govaluate.NewEvaluableExpression(f.Formula)
		if err != nil {
			return nil, fmt.Errorf("invalid formula for installment %q: %w", f.Name, err)
		}
		s.installments = append(s.installments, compiledInstallment{InstallmentFormula: f, expr: expr})
	}
	return s, nil
}

// Schedule evaluates every installment for rec. Amounts are rounded to whole
// currency units; when the percentages add up to 100 the last installment
// absorbs the rounding so the amounts sum to the total value exactly.
func (s *Scheduler) Schedule(rec model.ContractRecord) ([]Installment, error) {
	params := map[string]interface{}{
		"total":            float64(rec.TotalValue),
		"quantity":         float64(rec.Quantity),
		"price":            float64(rec.Price),
		"advance_percent":  float64(rec.Payment.AdvancePercent),
		"delivery_percent": float64(rec.Payment.DeliveryPercent),
		"quality_percent":  float64(rec.Payment.QualityPercent),
	}
	dueReplacer := strings.NewReplacer(
		"{contract_date}", rec.ContractDate,
		"{delivery_date}", rec.DeliveryDate,
	)

	out := make([]Installment, 0, len(s.installments))
	var paid int64
	for _, inst := range s.installments {
		params["paid"] = float64(paid)
		result, err := inst.expr.Evaluate(params)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate installment %q: %w", inst.Name, err)
		}
		value, ok := result.(float64)
		if !ok {
			return nil, fmt.Errorf("installment %q formula did not yield a number", inst.Name)
		}
		if math.IsNaN(value) || math.Abs(value) > float64(MaxTotalValue) {
			return nil, fmt.Errorf("installment %q amount %v is out of range", inst.Name, value)
		}
		amount := int64(math.Round(value))
		out = append(out, Installment{
			Name:    inst.Name,
			Percent: percentFor(rec.Payment, inst.PercentKey),
			Amount:  amount,
			Due:     dueReplacer.Replace(inst.Due),
		})
		paid += amount
	}

	if len(out) > 0 && rec.Payment.PercentTotal() == 100 && percentsCover(out) {
		last := &out[len(out)-1]
		last.Amount += rec.TotalValue - paid
	}
	return out, nil
}

func percentFor(p model.Payment, key string) int {
	switch key {
	case "advance_percent":
		return p.AdvancePercent
	case "delivery_percent":
		return p.DeliveryPercent
	case "quality_percent":
		return p.QualityPercent
	}
	return 0
}

func percentsCover(rows []Installment) bool {
	sum := 0
	for _, r := range rows {
		sum += r.Percent
	}
	return sum == 100
}
