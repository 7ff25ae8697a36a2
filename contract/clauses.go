package contract

import (
	"fmt"
	"strings"

	"github.com/agriance/contractgen/model"
)

// Variant selects the clause set.
type Variant string

const (
	// VariantStandard is the ten-clause agreement.
	VariantStandard Variant = "standard"
	// VariantExtended appends Governing Law and Entire Agreement.
	VariantExtended Variant = "extended"
)

// ParseVariant maps a config or flag value onto a Variant.
func ParseVariant(s string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(s))) {
	case "", VariantStandard:
		return VariantStandard, nil
	case VariantExtended:
		return VariantExtended, nil
	}
	return "", fmt.Errorf("unknown clause variant %q", s)
}

// ClauseCount is the number of clauses BuildClauses returns for v.
func (v Variant) ClauseCount() int {
	if v == VariantExtended {
		return len(clauseTemplates) + len(extendedTemplates)
	}
	return len(clauseTemplates)
}

type clauseTemplate struct {
	title string
	body  func(rec model.ContractRecord, generatedAt string) string
}

var clauseTemplates = []clauseTemplate{
	{"SCOPE OF AGREEMENT", func(rec model.ContractRecord, _ string) string {
		return strings.Join([]string{
			"The PRODUCER agrees to cultivate and supply, and the BUYER agrees to purchase, the following produce:",
			"Crop: " + rec.CropName,
			fmt.Sprintf("Quantity: %d Quintals", rec.Quantity),
			fmt.Sprintf("Price: %s per Quintal", FormatMoney(rec.Price)),
			fmt.Sprintf("Total Contract Value: %s (%s)", FormatMoney(rec.TotalValue), AmountInWords(rec.TotalValue)),
		}, "\n")
	}},
	{"DELIVERY TERMS", func(rec model.ContractRecord, _ string) string {
		return fmt.Sprintf("The produce shall be delivered on or before %s at a location mutually agreed upon by both parties.", rec.DeliveryDate)
	}},
	{"QUALITY STANDARDS", func(model.ContractRecord, string) string {
		return "The produce shall be of good quality and free from adulteration. Moisture content shall not exceed 14%. " +
			"The BUYER may reject produce that does not meet these standards."
	}},
	{"FARMING METHODS", func(rec model.ContractRecord, _ string) string {
		return "The producer agrees to use: " + strings.Join(rec.FarmingMethods, ", ") +
			"\nAny deviation from these methods requires prior written approval of the BUYER."
	}},
	{"EQUIPMENT & INPUTS", func(rec model.ContractRecord, _ string) string {
		return "Equipment and inputs provided by the BUYER: " + rec.Equipment
	}},
	{"PAYMENT TERMS", func(rec model.ContractRecord, _ string) string {
		p := rec.Payment
		lines := []string{
			fmt.Sprintf("Advance: %s | On Delivery: %s | After Quality: %s",
				FormatPercent(p.AdvancePercent), FormatPercent(p.DeliveryPercent), FormatPercent(p.QualityPercent)),
			"Payment Mode: " + p.Mode,
		}
		if p.Terms != "" && p.Terms != DefaultNotAvailable {
			lines = append(lines, "Additional Terms: "+p.Terms)
		}
		return strings.Join(lines, "\n")
	}},
	{"OBLIGATIONS OF PRODUCER", func(model.ContractRecord, string) string {
		return numbered(
			"Cultivate the crop as per the agreed farming methods",
			"Maintain proper records of cultivation",
			"Inform the BUYER about any crop disease or pest attack immediately",
			"Deliver the produce on the agreed date and location",
			"Ensure the produce meets the quality standards",
		)
	}},
	{"OBLIGATIONS OF BUYER", func(model.ContractRecord, string) string {
		return numbered(
			"Provide the agreed equipment and inputs in time",
			"Make payments as per the payment schedule",
			"Accept delivery of produce meeting the quality standards",
			"Honor the contract terms in good faith",
		)
	}},
	{"FORCE MAJEURE", func(model.ContractRecord, string) string {
		return "Neither party shall be liable for delays or failures caused by circumstances beyond its reasonable control, " +
			"including natural disasters, war, epidemics or government action."
	}},
	{"DISPUTE RESOLUTION", func(model.ContractRecord, string) string {
		return "Disputes shall first be resolved through mutual discussion within 30 days. Failing that, they shall be " +
			"referred to arbitration under the Arbitration and Conciliation Act, 1996."
	}},
}

var extendedTemplates = []clauseTemplate{
	{"GOVERNING LAW", func(model.ContractRecord, string) string {
		return "This contract shall be governed by the laws of India. Legal proceedings shall be subject to the exclusive " +
			"jurisdiction of the courts in the State where the producer's land is located."
	}},
	{"ENTIRE AGREEMENT", func(_ model.ContractRecord, generatedAt string) string {
		return fmt.Sprintf("This Agreement, generated on %s, constitutes the entire agreement between the parties and "+
			"supersedes all prior negotiations. It may be amended only by a written instrument signed by both parties.", generatedAt)
	}},
}

// BuildClauses expands the clause template for rec. The result has a fixed
// order and length for each variant and is identical for identical inputs.
func BuildClauses(rec model.ContractRecord, generatedAt string, variant Variant) []model.Clause {
	templates := clauseTemplates
	if variant == VariantExtended {
		templates = append(append([]clauseTemplate(nil), clauseTemplates...), extendedTemplates...)
	}
	clauses := make([]model.Clause, len(templates))
	for i, t := range templates {
		clauses[i] = model.Clause{Title: t.title, Content: t.body(rec, generatedAt)}
	}
	return clauses
}

func numbered(items ...string) string {
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s", i+1, item)
	}
	return b.String()
}
