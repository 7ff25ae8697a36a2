package document

import (
	"fmt"
	"strings"

	"github.com/agriance/contractgen/contract"
	"github.com/agriance/contractgen/model"
	"github.com/agriance/contractgen/pkg/canvas"
	"github.com/agriance/contractgen/pkg/layout"
	"github.com/agriance/contractgen/pkg/textflow"
)

// Section titles in document order.
const (
	SectionSummary    = "CONTRACT SUMMARY"
	SectionTerms      = "TERMS AND CONDITIONS"
	SectionSchedule   = "PAYMENT SCHEDULE"
	SectionSignatures = "SIGNATURES"
)

const witnessText = "IN WITNESS WHEREOF, the parties hereto have executed this Agreement on the date first above written."

// Compose returns the ordered content blocks of a contract: parties and
// summary, the clause list, then the payment schedule and signatures.
func Compose(rec model.ContractRecord, clauses []model.Clause, schedule []contract.Installment) []layout.Block {
	body := layout.Font(textflow.Regular, 10)
	blocks := []layout.Block{
		layout.Paragraph{
			Text:       "Contract No: " + rec.ContractNumber + "\nDate: " + rec.ContractDate,
			Font:       layout.Font(textflow.Bold, 10),
			LineHeight: 6,
			Align:      canvas.AlignRight,
			SpaceAfter: 4,
		},
	}
	for _, p := range preamble(rec) {
		blocks = append(blocks, layout.Paragraph{Text: p, Font: body, LineHeight: 5.5, SpaceAfter: 3})
	}
	blocks = append(blocks,
		layout.Spacer{Height: 2},
		layout.TitleBlock{Text: SectionSummary},
		summaryTable(rec),

		layout.TitleBlock{Text: SectionTerms, BreakBefore: true},
		clauseList(clauses),

		layout.TitleBlock{Text: SectionSchedule, BreakBefore: true},
		scheduleTable(rec, schedule),
		layout.TitleBlock{Text: SectionSignatures},
		layout.Paragraph{Text: witnessText, Font: body, LineHeight: 5.5, SpaceAfter: 8},
		signatures(rec),
	)
	return blocks
}

func preamble(rec model.ContractRecord) []string {
	f, b := rec.Farmer, rec.Business
	return []string{
		fmt.Sprintf("THIS AGREEMENT is made and entered into on %s by and between:", rec.ContractDate),
		fmt.Sprintf("%s, residing at %s (Phone: %s%s), hereinafter referred to as the "+
			"\"PRODUCER\" (Party A);", f.Name, f.Location, f.Phone, landHolding(f)),
		fmt.Sprintf("AND %s, represented by %s, GST No. %s, Address: %s (Phone: %s), hereinafter referred to as "+
			"the \"BUYER\" (Party B).", b.Name, b.Contact, b.GST, b.Address, b.Phone),
		fmt.Sprintf("WHEREAS the PRODUCER is engaged in the cultivation of %s and the BUYER wishes to purchase "+
			"the produce, the parties agree to the terms and conditions set out below.", rec.CropName),
	}
}

func landHolding(f model.Farmer) string {
	if f.LandSize == "" || f.LandSize == contract.DefaultNotAvailable {
		return ""
	}
	return ", Land Holding: " + f.LandSize + " " + model.LandSizeUnit
}

func summaryTable(rec model.ContractRecord) layout.Table {
	rows := [][]string{
		{"Crop", rec.CropName},
		{"Quantity", fmt.Sprintf("%d Quintals", rec.Quantity)},
		{"Price per Quintal", contract.FormatMoney(rec.Price)},
		{"Total Contract Value", contract.FormatMoney(rec.TotalValue)},
		{"Amount in Words", contract.AmountInWords(rec.TotalValue)},
		{"Delivery Date", rec.DeliveryDate},
		{"Farming Methods", strings.Join(rec.FarmingMethods, ", ")},
		{"Equipment Provided", rec.Equipment},
		{"Payment Split", fmt.Sprintf("%s / %s / %s",
			contract.FormatPercent(rec.Payment.AdvancePercent),
			contract.FormatPercent(rec.Payment.DeliveryPercent),
			contract.FormatPercent(rec.Payment.QualityPercent))},
		{"Payment Mode", rec.Payment.Mode},
		{"Producer", rec.Farmer.Name},
		{"Producer Location", rec.Farmer.Location},
		{"Buyer", rec.Business.Name},
		{"Buyer Representative", rec.Business.Contact},
		{"GST Number", rec.Business.GST},
	}
	return layout.Table{
		Columns: []layout.Column{
			{Title: "Item", Weight: 1, Bold: true},
			{Title: "Details", Weight: 2.2},
		},
		Rows:       rows,
		Striped:    true,
		SpaceAfter: 4,
	}
}

func clauseList(clauses []model.Clause) layout.ClauseList {
	items := make([]layout.Clause, len(clauses))
	for i, c := range clauses {
		items[i] = layout.Clause{Heading: c.Title, Body: c.Content}
	}
	return layout.ClauseList{Items: items}
}

func scheduleTable(rec model.ContractRecord, schedule []contract.Installment) layout.Table {
	rows := make([][]string, 0, len(schedule)+1)
	var total int64
	percent := 0
	for _, inst := range schedule {
		rows = append(rows, []string{inst.Name, contract.FormatPercent(inst.Percent), contract.FormatMoney(inst.Amount), inst.Due})
		total += inst.Amount
		percent += inst.Percent
	}
	rows = append(rows, []string{"Total", contract.FormatPercent(percent), contract.FormatMoney(total), "Mode: " + rec.Payment.Mode})
	return layout.Table{
		Columns: []layout.Column{
			{Title: "Installment", Weight: 1.2},
			{Title: "Share", Weight: 0.6, Align: canvas.AlignCenter},
			{Title: "Amount", Weight: 1, Align: canvas.AlignRight},
			{Title: "Due", Weight: 2},
		},
		Rows:        rows,
		Header:      true,
		BoldLastRow: true,
		SpaceAfter:  6,
	}
}

func signatures(rec model.ContractRecord) layout.SignatureBlock {
	return layout.SignatureBlock{
		Parties: []layout.Party{
			{Role: "PRODUCER/FARMER (Party A)", Details: []string{
				"Name: " + rec.Farmer.Name,
				"Location: " + rec.Farmer.Location,
				"Phone: " + rec.Farmer.Phone,
			}},
			{Role: "BUYER/COMPANY (Party B)", Details: []string{
				"Company: " + rec.Business.Name,
				"Contact: " + rec.Business.Contact,
				"GST: " + rec.Business.GST,
			}},
		},
		Witnesses: 2,
	}
}
