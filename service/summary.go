package service

import (
	"fmt"
	"strings"

	"github.com/agriance/contractgen/contract"
	"github.com/agriance/contractgen/document"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the summary workbook.
const (
	SheetSummary  = "Summary"
	SheetClauses  = "Clauses"
	SheetSchedule = "Schedule"
)

// SummaryFilename is the download name of a contract's summary workbook.
func SummaryFilename(contractNumber string) string {
	return "Contract_Summary_" + strings.TrimSuffix(strings.TrimPrefix(document.Filename(contractNumber), "Contract_"), ".pdf") + ".xlsx"
}

// SummaryWorkbook exports a generated contract as an .xlsx workbook with the
// key terms, the clause text and the payment schedule on separate sheets.
func SummaryWorkbook(res *document.Result) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	for _, name := range []string{SheetClauses, SheetSchedule} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("failed to create %s sheet: %w", strings.ToLower(name), err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	rec := res.Record
	summary := [][]any{
		{"Field", "Value"},
		{"Contract Number", rec.ContractNumber},
		{"Contract Date", rec.ContractDate},
		{"Generated At", res.GeneratedAt.Format(document.TimestampLayout)},
		{"Crop", rec.CropName},
		{"Quantity (Quintals)", rec.Quantity},
		{"Price per Quintal", rec.Price},
		{"Total Value", rec.TotalValue},
		{"Total Value (Words)", contract.AmountInWords(rec.TotalValue)},
		{"Delivery Date", rec.DeliveryDate},
		{"Farmer", rec.Farmer.Name},
		{"Farmer Location", rec.Farmer.Location},
		{"Buyer", rec.Business.Name},
		{"Buyer Contact", rec.Business.Contact},
		{"GST Number", rec.Business.GST},
		{"Farming Methods", strings.Join(rec.Methods(), ", ")},
		{"Payment Mode", rec.Payment.Mode},
		{"Pages", res.Pages},
	}
	for _, w := range rec.Warnings {
		summary = append(summary, []any{"Warning", w})
	}
	if err := writeRows(f, SheetSummary, summary); err != nil {
		return nil, err
	}

	clauses := [][]any{{"No.", "Title", "Content"}}
	for i, cl := range res.Clauses {
		clauses = append(clauses, []any{i + 1, cl.Title, cl.Content})
	}
	if err := writeRows(f, SheetClauses, clauses); err != nil {
		return nil, err
	}

	schedule := [][]any{{"Installment", "Percent", "Amount", "Due"}}
	var total int64
	for _, in := range res.Schedule {
		schedule = append(schedule, []any{in.Name, in.Percent, in.Amount, in.Due})
		total += in.Amount
	}
	schedule = append(schedule, []any{"Total", nil, total, nil})
	if err := writeRows(f, SheetSchedule, schedule); err != nil {
		return nil, err
	}

	widths := map[string][]float64{
		SheetSummary:  {24, 60},
		SheetClauses:  {6, 28, 100},
		SheetSchedule: {24, 10, 16, 36},
	}
	for sheet, ws := range widths {
		for i, w := range ws {
			col, _ := excelize.ColumnNumberToName(i + 1)
			if err := f.SetColWidth(sheet, col, col, w); err != nil {
				return nil, fmt.Errorf("failed to size columns: %w", err)
			}
		}
		last, _ := excelize.ColumnNumberToName(len(ws))
		if err := f.SetCellStyle(sheet, "A1", last+"1", bold); err != nil {
			return nil, fmt.Errorf("failed to style header: %w", err)
		}
	}
	totalRow := fmt.Sprintf("A%d", len(schedule))
	if err := f.SetCellStyle(SheetSchedule, totalRow, fmt.Sprintf("D%d", len(schedule)), bold); err != nil {
		return nil, fmt.Errorf("failed to style total: %w", err)
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for r, row := range rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("failed to write %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}
