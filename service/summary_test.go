package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/agriance/contractgen/contract"
	"github.com/agriance/contractgen/document"
	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"
)

func sampleResult(t *testing.T) *document.Result {
	t.Helper()
	g, err := document.NewGenerator(document.Options{
		Normalizer: &contract.Normalizer{
			Now:   func() time.Time { return time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC) },
			NewID: func() string { return "abcdef12-3456-7890-abcd-ef1234567890" },
		},
	})
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	res, err := g.GenerateInput(context.Background(), document.SampleInput())
	if err != nil {
		t.Fatalf("GenerateInput: %v", err)
	}
	return res
}

func TestSummaryWorkbook(t *testing.T) {
	res := sampleResult(t)

	data, err := SummaryWorkbook(res)
	if err != nil {
		t.Fatalf("SummaryWorkbook: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	if diff := cmp.Diff([]string{SheetSummary, SheetClauses, SheetSchedule}, f.GetSheetList()); diff != "" {
		t.Errorf("sheets mismatch (-want +got):\n%s", diff)
	}

	tests := []struct {
		sheet, cell, want string
	}{
		{SheetSummary, "B2", "CRT-20261018-ABCDEF"},
		{SheetSummary, "B4", "18-10-2026 at 09:30:00"},
		{SheetSummary, "B5", "Wheat"},
		{SheetSummary, "B8", "250000"},
		{SheetSummary, "B9", "Rupees Two Hundred Fifty Thousand Only"},
		{SheetClauses, "B2", "SCOPE OF AGREEMENT"},
		{SheetSchedule, "A2", "Advance"},
		{SheetSchedule, "C2", "75000"},
		{SheetSchedule, "A5", "Total"},
		{SheetSchedule, "C5", "250000"},
	}
	for _, tt := range tests {
		got, err := f.GetCellValue(tt.sheet, tt.cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s, %s): %v", tt.sheet, tt.cell, err)
		}
		if got != tt.want {
			t.Errorf("%s!%s = %q, want %q", tt.sheet, tt.cell, got, tt.want)
		}
	}

	rows, err := f.GetRows(SheetClauses)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 1+len(res.Clauses) {
		t.Errorf("Expected %d clause rows, got %d", 1+len(res.Clauses), len(rows))
	}
}

func TestSummaryFilename(t *testing.T) {
	if got := SummaryFilename("CRT 1/2"); got != "Contract_Summary_CRT_1_2.xlsx" {
		t.Errorf("Unexpected filename %s", got)
	}
}
