package main

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/agriance/contractgen/document"
	"github.com/agriance/contractgen/model"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
)

func TestParseFarmingMethods(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"1, 6", []string{"Organic Farming", "Drip Irrigation"}},
		{"10", []string{"Hydroponics"}},
		{"Mulching, 11", []string{"Mulching", "11"}},
		{" , ", nil},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, parseFarmingMethods(tt.in)); diff != "" {
			t.Errorf("parseFarmingMethods(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestParsePaymentMode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1", "Bank Transfer"},
		{"2", "UPI"},
		{" 4 ", "Cash"},
		{"5", "5"},
		{"Demand Draft", "Demand Draft"},
	}
	for _, tt := range tests {
		if got := parsePaymentMode(tt.in); got != tt.want {
			t.Errorf("parsePaymentMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func newTestFormModel(t *testing.T, opened *[]string) formModel {
	t.Helper()
	gen, err := fixedGenerator(document.Options{})
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	open := func(path string) error {
		*opened = append(*opened, path)
		return nil
	}
	return newFormModel(context.Background(), gen, t.TempDir(), open)
}

func (m *formModel) fill(values map[string]string) {
	for i, p := range m.prompts {
		if v, ok := values[p.key]; ok {
			m.inputs[i].SetValue(v)
		}
	}
}

func press(t *testing.T, m formModel, msg tea.Msg) (formModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(formModel), cmd
}

func TestFormModelNavigation(t *testing.T) {
	var opened []string
	m := newTestFormModel(t, &opened)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != 1 {
		t.Fatalf("Expected focus 1 after tab, got %d", m.focus)
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.focus != 2 {
		t.Fatalf("Expected enter to advance, got %d", m.focus)
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.focus != 0 {
		t.Fatalf("Expected focus 0, got %d", m.focus)
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focus != len(m.inputs)-1 {
		t.Errorf("Expected focus to wrap to the last field, got %d", m.focus)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Rice")})
	if got := m.inputs[0].Value(); got != "Rice" {
		t.Errorf("Expected typed value Rice, got %q", got)
	}

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil || m.stage != stageDone {
		t.Error("Expected ctrl+c to quit")
	}
}

func TestFormModelGenerate(t *testing.T) {
	var opened []string
	m := newTestFormModel(t, &opened)
	m.fill(map[string]string{
		model.FieldCropName:        "Wheat",
		model.FieldQuantity:        "100",
		model.FieldPrice:           "2500",
		model.FieldDeliveryDate:    "31-03-2027",
		model.FieldFarmerName:      "Ramesh Kumar",
		model.FieldFarmerLocation:  "Vadodara",
		model.FieldBusinessName:    "AgriTech Foods",
		model.FieldBusinessContact: "Suresh Patel",
		model.FieldBusinessAddress: "Plot 12, APMC Yard, Vadodara",
		model.FieldFarmingMethods:  "1, 6",
		model.FieldPaymentMode:     "2",
		model.FieldPaymentTerms:    "Payments within 7 days of invoice",
	})

	in := m.rawInput()
	if diff := cmp.Diff([]string{"Organic Farming", "Drip Irrigation"}, in.Values(model.FieldFarmingMethods)); diff != "" {
		t.Errorf("farming methods mismatch (-want +got):\n%s", diff)
	}
	if got := in.Get(model.FieldPaymentMode); got != "UPI" {
		t.Errorf("Expected payment mode UPI, got %q", got)
	}
	if got := in.Get(model.FieldAdvancePercent); got != "30" {
		t.Errorf("Expected the default advance percent, got %q", got)
	}
	if got := in.Get(model.FieldBusinessAddress); got != "Plot 12, APMC Yard, Vadodara" {
		t.Errorf("Expected the business address, got %q", got)
	}
	if got := in.Get(model.FieldPaymentTerms); got != "Payments within 7 days of invoice" {
		t.Errorf("Expected the payment terms, got %q", got)
	}

	m.setFocus(len(m.inputs) - 1)
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.stage != stageGenerating || cmd == nil {
		t.Fatalf("Expected enter on the last field to submit")
	}

	m, _ = press(t, m, cmd().(generatedMsg))
	if m.stage != stageConfirmOpen {
		t.Fatalf("Expected the open prompt, got stage %d (%s)", m.stage, m.err)
	}
	if !strings.HasSuffix(m.path, "Contract_CRT-20261018-ABCDEF.pdf") {
		t.Errorf("Unexpected output path %s", m.path)
	}
	if _, err := os.Stat(m.path); err != nil {
		t.Errorf("Expected the contract on disk: %v", err)
	}
	if !strings.Contains(m.View(), "Open the contract now?") {
		t.Error("Expected the open prompt in the view")
	}

	m, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	if m.stage != stageDone || cmd == nil {
		t.Fatal("Expected y to finish")
	}
	if diff := cmp.Diff([]string{m.path}, opened); diff != "" {
		t.Errorf("opened mismatch (-want +got):\n%s", diff)
	}
}

func TestFormModelValidationError(t *testing.T) {
	var opened []string
	m := newTestFormModel(t, &opened)
	m.fill(map[string]string{
		model.FieldCropName:        "Wheat",
		model.FieldQuantity:        "100",
		model.FieldPrice:           "abc",
		model.FieldDeliveryDate:    "31-03-2027",
		model.FieldFarmerName:      "Ramesh Kumar",
		model.FieldFarmerLocation:  "Vadodara",
		model.FieldBusinessName:    "AgriTech Foods",
		model.FieldBusinessContact: "Suresh Patel",
	})

	m.setFocus(len(m.inputs) - 1)
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = press(t, m, cmd().(generatedMsg))

	if m.stage != stageForm {
		t.Fatalf("Expected to return to the form, got stage %d", m.stage)
	}
	if m.prompts[m.focus].key != model.FieldPrice {
		t.Errorf("Expected focus on price, got %s", m.prompts[m.focus].key)
	}
	if !strings.Contains(m.err, "Price") {
		t.Errorf("Expected the price error, got %q", m.err)
	}
	if !strings.Contains(m.View(), m.err) {
		t.Error("Expected the error in the view")
	}
	if len(opened) != 0 {
		t.Error("Expected nothing opened")
	}
}
