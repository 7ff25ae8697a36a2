package textflow

import (
	"math"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
)

// monospace measures one millimetre per rune.
var monospace = MeasureFunc(func(text string, _ Font) float64 {
	return float64(utf8.RuneCountInString(text))
})

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width float64
		want  []string
	}{
		{"fits", "Wheat crop", 20, []string{"Wheat crop"}},
		{"breaks at spaces", "the farmer shall deliver", 10, []string{"the farmer", "shall", "deliver"}},
		{"exact width", "abcde fghij", 11, []string{"abcde fghij"}},
		{"newline forces break", "a\nb", 10, []string{"a", "b"}},
		{"blank line kept", "a\n\nb", 10, []string{"a", "", "b"}},
		{"long word alone", "x Vermicomposting y", 5, []string{"x", "Vermicomposting", "y"}},
		{"collapses spaces", "a    b", 10, []string{"a b"}},
		{"empty", "", 10, []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.text, tt.width, Font{}, monospace)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Wrap mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLinesStopsEarly(t *testing.T) {
	var got []string
	for line := range Lines("one two three four", 3, Font{}, monospace) {
		got = append(got, line)
		if len(got) == 2 {
			break
		}
	}
	if diff := cmp.Diff([]string{"one", "two"}, got); diff != "" {
		t.Errorf("Lines mismatch (-want +got):\n%s", diff)
	}
}

func TestHelveticaMeasure(t *testing.T) {
	font := Font{Family: "Helvetica", Size: 10}

	// "A" is 667 units: 6.67pt at 10pt.
	if got, want := Helvetica.Measure("A", font), 6.67*PointsToMM; math.Abs(got-want) > 1e-9 {
		t.Errorf("Measure(A) = %v, want %v", got, want)
	}

	bold := font
	bold.Style = Bold
	if Helvetica.Measure("Wheat", bold) <= Helvetica.Measure("Wheat", font) {
		t.Error("Expected bold text to be wider")
	}

	unknown := font
	unknown.Style = "BI"
	if Helvetica.Measure("Wheat", unknown) != Helvetica.Measure("Wheat", font) {
		t.Error("Expected unknown styles to use the regular widths")
	}

	if got, want := Helvetica.Measure("₹", font), 5.56*PointsToMM; math.Abs(got-want) > 1e-9 {
		t.Errorf("Expected the fallback width for non-ASCII runes, got %v", got)
	}
}
