package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/agriance/contractgen/model"
	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
)

func newTestFormRouter(t *testing.T) *gin.Engine {
	h := NewFormHandler(newTestGenerator(t))
	h.now = func() time.Time { return fixedNow }

	router := gin.New()
	router.GET("/", h.Form)
	router.POST("/generate", h.Generate)
	return router
}

func TestFormHandlerForm(t *testing.T) {
	router := newTestFormRouter(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		`name="crop_name"`,
		`name="farmer_name"`,
		`name="farming_methods" value="Drip Irrigation"`,
		`value="2026-10-18"`,
		`action="/generate"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected form to contain %s", want)
		}
	}
}

func TestFormHandlerGenerate(t *testing.T) {
	router := newTestFormRouter(t)

	form := url.Values{
		"contract_date":      {"2026-10-18"},
		"crop_name":          {"Wheat"},
		"quantity":           {"100"},
		"price":              {"2500"},
		"delivery_date":      {"2027-03-31"},
		"farmer_name":        {"Ramesh Kumar"},
		"farmer_location":    {"Vadodara"},
		"business_name":      {"AgriTech Foods"},
		"business_contact":   {"Suresh Patel"},
		"farming_methods":    {"Organic", "Mulching"},
		"equipment_provided": {"Seeds"},
	}
	req := httptest.NewRequest("POST", "/generate", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Disposition"); got != `attachment; filename="Contract_CRT-20261018-ABCDEF.pdf"` {
		t.Errorf("Unexpected disposition %s", got)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")) {
		t.Error("Expected a PDF body")
	}
}

func TestFormHandlerGenerateValidation(t *testing.T) {
	router := newTestFormRouter(t)

	form := url.Values{"quantity": {"100"}}
	req := httptest.NewRequest("POST", "/generate", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Crop Name: is required") {
		t.Errorf("Expected the validation message in the form, got %s", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `data-field="crop_name"`) {
		t.Error("Expected the failing field to be marked")
	}
}

func TestFlattenJSON(t *testing.T) {
	in := model.RawInput{}
	err := flattenJSON(in, "", map[string]any{
		"crop_name":          "Wheat",
		"quantity":           float64(100),
		"farmer":             map[string]any{"name": "Asha", "land_size": 2.5},
		"farming_methods":    []any{"Organic", "Mulching"},
		"equipment_provided": "Seeds",
		"payment_terms":      nil,
	})
	if err != nil {
		t.Fatalf("flattenJSON: %v", err)
	}

	tests := []struct {
		key  string
		want []string
	}{
		{"crop_name", []string{"Wheat"}},
		{"quantity", []string{"100"}},
		{"farmer_name", []string{"Asha"}},
		{"farmer_land_size", []string{"2.5"}},
		{"farming_methods", []string{"Organic", "Mulching"}},
		{"equipment", []string{"Seeds"}},
		{"payment_terms", nil},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, in.Values(tt.key)); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", tt.key, diff)
		}
	}

	if err := flattenJSON(model.RawInput{}, "", map[string]any{"quantity": struct{}{}}); err == nil {
		t.Error("Expected unsupported values to be rejected")
	}
}

func TestFormHandlerGenerateValidationKeepsInput(t *testing.T) {
	router := newTestFormRouter(t)

	form := url.Values{
		"quantity":         {"100"},
		"farmer_name":      {"Ramesh Kumar"},
		"business_address": {"Plot 12, APMC Yard, Vadodara"},
		"farming_methods":  {"Mulching", "Crop Rotation"},
		"payment_mode":     {"UPI"},
	}
	req := httptest.NewRequest("POST", "/generate", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		`name="quantity" value="100"`,
		`name="farmer_name" value="Ramesh Kumar"`,
		`>Plot 12, APMC Yard, Vadodara</textarea>`,
		`value="Mulching" checked`,
		`value="Crop Rotation" checked`,
		`<option value="UPI" selected>`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected re-rendered form to contain %s", want)
		}
	}
	if strings.Contains(body, `value="Organic" checked`) {
		t.Error("Expected unselected methods to stay unchecked")
	}
}
