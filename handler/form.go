package handler

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/agriance/contractgen/contract"
	"github.com/agriance/contractgen/document"
	"github.com/agriance/contractgen/middleware"
	"github.com/agriance/contractgen/model"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const pdfContentType = "application/pdf"

// FarmingMethodOptions are the checkboxes offered by the web form.
var FarmingMethodOptions = []string{
	"Organic", "Natural Farming", "Integrated Pest Management", "Crop Rotation", "Mulching",
	"Drip Irrigation", "Sprinkler System", "Green Manure", "Vermicomposting",
}

type formField struct {
	Key, Label, Type, Placeholder, Value string
	Required                             bool
}

type formSection struct {
	Title  string
	Fields []formField
}

type formPage struct {
	Sections     []formSection
	Methods      []string
	PaymentModes []string
	Checked      map[string]bool
	PaymentMode  string
	Error        string
	ErrorField   string
}

// refill puts a rejected submission back into the form.
func (p *formPage) refill(values url.Values) {
	for s := range p.Sections {
		for i := range p.Sections[s].Fields {
			f := &p.Sections[s].Fields[i]
			if vs, ok := values[f.Key]; ok && len(vs) > 0 {
				f.Value = vs[0]
			}
		}
	}
	p.Checked = make(map[string]bool)
	for _, m := range values[model.FieldFarmingMethods] {
		p.Checked[m] = true
	}
	p.PaymentMode = values.Get(model.FieldPaymentMode)
}

func field(key, typ, placeholder string) formField {
	return formField{Key: key, Label: model.DisplayName(key), Type: typ, Placeholder: placeholder}
}

func required(f formField) formField {
	f.Required = true
	return f
}

func newFormPage(today time.Time) formPage {
	date := field(model.FieldContractDate, "date", "")
	date.Value = today.Format("2006-01-02")
	advance := field(model.FieldAdvancePercent, "number", "")
	advance.Value = "30"
	delivery := field(model.FieldDeliveryPercent, "number", "")
	delivery.Value = "50"
	quality := field(model.FieldQualityPercent, "number", "")
	quality.Value = "20"

	return formPage{
		Sections: []formSection{
			{"Contract Details", []formField{
				field(model.FieldContractNumber, "text", "Generated when empty"),
				date,
				required(field(model.FieldCropName, "text", "e.g., Organic Wheat")),
				required(field(model.FieldQuantity, "number", "Quintals, e.g. 100")),
				required(field(model.FieldPrice, "number", "Per quintal, e.g. 2500")),
				required(field(model.FieldDeliveryDate, "date", "")),
			}},
			{"Farmer Details (Party A)", []formField{
				required(field(model.FieldFarmerName, "text", "Farmer's full name")),
				required(field(model.FieldFarmerLocation, "text", "Village, District, State")),
				field(model.FieldFarmerPhone, "text", "10-digit mobile"),
				field(model.FieldFarmerLandSize, "text", "e.g. 5.5"),
			}},
			{"Business Details (Party B)", []formField{
				required(field(model.FieldBusinessName, "text", "Company name")),
				required(field(model.FieldBusinessContact, "text", "Contact person")),
				field(model.FieldBusinessGST, "text", "29AABCU9603R1ZM"),
				field(model.FieldBusinessPhone, "text", "Business phone"),
				field(model.FieldBusinessAddress, "textarea", "Registered address"),
			}},
			{"Equipment & Payment", []formField{
				field(model.FieldEquipment, "textarea", "Seeds, fertilizers or equipment provided by the business"),
				advance, delivery, quality,
				field(model.FieldPaymentTerms, "textarea", "Additional payment terms"),
			}},
		},
		Methods:      FarmingMethodOptions,
		PaymentModes: contract.PaymentModes,
	}
}

var formTemplate = template.Must(template.New("form").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Agriance Contract Generator</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; background: #f0f6f0; margin: 0; }
header { background: #1a472a; color: #fff; padding: 16px 24px; }
form { max-width: 860px; margin: 24px auto; }
.card { background: #fff; border-radius: 8px; padding: 16px 24px; margin-bottom: 16px; }
.card h2 { color: #1a472a; font-size: 18px; }
label { display: block; font-size: 13px; margin-top: 10px; }
input, textarea, select { width: 100%; padding: 6px; box-sizing: border-box; }
.methods label { display: inline-block; width: 32%; }
.methods input { width: auto; }
.error { background: #fde8e8; color: #9b1c1c; padding: 10px 16px; border-radius: 6px; }
button { background: #1a472a; color: #fff; border: 0; padding: 12px 24px; border-radius: 6px; font-size: 15px; }
</style>
</head>
<body>
<header><h1>Agriance Contract Generator</h1></header>
<form method="post" action="/generate">
{{if .Error}}<p class="error" data-field="{{.ErrorField}}">{{.Error}}</p>{{end}}
{{range .Sections}}<div class="card">
<h2>{{.Title}}</h2>
{{range .Fields}}<label for="{{.Key}}">{{.Label}}{{if .Required}} *{{end}}</label>
{{if eq .Type "textarea"}}<textarea id="{{.Key}}" name="{{.Key}}" placeholder="{{.Placeholder}}">{{.Value}}</textarea>
{{else}}<input id="{{.Key}}" type="{{.Type}}" name="{{.Key}}" value="{{.Value}}" placeholder="{{.Placeholder}}"{{if .Required}} required{{end}}>
{{end}}{{end}}</div>
{{end}}<div class="card methods">
<h2>Farming Methods</h2>
{{range .Methods}}<label><input type="checkbox" name="farming_methods" value="{{.}}"{{if index $.Checked .}} checked{{end}}> {{.}}</label>
{{end}}<label for="payment_mode">Payment Mode</label>
<select id="payment_mode" name="payment_mode">
{{range .PaymentModes}}<option value="{{.}}"{{if eq . $.PaymentMode}} selected{{end}}>{{.}}</option>
{{end}}</select>
</div>
<button type="submit">Generate Contract PDF</button>
</form>
</body>
</html>
`))

// FormHandler serves the public contract form and turns submissions into
// PDF downloads.
type FormHandler struct {
	generator *document.Generator
	now       func() time.Time
}

func NewFormHandler(gen *document.Generator) *FormHandler {
	return &FormHandler{generator: gen, now: time.Now}
}

// Form handles GET /
func (h *FormHandler) Form(c *gin.Context) {
	h.render(c, http.StatusOK, newFormPage(h.now()))
}

// Generate handles POST /generate
func (h *FormHandler) Generate(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		c.String(http.StatusBadRequest, "Invalid form: %v", err)
		return
	}

	res, err := h.generator.GenerateInput(c.Request.Context(), model.FromValues(c.Request.PostForm))
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			page := newFormPage(h.now())
			page.refill(c.Request.PostForm)
			page.Error = verr.Error()
			page.ErrorField = verr.Key
			h.render(c, http.StatusBadRequest, page)
			return
		}
		writeGenerateError(c, err)
		return
	}
	c.Set(middleware.ContextContractNumber, res.ContractNumber)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	c.Data(http.StatusOK, pdfContentType, res.PDF)
}

func (h *FormHandler) render(c *gin.Context, status int, page formPage) {
	var buf bytes.Buffer
	if err := formTemplate.Execute(&buf, page); err != nil {
		c.String(http.StatusInternalServerError, "Failed to render form")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

// bindRawInput reads a JSON object or a form-encoded body. Nested JSON
// objects map onto prefixed keys, so {"farmer": {"name": "x"}} sets
// farmer_name.
func bindRawInput(c *gin.Context) (model.RawInput, error) {
	if c.ContentType() == binding.MIMEJSON {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			return nil, err
		}
		in := model.RawInput{}
		if err := flattenJSON(in, "", body); err != nil {
			return nil, err
		}
		return in, nil
	}
	if err := c.Request.ParseForm(); err != nil {
		return nil, err
	}
	return model.FromValues(c.Request.PostForm), nil
}

func flattenJSON(in model.RawInput, prefix string, v any) error {
	switch v := v.(type) {
	case map[string]any:
		for k, child := range v {
			key := k
			if prefix != "" {
				key = prefix + "_" + k
			}
			if err := flattenJSON(in, key, child); err != nil {
				return err
			}
		}
	case []any:
		for _, item := range v {
			if err := flattenJSON(in, prefix, item); err != nil {
				return err
			}
		}
	case string:
		in.Add(prefix, v)
	case float64:
		in.Add(prefix, strconv.FormatFloat(v, 'f', -1, 64))
	case bool:
		in.Add(prefix, strconv.FormatBool(v))
	case nil:
	default:
		return fmt.Errorf("unsupported value for %s", prefix)
	}
	return nil
}
