package model

import (
	"net/url"
	"strings"
)

// Field keys of the raw input mapping.
const (
	FieldContractNumber   = "contract_number"
	FieldContractDate     = "contract_date"
	FieldCropName         = "crop_name"
	FieldQuantity         = "quantity"
	FieldPrice            = "price"
	FieldDeliveryDate     = "delivery_date"
	FieldFarmerName       = "farmer_name"
	FieldFarmerLocation   = "farmer_location"
	FieldFarmerPhone      = "farmer_phone"
	FieldFarmerLandSize   = "farmer_land_size"
	FieldBusinessName     = "business_name"
	FieldBusinessContact  = "business_contact"
	FieldBusinessGST      = "business_gst"
	FieldBusinessAddress  = "business_address"
	FieldBusinessPhone    = "business_phone"
	FieldFarmingMethods   = "farming_methods"
	FieldEquipment        = "equipment"
	FieldAdvancePercent   = "advance_percent"
	FieldDeliveryPercent  = "delivery_percent"
	FieldQualityPercent   = "quality_percent"
	FieldPaymentMode      = "payment_mode"
	FieldPaymentTerms     = "payment_terms"
	fieldEquipmentAliased = "equipment_provided"
)

// Fields lists every accepted key in form order.
var Fields = []string{
	FieldContractNumber, FieldContractDate,
	FieldCropName, FieldQuantity, FieldPrice, FieldDeliveryDate,
	FieldFarmerName, FieldFarmerLocation, FieldFarmerPhone, FieldFarmerLandSize,
	FieldBusinessName, FieldBusinessContact, FieldBusinessGST, FieldBusinessAddress, FieldBusinessPhone,
	FieldFarmingMethods, FieldEquipment,
	FieldAdvancePercent, FieldDeliveryPercent, FieldQualityPercent, FieldPaymentMode, FieldPaymentTerms,
}

var displayNames = map[string]string{
	FieldContractNumber:  "Contract Number",
	FieldContractDate:    "Contract Date",
	FieldCropName:        "Crop Name",
	FieldQuantity:        "Quantity",
	FieldPrice:           "Price",
	FieldDeliveryDate:    "Delivery Date",
	FieldFarmerName:      "Farmer Name",
	FieldFarmerLocation:  "Farmer Location",
	FieldFarmerPhone:     "Farmer Phone",
	FieldFarmerLandSize:  "Land Size (Hectares)",
	FieldBusinessName:    "Business Name",
	FieldBusinessContact: "Business Contact",
	FieldBusinessGST:     "GST Number",
	FieldBusinessAddress: "Business Address",
	FieldBusinessPhone:   "Business Phone",
	FieldFarmingMethods:  "Farming Methods",
	FieldEquipment:       "Equipment",
	FieldAdvancePercent:  "Advance Percent",
	FieldDeliveryPercent: "Delivery Percent",
	FieldQualityPercent:  "Quality Percent",
	FieldPaymentMode:     "Payment Mode",
	FieldPaymentTerms:    "Payment Terms",
}

// DisplayName returns the human label of a field key.
func DisplayName(key string) string {
	if name, ok := displayNames[key]; ok {
		return name
	}
	return key
}

// RawInput maps field keys to raw values as gathered by an adapter.
// Multi-valued keys (farming_methods) carry one entry per selection.
type RawInput map[string][]string

// FromValues converts form values into a RawInput with canonical keys.
func FromValues(values url.Values) RawInput {
	in := RawInput{}
	for k, vs := range values {
		for _, v := range vs {
			in.Add(k, v)
		}
	}
	return in
}

// CanonicalKey folds dotted, dashed and mixed-case keys onto the flat
// snake_case form, e.g. "farmer.name" and "Farmer-Name" become "farmer_name".
func CanonicalKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	key = strings.TrimLeft(key, "-")
	key = strings.NewReplacer(".", "_", "-", "_", " ", "_").Replace(key)
	if key == fieldEquipmentAliased {
		return FieldEquipment
	}
	return key
}

// Set replaces the values of key.
func (in RawInput) Set(key string, values ...string) {
	in[CanonicalKey(key)] = append([]string(nil), values...)
}

// Add appends a value to key.
func (in RawInput) Add(key, value string) {
	k := CanonicalKey(key)
	in[k] = append(in[k], value)
}

// Get returns the first non-blank value of key, trimmed.
func (in RawInput) Get(key string) string {
	for _, v := range in[CanonicalKey(key)] {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// Values returns all non-blank values of key, trimmed.
func (in RawInput) Values(key string) []string {
	var out []string
	for _, v := range in[CanonicalKey(key)] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Merge returns a copy of in with every key present in overrides replaced.
func (in RawInput) Merge(overrides RawInput) RawInput {
	out := make(RawInput, len(in)+len(overrides))
	for k, v := range in {
		out[k] = append([]string(nil), v...)
	}
	for k, v := range overrides {
		if len(v) == 0 {
			continue
		}
		out[CanonicalKey(k)] = append([]string(nil), v...)
	}
	return out
}
