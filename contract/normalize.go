// Package contract turns raw contract input into a validated record and
// expands the fixed clause template from it.
package contract

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/agriance/contractgen/model"
	"github.com/google/uuid"
)

// Defaults applied to optional fields.
const (
	DefaultNotAvailable    = "N/A"
	DefaultFarmingMethod   = "Standard"
	DefaultEquipment       = "No additional equipment provided."
	DefaultPaymentMode     = "Bank Transfer"
	DefaultAdvancePercent  = 30
	DefaultDeliveryPercent = 50
	DefaultQualityPercent  = 20

	// DateLayout is the day-first layout used for every date on the document.
	DateLayout = "02-01-2006"
	isoDate    = "2006-01-02"
)

// PaymentModes are the payment modes offered by the input forms, in menu
// order. Free text is accepted as well.
var PaymentModes = []string{DefaultPaymentMode, "UPI", "Cheque", "Cash"}

var requiredFields = []string{
	model.FieldCropName,
	model.FieldQuantity,
	model.FieldPrice,
	model.FieldDeliveryDate,
	model.FieldFarmerName,
	model.FieldFarmerLocation,
	model.FieldBusinessName,
	model.FieldBusinessContact,
}

// Normalizer validates raw input and builds ContractRecords. Now and NewID
// supply the generated contract date and number; with both fixed, Normalize
// is a pure function of its input.
type Normalizer struct {
	Now   func() time.Time
	NewID func() string
}

// NewNormalizer returns a Normalizer using the wall clock and random UUIDs.
func NewNormalizer() *Normalizer {
	return &Normalizer{
		Now:   time.Now,
		NewID: func() string { return uuid.NewString() },
	}
}

// Normalize validates in and returns the canonical record. The first failing
// field is reported as a *model.ValidationError.
func (n *Normalizer) Normalize(in model.RawInput) (model.ContractRecord, error) {
	for _, key := range requiredFields {
		if in.Get(key) == "" {
			return model.ContractRecord{}, model.NewValidationError(key, model.ReasonRequired, "")
		}
	}

	quantity, err := parseAmount(in, model.FieldQuantity)
	if err != nil {
		return model.ContractRecord{}, err
	}
	price, err := parseAmount(in, model.FieldPrice)
	if err != nil {
		return model.ContractRecord{}, err
	}
	if quantity > MaxTotalValue/price {
		return model.ContractRecord{}, model.NewValidationError(model.FieldPrice, model.ReasonTooLarge, in.Get(model.FieldPrice))
	}

	payment := model.Payment{
		Mode:  orDefault(in.Get(model.FieldPaymentMode), DefaultPaymentMode),
		Terms: orDefault(in.Get(model.FieldPaymentTerms), DefaultNotAvailable),
	}
	if payment.AdvancePercent, err = parsePercent(in, model.FieldAdvancePercent, DefaultAdvancePercent); err != nil {
		return model.ContractRecord{}, err
	}
	if payment.DeliveryPercent, err = parsePercent(in, model.FieldDeliveryPercent, DefaultDeliveryPercent); err != nil {
		return model.ContractRecord{}, err
	}
	if payment.QualityPercent, err = parsePercent(in, model.FieldQualityPercent, DefaultQualityPercent); err != nil {
		return model.ContractRecord{}, err
	}

	rec := model.ContractRecord{
		ContractNumber: in.Get(model.FieldContractNumber),
		ContractDate:   normalizeDate(in.Get(model.FieldContractDate)),
		CropName:       in.Get(model.FieldCropName),
		Quantity:       quantity,
		Price:          price,
		TotalValue:     quantity * price,
		DeliveryDate:   normalizeDate(in.Get(model.FieldDeliveryDate)),
		Farmer: model.Farmer{
			Name:     in.Get(model.FieldFarmerName),
			Location: in.Get(model.FieldFarmerLocation),
			Phone:    orDefault(in.Get(model.FieldFarmerPhone), DefaultNotAvailable),
			LandSize: orDefault(in.Get(model.FieldFarmerLandSize), DefaultNotAvailable),
		},
		Business: model.Business{
			Name:    in.Get(model.FieldBusinessName),
			Contact: in.Get(model.FieldBusinessContact),
			GST:     orDefault(in.Get(model.FieldBusinessGST), DefaultNotAvailable),
			Address: orDefault(in.Get(model.FieldBusinessAddress), DefaultNotAvailable),
			Phone:   orDefault(in.Get(model.FieldBusinessPhone), DefaultNotAvailable),
		},
		FarmingMethods: farmingMethods(in.Values(model.FieldFarmingMethods)),
		Equipment:      orDefault(in.Get(model.FieldEquipment), DefaultEquipment),
		Payment:        payment,
	}

	if rec.ContractDate == "" || rec.ContractNumber == "" {
		now := n.now()
		if rec.ContractDate == "" {
			rec.ContractDate = now.Format(DateLayout)
		}
		if rec.ContractNumber == "" {
			rec.ContractNumber = n.contractNumber(now)
		}
	}

	if total := payment.PercentTotal(); total != 100 {
		msg := fmt.Sprintf("payment percentages sum to %d%%, not 100%%", total)
		rec.Warnings = append(rec.Warnings, msg)
		slog.Warn("payment percentages do not sum to 100",
			"contract_number", rec.ContractNumber,
			"advance", payment.AdvancePercent,
			"delivery", payment.DeliveryPercent,
			"quality", payment.QualityPercent,
		)
	}

	return rec, nil
}

func (n *Normalizer) now() time.Time {
	if n.Now == nil {
		return time.Now()
	}
	return n.Now()
}

// contractNumber formats CRT-<YYYYMMDD>-<6 uppercase hex characters>.
func (n *Normalizer) contractNumber(now time.Time) string {
	id := ""
	if n.NewID != nil {
		id = n.NewID()
	}
	if id == "" {
		id = uuid.NewString()
	}
	suffix := strings.ToUpper(strings.ReplaceAll(id, "-", ""))
	if len(suffix) > 6 {
		suffix = suffix[:6]
	}
	return fmt.Sprintf("CRT-%s-%s", now.Format("20060102"), suffix)
}

func parseAmount(in model.RawInput, key string) (int64, error) {
	raw := in.Get(key)
	cleaned := strings.NewReplacer(",", "", "_", "", " ", "").Replace(raw)
	v, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, model.NewValidationError(key, model.ReasonTooLarge, raw)
		}
		return 0, model.NewValidationError(key, model.ReasonNonNumeric, raw)
	}
	if v <= 0 {
		return 0, model.NewValidationError(key, model.ReasonNotPositive, raw)
	}
	return v, nil
}

func parsePercent(in model.RawInput, key string, def int) (int, error) {
	raw := strings.TrimSuffix(in.Get(key), "%")
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v < 0 || v > 100 {
		return 0, model.NewValidationError(key, model.ReasonPercentRange, in.Get(key))
	}
	return v, nil
}

// farmingMethods splits comma lists, drops blanks and duplicates and keeps
// the first-seen order.
func farmingMethods(values []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, v := range values {
		for _, m := range strings.Split(v, ",") {
			m = strings.TrimSpace(m)
			if m == "" || seen[strings.ToLower(m)] {
				continue
			}
			seen[strings.ToLower(m)] = true
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return []string{DefaultFarmingMethod}
	}
	return out
}

// normalizeDate rewrites ISO dates (as sent by HTML date inputs) in the
// document's day-first layout. Anything else is kept as typed.
func normalizeDate(s string) string {
	if t, err := time.Parse(isoDate, s); err == nil {
		return t.Format(DateLayout)
	}
	return s
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
