package model

// ContractRecord is the canonical, validated form of one contract's input.
// Records are produced by the normalizer and never mutated afterwards.
type ContractRecord struct {
	ContractNumber string   `json:"contract_number"`
	ContractDate   string   `json:"contract_date"`
	CropName       string   `json:"crop_name"`
	Quantity       int64    `json:"quantity"`
	Price          int64    `json:"price"`
	TotalValue     int64    `json:"total_value"`
	DeliveryDate   string   `json:"delivery_date"`
	Farmer         Farmer   `json:"farmer"`
	Business       Business `json:"business"`
	FarmingMethods []string `json:"farming_methods"`
	Equipment      string   `json:"equipment"`
	Payment        Payment  `json:"payment"`
	Warnings       []string `json:"warnings,omitempty"`
}

// Farmer is the producer, Party A.
type Farmer struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Phone    string `json:"phone"`
	// LandSize is in LandSizeUnit.
	LandSize string `json:"land_size"`
}

// LandSizeUnit is the unit every adapter collects land size in.
const LandSizeUnit = "hectares"

// Business is the buyer, Party B.
type Business struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	GST     string `json:"gst"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// Payment describes how the total value is split across installments.
type Payment struct {
	AdvancePercent  int    `json:"advance_percent"`
	DeliveryPercent int    `json:"delivery_percent"`
	QualityPercent  int    `json:"quality_percent"`
	Mode            string `json:"mode"`
	Terms           string `json:"terms"`
}

// Methods returns a copy of the farming methods.
func (r ContractRecord) Methods() []string {
	return append([]string(nil), r.FarmingMethods...)
}

// PercentTotal is the sum of the three installment percentages.
func (p Payment) PercentTotal() int {
	return p.AdvancePercent + p.DeliveryPercent + p.QualityPercent
}

// Clause is one titled paragraph of the terms and conditions.
type Clause struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
