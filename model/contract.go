package model

import (
	"time"
)

// Contract is a generated contract document tracked by the registry.
type Contract struct {
	ID             string         `json:"id"`
	ContractNumber string         `json:"contract_number"`
	Filename       string         `json:"filename"`
	Tenant         string         `json:"tenant"`
	ObjectName     string         `json:"object_name,omitempty"`
	PDFURL         string         `json:"pdf_url,omitempty"`
	Status         string         `json:"status"` // generated, archived, failed
	Variant        string         `json:"variant"`
	Pages          int            `json:"pages"`
	SHA256         string         `json:"sha256"`
	GeneratedAt    time.Time      `json:"generated_at"`
	Record         ContractRecord `json:"record"`
	ErrorMsg       string         `json:"error_msg,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// ContractStatus constants
const (
	StatusGenerated = "generated"
	StatusArchived  = "archived"
	StatusFailed    = "failed"
)
