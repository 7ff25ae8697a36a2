package handler

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/agriance/contractgen/document"
	"github.com/agriance/contractgen/middleware"
	"github.com/agriance/contractgen/model"
	"github.com/agriance/contractgen/pkg/layout"
	"github.com/agriance/contractgen/pkg/logger"
	"github.com/agriance/contractgen/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Archiver stores generated PDFs outside the process.
type Archiver interface {
	Archive(ctx context.Context, tenant, number, filename string, pdf []byte) (objectName, url string, err error)
	DeleteFile(ctx context.Context, objectName string) error
}

type ContractHandler struct {
	generator *document.Generator
	archive   Archiver
	store     *service.ContractStore
}

// NewContractHandler returns a handler generating with gen. archive may be
// nil, in which case PDFs are only kept as re-renderable records.
func NewContractHandler(gen *document.Generator, archive Archiver) *ContractHandler {
	return &ContractHandler{
		generator: gen,
		archive:   archive,
		store:     service.GetContractStore(),
	}
}

// Generate handles POST /api/contracts with a JSON or form-encoded body.
func (h *ContractHandler) Generate(c *gin.Context) {
	ctx := c.Request.Context()
	tenant := middleware.GetTenant(c)

	in, err := bindRawInput(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if number := in.Get(model.FieldContractNumber); number != "" && h.store.GetByNumber(tenant, number) != nil {
		writeDuplicateNumber(c)
		return
	}

	res, err := h.generator.GenerateInput(ctx, in)
	if err != nil {
		writeGenerateError(c, err)
		return
	}
	c.Set(middleware.ContextContractNumber, res.ContractNumber)

	sum := sha256.Sum256(res.PDF)
	contract := &model.Contract{
		ID:             uuid.New().String(),
		ContractNumber: res.ContractNumber,
		Filename:       res.Filename,
		Tenant:         tenant,
		Status:         model.StatusGenerated,
		Variant:        string(h.generator.Variant()),
		Pages:          res.Pages,
		SHA256:         hex.EncodeToString(sum[:]),
		GeneratedAt:    res.GeneratedAt,
		Record:         res.Record,
		CreatedAt:      time.Now(),
	}
	if err := h.store.SaveIfAbsent(contract); err != nil {
		writeDuplicateNumber(c)
		return
	}

	if h.archive != nil {
		objectName, url, err := h.archive.Archive(ctx, tenant, res.ContractNumber, res.Filename, res.PDF)
		if err != nil {
			logger.Warn(ctx, "failed to archive contract", "contract_number", res.ContractNumber, "error", err)
			h.store.UpdateStatus(contract.ID, model.StatusFailed, err.Error())
		} else {
			h.store.MarkArchived(contract.ID, objectName, url)
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":              contract.ID,
		"contract_number": contract.ContractNumber,
		"filename":        contract.Filename,
		"pages":           contract.Pages,
		"status":          contract.Status,
		"sha256":          contract.SHA256,
		"pdf_url":         contract.PDFURL,
		"download_url":    "/api/contracts/" + contract.ID + "/pdf",
		"warnings":        res.Record.Warnings,
		"error_msg":       contract.ErrorMsg,
	})
}

func writeDuplicateNumber(c *gin.Context) {
	c.JSON(http.StatusConflict, gin.H{"error": "Contract number already exists", "field": model.DisplayName(model.FieldContractNumber)})
}

// writeGenerateError maps pipeline errors onto HTTP responses.
func writeGenerateError(c *gin.Context, err error) {
	var verr *model.ValidationError
	var overflow *layout.OverflowError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "field": verr.Field})
	case errors.As(err, &overflow):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": overflow.Error()})
	default:
		logger.Error(c.Request.Context(), "contract generation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate contract: " + err.Error()})
	}
}

// List returns all contracts for the current tenant
func (h *ContractHandler) List(c *gin.Context) {
	tenant := middleware.GetTenant(c)
	contracts := h.store.GetByTenant(tenant)

	result := make([]gin.H, len(contracts))
	for i, contract := range contracts {
		result[i] = gin.H{
			"id":              contract.ID,
			"contract_number": contract.ContractNumber,
			"filename":        contract.Filename,
			"crop":            contract.Record.CropName,
			"farmer":          contract.Record.Farmer.Name,
			"buyer":           contract.Record.Business.Name,
			"total_value":     contract.Record.TotalValue,
			"pages":           contract.Pages,
			"status":          contract.Status,
			"pdf_url":         contract.PDFURL,
			"created_at":      contract.CreatedAt.Format(time.RFC3339),
			"updated_at":      contract.UpdatedAt.Format(time.RFC3339),
		}
	}

	c.JSON(http.StatusOK, gin.H{"contracts": result})
}

// Get returns a single contract with its record
func (h *ContractHandler) Get(c *gin.Context) {
	contract := h.tenantContract(c)
	if contract == nil {
		return
	}
	c.JSON(http.StatusOK, contract)
}

// GetStatus returns the archive status of a contract
func (h *ContractHandler) GetStatus(c *gin.Context) {
	contract := h.tenantContract(c)
	if contract == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":        contract.ID,
		"status":    contract.Status,
		"error_msg": contract.ErrorMsg,
	})
}

// Download re-renders the stored record and returns the PDF.
func (h *ContractHandler) Download(c *gin.Context) {
	contract := h.tenantContract(c)
	if contract == nil {
		return
	}
	res, ok := h.rerender(c, contract)
	if !ok {
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	c.Data(http.StatusOK, pdfContentType, res.PDF)
}

// Summary returns the contract summary workbook.
func (h *ContractHandler) Summary(c *gin.Context) {
	contract := h.tenantContract(c)
	if contract == nil {
		return
	}
	res, ok := h.rerender(c, contract)
	if !ok {
		return
	}
	data, err := service.SummaryWorkbook(res)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to build summary workbook", "contract_number", contract.ContractNumber, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build summary"})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", service.SummaryFilename(contract.ContractNumber)))
	c.Data(http.StatusOK, xlsxContentType, data)
}

func (h *ContractHandler) rerender(c *gin.Context, contract *model.Contract) (*document.Result, bool) {
	ctx := c.Request.Context()
	res, err := h.generator.Generate(ctx, contract.Record, contract.GeneratedAt)
	if err != nil {
		writeGenerateError(c, err)
		return nil, false
	}
	if contract.SHA256 != "" {
		sum := sha256.Sum256(res.PDF)
		if hex.EncodeToString(sum[:]) != contract.SHA256 {
			logger.Warn(ctx, "re-rendered contract differs from original", "contract_number", contract.ContractNumber)
		}
	}
	return res, true
}

// Delete deletes a contract and its archived PDF
func (h *ContractHandler) Delete(c *gin.Context) {
	contract := h.tenantContract(c)
	if contract == nil {
		return
	}

	if contract.ObjectName != "" && h.archive != nil {
		if err := h.archive.DeleteFile(c.Request.Context(), contract.ObjectName); err != nil {
			logger.Warn(c.Request.Context(), "failed to delete archived contract", "object", contract.ObjectName, "error", err)
		}
	}
	h.store.Delete(contract.ID)

	c.JSON(http.StatusOK, gin.H{"message": "Contract deleted"})
}

// tenantContract loads the :id contract of the current tenant, writing 404
// when it does not exist.
func (h *ContractHandler) tenantContract(c *gin.Context) *model.Contract {
	contract := h.store.Get(c.Param("id"))
	if contract == nil || contract.Tenant != middleware.GetTenant(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		return nil
	}
	return contract
}
