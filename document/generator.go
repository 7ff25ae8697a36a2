// Package document assembles contract records into paginated PDF
// documents.
package document

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/agriance/contractgen/contract"
	"github.com/agriance/contractgen/model"
	"github.com/agriance/contractgen/pkg/canvas"
	"github.com/agriance/contractgen/pkg/layout"
	"github.com/agriance/contractgen/pkg/logger"
	"github.com/agriance/contractgen/pkg/textflow"
)

// TimestampLayout formats the generation time on the footer and in the
// Entire Agreement clause.
const TimestampLayout = "02-01-2006 at 15:04:05"

const subtitle = "Agricultural Produce Purchase Contract"

// Result is one generated contract.
type Result struct {
	ContractNumber string                 `json:"contract_number"`
	Filename       string                 `json:"filename"`
	PDF            []byte                 `json:"-"`
	Pages          int                    `json:"pages"`
	GeneratedAt    time.Time              `json:"generated_at"`
	Record         model.ContractRecord   `json:"record"`
	Clauses        []model.Clause         `json:"clauses"`
	Schedule       []contract.Installment `json:"schedule"`
}

// Options configures a Generator. Zero values select the defaults.
type Options struct {
	Platform     string
	Variant      contract.Variant
	Installments []contract.InstallmentFormula
	Normalizer   *contract.Normalizer
	Measurer     textflow.Measurer
	// NewBackend returns the serializer for one document.
	NewBackend func() canvas.Backend
}

// Generator runs the normalize, compose, layout and render pipeline. It
// holds no per-document state and is safe for concurrent use.
type Generator struct {
	opts      Options
	scheduler *contract.Scheduler
}

// NewGenerator validates opts and compiles the payment formulas.
func NewGenerator(opts Options) (*Generator, error) {
	if opts.Platform == "" {
		opts.Platform = DefaultPlatform
	}
	if opts.Variant == "" {
		opts.Variant = contract.VariantStandard
	}
	if opts.Normalizer == nil {
		opts.Normalizer = contract.NewNormalizer()
	}
	if opts.Measurer == nil {
		opts.Measurer = textflow.Helvetica
	}
	if opts.NewBackend == nil {
		opts.NewBackend = func() canvas.Backend { return canvas.NewFPDFBackend() }
	}
	scheduler, err := contract.NewScheduler(opts.Installments)
	if err != nil {
		return nil, fmt.Errorf("failed to compile payment schedule: %w", err)
	}
	return &Generator{opts: opts, scheduler: scheduler}, nil
}

// Variant returns the clause variant documents are built with.
func (g *Generator) Variant() contract.Variant { return g.opts.Variant }

// Normalize validates raw input with the generator's normalizer.
func (g *Generator) Normalize(in model.RawInput) (model.ContractRecord, error) {
	return g.opts.Normalizer.Normalize(in)
}

// GenerateInput normalizes in and generates the document, stamped with the
// normalizer's clock.
func (g *Generator) GenerateInput(ctx context.Context, in model.RawInput) (*Result, error) {
	rec, err := g.Normalize(in)
	if err != nil {
		return nil, err
	}
	now := time.Now
	if g.opts.Normalizer.Now != nil {
		now = g.opts.Normalizer.Now
	}
	return g.Generate(ctx, rec, now())
}

// Generate renders rec. The output depends only on rec, generatedAt and the
// generator options, so re-rendering a stored record reproduces the same
// bytes. Layout and render failures are returned unwrapped.
func (g *Generator) Generate(ctx context.Context, rec model.ContractRecord, generatedAt time.Time) (*Result, error) {
	stamp := generatedAt.Format(TimestampLayout)
	clauses := contract.BuildClauses(rec, stamp, g.opts.Variant)
	schedule, err := g.scheduler.Schedule(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to compute payment schedule: %w", err)
	}

	meta := canvas.Metadata{
		Title:     "Contract " + rec.ContractNumber,
		Subject:   fmt.Sprintf("%s purchase contract between %s and %s", rec.CropName, rec.Farmer.Name, rec.Business.Name),
		Author:    g.opts.Platform,
		Creator:   "contractgen",
		CreatedAt: generatedAt,
	}
	c := canvas.New(canvas.A4, meta, g.opts.NewBackend(), g.opts.Measurer)
	engine := layout.NewEngine(c, pageTemplate{
		geometry:    canvas.A4,
		subtitle:    subtitle,
		platform:    g.opts.Platform,
		generatedAt: stamp,
	})
	if err := engine.Add(Compose(rec, clauses, schedule)...); err != nil {
		return nil, err
	}
	pdf, err := engine.Finish()
	if err != nil {
		return nil, err
	}

	logger.Info(logger.WithContract(ctx, rec.ContractNumber), "contract generated",
		"variant", string(g.opts.Variant),
		"pages", c.PageCount(),
		"bytes", len(pdf),
	)
	return &Result{
		ContractNumber: rec.ContractNumber,
		Filename:       Filename(rec.ContractNumber),
		PDF:            pdf,
		Pages:          c.PageCount(),
		GeneratedAt:    generatedAt,
		Record:         rec,
		Clauses:        clauses,
		Schedule:       schedule,
	}, nil
}

var filenameReplacer = strings.NewReplacer("/", "_", "\\", "_", " ", "_", ":", "_", "\"", "")

// Filename is the download name of a contract, "Contract_<number>.pdf".
func Filename(contractNumber string) string {
	return "Contract_" + filenameReplacer.Replace(contractNumber) + ".pdf"
}
