package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/agriance/contractgen/contract"
	"github.com/agriance/contractgen/document"
	"github.com/agriance/contractgen/model"
	"github.com/agriance/contractgen/service"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

type generateOptions struct {
	out      string
	xlsx     bool
	extended bool
	blank    bool
	fields   map[string]*string
	methods  []string
}

// flagName is the command line spelling of a field key.
func flagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

func newGenerateCmd(a *app) *cobra.Command {
	opts := &generateOptions{fields: make(map[string]*string)}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a contract PDF from flags",
		Long: `Generate a contract PDF. Every field flag overrides the matching value of
the built-in sample contract, so

  contractgen generate --crop-name Rice --quantity 40

produces the sample agreement for 40 quintals of rice. Repeat
--farming-methods to list several methods.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, a, opts)
		},
	}

	for _, key := range model.Fields {
		if key == model.FieldFarmingMethods {
			continue
		}
		opts.fields[key] = cmd.Flags().String(flagName(key), "", model.DisplayName(key))
	}
	cmd.Flags().StringArrayVar(&opts.methods, flagName(model.FieldFarmingMethods), nil, "farming method (repeatable)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output directory (default from config)")
	cmd.Flags().BoolVar(&opts.xlsx, "xlsx", false, "also write the summary workbook")
	cmd.Flags().BoolVar(&opts.extended, "extended", false, "add the Governing Law and Entire Agreement clauses")
	cmd.Flags().BoolVar(&opts.blank, "blank", false, "start from an empty contract instead of the sample")
	return cmd
}

// overrides collects the field flags that were set explicitly.
func (o *generateOptions) overrides(cmd *cobra.Command) model.RawInput {
	in := model.RawInput{}
	for key, v := range o.fields {
		if cmd.Flags().Changed(flagName(key)) {
			in.Set(key, *v)
		}
	}
	if cmd.Flags().Changed(flagName(model.FieldFarmingMethods)) {
		in.Set(model.FieldFarmingMethods, o.methods...)
	}
	return in
}

func runGenerate(cmd *cobra.Command, a *app, opts *generateOptions) error {
	gen, err := a.generator(opts.extended)
	if err != nil {
		return err
	}

	base := document.SampleInput()
	if opts.blank {
		base = model.RawInput{}
	}
	res, err := gen.GenerateInput(cmd.Context(), base.Merge(opts.overrides(cmd)))
	if err != nil {
		return err
	}

	dir := opts.out
	if dir == "" {
		dir = a.cfg.Document.OutputDir
	}
	paths, err := writeOutputs(dir, res, opts.xlsx)
	if err != nil {
		return err
	}

	printSummary(cmd.OutOrStdout(), res, paths)
	return nil
}

// writeOutputs writes the PDF, and the workbook when asked, into dir.
func writeOutputs(dir string, res *document.Result, xlsx bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	pdfPath := filepath.Join(dir, res.Filename)
	if err := os.WriteFile(pdfPath, res.PDF, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write contract: %w", err)
	}
	paths := []string{pdfPath}

	if xlsx {
		data, err := service.SummaryWorkbook(res)
		if err != nil {
			return nil, err
		}
		xlsxPath := filepath.Join(dir, service.SummaryFilename(res.ContractNumber))
		if err := os.WriteFile(xlsxPath, data, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write summary: %w", err)
		}
		paths = append(paths, xlsxPath)
	}
	return paths, nil
}

func printSummary(w io.Writer, res *document.Result, paths []string) {
	rec := res.Record
	fmt.Fprintln(w, titleStyle.Render("AGRIANCE CONTRACT GENERATOR"))
	fmt.Fprintf(w, "Contract:        %s\n", rec.ContractNumber)
	fmt.Fprintf(w, "Crop:            %s, %d Q x %s = %s\n", rec.CropName, rec.Quantity, contract.FormatMoney(rec.Price), contract.FormatMoney(rec.TotalValue))
	fmt.Fprintf(w, "Farmer:          %s\n", rec.Farmer.Name)
	fmt.Fprintf(w, "Business:        %s\n", rec.Business.Name)
	fmt.Fprintf(w, "Farming Methods: %s\n", strings.Join(rec.Methods(), ", "))
	fmt.Fprintf(w, "Pages:           %d (%s)\n", res.Pages, humanize.Bytes(uint64(len(res.PDF))))
	for _, warning := range rec.Warnings {
		fmt.Fprintln(w, warnStyle.Render("warning: "+warning))
	}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = p
		}
		fmt.Fprintln(w, successStyle.Render("Saved as: "+abs))
	}
}
