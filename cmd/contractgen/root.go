package main

import (
	"fmt"

	"github.com/agriance/contractgen/config"
	"github.com/agriance/contractgen/contract"
	"github.com/agriance/contractgen/document"
	"github.com/agriance/contractgen/pkg/logger"
	"github.com/spf13/cobra"
)

// app carries state shared by the subcommands once flags are parsed.
type app struct {
	configPath string
	logLevel   string
	cfg        *config.Config
	// newGenerator is swapped in tests to pin the clock and contract IDs.
	newGenerator func(opts document.Options) (*document.Generator, error)
	open         func(path string) error
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(&app{newGenerator: document.NewGenerator, open: openFile})
}

func newRootCmdWith(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "contractgen",
		Short: "Generate agricultural purchase contracts as PDF",
		Long: `contractgen turns contract details into a paginated PDF agreement between
a farmer (Party A) and a buyer (Party B).

Available subcommands:
  generate    - build a contract from flags merged onto the sample contract
  interactive - fill in the contract details in a terminal form`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "config.yaml", "config file; defaults apply when it does not exist")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides the config file")

	root.AddCommand(newGenerateCmd(a))
	root.AddCommand(newInteractiveCmd(a))
	return root
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.LoadOrDefault(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	level := cfg.Log.Level
	if a.logLevel != "" {
		level = a.logLevel
	}
	logger.Init(&logger.Config{
		Level:  level,
		Format: cfg.Log.Format,
		Output: cmd.ErrOrStderr(),
	})
	a.cfg = cfg
	return nil
}

// generator builds the document generator from the config; extended
// forces the 12-clause variant.
func (a *app) generator(extended bool) (*document.Generator, error) {
	variant, err := contract.ParseVariant(a.cfg.Document.Variant)
	if err != nil {
		return nil, err
	}
	if extended {
		variant = contract.VariantExtended
	}
	return a.newGenerator(document.Options{
		Platform:     a.cfg.Document.Platform,
		Variant:      variant,
		Installments: a.cfg.Document.Installments,
	})
}
