// Package cli holds the orcamento command tree: "serve" runs the web form,
// "quote" renders a single PDF from flags.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"sst-facil/orcamento/internal/app"
	"sst-facil/orcamento/internal/app/config"
	"sst-facil/orcamento/internal/domain/quote"
	"sst-facil/orcamento/internal/domain/quote/pdf"
)

func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "orcamento",
		Short:        "SST Fácil quote generator",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCommand(), newQuoteCommand())
	return root
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the quote form over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return app.Run(cfg)
		},
	}
}

type quoteFlags struct {
	client quote.Client
	size   string
	outDir string
}

func newQuoteCommand() *cobra.Command {
	var f quoteFlags
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Render one quote PDF into a directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			path, err := writeQuote(cmd.Context(), cfg, f)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.client.CNPJ, "cnpj", "", "company tax ID (CNPJ)")
	fl.StringVar(&f.client.LegalName, "razao", "", "company legal name")
	fl.StringVar(&f.client.City, "cidade", "", "company city")
	fl.IntVar(&f.client.Employees, "funcionarios", 1, "number of employees")
	fl.StringVar(&f.size, "porte", string(quote.SizeMEI), "company size: MEI, ME, EPP or Outros")
	fl.BoolVar(&f.client.ESocial, "esocial", false, "include the ESOCIAL service")
	fl.StringVarP(&f.outDir, "out", "o", ".", "output directory")
	return cmd
}

func writeQuote(ctx context.Context, cfg config.Config, f quoteFlags) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	size, err := quote.ParseSize(f.size)
	if err != nil {
		return "", err
	}
	client := f.client
	client.Size = size
	if err := client.Validate(); err != nil {
		return "", err
	}

	log := app.NewLogger(cfg)
	tbl, err := app.LoadPricing(ctx, cfg, log)
	if err != nil {
		return "", err
	}

	q := quote.NewCalculator(tbl, cfg.WaivedCity, log).Calculate(client)
	out, err := app.NewGenerator(cfg, log).Generate(q)
	if err != nil {
		return "", fmt.Errorf("render pdf: %w", err)
	}

	path := filepath.Join(f.outDir, pdf.FileName(client.CNPJ))
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
