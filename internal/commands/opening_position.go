package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/utils"
)

func newOpeningPositionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "opening-position",
		Short: "Record the one-time opening position of a business",
	}

	var file, businessID, actor string
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Import opening balances and stock from a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("opening %s: %w", file, err)
			}
			defer f.Close()

			req, err := readOpeningPosition(f)
			if err != nil {
				return fmt.Errorf("reading %s: %w", file, err)
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.services.Opening.SubmitOpeningPosition(cmd.Context(), businessID, req, actor)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "recorded %s on %s\n", result.VoucherNumber, result.VoucherDate.Format("2006-01-02"))
			fmt.Fprintf(out, "ledgers: %d  stock: %s  debit: %s  credit: %s\n",
				result.LedgerCount,
				utils.FormatMoney(result.StockValue, a.cfg.DisplayCurrency),
				utils.FormatMoney(result.DebitTotal, a.cfg.DisplayCurrency),
				utils.FormatMoney(result.CreditTotal, a.cfg.DisplayCurrency))
			return nil
		},
	}
	importCmd.Flags().StringVar(&file, "file", "", "YAML file with openingBalances and items (required)")
	importCmd.Flags().StringVar(&businessID, "business", "", "business ID (required)")
	importCmd.Flags().StringVar(&actor, "actor", "cli", "user ID recorded as creator")
	_ = importCmd.MarkFlagRequired("file")
	_ = importCmd.MarkFlagRequired("business")
	cmd.AddCommand(importCmd)

	return cmd
}

// readOpeningPosition decodes a YAML opening position, rejecting unknown keys.
func readOpeningPosition(r io.Reader) (dto.OpeningPositionRequest, error) {
	var req dto.OpeningPositionRequest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&req); err != nil {
		if err == io.EOF {
			return req, fmt.Errorf("file is empty")
		}
		return req, err
	}
	return req, nil
}
