package commands

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/utils"
)

func newReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print financial reports",
	}

	var businessID, from, to string
	trialBalance := &cobra.Command{
		Use:   "trial-balance",
		Short: "Print the trial balance of a business",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fromDate, err := dto.ParseOptionalDate("from", &from)
			if err != nil {
				return err
			}
			toDate := time.Now().UTC().Truncate(24 * time.Hour)
			if to != "" {
				if toDate, err = dto.ParseDate("to", to); err != nil {
					return err
				}
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			tb, err := a.services.Reporting.TrialBalance(cmd.Context(), businessID, fromDate, toDate)
			if err != nil {
				return err
			}
			return printTrialBalance(cmd.OutOrStdout(), *tb, a.cfg.DisplayCurrency)
		},
	}
	trialBalance.Flags().StringVar(&businessID, "business", "", "business ID (required)")
	trialBalance.Flags().StringVar(&from, "from", "", "start of the movement period (YYYY-MM-DD)")
	trialBalance.Flags().StringVar(&to, "to", "", "report date (YYYY-MM-DD), defaults to today")
	_ = trialBalance.MarkFlagRequired("business")
	cmd.AddCommand(trialBalance)

	return cmd
}

func printTrialBalance(out io.Writer, tb domain.TrialBalance, currency string) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "Trial balance as of %s\t\t\t\n", tb.To.Format(domain.DateLayout))
	fmt.Fprintln(w, "Code\tAccount\tDebit\tCredit\t")
	for _, row := range tb.Rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", row.Code, row.Name,
			utils.FormatMoney(row.Debit, currency), utils.FormatMoney(row.Credit, currency))
	}
	fmt.Fprintf(w, "\tTotal\t%s\t%s\t\n",
		utils.FormatMoney(tb.TotalDebit, currency), utils.FormatMoney(tb.TotalCredit, currency))
	if !tb.IsBalanced() {
		fmt.Fprintf(w, "\tDifference\t%s\t\t\n", utils.FormatMoney(tb.Difference, currency))
	}
	return w.Flush()
}
