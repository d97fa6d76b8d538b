package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/warrick-io/warrick/internal/ledger"
)

func newInvoicesCommand(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoices",
		Short: "List and inspect invoices",
	}

	var window, query string
	list := &cobra.Command{
		Use:   "list",
		Short: "List invoices, newest first",
		Example: `  warrickctl invoices list --window 7d
  warrickctl invoices list --query rahim`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, err := ledger.ParseWindow(window)
			if err != nil {
				return err
			}
			return withEnv(cmd, open, func(ctx context.Context, env *Env) error {
				invoices, err := env.Services.Ledger.List(ctx, w, query)
				if err != nil {
					return err
				}
				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintln(tw, "NUMBER\tDATE\tCUSTOMER\tSTATUS\tTOTAL")
				for _, inv := range invoices {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s%.2f\n",
						inv.InvoiceNumber, inv.Date, inv.Customer.Name, inv.Status,
						ledger.CurrencySymbol(inv.Currency), inv.Totals().Total)
				}
				return tw.Flush()
			})
		},
	}
	list.Flags().StringVarP(&window, "window", "w", "all", "time window: all, 1h, 24h, 7d, 15d, 30d, 6m, 1y")
	list.Flags().StringVarP(&query, "query", "q", "", "match customer, contact, number or date")

	next := &cobra.Command{
		Use:   "next-number",
		Short: "Print the number the next invoice will receive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, open, func(ctx context.Context, env *Env) error {
				number, err := env.Services.Ledger.NextInvoiceNumber(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), number)
				return nil
			})
		},
	}

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Print one invoice with its totals as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, open, func(ctx context.Context, env *Env) error {
				inv, err := env.Services.Ledger.Get(ctx, args[0])
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), struct {
					ledger.Invoice
					Totals ledger.Totals `json:"totals"`
				}{inv, inv.Totals()})
			})
		},
	}

	cmd.AddCommand(list, next, show)
	return cmd
}
