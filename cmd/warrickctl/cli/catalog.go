package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newProductsCommand(open Opener) *cobra.Command {
	cmd := &cobra.Command{Use: "products", Short: "Inspect the product catalog"}

	var query string
	list := &cobra.Command{
		Use:   "list",
		Short: "List products with stock levels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, open, func(ctx context.Context, env *Env) error {
				products, err := env.Services.Catalog.Search(ctx, query)
				if err != nil {
					return err
				}
				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintln(tw, "ID\tNAME\tPRICE\tSTOCK")
				for _, p := range products {
					fmt.Fprintf(tw, "%s\t%s\t%.2f\t%d\n", p.ID, p.Name, p.Price, p.Stock)
				}
				return tw.Flush()
			})
		},
	}
	list.Flags().StringVarP(&query, "query", "q", "", "match name or description")
	cmd.AddCommand(list)
	return cmd
}

func newCustomersCommand(open Opener) *cobra.Command {
	cmd := &cobra.Command{Use: "customers", Short: "Inspect the customer directory"}

	var query string
	list := &cobra.Command{
		Use:   "list",
		Short: "List customers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, open, func(ctx context.Context, env *Env) error {
				customers, err := env.Services.Directory.Search(ctx, query)
				if err != nil {
					return err
				}
				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintln(tw, "ID\tNAME\tPHONE\tADDRESS")
				for _, c := range customers {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Phone, c.Address)
				}
				return tw.Flush()
			})
		},
	}
	list.Flags().StringVarP(&query, "query", "q", "", "match name or phone")
	cmd.AddCommand(list)
	return cmd
}
