// Package cli implements the warrickctl operator commands.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/warrick-io/warrick/internal/app"
	"github.com/warrick-io/warrick/internal/storage"
)

// Env is what a command runs against.
type Env struct {
	Store    storage.Store
	Services *app.Services
}

// Opener connects an Env. The returned cleanup is called when the command
// finishes.
type Opener func(ctx context.Context) (*Env, func(), error)

// NewRootCommand builds the warrickctl command tree.
func NewRootCommand(open Opener) *cobra.Command {
	root := &cobra.Command{
		Use:   "warrickctl",
		Short: "Inspect Warrick invoicing data",
		Long: `warrickctl reads the Warrick document store selected by STORE_DRIVER
and prints invoices, products and customers. Settings come from the
environment or a .env file in the working directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newInvoicesCommand(open),
		newProductsCommand(open),
		newCustomersCommand(open),
		newDumpCommand(open),
	)
	return root
}

// withEnv opens the store for the duration of run.
func withEnv(cmd *cobra.Command, open Opener, run func(context.Context, *Env) error) error {
	ctx := cmd.Context()
	env, cleanup, err := open(ctx)
	if err != nil {
		return err
	}
	defer cleanup()
	return run(ctx, env)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
