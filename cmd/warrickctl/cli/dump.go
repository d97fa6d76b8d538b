package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/warrick-io/warrick/internal/storage"
)

func newDumpCommand(open Opener) *cobra.Command {
	var keys []string
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print stored documents as one JSON object keyed by document key",
		Long: `dump prints the raw stored value of every application document, or of
the keys given with --key. Absent documents are omitted. Values that are not
valid JSON are printed as strings.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(keys) == 0 {
				keys = storage.AllKeys()
			}
			return withEnv(cmd, open, func(ctx context.Context, env *Env) error {
				docs, err := loadDocuments(ctx, env.Store, keys)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), docs)
			})
		},
	}
	cmd.Flags().StringSliceVarP(&keys, "key", "k", nil, "document key to include (repeatable)")
	return cmd
}

func loadDocuments(ctx context.Context, store storage.Reader, keys []string) (map[string]json.RawMessage, error) {
	var mu sync.Mutex
	docs := make(map[string]json.RawMessage, len(keys))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, key := range keys {
		g.Go(func() error {
			raw, ok, err := store.Get(gctx, key)
			if err != nil {
				return fmt.Errorf("dump %s: %w", key, err)
			}
			if !ok {
				return nil
			}
			if !json.Valid(raw) {
				if raw, err = json.Marshal(string(raw)); err != nil {
					return err
				}
			}
			mu.Lock()
			docs[key] = raw
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}
