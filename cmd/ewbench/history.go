package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-bench/internal/store"
	"github.com/cwbudde/algo-bench/report"
	"github.com/cwbudde/algo-bench/suite"
)

// historyStore is the part of store.Store the CLI uses.
type historyStore interface {
	Save(ctx context.Context, rep suite.Report) (int64, error)
	List(ctx context.Context, limit int) ([]store.RunRecord, error)
	Latest(ctx context.Context) (store.RunRecord, error)
	Close() error
}

func newHistoryCmd(a *app) *cobra.Command {
	var (
		limit  int
		latest bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List suite reports recorded with --db",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.DB == "" {
				return errors.New("no history database configured (use --db or EWBENCH_DB)")
			}
			st, err := openStore(a.cfg.DB)
			if err != nil {
				return err
			}
			defer st.Close()

			if latest {
				run, err := st.Latest(contextOf(cmd))
				if errors.Is(err, store.ErrNotFound) {
					return report.WriteHistory(cmd.OutOrStdout(), nil)
				}
				if err != nil {
					return err
				}
				return report.WriteHistory(cmd.OutOrStdout(), []store.RunRecord{run})
			}

			runs, err := st.List(contextOf(cmd), limit)
			if err != nil {
				return err
			}
			return report.WriteHistory(cmd.OutOrStdout(), runs)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "number of runs to show")
	cmd.Flags().BoolVar(&latest, "latest", false, "show only the most recent run")
	cmd.Flags().String("db", "", "SQLite history file")

	return cmd
}
