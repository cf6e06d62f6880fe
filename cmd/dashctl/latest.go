package main

import (
	"errors"
	"fmt"

	"github.com/rogerio-castellano/store-analytics/internal/app"
	"github.com/rogerio-castellano/store-analytics/internal/dashboard"
	"github.com/rogerio-castellano/store-analytics/internal/redissvc"
	"github.com/spf13/cobra"
)

func newLatestCmd(c *cli) *cobra.Command {
	var (
		id     string
		output string
	)
	cmd := &cobra.Command{
		Use:   "latest",
		Short: "Print the latest snapshot published to Redis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			store, err := app.OpenSnapshotStore(cmd.Context(), c.cfg.Redis)
			if err != nil {
				return err
			}
			defer store.Rdb().Close()

			var snap *dashboard.Snapshot
			if id != "" {
				snap, err = store.Get(cmd.Context(), id)
			} else {
				snap, err = store.Latest(cmd.Context())
			}
			if errors.Is(err, redissvc.ErrNoSnapshot) {
				return fmt.Errorf("nothing published under %q yet: %w", store.Channel(), err)
			}
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), output, snap)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Snapshot id instead of the latest one")
	cmd.Flags().StringVarP(&output, "output", "o", outputJSON, "Output format: json or yaml")
	return cmd
}
