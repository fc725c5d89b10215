package cmd

import (
	"context"
	"fmt"

	"github.com/princinho/stonevitrine/jobs"
	"github.com/spf13/cobra"
)

var (
	forceReport bool

	reportCmd = &cobra.Command{
		Use:   "report",
		Short: "Send the weekly activity report now",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			stores, closeStores, err := openStores(ctx)
			if err != nil {
				return err
			}
			defer closeStores()

			sent, err := jobs.NewWeeklyReporter(stores, newNotifier(), cfg.EmailUser).Run(ctx, forceReport)
			if err != nil {
				return err
			}
			if !sent {
				fmt.Fprintln(cmd.OutOrStdout(), "weekly report disabled in settings, use --force to send anyway")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "weekly report sent")
			return nil
		},
	}
)

func init() {
	reportCmd.Flags().BoolVar(&forceReport, "force", false, "send even when the weekly report is disabled in settings")
}
