package cmd

import (
	"fmt"

	"github.com/princinho/stonevitrine/utils"
	"github.com/spf13/cobra"
)

var (
	overwritePassword bool

	adminCmd = &cobra.Command{
		Use:   "admin",
		Short: "Manage the back-office account",
	}

	adminSyncCmd = &cobra.Command{
		Use:   "sync",
		Short: "Create the ADMIN_USER account, optionally resetting its password to ADMIN_PASS",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			stores, closeStores, err := openStores(ctx)
			if err != nil {
				return err
			}
			defer closeStores()

			created, err := utils.SyncAdminUser(ctx, stores.Users, cfg.AdminUser, cfg.AdminPass, overwritePassword)
			if err != nil {
				return err
			}
			switch {
			case created:
				fmt.Fprintf(cmd.OutOrStdout(), "admin %q created\n", cfg.AdminUser)
			case overwritePassword:
				fmt.Fprintf(cmd.OutOrStdout(), "admin %q password reset\n", cfg.AdminUser)
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "admin %q already exists\n", cfg.AdminUser)
			}
			return nil
		},
	}
)

func init() {
	adminSyncCmd.Flags().BoolVar(&overwritePassword, "reset-password", false, "overwrite the stored password with ADMIN_PASS")
	adminCmd.AddCommand(adminSyncCmd)
}
