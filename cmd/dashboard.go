package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/princinho/stonevitrine/client"
	"github.com/spf13/cobra"
)

var (
	dashboardJSON bool

	dashboardCmd = &cobra.Command{
		Use:   "dashboard",
		Short: "Print the back-office counters from a running API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			c := client.New(cfg.APIBaseURL, 10*time.Second)
			if err := c.Login(ctx, cfg.AdminUser, cfg.AdminPass); err != nil {
				return fmt.Errorf("login: %w", err)
			}
			d, err := c.Dashboard(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if dashboardJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(d)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "Projects\t%d\n", d.Projects)
			fmt.Fprintf(tw, "Collections\t%d\n", d.Collections)
			fmt.Fprintf(tw, "Expertise\t%d\n", d.Expertise)
			fmt.Fprintf(tw, "Team\t%d\n", d.Team)
			fmt.Fprintf(tw, "Testimonials\t%d (%d pending)\n", d.Testimonials, d.PendingTestimonials)
			fmt.Fprintf(tw, "Messages\t%d (%d unread)\n", d.Messages, d.UnreadMessages)
			for _, m := range d.RecentMessages {
				fmt.Fprintf(tw, "  %s\t%s <%s>: %s\n", m.CreatedAt.Format("2006-01-02"), m.Name, m.Email, m.Subject)
			}
			return tw.Flush()
		},
	}
)

func init() {
	dashboardCmd.Flags().BoolVar(&dashboardJSON, "json", false, "print as JSON")
}
