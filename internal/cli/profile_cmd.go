package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Inspect and tune per-user planner settings",
	}
	cmd.AddCommand(
		newProfileShowCmd(app),
		newProfileSetCmd(app),
	)
	return cmd
}

func newProfileShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective planner profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Profiles.Get(cmd.Context(), app.userID)
			if err != nil {
				return err
			}
			tw := newTable(app.out())
			fmt.Fprintf(tw, "slot granularity\t%d min\n", p.SlotGranularityMin)
			fmt.Fprintf(tw, "auto-accept threshold\t%.2f\n", p.AutoAcceptThreshold)
			fmt.Fprintf(tw, "recompute retry limit\t%d\n", p.RetryLimit)
			fmt.Fprintf(tw, "urgency weight\t%.2f\n", p.W1Urgency)
			fmt.Fprintf(tw, "importance weight\t%.2f\n", p.W2Importance)
			fmt.Fprintf(tw, "effort weight\t%.2f\n", p.W3Effort)
			tw.Flush()
			return nil
		},
	}
}

func newProfileSetCmd(app *App) *cobra.Command {
	var (
		slotMin    int
		autoAccept float64
		retryLimit int
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change planner settings, e.g. profile set --slot-min 60",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := app.Profiles.Get(ctx, app.userID)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("slot-min") {
				p.SlotGranularityMin = slotMin
			}
			if cmd.Flags().Changed("auto-accept") {
				p.AutoAcceptThreshold = autoAccept
			}
			if cmd.Flags().Changed("retry-limit") {
				p.RetryLimit = retryLimit
			}
			if err := app.Profiles.Update(ctx, p); err != nil {
				return err
			}
			fmt.Fprintln(app.out(), "Profile updated.")
			return nil
		},
	}
	cmd.Flags().IntVar(&slotMin, "slot-min", 0, "Slot granularity in minutes")
	cmd.Flags().Float64Var(&autoAccept, "auto-accept", 0, "Confidence threshold for auto-accepting extractions")
	cmd.Flags().IntVar(&retryLimit, "retry-limit", 0, "Recompute retry limit")
	return cmd
}
