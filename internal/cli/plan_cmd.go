package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/brodyboswell/study-planner-syllabus-beta/internal/contract"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/domain"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute and inspect weekly schedule plans",
	}
	cmd.AddCommand(
		newPlanRecomputeCmd(app),
		newPlanShowCmd(app),
		newPlanVersionsCmd(app),
		newPlanPinCmd(app),
	)
	return cmd
}

// weekFlagOrNow resolves the --week flag, defaulting to the current week.
func weekFlagOrNow(week string) (time.Time, error) {
	if week == "" {
		return domain.WeekStart(time.Now().UTC()), nil
	}
	t, err := time.Parse(dateFlagLayout, week)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid week %q, want YYYY-MM-DD", week)
	}
	return domain.WeekStart(t), nil
}

func newPlanRecomputeCmd(app *App) *cobra.Command {
	var week string

	cmd := &cobra.Command{
		Use:   "recompute",
		Short: "Compute the next plan version for a week",
		RunE: func(cmd *cobra.Command, args []string) error {
			weekStart, err := weekFlagOrNow(week)
			if err != nil {
				return err
			}
			res, err := app.Schedule.Recompute(cmd.Context(), contract.RecomputeRequest{
				UserID:    app.userID,
				WeekStart: weekStart,
				Trigger:   contract.TriggerManual,
			})
			if err != nil {
				return err
			}
			writePlan(app.out(), res)
			return nil
		},
	}

	cmd.Flags().StringVar(&week, "week", "", "Any date inside the target week (YYYY-MM-DD)")

	return cmd
}

func newPlanShowCmd(app *App) *cobra.Command {
	var week string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current plan for a week",
		RunE: func(cmd *cobra.Command, args []string) error {
			weekStart, err := weekFlagOrNow(week)
			if err != nil {
				return err
			}
			plan, items, err := app.Schedule.GetCurrent(cmd.Context(), app.userID, weekStart)
			if err != nil {
				return err
			}
			writePlan(app.out(), &contract.RecomputeResult{Plan: plan, Items: items})
			return nil
		},
	}

	cmd.Flags().StringVar(&week, "week", "", "Any date inside the target week (YYYY-MM-DD)")

	return cmd
}

func newPlanVersionsCmd(app *App) *cobra.Command {
	var week string

	cmd := &cobra.Command{
		Use:   "versions",
		Short: "List plan versions for a week",
		RunE: func(cmd *cobra.Command, args []string) error {
			weekStart, err := weekFlagOrNow(week)
			if err != nil {
				return err
			}
			plans, err := app.Schedule.ListVersions(cmd.Context(), app.userID, weekStart)
			if err != nil {
				return err
			}
			if len(plans) == 0 {
				fmt.Fprintln(app.out(), "No plans for that week.")
				return nil
			}
			tw := newTable(app.out())
			fmt.Fprintln(tw, "VERSION\tCREATED\tID")
			for _, p := range plans {
				fmt.Fprintf(tw, "v%d\t%s\t%s\n", p.Version, p.CreatedAt.Format(time.RFC3339), shortID(p.ID))
			}
			tw.Flush()
			return nil
		},
	}

	cmd.Flags().StringVar(&week, "week", "", "Any date inside the target week (YYYY-MM-DD)")

	return cmd
}

func newPlanPinCmd(app *App) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "pin TASK",
		Short: "Pin a task to a fixed time range, e.g. plan pin abc123 --from 2026-09-01T18:00:00Z --to 2026-09-01T19:00:00Z",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			taskID, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			start, err := time.Parse(time.RFC3339, from)
			if err != nil {
				return fmt.Errorf("invalid --from %q: %w", from, err)
			}
			end, err := time.Parse(time.RFC3339, to)
			if err != nil {
				return fmt.Errorf("invalid --to %q: %w", to, err)
			}

			res, err := app.Schedule.AddManualItem(ctx, contract.ManualItemRequest{
				UserID:  app.userID,
				TaskID:  taskID,
				StartAt: start,
				EndAt:   end,
			})
			if err != nil {
				return err
			}
			writePlan(app.out(), res)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Start timestamp (RFC 3339)")
	cmd.Flags().StringVar(&to, "to", "", "End timestamp (RFC 3339)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
