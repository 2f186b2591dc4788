package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brodyboswell/study-planner-syllabus-beta/internal/domain"
)

var weekdayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func parseWeekday(raw string) (int, error) {
	for i, name := range weekdayNames {
		if strings.EqualFold(raw, name) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("invalid weekday %q, want Mon..Sun", raw)
}

// parseClock turns "HH:MM" into minutes since midnight.
func parseClock(raw string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(raw, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q, want HH:MM", raw)
	}
	if h < 0 || h > 24 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q, want HH:MM", raw)
	}
	return h*60 + m, nil
}

func newAvailCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "avail",
		Short: "Manage weekly availability blocks",
	}
	cmd.AddCommand(
		newAvailAddCmd(app),
		newAvailListCmd(app),
		newAvailRemoveCmd(app),
	)
	return cmd
}

func newAvailAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add WEEKDAY START END",
		Short: "Add a recurring availability window, e.g. avail add Tue 18:00 20:00",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			weekday, err := parseWeekday(args[0])
			if err != nil {
				return err
			}
			start, err := parseClock(args[1])
			if err != nil {
				return err
			}
			end, err := parseClock(args[2])
			if err != nil {
				return err
			}

			b := &domain.AvailabilityBlock{
				UserID:   app.userID,
				Weekday:  weekday,
				StartMin: start,
				EndMin:   end,
			}
			if err := app.Availability.Create(cmd.Context(), b, nil); err != nil {
				return err
			}
			fmt.Fprintf(app.out(), "Added %s %s-%s (%s)\n", args[0], args[1], args[2], shortID(b.ID))
			return nil
		},
	}
}

func newAvailListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List availability blocks",
		RunE: func(cmd *cobra.Command, args []string) error {
			blocks, err := app.Availability.List(cmd.Context(), app.userID)
			if err != nil {
				return err
			}
			if len(blocks) == 0 {
				fmt.Fprintln(app.out(), "No availability defined.")
				return nil
			}
			tw := newTable(app.out())
			fmt.Fprintln(tw, "ID\tDAY\tFROM\tTO")
			for _, b := range blocks {
				fmt.Fprintf(tw, "%s\t%s\t%02d:%02d\t%02d:%02d\n",
					shortID(b.ID), weekdayNames[b.Weekday],
					b.StartMin/60, b.StartMin%60, b.EndMin/60, b.EndMin%60)
			}
			tw.Flush()
			return nil
		},
	}
}

func newAvailRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm ID",
		Short: "Delete an availability block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			blocks, err := app.Availability.List(ctx, app.userID)
			if err != nil {
				return err
			}
			id := args[0]
			for _, b := range blocks {
				if b.ID == id || strings.HasPrefix(b.ID, id) {
					id = b.ID
					break
				}
			}
			if err := app.Availability.Delete(ctx, app.userID, id, nil); err != nil {
				return err
			}
			fmt.Fprintf(app.out(), "Deleted block %s\n", shortID(id))
			return nil
		},
	}
}
