package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/brodyboswell/study-planner-syllabus-beta/internal/contract"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/domain"
)

// newWatchCmd runs a periodic risk sweep so external notification
// workers downstream of the event stream see fresh scores without a
// user-driven command.
func newWatchCmd(app *App) *cobra.Command {
	var every time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Periodically re-score risk until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			if every <= 0 {
				return fmt.Errorf("--every must be positive")
			}

			sweep := func() {
				assessments, err := app.Risk.Assess(cmd.Context(), contract.RiskRequest{UserID: app.userID})
				if err != nil {
					fmt.Fprintf(os.Stderr, "risk sweep failed: %v\n", err)
					return
				}
				high := 0
				for _, a := range assessments {
					if a.Band == domain.RiskHigh {
						high++
					}
				}
				fmt.Fprintf(app.out(), "%s  %d task(s) scored, %d high risk\n",
					time.Now().UTC().Format(time.RFC3339), len(assessments), high)
			}

			c := cron.New()
			if _, err := c.AddFunc(fmt.Sprintf("@every %ds", int(every.Seconds())), sweep); err != nil {
				return fmt.Errorf("scheduling risk sweep: %w", err)
			}

			sweep()
			c.Start()
			defer func() {
				<-c.Stop().Done()
			}()

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			select {
			case <-sig:
			case <-cmd.Context().Done():
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&every, "every", 15*time.Minute, "Sweep interval")

	return cmd
}
