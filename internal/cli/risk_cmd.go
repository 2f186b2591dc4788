package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brodyboswell/study-planner-syllabus-beta/internal/contract"
)

func newRiskCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "risk",
		Short: "Score open tasks by deadline-miss risk",
		RunE: func(cmd *cobra.Command, args []string) error {
			assessments, err := app.Risk.Assess(cmd.Context(), contract.RiskRequest{UserID: app.userID})
			if err != nil {
				return err
			}
			if len(assessments) == 0 {
				fmt.Fprintln(app.out(), "No open tasks to score.")
				return nil
			}
			writeRisk(app.out(), assessments)
			return nil
		},
	}
}

func newRecommendCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "recommend",
		Short: "Suggest the next best planning moves",
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := app.Recommend.Recommend(cmd.Context(), contract.RecommendRequest{UserID: app.userID})
			if err != nil {
				return err
			}
			for i, r := range recs {
				fmt.Fprintf(app.out(), "%d. %s\n", i+1, r.Message)
			}
			return nil
		},
	}
}
