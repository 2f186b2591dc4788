package cli

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/brodyboswell/study-planner-syllabus-beta/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Tasks        service.TaskService
	Availability service.AvailabilityService
	Syllabi      service.SyllabusService
	Schedule     service.ScheduleService
	Risk         service.RiskService
	Recommend    service.RecommendService
	Profiles     service.ProfileService

	Out io.Writer

	// userID is bound to the persistent --user flag.
	userID string
}

func (a *App) out() io.Writer {
	if a.Out != nil {
		return a.Out
	}
	return os.Stdout
}

// Interactive reports whether stdout is a terminal; piped output skips
// decorative headers.
func Interactive() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// NewRootCmd creates the top-level "studyplanner" command and registers
// all subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "studyplanner",
		Short:         "Deadline extraction, weekly scheduling, and risk scoring for study plans",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultUser := os.Getenv("STUDYPLANNER_USER")
	if defaultUser == "" {
		defaultUser = "default"
	}
	root.PersistentFlags().StringVar(&app.userID, "user", defaultUser, "User the command acts for")

	root.AddCommand(
		newTaskCmd(app),
		newAvailCmd(app),
		newSyllabusCmd(app),
		newPlanCmd(app),
		newRiskCmd(app),
		newRecommendCmd(app),
		newProfileCmd(app),
		newWatchCmd(app),
	)

	return root
}
