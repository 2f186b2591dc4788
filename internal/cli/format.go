package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/brodyboswell/study-planner-syllabus-beta/internal/contract"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/domain"
)

const dateFlagLayout = "2006-01-02"

// parseDateFlag accepts YYYY-MM-DD or a full RFC 3339 timestamp.
func parseDateFlag(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(dateFlagLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", raw)
	}
	// Bare dates mean end of that day, matching how deadlines are read.
	return t.Add(23*time.Hour + 59*time.Minute).UTC(), nil
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func fmtDue(due *time.Time) string {
	if due == nil {
		return "-"
	}
	return due.Format(dateFlagLayout)
}

func fmtMinutes(min *int) string {
	if min == nil {
		return "-"
	}
	return fmt.Sprintf("%dm", *min)
}

func writeTaskTable(w io.Writer, tasks []*domain.Task) {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTITLE\tCOURSE\tTYPE\tDUE\tEST\tSTATUS")
	for _, t := range tasks {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(t.ID), t.Title, valueOrDash(t.Course), t.TaskType,
			fmtDue(t.DueDate), fmtMinutes(t.EstimatedMin), t.Status)
	}
	tw.Flush()
}

func writePlan(w io.Writer, res *contract.RecomputeResult) {
	fmt.Fprintf(w, "Plan v%d for week of %s (%d items)\n",
		res.Plan.Version, res.Plan.WeekStart.Format(dateFlagLayout), len(res.Items))

	tw := newTable(w)
	for _, it := range res.Items {
		fmt.Fprintf(tw, "  %s\t%s - %s\ttask %s\t%s\n",
			it.StartAt.Format("Mon"),
			it.StartAt.Format("15:04"), it.EndAt.Format("15:04"),
			shortID(it.TaskID), it.Source)
	}
	tw.Flush()

	for _, o := range res.Overflow {
		flag := ""
		if o.ExceedsCapacity {
			flag = " (exceeds weekly capacity)"
		}
		fmt.Fprintf(w, "  overflow: %q needs %dm more%s\n", o.Title, o.RemainingMin, flag)
	}
	for _, warn := range res.Warnings {
		fmt.Fprintf(w, "  warning: %s\n", warn)
	}
}

func writeRisk(w io.Writer, assessments []contract.RiskAssessment) {
	tw := newTable(w)
	fmt.Fprintln(tw, "TASK\tSCORE\tBAND\tWHY")
	for _, a := range assessments {
		var reasons []string
		for _, r := range a.Reasons {
			reasons = append(reasons, r.Message)
		}
		fmt.Fprintf(tw, "%s\t%.2f\t%s\t%s\n",
			a.Title, a.Score, strings.ToUpper(string(a.Band)), strings.Join(reasons, "; "))
	}
	tw.Flush()
}

func valueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
