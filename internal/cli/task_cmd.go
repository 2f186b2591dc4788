package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brodyboswell/study-planner-syllabus-beta/internal/domain"
)

// resolveTaskID matches an exact ID or a unique ID prefix.
func resolveTaskID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("task ID is required")
	}
	tasks, err := app.Tasks.List(ctx, app.userID)
	if err != nil {
		return "", err
	}
	for _, t := range tasks {
		if t.ID == input {
			return t.ID, nil
		}
	}
	var matches []string
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, input) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("task not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("task ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}
	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskUpdateCmd(app),
		newTaskDoneCmd(app),
		newTaskRemoveCmd(app),
	)
	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var course, desc, taskType, due string
	var estimate, importance int

	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Create a new task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := &domain.Task{
				UserID:      app.userID,
				Title:       args[0],
				Course:      course,
				Description: desc,
				TaskType:    domain.ItemType(taskType),
			}
			if due != "" {
				d, err := parseDateFlag(due)
				if err != nil {
					return err
				}
				t.DueDate = &d
			}
			if cmd.Flags().Changed("estimate") {
				t.EstimatedMin = &estimate
			}
			if cmd.Flags().Changed("importance") {
				t.Importance = &importance
			}

			if err := app.Tasks.Create(cmd.Context(), t); err != nil {
				return err
			}
			fmt.Fprintf(app.out(), "Created task %s (%s)\n", t.Title, shortID(t.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&course, "course", "", "Course the task belongs to")
	cmd.Flags().StringVar(&desc, "desc", "", "Free-form description")
	cmd.Flags().StringVar(&taskType, "type", "other", "Task type (assignment|exam|reading|other)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&estimate, "estimate", 0, "Estimated effort in minutes")
	cmd.Flags().IntVar(&importance, "importance", 0, "Importance 1-5")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := app.Tasks.List(cmd.Context(), app.userID)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Fprintln(app.out(), "No tasks found.")
				return nil
			}
			writeTaskTable(app.out(), tasks)
			return nil
		},
	}
}

func newTaskUpdateCmd(app *App) *cobra.Command {
	var title, course, desc, taskType, due, status string
	var estimate, importance int

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			t, err := app.Tasks.GetByID(ctx, app.userID, id)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("title") {
				t.Title = title
			}
			if cmd.Flags().Changed("course") {
				t.Course = course
			}
			if cmd.Flags().Changed("desc") {
				t.Description = desc
			}
			if cmd.Flags().Changed("type") {
				t.TaskType = domain.ItemType(taskType)
			}
			if cmd.Flags().Changed("due") {
				if due == "" {
					t.DueDate = nil
				} else {
					d, err := parseDateFlag(due)
					if err != nil {
						return err
					}
					t.DueDate = &d
				}
			}
			if cmd.Flags().Changed("estimate") {
				t.EstimatedMin = &estimate
			}
			if cmd.Flags().Changed("importance") {
				t.Importance = &importance
			}
			if cmd.Flags().Changed("status") {
				t.Status = domain.TaskStatus(status)
			}

			if err := app.Tasks.Update(ctx, t); err != nil {
				return err
			}
			fmt.Fprintf(app.out(), "Updated task %s\n", shortID(t.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&course, "course", "", "New course")
	cmd.Flags().StringVar(&desc, "desc", "", "New description")
	cmd.Flags().StringVar(&taskType, "type", "", "New task type")
	cmd.Flags().StringVar(&due, "due", "", "New due date (YYYY-MM-DD, empty clears)")
	cmd.Flags().IntVar(&estimate, "estimate", 0, "New estimated effort in minutes")
	cmd.Flags().IntVar(&importance, "importance", 0, "New importance 1-5")
	cmd.Flags().StringVar(&status, "status", "", "New status (pending|in_progress|done)")

	return cmd
}

func newTaskDoneCmd(app *App) *cobra.Command {
	var minutes int

	cmd := &cobra.Command{
		Use:   "done ID",
		Short: "Mark a task done and record its outcome",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			t, err := app.Tasks.MarkDone(ctx, app.userID, id, minutes, nil)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.out(), "Done: %s\n", t.Title)
			return nil
		},
	}

	cmd.Flags().IntVar(&minutes, "minutes", 0, "Minutes spent on the task")

	return cmd
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm ID",
		Short: "Delete a task and its schedule items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Tasks.Delete(ctx, app.userID, id, nil); err != nil {
				return err
			}
			fmt.Fprintf(app.out(), "Deleted task %s\n", shortID(id))
			return nil
		},
	}
}
