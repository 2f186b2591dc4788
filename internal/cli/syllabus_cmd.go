package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/brodyboswell/study-planner-syllabus-beta/internal/contract"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/domain"
)

func newSyllabusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "syllabus",
		Short: "Extract deadlines from syllabus documents",
	}
	cmd.AddCommand(
		newSyllabusUploadCmd(app),
		newSyllabusListCmd(app),
		newSyllabusShowCmd(app),
		newSyllabusReviewCmd(app),
		newSyllabusConfirmCmd(app),
		newSyllabusRerunCmd(app),
		newSyllabusCancelCmd(app),
	)
	return cmd
}

func newSyllabusUploadCmd(app *App) *cobra.Command {
	var course, term string
	var noProcess bool

	cmd := &cobra.Command{
		Use:   "upload FILE",
		Short: "Upload a syllabus and extract deadline candidates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading syllabus file: %w", err)
			}

			syl, err := app.Syllabi.Upload(ctx, contract.UploadRequest{
				UserID:   app.userID,
				Course:   course,
				Term:     term,
				FileName: filepath.Base(args[0]),
				Data:     data,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(app.out(), "Uploaded %s (%s)\n", syl.FileName, shortID(syl.ID))

			if noProcess {
				return nil
			}
			syl, err = app.Syllabi.Process(ctx, app.userID, syl.ID, nil)
			if err != nil {
				return err
			}
			extractions, err := app.Syllabi.ListExtractions(ctx, app.userID, syl.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.out(), "Found %d candidate(s); status %s\n", len(extractions), syl.Status)
			writeExtractions(app, extractions)
			return nil
		},
	}

	cmd.Flags().StringVar(&course, "course", "", "Course name")
	cmd.Flags().StringVar(&term, "term", "", "Academic term")
	cmd.Flags().BoolVar(&noProcess, "no-process", false, "Upload only, do not extract yet")

	return cmd
}

func newSyllabusListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List uploaded syllabi",
		RunE: func(cmd *cobra.Command, args []string) error {
			syllabi, err := app.Syllabi.List(cmd.Context(), app.userID)
			if err != nil {
				return err
			}
			if len(syllabi) == 0 {
				fmt.Fprintln(app.out(), "No syllabi uploaded.")
				return nil
			}
			tw := newTable(app.out())
			fmt.Fprintln(tw, "ID\tFILE\tCOURSE\tTERM\tSTATUS")
			for _, s := range syllabi {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					shortID(s.ID), s.FileName, valueOrDash(s.Course), valueOrDash(s.Term), s.Status)
			}
			tw.Flush()
			return nil
		},
	}
}

func newSyllabusShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a syllabus and its extraction candidates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveSyllabusID(ctx, app, args[0])
			if err != nil {
				return err
			}
			syl, err := app.Syllabi.GetByID(ctx, app.userID, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.out(), "%s [%s] %s\n", syl.FileName, syl.Status, valueOrDash(syl.Course))
			if syl.ErrorMessage != "" {
				fmt.Fprintf(app.out(), "  error: %s\n", syl.ErrorMessage)
			}
			extractions, err := app.Syllabi.ListExtractions(ctx, app.userID, syl.ID)
			if err != nil {
				return err
			}
			writeExtractions(app, extractions)
			return nil
		},
	}
}

func newSyllabusReviewCmd(app *App) *cobra.Command {
	var accept, reject bool
	var title, due, itemType string

	cmd := &cobra.Command{
		Use:   "review SYLLABUS EXTRACTION",
		Short: "Accept, reject, or edit one extraction candidate",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sylID, err := resolveSyllabusID(ctx, app, args[0])
			if err != nil {
				return err
			}
			extID, err := resolveExtractionID(ctx, app, sylID, args[1])
			if err != nil {
				return err
			}

			req := contract.ReviewRequest{
				UserID:       app.userID,
				SyllabusID:   sylID,
				ExtractionID: extID,
			}
			switch {
			case accept:
				req.Action = domain.ReviewAccepted
			case reject:
				req.Action = domain.ReviewRejected
			default:
				req.Action = domain.ReviewEdited
				if cmd.Flags().Changed("title") {
					req.Title = &title
				}
				if cmd.Flags().Changed("due") {
					d, err := parseDateFlag(due)
					if err != nil {
						return err
					}
					req.DueDate = &d
				}
				if cmd.Flags().Changed("type") {
					it := domain.ItemType(itemType)
					req.ItemType = &it
				}
			}

			e, err := app.Syllabi.Review(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.out(), "Extraction %s is now %s\n", shortID(e.ID), e.ReviewStatus)
			return nil
		},
	}

	cmd.Flags().BoolVar(&accept, "accept", false, "Accept the candidate as-is")
	cmd.Flags().BoolVar(&reject, "reject", false, "Reject the candidate")
	cmd.Flags().StringVar(&title, "title", "", "Edited title")
	cmd.Flags().StringVar(&due, "due", "", "Edited due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&itemType, "type", "", "Edited item type")
	cmd.MarkFlagsMutuallyExclusive("accept", "reject")

	return cmd
}

func newSyllabusConfirmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "confirm ID",
		Short: "Materialize accepted extractions into tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveSyllabusID(ctx, app, args[0])
			if err != nil {
				return err
			}
			tasks, err := app.Syllabi.Confirm(ctx, app.userID, id, nil)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.out(), "Created %d task(s):\n", len(tasks))
			writeTaskTable(app.out(), tasks)
			return nil
		},
	}
}

func newSyllabusRerunCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rerun ID",
		Short: "Retry extraction for a failed syllabus",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveSyllabusID(ctx, app, args[0])
			if err != nil {
				return err
			}
			syl, err := app.Syllabi.Rerun(ctx, app.userID, id, nil)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.out(), "Rerun complete; status %s\n", syl.Status)
			return nil
		},
	}
}

func newSyllabusCancelCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel ID",
		Short: "Cancel a processing run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveSyllabusID(ctx, app, args[0])
			if err != nil {
				return err
			}
			syl, err := app.Syllabi.Cancel(ctx, app.userID, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.out(), "Canceled; status %s\n", syl.Status)
			return nil
		},
	}
}

func writeExtractions(app *App, extractions []*domain.Extraction) {
	if len(extractions) == 0 {
		return
	}
	tw := newTable(app.out())
	fmt.Fprintln(tw, "ID\tTITLE\tTYPE\tDUE\tCONF\tREVIEW")
	for _, e := range extractions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f\t%s\n",
			shortID(e.ID), e.Title, e.ItemType, fmtDue(e.DueDate), e.Confidence, e.ReviewStatus)
	}
	tw.Flush()
}
