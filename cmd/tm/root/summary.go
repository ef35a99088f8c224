package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"taskmate/internal/engine"
	"taskmate/internal/ui"
)

func newSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show task counts by status, priority and deadline",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			board, err := svc.Load(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Summary"))
			fmt.Fprintln(out, ui.LabelValue("Tasks", len(board.Tasks)))
			fmt.Fprintln(out, ui.LabelValue("Categories", len(board.Categories)))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("Status"))
			for _, s := range engine.Statuses {
				f := engine.Filter{Status: s}
				fmt.Fprintf(out, "- %s %d\n", ui.StatusText(s), len(engine.Apply(board.Tasks, f)))
			}
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("Priority"))
			for _, p := range engine.Priorities {
				f := engine.Filter{Priority: p}
				fmt.Fprintf(out, "- %s %d\n", ui.PriorityText(p), len(engine.Apply(board.Tasks, f)))
			}
			fmt.Fprintln(out, "")

			today := time.Now()
			counts := map[engine.DeadlineKind]int{}
			for _, t := range board.Tasks {
				counts[engine.DeadlineFor(t, today).Kind]++
			}
			fmt.Fprintln(out, ui.H2.Render("Deadlines"))
			fmt.Fprintf(out, "- %s %d\n", ui.Bad.Render("overdue"), counts[engine.DeadlineOverdue])
			fmt.Fprintf(out, "- %s %d\n", ui.Warn.Render("today"), counts[engine.DeadlineToday])
			fmt.Fprintf(out, "- %s %d\n", ui.Warn.Render("tomorrow"), counts[engine.DeadlineTomorrow])
			fmt.Fprintf(out, "- %s %d\n", ui.Muted.Render("upcoming"), counts[engine.DeadlineUpcoming])
			return nil
		},
	}

	return cmd
}
