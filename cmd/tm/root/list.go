package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"taskmate/internal/engine"
	"taskmate/internal/ui"
)

func newListCmd() *cobra.Command {
	var status, category, priority string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks, highest priority and earliest due first",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := engine.NewFilter(status, category, priority)
			if err != nil {
				return err
			}

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
			tasks := engine.Apply(board.Tasks, f)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconTask, fmt.Sprintf("Tasks (%d of %d)", len(tasks), len(board.Tasks))))
			if len(tasks) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No tasks match."))
				return nil
			}
			today := time.Now()
			for _, t := range tasks {
				fmt.Fprintln(out, "- "+ui.TaskLine(t, board.Categories, today))
				if t.Description != "" {
					fmt.Fprintln(out, "  "+ui.Muted.Render(t.Description))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", engine.FilterAll, "Status filter (all|todo|pending|done)")
	cmd.Flags().StringVarP(&category, "category", "c", engine.FilterAll, "Category filter (all|<name>)")
	cmd.Flags().StringVarP(&priority, "priority", "p", engine.FilterAll, "Priority filter (all|Low|Medium|High)")

	return cmd
}
