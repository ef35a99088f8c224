package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"taskmate/internal/engine"
	"taskmate/internal/ui"
)

func newAddCmd() *cobra.Command {
	var in engine.CreateTaskInput

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			cats, err := svc.Categories(ctx)
			if err != nil {
				return err
			}
			in.Title = args[0]
			// No --category: use the first registered one, as the board does.
			if strings.TrimSpace(in.Category) == "" && len(cats) > 0 {
				in.Category = cats[0].Key
			}
			t, err := svc.CreateTask(ctx, in)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
				ui.Good.Render(ui.IconPlus+" Added"),
				ui.Muted.Render(ui.ShortID(t.ID)),
				t.Title,
				ui.CategoryBadge(t.Category, cats))
			return nil
		},
	}

	cmd.Flags().StringVarP(&in.Description, "desc", "d", "", "Description")
	cmd.Flags().StringVarP(&in.Category, "category", "c", "", "Category (must already exist; default first registered)")
	cmd.Flags().StringVarP(&in.Priority, "priority", "p", "Low", "Priority (Low|Medium|High)")
	cmd.Flags().StringVar(&in.DueDate, "due", "", "Due date (YYYY-MM-DD)")

	return cmd
}
