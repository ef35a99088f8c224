package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"taskmate/internal/ui"
)

func newToggleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "toggle <id>",
		Aliases: []string{"do"},
		Short:   "Advance a task's status (todo → pending → done → todo)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
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

			res, err := svc.ToggleTask(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s → %s\n",
				ui.H2.Render(ui.IconCycle),
				ui.Muted.Render(ui.ShortID(res.Task.ID)),
				res.Task.Title,
				ui.StatusText(res.From),
				ui.StatusText(res.Task.Status))
			return nil
		},
	}

	return cmd
}
