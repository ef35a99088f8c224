package root

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"taskmate/internal/engine"
	"taskmate/internal/ui"
)

func newRmCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task after confirmation",
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

			confirmer := engine.Confirmed
			if !yes {
				confirmer = promptConfirmer(cmd.InOrStdin(), cmd.OutOrStdout())
			}
			t, deleted, err := svc.DeleteTask(ctx, args[0], confirmer)
			if err != nil {
				return err
			}
			if !deleted {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Cancelled."))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Warn.Render(ui.IconTrash+" Deleted"), ui.Muted.Render(ui.ShortID(t.ID)), t.Title)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

// promptConfirmer asks on out and reads a y/N answer from in. Anything but
// "y" or "yes" declines.
func promptConfirmer(in io.Reader, out io.Writer) engine.Confirmer {
	return engine.ConfirmFunc(func(_ context.Context, t engine.Task) (bool, error) {
		fmt.Fprintf(out, "Delete %q? [y/N] ", t.Title)
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	})
}
