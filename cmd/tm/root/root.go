package root

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"taskmate/internal/config"
	"taskmate/internal/engine"
	"taskmate/internal/ui"
	pkgLog "taskmate/pkg/log"
)

const Version = "0.1.0"

var (
	cfgFile string
	cfg     *config.Config
	logger  pkgLog.Logger = pkgLog.NewNop()
)

var rootCmd = &cobra.Command{
	Use:           "tm",
	Short:         "TaskMate: local-first task tracker",
	Long:          "TaskMate keeps tasks and categories on your machine and lets you filter, sort and cycle them from the CLI or a TUI board.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = c
		logger = pkgLog.Init(pkgLog.ZapConfig{
			Level:        c.Logger.Level,
			Mode:         c.Logger.Mode,
			Encoding:     c.Logger.Encoding,
			ColorEnabled: c.Logger.ColorEnabled,
		})
		return nil
	},
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default searches ~/.taskmate, ./config, .)")

	rootCmd.AddCommand(
		newAddCmd(),
		newListCmd(),
		newToggleCmd(),
		newRmCmd(),
		newCategoryCmd(),
		newSummaryCmd(),
		newBoardCmd(),
		newExportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+userMessage(err)))
		os.Exit(1)
	}
}

// userMessage hides storage details; they are already in the log.
func userMessage(err error) string {
	var pe engine.PersistenceError
	if errors.As(err, &pe) {
		return "could not access task storage, see the log for details"
	}
	return err.Error()
}
