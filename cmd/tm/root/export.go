package root

import (
	"context"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"taskmate/internal/engine"
	"taskmate/internal/storage"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write both collections as YAML to stdout",
		Long:  "Export writes the task and category collections in the YAML document format used by the file storage driver, so the output can be used as a storage.path with storage.driver=file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			gw, err := openGateway(ctx)
			if err != nil {
				return engine.PersistenceError{Op: "open storage", Err: err}
			}
			defer gw.Close()

			doc, err := storage.Snapshot(ctx, gw)
			if err != nil {
				logger.Errorf(ctx, "root.export: %v", err)
				return engine.PersistenceError{Op: "export", Err: err}
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(doc); err != nil {
				return err
			}
			return enc.Close()
		},
	}

	return cmd
}
