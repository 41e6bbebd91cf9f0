package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/entrhq/sapweb/pkg/browser"
	"github.com/entrhq/sapweb/pkg/config"
	"github.com/entrhq/sapweb/pkg/report"
	"github.com/entrhq/sapweb/pkg/rfp"
)

func newViewCmd() *cobra.Command {
	var saveDir string

	cmd := &cobra.Command{
		Use:   "view <rfp-number>",
		Short: "Show one RFP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Global()
			format, err := report.ParseFormat(cfg.Output.Format)
			if err != nil {
				return err
			}
			if saveDir == "" {
				saveDir = cfg.Output.SaveDir
			}

			con := newConsole(cmd)
			var rec *rfp.Record
			err = withSession(cmd.Context(), con, func(ctx context.Context, d browser.Driver) error {
				var viewErr error
				rec, viewErr = rfp.View(ctx, d, args[0], workflowOptions(con)...)
				return viewErr
			})
			if err != nil {
				return err
			}

			if saveDir != "" {
				paths, err := report.NewWriter(saveDir).WriteRecord(rec)
				if err != nil {
					return fmt.Errorf("failed to save record: %w", err)
				}
				for _, p := range paths {
					con.Successf("Saved %s", p)
				}
			}
			return report.Record(cmd.OutOrStdout(), rec, format)
		},
	}

	cmd.Flags().StringVar(&saveDir, "save", "", "also save <rfp>.json and <rfp>.md in this directory")
	return cmd
}
