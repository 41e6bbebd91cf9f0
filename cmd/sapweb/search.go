package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/entrhq/sapweb/pkg/browser"
	"github.com/entrhq/sapweb/pkg/config"
	"github.com/entrhq/sapweb/pkg/report"
	"github.com/entrhq/sapweb/pkg/rfp"
)

func newSearchCmd() *cobra.Command {
	var (
		c     rfp.SearchCriteria
		types []string
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search RFPs",
		Long: `Search lists the RFPs matching every given criterion. At least one
criterion is required. --type limits the search to parked, posted or
deleted records and may be repeated.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := report.ParseFormat(config.Global().Output.Format)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("type") {
				t, err := parseTypes(types)
				if err != nil {
					return err
				}
				c.Types = &t
			}

			con := newConsole(cmd)
			var rows []rfp.SearchRow
			err = withSession(cmd.Context(), con, func(ctx context.Context, d browser.Driver) error {
				var searchErr error
				rows, searchErr = rfp.Search(ctx, d, c, workflowOptions(con)...)
				return searchErr
			})
			if err != nil {
				return err
			}

			con.Verbosef("%d result(s)", len(rows))
			return report.SearchRows(cmd.OutOrStdout(), rows, format)
		},
	}

	f := cmd.Flags()
	f.StringVar(&c.RFPNumber, "rfp", "", "RFP number")
	f.StringVar(&c.CompanyCode, "company-code", "", "company code")
	f.StringVar(&c.CreationStart, "from", "", "created on or after (MM/DD/YYYY)")
	f.StringVar(&c.CreationEnd, "to", "", "created on or before (MM/DD/YYYY)")
	f.StringVar(&c.Payee, "payee", "", "payee name")
	f.StringVar(&c.RFPName, "name", "", "RFP name")
	f.StringVar(&c.CostObject, "cost-object", "", "cost object")
	f.StringVar(&c.GLAccount, "gl-account", "", "G/L account")
	f.StringSliceVar(&types, "type", nil, "record types: parked, posted, deleted")
	return cmd
}

func newInboxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inbox",
		Short: "List the RFPs in your inbox",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := report.ParseFormat(config.Global().Output.Format)
			if err != nil {
				return err
			}

			con := newConsole(cmd)
			var rows []rfp.InboxRow
			err = withSession(cmd.Context(), con, func(ctx context.Context, d browser.Driver) error {
				var inboxErr error
				rows, inboxErr = rfp.Inbox(ctx, d, workflowOptions(con)...)
				return inboxErr
			})
			if err != nil {
				return err
			}
			return report.InboxRows(cmd.OutOrStdout(), rows, format)
		},
	}
}
