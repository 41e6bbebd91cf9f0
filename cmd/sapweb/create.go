package main

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/entrhq/sapweb/pkg/browser"
	"github.com/entrhq/sapweb/pkg/console"
	"github.com/entrhq/sapweb/pkg/receipts"
	"github.com/entrhq/sapweb/pkg/request"
	"github.com/entrhq/sapweb/pkg/rfp"
)

func newCreateCmd() *cobra.Command {
	var (
		file     string
		copyNum  bool
		template bool
	)

	cmd := &cobra.Command{
		Use:   "create -f request.yaml",
		Short: "Create an RFP from a request file",
		Long: `Create fills in and saves a new RFP, attaches its receipts and, when the
request names a recipient, sends it on. The RFP number is printed on stdout.

The request file is checked completely, receipts included, before the
browser starts. Use --template to print an example request.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if template {
				_, err := fmt.Fprint(cmd.OutOrStdout(), request.Template)
				return err
			}
			if file == "" {
				return fmt.Errorf("a request file is required (-f)")
			}

			con := newConsole(cmd)
			req, err := request.Load(file)
			if err != nil {
				return err
			}
			con.Verbosef("Request %q with %d line item(s)", req.Name, len(req.LineItems))
			for _, r := range req.Receipts {
				con.Receipt(r, receiptPages(r))
			}

			var number string
			err = withSession(cmd.Context(), con, func(ctx context.Context, d browser.Driver) error {
				var createErr error
				number, createErr = rfp.Create(ctx, d, req, workflowOptions(con)...)
				return createErr
			})

			con.Summary(createSummary(number, req, err, con))
			if number == "" {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), number)
			if copyNum {
				if clipErr := clipboard.WriteAll(number); clipErr != nil {
					con.Warningf("could not copy RFP number: %v", clipErr)
				} else {
					con.Infof("RFP number copied to clipboard")
				}
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "create request file (YAML)")
	cmd.Flags().BoolVar(&copyNum, "copy", false, "copy the new RFP number to the clipboard")
	cmd.Flags().BoolVar(&template, "template", false, "print an example request file and exit")
	return cmd
}

// receiptPages returns the page count of a PDF receipt, or 0 when it is
// not a PDF or cannot be counted.
func receiptPages(path string) int {
	if !receipts.IsPDF(path) {
		return 0
	}
	n, err := receipts.PageCount(path)
	if err != nil {
		debugLog.Warnf("Could not count pages of %s: %v", path, err)
		return 0
	}
	return n
}

// createSummary reports a record that exists but could not be sent as a
// partial success.
func createSummary(number string, req rfp.CreateRequest, err error, con *console.Console) console.Summary {
	s := console.Summary{
		Command:   "create",
		Status:    console.StatusSuccess,
		RFPNumber: number,
		Receipts:  req.Receipts,
		Duration:  con.Elapsed(),
	}
	if err != nil {
		s.Error = err.Error()
		s.Status = console.StatusFailed
		if number != "" {
			s.Status = console.StatusPartialSuccess
		}
	}
	return s
}
