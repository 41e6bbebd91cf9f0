// Package report renders RFP records and result lists for the terminal and
// for saved artifacts.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/entrhq/sapweb/pkg/rfp"
)

// Format selects an output rendering.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// Formats lists every supported format, in help-text order.
var Formats = []Format{FormatTable, FormatJSON, FormatYAML, FormatMarkdown}

// ParseFormat accepts a format name, case-insensitively. "md" and "yml"
// are accepted as aliases.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON, FormatYAML, FormatMarkdown:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, json, yaml or markdown)", name)
	}
}

// Record writes one record in the given format.
func Record(w io.Writer, rec *rfp.Record, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, rec)
	case FormatYAML:
		return writeYAML(w, rec)
	case FormatMarkdown:
		_, err := io.WriteString(w, RecordMarkdown(rec))
		return err
	default:
		_, err := io.WriteString(w, RecordTable(rec))
		return err
	}
}

// SearchRows writes search results in the given format.
func SearchRows(w io.Writer, rows []rfp.SearchRow, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, rows)
	case FormatYAML:
		return writeYAML(w, rows)
	}

	tw := newTable()
	tw.AppendHeader(table.Row{"RFP", "Created", "Payee", "Created By", "Name", "Location/Status", "Cost Object", "Amount"})
	for _, r := range rows {
		tw.AppendRow(table.Row{r.RFPNumber, r.CreationDate, r.Payee, r.CreatedBy, r.RFPName, r.LocationStatus, r.CostObject, r.Amount})
	}
	return render(w, tw, format)
}

// InboxRows writes inbox rows in the given format.
func InboxRows(w io.Writer, rows []rfp.InboxRow, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, rows)
	case FormatYAML:
		return writeYAML(w, rows)
	}

	tw := newTable()
	tw.AppendHeader(table.Row{"RFP", "State", "Receipt", "Created", "Payee", "Created By", "Cost Object", "Amount"})
	for _, r := range rows {
		tw.AppendRow(table.Row{r.RFPNumber, r.State, yesNo(r.Receipt), r.CreationDate, r.Payee, r.CreatedBy, r.CostObject, r.Amount})
	}
	return render(w, tw, format)
}

// RecordTable renders a record as terminal tables: the header fields, then
// line items and history when present.
func RecordTable(rec *rfp.Record) string {
	var b strings.Builder

	fields := newTable()
	fields.SetTitle("RFP " + rec.RFPNumber)
	for _, f := range recordFields(rec) {
		fields.AppendRow(table.Row{f.label, f.value})
	}
	b.WriteString(fields.Render())
	b.WriteString("\n")

	if len(rec.LineItems) > 0 {
		b.WriteString("\n")
		b.WriteString(lineItemTable(rec.LineItems).Render())
		b.WriteString("\n")
	}
	if len(rec.History) > 0 {
		b.WriteString("\n")
		b.WriteString(historyTable(rec.History).Render())
		b.WriteString("\n")
	}
	return b.String()
}

// RecordMarkdown renders a record as a Markdown document.
func RecordMarkdown(rec *rfp.Record) string {
	var md strings.Builder

	md.WriteString(fmt.Sprintf("# RFP %s\n\n", rec.RFPNumber))
	if rec.RFPName != "" {
		md.WriteString(fmt.Sprintf("**%s**\n\n", rec.RFPName))
	}

	fields := newTable()
	fields.AppendHeader(table.Row{"Field", "Value"})
	for _, f := range recordFields(rec) {
		fields.AppendRow(table.Row{f.label, f.value})
	}
	md.WriteString(fields.RenderMarkdown())
	md.WriteString("\n\n")

	md.WriteString("## Line Items\n\n")
	if len(rec.LineItems) == 0 {
		md.WriteString("_None_\n\n")
	} else {
		md.WriteString(lineItemTable(rec.LineItems).RenderMarkdown())
		md.WriteString("\n\n")
	}

	if rec.OfficeNote != nil && *rec.OfficeNote != "" {
		md.WriteString("## Office Note\n\n")
		md.WriteString(*rec.OfficeNote)
		md.WriteString("\n\n")
	}

	md.WriteString("## History\n\n")
	if len(rec.History) == 0 {
		md.WriteString("_None_\n")
	} else {
		md.WriteString(historyTable(rec.History).RenderMarkdown())
		md.WriteString("\n")
	}
	return md.String()
}

type field struct {
	label string
	value string
}

func recordFields(rec *rfp.Record) []field {
	fields := []field{
		{"RFP Number", rec.RFPNumber},
		{"Inbox", deref(rec.Inbox)},
		{"Payee", rec.Payee},
		{"Company Code", rec.CompanyCode},
		{"Name", rec.RFPName},
		{"Type", rec.RFPType},
		{"Payment Method", rec.PaymentMethod},
	}

	optional := []struct {
		label string
		value *string
	}{
		{"Mailing Instructions", rec.MailingInstructions},
		{"Addressee", rec.Addressee},
		{"Phone", rec.Phone},
		{"Address", rec.Address},
		{"City", rec.City},
		{"State", rec.State},
		{"Postal Code", rec.PostalCode},
		{"Country", rec.Country},
		{"Tax Type", rec.TaxType},
	}
	for _, o := range optional {
		if o.value != nil {
			fields = append(fields, field{o.label, *o.value})
		}
	}
	if rec.SSNTIN != nil {
		fields = append(fields, field{"SSN/TIN", maskTaxID(*rec.SSNTIN)})
	}
	return fields
}

// maskTaxID hides every digit of a tax id except the last four.
func maskTaxID(id string) string {
	digits := 0
	for _, r := range id {
		if unicode.IsDigit(r) {
			digits++
		}
	}

	var b strings.Builder
	for _, r := range id {
		if unicode.IsDigit(r) {
			digits--
			if digits >= 4 {
				r = '*'
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

func lineItemTable(items []rfp.LineItem) table.Writer {
	tw := newTable()
	tw.AppendHeader(table.Row{"#", "Date of Service", "G/L Account", "Cost Object", "Amount", "Explanation"})
	for i, li := range items {
		tw.AppendRow(table.Row{i + 1, li.DateOfService, li.GLAccount, li.CostObject, li.Amount, li.Explanation})
	}
	return tw
}

func historyTable(history []rfp.HistoryEntry) table.Writer {
	tw := newTable()
	tw.AppendHeader(table.Row{"Date", "Time", "Action"})
	for _, h := range history {
		tw.AppendRow(table.Row{h.Date, h.Time, h.Action})
	}
	return tw
}

func newTable() table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	return tw
}

func render(w io.Writer, tw table.Writer, format Format) error {
	var out string
	if format == FormatMarkdown {
		out = tw.RenderMarkdown()
	} else {
		out = tw.Render()
	}
	_, err := fmt.Fprintln(w, out)
	return err
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
