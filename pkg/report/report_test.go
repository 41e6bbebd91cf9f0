package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/entrhq/sapweb/pkg/rfp"
)

func strPtr(s string) *string { return &s }

func sampleRecord() *rfp.Record {
	return &rfp.Record{
		RFPNumber:     "2000123456",
		Inbox:         strPtr("Approver, Amy"),
		Payee:         "Doe, Jane",
		CompanyCode:   "CUR",
		RFPName:       "Conference travel",
		RFPType:       "Reimbursement",
		PaymentMethod: "Check",
		City:          strPtr("Cambridge"),
		LineItems: []rfp.LineItem{
			{DateOfService: "01/02/2024", GLAccount: "421000", CostObject: "1234567", Amount: "100.00", Explanation: "Taxi"},
		},
		OfficeNote: strPtr("Receipts attached"),
		History: []rfp.HistoryEntry{
			{Date: "01/02/2024", Time: "10:00", Action: "Created"},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{input: "", want: FormatTable},
		{input: "table", want: FormatTable},
		{input: "JSON", want: FormatJSON},
		{input: "yml", want: FormatYAML},
		{input: "md", want: FormatMarkdown},
		{input: "markdown", want: FormatMarkdown},
		{input: "csv", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecordJSONUsesRecordKeys(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Record(&buf, sampleRecord(), FormatJSON))

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "2000123456", got["rfp_number"])
	assert.Equal(t, "Cambridge", got["city"])
	assert.Nil(t, got["phone"])
	assert.Contains(t, got, "phone")
	assert.Len(t, got["line_items"], 1)
}

func TestRecordYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Record(&buf, sampleRecord(), FormatYAML))

	var got rfp.Record
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, *sampleRecord(), got)
}

func TestRecordTable(t *testing.T) {
	out := RecordTable(sampleRecord())

	assert.Contains(t, out, "RFP 2000123456")
	assert.Contains(t, out, "Approver, Amy")
	assert.Contains(t, out, "Cambridge")
	assert.Contains(t, out, "Taxi")
	assert.Contains(t, out, "Created")
	assert.NotContains(t, out, "Phone")
}

func TestTaxIDMaskedInRenderedOutput(t *testing.T) {
	rec := sampleRecord()
	rec.SSNTIN = strPtr("123-45-6789")

	for name, out := range map[string]string{
		"table":    RecordTable(rec),
		"markdown": RecordMarkdown(rec),
	} {
		assert.Contains(t, out, "***-**-6789", name)
		assert.NotContains(t, out, "123-45", name)
	}

	var buf bytes.Buffer
	require.NoError(t, Record(&buf, rec, FormatJSON))
	assert.Contains(t, buf.String(), "123-45-6789")
}

func TestMaskTaxID(t *testing.T) {
	tests := map[string]string{
		"123-45-6789": "***-**-6789",
		"12-3456789":  "**-***6789",
		"6789":        "6789",
		"":            "",
		"N/A":         "N/A",
	}
	for in, want := range tests {
		assert.Equal(t, want, maskTaxID(in), in)
	}
}

func TestRecordMarkdown(t *testing.T) {
	out := RecordMarkdown(sampleRecord())

	assert.True(t, strings.HasPrefix(out, "# RFP 2000123456\n"))
	assert.Contains(t, out, "## Line Items")
	assert.Contains(t, out, "| Taxi |")
	assert.Contains(t, out, "## Office Note\n\nReceipts attached")
	assert.Contains(t, out, "## History")

	empty := RecordMarkdown(&rfp.Record{RFPNumber: "1"})
	assert.Contains(t, empty, "## Line Items\n\n_None_")
	assert.NotContains(t, empty, "## Office Note")
}

func TestSearchRows(t *testing.T) {
	rows := []rfp.SearchRow{
		{RFPNumber: "2000123456", Payee: "Doe, Jane", LocationStatus: "Posted", Amount: "100.00"},
		{RFPNumber: "2000123457", Payee: "Roe, Rick", LocationStatus: "Parked", Amount: "5.00"},
	}

	var table bytes.Buffer
	require.NoError(t, SearchRows(&table, rows, FormatTable))
	assert.Contains(t, table.String(), "2000123457")
	assert.Contains(t, table.String(), "Parked")

	var js bytes.Buffer
	require.NoError(t, SearchRows(&js, rows, FormatJSON))
	var got []rfp.SearchRow
	require.NoError(t, json.Unmarshal(js.Bytes(), &got))
	assert.Equal(t, rows, got)
}

func TestInboxRows(t *testing.T) {
	rows := []rfp.InboxRow{{RFPNumber: "2000123456", State: "Sent On", Receipt: true}}

	var md bytes.Buffer
	require.NoError(t, InboxRows(&md, rows, FormatMarkdown))
	assert.Contains(t, md.String(), "| 2000123456 | Sent On | yes |")

	var y bytes.Buffer
	require.NoError(t, InboxRows(&y, rows, FormatYAML))
	assert.Contains(t, y.String(), "rfp_number: \"2000123456\"")
}

func TestWriterWriteRecord(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "records")
	w := NewWriter(dir)

	paths, err := w.WriteRecord(sampleRecord())
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "2000123456.json"),
		filepath.Join(dir, "2000123456.md"),
	}, paths)

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	var got rfp.Record
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "Conference travel", got.RFPName)

	md, err := os.ReadFile(paths[1])
	require.NoError(t, err)
	assert.Contains(t, string(md), "# RFP 2000123456")
}

func TestWriterRequiresNumber(t *testing.T) {
	_, err := NewWriter(t.TempDir()).WriteRecord(&rfp.Record{})
	assert.Error(t, err)
}
