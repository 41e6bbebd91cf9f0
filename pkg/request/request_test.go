package request

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/sapweb/pkg/receipts"
	"github.com/entrhq/sapweb/pkg/rfp"
)

const sample = `
type: payment
name: Conference travel
payee:
  mit: false
  name: Acme Travel
address: ["1 Main St", "Toronto", "M5V 2T6", "CA"]
line_items:
  - date_of_service: "01/02/2024"
    gl_account: "421000"
    cost_object: "1234567"
    amount: "100.00"
    explanation: Taxi
  - amount: "250.00"
    explanation: Hotel
office_note: Receipts attached
send_to:
  recipient: Amy
  note: Please approve
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, rfp.Payment, f.Type)
	assert.Equal(t, "Conference travel", f.Name)
	assert.Equal(t, rfp.Payee{MIT: false, Name: "Acme Travel"}, f.Payee)
	assert.Equal(t, []string{"1 Main St", "Toronto", "M5V 2T6", "CA"}, f.Address)
	require.Len(t, f.LineItems, 2)
	assert.Equal(t, rfp.LineItem{
		DateOfService: "01/02/2024",
		GLAccount:     "421000",
		CostObject:    "1234567",
		Amount:        "100.00",
		Explanation:   "Taxi",
	}, f.LineItems[0])
	require.NotNil(t, f.SendTo)
	assert.Equal(t, "Amy", f.SendTo.Recipient)
	assert.True(t, f.Source.IsEmpty())
}

func TestParseTemplate(t *testing.T) {
	f, err := Parse([]byte(Template))
	require.NoError(t, err)
	assert.Equal(t, rfp.Reimbursement, f.Type)
	assert.Len(t, f.Address, 5)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("name: x\npayee: {name: y}\nline_items: [{amount: '1'}]\nofice_note: typo\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, rfp.ErrMalformedInput))
}

func TestValidate(t *testing.T) {
	valid := func() File {
		return File{
			Name:      "Travel",
			Payee:     rfp.Payee{MIT: true, Name: "Doe, Jane"},
			LineItems: []rfp.LineItem{{Amount: "1.00"}},
		}
	}

	tests := []struct {
		name   string
		mutate func(f *File)
		want   string
	}{
		{name: "unknown type", mutate: func(f *File) { f.Type = "refund" }, want: "type must be"},
		{name: "missing name", mutate: func(f *File) { f.Name = " " }, want: "name is required"},
		{name: "missing payee", mutate: func(f *File) { f.Payee.Name = "" }, want: "payee.name is required"},
		{name: "short address", mutate: func(f *File) { f.Address = []string{"a", "b", "c"} }, want: "address has 3 elements"},
		{name: "no line items", mutate: func(f *File) { f.LineItems = nil }, want: "at least one line item"},
		{name: "line item without amount", mutate: func(f *File) { f.LineItems[0].Amount = "" }, want: "line_items[0].amount"},
		{name: "send to without recipient", mutate: func(f *File) { f.SendTo = &rfp.SendTo{Note: "hi"} }, want: "send_to.recipient"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid()
			tt.mutate(&f)
			err := f.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, rfp.ErrMalformedInput))
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	f := valid()
	assert.NoError(t, f.Validate())
}

func TestValidateReportsEveryProblem(t *testing.T) {
	f := File{}
	err := f.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "payee.name is required")
	assert.Contains(t, err.Error(), "at least one line item")
}

func TestLoadResolvesReceiptsNextToFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "scans"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scans", "b.png"), []byte("png"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scans", "a.png"), []byte("png"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scans", "skip.txt"), []byte("txt"), 0o644))

	content := sample + "receipt_dir: scans\nreceipt_patterns: [\"*.png\"]\n"
	path := filepath.Join(dir, "request.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	req, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "scans", "a.png"),
		filepath.Join(dir, "scans", "b.png"),
	}, req.Receipts)
	assert.Equal(t, "Conference travel", req.Name)
	assert.Equal(t, rfp.Payment, req.Type)
	require.NotNil(t, req.SendTo)
}

func TestLoadRejectsMissingReceipt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "request.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample+"receipts: [missing.pdf]\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, rfp.ErrMalformedInput))
	assert.True(t, errors.Is(err, receipts.ErrInvalidReceipt))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
