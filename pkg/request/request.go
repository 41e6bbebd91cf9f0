// Package request reads create-request files: YAML descriptions of one RFP
// to be created, including where its receipts are.
package request

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/entrhq/sapweb/pkg/receipts"
	"github.com/entrhq/sapweb/pkg/rfp"
)

// File is the on-disk form of a create request.
//
//	name: Conference travel
//	payee: {mit: true, name: "Doe, Jane"}
//	address: [77 Massachusetts Ave, Cambridge, MA, "02139", US]
//	line_items:
//	  - {date_of_service: 01/02/2024, gl_account: "421000", cost_object: "1234567", amount: "100.00", explanation: Taxi}
//	receipt_dir: ./scans
//	send_to: {recipient: Amy, note: Please approve}
type File struct {
	Type       rfp.RequestType `yaml:"type,omitempty"`
	Name       string          `yaml:"name"`
	Payee      rfp.Payee       `yaml:"payee"`
	Address    []string        `yaml:"address,omitempty"`
	LineItems  []rfp.LineItem  `yaml:"line_items"`
	OfficeNote string          `yaml:"office_note,omitempty"`
	SendTo     *rfp.SendTo     `yaml:"send_to,omitempty"`

	receipts.Source `yaml:",inline"`
}

// Validate checks the request without touching the filesystem or a browser.
// All problems are reported together.
func (f *File) Validate() error {
	var errs []error
	fail := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]interface{}{rfp.ErrMalformedInput}, args...)...))
	}

	switch f.Type {
	case "", rfp.Reimbursement, rfp.Payment:
	default:
		fail("type must be %q or %q, got %q", rfp.Reimbursement, rfp.Payment, f.Type)
	}
	if strings.TrimSpace(f.Name) == "" {
		fail("name is required")
	}
	if strings.TrimSpace(f.Payee.Name) == "" {
		fail("payee.name is required")
	}
	if _, err := rfp.ParseAddress(f.Address); err != nil {
		errs = append(errs, err)
	}
	if len(f.LineItems) == 0 {
		fail("at least one line item is required")
	}
	for i, li := range f.LineItems {
		if strings.TrimSpace(li.Amount) == "" {
			fail("line_items[%d].amount is required", i)
		}
	}
	if f.SendTo != nil && strings.TrimSpace(f.SendTo.Recipient) == "" {
		fail("send_to.recipient is required")
	}

	return errors.Join(errs...)
}

// Parse decodes and validates a create request. Unknown keys are rejected
// so that typos do not silently drop fields.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: failed to parse request: %v", rfp.ErrMalformedInput, err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Load reads a request file and resolves its receipts relative to the
// file's directory. The result is ready to pass to rfp.Create.
func Load(path string) (rfp.CreateRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return rfp.CreateRequest{}, fmt.Errorf("failed to read request file: %w", err)
	}

	f, err := Parse(data)
	if err != nil {
		return rfp.CreateRequest{}, fmt.Errorf("%s: %w", path, err)
	}

	req, err := f.Resolve(filepath.Dir(path))
	if err != nil {
		return rfp.CreateRequest{}, fmt.Errorf("%s: %w", path, err)
	}
	return req, nil
}

// Resolve turns a validated file into a create request, collecting and
// checking receipts against base.
func (f *File) Resolve(base string) (rfp.CreateRequest, error) {
	var paths []string
	if !f.Source.IsEmpty() {
		var err error
		paths, err = receipts.Resolve(f.Source, base)
		if err != nil {
			return rfp.CreateRequest{}, fmt.Errorf("%w: %w", rfp.ErrMalformedInput, err)
		}
	}

	return rfp.CreateRequest{
		Type:       f.Type,
		Name:       f.Name,
		Payee:      f.Payee,
		Address:    f.Address,
		LineItems:  f.LineItems,
		OfficeNote: f.OfficeNote,
		Receipts:   paths,
		SendTo:     f.SendTo,
	}, nil
}

// Template is a starting point written by `sapweb create --template`.
const Template = `# RFP create request
type: reimbursement        # or payment
name: Conference travel
payee:
  mit: true
  name: "Doe, Jane"
# 4 fields (no state) or 5 fields (with state)
address: ["77 Massachusetts Ave", "Cambridge", "MA", "02139", "US"]
line_items:
  - date_of_service: "01/02/2024"
    gl_account: "421000"
    cost_object: "1234567"
    amount: "100.00"
    explanation: Taxi
office_note: Receipts attached
receipts: []
receipt_dir: ""
receipt_patterns: ["*.pdf"]
# send_to:
#   recipient: Amy
#   note: Please approve
`
