package rfp

import (
	"context"
	"fmt"

	"github.com/entrhq/sapweb/pkg/browser"
)

// Record is the full read-only view of one RFP. Pointer fields are nil when
// the record does not show them.
type Record struct {
	RFPNumber           string         `json:"rfp_number" yaml:"rfp_number"`
	Inbox               *string        `json:"inbox" yaml:"inbox"`
	Payee               string         `json:"payee" yaml:"payee"`
	CompanyCode         string         `json:"company_code" yaml:"company_code"`
	RFPName             string         `json:"rfp_name" yaml:"rfp_name"`
	RFPType             string         `json:"rfp_type" yaml:"rfp_type"`
	PaymentMethod       string         `json:"payment_method" yaml:"payment_method"`
	MailingInstructions *string        `json:"mailing_instructions" yaml:"mailing_instructions"`
	Addressee           *string        `json:"addressee" yaml:"addressee"`
	Phone               *string        `json:"phone" yaml:"phone"`
	Address             *string        `json:"address" yaml:"address"`
	City                *string        `json:"city" yaml:"city"`
	State               *string        `json:"state" yaml:"state"`
	PostalCode          *string        `json:"postal_code" yaml:"postal_code"`
	Country             *string        `json:"country" yaml:"country"`
	TaxType             *string        `json:"tax_type" yaml:"tax_type"`
	SSNTIN              *string        `json:"ssn_tin" yaml:"ssn_tin"`
	LineItems           []LineItem     `json:"line_items" yaml:"line_items"`
	OfficeNote          *string        `json:"office_note" yaml:"office_note"`
	History             []HistoryEntry `json:"history" yaml:"history"`
}

// View finds a record by number and reads all of it. The search must open
// the record directly; a result list means the number was not unique.
func View(ctx context.Context, d browser.Driver, number string, opts ...Option) (*Record, error) {
	o := newOptions(opts)

	if err := o.step(ctx, "searching for RFP %s", number); err != nil {
		return nil, err
	}
	search, err := OpenSearch(d, o.endpoints)
	if err != nil {
		return nil, err
	}
	if err := search.SetRFPNumber(number); err != nil {
		return nil, fmt.Errorf("rfp number: %w", err)
	}
	outcome, err := search.Search()
	if err != nil {
		return nil, err
	}
	if outcome.Record == nil {
		results, err := outcome.Results.Results()
		if err != nil {
			return nil, err
		}
		return nil, &AmbiguousResultError{Search: "rfp", Query: number, Count: len(results)}
	}

	if err := o.step(ctx, "reading RFP %s", number); err != nil {
		return nil, err
	}
	rec, err := ReadRecord(outcome.Record)
	if err != nil {
		return nil, err
	}
	if rec.RFPNumber != number {
		return nil, &PostconditionError{Field: "RFP Number", Want: number, Got: rec.RFPNumber}
	}
	return rec, nil
}

// ReadRecord reads every field of a read-only record page.
func ReadRecord(p *ViewOnlyPage) (*Record, error) {
	rec := &Record{}
	var err error

	for _, f := range []struct {
		name string
		dst  *string
		get  func() (string, error)
	}{
		{"rfp number", &rec.RFPNumber, p.RFPNumber},
		{"payee", &rec.Payee, p.Payee},
		{"company code", &rec.CompanyCode, p.CompanyCode},
		{"rfp name", &rec.RFPName, p.RFPName},
		{"rfp type", &rec.RFPType, p.RFPType},
		{"payment method", &rec.PaymentMethod, p.PaymentMethod},
	} {
		if *f.dst, err = f.get(); err != nil {
			return nil, fmt.Errorf("%s: %w", f.name, err)
		}
	}

	for _, f := range []struct {
		name string
		dst  **string
		get  func() (*string, error)
	}{
		{"inbox", &rec.Inbox, p.Inbox},
		{"mailing instructions", &rec.MailingInstructions, p.MailingInstructions},
		{"addressee", &rec.Addressee, p.Addressee},
		{"phone", &rec.Phone, p.Phone},
		{"address", &rec.Address, p.Address},
		{"city", &rec.City, p.City},
		{"state", &rec.State, p.State},
		{"postal code", &rec.PostalCode, p.PostalCode},
		{"country", &rec.Country, p.Country},
		{"tax type", &rec.TaxType, p.TaxType},
		{"ssn/tin", &rec.SSNTIN, p.SSNTIN},
		{"office note", &rec.OfficeNote, p.OfficeNote},
	} {
		if *f.dst, err = f.get(); err != nil {
			return nil, fmt.Errorf("%s: %w", f.name, err)
		}
	}

	n, err := p.LineItemCount()
	if err != nil {
		return nil, err
	}
	rec.LineItems = make([]LineItem, 0, n)
	for i := 0; i < n; i++ {
		li, err := p.LineItem(i)
		if err != nil {
			return nil, err
		}
		rec.LineItems = append(rec.LineItems, li)
	}

	if rec.History, err = p.History(); err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return rec, nil
}
