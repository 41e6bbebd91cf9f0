package rfp

import (
	"context"
	"errors"
	"fmt"

	"github.com/entrhq/sapweb/pkg/browser"
)

// RequestType selects which creation flow Create starts.
type RequestType string

const (
	Reimbursement RequestType = "reimbursement"
	Payment       RequestType = "payment"
)

// Payee identifies who is paid. MIT payees are searched in the directory;
// others in the vendor list.
type Payee struct {
	MIT  bool   `json:"mit" yaml:"mit" mapstructure:"mit"`
	Name string `json:"name" yaml:"name" mapstructure:"name"`
}

// SendTo routes the new record to a recipient once it is saved.
type SendTo struct {
	Recipient string `json:"recipient" yaml:"recipient" mapstructure:"recipient"`
	Note      string `json:"note" yaml:"note" mapstructure:"note"`
}

// Address is a parsed mailing address. HasState is false for countries
// without regions.
type Address struct {
	Line       string
	City       string
	State      string
	HasState   bool
	PostalCode string
	Country    string
}

// ParseAddress accepts (line, city, postal code, country) or
// (line, city, state, postal code, country). An empty slice means no
// address and returns nil.
func ParseAddress(fields []string) (*Address, error) {
	switch len(fields) {
	case 0:
		return nil, nil
	case 4:
		return &Address{Line: fields[0], City: fields[1], PostalCode: fields[2], Country: fields[3]}, nil
	case 5:
		return &Address{
			Line:       fields[0],
			City:       fields[1],
			State:      fields[2],
			HasState:   true,
			PostalCode: fields[3],
			Country:    fields[4],
		}, nil
	default:
		return nil, &AddressError{Len: len(fields)}
	}
}

// CreateRequest is everything needed to create one RFP.
type CreateRequest struct {
	Type       RequestType
	Name       string
	Payee      Payee
	Address    []string
	LineItems  []LineItem
	OfficeNote string
	Receipts   []string
	SendTo     *SendTo
}

type options struct {
	endpoints Endpoints
	progress  func(step string)
}

// Option configures a workflow.
type Option func(*options)

// WithEndpoints points a workflow at a different RFP deployment.
func WithEndpoints(ep Endpoints) Option {
	return func(o *options) { o.endpoints = ep }
}

// WithProgress reports each workflow step as it starts.
func WithProgress(fn func(step string)) Option {
	return func(o *options) { o.progress = fn }
}

func newOptions(opts []Option) *options {
	o := &options{endpoints: DefaultEndpoints}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// step checks for cancellation before announcing the next step.
func (o *options) step(ctx context.Context, format string, args ...interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := fmt.Sprintf(format, args...)
	debugLog.Infof("%s", msg)
	if o.progress != nil {
		o.progress(msg)
	}
	return nil
}

// Create fills in and saves a new RFP, attaches its receipts, optionally
// routes it, and returns the assigned RFP number. Input errors are reported
// before the driver is touched. A failure part way through leaves the
// remote record as the last completed step made it.
func Create(ctx context.Context, d browser.Driver, req CreateRequest, opts ...Option) (string, error) {
	o := newOptions(opts)

	addr, err := ParseAddress(req.Address)
	if err != nil {
		return "", err
	}
	open := OpenCreateReimbursement
	switch req.Type {
	case "", Reimbursement:
	case Payment:
		open = OpenCreatePayment
	default:
		return "", fmt.Errorf("%w: unknown request type %q", ErrMalformedInput, req.Type)
	}

	if err := o.step(ctx, "searching for payee %q", req.Payee.Name); err != nil {
		return "", err
	}
	payees, err := open(d, o.endpoints)
	if err != nil {
		return "", err
	}
	if err := payees.SetMIT(req.Payee.MIT); err != nil {
		return "", fmt.Errorf("payee type: %w", err)
	}
	if err := payees.SetPayeeName(req.Payee.Name); err != nil {
		return "", fmt.Errorf("payee name: %w", err)
	}
	if err := payees.Search(); err != nil {
		return "", err
	}
	results, err := payees.Results()
	if err != nil {
		return "", err
	}
	if len(results) != 1 {
		return "", &AmbiguousResultError{Search: "payee", Query: req.Payee.Name, Count: len(results)}
	}
	form, err := payees.SelectResult(0)
	if err != nil {
		return "", err
	}

	if err := o.step(ctx, "filling in %q", req.Name); err != nil {
		return "", err
	}
	if err := form.SetRFPName(req.Name); err != nil {
		return "", fmt.Errorf("rfp name: %w", err)
	}
	if addr != nil {
		if err := fillAddress(form.rfpForm, addr); err != nil {
			return "", err
		}
	}
	for i, li := range req.LineItems {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if i > 0 {
			if err := form.AddLine(); err != nil {
				return "", fmt.Errorf("add line item %d: %w", i, err)
			}
		}
		if err := form.SetLineItem(i, li); err != nil {
			return "", err
		}
	}
	if err := form.SetOfficeNote(req.OfficeNote); err != nil {
		return "", fmt.Errorf("office note: %w", err)
	}

	if err := o.step(ctx, "saving"); err != nil {
		return "", err
	}
	overlay, err := form.Save()
	if err != nil {
		return "", err
	}

	landing, err := attachReceipts(ctx, o, overlay, req.Receipts)
	if err != nil {
		return "", err
	}
	number, err := landing.RFPNumber()
	if err != nil {
		return "", err
	}
	debugLog.Infof("created RFP %s", number)

	if req.SendTo != nil {
		if err := sendTo(ctx, o, landing, req.SendTo); err != nil {
			return number, fmt.Errorf("RFP %s created but not sent: %w", number, err)
		}
	}
	return number, nil
}

// fillAddress sets the address fields. Country goes first because changing
// it resets the others. A missing state control is tolerated.
func fillAddress(f rfpForm, addr *Address) error {
	if err := f.SetCountry(addr.Country); err != nil {
		return fmt.Errorf("country: %w", err)
	}
	if err := f.SetAddress(addr.Line); err != nil {
		return fmt.Errorf("address: %w", err)
	}
	if err := f.SetCity(addr.City); err != nil {
		return fmt.Errorf("city: %w", err)
	}
	if addr.HasState {
		err := f.SetState(addr.State)
		switch {
		case errors.Is(err, browser.ErrNoSuchElement):
			debugLog.Warnf("no state field for %s, skipping state %q", addr.Country, addr.State)
		case err != nil:
			return fmt.Errorf("state: %w", err)
		}
	}
	if err := f.SetPostalCode(addr.PostalCode); err != nil {
		return fmt.Errorf("postal code: %w", err)
	}
	return nil
}

// attachReceipts uploads each receipt in order, reopening the overlay from
// the record between uploads. With no receipts the overlay is dismissed.
func attachReceipts(ctx context.Context, o *options, overlay *AttachReceiptPage, receipts []string) (Landing, error) {
	if len(receipts) == 0 {
		if err := o.step(ctx, "no receipts to attach"); err != nil {
			return Landing{}, err
		}
		return overlay.Cancel()
	}

	var landing Landing
	for i, path := range receipts {
		if err := o.step(ctx, "attaching receipt %d of %d: %s", i+1, len(receipts), path); err != nil {
			return Landing{}, err
		}
		if overlay == nil {
			var err error
			if overlay, err = landing.AttachReceipt(); err != nil {
				return Landing{}, err
			}
		}
		if err := overlay.SelectFile(path); err != nil {
			return Landing{}, err
		}
		var err error
		if landing, err = overlay.Attach(); err != nil {
			return Landing{}, err
		}
		overlay = nil
	}
	return landing, nil
}

// sendTo routes the record to the single recipient matching st.Recipient.
func sendTo(ctx context.Context, o *options, landing Landing, st *SendTo) error {
	if err := o.step(ctx, "sending to %q", st.Recipient); err != nil {
		return err
	}
	if landing.Edit == nil {
		return &UnexpectedPageError{Want: KindViewAndEdit, Got: landing.Kind()}
	}
	page, err := landing.Edit.SendTo()
	if err != nil {
		return err
	}
	if err := page.SetRecipientName(st.Recipient); err != nil {
		return fmt.Errorf("recipient name: %w", err)
	}
	if err := page.Search(); err != nil {
		return err
	}
	results, err := page.Results()
	if err != nil {
		return err
	}
	if len(results) != 1 {
		return &AmbiguousResultError{Search: "recipient", Query: st.Recipient, Count: len(results)}
	}
	if err := page.SetNote(st.Note); err != nil {
		return fmt.Errorf("note: %w", err)
	}
	_, err = page.Send()
	return err
}
