package rfp

import (
	"github.com/entrhq/sapweb/pkg/browser"
)

// ViewAndEditPage is a saved record that can still be changed, either just
// created or opened from the inbox. Payment details and tax identity are
// read-only here.
type ViewAndEditPage struct {
	rfpForm
}

func newViewAndEditPage(d browser.Driver) (*ViewAndEditPage, error) {
	f, err := newForm(d, KindViewAndEdit)
	if err != nil {
		return nil, err
	}
	return &ViewAndEditPage{f}, nil
}

func (p *ViewAndEditPage) Kind() Kind { return KindViewAndEdit }

func (p *ViewAndEditPage) RFPNumber() (string, error) { return dataList(p.d, "RFP Number") }
func (p *ViewAndEditPage) Payee() (string, error)     { return dataList(p.d, "Payee") }
func (p *ViewAndEditPage) ChargeTo() (string, error)  { return dataList(p.d, "Charge to") }

// SSNTIN is shown for outside payees only.
func (p *ViewAndEditPage) SSNTIN() (string, error) { return dataList(p.d, "SSN/TIN") }

// AttachReceipt opens the receipt overlay. Errors from earlier actions stay
// on the page, so they are not treated as a failed transition here.
func (p *ViewAndEditPage) AttachReceipt() (*AttachReceiptPage, error) {
	if err := click(p.d, ".attachReceipts"); err != nil {
		return nil, err
	}
	return newAttachReceiptPage(p.d, KindViewAndEdit, ActionAttachReceipt)
}

// Save stores the record. The page reloads in place; check Errors for
// validation failures.
func (p *ViewAndEditPage) Save() error {
	if err := click(p.d, ".saveAction"); err != nil {
		return err
	}
	logTransition(KindViewAndEdit, ActionSave, KindViewAndEdit)
	return nil
}

// SendTo opens the routing page.
func (p *ViewAndEditPage) SendTo() (*SendToPage, error) {
	if err := click(p.d, ".sendToAction"); err != nil {
		return nil, err
	}
	if err := p.guard(KindViewAndEdit, ActionSendTo, KindSendTo); err != nil {
		return nil, err
	}
	logTransition(KindViewAndEdit, ActionSendTo, KindSendTo)
	return &SendToPage{base{p.d}}, nil
}
