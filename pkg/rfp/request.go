package rfp

import (
	"github.com/entrhq/sapweb/pkg/browser"
)

// RequestRFPPage is the form for a request that has not been saved yet.
type RequestRFPPage struct {
	rfpForm
}

func newRequestRFPPage(d browser.Driver) (*RequestRFPPage, error) {
	f, err := newForm(d, KindRequestRFP)
	if err != nil {
		return nil, err
	}
	return &RequestRFPPage{f}, nil
}

func (p *RequestRFPPage) Kind() Kind { return KindRequestRFP }

func (p *RequestRFPPage) Payee() (string, error)  { return textbox(p.d, "#payee") }
func (p *RequestRFPPage) SetPayee(v string) error { return setTextbox(p.d, "#payee", v) }

// ChargeTo is the company code the request is charged to.
func (p *RequestRFPPage) ChargeTo() (string, error)  { return selected(p.d, "#coCode") }
func (p *RequestRFPPage) SetChargeTo(v string) error { return setSelect(p.d, "#coCode", v) }

// SSNTIN is entered for outside payees only.
func (p *RequestRFPPage) SSNTIN() (string, error)  { return textbox(p.d, "#ssnTin") }
func (p *RequestRFPPage) SetSSNTIN(v string) error { return setTextbox(p.d, "#ssnTin", v) }

// Save creates the record and opens the receipt overlay.
func (p *RequestRFPPage) Save() (*AttachReceiptPage, error) {
	if err := click(p.d, ".saveAction"); err != nil {
		return nil, err
	}
	if err := p.guard(KindRequestRFP, ActionSave, KindAttachReceipt); err != nil {
		return nil, err
	}
	return newAttachReceiptPage(p.d, KindRequestRFP, ActionSave)
}
