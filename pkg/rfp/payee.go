package rfp

import (
	"fmt"

	"github.com/entrhq/sapweb/pkg/browser"
)

const (
	payeeTypeGroup = "payeeType"
	payeeTypeMIT   = "MIT"
	payeeTypeOther = "NONMIT"
	payeeResults   = "#mit a"
)

// SearchForPayeePage is the first step of creating an RFP.
type SearchForPayeePage struct {
	base
}

// OpenCreateReimbursement starts a new reimbursement.
func OpenCreateReimbursement(d browser.Driver, ep Endpoints) (*SearchForPayeePage, error) {
	if err := d.Navigate(ep.CreateReimbursement()); err != nil {
		return nil, fmt.Errorf("open create reimbursement: %w", err)
	}
	return &SearchForPayeePage{base{d}}, nil
}

// OpenCreatePayment starts a new payment.
func OpenCreatePayment(d browser.Driver, ep Endpoints) (*SearchForPayeePage, error) {
	if err := d.Navigate(ep.CreatePayment()); err != nil {
		return nil, fmt.Errorf("open create payment: %w", err)
	}
	return &SearchForPayeePage{base{d}}, nil
}

func (p *SearchForPayeePage) Kind() Kind         { return KindSearchForPayee }
func (p *SearchForPayeePage) HelpURLs() []string { return helpURLs(payeeHelp) }

// IsMIT reports whether the search covers MIT people rather than outside
// payees.
func (p *SearchForPayeePage) IsMIT() (bool, error) {
	v, _, err := radio(p.d, payeeTypeGroup)
	return v == payeeTypeMIT, err
}

func (p *SearchForPayeePage) SetMIT(mit bool) error {
	if mit {
		return setRadio(p.d, payeeTypeGroup, payeeTypeMIT)
	}
	return setRadio(p.d, payeeTypeGroup, payeeTypeOther)
}

func (p *SearchForPayeePage) PayeeName() (string, error) {
	return textbox(p.d, "#payeeName")
}

func (p *SearchForPayeePage) SetPayeeName(name string) error {
	return setTextbox(p.d, "#payeeName", name)
}

// Search runs the payee search. Results load in place.
func (p *SearchForPayeePage) Search() error {
	if err := click(p.d, "#searchButton"); err != nil {
		return err
	}
	logTransition(KindSearchForPayee, ActionSearch, KindSearchForPayee)
	return nil
}

// Results returns the payees found by the last search. Outside-payee
// searches include a "continue without a match" entry.
func (p *SearchForPayeePage) Results() ([]string, error) {
	return texts(p.d, browser.CSS(payeeResults))
}

// SelectResult picks the i-th result and opens the request form.
func (p *SearchForPayeePage) SelectResult(i int) (*RequestRFPPage, error) {
	el, err := nth(p.d, browser.CSS(payeeResults), i)
	if err != nil {
		return nil, err
	}
	if err := el.Click(); err != nil {
		return nil, fmt.Errorf("select payee %d: %w", i, err)
	}
	if err := p.guard(KindSearchForPayee, ActionResults, KindRequestRFP); err != nil {
		return nil, err
	}
	logTransition(KindSearchForPayee, ActionResults, KindRequestRFP)
	return newRequestRFPPage(p.d)
}
