package rfp

import (
	"fmt"
	"strings"

	"github.com/entrhq/sapweb/pkg/browser"
)

// ViewOnlyPage is a record that can no longer be edited by the user, such
// as one reached from search or after routing.
type ViewOnlyPage struct {
	base
}

func newViewOnlyPage(d browser.Driver) *ViewOnlyPage {
	return &ViewOnlyPage{base{d}}
}

func (p *ViewOnlyPage) Kind() Kind         { return KindViewOnly }
func (p *ViewOnlyPage) HelpURLs() []string { return helpURLs(rfpHelp) }

// Inbox names whose inbox holds the record, when shown.
func (p *ViewOnlyPage) Inbox() (*string, error) { return tryDataList(p.d, "Inbox") }

func (p *ViewOnlyPage) RFPNumber() (string, error)     { return dataList(p.d, "RFP Number") }
func (p *ViewOnlyPage) Payee() (string, error)         { return dataList(p.d, "Payee") }
func (p *ViewOnlyPage) CompanyCode() (string, error)   { return dataList(p.d, "Company Code") }
func (p *ViewOnlyPage) RFPName() (string, error)       { return dataList(p.d, "Name of RFP") }
func (p *ViewOnlyPage) RFPType() (string, error)       { return dataList(p.d, "Type of RFP") }
func (p *ViewOnlyPage) PaymentMethod() (string, error) { return dataList(p.d, "Payment Method") }

// MailingInstructions is the heading of the chosen delivery option.
func (p *ViewOnlyPage) MailingInstructions() (*string, error) {
	return tryText(p.d, browser.XPath(
		"//h2[normalize-space(.)='Mailing Instructions']/following-sibling::div[@class='sectionContainer'][1]//h4"))
}

// Mailing and tax fields depend on the payee type and delivery option, so
// each may be absent.

func (p *ViewOnlyPage) Addressee() (*string, error)  { return tryDataList(p.d, "Name") }
func (p *ViewOnlyPage) Phone() (*string, error)      { return tryDataList(p.d, "Phone") }
func (p *ViewOnlyPage) Address() (*string, error)    { return tryDataList(p.d, "Address") }
func (p *ViewOnlyPage) City() (*string, error)       { return tryDataList(p.d, "City") }
func (p *ViewOnlyPage) State() (*string, error)      { return tryDataList(p.d, "State/Region") }
func (p *ViewOnlyPage) PostalCode() (*string, error) { return tryDataList(p.d, "Postal Code") }
func (p *ViewOnlyPage) Country() (*string, error)    { return tryDataList(p.d, "Country") }
func (p *ViewOnlyPage) TaxType() (*string, error)    { return tryDataList(p.d, "Tax Entity Type") }
func (p *ViewOnlyPage) SSNTIN() (*string, error)     { return tryDataList(p.d, "SSN/TIN") }

func (p *ViewOnlyPage) LineItemCount() (int, error) { return count(p.d, ".lineItem") }

// Line item table columns.
const (
	lineColDate = iota
	lineColGLAccount
	lineColCostObject
	lineColAmount
)

func (p *ViewOnlyPage) lineCell(i, col int) (string, error) {
	item, err := nth(p.d, browser.CSS(".lineItem"), i)
	if err != nil {
		return "", err
	}
	cells, err := item.FindAll(browser.CSS("td"))
	if err != nil {
		return "", err
	}
	if col >= len(cells) {
		return "", fmt.Errorf("%w: line item %d column %d of %d", browser.ErrNoSuchElement, i, col, len(cells))
	}
	text, err := cells[col].Text()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (p *ViewOnlyPage) DateOfService(i int) (string, error) { return p.lineCell(i, lineColDate) }
func (p *ViewOnlyPage) GLAccount(i int) (string, error)     { return p.lineCell(i, lineColGLAccount) }
func (p *ViewOnlyPage) CostObject(i int) (string, error)    { return p.lineCell(i, lineColCostObject) }
func (p *ViewOnlyPage) Amount(i int) (string, error)        { return p.lineCell(i, lineColAmount) }

func (p *ViewOnlyPage) Explanation(i int) (string, error) {
	item, err := nth(p.d, browser.CSS(".lineItem"), i)
	if err != nil {
		return "", err
	}
	el, err := item.Find(browser.CSS("div.data.indent1"))
	if err != nil {
		return "", err
	}
	text, err := el.Text()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// LineItem reads every field of line item i.
func (p *ViewOnlyPage) LineItem(i int) (LineItem, error) {
	var li LineItem
	var err error
	for _, f := range []struct {
		dst *string
		get func(int) (string, error)
	}{
		{&li.DateOfService, p.DateOfService},
		{&li.GLAccount, p.GLAccount},
		{&li.CostObject, p.CostObject},
		{&li.Amount, p.Amount},
		{&li.Explanation, p.Explanation},
	} {
		if *f.dst, err = f.get(i); err != nil {
			return li, fmt.Errorf("line item %d: %w", i, err)
		}
	}
	return li, nil
}

// OfficeNote is the note to the central office, when one was left.
func (p *ViewOnlyPage) OfficeNote() (*string, error) {
	return tryText(p.d, browser.XPath(
		"//h3[normalize-space(.)='Note to Central Office']/following-sibling::div[@class='sectionContainer'][1]"))
}

// AttachReceipt opens the receipt overlay.
func (p *ViewOnlyPage) AttachReceipt() (*AttachReceiptPage, error) {
	if err := click(p.d, ".attachReceipts"); err != nil {
		return nil, err
	}
	return newAttachReceiptPage(p.d, KindViewOnly, ActionAttachReceipt)
}

// HistoryEntry is one row of the approval history.
type HistoryEntry struct {
	Date   string `json:"date" yaml:"date"`
	Time   string `json:"time" yaml:"time"`
	Action string `json:"action" yaml:"action"`
}

// History reads the approval history, oldest first. It is the last header
// table on the page, three cells per entry.
func (p *ViewOnlyPage) History() ([]HistoryEntry, error) {
	tables, err := p.d.FindAll(browser.CSS(".topHeadersTable"))
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("%w: history table", browser.ErrNoSuchElement)
	}
	cells, err := tables[len(tables)-1].FindAll(browser.CSS("td"))
	if err != nil {
		return nil, err
	}
	if len(cells)%3 != 0 {
		return nil, fmt.Errorf("history table has %d cells, want a multiple of 3", len(cells))
	}

	text := make([]string, len(cells))
	for i, c := range cells {
		t, err := c.Text()
		if err != nil {
			return nil, err
		}
		text[i] = strings.TrimSpace(t)
	}

	entries := make([]HistoryEntry, 0, len(cells)/3)
	for i := 0; i < len(text); i += 3 {
		entries = append(entries, HistoryEntry{Date: text[i], Time: text[i+1], Action: text[i+2]})
	}
	return entries, nil
}
