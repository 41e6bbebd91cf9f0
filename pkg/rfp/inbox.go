package rfp

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/entrhq/sapweb/pkg/browser"
)

// Inbox row columns, by position.
const (
	inboxColReceipt      = 2
	inboxColCreationDate = 4
	inboxColPayee        = 5
	inboxColCreatedBy    = 6
	inboxColCostObject   = 7
	inboxColAmount       = 8
	inboxColDelete       = 9
)

// inboxRowSelector finds descendants of the cells in the row for rfp.
func inboxRowSelector(rfp, descendant string) browser.Selector {
	return browser.XPath(fmt.Sprintf("//a[contains(text(), '%s')]/../../td//%s", rfp, descendant))
}

// InboxPage lists the records in the user's inbox.
type InboxPage struct {
	base
}

// OpenInbox navigates to the inbox.
func OpenInbox(d browser.Driver, ep Endpoints) (*InboxPage, error) {
	if err := d.Navigate(ep.Inbox()); err != nil {
		return nil, fmt.Errorf("open inbox: %w", err)
	}
	return &InboxPage{base{d}}, nil
}

func (p *InboxPage) Kind() Kind         { return KindInbox }
func (p *InboxPage) HelpURLs() []string { return helpURLs(inboxHelp) }

// List returns the RFP numbers shown in the inbox.
func (p *InboxPage) List() ([]string, error) {
	return texts(p.d, browser.CSS("td.data > a"))
}

// Select opens an inbox record for editing.
func (p *InboxPage) Select(rfp string) (*ViewAndEditPage, error) {
	el, err := p.d.Find(inboxRowSelector(rfp, "a"))
	if err != nil {
		return nil, err
	}
	if err := el.Click(); err != nil {
		return nil, fmt.Errorf("select %s: %w", rfp, err)
	}
	if err := p.guard(KindInbox, ActionSelect, KindViewAndEdit); err != nil {
		return nil, err
	}
	logTransition(KindInbox, ActionSelect, KindViewAndEdit)
	return newViewAndEditPage(p.d)
}

// State returns the status icon of a row, title-cased. ok is false when
// the row has no icon.
func (p *InboxPage) State(rfp string) (state string, ok bool, err error) {
	imgs, err := p.d.FindAll(inboxRowSelector(rfp, "img"))
	if err != nil {
		return "", false, err
	}
	switch len(imgs) {
	case 0:
		return "", false, nil
	case 1:
	default:
		return "", false, fmt.Errorf("row %s has %d state icons, want at most 1", rfp, len(imgs))
	}
	alt, err := imgs[0].Attribute("alt")
	if err != nil {
		return "", false, err
	}
	return cases.Title(language.English).String(alt), true, nil
}

// Receipt reports whether receipts are attached.
func (p *InboxPage) Receipt(rfp string) (bool, error) {
	v, err := rowCell(p.d, rfp, inboxColReceipt)
	return v == "Yes", err
}

func (p *InboxPage) CreationDate(rfp string) (string, error) {
	return rowCell(p.d, rfp, inboxColCreationDate)
}

func (p *InboxPage) Payee(rfp string) (string, error) {
	return rowCell(p.d, rfp, inboxColPayee)
}

func (p *InboxPage) CreatedBy(rfp string) (string, error) {
	return rowCell(p.d, rfp, inboxColCreatedBy)
}

func (p *InboxPage) CostObject(rfp string) (string, error) {
	return rowCell(p.d, rfp, inboxColCostObject)
}

func (p *InboxPage) Amount(rfp string) (string, error) {
	return rowCell(p.d, rfp, inboxColAmount)
}

// IsDeletable reports whether the row offers a delete checkbox.
func (p *InboxPage) IsDeletable(rfp string) (bool, error) {
	v, err := rowCell(p.d, rfp, inboxColDelete)
	if err != nil {
		return false, err
	}
	return v != "n/a", nil
}

func deleteCheckbox(rfp string) browser.Selector {
	return inboxRowSelector(rfp, "input[@type='checkbox']")
}

// MarkedForDeletion reports whether the row's delete checkbox is ticked.
func (p *InboxPage) MarkedForDeletion(rfp string) (bool, error) {
	el, err := p.d.Find(deleteCheckbox(rfp))
	if err != nil {
		return false, err
	}
	return el.IsSelected()
}

// SetMarkedForDeletion ticks or clears the row's delete checkbox.
func (p *InboxPage) SetMarkedForDeletion(rfp string, mark bool) error {
	el, err := p.d.Find(deleteCheckbox(rfp))
	if err != nil {
		return err
	}
	return toggle(el, "delete "+rfp, mark)
}

// DeleteSelected deletes every marked row. The inbox reloads in place.
func (p *InboxPage) DeleteSelected() error {
	return click(p.d, ".deleteButton")
}

func cloneButton(rfp string) browser.Selector {
	return inboxRowSelector(rfp, "button[contains(@class, 'clone')]")
}

// IsCloneable reports whether the row offers a clone button.
func (p *InboxPage) IsCloneable(rfp string) (bool, error) {
	buttons, err := p.d.FindAll(cloneButton(rfp))
	if err != nil {
		return false, err
	}
	return len(buttons) > 0, nil
}

// Clone copies a record into a new editable draft.
func (p *InboxPage) Clone(rfp string) (*ViewAndEditPage, error) {
	el, err := p.d.Find(cloneButton(rfp))
	if err != nil {
		return nil, err
	}
	if err := el.Click(); err != nil {
		return nil, fmt.Errorf("clone %s: %w", rfp, err)
	}
	if err := p.guard(KindInbox, ActionClone, KindViewAndEdit); err != nil {
		return nil, err
	}
	logTransition(KindInbox, ActionClone, KindViewAndEdit)
	return newViewAndEditPage(p.d)
}

// InboxRow is one inbox entry.
type InboxRow struct {
	RFPNumber    string `json:"rfp_number" yaml:"rfp_number"`
	State        string `json:"state,omitempty" yaml:"state,omitempty"`
	Receipt      bool   `json:"receipt" yaml:"receipt"`
	CreationDate string `json:"creation_date" yaml:"creation_date"`
	Payee        string `json:"payee" yaml:"payee"`
	CreatedBy    string `json:"created_by" yaml:"created_by"`
	CostObject   string `json:"cost_object" yaml:"cost_object"`
	Amount       string `json:"amount" yaml:"amount"`
	Deletable    bool   `json:"deletable" yaml:"deletable"`
}

// Row reads every column of one inbox entry.
func (p *InboxPage) Row(rfp string) (InboxRow, error) {
	row := InboxRow{RFPNumber: rfp}
	var err error
	if row.State, _, err = p.State(rfp); err != nil {
		return row, err
	}
	if row.Receipt, err = p.Receipt(rfp); err != nil {
		return row, err
	}
	for _, f := range []struct {
		dst *string
		get func(string) (string, error)
	}{
		{&row.CreationDate, p.CreationDate},
		{&row.Payee, p.Payee},
		{&row.CreatedBy, p.CreatedBy},
		{&row.CostObject, p.CostObject},
		{&row.Amount, p.Amount},
	} {
		if *f.dst, err = f.get(rfp); err != nil {
			return row, err
		}
	}
	row.Deletable, err = p.IsDeletable(rfp)
	return row, err
}
