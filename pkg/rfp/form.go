package rfp

import (
	"fmt"
	"strings"

	"github.com/entrhq/sapweb/pkg/browser"
)

const (
	citizenGroup   = "rfpDocument.payee.usCitizenType"
	mailToMITGroup = "rfpDocument.mailToMit"

	// Address index 1 is the permanent address used by payments, whose
	// mailing address must match it; 2 is the reimbursement mailing address.
	paymentAddressIndex       = 1
	reimbursementAddressIndex = 2
)

// LineItem is one expense line of a request.
type LineItem struct {
	DateOfService string `json:"date_of_service" yaml:"date_of_service" mapstructure:"date_of_service"`
	GLAccount     string `json:"gl_account" yaml:"gl_account" mapstructure:"gl_account"`
	CostObject    string `json:"cost_object" yaml:"cost_object" mapstructure:"cost_object"`
	Amount        string `json:"amount" yaml:"amount" mapstructure:"amount"`
	Explanation   string `json:"explanation" yaml:"explanation" mapstructure:"explanation"`
}

// rfpForm holds the editable fields shared by a new request and an editable
// record.
type rfpForm struct {
	base
	kind  Kind
	index int
}

func newForm(d browser.Driver, kind Kind) (rfpForm, error) {
	title, err := d.Title()
	if err != nil {
		return rfpForm{}, err
	}
	f := rfpForm{base: base{d}, kind: kind, index: reimbursementAddressIndex}
	if strings.Contains(title, paymentTitle) {
		f.index = paymentAddressIndex
	}
	return f, nil
}

// AddressIndex reports which address block the form edits.
func (f rfpForm) AddressIndex() int { return f.index }

func (f rfpForm) HelpURLs() []string { return helpURLs(rfpHelp) }

// ChangePayee returns to the payee search.
func (f rfpForm) ChangePayee() (*SearchForPayeePage, error) {
	if err := click(f.d, ".changePayeeAction"); err != nil {
		return nil, err
	}
	if err := f.guard(f.kind, ActionChangePayee, KindSearchForPayee); err != nil {
		return nil, err
	}
	logTransition(f.kind, ActionChangePayee, KindSearchForPayee)
	return &SearchForPayeePage{base{f.d}}, nil
}

func (f rfpForm) RFPName() (string, error)     { return textbox(f.d, "#rfpName") }
func (f rfpForm) SetRFPName(name string) error { return setTextbox(f.d, "#rfpName", name) }

func (f rfpForm) field(name string) string {
	return fmt.Sprintf("#%s%d", name, f.index)
}

func (f rfpForm) Country() (string, error)  { return selected(f.d, f.field("country")) }
func (f rfpForm) SetCountry(v string) error { return setSelect(f.d, f.field("country"), v) }

func (f rfpForm) Address() (string, error)  { return textbox(f.d, f.field("address")) }
func (f rfpForm) SetAddress(v string) error { return setTextbox(f.d, f.field("address"), v) }

func (f rfpForm) City() (string, error)  { return textbox(f.d, f.field("city")) }
func (f rfpForm) SetCity(v string) error { return setTextbox(f.d, f.field("city"), v) }

// State is only present for countries with regions.
func (f rfpForm) State() (string, error)  { return selected(f.d, f.field("region")) }
func (f rfpForm) SetState(v string) error { return setSelect(f.d, f.field("region"), v) }

func (f rfpForm) PostalCode() (string, error)  { return textbox(f.d, f.field("zip")) }
func (f rfpForm) SetPostalCode(v string) error { return setTextbox(f.d, f.field("zip"), v) }

// Tax information, outside payees only.

func (f rfpForm) CitizenAlien() (string, bool, error) { return radio(f.d, citizenGroup) }
func (f rfpForm) SetCitizenAlien(v string) error      { return setRadio(f.d, citizenGroup, v) }

func (f rfpForm) Visa() (string, error)  { return textbox(f.d, "#visaType") }
func (f rfpForm) SetVisa(v string) error { return setTextbox(f.d, "#visaType", v) }

func (f rfpForm) Citizenship() (string, error)  { return selected(f.d, "#citizenship") }
func (f rfpForm) SetCitizenship(v string) error { return setSelect(f.d, "#citizenship", v) }

// Mailing instructions, outside payees only.

// MailCheck reports whether the check is mailed to the payee rather than
// delivered to an MIT address.
func (f rfpForm) MailCheck() (bool, error) {
	v, _, err := radio(f.d, mailToMITGroup)
	return v == "false", err
}

func (f rfpForm) SetMailCheck(mail bool) error {
	if mail {
		return setRadio(f.d, mailToMITGroup, "false")
	}
	return setRadio(f.d, mailToMITGroup, "true")
}

// HoldCheck reports whether the check is held for pickup.
func (f rfpForm) HoldCheck() (bool, error)  { return checkbox(f.d, "#holdCheck") }
func (f rfpForm) SetHoldCheck(v bool) error { return setCheckbox(f.d, "#holdCheck", v) }

func (f rfpForm) Addressee() (string, error)  { return textbox(f.d, "#addressee") }
func (f rfpForm) SetAddressee(v string) error { return setTextbox(f.d, "#addressee", v) }

// BuildingRoom and Phone share one input; the UI relabels it depending on
// the delivery option.
func (f rfpForm) BuildingRoom() (string, error)  { return textbox(f.d, "#bldg-rm") }
func (f rfpForm) SetBuildingRoom(v string) error { return setTextbox(f.d, "#bldg-rm", v) }
func (f rfpForm) Phone() (string, error)         { return textbox(f.d, "#bldg-rm") }
func (f rfpForm) SetPhone(v string) error        { return setTextbox(f.d, "#bldg-rm", v) }

// Line items are zero-indexed.

func (f rfpForm) LineItemCount() (int, error) { return count(f.d, ".lineItem") }

func lineField(name string, i int) string { return fmt.Sprintf("#%s-%d", name, i) }

func (f rfpForm) DateOfService(i int) (string, error) { return textbox(f.d, lineField("serviceDate", i)) }
func (f rfpForm) SetDateOfService(i int, v string) error {
	return setTextbox(f.d, lineField("serviceDate", i), v)
}

func (f rfpForm) GLAccount(i int) (string, error) { return textbox(f.d, lineField("glAccount", i)) }
func (f rfpForm) SetGLAccount(i int, v string) error {
	return setTextbox(f.d, lineField("glAccount", i), v)
}

func (f rfpForm) CostObject(i int) (string, error) { return textbox(f.d, lineField("costObject", i)) }
func (f rfpForm) SetCostObject(i int, v string) error {
	return setTextbox(f.d, lineField("costObject", i), v)
}

func (f rfpForm) Amount(i int) (string, error) { return textbox(f.d, lineField("amount", i)) }
func (f rfpForm) SetAmount(i int, v string) error {
	return setTextbox(f.d, lineField("amount", i), v)
}

func (f rfpForm) Explanation(i int) (string, error) { return textbox(f.d, lineField("description", i)) }
func (f rfpForm) SetExplanation(i int, v string) error {
	return setTextbox(f.d, lineField("description", i), v)
}

// SetLineItem fills every field of line item i.
func (f rfpForm) SetLineItem(i int, li LineItem) error {
	for _, set := range []struct {
		name string
		fn   func(int, string) error
		v    string
	}{
		{"date of service", f.SetDateOfService, li.DateOfService},
		{"gl account", f.SetGLAccount, li.GLAccount},
		{"cost object", f.SetCostObject, li.CostObject},
		{"amount", f.SetAmount, li.Amount},
		{"explanation", f.SetExplanation, li.Explanation},
	} {
		if err := set.fn(i, set.v); err != nil {
			return fmt.Errorf("line item %d %s: %w", i, set.name, err)
		}
	}
	return nil
}

// AddLine appends an empty line item.
func (f rfpForm) AddLine() error { return click(f.d, "#addLine") }

func (f rfpForm) OfficeNote() (string, error)  { return textbox(f.d, "#messageForAP") }
func (f rfpForm) SetOfficeNote(v string) error { return setTextbox(f.d, "#messageForAP", v) }
