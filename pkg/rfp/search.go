package rfp

import (
	"fmt"

	"github.com/entrhq/sapweb/pkg/browser"
)

const searchResults = "td.data a[href^='SearchDrillDown']"

// Search result columns, by position.
const (
	searchColCreationDate = iota + 1
	searchColPayee
	searchColCreatedBy
	searchColRFPName
	searchColLocationStatus
	searchColCostObject
	searchColAmount
)

// SearchPage finds records by number, payee, dates and account.
type SearchPage struct {
	base
}

// OpenSearch navigates to the record search.
func OpenSearch(d browser.Driver, ep Endpoints) (*SearchPage, error) {
	if err := d.Navigate(ep.Search()); err != nil {
		return nil, fmt.Errorf("open search: %w", err)
	}
	return &SearchPage{base{d}}, nil
}

func (p *SearchPage) Kind() Kind         { return KindSearch }
func (p *SearchPage) HelpURLs() []string { return helpURLs(searchHelp) }

// RFPTypes selects which record states a search covers.
type RFPTypes struct {
	Parked  bool `json:"parked" yaml:"parked" mapstructure:"parked"`
	Posted  bool `json:"posted" yaml:"posted" mapstructure:"posted"`
	Deleted bool `json:"deleted" yaml:"deleted" mapstructure:"deleted"`
}

func (p *SearchPage) RFPTypes() (RFPTypes, error) {
	var t RFPTypes
	var err error
	if t.Parked, err = checkbox(p.d, "#parked"); err != nil {
		return t, err
	}
	if t.Posted, err = checkbox(p.d, "#posted"); err != nil {
		return t, err
	}
	t.Deleted, err = checkbox(p.d, "#deleted")
	return t, err
}

func (p *SearchPage) SetRFPTypes(t RFPTypes) error {
	if err := setCheckbox(p.d, "#parked", t.Parked); err != nil {
		return err
	}
	if err := setCheckbox(p.d, "#posted", t.Posted); err != nil {
		return err
	}
	return setCheckbox(p.d, "#deleted", t.Deleted)
}

func (p *SearchPage) CompanyCode() (string, error)  { return selected(p.d, "#coCode") }
func (p *SearchPage) SetCompanyCode(v string) error { return setSelect(p.d, "#coCode", v) }

func (p *SearchPage) RFPNumber() (string, error)  { return textbox(p.d, "#rfpNumber") }
func (p *SearchPage) SetRFPNumber(v string) error { return setTextbox(p.d, "#rfpNumber", v) }

func (p *SearchPage) CreationStart() (string, error)  { return textbox(p.d, "#creationStartDate") }
func (p *SearchPage) SetCreationStart(v string) error { return setTextbox(p.d, "#creationStartDate", v) }
func (p *SearchPage) CreationEnd() (string, error)    { return textbox(p.d, "#creationEndDate") }
func (p *SearchPage) SetCreationEnd(v string) error   { return setTextbox(p.d, "#creationEndDate", v) }

func (p *SearchPage) Payee() (string, error)  { return textbox(p.d, "#payee") }
func (p *SearchPage) SetPayee(v string) error { return setTextbox(p.d, "#payee", v) }

func (p *SearchPage) RFPName() (string, error)  { return textbox(p.d, "#filingLabel") }
func (p *SearchPage) SetRFPName(v string) error { return setTextbox(p.d, "#filingLabel", v) }

func (p *SearchPage) CostObject() (string, error)  { return textbox(p.d, "#costObject") }
func (p *SearchPage) SetCostObject(v string) error { return setTextbox(p.d, "#costObject", v) }

func (p *SearchPage) GLAccount() (string, error)  { return textbox(p.d, "#glAccount") }
func (p *SearchPage) SetGLAccount(v string) error { return setTextbox(p.d, "#glAccount", v) }

// Search runs the query. A unique match opens the record directly.
func (p *SearchPage) Search() (SearchOutcome, error) {
	if err := click(p.d, "#searchButton"); err != nil {
		return SearchOutcome{}, err
	}
	if err := p.guard(KindSearch, ActionSearch, KindSearch); err != nil {
		return SearchOutcome{}, err
	}
	display, err := p.titleContains(displayTitle)
	if err != nil {
		return SearchOutcome{}, err
	}
	if display {
		logTransition(KindSearch, ActionSearch, KindViewOnly)
		return SearchOutcome{Record: newViewOnlyPage(p.d)}, nil
	}
	logTransition(KindSearch, ActionSearch, KindSearch)
	return SearchOutcome{Results: p}, nil
}

// Results lists the RFP numbers found. Numbers here may carry a leading
// zero that the record page does not show.
func (p *SearchPage) Results() ([]string, error) {
	return texts(p.d, browser.CSS(searchResults))
}

// SelectResult opens the i-th result.
func (p *SearchPage) SelectResult(i int) (*ViewOnlyPage, error) {
	el, err := nth(p.d, browser.CSS(searchResults), i)
	if err != nil {
		return nil, err
	}
	if err := el.Click(); err != nil {
		return nil, fmt.Errorf("select result %d: %w", i, err)
	}
	if err := p.guard(KindSearch, ActionResults, KindViewOnly); err != nil {
		return nil, err
	}
	logTransition(KindSearch, ActionResults, KindViewOnly)
	return newViewOnlyPage(p.d), nil
}

func (p *SearchPage) ResultCreationDate(rfp string) (string, error) {
	return rowCell(p.d, rfp, searchColCreationDate)
}

func (p *SearchPage) ResultPayee(rfp string) (string, error) {
	return rowCell(p.d, rfp, searchColPayee)
}

func (p *SearchPage) ResultCreatedBy(rfp string) (string, error) {
	return rowCell(p.d, rfp, searchColCreatedBy)
}

func (p *SearchPage) ResultRFPName(rfp string) (string, error) {
	return rowCell(p.d, rfp, searchColRFPName)
}

func (p *SearchPage) ResultLocationStatus(rfp string) (string, error) {
	return rowCell(p.d, rfp, searchColLocationStatus)
}

func (p *SearchPage) ResultCostObject(rfp string) (string, error) {
	return rowCell(p.d, rfp, searchColCostObject)
}

func (p *SearchPage) ResultAmount(rfp string) (string, error) {
	return rowCell(p.d, rfp, searchColAmount)
}

// SearchRow is one search result.
type SearchRow struct {
	RFPNumber      string `json:"rfp_number" yaml:"rfp_number"`
	CreationDate   string `json:"creation_date" yaml:"creation_date"`
	Payee          string `json:"payee" yaml:"payee"`
	CreatedBy      string `json:"created_by" yaml:"created_by"`
	RFPName        string `json:"rfp_name" yaml:"rfp_name"`
	LocationStatus string `json:"location_status" yaml:"location_status"`
	CostObject     string `json:"cost_object" yaml:"cost_object"`
	Amount         string `json:"amount" yaml:"amount"`
}

// Row reads every column of one result.
func (p *SearchPage) Row(rfp string) (SearchRow, error) {
	row := SearchRow{RFPNumber: rfp}
	for _, f := range []struct {
		dst *string
		get func(string) (string, error)
	}{
		{&row.CreationDate, p.ResultCreationDate},
		{&row.Payee, p.ResultPayee},
		{&row.CreatedBy, p.ResultCreatedBy},
		{&row.RFPName, p.ResultRFPName},
		{&row.LocationStatus, p.ResultLocationStatus},
		{&row.CostObject, p.ResultCostObject},
		{&row.Amount, p.ResultAmount},
	} {
		var err error
		if *f.dst, err = f.get(rfp); err != nil {
			return row, err
		}
	}
	return row, nil
}
