package rfp

import (
	"context"
	"fmt"

	"github.com/entrhq/sapweb/pkg/browser"
)

// SearchCriteria narrows a record search. Empty fields are left as the
// page defaults them; Types is applied only when set.
type SearchCriteria struct {
	RFPNumber     string    `json:"rfp_number,omitempty" yaml:"rfp_number,omitempty"`
	CompanyCode   string    `json:"company_code,omitempty" yaml:"company_code,omitempty"`
	CreationStart string    `json:"creation_start,omitempty" yaml:"creation_start,omitempty"`
	CreationEnd   string    `json:"creation_end,omitempty" yaml:"creation_end,omitempty"`
	Payee         string    `json:"payee,omitempty" yaml:"payee,omitempty"`
	RFPName       string    `json:"rfp_name,omitempty" yaml:"rfp_name,omitempty"`
	CostObject    string    `json:"cost_object,omitempty" yaml:"cost_object,omitempty"`
	GLAccount     string    `json:"gl_account,omitempty" yaml:"gl_account,omitempty"`
	Types         *RFPTypes `json:"types,omitempty" yaml:"types,omitempty"`
}

// IsEmpty reports whether no criterion is set.
func (c SearchCriteria) IsEmpty() bool {
	return c == SearchCriteria{}
}

func (c SearchCriteria) apply(p *SearchPage) error {
	if c.Types != nil {
		if err := p.SetRFPTypes(*c.Types); err != nil {
			return fmt.Errorf("rfp types: %w", err)
		}
	}
	if c.CompanyCode != "" {
		if err := p.SetCompanyCode(c.CompanyCode); err != nil {
			return fmt.Errorf("company code: %w", err)
		}
	}
	for _, f := range []struct {
		name string
		v    string
		set  func(string) error
	}{
		{"rfp number", c.RFPNumber, p.SetRFPNumber},
		{"creation start", c.CreationStart, p.SetCreationStart},
		{"creation end", c.CreationEnd, p.SetCreationEnd},
		{"payee", c.Payee, p.SetPayee},
		{"rfp name", c.RFPName, p.SetRFPName},
		{"cost object", c.CostObject, p.SetCostObject},
		{"gl account", c.GLAccount, p.SetGLAccount},
	} {
		if f.v == "" {
			continue
		}
		if err := f.set(f.v); err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
	}
	return nil
}

// Search runs a record search and returns one row per match. When the
// search opens a single record directly, the row is filled from it and
// the list-only columns stay empty.
func Search(ctx context.Context, d browser.Driver, c SearchCriteria, opts ...Option) ([]SearchRow, error) {
	o := newOptions(opts)
	if c.IsEmpty() {
		return nil, fmt.Errorf("%w: no search criteria", ErrMalformedInput)
	}

	if err := o.step(ctx, "searching"); err != nil {
		return nil, err
	}
	page, err := OpenSearch(d, o.endpoints)
	if err != nil {
		return nil, err
	}
	if err := c.apply(page); err != nil {
		return nil, err
	}
	outcome, err := page.Search()
	if err != nil {
		return nil, err
	}

	if rec := outcome.Record; rec != nil {
		row := SearchRow{}
		if row.RFPNumber, err = rec.RFPNumber(); err != nil {
			return nil, err
		}
		if row.Payee, err = rec.Payee(); err != nil {
			return nil, err
		}
		if row.RFPName, err = rec.RFPName(); err != nil {
			return nil, err
		}
		return []SearchRow{row}, nil
	}

	numbers, err := outcome.Results.Results()
	if err != nil {
		return nil, err
	}
	rows := make([]SearchRow, 0, len(numbers))
	for _, n := range numbers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := outcome.Results.Row(n)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Inbox lists the records in the user's inbox.
func Inbox(ctx context.Context, d browser.Driver, opts ...Option) ([]InboxRow, error) {
	o := newOptions(opts)

	if err := o.step(ctx, "opening inbox"); err != nil {
		return nil, err
	}
	page, err := OpenInbox(d, o.endpoints)
	if err != nil {
		return nil, err
	}
	numbers, err := page.List()
	if err != nil {
		return nil, err
	}
	rows := make([]InboxRow, 0, len(numbers))
	for _, n := range numbers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := page.Row(n)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
