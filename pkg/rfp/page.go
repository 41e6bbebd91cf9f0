// Package rfp models the SAPweb Request for Payment interface as a set of
// page objects. Each page variant exposes the fields and actions of one
// screen; actions that navigate return the page object for the screen they
// land on, so only the actions valid in the current state can be called.
package rfp

import (
	"strings"

	"github.com/entrhq/sapweb/pkg/browser"
	"github.com/entrhq/sapweb/pkg/logging"
)

var debugLog *logging.Logger

func init() {
	var err error
	debugLog, err = logging.NewLogger("rfp")
	if err != nil {
		debugLog.Warnf("Failed to initialize rfp logger, using stderr fallback: %v", err)
	}
}

const (
	errorSelector   = ".portlet-msg-error"
	jqErrorSelector = "label.jqerror"
	infoSelector    = ".portlet-msg-alert"
	successSelector = ".portlet-msg-success"

	displayTitle = "Display RFP"
	paymentTitle = "Payment"
)

// Page is implemented by every page variant.
type Page interface {
	Kind() Kind

	// Errors returns the messages in the page's error region, including
	// inline field validation labels.
	Errors() ([]string, error)
	Info() ([]string, error)
	Success() ([]string, error)

	// HelpURLs lists the documentation pages the UI links from this screen.
	HelpURLs() []string

	sealed()
}

// base carries the driver and the capabilities common to every page.
type base struct {
	d browser.Driver
}

func (b base) Errors() ([]string, error) {
	msgs, err := texts(b.d, browser.CSS(errorSelector))
	if err != nil {
		return nil, err
	}
	inline, err := texts(b.d, browser.CSS(jqErrorSelector))
	if err != nil {
		return nil, err
	}
	return append(msgs, inline...), nil
}

func (b base) Info() ([]string, error) {
	return texts(b.d, browser.CSS(infoSelector))
}

func (b base) Success() ([]string, error) {
	return texts(b.d, browser.CSS(successSelector))
}

func (base) sealed() {}

// guard runs after an action that should leave the current page. Any
// rendered error means the server rejected the action and the session is
// still on from.
func (b base) guard(from Kind, action string, to Kind) error {
	msgs, err := b.Errors()
	if err != nil {
		return err
	}
	if len(msgs) > 0 {
		debugLog.Warnf("%s via %s stayed on page: %s", from, action, strings.Join(msgs, "; "))
		return &TransitionError{From: from, Action: action, To: to, Messages: msgs}
	}
	return nil
}

func (b base) titleContains(s string) (bool, error) {
	title, err := b.d.Title()
	if err != nil {
		return false, err
	}
	return strings.Contains(title, s), nil
}

// Landing is the page reached after the attachment overlay closes. Exactly
// one of Edit and View is set: View when the record is no longer editable.
type Landing struct {
	Edit *ViewAndEditPage
	View *ViewOnlyPage
}

// land builds the Landing for whatever record page is now loaded.
func land(d browser.Driver, from Kind, action string) (Landing, error) {
	display, err := base{d}.titleContains(displayTitle)
	if err != nil {
		return Landing{}, err
	}
	if display {
		logTransition(from, action, KindViewOnly)
		return Landing{View: newViewOnlyPage(d)}, nil
	}
	edit, err := newViewAndEditPage(d)
	if err != nil {
		return Landing{}, err
	}
	logTransition(from, action, KindViewAndEdit)
	return Landing{Edit: edit}, nil
}

// Kind returns the variant that was landed on.
func (l Landing) Kind() Kind {
	if l.View != nil {
		return KindViewOnly
	}
	return KindViewAndEdit
}

// Page returns the landed page as a Page, or nil for a zero Landing.
func (l Landing) Page() Page {
	switch {
	case l.View != nil:
		return l.View
	case l.Edit != nil:
		return l.Edit
	}
	return nil
}

// RFPNumber reads the record number from whichever variant was landed on.
func (l Landing) RFPNumber() (string, error) {
	if l.View != nil {
		return l.View.RFPNumber()
	}
	return l.Edit.RFPNumber()
}

// AttachReceipt reopens the attachment overlay from either variant.
func (l Landing) AttachReceipt() (*AttachReceiptPage, error) {
	if l.View != nil {
		return l.View.AttachReceipt()
	}
	return l.Edit.AttachReceipt()
}

// SearchOutcome is the result of a search on the Search page. A search
// matching exactly one record goes straight to it and sets Record;
// otherwise Results is the same page with the result list loaded.
type SearchOutcome struct {
	Results *SearchPage
	Record  *ViewOnlyPage
}

func (o SearchOutcome) Kind() Kind {
	if o.Record != nil {
		return KindViewOnly
	}
	return KindSearch
}
