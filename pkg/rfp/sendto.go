package rfp

import (
	"fmt"

	"github.com/entrhq/sapweb/pkg/browser"
)

const recipientResults = "td.data label[for^='addressee-']"

// SendToPage routes a record to another person.
type SendToPage struct {
	base
}

func (p *SendToPage) Kind() Kind         { return KindSendTo }
func (p *SendToPage) HelpURLs() []string { return helpURLs(sendToHelp) }

// ReturnToRFP abandons routing and goes back to the record.
func (p *SendToPage) ReturnToRFP() (*ViewAndEditPage, error) {
	if err := click(p.d, "a[href='ReturnToRfp.action']"); err != nil {
		return nil, err
	}
	if err := p.guard(KindSendTo, ActionReturnToRFP, KindViewAndEdit); err != nil {
		return nil, err
	}
	logTransition(KindSendTo, ActionReturnToRFP, KindViewAndEdit)
	return newViewAndEditPage(p.d)
}

func (p *SendToPage) RecipientName() (string, error)  { return textbox(p.d, "#recipientName") }
func (p *SendToPage) SetRecipientName(v string) error { return setTextbox(p.d, "#recipientName", v) }

// Search looks up recipients. Results load in place.
func (p *SendToPage) Search() error {
	if err := click(p.d, ".searchForRecipient"); err != nil {
		return err
	}
	logTransition(KindSendTo, ActionSearch, KindSendTo)
	return nil
}

// Results lists recipients found, usually as "Name (kerberos,department)".
func (p *SendToPage) Results() ([]string, error) {
	return texts(p.d, browser.CSS(recipientResults))
}

// SelectResult picks the i-th recipient.
func (p *SendToPage) SelectResult(i int) error {
	el, err := nth(p.d, browser.CSS(recipientResults), i)
	if err != nil {
		return err
	}
	if err := el.Click(); err != nil {
		return fmt.Errorf("select recipient %d: %w", i, err)
	}
	return nil
}

func (p *SendToPage) Note() (string, error)  { return textbox(p.d, "#recipientNote") }
func (p *SendToPage) SetNote(v string) error { return setTextbox(p.d, "#recipientNote", v) }

// Send routes the record. It becomes read-only for the sender.
func (p *SendToPage) Send() (*ViewOnlyPage, error) {
	if err := click(p.d, ".sendToAction"); err != nil {
		return nil, err
	}
	if err := p.guard(KindSendTo, ActionSend, KindViewOnly); err != nil {
		return nil, err
	}
	logTransition(KindSendTo, ActionSend, KindViewOnly)
	return newViewOnlyPage(p.d), nil
}
