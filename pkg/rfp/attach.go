package rfp

import (
	"fmt"

	"github.com/entrhq/sapweb/pkg/browser"
)

// AttachReceiptPage is the receipt upload overlay shown over a record.
type AttachReceiptPage struct {
	base
}

// newAttachReceiptPage fails unless the upload dialog is actually showing.
func newAttachReceiptPage(d browser.Driver, from Kind, action string) (*AttachReceiptPage, error) {
	el, err := d.Find(browser.CSS("#doUpload"))
	if err != nil {
		return nil, err
	}
	shown, err := el.IsDisplayed()
	if err != nil {
		return nil, err
	}
	if !shown {
		return nil, &TransitionError{From: from, Action: action, To: KindAttachReceipt, Reason: "attachment popup is not shown"}
	}
	logTransition(from, action, KindAttachReceipt)
	return &AttachReceiptPage{base{d}}, nil
}

func (p *AttachReceiptPage) Kind() Kind         { return KindAttachReceipt }
func (p *AttachReceiptPage) HelpURLs() []string { return helpURLs(attachReceiptHelp) }

// SelectFile chooses the local file to upload.
func (p *AttachReceiptPage) SelectFile(path string) error {
	el, err := find(p.d, "#upload")
	if err != nil {
		return err
	}
	if err := el.SetFiles(path); err != nil {
		return fmt.Errorf("select %s: %w", path, err)
	}
	return nil
}

// Cancel closes the overlay without uploading.
func (p *AttachReceiptPage) Cancel() (Landing, error) {
	if err := overlayButton(p.d, "Cancel"); err != nil {
		return Landing{}, err
	}
	return land(p.d, KindAttachReceipt, ActionCancel)
}

// Attach uploads the selected file and closes the overlay. A failed upload
// still closes it, so callers check Errors on the landed page.
func (p *AttachReceiptPage) Attach() (Landing, error) {
	if err := overlayButton(p.d, "Attach"); err != nil {
		return Landing{}, err
	}
	return land(p.d, KindAttachReceipt, ActionAttach)
}
