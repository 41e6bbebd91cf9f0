package browser

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// element adapts a Playwright element handle to Element.
type element struct {
	session *Session
	handle  playwright.ElementHandle
}

func (e *element) Text() (string, error) {
	text, err := e.handle.InnerText()
	if err != nil {
		return "", fmt.Errorf("text extraction failed: %w", err)
	}
	return text, nil
}

func (e *element) Value() (string, error) {
	value, err := e.handle.InputValue()
	if err != nil {
		return "", fmt.Errorf("value extraction failed: %w", err)
	}
	return value, nil
}

func (e *element) Attribute(name string) (string, error) {
	value, err := e.handle.GetAttribute(name)
	if err != nil {
		return "", fmt.Errorf("attribute %q extraction failed: %w", name, err)
	}
	return value, nil
}

// Click clicks the element and waits for any navigation it caused.
func (e *element) Click() error {
	e.session.UpdateLastUsed()

	if err := e.handle.Click(); err != nil {
		return fmt.Errorf("click failed: %w", err)
	}
	return e.session.settle()
}

func (e *element) Clear() error {
	if err := e.handle.Fill(""); err != nil {
		return fmt.Errorf("clear failed: %w", err)
	}
	return nil
}

func (e *element) SendKeys(keys string) error {
	e.session.UpdateLastUsed()

	for _, chunk := range splitKeys(keys) {
		var err error
		switch chunk {
		case KeyTab:
			err = e.handle.Press("Tab")
		case KeyEnter:
			err = e.handle.Press("Enter")
		default:
			err = e.handle.Type(chunk)
		}
		if err != nil {
			return fmt.Errorf("send keys failed: %w", err)
		}
	}
	return nil
}

func (e *element) SetFiles(paths ...string) error {
	if err := e.handle.SetInputFiles(paths); err != nil {
		return fmt.Errorf("set input files failed: %w", err)
	}
	return nil
}

func (e *element) IsSelected() (bool, error) {
	checked, err := e.handle.IsChecked()
	if err != nil {
		return false, fmt.Errorf("checked state query failed: %w", err)
	}
	return checked, nil
}

func (e *element) IsDisplayed() (bool, error) {
	visible, err := e.handle.IsVisible()
	if err != nil {
		return false, fmt.Errorf("visibility query failed: %w", err)
	}
	return visible, nil
}

func (e *element) Find(sel Selector) (Element, error) {
	handle, err := e.handle.QuerySelector(sel.String())
	if err != nil {
		return nil, fmt.Errorf("selector query failed: %w", err)
	}
	if handle == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchElement, sel)
	}
	return &element{session: e.session, handle: handle}, nil
}

func (e *element) FindAll(sel Selector) ([]Element, error) {
	handles, err := e.handle.QuerySelectorAll(sel.String())
	if err != nil {
		return nil, fmt.Errorf("selector query failed: %w", err)
	}
	return wrapHandles(e.session, handles), nil
}

// splitKeys breaks keys into runs of literal text and single special keys.
func splitKeys(keys string) []string {
	var chunks []string
	var text strings.Builder
	for _, r := range keys {
		switch s := string(r); s {
		case KeyTab, KeyEnter:
			if text.Len() > 0 {
				chunks = append(chunks, text.String())
				text.Reset()
			}
			chunks = append(chunks, s)
		default:
			text.WriteRune(r)
		}
	}
	if text.Len() > 0 {
		chunks = append(chunks, text.String())
	}
	return chunks
}
