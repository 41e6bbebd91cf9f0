package browser

import "errors"

// ErrNoSuchElement is returned by Find when a selector matches nothing.
var ErrNoSuchElement = errors.New("no such element")

// Driver is the part of a browser session that page objects rely on.
type Driver interface {
	// Navigate loads url and waits for the page to settle.
	Navigate(url string) error

	// Title returns the current document title.
	Title() (string, error)

	// Find returns the first element matching sel, or an error wrapping
	// ErrNoSuchElement.
	Find(sel Selector) (Element, error)

	// FindAll returns every element matching sel. Zero matches is not an error.
	FindAll(sel Selector) ([]Element, error)
}

// Element is a live handle to a DOM element.
type Element interface {
	// Text returns the rendered text of the element.
	Text() (string, error)

	// Value returns the current value of a form control.
	Value() (string, error)

	// Attribute returns the named attribute, or "" if absent.
	Attribute(name string) (string, error)

	Click() error
	Clear() error

	// SendKeys types keys into the element. KeyTab and KeyEnter are
	// pressed rather than typed.
	SendKeys(keys string) error

	// SetFiles selects files on an <input type="file">.
	SetFiles(paths ...string) error

	// IsSelected reports the checked state of a checkbox or radio button.
	IsSelected() (bool, error)

	IsDisplayed() (bool, error)

	Find(sel Selector) (Element, error)
	FindAll(sel Selector) ([]Element, error)
}
