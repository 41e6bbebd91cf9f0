package browser

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// UpdateLastUsed updates the LastUsedAt timestamp to the current time.
func (s *Session) UpdateLastUsed() {
	s.LastUsedAt = time.Now()
}

// Navigate navigates the session's page to the specified URL and waits for
// the load event.
func (s *Session) Navigate(url string) error {
	s.UpdateLastUsed()

	waitUntil := playwright.WaitUntilStateLoad
	if _, err := s.Page.Goto(url, playwright.PageGotoOptions{WaitUntil: waitUntil}); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	return nil
}

// Title returns the document title of the current page.
func (s *Session) Title() (string, error) {
	s.UpdateLastUsed()

	title, err := s.Page.Title()
	if err != nil {
		return "", fmt.Errorf("failed to read title: %w", err)
	}
	return title, nil
}

// URL returns the URL of the current page.
func (s *Session) URL() string {
	return s.Page.URL()
}

// Content returns the full HTML of the current page.
func (s *Session) Content() (string, error) {
	s.UpdateLastUsed()

	html, err := s.Page.Content()
	if err != nil {
		return "", fmt.Errorf("failed to read page content: %w", err)
	}
	return html, nil
}

// Snapshot returns the current page as cleaned HTML, suitable for saving
// next to a failure report.
func (s *Session) Snapshot(opts CleanOptions) (*CleanedHTML, error) {
	raw, err := s.Content()
	if err != nil {
		return nil, err
	}
	return CleanHTMLWithOptions(raw, opts)
}

// Find returns the first element matching sel.
func (s *Session) Find(sel Selector) (Element, error) {
	s.UpdateLastUsed()

	handle, err := s.Page.QuerySelector(sel.String())
	if err != nil {
		return nil, fmt.Errorf("selector query failed: %w", err)
	}
	if handle == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchElement, sel)
	}
	return &element{session: s, handle: handle}, nil
}

// FindAll returns every element matching sel.
func (s *Session) FindAll(sel Selector) ([]Element, error) {
	s.UpdateLastUsed()

	handles, err := s.Page.QuerySelectorAll(sel.String())
	if err != nil {
		return nil, fmt.Errorf("selector query failed: %w", err)
	}
	return wrapHandles(s, handles), nil
}

// settle waits for any navigation started by the last interaction.
func (s *Session) settle() error {
	state := playwright.LoadStateLoad
	if err := s.Page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{State: state}); err != nil {
		return fmt.Errorf("wait for load failed: %w", err)
	}
	return nil
}

func wrapHandles(s *Session, handles []playwright.ElementHandle) []Element {
	elements := make([]Element, 0, len(handles))
	for _, h := range handles {
		elements = append(elements, &element{session: s, handle: h})
	}
	return elements
}

var _ Driver = (*Session)(nil)
