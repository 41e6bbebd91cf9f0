package rfp

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/entrhq/sapweb/pkg/browser"
)

// Locator builders. Every page reads and writes its fields through these so
// the markup conventions of the RFP UI live in one place.

func radioCheckedSelector(group string) browser.Selector {
	return browser.CSS(fmt.Sprintf("input[type='radio'][name='%s']:checked", group))
}

func radioOptionSelector(group, value string) browser.Selector {
	return browser.CSS(fmt.Sprintf("input[type='radio'][name='%s'][value='%s']", group, value))
}

func selectCheckedSelector(fragment string) browser.Selector {
	return browser.CSS(fmt.Sprintf("select%s option:checked", fragment))
}

func selectOptionSelector(fragment, value string) browser.Selector {
	return browser.CSS(fmt.Sprintf("select%s option[value='%s']", fragment, value))
}

func selectSelector(fragment string) browser.Selector {
	return browser.CSS("select" + fragment)
}

// dataListSelector finds the value cell next to a label, in either of the
// two layouts the read-only pages use.
func dataListSelector(label string) browser.Selector {
	return browser.XPath(fmt.Sprintf(
		"//div[normalize-space(.)='%[1]s']/../../td[@class='data'] | //th[normalize-space(.)='%[1]s']/../td",
		label))
}

// rowSelector finds the cells of the table row whose link mentions rfp.
func rowSelector(rfp string) browser.Selector {
	return browser.XPath(fmt.Sprintf("//a[contains(text(), '%s')]/../../td", rfp))
}

func find(d browser.Driver, css string) (browser.Element, error) {
	return d.Find(browser.CSS(css))
}

func click(d browser.Driver, css string) error {
	el, err := find(d, css)
	if err != nil {
		return err
	}
	if err := el.Click(); err != nil {
		return fmt.Errorf("click %s: %w", css, err)
	}
	return nil
}

// texts returns the trimmed text of every element matching sel.
func texts(d browser.Driver, sel browser.Selector) ([]string, error) {
	elems, err := d.FindAll(sel)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(elems))
	for _, el := range elems {
		text, err := el.Text()
		if err != nil {
			return nil, err
		}
		out = append(out, strings.TrimSpace(text))
	}
	return out, nil
}

func count(d browser.Driver, css string) (int, error) {
	elems, err := d.FindAll(browser.CSS(css))
	if err != nil {
		return 0, err
	}
	return len(elems), nil
}

// nth returns the i-th match of sel.
func nth(d browser.Driver, sel browser.Selector, i int) (browser.Element, error) {
	elems, err := d.FindAll(sel)
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= len(elems) {
		return nil, fmt.Errorf("%w: %s[%d] of %d", browser.ErrNoSuchElement, sel, i, len(elems))
	}
	return elems[i], nil
}

// radio returns the checked value of a radio group. ok is false when no
// option is checked.
func radio(d browser.Driver, group string) (value string, ok bool, err error) {
	el, err := d.Find(radioCheckedSelector(group))
	if errors.Is(err, browser.ErrNoSuchElement) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	value, err = el.Attribute("value")
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func setRadio(d browser.Driver, group, value string) error {
	el, err := d.Find(radioOptionSelector(group, value))
	if err != nil {
		return err
	}
	if err := el.Click(); err != nil {
		return fmt.Errorf("click %s=%s: %w", group, value, err)
	}
	got, _, err := radio(d, group)
	if err != nil {
		return err
	}
	if got != value {
		return &PostconditionError{Field: group, Want: value, Got: got}
	}
	return nil
}

func checkbox(d browser.Driver, css string) (bool, error) {
	el, err := find(d, css)
	if err != nil {
		return false, err
	}
	return el.IsSelected()
}

func setCheckbox(d browser.Driver, css string, want bool) error {
	el, err := find(d, css)
	if err != nil {
		return err
	}
	return toggle(el, css, want)
}

// toggle clicks a checkbox only when its state differs, then verifies it.
func toggle(el browser.Element, field string, want bool) error {
	got, err := el.IsSelected()
	if err != nil {
		return err
	}
	if got != want {
		if err := el.Click(); err != nil {
			return fmt.Errorf("click %s: %w", field, err)
		}
		if got, err = el.IsSelected(); err != nil {
			return err
		}
	}
	if got != want {
		return &PostconditionError{Field: field, Want: strconv.FormatBool(want), Got: strconv.FormatBool(got)}
	}
	return nil
}

func textbox(d browser.Driver, css string) (string, error) {
	el, err := find(d, css)
	if err != nil {
		return "", err
	}
	return el.Value()
}

func setTextbox(d browser.Driver, css, value string) error {
	el, err := find(d, css)
	if err != nil {
		return err
	}
	if err := el.Clear(); err != nil {
		return fmt.Errorf("clear %s: %w", css, err)
	}
	if err := el.SendKeys(value); err != nil {
		return fmt.Errorf("type into %s: %w", css, err)
	}
	return nil
}

func selected(d browser.Driver, fragment string) (string, error) {
	el, err := d.Find(selectCheckedSelector(fragment))
	if err != nil {
		return "", err
	}
	text, err := el.Text()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// setSelect accepts either an option's value or its display text. A value
// is mapped to its text first, since the control is driven by typing.
func setSelect(d browser.Driver, fragment, value string) error {
	opt, err := d.Find(selectOptionSelector(fragment, value))
	switch {
	case err == nil:
		text, err := opt.Text()
		if err != nil {
			return err
		}
		value = strings.TrimSpace(text)
	case !errors.Is(err, browser.ErrNoSuchElement):
		return err
	}

	el, err := d.Find(selectSelector(fragment))
	if err != nil {
		return err
	}
	if err := el.SendKeys(value + browser.KeyTab); err != nil {
		return fmt.Errorf("choose %q in select%s: %w", value, fragment, err)
	}

	got, err := selected(d, fragment)
	if err != nil {
		return err
	}
	if got != value {
		return &PostconditionError{Field: "select" + fragment, Want: value, Got: got}
	}
	return nil
}

func dataList(d browser.Driver, label string) (string, error) {
	el, err := d.Find(dataListSelector(label))
	if err != nil {
		return "", fmt.Errorf("%s: %w", label, err)
	}
	text, err := el.Text()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// tryDataList is dataList for labels that only some records show.
func tryDataList(d browser.Driver, label string) (*string, error) {
	v, err := dataList(d, label)
	if errors.Is(err, browser.ErrNoSuchElement) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// tryText is tryDataList for an arbitrary selector.
func tryText(d browser.Driver, sel browser.Selector) (*string, error) {
	el, err := d.Find(sel)
	if errors.Is(err, browser.ErrNoSuchElement) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	text, err := el.Text()
	if err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	return &text, nil
}

// rowCell returns the trimmed text of column i in the row for rfp.
func rowCell(d browser.Driver, rfp string, i int) (string, error) {
	el, err := nth(d, rowSelector(rfp), i)
	if err != nil {
		return "", fmt.Errorf("row %s: %w", rfp, err)
	}
	text, err := el.Text()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// overlayButton clicks the dialog button labelled text.
func overlayButton(d browser.Driver, text string) error {
	buttons, err := d.FindAll(browser.CSS(".ui-dialog button"))
	if err != nil {
		return err
	}
	for _, b := range buttons {
		label, err := b.Text()
		if err != nil {
			return err
		}
		if strings.TrimSpace(label) == text {
			return b.Click()
		}
	}
	return fmt.Errorf("%w: dialog button %q", browser.ErrNoSuchElement, text)
}
