package rfp

import (
	"fmt"
	"strings"

	"github.com/entrhq/sapweb/pkg/browser"
)

// fakeDriver is an in-memory browser. Tests register elements by selector
// and script page loads through click handlers. Every lookup and
// interaction is recorded in calls.
type fakeDriver struct {
	title       string
	elems       map[string][]*fakeElement
	routes      map[string]func()
	navigations []string
	calls       []string
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		elems:  map[string][]*fakeElement{},
		routes: map[string]func(){},
	}
}

// load replaces the current document.
func (f *fakeDriver) load(title string) {
	f.title = title
	f.elems = map[string][]*fakeElement{}
}

func (f *fakeDriver) record(format string, args ...interface{}) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeDriver) Navigate(url string) error {
	f.navigations = append(f.navigations, url)
	f.record("navigate %s", url)
	if route, ok := f.routes[url]; ok {
		route()
	}
	return nil
}

func (f *fakeDriver) Title() (string, error) {
	return f.title, nil
}

func (f *fakeDriver) Find(sel browser.Selector) (browser.Element, error) {
	f.record("find %s", sel)
	if els := f.elems[sel.String()]; len(els) > 0 {
		return els[0], nil
	}
	return nil, fmt.Errorf("%w: %s", browser.ErrNoSuchElement, sel)
}

func (f *fakeDriver) FindAll(sel browser.Selector) ([]browser.Element, error) {
	f.record("findall %s", sel)
	return asElements(f.elems[sel.String()]), nil
}

func asElements(els []*fakeElement) []browser.Element {
	out := make([]browser.Element, len(els))
	for i, e := range els {
		out[i] = e
	}
	return out
}

// add registers els under sel, replacing what was there.
func (f *fakeDriver) add(sel browser.Selector, els ...*fakeElement) {
	for _, e := range els {
		e.f = f
		if e.name == "" {
			e.name = sel.Expr
		}
	}
	f.elems[sel.String()] = els
}

// appendTo adds one more match for sel.
func (f *fakeDriver) appendTo(sel browser.Selector, e *fakeElement) {
	e.f = f
	if e.name == "" {
		e.name = sel.Expr
	}
	f.elems[sel.String()] = append(f.elems[sel.String()], e)
}

func (f *fakeDriver) textbox(css, value string) *fakeElement {
	e := &fakeElement{value: value}
	f.add(browser.CSS(css), e)
	return e
}

func (f *fakeDriver) checkbox(css string, checked bool) *fakeElement {
	e := &fakeElement{selected: checked, toggles: true}
	f.add(browser.CSS(css), e)
	return e
}

func (f *fakeDriver) button(css string, onClick func()) *fakeElement {
	e := &fakeElement{onClick: onClick}
	f.add(browser.CSS(css), e)
	return e
}

func (f *fakeDriver) radio(group, checked string, values ...string) {
	for _, v := range values {
		e := &fakeElement{attrs: map[string]string{"value": v}}
		e.onClick = func() { f.add(radioCheckedSelector(group), e) }
		f.add(radioOptionSelector(group, v), e)
		if v == checked {
			f.add(radioCheckedSelector(group), e)
		}
	}
}

// selectBox builds a select driven by typing an option's display text.
// options alternate value and text.
func (f *fakeDriver) selectBox(fragment, checked string, options ...string) *fakeElement {
	current := &fakeElement{text: checked}
	f.add(selectCheckedSelector(fragment), current)
	texts := map[string]bool{}
	for i := 0; i+1 < len(options); i += 2 {
		f.add(selectOptionSelector(fragment, options[i]), &fakeElement{text: options[i+1]})
		texts[options[i+1]] = true
	}
	sel := &fakeElement{}
	sel.onKeys = func(keys string) {
		if text := strings.TrimSuffix(keys, browser.KeyTab); texts[text] {
			current.text = text
		}
	}
	f.add(selectSelector(fragment), sel)
	return current
}

func (f *fakeDriver) dataList(label, value string) {
	f.add(dataListSelector(label), &fakeElement{text: "  " + value + "\n"})
}

func (f *fakeDriver) has(call string) bool {
	for _, c := range f.calls {
		if c == call {
			return true
		}
	}
	return false
}

func (f *fakeDriver) countCalls(call string) int {
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeDriver) anyCall(substr string) bool {
	for _, c := range f.calls {
		if strings.Contains(c, substr) {
			return true
		}
	}
	return false
}

// fakeElement is one scripted DOM element.
type fakeElement struct {
	f        *fakeDriver
	name     string
	text     string
	value    string
	attrs    map[string]string
	selected bool
	toggles  bool
	hidden   bool
	children map[string][]*fakeElement
	files    []string
	onClick  func()
	onKeys   func(keys string)
}

func (e *fakeElement) Text() (string, error)  { return e.text, nil }
func (e *fakeElement) Value() (string, error) { return e.value, nil }

func (e *fakeElement) Attribute(name string) (string, error) {
	return e.attrs[name], nil
}

func (e *fakeElement) Click() error {
	e.f.record("click %s", e.name)
	if e.toggles {
		e.selected = !e.selected
	}
	if e.onClick != nil {
		e.onClick()
	}
	return nil
}

func (e *fakeElement) Clear() error {
	e.f.record("clear %s", e.name)
	e.value = ""
	return nil
}

func (e *fakeElement) SendKeys(keys string) error {
	e.f.record("keys %s %s", e.name, keys)
	if e.onKeys != nil {
		e.onKeys(keys)
		return nil
	}
	e.value += keys
	return nil
}

func (e *fakeElement) SetFiles(paths ...string) error {
	e.f.record("files %s %s", e.name, strings.Join(paths, ","))
	e.files = append(e.files, paths...)
	return nil
}

func (e *fakeElement) IsSelected() (bool, error)  { return e.selected, nil }
func (e *fakeElement) IsDisplayed() (bool, error) { return !e.hidden, nil }

func (e *fakeElement) Find(sel browser.Selector) (browser.Element, error) {
	if els := e.children[sel.String()]; len(els) > 0 {
		return els[0], nil
	}
	return nil, fmt.Errorf("%w: %s", browser.ErrNoSuchElement, sel)
}

func (e *fakeElement) FindAll(sel browser.Selector) ([]browser.Element, error) {
	return asElements(e.children[sel.String()]), nil
}

func cells(f *fakeDriver, texts ...string) []*fakeElement {
	out := make([]*fakeElement, len(texts))
	for i, t := range texts {
		out[i] = &fakeElement{f: f, name: "td", text: t}
	}
	return out
}

var (
	_ browser.Driver  = (*fakeDriver)(nil)
	_ browser.Element = (*fakeElement)(nil)
)
