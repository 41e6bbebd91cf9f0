package browser

import (
	"time"

	"github.com/playwright-community/playwright-go"
)

// Session represents an active browser session with its associated resources.
type Session struct {
	// Name is the unique identifier for this session
	Name string

	// Browser is the Playwright browser instance. Nil for persistent
	// profile sessions, which only own a context.
	Browser playwright.Browser

	// Context is the browser context (isolated session)
	Context playwright.BrowserContext

	// Page is the current active page
	Page playwright.Page

	// Headless indicates if the browser is running in headless mode
	Headless bool

	// ProfileDir is the persistent profile directory, if any
	ProfileDir string

	// CreatedAt is the timestamp when the session was created
	CreatedAt time.Time

	// LastUsedAt is the timestamp of the last operation on this session
	LastUsedAt time.Time
}

// Engine names a Playwright browser engine.
type Engine string

const (
	EngineChromium Engine = "chromium"
	EngineFirefox  Engine = "firefox"
	EngineWebKit   Engine = "webkit"
)

// SessionOptions configures a new browser session.
type SessionOptions struct {
	// Headless controls whether the browser runs without a visible window
	Headless bool

	// Engine selects the browser engine (empty means chromium)
	Engine Engine

	// ProfileDir, when set, launches a persistent context rooted at this
	// directory so certificates and logins survive between runs. The
	// directory must already exist.
	ProfileDir string

	// FirefoxUserPrefs are about:config preferences applied when Engine is
	// firefox. Other engines ignore them.
	FirefoxUserPrefs map[string]interface{}

	// Viewport sets the initial viewport size
	Viewport *Viewport

	// Timeout sets the default timeout for operations (in milliseconds)
	Timeout float64
}

// ProfilePrefs returns the Firefox preferences a SAPweb profile runs with:
// the personal certificate is picked without a prompt, so headless runs can
// log in, and neither health reports nor history are kept.
func ProfilePrefs() map[string]interface{} {
	return map[string]interface{}{
		"security.default_personal_cert":           "Select Automatically",
		"datareporting.healthreport.uploadEnabled": false,
		"places.history.enabled":                   false,
	}
}

// Viewport represents the browser viewport dimensions.
type Viewport struct {
	Width  int
	Height int
}

// By identifies the query language of a Selector.
type By string

const (
	ByCSS   By = "css"
	ByXPath By = "xpath"
)

// Selector locates elements in the DOM.
type Selector struct {
	By   By
	Expr string
}

// CSS returns a CSS selector.
func CSS(expr string) Selector {
	return Selector{By: ByCSS, Expr: expr}
}

// XPath returns an XPath selector.
func XPath(expr string) Selector {
	return Selector{By: ByXPath, Expr: expr}
}

func (s Selector) String() string {
	return string(s.By) + "=" + s.Expr
}

// Keys understood by Element.SendKeys in addition to literal text.
const (
	KeyTab   = "\t"
	KeyEnter = "\n"
)

// Default values for various operations
const (
	DefaultTimeout        = 30000.0 // 30 seconds in milliseconds
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720
	DefaultMaxSessions    = 5
	DefaultSnapshotLength = 50000
)
