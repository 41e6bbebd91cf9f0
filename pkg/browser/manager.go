package browser

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Manager owns the Playwright driver process and the sessions launched
// through it. Each session is meant for exactly one sequential workflow.
type Manager struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	playwright  *playwright.Playwright
	maxSessions int
	initialized bool
	output      io.Writer
}

// NewManager creates a new session manager.
func NewManager() *Manager {
	return &Manager{
		sessions:    make(map[string]*Session),
		maxSessions: DefaultMaxSessions,
		output:      io.Discard,
	}
}

// SetInstallOutput routes Playwright install/driver output to w.
func (m *Manager) SetInstallOutput(w io.Writer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.output = w
}

// Initialize installs (if needed) and starts the Playwright driver.
// This must be called before creating any sessions.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	opts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  m.output,
		Stderr:  m.output,
	}

	if err := playwright.Install(opts); err != nil {
		return fmt.Errorf("failed to install playwright: %w", err)
	}

	pw, err := playwright.Run(opts)
	if err != nil {
		return fmt.Errorf("failed to start playwright: %w", err)
	}

	m.playwright = pw
	m.initialized = true
	return nil
}

// StartSession launches a browser and returns a session with one open page.
func (m *Manager) StartSession(name string, opts SessionOptions) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[name]; exists {
		return nil, fmt.Errorf("session %q already exists", name)
	}
	if len(m.sessions) >= m.maxSessions {
		return nil, fmt.Errorf("maximum number of sessions (%d) reached", m.maxSessions)
	}
	if !m.initialized {
		return nil, fmt.Errorf("session manager not initialized")
	}

	if opts.Viewport == nil {
		opts.Viewport = &Viewport{
			Width:  DefaultViewportWidth,
			Height: DefaultViewportHeight,
		}
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}

	browserType, err := m.browserType(opts.Engine)
	if err != nil {
		return nil, err
	}

	var session *Session
	if opts.ProfileDir != "" {
		session, err = launchPersistent(browserType, opts)
	} else {
		session, err = launchEphemeral(browserType, opts)
	}
	if err != nil {
		return nil, err
	}

	session.Page.SetDefaultTimeout(opts.Timeout)

	now := time.Now()
	session.Name = name
	session.Headless = opts.Headless
	session.ProfileDir = opts.ProfileDir
	session.CreatedAt = now
	session.LastUsedAt = now

	m.sessions[name] = session
	return session, nil
}

func (m *Manager) browserType(engine Engine) (playwright.BrowserType, error) {
	switch engine {
	case "", EngineChromium:
		return m.playwright.Chromium, nil
	case EngineFirefox:
		return m.playwright.Firefox, nil
	case EngineWebKit:
		return m.playwright.WebKit, nil
	default:
		return nil, fmt.Errorf("unsupported browser engine: %s", engine)
	}
}

func launchEphemeral(browserType playwright.BrowserType, opts SessionOptions) (*Session, error) {
	browser, err := browserType.Launch(playwright.BrowserTypeLaunchOptions{
		Headless:         &opts.Headless,
		FirefoxUserPrefs: firefoxPrefs(opts),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	context, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  opts.Viewport.Width,
			Height: opts.Viewport.Height,
		},
	})
	if err != nil {
		browser.Close()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := context.NewPage()
	if err != nil {
		context.Close()
		browser.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	return &Session{Browser: browser, Context: context, Page: page}, nil
}

func launchPersistent(browserType playwright.BrowserType, opts SessionOptions) (*Session, error) {
	// Profiles are made by setup; launching must not leave an empty one behind.
	if _, err := os.Stat(opts.ProfileDir); err != nil {
		return nil, fmt.Errorf("profile directory unavailable: %w", err)
	}

	context, err := browserType.LaunchPersistentContext(opts.ProfileDir, playwright.BrowserTypeLaunchPersistentContextOptions{
		Headless: &opts.Headless,
		Viewport: &playwright.Size{
			Width:  opts.Viewport.Width,
			Height: opts.Viewport.Height,
		},
		FirefoxUserPrefs: firefoxPrefs(opts),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to launch persistent context: %w", err)
	}

	// A persistent context opens with one page already.
	var page playwright.Page
	if pages := context.Pages(); len(pages) > 0 {
		page = pages[0]
	} else {
		page, err = context.NewPage()
		if err != nil {
			context.Close()
			return nil, fmt.Errorf("failed to create page: %w", err)
		}
	}

	return &Session{Context: context, Page: page}, nil
}

// firefoxPrefs returns the preferences to pass to Playwright for opts.
func firefoxPrefs(opts SessionOptions) map[string]interface{} {
	if opts.Engine != EngineFirefox || len(opts.FirefoxUserPrefs) == 0 {
		return nil
	}
	return opts.FirefoxUserPrefs
}

// CloseSession closes and removes a browser session.
func (m *Manager) CloseSession(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.sessions[name]
	if !exists {
		return fmt.Errorf("session %q not found", name)
	}

	err := closeSession(session)
	delete(m.sessions, name)
	return err
}

// GetSession retrieves an active session by name.
func (m *Manager) GetSession(name string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[name]
	if !exists {
		return nil, fmt.Errorf("session %q not found", name)
	}
	return session, nil
}

// HasSessions returns true if there are any active sessions.
func (m *Manager) HasSessions() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions) > 0
}

// Shutdown closes all sessions and stops Playwright.
func (m *Manager) Shutdown() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	for name, session := range m.sessions {
		if err := closeSession(session); err != nil {
			errs = append(errs, err)
		}
		delete(m.sessions, name)
	}

	if m.initialized && m.playwright != nil {
		if err := m.playwright.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop playwright: %w", err))
		}
		m.initialized = false
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}
	return nil
}

func closeSession(s *Session) error {
	// Persistent sessions have no Browser; closing the context quits it.
	if err := s.Context.Close(); err != nil {
		return fmt.Errorf("failed to close session %q: %w", s.Name, err)
	}
	if s.Browser != nil {
		if err := s.Browser.Close(); err != nil {
			return fmt.Errorf("failed to close session %q: %w", s.Name, err)
		}
	}
	return nil
}
