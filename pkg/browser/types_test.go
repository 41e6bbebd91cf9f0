package browser

import (
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectorString(t *testing.T) {
	assert.Equal(t, "css=#payeeName", CSS("#payeeName").String())
	assert.Equal(t, "xpath=//th[normalize-space(.)='Payee']/../td", XPath("//th[normalize-space(.)='Payee']/../td").String())
}

func TestSplitKeys(t *testing.T) {
	tests := []struct {
		name string
		keys string
		want []string
	}{
		{name: "plain text", keys: "United States", want: []string{"United States"}},
		{name: "trailing tab", keys: "Massachusetts\t", want: []string{"Massachusetts", KeyTab}},
		{name: "only enter", keys: "\n", want: []string{KeyEnter}},
		{name: "mixed", keys: "a\tb\nc", want: []string{"a", KeyTab, "b", KeyEnter, "c"}},
		{name: "empty", keys: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitKeys(tt.keys))
		})
	}
}

func TestManager_StartSessionRequiresInitialize(t *testing.T) {
	m := NewManager()

	_, err := m.StartSession("default", SessionOptions{Headless: true})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not initialized")
	assert.False(t, m.HasSessions())
}

func TestManager_GetSessionMissing(t *testing.T) {
	m := NewManager()

	_, err := m.GetSession("nope")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), `session "nope" not found`)
	assert.Error(t, m.CloseSession("nope"))
}

func TestManager_ShutdownWithoutInitialize(t *testing.T) {
	assert.NoError(t, NewManager().Shutdown())
}

func TestLaunchPersistentRequiresProfile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "profile")

	_, err := launchPersistent(nil, SessionOptions{ProfileDir: dir, Viewport: &Viewport{}})
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.NoDirExists(t, dir)
}

func TestFirefoxPrefs(t *testing.T) {
	prefs := ProfilePrefs()
	assert.Equal(t, "Select Automatically", prefs["security.default_personal_cert"])
	assert.Equal(t, false, prefs["places.history.enabled"])

	tests := []struct {
		name string
		opts SessionOptions
		want map[string]interface{}
	}{
		{name: "firefox", opts: SessionOptions{Engine: EngineFirefox, FirefoxUserPrefs: prefs}, want: prefs},
		{name: "chromium ignores prefs", opts: SessionOptions{Engine: EngineChromium, FirefoxUserPrefs: prefs}, want: nil},
		{name: "firefox without prefs", opts: SessionOptions{Engine: EngineFirefox}, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, firefoxPrefs(tt.opts))
		})
	}
}
