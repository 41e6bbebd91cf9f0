package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/sapweb/pkg/browser"
	"github.com/entrhq/sapweb/pkg/console"
	"github.com/entrhq/sapweb/pkg/rfp"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	root := newRootCmd(viper.New())
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "sapweb v"+version+"\n", out)
}

func TestFlagsOverrideConfig(t *testing.T) {
	out, err := execute(t, "config", "show", "--system-id", "QA9", "--engine", "webkit", "--timeout", "2m")
	require.NoError(t, err)
	assert.Contains(t, out, "system_id: QA9")
	assert.Contains(t, out, "engine: webkit")
	assert.Contains(t, out, "timeout: 2m0s")
	assert.Contains(t, out, "base_url: "+rfp.DefaultEndpoints.BaseURL)
}

func TestInvalidFlagValueRejected(t *testing.T) {
	_, err := execute(t, "config", "show", "--engine", "netscape")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid browser engine")
}

func TestConfigInitWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sapweb.yaml")

	_, err := execute(t, "config", "init", "--config", path, "--system-id", "QA1")
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "system_id: QA1")

	_, err = execute(t, "config", "init", "--config", path)
	assert.Error(t, err)
}

func TestCreateTemplate(t *testing.T) {
	out, err := execute(t, "create", "--template")
	require.NoError(t, err)
	assert.Contains(t, out, "line_items:")
}

func TestCreateRejectsBadRequestBeforeBrowser(t *testing.T) {
	path := filepath.Join(t.TempDir(), "req.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: x\npayee: {name: y}\naddress: [a, b]\nline_items: [{amount: '1'}]\n"), 0600))

	_, err := execute(t, "create", "-f", path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, rfp.ErrMalformedInput))
}

func TestCommandsNeedProfile(t *testing.T) {
	home := t.TempDir()
	profile := filepath.Join(home, "profile")

	for _, args := range [][]string{
		{"view", "2000123456"},
		{"inbox"},
		{"search", "--payee", "Jane Doe"},
	} {
		t.Run(args[0], func(t *testing.T) {
			_, err := execute(t, append(args, "--profile-dir", profile)...)
			require.Error(t, err)
			assert.ErrorIs(t, err, errNoProfile)
			assert.Contains(t, err.Error(), "sapweb setup")
			assert.NoDirExists(t, profile)
		})
	}
}

func TestCheckProfile(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, checkProfile(dir))
	assert.NoError(t, checkProfile(""))
	assert.ErrorIs(t, checkProfile(filepath.Join(dir, "missing")), errNoProfile)

	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0600))
	assert.Error(t, checkProfile(file))
}

func TestReceiptPagesSkipsUncountable(t *testing.T) {
	assert.Equal(t, 0, receiptPages("lunch.jpg"))

	broken := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(broken, []byte("not a pdf"), 0600))
	assert.Equal(t, 0, receiptPages(broken))
}

func TestParseTypes(t *testing.T) {
	got, err := parseTypes([]string{"Parked", " deleted"})
	require.NoError(t, err)
	assert.Equal(t, rfp.RFPTypes{Parked: true, Deleted: true}, got)

	_, err = parseTypes([]string{"archived"})
	assert.Error(t, err)
}

func TestDumpWorthy(t *testing.T) {
	assert.True(t, dumpWorthy(&rfp.TransitionError{From: rfp.KindRequestRFP, Action: rfp.ActionSave, To: rfp.KindAttachReceipt}))
	assert.True(t, dumpWorthy(fmt.Errorf("payee: %w", browser.ErrNoSuchElement)))
	assert.False(t, dumpWorthy(&rfp.AmbiguousResultError{Search: "payee"}))
	assert.False(t, dumpWorthy(errors.New("context canceled")))
}

type fakeSource struct {
	content string
	err     error
}

func (f fakeSource) Snapshot(opts browser.CleanOptions) (*browser.CleanedHTML, error) {
	if f.err != nil {
		return nil, f.err
	}
	return browser.CleanHTMLWithOptions(f.content, opts)
}

func (f fakeSource) URL() string { return "https://rfp.test/CreateRfp" }

func TestDumpPage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dumps")
	src := fakeSource{content: `<html><head><title>Create RFP</title><script>x()</script></head>
<body><div class="portlet-msg-error">Payee is required</div><input id="ssnTin" value="123-45-6789"></body></html>`}

	path, err := dumpPage(src, dir, time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "sapweb-20240102-150405.html"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.True(t, strings.HasPrefix(content, "<!-- https://rfp.test/CreateRfp -->"))
	assert.Contains(t, content, "title: Create RFP")
	assert.Contains(t, content, "Payee is required")
	assert.NotContains(t, content, "123-45-6789")
	assert.NotContains(t, content, "x()")
}

func TestDumpPageContentError(t *testing.T) {
	_, err := dumpPage(fakeSource{err: errors.New("page closed")}, t.TempDir(), time.Now())
	assert.Error(t, err)
}

func TestCreateSummary(t *testing.T) {
	con := console.New(&bytes.Buffer{}, console.LevelQuiet)
	req := rfp.CreateRequest{Receipts: []string{"a.pdf"}}

	ok := createSummary("2000123456", req, nil, con)
	assert.Equal(t, console.StatusSuccess, ok.Status)
	assert.Equal(t, []string{"a.pdf"}, ok.Receipts)

	partial := createSummary("2000123456", req, errors.New("not sent"), con)
	assert.Equal(t, console.StatusPartialSuccess, partial.Status)
	assert.Equal(t, "not sent", partial.Error)

	failed := createSummary("", req, errors.New("no payee"), con)
	assert.Equal(t, console.StatusFailed, failed.Status)
}
