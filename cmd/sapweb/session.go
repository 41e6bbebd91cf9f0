package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/entrhq/sapweb/pkg/browser"
	"github.com/entrhq/sapweb/pkg/config"
	"github.com/entrhq/sapweb/pkg/console"
	"github.com/entrhq/sapweb/pkg/rfp"
)

const sessionName = "sapweb"

// errNoProfile is returned when a command needs the browser before
// 'sapweb setup' has created the profile.
var errNoProfile = errors.New("browser profile not found")

// snapshotSource is the part of a browser session a failure dump needs.
type snapshotSource interface {
	Snapshot(opts browser.CleanOptions) (*browser.CleanedHTML, error)
	URL() string
}

// withSession launches the configured browser, runs fn against it and
// shuts everything down. Failed page actions leave a snapshot in the dump
// directory when one is configured.
func withSession(ctx context.Context, con *console.Console, fn func(ctx context.Context, d browser.Driver) error) error {
	cfg := config.Global()

	if err := checkProfile(cfg.SessionOptions().ProfileDir); err != nil {
		return err
	}
	con.Debugf("Run %s, log file %s", debugLog.SessionID(), debugLog.LogPath())

	mgr := browser.NewManager()
	if cfg.Logging.Verbosity == "debug" {
		mgr.SetInstallOutput(os.Stderr)
	}
	con.Verbosef("Starting %s browser", cfg.Browser.Engine)
	if err := mgr.Initialize(); err != nil {
		return err
	}
	defer func() {
		if err := mgr.Shutdown(); err != nil {
			debugLog.Warnf("Browser shutdown failed: %v", err)
		}
	}()

	session, err := mgr.StartSession(sessionName, cfg.SessionOptions())
	if err != nil {
		return fmt.Errorf("failed to start browser: %w", err)
	}

	runErr := fn(ctx, session)
	if runErr != nil && cfg.Output.DumpDir != "" && dumpWorthy(runErr) {
		if path, err := dumpPage(session, cfg.Output.DumpDir, time.Now()); err != nil {
			con.Warningf("could not save page snapshot: %v", err)
		} else {
			con.Infof("Page snapshot saved to %s", path)
		}
	}
	return runErr
}

// checkProfile fails when the persistent profile has not been set up.
// An empty dir means an ephemeral session, which needs no profile.
func checkProfile(dir string) error {
	if dir == "" {
		return nil
	}
	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("%w at %s; run 'sapweb setup' first", errNoProfile, dir)
	case err != nil:
		return fmt.Errorf("failed to check browser profile: %w", err)
	case !info.IsDir():
		return fmt.Errorf("browser profile %s is not a directory", dir)
	}
	return nil
}

// dumpWorthy reports whether err came from the page rather than from the
// input or the user.
func dumpWorthy(err error) bool {
	return errors.Is(err, rfp.ErrFailedTransition) ||
		errors.Is(err, rfp.ErrPostcondition) ||
		errors.Is(err, rfp.ErrUnexpectedPage) ||
		errors.Is(err, browser.ErrNoSuchElement)
}

// dumpPage writes the current page, cleaned and with tax ids redacted, as
// <dir>/sapweb-<timestamp>.html.
func dumpPage(src snapshotSource, dir string, now time.Time) (string, error) {
	cleaned, err := src.Snapshot(browser.CleanOptions{Redact: []string{"ssnTin"}})
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create dump directory: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("sapweb-%s.html", now.Format("20060102-150405")))
	content := fmt.Sprintf("<!-- %s -->\n<!-- title: %s -->\n%s\n", src.URL(), cleaned.Title, cleaned.HTML)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return "", fmt.Errorf("failed to write page snapshot: %w", err)
	}
	debugLog.Infof("Saved page snapshot %s", path)
	return path, nil
}

// workflowOptions wires configuration and console progress into a workflow.
func workflowOptions(con *console.Console) []rfp.Option {
	return []rfp.Option{
		rfp.WithEndpoints(config.Global().Endpoints),
		rfp.WithProgress(con.Step),
	}
}
