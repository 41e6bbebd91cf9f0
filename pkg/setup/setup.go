// Package setup prepares a browser profile for sapweb: a persistent
// profile directory holding the user's certificate and SAPweb login.
// It is interactive and needs a person at the keyboard.
package setup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/entrhq/sapweb/pkg/browser"
	"github.com/entrhq/sapweb/pkg/logging"
	"github.com/entrhq/sapweb/pkg/rfp"
)

var debugLog *logging.Logger

func init() {
	var err error
	debugLog, err = logging.NewLogger("setup")
	if err != nil {
		debugLog.Warnf("Failed to initialize setup logger, using stderr fallback: %v", err)
	}
}

// CertificateURL is where users install their personal certificate.
const CertificateURL = "https://ca.mit.edu/"

const sessionName = "setup"

var (
	// ErrProfileExists is returned when the profile directory is already
	// present and overwriting was not requested.
	ErrProfileExists = errors.New("profile directory already exists")

	// ErrAborted is returned when the user quits before the last step.
	ErrAborted = errors.New("setup aborted")
)

// Navigator is the part of a browser session setup drives.
type Navigator interface {
	Navigate(url string) error
}

// Step is one page the user has to act on.
type Step struct {
	Title        string
	Instructions string
	URL          string
}

// Steps returns the certificate step followed by the SAPweb login step.
func Steps(ep rfp.Endpoints) []Step {
	return []Step{
		{
			Title:        "Install your certificate",
			Instructions: "Load your personal certificate into the browser and set a master password if asked.",
			URL:          CertificateURL,
		},
		{
			Title:        "Log in to SAPweb",
			Instructions: "Complete the login until the RFP inbox is shown.",
			URL:          ep.Inbox(),
		},
	}
}

// Options configures Bootstrap.
type Options struct {
	ProfileDir string
	Overwrite  bool
	Engine     browser.Engine
	Endpoints  rfp.Endpoints
	Input      io.Reader
	Output     io.Writer
}

// PrepareProfileDir creates an empty profile directory. An existing one is
// an error unless overwrite is set, in which case it is removed first.
func PrepareProfileDir(dir string, overwrite bool) error {
	if dir == "" {
		return fmt.Errorf("profile directory is required")
	}

	if _, err := os.Stat(dir); err == nil {
		if !overwrite {
			return fmt.Errorf("%w: %s", ErrProfileExists, dir)
		}
		debugLog.Infof("Removing existing profile %s", dir)
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("failed to remove existing profile: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check profile directory: %w", err)
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create profile directory: %w", err)
	}
	return nil
}

// Bootstrap creates a profile: it launches a headed browser on a fresh
// persistent profile, walks the user through Steps and closes the browser.
// The profile directory is removed again if setup does not finish.
func Bootstrap(ctx context.Context, mgr *browser.Manager, opts Options) (err error) {
	if err := PrepareProfileDir(opts.ProfileDir, opts.Overwrite); err != nil {
		return err
	}
	if opts.Engine != browser.EngineFirefox {
		debugLog.Warnf("Engine %q cannot preselect the certificate; headless logins may prompt", opts.Engine)
	}
	defer func() {
		if err != nil {
			debugLog.Warnf("Setup failed, removing profile %s: %v", opts.ProfileDir, err)
			os.RemoveAll(opts.ProfileDir)
		}
	}()

	if err := mgr.Initialize(); err != nil {
		return err
	}
	session, err := mgr.StartSession(sessionName, browser.SessionOptions{
		Headless:         false,
		Engine:           opts.Engine,
		ProfileDir:       opts.ProfileDir,
		FirefoxUserPrefs: browser.ProfilePrefs(),
	})
	if err != nil {
		return fmt.Errorf("failed to launch browser: %w", err)
	}

	runErr := Run(ctx, session, Steps(opts.Endpoints), opts.Input, opts.Output)
	// The profile is only complete once the browser has flushed it.
	if closeErr := mgr.CloseSession(sessionName); closeErr != nil && runErr == nil {
		runErr = fmt.Errorf("failed to close browser: %w", closeErr)
	}
	if runErr != nil {
		return runErr
	}

	debugLog.Infof("Profile created at %s", opts.ProfileDir)
	return nil
}
