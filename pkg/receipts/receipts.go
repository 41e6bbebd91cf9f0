// Package receipts gathers the files attached to a new RFP and checks them
// before any browser work starts.
package receipts

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/entrhq/sapweb/pkg/logging"
)

var debugLog *logging.Logger

func init() {
	var err error
	debugLog, err = logging.NewLogger("receipts")
	if err != nil {
		debugLog.Warnf("Failed to initialize receipts logger, using stderr fallback: %v", err)
	}

	// pdfcpu otherwise writes a config.yml under the user config directory.
	api.DisableConfigDir()
}

// ErrInvalidReceipt is matched by every *Error.
var ErrInvalidReceipt = errors.New("invalid receipt")

// Error describes a receipt that cannot be attached.
type Error struct {
	Path   string
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid receipt %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid receipt %s: %s", e.Path, e.Reason)
}

func (e *Error) Is(target error) bool { return target == ErrInvalidReceipt }
func (e *Error) Unwrap() error        { return e.Err }

// Source lists where receipts come from. Explicit paths keep their order
// and come first; files collected from Dir follow in lexical order.
type Source struct {
	Paths   []string `yaml:"receipts,omitempty"`
	Dir     string   `yaml:"receipt_dir,omitempty"`
	Include []string `yaml:"receipt_patterns,omitempty"`
	Exclude []string `yaml:"receipt_exclude,omitempty"`
}

// IsEmpty reports whether the source names no receipts at all.
func (s Source) IsEmpty() bool {
	return len(s.Paths) == 0 && s.Dir == ""
}

// Resolve returns absolute, validated receipt paths. Relative paths are
// resolved against base. A path named twice is attached once.
func Resolve(s Source, base string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, p := range s.Paths {
		add(absolute(base, p))
	}

	if s.Dir != "" {
		collected, err := Collect(absolute(base, s.Dir), s.Include, s.Exclude)
		if err != nil {
			return nil, err
		}
		for _, p := range collected {
			add(p)
		}
	}

	if err := Validate(out); err != nil {
		return nil, err
	}
	debugLog.Infof("Resolved %d receipt(s)", len(out))
	return out, nil
}

// Collect walks dir and returns the regular files accepted by the include
// and exclude patterns, sorted by relative path. Without include patterns
// DefaultPatterns applies.
func Collect(dir string, include, exclude []string) ([]string, error) {
	if len(include) == 0 {
		include = DefaultPatterns
	}
	m, err := NewMatcher(include, exclude)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, &Error{Path: dir, Reason: "cannot read receipt directory", Err: err}
	}
	if !info.IsDir() {
		return nil, &Error{Path: dir, Reason: "not a directory"}
	}

	var rels []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if m.Match(rel) {
			rels = append(rels, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect receipts from %s: %w", dir, err)
	}

	sort.Strings(rels)
	paths := make([]string, len(rels))
	for i, rel := range rels {
		paths[i] = filepath.Join(dir, rel)
	}
	debugLog.Debugf("Collected %d receipt(s) from %s", len(paths), dir)
	return paths, nil
}

// Validate checks that every path is an existing regular file and that PDF
// files are well formed. The first failure is returned.
func Validate(paths []string) error {
	for _, p := range paths {
		if err := validate(p); err != nil {
			debugLog.Warnf("Rejected receipt: %v", err)
			return err
		}
	}
	return nil
}

func validate(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &Error{Path: path, Reason: "cannot read file", Err: err}
	}
	if !info.Mode().IsRegular() {
		return &Error{Path: path, Reason: "not a regular file"}
	}
	if info.Size() == 0 {
		return &Error{Path: path, Reason: "file is empty"}
	}
	if IsPDF(path) {
		if err := api.ValidateFile(path, nil); err != nil {
			return &Error{Path: path, Reason: "malformed PDF", Err: err}
		}
	}
	return nil
}

// IsPDF reports whether path has a .pdf extension in any case.
func IsPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// PageCount returns the number of pages of a PDF receipt.
func PageCount(path string) (int, error) {
	if !IsPDF(path) {
		return 0, &Error{Path: path, Reason: "not a PDF"}
	}
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, &Error{Path: path, Reason: "malformed PDF", Err: err}
	}
	return n, nil
}

func absolute(base, p string) string {
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[2:])
		}
	}
	if filepath.IsAbs(p) || base == "" {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}
