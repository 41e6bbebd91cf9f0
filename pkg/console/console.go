// Package console prints human-facing progress for sapweb commands.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Level represents the output verbosity level
type Level int

const (
	// LevelQuiet shows only warnings, errors and the final summary
	LevelQuiet Level = iota
	// LevelNormal shows workflow steps (default)
	LevelNormal
	// LevelVerbose shows detailed step information
	LevelVerbose
	// LevelDebug shows everything
	LevelDebug
)

// ParseLevel converts a verbosity name to a Level. Unknown names are
// treated as normal.
func ParseLevel(level string) Level {
	switch level {
	case "quiet":
		return LevelQuiet
	case "normal":
		return LevelNormal
	case "verbose":
		return LevelVerbose
	case "debug":
		return LevelDebug
	default:
		return LevelNormal
	}
}

// Status is the outcome shown in a summary.
type Status string

const (
	StatusSuccess        Status = "success"
	StatusPartialSuccess Status = "partial_success"
	StatusFailed         Status = "failed"
)

// Summary describes a finished command.
type Summary struct {
	Command   string
	Status    Status
	RFPNumber string
	Receipts  []string
	Artifacts []string
	Duration  time.Duration
	Error     string
}

// Console writes colored, levelled progress output.
type Console struct {
	level  Level
	writer io.Writer

	// ANSI color codes, empty when color is off
	colorReset     string
	colorCyan      string
	colorSalmon    string
	colorYellow    string
	colorRed       string
	colorGray      string
	colorBoldGreen string
	colorBoldRed   string
	colorBoldWhite string

	startTime time.Time
	stepCount int
}

// New creates a console writing to w. Color is disabled when NO_COLOR is
// set.
func New(w io.Writer, level Level) *Console {
	c := &Console{
		level:     level,
		writer:    w,
		startTime: time.Now(),
	}
	if os.Getenv("NO_COLOR") == "" {
		c.colorReset = "\033[0m"
		c.colorCyan = "\033[36m"
		c.colorSalmon = "\033[38;5;217m" // Salmon pink #FFB3BA
		c.colorYellow = "\033[33m"
		c.colorRed = "\033[31m"
		c.colorGray = "\033[90m"
		c.colorBoldGreen = "\033[1;32m"
		c.colorBoldRed = "\033[1;31m"
		c.colorBoldWhite = "\033[1;37m"
	}
	return c
}

// Level returns the configured verbosity.
func (c *Console) Level() Level { return c.level }

// Elapsed returns the time since the console was created.
func (c *Console) Elapsed() time.Duration { return time.Since(c.startTime) }

// Header prints a prominent header message
func (c *Console) Header(message string) {
	if c.level >= LevelNormal {
		fmt.Fprintf(c.writer, "%s%s%s\n", c.colorBoldWhite, strings.Repeat("=", 70), c.colorReset)
		fmt.Fprintf(c.writer, "%s  %s%s\n", c.colorBoldWhite, message, c.colorReset)
		fmt.Fprintf(c.writer, "%s%s%s\n", c.colorBoldWhite, strings.Repeat("=", 70), c.colorReset)
	}
}

// Section prints a section divider
func (c *Console) Section(title string) {
	if c.level >= LevelNormal {
		fmt.Fprintln(c.writer)
		fmt.Fprintf(c.writer, "%s▶ %s%s\n", c.colorCyan, title, c.colorReset)
		fmt.Fprintf(c.writer, "%s%s%s\n", c.colorGray, strings.Repeat("─", 50), c.colorReset)
	}
}

// Step prints a numbered workflow step. Its signature matches
// rfp.WithProgress.
func (c *Console) Step(message string) {
	if c.level >= LevelNormal {
		c.stepCount++
		fmt.Fprintf(c.writer, "%s[%d] %s%s\n", c.colorCyan, c.stepCount, message, c.colorReset)
	}
}

// Successf prints a success message with checkmark
func (c *Console) Successf(format string, args ...interface{}) {
	if c.level >= LevelNormal {
		msg := fmt.Sprintf(format, args...)
		fmt.Fprintf(c.writer, "%s✓ %s%s\n", c.colorBoldGreen, msg, c.colorReset)
	}
}

// Infof prints an informational message
func (c *Console) Infof(format string, args ...interface{}) {
	if c.level >= LevelNormal {
		msg := fmt.Sprintf(format, args...)
		fmt.Fprintf(c.writer, "%s%s%s\n", c.colorSalmon, msg, c.colorReset)
	}
}

// Warningf prints a warning message
func (c *Console) Warningf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(c.writer, "%s⚠ Warning: %s%s\n", c.colorYellow, msg, c.colorReset)
}

// Errorf prints an error message
func (c *Console) Errorf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(c.writer, "%s✗ Error: %s%s\n", c.colorBoldRed, msg, c.colorReset)
}

// Verbosef prints detailed information (only in verbose mode)
func (c *Console) Verbosef(format string, args ...interface{}) {
	if c.level >= LevelVerbose {
		msg := fmt.Sprintf(format, args...)
		fmt.Fprintf(c.writer, "%s→ %s%s\n", c.colorGray, msg, c.colorReset)
	}
}

// Debugf prints debug information (only in debug mode)
func (c *Console) Debugf(format string, args ...interface{}) {
	if c.level >= LevelDebug {
		msg := fmt.Sprintf(format, args...)
		fmt.Fprintf(c.writer, "%s[DEBUG] %s%s\n", c.colorGray, msg, c.colorReset)
	}
}

// Receipt logs a receipt queued for attachment. pages is shown when
// positive.
func (c *Console) Receipt(path string, pages int) {
	if pages > 0 {
		path = fmt.Sprintf("%s (%d page%s)", path, pages, plural(pages))
	}
	switch c.level {
	case LevelQuiet:
	case LevelNormal:
		fmt.Fprintf(c.writer, "%s  • %s%s\n", c.colorGray, path, c.colorReset)
	default:
		fmt.Fprintf(c.writer, "%s  📎 Receipt: %s%s\n", c.colorCyan, path, c.colorReset)
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// Summary prints the final outcome of a command. It is shown at every
// level.
func (c *Console) Summary(s Summary) {
	fmt.Fprintln(c.writer)
	fmt.Fprintf(c.writer, "%s%s%s\n", c.colorBoldWhite, strings.Repeat("=", 70), c.colorReset)
	fmt.Fprintf(c.writer, "%s  %s SUMMARY%s\n", c.colorBoldWhite, strings.ToUpper(s.Command), c.colorReset)
	fmt.Fprintf(c.writer, "%s%s%s\n", c.colorBoldWhite, strings.Repeat("=", 70), c.colorReset)

	c.printStatus(s.Status)
	if s.RFPNumber != "" {
		fmt.Fprintf(c.writer, "  RFP: %s\n", s.RFPNumber)
	}
	fmt.Fprintf(c.writer, "  Duration: %s\n", s.Duration.Round(time.Second))

	if len(s.Receipts) > 0 {
		fmt.Fprintf(c.writer, "  Receipts attached: %d\n", len(s.Receipts))
		if c.level >= LevelVerbose {
			for _, r := range s.Receipts {
				fmt.Fprintf(c.writer, "    • %s\n", r)
			}
		}
	}
	for _, a := range s.Artifacts {
		fmt.Fprintf(c.writer, "  Saved: %s\n", a)
	}

	if s.Error != "" {
		fmt.Fprintln(c.writer)
		fmt.Fprintf(c.writer, "%s  Error Details:%s\n", c.colorBoldRed, c.colorReset)
		fmt.Fprintf(c.writer, "%s    %s%s\n", c.colorRed, s.Error, c.colorReset)
	}
	fmt.Fprintf(c.writer, "%s%s%s\n", c.colorBoldWhite, strings.Repeat("=", 70), c.colorReset)
}

func (c *Console) printStatus(status Status) {
	fmt.Fprint(c.writer, "  Status: ")
	switch status {
	case StatusSuccess:
		fmt.Fprintf(c.writer, "%s✓ SUCCESS%s\n", c.colorBoldGreen, c.colorReset)
	case StatusPartialSuccess:
		fmt.Fprintf(c.writer, "%s⚠ PARTIAL SUCCESS%s\n", c.colorYellow, c.colorReset)
	case StatusFailed:
		fmt.Fprintf(c.writer, "%s✗ FAILED%s\n", c.colorBoldRed, c.colorReset)
	default:
		fmt.Fprintln(c.writer, status)
	}
}
