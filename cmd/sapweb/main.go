// Package main provides the sapweb command line: create, view and search
// SAPweb Requests for Payment from the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/entrhq/sapweb/pkg/config"
	"github.com/entrhq/sapweb/pkg/console"
	"github.com/entrhq/sapweb/pkg/logging"
)

const version = "0.1.0" // Version of the sapweb CLI

var debugLog *logging.Logger

func init() {
	var err error
	debugLog, err = logging.NewLogger("cli")
	if err != nil {
		debugLog.Warnf("Failed to initialize cli logger, using stderr fallback: %v", err)
	}
}

func main() {
	// Create context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nShutting down gracefully...")
		cancel()
	}()

	root := newRootCmd(viper.New())
	if err := root.ExecuteContext(ctx); err != nil {
		cancel()
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	cancel()
}

// flagKeys maps persistent flags to configuration keys.
var flagKeys = map[string]string{
	"base-url":    "endpoints.base_url",
	"system-id":   "endpoints.system_id",
	"headless":    "browser.headless",
	"engine":      "browser.engine",
	"profile-dir": "browser.profile_dir",
	"timeout":     "browser.timeout",
	"log-level":   "logging.level",
	"verbosity":   "logging.verbosity",
	"format":      "output.format",
	"dump-dir":    "output.dump_dir",
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "sapweb",
		Short: "Work with SAPweb Requests for Payment",
		Long: `sapweb drives the SAPweb Request for Payment pages in a browser.

Run 'sapweb setup' once to create a browser profile with your certificate
and login. Settings are read from ~/.sapweb/config.yaml, SAPWEB_* environment
variables and flags, in increasing order of precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Initialize(v, cfgFile); err != nil {
				return err
			}
			config.Global().ApplyLogging()
			debugLog.Infof("sapweb %s: %s", version, cmd.CommandPath())
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default ~/.sapweb/config.yaml)")
	flags.String("base-url", "", "SAPweb RFP base URL")
	flags.String("system-id", "", "SAP system id")
	flags.Bool("headless", true, "run the browser without a window")
	flags.String("engine", "", "browser engine: firefox, chromium or webkit")
	flags.String("profile-dir", "", "browser profile directory")
	flags.Duration("timeout", 0, "browser operation timeout")
	flags.String("log-level", "", "file log level: debug, info, warn, error")
	flags.StringP("verbosity", "v", "", "terminal output: quiet, normal, verbose, debug")
	flags.StringP("format", "o", "", "output format: table, json, yaml, markdown")
	flags.String("dump-dir", "", "write a cleaned page snapshot here when a page action fails")
	for flag, key := range flagKeys {
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}

	root.AddCommand(newCreateCmd())
	root.AddCommand(newViewCmd())
	root.AddCommand(newSearchCmd())
	root.AddCommand(newInboxCmd())
	root.AddCommand(newSetupCmd())
	root.AddCommand(newConfigCmd(v, &cfgFile))
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the sapweb version",
		Args:  cobra.NoArgs,
		// version needs no configuration
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "sapweb v%s\n", version)
		},
	}
}

// newConsole builds the progress printer for the configured verbosity.
// Progress goes to stderr so stdout stays clean for results.
func newConsole(cmd *cobra.Command) *console.Console {
	return console.New(cmd.ErrOrStderr(), console.ParseLevel(config.Global().Logging.Verbosity))
}
