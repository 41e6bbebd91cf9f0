package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/entrhq/sapweb/pkg/browser"
	"github.com/entrhq/sapweb/pkg/config"
	"github.com/entrhq/sapweb/pkg/rfp"
	"github.com/entrhq/sapweb/pkg/setup"
)

func newSetupCmd() *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Create the browser profile used by every other command",
		Long: `Setup opens a browser window on a new profile. Install your certificate,
then log in to SAPweb; the profile keeps both for later headless runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Global()
			opts := setup.Options{
				ProfileDir: cfg.SessionOptions().ProfileDir,
				Overwrite:  overwrite,
				Engine:     browser.Engine(cfg.Browser.Engine),
				Endpoints:  cfg.Endpoints,
				Input:      cmd.InOrStdin(),
				Output:     cmd.OutOrStdout(),
			}

			mgr := browser.NewManager()
			mgr.SetInstallOutput(cmd.ErrOrStderr())
			defer mgr.Shutdown()

			if err := setup.Bootstrap(cmd.Context(), mgr, opts); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile created at %s\n", opts.ProfileDir)
			return nil
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace an existing profile")
	return cmd
}

func newConfigCmd(v *viper.Viper, cfgFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialize the configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(config.Global()); err != nil {
				return err
			}
			return enc.Close()
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to the config file",
		Args:  cobra.NoArgs,
		// the file named by --config may not exist yet
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path := *cfgFile
			if _, err := os.Stat(path); path != "" && os.IsNotExist(err) {
				path = ""
			}
			return config.Initialize(v, path)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := *cfgFile
			if path == "" {
				var err error
				if path, err = config.Path(); err != nil {
					return err
				}
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to replace it)", path)
			}
			if err := config.Save(path, config.Global()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "replace an existing config file")
	cmd.AddCommand(initCmd)

	return cmd
}

// parseTypes turns --type values into the search page's type checkboxes.
func parseTypes(names []string) (rfp.RFPTypes, error) {
	var t rfp.RFPTypes
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "parked":
			t.Parked = true
		case "posted":
			t.Posted = true
		case "deleted":
			t.Deleted = true
		default:
			return rfp.RFPTypes{}, fmt.Errorf("unknown record type %q (want parked, posted or deleted)", name)
		}
	}
	return t, nil
}
