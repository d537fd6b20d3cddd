package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"mastodiary/pkg/config"
	errs "mastodiary/pkg/errors"
	"mastodiary/pkg/mastodon"
	"mastodiary/pkg/render"
	"mastodiary/pkg/storage"
	"mastodiary/pkg/ui"
)

const exampleConfig = `{
  "mastodon_url": "https://mastodon.social/@yourname",
  "output_file": "posts.html",
  "template_file": "templates/diary.html",
  "timezone": "UTC",
  "http": {
    "timeout": "30s",
    "user_agent": ""
  },
  "logging": {
    "level": "warn",
    "file": ""
  }
}
`

// newConfigCmd creates the config command and its subcommands
func newConfigCmd(opts *rootOptions, printer *ui.Printer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
		Long: `Manage the mastodiary configuration file.

The file is JSON (YAML is accepted too) and is read when no profile URL is
given on the command line. Logging and HTTP settings can be overridden with
MASTODIARY_LOG_LEVEL, MASTODIARY_LOG_FILE, MASTODIARY_HTTP_TIMEOUT,
MASTODIARY_USER_AGENT and MASTODIARY_API_BASE_URL.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create an example configuration file",
		Long: `Create an example configuration file.

The file is created as 'config.json' in the current directory unless a
different path is given with --config. An existing file is never overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(configPath(opts), printer)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(opts, printer)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration file",
		Long: `Validate the configuration file without contacting the server.

This command checks:
  - JSON/YAML syntax
  - Required fields
  - The profile URL
  - The timezone name
  - The template and its {{posts}} placeholder`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigValidate(opts, printer)
		},
	})

	return cmd
}

func configPath(opts *rootOptions) string {
	if opts.configFile != "" {
		return opts.configFile
	}
	return config.DefaultConfigFile
}

func runConfigInit(path string, printer *ui.Printer) error {
	if _, err := os.Stat(path); err == nil {
		return errs.New(errs.ErrorTypeConfigLoad, fmt.Sprintf("configuration file already exists: %s", path))
	}

	if err := os.WriteFile(path, []byte(exampleConfig), 0644); err != nil {
		return errs.Wrap(errs.ErrorTypeConfigLoad, "failed to create configuration file", err)
	}

	printer.PrintSuccess("Configuration file created: " + path)
	printer.PrintInfo("Next", "set mastodon_url, then run 'mastodiary config validate'")
	return nil
}

func runConfigShow(opts *rootOptions, printer *ui.Printer) error {
	cfg, err := loadConfig(opts, config.Flags{})
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errs.Wrap(errs.ErrorTypeConfigLoad, "failed to format configuration", err)
	}

	printer.PrintHighlight("Current configuration (" + configPath(opts) + ")")
	printer.Print(string(data))
	return nil
}

func runConfigValidate(opts *rootOptions, printer *ui.Printer) error {
	path := configPath(opts)
	printer.PrintInfo("Validating configuration", path)

	cfg, err := loadConfig(opts, config.Flags{})
	if err != nil {
		return err
	}

	profile, err := mastodon.ParseProfileURL(cfg.MastodonURL)
	if err != nil {
		return err
	}
	if _, err := render.LoadLocation(cfg.Timezone); err != nil {
		return err
	}
	template, err := storage.ReadTemplate(cfg.TemplateFile)
	if err != nil {
		return err
	}
	if err := render.CheckTemplate(template); err != nil {
		return err
	}

	printer.PrintSuccess("Configuration is valid")
	printer.PrintInfo("Server", profile.Host)
	printer.PrintInfo("User", profile.Username)
	printer.PrintInfo("Timezone", cfg.Timezone)
	printer.PrintInfo("Template", cfg.TemplateFile)
	printer.PrintInfo("Output", cfg.OutputFile)
	return nil
}
