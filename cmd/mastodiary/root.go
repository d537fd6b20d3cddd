package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"mastodiary/pkg/config"
	errs "mastodiary/pkg/errors"
	"mastodiary/pkg/logger"
	"mastodiary/pkg/scraper"
	"mastodiary/pkg/ui"
)

// rootOptions holds the flags of the root command
type rootOptions struct {
	configFile string
	logLevel   string
	output     string
	template   string
	timezone   string
}

// newRootCmd creates the root command, which runs the export
func newRootCmd(printer *ui.Printer) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "mastodiary [profile-url]",
		Short: "Export #Diary posts from Mastodon to a static HTML page",
		Long: `mastodiary fetches the public posts of a Mastodon account, keeps those
starting with #Diary and renders them, grouped by day, into an HTML template.

The template must contain the literal {{posts}} placeholder.

Settings come from exactly one place:
  - a profile URL argument plus --output, --template and --timezone, or
  - the configuration file (config.json, or the path given with --config)

Logging and HTTP settings may also be set with MASTODIARY_* environment
variables or a .env file.`,
		Example: `  mastodiary https://mastodon.social/@alice -o site/diary.html -z Europe/Berlin
  mastodiary --config ~/diary/config.json`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args, opts, printer)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "config file (default is "+config.DefaultConfigFile+")")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error, disabled)")

	cmd.Flags().StringVarP(&opts.output, "output", "o", config.DefaultOutputFile, "output HTML file")
	cmd.Flags().StringVarP(&opts.template, "template", "t", config.DefaultTemplateFile, "HTML template containing {{posts}}")
	cmd.Flags().StringVarP(&opts.timezone, "timezone", "z", config.DefaultTimezone, "IANA timezone used for dates and times")

	cmd.SetVersionTemplate(`mastodiary {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)
	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.AddCommand(newConfigCmd(opts, printer))

	return cmd
}

func runExport(cmd *cobra.Command, args []string, opts *rootOptions, printer *ui.Printer) error {
	flags := config.Flags{
		Output:   opts.output,
		Template: opts.template,
		Timezone: opts.timezone,
	}
	if len(args) == 1 {
		flags.URL = args[0]
	} else {
		for _, name := range []string{"output", "template", "timezone"} {
			if cmd.Flags().Changed(name) {
				printer.PrintWarning(fmt.Sprintf("--%s is ignored without a profile URL, using the config file", name))
			}
		}
	}

	cfg, err := loadConfig(opts, flags)
	if err != nil {
		return err
	}

	log := logger.GetLogger()
	log.InfoWithFields("starting export", map[string]interface{}{
		"source":   string(cfg.Source()),
		"profile":  cfg.MastodonURL,
		"timezone": cfg.Timezone,
	})

	result, err := scraper.New(cfg, scraper.WithLogger(log)).Run(cmd.Context())
	if err != nil {
		log.WithError(err).WithField("step", errs.Step(errs.TypeOf(err))).Error("export failed")
		return err
	}

	printer.PrintSuccess("Posts written to " + result.OutputFile)
	return nil
}

// loadConfig resolves the configuration and initializes the global logger
func loadConfig(opts *rootOptions, flags config.Flags) (*config.Config, error) {
	cfg, err := config.Resolve(opts.configFile, flags)
	if err != nil {
		return nil, errs.Wrap(errs.ErrorTypeConfigLoad, "invalid configuration", err)
	}

	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if err := logger.Initialize(&cfg.Logging); err != nil {
		return nil, errs.Wrap(errs.ErrorTypeConfigLoad, "failed to initialize logger", err)
	}

	return cfg, nil
}
