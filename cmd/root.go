package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"ovh-ddns/internal/adapter/infrastructure/file"
	"ovh-ddns/internal/adapter/infrastructure/httpclient"
	"ovh-ddns/internal/adapter/infrastructure/network"
	"ovh-ddns/internal/adapter/ovh"
	"ovh-ddns/internal/adapter/resolver"
	"ovh-ddns/internal/adapter/state"
	"ovh-ddns/internal/app"
	"ovh-ddns/internal/metrics"
	"ovh-ddns/internal/pkg/config"
	"ovh-ddns/internal/pkg/logging"
	"ovh-ddns/internal/pkg/version"

	"github.com/spf13/cobra"
)

// DefaultLogFile is the bounded log written next to the binary's working directory.
const DefaultLogFile = "update_ovh_ddns.log"

type options struct {
	configPath  string
	logFile     string
	stateFile   string
	metricsFile string
	verbose     bool
}

// NewRootCommand builds the ovh-ddns command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           version.Name,
		Short:         "ovh-ddns pushes this host's public IPv6 address to an OVH DynHost record",
		Version:       version.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd, opts)
		},
	}
	rootCmd.SetVersionTemplate("{{.Name}} version {{.Version}}\n")

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "f", config.DefaultPath, "Path to config file (INI, YAML or TOML)")
	flags.StringVar(&opts.logFile, "log-file", DefaultLogFile, "Path to the log file (keeps the last 10 entries)")
	flags.StringVar(&opts.stateFile, "state-file", state.DefaultPath, "Path to the last-known address cache")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus metrics for this run to the given file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Echo log entries to the console")

	rootCmd.AddCommand(newVersionCommand())
	return rootCmd
}

// Execute runs the root command and exits with its status.
func Execute() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)

	// Run errors have already been logged; anything else (bad flags) has not
	var appErr *app.Error
	if err != nil && !errors.As(err, &appErr) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return app.ExitCode(err)
}

// runUpdate is the single place where a run's error is reported and turned into an exit status.
func runUpdate(cmd *cobra.Command, opts *options) error {
	logger := logging.New(logging.Options{
		File:    opts.logFile,
		Verbose: opts.verbose,
		Console: cmd.OutOrStdout(),
	})

	cfg, result, err := update(cmd.Context(), opts, logger)
	app.Report(logger, err)

	if opts.metricsFile != "" {
		recorder := metrics.NewRecorder(version.Version)
		hostname := ""
		if cfg != nil {
			hostname = cfg.OVH.Hostname
		}
		recorder.Observe(time.Now(), hostname, result, err)
		if mErr := recorder.WriteFile(opts.metricsFile); mErr != nil {
			logger.Warnf("Could not write metrics: %v", mErr)
		}
	}

	// The log file is the only record of the run, so losing it is fatal too
	if logErr := logger.Err(); logErr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: failed to write log file %s: %v\n", opts.logFile, logErr)
		if err == nil {
			err = app.Wrap(app.KindLogFailed, logErr)
		}
	}
	return err
}

func update(ctx context.Context, opts *options, logger *logging.Logger) (*config.Config, app.Result, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		if errors.Is(err, config.ErrConfigMissing) {
			return nil, app.Result{}, app.Wrap(app.KindConfigMissing, err)
		}
		return nil, app.Result{}, app.Wrap(app.KindConfigInvalid, err)
	}
	logger.ApplyConfig(cfg.Logging)

	fileMgr := file.NewManagerAdapter()

	// Lookups must leave over IPv6 so the echo service reports the IPv6 address
	lookupClient := httpclient.New(httpclient.Config{Network: httpclient.NetworkIPv6, Logger: logger})
	addrResolver, err := resolver.New(cfg.OVH, lookupClient, network.NewManagerAdapter(), logger)
	if err != nil {
		return cfg, app.Result{}, app.Wrap(app.KindConfigInvalid, err)
	}

	updater := ovh.NewClient(cfg.OVH.Username, cfg.OVH.Password, logger,
		ovh.WithEndpoint(cfg.OVH.Endpoint),
		ovh.WithHTTPClient(httpclient.New(httpclient.Config{Logger: logger})),
	)

	runner := app.NewUpdater(cfg.OVH.Hostname, addrResolver, state.NewFileStore(opts.stateFile, fileMgr), updater, logger)
	result, err := runner.Run(ctx)
	return cfg, result, err
}
