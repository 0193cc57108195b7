package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	repository "github.com/okian/rota/internal/adapters/repository"
	app "github.com/okian/rota/internal/app"
	"github.com/okian/rota/internal/config"
	"github.com/okian/rota/internal/domain/types"
	"github.com/okian/rota/pkg/logger"
	"github.com/okian/rota/pkg/metrics"
)

// cliState carries what PersistentPreRunE prepares for every subcommand.
type cliState struct {
	cfg *config.Config
	log logger.Logger

	// flag overrides
	configFile string
	rosterFile string
	outputDir  string
	startDate  string
	logLevel   string
	seed       int64
}

func newRootCommand(in io.Reader, out io.Writer) *cobra.Command {
	st := &cliState{}

	root := &cobra.Command{
		Use:           "rota",
		Short:         "Weekly duty rota for snack, keys and counting",
		Long:          "rota draws a Monday-to-Friday duty schedule from a name list and writes one text file per duty.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return st.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return st.flushMetrics(cmd)
		},
	}
	root.SetIn(in)
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.StringVar(&st.configFile, "config", "", "YAML config file (overrides ROTA_CONFIG)")
	pf.StringVar(&st.rosterFile, "roster", "", "name list, one \"Name - label\" per line")
	pf.StringVar(&st.outputDir, "output", "", "folder for the schedule files")
	pf.StringVar(&st.startDate, "start", "", "Monday of the first week (YYYY-MM-DD)")
	pf.StringVar(&st.logLevel, "log-level", "", "debug, info, warn or error")
	pf.Int64Var(&st.seed, "seed", 0, "fix the random source (0 = time based)")

	root.AddCommand(
		newGenerateCommand(st),
		newHistoryCommand(st),
		newCleanupCommand(st),
		newMenuCommand(st),
		newSimulateCommand(st),
	)
	return root
}

// setup initialises logging and loads the layered configuration, then applies
// command-line overrides on top.
func (st *cliState) setup(cmd *cobra.Command) error {
	if st.configFile != "" {
		if err := os.Setenv("ROTA_CONFIG", st.configFile); err != nil {
			return err
		}
	}

	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return fail("failed to load config", err)
	}

	flags := cmd.Flags()
	if flags.Changed("roster") {
		cfg.RosterFile = st.rosterFile
	}
	if flags.Changed("output") {
		cfg.OutputDir = st.outputDir
	}
	if flags.Changed("start") {
		cfg.StartDate = st.startDate
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = st.logLevel
	}
	if flags.Changed("seed") {
		cfg.Seed = st.seed
	}
	if err := cfg.Validate(); err != nil {
		return fail("invalid configuration", err)
	}

	if err := logger.Init(logger.WithWriter(cmd.ErrOrStderr()), logger.WithFormat(cfg.LogFormat)); err != nil {
		return fail("failed to initialize logging", err)
	}
	st.log = logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		st.log.Warn(cmd.Context(), "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	metrics.Configure(
		metrics.WithNamespace(cfg.MetricsNamespace),
		metrics.WithConstLabels(cfg.MetricsLabels),
		metrics.WithMetricsEnabled(cfg.MetricsFile != ""),
	)

	st.cfg = cfg
	return nil
}

// fail prefixes err with what the command was doing.
func fail(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}

// flushMetrics writes the registry to the configured textfile, if any.
func (st *cliState) flushMetrics(cmd *cobra.Command) error {
	if st.cfg == nil || st.cfg.MetricsFile == "" {
		return nil
	}
	if err := metrics.WriteTextfile(st.cfg.MetricsFile); err != nil {
		st.log.Error(cmd.Context(), "failed to write metrics textfile", logger.String("path", st.cfg.MetricsFile), logger.Error(err))
		return err
	}
	return nil
}

// newService builds the application service from the loaded configuration.
func (st *cliState) newService() (*app.Service, error) {
	cfg := st.cfg

	var start time.Time
	if cfg.StartDate != "" {
		d, err := types.ParseDate(cfg.StartDate)
		if err != nil {
			return nil, err
		}
		start = d
	}

	layout := repository.NewLayout(cfg.OutputDir)
	return app.New(
		app.WithLogger(st.log),
		app.WithRosterSource(repository.NewFileRoster(cfg.RosterFile,
			repository.WithCaseInsensitiveNames(cfg.CaseInsensitiveNames),
			repository.WithRosterLogger(st.log.Named("roster")),
		)),
		app.WithHistoryStore(repository.NewFileHistory(cfg.HistoryPath(), repository.WithLogger(st.log.Named("history")))),
		app.WithScheduleSink(repository.NewFileSink(layout, repository.WithLogger(st.log.Named("sink")))),
		app.WithCleaner(repository.NewFileCleaner(layout, repository.WithLogger(st.log.Named("cleanup")))),
		app.WithSeed(cfg.Seed),
		app.WithStartDate(start),
		app.WithRetentionDays(cfg.RetentionDays),
	), nil
}
