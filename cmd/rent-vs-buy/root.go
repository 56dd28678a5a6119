package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/iwvelando/rent-vs-buy/internal/cache"
	"github.com/iwvelando/rent-vs-buy/internal/config"
	"github.com/iwvelando/rent-vs-buy/internal/store"
	"github.com/iwvelando/rent-vs-buy/pkg/constants"
	"github.com/iwvelando/rent-vs-buy/pkg/scenario"
	"github.com/iwvelando/rent-vs-buy/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// options carries the persistent flags and the state set up from them before
// any command runs.
type options struct {
	configPath   string
	logLevel     string
	outputFormat string
	dbPath       string

	conf   *config.Configuration
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	projectFlags := &scenarioFlags{}

	root := &cobra.Command{
		Use:   "rent-vs-buy",
		Short: "Compare buying a home against renting and investing",
		Long: "Project owning and renting month by month, find the break-even points\n" +
			"and recommend whether buying or renting comes out ahead.",
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			opts.sync()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.runProject(cmd, projectFlags)
		},
	}
	bindScenarioFlags(root, projectFlags)
	root.Flags().StringVar(&projectFlags.notes, "notes", "", "write an analysis packet carrying these notes")

	root.PersistentFlags().StringVar(&opts.configPath, "config", constants.DefaultConfigFile, "path to configuration file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&opts.outputFormat, "output-format", "", "type of output override: pretty, csv, json")
	root.PersistentFlags().StringVar(&opts.dbPath, "db", "", "saved scenario database (overrides store.path)")

	root.AddCommand(
		newProjectCmd(opts),
		newScheduleCmd(opts),
		newShareCmd(opts),
		newScenariosCmd(opts),
		newServeCmd(opts),
	)
	return root
}

// loadConfiguration reads the configuration file. A missing file at the
// default location falls back to the built-in defaults; a missing file the
// user asked for is an error.
func loadConfiguration(path string, explicit bool) (*config.Configuration, error) {
	if !explicit {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return config.DefaultConfiguration()
		}
	}
	return config.LoadConfiguration(path)
}

func (o *options) setup(cmd *cobra.Command) error {
	conf, err := loadConfiguration(o.configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return fmt.Errorf("failed to load configuration at %s: %w", o.configPath, err)
	}

	logger, err := initializeLogger(conf.Logging, o.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// The CLI override takes precedence over the config file.
	if o.outputFormat != "" {
		conf.Output.Format = o.outputFormat
	}
	if conf.Output.Format == "" {
		conf.Output.Format = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(conf.Output.Format); err != nil {
		return err
	}
	if o.dbPath != "" {
		conf.Store.Path = o.dbPath
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main.setup"),
		)
	}

	o.conf = conf
	o.logger = logger
	return nil
}

func (o *options) sync() {
	if o.logger != nil {
		_ = o.logger.Sync()
	}
}

func (o *options) openStore() (*store.Store, error) {
	st, err := store.Open(o.conf.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scenario store: %w", err)
	}
	return st, nil
}

// newCache returns the configured analysis cache and a function releasing it.
// An unreachable Redis server degrades to the in-memory cache.
func newCache(ctx context.Context, cfg config.CacheConfig, logger *zap.Logger) (cache.Cache, func()) {
	const op = "main.newCache"
	noop := func() {}

	switch cfg.Backend {
	case constants.CacheBackendMemory:
		return cache.NewMemory(cfg.TTL), noop

	case constants.CacheBackendRedis:
		r := cache.NewRedis(cfg.Address, cfg.TTL)
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := r.Ping(pingCtx); err != nil {
			logger.Warn("redis cache unavailable, using in-memory cache",
				zap.String("op", op),
				zap.String("address", cfg.Address),
				zap.Error(err),
			)
			_ = r.Close()
			return cache.NewMemory(cfg.TTL), noop
		}
		return r, func() { _ = r.Close() }

	default:
		return cache.Nop{}, noop
	}
}

// scenarioFlags selects where a command reads its scenario from. At most one
// source may be given; with none the config file scenario is used.
type scenarioFlags struct {
	scenarioFile string
	shareCode    string
	savedName    string
	notes        string
}

func bindScenarioFlags(cmd *cobra.Command, f *scenarioFlags) {
	cmd.Flags().StringVar(&f.scenarioFile, "scenario", "", "YAML or JSON scenario file")
	cmd.Flags().StringVar(&f.shareCode, "share", "", "share code or share URL")
	cmd.Flags().StringVar(&f.savedName, "saved", "", "name of a saved scenario")
}

func (o *options) resolveScenario(f *scenarioFlags) (scenario.Inputs, error) {
	sources := 0
	for _, s := range []string{f.scenarioFile, f.shareCode, f.savedName} {
		if s != "" {
			sources++
		}
	}
	if sources > 1 {
		return scenario.Inputs{}, errors.New("only one of --scenario, --share and --saved may be given")
	}

	switch {
	case f.shareCode != "":
		if strings.Contains(f.shareCode, "://") {
			return scenario.FromURL(f.shareCode)
		}
		return scenario.DecodeShareCode(f.shareCode)

	case f.savedName != "":
		st, err := o.openStore()
		if err != nil {
			return scenario.Inputs{}, err
		}
		defer st.Close()
		return st.Load(f.savedName)

	case f.scenarioFile != "":
		return scenario.LoadFile(f.scenarioFile)

	default:
		return o.conf.Scenario, nil
	}
}
