package cmd

import (
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/peilonrayz/underlords/internal/config"
	"github.com/peilonrayz/underlords/internal/data"
	"github.com/peilonrayz/underlords/internal/debuglog"
	"github.com/peilonrayz/underlords/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Write a debug log")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Mirror the debug log to stderr")
	rootCmd.PersistentFlags().StringVar(&flagData, "data", "", "Dataset file (default: built-in)")
	rootCmd.PersistentFlags().BoolVar(&flagNoJail, "no-jail", false, "Include jailed heroes in the pool")
	rootCmd.PersistentFlags().StringArrayVar(&flagJail, "jail", nil, "Extra jailed-hero pattern (repeatable)")
	rootCmd.PersistentFlags().StringVar(&cpuProfile, "cpuprofile", "", "Write CPU profile to file")
	rootCmd.PersistentFlags().StringVar(&memProfile, "memprofile", "", "Write memory profile to file")
}

var rootCmd = &cobra.Command{
	Use:   "underlords",
	Short: "Plan Dota Underlords teams",
	Long: `underlords builds Dota Underlords teams around alliance bonuses.

Run without arguments for the interactive builder, or script it:
  underlords build -a knight -a warrior --suggest 1
  underlords heroes --alliance savage
  underlords alliances
  underlords teams                  # saved teams`,
	CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagDebug || flagVerbose {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			closeLog, err := debuglog.Init(cfg.Log.Path, flagVerbose)
			if err != nil {
				return err
			}
			logCleanup = closeLog
		}
		return startProfiling()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logCleanup != nil {
			logCleanup()
		}
		return stopProfiling()
	},
	RunE: runShell,
}

var (
	flagDebug   bool
	flagVerbose bool
	flagData    string
	flagNoJail  bool
	flagJail    []string

	cpuProfile     string
	memProfile     string
	cpuProfileFile *os.File
	logCleanup     func()
)

func startProfiling() error {
	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			return err
		}
		cpuProfileFile = f
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return err
		}
	}
	return nil
}

func stopProfiling() error {
	if cpuProfileFile != nil {
		pprof.StopCPUProfile()
		cpuProfileFile.Close()
	}
	if memProfile != "" {
		f, err := os.Create(memProfile)
		if err != nil {
			return err
		}
		defer f.Close()
		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			return err
		}
	}
	return nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig loads the config file and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagData != "" {
		cfg.Data.Path = flagData
	}
	if flagNoJail {
		cfg.Data.Jailed = nil
	}
	cfg.Data.Jailed = append(cfg.Data.Jailed, flagJail...)
	return cfg, nil
}

// loadPool loads the hero pool from the configured dataset.
func loadPool(cfg *config.Config) (*data.Pool, error) {
	if cfg.Data.Path != "" {
		return data.Load(cfg.Data.Path, cfg.Data.Jailed)
	}
	return data.LoadDefault(cfg.Data.Jailed)
}

// openStore opens the team store; a disabled store is a no-op.
func openStore(cfg *config.Config) (store.Store, error) {
	return store.NewStore(store.Config{
		Enabled:  cfg.Store.Enabled,
		Path:     cfg.Store.Path,
		MaxCount: cfg.Store.MaxCount,
	})
}
