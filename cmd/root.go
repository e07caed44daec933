// Package cmd is for command line interactions with the syc application
package cmd

import (
	"log"
	"os"

	"github.com/dgruano/ShareYourCloning-backend/config"
	"github.com/dgruano/ShareYourCloning-backend/internal/cloning"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// stderr is for logging to stderr without timestamps
	stderr = log.New(os.Stderr, "", 0)

	// conf is the settings resolved before each command runs
	conf *config.Config

	// logger is the structured logger requests report to
	logger = zap.NewNop()

	// service runs the assembly requests of every subcommand
	service *cloning.Service
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use: "syc",
	Short: `Simulate DNA assemblies: ligation, Gibson, restriction-ligation, PCR
and homologous recombination`,
	Long: `Find every way a list of DNA fragments can be joined by a cloning technique,
and build the resulting sequences.

Settings come from, in increasing precedence, their defaults, a YAML settings
file (--settings), SYC_ prefixed environment variables and command line flags.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		stderr.Fatalf("%v", err)
	}
}

// setup reads the settings and creates the logger and service of a command.
func setup(cmd *cobra.Command, args []string) (err error) {
	v := viper.New()
	if err = v.BindPFlags(RootCmd.PersistentFlags()); err != nil {
		return err
	}
	if conf, err = config.New(v); err != nil {
		return err
	}

	logConf := zap.NewProductionConfig()
	logConf.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if conf.Verbose {
		logConf.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if logger, err = logConf.Build(); err != nil {
		return err
	}

	service, err = cloning.NewService(conf, cloning.WithLogger(logger))
	return err
}

// set flags
func init() {
	// assigned here rather than in RootCmd's literal: setup refers to RootCmd,
	// which would otherwise be an initialization cycle
	RootCmd.PersistentPreRunE = setup

	flags := RootCmd.PersistentFlags()

	// settings is an optional parameter for a settings file that overrides the defaults
	flags.StringP(config.SettingsKey, "s", "", "path to a YAML settings file")
	flags.BoolP("verbose", "v", false, "log every request at debug level")

	flags.Int("minimal-homology", 40, "shortest homology joining fragments (gibson, recombination)")
	flags.Int("minimal-annealing", 20, "primer bases that must anneal to the template (pcr)")
	flags.Int("allowed-mismatches", 0, "mismatches allowed in a primer's annealing part (pcr)")
	flags.Bool("allow-partial-overlap", false, "let overhangs anneal over part of their length")
	flags.Bool("circular-only", false, "only return circular assemblies")
	flags.Int("max-candidates", 10000, "most candidate assemblies searched before giving up")
	flags.String("enzyme-db", "", "path to an enzyme table (name<TAB>site) replacing the default")
	flags.Int("batch-concurrency", 4, "requests a batch runs at once")
}
