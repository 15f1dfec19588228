package main

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "llkp"

var version = "dev"

type rootParams struct {
	configFile string
	logLevel   string
	logFormat  string
}

var configuredRootParams rootParams

// RootCommand is the base command all subcommands are added to.
var RootCommand = &cobra.Command{
	Use:           path.Base(os.Args[0]),
	Short:         "Parse text with ABNF or PEG grammars",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return applyConfig(cmd, configuredRootParams.configFile)
	},
}

var versionCommand = &cobra.Command{
	Use:   "version",
	Short: "Print the version of llkp",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "llkp version "+version)
	},
}

// applyConfig sets flags not given on command line from LLKP_<FLAG> environment
// variables or from a config file, environment takes precedence.
func applyConfig(cmd *cobra.Command, configFile string) error {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if configFile != "" {
		v.SetConfigFile(configFile)
		if e := v.ReadInConfig(); e != nil {
			return fmt.Errorf("cannot read config file: %w", e)
		}
	}

	var errs []string
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed || !v.IsSet(f.Name) {
			return
		}

		var e error
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			e = sv.Replace(v.GetStringSlice(f.Name))
		} else {
			e = f.Value.Set(v.GetString(f.Name))
		}
		if e != nil {
			errs = append(errs, f.Name+": "+e.Error())
		}
	})

	if len(errs) > 0 {
		return fmt.Errorf("error applying configuration: %s", strings.Join(errs, "; "))
	}
	return nil
}

func newLogger(level, format string) (*logrus.Logger, error) {
	lvl, e := logrus.ParseLevel(level)
	if e != nil {
		return nil, e
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(lvl)
	switch format {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	return log, nil
}

func init() {
	flags := RootCommand.PersistentFlags()
	flags.StringVar(&configuredRootParams.configFile, "config", "", "config file (YAML, JSON, or TOML) with flag values")
	flags.StringVar(&configuredRootParams.logLevel, "log-level", "info", "log level: debug, info, warn, or error")
	flags.StringVar(&configuredRootParams.logFormat, "log-format", "text", "log format: text or json")

	RootCommand.AddCommand(versionCommand)
}
