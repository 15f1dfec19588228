package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var configuredCheckParams grammarParams

var checkCommand = &cobra.Command{
	Use:   "check",
	Short: "Check grammar for errors",
	Long:  `Compile grammar and print the names of defined rules.`,
	Args:  cobra.NoArgs,
	PreRunE: func(*cobra.Command, []string) error {
		return configuredCheckParams.validate()
	},
	Run: func(cmd *cobra.Command, _ []string) {
		log, e := newLogger(configuredRootParams.logLevel, configuredRootParams.logFormat)
		if e != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), e)
			os.Exit(2)
		}
		os.Exit(check(&configuredCheckParams, log, cmd.OutOrStdout()))
	},
}

func check(p *grammarParams, log *logrus.Logger, stdout io.Writer) int {
	_, t, e := p.compile()
	if e != nil {
		log.WithError(e).Error("invalid grammar")
		return 1
	}

	names := t.Names()
	log.WithField("rules", len(names)).Debug("grammar compiled")
	fmt.Fprintf(stdout, "grammar is valid, rules: %s\n", strings.Join(names, ", "))
	return 0
}

func init() {
	configuredCheckParams.addFlags(checkCommand.Flags())
	RootCommand.AddCommand(checkCommand)
}
