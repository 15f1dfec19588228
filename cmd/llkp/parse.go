package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ava12/llkp/debug"
	"github.com/ava12/llkp/pattern"
)

const (
	formatJSON   = "json"
	formatPretty = "pretty"
)

type parseParams struct {
	grammarParams
	input  string
	format string
	trace  bool
}

var configuredParseParams parseParams

var parseCommand = &cobra.Command{
	Use:   "parse [<text>]",
	Short: "Parse text with a grammar and print parsed value",
	Long: `Parse text given as an argument or read from --input file (- for stdin)
and print parsed value as JSON or YAML.`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(_ *cobra.Command, args []string) error {
		p := &configuredParseParams
		if e := p.validate(); e != nil {
			return e
		}
		if p.format != formatJSON && p.format != formatPretty {
			return fmt.Errorf("unknown format %q, expecting json or pretty", p.format)
		}
		if (p.input == "") == (len(args) == 0) {
			return errors.New("expecting either --input file or text argument")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		log, e := newLogger(configuredRootParams.logLevel, configuredRootParams.logFormat)
		if e != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), e)
			os.Exit(2)
		}
		os.Exit(parse(args, &configuredParseParams, log, cmd.InOrStdin(), cmd.OutOrStdout()))
	},
}

func readInput(args []string, p *parseParams, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if p.input == "-" {
		data, e := io.ReadAll(stdin)
		return string(data), e
	}
	data, e := os.ReadFile(p.input)
	return string(data), e
}

// parse returns process exit code: 0 on success, 1 if input does not match, 2 on other errors.
func parse(args []string, p *parseParams, log *logrus.Logger, stdin io.Reader, stdout io.Writer) int {
	var extra []pattern.RuleSet
	if p.trace {
		log.SetLevel(logrus.DebugLevel)
		extra = append(extra, debug.Trace(log))
	}

	start, _, e := p.compile(extra...)
	if e != nil {
		log.WithError(e).Error("invalid grammar")
		return 2
	}
	if p.trace {
		start = debug.Watch(start, log, p.start)
	}

	input, e := readInput(args, p, stdin)
	if e != nil {
		log.WithError(e).Error("cannot read input")
		return 2
	}

	r, ok := start.Exec(input, 0)
	if !ok || r.End != len(input) {
		entry := log.WithField("start", p.start)
		if ok {
			entry = entry.WithField("end", r.End)
		}
		entry.Error("input does not match")
		return 1
	}

	var out []byte
	if p.format == formatPretty {
		out, e = yaml.Marshal(r.Value)
	} else {
		out, e = json.MarshalIndent(r.Value, "", "  ")
		out = append(out, '\n')
	}
	if e != nil {
		log.WithError(e).Error("cannot format parsed value")
		return 2
	}

	_, _ = stdout.Write(out)
	return 0
}

func init() {
	flags := parseCommand.Flags()
	configuredParseParams.addFlags(flags)
	flags.StringVarP(&configuredParseParams.input, "input", "i", "", "input file, - for stdin")
	flags.StringVarP(&configuredParseParams.format, "format", "f", formatJSON, "output format: json or pretty")
	flags.BoolVar(&configuredParseParams.trace, "trace", false, "log every rule execution")

	RootCommand.AddCommand(parseCommand)
}
