/*
llkp is a console utility parsing text with a grammar written in ABNF or PEG notation.
Usage is

	llkp parse [--syntax abnf|peg] [--rules <file>]... --start <expr> [--trace] [--format json|pretty] (--input <file> | <text>)
	llkp check [--syntax abnf|peg] [--rules <file>]... --start <expr>
	llkp version

--syntax selects grammar notation, ABNF by default;

--rules <file> adds rules from a file: .abnf and .peg files contain rule lists,
.yaml, .yml, and .json files contain mappings of rule names to definitions;

--start <expr> defines the start expression, usually a rule name;

--input <file> reads input from a file, - stands for stdin;

--trace logs every rule execution to stderr;

--format defines output format of parsed value, JSON by default.

Exit code is 1 if input does not match (or grammar is invalid for check) and 2 on other errors.

Every flag may also be set by LLKP_<FLAG> environment variable or by a --config file.
*/
package main

import (
	"fmt"
	"os"
)

func main() {
	if e := RootCommand.Execute(); e != nil {
		fmt.Fprintln(os.Stderr, e)
		os.Exit(2)
	}
}
