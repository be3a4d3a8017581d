// Command pegtree is a small demonstration CLI for the pegtree
// engine: it runs one of the two sample grammars in examples/ against
// stdin or --input, and pretty-prints either the resulting token tree
// or the parse failure. It is an external collaborator in spec.md §1's
// sense - it supplies an operator tree and consumes the result, never
// touching the interpreter itself.
//
// Grounded on alecthomas/participle's own example CLIs
// (_examples/expr2/main.go), which pair kong for flags with repr for
// pretty-printing parsed values.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/mna/pegtree"
	"github.com/mna/pegtree/examples/arith"
	"github.com/mna/pegtree/examples/jsonish"
)

var cli struct {
	Grammar   string `help:"Which sample grammar to run." enum:"arith,json" default:"arith"`
	Input     string `help:"Input to parse; reads stdin if empty."`
	Debug     bool   `help:"Enable interpreter trace logging."`
	MaxDepth  int    `help:"Recursion depth ceiling." default:"0"`
	ListRules bool   `help:"Print the selected grammar's rule names and exit." name:"list-rules"`
}

func main() {
	kong.Parse(&cli, kong.Description("Run a sample pegtree grammar against some input."))

	g := selectedGrammar()

	if cli.ListRules {
		for _, name := range g.RuleNames() {
			fmt.Println(name)
		}
		return
	}

	input := cli.Input
	if input == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintln(os.Stderr, "pegtree: reading stdin:", err)
			os.Exit(1)
		}
		input = string(data)
	}

	cfg := pegtree.DefaultConfig()
	cfg.Debug = cli.Debug
	cfg.MaxDepth = cli.MaxDepth

	report(pegtree.Parse(g, input, cfg))
}

func selectedGrammar() *pegtree.Grammar[pegtree.Token] {
	if cli.Grammar == "json" {
		return jsonish.Grammar()
	}
	return arith.Grammar()
}

func report(out pegtree.Outcome[pegtree.Token]) {
	if !out.Ok {
		fmt.Fprintf(os.Stderr, "parse failed @ %s: %s\n", out.Position, out.Reason)
		os.Exit(1)
	}
	repr.Println(out.Value)
}
