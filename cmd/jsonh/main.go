// Command jsonh tokenizes or parses a JSONH document and prints the
// result as tokens or as re-encoded JSON. It is a diagnostic tool for the
// jsonh package, not a JSONH writer (spec.md §1 Non-goals).
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsonh-go/jsonh"
	"github.com/jsonh-go/jsonh/jsonhsource"
)

var (
	flagVersion     int
	flagSingle      bool
	flagMaxDepth    int
	flagIncomplete  bool
	flagBigNumbers  bool
	flagDecimals    int
	flagShowTokens  bool
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jsonh [file]",
		Short: "Parse or tokenize a JSONH document",
		Long: "jsonh reads a JSONH document (from a file argument, or stdin when none is\n" +
			"given) and prints either its token stream or its value re-encoded as JSON.",
		Args: cobra.MaximumNArgs(1),
		RunE: runRoot,
	}
	flags := cmd.Flags()
	flags.IntVar(&flagVersion, "version", 2, "JSONH syntax version (1 or 2)")
	flags.BoolVar(&flagSingle, "single", false, "require a single root element")
	flags.IntVar(&flagMaxDepth, "max-depth", jsonh.DefaultMaxDepth, "maximum container nesting depth")
	flags.BoolVar(&flagIncomplete, "incomplete-inputs", false, "tolerate truncated input")
	flags.BoolVar(&flagBigNumbers, "big-numbers", false, "decode numbers as exact decimals")
	flags.IntVar(&flagDecimals, "decimals", jsonh.DefaultDecimals, "fractional exponent precision")
	flags.BoolVar(&flagShowTokens, "tokens", false, "print the raw token stream instead of JSON")
	return cmd
}

func runRoot(cmd *cobra.Command, args []string) error {
	data, err := readInput(args)
	if err != nil {
		return err
	}

	opts := jsonh.NewOptions(
		jsonh.WithVersion(jsonh.Version(flagVersion)),
		jsonh.WithParseSingleElement(flagSingle),
		jsonh.WithMaxDepth(flagMaxDepth),
		jsonh.WithIncompleteInputs(flagIncomplete),
		jsonh.WithBigNumbers(flagBigNumbers),
		jsonh.WithDecimals(flagDecimals),
	)

	src := jsonhsource.FromString(string(data))

	if flagShowTokens {
		return printTokens(cmd, src, opts)
	}
	return printJSON(cmd, src, opts)
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 1 {
		return os.ReadFile(args[0])
	}
	return io.ReadAll(os.Stdin)
}

func printTokens(cmd *cobra.Command, src iter.Seq[rune], opts jsonh.Options) error {
	for tok, err := range jsonh.Tokenize(src, opts) {
		if err != nil {
			return err
		}
		if tok.Value != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %q\n", tok.Kind, tok.Value)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), tok.Kind)
		}
	}
	return nil
}

func printJSON(cmd *cobra.Command, src iter.Seq[rune], opts jsonh.Options) error {
	node, err := jsonh.ParseNode(src, opts)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(node.Interface())
}
