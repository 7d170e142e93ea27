package commands

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tender-barbarian/classprov/internal/finder"
)

func newResolveCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve [symbol...]",
		Short: "Print the package that ships each symbol",
		Long: `Print the package that ships the top-level class of each SemanticDB symbol.
Symbols are read from stdin, one per line, when none are given as arguments.
Symbols without known provenance are printed with "-".`,
		Example: `  # Resolve a method against a declared jar
  classprov resolve --java-version 17 \
    --artifact com.acme:widgets:1.0=libs/widgets.jar 'com/acme/Widget#spin().'

  # Resolve JDK symbols of a Java 8 runtime
  classprov resolve --java-version 1.8.0_292 --index-jdk \
    --property sun.boot.class.path=$JAVA_HOME/jre/lib/rt.jar 'java/lang/String#'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			symbols := args
			if len(symbols) == 0 {
				var err error
				if symbols, err = readLines(cmd); err != nil {
					return err
				}
			}

			idx, err := opts.buildIndexer(cmd, nil)
			if err != nil {
				return err
			}
			res, err := finder.New(idx).ResolveSymbols(cmd.Context(), symbols)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			for _, r := range res {
				if r.Package == nil {
					fmt.Fprintf(out, "%s\t-\n", r.Symbol)
					continue
				}
				fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", r.Symbol, r.Package.Name, r.Package.Version, r.Package.Manager)
			}
			return nil
		},
	}
}

func readLines(cmd *cobra.Command) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(cmd.InOrStdin())
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return lines, nil
}
