package commands

import (
	"bufio"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tender-barbarian/classprov/internal/lsif"
)

func newRecordCommand(opts *rootOptions) *cobra.Command {
	var firstID int

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Emit LSIF package information for imported symbols",
		Long: `Read "symbol<TAB>monikerID" lines from stdin and write LSIF packageInformation
vertices and edges to stdout as JSON lines. Each distinct package gets exactly
one vertex; every symbol with known provenance gets one edge from its moniker.
Symbols without known provenance are skipped.`,
		Example: `  classprov record -c classprov.yaml --first-id 5000 < imports.tsv >> dump.lsif`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := bufio.NewWriter(cmd.OutOrStdout())
			w := lsif.NewWriter(out, firstID)

			idx, err := opts.buildIndexer(cmd, w)
			if err != nil {
				return err
			}

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(runtime.GOMAXPROCS(0))
			sc := bufio.NewScanner(cmd.InOrStdin())
			lineNo := 0
			var parseErr error
			for sc.Scan() && ctx.Err() == nil {
				lineNo++
				line := strings.TrimSpace(sc.Text())
				if line == "" {
					continue
				}
				symbol, monikerID, err := parseImport(line)
				if err != nil {
					parseErr = fmt.Errorf("line %d: %w", lineNo, err)
					break
				}
				g.Go(func() error {
					return idx.RecordImportIfKnown(symbol, monikerID)
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			if parseErr != nil {
				return parseErr
			}
			if err := sc.Err(); err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			if err := out.Flush(); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			log.Info().Int("imports", lineNo).Int("next_id", w.NextID()).Msg("Recorded package information")
			return nil
		},
	}

	cmd.Flags().IntVar(&firstID, "first-id", 1, "id of the first emitted LSIF element")

	return cmd
}

func parseImport(line string) (string, int, error) {
	symbol, id, ok := strings.Cut(line, "\t")
	if !ok {
		return "", 0, fmt.Errorf("expected symbol<TAB>monikerID, got %q", line)
	}
	monikerID, err := strconv.Atoi(strings.TrimSpace(id))
	if err != nil {
		return "", 0, fmt.Errorf("invalid moniker id %q: %w", id, err)
	}
	return symbol, monikerID, nil
}
