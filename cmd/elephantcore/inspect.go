package main

import (
	"fmt"
	"os"

	"github.com/chotchki/elephantcore/internal/engine/catalog"
	"github.com/chotchki/elephantcore/internal/engine/pageformats"
	"github.com/chotchki/elephantcore/internal/engine/rowformats"
	"github.com/chotchki/elephantcore/internal/engine/storageio"
	"github.com/spf13/cobra"
)

type inspectFlags struct {
	snapshotPath  string
	table         string
	pages         string
	grep          string
	caseSensitive bool
	format        string
}

// inspectCmd reads a snapshot file written by `serve --snapshot-out`
// and prints the rows of one table, raw min/max xid included. It does
// not apply MVCC visibility filtering - a snapshot file carries no
// transaction log, only page bytes, so a live-or-dead judgment per
// row would need transaction status this tool never has.
func inspectCmd() *cobra.Command {
	flags := &inspectFlags{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the rows of one table from a snapshot file",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInspect(flags)
		},
	}
	cmd.Flags().StringVarP(&flags.snapshotPath, "snapshot", "s", "", "Path to a snapshot file written by 'serve --snapshot-out' (required)")
	cmd.Flags().StringVarP(&flags.table, "table", "t", "", "Table name to print (required)")
	cmd.Flags().StringVar(&flags.pages, "pages", "", "Restrict output to a page range, e.g. '0:10', '5:', ':20', or '5'")
	cmd.Flags().StringVar(&flags.grep, "grep", "", "Only print rows with a column matching this regex")
	cmd.Flags().BoolVar(&flags.caseSensitive, "case-sensitive", false, "Make --grep case-sensitive")
	cmd.Flags().StringVar(&flags.format, "format", "tsv", "Output format: tsv or csv")
	return cmd
}

func runInspect(flags *inspectFlags) error {
	if flags.snapshotPath == "" {
		return fmt.Errorf("--snapshot is required")
	}
	if flags.table == "" {
		return fmt.Errorf("--table is required")
	}
	if flags.format != "tsv" && flags.format != "csv" {
		return fmt.Errorf("--format must be tsv or csv, got %q", flags.format)
	}

	pr, err := parsePageRange(flags.pages)
	if err != nil {
		return err
	}

	var pattern *regexpMatcher
	if flags.grep != "" {
		re, err := compileRowPattern(flags.grep, flags.caseSensitive)
		if err != nil {
			return fmt.Errorf("invalid --grep pattern: %w", err)
		}
		pattern = &regexpMatcher{re: re}
	}

	f, err := os.Open(flags.snapshotPath)
	if err != nil {
		return fmt.Errorf("opening snapshot: %w", err)
	}
	defer f.Close()

	pages, err := storageio.LoadFrom(f)
	if err != nil {
		return fmt.Errorf("loading snapshot: %w", err)
	}

	rows := storageio.NewRowManager(pages)
	lookup := catalog.NewLookup(rows)

	table, err := lookup.GetDefinition(flags.table)
	if err != nil {
		return err
	}

	meta := []string{"min_xid", "max_xid", "page", "slot"}
	header := append(append([]string{}, meta...), attributeNames(table.Attributes)...)

	if flags.format == "csv" {
		cw, err := newCSVRowWriter(os.Stdout, header)
		if err != nil {
			return err
		}
		err = rows.Stream(table, func(ptr pageformats.ItemPointer, row *rowformats.RowData) error {
			if !pr.includes(ptr.PageNumber) {
				return nil
			}
			if pattern != nil && !rowMatches(row.Values, pattern.re) {
				return nil
			}
			return cw.writeRow(rowMeta(row), row.Values)
		})
		if err != nil {
			return err
		}
		return cw.flush()
	}

	fmt.Println(tabJoin(header))
	return rows.Stream(table, func(ptr pageformats.ItemPointer, row *rowformats.RowData) error {
		if !pr.includes(ptr.PageNumber) {
			return nil
		}
		if pattern != nil && !rowMatches(row.Values, pattern.re) {
			return nil
		}
		line := tabJoin(rowMeta(row))
		for _, v := range row.Values {
			if v == nil {
				line += "\tNULL"
				continue
			}
			line += "\t" + v.String()
		}
		fmt.Println(line)
		return nil
	})
}
