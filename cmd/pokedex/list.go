package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"pokecatcher/internal/catalog"
)

type listOptions struct {
	pages      int
	query      string
	typ        string
	generation string
	legendary  bool
	sortKey    string
	desc       bool
}

func newListCmd(g *globalOptions) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Load catalog pages and print the filtered view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.sortKey != "" && !catalog.IsStatKey(opts.sortKey) {
				return fmt.Errorf("unknown --sort %q (one of %s)", opts.sortKey, strings.Join(catalog.StatKeys, ", "))
			}

			svc := g.newService(nil)
			sum, err := loadPages(cmd.Context(), svc, opts.pages, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			view := svc.View(opts.query,
				catalog.Filters{Type: opts.typ, Generation: opts.generation, LegendaryOnly: opts.legendary},
				catalog.Sort{Key: opts.sortKey, Descending: opts.desc})

			if err := writeEntries(cmd.OutOrStdout(), g.format, view); err != nil {
				return err
			}
			if g.format == formatTable {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s of %s loaded Pokemon shown (%s pages, %s dropped)\n",
					humanize.Comma(int64(len(view))),
					humanize.Comma(int64(sum.loaded)),
					humanize.Comma(int64(sum.pages)),
					humanize.Comma(int64(sum.dropped)))
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.pages, "pages", 1, "pages to load, 0 loads the whole catalog")
	f.StringVarP(&opts.query, "query", "q", "", "match name, id or type")
	f.StringVar(&opts.typ, "type", "", "only this type")
	f.StringVar(&opts.generation, "generation", "", "only this generation (I..VIII, unknown)")
	f.BoolVar(&opts.legendary, "legendary", false, "only legendary Pokemon")
	f.StringVar(&opts.sortKey, "sort", "", "sort by stat: "+strings.Join(catalog.StatKeys, ", "))
	f.BoolVar(&opts.desc, "desc", false, "sort descending")
	return cmd
}
