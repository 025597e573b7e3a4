package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pokecatcher/internal/catalog"
	"pokecatcher/internal/platform/pokeapi"
)

type globalOptions struct {
	baseURL  string
	rps      int
	timeout  time.Duration
	format   string
	verbose  bool
	pageSize int
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:           "pokedex",
		Short:         "Browse the Pokemon catalog",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.format {
			case formatTable, formatJSON, formatYAML:
				return nil
			}
			return fmt.Errorf("unknown --format %q (table, json, yaml)", opts.format)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.baseURL, "base-url", pokeapi.DefaultBaseURL, "PokeAPI base URL")
	flags.IntVar(&opts.rps, "rps", 20, "maximum PokeAPI requests per second")
	flags.DurationVar(&opts.timeout, "timeout", 15*time.Second, "per-request timeout")
	flags.StringVarP(&opts.format, "format", "o", formatTable, "output format: table, json or yaml")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log loader warnings to stderr")
	flags.IntVar(&opts.pageSize, "page-size", 50, "entries listed per PokeAPI page")

	cmd.AddCommand(newListCmd(opts), newSpeciesCmd(opts), newWarmCmd(opts))
	return cmd
}

func (o *globalOptions) logger() *zap.Logger {
	if !o.verbose {
		return zap.NewNop()
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func (o *globalOptions) newService(cache catalog.Cache) *catalog.Service {
	client := pokeapi.NewClient(pokeapi.Options{
		BaseURL:    o.baseURL,
		UserAgent:  "pokedex-cli/1.0",
		RPS:        o.rps,
		MaxRetries: 3,
		Timeout:    o.timeout,
	})
	return catalog.NewService(client, cache, o.logger(), catalog.Config{PageSize: o.pageSize})
}
