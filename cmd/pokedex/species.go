package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newSpeciesCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "species <id>",
		Short: "Print flavor text and the evolution chain of a species",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("species id must be a positive integer, got %q", args[0])
			}

			detail, err := g.newService(nil).Species(cmd.Context(), id)
			if err != nil {
				return err
			}
			return writeSpecies(cmd.OutOrStdout(), g.format, detail)
		},
	}
}
