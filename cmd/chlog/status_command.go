package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"chlog/internal/catalog"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status <show>",
		Short: "Show per-stage completion counts for a show",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			show, err := catalog.Lookup(args[0])
			if err != nil {
				return err
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			counts, err := store.StageCounts(cmd.Context(), show.Key)
			if err != nil {
				return err
			}
			if len(counts) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No completed work recorded for %s\n", show.Key)
				return nil
			}

			stages := make([]string, 0, len(counts))
			for stage := range counts {
				stages = append(stages, stage)
			}
			sort.Strings(stages)

			rows := make([][]string, 0, len(stages))
			for _, stage := range stages {
				rows = append(rows, []string{stage, fmt.Sprintf("%d", counts[stage])})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Stage", "Completed"}, rows))
			return nil
		},
	}
}
