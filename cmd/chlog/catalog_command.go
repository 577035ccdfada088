package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"chlog/internal/catalog"
)

func newCatalogCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "catalog",
		Short:       "List the known shows",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0, len(catalog.All()))
			for _, show := range catalog.All() {
				feedURL := show.FeedURL
				if !show.HasFeed() {
					feedURL = "(none)"
				}
				rows = append(rows, []string{show.Key, show.Folder, feedURL, yesNo(show.Official)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Show", "Folder", "Feed", "Official docs"}, rows))
			return nil
		},
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
