package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"chlog/internal/preflight"
	"chlog/internal/sorter"
)

func newSortCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "sort <xml_feed> <podcast_folder>",
		Short: "Sort downloaded episodes into year directories",
		Long: `Sort matches each audio file in the podcast folder against the episodes
in the RSS feed and moves it into a subdirectory named after the episode's
publication year. Files that match no episode are left in place.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			feedPath, folder := args[0], args[1]
			for _, check := range []preflight.Result{
				preflight.CheckFileReadable("feed file", feedPath),
				preflight.CheckDirectoryAccess("podcast folder", folder),
			} {
				if !check.Passed {
					return fmt.Errorf("%s: %s", check.Name, check.Detail)
				}
			}

			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			report, err := sorter.New(logger).OrganizeFeed(cmd.Context(), feedPath, folder, dryRun)
			if err != nil {
				return err
			}
			report.Render(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be moved without moving anything")
	return cmd
}
