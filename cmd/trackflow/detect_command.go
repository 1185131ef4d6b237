package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"trackflow/internal/album"
	"trackflow/internal/demucs"
)

func newDetectCommand(ctx *commandContext) *cobra.Command {
	var apply bool
	var scan bool

	cmd := &cobra.Command{
		Use:   "detect [folder]",
		Short: "Classify which tracks need vocal separation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder, err := resolveAlbumFolder(args)
			if err != nil {
				return err
			}
			store, err := ctx.openAlbum(folder)
			if err != nil {
				return err
			}
			a, err := store.Load()
			if err != nil {
				return err
			}

			if scan {
				return listSeparatedStems(cmd, folder, a)
			}

			names := make([]string, 0, len(a.Tracks))
			for i := range a.Tracks {
				names = append(names, a.Tracks[i].BestFile())
			}
			targets := demucs.DetectTargets(names, ctx.classifier())

			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(targets))
			for i, target := range targets {
				rows = append(rows, []string{
					a.Tracks[i].ID,
					target.File,
					yesNo(target.Target),
					target.Partner,
				})
			}
			writeTable(out, []string{"Track", "File", "Target", "Instrumental partner"}, rows)

			if !apply {
				fmt.Fprintln(out, "\nRun with --apply to store the classification")
				return nil
			}
			for i, target := range targets {
				a.Tracks[i].DemucsTarget = target.Target
			}
			if err := store.Save(a); err != nil {
				return err
			}
			fmt.Fprintln(out, "\nClassification stored")
			return nil
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "Persist the classification to the state document")
	cmd.Flags().BoolVar(&scan, "scan", false, "List accompaniment stems found in the separation output folder")
	return cmd
}

// listSeparatedStems prints the accompaniment stem the separation model wrote
// for each song under the album's separation output directory.
func listSeparatedStems(cmd *cobra.Command, folder string, a *album.Album) error {
	outputDir := filepath.Join(folder, a.PathFor(album.AliasDemucsOutput))
	stems, err := demucs.ScanSeparated(outputDir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(stems) == 0 {
		fmt.Fprintf(out, "No separated stems found under %s\n", outputDir)
		return nil
	}

	rows := make([][]string, 0, len(stems))
	for _, stem := range stems {
		file := stem.File
		if rel, err := filepath.Rel(folder, stem.File); err == nil {
			file = rel
		}
		rows = append(rows, []string{filepath.Base(stem.SongDir), file})
	}
	writeTable(out, []string{"Song", "Accompaniment stem"}, rows)
	return nil
}
