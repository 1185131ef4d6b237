package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"trackflow/internal/album"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status [folder]",
		Short: "Show the album's stage, status, and track mapping",
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

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Album:   %s\n", a.Name)
			if a.Artist != "" {
				fmt.Fprintf(out, "Artist:  %s\n", a.Artist)
			}
			fmt.Fprintf(out, "Stage:   %d/%d (%s)\n", a.CurrentStage, album.StageMax, album.StageName(a.CurrentStage))
			fmt.Fprintf(out, "Status:  %s\n", a.Status)
			fmt.Fprintf(out, "Artwork: %s\n", artworkLabel(a))
			if a.LastError != nil {
				fmt.Fprintf(out, "Error:   stage %d at %s: %s\n",
					a.LastError.Stage, a.LastError.Timestamp.Format("2006-01-02 15:04:05"), a.LastError.Message)
			}
			fmt.Fprintln(out)

			rows := make([][]string, 0, len(a.Tracks))
			for _, track := range a.Tracks {
				rows = append(rows, []string{
					track.ID,
					track.FinalFile,
					yesNo(track.IsInstrumental),
					track.InstrumentalFile,
					yesNo(track.DemucsTarget),
				})
			}
			writeTable(out, []string{"Track", "File", "Inst", "Instrumental file", "Demucs"}, rows)
			return nil
		},
	}
}

func artworkLabel(a *album.Album) string {
	if a.HasArtwork == nil {
		return "not inspected"
	}
	return yesNo(*a.HasArtwork)
}
