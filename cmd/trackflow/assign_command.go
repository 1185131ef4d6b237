package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"trackflow/internal/reconcile"
)

func newAssignCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "assign <track-id> <filename> [folder]",
		Short: "Manually bind a track to a file, bypassing the matcher",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			trackID, fileName := args[0], args[1]

			folder, err := resolveAlbumFolder(args[2:])
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

			r := reconcile.New(ctx.classifier(), ctx.ensureLogger())
			if err := r.Assign(a, trackID, fileName); err != nil {
				return err
			}

			if err := store.Save(a); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Assigned %s to %q\n", trackID, fileName)
			return nil
		},
	}
}
