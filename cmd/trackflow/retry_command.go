package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"trackflow/internal/logging"
	"trackflow/internal/stagegate"
	"trackflow/internal/workflow"
)

func newRetryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "retry [folder]",
		Short: "Clear a recorded stage failure so the stage can be re-run",
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

			if a.LastError == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No recorded failure to clear")
				return nil
			}

			logger := ctx.ensureLogger()
			engine := workflow.New(store, stagegate.New(folder, logger), logger)
			runCtx := logging.WithCorrelationID(logging.WithAlbum(cmd.Context(), folder), uuid.NewString())
			if err := engine.ClearError(runCtx, a); err != nil {
				return err
			}
			if err := upsertCatalog(ctx, folder, a); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Cleared failure; album back to %s at stage %d\n", a.Status, a.CurrentStage)
			return nil
		},
	}
}
