package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"trackflow/internal/album"
	"trackflow/internal/artwork"
	"trackflow/internal/logging"
	"trackflow/internal/stagegate"
	"trackflow/internal/workflow"
)

func newAdvanceCommand(ctx *commandContext) *cobra.Command {
	var checkOnly bool

	cmd := &cobra.Command{
		Use:   "advance [folder]",
		Short: "Advance the album to the next stage once the current stage's outputs exist",
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

			logger := ctx.ensureLogger()
			engine := workflow.New(store, stagegate.New(folder, logger), logger)

			ok, reason := engine.CanAdvance(a)
			out := cmd.OutOrStdout()
			if !ok {
				return fmt.Errorf("stage %d (%s) is not complete: %s",
					a.CurrentStage, album.StageName(a.CurrentStage), reason)
			}
			if checkOnly {
				fmt.Fprintf(out, "Stage %d (%s) is ready to advance\n", a.CurrentStage, album.StageName(a.CurrentStage))
				return nil
			}

			runCtx := logging.WithAlbum(cmd.Context(), folder)
			runCtx = logging.WithCorrelationID(runCtx, uuid.NewString())

			// The artwork flag decides whether stage 7 runs; inspect the
			// folder once before the skip decision is made.
			if a.CurrentStage == album.StageArtworkOptimize && a.HasArtwork == nil {
				found := artwork.Detect(folder, a)
				a.SetArtwork(found)
				logging.WithContext(runCtx, logger).Info("artwork inspected",
					logging.Bool("found", found))
			}

			if err := engine.Advance(runCtx, a); err != nil {
				return err
			}
			if err := upsertCatalog(ctx, folder, a); err != nil {
				return err
			}

			if a.Status == album.StatusCompleted {
				fmt.Fprintf(out, "Album %q completed\n", a.Name)
				return nil
			}
			fmt.Fprintf(out, "Advanced to stage %d: %s\n", a.CurrentStage, album.StageName(a.CurrentStage))
			return nil
		},
	}

	cmd.Flags().BoolVar(&checkOnly, "check", false, "Only check readiness, do not advance")
	return cmd
}
