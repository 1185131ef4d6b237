package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"trackflow/internal/album"
	"trackflow/internal/fileutil"
	"trackflow/internal/logging"
	"trackflow/internal/reconcile"
)

func newReconcileCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile [folder]",
		Short: "Re-derive the track-to-file mapping from the raw source directory",
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

			rawDir := filepath.Join(folder, a.PathFor(album.AliasRawSource))
			present, err := fileutil.ListByExt(rawDir, ".flac")
			if errors.Is(err, fs.ErrNotExist) {
				// Flat album folders keep the sources at the root.
				rawDir = folder
				present, err = fileutil.ListByExt(rawDir, ".flac")
			}
			if err != nil {
				return fmt.Errorf("scan %s: %w", rawDir, err)
			}

			runCtx := logging.WithAlbum(cmd.Context(), folder)
			runCtx = logging.WithStage(runCtx, a.CurrentStage)
			logger := logging.WithContext(runCtx, ctx.ensureLogger())

			start := time.Now()
			r := reconcile.New(ctx.classifier(), logger)
			rows := r.Reconcile(a, present)

			if err := store.Save(a); err != nil {
				return err
			}
			if err := upsertCatalog(ctx, folder, a); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			tableRows := make([][]string, 0, len(rows))
			unmatched := 0
			for _, row := range rows {
				if row.Class == reconcile.ClassUnmatched {
					unmatched++
				}
				tableRows = append(tableRows, []string{
					row.TrackID,
					string(row.Class),
					row.OriginalFile,
					row.MatchedFile,
					row.InstrumentalFile,
				})
			}
			writeTable(out, []string{"Track", "Result", "Original", "Matched", "Instrumental"}, tableRows)

			logger.Info("reconcile finished",
				logging.Int("tracks", len(rows)),
				logging.Int("unmatched", unmatched),
				logging.Duration("elapsed", time.Since(start)))

			if unmatched > 0 {
				fmt.Fprintf(out, "\n%d track(s) unmatched; fix with 'trackflow assign <track-id> <filename>'\n", unmatched)
			}
			return nil
		},
	}
}
