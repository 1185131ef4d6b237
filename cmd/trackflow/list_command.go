package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"trackflow/internal/album"
	"trackflow/internal/catalog"
	"trackflow/internal/state"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var rebuild bool
	var statusFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every album in the work directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var wantStatus album.Status
			if statusFilter != "" {
				parsed, ok := album.ParseStatus(statusFilter)
				if !ok {
					return fmt.Errorf("unknown status %q (use WAITING_USER, ERROR, or COMPLETED)", statusFilter)
				}
				wantStatus = parsed
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := catalog.Open(cfg)
			if err != nil {
				return fmt.Errorf("open catalog: %w", err)
			}
			defer store.Close()

			cmdCtx := context.Background()
			if rebuild {
				count, err := store.Rebuild(cmdCtx, cfg.Paths.WorkDir, func(folder string) (*album.Album, error) {
					return state.NewStore(folder, ctx.ensureLogger()).Load()
				})
				if err != nil {
					return fmt.Errorf("rebuild catalog: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Rebuilt catalog with %d album(s)\n\n", count)
			}

			entries, err := store.List(cmdCtx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No albums in the catalog; import one or run 'trackflow list --rebuild'")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				if wantStatus != "" && entry.Status != wantStatus {
					continue
				}
				artworkCell := "?"
				if entry.HasArtwork != nil {
					artworkCell = yesNo(*entry.HasArtwork)
				}
				rows = append(rows, []string{
					entry.Name,
					entry.Artist,
					fmt.Sprintf("%d/%d %s", entry.Stage, album.StageMax, album.StageName(entry.Stage)),
					string(entry.Status),
					strconv.Itoa(entry.TrackCount),
					artworkCell,
				})
			}
			if len(rows) == 0 {
				fmt.Fprintf(out, "No albums with status %s\n", wantStatus)
				return nil
			}
			writeTable(out, []string{"Album", "Artist", "Stage", "Status", "Tracks", "Art"}, rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&rebuild, "rebuild", false, "Rescan the work directory before listing")
	cmd.Flags().StringVar(&statusFilter, "status", "", "Only list albums with this status")
	return cmd
}
