package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"trackflow/internal/album"
	"trackflow/internal/catalog"
	"trackflow/internal/fileutil"
	"trackflow/internal/state"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var albumName string
	var artistName string

	cmd := &cobra.Command{
		Use:   "import <folder>",
		Short: "Register an album folder and create its state document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder, err := resolveAlbumFolder(args)
			if err != nil {
				return err
			}

			store := state.NewStore(folder, ctx.ensureLogger())
			if store.Exists() {
				return fmt.Errorf("album already imported: %s exists in %s", state.DocumentName, folder)
			}

			fileNames, sourceDir, err := findSourceFiles(folder)
			if err != nil {
				return err
			}
			if len(fileNames) == 0 {
				return fmt.Errorf("no FLAC files found in %s", folder)
			}

			if albumName == "" {
				albumName = filepath.Base(folder)
			}

			a, err := store.Initialize(albumName, artistName, fileNames)
			if err != nil {
				return err
			}

			if err := upsertCatalog(ctx, folder, a); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %q with %d tracks from %s\n", a.Name, len(a.Tracks), sourceDir)
			fmt.Fprintf(out, "Stage %d: %s\n", a.CurrentStage, album.StageName(a.CurrentStage))
			return nil
		},
	}

	cmd.Flags().StringVar(&albumName, "album", "", "Album name (defaults to the folder name)")
	cmd.Flags().StringVar(&artistName, "artist", "", "Artist name")
	return cmd
}

// findSourceFiles looks for FLAC files in the raw-source subfolder first and
// falls back to the album root.
func findSourceFiles(folder string) ([]string, string, error) {
	rawDir := filepath.Join(folder, album.DefaultPathAliases()[album.AliasRawSource])
	names, err := fileutil.ListByExt(rawDir, ".flac")
	if err == nil && len(names) > 0 {
		return names, rawDir, nil
	}

	names, err = fileutil.ListByExt(folder, ".flac")
	if err != nil {
		return nil, "", fmt.Errorf("scan %s: %w", folder, err)
	}
	return names, folder, nil
}

func upsertCatalog(ctx *commandContext, folder string, a *album.Album) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	store, err := catalog.Open(cfg)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer store.Close()
	return store.Upsert(context.Background(), folder, a)
}
