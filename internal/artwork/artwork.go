// Package artwork inspects album folders for cover images. It looks for
// loose cover files only; embedded tag inspection is out of scope.
package artwork

import (
	"os"
	"path/filepath"
	"strings"

	"trackflow/internal/album"
	"trackflow/internal/fileutil"
)

// coverStems are the base names, case-insensitive, that mark a file as the
// album cover.
var coverStems = map[string]struct{}{
	"cover":  {},
	"folder": {},
	"front":  {},
}

var imageExts = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
}

// FindCover returns the first cover image in dir, sorted lexically, or ""
// when none exists. A missing directory yields "".
func FindCover(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if _, ok := imageExts[ext]; !ok {
			continue
		}
		stem := strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name)))
		if _, ok := coverStems[stem]; ok {
			return name
		}
	}
	return ""
}

// Detect inspects an album folder for a cover image, checking the raw-source
// directory first and the album root second, and returns whether one exists.
// The result feeds the album's tri-state artwork flag.
func Detect(albumFolder string, a *album.Album) bool {
	if raw := a.PathFor(album.AliasRawSource); raw != "" {
		if FindCover(filepath.Join(albumFolder, raw)) != "" {
			return true
		}
	}
	return FindCover(albumFolder) != ""
}

// DerivedCovers reports which derived cover formats exist in the artwork
// output directory.
func DerivedCovers(albumFolder string, a *album.Album) (jpeg, webp bool) {
	dir := filepath.Join(albumFolder, a.PathFor(album.AliasArtworkOutput))
	if n, err := fileutil.CountByExt(dir, ".jpg"); err == nil && n > 0 {
		jpeg = true
	}
	if !jpeg {
		if n, err := fileutil.CountByExt(dir, ".jpeg"); err == nil && n > 0 {
			jpeg = true
		}
	}
	if n, err := fileutil.CountByExt(dir, ".webp"); err == nil && n > 0 {
		webp = true
	}
	return jpeg, webp
}
