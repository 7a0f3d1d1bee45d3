// discover.go finds the markdown pages under a docs root.

package route

import (
	"io/fs"
	"sort"
	"strings"
)

// File is a markdown page discovered under the docs root.
type File struct {
	Path  string `json:"path"`  // slash-separated, relative to the docs root
	Route string `json:"route"` // route the page is served at
}

// skipDir reports whether a directory is never part of the site:
// hidden directories (.sitenav, .vitepress, .git) and node_modules.
func skipDir(name string) bool {
	return (strings.HasPrefix(name, ".") && name != ".") || name == "node_modules"
}

// Discover walks fsys and returns every markdown page, sorted by route.
func Discover(fsys fs.FS) ([]File, error) {
	var files []File
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDir(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		r, err := FromFile(p)
		if err != nil {
			// Assets and other non-page files are not routes.
			return nil
		}
		files = append(files, File{Path: p, Route: r})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Route < files[j].Route })
	return files, nil
}

// Exists reports whether the page a normalised route points at is present
// in fsys. Routes whose last segment has an extension are also accepted when
// a file of that exact name exists, so links to images and downloads resolve.
func Exists(fsys fs.FS, r string) bool {
	if _, err := fs.Stat(fsys, ToFile(r)); err == nil {
		return true
	}
	if strings.HasSuffix(r, "/") {
		return false
	}
	last := r[strings.LastIndex(r, "/")+1:]
	if !strings.Contains(last, ".") {
		return false
	}
	_, err := fs.Stat(fsys, strings.TrimPrefix(r, "/"))
	return err == nil
}

// Assets walks fsys and returns every non-page file (images, downloads),
// slash-separated and sorted. Hidden files and directories are skipped.
func Assets(fsys fs.FS) ([]string, error) {
	var assets []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDir(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		if _, err := FromFile(p); err == nil {
			return nil
		}
		assets = append(assets, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(assets)
	return assets, nil
}
