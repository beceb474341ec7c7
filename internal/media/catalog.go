// Package media loads the carousel catalog and the background marquee images
// from configuration and the filesystem.
package media

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"

	"github.com/ziadkadry99/avatar-launch/internal/carousel"
)

// ErrDuplicateID is returned when two catalog items share an ID.
var ErrDuplicateID = errors.New("media: duplicate item id")

// CatalogSource describes where catalog items come from: an explicit list,
// then every file under Dir matching Pattern. URLPrefix is prepended to the
// slash-separated relative path of discovered files.
type CatalogSource struct {
	Items     []carousel.MediaItem
	Dir       string
	Pattern   string
	URLPrefix string
}

// LoadCatalog builds the ordered item list for a carousel. Items without an
// ID get a random one; discovered files are appended in lexical order with a
// label derived from the file name.
func LoadCatalog(src CatalogSource) ([]carousel.MediaItem, error) {
	items := make([]carousel.MediaItem, 0, len(src.Items))
	items = append(items, src.Items...)

	if src.Dir != "" && src.Pattern != "" {
		files, err := Glob(os.DirFS(src.Dir), []string{src.Pattern})
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", src.Dir, err)
		}
		for _, f := range files {
			items = append(items, carousel.MediaItem{
				ID:     strings.TrimSuffix(f, path.Ext(f)),
				Source: joinURL(src.URLPrefix, f),
				Label:  LabelFromName(f),
			})
		}
	}

	seen := make(map[string]bool, len(items))
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.New().String()
		}
		if items[i].Label == "" {
			items[i].Label = LabelFromName(items[i].Source)
		}
		if seen[items[i].ID] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, items[i].ID)
		}
		seen[items[i].ID] = true
	}
	return items, nil
}

// Glob returns the slash-separated paths in fsys matching any of patterns,
// sorted and without duplicates. Patterns support ** and {a,b} alternation.
func Glob(fsys fs.FS, patterns []string) ([]string, error) {
	set := make(map[string]bool)
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("matching %q: %w", pattern, err)
		}
		for _, m := range matches {
			set[m] = true
		}
	}

	out := make([]string, 0, len(set))
	for m := range set {
		out = append(out, m)
	}
	sort.Strings(out)
	return out, nil
}

// LabelFromName turns "clips/avatar_two-final.mp4" into "Avatar Two Final".
func LabelFromName(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	base = strings.TrimSuffix(base, path.Ext(base))
	words := strings.FieldsFunc(base, func(r rune) bool {
		return r == '_' || r == '-' || r == ' ' || r == '.'
	})
	for i, w := range words {
		words[i] = upperFirst(w)
	}
	return strings.Join(words, " ")
}

func upperFirst(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return w
	}
	return string(unicode.ToUpper(r)) + w[size:]
}

func joinURL(prefix, rel string) string {
	if prefix == "" {
		return rel
	}
	return strings.TrimRight(prefix, "/") + "/" + rel
}
