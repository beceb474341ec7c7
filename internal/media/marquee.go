package media

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
)

// URL prefixes for files served from disk.
const (
	BackgroundsPrefix = "/media/backgrounds"
	VideosPrefix      = "/media/videos"
)

// minMarqueeImages is the count below which the image list is repeated three
// times instead of twice so a short list still fills the scrolling column.
const minMarqueeImages = 5

// Marquee repeats images for a seamless looping column.
func Marquee(images []string) []string {
	if len(images) == 0 {
		return nil
	}
	repeat := 2
	if len(images) < minMarqueeImages {
		repeat = 3
	}
	out := make([]string, 0, len(images)*repeat)
	for i := 0; i < repeat; i++ {
		out = append(out, images...)
	}
	return out
}

// Backgrounds serves the decorative background marquee and the media files
// it references.
type Backgrounds struct {
	dir      string
	patterns []string
	prefix   string
}

// NewBackgrounds creates a Backgrounds for the images in dir matching
// patterns. Image URLs are served under prefix.
func NewBackgrounds(dir string, patterns []string, prefix string) *Backgrounds {
	return &Backgrounds{dir: dir, patterns: patterns, prefix: prefix}
}

// Images lists the image URLs in lexical order. A missing directory yields
// no images.
func (b *Backgrounds) Images() ([]string, error) {
	if _, err := os.Stat(b.dir); os.IsNotExist(err) {
		return nil, nil
	}
	files, err := Glob(os.DirFS(b.dir), b.patterns)
	if err != nil {
		return nil, err
	}
	urls := make([]string, len(files))
	for i, f := range files {
		urls[i] = joinURL(b.prefix, f)
	}
	return urls, nil
}

// marqueeResponse is the JSON body of GET /api/backgrounds. Both columns
// carry the same list; the right column scrolls in reverse.
type marqueeResponse struct {
	Left  []string `json:"left"`
	Right []string `json:"right"`
}

// RegisterRoutes mounts GET /api/backgrounds and the static files under the
// configured prefix.
func (b *Backgrounds) RegisterRoutes(r chi.Router) {
	r.Get("/api/backgrounds", b.handleList)
	if b.prefix != "" {
		ServeDir(r, b.prefix, b.dir)
	}
}

// ServeDir serves the files under dir at prefix.
func ServeDir(r chi.Router, prefix, dir string) {
	prefix = strings.TrimRight(prefix, "/")
	r.Handle(prefix+"/*", http.StripPrefix(prefix, http.FileServer(http.Dir(dir))))
}

func (b *Backgrounds) handleList(w http.ResponseWriter, r *http.Request) {
	images, err := b.Images()
	if err != nil {
		log.Printf("media: listing backgrounds: %v", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	column := Marquee(images)
	if column == nil {
		column = []string{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(marqueeResponse{Left: column, Right: column})
}
