// Package media pairs template files with the image and video files in their
// folder and renders terminal previews for the formats a decoder supports.
package media

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Kind classifies a media candidate. Images can be decoded for preview;
// videos are listed but never rendered.
type Kind int

const (
	KindImage Kind = iota
	KindVideo
)

func (k Kind) String() string {
	if k == KindVideo {
		return "video"
	}
	return "image"
}

var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

var videoExts = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".avi":  true,
	".mkv":  true,
	".webm": true,
}

// Candidate is one matched media file, in preview preference order.
type Candidate struct {
	Name      string
	Path      string
	Kind      Kind
	IsDefault bool
}

// FindCandidates scans the template's directory for related media files and
// returns them ranked: the recorded default image first, then files whose
// stem equals the template's stem, then files whose stem extends it with a
// suffix. Empty when nothing matches.
func FindCandidates(templatePath, defaultImage string) ([]Candidate, error) {
	dir := filepath.Dir(templatePath)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan media folder: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}

	return Rank(names, dir, Stem(templatePath), defaultImage), nil
}

// Rank orders a directory listing into the candidate tiers. Within the stem
// tiers images sort before videos, then case-insensitive filename order; no
// recency semantics.
func Rank(names []string, dir, stem, defaultImage string) []Candidate {
	lowerStem := strings.ToLower(stem)

	var exact, stemEqual, stemPrefix []Candidate
	for _, name := range names {
		ext := strings.ToLower(filepath.Ext(name))
		var kind Kind
		switch {
		case imageExts[ext]:
			kind = KindImage
		case videoExts[ext]:
			kind = KindVideo
		default:
			continue
		}

		candidate := Candidate{
			Name: name,
			Path: filepath.Join(dir, name),
			Kind: kind,
		}

		if defaultImage != "" && name == defaultImage {
			candidate.IsDefault = true
			exact = append(exact, candidate)
			continue
		}

		nameStem := strings.ToLower(Stem(name))
		switch {
		case nameStem == lowerStem:
			stemEqual = append(stemEqual, candidate)
		case strings.HasPrefix(nameStem, lowerStem):
			stemPrefix = append(stemPrefix, candidate)
		}
	}

	sortTier(stemEqual)
	sortTier(stemPrefix)

	ranked := make([]Candidate, 0, len(exact)+len(stemEqual)+len(stemPrefix))
	ranked = append(ranked, exact...)
	ranked = append(ranked, stemEqual...)
	ranked = append(ranked, stemPrefix...)
	return ranked
}

func sortTier(tier []Candidate) {
	sort.SliceStable(tier, func(i, j int) bool {
		if tier[i].Kind != tier[j].Kind {
			return tier[i].Kind < tier[j].Kind
		}
		return strings.ToLower(tier[i].Name) < strings.ToLower(tier[j].Name)
	})
}

// Stem returns the filename without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// IsImage reports whether the filename carries a recognized image extension.
func IsImage(name string) bool {
	return imageExts[strings.ToLower(filepath.Ext(name))]
}

// IsVideo reports whether the filename carries a recognized video extension.
func IsVideo(name string) bool {
	return videoExts[strings.ToLower(filepath.Ext(name))]
}
