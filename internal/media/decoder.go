package media

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
)

// Decoder turns a media file into an image for terminal preview. Decoders
// cover disjoint format sets; callers pick one via DecoderFor and treat
// absence as "listed but not rendered", never as a failure.
type Decoder interface {
	Name() string
	Supports(filename string) bool
	Decode(path string) (image.Image, error)
}

var decoders []Decoder

func register(d Decoder) {
	decoders = append(decoders, d)
}

func init() {
	register(baselineDecoder{})
}

// DecoderFor returns the decoder claiming the file's format, if this build
// carries one.
func DecoderFor(filename string) (Decoder, bool) {
	for _, d := range decoders {
		if d.Supports(filename) {
			return d, true
		}
	}
	return nil, false
}

// Decoders returns the decoders available in this build: the baseline one
// always, the enhanced one unless compiled out.
func Decoders() []Decoder {
	out := make([]Decoder, len(decoders))
	copy(out, decoders)
	return out
}

// baselineDecoder handles the formats the standard image registry decodes
// without extra dependencies.
type baselineDecoder struct{}

func (baselineDecoder) Name() string {
	return "baseline"
}

func (baselineDecoder) Supports(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".gif", ".jpg", ".jpeg":
		return true
	}
	return false
}

func (baselineDecoder) Decode(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}
