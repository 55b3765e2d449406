//go:build !nowebp

package media

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/webp"
)

// enhancedDecoder adds WebP support on top of the baseline formats. Builds
// with the nowebp tag drop it entirely; callers discover the gap through
// DecoderFor and fall back to listing the file without a preview.
type enhancedDecoder struct{}

func init() {
	register(enhancedDecoder{})
}

func (enhancedDecoder) Name() string {
	return "enhanced"
}

func (enhancedDecoder) Supports(filename string) bool {
	return strings.ToLower(filepath.Ext(filename)) == ".webp"
}

func (enhancedDecoder) Decode(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, err := webp.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode webp: %w", err)
	}
	return img, nil
}
