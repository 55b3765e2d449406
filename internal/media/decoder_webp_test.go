//go:build !nowebp

package media

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDecoderForWebp(t *testing.T) {
	decoder, ok := DecoderFor("sample.webp")
	if !ok {
		t.Fatal("Expected the enhanced decoder to claim webp files")
	}
	if decoder.Name() != "enhanced" {
		t.Errorf("Expected enhanced decoder, got %s", decoder.Name())
	}
	if decoder.Supports("sample.png") {
		t.Error("Expected the enhanced decoder to leave baseline formats alone")
	}
}

func TestWebpDecodeCorruptFile(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "webp-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	path := filepath.Join(tempDir, "broken.webp")
	if err := os.WriteFile(path, []byte("not webp data"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	decoder, _ := DecoderFor(path)
	if _, err := decoder.Decode(path); err == nil {
		t.Error("Expected error for corrupt webp data")
	}
}
